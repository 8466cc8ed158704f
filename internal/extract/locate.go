package extract

import (
	"cmp"
	"iter"
	"slices"
	"strings"
)

// A Locator proposes candidate JSON object spans inside a completion, in
// the order they should be tried.
type Locator func(raw string) iter.Seq[string]

// Greedy yields the span from the first '{' to the last '}'. It recovers
// JSON wrapped in prose or markdown fences, but picks the wrong span when
// the text holds several objects or stray braces.
func Greedy(raw string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := strings.IndexByte(raw, '{')
		end := strings.LastIndexByte(raw, '}')
		if start < 0 || end < start {
			return
		}
		yield(raw[start : end+1])
	}
}

// Balanced yields every brace-balanced span, outermost first, skipping
// braces that appear inside string literals. Spans are found in a single
// pass over raw.
func Balanced(raw string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, sp := range balancedSpans(raw) {
			if !yield(raw[sp.start : sp.end+1]) {
				return
			}
		}
	}
}

type span struct{ start, end int }

// balancedSpans pairs braces with a stack of open offsets. String literals
// are only tracked inside an open brace, so quotes in surrounding prose do
// not hide objects.
func balancedSpans(s string) []span {
	var (
		open     []int
		spans    []span
		inString bool
		escaped  bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = len(open) > 0
		case '{':
			open = append(open, i)
		case '}':
			if len(open) == 0 {
				continue
			}
			start := open[len(open)-1]
			open = open[:len(open)-1]
			spans = append(spans, span{start: start, end: i})
		}
	}
	slices.SortFunc(spans, func(a, b span) int { return cmp.Compare(a.start, b.start) })
	return spans
}
