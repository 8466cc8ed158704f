// Package extract turns raw LLM completions into JSON objects that satisfy
// a Schema.
//
// Extraction runs in two phases. The whole completion is first decoded as
// JSON; if that does not yield an object, the configured locators propose
// candidate spans (by default the first-to-last brace span, then balanced
// brace spans) and the first one that decodes to an object wins. The object
// is then checked against the schema. Extraction is pure and safe for
// concurrent use.
package extract

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

type Extractor struct {
	locators []Locator
}

type Option func(*Extractor)

// WithLocators replaces the recovery locators. With no locators only the
// direct parse is attempted.
func WithLocators(locators ...Locator) Option {
	return func(e *Extractor) {
		e.locators = locators
	}
}

func New(opts ...Option) *Extractor {
	e := &Extractor{locators: []Locator{Greedy, Balanced}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExtractor = New()

// Extract runs the default extractor.
func Extract(raw string, schema Schema) (map[string]any, error) {
	return defaultExtractor.Extract(raw, schema)
}

func (e *Extractor) Extract(raw string, schema Schema) (map[string]any, error) {
	doc, obj, ok := decodeObject(strings.TrimSpace(raw))
	if !ok {
		doc, obj, ok = e.recover(raw)
	}
	if !ok {
		return nil, &Error{Kind: KindParse, Message: "no valid JSON object found"}
	}

	if missing := schema.missing(doc, ""); len(missing) > 0 {
		return nil, &Error{Kind: KindSchema, Message: "missing: " + strings.Join(missing, ", ")}
	}
	return obj, nil
}

func (e *Extractor) recover(raw string) ([]byte, map[string]any, bool) {
	for _, locate := range e.locators {
		for span := range locate(raw) {
			if doc, obj, ok := decodeObject(span); ok {
				return doc, obj, true
			}
		}
	}
	return nil, nil, false
}

func decodeObject(s string) ([]byte, map[string]any, bool) {
	if s == "" || s[0] != '{' {
		return nil, nil, false
	}
	// Reads only as far as the first syntax error.
	dec := json.NewDecoder(strings.NewReader(s))
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, nil, false
	}
	// Duplicate keys resolve to the last value when decoding, so the schema
	// is checked against the re-encoded object rather than the source text.
	doc, err := json.Marshal(obj)
	if err != nil {
		return nil, nil, false
	}
	return doc, obj, true
}
