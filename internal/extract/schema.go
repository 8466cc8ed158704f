package extract

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// Field names double as gjson paths, so they are restricted to characters
// that carry no path syntax.
var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Schema lists the keys a parsed object must contain. Nested schemas apply
// to the object stored under a required key.
type Schema struct {
	required []string
	nested   map[string]Schema
}

// Fields returns a schema requiring the given top-level keys, in order.
// It panics on names that are not plain identifiers.
func Fields(names ...string) Schema {
	s := Schema{}
	for _, name := range names {
		s = s.require(name)
	}
	return s
}

// With returns a copy of s that requires name and validates its value
// against child.
func (s Schema) With(name string, child Schema) Schema {
	out := s.require(name)
	nested := make(map[string]Schema, len(s.nested)+1)
	for k, v := range s.nested {
		nested[k] = v
	}
	nested[name] = child
	out.nested = nested
	return out
}

func (s Schema) require(name string) Schema {
	if !fieldName.MatchString(name) {
		panic(fmt.Sprintf("extract: invalid field name %q", name))
	}
	if slices.Contains(s.required, name) {
		return s
	}
	return Schema{
		required: append(slices.Clone(s.required), name),
		nested:   s.nested,
	}
}

func (s Schema) Required() []string {
	return slices.Clone(s.required)
}

func (s Schema) Nested(name string) (Schema, bool) {
	child, ok := s.nested[name]
	return child, ok
}

// missing returns the dotted paths of required keys absent from doc, in
// schema order. A nested schema whose parent is not an object reports all
// of its direct keys as missing.
func (s Schema) missing(doc []byte, prefix string) []string {
	var out []string
	for _, name := range s.required {
		path := join(prefix, name)
		res := gjson.GetBytes(doc, path)
		if !res.Exists() {
			out = append(out, path)
			continue
		}
		child, ok := s.nested[name]
		if !ok {
			continue
		}
		if !res.IsObject() {
			out = append(out, lo.Map(child.required, func(n string, _ int) string {
				return join(path, n)
			})...)
			continue
		}
		out = append(out, child.missing(doc, path)...)
	}
	return out
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
