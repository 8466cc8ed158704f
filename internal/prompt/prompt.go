// Package prompt holds the tutor's prompt templates and the interpolation
// every feature uses to fill them.
package prompt

import (
	"embed"
	"fmt"
	"maps"
	"slices"
	"strings"
)

//go:embed templates/*.txt
var templates embed.FS

// System is sent as the system message on every structured request.
const System = `You are a patient programming tutor. You explain concepts, point out problems and suggest next steps, but you never hand the learner a finished solution.

Respond ONLY with a single JSON object in exactly the format requested, no other text.`

// Build replaces each {name} in template whose name is a key of vars with
// the corresponding value. Values are inserted verbatim; callers quote them
// if the surrounding text needs it. Unknown placeholders and all other
// braces are left as they are. Names containing braces are ignored.
func Build(template string, vars map[string]string) string {
	if len(vars) == 0 {
		return template
	}
	names := slices.Sorted(maps.Keys(vars))
	pairs := make([]string, 0, len(names)*2)
	for _, name := range names {
		if strings.ContainsAny(name, "{}") {
			continue
		}
		pairs = append(pairs, "{"+name+"}", vars[name])
	}
	if len(pairs) == 0 {
		return template
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Template returns the embedded template called name.
func Template(name string) (string, error) {
	data, err := templates.ReadFile("templates/" + name + ".txt")
	if err != nil {
		return "", fmt.Errorf("loading prompt template %q: %w", name, err)
	}
	return string(data), nil
}

// Render loads the template called name and fills it with vars.
func Render(name string, vars map[string]string) (string, error) {
	tmpl, err := Template(name)
	if err != nil {
		return "", err
	}
	return Build(tmpl, vars), nil
}
