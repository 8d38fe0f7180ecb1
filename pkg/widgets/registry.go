// Package widgets picks the component kind used to render a descriptor field.
package widgets

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/goliatone/go-formwizard/pkg/component"
	"github.com/goliatone/go-formwizard/pkg/descriptor"
)

// Widget hint spellings accepted in a field's widget property, mapped to the
// kind they select.
var hints = map[string]component.Kind{
	"text":           component.KindText,
	"input":          component.KindText,
	"number":         component.KindNumber,
	"password":       component.KindPassword,
	"secret":         component.KindPassword,
	"textarea":       component.KindTextArea,
	"multiline":      component.KindTextArea,
	"readonly":       component.KindReadOnlyText,
	"readonly_text":  component.KindReadOnlyText,
	"label":          component.KindReadOnlyText,
	"select":         component.KindDropdown,
	"dropdown":       component.KindDropdown,
	"checkbox":       component.KindCheckbox,
	"toggle":         component.KindCheckbox,
	"evaluated_text": component.KindReadOnlyText,
}

// Matcher decides whether a kind applies to the supplied field.
type Matcher func(field descriptor.Field) bool

type rule struct {
	kind     component.Kind
	priority int
	match    Matcher
	order    int
}

// Registry resolves component kinds for fields from explicit widget hints or
// registered matchers. Higher priority wins; ties fall back to registration
// order. Fields nothing matches resolve to text.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher for kind. Higher priority values take precedence.
func (r *Registry) Register(kind component.Kind, priority int, matcher Matcher) {
	if r == nil || matcher == nil || kind == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{
		kind:     kind,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the kind for field. The boolean reports whether the kind
// came from a hint or matcher rather than the text default.
func (r *Registry) Resolve(field descriptor.Field) (component.Kind, bool) {
	if kind, ok := ExplicitKind(field); ok {
		return kind, true
	}
	if r == nil {
		return component.KindText, false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.kind, true
		}
	}
	return component.KindText, false
}

// ExplicitKind resolves the field's widget hint, if any.
func ExplicitKind(field descriptor.Field) (component.Kind, bool) {
	hint := strings.ToLower(strings.TrimSpace(field.Widget))
	if hint == "" {
		return "", false
	}
	kind, ok := hints[hint]
	return kind, ok
}

// Hints returns the accepted widget hint spellings in sorted order.
func Hints() []string {
	out := make([]string, 0, len(hints))
	for h := range hints {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// UnknownHints describes every field of w whose widget hint is not an
// accepted spelling. Such fields still render, falling back to their type.
func UnknownHints(w descriptor.Wizard) []string {
	var out []string
	accepted := Hints()
	for i, p := range w.Pages {
		for _, f := range p.Fields {
			if f.Widget == "" {
				continue
			}
			if _, ok := ExplicitKind(f); ok {
				continue
			}
			msg := fmt.Sprintf("page %d field %q: unknown widget %q", i, f.VariableName, f.Widget)
			if matches := fuzzy.Find(strings.ToLower(strings.TrimSpace(f.Widget)), accepted); len(matches) > 0 {
				msg += fmt.Sprintf(" (did you mean %q?)", matches[0].Str)
			}
			out = append(out, msg)
		}
	}
	return out
}

func (r *Registry) registerBuiltins() {
	byType := func(types ...descriptor.FieldType) Matcher {
		return func(field descriptor.Field) bool {
			t := field.EffectiveType()
			for _, want := range types {
				if t == want {
					return true
				}
			}
			return false
		}
	}

	r.Register(component.KindReadOnlyText, 100, byType(descriptor.FieldReadOnlyText, descriptor.FieldEvaluatedText))
	r.Register(component.KindCheckbox, 90, byType(descriptor.FieldCheckbox))
	r.Register(component.KindDropdown, 80, func(field descriptor.Field) bool {
		return field.EffectiveType() == descriptor.FieldDropdown || (field.Type == "" && len(field.Options) > 0)
	})
	r.Register(component.KindPassword, 70, byType(descriptor.FieldPassword))
	r.Register(component.KindNumber, 60, byType(descriptor.FieldNumber))
	r.Register(component.KindTextArea, 50, byType(descriptor.FieldTextArea))
	r.Register(component.KindText, 0, byType(descriptor.FieldText))
}
