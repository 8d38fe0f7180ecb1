// Package model holds the shared wizard model. Pages copy their component
// values into it when they are left and read it back through $(name)
// placeholders on the summary page.
package model

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

var (
	placeholderPattern = regexp.MustCompile(`\$\(([^()]*)\)`)
	// templatePattern is looser than placeholderPattern: any "$(" closed
	// later on the same line marks text as a template, nested parentheses
	// included.
	templatePattern = regexp.MustCompile(`\$\(.*\)`)
)

// HasPlaceholder reports whether text looks like a template, that is a "$("
// followed by a closing parenthesis on the same line. Only $(name) tokens
// without nested parentheses are substituted by InterpolateVariableValues.
func HasPlaceholder(text string) bool {
	return templatePattern.MatchString(text)
}

// Placeholders returns the variable names referenced by text in order of
// appearance, without duplicates.
func Placeholders(text string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Model is the value store shared by all pages of a wizard.
type Model struct {
	mu     sync.RWMutex
	values map[string]any
}

// New seeds a model with a copy of initial.
func New(initial map[string]any) *Model {
	return &Model{values: cloneValues(initial)}
}

// Values returns a deep copy of the current values.
func (m *Model) Values() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneValues(m.values)
}

// Keys returns the top-level names in sorted order.
func (m *Model) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetValue resolves name. A direct key wins; otherwise name is treated as a
// dotted path into nested maps and slices.
func (m *Model) GetValue(name string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[name]; ok {
		return v, true
	}
	return getPath(m.values, name)
}

// SetValue assigns a single top-level value.
func (m *Model) SetValue(name string, value any) {
	if name == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]any)
	}
	m.values[name] = deepCopy(value)
}

// SetValues merges values into the model. Names that are not part of values
// keep their current value.
func (m *Model) SetValues(values map[string]any) {
	if len(values) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]any, len(values))
	}
	for k, v := range values {
		if k == "" {
			continue
		}
		m.values[k] = deepCopy(v)
	}
}

// InterpolateVariableValues replaces every $(name) token in text with the
// current value of name. Tokens naming unknown variables are left verbatim.
func (m *Model) InterpolateVariableValues(text string) string {
	if !HasPlaceholder(text) {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := strings.TrimSpace(token[2 : len(token)-1])
		value, ok := m.GetValue(name)
		if !ok {
			return token
		}
		return Format(value)
	})
}

// Format renders a model value the way it appears in interpolated text.
func Format(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneValues(typed)
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}

func getPath(root map[string]any, path string) (any, bool) {
	if root == nil || !strings.Contains(path, ".") {
		return nil, false
	}
	current := any(root)
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}
