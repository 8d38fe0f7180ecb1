package component

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Kind identifies the component variant.
type Kind string

const (
	KindText         Kind = "text"
	KindNumber       Kind = "number"
	KindPassword     Kind = "password"
	KindTextArea     Kind = "textarea"
	KindReadOnlyText Kind = "readonly_text"
	KindDropdown     Kind = "dropdown"
	KindCheckbox     Kind = "checkbox"
)

// TextBearing reports whether components of this kind expose Texter.
func (k Kind) TextBearing() bool {
	switch k {
	case KindText, KindNumber, KindPassword, KindTextArea, KindReadOnlyText:
		return true
	default:
		return false
	}
}

// Component is an input handle bound to a field. Implementations are the
// variants declared in this package; hosts pattern match on Kind.
type Component interface {
	Kind() Kind
	Value() any
	SetValue(value any) error
	Enabled() bool
	SetEnabled(enabled bool)
	// OnChange subscribes to value changes. Disposing the returned handle
	// removes the listener.
	OnChange(fn func(Component)) Disposable
}

// Texter is the capability of text-bearing variants.
type Texter interface {
	Text() string
	SetText(text string)
}

// AsText returns the text capability of c when its variant carries one.
func AsText(c Component) (Texter, bool) {
	if c == nil || !c.Kind().TextBearing() {
		return nil, false
	}
	t, ok := c.(Texter)
	return t, ok
}

// listeners carries the state shared by every variant. The zero value is an
// enabled component without subscribers.
type listeners struct {
	mu       sync.Mutex
	next     int
	entries  map[int]func(Component)
	disabled bool
}

func (l *listeners) subscribe(fn func(Component)) Disposable {
	if fn == nil {
		return DisposableFunc(func() error { return nil })
	}
	l.mu.Lock()
	if l.entries == nil {
		l.entries = make(map[int]func(Component))
	}
	id := l.next
	l.next++
	l.entries[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return DisposableFunc(func() error {
		once.Do(func() {
			l.mu.Lock()
			delete(l.entries, id)
			l.mu.Unlock()
		})
		return nil
	})
}

func (l *listeners) notify(c Component) {
	l.mu.Lock()
	ids := make([]int, 0, len(l.entries))
	for id := range l.entries {
		ids = append(ids, id)
	}
	l.mu.Unlock()

	sort.Ints(ids)
	for _, id := range ids {
		l.mu.Lock()
		fn, ok := l.entries[id]
		l.mu.Unlock()
		if ok {
			fn(c)
		}
	}
}

func (l *listeners) isEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.disabled
}

func (l *listeners) setEnabled(enabled bool) {
	l.mu.Lock()
	l.disabled = !enabled
	l.mu.Unlock()
}

// Text is the text-bearing variant (text, number, password, textarea and
// read-only text).
type Text struct {
	kind        Kind
	text        string
	placeholder string
	listeners
}

// NewText constructs a text-bearing component. Kinds that are not text
// bearing fall back to KindText.
func NewText(kind Kind, text string) *Text {
	if !kind.TextBearing() {
		kind = KindText
	}
	return &Text{kind: kind, text: text}
}

func (t *Text) Kind() Kind { return t.kind }

func (t *Text) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text
}

// SetText replaces the text and notifies listeners when it changed.
func (t *Text) SetText(text string) {
	t.mu.Lock()
	changed := t.text != text
	t.text = text
	t.mu.Unlock()
	if changed {
		t.notify(t)
	}
}

// Value returns the current text. Number components still report a string so
// the model keeps what the user typed.
func (t *Text) Value() any { return t.Text() }

func (t *Text) SetValue(value any) error {
	switch v := value.(type) {
	case nil:
		t.SetText("")
	case string:
		t.SetText(v)
	case float64:
		t.SetText(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		t.SetText(strconv.Itoa(v))
	case int64:
		t.SetText(strconv.FormatInt(v, 10))
	case bool:
		t.SetText(strconv.FormatBool(v))
	default:
		return fmt.Errorf("component: cannot assign %T to %s", value, t.kind)
	}
	return nil
}

// Placeholder returns the hint shown while the text is empty.
func (t *Text) Placeholder() string { return t.placeholder }

// SetPlaceholder sets the hint shown while the text is empty.
func (t *Text) SetPlaceholder(placeholder string) { t.placeholder = placeholder }

func (t *Text) Enabled() bool { return t.isEnabled() }

func (t *Text) SetEnabled(enabled bool) { t.setEnabled(enabled) }

func (t *Text) OnChange(fn func(Component)) Disposable { return t.subscribe(fn) }

// Dropdown selects one value out of a fixed option list.
type Dropdown struct {
	options  []string
	selected string
	listeners
}

// NewDropdown constructs a dropdown. An empty selected value picks nothing.
func NewDropdown(options []string, selected string) *Dropdown {
	return &Dropdown{
		options:  append([]string(nil), options...),
		selected: selected,
	}
}

func (d *Dropdown) Kind() Kind { return KindDropdown }

// Options returns a copy of the option list.
func (d *Dropdown) Options() []string { return append([]string(nil), d.options...) }

// Selected returns the selected option.
func (d *Dropdown) Selected() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selected
}

func (d *Dropdown) Value() any { return d.Selected() }

// SetValue selects an option. Values outside the option list are rejected.
func (d *Dropdown) SetValue(value any) error {
	var next string
	switch v := value.(type) {
	case nil:
		next = ""
	case string:
		next = v
	default:
		next = fmt.Sprint(v)
	}
	if next != "" && indexOf(d.options, next) < 0 {
		return fmt.Errorf("component: %q is not a dropdown option", next)
	}
	d.mu.Lock()
	changed := d.selected != next
	d.selected = next
	d.mu.Unlock()
	if changed {
		d.notify(d)
	}
	return nil
}

func (d *Dropdown) Enabled() bool { return d.isEnabled() }

func (d *Dropdown) SetEnabled(enabled bool) { d.setEnabled(enabled) }

func (d *Dropdown) OnChange(fn func(Component)) Disposable { return d.subscribe(fn) }

// Checkbox holds a boolean.
type Checkbox struct {
	checked bool
	listeners
}

// NewCheckbox constructs a checkbox.
func NewCheckbox(checked bool) *Checkbox {
	return &Checkbox{checked: checked}
}

func (c *Checkbox) Kind() Kind { return KindCheckbox }

// Checked reports the current state.
func (c *Checkbox) Checked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checked
}

func (c *Checkbox) Value() any { return c.Checked() }

// SetValue accepts booleans and their string spellings.
func (c *Checkbox) SetValue(value any) error {
	var next bool
	switch v := value.(type) {
	case nil:
		next = false
	case bool:
		next = v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("component: invalid checkbox value %q", v)
		}
		next = parsed
	default:
		return fmt.Errorf("component: cannot assign %T to %s", value, KindCheckbox)
	}
	c.mu.Lock()
	changed := c.checked != next
	c.checked = next
	c.mu.Unlock()
	if changed {
		c.notify(c)
	}
	return nil
}

func (c *Checkbox) Enabled() bool { return c.isEnabled() }

func (c *Checkbox) SetEnabled(enabled bool) { c.setEnabled(enabled) }

func (c *Checkbox) OnChange(fn func(Component)) Disposable { return c.subscribe(fn) }

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}
