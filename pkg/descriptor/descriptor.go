// Package descriptor defines the declarative wizard description (wizard,
// pages, fields) and loads it from JSON, YAML or TOML files.
package descriptor

import "strings"

// FieldType enumerates the field kinds a page may declare.
type FieldType string

const (
	FieldText          FieldType = "text"
	FieldNumber        FieldType = "number"
	FieldPassword      FieldType = "password"
	FieldTextArea      FieldType = "textarea"
	FieldReadOnlyText  FieldType = "readonly_text"
	FieldEvaluatedText FieldType = "evaluated_text"
	FieldDropdown      FieldType = "dropdown"
	FieldCheckbox      FieldType = "checkbox"
)

// FieldTypes lists every supported field type in declaration order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldText,
		FieldNumber,
		FieldPassword,
		FieldTextArea,
		FieldReadOnlyText,
		FieldEvaluatedText,
		FieldDropdown,
		FieldCheckbox,
	}
}

// Valid reports whether t is a supported field type. The empty type is
// treated as text.
func (t FieldType) Valid() bool {
	if t == "" {
		return true
	}
	for _, known := range FieldTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Wizard describes a whole wizard.
type Wizard struct {
	Name        string            `json:"name" yaml:"name" toml:"name"`
	Title       string            `json:"title" yaml:"title" toml:"title"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty" toml:"description"`
	Variables   map[string]string `json:"variables,omitempty" yaml:"variables,omitempty" toml:"variables"`
	Pages       []Page            `json:"pages" yaml:"pages" toml:"pages"`

	// Source records where the descriptor was loaded from.
	Source string `json:"-" yaml:"-" toml:"-"`
}

// SummaryPages returns the indices of pages flagged as summary pages.
func (w Wizard) SummaryPages() []int {
	var out []int
	for i, p := range w.Pages {
		if p.IsSummaryPage {
			out = append(out, i)
		}
	}
	return out
}

// VariableNames returns every field variable name declared across pages, in
// declaration order.
func (w Wizard) VariableNames() []string {
	var out []string
	for _, p := range w.Pages {
		for _, f := range p.Fields {
			if name := strings.TrimSpace(f.VariableName); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

// Page describes a single wizard page.
type Page struct {
	Title         string  `json:"title" yaml:"title" toml:"title"`
	Description   string  `json:"description,omitempty" yaml:"description,omitempty" toml:"description"`
	IsSummaryPage bool    `json:"isSummaryPage,omitempty" yaml:"isSummaryPage,omitempty" toml:"isSummaryPage"`
	Fields        []Field `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields"`
}

// Field describes an input bound to a model variable.
type Field struct {
	Label        string    `json:"label" yaml:"label" toml:"label"`
	VariableName string    `json:"variableName" yaml:"variableName" toml:"variableName"`
	Type         FieldType `json:"type,omitempty" yaml:"type,omitempty" toml:"type"`
	// Widget overrides the component kind picked from Type and the
	// other field properties.
	Widget       string   `json:"widget,omitempty" yaml:"widget,omitempty" toml:"widget"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description"`
	Required     bool     `json:"required,omitempty" yaml:"required,omitempty" toml:"required"`
	DefaultValue string   `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty" toml:"defaultValue"`
	Placeholder  string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty" toml:"placeholder"`
	Options      []string `json:"options,omitempty" yaml:"options,omitempty" toml:"options"`

	Min            *float64 `json:"min,omitempty" yaml:"min,omitempty" toml:"min"`
	Max            *float64 `json:"max,omitempty" yaml:"max,omitempty" toml:"max"`
	MinLength      *int     `json:"minLength,omitempty" yaml:"minLength,omitempty" toml:"minLength"`
	MaxLength      *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty" toml:"maxLength"`
	Pattern        string   `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern"`
	PatternMessage string   `json:"patternMessage,omitempty" yaml:"patternMessage,omitempty" toml:"patternMessage"`

	ConfirmationRequired bool   `json:"confirmationRequired,omitempty" yaml:"confirmationRequired,omitempty" toml:"confirmationRequired"`
	ConfirmationLabel    string `json:"confirmationLabel,omitempty" yaml:"confirmationLabel,omitempty" toml:"confirmationLabel"`

	// EnabledWhen is a condition over the page's variables; the field is
	// disabled while it evaluates to false.
	EnabledWhen string `json:"enabledWhen,omitempty" yaml:"enabledWhen,omitempty" toml:"enabledWhen"`
	Validations []Rule `json:"validations,omitempty" yaml:"validations,omitempty" toml:"validations"`
}

// EffectiveType resolves the empty type to text.
func (f Field) EffectiveType() FieldType {
	if f.Type == "" {
		return FieldText
	}
	return f.Type
}

// DisplayLabel returns the label or, when empty, the variable name.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.VariableName
}

// Rule is a cross-field validation. For regex_match Target holds the
// regular expression; for comparisons it names the other variable.
type Rule struct {
	Type        string `json:"type" yaml:"type" toml:"type"`
	Target      string `json:"target" yaml:"target" toml:"target"`
	Description string `json:"description" yaml:"description" toml:"description"`
}
