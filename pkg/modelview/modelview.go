// Package modelview turns a page descriptor into bound components, the
// validators guarding them and the resources the page hands to its wizard.
package modelview

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/internal/log"
	"github.com/goliatone/go-formwizard/pkg/component"
	"github.com/goliatone/go-formwizard/pkg/condition"
	"github.com/goliatone/go-formwizard/pkg/descriptor"
	"github.com/goliatone/go-formwizard/pkg/validation"
	"github.com/goliatone/go-formwizard/pkg/widgets"
)

// Request describes the page to build.
type Request struct {
	Wizard    descriptor.Wizard
	Page      descriptor.Page
	PageIndex int
	// Values seeds components whose variable already has a model value.
	Values map[string]any
}

// Element is one displayed input, in page order. Name is empty for inputs
// that are not bound to the model, such as password confirmations.
type Element struct {
	Name        string
	Label       string
	Description string
	Required    bool
	Component   component.Component
}

// Bound reports whether the element writes to the model.
func (e Element) Bound() bool { return e.Name != "" }

// Result is the completed build record.
type Result struct {
	Elements    []Element
	Bindings    []component.Binding
	Validators  []validation.Validator
	Disposables []component.Disposable
}

// Builder builds a page.
type Builder interface {
	Build(ctx context.Context, req Request) (Result, error)
}

// BuilderFunc adapts a function into a Builder.
type BuilderFunc func(ctx context.Context, req Request) (Result, error)

// Build calls fn.
func (fn BuilderFunc) Build(ctx context.Context, req Request) (Result, error) {
	return fn(ctx, req)
}

// Option configures the default builder.
type Option func(*DefaultBuilder)

// WithLogger sets the builder logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *DefaultBuilder) {
		b.logger = logger
	}
}

// WithKindResolver replaces the widget registry used to pick component kinds.
func WithKindResolver(reg *widgets.Registry) Option {
	return func(b *DefaultBuilder) {
		if reg != nil {
			b.kinds = reg
		}
	}
}

// WithConfirmationMessage overrides the message reported when a password
// confirmation differs.
func WithConfirmationMessage(message string) Option {
	return func(b *DefaultBuilder) {
		if strings.TrimSpace(message) != "" {
			b.confirmationMessage = message
		}
	}
}

// DefaultBuilder builds pages from descriptor fields.
type DefaultBuilder struct {
	logger              zerolog.Logger
	kinds               *widgets.Registry
	confirmationMessage string
}

// New constructs the default builder.
func New(options ...Option) *DefaultBuilder {
	b := &DefaultBuilder{
		logger:              zerolog.Nop(),
		kinds:               widgets.NewRegistry(),
		confirmationMessage: "Passwords do not match.",
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

var _ Builder = (*DefaultBuilder)(nil)

// Build creates one component per field, attaches validators in field order
// and wires enabledWhen conditions through change subscriptions.
func (b *DefaultBuilder) Build(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var res Result
	byName := make(map[string]component.Component, len(req.Page.Fields))
	primary := make([]component.Component, len(req.Page.Fields))
	confirmations := make([]component.Component, len(req.Page.Fields))

	for i, field := range req.Page.Fields {
		c, err := b.newComponent(field, req.Values)
		if err != nil {
			return Result{}, fmt.Errorf("modelview: page %d field %q: %w", req.PageIndex, field.VariableName, err)
		}
		primary[i] = c
		name := strings.TrimSpace(field.VariableName)
		res.Elements = append(res.Elements, Element{
			Name:        name,
			Label:       field.DisplayLabel(),
			Description: field.Description,
			Required:    field.Required,
			Component:   c,
		})
		if name != "" {
			res.Bindings = append(res.Bindings, component.Binding{Name: name, Component: c})
			byName[name] = c
		}

		if field.ConfirmationRequired {
			confirm := component.NewText(component.KindPassword, "")
			confirmations[i] = confirm
			label := field.ConfirmationLabel
			if strings.TrimSpace(label) == "" {
				label = "Confirm " + field.DisplayLabel()
			}
			res.Elements = append(res.Elements, Element{
				Label:     label,
				Required:  field.Required,
				Component: confirm,
			})
		}
	}

	for i, field := range req.Page.Fields {
		validators, err := b.validators(field, primary[i], confirmations[i], byName)
		if err != nil {
			return Result{}, fmt.Errorf("modelview: page %d field %q: %w", req.PageIndex, field.VariableName, err)
		}
		res.Validators = append(res.Validators, validators...)
	}

	for i, field := range req.Page.Fields {
		subs, err := bindCondition(field, primary[i], confirmations[i], byName)
		if err != nil {
			return Result{}, fmt.Errorf("modelview: page %d field %q: %w", req.PageIndex, field.VariableName, err)
		}
		res.Disposables = append(res.Disposables, subs...)
	}

	b.logger.Debug().
		Str(log.FieldEvent, "page.built").
		Int(log.FieldPage, req.PageIndex).
		Int(log.FieldBindings, len(res.Bindings)).
		Int(log.FieldValidators, len(res.Validators)).
		Int(log.FieldDisposables, len(res.Disposables)).
		Msg("modelview: page built")

	return res, nil
}

func (b *DefaultBuilder) newComponent(field descriptor.Field, values map[string]any) (component.Component, error) {
	kind, _ := b.kinds.Resolve(field)
	initial, seeded := values[strings.TrimSpace(field.VariableName)]
	// Read-only templates always start from their raw text.
	if !seeded || kind == component.KindReadOnlyText {
		initial = field.DefaultValue
	}

	switch kind {
	case component.KindDropdown:
		d := component.NewDropdown(field.Options, "")
		if err := d.SetValue(initial); err != nil {
			return nil, err
		}
		return d, nil
	case component.KindCheckbox:
		c := component.NewCheckbox(false)
		if s, ok := initial.(string); ok && strings.TrimSpace(s) == "" {
			return c, nil
		}
		if err := c.SetValue(initial); err != nil {
			return nil, err
		}
		return c, nil
	default:
		t := component.NewText(kind, "")
		if err := t.SetValue(initial); err != nil {
			return nil, err
		}
		t.SetPlaceholder(field.Placeholder)
		return t, nil
	}
}

func (b *DefaultBuilder) validators(field descriptor.Field, c, confirm component.Component, byName map[string]component.Component) ([]validation.Validator, error) {
	if c.Kind() == component.KindReadOnlyText {
		return nil, nil
	}
	label := field.DisplayLabel()
	var out []validation.Validator

	if field.Required {
		out = append(out, validation.Required(label, c))
	}

	constraints := constraintsFor(field, c.Kind())
	if !constraints.IsZero() {
		v, err := validation.Schema(label, c, constraints)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	if confirm != nil {
		out = append(out, validation.Confirm(c, confirm, b.confirmationMessage))
	}

	for _, rule := range field.Validations {
		target := byName[strings.TrimSpace(rule.Target)]
		v, err := validation.Compare(rule.Type, c, rule.Target, target, rule.Description)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func constraintsFor(field descriptor.Field, kind component.Kind) validation.Constraints {
	switch kind {
	case component.KindDropdown, component.KindCheckbox:
		return validation.Constraints{}
	case component.KindNumber:
		return validation.Constraints{Numeric: true, Min: field.Min, Max: field.Max}
	default:
		return validation.Constraints{
			Pattern:        field.Pattern,
			PatternMessage: field.PatternMessage,
			MinLength:      field.MinLength,
			MaxLength:      field.MaxLength,
		}
	}
}

// bindCondition applies the field's enabledWhen rule now and again whenever
// one of the referenced components changes. The subscriptions are returned
// so their lifetime follows the wizard.
func bindCondition(field descriptor.Field, c, confirm component.Component, byName map[string]component.Component) ([]component.Disposable, error) {
	expr, err := condition.Parse(field.EnabledWhen)
	if err != nil {
		return nil, err
	}
	if expr.IsAlways() {
		return nil, nil
	}

	lookup := func(name string) (any, bool) {
		dep, ok := byName[name]
		if !ok {
			return nil, false
		}
		return dep.Value(), true
	}
	apply := func(component.Component) {
		enabled := expr.Eval(lookup)
		c.SetEnabled(enabled)
		if confirm != nil {
			confirm.SetEnabled(enabled)
		}
	}
	apply(nil)

	var subs []component.Disposable
	for _, name := range expr.Identifiers() {
		dep, ok := byName[name]
		if !ok {
			continue
		}
		subs = append(subs, dep.OnChange(apply))
	}
	return subs, nil
}
