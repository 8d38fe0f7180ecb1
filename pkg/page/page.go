// Package page implements the lifecycle of a single wizard page: binding
// components to names, gating forward navigation on validation and
// re-deriving summary text from model values.
package page

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/internal/log"
	"github.com/goliatone/go-formwizard/pkg/component"
	"github.com/goliatone/go-formwizard/pkg/descriptor"
	"github.com/goliatone/go-formwizard/pkg/i18n"
	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/modelview"
	"github.com/goliatone/go-formwizard/pkg/navigation"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

// State is the page lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StateActive
	StateInactive
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	default:
		return "uninitialized"
	}
}

// Model is the part of the shared wizard model a page uses.
type Model interface {
	InterpolateVariableValues(text string) string
	SetValues(values map[string]any)
}

// Host is the wizard container a page belongs to.
type Host interface {
	// RegisterNavigationValidator replaces the active navigation gate.
	RegisterNavigationValidator(predicate navigation.Predicate)
	SetMessage(message navigation.Message)
	Model() Model
	// RegisterDisposable transfers ownership of a resource to the host.
	RegisterDisposable(d component.Disposable)
}

type valuer interface {
	Values() map[string]any
}

type snapshotEntry struct {
	name     string
	original string
}

// Page drives one wizard page. All methods must be called from the host's
// event loop.
type Page struct {
	host       Host
	info       descriptor.Page
	wizard     descriptor.Wizard
	index      int
	builder    modelview.Builder
	translator i18n.Translator
	locale     string
	logger     zerolog.Logger

	state      State
	registry   *component.Registry
	validators validation.Set
	elements   []modelview.Element
	snapshot   []snapshotEntry
	captured   map[string]struct{}
}

// New constructs a page for info at position index. host must not be nil.
func New(host Host, info descriptor.Page, index int, options ...Option) *Page {
	p := &Page{
		host:     host,
		info:     info,
		index:    index,
		builder:  modelview.New(),
		locale:   i18n.DefaultLocale,
		logger:   zerolog.Nop(),
		registry: component.NewRegistry(),
		captured: make(map[string]struct{}),
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	p.logger = p.logger.With().
		Int(log.FieldPage, index).
		Str(log.FieldPageTitle, info.Title).
		Logger()
	return p
}

// Initialize builds the page's components and validators. It is meant to run
// once; a second call registers everything again.
func (p *Page) Initialize(ctx context.Context) error {
	if p.state != StateUninitialized {
		p.logger.Warn().
			Str(log.FieldEvent, "page.reinitialized").
			Str(log.FieldOldState, p.state.String()).
			Msg("page: initialize called more than once; bindings and validators are registered again")
	}

	req := modelview.Request{
		Wizard:    p.wizard,
		Page:      p.info,
		PageIndex: p.index,
	}
	if v, ok := p.host.Model().(valuer); ok {
		req.Values = v.Values()
	}

	res, err := p.builder.Build(ctx, req)
	if err != nil {
		return fmt.Errorf("page: initialize page %d: %w", p.index, err)
	}

	for _, b := range res.Bindings {
		p.bind(b)
	}
	p.validators.Add(res.Validators...)
	for _, d := range res.Disposables {
		p.host.RegisterDisposable(d)
	}
	p.elements = append(p.elements, res.Elements...)

	p.transition(StateInitialized)
	p.logger.Debug().
		Str(log.FieldEvent, "page.initialized").
		Int(log.FieldBindings, len(res.Bindings)).
		Int(log.FieldValidators, len(res.Validators)).
		Int(log.FieldDisposables, len(res.Disposables)).
		Msg("page: initialized")
	return nil
}

func (p *Page) bind(b component.Binding) {
	if b.Name == "" || b.Component == nil {
		return
	}
	p.registry.Register(b.Name, b.Component)
	if !p.info.IsSummaryPage {
		return
	}
	if _, seen := p.captured[b.Name]; seen {
		return
	}
	if txt, ok := component.AsText(b.Component); ok {
		p.captured[b.Name] = struct{}{}
		p.snapshot = append(p.snapshot, snapshotEntry{name: b.Name, original: txt.Text()})
	}
}

// OnEnter refreshes summary text and installs the validating gate.
func (p *Page) OnEnter() {
	if p.info.IsSummaryPage {
		p.interpolate()
	}
	p.host.RegisterNavigationValidator(p.validate)
	p.transition(StateActive)
}

// OnLeave copies component values into the model and installs a gate that
// allows every move, replacing the one OnEnter installed.
func (p *Page) OnLeave() {
	values := p.registry.Values()
	p.host.Model().SetValues(values)
	p.host.RegisterNavigationValidator(navigation.AllowAll)
	p.transition(StateInactive)
	p.logger.Debug().
		Str(log.FieldEvent, "page.left").
		Int(log.FieldUpdated, len(values)).
		Msg("page: values copied to model")
}

func (p *Page) validate(info navigation.PageChangeInfo) bool {
	p.host.SetMessage(navigation.Message{})
	if !info.Forward() {
		return true
	}

	failures := p.validators.Evaluate()
	switch len(failures) {
	case 0:
		return true
	case 1:
		p.host.SetMessage(navigation.Message{
			Text:  failures[0],
			Level: navigation.LevelError,
		})
	default:
		p.host.SetMessage(navigation.Message{
			Text:        i18n.Translate(p.translator, p.locale, i18n.KeyValidationError, ""),
			Description: strings.Join(failures, "\n"),
			Level:       navigation.LevelError,
		})
	}

	p.logger.Info().
		Str(log.FieldEvent, "navigation.blocked").
		Int(log.FieldLastPage, info.LastPage).
		Int(log.FieldNewPage, info.NewPage).
		Int(log.FieldFailures, len(failures)).
		Msg("page: validation blocked navigation")
	return false
}

// interpolate re-derives every captured template from the model. Templates
// are always read from the snapshot, so repeated calls give the same text
// for the same model values.
func (p *Page) interpolate() {
	m := p.host.Model()
	updated := 0
	for _, entry := range p.snapshot {
		txt, ok := p.registry.Text(entry.name)
		if !ok {
			continue
		}
		if txt.Text() == "" || !model.HasPlaceholder(entry.original) {
			continue
		}
		txt.SetText(m.InterpolateVariableValues(entry.original))
		updated++
	}
	p.logger.Debug().
		Str(log.FieldEvent, "summary.interpolated").
		Int(log.FieldUpdated, updated).
		Msg("page: summary refreshed")
}

func (p *Page) transition(next State) {
	if p.state == next {
		return
	}
	p.logger.Trace().
		Str(log.FieldOldState, p.state.String()).
		Str(log.FieldNewState, next.String()).
		Msg("page: state change")
	p.state = next
}

// Title returns the page title.
func (p *Page) Title() string { return p.info.Title }

// Description returns the page description.
func (p *Page) Description() string { return p.info.Description }

// Index returns the page position in its wizard.
func (p *Page) Index() int { return p.index }

// IsSummaryPage reports whether the page interpolates its text on enter.
func (p *Page) IsSummaryPage() bool { return p.info.IsSummaryPage }

// State returns the lifecycle state.
func (p *Page) State() State { return p.state }

// Elements returns the displayed inputs in page order.
func (p *Page) Elements() []modelview.Element {
	return append([]modelview.Element(nil), p.elements...)
}

// Registry exposes the bound components.
func (p *Page) Registry() *component.Registry { return p.registry }

// ValidatorCount reports how many validators guard the page.
func (p *Page) ValidatorCount() int { return p.validators.Len() }
