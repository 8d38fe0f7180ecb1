// Package wizard hosts a sequence of pages over one shared model. It owns the
// navigation gate the active page installs, the page message and the
// resources pages hand over during initialization.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/internal/log"
	"github.com/goliatone/go-formwizard/pkg/component"
	"github.com/goliatone/go-formwizard/pkg/descriptor"
	"github.com/goliatone/go-formwizard/pkg/i18n"
	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/modelview"
	"github.com/goliatone/go-formwizard/pkg/navigation"
	"github.com/goliatone/go-formwizard/pkg/page"
	"github.com/goliatone/go-formwizard/pkg/widgets"
)

var (
	// ErrPageOutOfRange is returned when navigating to a page that does not exist.
	ErrPageOutOfRange = errors.New("wizard: page out of range")
	// ErrNotOpen is returned when navigating before Open succeeded.
	ErrNotOpen = errors.New("wizard: not open")
	// ErrDisposed is returned by Open after Dispose.
	ErrDisposed = errors.New("wizard: disposed")
)

// Wizard is a page container. Its methods are meant to be called from a
// single event loop; only the message is safe to read concurrently.
type Wizard struct {
	info       descriptor.Wizard
	id         string
	model      *model.Model
	pages      []*page.Page
	builder    modelview.Builder
	translator i18n.Translator
	locale     string
	logger     zerolog.Logger

	gate        navigation.Gate
	disposables component.Disposables

	mu       sync.RWMutex
	message  navigation.Message
	current  int
	opened   bool
	disposed bool
}

// New validates info and prepares one page per descriptor page. The model
// starts with the descriptor variables.
func New(info descriptor.Wizard, options ...Option) (*Wizard, error) {
	if err := descriptor.Validate(info); err != nil {
		return nil, fmt.Errorf("wizard: %w", err)
	}

	w := &Wizard{
		info:    info,
		id:      uuid.NewString(),
		builder: modelview.New(),
		locale:  i18n.DefaultLocale,
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	w.logger = w.logger.With().
		Str(log.FieldWizard, info.Name).
		Str(log.FieldSession, w.id).
		Logger()
	for _, warning := range widgets.UnknownHints(info) {
		w.logger.Warn().Str(log.FieldEvent, "widget.unknown").Msg(warning)
	}

	initial := make(map[string]any, len(info.Variables))
	for k, v := range info.Variables {
		initial[k] = v
	}
	w.model = model.New(initial)

	host := &pageHost{w: w}
	w.pages = make([]*page.Page, len(info.Pages))
	for i, p := range info.Pages {
		w.pages[i] = page.New(host, p, i,
			page.WithBuilder(w.builder),
			page.WithTranslator(w.translator),
			page.WithLocale(w.locale),
			page.WithLogger(w.logger),
			page.WithWizardInfo(info),
		)
	}
	return w, nil
}

// Open initializes every page and enters the first one.
func (w *Wizard) Open(ctx context.Context) error {
	if w.disposed {
		return ErrDisposed
	}
	for _, p := range w.pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Initialize(ctx); err != nil {
			return fmt.Errorf("wizard: open: %w", err)
		}
	}

	w.mu.Lock()
	w.current = 0
	w.opened = true
	w.mu.Unlock()

	w.pages[0].OnEnter()
	w.logger.Info().
		Str(log.FieldEvent, "wizard.opened").
		Int(log.FieldDisposables, w.disposables.Len()).
		Msgf("wizard: opened with %d pages", len(w.pages))
	return nil
}

// Navigate asks the active gate whether the current page may move to
// target and performs the move when allowed.
func (w *Wizard) Navigate(target int) (bool, error) {
	if !w.isOpen() {
		return false, ErrNotOpen
	}
	if target < 0 || target >= len(w.pages) {
		return false, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, target, len(w.pages))
	}

	last := w.CurrentIndex()
	if !w.gate.Allow(navigation.PageChangeInfo{LastPage: last, NewPage: target}) {
		return false, nil
	}
	if target == last {
		return true, nil
	}

	w.pages[last].OnLeave()
	w.mu.Lock()
	w.current = target
	w.mu.Unlock()
	w.pages[target].OnEnter()

	w.logger.Debug().
		Str(log.FieldEvent, "wizard.navigated").
		Int(log.FieldLastPage, last).
		Int(log.FieldNewPage, target).
		Msg("wizard: page changed")
	return true, nil
}

// Next moves one page forward.
func (w *Wizard) Next() (bool, error) {
	return w.Navigate(w.CurrentIndex() + 1)
}

// Back moves one page backward.
func (w *Wizard) Back() (bool, error) {
	return w.Navigate(w.CurrentIndex() - 1)
}

// Done asks the gate to move past the last page. When allowed the current
// page leaves and the collected values are returned.
func (w *Wizard) Done() (map[string]any, bool) {
	if !w.isOpen() {
		return nil, false
	}
	last := w.CurrentIndex()
	if !w.gate.Allow(navigation.PageChangeInfo{LastPage: last, NewPage: len(w.pages)}) {
		return nil, false
	}
	w.pages[last].OnLeave()

	values := w.model.Values()
	w.logger.Info().
		Str(log.FieldEvent, "wizard.done").
		Int(log.FieldUpdated, len(values)).
		Msg("wizard: completed")
	return values, true
}

// Dispose releases every resource pages handed over. Only the first call
// disposes anything.
func (w *Wizard) Dispose() error {
	w.mu.Lock()
	w.disposed = true
	w.opened = false
	w.mu.Unlock()

	err := w.disposables.DisposeAll()
	if err != nil {
		w.logger.Error().
			Err(err).
			Str(log.FieldEvent, "wizard.dispose_failed").
			Msg("wizard: dispose")
	}
	return err
}

// Message returns the message set by the active page.
func (w *Wizard) Message() navigation.Message {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.message
}

// Current returns the active page.
func (w *Wizard) Current() *page.Page {
	return w.pages[w.CurrentIndex()]
}

// CurrentIndex returns the active page position.
func (w *Wizard) CurrentIndex() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Page returns the page at index i, or nil when i is out of range.
func (w *Wizard) Page(i int) *page.Page {
	if i < 0 || i >= len(w.pages) {
		return nil
	}
	return w.pages[i]
}

// PageCount returns the number of pages.
func (w *Wizard) PageCount() int { return len(w.pages) }

// Model returns the shared model.
func (w *Wizard) Model() *model.Model { return w.model }

// Info returns the descriptor the wizard was built from.
func (w *Wizard) Info() descriptor.Wizard { return w.info }

// ID returns the session identifier attached to every log entry.
func (w *Wizard) ID() string { return w.id }

func (w *Wizard) isOpen() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.opened
}

// pageHost is the face of the wizard its pages see.
type pageHost struct {
	w *Wizard
}

var _ page.Host = (*pageHost)(nil)

func (h *pageHost) RegisterNavigationValidator(predicate navigation.Predicate) {
	h.w.gate.Set(predicate)
}

func (h *pageHost) SetMessage(message navigation.Message) {
	h.w.mu.Lock()
	h.w.message = message
	h.w.mu.Unlock()
}

func (h *pageHost) Model() page.Model { return h.w.model }

func (h *pageHost) RegisterDisposable(d component.Disposable) {
	h.w.disposables.Add(d)
}
