package testsupport

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/component"
	"github.com/goliatone/go-formwizard/pkg/descriptor"
	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/navigation"
	"github.com/goliatone/go-formwizard/pkg/page"
)

// LoadWizard loads a descriptor fixture, failing the test on error.
func LoadWizard(t *testing.T, path string) descriptor.Wizard {
	t.Helper()

	w, err := descriptor.LoadFile(path)
	if err != nil {
		t.Fatalf("load wizard: %v", err)
	}
	return w
}

// MustParseWizard parses inline descriptor text, failing the test on error.
// source only selects the format by extension.
func MustParseWizard(t *testing.T, source, text string) descriptor.Wizard {
	t.Helper()

	w, err := descriptor.Load([]byte(text), source)
	if err != nil {
		t.Fatalf("parse wizard: %v", err)
	}
	return w
}

// Diff fails the test when want and got differ.
func Diff(t *testing.T, label string, want, got any, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", label, diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// Host is an in-memory page host that records what pages ask of it.
type Host struct {
	mu            sync.Mutex
	gate          navigation.Gate
	model         *model.Model
	message       navigation.Message
	messages      []navigation.Message
	registrations int
	disposables   component.Disposables
}

var _ page.Host = (*Host)(nil)

// NewHost creates a host whose model starts with initial.
func NewHost(initial map[string]any) *Host {
	return &Host{model: model.New(initial)}
}

// RegisterNavigationValidator implements page.Host.
func (h *Host) RegisterNavigationValidator(predicate navigation.Predicate) {
	h.mu.Lock()
	h.registrations++
	h.mu.Unlock()
	h.gate.Set(predicate)
}

// SetMessage implements page.Host.
func (h *Host) SetMessage(message navigation.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.message = message
	h.messages = append(h.messages, message)
}

// Model implements page.Host.
func (h *Host) Model() page.Model {
	return h.model
}

// RegisterDisposable implements page.Host.
func (h *Host) RegisterDisposable(d component.Disposable) {
	h.disposables.Add(d)
}

// Navigate invokes the installed gate for a move from last to next.
func (h *Host) Navigate(last, next int) bool {
	return h.gate.Allow(navigation.PageChangeInfo{LastPage: last, NewPage: next})
}

// Message returns the current page message.
func (h *Host) Message() navigation.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.message
}

// Messages returns every message set so far, in order.
func (h *Host) Messages() []navigation.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]navigation.Message(nil), h.messages...)
}

// Registrations counts gate installations.
func (h *Host) Registrations() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.registrations
}

// Values returns a copy of the model values.
func (h *Host) Values() map[string]any {
	return h.model.Values()
}

// Disposables reports how many resources were handed over.
func (h *Host) Disposables() int {
	return h.disposables.Len()
}

// Dispose releases every resource handed over.
func (h *Host) Dispose() error {
	return h.disposables.DisposeAll()
}

// ErrScripted is returned by scripted collaborators that ran out of answers.
var ErrScripted = errors.New("testsupport: script exhausted")
