package component

import (
	"errors"
	"sync"
)

// Disposable releases a resource created while building a page, such as a
// change subscription. Ownership moves to whoever registers it; the wizard
// disposes everything it collected when it is torn down.
type Disposable interface {
	Dispose() error
}

// DisposableFunc adapts a function into a Disposable.
type DisposableFunc func() error

// Dispose calls the underlying function.
func (fn DisposableFunc) Dispose() error {
	if fn == nil {
		return nil
	}
	return fn()
}

// Disposables is an append-only disposal registry. DisposeAll releases the
// collected resources in registration order exactly once.
type Disposables struct {
	mu    sync.Mutex
	items []Disposable
}

// Add registers resources. Nil entries are ignored.
func (d *Disposables) Add(items ...Disposable) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, item := range items {
		if item != nil {
			d.items = append(d.items, item)
		}
	}
}

// Len reports how many resources are pending disposal.
func (d *Disposables) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// DisposeAll disposes every registered resource and empties the registry.
// Errors are joined; one failing resource does not stop the others.
func (d *Disposables) DisposeAll() error {
	d.mu.Lock()
	items := d.items
	d.items = nil
	d.mu.Unlock()

	var errs []error
	for _, item := range items {
		if err := item.Dispose(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
