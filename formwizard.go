// Package formwizard loads wizard descriptors and runs them. It re-exports
// the common entry points so callers with simple needs only import this
// package; pkg/wizard and pkg/renderers/tui remain available for hosts that
// drive pages themselves.
package formwizard

import (
	"context"

	"github.com/goliatone/go-formwizard/pkg/descriptor"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Wizard aliases the page container.
type Wizard = wizard.Wizard

// Descriptor aliases the wizard description loaded from files.
type Descriptor = descriptor.Wizard

// Load reads a descriptor file and builds a wizard from it.
func Load(path string, options ...wizard.Option) (*Wizard, error) {
	info, err := descriptor.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return wizard.New(info, options...)
}

// LoadBytes builds a wizard from descriptor text. source names the input in
// errors and selects the format by extension.
func LoadBytes(data []byte, source string, options ...wizard.Option) (*Wizard, error) {
	info, err := descriptor.Load(data, source)
	if err != nil {
		return nil, err
	}
	return wizard.New(info, options...)
}

// Run drives w in the terminal and returns the collected values.
func Run(ctx context.Context, w *Wizard, options ...tui.Option) (map[string]any, error) {
	return tui.New(options...).Run(ctx, w)
}

// RunFile loads path and drives it in the terminal.
func RunFile(ctx context.Context, path string, wizardOptions []wizard.Option, options ...tui.Option) (map[string]any, error) {
	w, err := Load(path, wizardOptions...)
	if err != nil {
		return nil, err
	}
	return Run(ctx, w, options...)
}
