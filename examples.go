package formwizard

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formwizard/pkg/descriptor"
)

//go:embed wizards/*.yaml wizards/*.json wizards/*.toml
var embeddedWizards embed.FS

// ExamplesFS exposes the bundled example descriptors.
func ExamplesFS() fs.FS {
	sub, err := fs.Sub(embeddedWizards, "wizards")
	if err != nil {
		return embeddedWizards
	}
	return sub
}

// Examples loads every bundled descriptor keyed by wizard name.
func Examples() (map[string]descriptor.Wizard, error) {
	return descriptor.LoadFS(ExamplesFS())
}

// Example returns the bundled descriptor called name.
func Example(name string) (descriptor.Wizard, error) {
	all, err := Examples()
	if err != nil {
		return descriptor.Wizard{}, err
	}
	w, ok := all[name]
	if !ok {
		return descriptor.Wizard{}, fmt.Errorf("formwizard: unknown example %q (available: %v)", name, descriptor.Names(all))
	}
	return w, nil
}
