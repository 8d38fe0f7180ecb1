package main

import (
	"errors"

	formwizard "github.com/goliatone/go-formwizard"
	"github.com/goliatone/go-formwizard/pkg/descriptor"
)

var errNoSource = errors.New("a descriptor FILE or --example is required")

// loadDescriptor resolves the positional file or the bundled example.
func loadDescriptor(args []string, example string) (descriptor.Wizard, error) {
	switch {
	case example != "" && len(args) > 0:
		return descriptor.Wizard{}, errors.New("FILE and --example are mutually exclusive")
	case example != "":
		return formwizard.Example(example)
	case len(args) == 0:
		return descriptor.Wizard{}, errNoSource
	default:
		return descriptor.LoadFile(args[0])
	}
}
