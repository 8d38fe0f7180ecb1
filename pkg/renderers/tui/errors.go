package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (Ctrl+C or the Cancel action).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoWizard is returned when Run is called without a wizard.
	ErrNoWizard = errors.New("tui: wizard is required")
)
