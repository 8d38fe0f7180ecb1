package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Theme captures the prefixes and styles used when printing page text.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	WarnPrefix   string
	ErrorPrefix  string

	Title   lipgloss.Style
	Subtle  lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// DefaultTheme is the colored theme used on terminals.
func DefaultTheme() Theme {
	return Theme{
		PromptPrefix: "? ",
		InfoPrefix:   "i ",
		WarnPrefix:   "! ",
		ErrorPrefix:  "x ",
		Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Subtle:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Warning:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// PlainTheme prints text without styling, for pipes and logs.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		InfoPrefix:  "i ",
		WarnPrefix:  "! ",
		ErrorPrefix: "x ",
		Title:       plain,
		Subtle:      plain,
		Warning:     plain,
		Error:       plain,
	}
}

// Option configures the Runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies message prefixes and styles.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

// WithLogger sets the runner logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithOutput redirects informational output of the default survey driver.
func WithOutput(out io.Writer) Option {
	return func(r *Runner) {
		r.out = out
	}
}
