package wizard

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/pkg/i18n"
	"github.com/goliatone/go-formwizard/pkg/modelview"
)

// Option configures a Wizard.
type Option func(*Wizard)

// WithLogger sets the logger used by the wizard and its pages.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Wizard) {
		w.logger = logger
	}
}

// WithTranslator sets the translator pages use for their messages.
func WithTranslator(t i18n.Translator) Option {
	return func(w *Wizard) {
		w.translator = t
	}
}

// WithLocale selects the message locale.
func WithLocale(locale string) Option {
	return func(w *Wizard) {
		if strings.TrimSpace(locale) != "" {
			w.locale = locale
		}
	}
}

// WithBuilder overrides the model-view builder for every page.
func WithBuilder(builder modelview.Builder) Option {
	return func(w *Wizard) {
		if builder != nil {
			w.builder = builder
		}
	}
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(w *Wizard) {
		if strings.TrimSpace(id) != "" {
			w.id = id
		}
	}
}
