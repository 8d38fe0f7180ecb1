package page

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/pkg/descriptor"
	"github.com/goliatone/go-formwizard/pkg/i18n"
	"github.com/goliatone/go-formwizard/pkg/modelview"
)

// Option configures a Page.
type Option func(*Page)

// WithBuilder overrides the model-view builder.
func WithBuilder(builder modelview.Builder) Option {
	return func(p *Page) {
		if builder != nil {
			p.builder = builder
		}
	}
}

// WithTranslator sets the translator used for page messages.
func WithTranslator(t i18n.Translator) Option {
	return func(p *Page) {
		p.translator = t
	}
}

// WithLocale selects the locale passed to the translator.
func WithLocale(locale string) Option {
	return func(p *Page) {
		if strings.TrimSpace(locale) != "" {
			p.locale = locale
		}
	}
}

// WithLogger sets the page logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Page) {
		p.logger = logger
	}
}

// WithWizardInfo passes the owning wizard descriptor to the builder.
func WithWizardInfo(w descriptor.Wizard) Option {
	return func(p *Page) {
		p.wizard = w
	}
}
