// Package i18n resolves the user-facing strings of wizard pages.
package i18n

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Message keys.
const (
	KeyValidationError = "wizardPage.ValidationError"
)

// DefaultLocale is the locale of the built-in strings.
const DefaultLocale = "en"

var defaults = map[string]string{
	KeyValidationError: "There are some errors on this page, click 'Show Details' to view the errors.",
}

// Default returns the built-in English string for key.
func Default(key string) string { return defaults[key] }

var (
	ErrMissingTranslator  = errors.New("i18n: translator not configured")
	ErrMissingTranslation = errors.New("i18n: missing translation")
	ErrUnknownLocale      = errors.New("i18n: unknown locale")
)

// Translator resolves a key for a locale.
type Translator interface {
	Translate(locale, key string) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string) (string, error)

// Translate calls fn.
func (fn TranslatorFunc) Translate(locale, key string) (string, error) { return fn(locale, key) }

// MissingHandler decides what to show when a translation is unavailable.
type MissingHandler func(locale, key, fallback string, err error) string

// Translate resolves key through t, falling back to fallback, then to the
// built-in default, then to the key itself.
func Translate(t Translator, locale, key, fallback string) string {
	return TranslateWith(t, locale, key, fallback, nil)
}

// TranslateWith is Translate with a custom missing handler.
func TranslateWith(t Translator, locale, key, fallback string, onMissing MissingHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if strings.TrimSpace(fallback) == "" {
		fallback = Default(key)
	}

	err := ErrMissingTranslator
	if t != nil {
		var result string
		result, err = t.Translate(locale, key)
		if err == nil && strings.TrimSpace(result) != "" {
			return result
		}
		if err == nil {
			err = ErrMissingTranslation
		}
	}

	if onMissing != nil {
		return onMissing(locale, key, fallback, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// Catalog is an in-memory Translator keyed by locale. Lookups negotiate the
// closest available locale, so "en-GB" is served by "en".
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
	tags     []language.Tag
	names    []string
	matcher  language.Matcher
}

// NewCatalog builds a catalog from locale -> key -> text.
func NewCatalog(messages map[string]map[string]string) (*Catalog, error) {
	c := &Catalog{}
	for locale, entries := range messages {
		if err := c.Add(locale, entries); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add merges entries for locale.
func (c *Catalog) Add(locale string, entries map[string]string) error {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return fmt.Errorf("i18n: locale %q: %w", locale, err)
	}
	name := tag.String()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.messages == nil {
		c.messages = make(map[string]map[string]string)
	}
	bucket, ok := c.messages[name]
	if !ok {
		bucket = make(map[string]string, len(entries))
		c.messages[name] = bucket
		c.tags = append(c.tags, tag)
		c.names = append(c.names, name)
		c.matcher = language.NewMatcher(c.tags)
	}
	for k, v := range entries {
		bucket[k] = v
	}
	return nil
}

// Locales returns the catalog locales in sorted order.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := append([]string(nil), c.names...)
	sort.Strings(out)
	return out
}

// Translate implements Translator.
func (c *Catalog) Translate(locale, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.matcher == nil {
		return "", fmt.Errorf("%w %q", ErrUnknownLocale, locale)
	}
	requested, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return "", fmt.Errorf("%w %q", ErrUnknownLocale, locale)
	}
	_, index, confidence := c.matcher.Match(requested)
	if confidence == language.No {
		return "", fmt.Errorf("%w %q", ErrUnknownLocale, locale)
	}
	text, ok := c.messages[c.names[index]][key]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrMissingTranslation, c.names[index], key)
	}
	return text, nil
}

// LoadCatalog reads a YAML file shaped as locale -> key -> text.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("i18n: read %s: %w", path, err)
	}
	return ParseCatalog(data, path)
}

// ParseCatalog parses catalog YAML.
func ParseCatalog(data []byte, source string) (*Catalog, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("i18n: parse %s: %w", source, err)
	}
	return NewCatalog(raw)
}
