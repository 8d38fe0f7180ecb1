package i18n

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const catalogYAML = `
en:
  wizardPage.ValidationError: "Fix the errors below."
es:
  wizardPage.ValidationError: "Hay errores en esta página."
`

func TestTranslate_FallbackChain(t *testing.T) {
	if got := Translate(nil, "en", KeyValidationError, ""); got != Default(KeyValidationError) {
		t.Fatalf("nil translator should use default, got %q", got)
	}
	if got := Translate(nil, "en", "unknown.key", "fallback"); got != "fallback" {
		t.Fatalf("got %q, want fallback", got)
	}
	if got := Translate(nil, "en", "unknown.key", ""); got != "unknown.key" {
		t.Fatalf("got %q, want key", got)
	}
	if got := Translate(nil, "en", " ", "fb"); got != "fb" {
		t.Fatalf("empty key should return fallback, got %q", got)
	}

	failing := TranslatorFunc(func(string, string) (string, error) { return "", errors.New("boom") })
	if got := Translate(failing, "en", KeyValidationError, ""); got != Default(KeyValidationError) {
		t.Fatalf("failing translator should use default, got %q", got)
	}
}

func TestTranslateWith_MissingHandler(t *testing.T) {
	var gotErr error
	out := TranslateWith(nil, "fr", "k", "fb", func(locale, key, fallback string, err error) string {
		gotErr = err
		return "[" + locale + ":" + key + ":" + fallback + "]"
	})
	if out != "[fr:k:fb]" {
		t.Fatalf("handler output = %q", out)
	}
	if !errors.Is(gotErr, ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", gotErr)
	}
}

func TestCatalog_NegotiatesLocale(t *testing.T) {
	cat, err := ParseCatalog([]byte(catalogYAML), "inline")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"en", "es"}, cat.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}

	cases := []struct {
		locale string
		want   string
	}{
		{locale: "en", want: "Fix the errors below."},
		{locale: "en-GB", want: "Fix the errors below."},
		{locale: "es-MX", want: "Hay errores en esta página."},
	}
	for _, tc := range cases {
		t.Run(tc.locale, func(t *testing.T) {
			if got := Translate(cat, tc.locale, KeyValidationError, ""); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}

	if _, err := cat.Translate("en", "missing"); !errors.Is(err, ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
	if _, err := cat.Translate("not a locale!", KeyValidationError); !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale, got %v", err)
	}
}

func TestCatalog_EmptyAndInvalid(t *testing.T) {
	var empty Catalog
	if _, err := empty.Translate("en", KeyValidationError); !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale, got %v", err)
	}
	if _, err := NewCatalog(map[string]map[string]string{"???": {}}); err == nil {
		t.Fatalf("expected invalid locale error")
	}
	if _, err := ParseCatalog([]byte("en: ["), "broken"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	if err := os.WriteFile(path, []byte(catalogYAML), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := Translate(cat, "es", KeyValidationError, ""); got != "Hay errores en esta página." {
		t.Fatalf("got %q", got)
	}
}
