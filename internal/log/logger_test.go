package log

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestConfigure_WritesStructuredEntries(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "test"})
	t.Cleanup(func() { Configure(Config{Output: &bytes.Buffer{}}) })

	logger := WithComponent("page")
	logger.Debug().Str(FieldEvent, "page.entered").Int(FieldPage, 2).Msg("entered")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log entry: %v (raw %q)", err, buf.String())
	}
	if entry[FieldService] != "test" {
		t.Fatalf("service = %v, want test", entry[FieldService])
	}
	if entry[FieldComponent] != "page" {
		t.Fatalf("component = %v, want page", entry[FieldComponent])
	}
	if entry[FieldEvent] != "page.entered" {
		t.Fatalf("event = %v, want page.entered", entry[FieldEvent])
	}
	if entry[FieldPage] != float64(2) {
		t.Fatalf("page = %v, want 2", entry[FieldPage])
	}
	if !Configured() {
		t.Fatalf("expected Configured to report true")
	}
}

func TestConfigure_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Configure(Config{Output: &bytes.Buffer{}}) })

	logger := Base()
	logger.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info entry to be filtered, got %q", buf.String())
	}
	logger.Warn().Msg("shown")
	if buf.Len() == 0 {
		t.Fatalf("expected warn entry to be written")
	}
}
