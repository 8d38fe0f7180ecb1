package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/testsupport"
)

type scriptedDriver struct {
	inputs   []string
	selects  []int
	confirms []bool
	infos    []string
}

func (s *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(s.inputs) == 0 {
		return "", testsupport.ErrScripted
	}
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	return v, nil
}

func (s *scriptedDriver) Password(ctx context.Context, cfg tui.InputConfig) (string, error) {
	return s.Input(ctx, cfg)
}

func (s *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	if len(s.confirms) == 0 {
		return false, testsupport.ErrScripted
	}
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v, nil
}

func (s *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	if len(s.selects) == 0 {
		return -1, testsupport.ErrScripted
	}
	v := s.selects[0]
	s.selects = s.selects[1:]
	return v, nil
}

func (s *scriptedDriver) TextArea(ctx context.Context, cfg tui.TextAreaConfig) (string, error) {
	return s.Input(ctx, tui.InputConfig{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help})
}

func (s *scriptedDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

// arcScript answers the arc-controller example: name, location, data and
// logs sizes, then Next on the first page and Done on the summary.
func arcScript() *scriptedDriver {
	return &scriptedDriver{
		inputs:  []string{"arc1", "20", "10"},
		selects: []int{0, 0, 0},
	}
}

func execute(t *testing.T, a *app, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func testApp(driver tui.PromptDriver) *app {
	a := defaultApp()
	a.driver = driver
	a.isTerminal = func(uintptr) bool { return false }
	return a
}

func TestRun_WritesJSONToStdout(t *testing.T) {
	stdout, _, err := execute(t, testApp(arcScript()), "run", "--example", "arc-controller", "--log-level", "error")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode output %q: %v", stdout, err)
	}
	want := map[string]any{
		"connectivityMode":  "indirect",
		"controllerName":    "arc1",
		"location":          "eastus",
		"dataSize":          "20",
		"logsSize":          "10",
		"summaryController": "arc1 in eastus, indirect mode",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_PromptsEveryKind(t *testing.T) {
	driver := &scriptedDriver{
		// server, port, admin user, password twice, notes
		inputs:   []string{"db-01", "5432", "postgres", "secret12", "secret12", "reviewed"},
		selects:  []int{0, 0, 0, 0},
		confirms: []bool{false},
	}
	stdout, _, err := execute(t, testApp(driver), "run", "--example", "postgres")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode output %q: %v", stdout, err)
	}
	if got["notes"] != "reviewed" || got["summaryServer"] != "db-01:5432" || len(got) != 11 {
		t.Fatalf("unexpected values: %v", got)
	}
	if len(driver.inputs) != 0 {
		t.Fatalf("unused answers: %v", driver.inputs)
	}
}

func TestRun_WritesFileAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.txt")
	_, stderr, err := execute(t, testApp(arcScript()), "run", "../../wizards/arc-controller.toml", "--format", "pretty", "--output", path)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "controllerName=arc1\n") {
		t.Fatalf("unexpected output:\n%s", data)
	}
	if !strings.Contains(stderr, "Values written to "+path) {
		t.Fatalf("missing confirmation in stderr:\n%s", stderr)
	}
}

func TestRun_UsesTranslations(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "messages.yaml")
	if err := os.WriteFile(catalog, []byte("de:\n  "+"wizardPage.ValidationError: Es gibt Fehler.\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	driver := &scriptedDriver{
		// Empty name and oversized logs fail together.
		inputs:  []string{"", "20", "30"},
		selects: []int{0, 0},
	}
	_, _, err := execute(t, testApp(driver), "run", "--example", "arc-controller", "--locale", "de", "--translations", catalog)
	if err == nil {
		t.Fatalf("expected the exhausted script to end the run")
	}
	info := strings.Join(driver.infos, "\n")
	if !strings.Contains(info, "Es gibt Fehler.") || !strings.Contains(info, "Logs storage must not exceed data storage.") {
		t.Fatalf("unexpected output:\n%s", info)
	}
}

func TestRun_Errors(t *testing.T) {
	cases := []struct {
		name string
		app  *app
		args []string
		want string
	}{
		{"no source", testApp(arcScript()), []string{"run"}, "descriptor FILE or --example"},
		{"both sources", testApp(arcScript()), []string{"run", "x.yaml", "--example", "postgres"}, "mutually exclusive"},
		{"bad format", testApp(arcScript()), []string{"run", "--example", "postgres", "--format", "xml"}, model.ErrUnknownFormat.Error()},
		{"no terminal", testApp(nil), []string{"run", "--example", "postgres"}, "interactive terminal"},
		{"unknown example", testApp(arcScript()), []string{"run", "--example", "nope"}, "unknown example"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := execute(t, tc.app, tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	stdout, _, err := execute(t, testApp(nil), "check", "../../wizards/postgres.yaml")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	want := "Deploy PostgreSQL: 3 pages\n" +
		"  1. Server (5 fields)\n" +
		"  2. Credentials (2 fields)\n" +
		"  3. Summary (3 fields) [summary]\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("name: bad\npages:\n  - title: P\n    fields:\n      - variableName: a\n        type: dropdwn\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := execute(t, testApp(nil), "check", bad); err == nil || !strings.Contains(err.Error(), `did you mean "dropdown"?`) {
		t.Fatalf("expected suggestion, got %v", err)
	}
}

func TestCheck_WarnsAboutUnknownWidgets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hints.yaml")
	text := "name: hints\npages:\n  - title: P\n    fields:\n      - variableName: size\n        widget: dropdwn\n        options: [a, b]\n"
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	stdout, stderr, err := execute(t, testApp(nil), "check", path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.HasPrefix(stdout, "hints: 1 pages\n") {
		t.Fatalf("outline = %q", stdout)
	}
	want := `warning: page 0 field "size": unknown widget "dropdwn" (did you mean "dropdown"?)`
	if !strings.Contains(stderr, want) {
		t.Fatalf("stderr = %q, want it to contain %q", stderr, want)
	}
}

func TestExamples(t *testing.T) {
	stdout, _, err := execute(t, testApp(nil), "examples")
	if err != nil {
		t.Fatalf("examples: %v", err)
	}
	for _, name := range []string{"arc-controller", "postgres", "sql-container"} {
		if !strings.Contains(stdout, name) {
			t.Fatalf("missing %s in:\n%s", name, stdout)
		}
	}
}
