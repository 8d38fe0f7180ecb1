package modelview

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/component"
	"github.com/goliatone/go-formwizard/pkg/descriptor"
	"github.com/goliatone/go-formwizard/pkg/validation"
	"github.com/goliatone/go-formwizard/pkg/widgets"
)

func floatPtr(v float64) *float64 { return &v }

func failures(validators []validation.Validator) []string {
	var set validation.Set
	set.Add(validators...)
	return set.Evaluate()
}

func TestBuild_BindsEveryField(t *testing.T) {
	page := descriptor.Page{
		Title: "Server",
		Fields: []descriptor.Field{
			{Label: "Server", VariableName: "server", DefaultValue: "db01"},
			{Label: "Port", VariableName: "port", Type: descriptor.FieldNumber, DefaultValue: "5432"},
			{Label: "Size", VariableName: "size", Type: descriptor.FieldDropdown, Options: []string{"s", "m"}, DefaultValue: "m"},
			{Label: "TLS", VariableName: "tls", Type: descriptor.FieldCheckbox, DefaultValue: "true"},
			{Label: "Summary", VariableName: "summary", Type: descriptor.FieldEvaluatedText, DefaultValue: "$(server)"},
		},
	}
	res, err := New().Build(context.Background(), Request{Page: page})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	names := make([]string, 0, len(res.Bindings))
	values := make(map[string]any, len(res.Bindings))
	kinds := make(map[string]component.Kind, len(res.Bindings))
	for _, b := range res.Bindings {
		names = append(names, b.Name)
		values[b.Name] = b.Component.Value()
		kinds[b.Name] = b.Component.Kind()
	}

	if diff := cmp.Diff([]string{"server", "port", "size", "tls", "summary"}, names); diff != "" {
		t.Fatalf("bindings mismatch (-want +got):\n%s", diff)
	}
	wantValues := map[string]any{"server": "db01", "port": "5432", "size": "m", "tls": true, "summary": "$(server)"}
	if diff := cmp.Diff(wantValues, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	wantKinds := map[string]component.Kind{
		"server":  component.KindText,
		"port":    component.KindNumber,
		"size":    component.KindDropdown,
		"tls":     component.KindCheckbox,
		"summary": component.KindReadOnlyText,
	}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if len(res.Elements) != 5 || len(res.Disposables) != 0 {
		t.Fatalf("unexpected elements=%d disposables=%d", len(res.Elements), len(res.Disposables))
	}
}

func TestBuild_SeedsFromValuesExceptTemplates(t *testing.T) {
	page := descriptor.Page{Fields: []descriptor.Field{
		{VariableName: "namespace", DefaultValue: "default"},
		{VariableName: "summary", Type: descriptor.FieldReadOnlyText, DefaultValue: "$(namespace)"},
	}}
	res, err := New().Build(context.Background(), Request{
		Page:   page,
		Values: map[string]any{"namespace": "prod", "summary": "already interpolated"},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := res.Bindings[0].Component.Value(); got != "prod" {
		t.Fatalf("namespace = %v, want prod", got)
	}
	if got := res.Bindings[1].Component.Value(); got != "$(namespace)" {
		t.Fatalf("summary = %v, want raw template", got)
	}
}

func TestBuild_ValidatorsInFieldOrder(t *testing.T) {
	page := descriptor.Page{Fields: []descriptor.Field{
		{Label: "Name", VariableName: "name", Required: true},
		{Label: "Port", VariableName: "port", Type: descriptor.FieldNumber, DefaultValue: "0", Min: floatPtr(1)},
		{Label: "Low", VariableName: "low", DefaultValue: "10", Validations: []descriptor.Rule{
			{Type: "<", Target: "high", Description: "Low must be below high."},
		}},
		{Label: "High", VariableName: "high", DefaultValue: "5"},
		{Label: "Info", VariableName: "info", Type: descriptor.FieldReadOnlyText, Required: true},
	}}
	res, err := New().Build(context.Background(), Request{Page: page})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(res.Validators) != 3 {
		t.Fatalf("validators = %d, want 3", len(res.Validators))
	}
	want := []string{"Name is required.", "Port must be at least 1.", "Low must be below high."}
	if diff := cmp.Diff(want, failures(res.Validators)); diff != "" {
		t.Fatalf("failures mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_PasswordConfirmation(t *testing.T) {
	page := descriptor.Page{Fields: []descriptor.Field{
		{Label: "Password", VariableName: "password", Type: descriptor.FieldPassword, ConfirmationRequired: true},
	}}
	res, err := New(WithConfirmationMessage("Mismatch.")).Build(context.Background(), Request{Page: page})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(res.Elements) != 2 || len(res.Bindings) != 1 {
		t.Fatalf("expected unbound confirmation element, got elements=%d bindings=%d", len(res.Elements), len(res.Bindings))
	}
	confirm := res.Elements[1]
	if confirm.Bound() || confirm.Label != "Confirm Password" {
		t.Fatalf("unexpected confirmation element %+v", confirm)
	}

	pw, _ := component.AsText(res.Bindings[0].Component)
	pw.SetText("secret")
	if diff := cmp.Diff([]string{"Mismatch."}, failures(res.Validators)); diff != "" {
		t.Fatalf("failures mismatch (-want +got):\n%s", diff)
	}
	ct, _ := component.AsText(confirm.Component)
	ct.SetText("secret")
	if got := failures(res.Validators); len(got) != 0 {
		t.Fatalf("expected no failures, got %v", got)
	}
}

func TestBuild_EnabledWhenFollowsChanges(t *testing.T) {
	page := descriptor.Page{Fields: []descriptor.Field{
		{Label: "TLS", VariableName: "tls", Type: descriptor.FieldCheckbox},
		{Label: "Cert", VariableName: "cert", Required: true, EnabledWhen: "tls"},
	}}
	res, err := New().Build(context.Background(), Request{Page: page})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(res.Disposables) != 1 {
		t.Fatalf("disposables = %d, want 1", len(res.Disposables))
	}

	tls := res.Bindings[0].Component
	cert := res.Bindings[1].Component
	if cert.Enabled() {
		t.Fatalf("cert must start disabled")
	}
	if got := failures(res.Validators); len(got) != 0 {
		t.Fatalf("disabled field must not fail, got %v", got)
	}

	if err := tls.SetValue(true); err != nil {
		t.Fatalf("set tls: %v", err)
	}
	if !cert.Enabled() {
		t.Fatalf("cert must follow tls")
	}
	if diff := cmp.Diff([]string{"Cert is required."}, failures(res.Validators)); diff != "" {
		t.Fatalf("failures mismatch (-want +got):\n%s", diff)
	}

	if err := res.Disposables[0].Dispose(); err != nil {
		t.Fatalf("dispose: %v", err)
	}
	if err := tls.SetValue(false); err != nil {
		t.Fatalf("set tls: %v", err)
	}
	if !cert.Enabled() {
		t.Fatalf("disposed subscription must stop updating cert")
	}
}

func TestBuild_CustomKindResolver(t *testing.T) {
	reg := &widgets.Registry{}
	reg.Register(component.KindTextArea, 1, func(descriptor.Field) bool { return true })
	page := descriptor.Page{Fields: []descriptor.Field{{VariableName: "notes", Type: descriptor.FieldNumber}}}

	res, err := New(WithKindResolver(reg)).Build(context.Background(), Request{Page: page})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if kind := res.Bindings[0].Component.Kind(); kind != component.KindTextArea {
		t.Fatalf("kind = %s, want textarea", kind)
	}
}

func TestBuild_Errors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Build(ctx, Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	bad := []descriptor.Page{
		{Fields: []descriptor.Field{{VariableName: "a", Type: descriptor.FieldDropdown, Options: []string{"x"}, DefaultValue: "y"}}},
		{Fields: []descriptor.Field{{VariableName: "a", Pattern: "("}}},
		{Fields: []descriptor.Field{{VariableName: "a", Validations: []descriptor.Rule{{Type: "~", Target: "a"}}}}},
		{Fields: []descriptor.Field{{VariableName: "a", EnabledWhen: "a ="}}},
	}
	for i, page := range bad {
		if _, err := New().Build(context.Background(), Request{Page: page, PageIndex: i}); err == nil {
			t.Fatalf("page %d: expected build error", i)
		}
	}
}
