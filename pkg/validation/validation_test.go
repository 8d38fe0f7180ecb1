package validation

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/component"
)

func TestSet_EvaluateRunsEveryValidatorInOrder(t *testing.T) {
	var set Set
	var calls []string
	track := func(name string, res Result) Validator {
		return func() Result {
			calls = append(calls, name)
			return res
		}
	}
	set.Add(
		track("a", Fail("A")),
		nil,
		track("b", Pass()),
		track("c", Fail("C")),
		track("c", Fail("C")),
	)

	if set.Len() != 4 {
		t.Fatalf("len = %d, want 4", set.Len())
	}
	got := set.Evaluate()
	if diff := cmp.Diff([]string{"A", "C", "C"}, got); diff != "" {
		t.Fatalf("failures mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "c"}, calls); diff != "" {
		t.Fatalf("call order mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_EmptyIsValid(t *testing.T) {
	var set Set
	if failures := set.Evaluate(); len(failures) != 0 {
		t.Fatalf("expected no failures, got %v", failures)
	}
}

func TestRequired(t *testing.T) {
	c := component.NewText(component.KindText, "  ")
	v := Required("Server", c)
	if res := v(); res.Valid || res.Message != "Server is required." {
		t.Fatalf("unexpected result %+v", res)
	}

	c.SetEnabled(false)
	if res := v(); !res.Valid {
		t.Fatalf("disabled component must pass, got %+v", res)
	}

	c.SetEnabled(true)
	c.SetText("db01")
	if res := v(); !res.Valid {
		t.Fatalf("filled component must pass, got %+v", res)
	}
}

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

func TestSchema_Constraints(t *testing.T) {
	cases := []struct {
		name    string
		kind    component.Kind
		rules   Constraints
		value   string
		message string
	}{
		{
			name:  "empty passes",
			kind:  component.KindText,
			rules: Constraints{MinLength: ptrInt(3)},
			value: "",
		},
		{
			name:    "pattern with custom message",
			kind:    component.KindText,
			rules:   Constraints{Pattern: "^[a-z]+$", PatternMessage: "lowercase only"},
			value:   "ABC",
			message: "lowercase only",
		},
		{
			name:    "pattern default message",
			kind:    component.KindText,
			rules:   Constraints{Pattern: "^[a-z]+$"},
			value:   "ABC",
			message: "Name does not match the expected format.",
		},
		{
			name:    "min length",
			kind:    component.KindText,
			rules:   Constraints{MinLength: ptrInt(3)},
			value:   "ab",
			message: "Name must be at least 3 characters long.",
		},
		{
			name:    "max length",
			kind:    component.KindText,
			rules:   Constraints{MaxLength: ptrInt(2)},
			value:   "abc",
			message: "Name must be at most 2 characters long.",
		},
		{
			name:    "not a number",
			kind:    component.KindNumber,
			rules:   Constraints{Numeric: true},
			value:   "ten",
			message: "Name must be a number.",
		},
		{
			name:    "below minimum",
			kind:    component.KindNumber,
			rules:   Constraints{Numeric: true, Min: ptrFloat(1)},
			value:   "0",
			message: "Name must be at least 1.",
		},
		{
			name:    "above maximum",
			kind:    component.KindNumber,
			rules:   Constraints{Numeric: true, Max: ptrFloat(65535)},
			value:   "70000",
			message: "Name must be at most 65535.",
		},
		{
			name:  "number in range",
			kind:  component.KindNumber,
			rules: Constraints{Numeric: true, Min: ptrFloat(1), Max: ptrFloat(65535)},
			value: "5432",
		},
		{
			name:    "enum",
			kind:    component.KindText,
			rules:   Constraints{Enum: []string{"s", "m"}},
			value:   "xl",
			message: "Name must be one of: s, m.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := component.NewText(tc.kind, tc.value)
			v, err := Schema("Name", c, tc.rules)
			if err != nil {
				t.Fatalf("schema: %v", err)
			}
			res := v()
			if tc.message == "" {
				if !res.Valid {
					t.Fatalf("expected valid, got %+v", res)
				}
				return
			}
			if res.Valid {
				t.Fatalf("expected failure %q", tc.message)
			}
			if res.Message != tc.message {
				t.Fatalf("message = %q, want %q", res.Message, tc.message)
			}
		})
	}
}

func TestSchema_RejectsBrokenConstraints(t *testing.T) {
	c := component.NewText(component.KindText, "")
	if _, err := Schema("Name", c, Constraints{Pattern: "("}); err == nil {
		t.Fatalf("expected pattern compile error")
	}
	if _, err := Schema("Name", c, Constraints{Numeric: true, Min: ptrFloat(5), Max: ptrFloat(1)}); err == nil {
		t.Fatalf("expected min/max error")
	}
}

func TestConfirm(t *testing.T) {
	primary := component.NewText(component.KindPassword, "secret")
	confirmation := component.NewText(component.KindPassword, "other")
	v := Confirm(primary, confirmation, "Passwords do not match.")

	if res := v(); res.Valid || res.Message != "Passwords do not match." {
		t.Fatalf("unexpected result %+v", res)
	}
	confirmation.SetText("secret")
	if res := v(); !res.Valid {
		t.Fatalf("expected match, got %+v", res)
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		op    string
		left  string
		right string
		want  bool
	}{
		{op: OpLess, left: "9", right: "10", want: true},
		{op: OpLess, left: "10", right: "9", want: false},
		{op: OpLessEqual, left: "10", right: "10", want: true},
		{op: OpGreater, left: "b", right: "a", want: true},
		{op: OpGreaterEqual, left: "1", right: "2", want: false},
		{op: OpEqual, left: "x", right: "x", want: true},
		{op: OpNotEqual, left: "x", right: "x", want: false},
		{op: OpLess, left: "", right: "1", want: true},
	}
	for _, tc := range cases {
		t.Run(tc.op+" "+tc.left+" "+tc.right, func(t *testing.T) {
			left := component.NewText(component.KindText, tc.left)
			right := component.NewText(component.KindText, tc.right)
			v, err := Compare(tc.op, left, "", right, "bad")
			if err != nil {
				t.Fatalf("compare: %v", err)
			}
			if got := v().Valid; got != tc.want {
				t.Fatalf("valid = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCompare_RegexMatch(t *testing.T) {
	c := component.NewText(component.KindText, "db-01")
	v, err := Compare(OpRegexMatch, c, `^[a-z]+-\d+$`, nil, "Invalid name.")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if res := v(); !res.Valid {
		t.Fatalf("expected match, got %+v", res)
	}
	c.SetText("DB 01")
	if res := v(); res.Valid || res.Message != "Invalid name." {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestCompare_Errors(t *testing.T) {
	c := component.NewText(component.KindText, "")
	if _, err := Compare("~", c, "", c, ""); !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("expected ErrUnknownOperator, got %v", err)
	}
	if _, err := Compare(OpLess, c, "", nil, ""); err == nil {
		t.Fatalf("expected missing target error")
	}
	if _, err := Compare(OpRegexMatch, c, "(", nil, ""); err == nil {
		t.Fatalf("expected regex compile error")
	}
	if !IsOperator(OpRegexMatch) || !IsOperator(OpNotEqual) || IsOperator("~") {
		t.Fatalf("IsOperator mismatch")
	}
}
