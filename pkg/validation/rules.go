package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwizard/pkg/component"
)

// Operator names accepted by Compare.
const (
	OpRegexMatch   = "regex_match"
	OpLess         = "<"
	OpLessEqual    = "<="
	OpGreater      = ">"
	OpGreaterEqual = ">="
	OpEqual        = "=="
	OpNotEqual     = "!="
)

// ErrUnknownOperator reports a cross-field rule type outside the supported set.
var ErrUnknownOperator = errors.New("validation: unknown operator")

// Constraints describes the value rules for a single field. Nil pointers mean
// "no constraint".
type Constraints struct {
	Numeric        bool
	Pattern        string
	PatternMessage string
	Min            *float64
	Max            *float64
	MinLength      *int
	MaxLength      *int
	Enum           []string
}

// IsZero reports whether the constraints would accept every value.
func (c Constraints) IsZero() bool {
	return !c.Numeric && c.Pattern == "" && c.Min == nil && c.Max == nil &&
		c.MinLength == nil && c.MaxLength == nil && len(c.Enum) == 0
}

// Required fails when the component is enabled and holds no value.
func Required(label string, c component.Component) Validator {
	return func() Result {
		if c == nil || !c.Enabled() {
			return Pass()
		}
		if isEmpty(c.Value()) {
			return Fail(fmt.Sprintf("%s is required.", label))
		}
		return Pass()
	}
}

// Schema compiles constraints into an OpenAPI schema and returns a validator
// that checks the component value against it. Empty values pass so Required
// stays the only rule reporting missing input.
func Schema(label string, c component.Component, rules Constraints) (Validator, error) {
	schema := compileSchema(rules)
	if rules.Pattern != "" {
		if _, err := regexp.Compile(rules.Pattern); err != nil {
			return nil, fmt.Errorf("validation: field %q pattern: %w", label, err)
		}
	}
	if rules.Min != nil && rules.Max != nil && *rules.Min > *rules.Max {
		return nil, fmt.Errorf("validation: field %q has min greater than max", label)
	}

	return func() Result {
		if c == nil || !c.Enabled() {
			return Pass()
		}
		value := c.Value()
		if isEmpty(value) {
			return Pass()
		}
		candidate := any(fmt.Sprint(value))
		if rules.Numeric {
			n, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprint(value)), 64)
			if err != nil {
				return Fail(fmt.Sprintf("%s must be a number.", label))
			}
			candidate = n
		}
		if err := schema.VisitJSON(candidate); err != nil {
			return Fail(schemaMessage(label, rules, err))
		}
		return Pass()
	}, nil
}

func compileSchema(rules Constraints) *openapi3.Schema {
	var schema *openapi3.Schema
	if rules.Numeric {
		schema = openapi3.NewFloat64Schema()
		if rules.Min != nil {
			schema = schema.WithMin(*rules.Min)
		}
		if rules.Max != nil {
			schema = schema.WithMax(*rules.Max)
		}
	} else {
		schema = openapi3.NewStringSchema()
		if rules.Pattern != "" {
			schema = schema.WithPattern(rules.Pattern)
		}
		if rules.MinLength != nil {
			schema = schema.WithMinLength(int64(*rules.MinLength))
		}
		if rules.MaxLength != nil {
			schema = schema.WithMaxLength(int64(*rules.MaxLength))
		}
	}
	if len(rules.Enum) > 0 {
		values := make([]any, 0, len(rules.Enum))
		for _, option := range rules.Enum {
			values = append(values, option)
		}
		schema = schema.WithEnum(values...)
	}
	return schema
}

func schemaMessage(label string, rules Constraints, err error) string {
	var schemaErr *openapi3.SchemaError
	if !errors.As(err, &schemaErr) {
		return fmt.Sprintf("%s is invalid.", label)
	}
	switch schemaErr.SchemaField {
	case "pattern":
		if rules.PatternMessage != "" {
			return rules.PatternMessage
		}
		return fmt.Sprintf("%s does not match the expected format.", label)
	case "minimum":
		return fmt.Sprintf("%s must be at least %s.", label, formatNumber(*rules.Min))
	case "maximum":
		return fmt.Sprintf("%s must be at most %s.", label, formatNumber(*rules.Max))
	case "minLength":
		return fmt.Sprintf("%s must be at least %d characters long.", label, *rules.MinLength)
	case "maxLength":
		return fmt.Sprintf("%s must be at most %d characters long.", label, *rules.MaxLength)
	case "enum":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.Join(rules.Enum, ", "))
	}
	return fmt.Sprintf("%s: %s", label, schemaErr.Reason)
}

// Confirm fails when the confirmation component does not repeat the primary
// value.
func Confirm(primary, confirmation component.Component, message string) Validator {
	return func() Result {
		if primary == nil || confirmation == nil || !primary.Enabled() {
			return Pass()
		}
		if fmt.Sprint(primary.Value()) != fmt.Sprint(confirmation.Value()) {
			return Fail(message)
		}
		return Pass()
	}
}

// Compare builds a cross-field rule. For OpRegexMatch the operand is the
// regular expression the value must match; for the comparison operators the
// operand component supplies the right-hand value. Values that both parse as
// numbers compare numerically, everything else compares as strings. Empty
// values pass.
func Compare(op string, c component.Component, operand string, target component.Component, message string) (Validator, error) {
	if op == OpRegexMatch {
		re, err := regexp.Compile(operand)
		if err != nil {
			return nil, fmt.Errorf("validation: regex_match %q: %w", operand, err)
		}
		return func() Result {
			if c == nil || !c.Enabled() || isEmpty(c.Value()) {
				return Pass()
			}
			if !re.MatchString(fmt.Sprint(c.Value())) {
				return Fail(message)
			}
			return Pass()
		}, nil
	}

	cmpFn, ok := comparators[op]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownOperator, op)
	}
	if target == nil {
		return nil, fmt.Errorf("validation: rule %q has no target component", op)
	}
	return func() Result {
		if c == nil || !c.Enabled() {
			return Pass()
		}
		left, right := c.Value(), target.Value()
		if isEmpty(left) || isEmpty(right) {
			return Pass()
		}
		if !cmpFn(compareValues(left, right)) {
			return Fail(message)
		}
		return Pass()
	}, nil
}

var comparators = map[string]func(int) bool{
	OpLess:         func(n int) bool { return n < 0 },
	OpLessEqual:    func(n int) bool { return n <= 0 },
	OpGreater:      func(n int) bool { return n > 0 },
	OpGreaterEqual: func(n int) bool { return n >= 0 },
	OpEqual:        func(n int) bool { return n == 0 },
	OpNotEqual:     func(n int) bool { return n != 0 },
}

// IsOperator reports whether op names a supported cross-field rule.
func IsOperator(op string) bool {
	if op == OpRegexMatch {
		return true
	}
	_, ok := comparators[op]
	return ok
}

func compareValues(left, right any) int {
	ls, rs := strings.TrimSpace(fmt.Sprint(left)), strings.TrimSpace(fmt.Sprint(right))
	lf, lerr := strconv.ParseFloat(ls, 64)
	rf, rerr := strconv.ParseFloat(rs, 64)
	if lerr == nil && rerr == nil {
		switch {
		case lf < rf:
			return -1
		case lf > rf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(ls, rs)
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		return false
	default:
		return fmt.Sprint(v) == ""
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
