package descriptor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/goliatone/go-formwizard/pkg/condition"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

var (
	ErrInvalidWizard    = errors.New("descriptor: invalid wizard")
	ErrInvalidPage      = errors.New("descriptor: invalid page")
	ErrInvalidField     = errors.New("descriptor: invalid field")
	ErrInvalidRule      = errors.New("descriptor: invalid validation rule")
	ErrInvalidCondition = errors.New("descriptor: invalid enabledWhen condition")
)

// Validate checks a descriptor for structural problems. Every problem is
// reported; the returned error joins them and each wraps one of the
// ErrInvalid* sentinels.
func Validate(w Wizard) error {
	var errs []error
	if len(w.Pages) == 0 {
		errs = append(errs, fmt.Errorf("%w: no pages declared", ErrInvalidWizard))
	}
	for name := range w.Variables {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("%w: variables contain an empty name", ErrInvalidWizard))
			break
		}
	}
	for i, page := range w.Pages {
		errs = append(errs, validatePage(i, page)...)
	}
	return errors.Join(errs...)
}

func validatePage(index int, page Page) []error {
	var errs []error
	where := fmt.Sprintf("page %d", index)
	if strings.TrimSpace(page.Title) == "" {
		errs = append(errs, fmt.Errorf("%w: %s has no title", ErrInvalidPage, where))
	} else {
		where = fmt.Sprintf("page %d (%s)", index, page.Title)
	}

	names := make([]string, 0, len(page.Fields))
	for _, f := range page.Fields {
		if name := strings.TrimSpace(f.VariableName); name != "" {
			names = append(names, name)
		}
	}

	for j, field := range page.Fields {
		errs = append(errs, validateField(fmt.Sprintf("%s field %d", where, j), field, names)...)
	}
	return errs
}

func validateField(where string, f Field, pageNames []string) []error {
	var errs []error
	if strings.TrimSpace(f.VariableName) == "" {
		errs = append(errs, fmt.Errorf("%w: %s has no variableName", ErrInvalidField, where))
	} else {
		where = fmt.Sprintf("%s %q", where, f.VariableName)
	}

	if !f.Type.Valid() {
		errs = append(errs, fmt.Errorf("%w: %s has unknown type %q%s", ErrInvalidField, where, f.Type, suggest(string(f.Type), fieldTypeNames())))
	}

	switch f.EffectiveType() {
	case FieldDropdown:
		if len(f.Options) == 0 {
			errs = append(errs, fmt.Errorf("%w: %s is a dropdown without options", ErrInvalidField, where))
		} else if f.DefaultValue != "" && !contains(f.Options, f.DefaultValue) {
			errs = append(errs, fmt.Errorf("%w: %s default %q is not an option%s", ErrInvalidField, where, f.DefaultValue, suggest(f.DefaultValue, f.Options)))
		}
	case FieldCheckbox:
		if d := strings.ToLower(strings.TrimSpace(f.DefaultValue)); d != "" && d != "true" && d != "false" {
			errs = append(errs, fmt.Errorf("%w: %s checkbox default %q is not a boolean", ErrInvalidField, where, f.DefaultValue))
		}
	}

	if f.ConfirmationRequired && f.EffectiveType() != FieldPassword {
		errs = append(errs, fmt.Errorf("%w: %s requests confirmation but is not a password", ErrInvalidField, where))
	}
	if f.Pattern != "" {
		if _, err := regexp.Compile(f.Pattern); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s pattern: %v", ErrInvalidField, where, err))
		}
	}
	if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
		errs = append(errs, fmt.Errorf("%w: %s min is greater than max", ErrInvalidField, where))
	}
	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		errs = append(errs, fmt.Errorf("%w: %s minLength is greater than maxLength", ErrInvalidField, where))
	}

	if f.EnabledWhen != "" {
		expr, err := condition.Parse(f.EnabledWhen)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalidCondition, where, err))
		} else {
			for _, ident := range expr.Identifiers() {
				if !contains(pageNames, ident) {
					errs = append(errs, fmt.Errorf("%w: %s references %q which is not a field on this page%s", ErrInvalidCondition, where, ident, suggest(ident, pageNames)))
				}
			}
		}
	}

	for k, rule := range f.Validations {
		errs = append(errs, validateRule(fmt.Sprintf("%s rule %d", where, k), rule, pageNames)...)
	}
	return errs
}

func validateRule(where string, r Rule, pageNames []string) []error {
	var errs []error
	if !validation.IsOperator(r.Type) {
		return append(errs, fmt.Errorf("%w: %s has unknown type %q", ErrInvalidRule, where, r.Type))
	}
	if strings.TrimSpace(r.Description) == "" {
		errs = append(errs, fmt.Errorf("%w: %s has no description", ErrInvalidRule, where))
	}
	if r.Type == validation.OpRegexMatch {
		if _, err := regexp.Compile(r.Target); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s regular expression: %v", ErrInvalidRule, where, err))
		}
		return errs
	}
	if !contains(pageNames, r.Target) {
		errs = append(errs, fmt.Errorf("%w: %s target %q is not a field on this page%s", ErrInvalidRule, where, r.Target, suggest(r.Target, pageNames)))
	}
	return errs
}

// suggest returns a " (did you mean ...?)" hint for the closest candidate.
func suggest(input string, candidates []string) string {
	if strings.TrimSpace(input) == "" || len(candidates) == 0 {
		return ""
	}
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", matches[0].Str)
}

func fieldTypeNames() []string {
	types := FieldTypes()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
