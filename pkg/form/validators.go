package form

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Canonical validation rule identifiers.
const (
	RuleRequired  = "required"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
)

// Validator checks a raw row value. Validators are a hook: nothing in the
// package runs them implicitly. Call Validate on the row, or Form.Validate.
type Validator interface {
	Validate(value string) error
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(value string) error

// Validate calls f.
func (f ValidatorFunc) Validate(value string) error {
	return f(value)
}

// ValidationError describes a failed rule.
type ValidationError struct {
	Rule    string
	Params  map[string]string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Required rejects blank values.
func Required() Validator {
	return ValidatorFunc(func(value string) error {
		if strings.TrimSpace(value) == "" {
			return &ValidationError{Rule: RuleRequired, Message: "value is required"}
		}
		return nil
	})
}

// MinLength rejects values shorter than n characters. Empty values pass so the
// rule composes with Required.
func MinLength(n int) Validator {
	return ValidatorFunc(func(value string) error {
		if value == "" || utf8.RuneCountInString(value) >= n {
			return nil
		}
		return &ValidationError{
			Rule:    RuleMinLength,
			Params:  map[string]string{"value": strconv.Itoa(n)},
			Message: fmt.Sprintf("must be at least %d characters", n),
		}
	})
}

// MaxLength rejects values longer than n characters.
func MaxLength(n int) Validator {
	return ValidatorFunc(func(value string) error {
		if utf8.RuneCountInString(value) <= n {
			return nil
		}
		return &ValidationError{
			Rule:    RuleMaxLength,
			Params:  map[string]string{"value": strconv.Itoa(n)},
			Message: fmt.Sprintf("must be at most %d characters", n),
		}
	})
}

// MatchPattern rejects non-empty values the expression does not match.
func MatchPattern(re *regexp.Regexp) Validator {
	return ValidatorFunc(func(value string) error {
		if re == nil || value == "" || re.MatchString(value) {
			return nil
		}
		return &ValidationError{
			Rule:    RulePattern,
			Params:  map[string]string{"pattern": re.String()},
			Message: fmt.Sprintf("must match %s", re.String()),
		}
	})
}

func runValidators(value string, validators []Validator) error {
	var errs []error
	for _, validator := range validators {
		if validator == nil {
			continue
		}
		if err := validator.Validate(value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validatable is implemented by rows that carry validators.
type Validatable interface {
	Validate() error
}
