package form

import (
	"errors"
	"strings"
)

var (
	// ErrIndexOutOfRange is returned when a row or section index does not exist.
	ErrIndexOutOfRange = errors.New("form: index out of range")
	// ErrNotFound is returned when no row carries the requested identifier.
	ErrNotFound = errors.New("form: value not found")
)

// ErrorMapping groups validation messages by encoding key. Form-level messages
// are those not tied to a single row.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Empty reports whether the mapping carries no messages.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
