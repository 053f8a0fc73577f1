package form

import (
	"strings"

	"github.com/google/uuid"
)

// Encodable produces the string map a row contributes to a submission.
type Encodable interface {
	EncodedValue() map[string]string
}

// CustomKeyProvider exposes the optional key overriding a row title during
// encoding. An empty string means no override.
type CustomKeyProvider interface {
	OverrideKey() string
}

// Value is implemented by every row kind in the package.
type Value interface {
	Encodable
	CustomKeyProvider
	// Item wraps the value in its matching variant.
	Item() Item
	// ID identifies this particular version of the value. Every derivation
	// returns a value with a new ID.
	ID() uuid.UUID
}

// Selectable reports whether a row may be chosen interactively. It is not the
// same as being disabled.
type Selectable interface {
	IsSelectable() bool
}

// newID mints row identifiers. Tests may swap it for a deterministic source.
var newID = uuid.New

// SameIdentity compares two values by identifier only. Two values with equal
// content but different identifiers are not the same.
func SameIdentity(a, b Value) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID() == b.ID()
}

func keyFor(customKey, title, fallback string) string {
	if key := strings.TrimSpace(customKey); key != "" {
		return key
	}
	if key := strings.TrimSpace(title); key != "" {
		return key
	}
	return fallback
}

func single(key, value string) map[string]string {
	return map[string]string{key: value}
}
