package form

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// TextValue is a single-line free text row.
type TextValue struct {
	Title       string
	CustomKey   string
	Value       string
	Placeholder string
	Validators  []Validator

	id uuid.UUID
}

// NewTextValue constructs a text row.
func NewTextValue(title, value string) TextValue {
	return TextValue{Title: title, Value: value, id: newID()}
}

// WithValue returns a copy holding value.
func (v TextValue) WithValue(value string) TextValue {
	v.Value = value
	v.id = newID()
	return v
}

func (v TextValue) ID() uuid.UUID       { return v.id }
func (v TextValue) OverrideKey() string { return v.CustomKey }
func (v TextValue) Item() Item          { return wrap(KindText, v) }

// EncodedValue implements Encodable.
func (v TextValue) EncodedValue() map[string]string {
	return single(keyFor(v.CustomKey, v.Title, "Text"), v.Value)
}

// Validate runs the attached validators against Value.
func (v TextValue) Validate() error {
	return runValidators(v.Value, v.Validators)
}

// NumberType narrows the input accepted by a NumericalValue.
type NumberType string

const (
	NumberTypeInteger NumberType = "integer"
	NumberTypeDecimal NumberType = "decimal"
)

// Valid reports whether t is a known number type.
func (t NumberType) Valid() bool {
	return t == NumberTypeInteger || t == NumberTypeDecimal
}

// NumericalValue is a numeric text row. The raw text is kept as typed so that
// partial input such as "1." survives round trips through the owner.
type NumericalValue struct {
	Title       string
	CustomKey   string
	Value       string
	Placeholder string
	NumberType  NumberType
	Validators  []Validator

	id uuid.UUID
}

// NewNumericalValue constructs a numeric row accepting decimals.
func NewNumericalValue(title, value string) NumericalValue {
	return NumericalValue{Title: title, Value: value, NumberType: NumberTypeDecimal, id: newID()}
}

// WithValue returns a copy holding value.
func (v NumericalValue) WithValue(value string) NumericalValue {
	v.Value = value
	v.id = newID()
	return v
}

// Number parses Value according to NumberType.
func (v NumericalValue) Number() (float64, bool) {
	raw := strings.TrimSpace(v.Value)
	if raw == "" {
		return 0, false
	}
	if v.NumberType == NumberTypeInteger {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (v NumericalValue) ID() uuid.UUID       { return v.id }
func (v NumericalValue) OverrideKey() string { return v.CustomKey }
func (v NumericalValue) Item() Item          { return wrap(KindNumerical, v) }

// EncodedValue implements Encodable.
func (v NumericalValue) EncodedValue() map[string]string {
	return single(keyFor(v.CustomKey, v.Title, "Number"), v.Value)
}

// Validate runs the attached validators against Value.
func (v NumericalValue) Validate() error {
	return runValidators(v.Value, v.Validators)
}

// NoteValue is a multi-line text row.
type NoteValue struct {
	Title       string
	CustomKey   string
	Value       string
	Placeholder string
	Validators  []Validator

	id uuid.UUID
}

// NewNoteValue constructs a note row.
func NewNoteValue(title, value string) NoteValue {
	return NoteValue{Title: title, Value: value, id: newID()}
}

// WithValue returns a copy holding value.
func (v NoteValue) WithValue(value string) NoteValue {
	v.Value = value
	v.id = newID()
	return v
}

func (v NoteValue) ID() uuid.UUID       { return v.id }
func (v NoteValue) OverrideKey() string { return v.CustomKey }
func (v NoteValue) Item() Item          { return wrap(KindNote, v) }

// EncodedValue implements Encodable.
func (v NoteValue) EncodedValue() map[string]string {
	return single(keyFor(v.CustomKey, v.Title, "Note"), v.Value)
}

// Validate runs the attached validators against Value.
func (v NoteValue) Validate() error {
	return runValidators(v.Value, v.Validators)
}

// ReadOnlyValue displays a value the user cannot edit. It is still part of
// the submission.
type ReadOnlyValue struct {
	Title     string
	CustomKey string
	Value     string

	id uuid.UUID
}

// NewReadOnlyValue constructs a read-only row.
func NewReadOnlyValue(title, value string) ReadOnlyValue {
	return ReadOnlyValue{Title: title, Value: value, id: newID()}
}

// WithValue returns a copy holding value.
func (v ReadOnlyValue) WithValue(value string) ReadOnlyValue {
	v.Value = value
	v.id = newID()
	return v
}

func (v ReadOnlyValue) ID() uuid.UUID       { return v.id }
func (v ReadOnlyValue) OverrideKey() string { return v.CustomKey }
func (v ReadOnlyValue) Item() Item          { return wrap(KindReadOnly, v) }

// EncodedValue implements Encodable.
func (v ReadOnlyValue) EncodedValue() map[string]string {
	return single(keyFor(v.CustomKey, v.Title, "ReadOnly"), v.Value)
}
