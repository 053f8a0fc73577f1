package form

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default layouts used when a date row does not configure its own.
const (
	DefaultDateDisplayFormat = "Jan 2, 2006"
	DefaultDateExportFormat  = "2006-01-02"
	DefaultTimeDisplayFormat = "3:04 PM"
	DefaultTimeExportFormat  = "15:04"
	DefaultDateTimeFormat    = time.RFC3339
)

// now is the clock used for fallbacks.
var now = time.Now

func layoutOr(layout, fallback string) string {
	if strings.TrimSpace(layout) == "" {
		return fallback
	}
	return layout
}

// DateValue is a calendar date row.
type DateValue struct {
	Title         string
	CustomKey     string
	Date          time.Time
	DisplayFormat string
	ExportFormat  string

	id uuid.UUID
}

// NewDateValue constructs a date row.
func NewDateValue(title string, date time.Time) DateValue {
	return DateValue{Title: title, Date: date, id: newID()}
}

// NewDateValueFromString parses raw with layout. Unparseable input falls back
// to the current time.
func NewDateValueFromString(title, raw, layout string) DateValue {
	date, err := time.Parse(layoutOr(layout, DefaultDateExportFormat), strings.TrimSpace(raw))
	if err != nil {
		date = now()
	}
	value := NewDateValue(title, date)
	value.ExportFormat = layout
	return value
}

// WithDate returns a copy holding date.
func (v DateValue) WithDate(date time.Time) DateValue {
	v.Date = date
	v.id = newID()
	return v
}

// DisplayValue formats the date for presentation.
func (v DateValue) DisplayValue() string {
	return v.Date.Format(layoutOr(v.DisplayFormat, DefaultDateDisplayFormat))
}

func (v DateValue) ID() uuid.UUID       { return v.id }
func (v DateValue) OverrideKey() string { return v.CustomKey }
func (v DateValue) Item() Item          { return wrap(KindDate, v) }
func (v DateValue) IsSelectable() bool  { return true }

// EncodedValue implements Encodable.
func (v DateValue) EncodedValue() map[string]string {
	return single(keyFor(v.CustomKey, v.Title, "Date"), v.Date.Format(layoutOr(v.ExportFormat, DefaultDateExportFormat)))
}

// DatePickerMode selects which components a DatePickerValue edits.
type DatePickerMode string

const (
	DatePickerModeDate        DatePickerMode = "date"
	DatePickerModeTime        DatePickerMode = "time"
	DatePickerModeDateAndTime DatePickerMode = "dateAndTime"
)

// Valid reports whether m is a known picker mode.
func (m DatePickerMode) Valid() bool {
	switch m {
	case DatePickerModeDate, DatePickerModeTime, DatePickerModeDateAndTime:
		return true
	}
	return false
}

// DatePickerValue is an inline date wheel. IsValid is a presentation flag:
// invalid values are shown struck through; the encoding is unaffected.
type DatePickerValue struct {
	Title        string
	CustomKey    string
	Date         time.Time
	Mode         DatePickerMode
	Minimum      *time.Time
	Maximum      *time.Time
	ExportFormat string
	IsValid      bool

	id uuid.UUID
}

// NewDatePickerValue constructs a valid picker row in the given mode.
func NewDatePickerValue(title string, date time.Time, mode DatePickerMode) DatePickerValue {
	if !mode.Valid() {
		mode = DatePickerModeDate
	}
	return DatePickerValue{Title: title, Date: date, Mode: mode, IsValid: true, id: newID()}
}

// WithDate returns a copy holding date.
func (v DatePickerValue) WithDate(date time.Time) DatePickerValue {
	v.Date = date
	v.id = newID()
	return v
}

// Invalidated returns a copy flagged invalid.
func (v DatePickerValue) Invalidated() DatePickerValue {
	v.IsValid = false
	v.id = newID()
	return v
}

// Validated returns a copy flagged valid.
func (v DatePickerValue) Validated() DatePickerValue {
	v.IsValid = true
	v.id = newID()
	return v
}

// Strikethrough reports whether the value should be presented as invalid.
func (v DatePickerValue) Strikethrough() bool {
	return !v.IsValid
}

// InRange reports whether Date lies within the optional bounds.
func (v DatePickerValue) InRange() bool {
	if v.Minimum != nil && v.Date.Before(*v.Minimum) {
		return false
	}
	if v.Maximum != nil && v.Date.After(*v.Maximum) {
		return false
	}
	return true
}

func (v DatePickerValue) exportLayout() string {
	if strings.TrimSpace(v.ExportFormat) != "" {
		return v.ExportFormat
	}
	switch v.Mode {
	case DatePickerModeTime:
		return DefaultTimeExportFormat
	case DatePickerModeDateAndTime:
		return DefaultDateTimeFormat
	default:
		return DefaultDateExportFormat
	}
}

func (v DatePickerValue) ID() uuid.UUID       { return v.id }
func (v DatePickerValue) OverrideKey() string { return v.CustomKey }
func (v DatePickerValue) Item() Item          { return wrap(KindDatePicker, v) }
func (v DatePickerValue) IsSelectable() bool  { return true }

// EncodedValue implements Encodable.
func (v DatePickerValue) EncodedValue() map[string]string {
	return single(keyFor(v.CustomKey, v.Title, "Date"), v.Date.Format(v.exportLayout()))
}

// DateTimeValue edits the date and the time of one instant separately.
type DateTimeValue struct {
	Title        string
	CustomKey    string
	Date         time.Time
	DateFormat   string
	TimeFormat   string
	ExportFormat string
	IsValid      bool

	id uuid.UUID
}

// NewDateTimeValue constructs a valid date-time row.
func NewDateTimeValue(title string, date time.Time) DateTimeValue {
	return DateTimeValue{Title: title, Date: date, IsValid: true, id: newID()}
}

// WithDate returns a copy holding date.
func (v DateTimeValue) WithDate(date time.Time) DateTimeValue {
	v.Date = date
	v.id = newID()
	return v
}

// WithDatePart replaces the calendar day and keeps the time of day.
func (v DateTimeValue) WithDatePart(day time.Time) DateTimeValue {
	current := v.Date
	year, month, dd := day.Date()
	return v.WithDate(time.Date(year, month, dd,
		current.Hour(), current.Minute(), current.Second(), current.Nanosecond(), current.Location()))
}

// WithTimePart replaces the time of day and keeps the calendar day.
func (v DateTimeValue) WithTimePart(clock time.Time) DateTimeValue {
	current := v.Date
	year, month, dd := current.Date()
	return v.WithDate(time.Date(year, month, dd,
		clock.Hour(), clock.Minute(), clock.Second(), 0, current.Location()))
}

// Invalidated returns a copy flagged invalid.
func (v DateTimeValue) Invalidated() DateTimeValue {
	v.IsValid = false
	v.id = newID()
	return v
}

// Validated returns a copy flagged valid.
func (v DateTimeValue) Validated() DateTimeValue {
	v.IsValid = true
	v.id = newID()
	return v
}

// Strikethrough reports whether the value should be presented as invalid.
func (v DateTimeValue) Strikethrough() bool {
	return !v.IsValid
}

// DisplayDate formats the calendar day.
func (v DateTimeValue) DisplayDate() string {
	return v.Date.Format(layoutOr(v.DateFormat, DefaultDateDisplayFormat))
}

// DisplayTime formats the time of day.
func (v DateTimeValue) DisplayTime() string {
	return v.Date.Format(layoutOr(v.TimeFormat, DefaultTimeDisplayFormat))
}

func (v DateTimeValue) ID() uuid.UUID       { return v.id }
func (v DateTimeValue) OverrideKey() string { return v.CustomKey }
func (v DateTimeValue) Item() Item          { return wrap(KindDateTime, v) }
func (v DateTimeValue) IsSelectable() bool  { return true }

// EncodedValue implements Encodable.
func (v DateTimeValue) EncodedValue() map[string]string {
	return single(keyFor(v.CustomKey, v.Title, "DateTime"), v.Date.Format(layoutOr(v.ExportFormat, DefaultDateTimeFormat)))
}
