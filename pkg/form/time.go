package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeExportFormat selects how a TimeInputValue encodes.
type TimeExportFormat string

const (
	// TimeExportMilitary encodes 24-hour "HH:MM".
	TimeExportMilitary TimeExportFormat = "military"
	// TimeExportCivilian encodes 12-hour "h:MM AM".
	TimeExportCivilian TimeExportFormat = "civilian"
)

// Valid reports whether f is a known export format.
func (f TimeExportFormat) Valid() bool {
	return f == TimeExportMilitary || f == TimeExportCivilian
}

var timeInputLayouts = []string{"3:04 PM", "3:04PM", "3 PM", "3PM", "15:04", "15:04:05"}

func parseClock(raw string) (int, int, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, ".", "")
	if normalized == "" {
		return 0, 0, false
	}
	for _, layout := range timeInputLayouts {
		parsed, err := time.Parse(layout, normalized)
		if err == nil {
			return parsed.Hour(), parsed.Minute(), true
		}
	}
	return 0, 0, false
}

// TimeInputValue is a free text time of day such as "2:30 PM".
type TimeInputValue struct {
	Title        string
	CustomKey    string
	Time         string
	ExportFormat TimeExportFormat
	IsValid      bool

	id uuid.UUID
}

// NewTimeInputValue constructs a valid row exporting military time.
func NewTimeInputValue(title, raw string) TimeInputValue {
	return TimeInputValue{
		Title:        title,
		Time:         raw,
		ExportFormat: TimeExportMilitary,
		IsValid:      true,
		id:           newID(),
	}
}

// WithTime returns a copy holding raw.
func (v TimeInputValue) WithTime(raw string) TimeInputValue {
	v.Time = raw
	v.id = newID()
	return v
}

// Invalidated returns a copy flagged invalid.
func (v TimeInputValue) Invalidated() TimeInputValue {
	v.IsValid = false
	v.id = newID()
	return v
}

// Validated returns a copy flagged valid.
func (v TimeInputValue) Validated() TimeInputValue {
	v.IsValid = true
	v.id = newID()
	return v
}

// Strikethrough reports whether the value should be presented as invalid.
func (v TimeInputValue) Strikethrough() bool {
	return !v.IsValid
}

// Clock parses Time into a 24-hour hour and minute.
func (v TimeInputValue) Clock() (hour, minute int, ok bool) {
	return parseClock(v.Time)
}

func (v TimeInputValue) ID() uuid.UUID       { return v.id }
func (v TimeInputValue) OverrideKey() string { return v.CustomKey }
func (v TimeInputValue) Item() Item          { return wrap(KindTimeInput, v) }

// EncodedValue implements Encodable. Text that does not parse as a time is
// encoded as typed.
func (v TimeInputValue) EncodedValue() map[string]string {
	key := keyFor(v.CustomKey, v.Title, "Time")
	hour, minute, ok := v.Clock()
	if !ok {
		return single(key, v.Time)
	}
	if v.ExportFormat == TimeExportCivilian {
		return single(key, time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC).Format("3:04 PM"))
	}
	return single(key, fmt.Sprintf("%02d:%02d", hour, minute))
}

// TimeValue is a time of day picked from a wheel.
type TimeValue struct {
	Title     string
	CustomKey string
	Hour      int
	Minute    int
	Format    string

	id uuid.UUID
}

// NewTimeValue constructs a time row, normalising the components into a
// single day.
func NewTimeValue(title string, hour, minute int) TimeValue {
	value := TimeValue{Title: title, id: newID()}
	value.Hour, value.Minute = normalizeClock(hour, minute)
	return value
}

func normalizeClock(hour, minute int) (int, int) {
	const day = 24 * 60
	total := ((hour*60+minute)%day + day) % day
	return total / 60, total % 60
}

// WithTime returns a copy holding the normalised time.
func (v TimeValue) WithTime(hour, minute int) TimeValue {
	v.Hour, v.Minute = normalizeClock(hour, minute)
	v.id = newID()
	return v
}

// String formats the time with Format, defaulting to "15:04".
func (v TimeValue) String() string {
	clock := time.Date(0, 1, 1, v.Hour, v.Minute, 0, 0, time.UTC)
	return clock.Format(layoutOr(v.Format, DefaultTimeExportFormat))
}

func (v TimeValue) ID() uuid.UUID       { return v.id }
func (v TimeValue) OverrideKey() string { return v.CustomKey }
func (v TimeValue) Item() Item          { return wrap(KindTime, v) }
func (v TimeValue) IsSelectable() bool  { return true }

// EncodedValue implements Encodable.
func (v TimeValue) EncodedValue() map[string]string {
	return single(keyFor(v.CustomKey, v.Title, "Time"), v.String())
}
