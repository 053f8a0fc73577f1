package form

import (
	"math"
	"strconv"

	"github.com/google/uuid"
)

// SwitchValue is an on/off toggle.
type SwitchValue struct {
	Title     string
	CustomKey string
	Value     bool

	id uuid.UUID
}

// NewSwitchValue constructs a toggle row.
func NewSwitchValue(title string, on bool) SwitchValue {
	return SwitchValue{Title: title, Value: on, id: newID()}
}

// WithValue returns a copy holding on.
func (v SwitchValue) WithValue(on bool) SwitchValue {
	v.Value = on
	v.id = newID()
	return v
}

// Toggled returns a copy with the opposite state.
func (v SwitchValue) Toggled() SwitchValue {
	return v.WithValue(!v.Value)
}

func (v SwitchValue) ID() uuid.UUID       { return v.id }
func (v SwitchValue) OverrideKey() string { return v.CustomKey }
func (v SwitchValue) Item() Item          { return wrap(KindSwitch, v) }

// EncodedValue implements Encodable.
func (v SwitchValue) EncodedValue() map[string]string {
	return single(keyFor(v.CustomKey, v.Title, "Switch"), strconv.FormatBool(v.Value))
}

func clamp(value, minimum, maximum float64) float64 {
	if maximum < minimum {
		return value
	}
	return math.Min(math.Max(value, minimum), maximum)
}

// SliderValue is a continuous value between Minimum and Maximum.
type SliderValue struct {
	Title         string
	CustomKey     string
	Value         float64
	Minimum       float64
	Maximum       float64
	DecimalPlaces int

	id uuid.UUID
}

// NewSliderValue constructs a slider row with value clamped to the range.
func NewSliderValue(title string, value, minimum, maximum float64) SliderValue {
	return SliderValue{
		Title:   title,
		Value:   clamp(value, minimum, maximum),
		Minimum: minimum,
		Maximum: maximum,
		id:      newID(),
	}
}

// WithValue returns a copy holding value clamped to the range.
func (v SliderValue) WithValue(value float64) SliderValue {
	v.Value = clamp(value, v.Minimum, v.Maximum)
	v.id = newID()
	return v
}

func (v SliderValue) ID() uuid.UUID       { return v.id }
func (v SliderValue) OverrideKey() string { return v.CustomKey }
func (v SliderValue) Item() Item          { return wrap(KindSlider, v) }

// EncodedValue implements Encodable.
func (v SliderValue) EncodedValue() map[string]string {
	places := v.DecimalPlaces
	if places < 0 {
		places = 0
	}
	return single(keyFor(v.CustomKey, v.Title, "Slider"), strconv.FormatFloat(v.Value, 'f', places, 64))
}

// StepperValue moves between Minimum and Maximum in Step increments.
type StepperValue struct {
	Title     string
	CustomKey string
	Value     float64
	Minimum   float64
	Maximum   float64
	Step      float64

	id uuid.UUID
}

// NewStepperValue constructs a stepper row with a step of one.
func NewStepperValue(title string, value, minimum, maximum float64) StepperValue {
	return StepperValue{
		Title:   title,
		Value:   clamp(value, minimum, maximum),
		Minimum: minimum,
		Maximum: maximum,
		Step:    1,
		id:      newID(),
	}
}

// WithValue returns a copy holding value clamped to the range.
func (v StepperValue) WithValue(value float64) StepperValue {
	v.Value = clamp(value, v.Minimum, v.Maximum)
	v.id = newID()
	return v
}

// Incremented returns a copy moved up by Step.
func (v StepperValue) Incremented() StepperValue {
	return v.WithValue(v.Value + v.step())
}

// Decremented returns a copy moved down by Step.
func (v StepperValue) Decremented() StepperValue {
	return v.WithValue(v.Value - v.step())
}

func (v StepperValue) step() float64 {
	if v.Step <= 0 {
		return 1
	}
	return v.Step
}

func (v StepperValue) ID() uuid.UUID       { return v.id }
func (v StepperValue) OverrideKey() string { return v.CustomKey }
func (v StepperValue) Item() Item          { return wrap(KindStepper, v) }

// EncodedValue implements Encodable.
func (v StepperValue) EncodedValue() map[string]string {
	return single(keyFor(v.CustomKey, v.Title, "Stepper"), strconv.FormatFloat(v.Value, 'f', -1, 64))
}

// SegmentValue is a segmented control. SelectedIndex is -1 when nothing is
// selected.
type SegmentValue struct {
	Title         string
	CustomKey     string
	Segments      []string
	SelectedIndex int

	id uuid.UUID
}

// NewSegmentValue constructs a segmented row. An out of range index selects
// nothing.
func NewSegmentValue(title string, segments []string, selected int) SegmentValue {
	value := SegmentValue{Title: title, Segments: append([]string(nil), segments...), id: newID()}
	value.SelectedIndex = boundedIndex(selected, len(value.Segments))
	return value
}

// WithSelectedIndex returns a copy selecting index, or nothing when out of
// range.
func (v SegmentValue) WithSelectedIndex(index int) SegmentValue {
	v.SelectedIndex = boundedIndex(index, len(v.Segments))
	v.id = newID()
	return v
}

// SelectedValue returns the selected segment title or "".
func (v SegmentValue) SelectedValue() string {
	if v.SelectedIndex < 0 || v.SelectedIndex >= len(v.Segments) {
		return ""
	}
	return v.Segments[v.SelectedIndex]
}

func (v SegmentValue) ID() uuid.UUID       { return v.id }
func (v SegmentValue) OverrideKey() string { return v.CustomKey }
func (v SegmentValue) Item() Item          { return wrap(KindSegment, v) }

// EncodedValue implements Encodable.
func (v SegmentValue) EncodedValue() map[string]string {
	return single(keyFor(v.CustomKey, v.Title, "SegmentValue"), v.SelectedValue())
}

func boundedIndex(index, length int) int {
	if index < 0 || index >= length {
		return -1
	}
	return index
}
