package form

import (
	"strings"

	"github.com/google/uuid"
)

// Kind tags the variant held by an Item.
type Kind string

const (
	KindText            Kind = "text"
	KindNumerical       Kind = "numerical"
	KindDate            Kind = "date"
	KindDatePicker      Kind = "datePicker"
	KindDateTime        Kind = "dateTime"
	KindTimeInput       Kind = "timeInput"
	KindTime            Kind = "time"
	KindListSelection   Kind = "listSelection"
	KindToken           Kind = "token"
	KindSwitch          Kind = "switch"
	KindSlider          Kind = "slider"
	KindStepper         Kind = "stepper"
	KindPicker          Kind = "picker"
	KindPickerSelection Kind = "pickerSelection"
	KindMap             Kind = "map"
	KindMapAction       Kind = "mapAction"
	KindAction          Kind = "action"
	KindPush            Kind = "push"
	KindReadOnly        Kind = "readOnly"
	KindCustom          Kind = "custom"
	KindWeb             Kind = "web"
	KindSegment         Kind = "segment"
	KindNote            Kind = "note"
	KindButton          Kind = "button"
	KindColor           Kind = "color"
)

var kinds = []Kind{
	KindText, KindNumerical, KindDate, KindDatePicker, KindDateTime,
	KindTimeInput, KindTime, KindListSelection, KindToken, KindSwitch,
	KindSlider, KindStepper, KindPicker, KindPickerSelection, KindMap,
	KindMapAction, KindAction, KindPush, KindReadOnly, KindCustom, KindWeb,
	KindSegment, KindNote, KindButton, KindColor,
}

// Kinds returns every row kind in declaration order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// ParseKind resolves a kind name case-insensitively.
func ParseKind(raw string) (Kind, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, kind := range kinds {
		if strings.EqualFold(string(kind), trimmed) {
			return kind, true
		}
	}
	return "", false
}

// Item is the closed sum type over every row kind. Only values defined in this
// package can produce an Item, and each Item holds exactly one of them. The
// zero Item holds nothing.
type Item struct {
	kind  Kind
	value Value
}

func wrap(kind Kind, value Value) Item {
	return Item{kind: kind, value: value}
}

// Kind reports the active variant.
func (i Item) Kind() Kind {
	return i.kind
}

// Value returns the wrapped value. Use a type switch to reach the concrete
// kind.
func (i Item) Value() Value {
	return i.value
}

// IsZero reports whether the item wraps no value.
func (i Item) IsZero() bool {
	return i.value == nil
}

// ID returns the identifier of the wrapped value, or uuid.Nil.
func (i Item) ID() uuid.UUID {
	if i.value == nil {
		return uuid.Nil
	}
	return i.value.ID()
}

// EncodedValue delegates to the wrapped value. The zero item encodes to an
// empty map.
func (i Item) EncodedValue() map[string]string {
	if i.value == nil {
		return map[string]string{}
	}
	return i.value.EncodedValue()
}

// IsSelectable delegates to the wrapped value when it implements Selectable.
func (i Item) IsSelectable() bool {
	if selectable, ok := i.value.(Selectable); ok {
		return selectable.IsSelectable()
	}
	return false
}

var (
	_ Value = TextValue{}
	_ Value = NumericalValue{}
	_ Value = DateValue{}
	_ Value = DatePickerValue{}
	_ Value = DateTimeValue{}
	_ Value = TimeInputValue{}
	_ Value = TimeValue{}
	_ Value = ListSelectionValue{}
	_ Value = TokenValue{}
	_ Value = SwitchValue{}
	_ Value = SliderValue{}
	_ Value = StepperValue{}
	_ Value = PickerValue{}
	_ Value = PickerSelectionValue{}
	_ Value = MapValue{}
	_ Value = MapActionValue{}
	_ Value = ActionValue{}
	_ Value = PushValue{}
	_ Value = ReadOnlyValue{}
	_ Value = CustomValue{}
	_ Value = WebValue{}
	_ Value = SegmentValue{}
	_ Value = NoteValue{}
	_ Value = ButtonValue{}
	_ Value = ColorValue{}

	_ Validatable = TextValue{}
	_ Validatable = NumericalValue{}
	_ Validatable = NoteValue{}
)
