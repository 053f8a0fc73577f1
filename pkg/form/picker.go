package form

import (
	"strings"

	"github.com/google/uuid"
)

// PickerValue is a single wheel of options. SelectedIndex is -1 when nothing
// is selected.
type PickerValue struct {
	Title         string
	CustomKey     string
	Options       []string
	SelectedIndex int

	id uuid.UUID
}

// NewPickerValue constructs a picker row.
func NewPickerValue(title string, options []string, selected int) PickerValue {
	value := PickerValue{Title: title, Options: append([]string(nil), options...), id: newID()}
	value.SelectedIndex = boundedIndex(selected, len(value.Options))
	return value
}

// WithSelectedIndex returns a copy selecting index, or nothing when out of
// range.
func (v PickerValue) WithSelectedIndex(index int) PickerValue {
	v.SelectedIndex = boundedIndex(index, len(v.Options))
	v.id = newID()
	return v
}

// SelectedValue returns the selected option or "".
func (v PickerValue) SelectedValue() string {
	if v.SelectedIndex < 0 || v.SelectedIndex >= len(v.Options) {
		return ""
	}
	return v.Options[v.SelectedIndex]
}

func (v PickerValue) ID() uuid.UUID       { return v.id }
func (v PickerValue) OverrideKey() string { return v.CustomKey }
func (v PickerValue) Item() Item          { return wrap(KindPicker, v) }
func (v PickerValue) IsSelectable() bool  { return true }

// EncodedValue implements Encodable.
func (v PickerValue) EncodedValue() map[string]string {
	return single(keyFor(v.CustomKey, v.Title, "Picker"), v.SelectedValue())
}

// PickerSelectionValue is a multi-wheel picker. SelectedIndices holds one row
// per component and stays aligned with Components; -1 marks a component with
// no selection.
type PickerSelectionValue struct {
	Title           string
	CustomKey       string
	Components      [][]string
	SelectedIndices []int
	Separator       string

	id uuid.UUID
}

// NewPickerSelectionValue constructs a picker with every component
// unselected.
func NewPickerSelectionValue(title string, components ...[]string) PickerSelectionValue {
	copied := make([][]string, len(components))
	selected := make([]int, len(components))
	for idx, component := range components {
		copied[idx] = append([]string(nil), component...)
		selected[idx] = -1
	}
	return PickerSelectionValue{
		Title:           title,
		Components:      copied,
		SelectedIndices: selected,
		id:              newID(),
	}
}

// WithSelection returns a copy selecting row in component. An unknown
// component leaves the selection unchanged; an out of range row clears that
// component.
func (v PickerSelectionValue) WithSelection(component, row int) PickerSelectionValue {
	indices := v.alignedIndices()
	if component >= 0 && component < len(v.Components) {
		indices[component] = boundedIndex(row, len(v.Components[component]))
	}
	v.SelectedIndices = indices
	v.id = newID()
	return v
}

func (v PickerSelectionValue) alignedIndices() []int {
	indices := make([]int, len(v.Components))
	for idx := range indices {
		indices[idx] = -1
		if idx < len(v.SelectedIndices) {
			indices[idx] = boundedIndex(v.SelectedIndices[idx], len(v.Components[idx]))
		}
	}
	return indices
}

// SelectedValues returns the selected row of each component, "" where none is
// selected.
func (v PickerSelectionValue) SelectedValues() []string {
	indices := v.alignedIndices()
	out := make([]string, len(indices))
	for component, row := range indices {
		if row >= 0 {
			out[component] = v.Components[component][row]
		}
	}
	return out
}

func (v PickerSelectionValue) ID() uuid.UUID       { return v.id }
func (v PickerSelectionValue) OverrideKey() string { return v.CustomKey }
func (v PickerSelectionValue) Item() Item          { return wrap(KindPickerSelection, v) }
func (v PickerSelectionValue) IsSelectable() bool  { return true }

// EncodedValue implements Encodable. Components without a selection are
// skipped.
func (v PickerSelectionValue) EncodedValue() map[string]string {
	separator := v.Separator
	if separator == "" {
		separator = " "
	}
	var parts []string
	for _, value := range v.SelectedValues() {
		if value != "" {
			parts = append(parts, value)
		}
	}
	return single(keyFor(v.CustomKey, v.Title, "PickerSelection"), strings.Join(parts, separator))
}
