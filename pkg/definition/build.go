package definition

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formvalue/pkg/form"
	"github.com/goliatone/go-formvalue/pkg/sources"
)

var (
	// ErrUnknownKind is returned for rows whose kind is not a form.Kind.
	ErrUnknownKind = errors.New("definition: unknown row kind")
	// ErrInvalidValue is returned for enumerated row fields holding an
	// unknown value.
	ErrInvalidValue = errors.New("definition: invalid")
)

// Build converts a decoded document into a form.
func Build(doc Document, source string) (form.Form, error) {
	sections := make([]form.Section, 0, len(doc.Sections))
	for sectionIdx, sectionFile := range doc.Sections {
		section := form.Section{Title: sectionFile.Title, Footer: sectionFile.Footer}
		for rowIdx, row := range sectionFile.Rows {
			value, err := buildRow(row)
			if err != nil {
				return form.Form{}, fmt.Errorf("definition: %s section %d row %d: %w", source, sectionIdx, rowIdx, err)
			}
			section.Rows = append(section.Rows, value.Item())
		}
		sections = append(sections, section)
	}
	return form.New(doc.Title, sections...), nil
}

func buildRow(row RowFile) (form.Value, error) {
	kind, ok := form.ParseKind(row.Kind)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, row.Kind)
	}
	validators, err := buildValidators(row.Validators)
	if err != nil {
		return nil, err
	}
	if len(validators) > 0 && kind != form.KindText && kind != form.KindNumerical && kind != form.KindNote {
		return nil, fmt.Errorf("validators are not supported on %s rows", kind)
	}

	switch kind {
	case form.KindText:
		v := form.NewTextValue(row.Title, row.Value)
		v.CustomKey, v.Placeholder, v.Validators = row.Key, row.Placeholder, validators
		return v, nil
	case form.KindNumerical:
		v := form.NewNumericalValue(row.Title, row.Value)
		v.CustomKey, v.Placeholder, v.Validators = row.Key, row.Placeholder, validators
		if row.NumberType != "" {
			numberType := form.NumberType(row.NumberType)
			if !numberType.Valid() {
				return nil, fmt.Errorf("%w numberType %q", ErrInvalidValue, row.NumberType)
			}
			v.NumberType = numberType
		}
		return v, nil
	case form.KindNote:
		v := form.NewNoteValue(row.Title, row.Value)
		v.CustomKey, v.Placeholder, v.Validators = row.Key, row.Placeholder, validators
		return v, nil
	case form.KindReadOnly:
		v := form.NewReadOnlyValue(row.Title, row.Value)
		v.CustomKey = row.Key
		return v, nil
	case form.KindDate:
		date, err := parseDate(row.Date, row.Format, form.DefaultDateExportFormat)
		if err != nil {
			return nil, err
		}
		v := form.NewDateValue(row.Title, date)
		v.CustomKey, v.ExportFormat, v.DisplayFormat = row.Key, row.Format, row.Display
		return v, nil
	case form.KindDatePicker:
		date, err := parseDate(row.Date, row.Format, form.DefaultDateTimeFormat)
		if err != nil {
			return nil, err
		}
		mode := form.DatePickerMode(row.Mode)
		if row.Mode != "" && !mode.Valid() {
			return nil, fmt.Errorf("%w mode %q", ErrInvalidValue, row.Mode)
		}
		v := form.NewDatePickerValue(row.Title, date, mode)
		v.CustomKey, v.ExportFormat = row.Key, row.Format
		return v, nil
	case form.KindDateTime:
		date, err := parseDate(row.Date, row.Format, form.DefaultDateTimeFormat)
		if err != nil {
			return nil, err
		}
		v := form.NewDateTimeValue(row.Title, date)
		v.CustomKey, v.ExportFormat = row.Key, row.Format
		return v, nil
	case form.KindTimeInput:
		v := form.NewTimeInputValue(row.Title, row.Value)
		v.CustomKey = row.Key
		if row.Export != "" {
			export := form.TimeExportFormat(row.Export)
			if !export.Valid() {
				return nil, fmt.Errorf("%w export %q", ErrInvalidValue, row.Export)
			}
			v.ExportFormat = export
		}
		return v, nil
	case form.KindTime:
		v := form.NewTimeValue(row.Title, row.Hour, row.Minute)
		v.CustomKey, v.Format = row.Key, row.Format
		return v, nil
	case form.KindListSelection:
		return buildListSelection(row)
	case form.KindToken:
		v := form.NewTokenValue(row.Title, row.Tokens...)
		v.CustomKey, v.Placeholder = row.Key, row.Placeholder
		return v, nil
	case form.KindSwitch:
		on, err := parseBool(row.Value)
		if err != nil {
			return nil, err
		}
		v := form.NewSwitchValue(row.Title, on)
		v.CustomKey = row.Key
		return v, nil
	case form.KindSlider:
		value, err := parseFloat(row.Value)
		if err != nil {
			return nil, err
		}
		v := form.NewSliderValue(row.Title, value, floatOr(row.Min, 0), floatOr(row.Max, 1))
		v.CustomKey, v.DecimalPlaces = row.Key, row.Decimals
		return v, nil
	case form.KindStepper:
		value, err := parseFloat(row.Value)
		if err != nil {
			return nil, err
		}
		v := form.NewStepperValue(row.Title, value, floatOr(row.Min, 0), floatOr(row.Max, 100))
		v.CustomKey = row.Key
		if row.Step > 0 {
			v.Step = row.Step
		}
		return v, nil
	case form.KindPicker:
		v := form.NewPickerValue(row.Title, optionTitles(row.Options), firstSelected(row.Selected))
		v.CustomKey = row.Key
		return v, nil
	case form.KindSegment:
		v := form.NewSegmentValue(row.Title, optionTitles(row.Options), firstSelected(row.Selected))
		v.CustomKey = row.Key
		return v, nil
	case form.KindPickerSelection:
		v := form.NewPickerSelectionValue(row.Title, row.Components...)
		for component, selected := range row.Selected {
			v = v.WithSelection(component, selected)
		}
		v.CustomKey, v.Separator = row.Key, row.Separator
		return v, nil
	case form.KindMap:
		v := form.NewMapValue(row.Title, row.Coordinate)
		v.CustomKey, v.Address = row.Key, row.Address
		return v, nil
	case form.KindMapAction:
		v := form.NewMapActionValue(row.Title, row.Coordinate, row.Radius)
		v.CustomKey, v.Address = row.Key, row.Address
		return v, nil
	case form.KindAction:
		v := form.NewActionValue(row.Title)
		v.CustomKey = row.Key
		if row.State != "" {
			state := form.ActionState(row.State)
			if !state.Valid() {
				return nil, fmt.Errorf("%w state %q", ErrInvalidValue, row.State)
			}
			v.State = state
		}
		return v, nil
	case form.KindPush:
		v := form.NewPushValue(row.Title, row.Destination)
		v.CustomKey, v.Detail = row.Key, row.Detail
		return v, nil
	case form.KindButton:
		style := form.ButtonStyle(row.Style)
		if row.Style != "" && !style.Valid() {
			return nil, fmt.Errorf("%w style %q", ErrInvalidValue, row.Style)
		}
		v := form.NewButtonValue(row.Title, style)
		v.CustomKey = row.Key
		return v, nil
	case form.KindCustom:
		v := form.NewCustomValue(row.Title, row.Fields)
		v.CustomKey = row.Key
		return v, nil
	case form.KindWeb:
		v := form.NewWebValue(row.Title, row.URL)
		v.CustomKey, v.HTML = row.Key, row.HTML
		return v, nil
	case form.KindColor:
		color := form.RGBA{A: 1}
		if strings.TrimSpace(row.Color) != "" {
			parsed, err := form.ParseHexColor(row.Color)
			if err != nil {
				return nil, err
			}
			color = parsed
		}
		v := form.NewColorValue(row.Title, color)
		v.CustomKey = row.Key
		return v, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, row.Kind)
}

func buildListSelection(row RowFile) (form.ListSelectionValue, error) {
	options := []form.ListSelectionOption{
		form.ListCustomKey(row.Key),
		form.ListItems(row.Options...),
	}
	if row.Selection != "" {
		selection := form.SelectionType(row.Selection)
		if !selection.Valid() {
			return form.ListSelectionValue{}, fmt.Errorf("%w selection %q", ErrInvalidValue, row.Selection)
		}
		options = append(options, form.ListSelectionType(selection))
	}
	if len(row.Selected) > 0 {
		options = append(options, form.ListSelectedIndices(row.Selected...))
	}
	if len(row.Stores) > 0 {
		options = append(options, form.ListItemStores(row.Stores...))
	}
	if row.WriteIn != nil {
		options = append(options, form.ListWriteIn(form.WriteInConfiguration{
			Placeholder:  row.WriteIn.Placeholder,
			PinFirstItem: row.WriteIn.PinFirst,
		}))
	}
	if name := strings.TrimSpace(row.Source); name != "" {
		if len(row.Options) > 0 || len(row.Stores) > 0 {
			return form.ListSelectionValue{}, fmt.Errorf("source %q cannot be combined with inline options", name)
		}
		source, err := sources.Default.Lookup(name, row.Query, row.Limit)
		if err != nil {
			return form.ListSelectionValue{}, err
		}
		options = append(options, form.ListLoading(form.Loading{
			Source:              source,
			SelectedIndices:     row.Selected,
			SelectedIdentifiers: row.Preselect,
		}))
	}
	return form.NewListSelectionValue(row.Title, nil, options...), nil
}

func buildValidators(files []ValidatorFile) ([]form.Validator, error) {
	if len(files) == 0 {
		return nil, nil
	}
	out := make([]form.Validator, 0, len(files))
	for _, file := range files {
		switch strings.TrimSpace(file.Rule) {
		case form.RuleRequired:
			out = append(out, form.Required())
		case form.RuleMinLength, form.RuleMaxLength:
			n, err := strconv.Atoi(strings.TrimSpace(file.Value))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("validator %s: invalid length %q", file.Rule, file.Value)
			}
			if file.Rule == form.RuleMinLength {
				out = append(out, form.MinLength(n))
			} else {
				out = append(out, form.MaxLength(n))
			}
		case form.RulePattern:
			re, err := regexp.Compile(file.Value)
			if err != nil {
				return nil, fmt.Errorf("validator pattern: %w", err)
			}
			out = append(out, form.MatchPattern(re))
		default:
			return nil, fmt.Errorf("unknown validator rule %q", file.Rule)
		}
	}
	return out, nil
}

func parseDate(raw, layout, fallback string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Now(), nil
	}
	if strings.TrimSpace(layout) == "" {
		layout = fallback
	}
	date, err := time.Parse(layout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q does not match layout %q", raw, layout)
	}
	return date, nil
}

func parseBool(raw string) (bool, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false, nil
	}
	on, err := strconv.ParseBool(trimmed)
	if err != nil {
		return false, fmt.Errorf("switch value %q is not a boolean", raw)
	}
	return on, nil
}

func parseFloat(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not a number", raw)
	}
	return value, nil
}

func floatOr(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}

func optionTitles(items []form.ListItem) []string {
	out := make([]string, len(items))
	for idx, item := range items {
		out[idx] = item.Title
	}
	return out
}

func firstSelected(selected []int) int {
	if len(selected) == 0 {
		return -1
	}
	return selected[0]
}
