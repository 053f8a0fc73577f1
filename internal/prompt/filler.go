package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formvalue/pkg/form"
)

// Option configures a Filler.
type Option func(*Filler)

// WithLogger routes filler diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Filler) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Filler walks a form and asks the driver for every editable row.
type Filler struct {
	driver Driver
	logger *slog.Logger
}

// NewFiller constructs a Filler. A nil driver falls back to the survey driver.
func NewFiller(driver Driver, options ...Option) *Filler {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	f := &Filler{driver: driver, logger: slog.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Fill prompts for each editable row in section order and returns a new form
// with every answer applied through the row's derivation. Rows that cannot be
// edited from a terminal (actions, buttons, read-only and custom rows) are
// kept as they are. The input form is never modified.
func (f *Filler) Fill(ctx context.Context, in form.Form) (form.Form, error) {
	out := in
	edited := 0
	for s, section := range in.Sections {
		for r, row := range section.Rows {
			if err := ctx.Err(); err != nil {
				return in, err
			}
			value, changed, err := f.promptRow(ctx, row)
			if err != nil {
				return in, fmt.Errorf("prompt: section %d row %d (%s): %w", s, r, row.Kind(), err)
			}
			if !changed {
				f.logger.Debug("prompt skipped row", "section", s, "row", r, "kind", row.Kind())
				continue
			}
			out, err = out.Replace(form.IndexPath{Section: s, Row: r}, value)
			if err != nil {
				return in, fmt.Errorf("prompt: %w", err)
			}
			edited++
		}
	}
	f.logger.Info("form filled", "title", in.Title, "edited", edited)
	return out, nil
}

func (f *Filler) promptRow(ctx context.Context, row form.Item) (form.Value, bool, error) {
	switch v := row.Value().(type) {
	case form.TextValue:
		answer, err := f.driver.Input(ctx, InputConfig{
			Message: v.Title,
			Default: v.Value,
			Help:    v.Placeholder,
			Validator: func(s string) error {
				return v.WithValue(s).Validate()
			},
		})
		if err != nil {
			return nil, false, err
		}
		return v.WithValue(answer), true, nil

	case form.NumericalValue:
		answer, err := f.driver.Input(ctx, InputConfig{
			Message: v.Title,
			Default: v.Value,
			Help:    v.Placeholder,
			Validator: func(s string) error {
				if err := checkNumber(s, v.NumberType); err != nil {
					return err
				}
				return v.WithValue(s).Validate()
			},
		})
		if err != nil {
			return nil, false, err
		}
		return v.WithValue(answer), true, nil

	case form.NoteValue:
		answer, err := f.driver.TextArea(ctx, TextAreaConfig{Message: v.Title, Default: v.Value, Help: v.Placeholder})
		if err != nil {
			return nil, false, err
		}
		return v.WithValue(answer), true, nil

	case form.DateValue:
		layout := v.ExportFormat
		if layout == "" {
			layout = form.DefaultDateExportFormat
		}
		date, err := f.askDate(ctx, v.Title, v.Date.Format(layout), layout)
		if err != nil {
			return nil, false, err
		}
		return v.WithDate(date), true, nil

	case form.DatePickerValue:
		date, err := f.askDate(ctx, v.Title, encodedSingle(v), v.ExportFormat)
		if err != nil {
			return nil, false, err
		}
		return v.WithDate(date), true, nil

	case form.DateTimeValue:
		date, err := f.askDate(ctx, v.Title, encodedSingle(v), v.ExportFormat)
		if err != nil {
			return nil, false, err
		}
		return v.WithDate(date), true, nil

	case form.TimeInputValue:
		answer, err := f.driver.Input(ctx, InputConfig{
			Message: v.Title,
			Default: v.Time,
			Help:    "e.g. 2:30 PM or 14:30",
			Validator: func(s string) error {
				if _, _, ok := v.WithTime(s).Clock(); !ok {
					return fmt.Errorf("%q is not a time of day", s)
				}
				return nil
			},
		})
		if err != nil {
			return nil, false, err
		}
		return v.WithTime(answer), true, nil

	case form.TimeValue:
		answer, err := f.driver.Input(ctx, InputConfig{
			Message: v.Title,
			Default: fmt.Sprintf("%02d:%02d", v.Hour, v.Minute),
			Help:    "24-hour HH:MM",
			Validator: func(s string) error {
				_, err := time.Parse("15:04", strings.TrimSpace(s))
				return err
			},
		})
		if err != nil {
			return nil, false, err
		}
		clock, err := time.Parse("15:04", strings.TrimSpace(answer))
		if err != nil {
			return nil, false, err
		}
		return v.WithTime(clock.Hour(), clock.Minute()), true, nil

	case form.ListSelectionValue:
		updated, err := f.askListSelection(ctx, v)
		if err != nil {
			return nil, false, err
		}
		return updated, true, nil

	case form.TokenValue:
		titles := make([]string, 0, len(v.Tokens))
		for _, token := range v.Tokens {
			titles = append(titles, token.Title)
		}
		answer, err := f.driver.Input(ctx, InputConfig{
			Message: v.Title,
			Default: strings.Join(titles, ", "),
			Help:    "comma separated",
		})
		if err != nil {
			return nil, false, err
		}
		return v.WithTokens(parseTokens(answer, v.Tokens)), true, nil

	case form.SwitchValue:
		answer, err := f.driver.Confirm(ctx, ConfirmConfig{Message: v.Title, Default: v.Value})
		if err != nil {
			return nil, false, err
		}
		return v.WithValue(answer), true, nil

	case form.SliderValue:
		number, err := f.askFloat(ctx, v.Title, v.Value, v.Minimum, v.Maximum)
		if err != nil {
			return nil, false, err
		}
		return v.WithValue(number), true, nil

	case form.StepperValue:
		number, err := f.askFloat(ctx, v.Title, v.Value, v.Minimum, v.Maximum)
		if err != nil {
			return nil, false, err
		}
		return v.WithValue(number), true, nil

	case form.PickerValue:
		if len(v.Options) == 0 {
			return nil, false, nil
		}
		idx, err := f.driver.Select(ctx, SelectConfig{Message: v.Title, Options: v.Options, DefaultIndex: v.SelectedIndex})
		if err != nil {
			return nil, false, err
		}
		return v.WithSelectedIndex(idx), true, nil

	case form.PickerSelectionValue:
		if len(v.Components) == 0 {
			return nil, false, nil
		}
		for c, options := range v.Components {
			current := -1
			if c < len(v.SelectedIndices) {
				current = v.SelectedIndices[c]
			}
			idx, err := f.driver.Select(ctx, SelectConfig{
				Message:      fmt.Sprintf("%s (%d/%d)", v.Title, c+1, len(v.Components)),
				Options:      options,
				DefaultIndex: current,
			})
			if err != nil {
				return nil, false, err
			}
			v = v.WithSelection(c, idx)
		}
		return v, true, nil

	case form.SegmentValue:
		if len(v.Segments) == 0 {
			return nil, false, nil
		}
		idx, err := f.driver.Select(ctx, SelectConfig{Message: v.Title, Options: v.Segments, DefaultIndex: v.SelectedIndex})
		if err != nil {
			return nil, false, err
		}
		return v.WithSelectedIndex(idx), true, nil

	case form.ColorValue:
		answer, err := f.driver.Input(ctx, InputConfig{
			Message: v.Title,
			Default: v.Color.Hex(),
			Help:    "#rgb, #rrggbb or #rrggbbaa",
			Validator: func(s string) error {
				_, err := form.ParseHexColor(s)
				return err
			},
		})
		if err != nil {
			return nil, false, err
		}
		color, err := form.ParseHexColor(answer)
		if err != nil {
			return nil, false, err
		}
		return v.WithColor(color), true, nil

	case form.WebValue:
		answer, err := f.driver.Input(ctx, InputConfig{Message: v.Title, Default: v.URL})
		if err != nil {
			return nil, false, err
		}
		return v.WithURL(strings.TrimSpace(answer)), true, nil

	case form.MapValue:
		coordinate, err := f.askCoordinate(ctx, v.Title, v.Coordinate)
		if err != nil {
			return nil, false, err
		}
		return v.WithCoordinate(coordinate), true, nil

	case form.MapActionValue:
		coordinate, err := f.askCoordinate(ctx, v.Title, v.Coordinate)
		if err != nil {
			return nil, false, err
		}
		return v.WithCoordinate(coordinate), true, nil
	}
	return nil, false, nil
}

func (f *Filler) askListSelection(ctx context.Context, v form.ListSelectionValue) (form.ListSelectionValue, error) {
	if v.Loading != nil && len(v.Values()) == 0 {
		loaded, err := v.Load(ctx)
		if err != nil {
			return v, err
		}
		f.logger.Debug("options loaded", "title", v.Title, "count", len(loaded.Values()))
		v = loaded
	}
	options := v.Values()
	selected := v.SelectedIndices()

	if len(options) > 0 {
		if v.SelectionType() == form.SelectionMultiple {
			indices, err := f.driver.MultiSelect(ctx, SelectConfig{Message: v.Title, Options: options, Defaults: selected})
			if err != nil {
				return v, err
			}
			v = v.WithSelectedIndices(indices...)
		} else {
			current := 0
			if len(selected) > 0 {
				current = selected[0]
			}
			idx, err := f.driver.Select(ctx, SelectConfig{Message: v.Title, Options: options, DefaultIndex: current})
			if err != nil {
				return v, err
			}
			v = v.WithSelectedIndices(idx)
		}
	}

	if v.WriteIn == nil {
		return v, nil
	}
	message := strings.TrimSpace(v.WriteIn.Placeholder)
	if message == "" {
		message = "Other"
	}
	answer, err := f.driver.Input(ctx, InputConfig{Message: message, Help: "leave blank to skip"})
	if err != nil {
		return v, err
	}
	if strings.TrimSpace(answer) == "" {
		return v, nil
	}
	return v.WithWriteIn(answer), nil
}

func (f *Filler) askDate(ctx context.Context, title, current, layout string) (time.Time, error) {
	answer, err := f.driver.Input(ctx, InputConfig{
		Message: title,
		Default: current,
		Validator: func(s string) error {
			_, err := parseDate(s, layout)
			return err
		},
	})
	if err != nil {
		return time.Time{}, err
	}
	return parseDate(answer, layout)
}

func (f *Filler) askFloat(ctx context.Context, title string, current, minimum, maximum float64) (float64, error) {
	answer, err := f.driver.Input(ctx, InputConfig{
		Message: title,
		Default: strconv.FormatFloat(current, 'f', -1, 64),
		Help:    fmt.Sprintf("between %s and %s", strconv.FormatFloat(minimum, 'f', -1, 64), strconv.FormatFloat(maximum, 'f', -1, 64)),
		Validator: func(s string) error {
			return checkNumber(s, form.NumberTypeDecimal)
		},
	})
	if err != nil {
		return 0, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return current, nil
	}
	return strconv.ParseFloat(answer, 64)
}

func (f *Filler) askCoordinate(ctx context.Context, title string, current *form.Coordinate) (*form.Coordinate, error) {
	def := ""
	if current != nil {
		def = current.String()
	}
	answer, err := f.driver.Input(ctx, InputConfig{
		Message: title,
		Default: def,
		Help:    "lat,lng or blank for none",
		Validator: func(s string) error {
			_, err := parseCoordinate(s)
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	return parseCoordinate(answer)
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04", form.DefaultDateExportFormat, form.DefaultTimeExportFormat}

func parseDate(raw, layout string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	layouts := dateLayouts
	if layout != "" {
		layouts = append([]string{layout}, dateLayouts...)
	}
	for _, candidate := range layouts {
		if parsed, err := time.Parse(candidate, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a recognised date", raw)
}

func parseCoordinate(raw string) (*form.Coordinate, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	lat, lng, ok := strings.Cut(raw, ",")
	if !ok {
		return nil, errors.New("expected lat,lng")
	}
	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil || latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("latitude %q out of range", lat)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil || longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("longitude %q out of range", lng)
	}
	return &form.Coordinate{Latitude: latitude, Longitude: longitude}, nil
}

func checkNumber(raw string, numberType form.NumberType) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if numberType == form.NumberTypeInteger {
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Errorf("%q is not a whole number", raw)
		}
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return fmt.Errorf("%q is not a number", raw)
	}
	return nil
}

// parseTokens splits comma separated titles, keeping the identifiers of
// tokens that survive the edit.
func parseTokens(raw string, existing []form.Token) []form.Token {
	known := make(map[string]form.Token, len(existing))
	for _, token := range existing {
		known[strings.ToLower(token.Title)] = token
	}
	var out []form.Token
	for _, part := range strings.Split(raw, ",") {
		title := strings.TrimSpace(part)
		if title == "" {
			continue
		}
		if token, ok := known[strings.ToLower(title)]; ok {
			out = append(out, token)
			continue
		}
		out = append(out, form.Token{Title: title})
	}
	return out
}

func encodedSingle(v form.Encodable) string {
	for _, value := range v.EncodedValue() {
		return value
	}
	return ""
}
