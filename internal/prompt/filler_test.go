package prompt

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalue/pkg/form"
)

type stubDriver struct {
	inputs    []string
	textAreas []string
	confirms  []bool
	selects   []int
	multis    [][]int

	inputPos, textPos, confirmPos, selectPos, multiPos int

	messages []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.confirmPos >= len(s.confirms) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirms[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.selectPos >= len(s.selects) {
		return -1, errors.New("no select scripted")
	}
	val := s.selects[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.multiPos >= len(s.multis) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multis[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleForm() form.Form {
	languages := form.NewListSelectionValue("Languages", []string{"Go", "Rust"},
		form.ListSelectionType(form.SelectionMultiple),
		form.ListWriteIn(form.WriteInConfiguration{Placeholder: "Another language"}),
	)
	return form.New("Profile",
		form.NewSection("About",
			form.NewTextValue("Name", ""),
			form.NewNumericalValue("Age", ""),
			form.NewNoteValue("Bio", ""),
			form.NewReadOnlyValue("Plan", "free"),
		),
		form.NewSection("Preferences",
			languages,
			form.NewSwitchValue("Newsletter", false),
			form.NewSegmentValue("Theme", []string{"Light", "Dark"}, 0),
			form.NewTimeInputValue("Start", ""),
			form.NewColorValue("Accent", form.RGBA{}),
			form.NewActionValue("Reset"),
		),
	)
}

func TestFiller_Fill(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "36", "Zig", "2:30 PM", "#ff8000"},
		textAreas: []string{"Countess"},
		multis:    [][]int{{0}},
		confirms:  []bool{true},
		selects:   []int{1},
	}
	original := sampleForm()

	filled, err := NewFiller(driver, WithLogger(quietLogger())).Fill(context.Background(), original)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := map[string]string{
		"Name":         "Ada",
		"Age":          "36",
		"Bio":          "Countess",
		"Plan":         "free",
		"Languages":    "Go,Zig",
		"Newsletter":   "true",
		"SegmentValue": "Dark",
		"Start":        "14:30",
		"Accent":       "255,128,0",
	}
	if diff := cmp.Diff(want, filled.EncodedValue()); diff != "" {
		t.Fatalf("encoded mismatch (-want +got):\n%s", diff)
	}

	wantMessages := []string{"Name", "Age", "Bio", "Languages", "Another language", "Newsletter", "Theme", "Start", "Accent"}
	if diff := cmp.Diff(wantMessages, driver.messages); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}

	if original.EncodedValue()["Name"] != "" {
		t.Fatalf("fill must not modify the input form")
	}
}

func TestFiller_ValidationErrorStops(t *testing.T) {
	age := form.NewNumericalValue("Age", "")
	age.NumberType = form.NumberTypeInteger
	input := form.New("", form.NewSection("", age))

	driver := &stubDriver{inputs: []string{"3.5"}}
	_, err := NewFiller(driver, WithLogger(quietLogger())).Fill(context.Background(), input)
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestFiller_DriverErrorWrapped(t *testing.T) {
	input := form.New("", form.NewSection("", form.NewSwitchValue("On", false)))

	driver := &stubDriver{}
	_, err := NewFiller(driver, WithLogger(quietLogger())).Fill(context.Background(), input)
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := err.Error(); got != "prompt: section 0 row 0 (switch): no confirm scripted" {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestFiller_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFiller(&stubDriver{}, WithLogger(quietLogger())).Fill(ctx, sampleForm())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParseTokensKeepsIdentifiers(t *testing.T) {
	existing := []form.Token{{Title: "Go", Identifier: "lang-go"}}
	got := parseTokens(" go , Zig ,, ", existing)
	want := []form.Token{{Title: "Go", Identifier: "lang-go"}, {Title: "Zig"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCoordinate(t *testing.T) {
	got, err := parseCoordinate("38.7, -9.14")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(&form.Coordinate{Latitude: 38.7, Longitude: -9.14}, got); diff != "" {
		t.Fatalf("coordinate mismatch (-want +got):\n%s", diff)
	}
	if blank, err := parseCoordinate(" "); err != nil || blank != nil {
		t.Fatalf("blank should clear the coordinate, got %v %v", blank, err)
	}
	for _, raw := range []string{"38.7", "91,0", "0,181", "a,b"} {
		if _, err := parseCoordinate(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestSelectHelpers(t *testing.T) {
	options := []string{"a", "b", "c"}
	if got := indexOf(options, "c"); got != 2 {
		t.Fatalf("indexOf: got %d", got)
	}
	if got := indexOf(options, "z"); got != -1 {
		t.Fatalf("indexOf missing: got %d", got)
	}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"c", "a"})); diff != "" {
		t.Fatalf("indicesOf mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, defaultsFromIndices(options, []int{1, 7, -1})); diff != "" {
		t.Fatalf("defaultsFromIndices mismatch (-want +got):\n%s", diff)
	}
}

func TestFiller_LoadsDeferredOptions(t *testing.T) {
	source := form.ItemSourceFunc(func(context.Context) ([]form.ListItem, error) {
		return []form.ListItem{{Title: "Lisbon", Identifier: "Europe/Lisbon"}, {Title: "Tokyo", Identifier: "Asia/Tokyo"}}, nil
	})
	zone := form.NewListSelectionValue("Zone", nil, form.ListLoading(form.Loading{Source: source}))
	input := form.New("", form.NewSection("", zone))

	driver := &stubDriver{selects: []int{1}}
	filled, err := NewFiller(driver, WithLogger(quietLogger())).Fill(context.Background(), input)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"Zone": "Asia/Tokyo"}, filled.EncodedValue()); diff != "" {
		t.Fatalf("encoded mismatch (-want +got):\n%s", diff)
	}
}

func TestFiller_LoadFailureStops(t *testing.T) {
	source := form.ItemSourceFunc(func(context.Context) ([]form.ListItem, error) {
		return nil, errors.New("offline")
	})
	zone := form.NewListSelectionValue("Zone", nil, form.ListLoading(form.Loading{Source: source}))

	_, err := NewFiller(&stubDriver{}, WithLogger(quietLogger())).Fill(context.Background(), form.New("", form.NewSection("", zone)))
	if err == nil || !strings.Contains(err.Error(), "offline") {
		t.Fatalf("expected load failure, got %v", err)
	}
}

func TestFiller_BlankNumberKeepsCurrent(t *testing.T) {
	volume := form.NewSliderValue("Volume", 4, 0, 10)
	seats := form.NewStepperValue("Seats", 2, 1, 8)
	input := form.New("", form.NewSection("", volume, seats))

	driver := &stubDriver{inputs: []string{"", "  "}}
	filled, err := NewFiller(driver, WithLogger(quietLogger())).Fill(context.Background(), input)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"Volume": "4", "Seats": "2"}, filled.EncodedValue()); diff != "" {
		t.Fatalf("encoded mismatch (-want +got):\n%s", diff)
	}
}
