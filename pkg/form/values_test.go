package form

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var sampleDate = time.Date(2024, time.March, 9, 14, 30, 0, 0, time.UTC)

func sampleValues() []Value {
	return []Value{
		NewTextValue("Name", "Ada"),
		NewNumericalValue("Age", "36"),
		NewDateValue("Birthday", sampleDate),
		NewDatePickerValue("Start", sampleDate, DatePickerModeDate),
		NewDateTimeValue("Meeting", sampleDate),
		NewTimeInputValue("Arrival", "2:30 PM"),
		NewTimeValue("Alarm", 7, 5),
		NewListSelectionValue("Color", []string{"Red", "Green"}, ListSelectedIndex(0)),
		NewTokenValue("Tags", Token{Title: "go"}),
		NewSwitchValue("Subscribe", true),
		NewSliderValue("Volume", 0.5, 0, 1),
		NewStepperValue("Guests", 2, 0, 10),
		NewPickerValue("Size", []string{"S", "M"}, 1),
		NewPickerSelectionValue("Duration", []string{"1", "2"}, []string{"h", "m"}),
		NewMapValue("Venue", &Coordinate{Latitude: 1, Longitude: 2}),
		NewMapActionValue("Area", &Coordinate{Latitude: 3, Longitude: 4}, 100),
		NewActionValue("Verify"),
		NewPushValue("Settings", "settings"),
		NewReadOnlyValue("Plan", "Pro"),
		NewCustomValue("Custom", map[string]string{"a": "1"}),
		NewWebValue("Terms", "https://example.com/terms"),
		NewSegmentValue("Mode", []string{"Walk", "Drive"}, 0),
		NewNoteValue("Notes", "hello"),
		NewButtonValue("Submit", ButtonStyleDefault),
		NewColorValue("Accent", RGBA{R: 1, G: 0.5, B: 0, A: 1}),
	}
}

func TestItem_EveryKindWrapsItsValue(t *testing.T) {
	values := sampleValues()
	if len(values) != len(Kinds()) {
		t.Fatalf("sample covers %d kinds, package declares %d", len(values), len(Kinds()))
	}

	seen := make(map[Kind]bool)
	for _, value := range values {
		item := value.Item()
		if item.IsZero() {
			t.Fatalf("%T produced a zero item", value)
		}
		if item.ID() != value.ID() {
			t.Fatalf("%T item id mismatch", value)
		}
		seen[item.Kind()] = true
	}
	for _, kind := range Kinds() {
		if !seen[kind] {
			t.Fatalf("no sample value for kind %q", kind)
		}
	}
}

func TestParseKind(t *testing.T) {
	if kind, ok := ParseKind(" ListSelection "); !ok || kind != KindListSelection {
		t.Fatalf("parse kind: got %q ok=%v", kind, ok)
	}
	if _, ok := ParseKind("carousel"); ok {
		t.Fatalf("unknown kind parsed")
	}
}

func TestZeroItem(t *testing.T) {
	var item Item
	if !item.IsZero() || item.IsSelectable() || len(item.EncodedValue()) != 0 {
		t.Fatalf("zero item should be inert")
	}
}

func TestEncodedValue_KeyPrecedence(t *testing.T) {
	text := NewTextValue("Full name", "Ada")
	if diff := cmp.Diff(map[string]string{"Full name": "Ada"}, text.EncodedValue()); diff != "" {
		t.Fatalf("title key mismatch (-want +got):\n%s", diff)
	}

	keyed := text
	keyed.CustomKey = "full_name"
	if diff := cmp.Diff(map[string]string{"full_name": "Ada"}, keyed.EncodedValue()); diff != "" {
		t.Fatalf("custom key mismatch (-want +got):\n%s", diff)
	}

	segment := NewSegmentValue("", []string{"A", "B"}, 1)
	if diff := cmp.Diff(map[string]string{"SegmentValue": "B"}, segment.EncodedValue()); diff != "" {
		t.Fatalf("segment fallback mismatch (-want +got):\n%s", diff)
	}

	date := NewDateValue("", sampleDate)
	if diff := cmp.Diff(map[string]string{"Date": "2024-03-09"}, date.EncodedValue()); diff != "" {
		t.Fatalf("date fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodedValue_CustomKeyOnlyChangesKey(t *testing.T) {
	for _, value := range sampleValues() {
		before := value.EncodedValue()
		if len(before) != 1 || value.Item().Kind() == KindCustom {
			continue
		}
		after := withCustomKey(t, value, "override").EncodedValue()
		if len(after) != 1 {
			t.Fatalf("%T: custom key changed entry count", value)
		}
		var beforeValue string
		for _, v := range before {
			beforeValue = v
		}
		if got, ok := after["override"]; !ok || got != beforeValue {
			t.Fatalf("%T: got %v, want override=%q", value, after, beforeValue)
		}
	}
}

func withCustomKey(t *testing.T, value Value, key string) Value {
	t.Helper()
	switch v := value.(type) {
	case TextValue:
		v.CustomKey = key
		return v
	case NumericalValue:
		v.CustomKey = key
		return v
	case DateValue:
		v.CustomKey = key
		return v
	case DatePickerValue:
		v.CustomKey = key
		return v
	case DateTimeValue:
		v.CustomKey = key
		return v
	case TimeInputValue:
		v.CustomKey = key
		return v
	case TimeValue:
		v.CustomKey = key
		return v
	case ListSelectionValue:
		v.CustomKey = key
		return v
	case TokenValue:
		v.CustomKey = key
		return v
	case SwitchValue:
		v.CustomKey = key
		return v
	case SliderValue:
		v.CustomKey = key
		return v
	case StepperValue:
		v.CustomKey = key
		return v
	case PickerValue:
		v.CustomKey = key
		return v
	case PickerSelectionValue:
		v.CustomKey = key
		return v
	case MapValue:
		v.CustomKey = key
		return v
	case MapActionValue:
		v.CustomKey = key
		return v
	case ReadOnlyValue:
		v.CustomKey = key
		return v
	case WebValue:
		v.CustomKey = key
		return v
	case SegmentValue:
		v.CustomKey = key
		return v
	case NoteValue:
		v.CustomKey = key
		return v
	case ColorValue:
		v.CustomKey = key
		return v
	}
	t.Fatalf("unexpected single-key value %T", value)
	return nil
}

func TestEncodedValue_Payloads(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		want  map[string]string
	}{
		{name: "switch", value: NewSwitchValue("Subscribe", false), want: map[string]string{"Subscribe": "false"}},
		{name: "slider", value: SliderValue{Title: "Volume", Value: 0.256, Maximum: 1, DecimalPlaces: 2}, want: map[string]string{"Volume": "0.26"}},
		{name: "stepper", value: NewStepperValue("Guests", 3, 0, 10), want: map[string]string{"Guests": "3"}},
		{name: "color", value: NewColorValue("Accent", RGBA{R: 1, G: 0.5, B: 0}), want: map[string]string{"Accent": "255,128,0"}},
		{name: "token", value: NewTokenValue("Tags", Token{Title: "Go", Identifier: "go"}, Token{Title: "Rust"}), want: map[string]string{"Tags": "go,Rust"}},
		{name: "picker none", value: NewPickerValue("Size", []string{"S"}, 4), want: map[string]string{"Size": ""}},
		{name: "map", value: NewMapValue("Venue", &Coordinate{Latitude: 52.52, Longitude: 13.405}), want: map[string]string{"Venue": "52.520000,13.405000"}},
		{name: "map empty", value: NewMapValue("Venue", nil), want: map[string]string{"Venue": ""}},
		{name: "picker selection", value: NewPickerSelectionValue("Duration", []string{"1", "2"}, []string{"h", "m"}).WithSelection(0, 1).WithSelection(1, 0), want: map[string]string{"Duration": "2 h"}},
		{name: "custom", value: NewCustomValue("ignored", map[string]string{"a": "1", "b": "2"}), want: map[string]string{"a": "1", "b": "2"}},
		{name: "action", value: NewActionValue("Verify"), want: map[string]string{}},
		{name: "push", value: NewPushValue("Settings", "settings"), want: map[string]string{}},
		{name: "button", value: NewButtonValue("Submit", ""), want: map[string]string{}},
		{name: "web", value: NewWebValue("Terms", "https://example.com"), want: map[string]string{"Terms": "https://example.com"}},
		{name: "time", value: NewTimeValue("Alarm", 25, -5), want: map[string]string{"Alarm": "00:55"}},
		{name: "date picker time mode", value: NewDatePickerValue("At", sampleDate, DatePickerModeTime), want: map[string]string{"At": "14:30"}},
		{name: "date time", value: NewDateTimeValue("Meeting", sampleDate), want: map[string]string{"Meeting": "2024-03-09T14:30:00Z"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.value.EncodedValue()); diff != "" {
				t.Fatalf("encoded mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTimeInput_ExportFormats(t *testing.T) {
	value := NewTimeInputValue("Start", "2:30 PM")
	if diff := cmp.Diff(map[string]string{"Start": "14:30"}, value.EncodedValue()); diff != "" {
		t.Fatalf("military mismatch (-want +got):\n%s", diff)
	}

	civilian := value
	civilian.ExportFormat = TimeExportCivilian
	if got := civilian.WithTime("09:05").EncodedValue()["Start"]; got != "9:05 AM" {
		t.Fatalf("civilian: got %q", got)
	}

	garbled := value.WithTime("soon")
	if got := garbled.EncodedValue()["Start"]; got != "soon" {
		t.Fatalf("unparseable input should encode raw text, got %q", got)
	}
}

func TestValidityFlags(t *testing.T) {
	picker := NewDatePickerValue("Start", sampleDate, DatePickerModeDate)
	invalid := picker.Invalidated()
	if invalid.IsValid || !invalid.Strikethrough() || invalid.ID() == picker.ID() {
		t.Fatalf("date picker invalidation failed")
	}
	if invalid.EncodedValue()["Start"] != picker.EncodedValue()["Start"] {
		t.Fatalf("validity must not change the encoding")
	}
	if !invalid.Validated().IsValid {
		t.Fatalf("date picker validation failed")
	}

	dateTime := NewDateTimeValue("Meeting", sampleDate).Invalidated()
	if !dateTime.Strikethrough() || dateTime.Validated().Strikethrough() {
		t.Fatalf("date time validity flags failed")
	}

	timeInput := NewTimeInputValue("Start", "9:00").Invalidated()
	if !timeInput.Strikethrough() || timeInput.Validated().Strikethrough() {
		t.Fatalf("time input validity flags failed")
	}
}

func TestDerivationsRefreshIdentityOnly(t *testing.T) {
	text := NewTextValue("Name", "Ada")
	text.Placeholder = "Your name"
	text.CustomKey = "name"
	next := text.WithValue("Grace")
	if next.ID() == text.ID() {
		t.Fatalf("identifier not refreshed")
	}
	if next.Title != text.Title || next.Placeholder != text.Placeholder || next.CustomKey != text.CustomKey {
		t.Fatalf("unrelated fields changed: %+v", next)
	}
	if text.Value != "Ada" {
		t.Fatalf("receiver mutated")
	}

	ids := []struct {
		name   string
		before Value
		after  Value
	}{
		{"numerical", NewNumericalValue("n", "1"), NewNumericalValue("n", "1").WithValue("2")},
		{"switch", NewSwitchValue("s", false), NewSwitchValue("s", false).Toggled()},
		{"slider", NewSliderValue("s", 0, 0, 1), NewSliderValue("s", 0, 0, 1).WithValue(2)},
		{"stepper", NewStepperValue("s", 0, 0, 1), NewStepperValue("s", 0, 0, 1).Incremented()},
		{"token", NewTokenValue("t"), NewTokenValue("t").AddToken(Token{Title: "x"})},
		{"color", NewColorValue("c", RGBA{}), NewColorValue("c", RGBA{}).WithColor(RGBA{R: 1})},
	}
	for _, tc := range ids {
		if tc.before.ID() == tc.after.ID() {
			t.Fatalf("%s: identifier not refreshed", tc.name)
		}
	}
}

func TestSliderAndStepperClamp(t *testing.T) {
	slider := NewSliderValue("Volume", 5, 0, 1)
	if slider.Value != 1 {
		t.Fatalf("slider clamp: got %v", slider.Value)
	}
	stepper := NewStepperValue("Guests", 10, 0, 10).Incremented()
	if stepper.Value != 10 {
		t.Fatalf("stepper clamp: got %v", stepper.Value)
	}
	if got := stepper.Decremented().Value; got != 9 {
		t.Fatalf("stepper decrement: got %v", got)
	}
}

func TestTokenValue_AddAndRemove(t *testing.T) {
	value := NewTokenValue("Tags", Token{Title: "go"})
	value = value.AddToken(Token{Title: "GO"}).AddToken(Token{Title: "  "}).AddToken(Token{Title: "rust"})
	if got := value.EncodedValue()["Tags"]; got != "go,rust" {
		t.Fatalf("tokens: got %q", got)
	}
	if got := value.RemoveToken(0).RemoveToken(7).EncodedValue()["Tags"]; got != "rust" {
		t.Fatalf("remove: got %q", got)
	}
}

func TestDateFromStringFallsBackToNow(t *testing.T) {
	fixed := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	restore := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = restore })

	parsed := NewDateValueFromString("Due", "2024-12-25", "2006-01-02")
	if got := parsed.EncodedValue()["Due"]; got != "2024-12-25" {
		t.Fatalf("parsed date: got %q", got)
	}
	fallback := NewDateValueFromString("Due", "not a date", "2006-01-02")
	if !fallback.Date.Equal(fixed) {
		t.Fatalf("fallback date: got %v", fallback.Date)
	}
}

func TestDateTime_Parts(t *testing.T) {
	value := NewDateTimeValue("Meeting", sampleDate)
	moved := value.WithDatePart(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	if got := moved.Date; !got.Equal(time.Date(2025, time.June, 1, 14, 30, 0, 0, time.UTC)) {
		t.Fatalf("date part: got %v", got)
	}
	retimed := value.WithTimePart(time.Date(0, 1, 1, 9, 15, 0, 0, time.UTC))
	if got := retimed.DisplayTime(); got != "9:15 AM" {
		t.Fatalf("time part: got %q", got)
	}
	if got := value.DisplayDate(); got != "Mar 9, 2024" {
		t.Fatalf("display date: got %q", got)
	}
}

func TestColor_ParseHex(t *testing.T) {
	color, err := ParseHexColor("#f80")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := color.Hex(); got != "#ff8800" {
		t.Fatalf("hex round trip: got %q", got)
	}
	if _, err := ParseHexColor("#12"); err == nil {
		t.Fatalf("expected error for short hex")
	}
}

func TestWebValue_SanitizedHTML(t *testing.T) {
	value := NewWebValue("Terms", "").WithHTML(`<p onclick="x()">Hi<script>alert(1)</script></p>`)
	if got := value.SanitizedHTML(); got != "<p>Hi</p>" {
		t.Fatalf("sanitized: got %q", got)
	}
}

func TestSelectable(t *testing.T) {
	cases := []struct {
		value Value
		want  bool
	}{
		{NewTextValue("t", ""), false},
		{NewListSelectionValue("l", nil), true},
		{NewPushValue("p", ""), true},
		{NewActionValue("a"), true},
		{NewActionValue("a").OperatingVersion(), false},
		{NewReadOnlyValue("r", ""), false},
		{NewColorValue("c", RGBA{}), true},
	}
	for _, tc := range cases {
		if got := tc.value.Item().IsSelectable(); got != tc.want {
			t.Fatalf("%T selectable: got %v want %v", tc.value, got, tc.want)
		}
	}
}
