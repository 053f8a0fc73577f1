package form

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMerge_LastWins(t *testing.T) {
	got := Merge(map[string]string{"x": "1"}, map[string]string{"x": "2"})
	if diff := cmp.Diff(map[string]string{"x": "2"}, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
	if Merge() == nil {
		t.Fatalf("merge of nothing should be an empty map")
	}
}

func TestForm_EncodedValueIsSectionMajor(t *testing.T) {
	form := New("Signup",
		NewSection("Profile",
			NewTextValue("Name", "Ada"),
			NewTextValue("Nickname", "first"),
		),
		NewSection("Extras",
			NewSwitchValue("Subscribe", true),
			NewNoteValue("Nickname", "second"),
			NewActionValue("Verify"),
		),
	)

	want := map[string]string{
		"Name":      "Ada",
		"Nickname":  "second",
		"Subscribe": "true",
	}
	if diff := cmp.Diff(want, form.EncodedValue()); diff != "" {
		t.Fatalf("encoded form mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_ReplaceIsCopyOnWrite(t *testing.T) {
	name := NewTextValue("Name", "Ada")
	original := New("", NewSection("", name))

	path, ok := original.Find(name.ID())
	if !ok {
		t.Fatalf("row not found")
	}
	updated, err := original.Replace(path, name.WithValue("Grace"))
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	if got := original.EncodedValue()["Name"]; got != "Ada" {
		t.Fatalf("original form mutated: %q", got)
	}
	if got := updated.EncodedValue()["Name"]; got != "Grace" {
		t.Fatalf("updated form: %q", got)
	}
	if _, ok := updated.Find(name.ID()); ok {
		t.Fatalf("superseded identifier should no longer be present")
	}

	if _, err := original.Replace(IndexPath{Section: 0, Row: 3}, name); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := original.Replace(IndexPath{Section: 2}, name); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange for section, got %v", err)
	}
}

func TestForm_Update(t *testing.T) {
	toggle := NewSwitchValue("Subscribe", false)
	form := New("", NewSection("", toggle))

	updated, err := form.Update(toggle.ID(), func(item Item) Value {
		return item.Value().(SwitchValue).Toggled()
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := updated.EncodedValue()["Subscribe"]; got != "true" {
		t.Fatalf("toggle: got %q", got)
	}

	if _, err := updated.Update(toggle.ID(), nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestForm_Validate(t *testing.T) {
	name := NewTextValue("Name", "")
	name.Validators = []Validator{Required(), MaxLength(3)}
	code := NewTextValue("Code", "abcdef")
	code.CustomKey = "code"
	code.Validators = []Validator{MaxLength(3), MatchPattern(regexp.MustCompile(`^[0-9]+$`))}
	ok := NewNoteValue("Notes", "fine")
	ok.Validators = []Validator{MinLength(2)}

	form := New("", NewSection("", name, code, ok))
	mapping := form.Validate()

	want := map[string][]string{
		"Name": {"value is required"},
		"code": {"must be at most 3 characters", "must match ^[0-9]+$"},
	}
	if diff := cmp.Diff(want, mapping.Fields); diff != "" {
		t.Fatalf("validation mismatch (-want +got):\n%s", diff)
	}
	if len(mapping.Form) != 0 {
		t.Fatalf("unexpected form errors: %v", mapping.Form)
	}

	var validationErr *ValidationError
	if err := code.Validate(); !errors.As(err, &validationErr) || validationErr.Rule != RuleMaxLength {
		t.Fatalf("expected max length validation error, got %v", err)
	}
}

func TestMergeFormErrors(t *testing.T) {
	got := MergeFormErrors([]string{" a ", "b"}, "a", "", "c")
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("merged errors mismatch (-want +got):\n%s", diff)
	}
}
