package form

import "github.com/google/uuid"

// ActionState tracks the lifecycle of an ActionValue.
type ActionState string

const (
	ActionStateReady     ActionState = "ready"
	ActionStateOperating ActionState = "operating"
	ActionStateComplete  ActionState = "complete"
	ActionStateDisabled  ActionState = "disabled"
)

// Valid reports whether s is a known action state.
func (s ActionState) Valid() bool {
	switch s {
	case ActionStateReady, ActionStateOperating, ActionStateComplete, ActionStateDisabled:
		return true
	}
	return false
}

// ActionValue is a row that triggers work, such as "Verify email". Each
// state transition links the new value to the one it came from through
// OriginalID so that callbacks holding an older value can still find the
// current row (see DataMatches).
type ActionValue struct {
	Title      string
	CustomKey  string
	State      ActionState
	LastState  ActionState
	OriginalID uuid.UUID

	id uuid.UUID
}

// NewActionValue constructs a ready action.
func NewActionValue(title string) ActionValue {
	return ActionValue{Title: title, State: ActionStateReady, id: newID()}
}

func (v ActionValue) transition(state ActionState, recordLast bool) ActionValue {
	if recordLast {
		v.LastState = v.State
	}
	v.State = state
	v.OriginalID = v.id
	v.id = newID()
	return v
}

// OperatingVersion returns a copy in the operating state.
func (v ActionValue) OperatingVersion() ActionValue {
	return v.transition(ActionStateOperating, false)
}

// CompletedVersion returns a copy in the complete state, remembering the
// state it left.
func (v ActionValue) CompletedVersion() ActionValue {
	return v.transition(ActionStateComplete, true)
}

// Disabled returns a copy in the disabled state, remembering the state it
// left.
func (v ActionValue) Disabled() ActionValue {
	return v.transition(ActionStateDisabled, true)
}

// Enabled returns a copy restored to the state recorded before it was
// disabled, or ready when none was recorded.
func (v ActionValue) Enabled() ActionValue {
	restored := v.LastState
	if restored == "" || restored == ActionStateDisabled {
		restored = ActionStateReady
	}
	return v.transition(restored, false)
}

// DataMatches reports whether other is this value or its direct predecessor
// or successor. Content is not compared.
func (v ActionValue) DataMatches(other ActionValue) bool {
	if v.id == other.id {
		return true
	}
	if v.OriginalID != uuid.Nil && v.OriginalID == other.id {
		return true
	}
	return other.OriginalID != uuid.Nil && other.OriginalID == v.id
}

func (v ActionValue) ID() uuid.UUID       { return v.id }
func (v ActionValue) OverrideKey() string { return v.CustomKey }
func (v ActionValue) Item() Item          { return wrap(KindAction, v) }

// IsSelectable reports true only while the action is ready.
func (v ActionValue) IsSelectable() bool {
	return v.State == ActionStateReady
}

// EncodedValue implements Encodable. Actions contribute nothing to a
// submission.
func (v ActionValue) EncodedValue() map[string]string {
	return map[string]string{}
}

// PushValue navigates to another screen. Destination names that screen for
// the host application.
type PushValue struct {
	Title       string
	CustomKey   string
	Detail      string
	Destination string

	id uuid.UUID
}

// NewPushValue constructs a navigation row.
func NewPushValue(title, destination string) PushValue {
	return PushValue{Title: title, Destination: destination, id: newID()}
}

// WithDetail returns a copy showing detail.
func (v PushValue) WithDetail(detail string) PushValue {
	v.Detail = detail
	v.id = newID()
	return v
}

func (v PushValue) ID() uuid.UUID       { return v.id }
func (v PushValue) OverrideKey() string { return v.CustomKey }
func (v PushValue) Item() Item          { return wrap(KindPush, v) }
func (v PushValue) IsSelectable() bool  { return true }

// EncodedValue implements Encodable. Navigation rows contribute nothing.
func (v PushValue) EncodedValue() map[string]string {
	return map[string]string{}
}

// ButtonStyle hints at the emphasis of a button.
type ButtonStyle string

const (
	ButtonStyleDefault     ButtonStyle = "default"
	ButtonStyleDestructive ButtonStyle = "destructive"
)

// Valid reports whether s is a known button style.
func (s ButtonStyle) Valid() bool {
	return s == ButtonStyleDefault || s == ButtonStyleDestructive
}

// ButtonValue is a plain tappable row.
type ButtonValue struct {
	Title     string
	CustomKey string
	Style     ButtonStyle

	id uuid.UUID
}

// NewButtonValue constructs a button row.
func NewButtonValue(title string, style ButtonStyle) ButtonValue {
	if !style.Valid() {
		style = ButtonStyleDefault
	}
	return ButtonValue{Title: title, Style: style, id: newID()}
}

// WithTitle returns a copy labelled title.
func (v ButtonValue) WithTitle(title string) ButtonValue {
	v.Title = title
	v.id = newID()
	return v
}

func (v ButtonValue) ID() uuid.UUID       { return v.id }
func (v ButtonValue) OverrideKey() string { return v.CustomKey }
func (v ButtonValue) Item() Item          { return wrap(KindButton, v) }
func (v ButtonValue) IsSelectable() bool  { return true }

// EncodedValue implements Encodable. Buttons contribute nothing.
func (v ButtonValue) EncodedValue() map[string]string {
	return map[string]string{}
}
