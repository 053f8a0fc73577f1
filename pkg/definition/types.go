package definition

import "github.com/goliatone/go-formvalue/pkg/form"

// Document is the on-disk shape of a form.
type Document struct {
	Title    string        `json:"title" yaml:"title"`
	Sections []SectionFile `json:"sections" yaml:"sections"`
}

// SectionFile describes one section.
type SectionFile struct {
	Title  string    `json:"title,omitempty" yaml:"title,omitempty"`
	Footer string    `json:"footer,omitempty" yaml:"footer,omitempty"`
	Rows   []RowFile `json:"rows" yaml:"rows"`
}

// RowFile is the union of every row payload. Only the fields relevant to Kind
// are read.
type RowFile struct {
	Kind        string `json:"kind" yaml:"kind"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Key         string `json:"key,omitempty" yaml:"key,omitempty"`
	Value       string `json:"value,omitempty" yaml:"value,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`

	// Dates and times.
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
	Format  string `json:"format,omitempty" yaml:"format,omitempty"`
	Display string `json:"display,omitempty" yaml:"display,omitempty"`
	Mode    string `json:"mode,omitempty" yaml:"mode,omitempty"`
	Export  string `json:"export,omitempty" yaml:"export,omitempty"`
	Hour    int    `json:"hour,omitempty" yaml:"hour,omitempty"`
	Minute  int    `json:"minute,omitempty" yaml:"minute,omitempty"`

	// Numbers.
	NumberType string   `json:"numberType,omitempty" yaml:"numberType,omitempty"`
	Min        *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max        *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Step       float64  `json:"step,omitempty" yaml:"step,omitempty"`
	Decimals   int      `json:"decimals,omitempty" yaml:"decimals,omitempty"`

	// Selections.
	Options    []form.ListItem  `json:"options,omitempty" yaml:"options,omitempty"`
	Selected   []int            `json:"selected,omitempty" yaml:"selected,omitempty"`
	Selection  string           `json:"selection,omitempty" yaml:"selection,omitempty"`
	Stores     []form.ItemStore `json:"stores,omitempty" yaml:"stores,omitempty"`
	WriteIn    *WriteInFile     `json:"writeIn,omitempty" yaml:"writeIn,omitempty"`
	Tokens     []form.Token     `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Components [][]string       `json:"components,omitempty" yaml:"components,omitempty"`
	Separator  string           `json:"separator,omitempty" yaml:"separator,omitempty"`

	// Source names a lazily loaded option list, see package sources. Preselect
	// holds identifiers to select once the options arrive.
	Source    string   `json:"source,omitempty" yaml:"source,omitempty"`
	Query     string   `json:"query,omitempty" yaml:"query,omitempty"`
	Limit     int      `json:"limit,omitempty" yaml:"limit,omitempty"`
	Preselect []string `json:"preselect,omitempty" yaml:"preselect,omitempty"`

	// Locations.
	Coordinate *form.Coordinate `json:"coordinate,omitempty" yaml:"coordinate,omitempty"`
	Radius     float64          `json:"radius,omitempty" yaml:"radius,omitempty"`
	Address    string           `json:"address,omitempty" yaml:"address,omitempty"`

	// Everything else.
	URL         string            `json:"url,omitempty" yaml:"url,omitempty"`
	HTML        string            `json:"html,omitempty" yaml:"html,omitempty"`
	Color       string            `json:"color,omitempty" yaml:"color,omitempty"`
	Fields      map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Destination string            `json:"destination,omitempty" yaml:"destination,omitempty"`
	Detail      string            `json:"detail,omitempty" yaml:"detail,omitempty"`
	Style       string            `json:"style,omitempty" yaml:"style,omitempty"`
	State       string            `json:"state,omitempty" yaml:"state,omitempty"`

	Validators []ValidatorFile `json:"validators,omitempty" yaml:"validators,omitempty"`
}

// WriteInFile enables free text options on a list selection.
type WriteInFile struct {
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	PinFirst    bool   `json:"pinFirst,omitempty" yaml:"pinFirst,omitempty"`
}

// ValidatorFile names a validation rule. Value carries the length limit or
// the pattern.
type ValidatorFile struct {
	Rule  string `json:"rule" yaml:"rule"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}
