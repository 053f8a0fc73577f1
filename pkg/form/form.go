package form

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Section is an ordered group of rows.
type Section struct {
	Title  string
	Footer string
	Rows   []Item
}

// NewSection wraps values into a section, skipping nil values.
func NewSection(title string, values ...Value) Section {
	rows := make([]Item, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		rows = append(rows, value.Item())
	}
	return Section{Title: title, Rows: rows}
}

// Replace returns a copy of the section with the row at index swapped for
// value. The receiver's rows are not modified.
func (s Section) Replace(index int, value Value) (Section, error) {
	if index < 0 || index >= len(s.Rows) {
		return s, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, index, len(s.Rows))
	}
	if value == nil {
		return s, errors.New("form: replacement value is nil")
	}
	rows := append([]Item(nil), s.Rows...)
	rows[index] = value.Item()
	s.Rows = rows
	return s, nil
}

// Index returns the position of the row identified by id.
func (s Section) Index(id uuid.UUID) (int, bool) {
	for idx, row := range s.Rows {
		if row.ID() == id {
			return idx, true
		}
	}
	return -1, false
}

// EncodedValue merges the rows of the section in order.
func (s Section) EncodedValue() map[string]string {
	maps := make([]map[string]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		maps = append(maps, row.EncodedValue())
	}
	return Merge(maps...)
}

// IndexPath addresses a row by section and row position.
type IndexPath struct {
	Section int
	Row     int
}

// Form is an ordered list of sections.
type Form struct {
	Title    string
	Sections []Section
}

// New constructs a form from sections.
func New(title string, sections ...Section) Form {
	return Form{Title: title, Sections: append([]Section(nil), sections...)}
}

// Item returns the row at path.
func (f Form) Item(path IndexPath) (Item, bool) {
	if path.Section < 0 || path.Section >= len(f.Sections) {
		return Item{}, false
	}
	rows := f.Sections[path.Section].Rows
	if path.Row < 0 || path.Row >= len(rows) {
		return Item{}, false
	}
	return rows[path.Row], true
}

// Find locates the row identified by id.
func (f Form) Find(id uuid.UUID) (IndexPath, bool) {
	for sectionIdx, section := range f.Sections {
		if rowIdx, ok := section.Index(id); ok {
			return IndexPath{Section: sectionIdx, Row: rowIdx}, true
		}
	}
	return IndexPath{}, false
}

// Items returns every row in section-major order.
func (f Form) Items() []Item {
	var out []Item
	for _, section := range f.Sections {
		out = append(out, section.Rows...)
	}
	return out
}

// Replace returns a copy of the form with the row at path swapped for value.
func (f Form) Replace(path IndexPath, value Value) (Form, error) {
	if path.Section < 0 || path.Section >= len(f.Sections) {
		return f, fmt.Errorf("%w: section %d of %d", ErrIndexOutOfRange, path.Section, len(f.Sections))
	}
	section, err := f.Sections[path.Section].Replace(path.Row, value)
	if err != nil {
		return f, err
	}
	sections := append([]Section(nil), f.Sections...)
	sections[path.Section] = section
	f.Sections = sections
	return f, nil
}

// Update derives a new value for the row identified by id and swaps it in.
func (f Form) Update(id uuid.UUID, derive func(Item) Value) (Form, error) {
	path, ok := f.Find(id)
	if !ok {
		return f, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	item, _ := f.Item(path)
	return f.Replace(path, derive(item))
}

// EncodedValue merges every row, section by section, top to bottom. Later
// rows win on duplicate keys.
func (f Form) EncodedValue() map[string]string {
	maps := make([]map[string]string, 0, len(f.Sections))
	for _, section := range f.Sections {
		maps = append(maps, section.EncodedValue())
	}
	return Merge(maps...)
}

// Validate runs the validators of every row that carries them and groups the
// messages by encoding key.
func (f Form) Validate() ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	for _, row := range f.Items() {
		validatable, ok := row.Value().(Validatable)
		if !ok {
			continue
		}
		err := validatable.Validate()
		if err == nil {
			continue
		}
		key := ""
		for encodedKey := range row.EncodedValue() {
			key = encodedKey
		}
		messages := splitJoined(err)
		if key == "" {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[key] = normalizeMessages(append(mapping.Fields[key], messages...))
	}
	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func splitJoined(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, inner := range joined.Unwrap() {
			out = append(out, splitJoined(inner)...)
		}
		return out
	}
	return []string{err.Error()}
}
