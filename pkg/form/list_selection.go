package form

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// SelectionType gates how many items a ListSelectionValue may select.
type SelectionType string

const (
	SelectionSingle   SelectionType = "single"
	SelectionMultiple SelectionType = "multiple"
)

// Valid reports whether t is a known selection type.
func (t SelectionType) Valid() bool {
	return t == SelectionSingle || t == SelectionMultiple
}

// ListItem is one option of a ListSelectionValue.
type ListItem struct {
	Title      string `json:"title" yaml:"title"`
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Selected   bool   `json:"selected,omitempty" yaml:"selected,omitempty"`
}

func (i ListItem) encoded() string {
	if i.Identifier != "" {
		return i.Identifier
	}
	return i.Title
}

// ItemStore is a named view over the options of a ListSelectionValue. Stores
// are selection-parallel: index i of every store is selected or not together.
type ItemStore struct {
	Name  string     `json:"name" yaml:"name"`
	Items []ListItem `json:"items" yaml:"items"`
}

// WriteInConfiguration enables free text options. PinFirstItem keeps the
// first option in place when new options are sorted in.
type WriteInConfiguration struct {
	Placeholder  string
	PinFirstItem bool
}

// ErrNoItemSource is returned by Load when the value has nothing to load
// from.
var ErrNoItemSource = errors.New("form: list selection has no item source")

// ItemSource supplies list options asynchronously.
type ItemSource interface {
	LoadItems(ctx context.Context) ([]ListItem, error)
}

// ItemSourceFunc adapts a function to ItemSource.
type ItemSourceFunc func(ctx context.Context) ([]ListItem, error)

// LoadItems calls f.
func (f ItemSourceFunc) LoadItems(ctx context.Context) ([]ListItem, error) {
	return f(ctx)
}

// Loading describes deferred population of a list. SelectedIndices and
// SelectedIdentifiers mark the options to select once the items arrive.
type Loading struct {
	Source              ItemSource
	SelectedIndices     []int
	SelectedIdentifiers []string
}

// ListSelectionValue selects one or more options from a list. The options
// live in a single list, or in item stores when any are configured, in which
// case the first store is the active list used for selection and encoding.
// Values and selected indices are projections of the active list.
type ListSelectionValue struct {
	Title     string
	CustomKey string
	WriteIn   *WriteInConfiguration
	Loading   *Loading

	selectionType SelectionType
	items         []ListItem
	stores        []ItemStore
	id            uuid.UUID
}

// ListSelectionOption configures NewListSelectionValue.
type ListSelectionOption func(*listSelectionConfig)

type listSelectionConfig struct {
	selectionType SelectionType
	selected      []int
	hasSelected   bool
	items         []ListItem
	stores        []ItemStore
	writeIn       *WriteInConfiguration
	loading       *Loading
	customKey     string
}

// ListSelectionType sets single or multiple selection. Single is the default
// and unknown types are ignored.
func ListSelectionType(selectionType SelectionType) ListSelectionOption {
	return func(cfg *listSelectionConfig) {
		if selectionType.Valid() {
			cfg.selectionType = selectionType
		}
	}
}

// ListSelectedIndex selects the option at index.
func ListSelectedIndex(index int) ListSelectionOption {
	return ListSelectedIndices(index)
}

// ListSelectedIndices selects the options at indices, replacing any selection
// carried by the items themselves.
func ListSelectedIndices(indices ...int) ListSelectionOption {
	return func(cfg *listSelectionConfig) {
		cfg.selected = append(cfg.selected, indices...)
		cfg.hasSelected = true
	}
}

// ListItems supplies options with identifiers, overriding plain values.
func ListItems(items ...ListItem) ListSelectionOption {
	return func(cfg *listSelectionConfig) {
		cfg.items = append(cfg.items, items...)
	}
}

// ListItemStores supplies selection-parallel stores.
func ListItemStores(stores ...ItemStore) ListSelectionOption {
	return func(cfg *listSelectionConfig) {
		cfg.stores = append(cfg.stores, stores...)
	}
}

// ListWriteIn enables free text options.
func ListWriteIn(writeIn WriteInConfiguration) ListSelectionOption {
	return func(cfg *listSelectionConfig) {
		cfg.writeIn = &writeIn
	}
}

// ListLoading attaches a deferred item source.
func ListLoading(loading Loading) ListSelectionOption {
	return func(cfg *listSelectionConfig) {
		cfg.loading = &loading
	}
}

// ListCustomKey overrides the encoding key.
func ListCustomKey(key string) ListSelectionOption {
	return func(cfg *listSelectionConfig) {
		cfg.customKey = key
	}
}

// NewListSelectionValue constructs a list selection over values.
func NewListSelectionValue(title string, values []string, options ...ListSelectionOption) ListSelectionValue {
	cfg := listSelectionConfig{selectionType: SelectionSingle}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	items := cloneItems(cfg.items)
	if len(items) == 0 {
		items = make([]ListItem, 0, len(values))
		for _, value := range values {
			items = append(items, ListItem{Title: value})
		}
	}

	value := ListSelectionValue{
		Title:         title,
		CustomKey:     cfg.customKey,
		WriteIn:       cloneWriteIn(cfg.writeIn),
		Loading:       cloneLoading(cfg.loading),
		selectionType: cfg.selectionType,
		items:         items,
		stores:        cloneStores(cfg.stores),
	}

	mask := value.mask()
	if cfg.hasSelected {
		mask = maskFromIndices(cfg.selected, len(value.active()))
	}
	value.applyMask(mask)
	value.id = newID()
	return value
}

func (v ListSelectionValue) ID() uuid.UUID       { return v.id }
func (v ListSelectionValue) OverrideKey() string { return v.CustomKey }
func (v ListSelectionValue) Item() Item          { return wrap(KindListSelection, v) }
func (v ListSelectionValue) IsSelectable() bool  { return true }

// SelectionType reports single or multiple selection.
func (v ListSelectionValue) SelectionType() SelectionType {
	if v.selectionType == "" {
		return SelectionSingle
	}
	return v.selectionType
}

func (v ListSelectionValue) single() bool {
	return v.SelectionType() == SelectionSingle
}

func (v ListSelectionValue) active() []ListItem {
	if len(v.stores) > 0 {
		return v.stores[0].Items
	}
	return v.items
}

// Items returns a copy of the active options.
func (v ListSelectionValue) Items() []ListItem {
	return cloneItems(v.active())
}

// Stores returns a copy of the item stores.
func (v ListSelectionValue) Stores() []ItemStore {
	return cloneStores(v.stores)
}

// Values returns the titles of the active options.
func (v ListSelectionValue) Values() []string {
	active := v.active()
	out := make([]string, len(active))
	for idx, item := range active {
		out[idx] = item.Title
	}
	return out
}

// SelectedIndices returns the indices of selected options in ascending order.
func (v ListSelectionValue) SelectedIndices() []int {
	var out []int
	for idx, item := range v.active() {
		if item.Selected {
			out = append(out, idx)
		}
	}
	return out
}

// SelectedItems returns the selected options in list order.
func (v ListSelectionValue) SelectedItems() []ListItem {
	var out []ListItem
	for _, item := range v.active() {
		if item.Selected {
			out = append(out, item)
		}
	}
	return out
}

// SelectedValue returns the title of the first selected option, or "".
func (v ListSelectionValue) SelectedValue() string {
	for _, item := range v.active() {
		if item.Selected {
			return item.Title
		}
	}
	return ""
}

// SelectionTitle summarises the selection for display.
func (v ListSelectionValue) SelectionTitle() string {
	if v.single() {
		return v.SelectedValue()
	}
	count := len(v.SelectedIndices())
	switch {
	case count == 0:
		return ""
	case count == len(v.active()):
		return "All " + strconv.Itoa(count) + " Selected"
	default:
		return strconv.Itoa(count) + " Selected"
	}
}

// EncodedValue implements Encodable. Single selection encodes the selected
// identifier, falling back to its title. Multiple selection joins every
// selected identifier (or title) with commas.
func (v ListSelectionValue) EncodedValue() map[string]string {
	key := keyFor(v.CustomKey, v.Title, "Selection")
	selected := v.SelectedItems()
	if len(selected) == 0 {
		return single(key, "")
	}
	if v.single() {
		return single(key, selected[0].encoded())
	}
	parts := make([]string, 0, len(selected))
	for _, item := range selected {
		parts = append(parts, item.encoded())
	}
	return single(key, joinCSV(parts))
}

// WithSelectedValues returns a copy selecting the options titled values.
// Unknown values are dropped. Single selection keeps the first match.
func (v ListSelectionValue) WithSelectedValues(values []string) ListSelectionValue {
	active := v.active()
	var indices []int
	for _, value := range values {
		for idx, item := range active {
			if item.Title == value {
				indices = append(indices, idx)
				break
			}
		}
		if v.single() && len(indices) > 0 {
			break
		}
	}
	return v.withMask(maskFromIndices(indices, len(active)))
}

// WithSelectedIndices returns a copy selecting indices. Out of range indices
// are dropped.
func (v ListSelectionValue) WithSelectedIndices(indices ...int) ListSelectionValue {
	return v.withMask(maskFromIndices(indices, len(v.active())))
}

// Toggled returns a copy with the option at index flipped. Single selection
// always selects index, clearing any other option.
func (v ListSelectionValue) Toggled(index int) ListSelectionValue {
	mask := v.mask()
	if index < 0 || index >= len(mask) {
		return v.withMask(mask)
	}
	if v.single() {
		return v.withMask(maskFromIndices([]int{index}, len(mask)))
	}
	mask[index] = !mask[index]
	return v.withMask(mask)
}

// WithListItems returns a copy holding items, selecting those flagged
// Selected. When stores are configured the items replace the first store and
// their selection is mirrored onto every other store.
func (v ListSelectionValue) WithListItems(items []ListItem) ListSelectionValue {
	if len(v.stores) > 0 {
		v.stores = cloneStores(v.stores)
		v.stores[0].Items = cloneItems(items)
	} else {
		v.items = cloneItems(items)
	}
	return v.withMask(v.mask())
}

// WithAllSelected returns a copy selecting every option in every store.
// Single selection selects the first option only.
func (v ListSelectionValue) WithAllSelected() ListSelectionValue {
	mask := make([]bool, len(v.active()))
	for idx := range mask {
		mask[idx] = true
	}
	return v.withMask(mask)
}

// WithoutSelection returns a copy with nothing selected in any store.
func (v ListSelectionValue) WithoutSelection() ListSelectionValue {
	return v.withMask(make([]bool, len(v.active())))
}

// AddListItem returns a copy with item inserted into every list, either at
// the top or sorted alphabetically by title. Adding a selected item to a
// single selection clears the previous selection first.
func (v ListSelectionValue) AddListItem(item ListItem, atTop bool) ListSelectionValue {
	clearExisting := v.single() && item.Selected

	insert := func(items []ListItem) []ListItem {
		out := make([]ListItem, 0, len(items)+1)
		if atTop {
			out = append(out, item)
		}
		for _, existing := range items {
			if clearExisting {
				existing.Selected = false
			}
			out = append(out, existing)
		}
		if !atTop {
			out = append(out, item)
		}
		return out
	}

	if len(v.stores) > 0 {
		stores := cloneStores(v.stores)
		for idx := range stores {
			stores[idx].Items = insert(stores[idx].Items)
		}
		v.stores = stores
	} else {
		v.items = insert(v.items)
	}

	if !atTop {
		v.sortLists()
	}
	return v.withMask(v.mask())
}

// WithWriteIn returns a copy selecting the free text option text, adding it
// when no option carries that title. It has no effect on content when write
// ins are not configured or text is blank.
func (v ListSelectionValue) WithWriteIn(text string) ListSelectionValue {
	trimmed := strings.TrimSpace(text)
	if v.WriteIn == nil || trimmed == "" {
		return v.withMask(v.mask())
	}
	for idx, item := range v.active() {
		if strings.EqualFold(item.Title, trimmed) {
			if v.single() {
				return v.WithSelectedIndices(idx)
			}
			mask := v.mask()
			mask[idx] = true
			return v.withMask(mask)
		}
	}
	return v.AddListItem(ListItem{Title: trimmed, Selected: true}, false)
}

// Load fetches options from the configured source and returns a copy holding
// them with the pre-selection applied. Stores are dropped since the loaded
// options form a single list. On failure the receiver is returned unchanged
// alongside the error.
func (v ListSelectionValue) Load(ctx context.Context) (ListSelectionValue, error) {
	if v.Loading == nil || v.Loading.Source == nil {
		return v, ErrNoItemSource
	}
	if err := ctx.Err(); err != nil {
		return v, err
	}
	loaded, err := v.Loading.Source.LoadItems(ctx)
	if err != nil {
		return v, fmt.Errorf("form: load %q options: %w", v.Title, err)
	}

	next := v
	next.items = cloneItems(loaded)
	next.stores = nil

	mask := next.mask()
	for _, index := range v.Loading.SelectedIndices {
		if index >= 0 && index < len(mask) {
			mask[index] = true
		}
	}
	if len(v.Loading.SelectedIdentifiers) > 0 {
		wanted := make(map[string]struct{}, len(v.Loading.SelectedIdentifiers))
		for _, identifier := range v.Loading.SelectedIdentifiers {
			wanted[identifier] = struct{}{}
		}
		for idx, item := range next.items {
			if _, ok := wanted[item.Identifier]; ok && item.Identifier != "" {
				mask[idx] = true
			}
		}
	}
	return next.withMask(mask), nil
}

func (v ListSelectionValue) mask() []bool {
	active := v.active()
	mask := make([]bool, len(active))
	for idx, item := range active {
		mask[idx] = item.Selected
	}
	return mask
}

// withMask returns a copy whose lists all carry mask, with a new identifier.
func (v ListSelectionValue) withMask(mask []bool) ListSelectionValue {
	v.items = cloneItems(v.items)
	v.stores = cloneStores(v.stores)
	v.WriteIn = cloneWriteIn(v.WriteIn)
	v.Loading = cloneLoading(v.Loading)
	v.applyMask(mask)
	v.id = newID()
	return v
}

// applyMask writes mask onto the receiver's lists in place. Callers own the
// backing arrays.
func (v *ListSelectionValue) applyMask(mask []bool) {
	if v.single() {
		mask = firstOnly(mask)
	}
	apply := func(items []ListItem) {
		for idx := range items {
			items[idx].Selected = idx < len(mask) && mask[idx]
		}
	}
	if len(v.stores) > 0 {
		for idx := range v.stores {
			apply(v.stores[idx].Items)
		}
		return
	}
	apply(v.items)
}

// sortLists orders every list by the titles of the active list, keeping the
// first option in place when write ins pin it.
func (v *ListSelectionValue) sortLists() {
	active := v.active()
	start := 0
	if v.WriteIn != nil && v.WriteIn.PinFirstItem {
		start = 1
	}
	if len(active)-start < 2 {
		return
	}
	order := make([]int, len(active))
	for idx := range order {
		order[idx] = idx
	}
	tail := order[start:]
	sort.SliceStable(tail, func(i, j int) bool {
		return strings.ToLower(active[tail[i]].Title) < strings.ToLower(active[tail[j]].Title)
	})

	permute := func(items []ListItem) []ListItem {
		if len(items) != len(order) {
			return items
		}
		out := make([]ListItem, len(items))
		for idx, source := range order {
			out[idx] = items[source]
		}
		return out
	}
	if len(v.stores) > 0 {
		for idx := range v.stores {
			v.stores[idx].Items = permute(v.stores[idx].Items)
		}
		return
	}
	v.items = permute(v.items)
}

func firstOnly(mask []bool) []bool {
	out := make([]bool, len(mask))
	for idx, selected := range mask {
		if selected {
			out[idx] = true
			break
		}
	}
	return out
}

func maskFromIndices(indices []int, length int) []bool {
	mask := make([]bool, length)
	for _, index := range indices {
		if index >= 0 && index < length {
			mask[index] = true
		}
	}
	return mask
}

func cloneItems(items []ListItem) []ListItem {
	if items == nil {
		return nil
	}
	return append([]ListItem(nil), items...)
}

func cloneStores(stores []ItemStore) []ItemStore {
	if stores == nil {
		return nil
	}
	out := make([]ItemStore, len(stores))
	for idx, store := range stores {
		out[idx] = ItemStore{Name: store.Name, Items: cloneItems(store.Items)}
	}
	return out
}

func cloneWriteIn(writeIn *WriteInConfiguration) *WriteInConfiguration {
	if writeIn == nil {
		return nil
	}
	out := *writeIn
	return &out
}

func cloneLoading(loading *Loading) *Loading {
	if loading == nil {
		return nil
	}
	out := *loading
	out.SelectedIndices = append([]int(nil), loading.SelectedIndices...)
	out.SelectedIdentifiers = append([]string(nil), loading.SelectedIdentifiers...)
	return &out
}
