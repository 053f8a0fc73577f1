// Package form models form rows as immutable, typed values. Every row kind
// (text, date, list selection, slider, color, ...) is a plain struct that
// derives edited copies through its With* methods and encodes its state into a
// string-keyed map for submission.
//
// Values never mutate in place. A derivation copies every field, applies the
// edit and mints a fresh identifier, so the owner of a row list swaps the old
// value for the new one at the same position (see Section.Replace and
// Form.Replace). Item is the closed sum type wrapping exactly one value per
// row; switch on Item.Value() to reach the concrete kind.
//
// Encoding keys follow one precedence for every kind: CustomKey when set, then
// Title, then a literal per kind ("Date", "SegmentValue", ...). A form encodes
// to a single map by walking sections top to bottom; later keys win.
package form
