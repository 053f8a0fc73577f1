package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// RGBA is a color with components in the 0..1 range.
type RGBA struct {
	R, G, B, A float64
}

// ParseHexColor reads "#rgb", "#rrggbb" or "#rrggbbaa" (the hash is
// optional).
func ParseHexColor(raw string) (RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return RGBA{}, fmt.Errorf("form: invalid hex color %q", raw)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("form: invalid hex color %q: %w", raw, err)
	}
	alpha := uint64(0xff)
	if len(hex) == 8 {
		alpha = n & 0xff
		n >>= 8
	}
	return RGBA{
		R: float64((n>>16)&0xff) / 255,
		G: float64((n>>8)&0xff) / 255,
		B: float64(n&0xff) / 255,
		A: float64(alpha) / 255,
	}, nil
}

func channel(component float64) int {
	return int(math.Round(clamp(component, 0, 1) * 255))
}

// Bytes returns the red, green and blue channels as 0..255 integers.
func (c RGBA) Bytes() (r, g, b int) {
	return channel(c.R), channel(c.G), channel(c.B)
}

// Hex formats the color as "#rrggbb".
func (c RGBA) Hex() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// ColorValue is a color chosen from a palette.
type ColorValue struct {
	Title     string
	CustomKey string
	Color     RGBA

	id uuid.UUID
}

// NewColorValue constructs a color row.
func NewColorValue(title string, color RGBA) ColorValue {
	return ColorValue{Title: title, Color: color, id: newID()}
}

// WithColor returns a copy holding color.
func (v ColorValue) WithColor(color RGBA) ColorValue {
	v.Color = color
	v.id = newID()
	return v
}

func (v ColorValue) ID() uuid.UUID       { return v.id }
func (v ColorValue) OverrideKey() string { return v.CustomKey }
func (v ColorValue) Item() Item          { return wrap(KindColor, v) }
func (v ColorValue) IsSelectable() bool  { return true }

// EncodedValue implements Encodable as "r,g,b" with 0..255 channels.
func (v ColorValue) EncodedValue() map[string]string {
	r, g, b := v.Color.Bytes()
	return single(keyFor(v.CustomKey, v.Title, "Color"), fmt.Sprintf("%d,%d,%d", r, g, b))
}
