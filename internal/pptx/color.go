package pptx

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// FillType is the variant of a shape fill.
type FillType int

const (
	FillNone FillType = iota // no fill element on the shape
	FillSolid
	FillGradient
	FillPicture
	FillGroup
	FillBackground // a:noFill, the background shows through
	FillPatterned
	FillTextured
)

// Fill is a shape's fill specification. Color is set for solid fills that
// declare one.
type Fill struct {
	Type  FillType
	Color *Color
}

// ColorType is the DrawingML color element a color was read from.
type ColorType int

const (
	ColorRGB    ColorType = iota + 1 // a:srgbClr
	ColorScheme                      // a:schemeClr
	ColorSystem                      // a:sysClr
	ColorPreset                      // a:prstClr
	ColorHSL                         // a:hslClr
	ColorSCRGB                       // a:scrgbClr
)

// Color keeps the raw attribute values; accessors validate them lazily so a
// bad value only affects the shape that carries it.
type Color struct {
	Type      ColorType
	Value     string // val attribute: hex, scheme name, preset or system name
	LastColor string // sysClr lastClr
	LumMod    string // raw lumMod val, empty when absent
	LumOff    string // raw lumOff val, empty when absent
}

// RGB is an explicit 8-bit color.
type RGB struct {
	R, G, B uint8
}

// ThemeColor indexes, matching MSO_THEME_COLOR.
var themeColorIndex = map[string]int{
	"dk1":      1,
	"lt1":      2,
	"dk2":      3,
	"lt2":      4,
	"accent1":  5,
	"accent2":  6,
	"accent3":  7,
	"accent4":  8,
	"accent5":  9,
	"accent6":  10,
	"hlink":    11,
	"folHlink": 12,
	"tx1":      13,
	"bg1":      14,
	"tx2":      15,
	"bg2":      16,
}

// RGB returns the explicit color, if the element carries one.
func (c *Color) RGB() (RGB, bool, error) {
	switch c.Type {
	case ColorRGB:
		rgb, err := parseHexRGB(c.Value)
		return rgb, err == nil, err
	case ColorSystem:
		if c.LastColor == "" {
			return RGB{}, false, nil
		}
		rgb, err := parseHexRGB(c.LastColor)
		return rgb, err == nil, err
	}
	return RGB{}, false, nil
}

// ThemeIndex returns the theme color index for scheme colors.
func (c *Color) ThemeIndex() (int, bool, error) {
	if c.Type != ColorScheme {
		return 0, false, nil
	}
	idx, ok := themeColorIndex[c.Value]
	if !ok {
		return 0, false, fmt.Errorf("unknown scheme color %q", c.Value)
	}
	return idx, true, nil
}

// Brightness derives the tint/shade adjustment in [-1, 1]: lumOff when
// present, otherwise lumMod-1, otherwise 0.
func (c *Color) Brightness() (float64, error) {
	if c.LumOff != "" {
		return parsePercentage(c.LumOff)
	}
	if c.LumMod != "" {
		v, err := parsePercentage(c.LumMod)
		if err != nil {
			return 0, err
		}
		return v - 1.0, nil
	}
	return 0, nil
}

func parseHexRGB(s string) (RGB, error) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 3 {
		return RGB{}, fmt.Errorf("invalid RGB value %q", s)
	}
	return RGB{R: b[0], G: b[1], B: b[2]}, nil
}

// parsePercentage reads ST_Percentage: thousandths of a percent ("75000"),
// or the strict form "75%".
func parsePercentage(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid percentage %q", s)
		}
		return v / 100, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q", s)
	}
	return v / 100000, nil
}
