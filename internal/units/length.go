// Package units handles physical lengths and the conversion between a
// length and a pixel count via a linear pixel density.
package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Length is a scalar distance stored in meters.
type Length struct {
	Meters float64
}

func FromMeters(m float64) Length       { return Length{Meters: m} }
func FromCentimeters(cm float64) Length { return Length{Meters: cm / 100.0} }
func FromMillimeters(mm float64) Length { return Length{Meters: mm / 1000.0} }
func FromInches(in float64) Length      { return Length{Meters: in * 0.0254} }

func (l Length) Centimeters() float64 { return l.Meters * 100.0 }
func (l Length) Millimeters() float64 { return l.Meters * 1000.0 }
func (l Length) Inches() float64      { return l.Meters / 0.0254 }

func (l Length) Scale(factor float64) Length { return Length{Meters: l.Meters * factor} }

var lengthPattern = regexp.MustCompile(`^\s*([+-]?[0-9]*\.?[0-9]+)\s*([a-zA-Z"]*)\s*$`)

// ParseLength parses strings of the form "<number>[whitespace]<unit>"
// where unit is one of meters/meter/m, centimeters/centimeter/cm,
// millimeters/millimeter/mm, inches/inch/in/". All of the following are
// valid and equivalent: "43.8 meters", "43.8meters", "43.8m", "4380cm",
// "43800 mm", `1724.409"`.
func ParseLength(s string) (Length, error) {
	m := lengthPattern.FindStringSubmatch(s)
	if m == nil {
		return Length{}, fmt.Errorf("units: %q is not a valid length", s)
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Length{}, fmt.Errorf("units: %q is not a valid length: %w", s, err)
	}
	unit := strings.ToLower(strings.TrimSpace(m[2]))
	switch unit {
	case "meters", "meter", "m":
		return FromMeters(value), nil
	case "centimeters", "centimeter", "cm":
		return FromCentimeters(value), nil
	case "millimeters", "millimeter", "mm":
		return FromMillimeters(value), nil
	case "inches", "inch", "in", `"`:
		return FromInches(value), nil
	default:
		return Length{}, fmt.Errorf("units: unrecognized unit %q in %q", m[2], s)
	}
}
