// Package units converts measurement values found in product names and
// parameter text to the canonical units used across the catalog:
// millimeters for dimensions, watts for power, liters for volume.
package units

import (
	"strconv"
	"strings"
)

// Canonical unit names.
const (
	Millimeter = "mm"
	Watt       = "W"
	Liter      = "L"
)

// Normalize converts a value in the given unit to its canonical unit.
// Unknown units pass through unchanged with the unit lowercased.
func Normalize(value float64, unit string) (float64, string) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "cm", "centimeter", "centimeters":
		return value * 10, Millimeter
	case "m", "meter", "meters":
		return value * 1000, Millimeter
	case "mm":
		return value, Millimeter
	case "kw":
		return value * 1000, Watt
	case "w":
		return value, Watt
	case "l", "liter", "liters", "litre", "litres", "litrov":
		return value, Liter
	default:
		return value, strings.ToLower(strings.TrimSpace(unit))
	}
}

// NormalizeString parses a textual value (decimal comma tolerated) and
// normalizes it. ok is false when the value does not parse as a number.
func NormalizeString(value, unit string) (float64, string, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(value), ",", "."), 64)
	if err != nil {
		return 0, "", false
	}
	nv, nu := Normalize(v, unit)
	return nv, nu, true
}

// Format renders a normalized value/unit pair the way attribute fields
// store it, e.g. "400 mm" or "2.6 kW" -> "2600 W".
func Format(value float64, unit string) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + unit
}
