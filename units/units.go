// Package units provides shared constants and validation for depth and
// diameter units
package units

// Unit constants
const (
	Meter = "m"
	Foot  = "ft"

	Millimeter = "mm"
	Inch       = "in"
)

const (
	metersPerFoot = 0.3048
	mmPerInch     = 25.4
)

// ValidUnits contains all valid depth unit values
var ValidUnits = []string{Meter, Foot}

// ValidDiameterUnits contains all valid diameter unit values
var ValidDiameterUnits = []string{Millimeter, Inch}

// IsValid checks if the given unit is in the list of valid depth units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// IsValidDiameter checks if the given unit is in the list of valid diameter units
func IsValidDiameter(unit string) bool {
	for _, validUnit := range ValidDiameterUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// ValidUnitsString returns a comma-separated string of valid depth units for error messages
func ValidUnitsString() string {
	return "m, ft"
}

// ValidDiameterUnitsString returns a comma-separated string of valid diameter units for error messages
func ValidDiameterUnitsString() string {
	return "mm, in"
}

// ConvertDepth converts a depth value between meters and feet.
// Unknown units pass the value through unchanged.
func ConvertDepth(value float64, from, to string) float64 {
	if from == to {
		return value
	}
	switch {
	case from == Meter && to == Foot:
		return value / metersPerFoot
	case from == Foot && to == Meter:
		return value * metersPerFoot
	default:
		return value
	}
}

// ConvertDiameter converts a diameter value between millimeters and
// inches. Unknown units pass the value through unchanged.
func ConvertDiameter(value float64, from, to string) float64 {
	if from == to {
		return value
	}
	switch {
	case from == Millimeter && to == Inch:
		return value / mmPerInch
	case from == Inch && to == Millimeter:
		return value * mmPerInch
	default:
		return value
	}
}
