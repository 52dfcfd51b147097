package domain

import "strconv"

// HoursPerDay is the fixed workday length used for hour/day conversion.
// The backend has no notion of days; everything crosses the wire in hours.
const HoursPerDay = 8.0

// Unit tags an amount entered in one of the two supported time units.
type Unit string

const (
	UnitHours Unit = "hours"
	UnitDays  Unit = "days"
)

// ParseUnit validates a unit tag coming from a form.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitHours, UnitDays:
		return Unit(s), nil
	default:
		return "", NewValidationError("unit", "must be hours or days")
	}
}

// ToHours normalizes an amount to hours for submission to the backend.
func ToHours(amount float64, unit Unit) float64 {
	if unit == UnitDays {
		return amount * HoursPerDay
	}
	return amount
}

// ToDays converts an hour balance to days for display.
func ToDays(hours float64) float64 {
	return hours / HoursPerDay
}

// FormatDays renders an hour amount as days with two fixed decimals,
// matching the portal's balance display.
func FormatDays(hours float64) string {
	return strconv.FormatFloat(ToDays(hours), 'f', 2, 64)
}

// ValidGranularity reports whether an hour amount falls on the half-hour
// grid the forms accept. Finer fractions are rejected before submission.
func ValidGranularity(hours float64) bool {
	scaled := hours * 2
	return scaled == float64(int64(scaled))
}

// ConversionCost is the point cost of converting hours into balance at the
// admin-configured points-per-hour rate.
func ConversionCost(hours float64, pointsPerHour int) float64 {
	return hours * float64(pointsPerHour)
}

// CanConvert reports whether a user holding points can afford converting
// hours at the given rate. Zero or negative hour amounts never convert.
func CanConvert(points int, hours float64, pointsPerHour int) bool {
	return hours > 0 && float64(points) >= ConversionCost(hours, pointsPerHour)
}
