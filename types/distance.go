package types

import "fmt"

// DistanceUnit names the unit a Distance value is expressed in.
type DistanceUnit string

const (
	Kilometers DistanceUnit = "km"
	Miles      DistanceUnit = "mi"
)

const milesToKilometers = 1.609344

// Distance is a maximum-distance scalar for proximity queries.
// A nil *Distance means no distance constraint was supplied.
type Distance struct {
	Value float64
	Unit  DistanceUnit
}

// Normalized returns the distance value in kilometers.
func (d Distance) Normalized() float64 {
	switch d.Unit {
	case Miles:
		return d.Value * milesToKilometers
	default:
		return d.Value
	}
}

func (d Distance) String() string {
	unit := d.Unit
	if unit == "" {
		unit = Kilometers
	}
	return fmt.Sprintf("%g %s", d.Value, unit)
}
