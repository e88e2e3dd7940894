package split

import "math"

// RoundToCent rounds a currency amount to 2 decimal places.
func RoundToCent(value float64) float64 {
	return math.Round(value*100) / 100
}

// floorToCent truncates a currency amount to 2 decimal places.
func floorToCent(value float64) float64 {
	return math.Floor(value*100) / 100
}
