package geo

import "math"

// NormalizeHeading maps any angle in degrees into [0,360).
func NormalizeHeading(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		// -tiny + 360 rounds up to 360
		h = 0
	}
	return h
}

// SignedTurn returns the shortest rotation from cur to target, in (-180,180].
// Positive is clockwise.
func SignedTurn(cur, target float64) float64 {
	d := NormalizeHeading(target - cur)
	if d > 180 {
		d -= 360
	}
	return d
}

// Compass returns the closest of the eight compass directions.
func Compass(heading float64) string {
	h := NormalizeHeading(heading + 22.5)
	idx := int(h / 45)
	return [...]string{"North", "Northeast", "East", "Southeast",
		"South", "Southwest", "West", "Northwest"}[idx]
}
