package osmroads

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/osm"
)

const mphToKmh = 1.609344

// Speeds outside [minSpeed, maxSpeed] km/h are treated as tagging errors.
const (
	minSpeed = 1.0
	maxSpeed = 300.0
)

// DefaultSpeeds maps accepted highway classes to a default speed in km/h.
// Ways of any other class are skipped.
var DefaultSpeeds = map[string]float64{
	"motorway":       110,
	"motorway_link":  60,
	"trunk":          90,
	"trunk_link":     50,
	"primary":        70,
	"primary_link":   40,
	"secondary":      60,
	"secondary_link": 40,
	"tertiary":       50,
	"tertiary_link":  30,
	"unclassified":   40,
	"residential":    30,
	"living_street":  10,
	"service":        20,
}

// speedOf returns the travel speed for a way in km/h and whether the way is
// a road at all. A usable maxspeed tag overrides the class default; a class
// whose configured default is unusable only accepts ways with one.
func speedOf(tags osm.Tags, speeds map[string]float64) (float64, bool) {
	class := tags.Find("highway")
	def, ok := speeds[class]
	if !ok {
		return 0, false
	}
	if v, ok := parseMaxSpeed(tags.Find("maxspeed")); ok {
		return v, true
	}
	if !usableSpeed(def) {
		return 0, false
	}

	return def, true
}

func usableSpeed(kmh float64) bool {
	return !math.IsNaN(kmh) && kmh >= minSpeed && kmh <= maxSpeed
}

// parseMaxSpeed understands "50", "50 km/h", "30 mph" and "30mph".
// Symbolic values such as "none", "walk" or "RU:urban" are rejected, and so
// are NaN, infinities and speeds outside [minSpeed, maxSpeed].
func parseMaxSpeed(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, false
	}

	factor := 1.0
	switch {
	case strings.HasSuffix(s, "mph"):
		factor = mphToKmh
		s = strings.TrimSuffix(s, "mph")
	case strings.HasSuffix(s, "km/h"):
		s = strings.TrimSuffix(s, "km/h")
	case strings.HasSuffix(s, "kmh"):
		s = strings.TrimSuffix(s, "kmh")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	v *= factor
	if !usableSpeed(v) {
		return 0, false
	}

	return v, true
}
