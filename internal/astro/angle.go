// Package astro provides astronomical time and coordinate conversions:
// sexagesimal angles, Julian dates, sidereal time and the rotation between
// the horizontal and hour-angle equatorial frames.
//
// All angles are in radians unless a name says otherwise. Every function in
// this package is pure and safe for concurrent use.
package astro

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"
)

const twoPi = 2 * math.Pi

// ErrInvalidSexagesimal is returned when text cannot be parsed as D:MM:SS.
var ErrInvalidSexagesimal = errors.New("invalid sexagesimal angle")

// SexagesimalAngle is an angle split into degrees, arcminutes and
// arcseconds. The sign is kept apart from the magnitude so that angles
// smaller than one degree, including zero, can still be negative.
type SexagesimalAngle struct {
	Negative bool
	Degrees  uint8
	Minutes  uint8 // 0-59
	Seconds  uint8 // 0-59
}

// magnitude returns the unsigned angle in radians.
func (a SexagesimalAngle) magnitude() float64 {
	return math.Pi * (float64(a.Degrees) +
		float64(a.Minutes)/60 +
		float64(a.Seconds)/3600) / 180
}

// SexagesimalToRadians converts a sexagesimal angle to radians.
//
// A negative angle is returned as its reflex, 2π minus the magnitude, so
// the result always lies in [0, 2π]. Use SexagesimalToSignedRadians for the
// conventional negated value.
func SexagesimalToRadians(a SexagesimalAngle) float64 {
	rad := a.magnitude()
	if a.Negative {
		return twoPi - rad
	}
	return rad
}

// SexagesimalToSignedRadians converts a sexagesimal angle to radians,
// negating the magnitude when the sign is set.
func SexagesimalToSignedRadians(a SexagesimalAngle) float64 {
	rad := a.magnitude()
	if a.Negative {
		return -rad
	}
	return rad
}

// RadiansToSexagesimal converts radians to a sexagesimal angle.
// Angles above 180° are wrapped to their negative equivalent first.
// Fractional arcseconds are truncated.
func RadiansToSexagesimal(rad float64) SexagesimalAngle {
	deg := rad * 180 / math.Pi
	if deg > 180 {
		deg -= 360
	}

	neg := deg < 0
	deg = math.Abs(deg)
	min := 60 * (deg - math.Trunc(deg))
	sec := 60 * (min - math.Trunc(min))

	return SexagesimalAngle{
		Negative: neg,
		Degrees:  uint8(int(deg)),
		Minutes:  uint8(min),
		Seconds:  uint8(sec),
	}
}

// FormatSexagesimal renders the angle as " D:MM:SS". The leading space is
// replaced by '-' for negative angles; degrees are never padded.
func FormatSexagesimal(a SexagesimalAngle) string {
	buf := []byte(fmt.Sprintf(" %d:%02d:%02d", a.Degrees, a.Minutes, a.Seconds))
	if a.Negative {
		buf[0] = '-'
	}
	return string(buf)
}

// String implements fmt.Stringer using FormatSexagesimal.
func (a SexagesimalAngle) String() string {
	return FormatSexagesimal(a)
}

// Angle returns the signed angle as a unit.Angle.
func (a SexagesimalAngle) Angle() unit.Angle {
	return unit.Angle(SexagesimalToSignedRadians(a))
}

// ParseSexagesimal parses text in the layout produced by FormatSexagesimal.
// Leading whitespace and an optional sign are accepted, and the minutes and
// seconds fields may be omitted ("12", "-0:30", " 5:03:07").
func ParseSexagesimal(s string) (SexagesimalAngle, error) {
	var a SexagesimalAngle

	text := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(text, "-"):
		a.Negative = true
		text = text[1:]
	case strings.HasPrefix(text, "+"):
		text = text[1:]
	}
	if text == "" {
		return a, fmt.Errorf("%w: %q", ErrInvalidSexagesimal, s)
	}

	fields := strings.Split(text, ":")
	if len(fields) > 3 {
		return a, fmt.Errorf("%w: %q has too many fields", ErrInvalidSexagesimal, s)
	}

	limits := []int{255, 59, 59}
	var values [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return a, fmt.Errorf("%w: %q: %v", ErrInvalidSexagesimal, s, err)
		}
		if v < 0 || v > limits[i] {
			return a, fmt.Errorf("%w: %q field %d out of range", ErrInvalidSexagesimal, s, i+1)
		}
		values[i] = v
	}

	a.Degrees = uint8(values[0])
	a.Minutes = uint8(values[1])
	a.Seconds = uint8(values[2])
	return a, nil
}

// NormalizeToTwoPi reduces an angle to [0, 2π).
func NormalizeToTwoPi(rad float64) float64 {
	turns := math.Trunc(rad / twoPi)
	rad -= turns * twoPi
	if rad < 0 {
		rad += twoPi
	}
	// A tiny negative remainder can round up to exactly 2π.
	if rad >= twoPi {
		return 0
	}
	return rad
}

// NormalizePi reduces an angle to (-π, π].
func NormalizePi(rad float64) float64 {
	rad = NormalizeToTwoPi(rad)
	if rad > math.Pi {
		return rad - twoPi
	}
	return rad
}

// LimitDeclination folds an angle into [-π/2, π/2], the range of a
// declination or altitude. over reports whether the angle had to be
// reflected across a pole.
func LimitDeclination(rad float64) (dec float64, over bool) {
	rad = NormalizePi(rad)
	switch {
	case rad > math.Pi/2:
		return math.Pi - rad, true
	case rad < -math.Pi/2:
		return -math.Pi - rad, true
	}
	return rad, false
}
