package astro

import (
	"time"

	"github.com/soniakeys/unit"
)

// Linear sidereal time model, in radians and radians per day, referred to
// 2000-01-01 12:00 UTC.
// Reference: https://aa.usno.navy.mil/faq/GAST
const (
	gmstAtEpoch   = 4.8949612127
	gmstPerDay0h  = 0.0172027918
	gmstPerUTCDay = 6.3003880989849
)

// GreenwichMeanSiderealTime returns GMST in radians, in [0, 2π).
func GreenwichMeanSiderealTime(d CalendarDate) float64 {
	// Whole days from the epoch's midnight, truncated toward zero.
	jdx := float64(int64(JulianDate0(d) - 2451544.5))
	frac := d.dayFraction()/24 - 0.5

	gmst := gmstAtEpoch + gmstPerDay0h*jdx + gmstPerUTCDay*frac
	return NormalizeToTwoPi(gmst)
}

// LocalSiderealTime returns the sidereal time at the observer's longitude,
// in [0, 2π).
func LocalSiderealTime(d CalendarDate, loc GeographicLocation) float64 {
	return NormalizeToTwoPi(GreenwichMeanSiderealTime(d) + loc.Longitude)
}

// SiderealClock advances a known local sidereal time at the sidereal rate
// without recomputing it from the calendar.
type SiderealClock struct {
	ref time.Time
	lst float64
}

// NewSiderealClock synchronizes a clock to the observer's LST at t.
func NewSiderealClock(t time.Time, offsetHours int, loc GeographicLocation) SiderealClock {
	return SiderealClock{
		ref: t,
		lst: LocalSiderealTime(CalendarDateIn(t, offsetHours), loc),
	}
}

// Reference returns the instant the clock was synchronized at.
func (c SiderealClock) Reference() time.Time {
	return c.ref
}

// At returns the LST at t, extrapolated from the reference instant.
func (c SiderealClock) At(t time.Time) float64 {
	elapsed := t.Sub(c.ref).Seconds()
	return unit.Angle(c.lst + gmstPerUTCDay*elapsed/86400).Mod1().Rad()
}
