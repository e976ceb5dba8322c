package state

import (
	"time"

	"github.com/litescript/ls-astromath/internal/astro"
	"github.com/litescript/ls-astromath/internal/nexstar"
)

// Snapshot represents an immutable snapshot of current state. Angles are
// in radians.
type Snapshot struct {
	Time       time.Time
	Date       astro.CalendarDate
	JulianDate float64
	J2000      float64
	GMST       float64
	LST        float64

	Observer  astro.GeographicLocation
	UTCOffset int

	// Target is the tracked object, or the local meridian on the
	// equator when TargetSet is false.
	Target    astro.EquatorialCoords
	TargetSet bool

	Local        astro.EquatorialHACoords
	Horizontal   astro.HorizontalCoords
	AboveHorizon bool
	Tier         astro.AltitudeTier
	Axis         astro.AxisCoords

	Window    astro.VisibilityWindow
	WindowErr error

	History []AltitudeSample
	Updates int
}

// IsZero reports whether the snapshot holds no update.
func (s Snapshot) IsZero() bool {
	return s.Updates == 0
}

// NexStarRADec is the target as a NexStar "E"/"e" reply.
func (s Snapshot) NexStarRADec(precise bool) string {
	return nexstar.FormatPair(nexstar.Pair{First: s.Target.RightAscension, Second: s.Target.Declination}, precise)
}

// NexStarAzAlt is the target's horizontal position as a NexStar "Z"/"z"
// reply.
func (s Snapshot) NexStarAzAlt(precise bool) string {
	return nexstar.FormatPair(nexstar.Pair{First: s.Horizontal.Azimuth, Second: s.Horizontal.Altitude}, precise)
}

// NexStarLocation is the observer as a NexStar site record.
func (s Snapshot) NexStarLocation() nexstar.Location {
	return nexstar.EncodeLocation(s.Observer)
}
