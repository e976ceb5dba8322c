package astro

import "math"

// AxisCoords are the mechanical angles of a German equatorial mount.
//
// RA is 0 with the counterweight pointing east, π/2 pointing at the ground
// and π pointing west. With RA at π/2, Dec is 0 with the tube pointing
// east, π/2 at the celestial pole and π pointing west.
type AxisCoords struct {
	RA  float64
	Dec float64
}

// AxisToLocal converts mount axis angles to hour angle and declination.
// The hour angle is returned in (-π, π].
func AxisToLocal(ac AxisCoords) EquatorialHACoords {
	dec, over := LimitDeclination(ac.Dec)

	// Past the pole the tube is on the other side of the pier.
	ha := ac.RA + math.Pi
	if over {
		ha = ac.RA
	}

	return EquatorialHACoords{
		HourAngle:   NormalizePi(ha),
		Declination: dec,
	}
}

// LocalToAxis converts hour angle and declination to mount axis angles.
// The pier side follows the sign of the hour angle. Both angles are
// returned in [0, 2π).
func LocalToAxis(lc EquatorialHACoords) AxisCoords {
	ha := NormalizePi(lc.HourAngle)

	if lc.HourAngle >= 0 {
		return AxisCoords{
			RA:  NormalizeToTwoPi(ha),
			Dec: NormalizeToTwoPi(math.Pi - lc.Declination),
		}
	}
	return AxisCoords{
		RA:  NormalizeToTwoPi(ha - math.Pi),
		Dec: NormalizeToTwoPi(lc.Declination),
	}
}

// EquatorialToAxis converts right ascension and declination to mount axis
// angles at the given local sidereal time.
func EquatorialToAxis(eq EquatorialCoords, lst float64) AxisCoords {
	return LocalToAxis(EquatorialToLocal(eq, lst))
}

// AxisToEquatorial converts mount axis angles to right ascension and
// declination at the given local sidereal time.
func AxisToEquatorial(ac AxisCoords, lst float64) EquatorialCoords {
	return LocalToEquatorial(AxisToLocal(ac), lst)
}
