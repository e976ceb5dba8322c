package astro

import "math"

// GeographicLocation is an observer's position on Earth.
type GeographicLocation struct {
	Latitude  float64 // north positive
	Longitude float64 // east positive
}

// EquatorialHACoords are equatorial coordinates referred to the local
// meridian: hour angle (west positive) and declination.
type EquatorialHACoords struct {
	HourAngle   float64
	Declination float64
}

// EquatorialCoords are equatorial coordinates referred to the equinox:
// right ascension and declination.
type EquatorialCoords struct {
	RightAscension float64
	Declination    float64
}

// HorizontalCoords are coordinates referred to the observer's horizon.
// Azimuth is measured from north through east.
type HorizontalCoords struct {
	Azimuth  float64
	Altitude float64
}

// EquatorialToHorizontal converts hour angle and declination to azimuth and
// altitude for the observer.
//
// The equatorial unit vector is rotated about the east-west axis by the
// observer's colatitude.
// Reference: Toshimi Taki, "Matrix Method for Coordinates Transformation".
func EquatorialToHorizontal(loc GeographicLocation, eq EquatorialHACoords) HorizontalCoords {
	v := sphericalToVec3(-eq.HourAngle, eq.Declination)
	r := v.RotateY(math.Pi/2 - loc.Latitude)

	return HorizontalCoords{
		Azimuth:  math.Pi - math.Atan2(r.Y, r.X),
		Altitude: math.Asin(r.Z),
	}
}

// HorizontalToEquatorial converts azimuth and altitude to hour angle and
// declination for the observer. The hour angle is returned in [0, 2π).
func HorizontalToEquatorial(loc GeographicLocation, hor HorizontalCoords) EquatorialHACoords {
	v := sphericalToVec3(math.Pi-hor.Azimuth, hor.Altitude)
	r := v.RotateY(loc.Latitude - math.Pi/2)

	ha := -math.Atan2(r.Y, r.X)
	if ha < 0 {
		ha += twoPi
	}
	return EquatorialHACoords{
		HourAngle:   ha,
		Declination: math.Asin(r.Z),
	}
}

// EquatorialToLocal converts right ascension to hour angle at the given
// local sidereal time. The hour angle is returned in (-π, π].
func EquatorialToLocal(eq EquatorialCoords, lst float64) EquatorialHACoords {
	return EquatorialHACoords{
		HourAngle:   NormalizePi(lst - eq.RightAscension),
		Declination: eq.Declination,
	}
}

// LocalToEquatorial converts hour angle to right ascension at the given
// local sidereal time. The right ascension is returned in [0, 2π).
func LocalToEquatorial(lc EquatorialHACoords, lst float64) EquatorialCoords {
	return EquatorialCoords{
		RightAscension: NormalizeToTwoPi(lst - lc.HourAngle),
		Declination:    lc.Declination,
	}
}

// AboveHorizon reports whether the coordinates are at or above the
// mathematical horizon.
func (h HorizontalCoords) AboveHorizon() bool {
	return h.Altitude >= 0
}
