package nexstar

import "github.com/litescript/ls-astromath/internal/astro"

// Location is the eight-byte site record of the get/set location commands:
// latitude then longitude, each as degrees, minutes, seconds and a sign
// byte (1 for south or west).
type Location [8]byte

// EncodeLocation packs an observer location. Arcseconds are truncated.
func EncodeLocation(loc astro.GeographicLocation) Location {
	var out Location
	putAngle(out[0:4], astro.NormalizePi(loc.Latitude))
	putAngle(out[4:8], astro.NormalizePi(loc.Longitude))
	return out
}

func putAngle(dst []byte, rad float64) {
	sx := astro.RadiansToSexagesimal(rad)
	dst[0] = sx.Degrees
	dst[1] = sx.Minutes
	dst[2] = sx.Seconds
	if sx.Negative {
		dst[3] = 1
	}
}

// DecodeLocation unpacks a site record. Negative angles arrive as their
// reflex and are folded back into (-π, π].
func DecodeLocation(rec Location) astro.GeographicLocation {
	return astro.GeographicLocation{
		Latitude:  astro.NormalizePi(astro.SexagesimalToRadians(getAngle(rec[0:4]))),
		Longitude: astro.NormalizePi(astro.SexagesimalToRadians(getAngle(rec[4:8]))),
	}
}

func getAngle(src []byte) astro.SexagesimalAngle {
	return astro.SexagesimalAngle{
		Degrees:  src[0],
		Minutes:  src[1],
		Seconds:  src[2],
		Negative: src[3] != 0,
	}
}
