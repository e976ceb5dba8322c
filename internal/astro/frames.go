package astro

import "math"

// Vec3 is a rectangular vector on the unit celestial sphere.
type Vec3 struct {
	X, Y, Z float64
}

// sphericalToVec3 builds a unit vector from a longitude-like angle
// measured from +X toward +Y and a latitude-like angle above the XY plane.
func sphericalToVec3(lon, lat float64) Vec3 {
	return Vec3{
		X: math.Cos(lon) * math.Cos(lat),
		Y: math.Sin(lon) * math.Cos(lat),
		Z: math.Sin(lat),
	}
}

// RotateY rotates the frame about the Y axis by angle.
func (v Vec3) RotateY(angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{
		X: v.X*c - v.Z*s,
		Y: v.Y,
		Z: v.X*s + v.Z*c,
	}
}

// norm returns the magnitude of the vector.
func (v Vec3) norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}
