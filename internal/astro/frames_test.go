package astro

import (
	"math"
	"testing"
)

func vecClose(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestVec3_norm(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{0, 0, 0}, 0},
		{"unit x", Vec3{1, 0, 0}, 1},
		{"3-4-5", Vec3{3, 4, 0}, 5},
		{"negative", Vec3{-3, -4, 0}, 5},
		{"3D", Vec3{1, 2, 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.norm()
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("norm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3RotateY(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec3
		angle float64
		want  Vec3
	}{
		{"x to z", Vec3{1, 0, 0}, math.Pi / 2, Vec3{0, 0, 1}},
		{"z to -x", Vec3{0, 0, 1}, math.Pi / 2, Vec3{-1, 0, 0}},
		{"y is the axis", Vec3{0, 1, 0}, 1.234, Vec3{0, 1, 0}},
		{"half turn", Vec3{1, 2, 3}, math.Pi, Vec3{-1, 2, -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.RotateY(tt.angle)
			if !vecClose(got, tt.want, 1e-12) {
				t.Errorf("RotateY(%v) = %v, want %v", tt.angle, got, tt.want)
			}
		})
	}
}

func TestVec3RotateY_Inverse(t *testing.T) {
	v := Vec3{0.3, -0.5, 0.81}
	for a := -3.0; a < 3; a += 0.7 {
		back := v.RotateY(a).RotateY(-a)
		if !vecClose(back, v, 1e-12) {
			t.Errorf("RotateY(%v) then RotateY(%v) = %v, want %v", a, -a, back, v)
		}
		if math.Abs(v.RotateY(a).norm()-v.norm()) > 1e-12 {
			t.Errorf("RotateY(%v) changed the norm", a)
		}
	}
}

func TestSphericalToVec3(t *testing.T) {
	for lon := -3.0; lon < 3; lon += 0.5 {
		for lat := -1.5; lat <= 1.5; lat += 0.5 {
			v := sphericalToVec3(lon, lat)
			if math.Abs(v.norm()-1) > 1e-12 {
				t.Errorf("sphericalToVec3(%v, %v) norm = %v, want 1", lon, lat, v.norm())
			}
			if math.Abs(math.Asin(v.Z)-lat) > 1e-12 {
				t.Errorf("sphericalToVec3(%v, %v) latitude = %v", lon, lat, math.Asin(v.Z))
			}
		}
	}
}
