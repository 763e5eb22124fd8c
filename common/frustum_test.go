package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFrustumIntersectsSphere(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	proj := Perspective(mgl32.DegToRad(60), 1, 0.1, 50)
	f := ExtractFrustum(proj.Mul4(view))

	tests := []struct {
		name   string
		center mgl32.Vec3
		radius float32
		want   bool
	}{
		{"in front", mgl32.Vec3{0, 0, 0}, 0.5, true},
		{"behind camera", mgl32.Vec3{0, 0, 10}, 0.5, false},
		{"far left", mgl32.Vec3{-100, 0, 0}, 1, false},
		{"straddling left plane", mgl32.Vec3{-3, 0, 0}, 2, true},
		{"beyond far plane", mgl32.Vec3{0, 0, -60}, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.IntersectsSphere(tt.center, tt.radius); got != tt.want {
				t.Errorf("IntersectsSphere(%v, %v) = %v, want %v", tt.center, tt.radius, got, tt.want)
			}
		})
	}
}
