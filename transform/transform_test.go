package transform

import (
	"math"
	"testing"
)

const eps = 1e-9

func quatClose(a, b Quat) bool {
	// q and -q are the same rotation
	if a.W*b.W+a.X*b.X+a.Y*b.Y+a.Z*b.Z < 0 {
		b = Quat{-b.W, -b.X, -b.Y, -b.Z}
	}
	return math.Abs(a.W-b.W) < eps && math.Abs(a.X-b.X) < eps &&
		math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func vecClose(a, b Vec3) bool {
	return a.Sub(b).Norm() < eps
}

func TestInverseCombineRoundTrip(t *testing.T) {
	poses := []struct {
		rot Quat
		pos Vec3
	}{
		{Identity, Vec3{1, 2, 3}},
		{QuatFromEulerZ(0.7), Vec3{-0.2, 0.5, 0.1}},
		{QuatFromEulerZ(math.Pi - 0.01).Mul(Quat{W: math.Cos(0.3), X: math.Sin(0.3)}), Vec3{0.55, 0, 0.007}},
	}
	for _, p := range poses {
		invRot, invPos := Inverse(p.rot, p.pos)
		rot, pos := Combine(invRot, invPos, p.rot, p.pos)
		if !quatClose(rot, Identity) {
			t.Errorf("round trip rotation not identity: %+v", rot)
		}
		if !vecClose(pos, Vec3{}) {
			t.Errorf("round trip position not zero: %+v", pos)
		}
	}
}

func TestRotateMatchesCombine(t *testing.T) {
	q := QuatFromEulerZ(math.Pi / 2)
	got := q.Rotate(Vec3{1, 0, 0})
	if !vecClose(got, Vec3{0, 1, 0}) {
		t.Errorf("rotating x by 90 degrees about z: got %+v", got)
	}
}

func TestEulerZRoundTrip(t *testing.T) {
	for _, angle := range []float64{0, 0.25, -1.3, math.Pi - 1e-6, -math.Pi + 1e-6} {
		got := EulerZ(QuatFromEulerZ(angle))
		if math.Abs(got-angle) > 1e-9 {
			t.Errorf("EulerZ(QuatFromEulerZ(%v)) = %v", angle, got)
		}
	}
}

func TestCombineBatchElementwise(t *testing.T) {
	rotA := []Quat{Identity, QuatFromEulerZ(1.1)}
	posA := []Vec3{{1, 0, 0}, {0, 2, 0}}
	rotB := []Quat{QuatFromEulerZ(-0.4), Identity}
	posB := []Vec3{{0, 0, 1}, {3, 0, 0}}

	rot, pos := CombineBatch(rotA, posA, rotB, posB)
	for i := range rotA {
		wantRot, wantPos := Combine(rotA[i], posA[i], rotB[i], posB[i])
		if !quatClose(rot[i], wantRot) || !vecClose(pos[i], wantPos) {
			t.Errorf("batch entry %d differs from scalar combine", i)
		}
	}
}
