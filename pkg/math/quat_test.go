package math

import (
	gomath "math"
	"testing"
)

func approxVec3(a, b Vec3, eps float32) bool {
	return a.Distance(b) < eps
}

func TestQuatIdentityForward(t *testing.T) {
	got := QuatIdentity().Forward()
	want := Vec3{0, 0, -1}
	if !approxVec3(got, want, 0.0001) {
		t.Errorf("QuatIdentity().Forward() = %v, want %v", got, want)
	}
}

func TestQuatRotateVec3(t *testing.T) {
	// 90 degrees around Y takes -Z to -X.
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(gomath.Pi/2))
	got := q.RotateVec3(Vec3{0, 0, -1})
	want := Vec3{-1, 0, 0}
	if !approxVec3(got, want, 0.0001) {
		t.Errorf("RotateVec3() = %v, want %v", got, want)
	}
}

func TestQuatLookRotation(t *testing.T) {
	dir := Vec3{1, 0, 0}
	q := QuatLookRotation(dir, Vec3{0, 1, 0})
	got := q.Forward()
	if !approxVec3(got, dir, 0.0001) {
		t.Errorf("QuatLookRotation forward = %v, want %v", got, dir)
	}
}

func TestQuatLookRotationDegenerate(t *testing.T) {
	if got := QuatLookRotation(Vec3{}, Vec3{0, 1, 0}); got != QuatIdentity() {
		t.Errorf("QuatLookRotation(zero) = %v, want identity", got)
	}
	if got := QuatLookRotation(Vec3{0, 1, 0}, Vec3{0, 1, 0}); got != QuatIdentity() {
		t.Errorf("QuatLookRotation(parallel to up) = %v, want identity", got)
	}
}

func TestQuatMulComposesRotations(t *testing.T) {
	// Two 45-degree Y rotations equal one 90-degree Y rotation.
	half := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(gomath.Pi/4))
	full := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(gomath.Pi/2))
	got := half.Mul(half).RotateVec3(Vec3{0, 0, -1})
	want := full.RotateVec3(Vec3{0, 0, -1})
	if !approxVec3(got, want, 0.0001) {
		t.Errorf("composed rotation = %v, want %v", got, want)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 2, Y: 0, Z: 0, W: 2}.Normalize()
	length := float32(gomath.Sqrt(float64(q.Dot(q))))
	if length < 0.999 || length > 1.001 {
		t.Errorf("Normalize() length = %v, want ~1", length)
	}
}
