package math

import (
	"testing"
)

func TestMat4IdentityTransform(t *testing.T) {
	p := Vec3{1, 2, 3}
	got := Identity().TransformVec3(p)
	if got != p {
		t.Errorf("Identity().TransformVec3() = %v, want %v", got, p)
	}
}

func TestMat4Translate(t *testing.T) {
	m := Translate(1, 2, 3)
	got := m.TransformVec3(Vec3{0, 0, 0})
	want := Vec3{1, 2, 3}
	if got != want {
		t.Errorf("Translate().TransformVec3() = %v, want %v", got, want)
	}
}

func TestMat4Inverse(t *testing.T) {
	m := Translate(5, -3, 2).Mul(Scale(2, 2, 2))
	inv := m.Inverse()
	p := Vec3{1, 1, 1}
	got := inv.TransformVec3(m.TransformVec3(p))
	if !approxVec3(got, p, 0.0001) {
		t.Errorf("Inverse round trip = %v, want %v", got, p)
	}
}

func TestMat4Compose(t *testing.T) {
	m := Compose(Vec3{1, 0, 0}, QuatIdentity(), 2)
	got := m.TransformVec3(Vec3{1, 0, 0})
	want := Vec3{3, 0, 0}
	if !approxVec3(got, want, 0.0001) {
		t.Errorf("Compose().TransformVec3() = %v, want %v", got, want)
	}
}
