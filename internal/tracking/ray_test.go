package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/arcanvas/pkg/math"
)

func TestScreenCenterRayPointsForward(t *testing.T) {
	view := math.LookAt(math.Vec3{Y: 1, Z: 2}, math.Vec3{Y: 1, Z: 0}, math.Vec3{Y: 1})
	proj := math.Perspective(1.0, 800.0/600.0, 0.05, 100)
	invViewProj := proj.Mul(view).Inverse()

	ray := ScreenToRay(400, 300, 800, 600, invViewProj)

	// The center of the screen looks straight down the view axis.
	assert.InDelta(t, 0, ray.Direction.X, 0.001)
	assert.InDelta(t, 0, ray.Direction.Y, 0.001)
	assert.InDelta(t, -1, ray.Direction.Z, 0.001)
	assert.InDelta(t, 1, ray.Origin.Y, 0.01)
}

func TestIntersectPlaneY(t *testing.T) {
	down := Ray{
		Origin:    math.Vec3{X: 1, Y: 2, Z: 3},
		Direction: math.Vec3{Y: -1},
	}

	point, dist, ok := down.IntersectPlaneY(0)
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: 1, Y: 0, Z: 3}, point)
	assert.InDelta(t, 2, dist, 0.0001)

	// Plane behind the origin.
	_, _, ok = down.IntersectPlaneY(5)
	assert.False(t, ok)

	// Ray parallel to the plane.
	level := Ray{Origin: math.Vec3{Y: 2}, Direction: math.Vec3{X: 1}}
	_, _, ok = level.IntersectPlaneY(0)
	assert.False(t, ok)
}

func TestIntersectSurfaceBounds(t *testing.T) {
	anchor := Anchor{
		ID:    "s1",
		Kind:  KindSurface,
		Pose:  Pose{Position: math.Vec3{X: 0, Y: 0, Z: 0}, Orientation: math.QuatIdentity()},
		Width: 2,
		Depth: 1,
	}

	inside := Ray{Origin: math.Vec3{X: 0.9, Y: 1, Z: 0.4}, Direction: math.Vec3{Y: -1}}
	point, _, ok := inside.IntersectSurface(anchor)
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: 0.9, Y: 0, Z: 0.4}, point)

	// Within the plane but outside the extent.
	outside := Ray{Origin: math.Vec3{X: 1.1, Y: 1, Z: 0}, Direction: math.Vec3{Y: -1}}
	_, _, ok = outside.IntersectSurface(anchor)
	assert.False(t, ok)

	deep := Ray{Origin: math.Vec3{X: 0, Y: 1, Z: 0.6}, Direction: math.Vec3{Y: -1}}
	_, _, ok = deep.IntersectSurface(anchor)
	assert.False(t, ok)
}
