package tracking

import (
	gomath "math"

	"github.com/Faultbox/arcanvas/pkg/math"
)

// Ray is a world-space ray with origin and normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport
// dimensions. invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Normalized device coords (-1 to 1), Y flipped.
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH

	nearPoint := math.Vec4{ndcX, ndcY, -1.0, 1.0}
	farPoint := math.Vec4{ndcX, ndcY, 1.0, 1.0}

	nearWorld := invViewProj.MulVec4(nearPoint)
	farWorld := invViewProj.MulVec4(farPoint)

	if nearWorld[3] != 0 {
		nearWorld[0] /= nearWorld[3]
		nearWorld[1] /= nearWorld[3]
		nearWorld[2] /= nearWorld[3]
	}
	if farWorld[3] != 0 {
		farWorld[0] /= farWorld[3]
		farWorld[1] /= farWorld[3]
		farWorld[2] /= farWorld[3]
	}

	origin := math.Vec3{X: nearWorld[0], Y: nearWorld[1], Z: nearWorld[2]}
	dir := math.Vec3{
		X: farWorld[0] - nearWorld[0],
		Y: farWorld[1] - nearWorld[1],
		Z: farWorld[2] - nearWorld[2],
	}.Normalize()

	return Ray{Origin: origin, Direction: dir}
}

// IntersectPlaneY intersects the ray with a horizontal plane at the given
// Y level. Returns the intersection point and the ray distance t, or
// ok=false when the ray is parallel or the plane is behind the origin.
func (r Ray) IntersectPlaneY(planeY float32) (point math.Vec3, t float32, ok bool) {
	if gomath.Abs(float64(r.Direction.Y)) < 0.001 {
		return math.Vec3{}, 0, false
	}

	t = (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return math.Vec3{}, 0, false
	}

	return r.Origin.Add(r.Direction.Scale(t)), t, true
}

// IntersectSurface intersects the ray with a surface anchor's finite
// extent. The plane is horizontal at the anchor's height and bounded by
// width/depth around its center.
func (r Ray) IntersectSurface(anchor Anchor) (math.Vec3, float32, bool) {
	point, t, ok := r.IntersectPlaneY(anchor.Pose.Position.Y)
	if !ok {
		return math.Vec3{}, 0, false
	}

	center := anchor.Pose.Position
	if gomath.Abs(float64(point.X-center.X)) > float64(anchor.Width/2) {
		return math.Vec3{}, 0, false
	}
	if gomath.Abs(float64(point.Z-center.Z)) > float64(anchor.Depth/2) {
		return math.Vec3{}, 0, false
	}

	return point, t, true
}
