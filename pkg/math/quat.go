package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := angle / 2
	s := float32(math.Sin(float64(halfAngle)))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(halfAngle))),
	}
}

// QuatLookRotation creates a quaternion whose forward axis points along dir.
// dir does not need to be normalized; up is typically {0,1,0}. Falls back to
// identity when dir is degenerate or parallel to up.
func QuatLookRotation(dir, up Vec3) Quat {
	f := dir.Normalize()
	if f.Length() == 0 {
		return QuatIdentity()
	}
	s := f.Cross(up).Normalize()
	if s.Length() == 0 {
		return QuatIdentity()
	}
	u := s.Cross(f)

	// Rotation matrix columns are (right, up, -forward); convert to quaternion.
	m00, m01, m02 := s.X, u.X, -f.X
	m10, m11, m12 := s.Y, u.Y, -f.Y
	m20, m21, m22 := s.Z, u.Z, -f.Z

	trace := m00 + m11 + m22
	var q Quat
	switch {
	case trace > 0:
		r := float32(math.Sqrt(float64(1 + trace)))
		inv := 0.5 / r
		q = Quat{
			X: (m21 - m12) * inv,
			Y: (m02 - m20) * inv,
			Z: (m10 - m01) * inv,
			W: 0.5 * r,
		}
	case m00 >= m11 && m00 >= m22:
		r := float32(math.Sqrt(float64(1 + m00 - m11 - m22)))
		inv := 0.5 / r
		q = Quat{
			X: 0.5 * r,
			Y: (m01 + m10) * inv,
			Z: (m02 + m20) * inv,
			W: (m21 - m12) * inv,
		}
	case m11 > m22:
		r := float32(math.Sqrt(float64(1 - m00 + m11 - m22)))
		inv := 0.5 / r
		q = Quat{
			X: (m01 + m10) * inv,
			Y: 0.5 * r,
			Z: (m12 + m21) * inv,
			W: (m02 - m20) * inv,
		}
	default:
		r := float32(math.Sqrt(float64(1 - m00 - m11 + m22)))
		inv := 0.5 / r
		q = Quat{
			X: (m02 + m20) * inv,
			Y: (m12 + m21) * inv,
			Z: 0.5 * r,
			W: (m10 - m01) * inv,
		}
	}
	return q.Normalize()
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// RotateVec3 rotates a vector by this quaternion.
func (q Quat) RotateVec3(v Vec3) Vec3 {
	// v' = v + 2*cross(q.xyz, cross(q.xyz, v) + q.w*v)
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Add(v.Scale(q.W))
	return v.Add(u.Cross(t).Scale(2))
}

// Forward returns the rotation's forward axis (-Z rotated by q).
func (q Quat) Forward() Vec3 {
	return q.RotateVec3(Vec3{X: 0, Y: 0, Z: -1})
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}
