package math

import "math"

// Mat4 is a 4x4 matrix in row-major order, applied to column vectors.
// Layout: [m00 m01 m02 m03]
//
//	[m10 m11 m12 m13]
//	[m20 m21 m22 m23]
//	[m30 m31 m32 m33]
//
// The translation lives in the last column (m03, m13, m23).
type Mat4 [4][4]float64

// Vec4 is a homogeneous 4-component vector.
type Vec4 [4]float64

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return math.Pi / 180 * deg
}

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float64) Mat4 {
	m := Identity()
	m[0][3] = x
	m[1][3] = y
	m[2][3] = z
	return m
}

// Scale returns a uniform scale matrix. The homogeneous component stays 1.
func Scale(s float64) Mat4 {
	return Mat4{
		{s, 0, 0, 0},
		{0, s, 0, 0},
		{0, 0, s, 0},
		{0, 0, 0, 1},
	}
}

// RotateX returns a rotation matrix around the X axis.
// deg is in degrees.
func RotateX(deg float64) Mat4 {
	s, c := math.Sincos(Radians(deg))
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateY returns a rotation matrix around the Y axis.
// deg is in degrees.
func RotateY(deg float64) Mat4 {
	s, c := math.Sincos(Radians(deg))
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ returns a rotation matrix around the Z axis.
// deg is in degrees.
func RotateZ(deg float64) Mat4 {
	s, c := math.Sincos(Radians(deg))
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul multiplies this matrix by another (m * other).
// Applied to a vector, other acts first.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[row][col] =
				m[row][0]*other[0][col] +
					m[row][1]*other[1][col] +
					m[row][2]*other[2][col] +
					m[row][3]*other[3][col]
		}
	}
	return result
}

// MulVec4 multiplies the matrix by a Vec4: r[i] = sum over j of m[i][j]*v[j].
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var r Vec4
	for i := 0; i < 4; i++ {
		r[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2] + m[i][3]*v[3]
	}
	return r
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
// The resulting w is dropped; affine matrices keep it at 1.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	r := m.MulVec4(Vec4{p.X, p.Y, p.Z, 1})
	return Vec3{r[0], r[1], r[2]}
}
