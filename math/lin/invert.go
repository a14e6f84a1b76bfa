// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// M4.Inv extends the matrix package with a general 4x4 inverse. The existing
// M3.Inv is not enough on its own for the view/projection matrices needed by
// a camera: those are not pure rotate+translate and need the full cofactor
// expansion rather than the rigid-transform shortcut.

// Inv updates m to be the inverse of matrix a using the full cofactor
// expansion. Matrix m is not updated if a has no inverse (determinant
// exactly zero).
func (m *M4) Inv(a *M4) *M4 {
	// 2x2 sub-determinants reused across the cofactor expansion, named
	// by the row pairs and column pairs they span.
	s0 := a.Xx*a.Yy - a.Yx*a.Xy
	s1 := a.Xx*a.Yz - a.Yx*a.Xz
	s2 := a.Xx*a.Yw - a.Yx*a.Xw
	s3 := a.Xy*a.Yz - a.Yy*a.Xz
	s4 := a.Xy*a.Yw - a.Yy*a.Xw
	s5 := a.Xz*a.Yw - a.Yz*a.Xw

	c5 := a.Zz*a.Ww - a.Wz*a.Zw
	c4 := a.Zy*a.Ww - a.Wy*a.Zw
	c3 := a.Zy*a.Wz - a.Wy*a.Zz
	c2 := a.Zx*a.Ww - a.Wx*a.Zw
	c1 := a.Zx*a.Wz - a.Wx*a.Zz
	c0 := a.Zx*a.Wy - a.Wx*a.Zy

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return m
	}
	inv := 1 / det

	xx := (a.Yy*c5 - a.Yz*c4 + a.Yw*c3) * inv
	xy := (-a.Xy*c5 + a.Xz*c4 - a.Xw*c3) * inv
	xz := (a.Wy*s5 - a.Wz*s4 + a.Ww*s3) * inv
	xw := (-a.Zy*s5 + a.Zz*s4 - a.Zw*s3) * inv

	yx := (-a.Yx*c5 + a.Yz*c2 - a.Yw*c1) * inv
	yy := (a.Xx*c5 - a.Xz*c2 + a.Xw*c1) * inv
	yz := (-a.Wx*s5 + a.Wz*s2 - a.Ww*s1) * inv
	yw := (a.Zx*s5 - a.Zz*s2 + a.Zw*s1) * inv

	zx := (a.Yx*c4 - a.Yy*c2 + a.Yw*c0) * inv
	zy := (-a.Xx*c4 + a.Xy*c2 - a.Xw*c0) * inv
	zz := (a.Wx*s4 - a.Wy*s2 + a.Ww*s0) * inv
	zw := (-a.Zx*s4 + a.Zy*s2 - a.Zw*s0) * inv

	wx := (-a.Yx*c3 + a.Yy*c1 - a.Yz*c0) * inv
	wy := (a.Xx*c3 - a.Xy*c1 + a.Xz*c0) * inv
	wz := (-a.Wx*s3 + a.Wy*s1 - a.Wz*s0) * inv
	ww := (a.Zx*s3 - a.Zy*s1 + a.Zz*s0) * inv

	m.Xx, m.Xy, m.Xz, m.Xw = xx, xy, xz, xw
	m.Yx, m.Yy, m.Yz, m.Yw = yx, yy, yz, yw
	m.Zx, m.Zy, m.Zz, m.Zw = zx, zy, zz, zw
	m.Wx, m.Wy, m.Wz, m.Ww = wx, wy, wz, ww
	return m
}
