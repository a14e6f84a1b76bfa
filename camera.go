// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package vanta

import "github.com/vanta-engine/vanta/math/lin"

// Frustum is the six half-spaces bounding a camera's visible region, each
// stored as a plane normal (pointing inward, toward the visible side) and
// the distance from the origin along that normal.
type Frustum [6]Plane

// Plane indices into a Frustum, matching the order planesFromVP emits them.
const (
	PlaneLeft = iota
	PlaneRight
	PlaneBottom
	PlaneTop
	PlaneNear
	PlaneFar
)

// Plane is ax+by+cz+d=0 with (a,b,c) normalized.
type Plane struct {
	Normal lin.V3
	D      float64
}

// distance returns the signed distance from p to the plane; positive means
// p is on the inward (visible) side.
func (p Plane) distance(pt lin.V3) float64 {
	return p.Normal.Dot(&pt) + p.D
}

func (p Plane) normalize() Plane {
	length := p.Normal.Len()
	if length == 0 {
		return p
	}
	p.Normal.Div(length)
	p.D /= length
	return p
}

// Camera is a view into the scene: the projection parameters an app sets,
// plus the view/projection matrices and frustum the camera pass derives
// from them each frame.
type Camera struct {
	Aspect   float64
	Near     float64
	Far      float64
	FovDeg   float64
	Position lin.V3
	Target   lin.V3
	Up       lin.V3

	View    lin.M4
	Proj    lin.M4
	VP      lin.M4
	InvView lin.M4
	InvProj lin.M4
	InvVP   lin.M4
	Frustum Frustum
}

// newCamera returns a Camera with a 60° vertical fov, near/far of 0.1/1000,
// and the identity view direction (looking down -Z, Y up).
func newCamera() Camera {
	return Camera{
		Aspect: 16.0 / 9.0,
		Near:   0.1,
		Far:    1000,
		FovDeg: 60,
		Target: lin.V3{Z: -1},
		Up:     lin.V3{Y: 1},
	}
}

// cameraPass recomputes every camera's view/projection/VP matrices (and
// their inverses) from position/target/up, then rebuilds its frustum
// planes from the resulting VP. Depth comparisons elsewhere in the RHI
// pipeline state use the reversed-Z convention (Greater/GreaterEqual); the
// CPU-side projection matrix here still spans the canonical [-1,1] NDC
// range, since frustum-plane extraction only needs the clip-space
// half-spaces, not the specific near/far mapping the GPU depth test uses.
func cameraPass(cameras *componentManager[Camera]) {
	cameras.each(func(_ Entity, cam *Camera) {
		lookAt(&cam.View, cam.Position, cam.Target, cam.Up)
		cam.Proj.Persp(cam.FovDeg, cam.Aspect, cam.Near, cam.Far)
		cam.VP.Mult(&cam.View, &cam.Proj)

		cam.InvView.Inv(&cam.View)
		cam.InvProj.Inv(&cam.Proj)
		cam.InvVP.Inv(&cam.VP)

		cam.Frustum = planesFromVP(&cam.VP)
	})
}

// lookAt builds a row-vector view matrix (v_view = v_world * View) from an
// eye position, a look target, and an up hint.
func lookAt(view *lin.M4, eye, target, up lin.V3) {
	var zaxis, xaxis, yaxis lin.V3
	zaxis.Sub(&eye, &target)
	zaxis.Unit()
	xaxis.Cross(&up, &zaxis)
	xaxis.Unit()
	yaxis.Cross(&zaxis, &xaxis)

	view.Xx, view.Xy, view.Xz, view.Xw = xaxis.X, yaxis.X, zaxis.X, 0
	view.Yx, view.Yy, view.Yz, view.Yw = xaxis.Y, yaxis.Y, zaxis.Y, 0
	view.Zx, view.Zy, view.Zz, view.Zw = xaxis.Z, yaxis.Z, zaxis.Z, 0
	view.Wx = -xaxis.Dot(&eye)
	view.Wy = -yaxis.Dot(&eye)
	view.Wz = -zaxis.Dot(&eye)
	view.Ww = 1
}

// planesFromVP extracts the six frustum half-spaces from a row-vector VP
// matrix (clip = v * VP) by combining VP's columns, the transpose of the
// classic Gribb/Hartmann derivation (which assumes clip = VP * v). Every
// plane normal points inward.
func planesFromVP(vp *lin.M4) Frustum {
	col := func(i int) (a, b, c, d float64) {
		switch i {
		case 0:
			return vp.Xx, vp.Yx, vp.Zx, vp.Wx
		case 1:
			return vp.Xy, vp.Yy, vp.Zy, vp.Wy
		case 2:
			return vp.Xz, vp.Yz, vp.Zz, vp.Wz
		default:
			return vp.Xw, vp.Yw, vp.Zw, vp.Ww
		}
	}
	x0, y0, z0, w0 := col(0)
	x1, y1, z1, w1 := col(1)
	x2, y2, z2, w2 := col(2)
	x3, y3, z3, w3 := col(3)

	mk := func(a, b, c, d float64) Plane {
		return Plane{Normal: lin.V3{X: a, Y: b, Z: c}, D: d}.normalize()
	}

	var f Frustum
	f[PlaneLeft] = mk(x3+x0, y3+y0, z3+z0, w3+w0)
	f[PlaneRight] = mk(x3-x0, y3-y0, z3-z0, w3-w0)
	f[PlaneBottom] = mk(x3+x1, y3+y1, z3+z1, w3+w1)
	f[PlaneTop] = mk(x3-x1, y3-y1, z3-z1, w3-w1)
	f[PlaneNear] = mk(x3+x2, y3+y2, z3+z2, w3+w2)
	f[PlaneFar] = mk(x3-x2, y3-y2, z3-z2, w3-w2)
	return f
}
