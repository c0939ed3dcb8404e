package types

import (
	"math"
	"testing"
)

func approxEq(a, b, tolerance float32) bool {
	diff := a - b
	return diff >= -tolerance && diff <= tolerance
}

func approxEqVec3(a, b Vec3, tolerance float32) bool {
	return approxEq(a[0], b[0], tolerance) && approxEq(a[1], b[1], tolerance) && approxEq(a[2], b[2], tolerance)
}

func TestMat4InvRoundTrip(t *testing.T) {
	m := Translate3D(1, -2, 3).
		Mul4(QuatFromAxisAngle(Vec3{0, 1, 0}, 0.7).Mat4()).
		Mul4(Scale3D(2, 0.5, 3))

	identity := m.Mul4(m.Inv())
	expected := Ident4()
	for i := 0; i < 16; i++ {
		if !approxEq(identity[i], expected[i], 1e-5) {
			t.Fatalf("expected m * m^-1 to be identity; element %d is %g", i, identity[i])
		}
	}
}

func TestMat4InvSingular(t *testing.T) {
	if inv := (Mat4{}).Inv(); inv != (Mat4{}) {
		t.Fatalf("expected the inverse of a singular matrix to be the zero matrix; got %v", inv)
	}
}

func TestMat4TransformPoint(t *testing.T) {
	m := Translate3D(10, 0, 0)

	if p := m.TransformPoint(Vec3{1, 2, 3}); p != (Vec3{11, 2, 3}) {
		t.Fatalf("expected translated point (11, 2, 3); got %v", p)
	}

	// Directions ignore the translation component.
	if d := m.TransformDir(Vec3{1, 2, 3}); d != (Vec3{1, 2, 3}) {
		t.Fatalf("expected direction to be unaffected by translation; got %v", d)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)

	// Rotating +x a quarter turn about +y lands on -z.
	if v := q.Rotate(Vec3{1, 0, 0}); !approxEqVec3(v, Vec3{0, 0, -1}, 1e-6) {
		t.Fatalf("expected (0, 0, -1); got %v", v)
	}

	// The matrix form must produce the same rotation.
	if v := q.Mat4().TransformDir(Vec3{1, 0, 0}); !approxEqVec3(v, Vec3{0, 0, -1}, 1e-6) {
		t.Fatalf("expected matrix form to rotate to (0, 0, -1); got %v", v)
	}
}

func TestQuatCompose(t *testing.T) {
	// Two quarter turns about +y compose into a half turn.
	quarter := QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)
	half := quarter.Mul(quarter)

	if v := half.Rotate(Vec3{1, 0, 0}); !approxEqVec3(v, Vec3{-1, 0, 0}, 1e-6) {
		t.Fatalf("expected the composed rotation to map +x to -x; got %v", v)
	}

	// The identity quaternion leaves vectors and compositions untouched.
	if v := QuatIdent().Rotate(Vec3{1, 2, 3}); !approxEqVec3(v, Vec3{1, 2, 3}, 1e-6) {
		t.Fatalf("expected the identity rotation to preserve the vector; got %v", v)
	}
	composed := QuatIdent().Mul(quarter)
	if v := composed.Rotate(Vec3{1, 0, 0}); !approxEqVec3(v, Vec3{0, 0, -1}, 1e-6) {
		t.Fatalf("expected identity * q to behave like q; got %v", v)
	}
}

func TestMinMaxVec3(t *testing.T) {
	a := Vec3{1, 5, -3}
	b := Vec3{2, -4, -1}

	if min := MinVec3(a, b); min != (Vec3{1, -4, -3}) {
		t.Fatalf("expected component-wise min (1, -4, -3); got %v", min)
	}
	if max := MaxVec3(a, b); max != (Vec3{2, 5, -1}) {
		t.Fatalf("expected component-wise max (2, 5, -1); got %v", max)
	}
}
