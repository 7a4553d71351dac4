package math3d

import (
	"math"
	"testing"
)

// TestQuaternionIdentityProduct verifies that multiplying any unit quaternion
// by its conjugate yields (1,0,0,0), per the §8 "quaternion identity" property.
func TestQuaternionIdentityProduct(t *testing.T) {
	cases := []Quaternion{
		NewQuaternion(math.Pi/3, V3(0, 1, 0)),
		NewQuaternion(2.1, V3(1, 1, 1)),
		NewQuaternion(-0.75, V3(0, 0, 1)),
	}
	for _, q := range cases {
		got := q.Mul(q.Conjugate())
		if math.Abs(got.W-1) > 1e-5 || math.Abs(got.X) > 1e-5 ||
			math.Abs(got.Y) > 1e-5 || math.Abs(got.Z) > 1e-5 {
			t.Errorf("q*conj(q) = %+v, want (1,0,0,0)", got)
		}
	}
}

// TestQuaternionZeroRotationIsIdentity verifies rotating by angle=0 returns v
// unchanged, per the §8 "rotating by zero is identity" property.
func TestQuaternionZeroRotationIsIdentity(t *testing.T) {
	v := V3(1, 2, 3)
	axes := []Vec3{V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1), V3(1, 1, 1)}
	for _, axis := range axes {
		q := NewQuaternion(0, axis)
		got := q.Rotate(v)
		if got.Distance(v) > 1e-5 {
			t.Errorf("Rotate(angle=0) = %v, want %v", got, v)
		}
	}
}

// TestQuaternionRotateQuarterTurn sanity-checks a known 90-degree rotation.
func TestQuaternionRotateQuarterTurn(t *testing.T) {
	q := NewQuaternion(math.Pi/2, V3(0, 0, 1))
	got := q.Rotate(V3(1, 0, 0))
	want := V3(0, 1, 0)
	if got.Distance(want) > 1e-5 {
		t.Errorf("Rotate(90deg around Z) of (1,0,0) = %v, want %v", got, want)
	}
}

func TestQuaternionComposition(t *testing.T) {
	v := V3(1, 0, 0)
	q1 := NewQuaternion(math.Pi/2, V3(0, 0, 1))
	q2 := NewQuaternion(math.Pi/2, V3(0, 0, 1))
	viaCompose := q2.Mul(q1).Rotate(v)
	viaSequence := q2.Rotate(q1.Rotate(v))
	if viaCompose.Distance(viaSequence) > 1e-5 {
		t.Errorf("composed rotation = %v, sequential rotation = %v", viaCompose, viaSequence)
	}
}
