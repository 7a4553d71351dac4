package math3d

import "testing"

func TestIdentityMulVec3(t *testing.T) {
	v := V3(1, 2, 3)
	got := Identity().MulVec3(v)
	if got.Distance(v) > 1e-9 {
		t.Errorf("Identity.MulVec3 = %v, want %v", got, v)
	}
}

func TestTranslateMulVec3(t *testing.T) {
	m := Translate(V3(5, -2, 1))
	got := m.MulVec3(V3(1, 1, 1))
	want := V3(6, -1, 2)
	if got.Distance(want) > 1e-9 {
		t.Errorf("Translate.MulVec3 = %v, want %v", got, want)
	}
}

func TestScaleThenTranslateOrder(t *testing.T) {
	// L = scale . translate, per §4.6 step 1. With column vectors L*v
	// translates v first and then scales the result, so the translation is
	// scaled too: (1+10)*2 = 22.
	scale := ScaleUniform(2)
	translate := Translate(V3(10, 0, 0))
	l := scale.Mul(translate)
	got := l.MulVec3(V3(1, 0, 0))
	want := V3(22, 0, 0)
	if got.Distance(want) > 1e-9 {
		t.Errorf("scale.Mul(translate).MulVec3 = %v, want %v", got, want)
	}
}

func TestMulVec3DirIgnoresTranslation(t *testing.T) {
	m := Translate(V3(100, 100, 100))
	got := m.MulVec3Dir(V3(1, 0, 0))
	want := V3(1, 0, 0)
	if got.Distance(want) > 1e-9 {
		t.Errorf("MulVec3Dir = %v, want %v (translation-invariant)", got, want)
	}
}

func TestGetSet(t *testing.T) {
	m := Identity()
	m.Set(0, 3, 7)
	if got := m.Get(0, 3); got != 7 {
		t.Errorf("Get(0,3) = %v, want 7", got)
	}
}
