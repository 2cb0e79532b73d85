package component

import "testing"

func TestCoefficientCombine(t *testing.T) {
	tests := []struct {
		rule CoefficientCombine
		a, b float64
		want float64
	}{
		{CombineAverage, 0.25, 0.75, 0.5},
		{CombineMin, 0.0, 0.8, 0.0},
		{CombineMin, 0.9, 0.3, 0.3},
		{CombineMultiply, 0.5, 0.5, 0.25},
		{CombineMax, 0.1, 0.7, 0.7},
	}
	for _, tc := range tests {
		if got := tc.rule.Apply(tc.a, tc.b); got != tc.want {
			t.Fatalf("rule %d: Apply(%v, %v) = %v, want %v", tc.rule, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestResolveCombine(t *testing.T) {
	if got := ResolveCombine(CombineMin, CombineAverage); got != CombineMin {
		t.Fatalf("min should win over average, got %d", got)
	}
	if got := ResolveCombine(CombineMin, CombineMax); got != CombineMax {
		t.Fatalf("max should win over min, got %d", got)
	}
}

func TestParsers(t *testing.T) {
	if k, err := ParseBodyKind("Kinematic"); err != nil || k != BodyKinematic {
		t.Fatalf("ParseBodyKind: %v %v", k, err)
	}
	if _, err := ParseBodyKind("floating"); err == nil {
		t.Fatalf("expected error for unknown body kind")
	}
	if s, err := ParseColliderShape("cuboid"); err != nil || s != ColliderBox {
		t.Fatalf("ParseColliderShape: %v %v", s, err)
	}
	if c, err := ParseCoefficientCombine(""); err != nil || c != CombineAverage {
		t.Fatalf("empty combine should default to average: %v %v", c, err)
	}
	if _, err := ParseCoefficientCombine("median"); err == nil {
		t.Fatalf("expected error for unknown combine rule")
	}
}
