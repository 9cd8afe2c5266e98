package core

import (
	"math"
	"testing"
)

func TestVec3_BasicOps(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	if got := a.Add(b); got != NewVec3(5, -3, 9) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Subtract(b); got != NewVec3(-3, 7, -3) {
		t.Errorf("Subtract: got %v", got)
	}
	if got := a.MultiplyVec(b); got != NewVec3(4, -10, 18) {
		t.Errorf("MultiplyVec: got %v", got)
	}
	if got := a.Dot(b); got != 1*4-2*5+3*6 {
		t.Errorf("Dot: got %v", got)
	}
	if got := a.Cross(b); got != NewVec3(27, 6, -13) {
		t.Errorf("Cross: got %v", got)
	}
	if got := a.Min(b); got != NewVec3(1, -5, 3) {
		t.Errorf("Min: got %v", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name   string
		vector Vec3
	}{
		{name: "axis", vector: NewVec3(0, 5, 0)},
		{name: "diagonal", vector: NewVec3(1, 1, 1)},
		{name: "small", vector: NewVec3(1e-8, 0, 2e-8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.vector.Normalize()
			if math.Abs(n.Length()-1.0) > 1e-12 {
				t.Errorf("Expected unit length, got %v", n.Length())
			}
		})
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	n := Vec3{}.Normalize()
	if !n.IsZero() {
		t.Errorf("Expected zero vector, got %v", n)
	}
}

func TestVec3_Reflect(t *testing.T) {
	incoming := NewVec3(1, -1, 0).Normalize()
	reflected := incoming.Reflect(NewVec3(0, 1, 0))
	expected := NewVec3(1, 1, 0).Normalize()

	if reflected.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, reflected)
	}
}

func TestVec3_Lerp(t *testing.T) {
	a := NewVec3(0, 0, 0)
	b := NewVec3(2, 4, 8)

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0): got %v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1): got %v", got)
	}
	if got := a.Lerp(b, 0.5); got != NewVec3(1, 2, 4) {
		t.Errorf("Lerp(0.5): got %v", got)
	}
}
