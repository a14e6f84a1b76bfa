// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package terrain

import (
	"math"
	"testing"
)

func TestPerlinStaysWithinUnitRangeRoughly(t *testing.T) {
	p := NewPerlin(7, 0.05, 6, 2.0, 0.5)
	for i := 0; i < 200; i++ {
		v := p.Value(float64(i)*1.3, float64(i)*0.7)
		if v < -1.5 || v > 1.5 {
			t.Fatalf("Value(%d) = %v, want roughly within [-1,1]", i, v)
		}
	}
}

func TestPerlinDeterministicForSameSeed(t *testing.T) {
	a := NewPerlin(42, 0.1, 4, 2.0, 0.5)
	b := NewPerlin(42, 0.1, 4, 2.0, 0.5)
	for i := 0; i < 20; i++ {
		x, y := float64(i), float64(i)*2
		if a.Value(x, y) != b.Value(x, y) {
			t.Fatalf("same seed diverged at (%v,%v)", x, y)
		}
	}
}

func TestCellularDistanceNonNegative(t *testing.T) {
	c := NewCellular(3, 0.4, CellularDistance)
	for i := 0; i < 50; i++ {
		v := c.Value(float64(i)*0.3, float64(i)*0.9)
		if v < 0 {
			t.Fatalf("got negative cellular distance %v", v)
		}
	}
}

func TestConstReturnsFixedValue(t *testing.T) {
	c := Const{V: 0.42}
	if c.Value(1, 2) != 0.42 || c.Value(-5, 100) != 0.42 {
		t.Fatalf("Const did not return fixed value everywhere")
	}
}

func TestModifiersCompose(t *testing.T) {
	base := Const{V: 0.5}
	sb := &ScaleBias{In: base, Scale: 2, Bias: -1}
	if got := sb.Value(0, 0); got != 0 {
		t.Fatalf("ScaleBias got %v, want 0", got)
	}

	inv := &Invert{In: base}
	if got := inv.Value(0, 0); got != -0.5 {
		t.Fatalf("Invert got %v, want -0.5", got)
	}

	blend := &Blend{A: Const{V: 0}, B: Const{V: 10}, Alpha: 0.25}
	if got := blend.Value(0, 0); got != 2.5 {
		t.Fatalf("Blend got %v, want 2.5", got)
	}

	sel := &Select{A: Const{V: 1}, B: Const{V: 2}, Control: Const{V: 10}, Threshold: 5}
	if got := sel.Value(0, 0); got != 2 {
		t.Fatalf("Select (no falloff) got %v, want 2 (control above threshold)", got)
	}

	strata := &Strata{In: Const{V: 0.3}, Mode: Quantize, Count: 4}
	if got := strata.Value(0, 0); math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("Strata Quantize got %v, want 0.25", got)
	}
}

func TestModifierNilSlotIsZero(t *testing.T) {
	sb := &ScaleBias{Scale: 5, Bias: 1}
	if got := sb.Value(0, 0); got != 1 {
		t.Fatalf("nil input slot did not read as 0: got %v, want 1", got)
	}
}
