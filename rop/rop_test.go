package rop

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		alu       ALU
		planemask uint32
		want      uint8
	}{
		{"copy", GXcopy, FullPlaneMask, Copy},
		{"clear", GXclear, FullPlaneMask, 0x00},
		{"set", GXset, FullPlaneMask, 0xFF},
		{"noop", GXnoop, FullPlaneMask, Noop},
		{"xor", GXxor, FullPlaneMask, 0x66},
		{"copy masked", GXcopy, 0x00ff00ff, 0xCA},
		{"noop masked", GXnoop, 0x0000ffff, 0xAA},
		{"set masked", GXset, 0, 0xFA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.alu, tt.planemask); got != tt.want {
				t.Errorf("Resolve(%d, %#x) = %#02x, want %#02x", tt.alu, tt.planemask, got, tt.want)
			}
		})
	}
}

func TestDependencePredicates(t *testing.T) {
	tests := []struct {
		code          uint8
		dst, src, pat bool
	}{
		{0x00, false, false, false},
		{0xFF, false, false, false},
		{Copy, false, true, false},
		{Pattern, false, false, true},
		{Noop, true, false, false},
		{0x66, true, true, false}, // src xor dst
		{0xCA, true, true, true},  // plane-masked copy
		{0x33, false, true, false},
		{0x55, true, false, false},
	}
	for _, tt := range tests {
		if got := DependsOnDestination(tt.code); got != tt.dst {
			t.Errorf("DependsOnDestination(%#02x) = %v, want %v", tt.code, got, tt.dst)
		}
		if got := DependsOnSource(tt.code); got != tt.src {
			t.Errorf("DependsOnSource(%#02x) = %v, want %v", tt.code, got, tt.src)
		}
		if got := DependsOnPattern(tt.code); got != tt.pat {
			t.Errorf("DependsOnPattern(%#02x) = %v, want %v", tt.code, got, tt.pat)
		}
	}
}

// A code that ignores an input must give the same answer whatever that
// input holds.
func TestApplyAgreesWithPredicates(t *testing.T) {
	const p, s, d = 0xF0F0F0F0, 0xCCCCCCCC, 0xAAAAAAAA
	for c := 0; c < 256; c++ {
		code := uint8(c)
		base := Apply(code, p, s, d)
		if !DependsOnDestination(code) && Apply(code, p, s, ^uint32(d)) != base {
			t.Errorf("code %#02x claims destination independence but reads it", code)
		}
		if !DependsOnSource(code) && Apply(code, p, ^uint32(s), d) != base {
			t.Errorf("code %#02x claims source independence but reads it", code)
		}
	}
}

func TestApplyTruthTable(t *testing.T) {
	// With the canonical operand patterns every code reproduces itself
	// in the low byte.
	for c := 0; c < 256; c++ {
		got := Apply(uint8(c), 0xF0, 0xCC, 0xAA) & 0xFF
		if got != uint32(c) {
			t.Errorf("Apply(%#02x, P, S, D) = %#02x", c, got)
		}
	}
}

func TestApplyPlaneMaskedCopy(t *testing.T) {
	got := Apply(Resolve(GXcopy, 0x0000FFFF), 0x0000FFFF, 0x12345678, 0x9ABCDEF0)
	if want := uint32(0x9ABC5678); got != want {
		t.Errorf("masked copy = %#08x, want %#08x", got, want)
	}
}

func BenchmarkApply(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		_ = Apply(0xCA, 0x00FF00FF, 0x12345678, 0x9ABCDEF0)
	}
}
