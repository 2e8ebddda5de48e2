package format

import (
	"testing"

	"github.com/gogpu/exa/gp"
)

func TestIDFields(t *testing.T) {
	tests := []struct {
		id             ID
		bpp            int
		typ            Type
		a, r, g, b     int
		color, alphaOK bool
	}{
		{A8R8G8B8, 32, TypeARGB, 8, 8, 8, 8, true, false},
		{X8B8G8R8, 32, TypeABGR, 0, 8, 8, 8, true, false},
		{R5G6B5, 16, TypeARGB, 0, 5, 6, 5, true, false},
		{A8, 8, TypeA, 8, 0, 0, 0, false, true},
		{A4, 4, TypeA, 4, 0, 0, 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			if tt.id.BPP() != tt.bpp || tt.id.Type() != tt.typ {
				t.Errorf("bpp/type = %d/%d, want %d/%d", tt.id.BPP(), tt.id.Type(), tt.bpp, tt.typ)
			}
			if tt.id.A() != tt.a || tt.id.R() != tt.r || tt.id.G() != tt.g || tt.id.B() != tt.b {
				t.Errorf("argb = %d%d%d%d, want %d%d%d%d",
					tt.id.A(), tt.id.R(), tt.id.G(), tt.id.B(), tt.a, tt.r, tt.g, tt.b)
			}
			if tt.id.IsColor() != tt.color {
				t.Errorf("IsColor() = %v, want %v", tt.id.IsColor(), tt.color)
			}
			if tt.id.IsAlphaOnly() != tt.alphaOK {
				t.Errorf("IsAlphaOnly() = %v, want %v", tt.id.IsAlphaOnly(), tt.alphaOK)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		id     ID
		ok     bool
		source gp.SourceFormat
		alpha  int
	}{
		{A8R8G8B8, true, gp.Source8888, 8},
		{X8R8G8B8, true, gp.Source8888, 0},
		{X8B8G8R8, true, gp.Source32BPPBGR, 0},
		{A4R4G4B4, true, gp.Source4444, 4},
		{A1R5G5B5, true, gp.Source1555, 1},
		{R5G6B5, true, gp.Source565, 0},
		{B5G6R5, true, gp.Source16BPPBGR, 0},
		{X1R5G5B5, true, gp.Source1555, 0},
		{X1B5G5R5, true, gp.Source15BPPBGR, 0},
		{R3G3B2, true, gp.Source332, 0},
		{A8B8G8R8, false, 0, 0},
		{A8, false, 0, 0},
		{A4, false, 0, 0},
		{Make(24, TypeARGB, 0, 8, 8, 8), false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			d, ok := Lookup(tt.id)
			if ok != tt.ok {
				t.Fatalf("Lookup ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if d.ID != tt.id || d.Source != tt.source || d.AlphaBits != tt.alpha {
				t.Errorf("Lookup = %+v", d)
			}
			if d.BPP != tt.id.BPP() {
				t.Errorf("BPP = %d, want %d", d.BPP, tt.id.BPP())
			}
			if d.HasAlpha() != (tt.alpha != 0) {
				t.Errorf("HasAlpha() = %v", d.HasAlpha())
			}
		})
	}
}

func TestLookupIsPure(t *testing.T) {
	for _, d := range Catalog() {
		first, ok1 := Lookup(d.ID)
		second, ok2 := Lookup(d.ID)
		if first != second || ok1 != ok2 {
			t.Errorf("Lookup(%v) not stable: %+v/%v vs %+v/%v", d.ID, first, ok1, second, ok2)
		}
	}
}

func TestCatalogSortedByDepth(t *testing.T) {
	c := Catalog()
	if len(c) != 10 {
		t.Fatalf("catalog has %d entries, want 10", len(c))
	}
	for i := 1; i < len(c); i++ {
		if c[i].BPP > c[i-1].BPP {
			t.Errorf("entry %d (%v) deeper than entry %d", i, c[i].ID, i-1)
		}
	}
}

func TestRGBAFromPixel(t *testing.T) {
	tests := []struct {
		name       string
		pixel      uint32
		f          ID
		r, g, b, a uint16
	}{
		{"argb red", 0xffff0000, A8R8G8B8, 0xffff, 0, 0, 0xffff},
		{"argb half alpha", 0x80102030, A8R8G8B8, 0x1010, 0x2020, 0x3030, 0x8080},
		{"xrgb opaque", 0x00000000, X8R8G8B8, 0, 0, 0, 0xffff},
		{"xbgr blue", 0x00ff0000, X8B8G8R8, 0, 0, 0xffff, 0xffff},
		{"565 white", 0xffff, R5G6B5, 0xffff, 0xffff, 0xffff, 0xffff},
		{"565 green", 0x07e0, R5G6B5, 0, 0xffff, 0, 0xffff},
		{"1555 alpha", 0x8000, A1R5G5B5, 0, 0, 0, 0xffff},
		{"4444", 0x1234, A4R4G4B4, 0x2222, 0x3333, 0x4444, 0x1111},
		{"332 red", 0xe0, R3G3B2, 0xffff, 0, 0, 0xffff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a, ok := RGBAFromPixel(tt.pixel, tt.f)
			if !ok {
				t.Fatal("RGBAFromPixel not ok")
			}
			if r != tt.r || g != tt.g || b != tt.b || a != tt.a {
				t.Errorf("RGBAFromPixel(%#x) = %#04x %#04x %#04x %#04x, want %#04x %#04x %#04x %#04x",
					tt.pixel, r, g, b, a, tt.r, tt.g, tt.b, tt.a)
			}
		})
	}
}

func TestConversionRejectsNonColor(t *testing.T) {
	if _, _, _, _, ok := RGBAFromPixel(0xff, A8); ok {
		t.Error("RGBAFromPixel accepted a8")
	}
	if _, ok := PixelFromRGBA(0, 0, 0, 0xffff, A4); ok {
		t.Error("PixelFromRGBA accepted a4")
	}
}

func TestPixelFromRGBA(t *testing.T) {
	tests := []struct {
		name       string
		r, g, b, a uint16
		f          ID
		want       uint32
	}{
		{"argb", 0xffff, 0x8000, 0x0000, 0xffff, A8R8G8B8, 0xffff8000},
		{"xrgb drops alpha", 0xffff, 0, 0, 0x0000, X8R8G8B8, 0x00ff0000},
		{"xbgr", 0xffff, 0, 0, 0xffff, X8B8G8R8, 0x000000ff},
		{"565", 0xffff, 0, 0xffff, 0xffff, R5G6B5, 0xf81f},
		{"bgr565", 0xffff, 0, 0, 0xffff, B5G6R5, 0x001f},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PixelFromRGBA(tt.r, tt.g, tt.b, tt.a, tt.f)
			if !ok || got != tt.want {
				t.Errorf("PixelFromRGBA = %#x (ok=%v), want %#x", got, ok, tt.want)
			}
		})
	}
}

// Every pixel of a format is a fixed point of decode-then-encode, because
// decoding replicates each channel to full width.
func TestRoundTrip(t *testing.T) {
	for _, d := range Catalog() {
		limit := uint32(1) << uint(d.BPP)
		step := uint32(1)
		if d.BPP == 32 {
			limit = 0xffffffff
			step = 0x01010101 + 0x10203
		}
		for p := uint32(0); p < limit-step; p += step {
			r, g, b, a, _ := RGBAFromPixel(p, d.ID)
			got, _ := PixelFromRGBA(r, g, b, a, d.ID)
			r2, g2, b2, a2, _ := RGBAFromPixel(got, d.ID)
			if r != r2 || g != g2 || b != b2 || a != a2 {
				t.Fatalf("%v: pixel %#x round-trips to %#x", d.ID, p, got)
			}
		}
	}
}

func TestConvert(t *testing.T) {
	got, ok := Convert(0xffff0000, A8R8G8B8, R5G6B5)
	if !ok || got != 0xf800 {
		t.Errorf("Convert(red, argb -> 565) = %#x, %v", got, ok)
	}
	got, ok = Convert(0x001f, R5G6B5, X8B8G8R8)
	if !ok || got != 0x00ff0000 {
		t.Errorf("Convert(blue, 565 -> xbgr) = %#x, %v", got, ok)
	}
}

func BenchmarkLookup(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		_, _ = Lookup(R3G3B2)
	}
}
