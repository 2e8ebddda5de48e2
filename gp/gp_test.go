package gp

import "testing"

func TestSourceFormatBPP(t *testing.T) {
	tests := []struct {
		f    SourceFormat
		want int
		bgr  bool
	}{
		{Source8888, 32, false},
		{Source32BPPBGR, 32, true},
		{Source4444, 12, false},
		{Source12BPPBGR, 12, true},
		{Source565, 16, false},
		{Source16BPPBGR, 16, true},
		{Source1555, 15, false},
		{Source15BPPBGR, 15, true},
		{Source332, 8, false},
		{SourceFormat(0x0F), 0, false},
	}
	for _, tt := range tests {
		if got := tt.f.BPP(); got != tt.want {
			t.Errorf("%#02x.BPP() = %d, want %d", uint8(tt.f), got, tt.want)
		}
		if got := tt.f.IsBGR(); got != tt.bgr {
			t.Errorf("%#02x.IsBGR() = %v, want %v", uint8(tt.f), got, tt.bgr)
		}
	}
}

func TestSourceFormatWithBGR(t *testing.T) {
	if got := Source565.WithBGR(true); got != Source16BPPBGR {
		t.Errorf("Source565.WithBGR(true) = %#02x", uint8(got))
	}
	if got := Source32BPPBGR.WithBGR(false); got != Source8888 {
		t.Errorf("Source32BPPBGR.WithBGR(false) = %#02x", uint8(got))
	}
	if got := Source15BPPBGR.Layout(); got != Source1555 {
		t.Errorf("Source15BPPBGR.Layout() = %#02x", uint8(got))
	}
}

func TestKind(t *testing.T) {
	prims := map[Kind]bool{
		KindPatternFill:            true,
		KindScreenToScreenBlt:      true,
		KindScreenToScreenConvert:  true,
		KindBlendMaskBlt:           true,
		KindColorBitmapToScreenBlt: true,
	}
	for k := KindDeclareBlt; k <= KindWaitUntilIdle; k++ {
		if k.IsPrimitive() != prims[k] {
			t.Errorf("%v.IsPrimitive() = %v", k, k.IsPrimitive())
		}
		if k.String() == "" || k.String()[0] == 'K' {
			t.Errorf("Kind %d has no name", k)
		}
	}
	if Kind(0).String() != "Kind(0)" {
		t.Errorf("Kind(0).String() = %q", Kind(0).String())
	}
}
