package format

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/exa/gp"
)

// Descriptor is a catalog entry: a format the GP can read as a source and
// write as a destination.
type Descriptor struct {
	ID        ID
	BPP       int
	Source    gp.SourceFormat
	AlphaBits int

	// Texture is the closest WebGPU texture format with the same memory
	// layout, or TextureFormatUndefined for packed 16- and 8-bit layouts.
	Texture gputypes.TextureFormat
}

// HasAlpha reports whether the format stores an alpha channel.
func (d Descriptor) HasAlpha() bool { return d.AlphaBits != 0 }

// catalog is sorted by descending bpp; Lookup depends on it.
var catalog = [...]Descriptor{
	{A8R8G8B8, 32, gp.Source8888, 8, gputypes.TextureFormatBGRA8Unorm},
	{X8R8G8B8, 32, gp.Source8888, 0, gputypes.TextureFormatBGRA8Unorm},
	{X8B8G8R8, 32, gp.Source32BPPBGR, 0, gputypes.TextureFormatRGBA8Unorm},
	{A4R4G4B4, 16, gp.Source4444, 4, gputypes.TextureFormatUndefined},
	{A1R5G5B5, 16, gp.Source1555, 1, gputypes.TextureFormatUndefined},
	{R5G6B5, 16, gp.Source565, 0, gputypes.TextureFormatUndefined},
	{B5G6R5, 16, gp.Source16BPPBGR, 0, gputypes.TextureFormatUndefined},
	{X1R5G5B5, 16, gp.Source1555, 0, gputypes.TextureFormatUndefined},
	{X1B5G5R5, 16, gp.Source15BPPBGR, 0, gputypes.TextureFormatUndefined},
	{R3G3B2, 8, gp.Source332, 0, gputypes.TextureFormatUndefined},
}

// Lookup returns the catalog entry for id.
func Lookup(id ID) (Descriptor, bool) {
	bpp := id.BPP()
	for _, d := range catalog {
		if d.BPP < bpp {
			break
		}
		if d.BPP != bpp {
			continue
		}
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Catalog returns a copy of every supported format, highest depth first.
func Catalog() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog[:])
	return out
}
