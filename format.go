// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ftex

package ftex

import (
	"fmt"

	"github.com/woozymasta/bcn"
)

// PixelFormat is the FTEX pixel format code stored in the header.
type PixelFormat int16

const (
	// PixelFormatARGB8 is uncompressed 32-bit A8R8G8B8.
	PixelFormatARGB8 PixelFormat = 0
	// PixelFormatL8 is 8-bit luminance.
	PixelFormatL8 PixelFormat = 1
	// PixelFormatDXT1 is BC1.
	PixelFormatDXT1 PixelFormat = 2
	// PixelFormatDXT3 is BC2. The code is inferred, no shipped texture uses it.
	PixelFormatDXT3 PixelFormat = 3
	// PixelFormatDXT5 is BC3.
	PixelFormatDXT5 PixelFormat = 4
)

// DDSD_DEPTH; bcn exposes no constant for it.
const ddsFlagDepth = 0x800000

// String returns the format name.
func (p PixelFormat) String() string {
	switch p {
	case PixelFormatARGB8:
		return "A8R8G8B8"
	case PixelFormatL8:
		return "L8"
	case PixelFormatDXT1:
		return "DXT1"
	case PixelFormatDXT3:
		return "DXT3"
	case PixelFormatDXT5:
		return "DXT5"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int16(p))
	}
}

// BlockCompressed reports whether the format stores 4x4 pixel blocks.
func (p PixelFormat) BlockCompressed() bool {
	return p == PixelFormatDXT1 || p == PixelFormatDXT3 || p == PixelFormatDXT5
}

// Heuristic reports whether the code mapping is unverified against game data.
func (p PixelFormat) Heuristic() bool {
	return p == PixelFormatDXT3
}

// DDSPixelFormat returns the DDS pixel format descriptor for the code.
func (p PixelFormat) DDSPixelFormat() (bcn.DDSPixelFormat, error) {
	pf := bcn.DDSPixelFormat{Size: bcn.DDSPixelFormatSize}

	switch p {
	case PixelFormatARGB8:
		pf.Flags = bcn.DDSPFRGB | bcn.DDSPFAlphaPixels
		pf.RGBBitCount = 32
		pf.RBitMask = 0x00ff0000
		pf.GBitMask = 0x0000ff00
		pf.BBitMask = 0x000000ff
		pf.ABitMask = 0xff000000
	case PixelFormatL8:
		pf.Flags = bcn.DDSPFLuminance
		pf.RGBBitCount = 8
		pf.RBitMask = 0x000000ff
	case PixelFormatDXT1:
		pf.Flags = bcn.DDSPFFourCC
		pf.FourCC = makeFourCC('D', 'X', 'T', '1')
	case PixelFormatDXT3:
		pf.Flags = bcn.DDSPFFourCC
		pf.FourCC = makeFourCC('D', 'X', 'T', '3')
	case PixelFormatDXT5:
		pf.Flags = bcn.DDSPFFourCC
		pf.FourCC = makeFourCC('D', 'X', 'T', '5')
	default:
		return bcn.DDSPixelFormat{}, fmt.Errorf("%w: FTEX code %d", ErrUnsupportedPixelFormat, int16(p))
	}

	return pf, nil
}

// PixelFormatFromDDS maps a DDS pixel format descriptor to an FTEX code.
func PixelFormatFromDDS(pf bcn.DDSPixelFormat) (PixelFormat, error) {
	if (pf.Flags & bcn.DDSPFFourCC) != 0 {
		fourCC := intToFourCC(pf.FourCC)
		switch fourCC {
		case "DXT1":
			return PixelFormatDXT1, nil
		case "DXT3":
			return PixelFormatDXT3, nil
		case "DXT5":
			return PixelFormatDXT5, nil
		default:
			return 0, fmt.Errorf("%w: DDS FourCC %q", ErrUnsupportedPixelFormat, fourCC)
		}
	}

	if (pf.Flags&bcn.DDSPFRGB) != 0 && (pf.Flags&bcn.DDSPFAlphaPixels) != 0 && pf.RGBBitCount == 32 &&
		pf.RBitMask == 0x00ff0000 && pf.GBitMask == 0x0000ff00 &&
		pf.BBitMask == 0x000000ff && pf.ABitMask == 0xff000000 {
		return PixelFormatARGB8, nil
	}

	if (pf.Flags&bcn.DDSPFLuminance) != 0 && pf.RGBBitCount == 8 {
		return PixelFormatL8, nil
	}

	return 0, fmt.Errorf("%w: DDS flags 0x%x, %d bpp, masks %08x/%08x/%08x/%08x",
		ErrUnsupportedPixelFormat, pf.Flags, pf.RGBBitCount, pf.RBitMask, pf.GBitMask, pf.BBitMask, pf.ABitMask)
}

// imageSize returns the byte size of one mip level of the given dimensions.
func (p PixelFormat) imageSize(width, height int) (int, error) {
	blocksW := max(1, (width+3)/4)
	blocksH := max(1, (height+3)/4)

	switch p {
	case PixelFormatDXT1:
		return blocksW * blocksH * 8, nil
	case PixelFormatDXT3, PixelFormatDXT5:
		return blocksW * blocksH * 16, nil
	case PixelFormatARGB8:
		return width * height * 4, nil
	case PixelFormatL8:
		return width * height, nil
	default:
		return 0, fmt.Errorf("%w: FTEX code %d", ErrUnsupportedPixelFormat, int16(p))
	}
}

func intToFourCC(value uint32) string {
	return string([]byte{
		byte(value & 0xff),
		byte((value >> 8) & 0xff),
		byte((value >> 16) & 0xff),
		byte((value >> 24) & 0xff),
	})
}

func makeFourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// makeDDSHeader builds a DDS header for an FTEX texture.
func makeDDSHeader(width, height, mipMapCount int, format PixelFormat) (*bcn.DDSHeader, error) {
	pf, err := format.DDSPixelFormat()
	if err != nil {
		return nil, err
	}

	w32, err := u32FromInt("width", width)
	if err != nil {
		return nil, err
	}
	h32, err := u32FromInt("height", height)
	if err != nil {
		return nil, err
	}
	mip32, err := u32FromInt("mip count", mipMapCount)
	if err != nil {
		return nil, err
	}
	size, err := format.imageSize(width, height)
	if err != nil {
		return nil, err
	}
	size32, err := u32FromInt("linear size", size)
	if err != nil {
		return nil, err
	}

	flags := uint32(bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat | bcn.DDSFlagMipmapCount)
	caps := uint32(bcn.DDSCapsTexture | bcn.DDSCapsMipmap)
	if mipMapCount > 1 {
		caps |= bcn.DDSCapsComplex
	}

	hdr := &bcn.DDSHeader{
		Size:        bcn.DDSHeaderSize,
		Flags:       flags,
		Height:      h32,
		Width:       w32,
		Depth:       1,
		MipMapCount: mip32,
		PixelFormat: pf,
		Caps:        caps,
	}

	switch format {
	case PixelFormatARGB8:
		// the engine tooling marks uncompressed textures with the depth flag
		hdr.Flags |= bcn.DDSFlagPitch | ddsFlagDepth
		hdr.PitchOrLinearSize = w32 * 4
	case PixelFormatL8:
		hdr.Flags |= bcn.DDSFlagPitch
		hdr.PitchOrLinearSize = w32
	default:
		hdr.Flags |= bcn.DDSFlagLinearSize
		hdr.PitchOrLinearSize = size32
	}

	return hdr, nil
}
