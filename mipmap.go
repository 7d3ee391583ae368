// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ftex

package ftex

import "fmt"

// minMipDimension is the smallest mip edge, one compression block.
const minMipDimension = 4

// nextMipDimension halves a mip edge, clamped to minMipDimension.
func nextMipDimension(n int) int {
	return max(n/2, minMipDimension)
}

// mipLevelSizes returns the byte size of each mip level, most detailed first.
func mipLevelSizes(format PixelFormat, width, height, mipMapCount int) ([]int, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if mipMapCount < 1 {
		return nil, ErrEmptyMipmaps
	}

	sizes := make([]int, mipMapCount)
	w, h := width, height
	for i := range sizes {
		size, err := format.imageSize(w, h)
		if err != nil {
			return nil, err
		}
		sizes[i] = size
		w = nextMipDimension(w)
		h = nextMipDimension(h)
	}

	return sizes, nil
}

// sliceMipLevels splits a flat DDS pixel buffer into per-level buffers.
// Bytes after the last level are ignored.
func sliceMipLevels(data []byte, sizes []int) ([][]byte, error) {
	levels := make([][]byte, len(sizes))
	offset := 0
	for i, size := range sizes {
		end := offset + size
		if end > len(data) {
			return nil, fmt.Errorf("%w: mip %d needs bytes %d..%d, have %d", ErrTruncatedStream, i, offset, end, len(data))
		}
		levels[i] = data[offset:end:end]
		offset = end
	}

	return levels, nil
}
