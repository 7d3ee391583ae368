// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ftex

package ftex

import (
	"fmt"

	"github.com/woozymasta/pathrules"
)

// ConvertOptions configures FTEX <-> DDS conversion. Nil options use the
// defaults: stored chunks, zlib for inflating compressed chunks, and
// DefaultTierThresholds.
type ConvertOptions struct {
	// Codec inflates compressed chunks when reading and compresses chunks
	// when Compress is set. Nil means ZlibCodec.
	Codec ChunkCodec
	// Compress stores chunks compressed when that makes them smaller.
	Compress bool
	// TierThresholds overrides DefaultTierThresholds.
	TierThresholds []int
	// StrictFormats rejects pixel format mappings not verified against
	// game data (DXT3).
	StrictFormats bool

	// CompressRules selects by output path which textures get compressed
	// chunks in ConvertFromDDSFile. When set it overrides Compress.
	CompressRules []pathrules.Rule
	// CompressMatcherOptions configures CompressRules matching.
	CompressMatcherOptions pathrules.MatcherOptions
}

func (o *ConvertOptions) codec() ChunkCodec {
	if o == nil || o.Codec == nil {
		return ZlibCodec{}
	}

	return o.Codec
}

// encodeCodec returns the codec for new chunks, nil for stored chunks.
func (o *ConvertOptions) encodeCodec() ChunkCodec {
	if o == nil || !o.Compress {
		return nil
	}

	return o.codec()
}

func (o *ConvertOptions) thresholds() []int {
	if o == nil || o.TierThresholds == nil {
		return DefaultTierThresholds
	}

	return o.TierThresholds
}

func (o *ConvertOptions) checkFormat(format PixelFormat) error {
	if o != nil && o.StrictFormats && format.Heuristic() {
		return fmt.Errorf("%w: %s mapping is unverified", ErrUnsupportedPixelFormat, format)
	}

	return nil
}

// ToDDS flattens a container with its payload files into a DDS image.
// Payload files are concatenated by descending file number, each one's
// levels most detailed first.
func ToDDS(c *Container, opts *ConvertOptions) (*DDS, error) {
	if err := opts.checkFormat(c.PixelFormat); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	header, err := makeDDSHeader(c.Width, c.Height, len(c.Mips), c.PixelFormat)
	if err != nil {
		return nil, err
	}

	codec := opts.codec()
	var data []byte
	for _, f := range flattenOrder(c.PayloadFiles()) {
		fileData, err := f.PixelData(codec)
		if err != nil {
			return nil, err
		}
		data = append(data, fileData...)
	}

	return &DDS{Header: header, Data: data}, nil
}

// FromDDS builds a container and its payload files from a DDS image.
//
// The pixel data is sliced into mip levels (edges halve down to 4 pixels),
// each level is split into chunks of at most MaxChunkSize bytes and placed
// in a payload file by size tiering. Descriptors are final on return.
func FromDDS(d *DDS, opts *ConvertOptions) (*Container, error) {
	format, err := PixelFormatFromDDS(d.Header.PixelFormat)
	if err != nil {
		return nil, err
	}
	if err := opts.checkFormat(format); err != nil {
		return nil, err
	}

	thresholds := opts.thresholds()
	if err := validateTierThresholds(thresholds); err != nil {
		return nil, err
	}

	width, height := int(d.Header.Width), int(d.Header.Height)
	if _, err := i16FromInt("width", width); err != nil {
		return nil, err
	}
	if _, err := i16FromInt("height", height); err != nil {
		return nil, err
	}
	mipCount := d.MipCount()
	if _, err := u8FromInt("mip count", mipCount); err != nil {
		return nil, err
	}

	sizes, err := mipLevelSizes(format, width, height, mipCount)
	if err != nil {
		return nil, err
	}
	levels, err := sliceMipLevels(d.Data, sizes)
	if err != nil {
		return nil, err
	}
	numbers := assignPayloadFiles(sizes, thresholds)

	c := &Container{
		PixelFormat: format,
		Width:       width,
		Height:      height,
		Mips:        make([]MipDescriptor, mipCount),
	}

	codec := opts.encodeCodec()
	for i, raw := range levels {
		c.Mips[i] = MipDescriptor{Index: i, FileNumber: numbers[i], DecompressedSize: sizes[i]}

		f, ok := c.PayloadFile(numbers[i])
		if !ok {
			f = &PayloadFile{Number: numbers[i]}
			if err := c.AddPayloadFile(f); err != nil {
				return nil, err
			}
		}

		level, err := newMipLevel(raw, codec)
		if err != nil {
			return nil, fmt.Errorf("mip %d: %w", i, err)
		}
		f.Levels = append(f.Levels, level)
	}

	if err := c.UpdateOffsets(); err != nil {
		return nil, err
	}

	return c, nil
}
