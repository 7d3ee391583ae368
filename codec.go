// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ftex

package ftex

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"
	"github.com/woozymasta/lzss"
)

// ChunkCodec compresses and inflates single chunk bodies.
//
// The FTEX format does not record the codec: a chunk whose stored size
// differs from its raw size is compressed with whatever codec the reader
// is told to use. The engine itself uses zlib.
type ChunkCodec interface {
	// Name returns a short codec name.
	Name() string
	// Compress returns the compressed form of src. An empty result means
	// src is stored raw.
	Compress(src []byte) ([]byte, error)
	// Decompress inflates src into exactly size bytes.
	Decompress(src []byte, size int) ([]byte, error)
}

// ParseChunkCodec returns the codec with the given name.
func ParseChunkCodec(name string) (ChunkCodec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "zlib":
		return ZlibCodec{}, nil
	case "lz4":
		return LZ4Codec{}, nil
	case "zstd":
		return ZstdCodec{}, nil
	case "lzss":
		return LZSSCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

// ZlibCodec is the engine's native chunk compression.
type ZlibCodec struct {
	// Level is a zlib level; 0 means zlib.DefaultCompression.
	Level int
}

// Name implements ChunkCodec.
func (ZlibCodec) Name() string { return "zlib" }

// Compress implements ChunkCodec.
func (c ZlibCodec) Compress(src []byte) ([]byte, error) {
	level := c.Level
	if level == 0 {
		level = zlib.DefaultCompression
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(src); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress implements ChunkCodec.
func (ZlibCodec) Decompress(src []byte, size int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	defer func() { _ = zr.Close() }()

	out := make([]byte, size)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, err
	}

	return out, nil
}

// LZ4Codec stores chunks as raw LZ4 blocks.
type LZ4Codec struct{}

// Name implements ChunkCodec.
func (LZ4Codec) Name() string { return "lz4" }

// Compress implements ChunkCodec.
func (LZ4Codec) Compress(src []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	n, err := lz4.CompressBlockHC(src, dst, 0, nil, nil)
	if err != nil {
		return nil, err
	}

	// n == 0 means incompressible
	return dst[:n], nil
}

// Decompress implements ChunkCodec.
func (LZ4Codec) Decompress(src []byte, size int) ([]byte, error) {
	dst := make([]byte, size)
	n, err := lz4.UncompressBlockWithDict(src, dst, nil)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// ZstdCodec stores chunks as zstd frames.
type ZstdCodec struct {
	// Level is a zstd level; 0 means zstd.DefaultCompression.
	Level int
}

// Name implements ChunkCodec.
func (ZstdCodec) Name() string { return "zstd" }

// Compress implements ChunkCodec.
func (c ZstdCodec) Compress(src []byte) ([]byte, error) {
	level := c.Level
	if level == 0 {
		level = zstd.DefaultCompression
	}

	return zstd.CompressLevel(nil, src, level)
}

// Decompress implements ChunkCodec.
func (ZstdCodec) Decompress(src []byte, size int) ([]byte, error) {
	return zstd.Decompress(make([]byte, size), src)
}

// LZSSCodec stores chunks as LZSS streams.
type LZSSCodec struct{}

// Name implements ChunkCodec.
func (LZSSCodec) Name() string { return "lzss" }

// Compress implements ChunkCodec.
func (LZSSCodec) Compress(src []byte) ([]byte, error) {
	return lzss.Compress(src, lzss.DefaultCompressOptions())
}

// Decompress implements ChunkCodec.
func (LZSSCodec) Decompress(src []byte, size int) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(size)
	if _, err := lzss.DecompressToWriter(&out, bytes.NewReader(src), size, nil); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
