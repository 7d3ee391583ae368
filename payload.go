// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ftex

package ftex

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	// MaxChunkSize is the largest chunk payload, bounded by the int16 size fields.
	MaxChunkSize = math.MaxInt16

	// IndexRecordSize is the size of one chunk index record.
	IndexRecordSize = 8
)

// Chunk is one slice of a mip level payload.
type Chunk struct {
	// Offset of the chunk body from the payload file start.
	Offset int
	// CompressedSize is the stored body size, len(Data).
	CompressedSize int
	// DecompressedSize is the raw pixel byte count of the chunk.
	DecompressedSize int
	// Data is the stored body.
	Data []byte
}

// Compressed reports whether the stored body must be inflated.
func (c *Chunk) Compressed() bool {
	return c.CompressedSize != c.DecompressedSize
}

// newChunk stores raw as a chunk, compressed with codec when that is smaller.
// A nil codec stores raw as is.
func newChunk(raw []byte, codec ChunkCodec) (*Chunk, error) {
	if len(raw) == 0 || len(raw) > MaxChunkSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChunkSize, len(raw))
	}

	chunk := &Chunk{CompressedSize: len(raw), DecompressedSize: len(raw), Data: raw}
	if codec == nil {
		return chunk, nil
	}

	packed, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCompressChunk, codec.Name(), err)
	}
	if len(packed) > 0 && len(packed) < len(raw) {
		chunk.Data = packed
		chunk.CompressedSize = len(packed)
	}

	return chunk, nil
}

// PixelData returns the raw chunk bytes, inflating with codec when needed.
// A nil codec means ZlibCodec.
func (c *Chunk) PixelData(codec ChunkCodec) ([]byte, error) {
	if !c.Compressed() {
		return c.Data, nil
	}
	if codec == nil {
		codec = ZlibCodec{}
	}

	out, err := codec.Decompress(c.Data, c.DecompressedSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecompressChunk, codec.Name(), err)
	}
	if len(out) != c.DecompressedSize {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecompressedSizeMismatch, c.DecompressedSize, len(out))
	}

	return out, nil
}

// encodeIndex writes the chunk index record with the given body offset.
func (c *Chunk) encodeIndex(buf []byte, offset int) error {
	off, err := i32FromInt("chunk offset", offset)
	if err != nil {
		return err
	}
	if len(c.Data) != c.CompressedSize {
		return fmt.Errorf("%w: compressed size %d, body holds %d", ErrInvalidChunkSize, c.CompressedSize, len(c.Data))
	}
	compressed, err := i16FromInt("chunk compressed size", c.CompressedSize)
	if err != nil {
		return err
	}
	decompressed, err := i16FromInt("chunk decompressed size", c.DecompressedSize)
	if err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(buf[0:4], uint32(off))
	binary.LittleEndian.PutUint16(buf[4:6], uint16(compressed))
	binary.LittleEndian.PutUint16(buf[6:8], uint16(decompressed))
	return nil
}

// decodeIndex reads a chunk index record; the body is not loaded.
func decodeIndex(buf []byte) (*Chunk, error) {
	// #nosec G115 -- fields are stored as two's complement.
	c := &Chunk{
		Offset:           int(int32(binary.LittleEndian.Uint32(buf[0:4]))),
		CompressedSize:   int(int16(binary.LittleEndian.Uint16(buf[4:6]))),
		DecompressedSize: int(int16(binary.LittleEndian.Uint16(buf[6:8]))),
	}
	if c.Offset < 0 {
		return nil, fmt.Errorf("%w: chunk offset %d", ErrInvalidOffset, c.Offset)
	}
	if c.CompressedSize <= 0 {
		return nil, fmt.Errorf("%w: compressed %d", ErrInvalidChunkSize, c.CompressedSize)
	}
	if c.DecompressedSize <= 0 {
		return nil, fmt.Errorf("%w: decompressed %d", ErrInvalidChunkSize, c.DecompressedSize)
	}

	return c, nil
}

// PayloadMipLevel is the chunked payload of one mip level.
type PayloadMipLevel struct {
	Chunks []*Chunk
}

// newMipLevel splits raw into chunks of at most MaxChunkSize bytes.
func newMipLevel(raw []byte, codec ChunkCodec) (*PayloadMipLevel, error) {
	count := (len(raw) + MaxChunkSize - 1) / MaxChunkSize
	level := &PayloadMipLevel{Chunks: make([]*Chunk, 0, count)}
	for start := 0; start < len(raw); start += MaxChunkSize {
		end := min(start+MaxChunkSize, len(raw))
		chunk, err := newChunk(raw[start:end:end], codec)
		if err != nil {
			return nil, err
		}
		level.Chunks = append(level.Chunks, chunk)
	}

	return level, nil
}

// DecompressedSize returns the raw byte count of the level.
func (l *PayloadMipLevel) DecompressedSize() int {
	n := 0
	for _, c := range l.Chunks {
		n += c.DecompressedSize
	}

	return n
}

// StoredSize returns the on-disk byte count: index block plus chunk bodies.
func (l *PayloadMipLevel) StoredSize() int {
	n := l.indexBlockSize()
	for _, c := range l.Chunks {
		n += c.CompressedSize
	}

	return n
}

func (l *PayloadMipLevel) indexBlockSize() int {
	return IndexRecordSize * len(l.Chunks)
}

// PixelData concatenates the raw bytes of all chunks.
func (l *PayloadMipLevel) PixelData(codec ChunkCodec) ([]byte, error) {
	out := make([]byte, 0, l.DecompressedSize())
	for i, c := range l.Chunks {
		data, err := c.PixelData(codec)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		out = append(out, data...)
	}

	return out, nil
}

// assignChunkOffsets lays chunk bodies out after the index block of a level
// starting at levelOffset.
func (l *PayloadMipLevel) assignChunkOffsets(levelOffset int) {
	pos := levelOffset + l.indexBlockSize()
	for _, c := range l.Chunks {
		c.Offset = pos
		pos += c.CompressedSize
	}
}

// ReadMipLevel reads chunkCount chunk index records and their bodies.
//
// When r is an io.Seeker the recorded offsets are explicit: each body is
// read at its offset from the stream start, and the stream is left at the
// end of the furthest body. Otherwise offsets are implied and bodies are
// read back to back after the index block. Recorded offsets are kept as is.
func ReadMipLevel(r io.Reader, chunkCount int) (*PayloadMipLevel, error) {
	if chunkCount < 0 {
		return nil, fmt.Errorf("%w: chunk count %d", ErrInvalidChunkSize, chunkCount)
	}

	index := make([]byte, chunkCount*IndexRecordSize)
	if _, err := io.ReadFull(r, index); err != nil {
		return nil, fmt.Errorf("%w: %w: %d records: %v", ErrReadChunkIndex, ErrTruncatedStream, chunkCount, err)
	}

	level := &PayloadMipLevel{Chunks: make([]*Chunk, chunkCount)}
	for i := range level.Chunks {
		c, err := decodeIndex(index[i*IndexRecordSize : (i+1)*IndexRecordSize])
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d: %w", ErrReadChunkIndex, i, err)
		}
		level.Chunks[i] = c
	}

	seeker, explicit := r.(io.Seeker)
	end := int64(-1)
	for i, c := range level.Chunks {
		if explicit {
			if _, err := seeker.Seek(int64(c.Offset), io.SeekStart); err != nil {
				return nil, fmt.Errorf("%w: chunk %d: %v", ErrSeek, i, err)
			}
			end = max(end, int64(c.Offset+c.CompressedSize))
		}

		c.Data = make([]byte, c.CompressedSize)
		if _, err := io.ReadFull(r, c.Data); err != nil {
			return nil, fmt.Errorf("%w: %w: chunk %d at %d: %v", ErrReadChunkData, ErrTruncatedStream, i, c.Offset, err)
		}
	}

	if explicit && end >= 0 {
		if _, err := seeker.Seek(end, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: level end: %v", ErrSeek, err)
		}
	}

	return level, nil
}

// write lays out one level at the current position of w in two passes:
// bodies first behind a reserved index block, then the index block itself.
// Offsets are relative to base, the payload file start. The stream is left
// at the end of the level.
func (l *PayloadMipLevel) write(w io.WriteSeeker, base int64) error {
	start, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSeek, err)
	}
	if len(l.Chunks) == 0 {
		return nil
	}

	if _, err := w.Seek(int64(l.indexBlockSize()), io.SeekCurrent); err != nil {
		return fmt.Errorf("%w: reserve index block: %v", ErrSeek, err)
	}

	offsets := make([]int, len(l.Chunks))
	pos := start + int64(l.indexBlockSize())
	for i, c := range l.Chunks {
		offsets[i] = int(pos - base)
		n, err := w.Write(c.Data)
		if err != nil {
			return fmt.Errorf("%w: chunk %d: %v", ErrWriteChunkData, i, err)
		}
		pos += int64(n)
	}

	index := make([]byte, l.indexBlockSize())
	for i, c := range l.Chunks {
		if err := c.encodeIndex(index[i*IndexRecordSize:(i+1)*IndexRecordSize], offsets[i]); err != nil {
			return fmt.Errorf("%w: chunk %d: %w", ErrWriteChunkIndex, i, err)
		}
	}

	if _, err := w.Seek(start, io.SeekStart); err != nil {
		return fmt.Errorf("%w: index block: %v", ErrSeek, err)
	}
	if _, err := w.Write(index); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteChunkIndex, err)
	}
	if _, err := w.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("%w: level end: %v", ErrSeek, err)
	}

	return nil
}

// PayloadFile is one numbered .ftexs file.
type PayloadFile struct {
	// Number is the file number, 1 holding the smallest mip levels.
	Number int
	// Levels in insertion order, most detailed first.
	Levels []*PayloadMipLevel
}

// levelOffsets returns the offset of every level, indexed like Levels,
// for the storage order layout.
func (f *PayloadFile) levelOffsets() []int {
	offsets := make([]int, len(f.Levels))
	pos := 0
	for _, i := range storageOrder(len(f.Levels)) {
		offsets[i] = pos
		pos += f.Levels[i].StoredSize()
	}

	return offsets
}

// Size returns the serialized byte count of the file.
func (f *PayloadFile) Size() int {
	n := 0
	for _, l := range f.Levels {
		n += l.StoredSize()
	}

	return n
}

// Write serializes the file at the current position of w, levels in
// storage order. The stream is left at the end of the file.
func (f *PayloadFile) Write(w io.WriteSeeker) error {
	base, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSeek, err)
	}

	for _, i := range storageOrder(len(f.Levels)) {
		if err := f.Levels[i].write(w, base); err != nil {
			return fmt.Errorf("payload file %d: level %d: %w", f.Number, i, err)
		}
	}

	return nil
}

// Bytes serializes the file into memory.
func (f *PayloadFile) Bytes() ([]byte, error) {
	buf := newWriteBuffer(f.Size())
	if err := f.Write(buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteTo serializes the file to a sink that need not be seekable.
func (f *PayloadFile) WriteTo(w io.Writer) (int64, error) {
	data, err := f.Bytes()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("%w: payload file %d: %v", ErrWriteChunkData, f.Number, err)
	}

	return int64(n), nil
}

// PixelData concatenates the raw bytes of all levels in insertion order.
func (f *PayloadFile) PixelData(codec ChunkCodec) ([]byte, error) {
	var out []byte
	for i, l := range f.Levels {
		data, err := l.PixelData(codec)
		if err != nil {
			return nil, fmt.Errorf("payload file %d: level %d: %w", f.Number, i, err)
		}
		out = append(out, data...)
	}

	return out, nil
}
