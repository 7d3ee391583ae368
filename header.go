// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ftex

package ftex

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// Magic is the FTEX signature, "FTEX" followed by version bytes 85 EB 01 40.
	Magic uint64 = 0x4001EB8558455446

	// HeaderSize is the fixed size of the FTEX main header.
	HeaderSize = 64
	// DescriptorSize is the fixed size of one mip descriptor record.
	DescriptorSize = 16
)

// MipDescriptor locates one mip level inside a payload file.
type MipDescriptor struct {
	// Offset of the level's chunk index block from the payload file start.
	Offset int
	// DecompressedSize is the raw pixel byte count of the level.
	DecompressedSize int
	// CompressedSize is the stored byte count: index block plus chunk bodies.
	CompressedSize int
	// Index is the mip level, 0 being the most detailed.
	Index int
	// FileNumber is the owning payload file.
	FileNumber int
	// ChunkCount is the number of chunks of the level.
	ChunkCount int
}

// Container is an FTEX texture: header, mip descriptor table and the
// payload files the descriptors point into.
type Container struct {
	PixelFormat PixelFormat
	Width       int
	Height      int
	// PayloadFileCount is the header's payload file count.
	PayloadFileCount int
	// Mips is the descriptor table in mip order.
	Mips []MipDescriptor

	// files keeps payload files in insertion order.
	files []*PayloadFile
}

// ReadContainer parses the FTEX main file: header and descriptor table.
// Payload files are attached afterwards with ReadPayloadFile.
func ReadContainer(r io.Reader) (*Container, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: %w: header: %v", ErrReadHeader, ErrTruncatedStream, err)
	}

	if magic := binary.LittleEndian.Uint64(hdr[0:8]); magic != Magic {
		return nil, fmt.Errorf("%w: expected %016x, got %016x", ErrBadMagic, Magic, magic)
	}

	// #nosec G115 -- int16 fields are stored as two's complement.
	c := &Container{
		PixelFormat: PixelFormat(int16(binary.LittleEndian.Uint16(hdr[8:10]))),
		Width:       int(int16(binary.LittleEndian.Uint16(hdr[10:12]))),
		Height:      int(int16(binary.LittleEndian.Uint16(hdr[12:14]))),
	}
	mipCount := int(hdr[16])
	c.PayloadFileCount = int(hdr[32])
	additional := int(hdr[33])
	if additional != c.PayloadFileCount-1 {
		return nil, fmt.Errorf("%w: additional count %d, payload file count %d", ErrPayloadFileCount, additional, c.PayloadFileCount)
	}

	c.Mips = make([]MipDescriptor, mipCount)
	var rec [DescriptorSize]byte
	for i := range c.Mips {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			return nil, fmt.Errorf("%w: %w: mip %d: %v", ErrReadDescriptor, ErrTruncatedStream, i, err)
		}
		c.Mips[i].decodeFrom(rec[:])
	}

	return c, nil
}

// decodeFrom reads a descriptor record; buf must hold DescriptorSize bytes.
func (d *MipDescriptor) decodeFrom(buf []byte) {
	// #nosec G115 -- int32/int16 fields are stored as two's complement.
	*d = MipDescriptor{
		Offset:           int(int32(binary.LittleEndian.Uint32(buf[0:4]))),
		DecompressedSize: int(int32(binary.LittleEndian.Uint32(buf[4:8]))),
		CompressedSize:   int(int32(binary.LittleEndian.Uint32(buf[8:12]))),
		Index:            int(buf[12]),
		FileNumber:       int(buf[13]),
		ChunkCount:       int(int16(binary.LittleEndian.Uint16(buf[14:16]))),
	}
}

// encodeTo writes a descriptor record; buf must hold DescriptorSize bytes.
func (d *MipDescriptor) encodeTo(buf []byte) error {
	offset, err := i32FromInt("mip offset", d.Offset)
	if err != nil {
		return err
	}
	decompressed, err := i32FromInt("mip decompressed size", d.DecompressedSize)
	if err != nil {
		return err
	}
	compressed, err := i32FromInt("mip compressed size", d.CompressedSize)
	if err != nil {
		return err
	}
	index, err := u8FromInt("mip index", d.Index)
	if err != nil {
		return err
	}
	fileNumber, err := u8FromInt("mip file number", d.FileNumber)
	if err != nil {
		return err
	}
	chunkCount, err := i16FromInt("mip chunk count", d.ChunkCount)
	if err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(buf[0:4], uint32(offset))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(decompressed))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(compressed))
	buf[12] = index
	buf[13] = fileNumber
	binary.LittleEndian.PutUint16(buf[14:16], uint16(chunkCount))
	return nil
}

// Write writes the header and descriptor table. Reserved gaps are zero.
func (c *Container) Write(w io.Writer) error {
	var hdr [HeaderSize]byte

	width, err := i16FromInt("width", c.Width)
	if err != nil {
		return err
	}
	height, err := i16FromInt("height", c.Height)
	if err != nil {
		return err
	}
	mipCount, err := u8FromInt("mip count", len(c.Mips))
	if err != nil {
		return err
	}
	fileCount, err := u8FromInt("payload file count", c.PayloadFileCount)
	if err != nil {
		return err
	}
	if fileCount == 0 {
		return fmt.Errorf("%w: no payload files", ErrPayloadFileCount)
	}

	binary.LittleEndian.PutUint64(hdr[0:8], Magic)
	binary.LittleEndian.PutUint16(hdr[8:10], uint16(c.PixelFormat))
	binary.LittleEndian.PutUint16(hdr[10:12], uint16(width))
	binary.LittleEndian.PutUint16(hdr[12:14], uint16(height))
	hdr[16] = mipCount
	hdr[32] = fileCount
	hdr[33] = fileCount - 1

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHeader, err)
	}

	var rec [DescriptorSize]byte
	for i := range c.Mips {
		if err := c.Mips[i].encodeTo(rec[:]); err != nil {
			return fmt.Errorf("%w: mip %d: %w", ErrWriteDescriptor, i, err)
		}
		if _, err := w.Write(rec[:]); err != nil {
			return fmt.Errorf("%w: mip %d: %v", ErrWriteDescriptor, i, err)
		}
	}

	return nil
}

// AddPayloadFile appends a payload file to the container.
func (c *Container) AddPayloadFile(f *PayloadFile) error {
	if f.Number < 1 || f.Number > 0xff {
		return fmt.Errorf("%w: %d", ErrInvalidFileNumber, f.Number)
	}
	if _, ok := c.PayloadFile(f.Number); ok {
		return fmt.Errorf("%w: %d", ErrDuplicatePayloadFile, f.Number)
	}

	c.files = append(c.files, f)
	return nil
}

// PayloadFile returns the payload file with the given number.
func (c *Container) PayloadFile(number int) (*PayloadFile, bool) {
	for _, f := range c.files {
		if f.Number == number {
			return f, true
		}
	}

	return nil, false
}

// PayloadFiles returns payload files in insertion order.
func (c *Container) PayloadFiles() []*PayloadFile {
	out := make([]*PayloadFile, len(c.files))
	copy(out, c.files)
	return out
}

// PayloadFileNumbers returns the payload file numbers referenced by the
// descriptor table, in order of first reference.
func (c *Container) PayloadFileNumbers() []int {
	seen := make(map[int]bool, len(c.Mips))
	numbers := make([]int, 0, c.PayloadFileCount)
	for _, d := range c.Mips {
		if seen[d.FileNumber] {
			continue
		}
		seen[d.FileNumber] = true
		numbers = append(numbers, d.FileNumber)
	}

	return numbers
}

// ReadPayloadFile parses payload file number from r and attaches it.
// Every descriptor owned by the file is read at its recorded offset, in
// descriptor table order.
func (c *Container) ReadPayloadFile(number int, r io.ReadSeeker) error {
	f := &PayloadFile{Number: number}
	for i, d := range c.Mips {
		if d.FileNumber != number {
			continue
		}
		if d.Offset < 0 {
			return fmt.Errorf("%w: mip %d: offset %d", ErrInvalidOffset, i, d.Offset)
		}
		if _, err := r.Seek(int64(d.Offset), io.SeekStart); err != nil {
			return fmt.Errorf("%w: mip %d: %v", ErrSeek, i, err)
		}

		level, err := ReadMipLevel(r, d.ChunkCount)
		if err != nil {
			return fmt.Errorf("payload file %d: mip %d: %w", number, i, err)
		}
		f.Levels = append(f.Levels, level)
	}

	if len(f.Levels) == 0 {
		return fmt.Errorf("%w: no descriptor references payload file %d", ErrPayloadFileMismatch, number)
	}

	return c.AddPayloadFile(f)
}

// UpdateOffsets recomputes the descriptor table from the payload files.
//
// Payload files are walked in insertion order and their mip levels in
// insertion order; descriptor i receives the layout of the i-th level
// walked. Chunk offsets are recomputed as well. It must run after payload
// files are built or changed and before the header is written.
func (c *Container) UpdateOffsets() error {
	walked := 0
	for _, f := range c.files {
		offsets := f.levelOffsets()
		for i, level := range f.Levels {
			if walked >= len(c.Mips) {
				return fmt.Errorf("%w: %d descriptors, payload files hold more levels", ErrDescriptorMismatch, len(c.Mips))
			}

			level.assignChunkOffsets(offsets[i])

			d := &c.Mips[walked]
			d.FileNumber = f.Number
			d.Offset = offsets[i]
			d.CompressedSize = level.StoredSize()
			d.DecompressedSize = level.DecompressedSize()
			d.ChunkCount = len(level.Chunks)

			var rec [DescriptorSize]byte
			if err := d.encodeTo(rec[:]); err != nil {
				return fmt.Errorf("mip %d: %w", walked, err)
			}
			walked++
		}
	}

	if walked != len(c.Mips) {
		return fmt.Errorf("%w: %d descriptors, %d levels in payload files", ErrDescriptorMismatch, len(c.Mips), walked)
	}

	c.PayloadFileCount = len(c.files)
	return nil
}

// Validate checks that the descriptors reference exactly the payload files
// present and that the header count agrees.
func (c *Container) Validate() error {
	if c.PayloadFileCount != len(c.files) {
		return fmt.Errorf("%w: header says %d, have %d", ErrPayloadFileCount, c.PayloadFileCount, len(c.files))
	}

	referenced := c.PayloadFileNumbers()
	if len(referenced) != len(c.files) {
		return fmt.Errorf("%w: descriptors reference %v, have %d payload files", ErrPayloadFileMismatch, referenced, len(c.files))
	}
	for _, n := range referenced {
		if _, ok := c.PayloadFile(n); !ok {
			return fmt.Errorf("%w: payload file %d missing", ErrPayloadFileMismatch, n)
		}
	}

	return nil
}
