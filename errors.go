// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ftex

package ftex

import "errors"

var (
	// ErrBadMagic indicates the FTEX signature does not match.
	ErrBadMagic = errors.New("bad FTEX magic")
	// ErrUnsupportedPixelFormat indicates a pixel format without a mapping.
	ErrUnsupportedPixelFormat = errors.New("unsupported pixel format")
	// ErrTruncatedStream indicates fewer bytes than a fixed-size read requires.
	ErrTruncatedStream = errors.New("truncated stream")
	// ErrSizeOverflow indicates a value exceeds the width of its field.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrPayloadFileCount indicates inconsistent payload file count fields.
	ErrPayloadFileCount = errors.New("payload file count mismatch")
	// ErrPayloadFileMismatch indicates descriptors and payload files disagree.
	ErrPayloadFileMismatch = errors.New("payload file set mismatch")
	// ErrDuplicatePayloadFile indicates a payload file number added twice.
	ErrDuplicatePayloadFile = errors.New("duplicate payload file")
	// ErrInvalidFileNumber indicates a payload file number outside 1..255.
	ErrInvalidFileNumber = errors.New("invalid payload file number")
	// ErrDescriptorMismatch indicates the descriptor table does not match the payload layout.
	ErrDescriptorMismatch = errors.New("mip descriptor mismatch")
	// ErrInvalidChunkSize indicates a chunk size outside 1..MaxChunkSize.
	ErrInvalidChunkSize = errors.New("invalid chunk size")
	// ErrInvalidOffset indicates a negative chunk or mip offset.
	ErrInvalidOffset = errors.New("invalid offset")
	// ErrEmptyMipmaps indicates missing mipmap data.
	ErrEmptyMipmaps = errors.New("empty mipmaps")
	// ErrInvalidDimensions indicates a zero or negative width or height.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidTierThresholds indicates thresholds that are not strictly ascending.
	ErrInvalidTierThresholds = errors.New("invalid tier thresholds")
	// ErrUnknownCodec indicates an unknown chunk codec name.
	ErrUnknownCodec = errors.New("unknown chunk codec")
	// ErrCompressChunk indicates chunk compression failed.
	ErrCompressChunk = errors.New("compress chunk failed")
	// ErrDecompressChunk indicates chunk decompression failed.
	ErrDecompressChunk = errors.New("decompress chunk failed")
	// ErrDecompressedSizeMismatch indicates an inflated chunk has the wrong size.
	ErrDecompressedSizeMismatch = errors.New("decompressed chunk size mismatch")
	// ErrInvalidCompressPattern indicates invalid compression path rules.
	ErrInvalidCompressPattern = errors.New("invalid compress rules")
	// ErrReadHeader indicates FTEX header read failed.
	ErrReadHeader = errors.New("reading FTEX header failed")
	// ErrReadDescriptor indicates mip descriptor read failed.
	ErrReadDescriptor = errors.New("reading mip descriptor failed")
	// ErrReadChunkIndex indicates chunk index record read failed.
	ErrReadChunkIndex = errors.New("reading chunk index failed")
	// ErrReadChunkData indicates chunk body read failed.
	ErrReadChunkData = errors.New("reading chunk data failed")
	// ErrSeek indicates a seek on the payload stream failed.
	ErrSeek = errors.New("seek failed")
	// ErrWriteHeader indicates FTEX header write failed.
	ErrWriteHeader = errors.New("writing FTEX header failed")
	// ErrWriteDescriptor indicates mip descriptor write failed.
	ErrWriteDescriptor = errors.New("writing mip descriptor failed")
	// ErrWriteChunkIndex indicates chunk index record write failed.
	ErrWriteChunkIndex = errors.New("writing chunk index failed")
	// ErrWriteChunkData indicates chunk body write failed.
	ErrWriteChunkData = errors.New("writing chunk data failed")
	// ErrDDSHeaderRead indicates DDS header read failed.
	ErrDDSHeaderRead = errors.New("reading DDS header failed")
	// ErrDDSDataRead indicates DDS pixel data read failed.
	ErrDDSDataRead = errors.New("reading DDS data failed")
	// ErrWriteDDSMagic indicates DDS magic write failed.
	ErrWriteDDSMagic = errors.New("writing DDS magic failed")
	// ErrWriteDDSHeader indicates DDS header write failed.
	ErrWriteDDSHeader = errors.New("writing DDS header failed")
	// ErrWriteDDSData indicates DDS pixel data write failed.
	ErrWriteDDSData = errors.New("writing DDS data failed")
	// ErrOpenFile indicates file open failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrCreateFile indicates file creation failed.
	ErrCreateFile = errors.New("create file failed")
)
