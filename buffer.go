// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ftex

package ftex

import (
	"errors"
	"io"
)

var errNegativePosition = errors.New("negative position")

// writeBuffer is an in-memory io.WriteSeeker. Seeking past the end and
// writing fills the gap with zeros.
type writeBuffer struct {
	buf []byte
	pos int
}

func newWriteBuffer(capacity int) *writeBuffer {
	return &writeBuffer{buf: make([]byte, 0, capacity)}
}

func (b *writeBuffer) Write(p []byte) (int, error) {
	end := b.pos + len(p)
	if end > len(b.buf) {
		if end > cap(b.buf) {
			grown := make([]byte, len(b.buf), max(end, 2*cap(b.buf)))
			copy(grown, b.buf)
			b.buf = grown
		}
		b.buf = b.buf[:end]
	}

	copy(b.buf[b.pos:end], p)
	b.pos = end
	return len(p), nil
}

func (b *writeBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(b.pos) + offset
	case io.SeekEnd:
		pos = int64(len(b.buf)) + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if pos < 0 {
		return 0, errNegativePosition
	}

	b.pos = int(pos)
	return pos, nil
}

// Bytes returns the written bytes.
func (b *writeBuffer) Bytes() []byte {
	return b.buf
}
