// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ftex

package ftex

import (
	"fmt"
	"io"

	"github.com/woozymasta/bcn"
)

// DDS is a DDS image: header plus every mip level stored back to back,
// most detailed first.
type DDS struct {
	Header *bcn.DDSHeader
	Data   []byte
}

// ReadDDS reads a DDS file. DX10 extended headers are not supported.
func ReadDDS(r io.Reader) (*DDS, error) {
	header, err := bcn.ReadDDSHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDDSHeaderRead, err)
	}

	dx10, err := bcn.ReadDDSHeaderDX10(r, header)
	if err != nil {
		return nil, fmt.Errorf("%w: DX10: %v", ErrDDSHeaderRead, err)
	}
	if dx10 != nil {
		return nil, fmt.Errorf("%w: DXGI %d", ErrUnsupportedPixelFormat, dx10.DXGIFormat)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDDSDataRead, err)
	}

	return &DDS{Header: header, Data: data}, nil
}

// MipCount returns the number of mip levels the header declares.
func (d *DDS) MipCount() int {
	if (d.Header.Flags&bcn.DDSFlagMipmapCount) != 0 && d.Header.MipMapCount > 0 {
		return int(d.Header.MipMapCount)
	}

	return 1
}

// Write writes the DDS magic, header and pixel data.
func (d *DDS) Write(w io.Writer) error {
	if err := bcn.WriteDDSMagic(w); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSMagic, err)
	}
	if err := bcn.WriteDDSHeader(w, d.Header); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSHeader, err)
	}
	if _, err := w.Write(d.Data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSData, err)
	}

	return nil
}
