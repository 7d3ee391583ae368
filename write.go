// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ftex

package ftex

import (
	"bufio"
	"fmt"
	"os"
)

// WriteFile writes the FTEX main file and its payload files next to it.
// Descriptors are recomputed from the payload files first.
func WriteFile(path string, c *Container) error {
	if err := c.UpdateOffsets(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}

	for _, pf := range c.PayloadFiles() {
		if err := writePayloadFile(PayloadFilePath(path, pf.Number), pf); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	defer func() { _ = f.Close() }()

	bw := bufio.NewWriter(f)
	if err := c.Write(bw); err != nil {
		return fmt.Errorf("%q: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteHeader, path, err)
	}

	return f.Close()
}

func writePayloadFile(path string, pf *PayloadFile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	defer func() { _ = f.Close() }()

	if err := pf.Write(f); err != nil {
		return fmt.Errorf("%q: %w", path, err)
	}

	return f.Close()
}

// WriteDDSFile writes a DDS image to path.
func WriteDDSFile(path string, d *DDS) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	defer func() { _ = f.Close() }()

	bw := bufio.NewWriter(f)
	if err := d.Write(bw); err != nil {
		return fmt.Errorf("%q: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteDDSData, path, err)
	}

	return f.Close()
}

// ConvertFromDDSFile reads a DDS file and writes it as an FTEX texture.
// CompressRules in opts are matched against ftexPath.
func ConvertFromDDSFile(ddsPath, ftexPath string, opts *ConvertOptions) error {
	opts, err := opts.forPath(ftexPath)
	if err != nil {
		return err
	}

	d, err := ReadDDSFile(ddsPath)
	if err != nil {
		return err
	}

	c, err := FromDDS(d, opts)
	if err != nil {
		return fmt.Errorf("%q: %w", ddsPath, err)
	}

	return WriteFile(ftexPath, c)
}
