// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ftex

package ftex

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// PayloadFilePath returns the path of payload file number next to the main
// file: "name.ftex" -> "name.<number>.ftexs".
func PayloadFilePath(path string, number int) string {
	return fmt.Sprintf("%s.%d.ftexs", strings.TrimSuffix(path, ".ftex"), number)
}

// ReadFile reads an FTEX main file and every payload file it references.
func ReadFile(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	c, err := ReadContainer(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}

	for _, number := range c.PayloadFileNumbers() {
		if err := readPayloadFile(c, PayloadFilePath(path, number), number); err != nil {
			return nil, err
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}

	return c, nil
}

func readPayloadFile(c *Container, path string, number int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	if err := c.ReadPayloadFile(number, f); err != nil {
		return fmt.Errorf("%q: %w", path, err)
	}

	return nil
}

// ReadDDSFile reads a DDS file.
func ReadDDSFile(path string) (*DDS, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	d, err := ReadDDS(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}

	return d, nil
}

// ConvertToDDSFile reads an FTEX texture and writes it as a DDS file.
func ConvertToDDSFile(ftexPath, ddsPath string, opts *ConvertOptions) error {
	c, err := ReadFile(ftexPath)
	if err != nil {
		return err
	}

	d, err := ToDDS(c, opts)
	if err != nil {
		return fmt.Errorf("%q: %w", ftexPath, err)
	}

	return WriteDDSFile(ddsPath, d)
}
