// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ftex

package ftex

import (
	"fmt"
	"math"
)

// i32FromInt converts an int to an int32 field value.
func i32FromInt(field string, n int) (int32, error) {
	if n < 0 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s: %d exceeds %d", ErrSizeOverflow, field, n, math.MaxInt32)
	}

	return int32(n), nil
}

// i16FromInt converts an int to an int16 field value.
func i16FromInt(field string, n int) (int16, error) {
	if n < 0 || n > math.MaxInt16 {
		return 0, fmt.Errorf("%w: %s: %d exceeds %d", ErrSizeOverflow, field, n, math.MaxInt16)
	}

	// #nosec G115 -- bounds checked above.
	return int16(n), nil
}

// u8FromInt converts an int to a byte field value.
func u8FromInt(field string, n int) (uint8, error) {
	if n < 0 || n > math.MaxUint8 {
		return 0, fmt.Errorf("%w: %s: %d exceeds %d", ErrSizeOverflow, field, n, math.MaxUint8)
	}

	// #nosec G115 -- bounds checked above.
	return uint8(n), nil
}

// u32FromInt converts an int to a uint32 DDS header value.
func u32FromInt(field string, n int) (uint32, error) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s: %d exceeds %d", ErrSizeOverflow, field, n, uint64(math.MaxUint32))
	}

	// #nosec G115 -- bounds checked above.
	return uint32(n), nil
}
