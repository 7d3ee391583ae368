// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ftex

package ftex

import (
	"cmp"
	"slices"
)

// The engine stores small mip levels physically first, so FTEX data is
// laid out in two inverted orders:
//
//   - flattenOrder: payload files by descending number when the pixel data
//     is concatenated into one DDS buffer (file 5 holds the largest level).
//   - storageOrder: inside one payload file, levels in reverse insertion
//     order (insertion order is most detailed first).

// flattenOrder returns payload files sorted by descending file number.
func flattenOrder(files []*PayloadFile) []*PayloadFile {
	out := slices.Clone(files)
	slices.SortStableFunc(out, func(a, b *PayloadFile) int {
		return cmp.Compare(b.Number, a.Number)
	})

	return out
}

// storageOrder returns level indexes in the order they are serialized.
func storageOrder(levelCount int) []int {
	order := make([]int, levelCount)
	for i := range order {
		order[i] = levelCount - 1 - i
	}

	return order
}
