// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ftex

package ftex

import (
	"cmp"
	"fmt"
	"slices"
)

// DefaultTierThresholds are the cumulative size limits of payload files
// 1..4; anything above the last goes to file 5. The values were fitted to
// shipped textures, the engine's own rule is not known.
var DefaultTierThresholds = []int{21872, 87408, 349552, 1398128}

// validateTierThresholds checks that thresholds ascend strictly and fit
// the byte-sized file number field.
func validateTierThresholds(thresholds []int) error {
	if len(thresholds)+1 > 0xff {
		return fmt.Errorf("%w: %d tiers", ErrInvalidTierThresholds, len(thresholds)+1)
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return fmt.Errorf("%w: %d after %d", ErrInvalidTierThresholds, thresholds[i], thresholds[i-1])
		}
	}

	return nil
}

// tierFileNumber looks a running total up in thresholds.
func tierFileNumber(total int, thresholds []int) int {
	for i, limit := range thresholds {
		if total <= limit {
			return i + 1
		}
	}

	return len(thresholds) + 1
}

// assignPayloadFiles returns the payload file number of every mip level.
//
// A single level goes to file 1. Otherwise levels are visited by ascending
// size, equal sizes from the least detailed level up, and each takes the
// file number of the running size total. File numbers never increase with
// the level index.
func assignPayloadFiles(sizes []int, thresholds []int) []int {
	numbers := make([]int, len(sizes))
	if len(sizes) == 1 {
		numbers[0] = 1
		return numbers
	}

	order := storageOrder(len(sizes))
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(sizes[a], sizes[b])
	})

	total := 0
	for _, i := range order {
		total += sizes[i]
		numbers[i] = tierFileNumber(total, thresholds)
	}

	return numbers
}
