package ctwriter

// Copyright (C) 2025 Advanced Micro Devices, Inc. All rights reserved
// SPDX-License-Identifier: Apache-2.0

import (
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// filterCountersByColumn returns the counters physically located in the
// inclusive column range owned by one control file.
func filterCountersByColumn(counters []Counter, colStart int, colEnd int) []Counter {
	var filtered []Counter
	for _, counter := range counters {
		if int(counter.Column) >= colStart && int(counter.Column) <= colEnd {
			filtered = append(filtered, counter)
		}
	}
	return filtered
}

// logUnclaimedCounters reports the columns holding counters that fall outside
// every discovered control file's range. Those counters still appear in the
// CT file's metadata list but no probe will read them; devices routinely
// configure counters on tiles whose control file was never produced.
func (w *CTWriter) logUnclaimedCounters(files []controlFile, counters []Counter) {
	unclaimed := mapset.NewSet[int]()
	for _, counter := range counters {
		claimed := false
		for _, file := range files {
			if int(counter.Column) >= file.colStart && int(counter.Column) <= file.colEnd {
				claimed = true
				break
			}
		}
		if !claimed {
			unclaimed.Add(int(counter.Column))
		}
	}
	if unclaimed.Cardinality() > 0 {
		columns := unclaimed.ToSlice()
		slices.Sort(columns)
		w.log.Debug(fmt.Sprintf("Counters on columns %v have no ASM file and will not be probed", columns))
	}
}
