package counters

// Copyright (C) 2025 Advanced Micro Devices, Inc. All rights reserved
// SPDX-License-Identifier: Apache-2.0

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Xilinx/XDP/internal/ctwriter"
)

var testCounters = []ctwriter.Counter{
	{CounterSpec: ctwriter.CounterSpec{Column: 1, Row: 2, CounterNumber: 0, Module: "aie"}, Address: 0x2231520},
	{CounterSpec: ctwriter.CounterSpec{Column: 9, Row: 0, CounterNumber: 1, Module: "aie_memory"}, Address: 0x12011024},
}

func TestRenderCountersText(t *testing.T) {
	out := renderCountersText(testCounters)
	lines := []string{
		"Column",
		"0x0002231520",
		"aie_memory",
		"0x0012011024",
	}
	for _, line := range lines {
		assert.Contains(t, out, line)
	}
}

func TestRenderCountersXlsx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counters.xlsx")
	require.NoError(t, renderCountersXlsx(testCounters, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("AIE Counters", "E2")
	require.NoError(t, err)
	assert.Equal(t, "0x0002231520", value)

	value, err = f.GetCellValue("AIE Counters", "D3")
	require.NoError(t, err)
	assert.Equal(t, "aie_memory", value)
}
