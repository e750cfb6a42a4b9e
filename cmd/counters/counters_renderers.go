package counters

// Copyright (C) 2025 Advanced Micro Devices, Inc. All rights reserved
// SPDX-License-Identifier: Apache-2.0

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Xilinx/XDP/internal/ctwriter"
)

var counterFieldNames = []string{"Column", "Row", "Counter", "Module", "Address"}

// renderCountersText renders the counter list as a fixed-width text table.
func renderCountersText(counters []ctwriter.Counter) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-8s %-8s %-8s %-16s %-12s\n", counterFieldNames[0], counterFieldNames[1], counterFieldNames[2], counterFieldNames[3], counterFieldNames[4])
	for _, counter := range counters {
		fmt.Fprintf(&sb, "%-8d %-8d %-8d %-16s %-12s\n",
			counter.Column, counter.Row, counter.CounterNumber, counter.Module, ctwriter.FormatAddress(counter.Address))
	}
	return sb.String()
}

// renderCountersXlsx writes the counter list as a single-sheet workbook.
func renderCountersXlsx(counters []ctwriter.Counter, path string) error {
	f := excelize.NewFile()
	sheetName := "AIE Counters"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	if err != nil {
		return err
	}
	for col, name := range counterFieldNames {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		_ = f.SetCellValue(sheetName, cell, name)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	for row, counter := range counters {
		values := []any{
			int(counter.Column),
			int(counter.Row),
			int(counter.CounterNumber),
			counter.Module,
			ctwriter.FormatAddress(counter.Address),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}
	return f.SaveAs(path)
}
