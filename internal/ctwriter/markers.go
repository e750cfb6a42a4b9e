package ctwriter

// Copyright (C) 2025 Advanced Micro Devices, Inc. All rights reserved
// SPDX-License-Identifier: Apache-2.0

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// noMarkerIndex marks a SAVE_TIMESTAMPS directive without an explicit index.
const noMarkerIndex = -1

// maxControlFileLine caps the scanner's per-line buffer when parsing control
// files.
const maxControlFileLine = 16 * 1024 * 1024

// timestampDirectivePattern is the marker-directive rule: the keyword,
// case-insensitive, optionally followed by whitespace and a decimal index,
// anywhere on the line.
var timestampDirectivePattern = regexp.MustCompile(`(?i)SAVE_TIMESTAMPS\s*(\d*)`)

// timestampMarker is one SAVE_TIMESTAMPS directive found in a control file.
type timestampMarker struct {
	lineNumber int
	index      int
}

// matchTimestampDirective applies the marker-directive rule to one line of
// text. It returns the optional index (noMarkerIndex when absent) and whether
// the line contains the directive at all.
func matchTimestampDirective(line string) (int, bool) {
	match := timestampDirectivePattern.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}
	if match[1] == "" {
		return noMarkerIndex, true
	}
	index, err := strconv.Atoi(match[1])
	if err != nil {
		return noMarkerIndex, true
	}
	return index, true
}

// parseSaveTimestamps scans a control file line by line for SAVE_TIMESTAMPS
// directives. A file that cannot be opened contributes zero markers; the rest
// of the generation continues without it.
func (w *CTWriter) parseSaveTimestamps(path string) []timestampMarker {
	var timestamps []timestampMarker
	file, err := os.Open(path)
	if err != nil {
		w.log.Warning(fmt.Sprintf("Unable to open ASM file: %s", path))
		return timestamps
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	// compiler-emitted data lines can far exceed the default 64KB token limit
	scanner.Buffer(make([]byte, 0, 64*1024), maxControlFileLine)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		index, ok := matchTimestampDirective(scanner.Text())
		if !ok {
			continue
		}
		timestamps = append(timestamps, timestampMarker{lineNumber: lineNumber, index: index})
	}
	if err := scanner.Err(); err != nil {
		w.log.Warning(fmt.Sprintf("Error reading ASM file %s: %v", path, err))
	}
	w.log.Debug(fmt.Sprintf("Found %d SAVE_TIMESTAMPS in %s", len(timestamps), path))
	return timestamps
}
