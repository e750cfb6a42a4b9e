package ctwriter

// Copyright (C) 2025 Advanced Micro Devices, Inc. All rights reserved
// SPDX-License-Identifier: Apache-2.0

import (
	"cmp"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
)

// controlFilePattern matches the per-tile-group control files emitted by the
// compiler, capturing the tile-group id.
var controlFilePattern = regexp.MustCompile(`^aie_runtime_control(\d+)\.asm$`)

// controlFile is one discovered aie_runtime_control<id>.asm file together
// with everything derived from its id and, later, its parsed content.
type controlFile struct {
	path       string
	asmID      int
	ucNumber   int
	colStart   int
	colEnd     int
	timestamps []timestampMarker
	counters   []Counter
}

// matchControlFileName applies the filename rule to a single path element.
// It returns the tile-group id and true when the name is a control file.
func matchControlFileName(name string) (int, bool) {
	match := controlFilePattern.FindStringSubmatch(name)
	if match == nil {
		return 0, false
	}
	id, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

// newControlFile derives the controller index and owned column range from the
// tile-group id. Each tile group drives four columns.
func newControlFile(path string, asmID int) controlFile {
	return controlFile{
		path:     path,
		asmID:    asmID,
		ucNumber: 4 * asmID,
		colStart: 4 * asmID,
		colEnd:   4*asmID + 3,
	}
}

// findControlFiles recursively searches the writer's search directory for
// control files. A traversal fault is logged and whatever was collected before
// it is kept; discovery never fails the generation outright. The result is
// sorted by tile-group id so generation order is stable regardless of the
// order the filesystem enumerates entries in.
func (w *CTWriter) findControlFiles() []controlFile {
	var files []controlFile
	err := filepath.WalkDir(w.searchDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		id, ok := matchControlFileName(d.Name())
		if !ok {
			return nil
		}
		file := newControlFile(path, id)
		files = append(files, file)
		w.log.Debug(fmt.Sprintf("Found ASM file: %s (id=%d, uc=%d, columns %d-%d)",
			file.path, file.asmID, file.ucNumber, file.colStart, file.colEnd))
		return nil
	})
	if err != nil {
		w.log.Warning(fmt.Sprintf("Error searching for ASM files: %v", err))
	}
	slices.SortFunc(files, func(a, b controlFile) int {
		return cmp.Compare(a.asmID, b.asmID)
	})
	return files
}
