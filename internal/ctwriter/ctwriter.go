// Package ctwriter generates the counter-timestamp (CT) instrumentation
// script consumed by the AIE tracing engine. It discovers the per-tile-group
// aie_runtime_control<id>.asm files produced by the compiler, extracts their
// SAVE_TIMESTAMPS markers, pairs them with the performance counters configured
// for the device, and emits one deterministic CT script that reads every
// counter at every marked instruction point.
package ctwriter

// Copyright (C) 2025 Advanced Micro Devices, Inc. All rights reserved
// SPDX-License-Identifier: Apache-2.0

import (
	"fmt"
	"log/slog"
)

// MessageSink is the leveled diagnostics channel the generator reports
// through. It carries free-text messages only; the generator's outcome is its
// return value, not its log output.
type MessageSink interface {
	Debug(msg string)
	Warning(msg string)
	Info(msg string)
}

// slogSink forwards generator diagnostics to the process-wide slog logger.
type slogSink struct{}

func (slogSink) Debug(msg string)   { slog.Debug(msg) }
func (slogSink) Warning(msg string) { slog.Warn(msg) }
func (slogSink) Info(msg string)    { slog.Info(msg) }

// CTWriter generates one CT file per invocation of Generate. It holds only
// configuration; every Generate call builds a fresh snapshot of files and
// counters and discards it when done.
type CTWriter struct {
	store       CounterStore
	deviceID    uint64
	columnShift uint8
	rowShift    uint8
	searchDir   string
	outputDir   string
	log         MessageSink
}

// NewCTWriter builds a generator for one device. The tile-address shifts are
// read from the configuration metadata once, here, and reused for every
// address computation. searchDir is the root of the recursive control-file
// search; outputDir is where the CT file is written.
func NewCTWriter(store CounterStore, config ConfigReader, deviceID uint64, searchDir string, outputDir string) *CTWriter {
	return &CTWriter{
		store:       store,
		deviceID:    deviceID,
		columnShift: config.ColumnShift(),
		rowShift:    config.RowShift(),
		searchDir:   searchDir,
		outputDir:   outputDir,
		log:         slogSink{},
	}
}

// SetMessageSink replaces the diagnostics sink. The default forwards to slog.
func (w *CTWriter) SetMessageSink(sink MessageSink) {
	w.log = sink
}

// Generate runs the full pipeline once: discover control files, enumerate
// counters, parse markers, associate counters to files, and write the CT
// file. It returns false both when there is nothing to generate (no files, no
// counters, or no SAVE_TIMESTAMPS anywhere) and when the output file cannot
// be created; only the latter is reported at warning level.
func (w *CTWriter) Generate() bool {
	files := w.findControlFiles()
	if len(files) == 0 {
		w.log.Debug("No aie_runtime_control<id>.asm files found. CT file will not be generated.")
		return false
	}

	counters := w.configuredCounters()
	if len(counters) == 0 {
		w.log.Debug("No AIE counters configured. CT file will not be generated.")
		return false
	}

	hasTimestamps := false
	for i := range files {
		files[i].timestamps = w.parseSaveTimestamps(files[i].path)
		if len(files[i].timestamps) > 0 {
			hasTimestamps = true
		}
		files[i].counters = filterCountersByColumn(counters, files[i].colStart, files[i].colEnd)
	}
	if !hasTimestamps {
		w.log.Debug("No SAVE_TIMESTAMPS instructions found in ASM files. CT file will not be generated.")
		return false
	}

	w.logUnclaimedCounters(files, counters)
	return w.writeCTFile(files, counters)
}

// configuredCounters wraps ConfiguredCounters with the writer's geometry and
// reports how many counters the store handed back.
func (w *CTWriter) configuredCounters() []Counter {
	counters := ConfiguredCounters(w.store, geometry{w.columnShift, w.rowShift}, w.deviceID)
	w.log.Debug(fmt.Sprintf("Retrieved %d configured AIE counters", len(counters)))
	return counters
}

// geometry adapts the shifts captured at construction back into a
// ConfigReader for the address computation helpers.
type geometry struct {
	columnShift uint8
	rowShift    uint8
}

func (g geometry) ColumnShift() uint8 { return g.columnShift }
func (g geometry) RowShift() uint8    { return g.rowShift }
