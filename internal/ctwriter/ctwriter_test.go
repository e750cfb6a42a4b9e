package ctwriter

// Copyright (C) 2025 Advanced Micro Devices, Inc. All rights reserved
// SPDX-License-Identifier: Apache-2.0

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore holds one core counter in column 1 (owned by tile group 0), one
// memory counter in column 9 (owned by tile group 2), and one counter with an
// unrecognized module in column 15, which no tile group owns.
var testStore = fakeStore{
	deviceID: 0,
	counters: []*CounterSpec{
		{Column: 1, Row: 2, CounterNumber: 0, Module: "aie"},
		{Column: 9, Row: 0, CounterNumber: 1, Module: "aie_memory"},
		{Column: 15, Row: 3, CounterNumber: 2, Module: "unknown_module"},
	},
}

func setupControlFiles(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "aie_runtime_control0.asm"),
		"NOP\nSAVE_TIMESTAMPS\nADD r1, r2\nsave_timestamps 5\n")
	writeFile(t, filepath.Join(dir, "sub", "aie_runtime_control2.asm"),
		"MOV r0, r1\nSAVE_TIMESTAMPS 7 ; loop head\n")
}

const wantCTScript = `# Auto-generated CT file for AIE Profile counters
# Generated by XRT AIE Profile Plugin

begin
{
    ts_start = timestamp32()
    print("\nAIE Profile tracing started\n")
@blockopen
import json
import os

# Initialize data collection
profile_data = {
    "start_timestamp": ts_start,
    "counter_metadata": [
        {"column": 1, "row": 2, "counter": 0, "module": "aie", "address": "0x0002231520"},
        {"column": 9, "row": 0, "counter": 1, "module": "aie_memory", "address": "0x0012011024"},
        {"column": 15, "row": 3, "counter": 2, "module": "unknown_module", "address": "0x001e331528"}
    ],
    "probes": []
}
@blockclose
}

# Probes for aie_runtime_control0.asm (columns 0-3)
jprobe:aie_runtime_control0.asm:uc0:line2,4
{
    ts = timestamp32()
    ctr_0 = read_reg(0x0002231520)
    print(f"Probe fired: ts={ts}")
@blockopen
profile_data["probes"].append({
    "asm_file": "aie_runtime_control0.asm",
    "timestamp": ts,
    "counters": [ctr_0]
})
@blockclose
}

# Probes for aie_runtime_control2.asm (columns 8-11)
jprobe:aie_runtime_control2.asm:uc8:line2
{
    ts = timestamp32()
    ctr_0 = read_reg(0x0012011024)
    print(f"Probe fired: ts={ts}")
@blockopen
profile_data["probes"].append({
    "asm_file": "aie_runtime_control2.asm",
    "timestamp": ts,
    "counters": [ctr_0]
})
@blockclose
}

end
{
    ts_end = timestamp32()
    print("\nAIE Profile tracing ended\n")
@blockopen
profile_data["end_timestamp"] = ts_end
profile_data["total_time"] = ts_end - profile_data["start_timestamp"]

output_path = os.path.join(os.getcwd(), "aie_profile_counters.json")
with open(output_path, "w") as f:
    json.dump(profile_data, f, indent=2)
print(f"Profile data written to {output_path}")
@blockclose
}
`

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	setupControlFiles(t, dir)

	writer, sink := newTestWriter(t, testStore, dir, dir)
	require.True(t, writer.Generate())

	content, err := os.ReadFile(filepath.Join(dir, CTOutputFilename))
	require.NoError(t, err)
	assert.Equal(t, wantCTScript, string(content))
	require.Len(t, sink.info, 1)
	assert.Contains(t, sink.info[0], "Generated CT file")
}

func TestGenerateDeterministic(t *testing.T) {
	dir := t.TempDir()
	setupControlFiles(t, dir)

	writer, _ := newTestWriter(t, testStore, dir, dir)
	require.True(t, writer.Generate())
	first, err := os.ReadFile(filepath.Join(dir, CTOutputFilename))
	require.NoError(t, err)

	require.True(t, writer.Generate())
	second, err := os.ReadFile(filepath.Join(dir, CTOutputFilename))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateUnclaimedCounterInMetadataOnly(t *testing.T) {
	dir := t.TempDir()
	setupControlFiles(t, dir)

	writer, _ := newTestWriter(t, testStore, dir, dir)
	require.True(t, writer.Generate())

	content, err := os.ReadFile(filepath.Join(dir, CTOutputFilename))
	require.NoError(t, err)
	// column 15 counter shows up in the metadata list but no probe reads it
	assert.Contains(t, string(content), `{"column": 15, "row": 3, "counter": 2, "module": "unknown_module", "address": "0x001e331528"}`)
	assert.NotContains(t, string(content), "read_reg(0x001e331528)")
}

func TestGenerateNoControlFiles(t *testing.T) {
	writer, sink := newTestWriter(t, testStore, t.TempDir(), t.TempDir())
	assert.False(t, writer.Generate())
	require.NotEmpty(t, sink.debug)
	assert.Contains(t, sink.debug[len(sink.debug)-1], "No aie_runtime_control<id>.asm files found")
}

func TestGenerateNoCounters(t *testing.T) {
	dir := t.TempDir()
	setupControlFiles(t, dir)

	writer, sink := newTestWriter(t, fakeStore{}, dir, dir)
	assert.False(t, writer.Generate())
	assert.Contains(t, sink.debug[len(sink.debug)-1], "No AIE counters configured")
}

func TestGenerateNoTimestamps(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "aie_runtime_control0.asm"), "NOP\nMOV r0, r1\n")

	writer, sink := newTestWriter(t, testStore, dir, dir)
	assert.False(t, writer.Generate())
	assert.Contains(t, sink.debug[len(sink.debug)-1], "No SAVE_TIMESTAMPS instructions found")
	_, err := os.Stat(filepath.Join(dir, CTOutputFilename))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateFileWithMarkersButNoCountersSkipped(t *testing.T) {
	dir := t.TempDir()
	setupControlFiles(t, dir)
	// tile group 5 owns columns 20-23, where no counters are configured
	writeFile(t, filepath.Join(dir, "aie_runtime_control5.asm"), "SAVE_TIMESTAMPS\n")

	writer, _ := newTestWriter(t, testStore, dir, dir)
	require.True(t, writer.Generate())

	content, err := os.ReadFile(filepath.Join(dir, CTOutputFilename))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "aie_runtime_control5.asm")
}

func TestGenerateOutputDirMissing(t *testing.T) {
	dir := t.TempDir()
	setupControlFiles(t, dir)

	writer, sink := newTestWriter(t, testStore, dir, filepath.Join(dir, "missing"))
	assert.False(t, writer.Generate())
	require.NotEmpty(t, sink.warning)
	assert.Contains(t, sink.warning[len(sink.warning)-1], "Unable to create CT file")
}
