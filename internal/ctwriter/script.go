package ctwriter

// Copyright (C) 2025 Advanced Micro Devices, Inc. All rights reserved
// SPDX-License-Identifier: Apache-2.0

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CTOutputFilename is the fixed name of the generated CT script.
const CTOutputFilename = "aie_profile.ct"

// ProfileDataFilename is the fixed name of the JSON file the emitted script
// instructs the tracing engine to write at execution time. The generator
// never writes this file itself.
const ProfileDataFilename = "aie_profile_counters.json"

// renderCTScript serializes the full CT script. It is a pure function of its
// inputs so identical filesystem and counter-store state always yields a
// byte-identical script.
func renderCTScript(files []controlFile, allCounters []Counter) string {
	var sb strings.Builder

	sb.WriteString("# Auto-generated CT file for AIE Profile counters\n")
	sb.WriteString("# Generated by XRT AIE Profile Plugin\n\n")

	// begin block: record the start timestamp and seed the accumulator with
	// metadata for every configured counter, associated or not
	sb.WriteString("begin\n")
	sb.WriteString("{\n")
	sb.WriteString("    ts_start = timestamp32()\n")
	sb.WriteString("    print(\"\\nAIE Profile tracing started\\n\")\n")
	sb.WriteString("@blockopen\n")
	sb.WriteString("import json\n")
	sb.WriteString("import os\n")
	sb.WriteString("\n")
	sb.WriteString("# Initialize data collection\n")
	sb.WriteString("profile_data = {\n")
	sb.WriteString("    \"start_timestamp\": ts_start,\n")
	sb.WriteString("    \"counter_metadata\": [\n")
	for i, counter := range allCounters {
		fmt.Fprintf(&sb, "        {\"column\": %d, \"row\": %d, \"counter\": %d, \"module\": \"%s\", \"address\": \"%s\"}",
			counter.Column, counter.Row, counter.CounterNumber, counter.Module, FormatAddress(counter.Address))
		if i < len(allCounters)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("    ],\n")
	sb.WriteString("    \"probes\": []\n")
	sb.WriteString("}\n")
	sb.WriteString("@blockclose\n")
	sb.WriteString("}\n\n")

	// one jprobe block per control file that has both markers and counters
	for _, file := range files {
		if len(file.timestamps) == 0 || len(file.counters) == 0 {
			continue
		}
		basename := filepath.Base(file.path)

		fmt.Fprintf(&sb, "# Probes for %s (columns %d-%d)\n", basename, file.colStart, file.colEnd)

		lineList := "line"
		for i, ts := range file.timestamps {
			if i > 0 {
				lineList += ","
			}
			lineList += fmt.Sprintf("%d", ts.lineNumber)
		}

		fmt.Fprintf(&sb, "jprobe:%s:uc%d:%s\n", basename, file.ucNumber, lineList)
		sb.WriteString("{\n")
		sb.WriteString("    ts = timestamp32()\n")
		for i, counter := range file.counters {
			fmt.Fprintf(&sb, "    ctr_%d = read_reg(%s)\n", i, FormatAddress(counter.Address))
		}
		sb.WriteString("    print(f\"Probe fired: ts={ts}\")\n")
		sb.WriteString("@blockopen\n")
		sb.WriteString("profile_data[\"probes\"].append({\n")
		fmt.Fprintf(&sb, "    \"asm_file\": \"%s\",\n", basename)
		sb.WriteString("    \"timestamp\": ts,\n")
		sb.WriteString("    \"counters\": [")
		for i := range file.counters {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "ctr_%d", i)
		}
		sb.WriteString("]\n")
		sb.WriteString("})\n")
		sb.WriteString("@blockclose\n")
		sb.WriteString("}\n\n")
	}

	// end block: elapsed time plus the JSON dump of everything collected
	sb.WriteString("end\n")
	sb.WriteString("{\n")
	sb.WriteString("    ts_end = timestamp32()\n")
	sb.WriteString("    print(\"\\nAIE Profile tracing ended\\n\")\n")
	sb.WriteString("@blockopen\n")
	sb.WriteString("profile_data[\"end_timestamp\"] = ts_end\n")
	sb.WriteString("profile_data[\"total_time\"] = ts_end - profile_data[\"start_timestamp\"]\n")
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "output_path = os.path.join(os.getcwd(), \"%s\")\n", ProfileDataFilename)
	sb.WriteString("with open(output_path, \"w\") as f:\n")
	sb.WriteString("    json.dump(profile_data, f, indent=2)\n")
	sb.WriteString("print(f\"Profile data written to {output_path}\")\n")
	sb.WriteString("@blockclose\n")
	sb.WriteString("}\n")

	return sb.String()
}

// writeCTFile renders the script and writes it to the output directory. A
// file that cannot be created is the only fatal fault in the pipeline; in
// that case nothing is written at all.
func (w *CTWriter) writeCTFile(files []controlFile, allCounters []Counter) bool {
	outputPath := filepath.Join(w.outputDir, CTOutputFilename)
	content := renderCTScript(files, allCounters)
	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		w.log.Warning(fmt.Sprintf("Unable to create CT file: %s", outputPath))
		return false
	}
	w.log.Info(fmt.Sprintf("Generated CT file: %s", outputPath))
	return true
}
