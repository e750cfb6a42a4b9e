// Package common defines data structures and functions that are used by
// multiple application commands, e.g., generate and counters.
package common

// Copyright (C) 2025 Advanced Micro Devices, Inc. All rights reserved
// SPDX-License-Identifier: Apache-2.0

import (
	"os"
	"path/filepath"
)

var AppName = filepath.Base(os.Args[0])

// AppContext represents the application context that can be accessed from all commands.
type AppContext struct {
	Timestamp string // Timestamp is the application start time, used in output file naming.
	OutputDir string // OutputDir is the directory where the application will write output files.
	Version   string // Version is the version of the application.
	Debug     bool   // Debug indicates whether debug logging is enabled.
}

type Flag struct {
	Name string
	Help string
}
type FlagGroup struct {
	GroupName string
	Flags     []Flag
}

// output format options shared by commands that render reports
const (
	FormatTxt  = "txt"
	FormatXlsx = "xlsx"
	FormatAll  = "all"
)

// flag names shared by multiple commands
const (
	FlagProfileConfigName = "profile-config"
	FlagDeviceName        = "device"
	FlagFormatName        = "format"
)
