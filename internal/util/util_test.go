package util

// Copyright (C) 2025 Advanced Micro Devices, Inc. All rights reserved
// SPDX-License-Identifier: Apache-2.0

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exists, err := FileExists(path)
	if err != nil || !exists {
		t.Errorf("expected file to exist, got exists=%v err=%v", exists, err)
	}

	exists, err = FileExists(filepath.Join(dir, "missing.txt"))
	if err != nil || exists {
		t.Errorf("expected file to not exist, got exists=%v err=%v", exists, err)
	}

	// a directory is not a file
	_, err = FileExists(dir)
	if err == nil {
		t.Error("expected error for directory path")
	}
}

func TestDirectoryExists(t *testing.T) {
	dir := t.TempDir()

	exists, err := DirectoryExists(dir)
	if err != nil || !exists {
		t.Errorf("expected directory to exist, got exists=%v err=%v", exists, err)
	}

	exists, err = DirectoryExists(filepath.Join(dir, "missing"))
	if err != nil || exists {
		t.Errorf("expected directory to not exist, got exists=%v err=%v", exists, err)
	}

	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = DirectoryExists(path)
	if err == nil {
		t.Error("expected error for file path")
	}
}

func TestExpandUser(t *testing.T) {
	if got := ExpandUser("/tmp/foo"); got != "/tmp/foo" {
		t.Errorf("unexpected path: %s", got)
	}
	if got := ExpandUser("~"); got == "~" {
		t.Errorf("expected home dir, got %s", got)
	}
}
