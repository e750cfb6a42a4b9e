package ctwriter

// Copyright (C) 2025 Advanced Micro Devices, Inc. All rights reserved
// SPDX-License-Identifier: Apache-2.0

import (
	"fmt"
)

// CounterSpec describes one configured performance counter as reported by the
// static-info store: which tile it lives on, which counter slot it occupies,
// and which module within the tile it belongs to.
type CounterSpec struct {
	Column        uint8
	Row           uint8
	CounterNumber uint8
	Module        string
}

// CounterStore is the interface the generator needs from the static-info
// database. Counter returns nil for indices with no configured counter.
type CounterStore interface {
	NumCounters(deviceID uint64) uint64
	Counter(deviceID uint64, index uint64) *CounterSpec
}

// ConfigReader provides the tile-address geometry from the AIE configuration
// metadata. The shifts define how (column, row) pack into a tile base address.
type ConfigReader interface {
	ColumnShift() uint8
	RowShift() uint8
}

// Counter is a configured counter together with its computed physical register
// address.
type Counter struct {
	CounterSpec
	Address uint64
}

// ModuleType identifies the hardware subsystem within a tile that a counter
// belongs to.
type ModuleType int

const (
	ModuleCore ModuleType = iota
	ModuleMemory
	ModuleMemTile
	ModuleInterface
)

// Performance counter register base offsets per module type. Each counter is a
// 4-byte register, so counter N lives at base + 4*N within its module.
const (
	coreModuleBaseOffset   = uint64(0x31520)
	memoryModuleBaseOffset = uint64(0x11020)
	memTileBaseOffset      = uint64(0xA0650)
	shimTileBaseOffset     = uint64(0x31020)
)

// moduleFromString maps the module strings used by the static-info store to
// the closed module enumeration. Unrecognized strings map to ModuleCore; older
// flows report module names this code has never heard of, and those counters
// have always been treated as core-module counters.
func moduleFromString(module string) ModuleType {
	switch module {
	case "aie":
		return ModuleCore
	case "aie_memory":
		return ModuleMemory
	case "memory_tile":
		return ModuleMemTile
	case "interface_tile":
		return ModuleInterface
	default:
		return ModuleCore
	}
}

// BaseOffset returns the module's performance counter register base offset
// within a tile.
func (m ModuleType) BaseOffset() uint64 {
	switch m {
	case ModuleMemory:
		return memoryModuleBaseOffset
	case ModuleMemTile:
		return memTileBaseOffset
	case ModuleInterface:
		return shimTileBaseOffset
	default:
		return coreModuleBaseOffset
	}
}

// CounterAddress computes the physical register address of a counter. The tile
// base address packs column and row with the device's configured shifts, then
// the module base offset and the counter's 4-byte slot are added.
func CounterAddress(spec CounterSpec, columnShift uint8, rowShift uint8) uint64 {
	tileAddress := uint64(spec.Column)<<columnShift | uint64(spec.Row)<<rowShift
	baseOffset := moduleFromString(spec.Module).BaseOffset()
	counterOffset := uint64(spec.CounterNumber) * 4
	return tileAddress + baseOffset + counterOffset
}

// FormatAddress renders an address the way the CT engine expects it: "0x"
// followed by exactly 10 lowercase hex digits, zero padded. The AIE address
// space fits in 40 bits, so nothing is ever truncated.
func FormatAddress(address uint64) string {
	return fmt.Sprintf("0x%010x", address)
}

// ConfiguredCounters retrieves every configured counter for the device from
// the store and computes each one's physical address. Indices with no counter
// are skipped.
func ConfiguredCounters(store CounterStore, config ConfigReader, deviceID uint64) []Counter {
	var counters []Counter
	columnShift := config.ColumnShift()
	rowShift := config.RowShift()
	numCounters := store.NumCounters(deviceID)
	for i := uint64(0); i < numCounters; i++ {
		spec := store.Counter(deviceID, i)
		if spec == nil {
			continue
		}
		counters = append(counters, Counter{
			CounterSpec: *spec,
			Address:     CounterAddress(*spec, columnShift, rowShift),
		})
	}
	return counters
}
