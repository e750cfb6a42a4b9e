// Package aieinfo loads the AIE profile configuration metadata that stands in
// for the XRT static-info database: the device's tile-address geometry and the
// list of performance counters configured for the run.
package aieinfo

// Copyright (C) 2025 Advanced Micro Devices, Inc. All rights reserved
// SPDX-License-Identifier: Apache-2.0

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/Xilinx/XDP/internal/ctwriter"
)

// DeviceConfig carries the per-device geometry from the configuration
// metadata.
type DeviceConfig struct {
	ID          uint64 `yaml:"id"`
	ColumnShift uint8  `yaml:"column_shift"`
	RowShift    uint8  `yaml:"row_shift"`
}

// CounterConfig is one configured counter as written in the profile
// configuration file.
type CounterConfig struct {
	Column  uint8  `yaml:"column"`
	Row     uint8  `yaml:"row"`
	Counter uint8  `yaml:"counter"`
	Module  string `yaml:"module"`
}

// ProfileConfig is the full profile configuration for one device. It
// implements both collaborator interfaces the CT writer needs, ConfigReader
// and CounterStore.
type ProfileConfig struct {
	Device   DeviceConfig    `yaml:"device"`
	Counters []CounterConfig `yaml:"counters"`
}

// Load reads and validates a profile configuration file.
func Load(path string) (*ProfileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read profile configuration")
	}
	var config ProfileConfig
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return nil, errors.Wrap(err, "failed to parse profile configuration")
	}
	if err := config.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid profile configuration %s", path)
	}
	return &config, nil
}

func (c *ProfileConfig) validate() error {
	if c.Device.ColumnShift == 0 || c.Device.ColumnShift >= 64 {
		return errors.Errorf("column_shift must be in 1..63, got %d", c.Device.ColumnShift)
	}
	if c.Device.RowShift == 0 || c.Device.RowShift >= 64 {
		return errors.Errorf("row_shift must be in 1..63, got %d", c.Device.RowShift)
	}
	for i, counter := range c.Counters {
		if counter.Module == "" {
			return errors.Errorf("counter %d has no module", i)
		}
	}
	return nil
}

// ColumnShift implements ctwriter.ConfigReader.
func (c *ProfileConfig) ColumnShift() uint8 {
	return c.Device.ColumnShift
}

// RowShift implements ctwriter.ConfigReader.
func (c *ProfileConfig) RowShift() uint8 {
	return c.Device.RowShift
}

// NumCounters implements ctwriter.CounterStore. A device id other than the
// configured one has no counters.
func (c *ProfileConfig) NumCounters(deviceID uint64) uint64 {
	if deviceID != c.Device.ID {
		return 0
	}
	return uint64(len(c.Counters))
}

// Counter implements ctwriter.CounterStore.
func (c *ProfileConfig) Counter(deviceID uint64, index uint64) *ctwriter.CounterSpec {
	if deviceID != c.Device.ID || index >= uint64(len(c.Counters)) {
		return nil
	}
	counter := c.Counters[index]
	return &ctwriter.CounterSpec{
		Column:        counter.Column,
		Row:           counter.Row,
		CounterNumber: counter.Counter,
		Module:        counter.Module,
	}
}
