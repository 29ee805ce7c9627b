// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Key orders understood by a run.
const (
	OrderShuffled   = "shuffled"
	OrderAscending  = "ascending"
	OrderDescending = "descending"
)

// RunConfig describes one benchmark run.
type RunConfig struct {
	Size        int    `yaml:"size"`
	Order       string `yaml:"order"`
	Seed        int64  `yaml:"seed"`
	DeleteEvery int    `yaml:"delete_every"`
	Verify      bool   `yaml:"verify"`
}

// Config is the content of a run file.
type Config struct {
	Runs []RunConfig `yaml:"runs"`
}

var defaultRun = RunConfig{
	Size:   1_000_000,
	Order:  OrderShuffled,
	Seed:   1,
	Verify: true,
}

func (rc RunConfig) validate() error {
	if rc.Size <= 0 {
		return fmt.Errorf("size must be positive, got %d", rc.Size)
	}
	switch rc.Order {
	case OrderShuffled, OrderAscending, OrderDescending:
	default:
		return fmt.Errorf("unknown key order %q", rc.Order)
	}
	if rc.DeleteEvery < 0 {
		return fmt.Errorf("delete_every must not be negative, got %d", rc.DeleteEvery)
	}
	return nil
}

// LoadConfig reads a YAML run file. Fields missing from a run take their
// value from the default run.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	var raw struct {
		Runs []yaml.Node `yaml:"runs"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse run file: %w", err)
	}
	config := &Config{}
	for i := range raw.Runs {
		rc := defaultRun
		if err := raw.Runs[i].Decode(&rc); err != nil {
			return nil, fmt.Errorf("run %d: %w", i+1, err)
		}
		if err := rc.validate(); err != nil {
			return nil, fmt.Errorf("run %d: %w", i+1, err)
		}
		config.Runs = append(config.Runs, rc)
	}
	if len(config.Runs) == 0 {
		return nil, fmt.Errorf("run file defines no runs")
	}
	return config, nil
}
