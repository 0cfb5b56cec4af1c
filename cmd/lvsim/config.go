// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration of every subcommand.
type Config struct {
	Simulate SimulateConfig `yaml:"simulate"`
	Solve    SolveConfig    `yaml:"solve"`
	Converge ConvergeConfig `yaml:"converge"`
}

// SimulateConfig configures `lvsim simulate`.
type SimulateConfig struct {
	Solver      string     `yaml:"solver"`
	Layout      string     `yaml:"layout"`
	Capacity    int        `yaml:"capacity"`
	Frames      int        `yaml:"frames"`
	FPS         float64    `yaml:"fps"`
	Substeps    int        `yaml:"substeps"`
	Workers     int        `yaml:"workers"`
	Gravity     [2]float64 `yaml:"gravity,flow"`
	BoundsMin   [2]float64 `yaml:"bounds_min,flow"`
	BoundsMax   [2]float64 `yaml:"bounds_max,flow"`
	Radius      float64    `yaml:"radius"`
	InverseMass float64    `yaml:"inverse_mass"`
	Restitution float64    `yaml:"restitution"`
	Emitter     struct {
		Origin    [2]float64 `yaml:"origin,flow"`
		Direction [2]float64 `yaml:"direction,flow"`
		Rate      float64    `yaml:"rate"`
		Speed     float64    `yaml:"speed"`
		SpreadDeg float64    `yaml:"spread_deg"`
		Seed      uint64     `yaml:"seed"`
	} `yaml:"emitter"`
	SnapshotDir   string `yaml:"snapshot_dir"`
	SnapshotEvery int    `yaml:"snapshot_every"`
	Output        string `yaml:"output"`
}

// SolveConfig configures `lvsim solve`.
type SolveConfig struct {
	Matrix         string  `yaml:"matrix"`
	Method         string  `yaml:"method"`
	Preconditioner string  `yaml:"preconditioner"`
	Threshold      float64 `yaml:"threshold"`
	MaxIterations  int     `yaml:"max_iterations"`
	Symmetric      bool    `yaml:"symmetric"`
	Dense          bool    `yaml:"dense"`
	Seed           uint64  `yaml:"seed"`
}

// ConvergeConfig configures `lvsim converge`.
type ConvergeConfig struct {
	Problem        string   `yaml:"problem"`
	Sizes          []int    `yaml:"sizes,flow"`
	Runs           int      `yaml:"runs"`
	Methods        []string `yaml:"methods,flow"`
	Preconditioner string   `yaml:"preconditioner"`
	Threshold      float64  `yaml:"threshold"`
	Dense          bool     `yaml:"dense"`
	Output         string   `yaml:"output"`
	ChartDir       string   `yaml:"chart_dir"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	var c Config

	s := &c.Simulate
	s.Solver = "verlet"
	s.Layout = "columnar"
	s.Capacity = 2000
	s.Frames = 600
	s.FPS = 60
	s.Substeps = 8
	s.Workers = 4
	s.Gravity = [2]float64{0, -9.8}
	s.BoundsMin = [2]float64{-10, -10}
	s.BoundsMax = [2]float64{10, 10}
	s.Radius = 0.1
	s.InverseMass = 1
	s.Restitution = 0.8
	s.Emitter.Origin = [2]float64{0, 8}
	s.Emitter.Direction = [2]float64{1, 0}
	s.Emitter.Rate = 120
	s.Emitter.Speed = 5
	s.Emitter.SpreadDeg = 30
	s.SnapshotEvery = 60

	c.Solve = SolveConfig{
		Method:         "conjugate-gradient",
		Preconditioner: "none",
		Threshold:      1e-8,
		Seed:           1 << 20,
	}

	c.Converge = ConvergeConfig{
		Problem:        "tridiagonal",
		Runs:           100,
		Preconditioner: "none",
		Threshold:      1e-10,
	}

	return c
}

// finite reports whether every value is neither NaN nor ±Inf.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// LoadConfig reads a YAML file over DefaultConfig. Unknown keys are errors.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("LoadConfig: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("LoadConfig: %s: %w", path, err)
	}

	return c, nil
}
