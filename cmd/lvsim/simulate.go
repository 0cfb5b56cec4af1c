// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/google/uuid"
	"github.com/katalvlaran/lvsim/particle"
	"github.com/katalvlaran/lvsim/snapshot"
	"github.com/katalvlaran/lvsim/solver"
	"github.com/katalvlaran/lvsim/spatial"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
)

func newSimulateCmd(a *app) *cobra.Command {
	d := DefaultConfig().Simulate
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Emit particles into a box and step a collision solver",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Simulate
			f := cmd.Flags()
			if f.Changed("solver") {
				cfg.Solver, _ = f.GetString("solver")
			}
			if f.Changed("layout") {
				cfg.Layout, _ = f.GetString("layout")
			}
			if f.Changed("capacity") {
				cfg.Capacity, _ = f.GetInt("capacity")
			}
			if f.Changed("frames") {
				cfg.Frames, _ = f.GetInt("frames")
			}
			if f.Changed("substeps") {
				cfg.Substeps, _ = f.GetInt("substeps")
			}
			if f.Changed("workers") {
				cfg.Workers, _ = f.GetInt("workers")
			}
			if f.Changed("snapshot-dir") {
				cfg.SnapshotDir, _ = f.GetString("snapshot-dir")
			}
			if f.Changed("output") {
				cfg.Output, _ = f.GetString("output")
			}

			return a.simulate(cmd.OutOrStdout(), cfg)
		},
	}
	f := cmd.Flags()
	f.String("solver", d.Solver, "basic | verlet | multithreaded")
	f.String("layout", d.Layout, "interleaved | columnar")
	f.Int("capacity", d.Capacity, "particle capacity")
	f.Int("frames", d.Frames, "frames to simulate")
	f.Int("substeps", d.Substeps, "substeps per frame")
	f.Int("workers", d.Workers, "workers of the multithreaded solver")
	f.String("snapshot-dir", d.SnapshotDir, "badger directory for per-frame snapshots (empty disables)")
	f.StringP("output", "o", d.Output, "write the final snapshot as YAML here ('-' for stdout)")

	return cmd
}

func (a *app) simulate(out io.Writer, cfg SimulateConfig) error {
	kind, err := solver.ParseKind(cfg.Solver)
	if err != nil {
		return err
	}
	layout, err := particle.ParseLayout(cfg.Layout)
	if err != nil {
		return err
	}
	if cfg.Frames <= 0 || cfg.FPS <= 0 || cfg.Substeps <= 0 || cfg.Workers <= 0 {
		return fmt.Errorf("simulate: frames, fps, substeps and workers must be > 0")
	}
	if !finite(cfg.Gravity[0], cfg.Gravity[1], cfg.FPS, cfg.Radius, cfg.InverseMass, cfg.Restitution) {
		return fmt.Errorf("simulate: gravity, fps, radius, inverse mass and restitution must be finite")
	}
	if em := cfg.Emitter; !finite(em.Rate, em.Speed, em.SpreadDeg) ||
		!(em.Rate > 0) || em.Speed < 0 || em.SpreadDeg < 0 || em.SpreadDeg > 360 {
		return fmt.Errorf("simulate: emitter rate %g, speed %g or spread %g° out of range", em.Rate, em.Speed, em.SpreadDeg)
	}
	bounds, err := spatial.NewBounds(r2.Vec{X: cfg.BoundsMin[0], Y: cfg.BoundsMin[1]}, r2.Vec{X: cfg.BoundsMax[0], Y: cfg.BoundsMax[1]})
	if err != nil {
		return err
	}
	store, err := particle.New(layout, cfg.Capacity)
	if err != nil {
		return err
	}

	sv, err := solver.New(kind, store, bounds, cfg.Radius,
		solver.WithSubsteps(cfg.Substeps),
		solver.WithWorkers(cfg.Workers),
		solver.WithGravity(r2.Vec{X: cfg.Gravity[0], Y: cfg.Gravity[1]}),
		solver.WithLogger(a.log.WithName("solver")),
	)
	if err != nil {
		return err
	}
	if c, ok := sv.(io.Closer); ok {
		defer c.Close()
	}

	em := cfg.Emitter
	emitter := particle.NewPointEmitter(
		r2.Vec{X: em.Origin[0], Y: em.Origin[1]},
		r2.Vec{X: em.Direction[0], Y: em.Direction[1]},
		particle.WithRate(em.Rate),
		particle.WithSpeed(em.Speed),
		particle.WithSpread(em.SpreadDeg*math.Pi/180),
		particle.WithSeed(em.Seed),
		particle.WithPrototype(particle.Prototype{InverseMass: cfg.InverseMass, Radius: cfg.Radius, Restitution: cfg.Restitution}),
	)

	var snaps *snapshot.Store
	if cfg.SnapshotDir != "" {
		if snaps, err = snapshot.OpenDir(cfg.SnapshotDir, a.log.WithName("snapshot")); err != nil {
			return err
		}
		defer snaps.Close()
	}

	run := uuid.New()
	dt := 1 / cfg.FPS
	capture := func(frame int) *snapshot.Snapshot {
		return snapshot.Capture(store,
			snapshot.WithRunID(run),
			snapshot.WithFrame(uint64(frame), float64(frame)*dt),
			snapshot.WithBounds(bounds),
			snapshot.WithStats(sv.Stats()),
		)
	}

	a.log.Info("simulation started", "run", run, "solver", kind, "layout", layout, "frames", cfg.Frames)
	for frame := 1; frame <= cfg.Frames; frame++ {
		if _, err := emitter.Update(dt, store); err != nil {
			return err
		}
		if err := sv.Solve(dt); err != nil {
			return err
		}
		a.log.V(2).Info("frame", "frame", frame, "particles", store.Len())
		if snaps != nil && cfg.SnapshotEvery > 0 && frame%cfg.SnapshotEvery == 0 {
			if err := snaps.Put(capture(frame)); err != nil {
				return err
			}
		}
	}

	st := sv.Stats()
	fmt.Fprintf(out, "run %s: %d particles, %d frames, %d collisions, %d boundary hits, avg %.2f per particle\n",
		run, store.Len(), cfg.Frames, st.Collisions, st.BoundaryHits, st.Average)

	return writeSnapshot(out, cfg.Output, capture(cfg.Frames))
}

func writeSnapshot(stdout io.Writer, path string, s *snapshot.Snapshot) error {
	switch path {
	case "":
		return nil
	case "-":
		return snapshot.Encode(stdout, s)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	return errors.Join(snapshot.Encode(f, s), f.Close())
}
