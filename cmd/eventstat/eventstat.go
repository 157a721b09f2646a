package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/AliceO2Group/eventstat/internal/counter"
	"github.com/AliceO2Group/eventstat/internal/model"
	"github.com/AliceO2Group/eventstat/internal/reconcile"
	"github.com/AliceO2Group/eventstat/internal/statfile"
	"github.com/AliceO2Group/eventstat/internal/stats"
)

// Eventstat is a component, which encapsulates the event accounting of one
// simulation job and executes it.
type Eventstat struct {
	kinematics model.KinematicsCounter
	aod        model.AODCounter
	reconciler reconcile.Reconciler
	statDir    string
	counter    *stats.Stats
}

func NewEventstat(ctx context.Context, config model.Config, st *stats.Stats) (Eventstat, error) {
	if config.Version != 0 {
		return Eventstat{}, fmt.Errorf("config version %d is not supported, expected 0", config.Version)
	}

	kinematics, err := counter.NewKinematics(config.Kinematics, st)
	if err != nil {
		return Eventstat{}, fmt.Errorf("initializing kinematics counter: %w", err)
	}
	aod, err := counter.NewAOD(config.AODFile, config.Collisions, st)
	if err != nil {
		return Eventstat{}, fmt.Errorf("initializing AO2D counter: %w", err)
	}

	slog.DebugContext(ctx, "eventstat initialized",
		"kine_dir", config.Kinematics.Dir,
		"aod_file", config.AODFile,
		"stat_dir", config.Stat.Dir,
	)
	return Eventstat{
		kinematics: kinematics,
		aod:        aod,
		reconciler: reconcile.New(config.Strict),
		statDir:    config.Stat.Dir,
		counter:    st,
	}, nil
}

// Do counts the events, compares the counts and writes the stat file. The
// messages for the job log go to out. It returns the path of the stat file.
func (e Eventstat) Do(ctx context.Context, out io.Writer) (string, error) {
	defer e.dumpStats(ctx)

	kine, err := e.kinematics.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("counting kinematics events: %w", err)
	}

	aod, err := e.aod.Count(ctx)
	if err != nil {
		return "", err
	}
	if !aod.Found() {
		fmt.Fprintln(out, "ERROR: No MC collision table found")
	}

	rec, recErr := e.reconciler.Reconcile(ctx, kine.Total, aod.Total)
	if !rec.Match {
		fmt.Fprintln(out, "WARN: AO2D MC event count and GEANT event count differ")
	}
	fmt.Fprintf(out, "Found %d events in AO2D file\n", rec.Record)
	if recErr != nil {
		return "", recErr
	}

	path, err := statfile.Write(ctx, e.statDir, rec.Record)
	if err != nil {
		return "", fmt.Errorf("writing stat file: %w", err)
	}
	return path, nil
}

func (e Eventstat) dumpStats(ctx context.Context) {
	if e.counter == nil {
		return
	}
	attrs := make([]any, 0, 8)
	for key, value := range e.counter.Stats() {
		attrs = append(attrs, slog.String(key, value))
	}
	slog.DebugContext(ctx, "stats", attrs...)
}
