// Package counter sums simulated collisions recorded in kinematics and
// AO2D files.
package counter

import (
	"context"
	"log/slog"

	"github.com/AliceO2Group/eventstat/internal/model"
	"github.com/AliceO2Group/eventstat/internal/rootfile"
	"github.com/AliceO2Group/eventstat/internal/stats"
)

// record updates the stats and logs the outcome of a single table count
func record(ctx context.Context, counter *stats.Stats, tc model.TableCount) {
	if tc.Counted() {
		counter.IncCountedTables()
		slog.DebugContext(ctx, "table counted", "path", tc.Path, "table", tc.Name, "entries", uint64(tc.Entries))
		return
	}
	counter.IncSkippedTables()
	slog.WarnContext(ctx, "table skipped", "path", tc.Path, "table", tc.Name, "status", tc.Status.String(), "error", tc.Err)
}

func closeFile(ctx context.Context, f *rootfile.File) {
	if err := f.Close(); err != nil {
		slog.WarnContext(ctx, "can't close file", "path", f.Path(), "error", err)
	}
}
