package counter

import (
	"context"
	"iter"
	"log/slog"

	"github.com/AliceO2Group/eventstat/internal/log"
	"github.com/AliceO2Group/eventstat/internal/model"
	"github.com/AliceO2Group/eventstat/internal/rootfile"
	"github.com/AliceO2Group/eventstat/internal/stats"
	"github.com/AliceO2Group/eventstat/internal/walk"
)

// Kinematics counts the events of the GEANT kinematics files found by a
// recursive scan of a directory. Files which can't be opened or lack the
// event tree contribute zero.
type Kinematics struct {
	dir     string
	pattern walk.Pattern
	exclude []string
	tree    string
	counter *stats.Stats
}

var _ model.KinematicsCounter = Kinematics{}

func NewKinematics(cfg model.Kinematics, counter *stats.Stats) (Kinematics, error) {
	pattern, err := walk.NewPattern(cfg.Pattern)
	if err != nil {
		return Kinematics{}, err
	}
	return Kinematics{
		dir:     cfg.Dir,
		pattern: pattern,
		exclude: cfg.Exclude,
		tree:    cfg.Tree,
		counter: counter,
	}, nil
}

func (k Kinematics) Count(ctx context.Context) (model.KinematicsResult, error) {
	ctx = log.ContextAttrs(ctx, slog.String("counter", "kinematics"))
	return k.CountFiles(ctx, walk.Dir(ctx, k.counter, k.dir, k.pattern, k.exclude))
}

// CountFiles sums the event trees of all matches. Each file is closed
// before the next one is opened.
func (k Kinematics) CountFiles(ctx context.Context, matches iter.Seq[model.FileMatch]) (model.KinematicsResult, error) {
	var ret model.KinematicsResult
	for match := range matches {
		if err := ctx.Err(); err != nil {
			return ret, err
		}
		tc := k.CountFile(ctx, match.Path)
		ret.Files = append(ret.Files, tc)
		ret.Total += tc.Entries
	}
	if err := ctx.Err(); err != nil {
		return ret, err
	}
	slog.DebugContext(ctx, "kinematics counted", "files", len(ret.Files), "skipped", ret.Skipped(), "events", uint64(ret.Total))
	return ret, nil
}

// CountFile returns the number of entries of the event tree in path.
func (k Kinematics) CountFile(ctx context.Context, path string) model.TableCount {
	f, err := rootfile.Open(path)
	if err != nil {
		k.counter.IncErrContainers()
		slog.WarnContext(ctx, "can't open kinematics file, skipping", "path", path, "error", err)
		return model.TableCount{Path: path, Name: k.tree, Status: model.StatusOpenFailed, Err: err}
	}
	k.counter.IncContainers()
	defer closeFile(ctx, f)

	tc := f.EntryCount(k.tree)
	record(ctx, k.counter, tc)
	return tc
}
