package counter

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/AliceO2Group/eventstat/internal/log"
	"github.com/AliceO2Group/eventstat/internal/model"
	"github.com/AliceO2Group/eventstat/internal/rootfile"
	"github.com/AliceO2Group/eventstat/internal/stats"
)

// AOD counts the MC collisions stored in an AO2D file. The file holds one
// directory per merged data frame (DF_<id>), each with a versioned
// O2mccollision tree.
type AOD struct {
	path    string
	prefix  string
	table   *regexp.Regexp
	counter *stats.Stats
}

var _ model.AODCounter = AOD{}

func NewAOD(path string, cfg model.Collisions, counter *stats.Stats) (AOD, error) {
	table, err := regexp.Compile(cfg.TablePattern)
	if err != nil {
		return AOD{}, fmt.Errorf("compiling table pattern %q: %w", cfg.TablePattern, err)
	}
	return AOD{
		path:    path,
		prefix:  cfg.GroupPrefix,
		table:   table,
		counter: counter,
	}, nil
}

// Count sums the entries of all collision tables across all data frame
// groups. It fails only if the file can't be read. A file without any
// collision table is logged and yields zero.
func (a AOD) Count(ctx context.Context) (model.AODResult, error) {
	ctx = log.ContextAttrs(ctx, slog.String("counter", "aod"))
	ret := model.AODResult{Path: a.path}

	f, err := rootfile.Open(a.path)
	if err != nil {
		a.counter.IncErrContainers()
		return ret, fmt.Errorf("reading AO2D file: %w", err)
	}
	a.counter.IncContainers()
	defer closeFile(ctx, f)

	groups, err := f.Groups(ctx, a.prefix)
	if err != nil {
		return ret, fmt.Errorf("reading AO2D file: %w", err)
	}
	ret.Groups = len(groups)

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return ret, err
		}
		for _, name := range group.Tables(a.table) {
			tc := group.EntryCount(name)
			record(ctx, a.counter, tc)
			ret.Tables = append(ret.Tables, tc)
			ret.Total += tc.Entries
		}
	}

	if !ret.Found() {
		slog.ErrorContext(ctx, "no MC collision table found", "path", a.path, "groups", ret.Groups)
		return ret, nil
	}
	slog.DebugContext(ctx, "AO2D counted", "path", a.path, "groups", ret.Groups, "tables", len(ret.Tables), "events", uint64(ret.Total))
	return ret, nil
}
