// Package reconcile compares the kinematics and AO2D event counts.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AliceO2Group/eventstat/internal/model"
)

// ErrMismatch is returned in strict mode when the two counts differ.
var ErrMismatch = errors.New("AO2D MC event count and GEANT event count differ")

// Reconciler compares the counts. The AO2D count is always the figure of
// record, the kinematics files are an intermediate product and may differ
// legitimately (e.g. event filtering before the AO2D stage).
type Reconciler struct {
	strict bool
}

// New returns a Reconciler. When strict is true, a mismatch is an error.
func New(strict bool) Reconciler {
	return Reconciler{strict: strict}
}

func (r Reconciler) Reconcile(ctx context.Context, kinematics, aod model.EventCount) (model.Reconciliation, error) {
	ret := model.Reconciliation{
		Kinematics: kinematics,
		AOD:        aod,
		Record:     aod,
		Match:      kinematics == aod,
	}
	if ret.Match {
		slog.DebugContext(ctx, "event counts match", "events", uint64(aod))
		return ret, nil
	}

	slog.WarnContext(ctx, "event counts differ",
		"kinematics", uint64(kinematics),
		"aod", uint64(aod),
		"strict", r.strict,
	)
	if r.strict {
		return ret, fmt.Errorf("%w: kinematics=%d aod=%d", ErrMismatch, kinematics, aod)
	}
	return ret, nil
}
