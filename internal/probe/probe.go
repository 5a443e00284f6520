package probe

import (
	"context"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/domain"
)

// Outcome is the unified result of a single reachability probe.
// RTTMS is nil whenever OK is false; Reason carries the failure detail
// (timeout, unreachable, resolution error) for logging.
type Outcome struct {
	OK     bool
	RTTMS  *float64
	Reason string
}

// Prober performs one reachability check against a host. A failed
// probe is a normal Outcome, not an error: the monitor loop never
// stops because a host is down.
type Prober interface {
	Probe(ctx context.Context, h domain.Host) Outcome
}

func failed(reason string) Outcome {
	return Outcome{OK: false, Reason: reason}
}
