package repo

import (
	"context"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/domain"
)

// ResultStore is the port for probe-result history. Adapters: memory
// (default) and sqlite (survives restarts).
type ResultStore interface {
	// Append records one result. Results are immutable once stored.
	Append(ctx context.Context, r *domain.ProbeResult) error
	// LastByHost returns nil, nil when the host has no results yet.
	LastByHost(ctx context.Context, id domain.HostID) (*domain.ProbeResult, error)
	// Recent returns up to n results for a host, oldest first.
	Recent(ctx context.Context, id domain.HostID, n int) ([]domain.ProbeResult, error)
}

// AvgRTT averages the successful samples in a result window. Returns
// nil when no sample carries an RTT, mirroring the original tool's
// "N/A" average over its 5-sample window.
func AvgRTT(results []domain.ProbeResult) *float64 {
	var sum float64
	var n int
	for _, r := range results {
		if r.RTTMS != nil {
			sum += *r.RTTMS
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}
