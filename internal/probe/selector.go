package probe

import (
	"context"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/domain"
)

// Selector routes each host to the prober matching its configured
// transport. Hosts with an unrecognized transport fall back to ICMP.
type Selector struct {
	ICMP Prober
	TCP  Prober
}

func (s *Selector) Probe(ctx context.Context, h domain.Host) Outcome {
	if h.Probe == "tcp" && s.TCP != nil {
		return s.TCP.Probe(ctx, h)
	}
	return s.ICMP.Probe(ctx, h)
}
