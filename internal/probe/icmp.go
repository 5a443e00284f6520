package probe

import (
	"context"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/domain"
)

// ICMPProber sends one echo request per probe. Unprivileged mode uses
// UDP datagram sockets so the monitor can run without root on Linux
// (needs net.ipv4.ping_group_range to include the user's group).
type ICMPProber struct {
	Timeout    time.Duration
	Privileged bool
}

func NewICMPProber(timeout time.Duration, privileged bool) *ICMPProber {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &ICMPProber{Timeout: timeout, Privileged: privileged}
}

func (p *ICMPProber) Probe(ctx context.Context, h domain.Host) Outcome {
	pinger, err := probing.NewPinger(h.Address)
	if err != nil {
		return failed(err.Error())
	}
	pinger.Count = 1
	pinger.Timeout = p.Timeout
	pinger.SetPrivileged(p.Privileged)

	if err := pinger.RunWithContext(ctx); err != nil {
		return failed(err.Error())
	}
	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return failed("timeout")
	}
	rtt := float64(stats.AvgRtt) / float64(time.Millisecond)
	return Outcome{OK: true, RTTMS: &rtt}
}
