package probe

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/domain"
)

// TCPProber measures RTT as connect time to host:port. Useful where
// ICMP is filtered (some VPN and office networks).
type TCPProber struct {
	Timeout time.Duration
	Dialer  *net.Dialer
}

func NewTCPProber(timeout time.Duration) *TCPProber {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &TCPProber{
		Timeout: timeout,
		Dialer:  &net.Dialer{Timeout: timeout},
	}
}

func (p *TCPProber) Probe(ctx context.Context, h domain.Host) Outcome {
	port := h.Port
	if port == 0 {
		port = 53
	}
	addr := net.JoinHostPort(h.Address, strconv.Itoa(port))

	cctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	started := time.Now()
	conn, err := p.Dialer.DialContext(cctx, "tcp", addr)
	if err != nil {
		return failed(err.Error())
	}
	rtt := float64(time.Since(started)) / float64(time.Millisecond)
	_ = conn.Close()
	return Outcome{OK: true, RTTMS: &rtt}
}
