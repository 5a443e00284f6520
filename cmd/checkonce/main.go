package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/config"
	"github.com/Yunis-rgbdev/crmmonitoring/internal/domain"
	"github.com/Yunis-rgbdev/crmmonitoring/internal/probe"
)

// checkonce probes every configured host a single time and prints the
// classification per host. Exit code 1 when anything is disconnected.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	sel := &probe.Selector{
		ICMP: probe.NewICMPProber(cfg.Poll.Timeout, !cfg.Probe.Unprivileged),
		TCP:  probe.NewTCPProber(cfg.Poll.Timeout),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	anyDown := false
	for _, h := range cfg.DomainHosts() {
		out := sel.Probe(ctx, h)
		class := domain.Classify(out.RTTMS, out.OK, cfg.Thresholds.FastMS)
		if class == domain.Disconnected {
			anyDown = true
		}

		rtt := "n/a"
		if out.RTTMS != nil {
			rtt = fmt.Sprintf("%.1f ms", *out.RTTMS)
		}
		line := fmt.Sprintf("%-16s %-16s %-12s %s", h.Label, h.Address, class, rtt)
		if out.Reason != "" {
			line += "  (" + out.Reason + ")"
		}
		fmt.Println(line)
	}

	if anyDown {
		os.Exit(1)
	}
}
