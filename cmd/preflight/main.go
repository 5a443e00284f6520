package main

import (
	"fmt"
	"net"
	"os"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/config"
)

// preflight validates the configuration and reports anything that will
// bite at runtime before the monitor is started for the first time.
func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.Load()
	if err != nil {
		fail(err.Error())
	}
	ok(fmt.Sprintf("config valid: %d host(s)", len(cfg.Hosts)))

	for _, h := range cfg.Hosts {
		if ip := net.ParseIP(h.Address); ip == nil {
			warn(fmt.Sprintf("host %q address %q is not an IP; it will be resolved on every probe", h.Label, h.Address))
		}
	}

	if cfg.Probe.Unprivileged {
		ok("unprivileged ICMP (UDP) mode")
		warn("on Linux, make sure net.ipv4.ping_group_range includes your group, or set probe.unprivileged: false and run with CAP_NET_RAW")
	} else {
		warn("privileged ICMP mode needs root or CAP_NET_RAW")
	}

	if cfg.Thresholds.FastMS >= 1000 {
		warn(fmt.Sprintf("thresholds.fast_ms=%v is very high; most hosts will classify as fast", cfg.Thresholds.FastMS))
	}
	if cfg.Alerts.RepeatEvery > 0 && cfg.Alerts.RepeatEvery < cfg.Poll.Interval {
		warn("alerts.repeat_every is shorter than poll.interval; repeats can only fire once per tick anyway")
	}

	if cfg.Storage.Path == "" {
		warn("storage.path empty — probe history is kept in memory only")
	} else {
		ok("sqlite history at " + cfg.Storage.Path)
	}
	if !cfg.Notify.Desktop && cfg.Notify.SlackWebhook == "" {
		warn("all notification sinks disabled — state changes will only reach the dashboard and logs")
	}

	ok("preflight passed")
}
