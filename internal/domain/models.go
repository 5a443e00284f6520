package domain

import (
	"strings"
	"time"
)

type HostID string

// Host is a monitored network endpoint. Immutable once configured.
type Host struct {
	ID      HostID `json:"id"`
	Label   string `json:"label"`
	Address string `json:"address"`
	Probe   string `json:"probe"` // "icmp" or "tcp"
	Port    int    `json:"port,omitempty"`
}

// SlugID derives a stable host ID from its label.
func SlugID(label string) HostID {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)
	return HostID(strings.Trim(s, "-"))
}

// ProbeResult is one measurement for one host. Append-only, never mutated.
type ProbeResult struct {
	HostID         HostID         `json:"host_id"`
	Address        string         `json:"address"`
	RTTMS          *float64       `json:"rtt_ms"` // nil when the probe failed
	Classification Classification `json:"classification"`
	Reason         string         `json:"reason,omitempty"`
	CheckedAt      time.Time      `json:"checked_at"`
}
