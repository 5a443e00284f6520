package monitor

import (
	"time"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/domain"
)

// HostStatus is one host's slice of a snapshot: current classification
// plus the rolling average the original tool showed next to each dot.
type HostStatus struct {
	ID             domain.HostID         `json:"id"`
	Label          string                `json:"label"`
	Address        string                `json:"address"`
	Classification domain.Classification `json:"classification"`
	Color          string                `json:"color"`
	RTTMS          *float64              `json:"rtt_ms"`
	AvgRTTMS       *float64              `json:"avg_rtt_ms"`
	Reason         string                `json:"reason,omitempty"`
	CheckedAt      time.Time             `json:"checked_at"`
}

// Snapshot is what the display sink receives once per tick.
type Snapshot struct {
	Overall      domain.Classification `json:"overall"`
	OverallColor string                `json:"overall_color"`
	Hosts        []HostStatus          `json:"hosts"`
	At           time.Time             `json:"at"`
}
