package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func msp(v float64) *float64 { return &v }

func TestClassify_ThresholdRule(t *testing.T) {
	cases := []struct {
		name string
		rtt  *float64
		ok   bool
		want Classification
	}{
		{"below threshold", msp(5), true, Fast},
		{"just under", msp(99.9), true, Fast},
		{"at threshold", msp(100), true, Slow},
		{"above threshold", msp(1500), true, Slow},
		{"no response", nil, false, Disconnected},
		{"error with stale rtt", msp(50), false, Disconnected},
		{"ok but no rtt parsed", nil, true, Disconnected},
	}
	for _, c := range cases {
		if got := Classify(c.rtt, c.ok, 100); got != c.want {
			t.Errorf("%s: want %s, got %s", c.name, c.want, got)
		}
	}
}

func TestClassification_Color(t *testing.T) {
	want := map[Classification]string{
		Fast:         "#00FF00",
		Slow:         "#FFFF00",
		Disconnected: "#FF0000",
		Unknown:      "#808080",
	}
	for c, color := range want {
		if got := c.Color(); got != color {
			t.Errorf("%s: want %s, got %s", c, color, got)
		}
	}
}

func TestOverall(t *testing.T) {
	cases := []struct {
		name string
		in   []Classification
		want Classification
	}{
		{"empty", nil, Unknown},
		{"all fast", []Classification{Fast, Fast}, Fast},
		{"one slow", []Classification{Fast, Slow}, Slow},
		{"one unknown", []Classification{Fast, Unknown}, Unknown},
		{"down wins over unknown", []Classification{Unknown, Disconnected}, Disconnected},
		{"down wins over all", []Classification{Fast, Slow, Disconnected}, Disconnected},
	}
	for _, c := range cases {
		if got := Overall(c.in); got != c.want {
			t.Errorf("%s: want %s, got %s", c.name, c.want, got)
		}
	}
}

func TestSlugID(t *testing.T) {
	cases := map[string]HostID{
		"Internet":     "internet",
		"VoIP Gateway": "voip-gateway",
		"  WireGuard ": "wireguard",
		"db #2":        "db--2",
	}
	for in, want := range cases {
		if got := SlugID(in); got != want {
			t.Errorf("SlugID(%q): want %q, got %q", in, want, got)
		}
	}
}

func TestProbeResult_JSONKeepsNilRTT(t *testing.T) {
	r := ProbeResult{
		HostID:         "voip",
		Address:        "10.60.0.4",
		RTTMS:          nil,
		Classification: Disconnected,
		Reason:         "timeout",
		CheckedAt:      time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got ProbeResult
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.RTTMS != nil {
		t.Fatalf("want nil rtt after round-trip, got %v", *got.RTTMS)
	}
	if got.Classification != Disconnected || got.Reason != "timeout" {
		t.Fatalf("mismatch: %+v", got)
	}
}
