package repo_test

import (
	"testing"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/domain"
	"github.com/Yunis-rgbdev/crmmonitoring/internal/repo"
	"github.com/Yunis-rgbdev/crmmonitoring/internal/repo/memory"
	"github.com/Yunis-rgbdev/crmmonitoring/internal/repo/sqlite"
)

// Compile-time interface satisfaction for both adapters.
func TestInterfaceSatisfaction(t *testing.T) {
	var _ repo.ResultStore = memory.New()
	var _ repo.ResultStore = (*sqlite.Store)(nil)
}

func TestAvgRTT(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	if got := repo.AvgRTT(nil); got != nil {
		t.Fatalf("empty window: want nil, got %v", *got)
	}
	if got := repo.AvgRTT([]domain.ProbeResult{{RTTMS: nil}, {RTTMS: nil}}); got != nil {
		t.Fatalf("all failed: want nil, got %v", *got)
	}
	got := repo.AvgRTT([]domain.ProbeResult{
		{RTTMS: f(10)}, {RTTMS: nil}, {RTTMS: f(30)},
	})
	if got == nil || *got != 20 {
		t.Fatalf("want avg 20 over successful samples, got %v", got)
	}
}
