package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/domain"
)

func open(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_RoundTripWithNilRTT(t *testing.T) {
	ctx := context.Background()
	s := open(t)

	at := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	rtt := 5.5
	_ = s.Append(ctx, &domain.ProbeResult{
		HostID: "internet", Address: "79.127.78.196",
		RTTMS: &rtt, Classification: domain.Fast, CheckedAt: at,
	})
	err := s.Append(ctx, &domain.ProbeResult{
		HostID: "internet", Address: "79.127.78.196",
		Classification: domain.Disconnected, Reason: "timeout",
		CheckedAt: at.Add(5 * time.Second),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	last, err := s.LastByHost(ctx, "internet")
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if last == nil || last.Classification != domain.Disconnected {
		t.Fatalf("want disconnected result, got %+v", last)
	}
	if last.RTTMS != nil {
		t.Fatalf("want nil rtt, got %v", *last.RTTMS)
	}
	if last.Reason != "timeout" {
		t.Fatalf("want reason timeout, got %q", last.Reason)
	}

	rs, err := s.Recent(ctx, "internet", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("want 2 results, got %d", len(rs))
	}
	if rs[0].RTTMS == nil || *rs[0].RTTMS != 5.5 {
		t.Fatalf("oldest first with rtt 5.5, got %+v", rs[0])
	}
}

func TestStore_LastByHost_Empty(t *testing.T) {
	s := open(t)
	got, err := s.LastByHost(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("want nil for unknown host, got %+v", got)
	}
}

func TestStore_Cleanup(t *testing.T) {
	ctx := context.Background()
	s := open(t)

	old := time.Now().UTC().Add(-48 * time.Hour)
	fresh := time.Now().UTC()
	_ = s.Append(ctx, &domain.ProbeResult{HostID: "h", Address: "a", Classification: domain.Disconnected, CheckedAt: old})
	_ = s.Append(ctx, &domain.ProbeResult{HostID: "h", Address: "a", Classification: domain.Disconnected, CheckedAt: fresh})

	if err := s.Cleanup(ctx, time.Now().UTC().Add(-24*time.Hour)); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	rs, err := s.Recent(ctx, "h", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 1 {
		t.Fatalf("want only fresh result after cleanup, got %d", len(rs))
	}
}
