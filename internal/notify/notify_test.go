package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

type fakeSink struct {
	n   int
	err error
}

func (f *fakeSink) Send(ctx context.Context, title, text string) error {
	f.n++
	return f.err
}

func TestMulti_SendsToAllEvenOnFailure(t *testing.T) {
	a := &fakeSink{err: errors.New("a down")}
	b := &fakeSink{}
	c := &fakeSink{err: errors.New("c down")}

	err := Multi{a, nil, b, c}.Send(context.Background(), "t", "x")
	if a.n != 1 || b.n != 1 || c.n != 1 {
		t.Fatalf("every sink should be attempted: a=%d b=%d c=%d", a.n, b.n, c.n)
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Fatalf("want both failures reported, got %d (%v)", got, err)
	}
}

func TestMulti_NoSinksNoError(t *testing.T) {
	if err := (Multi{}).Send(context.Background(), "t", "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSlack_OK(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		got = payload["text"]
		w.WriteHeader(200)
	}))
	defer ts.Close()

	s := NewSlack(ts.URL)
	if s == nil {
		t.Fatal("expected slack client")
	}
	if err := s.Send(context.Background(), "VoIP is now disconnected", "no reply in 2s"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.HasPrefix(got, "*VoIP is now disconnected*") {
		t.Fatalf("payload not as expected: %q", got)
	}
}

func TestSlack_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer ts.Close()

	if err := NewSlack(ts.URL).Send(context.Background(), "X", "Y"); err == nil {
		t.Fatal("expected error on non-2xx")
	}
}

func TestNewSlack_EmptyWebhookDisabled(t *testing.T) {
	if s := NewSlack(""); s != nil {
		t.Fatal("want nil for empty webhook")
	}
}
