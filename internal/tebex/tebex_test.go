package tebex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidID(t *testing.T) {
	valid := []string{"tbx-26929a56124-3f0a99", "tbx-a", "tbx-ABC-123"}
	for _, id := range valid {
		if !ValidID(id) {
			t.Fatalf("%q should be valid", id)
		}
	}
	invalid := []string{"", "tbx-", "26929a56124", "tbx-abc!", "TBX-abc"}
	for _, id := range invalid {
		if ValidID(id) {
			t.Fatalf("%q should be invalid", id)
		}
	}
}

func TestLedgerConsume(t *testing.T) {
	l := NewLedger()
	if _, ok := l.Consume("tbx-one", "u1"); !ok {
		t.Fatalf("first redemption must succeed")
	}
	prev, ok := l.Consume("tbx-one", "u2")
	if ok {
		t.Fatalf("second redemption must fail")
	}
	if prev != "u1" {
		t.Fatalf("expected original redeemer u1, got %s", prev)
	}
	if !l.Consumed("tbx-one") || l.Consumed("tbx-two") {
		t.Fatalf("consumed bookkeeping broken")
	}
}

func TestClientConfirm(t *testing.T) {
	var gotSecret string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Tebex-Secret")
		switch r.URL.Path {
		case "/tbx-complete":
			w.Write([]byte(`{"status":"Complete"}`))
		case "/tbx-refunded":
			w.Write([]byte(`{"status":"Refund"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-key")
	ctx := context.Background()

	if got := c.Confirm(ctx, "tbx-complete"); got != StatusValid {
		t.Fatalf("complete payment = %v, want valid", got)
	}
	if gotSecret != "secret-key" {
		t.Fatalf("secret header not sent")
	}
	if got := c.Confirm(ctx, "tbx-refunded"); got != StatusInvalid {
		t.Fatalf("refunded payment = %v, want invalid", got)
	}
	if got := c.Confirm(ctx, "tbx-missing"); got != StatusInvalid {
		t.Fatalf("unknown payment = %v, want invalid", got)
	}
	if got := c.Confirm(ctx, "not-an-id"); got != StatusInvalid {
		t.Fatalf("malformed id = %v, want invalid", got)
	}
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	srv.Close()

	c := NewClient(srv.URL, "secret")
	if got := c.Confirm(context.Background(), "tbx-any"); got != StatusUnreachable {
		t.Fatalf("dead store = %v, want unreachable", got)
	}
}

func TestVerifierConsumesOnce(t *testing.T) {
	v := NewVerifier(StubConfirmer{})
	ctx := context.Background()

	first := v.Verify(ctx, "tbx-abc-123", "u1")
	if first.Status != StatusValid || first.Duplicated {
		t.Fatalf("first verify = %+v, want valid", first)
	}

	second := v.Verify(ctx, "tbx-abc-123", "u2")
	if second.Status == StatusValid || !second.Duplicated {
		t.Fatalf("second verify = %+v, want duplicate rejection", second)
	}
	if second.AlreadyBy != "u1" {
		t.Fatalf("expected original redeemer u1, got %s", second.AlreadyBy)
	}
}

type unreachableConfirmer struct{}

func (unreachableConfirmer) Confirm(context.Context, string) Status { return StatusUnreachable }

func TestVerifierUnreachableDoesNotConsume(t *testing.T) {
	v := NewVerifier(unreachableConfirmer{})
	ctx := context.Background()

	if got := v.Verify(ctx, "tbx-retry", "u1"); got.Status != StatusUnreachable {
		t.Fatalf("verify = %+v, want unreachable", got)
	}
	if v.ledger.Consumed("tbx-retry") {
		t.Fatalf("unreachable store must not consume the id")
	}

	v.confirmer = StubConfirmer{}
	if got := v.Verify(ctx, "tbx-retry", "u1"); got.Status != StatusValid {
		t.Fatalf("retry after recovery = %+v, want valid", got)
	}
}

func TestVerifierMalformedID(t *testing.T) {
	v := NewVerifier(StubConfirmer{})
	if got := v.Verify(context.Background(), "bogus", "u1"); got.Status != StatusInvalid {
		t.Fatalf("malformed id = %+v, want invalid", got)
	}
}
