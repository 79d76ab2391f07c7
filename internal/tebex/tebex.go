// Package tebex verifies store transaction IDs against the Tebex plugin
// API and tracks which IDs have already been redeemed.
package tebex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
)

// idPattern matches transaction IDs as issued by the store, e.g.
// tbx-26929a56124-3f0a99.
var idPattern = regexp.MustCompile(`^tbx-[a-zA-Z0-9-]+$`)

// ValidID reports whether the string is shaped like a transaction ID.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Status is the outcome of a verification attempt.
type Status int

const (
	// StatusValid means the store confirmed a completed payment.
	StatusValid Status = iota
	// StatusInvalid means the ID is malformed, unknown to the store, or
	// belongs to a payment that was not completed.
	StatusInvalid
	// StatusUnreachable means the store could not be consulted. The ID is
	// not consumed so the user can retry later.
	StatusUnreachable
)

// Ledger remembers which transaction IDs have been redeemed. State lives
// in memory only, so a restart allows re-verification.
type Ledger struct {
	mu       sync.Mutex
	consumed map[string]string
}

func NewLedger() *Ledger {
	return &Ledger{consumed: make(map[string]string)}
}

// Consume marks the ID as redeemed by the given user. It returns false if
// the ID was already redeemed, along with the redeeming user's ID.
func (l *Ledger) Consume(id, userID string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if prev, ok := l.consumed[id]; ok {
		return prev, false
	}
	l.consumed[id] = userID
	return userID, true
}

// Consumed reports whether the ID has been redeemed.
func (l *Ledger) Consumed(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.consumed[id]
	return ok
}

// Confirmer answers whether a transaction ID corresponds to a completed
// payment.
type Confirmer interface {
	Confirm(ctx context.Context, id string) Status
}

// Client confirms transactions against the Tebex plugin API using the
// store's secret key.
type Client struct {
	endpoint string
	secret   string
	http     *http.Client
}

func NewClient(endpoint, secret string) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		secret:   secret,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type paymentResponse struct {
	Status string `json:"status"`
}

// Confirm looks the transaction up by ID. Only a payment the store reports
// as Complete counts as valid.
func (c *Client) Confirm(ctx context.Context, id string) Status {
	if !ValidID(id) {
		return StatusInvalid
	}
	url := fmt.Sprintf("%s/%s", c.endpoint, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return StatusUnreachable
	}
	req.Header.Set("X-Tebex-Secret", c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return StatusUnreachable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var payment paymentResponse
		if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
			return StatusUnreachable
		}
		if strings.EqualFold(payment.Status, "Complete") {
			return StatusValid
		}
		return StatusInvalid
	case resp.StatusCode == http.StatusNotFound:
		return StatusInvalid
	default:
		return StatusUnreachable
	}
}

// StubConfirmer accepts any well-formed transaction ID. Used when no store
// secret is configured.
type StubConfirmer struct{}

func (StubConfirmer) Confirm(_ context.Context, id string) Status {
	if ValidID(id) {
		return StatusValid
	}
	return StatusInvalid
}

// Verifier combines a confirmer with the redemption ledger.
type Verifier struct {
	confirmer Confirmer
	ledger    *Ledger
}

func NewVerifier(confirmer Confirmer) *Verifier {
	return &Verifier{confirmer: confirmer, ledger: NewLedger()}
}

// Result is the outcome of a full verification, including redemption
// bookkeeping.
type Result struct {
	Status     Status
	AlreadyBy  string
	Duplicated bool
}

// Verify checks the ID, consults the store, and consumes the ID on
// success. A duplicate redemption is reported even when the store would
// still confirm the payment.
func (v *Verifier) Verify(ctx context.Context, id, userID string) Result {
	if !ValidID(id) {
		return Result{Status: StatusInvalid}
	}
	if v.ledger.Consumed(id) {
		prev, _ := v.ledger.Consume(id, userID)
		return Result{Status: StatusInvalid, AlreadyBy: prev, Duplicated: true}
	}
	status := v.confirmer.Confirm(ctx, id)
	if status != StatusValid {
		return Result{Status: status}
	}
	if prev, ok := v.ledger.Consume(id, userID); !ok {
		return Result{Status: StatusInvalid, AlreadyBy: prev, Duplicated: true}
	}
	return Result{Status: StatusValid}
}
