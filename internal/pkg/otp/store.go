package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Store holds pending login codes keyed by lowercased email. Codes live in
// process memory only: a restart invalidates every pending code, which is
// acceptable here because the user simply requests a new one. At most one
// code is pending per email; issuing again replaces the previous code.
//
// Expiry is lazy — an expired record is evicted the first time it is looked
// up, never by a background sweeper.
type Store struct {
	mu      sync.Mutex
	pending map[string]pendingCode
	ttl     time.Duration

	// fixed maps emails to a code that is always issued and accepted for
	// that account, bypassing the pending map entirely. Populated from
	// configuration for demo/test accounts; empty in normal operation.
	fixed map[string]string

	now func() time.Time // overridable in tests
}

type pendingCode struct {
	code      string
	expiresAt time.Time
}

// NewStore creates a Store with the given code TTL. fixedCodes may be nil;
// its keys are normalized to lower case.
func NewStore(ttl time.Duration, fixedCodes map[string]string) *Store {
	fixed := make(map[string]string, len(fixedCodes))
	for email, code := range fixedCodes {
		fixed[strings.ToLower(email)] = code
	}
	return &Store{
		pending: make(map[string]pendingCode),
		ttl:     ttl,
		fixed:   fixed,
		now:     time.Now,
	}
}

// Issue generates a 4-digit code for the email and records it with a fresh
// expiry, replacing any code already pending for that email. For fixed-code
// accounts the configured code is returned and nothing is recorded.
func (s *Store) Issue(email string) (string, error) {
	key := strings.ToLower(email)
	if code, ok := s.fixed[key]; ok {
		return code, nil
	}

	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	code := strconv.FormatInt(1000+n.Int64(), 10)

	s.mu.Lock()
	s.pending[key] = pendingCode{code: code, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return code, nil
}

// VerifyAndConsume checks the submitted code for the email. A match deletes
// the pending record and returns true. No record, an expired record (deleted
// on sight), or a mismatch all return false; a mismatch leaves the record in
// place so the user can retry within the TTL window.
func (s *Store) VerifyAndConsume(email, code string) bool {
	key := strings.ToLower(email)
	if fixed, ok := s.fixed[key]; ok {
		return code == fixed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[key]
	if !ok {
		return false
	}
	if !s.now().Before(p.expiresAt) {
		delete(s.pending, key)
		return false
	}
	if p.code != code {
		return false
	}
	delete(s.pending, key)
	return true
}

// Peek returns the pending code for the email without consuming it, honoring
// the same lazy expiry as VerifyAndConsume. It exists for the development
// send-otp response path and must not be exposed to clients in production:
// reading a code without consuming it defeats the one-time property.
func (s *Store) Peek(email string) (string, bool) {
	key := strings.ToLower(email)
	if code, ok := s.fixed[key]; ok {
		return code, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[key]
	if !ok {
		return "", false
	}
	if !s.now().Before(p.expiresAt) {
		delete(s.pending, key)
		return "", false
	}
	return p.code, true
}
