package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Signature transport headers. The provider signs deliveries with the
// Svix scheme: HMAC-SHA256 over "{id}.{timestamp}.{payload}".
const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"
)

// signingSecretPrefix marks a base64-encoded signing secret.
const signingSecretPrefix = "whsec_"

// defaultTolerance bounds how stale a signed timestamp may be.
const defaultTolerance = 5 * time.Minute

// Verification errors
var (
	ErrMissingHeaders   = errors.New("missing signature headers")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrStaleTimestamp   = errors.New("webhook timestamp outside tolerance")
)

// Verifier checks webhook delivery signatures against a shared secret.
type Verifier struct {
	key       []byte
	tolerance time.Duration
	// now is swapped in tests
	now func() time.Time
}

// NewVerifier creates a Verifier from a whsec_-prefixed signing secret.
func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret is required")
	}

	encoded := strings.TrimPrefix(secret, signingSecretPrefix)
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid signing secret: %w", err)
	}

	return &Verifier{
		key:       key,
		tolerance: defaultTolerance,
		now:       time.Now,
	}, nil
}

// Verify checks the signature of a raw payload given the three transport
// header values. All three must be present; any absence, a stale
// timestamp, or a failed signature check is an authentication error.
func (v *Verifier) Verify(payload []byte, msgID, timestamp, signature string) error {
	if msgID == "" || timestamp == "" || signature == "" {
		return ErrMissingHeaders
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad timestamp", ErrInvalidSignature)
	}

	signedAt := time.Unix(ts, 0)
	now := v.now()
	if signedAt.Before(now.Add(-v.tolerance)) || signedAt.After(now.Add(v.tolerance)) {
		return ErrStaleTimestamp
	}

	expected := v.sign(msgID, timestamp, payload)

	// The header may carry several space-separated versioned signatures;
	// any matching v1 signature authenticates the delivery.
	for _, part := range strings.Split(signature, " ") {
		version, sig, found := strings.Cut(part, ",")
		if !found || version != "v1" {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) == 1 {
			return nil
		}
	}

	return ErrInvalidSignature
}

// sign computes the base64 HMAC-SHA256 signature of one delivery.
func (v *Verifier) sign(msgID, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, v.key)
	mac.Write([]byte(msgID))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
