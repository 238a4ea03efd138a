package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_dGVzdC1zaWduaW5nLXNlY3JldA==" // "test-signing-secret"

// signPayload computes a valid v1 signature the way the provider does.
func signPayload(t *testing.T, secret string, msgID, timestamp string, payload []byte) string {
	t.Helper()

	key, err := base64.StdEncoding.DecodeString(secret[len("whsec_"):])
	require.NoError(t, err)

	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.%s", msgID, timestamp, payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func newTestVerifier(t *testing.T, at time.Time) *Verifier {
	t.Helper()

	v, err := NewVerifier(testSecret)
	require.NoError(t, err)
	v.now = func() time.Time { return at }
	return v
}

func TestNewVerifier(t *testing.T) {
	t.Run("valid secret", func(t *testing.T) {
		v, err := NewVerifier(testSecret)
		require.NoError(t, err)
		assert.NotNil(t, v)
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := NewVerifier("")
		assert.Error(t, err)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := NewVerifier("whsec_not!!valid!!base64")
		assert.Error(t, err)
	})
}

func TestVerifier_Verify(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"type":"email.received","data":{"email_id":"em_1"}}`)
	msgID := "msg_2KWPBgLlAfxdpx2AI54pPJ85f4W"
	timestamp := strconv.FormatInt(now.Unix(), 10)

	t.Run("valid signature", func(t *testing.T) {
		v := newTestVerifier(t, now)
		sig := signPayload(t, testSecret, msgID, timestamp, payload)
		assert.NoError(t, v.Verify(payload, msgID, timestamp, sig))
	})

	t.Run("multiple signatures with one valid", func(t *testing.T) {
		v := newTestVerifier(t, now)
		sig := signPayload(t, testSecret, msgID, timestamp, payload)
		combined := "v1,Zm9yZ2VkLXNpZ25hdHVyZQ== " + sig
		assert.NoError(t, v.Verify(payload, msgID, timestamp, combined))
	})

	t.Run("wrong signature", func(t *testing.T) {
		v := newTestVerifier(t, now)
		err := v.Verify(payload, msgID, timestamp, "v1,Zm9yZ2VkLXNpZ25hdHVyZQ==")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("tampered payload", func(t *testing.T) {
		v := newTestVerifier(t, now)
		sig := signPayload(t, testSecret, msgID, timestamp, payload)
		err := v.Verify([]byte(`{"type":"email.received"}`), msgID, timestamp, sig)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("missing headers", func(t *testing.T) {
		v := newTestVerifier(t, now)
		assert.ErrorIs(t, v.Verify(payload, "", timestamp, "v1,sig"), ErrMissingHeaders)
		assert.ErrorIs(t, v.Verify(payload, msgID, "", "v1,sig"), ErrMissingHeaders)
		assert.ErrorIs(t, v.Verify(payload, msgID, timestamp, ""), ErrMissingHeaders)
	})

	t.Run("non numeric timestamp", func(t *testing.T) {
		v := newTestVerifier(t, now)
		err := v.Verify(payload, msgID, "not-a-number", "v1,sig")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		v := newTestVerifier(t, now)
		old := strconv.FormatInt(now.Add(-10*time.Minute).Unix(), 10)
		sig := signPayload(t, testSecret, msgID, old, payload)
		err := v.Verify(payload, msgID, old, sig)
		assert.ErrorIs(t, err, ErrStaleTimestamp)
	})

	t.Run("future timestamp", func(t *testing.T) {
		v := newTestVerifier(t, now)
		future := strconv.FormatInt(now.Add(10*time.Minute).Unix(), 10)
		sig := signPayload(t, testSecret, msgID, future, payload)
		err := v.Verify(payload, msgID, future, sig)
		assert.ErrorIs(t, err, ErrStaleTimestamp)
	})

	t.Run("unknown signature version skipped", func(t *testing.T) {
		v := newTestVerifier(t, now)
		sig := signPayload(t, testSecret, msgID, timestamp, payload)
		v2 := "v2" + sig[2:]
		err := v.Verify(payload, msgID, timestamp, v2)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})
}
