package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Signer errors distinguished by the confirmation endpoint.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// ConfirmationSigner creates and validates the signed tokens embedded in
// student confirmation links.
type ConfirmationSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewConfirmationSigner constructs a signer. The salt namespaces the
// signing key so confirmation tokens cannot double as access tokens.
func NewConfirmationSigner(secret, salt string, ttl time.Duration) *ConfirmationSigner {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &ConfirmationSigner{
		secret: []byte(secret + "|" + salt),
		ttl:    ttl,
	}
}

// Generate returns a signed token referencing the job.
func (s *ConfirmationSigner) Generate(jobID string) (string, time.Time, error) {
	if jobID == "" {
		return "", time.Time{}, fmt.Errorf("jobID required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := time.Now().Add(s.ttl)
	payload := fmt.Sprintf("%s|%d", jobID, expiresAt.Unix())
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(payload))
	signature := hex.EncodeToString(mac.Sum(nil))
	token := strings.Join([]string{jobID, strconv.FormatInt(expiresAt.Unix(), 10), signature}, ".")
	return token, expiresAt, nil
}

// Parse validates a token and returns the embedded job id. Expiry is
// reported as ErrTokenExpired only after the signature checks out, so a
// forged timestamp cannot probe for valid job ids.
func (s *ConfirmationSigner) Parse(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", ErrTokenInvalid
	}
	jobID, ts, signature := parts[0], parts[1], parts[2]

	expUnix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return "", ErrTokenInvalid
	}

	payload := fmt.Sprintf("%s|%s", jobID, ts)
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return "", ErrTokenInvalid
	}
	if time.Now().After(time.Unix(expUnix, 0)) {
		return "", ErrTokenExpired
	}
	return jobID, nil
}
