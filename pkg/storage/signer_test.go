package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmationSignerRoundTrip(t *testing.T) {
	signer := NewConfirmationSigner("secret", "confirm", time.Hour)
	token, expiresAt, err := signer.Generate("job-1")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	jobID, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)
}

func TestConfirmationSignerExpired(t *testing.T) {
	signer := NewConfirmationSigner("secret", "confirm", -time.Minute)
	token, _, err := signer.Generate("job-1")
	require.NoError(t, err)

	_, err = signer.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestConfirmationSignerTamperedSignature(t *testing.T) {
	signer := NewConfirmationSigner("secret", "confirm", time.Hour)
	token, _, err := signer.Generate("job-1")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	parts[2] = strings.Repeat("0", len(parts[2]))
	_, err = signer.Parse(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestConfirmationSignerWrongSalt(t *testing.T) {
	signer := NewConfirmationSigner("secret", "confirm", time.Hour)
	other := NewConfirmationSigner("secret", "different-salt", time.Hour)
	token, _, err := signer.Generate("job-1")
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestConfirmationSignerMalformed(t *testing.T) {
	signer := NewConfirmationSigner("secret", "confirm", time.Hour)
	for _, token := range []string{"", "a.b", "a.b.c.d", "job.notanumber.sig"} {
		_, err := signer.Parse(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", token)
	}
}
