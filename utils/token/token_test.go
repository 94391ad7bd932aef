package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSigner_EmptySecret(t *testing.T) {
	signer, err := NewSigner("")
	assert.Nil(t, signer)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	signer, err := NewSigner("test-secret")
	require.NoError(t, err)

	id := "4f5f2c1e-9f6a-4a77-8f2e-0d7a0a3d9b11"
	createdAt := "2024-06-01T10:00:00Z"

	sig := signer.Sign(id, createdAt)
	assert.Len(t, sig, 64) // hex-encoded SHA-256
	assert.True(t, signer.Verify(id, createdAt, sig))

	// Deterministic for the same inputs.
	assert.Equal(t, sig, signer.Sign(id, createdAt))
}

func TestVerify_RejectsMutations(t *testing.T) {
	signer, err := NewSigner("test-secret")
	require.NoError(t, err)

	id := "booking-123"
	createdAt := "2024-06-01T10:00:00Z"
	sig := signer.Sign(id, createdAt)

	t.Run("mutated id", func(t *testing.T) {
		assert.False(t, signer.Verify("booking-124", createdAt, sig))
	})

	t.Run("mutated createdAt", func(t *testing.T) {
		assert.False(t, signer.Verify(id, "2024-06-01T10:00:01Z", sig))
	})

	t.Run("mutated signature", func(t *testing.T) {
		for i := 0; i < len(sig); i++ {
			mutated := []byte(sig)
			if mutated[i] == 'a' {
				mutated[i] = 'b'
			} else {
				mutated[i] = 'a'
			}
			assert.False(t, signer.Verify(id, createdAt, string(mutated)), "mutation at index %d accepted", i)
		}
	})

	t.Run("truncated signature", func(t *testing.T) {
		assert.False(t, signer.Verify(id, createdAt, sig[:len(sig)-1]))
	})

	t.Run("empty signature", func(t *testing.T) {
		assert.False(t, signer.Verify(id, createdAt, ""))
	})
}

func TestVerify_DifferentSecrets(t *testing.T) {
	a, err := NewSigner("secret-a")
	require.NoError(t, err)
	b, err := NewSigner("secret-b")
	require.NoError(t, err)

	sig := a.Sign("id", "2024-06-01T10:00:00Z")
	assert.False(t, b.Verify("id", "2024-06-01T10:00:00Z", sig))
}

func TestSign_BindsBothFields(t *testing.T) {
	signer, err := NewSigner("test-secret")
	require.NoError(t, err)

	// A token for one record must not validate another record even when
	// both exist.
	sigA := signer.Sign("id-a", "2024-06-01T10:00:00Z")
	assert.False(t, signer.Verify("id-b", "2024-06-01T10:00:00Z", sigA))
	assert.False(t, signer.Verify("id-a", "2024-07-01T10:00:00Z", sigA))
}
