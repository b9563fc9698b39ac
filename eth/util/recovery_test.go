package util

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverParity(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	publicKey := crypto.FromECDSAPub(&key.PublicKey)

	t.Run("Matches Signer Recovery Id", func(t *testing.T) {
		for i := 0; i < 8; i++ {
			digest := crypto.Keccak256([]byte{byte(i), 0x42})
			sig, err := crypto.Sign(digest, key)
			require.NoError(t, err)

			parity, err := RecoverParity(publicKey, digest, sig[:64])
			require.NoError(t, err)
			assert.Equal(t, sig[64], parity)
		}
	})

	t.Run("Compressed Public Key", func(t *testing.T) {
		digest := crypto.Keccak256([]byte("compressed"))
		sig, err := crypto.Sign(digest, key)
		require.NoError(t, err)

		parity, err := RecoverParity(crypto.CompressPubkey(&key.PublicKey), digest, sig[:64])
		require.NoError(t, err)
		assert.Equal(t, sig[64], parity)
	})

	t.Run("Wrong Key", func(t *testing.T) {
		other, err := crypto.GenerateKey()
		require.NoError(t, err)

		digest := crypto.Keccak256([]byte("wrong key"))
		sig, err := crypto.Sign(digest, key)
		require.NoError(t, err)

		_, err = RecoverParity(crypto.FromECDSAPub(&other.PublicKey), digest, sig[:64])
		assert.ErrorIs(t, err, ErrRecoveryFailed)
	})

	t.Run("Wrong Digest Length", func(t *testing.T) {
		_, err := RecoverParity(publicKey, []byte{0x01}, make([]byte, 64))
		assert.ErrorIs(t, err, ErrRecoveryFailed)
	})

	t.Run("Wrong Signature Length", func(t *testing.T) {
		_, err := RecoverParity(publicKey, make([]byte, 32), make([]byte, 65))
		assert.ErrorIs(t, err, ErrMalformedSignature)
	})
}

func TestSignWithParity(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	digest := crypto.Keccak256([]byte("payload"))
	raw, err := crypto.Sign(digest, key)
	require.NoError(t, err)

	sig, err := SignWithParity(crypto.FromECDSAPub(&key.PublicKey), digest, raw[:64])
	require.NoError(t, err)
	assert.Contains(t, []byte{27, 28}, sig.V)
	assert.Equal(t, raw[64]+27, sig.V)

	addr, err := RecoverAddress(digest, sig)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), addr)
}
