package util

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPublicKeyHex = "04A4A4C5160DFA830E9D5FAD6DBA5248E7A9C783C30974A3382247DCE5A815DBAA4CB31812FD016561DE57A5A53EF527499031705BE824016842688B498F61FDE7"

func TestDeriveAddress(t *testing.T) {
	t.Run("Known Vector", func(t *testing.T) {
		addr, err := DeriveAddress(common.FromHex(testPublicKeyHex))
		require.NoError(t, err)
		assert.Equal(t, "0x3b75ea5c82e96d9489ed740d455da4900f152f95", AddressHex(addr))
	})

	t.Run("Matches PubkeyToAddress", func(t *testing.T) {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		addr, err := DeriveAddress(crypto.FromECDSAPub(&key.PublicKey))
		require.NoError(t, err)
		assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), addr)
	})

	t.Run("Compressed Key Rejected", func(t *testing.T) {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		_, err = DeriveAddress(crypto.CompressPubkey(&key.PublicKey))
		assert.ErrorIs(t, err, ErrInvalidPublicKey)
	})

	t.Run("Point Not On Curve", func(t *testing.T) {
		pub := common.FromHex(testPublicKeyHex)
		pub[64] ^= 0x01
		_, err := DeriveAddress(pub)
		assert.ErrorIs(t, err, ErrInvalidPublicKey)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := DeriveAddress(nil)
		assert.ErrorIs(t, err, ErrInvalidPublicKey)
	})
}

func TestUncompressedPublicKey(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	uncompressed, err := UncompressedPublicKey(crypto.CompressPubkey(&key.PublicKey))
	require.NoError(t, err)
	assert.Equal(t, crypto.FromECDSAPub(&key.PublicKey), uncompressed)

	_, err = UncompressedPublicKey([]byte{0x02, 0x01})
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x3B75ea5c82e96d9489ed740d455da4900f152f95")
	require.NoError(t, err)
	assert.Equal(t, "0x3b75ea5c82e96d9489ed740d455da4900f152f95", AddressHex(addr))

	for _, s := range []string{
		"3b75ea5c82e96d9489ed740d455da4900f152f95",
		"0x3b75ea5c82e96d9489ed740d455da4900f152f",
		"0x3b75ea5c82e96d9489ed740d455da4900f152f9500",
		"0xzz75ea5c82e96d9489ed740d455da4900f152f95",
		"",
	} {
		_, err := ParseAddress(s)
		assert.ErrorIs(t, err, ErrInvalidAddress, s)
	}
}
