package common

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "test test test test test test test test test test test junk"

func TestNewMnemonicSigner(t *testing.T) {
	signer, err := NewMnemonicSigner(testMnemonic)
	require.NoError(t, err)

	publicKey, err := signer.PublicKey(context.Background())
	require.NoError(t, err)
	pub, err := crypto.UnmarshalPubkey(publicKey)
	require.NoError(t, err)
	// first account of the well known development mnemonic
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", crypto.PubkeyToAddress(*pub).Hex())

	_, err = NewMnemonicSigner("not a mnemonic")
	assert.Error(t, err)
}

func TestNewLocalSigner(t *testing.T) {
	signer, err := NewLocalSigner("0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	require.NoError(t, err)

	mnemonicSigner, err := NewMnemonicSigner(testMnemonic)
	require.NoError(t, err)

	a, _ := signer.PublicKey(context.Background())
	b, _ := mnemonicSigner.PublicKey(context.Background())
	assert.Equal(t, a, b)

	_, err = NewLocalSigner("zz")
	assert.Error(t, err)
}

func TestLocalSignerSignHash(t *testing.T) {
	signer, err := NewMnemonicSigner(testMnemonic)
	require.NoError(t, err)
	defer signer.Destroy()

	hash := crypto.Keccak256([]byte("test data"))
	raw, err := signer.SignHash(context.Background(), hash)
	require.NoError(t, err)
	assert.Len(t, raw, RawSignatureLength)

	publicKey, _ := signer.PublicKey(context.Background())
	assert.NoError(t, VerifyRawSignature(publicKey, hash, raw))

	other, err := NewLocalSigner("0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	require.NoError(t, err)
	otherKey, _ := other.PublicKey(context.Background())
	assert.ErrorIs(t, VerifyRawSignature(otherKey, hash, raw), ErrInvalidSignature)
	assert.ErrorIs(t, VerifyRawSignature(publicKey, hash, raw[:63]), ErrInvalidSignature)

	_, err = signer.SignHash(context.Background(), []byte("short"))
	assert.ErrorIs(t, err, ErrInvalidDigest)
}
