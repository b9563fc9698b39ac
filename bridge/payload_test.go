package bridge

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/dan13ram/cknft-bridge/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func littleEndian(b []byte) *big.Int {
	reversed := make([]byte, len(b))
	for i := range b {
		reversed[len(b)-1-i] = b[i]
	}
	return new(big.Int).SetBytes(reversed)
}

func TestMessageID(t *testing.T) {
	sub, err := models.SubaccountFromPrincipal("alice")
	require.NoError(t, err)

	data := append(sub[:], make([]byte, 8)...)
	binary.LittleEndian.PutUint64(data[32:], 3)
	digest := sha256.Sum256(data)
	expected := new(big.Int).Xor(littleEndian(digest[:16]), littleEndian(digest[16:]))

	id := MessageID(sub, 3)
	assert.Equal(t, 0, expected.Cmp(id.Int().ToBig()))

	assert.Equal(t, id, MessageID(sub, 3))
	assert.NotEqual(t, id, MessageID(sub, 4))

	other, err := models.SubaccountFromPrincipal("bob")
	require.NoError(t, err)
	assert.NotEqual(t, id, MessageID(other, 3))
}

func TestBuildPayload(t *testing.T) {
	target := common.HexToAddress("0x1111111111111111111111111111111111111111")
	contract := common.HexToAddress("0x2222222222222222222222222222222222222222")
	messageID, err := models.ParseNat("340282366920938463463374607431768211455")
	require.NoError(t, err)

	p := BuildPayload(0x0102030405060708, target, messageID, 0x0a0b, 11155111, contract)

	assert.Len(t, p, PayloadLength)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, p[24:32])
	assert.Equal(t, target.Bytes(), p[44:64])
	for i := 80; i < 96; i++ {
		assert.Equal(t, byte(0xff), p[i])
	}
	assert.Equal(t, uint64(0x0a0b), binary.BigEndian.Uint64(p[120:128]))
	assert.Equal(t, uint64(11155111), binary.BigEndian.Uint64(p[152:160]))
	assert.Equal(t, contract.Bytes(), p[172:192])

	zero := func(from, to int) {
		for i := from; i < to; i++ {
			assert.Equal(t, byte(0), p[i], "byte %d", i)
		}
	}
	zero(0, 24)
	zero(32, 44)
	zero(64, 80)
	zero(96, 120)
	zero(128, 152)
	zero(160, 172)

	assert.Equal(t, crypto.Keccak256(p[:]), p.Digest())
}
