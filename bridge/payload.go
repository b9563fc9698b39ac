package bridge

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/dan13ram/cknft-bridge/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const PayloadLength = 192

// payload word offsets, each field right aligned in its 32 byte word
const (
	offsetTokenID   = 24
	offsetTarget    = 44
	offsetMessageID = 80
	offsetExpiry    = 120
	offsetChainID   = 152
	offsetContract  = 172
)

// MessageID hashes subaccount || little endian nonce and folds the digest
// into 128 bits by XOR of its two little endian halves.
func MessageID(subaccount models.Subaccount, nonce uint64) models.Nat {
	data := make([]byte, 0, models.SubaccountLength+8)
	data = append(data, subaccount[:]...)
	data = binary.LittleEndian.AppendUint64(data, nonce)
	digest := sha256.Sum256(data)

	var folded [16]byte
	for i := 0; i < 16; i++ {
		folded[i] = digest[i] ^ digest[16+i]
	}
	// folded holds the little endian value; Nat expects big endian
	for i, j := 0, 15; i < j; i, j = i+1, j-1 {
		folded[i], folded[j] = folded[j], folded[i]
	}
	id, _ := models.NatFromBytes(folded[:])
	return id
}

type Payload [PayloadLength]byte

// BuildPayload lays out (token id, target, message id, expiry, chain id,
// contract) as six 32 byte words. All other bytes are zero.
func BuildPayload(tokenID uint64, target common.Address, messageID models.Nat, expiry uint64, chainID uint64, contract common.Address) Payload {
	var p Payload
	binary.BigEndian.PutUint64(p[offsetTokenID:], tokenID)
	copy(p[offsetTarget:offsetTarget+common.AddressLength], target[:])
	msg := messageID.Bytes16()
	copy(p[offsetMessageID:offsetMessageID+16], msg[:])
	binary.BigEndian.PutUint64(p[offsetExpiry:], expiry)
	binary.BigEndian.PutUint64(p[offsetChainID:], chainID)
	copy(p[offsetContract:offsetContract+common.AddressLength], contract[:])
	return p
}

func (p Payload) Digest() []byte {
	return crypto.Keccak256(p[:])
}
