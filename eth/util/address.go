package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	UncompressedPublicKeyLength = 65
	uncompressedPrefix          = 0x04
)

var (
	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrInvalidAddress   = errors.New("invalid address")
)

// DeriveAddress returns the last 20 bytes of keccak256 over the 64 byte
// point of an uncompressed SEC1 public key.
func DeriveAddress(publicKey []byte) (common.Address, error) {
	var addr common.Address
	if len(publicKey) != UncompressedPublicKeyLength || publicKey[0] != uncompressedPrefix {
		return addr, fmt.Errorf("%w: expected %d byte uncompressed key", ErrInvalidPublicKey, UncompressedPublicKeyLength)
	}
	if _, err := secp256k1.ParsePubKey(publicKey); err != nil {
		return addr, fmt.Errorf("%w: %s", ErrInvalidPublicKey, err.Error())
	}
	digest := crypto.Keccak256(publicKey[1:])
	copy(addr[:], digest[12:32])
	return addr, nil
}

// UncompressedPublicKey accepts any SEC1 encoding and returns the 65 byte form.
func UncompressedPublicKey(publicKey []byte) ([]byte, error) {
	pubKey, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPublicKey, err.Error())
	}
	return pubKey.SerializeUncompressed(), nil
}

// AddressHex renders an address as lowercase 0x-prefixed hex.
func AddressHex(addr common.Address) string {
	return hexutil.Encode(addr.Bytes())
}

// ParseAddress requires the 0x prefix and exactly 20 bytes.
func ParseAddress(s string) (common.Address, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return common.Address{}, fmt.Errorf("%w: missing 0x prefix: %q", ErrInvalidAddress, s)
	}
	if len(s) != 2+2*common.AddressLength || !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}
