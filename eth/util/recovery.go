package util

import (
	"errors"
	"fmt"

	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrRecoveryFailed = errors.New("signature recovery failed")

// RecoverParity finds the recovery id (0 or 1) for which the raw r||s
// signature over digest recovers publicKey.
func RecoverParity(publicKey []byte, digest []byte, raw []byte) (byte, error) {
	if len(raw) != RawSignatureLength {
		return 0, fmt.Errorf("%w: expected %d raw bytes, got %d", ErrMalformedSignature, RawSignatureLength, len(raw))
	}
	if len(digest) != common.HashLength {
		return 0, fmt.Errorf("%w: digest must be %d bytes", ErrRecoveryFailed, common.HashLength)
	}
	expected, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPublicKey, err.Error())
	}

	// compact layout: header || r || s, header = 27 + recovery id
	var compact [SignatureLength]byte
	copy(compact[1:], raw)

	for parity := byte(0); parity < 2; parity++ {
		compact[0] = RecoveryOffset + parity
		recovered, _, err := btcecdsa.RecoverCompact(compact[:], digest)
		if err != nil {
			continue
		}
		if recovered.IsEqual(expected) {
			return parity, nil
		}
	}

	return 0, ErrRecoveryFailed
}

// SignWithParity builds the full 65 byte signature with v = 27 + parity.
func SignWithParity(publicKey []byte, digest []byte, raw []byte) (EcdsaSignature, error) {
	parity, err := RecoverParity(publicKey, digest, raw)
	if err != nil {
		return EcdsaSignature{}, err
	}
	return SignatureFromRawAndV(raw, RecoveryOffset+parity)
}

// RecoverAddress returns the signer address the way an ethereum verifier would.
func RecoverAddress(digest []byte, sig EcdsaSignature) (common.Address, error) {
	if sig.V != RecoveryOffset && sig.V != RecoveryOffset+1 {
		return common.Address{}, fmt.Errorf("%w: invalid v %d", ErrMalformedSignature, sig.V)
	}
	b := sig.Bytes()
	b[64] -= RecoveryOffset
	pubKey, err := crypto.SigToPub(digest, b)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %s", ErrRecoveryFailed, err.Error())
	}
	return crypto.PubkeyToAddress(*pubKey), nil
}
