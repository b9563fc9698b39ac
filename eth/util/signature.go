package util

import (
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	SignatureLength    = 65
	RawSignatureLength = 64

	// legacy ethereum recovery byte offset
	RecoveryOffset = 27
)

var ErrMalformedSignature = errors.New("malformed signature")

// EcdsaSignature is a recoverable secp256k1 signature in the r||s||v layout
// expected by ethereum ecrecover, with v being 27 or 28.
type EcdsaSignature struct {
	R [32]byte
	S [32]byte
	V byte
}

// EncodeSignature returns r||s||v.
func EncodeSignature(sig EcdsaSignature) [SignatureLength]byte {
	var out [SignatureLength]byte
	copy(out[:32], sig.R[:])
	copy(out[32:64], sig.S[:])
	out[64] = sig.V
	return out
}

// DecodeSignature splits a 65 byte signature at 32 and 64.
func DecodeSignature(b []byte) (EcdsaSignature, error) {
	var sig EcdsaSignature
	if len(b) != SignatureLength {
		return sig, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedSignature, SignatureLength, len(b))
	}
	copy(sig.R[:], b[:32])
	copy(sig.S[:], b[32:64])
	sig.V = b[64]
	return sig, nil
}

// SignatureFromRawAndV attaches v to a raw 64 byte r||s signature.
func SignatureFromRawAndV(raw []byte, v byte) (EcdsaSignature, error) {
	var sig EcdsaSignature
	if len(raw) != RawSignatureLength {
		return sig, fmt.Errorf("%w: expected %d raw bytes, got %d", ErrMalformedSignature, RawSignatureLength, len(raw))
	}
	if v != RecoveryOffset && v != RecoveryOffset+1 {
		return sig, fmt.Errorf("%w: invalid v %d", ErrMalformedSignature, v)
	}
	copy(sig.R[:], raw[:32])
	copy(sig.S[:], raw[32:])
	sig.V = v
	return sig, nil
}

// SignatureFromHex parses the unprefixed hex rendering produced by Hex.
func SignatureFromHex(s string) (EcdsaSignature, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return EcdsaSignature{}, fmt.Errorf("%w: %s", ErrMalformedSignature, err.Error())
	}
	return DecodeSignature(b)
}

func (sig EcdsaSignature) Bytes() []byte {
	b := EncodeSignature(sig)
	return b[:]
}

// Hex is lowercase and has no 0x prefix.
func (sig EcdsaSignature) Hex() string {
	return hex.EncodeToString(sig.Bytes())
}

func (sig EcdsaSignature) String() string {
	return sig.Hex()
}
