package common

import (
	"context"
	"errors"
)

var (
	ErrInvalidDigest    = errors.New("digest must be 32 bytes")
	ErrInvalidSignature = errors.New("invalid signature")
)

// Signer is the external signing service. SignHash returns the 64 byte
// r||s signature in low-S form without a recovery id.
type Signer interface {
	PublicKey(ctx context.Context) ([]byte, error)
	SignHash(ctx context.Context, hash []byte) ([]byte, error)
	Destroy()
}
