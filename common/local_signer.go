package common

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
)

// LocalSigner signs with an in-process private key. The recovery id is
// dropped so callers treat it like any remote signing service.
type LocalSigner struct {
	privKey *ecdsa.PrivateKey
}

var _ Signer = &LocalSigner{}

func NewLocalSigner(privateKeyHex string) (*LocalSigner, error) {
	privKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return &LocalSigner{privKey: privKey}, nil
}

func NewMnemonicSigner(mnemonic string) (*LocalSigner, error) {
	privKey, err := EthereumPrivateKeyFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("failed to create ethereum private key: %w", err)
	}
	return &LocalSigner{privKey: privKey}, nil
}

func EthereumPrivateKeyFromMnemonic(mnemonic string) (*ecdsa.PrivateKey, error) {
	wallet, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	path, err := hdwallet.ParseDerivationPath(DefaultETHHDPath)
	if err != nil {
		return nil, err
	}
	account, err := wallet.Derive(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to derive account: %w", err)
	}
	return wallet.PrivateKey(account)
}

func (s *LocalSigner) Destroy() {}

func (s *LocalSigner) PublicKey(ctx context.Context) ([]byte, error) {
	return crypto.FromECDSAPub(&s.privKey.PublicKey), nil
}

func (s *LocalSigner) SignHash(ctx context.Context, hash []byte) ([]byte, error) {
	if len(hash) != DigestLength {
		return nil, ErrInvalidDigest
	}
	signature, err := crypto.Sign(hash, s.privKey)
	if err != nil {
		return nil, err
	}
	return signature[:RawSignatureLength], nil
}
