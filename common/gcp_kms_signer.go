package common

import (
	"context"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/pem"
	"fmt"
	"math/big"

	kms "cloud.google.com/go/kms/apiv1"
	"cloud.google.com/go/kms/apiv1/kmspb"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	dcrecSecp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	gax "github.com/googleapis/gax-go/v2"
)

type GCPKeyManagementClient interface {
	Close() error
	GetPublicKey(ctx context.Context, req *kmspb.GetPublicKeyRequest, opts ...gax.CallOption) (*kmspb.PublicKey, error)
	AsymmetricSign(ctx context.Context, req *kmspb.AsymmetricSignRequest, opts ...gax.CallOption) (*kmspb.AsymmetricSignResponse, error)
	GetCryptoKeyVersion(ctx context.Context, req *kmspb.GetCryptoKeyVersionRequest, opts ...gax.CallOption) (*kmspb.CryptoKeyVersion, error)
}

type GcpKmsSigner struct {
	client  GCPKeyManagementClient
	keyName string
}

var _ Signer = &GcpKmsSigner{}

var NewGCPKeyManagementClient = func(ctx context.Context) (GCPKeyManagementClient, error) {
	return kms.NewKeyManagementClient(ctx)
}

func NewGcpKmsSigner(ctx context.Context, keyName string) (*GcpKmsSigner, error) {
	client, err := NewGCPKeyManagementClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create KMS client: %w", err)
	}

	keyVersion, err := client.GetCryptoKeyVersion(ctx, &kmspb.GetCryptoKeyVersionRequest{Name: keyName})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get key version details: %w", err)
	}
	if keyVersion.Algorithm != kmspb.CryptoKeyVersion_EC_SIGN_SECP256K1_SHA256 {
		client.Close()
		return nil, fmt.Errorf("key algorithm is %s, expected EC_SIGN_SECP256K1_SHA256", keyVersion.Algorithm)
	}

	return &GcpKmsSigner{client: client, keyName: keyName}, nil
}

func (s *GcpKmsSigner) Destroy() {
	s.client.Close()
}

// PublicKey returns the uncompressed SEC1 key of the KMS key version.
func (s *GcpKmsSigner) PublicKey(ctx context.Context) ([]byte, error) {
	resp, err := s.client.GetPublicKey(ctx, &kmspb.GetPublicKeyRequest{Name: s.keyName})
	if err != nil {
		return nil, fmt.Errorf("failed to get public key: %w", err)
	}

	block, _ := pem.Decode([]byte(resp.Pem))
	if block == nil {
		return nil, fmt.Errorf("public key %q PEM empty: %.130q", s.keyName, resp.Pem)
	}

	var info struct {
		AlgID pkix.AlgorithmIdentifier
		Key   asn1.BitString
	}
	if _, err := asn1.Unmarshal(block.Bytes, &info); err != nil {
		return nil, fmt.Errorf("public key %q PEM block %q: %w", s.keyName, block.Type, err)
	}
	if gotAlg := info.AlgID.Algorithm; !gotAlg.Equal(oidPublicKeyECDSA) {
		return nil, fmt.Errorf("public key %q ASN.1 algorithm %s instead of %s", s.keyName, gotAlg, oidPublicKeyECDSA)
	}

	return info.Key.Bytes, nil
}

// SignHash asks KMS to sign the 32 byte digest and returns r||s with s
// normalised to the lower half of the curve order.
func (s *GcpKmsSigner) SignHash(ctx context.Context, hash []byte) ([]byte, error) {
	if len(hash) != DigestLength {
		return nil, ErrInvalidDigest
	}

	resp, err := s.client.AsymmetricSign(ctx, &kmspb.AsymmetricSignRequest{
		Name: s.keyName,
		Digest: &kmspb.Digest{
			Digest: &kmspb.Digest_Sha256{Sha256: hash},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("asymmetric sign operation: %w", err)
	}

	return rawSignatureFromASN1(resp.Signature)
}

func rawSignatureFromASN1(der []byte) ([]byte, error) {
	var params struct{ R, S *big.Int }
	if _, err := asn1.Unmarshal(der, &params); err != nil {
		return nil, fmt.Errorf("asymmetric signature encoding: %w", err)
	}

	var rLen, sLen int
	if params.R != nil {
		rLen = (params.R.BitLen() + 7) / 8
	}
	if params.S != nil {
		sLen = (params.S.BitLen() + 7) / 8
	}
	if rLen == 0 || rLen > 32 || sLen == 0 || sLen > 32 {
		return nil, fmt.Errorf("%w: %d-byte r and %d-byte s", ErrInvalidSignature, rLen, sLen)
	}

	var rBytes, sBytes [32]byte
	params.R.FillBytes(rBytes[:])
	params.S.FillBytes(sBytes[:])

	var r, sc dcrecSecp256k1.ModNScalar
	if overflow := r.SetBytes(&rBytes); overflow != 0 || r.IsZero() {
		return nil, fmt.Errorf("%w: r out of range", ErrInvalidSignature)
	}
	if overflow := sc.SetBytes(&sBytes); overflow != 0 || sc.IsZero() {
		return nil, fmt.Errorf("%w: s out of range", ErrInvalidSignature)
	}
	if sc.IsOverHalfOrder() {
		sc.Negate()
	}

	raw := make([]byte, RawSignatureLength)
	r.PutBytesUnchecked(raw[:32])
	sc.PutBytesUnchecked(raw[32:])
	return raw, nil
}

// VerifyRawSignature checks an r||s signature against an SEC1 public key.
func VerifyRawSignature(publicKey []byte, hash []byte, raw []byte) error {
	if len(raw) != RawSignatureLength {
		return fmt.Errorf("%w: length %d", ErrInvalidSignature, len(raw))
	}
	pubKey, err := dcrecSecp256k1.ParsePubKey(publicKey)
	if err != nil {
		return fmt.Errorf("failed to parse public key: %w", err)
	}
	var r, s dcrecSecp256k1.ModNScalar
	r.SetByteSlice(raw[:32])
	s.SetByteSlice(raw[32:])
	if !btcecdsa.NewSignature(&r, &s).Verify(hash, pubKey) {
		return fmt.Errorf("%w: verification failed", ErrInvalidSignature)
	}
	return nil
}
