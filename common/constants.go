package common

import "encoding/asn1"

const (
	DigestLength       = 32
	RawSignatureLength = 64
	DefaultETHHDPath   = "m/44'/60'/0'/0/0"
)

var oidPublicKeyECDSA = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
