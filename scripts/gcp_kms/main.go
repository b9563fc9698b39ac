package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/dan13ram/cknft-bridge/common"
	"github.com/dan13ram/cknft-bridge/eth/util"
)

// Prints the ethereum address of a GCP KMS key and checks that a signature
// produced by it recovers to that address.
func main() {
	keyName := os.Getenv("GCP_KMS_KEY_NAME")

	fmt.Println("Google KMS Key Name: ", keyName)
	if keyName == "" {
		log.Fatalf("GCP KMS Key Name not set")
	}

	ctx := context.Background()
	signer, err := common.NewGcpKmsSigner(ctx, keyName)
	if err != nil {
		log.Fatalf("failed to create GCP KMS signer: %v", err)
	}
	defer signer.Destroy()

	publicKey, err := signer.PublicKey(ctx)
	if err != nil {
		log.Fatalf("failed to fetch public key: %v", err)
	}
	address, err := util.DeriveAddress(publicKey)
	if err != nil {
		log.Fatalf("failed to derive address: %v", err)
	}
	fmt.Printf("Public Key: %x\n", publicKey)
	fmt.Println("Eth Address: ", util.AddressHex(address))

	digest := crypto.Keccak256([]byte("example transaction data"))
	raw, err := signer.SignHash(ctx, digest)
	if err != nil {
		log.Fatalf("failed to sign hash: %v", err)
	}
	if err := common.VerifyRawSignature(publicKey, digest, raw); err != nil {
		log.Fatalf("KMS signature does not verify: %v", err)
	}

	signature, err := util.SignWithParity(publicKey, digest, raw)
	if err != nil {
		log.Fatalf("signature does not recover the key: %v", err)
	}
	fmt.Println("Signature: ", signature.Hex())

	recovered, err := util.RecoverAddress(digest, signature)
	if err != nil {
		log.Fatalf("failed to recover address: %v", err)
	}
	fmt.Println("Recovered Address: ", util.AddressHex(recovered))
}
