package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/cknft-bridge/common"
	"github.com/dan13ram/cknft-bridge/models"
)

// NewSigner builds the signing service selected by config.
func NewSigner(ctx context.Context, config models.SignerConfig) (common.Signer, error) {
	switch config.Type {
	case models.SignerTypeGcpKms:
		if config.GcpKmsKeyName == "" {
			return nil, fmt.Errorf("gcp kms key name is empty")
		}
		log.Debug("[SIGNER] Using gcp kms key ", config.GcpKmsKeyName)
		signer, err := common.NewGcpKmsSigner(ctx, config.GcpKmsKeyName)
		if err != nil {
			return nil, err
		}
		return signer, nil
	case models.SignerTypeLocal:
		if config.PrivateKey != "" {
			log.Debug("[SIGNER] Using local private key")
			signer, err := common.NewLocalSigner(config.PrivateKey)
			if err != nil {
				return nil, err
			}
			return signer, nil
		}
		if config.Mnemonic != "" {
			log.Debug("[SIGNER] Using local mnemonic")
			signer, err := common.NewMnemonicSigner(config.Mnemonic)
			if err != nil {
				return nil, err
			}
			return signer, nil
		}
		return nil, fmt.Errorf("both private key and mnemonic are empty")
	default:
		return nil, fmt.Errorf("unknown signer type %q", config.Type)
	}
}
