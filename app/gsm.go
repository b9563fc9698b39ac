package app

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/cknft-bridge/models"
)

func accessSecretVersion(client *secretmanager.Client, name string) (string, error) {
	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", Config.GoogleSecretManager.ProjectID, name),
	}

	result, err := client.AccessSecretVersion(context.Background(), req)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(result.Payload.Data)), nil
}

// isMnemonic tells a BIP-39 phrase apart from a hex private key.
func isMnemonic(secret string) bool {
	return len(strings.Fields(secret)) > 1
}

func readKeysFromGSM() {
	if !Config.GoogleSecretManager.Enabled {
		log.Debug("[GSM] Google Secret Manager is disabled")
		return
	}

	if Config.GoogleSecretManager.ProjectID == "" {
		log.Fatalf("[GSM] ProjectID is empty")
	}

	ctx := context.Background()
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		log.Fatalf("[GSM] Failed to create secretmanager client: %v", err)
	}
	defer client.Close()

	if Config.MongoDB.URI == "" && Config.GoogleSecretManager.MongoSecretName != "" {
		log.Debug("[GSM] Reading mongodb uri")
		Config.MongoDB.URI, err = accessSecretVersion(client, Config.GoogleSecretManager.MongoSecretName)
		if err != nil {
			log.Fatalf("[GSM] Failed to access mongodb uri: %v", err)
		}
		log.Info("[GSM] Successfully read mongodb uri")
	}

	if Config.Signer.Type == models.SignerTypeGcpKms {
		return
	}
	if Config.Signer.PrivateKey == "" && Config.Signer.Mnemonic == "" {
		if Config.GoogleSecretManager.SignerSecretName == "" {
			log.Fatalf("[GSM] Signer secret name is empty")
		}

		log.Debug("[GSM] Reading signer key")
		secret, err := accessSecretVersion(client, Config.GoogleSecretManager.SignerSecretName)
		if err != nil {
			log.Fatalf("[GSM] Failed to access signer key: %v", err)
		}
		if isMnemonic(secret) {
			Config.Signer.Mnemonic = secret
		} else {
			Config.Signer.PrivateKey = secret
		}
		log.Info("[GSM] Successfully read signer key")
	}
}
