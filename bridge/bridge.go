package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dan13ram/cknft-bridge/common"
	"github.com/dan13ram/cknft-bridge/eth/util"
	"github.com/dan13ram/cknft-bridge/events"
	"github.com/dan13ram/cknft-bridge/ledger"
	"github.com/dan13ram/cknft-bridge/metrics"
	"github.com/dan13ram/cknft-bridge/models"
	"github.com/dan13ram/cknft-bridge/store"
	ethcommon "github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidTarget          = errors.New("invalid target address")
	ErrBridgeContractNotSet   = errors.New("bridge contract address not configured")
	ErrPublicKeyNotSet        = errors.New("signing public key not set")
	ErrMintNotFound           = errors.New("mint status not found")
	ErrInvalidTransition      = errors.New("invalid mint state transition")
	ErrMintExpired            = errors.New("mint expired")
	ErrSignatureNotRecovering = errors.New("signature does not recover the signing key")
)

const DefaultSignTimeout = 30 * time.Second

// Bridge locks tokens into the service's custody and produces signed mint
// claims for the foreign chain.
type Bridge struct {
	ledger      *ledger.Ledger
	store       store.Store
	signer      common.Signer
	publisher   events.Publisher
	custodian   models.Account
	signTimeout time.Duration
}

func NewBridge(l *ledger.Ledger, signer common.Signer, publisher events.Publisher, custodian string, signTimeout time.Duration) *Bridge {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	if signTimeout <= 0 {
		signTimeout = DefaultSignTimeout
	}
	return &Bridge{
		ledger:      l,
		store:       l.Store(),
		signer:      signer,
		publisher:   publisher,
		custodian:   models.NewAccount(custodian, nil),
		signTimeout: signTimeout,
	}
}

func expiryWindow(cfg *models.CollectionConfig) uint64 {
	if cfg.MintExpirySecs > 0 {
		return cfg.MintExpirySecs
	}
	return cfg.TxWindow
}

func (b *Bridge) contractAddress() (ethcommon.Address, *models.CollectionConfig, error) {
	cfg, err := b.ledger.Config()
	if err != nil {
		return ethcommon.Address{}, nil, err
	}
	contract, err := util.ParseAddress(cfg.BridgeContract)
	if err != nil {
		return ethcommon.Address{}, nil, ledger.NewFatalError(ErrBridgeContractNotSet, cfg.BridgeContract)
	}
	return contract, cfg, nil
}

func (b *Bridge) publicKey() ([]byte, error) {
	publicKey, err := b.store.GetPublicKey()
	if errors.Is(err, store.ErrNotFound) {
		return nil, ledger.NewFatalError(ErrPublicKeyNotSet, "")
	}
	if err != nil {
		return nil, fmt.Errorf("error reading public key: %w", err)
	}
	return publicKey, nil
}

func (b *Bridge) publish(eventType events.EventType, status *models.MintStatus, signature string) {
	metrics.BridgeMints.WithLabelValues(string(status.State)).Inc()
	if err := b.publisher.Publish(events.NewBridgeEvent(eventType, status, signature)); err != nil {
		log.Warn("[BRIDGE] Error publishing ", eventType, " for ", status.MessageID.String(), ": ", err)
	}
}

// InitiateBridgeMint moves tokenID into custody and returns a signed claim
// the target can redeem on chainID. The custody transfer, nonce and Init
// status are durable even when signing later fails.
func (b *Bridge) InitiateBridgeMint(ctx context.Context, caller string, tokenID uint64, chainID uint64, target string) (*models.BridgeReceipt, error) {
	targetAddress, err := util.ParseAddress(target)
	if err != nil {
		return nil, ledger.NewFatalError(ErrInvalidTarget, target)
	}
	contract, cfg, err := b.contractAddress()
	if err != nil {
		return nil, err
	}
	publicKey, err := b.publicKey()
	if err != nil {
		return nil, err
	}
	subaccount, err := models.SubaccountFromPrincipal(caller)
	if err != nil {
		return nil, ledger.NewFatalError(err, caller)
	}

	var status *models.MintStatus
	_, err = b.ledger.CustodyTransfer(caller, nil, models.NewNat(tokenID), b.custodian, func() error {
		nonce, err := b.store.NextNonce(subaccount)
		if err != nil {
			return fmt.Errorf("error allocating nonce: %w", err)
		}
		now := time.Now()
		status = &models.MintStatus{
			MessageID: MessageID(subaccount, nonce),
			TokenID:   tokenID,
			Amount:    1,
			Expiry:    b.ledger.Seconds() + expiryWindow(cfg),
			State:     models.MintStateInit,
			Recipient: util.AddressHex(targetAddress),
			ChainID:   chainID,
			Caller:    models.NewAccount(caller, nil),
			CreatedAt: now,
			UpdatedAt: now,
		}
		return b.store.PutMintStatus(status)
	})
	if err != nil {
		log.Debug("[BRIDGE] Bridge mint of ", tokenID, " by ", caller, " rejected: ", err)
		return nil, err
	}
	log.Info("[BRIDGE] Token ", tokenID, " locked for message ", status.MessageID.String())
	b.publish(events.EventMintInitiated, status, "")

	return b.sign(ctx, status, targetAddress, contract, publicKey)
}

func (b *Bridge) sign(ctx context.Context, status *models.MintStatus, target ethcommon.Address, contract ethcommon.Address, publicKey []byte) (*models.BridgeReceipt, error) {
	payload := BuildPayload(status.TokenID, target, status.MessageID, status.Expiry, status.ChainID, contract)
	digest := payload.Digest()

	signCtx, cancel := context.WithTimeout(ctx, b.signTimeout)
	defer cancel()

	start := time.Now()
	raw, err := b.signer.SignHash(signCtx, digest)
	metrics.SignerDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SignerRequests.WithLabelValues("sign_hash", metrics.OutcomeError).Inc()
		log.Error("[SIGNER] Error signing message ", status.MessageID.String(), ": ", err)
		return nil, fmt.Errorf("error signing message %s: %w", status.MessageID.String(), err)
	}
	metrics.SignerRequests.WithLabelValues("sign_hash", metrics.OutcomeSuccess).Inc()

	signature, err := util.SignWithParity(publicKey, digest, raw)
	if err != nil {
		return nil, ledger.NewFatalError(ErrSignatureNotRecovering, err.Error())
	}
	encoded := util.EncodeSignature(signature)
	signatureHex := signature.Hex()

	var signed *models.MintStatus
	err = b.ledger.Turn("bridge_signed", func() error {
		current, err := b.store.GetMintStatus(status.MessageID)
		if err != nil {
			return fmt.Errorf("error reading mint status: %w", err)
		}
		if !current.State.CanTransition(models.MintStateSigned) {
			return ledger.NewFatalError(ErrInvalidTransition, fmt.Sprintf("%s -> %s", current.State, models.MintStateSigned))
		}
		if err := b.store.PutSignature(status.MessageID, encoded[:]); err != nil {
			return fmt.Errorf("error storing signature: %w", err)
		}
		current.State = models.MintStateSigned
		current.UpdatedAt = time.Now()
		if err := b.store.PutMintStatus(current); err != nil {
			return fmt.Errorf("error storing mint status: %w", err)
		}
		signed = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("[BRIDGE] Signed message ", status.MessageID.String(), " for ", status.Recipient)
	b.publish(events.EventMintSigned, signed, signatureHex)

	return &models.BridgeReceipt{
		TokenID:   signed.TokenID,
		Target:    signed.Recipient,
		MessageID: signed.MessageID,
		Expiry:    signed.Expiry,
		Signature: signatureHex,
	}, nil
}

func (b *Bridge) requireController(caller string) error {
	ok, err := b.ledger.IsController(caller)
	if err != nil {
		return err
	}
	if !ok {
		return ledger.NewFatalError(ledger.ErrUnauthorizedCaller, caller)
	}
	return nil
}

// RefreshSignerKey fetches the signing service key and stores its
// uncompressed form. It is the only writer of the public key.
func (b *Bridge) RefreshSignerKey(ctx context.Context, caller string) ([]byte, error) {
	if err := b.requireController(caller); err != nil {
		return nil, err
	}

	keyCtx, cancel := context.WithTimeout(ctx, b.signTimeout)
	defer cancel()

	raw, err := b.signer.PublicKey(keyCtx)
	if err != nil {
		metrics.SignerRequests.WithLabelValues("public_key", metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("error fetching public key: %w", err)
	}
	metrics.SignerRequests.WithLabelValues("public_key", metrics.OutcomeSuccess).Inc()

	publicKey, err := util.UncompressedPublicKey(raw)
	if err != nil {
		return nil, err
	}

	err = b.ledger.Turn("refresh_signer_key", func() error {
		return b.store.PutPublicKey(publicKey)
	})
	if err != nil {
		return nil, fmt.Errorf("error storing public key: %w", err)
	}

	address, _ := util.DeriveAddress(publicKey)
	log.Info("[BRIDGE] Signing key refreshed, address ", util.AddressHex(address))
	return publicKey, nil
}

func (b *Bridge) MintStatus(messageID models.Nat) (*models.MintStatus, error) {
	status, err := b.store.GetMintStatus(messageID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMintNotFound
	}
	return status, err
}

// Signature decodes the stored r||s||v bytes and renders them as hex.
func (b *Bridge) Signature(messageID models.Nat) (string, error) {
	raw, err := b.store.GetSignature(messageID)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrMintNotFound
	}
	if err != nil {
		return "", err
	}
	signature, err := util.DecodeSignature(raw)
	if err != nil {
		return "", fmt.Errorf("error decoding signature %s: %w", messageID.String(), err)
	}
	return signature.Hex(), nil
}

func (b *Bridge) PublicKey() ([]byte, error) {
	return b.publicKey()
}

func (b *Bridge) EthereumAddress() (string, error) {
	publicKey, err := b.publicKey()
	if err != nil {
		return "", err
	}
	address, err := util.DeriveAddress(publicKey)
	if err != nil {
		return "", err
	}
	return util.AddressHex(address), nil
}

// ResignMint signs a mint left in Init or FundReceived by a failed signing
// call, as long as it has not expired.
func (b *Bridge) ResignMint(ctx context.Context, caller string, messageID models.Nat) (*models.BridgeReceipt, error) {
	if err := b.requireController(caller); err != nil {
		return nil, err
	}
	status, err := b.MintStatus(messageID)
	if err != nil {
		return nil, err
	}
	if !status.State.CanTransition(models.MintStateSigned) {
		return nil, ledger.NewFatalError(ErrInvalidTransition, fmt.Sprintf("%s -> %s", status.State, models.MintStateSigned))
	}
	if status.ExpiredAt(b.ledger.Seconds()) {
		return nil, ledger.NewFatalError(ErrMintExpired, messageID.String())
	}
	target, err := util.ParseAddress(status.Recipient)
	if err != nil {
		return nil, ledger.NewFatalError(ErrInvalidTarget, status.Recipient)
	}
	contract, _, err := b.contractAddress()
	if err != nil {
		return nil, err
	}
	publicKey, err := b.publicKey()
	if err != nil {
		return nil, err
	}
	log.Info("[BRIDGE] Re-signing message ", messageID.String())
	return b.sign(ctx, status, target, contract, publicKey)
}

// ConfirmMint records that the foreign chain has redeemed the claim.
func (b *Bridge) ConfirmMint(caller string, messageID models.Nat) (*models.MintStatus, error) {
	if err := b.requireController(caller); err != nil {
		return nil, err
	}
	var confirmed *models.MintStatus
	err := b.ledger.Turn("bridge_confirm", func() error {
		status, err := b.MintStatus(messageID)
		if err != nil {
			return err
		}
		if !status.State.CanTransition(models.MintStateConfirmed) {
			return ledger.NewFatalError(ErrInvalidTransition, fmt.Sprintf("%s -> %s", status.State, models.MintStateConfirmed))
		}
		status.State = models.MintStateConfirmed
		status.UpdatedAt = time.Now()
		if err := b.store.PutMintStatus(status); err != nil {
			return fmt.Errorf("error storing mint status: %w", err)
		}
		confirmed = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("[BRIDGE] Confirmed message ", messageID.String())
	b.publish(events.EventMintConfirmed, confirmed, "")
	return confirmed, nil
}

// ExpireMints moves every non terminal mint whose expiry is before now
// (in seconds) to Expired and returns how many changed.
func (b *Bridge) ExpireMints(now uint64) (int, error) {
	var expired []*models.MintStatus
	err := b.ledger.Turn("bridge_expire", func() error {
		var candidates []*models.MintStatus
		err := b.store.ForEachMintStatus(func(status *models.MintStatus) bool {
			if status.State.CanTransition(models.MintStateExpired) && status.ExpiredAt(now) {
				candidates = append(candidates, status)
			}
			return true
		})
		if err != nil {
			return fmt.Errorf("error listing mint statuses: %w", err)
		}
		for _, status := range candidates {
			status.State = models.MintStateExpired
			status.UpdatedAt = time.Now()
			if err := b.store.PutMintStatus(status); err != nil {
				return fmt.Errorf("error storing mint status: %w", err)
			}
			expired = append(expired, status)
		}
		return nil
	})
	for _, status := range expired {
		b.publish(events.EventMintExpired, status, "")
	}
	return len(expired), err
}
