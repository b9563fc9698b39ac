package events

import (
	"time"

	"github.com/dan13ram/cknft-bridge/models"
)

type EventType string

const (
	EventMintInitiated EventType = "mint_initiated"
	EventMintSigned    EventType = "mint_signed"
	EventMintConfirmed EventType = "mint_confirmed"
	EventMintExpired   EventType = "mint_expired"
)

// BridgeEvent is published whenever a bridge mint changes state.
type BridgeEvent struct {
	Type      EventType        `json:"type"`
	MessageID models.Nat       `json:"message_id"`
	TokenID   uint64           `json:"token_id"`
	State     models.MintState `json:"state"`
	Recipient string           `json:"recipient"`
	ChainID   uint64           `json:"chain_id"`
	Expiry    uint64           `json:"expiry"`
	Signature string           `json:"signature,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

func NewBridgeEvent(eventType EventType, status *models.MintStatus, signature string) *BridgeEvent {
	return &BridgeEvent{
		Type:      eventType,
		MessageID: status.MessageID,
		TokenID:   status.TokenID,
		State:     status.State,
		Recipient: status.Recipient,
		ChainID:   status.ChainID,
		Expiry:    status.Expiry,
		Signature: signature,
		Timestamp: time.Now(),
	}
}

type Publisher interface {
	Publish(event *BridgeEvent) error
	Close()
}

type noopPublisher struct{}

// NewNoopPublisher discards every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(*BridgeEvent) error {
	return nil
}

func (noopPublisher) Close() {}
