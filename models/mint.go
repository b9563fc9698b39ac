package models

import (
	"time"
)

type MintState string

// types of mint state
const (
	MintStateInit         MintState = "Init"
	MintStateFundReceived MintState = "FundReceived"
	MintStateSigned       MintState = "Signed"
	MintStateConfirmed    MintState = "Confirmed"
	MintStateExpired      MintState = "Expired"
)

func (s MintState) Terminal() bool {
	switch s {
	case MintStateConfirmed, MintStateExpired:
		return true
	case MintStateInit, MintStateFundReceived, MintStateSigned:
		return false
	default:
		return true
	}
}

// CanTransition lists the edges of the mint state machine.
func (s MintState) CanTransition(next MintState) bool {
	switch next {
	case MintStateFundReceived:
		return s == MintStateInit
	case MintStateSigned:
		return s == MintStateInit || s == MintStateFundReceived
	case MintStateConfirmed:
		return s == MintStateSigned
	case MintStateExpired:
		return !s.Terminal()
	default:
		return false
	}
}

// MintStatus tracks one bridge mint keyed by its message id.
type MintStatus struct {
	MessageID Nat       `bson:"_id" json:"message_id"`
	TokenID   uint64    `bson:"token_id" json:"token_id"`
	Amount    uint64    `bson:"amount" json:"amount"`
	Expiry    uint64    `bson:"expiry" json:"expiry"`
	State     MintState `bson:"state" json:"state"`
	Recipient string    `bson:"recipient" json:"recipient"`
	ChainID   uint64    `bson:"chain_id" json:"chain_id"`
	Caller    Account   `bson:"caller" json:"caller"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ExpiredAt reports whether the wall clock, in seconds, has passed the expiry.
func (m *MintStatus) ExpiredAt(nowSeconds uint64) bool {
	return nowSeconds > m.Expiry
}

type BridgeReceipt struct {
	TokenID   uint64 `json:"id"`
	Target    string `json:"to"`
	MessageID Nat    `json:"msgid"`
	Expiry    uint64 `json:"expiry"`
	Signature string `json:"signature"`
}

type StoredSignature struct {
	MessageID Nat    `bson:"_id" json:"message_id"`
	Signature []byte `bson:"signature" json:"signature"`
}
