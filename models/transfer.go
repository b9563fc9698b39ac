package models

import "bytes"

type TransferArgs struct {
	SpenderSubaccount *Subaccount `json:"spender_subaccount,omitempty"`
	To                Account     `json:"to"`
	TokenIDs          []Nat       `json:"token_ids"`
	Memo              []byte      `json:"memo,omitempty"`
	CreatedAtTime     *uint64     `json:"created_at_time,omitempty"`
	IsAtomic          *bool       `json:"is_atomic,omitempty"`
}

// Atomic is true unless the caller explicitly asked for a non-atomic batch.
func (a TransferArgs) Atomic() bool {
	return a.IsAtomic == nil || *a.IsAtomic
}

type ApprovalArgs struct {
	FromSubaccount *Subaccount `json:"from_subaccount,omitempty"`
	Spender        Account     `json:"spender"`
	TokenIDs       []Nat       `json:"token_ids,omitempty"`
	ExpiresAt      *uint64     `json:"expires_at,omitempty"`
	Memo           []byte      `json:"memo,omitempty"`
	CreatedAtTime  *uint64     `json:"created_at_time,omitempty"`
}

type MintArgs struct {
	ID          Nat     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Image       []byte  `json:"image,omitempty"`
	To          Account `json:"to"`
}

type TransferLog struct {
	Index uint64  `bson:"_id" json:"index"`
	ID    Nat     `bson:"token_id" json:"id"`
	At    uint64  `bson:"at" json:"at"`
	Memo  []byte  `bson:"memo,omitempty" json:"memo,omitempty"`
	From  Account `bson:"from" json:"from"`
	To    Account `bson:"to" json:"to"`
}

// TransferLogQuery selects log entries that would make a new transfer a duplicate.
type TransferLogQuery struct {
	ID    Nat
	At    uint64
	After uint64
	Memo  []byte
	From  Account
	To    Account
}

func (q TransferLogQuery) Matches(entry *TransferLog) bool {
	return entry.At > q.After &&
		entry.ID == q.ID &&
		entry.At == q.At &&
		bytes.Equal(entry.Memo, q.Memo) &&
		entry.From.Equal(q.From) &&
		entry.To.Equal(q.To)
}
