package store

import (
	"errors"

	"github.com/dan13ram/cknft-bridge/models"
)

var ErrNotFound = errors.New("not found")

// Store owns every persisted ledger partition. Callers serialise mutations
// through the ledger turn; implementations only guarantee that each single
// operation is applied whole.
type Store interface {
	GetToken(id models.Nat) (*models.Token, error)
	PutToken(token *models.Token) error
	HasToken(id models.Nat) (bool, error)
	// ForEachToken visits tokens in ascending id order until fn returns false.
	ForEachToken(fn func(token *models.Token) bool) error

	AppendTransferLog(entry *models.TransferLog) (uint64, error)
	GetTransferLog(index uint64) (*models.TransferLog, error)
	// FindTransferLog returns the lowest index matching query.
	FindTransferLog(query models.TransferLogQuery) (uint64, bool, error)
	TransferLogLength() (uint64, error)

	NextTransactionID() (models.Nat, error)
	TransactionID() (models.Nat, error)
	IncrementTotalSupply() (models.Nat, error)
	TotalSupply() (models.Nat, error)

	// NextNonce returns the next unused nonce for subaccount, starting at 0.
	NextNonce(subaccount models.Subaccount) (uint64, error)

	GetMintStatus(messageID models.Nat) (*models.MintStatus, error)
	PutMintStatus(status *models.MintStatus) error
	ForEachMintStatus(fn func(status *models.MintStatus) bool) error

	GetSignature(messageID models.Nat) ([]byte, error)
	PutSignature(messageID models.Nat, signature []byte) error

	GetPublicKey() ([]byte, error)
	PutPublicKey(publicKey []byte) error

	GetConfig() (*models.CollectionConfig, error)
	PutConfig(config *models.CollectionConfig) error

	PartitionDetails() ([]models.PartitionDetail, error)
}

func cloneToken(t *models.Token) *models.Token {
	c := *t
	c.Owner = t.Owner.Normalize()
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.Image != nil {
		c.Image = append([]byte{}, t.Image...)
	}
	c.Approvals = make([]models.Approval, len(t.Approvals))
	for i, a := range t.Approvals {
		c.Approvals[i] = models.Approval{Account: a.Account.Normalize()}
		if a.ExpiresAt != nil {
			e := *a.ExpiresAt
			c.Approvals[i].ExpiresAt = &e
		}
	}
	return &c
}

func cloneConfig(c *models.CollectionConfig) *models.CollectionConfig {
	out := *c
	out.Controllers = append([]string{}, c.Controllers...)
	return &out
}
