package ledger

import (
	"errors"
	"fmt"

	"github.com/dan13ram/cknft-bridge/models"
	"github.com/dan13ram/cknft-bridge/store"
)

func (l *Ledger) Token(id models.Nat) (*models.Token, error) {
	return l.token(id)
}

func (l *Ledger) OwnerOf(id models.Nat) (models.Account, error) {
	token, err := l.token(id)
	if err != nil {
		return models.Account{}, err
	}
	return token.Owner, nil
}

func (l *Ledger) TokenMetadata(id models.Nat) ([]models.MetadataEntry, error) {
	token, err := l.token(id)
	if err != nil {
		return nil, err
	}
	return token.Metadata(), nil
}

func (l *Ledger) tokensOf(account models.Account) ([]models.Nat, error) {
	ids := []models.Nat{}
	err := l.store.ForEachToken(func(token *models.Token) bool {
		if token.Owner.Equal(account) {
			ids = append(ids, token.ID)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("error listing tokens: %w", err)
	}
	return ids, nil
}

// TokensOf lists the ids owned by account in ascending order.
func (l *Ledger) TokensOf(account models.Account) ([]models.Nat, error) {
	return l.tokensOf(account)
}

func (l *Ledger) BalanceOf(account models.Account) (models.Nat, error) {
	ids, err := l.tokensOf(account)
	if err != nil {
		return models.Nat{}, err
	}
	return models.NewNat(uint64(len(ids))), nil
}

func (l *Ledger) TotalSupply() (models.Nat, error) {
	return l.store.TotalSupply()
}

func (l *Ledger) TransactionID() (models.Nat, error) {
	return l.store.TransactionID()
}

func (l *Ledger) SupplyCap() (*uint64, error) {
	cfg, err := l.config()
	if err != nil {
		return nil, err
	}
	return cfg.SupplyCap, nil
}

func (l *Ledger) Config() (*models.CollectionConfig, error) {
	return l.config()
}

func (l *Ledger) CollectionMetadata() (models.CollectionMetadata, error) {
	cfg, err := l.config()
	if err != nil {
		return models.CollectionMetadata{}, err
	}
	supply, err := l.store.TotalSupply()
	if err != nil {
		return models.CollectionMetadata{}, err
	}
	return cfg.Metadata(supply), nil
}

func (l *Ledger) SupportedStandards() []models.Standard {
	return []models.Standard{{Name: models.StandardName, URL: models.StandardURL}}
}

func (l *Ledger) TransferLog(index uint64) (*models.TransferLog, error) {
	entry, err := l.store.GetTransferLog(index)
	if errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("error reading transfer log: %w", err)
	}
	return entry, nil
}

func (l *Ledger) PartitionDetails() ([]models.PartitionDetail, error) {
	return l.store.PartitionDetails()
}
