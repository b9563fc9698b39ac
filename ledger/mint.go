package ledger

import (
	"errors"
	"fmt"

	"github.com/dan13ram/cknft-bridge/metrics"
	"github.com/dan13ram/cknft-bridge/models"
	log "github.com/sirupsen/logrus"
)

// Mint creates a new token. Only the configured minting authority may call it.
func (l *Ledger) Mint(caller string, args models.MintArgs) (models.Nat, error) {
	var txID models.Nat
	err := l.Turn("mint", func() error {
		var err error
		txID, err = l.mint(caller, args)
		return err
	})
	if errors.Is(err, ErrLedgerBusy) {
		err = models.NewGenericTransferError(1, err.Error())
	}
	record("mint", err)
	if err != nil {
		log.Error("[LEDGER] Mint of ", args.ID.String(), " by ", caller, " failed: ", err)
		return models.Nat{}, err
	}
	log.Info("[LEDGER] Minted token ", args.ID.String(), " to ", args.To.String())
	return txID, nil
}

func (l *Ledger) mint(caller string, args models.MintArgs) (models.Nat, error) {
	cfg, err := l.config()
	if err != nil {
		return models.Nat{}, err
	}

	if caller != cfg.MintingAuthority {
		return models.Nat{}, fatal(ErrUnauthorizedMinter, caller)
	}

	supply, err := l.store.TotalSupply()
	if err != nil {
		return models.Nat{}, fmt.Errorf("error reading total supply: %w", err)
	}
	if cfg.SupplyCap != nil && supply.Cmp(models.NewNat(*cfg.SupplyCap)) >= 0 {
		return models.Nat{}, fatal(ErrSupplyCapReached, supply.String())
	}

	exists, err := l.store.HasToken(args.ID)
	if err != nil {
		return models.Nat{}, fmt.Errorf("error reading token: %w", err)
	}
	if exists {
		return models.Nat{}, fatal(ErrTokenExists, args.ID.String())
	}

	token := &models.Token{
		ID:          args.ID,
		Owner:       args.To.Normalize(),
		Name:        args.Name,
		Description: args.Description,
		Image:       args.Image,
		Approvals:   []models.Approval{},
	}

	supply, err = l.store.IncrementTotalSupply()
	if err != nil {
		return models.Nat{}, fmt.Errorf("error incrementing total supply: %w", err)
	}
	if v, ok := supply.Uint64(); ok {
		metrics.TotalSupply.Set(float64(v))
	}

	if err := l.store.PutToken(token); err != nil {
		return models.Nat{}, fmt.Errorf("error storing token: %w", err)
	}

	return l.nextTransactionID()
}
