package ledger

import (
	"fmt"

	"github.com/dan13ram/cknft-bridge/models"
	log "github.com/sirupsen/logrus"
)

// CustodyTransfer moves a single token held by the caller into custodian
// within one turn. prepare runs after the transfer has been validated and
// before anything is written; an error from prepare aborts the transfer.
func (l *Ledger) CustodyTransfer(caller string, subaccount *models.Subaccount, id models.Nat, custodian models.Account, prepare func() error) (models.Nat, error) {
	var txID models.Nat
	err := l.Turn("custody_transfer", func() error {
		cfg, err := l.config()
		if err != nil {
			return err
		}
		token, err := l.token(id)
		if err != nil {
			return err
		}

		from := models.NewAccount(caller, subaccount)
		to := custodian.Normalize()
		now := l.Time()
		if !token.Owner.Equal(from) && !token.IsApproved(from, now+cfg.PermittedDrift) {
			return models.NewUnauthorizedTransferError([]models.Nat{id})
		}
		if token.Owner.Equal(to) {
			return fatal(ErrSelfTransfer, id.String())
		}

		if prepare != nil {
			if err := prepare(); err != nil {
				return err
			}
		}

		entry := &models.TransferLog{ID: id, At: now, From: from, To: to}
		if err := l.commitTransfer(token, to, entry); err != nil {
			return err
		}
		txID, err = l.nextTransactionID()
		return err
	})
	record("custody_transfer", err)
	if err != nil {
		return models.Nat{}, fmt.Errorf("custody transfer of %s: %w", id.String(), err)
	}
	log.Debug("[LEDGER] Token ", id.String(), " moved into custody of ", custodian.String())
	return txID, nil
}
