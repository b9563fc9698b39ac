package ledger

import (
	"errors"
	"fmt"

	"github.com/dan13ram/cknft-bridge/models"
	log "github.com/sirupsen/logrus"
)

// Transfer moves args.TokenIDs from the caller's account to args.To. It
// returns the new transaction id, a recoverable *models.TransferError, or a
// *FatalError that left the ledger untouched.
func (l *Ledger) Transfer(caller string, args models.TransferArgs) (models.Nat, error) {
	var txID models.Nat
	err := l.Turn("transfer", func() error {
		var err error
		txID, err = l.transfer(caller, args)
		return err
	})
	if errors.Is(err, ErrLedgerBusy) {
		err = models.NewGenericTransferError(1, err.Error())
	}
	record("transfer", err)
	if err != nil {
		log.Debug("[LEDGER] Transfer by ", caller, " failed: ", err)
		return models.Nat{}, err
	}
	log.Debug("[LEDGER] Transfer by ", caller, " completed with transaction ", txID.String())
	return txID, nil
}

type pendingTransfer struct {
	token     *models.Token
	duplicate *uint64
}

func (l *Ledger) transfer(caller string, args models.TransferArgs) (models.Nat, error) {
	cfg, err := l.config()
	if err != nil {
		return models.Nat{}, err
	}

	from := models.NewAccount(caller, args.SpenderSubaccount)
	to := args.To.Normalize()

	if len(args.TokenIDs) == 0 {
		return models.Nat{}, fatal(ErrNoTokens, "")
	}
	if cfg.MaxUpdateBatchSize != nil && uint64(len(args.TokenIDs)) > *cfg.MaxUpdateBatchSize {
		return models.Nat{}, fatal(ErrBatchTooLarge, fmt.Sprintf("%d > %d", len(args.TokenIDs), *cfg.MaxUpdateBatchSize))
	}
	if cfg.MaxMemoSize != nil && uint64(len(args.Memo)) > *cfg.MaxMemoSize {
		return models.Nat{}, fatal(ErrMemoTooLarge, fmt.Sprintf("%d > %d", len(args.Memo), *cfg.MaxMemoSize))
	}
	if err := uniqueIDs(args.TokenIDs); err != nil {
		return models.Nat{}, err
	}

	pending := make([]pendingTransfer, len(args.TokenIDs))
	for i, id := range args.TokenIDs {
		token, err := l.token(id)
		if err != nil {
			return models.Nat{}, err
		}
		pending[i].token = token
	}

	now := l.Time()
	at := now
	if args.CreatedAtTime != nil {
		created := *args.CreatedAtTime
		past, future := window(cfg, now)
		if created < past {
			return models.Nat{}, models.NewTooOldError()
		}
		if created > future {
			return models.Nat{}, models.NewCreatedInFutureError(now)
		}
		at = created

		for i, id := range args.TokenIDs {
			index, found, err := l.store.FindTransferLog(models.TransferLogQuery{
				ID:    id,
				At:    created,
				After: past,
				Memo:  args.Memo,
				From:  from,
				To:    to,
			})
			if err != nil {
				return models.Nat{}, fmt.Errorf("error searching transfer log: %w", err)
			}
			if found {
				pending[i].duplicate = &index
			}
		}
	}

	approvalTime := now + cfg.PermittedDrift
	authorized := func(token *models.Token) bool {
		return token.Owner.Equal(from) || token.IsApproved(from, approvalTime)
	}

	entry := func(token *models.Token) *models.TransferLog {
		return &models.TransferLog{ID: token.ID, At: at, Memo: args.Memo, From: from, To: to}
	}

	if args.Atomic() {
		for _, p := range pending {
			if p.duplicate != nil {
				return models.Nat{}, models.NewDuplicateError(*p.duplicate)
			}
		}
		var unauthorized []models.Nat
		for _, p := range pending {
			if !authorized(p.token) {
				unauthorized = append(unauthorized, p.token.ID)
			}
		}
		if len(unauthorized) > 0 {
			return models.Nat{}, models.NewUnauthorizedTransferError(unauthorized)
		}
		for _, p := range pending {
			if p.token.Owner.Equal(to) {
				return models.Nat{}, fatal(ErrSelfTransfer, p.token.ID.String())
			}
		}
		for _, p := range pending {
			if err := l.commitTransfer(p.token, to, entry(p.token)); err != nil {
				return models.Nat{}, err
			}
		}
		return l.nextTransactionID()
	}

	var planned []*models.Token
	var unauthorized []models.Nat
	var duplicate error
	for _, p := range pending {
		if p.duplicate != nil {
			duplicate = models.NewDuplicateError(*p.duplicate)
			break
		}
		if p.token.Owner.Equal(to) {
			return models.Nat{}, fatal(ErrSelfTransfer, p.token.ID.String())
		}
		if !authorized(p.token) {
			unauthorized = append(unauthorized, p.token.ID)
			continue
		}
		planned = append(planned, p.token)
	}

	for _, token := range planned {
		if err := l.commitTransfer(token, to, entry(token)); err != nil {
			return models.Nat{}, err
		}
	}
	if duplicate == nil && len(unauthorized) == 0 {
		return l.nextTransactionID()
	}
	// A partial commit still counts as a transaction.
	if len(planned) > 0 {
		if _, err := l.nextTransactionID(); err != nil {
			return models.Nat{}, err
		}
	}
	if duplicate != nil {
		return models.Nat{}, duplicate
	}
	return models.Nat{}, models.NewUnauthorizedTransferError(unauthorized)
}

func (l *Ledger) commitTransfer(token *models.Token, to models.Account, entry *models.TransferLog) error {
	token.TransferTo(to)
	if err := l.store.PutToken(token); err != nil {
		return fmt.Errorf("error storing token %s: %w", token.ID.String(), err)
	}
	if _, err := l.store.AppendTransferLog(entry); err != nil {
		return fmt.Errorf("error appending transfer log: %w", err)
	}
	return nil
}
