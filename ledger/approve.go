package ledger

import (
	"errors"
	"fmt"

	"github.com/dan13ram/cknft-bridge/models"
	log "github.com/sirupsen/logrus"
)

// Approve grants args.Spender the right to transfer the caller's tokens.
// The whole batch is checked before any approval is written.
func (l *Ledger) Approve(caller string, args models.ApprovalArgs) (models.Nat, error) {
	var txID models.Nat
	err := l.Turn("approve", func() error {
		var err error
		txID, err = l.approve(caller, args)
		return err
	})
	if errors.Is(err, ErrLedgerBusy) {
		err = models.NewTemporaryUnavailableError()
	}
	record("approve", err)
	if err != nil {
		log.Debug("[LEDGER] Approve by ", caller, " failed: ", err)
		return models.Nat{}, err
	}
	return txID, nil
}

func (l *Ledger) approve(caller string, args models.ApprovalArgs) (models.Nat, error) {
	cfg, err := l.config()
	if err != nil {
		return models.Nat{}, err
	}

	owner := models.NewAccount(caller, args.FromSubaccount)
	spender := args.Spender.Normalize()

	ids := args.TokenIDs
	if ids == nil {
		ids, err = l.tokensOf(owner)
		if err != nil {
			return models.Nat{}, err
		}
	}
	if len(ids) == 0 {
		return models.Nat{}, fatal(ErrNoTokens, "")
	}
	if cfg.MaxUpdateBatchSize != nil && uint64(len(ids)) > *cfg.MaxUpdateBatchSize {
		return models.Nat{}, fatal(ErrBatchTooLarge, fmt.Sprintf("%d > %d", len(ids), *cfg.MaxUpdateBatchSize))
	}
	if cfg.MaxMemoSize != nil && uint64(len(args.Memo)) > *cfg.MaxMemoSize {
		return models.Nat{}, fatal(ErrMemoTooLarge, fmt.Sprintf("%d > %d", len(args.Memo), *cfg.MaxMemoSize))
	}
	if err := uniqueIDs(ids); err != nil {
		return models.Nat{}, err
	}

	tokens := make([]*models.Token, len(ids))
	for i, id := range ids {
		if tokens[i], err = l.token(id); err != nil {
			return models.Nat{}, err
		}
	}

	if args.CreatedAtTime != nil {
		now := l.Time()
		past, future := window(cfg, now)
		if *args.CreatedAtTime < past {
			return models.Nat{}, models.NewApprovalTooOldError()
		}
		if *args.CreatedAtTime > future {
			return models.Nat{}, models.NewGenericApprovalError(1, "created in future")
		}
	}

	for _, token := range tokens {
		if token.Owner.Equal(spender) {
			return models.Nat{}, fatal(ErrSelfApprove, token.ID.String())
		}
		if !token.Owner.Equal(owner) {
			return models.Nat{}, models.NewUnauthorizedApprovalError([]models.Nat{token.ID})
		}
	}

	for _, token := range tokens {
		approval := models.Approval{Account: spender}
		if args.ExpiresAt != nil {
			expires := *args.ExpiresAt
			approval.ExpiresAt = &expires
		}
		token.Approvals = append(token.Approvals, approval)
		if err := l.store.PutToken(token); err != nil {
			return models.Nat{}, fmt.Errorf("error storing token %s: %w", token.ID.String(), err)
		}
	}

	return l.nextTransactionID()
}
