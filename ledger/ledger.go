package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dan13ram/cknft-bridge/metrics"
	"github.com/dan13ram/cknft-bridge/models"
	"github.com/dan13ram/cknft-bridge/store"
	log "github.com/sirupsen/logrus"
)

const LockResource = "ledger"

// Locker is the distributed exclusive lock taken for every turn.
type Locker interface {
	XLock(resourceID string) (string, error)
	Unlock(lockID string) error
}

// Ledger serialises every state change of the token ledger.
type Ledger struct {
	mu     sync.Mutex
	store  store.Store
	locker Locker
	now    func() time.Time
}

type Option func(*Ledger)

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

func WithLocker(locker Locker) Option {
	return func(l *Ledger) {
		l.locker = locker
	}
}

func NewLedger(s store.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: s,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) Store() store.Store {
	return l.store
}

// Time is the ledger clock in nanoseconds since the unix epoch.
func (l *Ledger) Time() uint64 {
	return uint64(l.now().UnixNano())
}

// Seconds is the ledger clock in whole seconds.
func (l *Ledger) Seconds() uint64 {
	return uint64(l.now().Unix())
}

// Turn runs fn while holding the ledger mutex and, when configured, the
// distributed lock. Nothing else mutates the store while fn runs.
func (l *Ledger) Turn(operation string, fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	defer func() {
		metrics.LedgerTurnDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	if l.locker != nil {
		lockID, err := l.locker.XLock(LockResource)
		if err != nil {
			log.Error("[LEDGER] Error acquiring lock for ", operation, ": ", err)
			return ErrLedgerBusy
		}
		defer func() {
			if err := l.locker.Unlock(lockID); err != nil {
				log.Error("[LEDGER] Error releasing lock for ", operation, ": ", err)
			}
		}()
	}

	return fn()
}

func (l *Ledger) config() (*models.CollectionConfig, error) {
	cfg, err := l.store.GetConfig()
	if errors.Is(err, store.ErrNotFound) {
		return nil, fatal(ErrNotInitialized, "")
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return cfg, nil
}

func (l *Ledger) token(id models.Nat) (*models.Token, error) {
	token, err := l.store.GetToken(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fatal(ErrNonExistentToken, id.String())
	}
	return token, err
}

func (l *Ledger) nextTransactionID() (models.Nat, error) {
	id, err := l.store.NextTransactionID()
	if err != nil {
		return models.Nat{}, fmt.Errorf("error incrementing transaction id: %w", err)
	}
	if v, ok := id.Uint64(); ok {
		metrics.TransactionID.Set(float64(v))
	}
	return id, nil
}

func outcome(err error) string {
	var transferErr *models.TransferError
	var approvalErr *models.ApprovalError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case IsFatal(err):
		return metrics.OutcomeFatal
	case errors.As(err, &transferErr), errors.As(err, &approvalErr):
		return metrics.OutcomeRecoverable
	default:
		return metrics.OutcomeError
	}
}

func record(operation string, err error) {
	metrics.LedgerOperations.WithLabelValues(operation, outcome(err)).Inc()
}

func uniqueIDs(ids []models.Nat) error {
	seen := make(map[models.Nat]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return fatal(ErrDuplicateTokenID, id.String())
		}
		seen[id] = struct{}{}
	}
	return nil
}

// window returns the permitted created_at_time range around now.
func window(cfg *models.CollectionConfig, now uint64) (past uint64, future uint64) {
	span := cfg.TxWindow + cfg.PermittedDrift
	if span < cfg.TxWindow || span > now {
		past = 0
	} else {
		past = now - span
	}
	future = now + cfg.PermittedDrift
	if future < now {
		future = ^uint64(0)
	}
	return past, future
}
