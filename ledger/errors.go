package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrNoTokens           = errors.New("no tokens provided")
	ErrDuplicateTokenID   = errors.New("duplicate token id")
	ErrBatchTooLarge      = errors.New("batch exceeds max update batch size")
	ErrMemoTooLarge       = errors.New("memo exceeds max memo size")
	ErrNonExistentToken   = errors.New("invalid id")
	ErrSelfTransfer       = errors.New("self transfer")
	ErrSelfApprove        = errors.New("self approve")
	ErrUnauthorizedMinter = errors.New("unauthorized caller")
	ErrSupplyCapReached   = errors.New("supply cap reached")
	ErrTokenExists        = errors.New("id exist")
	ErrUnauthorizedCaller = errors.New("caller is not a controller")
	ErrNotInitialized     = errors.New("ledger not initialized")
	ErrLedgerBusy         = errors.New("ledger busy")
)

// FatalError aborts a call with no state change. It is never a typed
// recoverable result.
type FatalError struct {
	Err    error
	Detail string
}

func fatal(err error, detail string) *FatalError {
	return &FatalError{Err: err, Detail: detail}
}

func (e *FatalError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Detail)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func IsFatal(err error) bool {
	var f *FatalError
	return errors.As(err, &f)
}

// NewFatalError lets collaborating packages report their own fatal sentinels.
func NewFatalError(err error, detail string) *FatalError {
	return fatal(err, detail)
}
