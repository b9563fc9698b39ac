package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type TransferErrorKind string

const (
	TransferErrorTooOld          TransferErrorKind = "TooOld"
	TransferErrorCreatedInFuture TransferErrorKind = "CreatedInFuture"
	TransferErrorDuplicate       TransferErrorKind = "Duplicate"
	TransferErrorUnauthorized    TransferErrorKind = "Unauthorized"
	TransferErrorGeneric         TransferErrorKind = "GenericError"
)

// TransferError is a recoverable transfer failure returned to the caller.
type TransferError struct {
	Kind        TransferErrorKind
	LedgerTime  uint64
	DuplicateOf uint64
	TokenIDs    []Nat
	ErrorCode   uint64
	Message     string
}

func NewTooOldError() *TransferError {
	return &TransferError{Kind: TransferErrorTooOld}
}

func NewCreatedInFutureError(ledgerTime uint64) *TransferError {
	return &TransferError{Kind: TransferErrorCreatedInFuture, LedgerTime: ledgerTime}
}

func NewDuplicateError(duplicateOf uint64) *TransferError {
	return &TransferError{Kind: TransferErrorDuplicate, DuplicateOf: duplicateOf}
}

func NewUnauthorizedTransferError(ids []Nat) *TransferError {
	return &TransferError{Kind: TransferErrorUnauthorized, TokenIDs: ids}
}

func NewGenericTransferError(code uint64, message string) *TransferError {
	return &TransferError{Kind: TransferErrorGeneric, ErrorCode: code, Message: message}
}

func (e *TransferError) Error() string {
	switch e.Kind {
	case TransferErrorCreatedInFuture:
		return fmt.Sprintf("transfer created in future, ledger time %d", e.LedgerTime)
	case TransferErrorDuplicate:
		return fmt.Sprintf("duplicate transfer of log entry %d", e.DuplicateOf)
	case TransferErrorUnauthorized:
		return "unauthorized transfer of tokens " + joinNats(e.TokenIDs)
	case TransferErrorGeneric:
		return fmt.Sprintf("transfer error %d: %s", e.ErrorCode, e.Message)
	case TransferErrorTooOld:
		return "transfer too old"
	default:
		return "transfer error"
	}
}

func (e *TransferError) MarshalJSON() ([]byte, error) {
	var body interface{}
	switch e.Kind {
	case TransferErrorCreatedInFuture:
		body = map[string]uint64{"ledger_time": e.LedgerTime}
	case TransferErrorDuplicate:
		body = map[string]uint64{"duplicate_of": e.DuplicateOf}
	case TransferErrorUnauthorized:
		body = map[string][]Nat{"tokens_ids": nonNilNats(e.TokenIDs)}
	case TransferErrorGeneric:
		body = map[string]interface{}{"error_code": e.ErrorCode, "message": e.Message}
	default:
		body = nil
	}
	return json.Marshal(map[string]interface{}{string(e.Kind): body})
}

type ApprovalErrorKind string

const (
	ApprovalErrorUnauthorized         ApprovalErrorKind = "Unauthorized"
	ApprovalErrorTooOld               ApprovalErrorKind = "TooOld"
	ApprovalErrorTemporaryUnavailable ApprovalErrorKind = "TemporaryUnavailable"
	ApprovalErrorGeneric              ApprovalErrorKind = "GenericError"
)

type ApprovalError struct {
	Kind      ApprovalErrorKind
	TokenIDs  []Nat
	ErrorCode uint64
	Message   string
}

func NewUnauthorizedApprovalError(ids []Nat) *ApprovalError {
	return &ApprovalError{Kind: ApprovalErrorUnauthorized, TokenIDs: ids}
}

func NewApprovalTooOldError() *ApprovalError {
	return &ApprovalError{Kind: ApprovalErrorTooOld}
}

func NewTemporaryUnavailableError() *ApprovalError {
	return &ApprovalError{Kind: ApprovalErrorTemporaryUnavailable}
}

func NewGenericApprovalError(code uint64, message string) *ApprovalError {
	return &ApprovalError{Kind: ApprovalErrorGeneric, ErrorCode: code, Message: message}
}

func (e *ApprovalError) Error() string {
	switch e.Kind {
	case ApprovalErrorUnauthorized:
		return "unauthorized approval of tokens " + joinNats(e.TokenIDs)
	case ApprovalErrorTooOld:
		return "approval too old"
	case ApprovalErrorTemporaryUnavailable:
		return "approval temporarily unavailable"
	case ApprovalErrorGeneric:
		return fmt.Sprintf("approval error %d: %s", e.ErrorCode, e.Message)
	default:
		return "approval error"
	}
}

func (e *ApprovalError) MarshalJSON() ([]byte, error) {
	var body interface{}
	switch e.Kind {
	case ApprovalErrorUnauthorized:
		body = map[string][]Nat{"tokens_ids": nonNilNats(e.TokenIDs)}
	case ApprovalErrorGeneric:
		body = map[string]interface{}{"error_code": e.ErrorCode, "msg": e.Message}
	default:
		body = nil
	}
	return json.Marshal(map[string]interface{}{string(e.Kind): body})
}

func joinNats(ids []Nat) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func nonNilNats(ids []Nat) []Nat {
	if ids == nil {
		return []Nat{}
	}
	return ids
}
