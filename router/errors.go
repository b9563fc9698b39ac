package router

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/cknft-bridge/bridge"
	"github.com/dan13ram/cknft-bridge/eth"
	"github.com/dan13ram/cknft-bridge/ledger"
	"github.com/dan13ram/cknft-bridge/models"
	"github.com/dan13ram/cknft-bridge/store"
)

var (
	ErrMissingCaller   = errors.New("missing caller principal")
	ErrMissingParam    = errors.New("missing query parameter")
	ErrInvalidParam    = errors.New("invalid query parameter")
	ErrInvalidBody     = errors.New("invalid request body")
	ErrDepositDisabled = errors.New("deposit verification is not configured")
)

// ServiceError is the body of every non typed error response.
type ServiceError struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error interface{} `json:"error"`
}

func writeJSON(rw http.ResponseWriter, status int, body interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(body); err != nil {
		log.Error("[HTTP] Error encoding response: ", err)
	}
}

func statusOf(err error) int {
	var transferErr *models.TransferError
	var approvalErr *models.ApprovalError
	switch {
	case errors.As(err, &transferErr), errors.As(err, &approvalErr):
		return http.StatusBadRequest
	case errors.Is(err, ErrMissingCaller):
		return http.StatusUnauthorized
	case errors.Is(err, ErrMissingParam),
		errors.Is(err, ErrInvalidParam),
		errors.Is(err, ErrInvalidBody),
		errors.Is(err, bridge.ErrInvalidTarget):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrUnauthorizedCaller), errors.Is(err, ledger.ErrUnauthorizedMinter):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrNonExistentToken),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, bridge.ErrMintNotFound),
		errors.Is(err, bridge.ErrPublicKeyNotSet),
		errors.Is(err, eth.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, bridge.ErrInvalidTransition), errors.Is(err, bridge.ErrMintExpired):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrLedgerBusy),
		errors.Is(err, ErrDepositDisabled),
		errors.Is(err, bridge.ErrBridgeContractNotSet):
		return http.StatusServiceUnavailable
	case ledger.IsFatal(err),
		errors.Is(err, eth.ErrInvalidTxHash),
		errors.Is(err, eth.ErrUnexpectedInput),
		errors.Is(err, eth.ErrTransactionFailed),
		errors.Is(err, eth.ErrTransactionPending):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(rw http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Error("[HTTP] Internal error: ", err)
	}

	var transferErr *models.TransferError
	var approvalErr *models.ApprovalError
	switch {
	case errors.As(err, &transferErr):
		writeJSON(rw, status, errorResponse{Error: transferErr})
	case errors.As(err, &approvalErr):
		writeJSON(rw, status, errorResponse{Error: approvalErr})
	default:
		writeJSON(rw, status, errorResponse{Error: ServiceError{Message: err.Error()}})
	}
}
