package router

import (
	"net/http"

	"github.com/dan13ram/cknft-bridge/ledger"
	"github.com/dan13ram/cknft-bridge/models"
)

// LedgerController defines the HTTP handlers of the NFT ledger.
type LedgerController struct {
	ledger *ledger.Ledger
}

func NewLedgerController(l *ledger.Ledger) *LedgerController {
	return &LedgerController{ledger: l}
}

type TransactionResponse struct {
	TransactionID models.Nat `json:"transaction_id"`
}

type NatResponse struct {
	Value models.Nat `json:"value"`
}

func (c *LedgerController) GetToken(rw http.ResponseWriter, r *http.Request) {
	id, err := natParam(r, "id")
	if err != nil {
		writeError(rw, err)
		return
	}
	token, err := c.ledger.Token(id)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, token)
}

func (c *LedgerController) GetTokenMetadata(rw http.ResponseWriter, r *http.Request) {
	id, err := natParam(r, "id")
	if err != nil {
		writeError(rw, err)
		return
	}
	metadata, err := c.ledger.TokenMetadata(id)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, metadata)
}

func (c *LedgerController) GetOwnerOf(rw http.ResponseWriter, r *http.Request) {
	id, err := natParam(r, "id")
	if err != nil {
		writeError(rw, err)
		return
	}
	owner, err := c.ledger.OwnerOf(id)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, owner)
}

func (c *LedgerController) GetBalanceOf(rw http.ResponseWriter, r *http.Request) {
	account, err := accountParam(r)
	if err != nil {
		writeError(rw, err)
		return
	}
	balance, err := c.ledger.BalanceOf(account)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, NatResponse{Value: balance})
}

func (c *LedgerController) GetTokensOf(rw http.ResponseWriter, r *http.Request) {
	account, err := accountParam(r)
	if err != nil {
		writeError(rw, err)
		return
	}
	ids, err := c.ledger.TokensOf(account)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, ids)
}

func (c *LedgerController) GetTotalSupply(rw http.ResponseWriter, _ *http.Request) {
	supply, err := c.ledger.TotalSupply()
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, NatResponse{Value: supply})
}

func (c *LedgerController) GetTransactionID(rw http.ResponseWriter, _ *http.Request) {
	txID, err := c.ledger.TransactionID()
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, TransactionResponse{TransactionID: txID})
}

func (c *LedgerController) GetMetadata(rw http.ResponseWriter, _ *http.Request) {
	metadata, err := c.ledger.CollectionMetadata()
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, metadata)
}

func (c *LedgerController) GetSupportedStandards(rw http.ResponseWriter, _ *http.Request) {
	writeJSON(rw, http.StatusOK, c.ledger.SupportedStandards())
}

func (c *LedgerController) GetTransferLog(rw http.ResponseWriter, r *http.Request) {
	index, err := uint64Param(r, "id")
	if err != nil {
		writeError(rw, err)
		return
	}
	entry, err := c.ledger.TransferLog(index)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, entry)
}

func (c *LedgerController) GetPartitionDetails(rw http.ResponseWriter, _ *http.Request) {
	details, err := c.ledger.PartitionDetails()
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, details)
}

func (c *LedgerController) Transfer(rw http.ResponseWriter, r *http.Request) {
	caller, err := requireCaller(r)
	if err != nil {
		writeError(rw, err)
		return
	}
	var args models.TransferArgs
	if err := decodeBody(r, &args); err != nil {
		writeError(rw, err)
		return
	}
	txID, err := c.ledger.Transfer(caller, args)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, TransactionResponse{TransactionID: txID})
}

func (c *LedgerController) Approve(rw http.ResponseWriter, r *http.Request) {
	caller, err := requireCaller(r)
	if err != nil {
		writeError(rw, err)
		return
	}
	var args models.ApprovalArgs
	if err := decodeBody(r, &args); err != nil {
		writeError(rw, err)
		return
	}
	txID, err := c.ledger.Approve(caller, args)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, TransactionResponse{TransactionID: txID})
}

func (c *LedgerController) Mint(rw http.ResponseWriter, r *http.Request) {
	caller, err := requireCaller(r)
	if err != nil {
		writeError(rw, err)
		return
	}
	var args models.MintArgs
	if err := decodeBody(r, &args); err != nil {
		writeError(rw, err)
		return
	}
	txID, err := c.ledger.Mint(caller, args)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, TransactionResponse{TransactionID: txID})
}

func (c *LedgerController) UpdateConfig(rw http.ResponseWriter, r *http.Request) {
	caller, err := requireCaller(r)
	if err != nil {
		writeError(rw, err)
		return
	}
	var cfg models.CollectionConfig
	if err := decodeBody(r, &cfg); err != nil {
		writeError(rw, err)
		return
	}
	if err := c.ledger.UpdateConfig(caller, &cfg); err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, cfg)
}
