package router

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/dan13ram/cknft-bridge/bridge"
	"github.com/dan13ram/cknft-bridge/eth"
	"github.com/dan13ram/cknft-bridge/models"
)

// BridgeController defines the HTTP handlers of the ethereum bridge.
type BridgeController struct {
	bridge   *bridge.Bridge
	deposits *eth.DepositVerifier
}

func NewBridgeController(b *bridge.Bridge, deposits *eth.DepositVerifier) *BridgeController {
	return &BridgeController{bridge: b, deposits: deposits}
}

type BridgeMintRequest struct {
	TokenID uint64 `json:"id"`
	ChainID uint64 `json:"chain_id"`
	Target  string `json:"to"`
}

type MessageRequest struct {
	MessageID models.Nat `json:"message_id"`
}

type DepositRequest struct {
	Hash string `json:"hash"`
}

type DepositResponse struct {
	Amount string `json:"amount"`
	Sender string `json:"sender"`
}

type ValueResponse struct {
	Value string `json:"value"`
}

type SignatureResponse struct {
	MessageID models.Nat `json:"message_id"`
	Signature string     `json:"signature"`
}

func (c *BridgeController) GetPublicKey(rw http.ResponseWriter, _ *http.Request) {
	publicKey, err := c.bridge.PublicKey()
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, ValueResponse{Value: hexutil.Encode(publicKey)})
}

func (c *BridgeController) GetEthereumAddress(rw http.ResponseWriter, _ *http.Request) {
	address, err := c.bridge.EthereumAddress()
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, ValueResponse{Value: address})
}

func (c *BridgeController) GetMintStatus(rw http.ResponseWriter, r *http.Request) {
	messageID, err := natParam(r, "id")
	if err != nil {
		writeError(rw, err)
		return
	}
	status, err := c.bridge.MintStatus(messageID)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, status)
}

func (c *BridgeController) GetSignature(rw http.ResponseWriter, r *http.Request) {
	messageID, err := natParam(r, "id")
	if err != nil {
		writeError(rw, err)
		return
	}
	signature, err := c.bridge.Signature(messageID)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, SignatureResponse{MessageID: messageID, Signature: signature})
}

func (c *BridgeController) GetDepositSubaccount(rw http.ResponseWriter, r *http.Request) {
	principal, err := queryParam(r, "principal")
	if err != nil {
		writeError(rw, err)
		return
	}
	subaccount, err := eth.DepositSubaccount(principal)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, ValueResponse{Value: subaccount})
}

func (c *BridgeController) GetExpectedInput(rw http.ResponseWriter, _ *http.Request) {
	if c.deposits == nil {
		writeError(rw, ErrDepositDisabled)
		return
	}
	writeJSON(rw, http.StatusOK, ValueResponse{Value: c.deposits.ExpectedInput()})
}

func (c *BridgeController) InitiateMint(rw http.ResponseWriter, r *http.Request) {
	caller, err := requireCaller(r)
	if err != nil {
		writeError(rw, err)
		return
	}
	var req BridgeMintRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(rw, err)
		return
	}
	receipt, err := c.bridge.InitiateBridgeMint(r.Context(), caller, req.TokenID, req.ChainID, req.Target)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, receipt)
}

func (c *BridgeController) RefreshKey(rw http.ResponseWriter, r *http.Request) {
	caller, err := requireCaller(r)
	if err != nil {
		writeError(rw, err)
		return
	}
	publicKey, err := c.bridge.RefreshSignerKey(r.Context(), caller)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, ValueResponse{Value: hexutil.Encode(publicKey)})
}

func (c *BridgeController) ConfirmMint(rw http.ResponseWriter, r *http.Request) {
	caller, err := requireCaller(r)
	if err != nil {
		writeError(rw, err)
		return
	}
	var req MessageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(rw, err)
		return
	}
	status, err := c.bridge.ConfirmMint(caller, req.MessageID)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, status)
}

func (c *BridgeController) ResignMint(rw http.ResponseWriter, r *http.Request) {
	caller, err := requireCaller(r)
	if err != nil {
		writeError(rw, err)
		return
	}
	var req MessageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(rw, err)
		return
	}
	receipt, err := c.bridge.ResignMint(r.Context(), caller, req.MessageID)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, receipt)
}

func (c *BridgeController) VerifyDeposit(rw http.ResponseWriter, r *http.Request) {
	if c.deposits == nil {
		writeError(rw, ErrDepositDisabled)
		return
	}
	var req DepositRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(rw, err)
		return
	}
	amount, sender, err := c.deposits.VerifyDeposit(r.Context(), req.Hash)
	if err != nil {
		writeError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, DepositResponse{Amount: amount.String(), Sender: sender.Hex()})
}
