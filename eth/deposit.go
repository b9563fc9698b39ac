package eth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"regexp"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/cknft-bridge/eth/client"
	"github.com/dan13ram/cknft-bridge/metrics"
	"github.com/dan13ram/cknft-bridge/models"
)

const DepositSignature = "deposit(bytes32)"

var (
	ErrInvalidTxHash       = errors.New("invalid transaction hash")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransactionPending  = errors.New("transaction pending")
	ErrTransactionFailed   = errors.New("transaction failed")
	ErrUnexpectedInput     = errors.New("unexpected transaction input")

	txHashRegex = regexp.MustCompile("^0x[0-9a-fA-F]{64}$")
)

// DepositVerifier checks that a foreign chain transaction paid into the
// deposit contract on behalf of this service.
type DepositVerifier struct {
	client   client.EthereumClient
	expected []byte
}

func NewDepositVerifier(c client.EthereumClient, principal string) (*DepositVerifier, error) {
	expected, err := expectedInput(principal)
	if err != nil {
		return nil, err
	}
	return &DepositVerifier{client: c, expected: expected}, nil
}

func expectedInput(principal string) ([]byte, error) {
	subaccount, err := models.SubaccountFromPrincipal(principal)
	if err != nil {
		return nil, err
	}
	selector := crypto.Keccak256([]byte(DepositSignature))[:4]
	return append(selector, subaccount[:]...), nil
}

// DepositSubaccount returns the 32 byte deposit argument for principal as 0x hex.
func DepositSubaccount(principal string) (string, error) {
	subaccount, err := models.SubaccountFromPrincipal(principal)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(subaccount[:]), nil
}

// ExpectedInput is the call data of a deposit made for this service.
func (v *DepositVerifier) ExpectedInput() string {
	return hexutil.Encode(v.expected)
}

// VerifyDeposit returns the value and sender of the transaction txHash once
// its call data matches ExpectedInput.
func (v *DepositVerifier) VerifyDeposit(ctx context.Context, txHash string) (*big.Int, common.Address, error) {
	amount, sender, err := v.verify(ctx, txHash)
	if err != nil {
		metrics.DepositVerifications.WithLabelValues(metrics.OutcomeError).Inc()
		log.Debug("[ETH] Deposit ", txHash, " rejected: ", err)
		return nil, common.Address{}, err
	}
	metrics.DepositVerifications.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info("[ETH] Verified deposit ", txHash, " of ", amount, " from ", sender.Hex())
	return amount, sender, nil
}

func (v *DepositVerifier) verify(ctx context.Context, txHash string) (*big.Int, common.Address, error) {
	if !txHashRegex.MatchString(txHash) {
		return nil, common.Address{}, fmt.Errorf("%w: %q", ErrInvalidTxHash, txHash)
	}

	tx, isPending, err := v.client.GetTransactionByHash(ctx, txHash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, common.Address{}, ErrTransactionNotFound
	}
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("error fetching transaction %s: %w", txHash, err)
	}
	if tx == nil {
		return nil, common.Address{}, ErrTransactionNotFound
	}
	if isPending {
		return nil, common.Address{}, ErrTransactionPending
	}

	if !bytes.Equal(tx.Data(), v.expected) {
		return nil, common.Address{}, fmt.Errorf("%w: expected %s, got %s", ErrUnexpectedInput, hexutil.Encode(v.expected), hexutil.Encode(tx.Data()))
	}

	// A reverted deposit still carries its value in the tx body.
	receipt, err := v.client.GetTransactionReceipt(ctx, txHash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, common.Address{}, ErrTransactionPending
	}
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("error fetching receipt %s: %w", txHash, err)
	}
	if receipt == nil {
		return nil, common.Address{}, ErrTransactionPending
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, common.Address{}, fmt.Errorf("%w: %s", ErrTransactionFailed, txHash)
	}

	sender, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("error recovering sender: %w", err)
	}

	return tx.Value(), sender, nil
}
