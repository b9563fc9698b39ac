package client

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/cknft-bridge/models"
)

const defaultRPCTimeout = 10 * time.Second

type EthereumClient interface {
	ValidateNetwork(ctx context.Context) error
	GetBlockNumber(ctx context.Context) (uint64, error)
	GetChainID(ctx context.Context) (*big.Int, error)
	GetTransactionByHash(ctx context.Context, txHash string) (*types.Transaction, bool, error)
	GetTransactionReceipt(ctx context.Context, txHash string) (*types.Receipt, error)
	Close()
}

type ethereumClient struct {
	client  *ethclient.Client
	timeout time.Duration
	chainID string
}

func (c *ethereumClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *ethereumClient) GetBlockNumber(ctx context.Context) (uint64, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	return c.client.BlockNumber(ctx)
}

func (c *ethereumClient) GetChainID(ctx context.Context) (*big.Int, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	return c.client.ChainID(ctx)
}

// ValidateNetwork checks the node answers and serves the configured chain.
func (c *ethereumClient) ValidateNetwork(ctx context.Context) error {
	log.Debugln("[ETH]", "Validating network")

	chainID, err := c.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("error getting chain id: %w", err)
	}
	blockNumber, err := c.GetBlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("error getting block number: %w", err)
	}

	log.Debugln("[ETH]", "chainID", chainID.Uint64(), "blockNumber", blockNumber)

	if c.chainID != "" && chainID.String() != c.chainID {
		return fmt.Errorf("chain id mismatch: expected %s, got %s", c.chainID, chainID.String())
	}

	log.Infoln("[ETH]", "Validated network")
	return nil
}

func (c *ethereumClient) GetTransactionByHash(ctx context.Context, txHash string) (*types.Transaction, bool, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	return c.client.TransactionByHash(ctx, common.HexToHash(txHash))
}

func (c *ethereumClient) GetTransactionReceipt(ctx context.Context, txHash string) (*types.Receipt, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	return c.client.TransactionReceipt(ctx, common.HexToHash(txHash))
}

func (c *ethereumClient) Close() {
	c.client.Close()
}

func NewClient(config models.EthereumConfig) (EthereumClient, error) {
	client, err := ethclient.Dial(config.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("error dialing %s: %w", config.RPCURL, err)
	}
	timeout := time.Duration(config.RPCTimeoutMillis) * time.Millisecond
	if timeout <= 0 {
		timeout = defaultRPCTimeout
	}
	return &ethereumClient{
		client:  client,
		timeout: timeout,
		chainID: config.ChainID,
	}, nil
}
