package evm

import (
	"context"
	"strings"
	"sync"

	"github.com/dtechvision/mintframe/common/types"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// evm is a read-only EVM chain client. The frame server only ever reads
// balances and allowances; transactions are signed and submitted by the
// wallet connected to the displayed frame.
type evm struct {
	config   *types.ChainConfig
	logger   *logrus.Logger
	tokenAbi abi.ABI

	clientMutex sync.RWMutex
	client      *ethclient.Client
}

// NewEvmChain creates a new read-only EVM chain client.
//
// Parameters:
// - ctx: the context for managing the request.
// - config: the chain configuration.
// - logger: the logger for logging events.
//
// Returns:
// - types.ChainReader: a new EVM chain reader instance.
// - error: an error if the RPC client cannot be created.
func NewEvmChain(ctx context.Context, config *types.ChainConfig, logger *logrus.Logger) (types.ChainReader, error) {
	client, err := ethclient.DialContext(ctx, config.RpcUrl)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create client")
	}

	tokenAbi, err := abi.JSON(strings.NewReader(ERC20ABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token ABI")
	}

	return &evm{
		config:   config,
		logger:   logger,
		tokenAbi: tokenAbi,
		client:   client,
	}, nil
}

// CheckConnection checks that the RPC connection is alive by requesting the
// current chain ID and comparing it against the configured one.
func (e *evm) CheckConnection(ctx context.Context) error {
	e.clientMutex.RLock()
	client := e.client
	e.clientMutex.RUnlock()

	if client == nil {
		return errors.New("client not initialized")
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return errors.Wrapf(err, "failed to reach %s RPC", e.config.Name)
	}
	if chainID.Int64() != e.config.ChainID {
		return errors.Errorf("RPC reports chain %d, expected %d", chainID.Int64(), e.config.ChainID)
	}
	return nil
}

// Close should be called when the chain reader is no longer needed.
func (e *evm) Close() {
	e.clientMutex.Lock()
	if e.client != nil {
		e.client.Close()
		e.client = nil
	}
	e.clientMutex.Unlock()
}
