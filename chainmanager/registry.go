package chainmanager

import (
	"context"
	"sync"

	"github.com/dtechvision/mintframe/common/types"
	"github.com/sirupsen/logrus"
)

// ChainConstructor builds a reader for a single chain configuration.
type ChainConstructor func(ctx context.Context, config *types.ChainConfig, logger *logrus.Logger) (types.ChainReader, error)

type chainRegistry struct {
	logger      *logrus.Logger
	chains      map[int64]types.ChainReader
	chainsMutex sync.RWMutex
	constructor ChainConstructor
}

// NewChainRegistry creates a registry that builds chain readers on Add using
// the given constructor.
func NewChainRegistry(constructor ChainConstructor, logger *logrus.Logger) types.ChainRegistry {
	return &chainRegistry{
		chains:      make(map[int64]types.ChainReader),
		constructor: constructor,
		logger:      logger,
	}
}

// Add builds a reader for the given chain configuration and registers it.
func (r *chainRegistry) Add(ctx context.Context, config *types.ChainConfig) error {
	chain, err := r.constructor(ctx, config, r.logger)
	if err != nil {
		return err
	}

	r.chainsMutex.Lock()
	r.chains[config.ChainID] = chain
	r.chainsMutex.Unlock()

	r.logger.WithFields(logrus.Fields{
		"chain":   config.Name,
		"chainId": config.ChainID,
	}).Info("registered chain")

	return nil
}

// Get retrieves a chain reader by its chain ID, or nil if not registered.
func (r *chainRegistry) Get(chainID int64) types.ChainReader {
	r.chainsMutex.RLock()
	chain := r.chains[chainID]
	r.chainsMutex.RUnlock()
	return chain
}
