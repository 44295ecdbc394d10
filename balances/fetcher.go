package balances

import (
	"context"
	"math/big"

	commonerrors "github.com/dtechvision/mintframe/common/errors"
	"github.com/dtechvision/mintframe/common/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Fetcher provides the balance set of a wallet on a chain.
type Fetcher interface {
	// FetchBalances returns the native balance plus the balances of the
	// watched ERC-20 tokens for the wallet. A read-only snapshot; ordering is
	// not significant.
	FetchBalances(ctx context.Context, chainID int64, wallet string) ([]types.TokenBalance, error)
}

// chainFetcher reads balances directly from the registered chain readers.
// Watched ERC-20 tokens are configured per chain; the native token is always
// included.
type chainFetcher struct {
	registry  types.ChainRegistry
	watchlist map[int64][]string
	logger    *logrus.Logger
}

// NewChainFetcher creates a Fetcher backed by the chain registry.
//
// Parameters:
// - registry: the chain registry to read from.
// - watchlist: the ERC-20 token addresses to scan, keyed by chain ID.
// - logger: the logger for logging events.
func NewChainFetcher(registry types.ChainRegistry, watchlist map[int64][]string, logger *logrus.Logger) Fetcher {
	return &chainFetcher{
		registry:  registry,
		watchlist: watchlist,
		logger:    logger,
	}
}

func (f *chainFetcher) FetchBalances(ctx context.Context, chainID int64, wallet string) ([]types.TokenBalance, error) {
	reader := f.registry.Get(chainID)
	if reader == nil {
		return nil, errors.Wrapf(commonerrors.ErrChainNotFound, "chain %d", chainID)
	}

	native, err := reader.GetTokenBalance(ctx, wallet, types.ZeroAddress)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch native balance")
	}

	set := []types.TokenBalance{{Token: types.ZeroAddress, Amount: native}}
	for _, token := range f.watchlist[chainID] {
		amount, err := reader.GetTokenBalance(ctx, wallet, token)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch balance of %s", token)
		}
		set = append(set, types.TokenBalance{Token: token, Amount: amount})
	}

	f.logger.WithFields(logrus.Fields{
		"wallet":  wallet,
		"chainId": chainID,
		"tokens":  len(set),
	}).Debug("fetched wallet balances")

	return set, nil
}

// nonNil guards against readers returning a nil amount.
func nonNil(amount *big.Int) *big.Int {
	if amount == nil {
		return new(big.Int)
	}
	return amount
}
