package balances

import (
	"context"
	"math/big"

	"github.com/dtechvision/mintframe/common/types"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Selector picks the token a wallet should pay with.
type Selector struct {
	fetcher Fetcher
	logger  *logrus.Logger
}

// NewSelector creates a payment token selector on top of the given fetcher.
func NewSelector(fetcher Fetcher, logger *logrus.Logger) *Selector {
	return &Selector{fetcher: fetcher, logger: logger}
}

// SelectPaymentToken fetches the wallet's balance set and picks the token to
// fund the action with.
//
// Policy: if preferNative is set and the native balance covers at least
// nativeThresholdPercent percent of the summed balance set, the native token
// is selected. Otherwise the ERC-20 token with the single largest balance is
// selected. The threshold is a heuristic over raw amounts; whether the chosen
// token actually covers the payment is re-verified by the allowance check and
// by the wallet at submission time.
//
// A wallet holding nothing yields the zero address with no error; the
// insufficiency surfaces when the payment is constructed.
//
// Parameters:
// - ctx: the context for managing the request.
// - chainID: the chain to read balances on.
// - wallet: the wallet address.
// - preferNative: whether to bias the selection towards the native token.
// - nativeThresholdPercent: the native share (in percent) that triggers the bias.
//
// Returns:
// - string: the selected token address, ZeroAddress for the native token.
// - error: an error if the balance fetch fails.
func (s *Selector) SelectPaymentToken(ctx context.Context, chainID int64, wallet string, preferNative bool, nativeThresholdPercent int64) (string, error) {
	set, err := s.fetcher.FetchBalances(ctx, chainID, wallet)
	if err != nil {
		return "", err
	}

	native := new(big.Int)
	total := new(big.Int)
	for _, b := range set {
		amount := nonNil(b.Amount)
		total.Add(total, amount)
		if b.IsNative() {
			native.Add(native, amount)
		}
	}

	if preferNative && total.Sign() > 0 {
		share := decimal.NewFromBigInt(native, 0).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromBigInt(total, 0))
		if share.Cmp(decimal.NewFromInt(nativeThresholdPercent)) >= 0 {
			s.logger.WithFields(logrus.Fields{
				"wallet": wallet,
				"share":  share.StringFixed(2),
			}).Debug("selected native token")
			return types.ZeroAddress, nil
		}
	}

	selected := types.ZeroAddress
	max := new(big.Int)
	for _, b := range set {
		if b.IsNative() {
			continue
		}
		if amount := nonNil(b.Amount); amount.Cmp(max) > 0 {
			selected = b.Token
			max = amount
		}
	}

	s.logger.WithFields(logrus.Fields{
		"wallet": wallet,
		"token":  selected,
	}).Debug("selected payment token")

	return selected, nil
}
