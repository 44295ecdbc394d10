package balances

import (
	"context"
	"io"
	"math/big"
	"testing"

	"github.com/dtechvision/mintframe/common/types"
	"github.com/sirupsen/logrus"
)

type fakeFetcher struct {
	set []types.TokenBalance
	err error
}

func (f *fakeFetcher) FetchBalances(context.Context, int64, string) ([]types.TokenBalance, error) {
	return f.set, f.err
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func eth(v int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(v), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

func TestSelectNativeWhenOnlyNativeHeld(t *testing.T) {
	selector := NewSelector(&fakeFetcher{set: []types.TokenBalance{
		{Token: types.ZeroAddress, Amount: eth(1)},
		{Token: "0x00000000000000000000000000000000000000aa", Amount: big.NewInt(0)},
	}}, testLogger())

	token, err := selector.SelectPaymentToken(context.Background(), 8453, "0xwallet", true, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != types.ZeroAddress {
		t.Fatalf("selected %s, want native", token)
	}
}

func TestSelectLargestERC20BelowThreshold(t *testing.T) {
	selector := NewSelector(&fakeFetcher{set: []types.TokenBalance{
		{Token: types.ZeroAddress, Amount: big.NewInt(10)},
		{Token: "0x00000000000000000000000000000000000000aa", Amount: big.NewInt(40)},
		{Token: "0x00000000000000000000000000000000000000bb", Amount: big.NewInt(50)},
	}}, testLogger())

	token, err := selector.SelectPaymentToken(context.Background(), 8453, "0xwallet", true, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "0x00000000000000000000000000000000000000bb" {
		t.Fatalf("selected %s, want the largest ERC-20", token)
	}
}

func TestSelectNativeAtExactThreshold(t *testing.T) {
	// Native holds exactly 25% of the set; the threshold is inclusive.
	selector := NewSelector(&fakeFetcher{set: []types.TokenBalance{
		{Token: types.ZeroAddress, Amount: big.NewInt(25)},
		{Token: "0x00000000000000000000000000000000000000aa", Amount: big.NewInt(75)},
	}}, testLogger())

	token, err := selector.SelectPaymentToken(context.Background(), 8453, "0xwallet", true, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != types.ZeroAddress {
		t.Fatalf("selected %s, want native at the boundary", token)
	}
}

func TestSelectIgnoresNativeBiasWhenDisabled(t *testing.T) {
	selector := NewSelector(&fakeFetcher{set: []types.TokenBalance{
		{Token: types.ZeroAddress, Amount: eth(1)},
		{Token: "0x00000000000000000000000000000000000000aa", Amount: big.NewInt(5)},
	}}, testLogger())

	token, err := selector.SelectPaymentToken(context.Background(), 8453, "0xwallet", false, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "0x00000000000000000000000000000000000000aa" {
		t.Fatalf("selected %s, want the ERC-20 without native bias", token)
	}
}

func TestSelectEmptyWalletPropagatesZeroSelection(t *testing.T) {
	selector := NewSelector(&fakeFetcher{set: []types.TokenBalance{
		{Token: types.ZeroAddress, Amount: big.NewInt(0)},
		{Token: "0x00000000000000000000000000000000000000aa", Amount: big.NewInt(0)},
	}}, testLogger())

	token, err := selector.SelectPaymentToken(context.Background(), 8453, "0xwallet", true, 25)
	if err != nil {
		t.Fatalf("empty wallet must not fail, got %v", err)
	}
	if token != types.ZeroAddress {
		t.Fatalf("selected %s, want zero selection for empty wallet", token)
	}
}
