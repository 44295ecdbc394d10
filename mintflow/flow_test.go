package mintflow

import (
	"context"
	"io"
	"math/big"
	"testing"

	"github.com/dtechvision/mintframe/chains/evm"
	commonerrors "github.com/dtechvision/mintframe/common/errors"
	"github.com/dtechvision/mintframe/common/types"
	"github.com/dtechvision/mintframe/routing"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	wallet   = "0x00000000000000000000000000000000000000ee"
	erc20    = "0x00000000000000000000000000000000000000aa"
	spender  = "0x00000000000000000000000000000000000000bb"
	contract = "0x00000000000000000000000000000000000000cc"
)

type fakeSelector struct {
	token            string
	err              error
	lastPreferNative bool
}

func (f *fakeSelector) SelectPaymentToken(_ context.Context, _ int64, _ string, preferNative bool, _ int64) (string, error) {
	f.lastPreferNative = preferNative
	return f.token, f.err
}

type fakeResolver struct {
	plan    *routing.TransactionPlan
	err     error
	lastReq *routing.ActionRequest
}

func (f *fakeResolver) GetTransactionPlan(_ context.Context, req *routing.ActionRequest) (*routing.TransactionPlan, error) {
	f.lastReq = req
	return f.plan, f.err
}

type fakeStatus struct {
	status    string
	err       error
	calls     int
	lastChain int64
	lastHash  string
}

func (f *fakeStatus) GetTransactionStatus(_ context.Context, chainID int64, txHash string) (*routing.StatusResponse, error) {
	f.calls++
	f.lastChain = chainID
	f.lastHash = txHash
	if f.err != nil {
		return nil, f.err
	}
	return &routing.StatusResponse{Status: f.status, TransactionHash: txHash}, nil
}

type fakeReader struct {
	allowance      *big.Int
	allowanceCalls int
}

func (f *fakeReader) GetTokenBalance(context.Context, string, string) (*big.Int, error) {
	return new(big.Int), nil
}

func (f *fakeReader) GetAllowance(context.Context, string, string, string) (*big.Int, error) {
	f.allowanceCalls++
	return f.allowance, nil
}

func (f *fakeReader) CheckConnection(context.Context) error { return nil }

type fakeRegistry struct {
	reader types.ChainReader
}

func (r *fakeRegistry) Add(context.Context, *types.ChainConfig) error { return nil }
func (r *fakeRegistry) Get(int64) types.ChainReader                   { return r.reader }

func testConfig() Config {
	return Config{
		ContractAddress:        contract,
		SrcChain:               8453,
		DstChain:               8453,
		MintCost:               big.NewInt(1600000000000000),
		ApproveCost:            big.NewInt(800000000000000),
		Slippage:               1,
		NativeThresholdPercent: 25,
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func plan(paymentToken string, required int64) *routing.TransactionPlan {
	return &routing.TransactionPlan{
		Tx: routing.EvmTransaction{
			To:    spender,
			Data:  "0xdeadbeef",
			Value: routing.NewAmount(big.NewInt(1600000000000000)),
		},
		TokenPayment: routing.TokenPayment{
			Amount:       routing.NewAmount(big.NewInt(required)),
			TokenAddress: paymentToken,
		},
	}
}

func TestBuildMintNativeSkipsAllowance(t *testing.T) {
	selector := &fakeSelector{token: types.ZeroAddress}
	resolver := &fakeResolver{plan: plan(types.ZeroAddress, 0)}
	reader := &fakeReader{allowance: new(big.Int)}
	flow := NewFlow(testConfig(), selector, resolver, &fakeStatus{}, &fakeRegistry{reader: reader}, testLogger())

	tx, err := flow.BuildMintTransaction(context.Background(), wallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !selector.lastPreferNative {
		t.Fatal("mint path must select with the native bias")
	}
	if reader.allowanceCalls != 0 {
		t.Fatal("native payment must bypass the allowance check")
	}
	if tx.To != spender || tx.ChainID != 8453 {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if tx.Value.String() != "1600000000000000" {
		t.Fatalf("value = %s, want the routing-resolved value", tx.Value)
	}
}

func TestBuildMintRequestShape(t *testing.T) {
	selector := &fakeSelector{token: types.ZeroAddress}
	resolver := &fakeResolver{plan: plan(types.ZeroAddress, 0)}
	flow := NewFlow(testConfig(), selector, resolver, &fakeStatus{}, &fakeRegistry{reader: &fakeReader{}}, testLogger())

	if _, err := flow.BuildMintTransaction(context.Background(), wallet); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := resolver.lastReq
	if req.Sender != wallet || req.SrcChainID != 8453 || req.DstChainID != 8453 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Config.Signature != MintSignature {
		t.Fatalf("signature = %q", req.Config.Signature)
	}
	if !req.Config.Cost.IsNative || req.Config.Cost.Amount.String() != "1600000000000000" {
		t.Fatalf("mint tier cost wrong: %+v", req.Config.Cost)
	}
	if req.Config.ContractAddress != contract {
		t.Fatalf("contract = %q", req.Config.ContractAddress)
	}
}

func TestBuildMintInsufficientAllowance(t *testing.T) {
	selector := &fakeSelector{token: erc20}
	resolver := &fakeResolver{plan: plan(erc20, 100)}
	reader := &fakeReader{allowance: big.NewInt(99)}
	flow := NewFlow(testConfig(), selector, resolver, &fakeStatus{}, &fakeRegistry{reader: reader}, testLogger())

	_, err := flow.BuildMintTransaction(context.Background(), wallet)
	if !errors.Is(err, commonerrors.ErrApprovalRequired) {
		t.Fatalf("err = %v, want ErrApprovalRequired", err)
	}
}

func TestBuildMintAllowanceBoundaryInclusive(t *testing.T) {
	selector := &fakeSelector{token: erc20}
	resolver := &fakeResolver{plan: plan(erc20, 100)}
	reader := &fakeReader{allowance: big.NewInt(100)}
	flow := NewFlow(testConfig(), selector, resolver, &fakeStatus{}, &fakeRegistry{reader: reader}, testLogger())

	if _, err := flow.BuildMintTransaction(context.Background(), wallet); err != nil {
		t.Fatalf("allowance equal to requirement must be sufficient, got %v", err)
	}
}

func TestBuildMintMissingAddress(t *testing.T) {
	flow := NewFlow(testConfig(), &fakeSelector{}, &fakeResolver{}, &fakeStatus{}, &fakeRegistry{}, testLogger())
	_, err := flow.BuildMintTransaction(context.Background(), "")
	if !errors.Is(err, commonerrors.ErrMissingAddress) {
		t.Fatalf("err = %v, want ErrMissingAddress", err)
	}
}

func TestBuildMintRoutingFailureSurfaces(t *testing.T) {
	selector := &fakeSelector{token: types.ZeroAddress}
	resolver := &fakeResolver{err: errors.Wrap(commonerrors.ErrRoutingUnavailable, "no route")}
	flow := NewFlow(testConfig(), selector, resolver, &fakeStatus{}, &fakeRegistry{reader: &fakeReader{}}, testLogger())

	_, err := flow.BuildMintTransaction(context.Background(), wallet)
	if !errors.Is(err, commonerrors.ErrRoutingUnavailable) {
		t.Fatalf("err = %v, want ErrRoutingUnavailable", err)
	}
}

func TestBuildApproveReturnsApproveTransaction(t *testing.T) {
	selector := &fakeSelector{token: erc20}
	resolver := &fakeResolver{plan: plan(erc20, 100)}
	reader := &fakeReader{allowance: big.NewInt(1)}
	flow := NewFlow(testConfig(), selector, resolver, &fakeStatus{}, &fakeRegistry{reader: reader}, testLogger())

	tx, err := flow.BuildApproveTransaction(context.Background(), wallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if selector.lastPreferNative {
		t.Fatal("approve path must select without the native bias")
	}
	if tx.To != erc20 {
		t.Fatalf("approve must target the payment token, got %s", tx.To)
	}
	if tx.Value.Sign() != 0 {
		t.Fatalf("approve must carry no value, got %s", tx.Value)
	}
	if resolver.lastReq.Config.Cost.Amount.String() != "800000000000000" {
		t.Fatalf("approve tier cost wrong: %s", resolver.lastReq.Config.Cost.Amount)
	}

	want, err := evm.PackApprove(spender, big.NewInt(100))
	if err != nil {
		t.Fatalf("pack approve: %v", err)
	}
	if tx.Data != hexutil.Encode(want) {
		t.Fatalf("approve calldata = %s, want spender %s with the exact required amount", tx.Data, spender)
	}
}

func TestBuildApproveNativeIsNoop(t *testing.T) {
	selector := &fakeSelector{token: types.ZeroAddress}
	resolver := &fakeResolver{plan: plan(types.ZeroAddress, 0)}
	flow := NewFlow(testConfig(), selector, resolver, &fakeStatus{}, &fakeRegistry{reader: &fakeReader{}}, testLogger())

	_, err := flow.BuildApproveTransaction(context.Background(), wallet)
	if !errors.Is(err, commonerrors.ErrNoApprovalNeeded) {
		t.Fatalf("err = %v, want ErrNoApprovalNeeded", err)
	}
}

func TestBuildApproveSufficientAllowanceIsNoop(t *testing.T) {
	selector := &fakeSelector{token: erc20}
	resolver := &fakeResolver{plan: plan(erc20, 100)}
	reader := &fakeReader{allowance: big.NewInt(100)}
	flow := NewFlow(testConfig(), selector, resolver, &fakeStatus{}, &fakeRegistry{reader: reader}, testLogger())

	_, err := flow.BuildApproveTransaction(context.Background(), wallet)
	if !errors.Is(err, commonerrors.ErrNoApprovalNeeded) {
		t.Fatalf("err = %v, want ErrNoApprovalNeeded", err)
	}
}

func TestPollTransactionWithoutRecordedHash(t *testing.T) {
	status := &fakeStatus{status: "Executed"}
	flow := NewFlow(testConfig(), &fakeSelector{}, &fakeResolver{}, status, &fakeRegistry{}, testLogger())

	got, err := flow.PollTransaction(context.Background(), types.NewFrameState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != types.TxPending {
		t.Fatalf("status = %v, want pending for an unrecorded transaction", got)
	}
	if status.calls != 0 {
		t.Fatal("no status query should be made without a recorded hash")
	}
}

func TestPollTransactionClassifies(t *testing.T) {
	cases := []struct {
		raw  string
		want types.TransactionStatus
	}{
		{"Executed", types.TxExecuted},
		{"Failed", types.TxFailed},
		{"anything else", types.TxPending},
	}

	for _, tc := range cases {
		status := &fakeStatus{status: tc.raw}
		flow := NewFlow(testConfig(), &fakeSelector{}, &fakeResolver{}, status, &fakeRegistry{}, testLogger())

		state := types.NewFrameState().RecordTransaction("0xabc", 8453)
		got, err := flow.PollTransaction(context.Background(), state)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tc.want {
			t.Errorf("PollTransaction(%q) = %v, want %v", tc.raw, got, tc.want)
		}
		if status.lastChain != 8453 || status.lastHash != "0xabc" {
			t.Errorf("queried (%d, %s), want the recorded state", status.lastChain, status.lastHash)
		}
	}
}
