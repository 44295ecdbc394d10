// Package mintflow sequences the mint frame's core logic: pick the token a
// wallet should pay with, resolve the cross-chain transaction through the
// routing service, gate on ERC-20 allowance, and classify settlement status.
// Each step is a sequential call with early return on error; nothing here
// retries or runs in parallel.
package mintflow

import (
	"context"
	"math/big"

	"github.com/dtechvision/mintframe/chains/evm"
	commonerrors "github.com/dtechvision/mintframe/common/errors"
	"github.com/dtechvision/mintframe/common/types"
	"github.com/dtechvision/mintframe/routing"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// MintSignature is the destination contract call resolved by the routing
// service: mint one token to the interactor.
const MintSignature = "function mint(address to,uint256 numberOfTokens)"

// TokenSelector picks the token a wallet should pay with.
type TokenSelector interface {
	SelectPaymentToken(ctx context.Context, chainID int64, wallet string, preferNative bool, nativeThresholdPercent int64) (string, error)
}

// PlanResolver resolves an action into an executable transaction plan.
type PlanResolver interface {
	GetTransactionPlan(ctx context.Context, req *routing.ActionRequest) (*routing.TransactionPlan, error)
}

// StatusReader reports the settlement status of a submitted transaction.
type StatusReader interface {
	GetTransactionStatus(ctx context.Context, chainID int64, txHash string) (*routing.StatusResponse, error)
}

// Config carries the explicit configuration of a flow; no ambient globals.
//
// Fields:
// - ContractAddress: the mint contract on the destination chain.
// - SrcChain: the chain the connected wallet pays from.
// - DstChain: the chain the mint executes on.
// - MintCost: native-denominated cost of the direct-mint tier.
// - ApproveCost: native-denominated cost of the pre-approval tier; cheaper
//   because it only unlocks spending, not the mint itself.
// - Slippage: slippage tolerance passed to the routing service.
// - NativeThresholdPercent: native-balance share that biases selection
//   towards the native token on the mint path.
type Config struct {
	ContractAddress        string
	SrcChain               int64
	DstChain               int64
	MintCost               *big.Int
	ApproveCost            *big.Int
	Slippage               float64
	NativeThresholdPercent int64
}

// TxPlan is an executable transaction ready to be handed to the connected
// wallet via the frame transaction endpoint.
type TxPlan struct {
	ChainID int64
	To      string
	Data    string
	Value   *big.Int
}

// Flow wires the balance selector, routing client and chain readers into the
// frame's transaction and polling operations.
type Flow struct {
	cfg      Config
	selector TokenSelector
	resolver PlanResolver
	status   StatusReader
	chains   types.ChainRegistry
	logger   *logrus.Logger
}

// NewFlow creates a mint flow with explicit collaborators.
func NewFlow(cfg Config, selector TokenSelector, resolver PlanResolver, status StatusReader, chains types.ChainRegistry, logger *logrus.Logger) *Flow {
	return &Flow{
		cfg:      cfg,
		selector: selector,
		resolver: resolver,
		status:   status,
		chains:   chains,
		logger:   logger,
	}
}

// BuildMintTransaction resolves the mint transaction for the sender. The
// payment token is selected with the native bias; for an ERC-20 payment the
// resolved spender's allowance is checked first and ErrApprovalRequired is
// returned when it does not cover the required payment. Allowance exactly
// equal to the requirement is sufficient.
//
// Parameters:
// - ctx: the context for managing the request.
// - sender: the wallet address connected to the displayed frame.
//
// Returns:
// - *TxPlan: the executable mint transaction.
// - error: ErrMissingAddress, ErrRoutingUnavailable, ErrApprovalRequired or
//   a chain read failure.
func (f *Flow) BuildMintTransaction(ctx context.Context, sender string) (*TxPlan, error) {
	if sender == "" {
		return nil, commonerrors.ErrMissingAddress
	}

	srcToken, err := f.selector.SelectPaymentToken(ctx, f.cfg.SrcChain, sender, true, f.cfg.NativeThresholdPercent)
	if err != nil {
		return nil, err
	}

	plan, err := f.resolver.GetTransactionPlan(ctx, f.buildActionRequest(sender, srcToken, f.cfg.MintCost))
	if err != nil {
		return nil, err
	}

	if !types.IsNativeToken(srcToken) {
		sufficient, err := f.checkAllowance(ctx, srcToken, sender, plan)
		if err != nil {
			return nil, err
		}
		if !sufficient {
			return nil, commonerrors.ErrApprovalRequired
		}
	}

	f.logger.WithFields(logrus.Fields{
		"sender": sender,
		"token":  srcToken,
		"to":     plan.Tx.To,
	}).Info("resolved mint transaction")

	return &TxPlan{
		ChainID: f.cfg.SrcChain,
		To:      plan.Tx.To,
		Data:    plan.Tx.Data,
		Value:   planValue(plan),
	}, nil
}

// BuildApproveTransaction resolves the approval transaction that unlocks an
// ERC-20 payment. The payment token is selected without the native bias;
// when the selection is native, or the allowance already covers the
// requirement, ErrNoApprovalNeeded reports that the mint can proceed
// directly instead of emitting a transaction.
//
// Parameters:
// - ctx: the context for managing the request.
// - sender: the wallet address connected to the displayed frame.
//
// Returns:
// - *TxPlan: an ERC-20 approve transaction for the routing-resolved spender
//   with the exact required amount.
// - error: ErrMissingAddress, ErrRoutingUnavailable, ErrNoApprovalNeeded or
//   a chain read failure.
func (f *Flow) BuildApproveTransaction(ctx context.Context, sender string) (*TxPlan, error) {
	if sender == "" {
		return nil, commonerrors.ErrMissingAddress
	}

	srcToken, err := f.selector.SelectPaymentToken(ctx, f.cfg.SrcChain, sender, false, f.cfg.NativeThresholdPercent)
	if err != nil {
		return nil, err
	}

	plan, err := f.resolver.GetTransactionPlan(ctx, f.buildActionRequest(sender, srcToken, f.cfg.ApproveCost))
	if err != nil {
		return nil, err
	}

	if types.IsNativeToken(srcToken) {
		return nil, commonerrors.ErrNoApprovalNeeded
	}

	sufficient, err := f.checkAllowance(ctx, srcToken, sender, plan)
	if err != nil {
		return nil, err
	}
	if sufficient {
		return nil, commonerrors.ErrNoApprovalNeeded
	}

	data, err := evm.PackApprove(plan.Tx.To, requiredPayment(plan))
	if err != nil {
		return nil, err
	}

	f.logger.WithFields(logrus.Fields{
		"sender":  sender,
		"token":   srcToken,
		"spender": plan.Tx.To,
	}).Info("resolved approval transaction")

	return &TxPlan{
		ChainID: f.cfg.SrcChain,
		To:      srcToken,
		Data:    hexutil.Encode(data),
		Value:   new(big.Int),
	}, nil
}

// PollTransaction classifies the settlement status of the recorded
// transaction. A state without a recorded transaction is pending. One query
// per call; every further poll is a fresh user action.
func (f *Flow) PollTransaction(ctx context.Context, state types.FrameState) (types.TransactionStatus, error) {
	if !state.HasTransaction() {
		return types.TxPending, nil
	}

	resp, err := f.status.GetTransactionStatus(ctx, state.SrcChain, state.TxHash)
	if err != nil {
		return types.TxPending, err
	}

	status := types.ClassifyStatus(resp.Status)
	f.logger.WithFields(logrus.Fields{
		"txHash": state.TxHash,
		"status": status,
	}).Info("polled transaction status")

	return status, nil
}

// buildActionRequest assembles the fixed mint action: quantity one, funded
// from srcToken on the source chain, with the given native cost tier.
func (f *Flow) buildActionRequest(sender, srcToken string, cost *big.Int) *routing.ActionRequest {
	return &routing.ActionRequest{
		Sender:     sender,
		SrcChainID: f.cfg.SrcChain,
		DstChainID: f.cfg.DstChain,
		SrcToken:   srcToken,
		DstToken:   types.ZeroAddress,
		Slippage:   f.cfg.Slippage,
		ActionType: routing.ActionEvmFunction,
		Config: routing.ActionConfig{
			ContractAddress: f.cfg.ContractAddress,
			ChainID:         f.cfg.DstChain,
			Signature:       MintSignature,
			Args:            []interface{}{sender, "1"},
			Cost: routing.Cost{
				IsNative:     true,
				Amount:       routing.NewAmount(cost),
				TokenAddress: types.ZeroAddress,
			},
		},
	}
}

// checkAllowance reads the on-chain allowance granted to the resolved
// spender and compares it against the required payment. The boundary is
// inclusive: equality is sufficient.
func (f *Flow) checkAllowance(ctx context.Context, srcToken, owner string, plan *routing.TransactionPlan) (bool, error) {
	reader := f.chains.Get(f.cfg.SrcChain)
	if reader == nil {
		return false, errors.Wrapf(commonerrors.ErrChainNotFound, "chain %d", f.cfg.SrcChain)
	}

	allowance, err := reader.GetAllowance(ctx, srcToken, owner, plan.Tx.To)
	if err != nil {
		return false, err
	}

	return allowance.Cmp(requiredPayment(plan)) >= 0, nil
}

func requiredPayment(plan *routing.TransactionPlan) *big.Int {
	if plan.TokenPayment.Amount == nil {
		return new(big.Int)
	}
	return &plan.TokenPayment.Amount.Int
}

func planValue(plan *routing.TransactionPlan) *big.Int {
	if plan.Tx.Value == nil {
		return new(big.Int)
	}
	return &plan.Tx.Value.Int
}
