package errors

import "github.com/pkg/errors"

var (
	// ErrRoutingUnavailable indicates the routing service could not resolve a
	// transaction plan for the requested action.
	ErrRoutingUnavailable = errors.New("routing service could not resolve a transaction")
	// ErrApprovalRequired indicates the selected ERC-20 payment token does not
	// have a sufficient allowance for the resolved spender.
	ErrApprovalRequired = errors.New("requires approval")
	// ErrNoApprovalNeeded indicates approval would be a no-op: the payment
	// token is native or the allowance already covers the required amount.
	ErrNoApprovalNeeded = errors.New("you can mint right away, press Mint Now")
	// ErrChainNotFound indicates no reader is registered for the chain.
	ErrChainNotFound = errors.New("chain not found")
	// ErrMissingAddress indicates the frame action carried no connected wallet.
	ErrMissingAddress = errors.New("no wallet address connected to frame")
	// ErrInvalidAction indicates the frame action payload failed validation.
	ErrInvalidAction = errors.New("invalid frame action")
)
