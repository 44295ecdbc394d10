package types

import (
	"context"
	"math/big"
)

// ChainConfig holds the configuration for a single EVM chain the frame can
// read from.
//
// Fields:
// - Name: the name of the chain.
// - ChainID: the unique identifier for the chain.
// - RpcUrl: the URL for the chain's RPC endpoint.
type ChainConfig struct {
	Name    string
	ChainID int64
	RpcUrl  string
}

// BalanceReader provides token balance reads.
type BalanceReader interface {
	// GetTokenBalance gets the balance of a token for the given address.
	// For native token balances, use tokenAddress as empty string or ZeroAddress.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - address: the address to check balance for.
	// - tokenAddress: the token contract address.
	//
	// Returns:
	// - *big.Int: the token balance.
	// - error: an error if the balance check fails.
	GetTokenBalance(ctx context.Context, address string, tokenAddress string) (*big.Int, error)
}

// AllowanceReader provides ERC-20 allowance reads.
type AllowanceReader interface {
	// GetAllowance reads the ERC-20 allowance granted by owner to spender.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - tokenAddress: the token contract address.
	// - owner: the address that granted the allowance.
	// - spender: the address the allowance was granted to.
	//
	// Returns:
	// - *big.Int: the remaining allowance.
	// - error: an error if the allowance read fails.
	GetAllowance(ctx context.Context, tokenAddress, owner, spender string) (*big.Int, error)
}

// ChainReader combines the read-only chain functionality the frame needs.
// The frame never signs or submits transactions itself; the connected wallet
// does that on the client side.
type ChainReader interface {
	BalanceReader
	AllowanceReader

	// CheckConnection checks that the underlying RPC connection is alive.
	CheckConnection(ctx context.Context) error
}

// ChainRegistry manages readers for multiple chains.
type ChainRegistry interface {
	// Add adds a new chain reader to the registry.
	Add(ctx context.Context, config *ChainConfig) error

	// Get retrieves a chain reader by its chain ID, or nil if not registered.
	Get(chainID int64) ChainReader
}
