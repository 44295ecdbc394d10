package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

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
func (e *evm) GetAllowance(ctx context.Context, tokenAddress, owner, spender string) (*big.Int, error) {
	e.clientMutex.RLock()
	client := e.client
	e.clientMutex.RUnlock()

	if client == nil {
		return nil, errors.New("client not initialized")
	}

	data, err := e.tokenAbi.Pack("allowance", common.HexToAddress(owner), common.HexToAddress(spender))
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack allowance data")
	}

	tokenAddr := common.HexToAddress(tokenAddress)
	result, err := client.CallContract(ctx, ethereum.CallMsg{
		To:   &tokenAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call allowance")
	}

	if len(result) == 0 {
		return nil, errors.New("empty result from allowance call")
	}

	return new(big.Int).SetBytes(result), nil
}
