package evm

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ERC20ABI covers the subset of the ERC-20 interface the frame uses:
// balance and allowance reads plus approve calldata for the approval screen.
const ERC20ABI = `[
	{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":false,"inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`

// PackApprove packs ERC-20 approve(spender, amount) calldata. The resulting
// transaction is returned to the wallet connected to the frame for signing.
//
// Parameters:
// - spender: the address to approve.
// - amount: the exact amount to approve.
//
// Returns:
// - []byte: the approve calldata.
// - error: an error if packing fails.
func PackApprove(spender string, amount *big.Int) ([]byte, error) {
	tokenAbi, err := abi.JSON(strings.NewReader(ERC20ABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token ABI")
	}

	data, err := tokenAbi.Pack("approve", common.HexToAddress(spender), amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack approve data")
	}
	return data, nil
}
