package types

import "math/big"

// ZeroAddress is the all-zero address used as the sentinel for the native
// token of a chain.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// TokenBalance represents the amount of a single token held by a wallet.
//
// Fields:
// - Token: the token contract address, ZeroAddress for the native token.
// - Amount: the held amount in the token's smallest unit.
type TokenBalance struct {
	Token  string
	Amount *big.Int
}

// IsNative reports whether the balance refers to the chain's native token.
func (b TokenBalance) IsNative() bool {
	return IsNativeToken(b.Token)
}

// IsNativeToken reports whether the given token address denotes the native
// token. An empty address is treated the same as ZeroAddress.
func IsNativeToken(tokenAddress string) bool {
	return tokenAddress == "" || tokenAddress == ZeroAddress
}
