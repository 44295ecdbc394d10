package routing

import (
	"encoding/json"
	"math/big"

	"github.com/pkg/errors"
)

// ActionType identifies the kind of on-chain action the routing service
// should resolve.
type ActionType string

// ActionEvmFunction requests execution of an arbitrary contract call on the
// destination chain, funded from the source chain.
const ActionEvmFunction ActionType = "evm-function"

// Amount is an arbitrary-precision integer carried as a decimal string on
// the wire.
type Amount struct {
	big.Int
}

// NewAmount wraps a big.Int value.
func NewAmount(v *big.Int) *Amount {
	a := new(Amount)
	if v != nil {
		a.Set(v)
	}
	return a
}

// MarshalJSON encodes the amount as a quoted decimal string.
func (a *Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts a quoted decimal string or a bare JSON number. A
// JSON null reads as zero; the routing service omits amounts it considers
// not applicable.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		a.SetInt64(0)
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		s = unquoted
	}
	if _, ok := a.SetString(s, 10); !ok {
		return errors.Errorf("invalid amount %q", s)
	}
	return nil
}

// Cost is the payment the contract call itself requires.
type Cost struct {
	IsNative     bool    `json:"isNative"`
	Amount       *Amount `json:"amount"`
	TokenAddress string  `json:"tokenAddress"`
}

// ActionConfig is the embedded contract-call specification of an action.
type ActionConfig struct {
	ContractAddress string        `json:"contractAddress"`
	ChainID         int64         `json:"chainId"`
	Signature       string        `json:"signature"`
	Args            []interface{} `json:"args"`
	Cost            Cost          `json:"cost"`
}

// ActionRequest describes the desired cross-chain action sent to the routing
// service.
type ActionRequest struct {
	Sender     string       `json:"sender"`
	SrcChainID int64        `json:"srcChainId"`
	DstChainID int64        `json:"dstChainId"`
	SrcToken   string       `json:"srcToken"`
	DstToken   string       `json:"dstToken"`
	Slippage   float64      `json:"slippage"`
	ActionType ActionType   `json:"actionType"`
	Config     ActionConfig `json:"actionConfig"`
}

// EvmTransaction is the executable transaction resolved by the routing
// service, ready to be handed to the connected wallet.
type EvmTransaction struct {
	To    string  `json:"to"`
	Data  string  `json:"data"`
	Value *Amount `json:"value"`
}

// TokenPayment is the exact payment the user must provide on the source
// chain for the resolved route.
type TokenPayment struct {
	Amount       *Amount `json:"amount"`
	TokenAddress string  `json:"tokenAddress"`
}

// TransactionPlan is the routing service's answer to an ActionRequest.
// Read-only once received.
type TransactionPlan struct {
	Tx           EvmTransaction `json:"tx"`
	TokenPayment TokenPayment   `json:"tokenPayment"`
}

// StatusResponse is the routing service's view of a submitted transaction,
// keyed by (chain id, hash).
type StatusResponse struct {
	Status          string `json:"status"`
	TransactionHash string `json:"transactionHash"`
}
