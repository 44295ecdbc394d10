package frame

import "fmt"

// EthSendParams are the eth_sendTransaction parameters handed to the wallet
// connected to the displayed frame.
type EthSendParams struct {
	To    string `json:"to"`
	Data  string `json:"data,omitempty"`
	Value string `json:"value,omitempty"`
}

// TxResponse is the body a transaction endpoint returns to the rendering
// layer. The wallet signs and submits; the server never holds keys.
type TxResponse struct {
	ChainID string        `json:"chainId"`
	Method  string        `json:"method"`
	Params  EthSendParams `json:"params"`
}

// NewTxResponse builds an eth_sendTransaction response for the given chain.
func NewTxResponse(chainID int64, to, data, value string) TxResponse {
	return TxResponse{
		ChainID: fmt.Sprintf("eip155:%d", chainID),
		Method:  "eth_sendTransaction",
		Params: EthSendParams{
			To:    to,
			Data:  data,
			Value: value,
		},
	}
}

// ErrorResponse is the frame error-display mechanism: clients show Message
// to the user and keep the current screen.
type ErrorResponse struct {
	Message string `json:"message"`
}
