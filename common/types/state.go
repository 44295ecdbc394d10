package types

// UnsetChain marks a FrameState whose source chain has not been recorded yet.
const UnsetChain int64 = -1

// FrameState is the per-flow state carried between the transaction screen and
// the polling screens. The transaction hash and source chain are recorded when
// a wallet submits a transaction; polling screens only read them.
//
// Fields:
// - TxHash: the hash of the submitted transaction, empty until recorded.
// - SrcChain: the chain the transaction was submitted on, UnsetChain until recorded.
type FrameState struct {
	TxHash   string
	SrcChain int64
}

// NewFrameState returns the initial state of a flow.
func NewFrameState() FrameState {
	return FrameState{SrcChain: UnsetChain}
}

// HasTransaction reports whether a transaction has been recorded.
func (s FrameState) HasTransaction() bool {
	return s.TxHash != ""
}

// RecordTransaction records the submitted transaction hash and its source
// chain. A fresh submission (a retry after failure) replaces the recorded
// transaction; polls carry no hash and leave the state untouched.
func (s FrameState) RecordTransaction(txHash string, srcChain int64) FrameState {
	if txHash == "" {
		return s
	}
	s.TxHash = txHash
	s.SrcChain = srcChain
	return s
}
