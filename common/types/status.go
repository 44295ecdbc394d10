package types

// TransactionStatus is the tri-state classification of a transaction's
// finality as reported by the routing service.
type TransactionStatus string

const (
	// TxExecuted is the status of a transaction that settled successfully.
	TxExecuted TransactionStatus = "Executed"
	// TxFailed is the status of a transaction that settled with a failure.
	TxFailed TransactionStatus = "Failed"
	// TxPending is the status of a transaction that has not settled yet.
	TxPending TransactionStatus = "Pending"
)

// ClassifyStatus maps a raw status string from the routing service to a
// TransactionStatus. Only the exact strings "Executed" and "Failed" are
// terminal; anything else, including an empty or unknown status, is pending.
func ClassifyStatus(raw string) TransactionStatus {
	switch raw {
	case string(TxExecuted):
		return TxExecuted
	case string(TxFailed):
		return TxFailed
	default:
		return TxPending
	}
}
