package mintflow

import "github.com/dtechvision/mintframe/common/types"

// ScreenKind names the renderable outcomes of a polling screen. The
// rendering protocol has no server push, so "wait and recheck" is itself a
// screen whose single action triggers the next poll.
type ScreenKind int

const (
	// ScreenSuccess is the terminal screen with a link out.
	ScreenSuccess ScreenKind = iota
	// ScreenRetry re-offers the mint transaction after an on-chain failure.
	ScreenRetry
	// ScreenProcessing offers a check-status action while settlement is
	// still pending.
	ScreenProcessing
)

// NextScreen maps a poll outcome to the screen to render. Pure; the same
// status always yields the same screen. Both polling states (after the
// transaction and at the end screen) branch identically, differing only
// in the link destination and in the pending action's target, which the
// rendering layer supplies.
func NextScreen(status types.TransactionStatus) ScreenKind {
	switch status {
	case types.TxExecuted:
		return ScreenSuccess
	case types.TxFailed:
		return ScreenRetry
	default:
		return ScreenProcessing
	}
}
