package mintflow

import (
	"testing"

	"github.com/dtechvision/mintframe/common/types"
)

func TestNextScreen(t *testing.T) {
	cases := []struct {
		status types.TransactionStatus
		want   ScreenKind
	}{
		{types.TxExecuted, ScreenSuccess},
		{types.TxFailed, ScreenRetry},
		{types.TxPending, ScreenProcessing},
	}

	for _, tc := range cases {
		if got := NextScreen(tc.status); got != tc.want {
			t.Errorf("NextScreen(%v) = %v, want %v", tc.status, got, tc.want)
		}
	}
}
