package types

import "testing"

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want TransactionStatus
	}{
		{"Executed", TxExecuted},
		{"Failed", TxFailed},
		{"Pending", TxPending},
		{"", TxPending},
		{"executed", TxPending},
		{"EXECUTED", TxPending},
		{"Unknown", TxPending},
		{"WAIT_DESTINATION_TRANSACTION", TxPending},
	}

	for _, tc := range cases {
		if got := ClassifyStatus(tc.raw); got != tc.want {
			t.Errorf("ClassifyStatus(%q) = %v, want %v", tc.raw, got, tc.want)
		}
		// Classification is pure; a second call must agree.
		if got := ClassifyStatus(tc.raw); got != tc.want {
			t.Errorf("ClassifyStatus(%q) second call = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
