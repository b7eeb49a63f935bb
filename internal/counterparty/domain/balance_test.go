package domain

import "testing"

func TestApplyDelta(t *testing.T) {
	cases := []struct {
		name      string
		start     Balance
		owedDelta float64
		paidDelta float64
		want      Balance
	}{
		{
			name:      "invoice partially paid",
			start:     Balance{},
			owedDelta: 100,
			paidDelta: 40,
			want:      Balance{TotalPayable: 100, TotalPaid: 40, Remaining: 60, Status: StatusPayable},
		},
		{
			name:      "payment settles exactly",
			start:     Balance{TotalPayable: 100, TotalPaid: 40, Remaining: 60, Status: StatusPayable},
			owedDelta: 0,
			paidDelta: 60,
			want:      Balance{TotalPayable: 100, TotalPaid: 100, Remaining: 0, Status: StatusPaid},
		},
		{
			name:      "overpayment stays paid",
			start:     Balance{TotalPayable: 50, TotalPaid: 50, Status: StatusPaid},
			owedDelta: 0,
			paidDelta: 25,
			want:      Balance{TotalPayable: 50, TotalPaid: 75, Remaining: -25, Status: StatusPaid},
		},
		{
			name:      "invoice fully paid up front",
			start:     Balance{},
			owedDelta: 80,
			paidDelta: 80,
			want:      Balance{TotalPayable: 80, TotalPaid: 80, Remaining: 0, Status: StatusPaid},
		},
		{
			name:      "new debt flips status back",
			start:     Balance{TotalPayable: 100, TotalPaid: 100, Status: StatusPaid},
			owedDelta: 30,
			paidDelta: 0,
			want:      Balance{TotalPayable: 130, TotalPaid: 100, Remaining: 30, Status: StatusPayable},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyDelta(tc.start, tc.owedDelta, tc.paidDelta)
			if got != tc.want {
				t.Fatalf("ApplyDelta(%+v, %v, %v) = %+v, want %+v",
					tc.start, tc.owedDelta, tc.paidDelta, got, tc.want)
			}
		})
	}
}

func TestApplyDeltaRecomputesStaleInput(t *testing.T) {
	// Remaining and Status on the input are ignored, not trusted.
	stale := Balance{TotalPayable: 10, TotalPaid: 0, Remaining: -999, Status: StatusPaid}
	got := ApplyDelta(stale, 0, 0)
	if got.Remaining != 10 || got.Status != StatusPayable {
		t.Fatalf("expected recomputed remaining=10 PAYABLE, got %+v", got)
	}
}
