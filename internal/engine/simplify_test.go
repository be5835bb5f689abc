package engine

import (
	"testing"

	"github.com/splitledger/splitledger/internal/models"
)

func balancesFrom(entries map[string]string) models.NetBalance {
	b := make(models.NetBalance, len(entries))
	for id, v := range entries {
		b[id] = d(v)
	}
	return b
}

func TestSimplifyDebts(t *testing.T) {
	tests := []struct {
		name     string
		balances models.NetBalance
		want     []models.SuggestedTransfer
	}{
		{
			name:     "all settled yields no transfers",
			balances: balancesFrom(map[string]string{"A": "0", "B": "0.01", "C": "-0.01"}),
			want:     nil,
		},
		{
			name:     "single pair yields one transfer",
			balances: balancesFrom(map[string]string{"A": "25.00", "B": "-25.00"}),
			want: []models.SuggestedTransfer{
				{FromUserID: "B", ToUserID: "A", Amount: d("25.00")},
			},
		},
		{
			name:     "one debtor pays two creditors largest first",
			balances: balancesFrom(map[string]string{"A": "50.00", "B": "20.00", "C": "-70.00"}),
			want: []models.SuggestedTransfer{
				{FromUserID: "C", ToUserID: "A", Amount: d("50.00")},
				{FromUserID: "C", ToUserID: "B", Amount: d("20.00")},
			},
		},
		{
			name: "equal magnitudes break ties lexicographically",
			balances: balancesFrom(map[string]string{
				"bob": "10.00", "ann": "10.00", "zed": "-10.00", "kim": "-10.00",
			}),
			want: []models.SuggestedTransfer{
				{FromUserID: "kim", ToUserID: "ann", Amount: d("10.00")},
				{FromUserID: "zed", ToUserID: "bob", Amount: d("10.00")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimplifyDebts(tt.balances)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d transfers, want %d: %v", len(got), len(tt.want), got)
			}
			for i, w := range tt.want {
				if got[i].FromUserID != w.FromUserID || got[i].ToUserID != w.ToUserID || !got[i].Amount.Equal(w.Amount) {
					t.Errorf("transfer[%d] = %+v, want %+v", i, got[i], w)
				}
			}
		})
	}
}

func TestSimplifyDebtsSoundnessAndBound(t *testing.T) {
	balances := balancesFrom(map[string]string{
		"A": "103.27",
		"B": "-51.60",
		"C": "12.33",
		"D": "-64.00",
		"E": "0",
	})

	creditors, debtors := 0, 0
	for _, b := range balances {
		switch {
		case b.GreaterThan(epsilon):
			creditors++
		case b.Neg().GreaterThan(epsilon):
			debtors++
		}
	}

	transfers := SimplifyDebts(balances)

	if max := creditors + debtors - 1; len(transfers) > max {
		t.Errorf("emitted %d transfers, bound is %d", len(transfers), max)
	}

	// applying every transfer must bring all balances within epsilon of
	// zero
	applied := make(models.NetBalance, len(balances))
	for id, b := range balances {
		applied[id] = b
	}
	for _, tr := range transfers {
		applied[tr.FromUserID] = applied[tr.FromUserID].Add(tr.Amount)
		applied[tr.ToUserID] = applied[tr.ToUserID].Sub(tr.Amount)
	}
	for id, b := range applied {
		if b.Abs().GreaterThan(epsilon) {
			t.Errorf("balance[%s] = %s after applying transfers, want within %s of zero", id, b, epsilon)
		}
	}
}
