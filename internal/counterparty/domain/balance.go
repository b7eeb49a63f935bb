package domain

// Status is derived from the remaining amount; it is never set directly.
type Status string

const (
	StatusPaid    Status = "PAID"
	StatusPayable Status = "PAYABLE"
)

// Balance holds the mutually consistent ledger fields of a counterparty.
type Balance struct {
	TotalPayable float64
	TotalPaid    float64
	Remaining    float64
	Status       Status
}

// ApplyDelta computes the balance after a ledger event. An invoice contributes
// owedDelta = invoice total and paidDelta = amount paid up front; a standalone
// payment contributes owedDelta = 0. Remaining and Status are recomputed from
// scratch so the invariants hold no matter what the input carried.
func ApplyDelta(b Balance, owedDelta, paidDelta float64) Balance {
	next := Balance{
		TotalPayable: b.TotalPayable + owedDelta,
		TotalPaid:    b.TotalPaid + paidDelta,
	}
	next.Remaining = next.TotalPayable - next.TotalPaid
	if next.Remaining > 0 {
		next.Status = StatusPayable
	} else {
		next.Status = StatusPaid
	}
	return next
}
