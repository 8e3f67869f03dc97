package domain

import (
	"github.com/shopspring/decimal"
)

// Payment is one posted payment record. NetRemaining and LateFeeApplied are
// scratch state for a single allocation pass; payments must be re-normalized
// from raw input before every run.
type Payment struct {
	PaymentID      string          `json:"paymentId"`
	Gross          decimal.Decimal `json:"grossAmount"`
	LateFeePortion decimal.Decimal `json:"lateFeePortion"`

	// NetRemaining is the balance still available to satisfy charges,
	// max(Gross - LateFeePortion, 0) at construction. It decreases
	// monotonically while the allocator runs.
	NetRemaining decimal.Decimal `json:"netRemaining"`

	// EligibleInstallments is the set of installment numbers this payment may
	// settle. Empty means the payment settles nothing directly.
	EligibleInstallments []int `json:"eligibleInstallments"`

	ValueDate      string `json:"valueDate"`
	RegisteredDate string `json:"registeredDate"`

	// LateFeeApplied guards the late-fee portion so it is recorded in the
	// ledger exactly once, no matter how many charges the payment touches.
	LateFeeApplied bool `json:"-"`
}

// EligibleFor reports whether the payment may settle the given installment.
func (p *Payment) EligibleFor(installment int) bool {
	for _, n := range p.EligibleInstallments {
		if n == installment {
			return true
		}
	}
	return false
}
