package domain

import (
	"github.com/shopspring/decimal"
)

// Allocation records one application of a payment against a charge. For
// late-fee allocations LateFee is positive and Applied equals the fee amount;
// for regular allocations LateFee is zero.
type Allocation struct {
	PaymentID string `json:"paymentId"`

	// PaymentAmount is the payment's displayed remaining balance at the time
	// of application, rounded to currency precision.
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
	Applied       decimal.Decimal `json:"applied"`

	RegisteredDate string `json:"registeredDate"`
	PaymentDate    string `json:"paymentDate"`

	LateFee decimal.Decimal `json:"lateFee"`
}

// LedgerRow is the per-charge output record: billed breakdown, the ordered
// list of allocations, and the derived totals. For every row
// TotalPaid + Pending == Amount up to currency rounding, and Surplus holds
// the rounding slack when TotalPaid exceeds Amount.
type LedgerRow struct {
	Installment int    `json:"installment"`
	DueDate     string `json:"dueDate"`

	Amount    decimal.Decimal `json:"amount"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Insurance decimal.Decimal `json:"insurance"`

	Allocations []Allocation `json:"allocations"`

	TotalPaid decimal.Decimal `json:"totalPaid"`
	Pending   decimal.Decimal `json:"pending"`
	Surplus   decimal.Decimal `json:"surplus"`
}
