package domain

import (
	"github.com/shopspring/decimal"
)

// Charge is one billed installment or fee line item on the account statement.
// ChargeID is the authoritative settlement order key; InstallmentNumber is
// derived from the concept text and is not always equal to ChargeID.
type Charge struct {
	ChargeID          int             `json:"chargeId"`
	Concept           string          `json:"concept"`
	InstallmentNumber int             `json:"installmentNumber"`
	Amount            decimal.Decimal `json:"amount"`
	Principal         decimal.Decimal `json:"principal"`
	Interest          decimal.Decimal `json:"interest"`
	InsuranceTotal    decimal.Decimal `json:"insuranceTotal"`
	DueDate           string          `json:"dueDate"`
}
