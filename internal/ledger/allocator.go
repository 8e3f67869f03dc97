package ledger

import (
	"sort"

	"github.com/credara/statements-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// currencyPlaces is the rounding precision for every emitted monetary field.
// Rounding happens at each application step, not only at the end, so the
// per-row surplus captures exactly the slack the reference outputs show.
const currencyPlaces = 2

// Allocate walks charges in ascending ChargeID order and applies eligible
// payments to each, producing one ledger row per charge.
//
// A single carry-over pool threads through the walk: when a payment
// over-settles a charge, the residue detaches from the payment and becomes
// general surplus that the next charge consumes before its own amount, even
// though the originating payment never listed that installment. Each
// payment's late-fee portion is recorded exactly once, against the charge it
// fully covers.
//
// The pass mutates the payments' NetRemaining/LateFeeApplied scratch fields,
// so callers must pass freshly normalized payments on every invocation.
func Allocate(charges []*domain.Charge, payments []*domain.Payment) []*domain.LedgerRow {
	ordered := make([]*domain.Charge, len(charges))
	copy(ordered, charges)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ChargeID < ordered[j].ChargeID
	})

	rows := make([]*domain.LedgerRow, 0, len(ordered))
	surplus := decimal.Zero

	for _, charge := range ordered {
		amount := charge.Amount

		// Consume carry-over before the charge's own amount.
		var remaining decimal.Decimal
		if surplus.GreaterThan(amount) {
			surplus = surplus.Sub(amount)
			remaining = decimal.Zero
		} else {
			remaining = amount.Sub(surplus)
			surplus = decimal.Zero
		}

		allocations := []domain.Allocation{}
		for _, payment := range payments {
			if !payment.EligibleFor(charge.InstallmentNumber) {
				continue
			}

			if remaining.IsPositive() && payment.NetRemaining.IsPositive() {
				applied := decimal.Min(payment.NetRemaining, remaining)
				allocations = append(allocations, domain.Allocation{
					PaymentID:      payment.PaymentID,
					PaymentAmount:  payment.NetRemaining.Round(currencyPlaces),
					Applied:        applied.Round(currencyPlaces),
					RegisteredDate: payment.RegisteredDate,
					PaymentDate:    charge.DueDate,
					LateFee:        decimal.Zero,
				})
				payment.NetRemaining = clampZero(payment.NetRemaining.Sub(applied).Round(currencyPlaces))
				remaining = clampZero(remaining.Sub(applied).Round(currencyPlaces))
			}

			// Whatever the payment still holds flows into the pool for the
			// next charge; the payment itself keeps nothing.
			if payment.NetRemaining.IsPositive() {
				surplus = surplus.Add(payment.NetRemaining)
				payment.NetRemaining = decimal.Zero
			}

			// The late fee lands on the charge this payment fully covers,
			// once per payment.
			if !remaining.IsPositive() && payment.LateFeePortion.IsPositive() && !payment.LateFeeApplied {
				fee := payment.LateFeePortion.Round(currencyPlaces)
				allocations = append(allocations, domain.Allocation{
					PaymentID:      payment.PaymentID,
					PaymentAmount:  fee,
					Applied:        fee,
					RegisteredDate: payment.RegisteredDate,
					PaymentDate:    charge.DueDate,
					LateFee:        payment.LateFeePortion,
				})
				payment.LateFeeApplied = true
			}
		}

		rows = append(rows, assembleRow(charge, remaining, allocations))
	}

	return rows
}

// assembleRow quantizes the charge's monetary fields and derives the row
// totals from what allocation left unpaid.
func assembleRow(charge *domain.Charge, remaining decimal.Decimal, allocations []domain.Allocation) *domain.LedgerRow {
	amount := charge.Amount
	totalPaid := amount.Sub(remaining).Round(currencyPlaces)
	pending := clampZero(amount.Sub(totalPaid)).Round(currencyPlaces)
	rowSurplus := clampZero(totalPaid.Sub(amount).Round(currencyPlaces))

	return &domain.LedgerRow{
		Installment: charge.InstallmentNumber,
		DueDate:     charge.DueDate,
		Amount:      amount.Round(currencyPlaces),
		Principal:   charge.Principal.Round(currencyPlaces),
		Interest:    charge.Interest.Round(currencyPlaces),
		Insurance:   charge.InsuranceTotal.Round(currencyPlaces),
		Allocations: allocations,
		TotalPaid:   totalPaid,
		Pending:     pending,
		Surplus:     rowSurplus,
	}
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
