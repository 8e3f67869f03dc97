// Package ledger turns a credit's raw charge and payment records into an
// authoritative per-installment ledger: how much was billed, which payments
// settled each installment, what remains pending, and how overpayment carries
// forward. The package is pure in-memory logic; fetching the raw statement
// and serving the result belong to the surrounding service and handler layers.
package ledger

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/credara/statements-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// NormalizeCharges converts raw charge records into typed charges. Coercion is
// permissive: missing or non-numeric fields become zero, never an error. The
// installment number comes from the concept text, falling back to the raw
// charge ID when the text yields nothing.
func NormalizeCharges(raw []domain.RawCharge) []*domain.Charge {
	charges := make([]*domain.Charge, 0, len(raw))
	for _, rc := range raw {
		concept := toString(rc.Concept)
		installment, ok := InstallmentNumber(concept)
		if !ok {
			installment = toInt(rc.ChargeID)
		}

		insurance := toDecimal(rc.PropertyInsurance).
			Add(toDecimal(rc.LifeInsurance)).
			Add(toDecimal(rc.UnemploymentInsurance))

		charges = append(charges, &domain.Charge{
			ChargeID:          toInt(rc.ChargeID),
			Concept:           concept,
			InstallmentNumber: installment,
			Amount:            toDecimal(rc.Amount),
			Principal:         toDecimal(rc.Principal),
			Interest:          toDecimal(rc.Interest),
			InsuranceTotal:    insurance,
			DueDate:           toString(rc.DueDate),
		})
	}
	return charges
}

// NormalizePayments converts raw payment records into typed payments.
// NetRemaining is fixed at construction as max(gross - late fees, 0); the
// allocator consumes it as scratch state, so payments must be re-normalized
// before every allocation run.
func NormalizePayments(raw []domain.RawPayment) []*domain.Payment {
	payments := make([]*domain.Payment, 0, len(raw))
	for _, rp := range raw {
		gross := toDecimal(rp.Amount)
		lateFee := toDecimal(rp.LateFees)

		net := gross.Sub(lateFee)
		if net.IsNegative() {
			net = decimal.Zero
		}

		payments = append(payments, &domain.Payment{
			PaymentID:            toString(rp.PaymentID),
			Gross:                gross,
			LateFeePortion:       lateFee,
			NetRemaining:         net,
			EligibleInstallments: ParseInstallmentSet(rp.WeeklyInstallment),
			ValueDate:            toString(rp.ValueDate),
			RegisteredDate:       toString(rp.RegisteredDate),
		})
	}
	return payments
}

// toDecimal coerces a loosely typed upstream value into a decimal, defaulting
// to zero for anything unparseable.
func toDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// toInt coerces a loosely typed upstream value into an int, defaulting to
// zero for anything unparseable.
func toInt(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return int(i)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// toString renders an upstream value for passthrough fields. Numbers keep
// their natural representation; anything else unexpected becomes empty.
func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}
