package ledger

import (
	"testing"

	"github.com/credara/statements-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func charge(id, installment int, amount string) *domain.Charge {
	return &domain.Charge{
		ChargeID:          id,
		InstallmentNumber: installment,
		Amount:            dec(amount),
	}
}

func payment(id string, gross, lateFee string, installments ...int) *domain.Payment {
	g := dec(gross)
	f := dec(lateFee)
	net := g.Sub(f)
	if net.IsNegative() {
		net = decimal.Zero
	}
	return &domain.Payment{
		PaymentID:            id,
		Gross:                g,
		LateFeePortion:       f,
		NetRemaining:         net,
		EligibleInstallments: installments,
	}
}

func TestAllocate_NoMatchingPayments(t *testing.T) {
	rows := Allocate(
		[]*domain.Charge{charge(1, 1, "250.00")},
		[]*domain.Payment{payment("P1", "100.00", "0", 7)},
	)

	require.Len(t, rows, 1)
	require.True(t, rows[0].TotalPaid.IsZero(), "totalPaid = %s", rows[0].TotalPaid)
	require.True(t, rows[0].Pending.Equal(dec("250.00")), "pending = %s", rows[0].Pending)
	require.Empty(t, rows[0].Allocations)
}

func TestAllocate_ExactSinglePayment(t *testing.T) {
	rows := Allocate(
		[]*domain.Charge{charge(1, 1, "250.00")},
		[]*domain.Payment{payment("P1", "250.00", "0", 1)},
	)

	require.Len(t, rows, 1)
	row := rows[0]
	require.True(t, row.TotalPaid.Equal(dec("250.00")))
	require.True(t, row.Pending.IsZero())
	require.Len(t, row.Allocations, 1)
	require.True(t, row.Allocations[0].Applied.Equal(dec("250.00")))
	require.True(t, row.Allocations[0].LateFee.IsZero())
}

func TestAllocate_PartialPayment(t *testing.T) {
	rows := Allocate(
		[]*domain.Charge{charge(1, 1, "250.00")},
		[]*domain.Payment{payment("P1", "100.00", "0", 1)},
	)

	row := rows[0]
	require.True(t, row.TotalPaid.Equal(dec("100.00")))
	require.True(t, row.Pending.Equal(dec("150.00")))
}

func TestAllocate_OverpaymentCarriesToNextCharge(t *testing.T) {
	// One payment of 150 eligible only for installment 1. The leftover 50
	// must settle installment 2 through the carry-over pool even though the
	// payment never listed it.
	rows := Allocate(
		[]*domain.Charge{
			charge(1, 1, "100.00"),
			charge(2, 2, "100.00"),
		},
		[]*domain.Payment{payment("P1", "150.00", "0", 1)},
	)

	require.Len(t, rows, 2)

	c1, c2 := rows[0], rows[1]
	require.True(t, c1.TotalPaid.Equal(dec("100.00")))
	require.True(t, c1.Pending.IsZero())

	require.True(t, c2.TotalPaid.Equal(dec("50.00")), "carry-over totalPaid = %s", c2.TotalPaid)
	require.True(t, c2.Pending.Equal(dec("50.00")))
	// The surplus settles the next charge anonymously, without an allocation
	// record naming the originating payment.
	require.Empty(t, c2.Allocations)
}

func TestAllocate_SurplusSpansMultipleCharges(t *testing.T) {
	rows := Allocate(
		[]*domain.Charge{
			charge(1, 1, "100.00"),
			charge(2, 2, "50.00"),
			charge(3, 3, "50.00"),
		},
		[]*domain.Payment{payment("P1", "200.00", "0", 1)},
	)

	require.True(t, rows[0].Pending.IsZero())
	require.True(t, rows[1].Pending.IsZero())
	require.True(t, rows[1].TotalPaid.Equal(dec("50.00")))
	require.True(t, rows[2].Pending.IsZero())
	require.True(t, rows[2].TotalPaid.Equal(dec("50.00")))
}

func TestAllocate_ChargeIDOrderNotInstallmentOrder(t *testing.T) {
	// Charges arrive out of order; settlement must follow ChargeID, because
	// the carry-over pool's effect depends on it.
	rows := Allocate(
		[]*domain.Charge{
			charge(2, 5, "100.00"),
			charge(1, 4, "100.00"),
		},
		[]*domain.Payment{payment("P1", "150.00", "0", 4)},
	)

	require.Len(t, rows, 2)
	require.Equal(t, 4, rows[0].Installment)
	require.True(t, rows[0].Pending.IsZero())
	require.Equal(t, 5, rows[1].Installment)
	require.True(t, rows[1].TotalPaid.Equal(dec("50.00")))
}

func TestAllocate_LateFeeRecordedOnce(t *testing.T) {
	// A payment with a late-fee portion eligible for two installments it
	// fully covers yields exactly one late-fee allocation in the whole ledger.
	rows := Allocate(
		[]*domain.Charge{
			charge(1, 1, "50.00"),
			charge(2, 2, "50.00"),
		},
		[]*domain.Payment{payment("P1", "105.00", "5.00", 1, 2)},
	)

	lateFees := 0
	for _, row := range rows {
		for _, a := range row.Allocations {
			if a.LateFee.IsPositive() {
				lateFees++
				require.True(t, a.LateFee.Equal(dec("5.00")))
			}
		}
	}
	require.Equal(t, 1, lateFees)
}

func TestAllocate_LateFeeGatedOnFullCoverage(t *testing.T) {
	// The payment covers only part of the charge, so its late fee stays
	// unrecorded.
	rows := Allocate(
		[]*domain.Charge{charge(1, 1, "100.00")},
		[]*domain.Payment{payment("P1", "55.00", "5.00", 1)},
	)

	require.Len(t, rows[0].Allocations, 1)
	require.True(t, rows[0].Allocations[0].LateFee.IsZero())
	require.True(t, rows[0].TotalPaid.Equal(dec("50.00")))
}

func TestAllocate_LateFeeOnZeroAmountCharge(t *testing.T) {
	// A zero-amount charge counts as covered, so an eligible payment's late
	// fee lands there.
	rows := Allocate(
		[]*domain.Charge{charge(1, 1, "0")},
		[]*domain.Payment{payment("P1", "5.00", "5.00", 1)},
	)

	require.Len(t, rows[0].Allocations, 1)
	require.True(t, rows[0].Allocations[0].LateFee.Equal(dec("5.00")))
}

func TestAllocate_MultiplePaymentsInInputOrder(t *testing.T) {
	rows := Allocate(
		[]*domain.Charge{charge(1, 1, "100.00")},
		[]*domain.Payment{
			payment("P1", "40.00", "0", 1),
			payment("P2", "60.00", "0", 1),
		},
	)

	row := rows[0]
	require.True(t, row.Pending.IsZero())
	require.Len(t, row.Allocations, 2)
	require.Equal(t, "P1", row.Allocations[0].PaymentID)
	require.True(t, row.Allocations[0].Applied.Equal(dec("40.00")))
	require.Equal(t, "P2", row.Allocations[1].PaymentID)
	require.True(t, row.Allocations[1].Applied.Equal(dec("60.00")))
}

func TestAllocate_PaymentSpansMultipleEligibleInstallments(t *testing.T) {
	rows := Allocate(
		[]*domain.Charge{
			charge(1, 1, "60.00"),
			charge(2, 2, "60.00"),
		},
		[]*domain.Payment{payment("P1", "100.00", "0", 1, 2)},
	)

	// The first charge takes 60 and the residue becomes surplus immediately,
	// so the second charge is settled from the pool, not a direct allocation.
	require.True(t, rows[0].Pending.IsZero())
	require.True(t, rows[1].TotalPaid.Equal(dec("40.00")))
	require.True(t, rows[1].Pending.Equal(dec("20.00")))
	require.Empty(t, rows[1].Allocations)
}

func TestAllocate_Idempotence(t *testing.T) {
	raw := []domain.RawPayment{
		{PaymentID: "P1", Amount: 150.0, LateFees: 5.0, WeeklyInstallment: "1,2"},
		{PaymentID: "P2", Amount: 40.0, WeeklyInstallment: 2.0},
	}
	rawCharges := []domain.RawCharge{
		{ChargeID: 1.0, Concept: "CUOTA SEMANAL 1 DE 52", Amount: 100.0},
		{ChargeID: 2.0, Concept: "CUOTA SEMANAL 2 DE 52", Amount: 100.0},
	}

	run := func() []*domain.LedgerRow {
		return Allocate(NormalizeCharges(rawCharges), NormalizePayments(raw))
	}

	first := run()
	second := run()

	require.Equal(t, len(first), len(second))
	for i := range first {
		require.True(t, first[i].TotalPaid.Equal(second[i].TotalPaid), "row %d totalPaid", i)
		require.True(t, first[i].Pending.Equal(second[i].Pending), "row %d pending", i)
		require.Equal(t, len(first[i].Allocations), len(second[i].Allocations), "row %d allocations", i)
	}
}

func TestAllocate_RowTotalsAlwaysReconcile(t *testing.T) {
	rows := Allocate(
		[]*domain.Charge{
			charge(1, 1, "33.33"),
			charge(2, 2, "33.33"),
			charge(3, 3, "33.34"),
		},
		[]*domain.Payment{
			payment("P1", "50.005", "0", 1),
			payment("P2", "25.004", "0", 2),
			payment("P3", "10.00", "2.50", 3),
		},
	)

	minUnit := dec("0.01")
	for _, row := range rows {
		diff := row.TotalPaid.Add(row.Pending).Sub(row.Amount).Abs()
		require.True(t, diff.LessThanOrEqual(minUnit), "installment %d drift %s", row.Installment, diff)
		require.True(t, row.Surplus.LessThanOrEqual(minUnit), "installment %d surplus %s", row.Installment, row.Surplus)
		for _, a := range row.Allocations {
			require.True(t, a.Applied.Equal(a.Applied.Round(2)), "allocation not quantized: %s", a.Applied)
		}
	}
}

func TestAllocate_EmptyInputs(t *testing.T) {
	require.Empty(t, Allocate(nil, nil))

	rows := Allocate([]*domain.Charge{charge(1, 1, "10.00")}, nil)
	require.Len(t, rows, 1)
	require.True(t, rows[0].Pending.Equal(dec("10.00")))
}

func TestAllocate_DoesNotMutateChargeOrder(t *testing.T) {
	charges := []*domain.Charge{
		charge(3, 3, "10.00"),
		charge(1, 1, "10.00"),
		charge(2, 2, "10.00"),
	}
	Allocate(charges, nil)

	require.Equal(t, 3, charges[0].ChargeID)
	require.Equal(t, 1, charges[1].ChargeID)
	require.Equal(t, 2, charges[2].ChargeID)
}
