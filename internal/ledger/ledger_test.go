package ledger

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyNewPayment_FullPaymentThenRejected(t *testing.T) {
	snap := Snapshot{PackagePrice: 2500, Deposit: 500}

	res, err := ApplyNewPayment(snap, 2000)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, res.TotalPayments)
	assert.Equal(t, 0.0, res.Remaining)

	snap.TotalPayments = res.TotalPayments
	_, err = ApplyNewPayment(snap, 0.01)
	require.ErrorIs(t, err, ErrAlreadyFullyPaid)
	assert.Equal(t, "This booking is already fully paid. No additional payments can be added.", err.Error())
}

func TestApplyNewPayment_Boundary(t *testing.T) {
	snap := Snapshot{PackagePrice: 1000, Deposit: 200, TotalPayments: 300.25}

	res, err := ApplyNewPayment(snap, 499.75)
	require.NoError(t, err)
	assert.Equal(t, 800.0, res.TotalPayments)
	assert.Equal(t, 0.0, res.Remaining)

	_, err = ApplyNewPayment(snap, 499.76)
	require.ErrorIs(t, err, ErrExceedsRemaining)

	re, ok := AsRuleError(err)
	require.True(t, ok)
	assert.Equal(t, KindExceedsRemaining, re.Kind)
	assert.Equal(t, 499.75, re.Remaining)
	assert.Equal(t, "Payment amount exceeds remaining balance. Remaining: £499.75", err.Error())
}

func TestApplyNewPayment_RemainingNotPositive(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{name: "zero price", snap: Snapshot{}},
		{name: "deposit covers price", snap: Snapshot{PackagePrice: 500, Deposit: 500}},
		{name: "overpaid", snap: Snapshot{PackagePrice: 500, Deposit: 100, TotalPayments: 450}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, amount := range []float64{0.01, 1, 1e6} {
				_, err := ApplyNewPayment(tt.snap, amount)
				assert.ErrorIs(t, err, ErrAlreadyFullyPaid)
			}
		})
	}
}

func TestApplyNewPayment_InvalidAmount(t *testing.T) {
	snap := Snapshot{PackagePrice: 1000}

	for _, amount := range []float64{0, -5, 0.001, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := ApplyNewPayment(snap, amount)
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %v", amount)
	}
}

func TestApplyNewPayment_NoOverpayAcrossSequence(t *testing.T) {
	snap := Snapshot{PackagePrice: 1234.56, Deposit: 234.56}
	ceiling := snap.PackagePrice - snap.Deposit

	for _, amount := range []float64{100, 333.33, 600, 566.67, 1} {
		res, err := ApplyNewPayment(snap, amount)
		if err != nil {
			var re *RuleError
			require.True(t, errors.As(err, &re))
			continue
		}
		snap.TotalPayments = res.TotalPayments
		assert.LessOrEqual(t, snap.TotalPayments, ceiling)
	}
	assert.Equal(t, 1000.0, snap.TotalPayments)
}

func TestApplyAmendedAmount(t *testing.T) {
	snap := Snapshot{PackagePrice: 2500, Deposit: 500, TotalPayments: 1500}

	res, err := ApplyAmendedAmount(snap, 1000, 1500)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, res.TotalPayments)
	assert.Equal(t, 0.0, res.Remaining)

	res, err = ApplyAmendedAmount(snap, 1000, 400)
	require.NoError(t, err)
	assert.Equal(t, 900.0, res.TotalPayments)
	assert.Equal(t, 1100.0, res.Remaining)

	_, err = ApplyAmendedAmount(snap, 1000, 1500.01)
	require.ErrorIs(t, err, ErrExceedsRemaining)
	assert.Equal(t, "New amount would exceed remaining balance. Remaining: £1,500.00", err.Error())

	_, err = ApplyAmendedAmount(snap, 1000, 0)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestApplyRemovedPayment_NegativeIsFlaggedNotClamped(t *testing.T) {
	res := ApplyRemovedPayment(Snapshot{PackagePrice: 1000, Deposit: 100, TotalPayments: 300}, 300)
	assert.Equal(t, 0.0, res.TotalPayments)
	assert.Equal(t, 900.0, res.Remaining)
	assert.False(t, res.NegativeTotal)

	res = ApplyRemovedPayment(Snapshot{PackagePrice: 1000, Deposit: 100, TotalPayments: 200}, 300)
	assert.Equal(t, -100.0, res.TotalPayments)
	assert.Equal(t, 1000.0, res.Remaining)
	assert.True(t, res.NegativeTotal)
}

func TestApplyImportedDeposit_AlwaysAccepted(t *testing.T) {
	res := ApplyImportedDeposit(Snapshot{PackagePrice: 0, Deposit: 500}, 500)
	assert.Equal(t, 500.0, res.TotalPayments)
	assert.Equal(t, -1000.0, res.Remaining)

	res = ApplyImportedDeposit(Snapshot{PackagePrice: 3000, Deposit: 500}, 500)
	assert.Equal(t, 500.0, res.TotalPayments)
	assert.Equal(t, 2000.0, res.Remaining)
}

func TestReconcile(t *testing.T) {
	snap := Snapshot{PackagePrice: 1000, Deposit: 0, TotalPayments: 300}

	rec := Reconcile(snap, []float64{100, 200})
	assert.True(t, rec.Consistent)
	assert.Equal(t, 0.0, rec.Drift)
	assert.Equal(t, 700.0, rec.ExpectedRemaining)

	rec = Reconcile(snap, []float64{100})
	assert.False(t, rec.Consistent)
	assert.Equal(t, 200.0, rec.Drift)
	assert.Equal(t, 900.0, rec.ExpectedRemaining)

	rec = Reconcile(Snapshot{PackagePrice: 100, TotalPayments: -50}, nil)
	assert.True(t, rec.NegativeTotal)
	assert.False(t, rec.Consistent)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "£0.00", FormatMoney(0))
	assert.Equal(t, "£999.50", FormatMoney(999.5))
	assert.Equal(t, "£1,234.56", FormatMoney(1234.555))
	assert.Equal(t, "£1,000,000.00", FormatMoney(1e6))
	assert.Equal(t, "-£25.10", FormatMoney(-25.1))
}
