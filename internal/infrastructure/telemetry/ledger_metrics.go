package telemetry

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	AttrBranchID    = attribute.Key("branch_id")
	AttrPolicy      = attribute.Key("deduction_policy")
	AttrBalanceKind = attribute.Key("balance_kind")
)

// Balance kinds reported by RecordSettlement
const (
	BalanceKindPayable    = "payable"
	BalanceKindReceivable = "receivable"
	BalanceKindAdvance    = "advance"
)

// LedgerMetrics counts payroll and settlement activity.
// All methods are safe on a nil receiver, which records nothing.
type LedgerMetrics struct {
	salaryPayments   *Counter
	salaryNet        *FloatCounter
	deductedTotal    *FloatCounter
	deductionsPerRun *Histogram
	settlements      *Counter
	settledTotal     *FloatCounter
}

// NewLedgerMetrics registers the ledger instruments on meter
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		m   LedgerMetrics
		err error
	)
	if m.salaryPayments, err = NewCounter(meter, "backoffice_salary_payments_total",
		"Number of salary payments recorded", "{payments}"); err != nil {
		return nil, err
	}
	if m.salaryNet, err = NewFloatCounter(meter, "backoffice_salary_net_amount_total",
		"Net salary cash paid out", "{currency}"); err != nil {
		return nil, err
	}
	if m.deductedTotal, err = NewFloatCounter(meter, "backoffice_advance_deducted_amount_total",
		"Amount recovered from employee advances", "{currency}"); err != nil {
		return nil, err
	}
	if m.deductionsPerRun, err = NewHistogram(meter, HistogramOpts{
		Name:        "backoffice_salary_deductions_per_payment",
		Description: "Advances touched by one salary payment",
		Unit:        "{advances}",
		Boundaries:  []float64{0, 1, 2, 3, 5, 8},
	}); err != nil {
		return nil, err
	}
	if m.settlements, err = NewCounter(meter, "backoffice_settlements_total",
		"Payments and collections applied to balances", "{settlements}"); err != nil {
		return nil, err
	}
	if m.settledTotal, err = NewFloatCounter(meter, "backoffice_settled_amount_total",
		"Amount settled against balances", "{currency}"); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordSalaryPaid records one salary payment
func (m *LedgerMetrics) RecordSalaryPaid(ctx context.Context, branchID uuid.UUID, policy string, net, deducted decimal.Decimal, deductions int) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{AttrBranchID.String(branchID.String()), AttrPolicy.String(policy)}
	m.salaryPayments.Inc(ctx, attrs...)
	m.salaryNet.Add(ctx, net.InexactFloat64(), attrs...)
	m.deductionsPerRun.Record(ctx, float64(deductions), attrs...)
	if deducted.IsPositive() {
		m.deductedTotal.Add(ctx, deducted.InexactFloat64(), attrs...)
	}
}

// RecordSettlement records a payment, collection or manual deduction
func (m *LedgerMetrics) RecordSettlement(ctx context.Context, branchID uuid.UUID, kind string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{AttrBranchID.String(branchID.String()), AttrBalanceKind.String(kind)}
	m.settlements.Inc(ctx, attrs...)
	m.settledTotal.Add(ctx, amount.InexactFloat64(), attrs...)
}
