package filter

import "strings"

// Period is a time-bucket aggregation mode.
type Period string

const (
	PeriodNone  Period = ""
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod maps groupBy to a Period. Anything else is PeriodNone.
func ParsePeriod(raw string) Period {
	switch p := Period(strings.ToLower(strings.TrimSpace(raw))); p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return p
	default:
		return PeriodNone
	}
}

// PurchasesShape selects the query template of the purchases report.
type PurchasesShape string

const (
	PurchasesRaw          PurchasesShape = "raw"
	PurchasesByPeriod     PurchasesShape = "period"
	PurchasesTopSuppliers PurchasesShape = "supplier"
	PurchasesTopProducts  PurchasesShape = "products"
)

// ParsePurchasesShape resolves groupBy/top. Period aggregation wins over top-N.
func ParsePurchasesShape(groupBy, top string) (PurchasesShape, Period) {
	if p := ParsePeriod(groupBy); p != PeriodNone {
		return PurchasesByPeriod, p
	}
	switch strings.ToLower(strings.TrimSpace(top)) {
	case "supplier", "suppliers":
		return PurchasesTopSuppliers, PeriodNone
	case "product", "products":
		return PurchasesTopProducts, PeriodNone
	default:
		return PurchasesRaw, PeriodNone
	}
}

// PayablesView selects the accounts-payable view.
type PayablesView string

const (
	PayablesSupplier PayablesView = "supplier"
	PayablesStatus   PayablesView = "status"
	PayablesBucket   PayablesView = "bucket"
	PayablesDetail   PayablesView = "detail"
	PayablesMonthly  PayablesView = "monthly"
)

// ParsePayablesView resolves groupBy, defaulting to the supplier summary.
func ParsePayablesView(raw string) PayablesView {
	switch v := PayablesView(strings.ToLower(strings.TrimSpace(raw))); v {
	case PayablesStatus, PayablesBucket, PayablesDetail, PayablesMonthly:
		return v
	default:
		return PayablesSupplier
	}
}

// PaymentsShape selects the supplier payments template.
type PaymentsShape string

const (
	PaymentsRaw        PaymentsShape = "raw"
	PaymentsByPeriod   PaymentsShape = "period"
	PaymentsBySupplier PaymentsShape = "supplier"
)

// ParsePaymentsShape resolves groupBy for supplier payments.
func ParsePaymentsShape(raw string) (PaymentsShape, Period) {
	if p := ParsePeriod(raw); p != PeriodNone {
		return PaymentsByPeriod, p
	}
	if strings.EqualFold(strings.TrimSpace(raw), "supplier") {
		return PaymentsBySupplier, PeriodNone
	}
	return PaymentsRaw, PeriodNone
}

// GoalsShape selects the sales goals template.
type GoalsShape string

const (
	GoalsDetail   GoalsShape = "detail"
	GoalsByClient GoalsShape = "client"
	GoalsByMonth  GoalsShape = "month"
)

// ParseGoalsShape resolves groupBy for sales goals.
func ParseGoalsShape(raw string) GoalsShape {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "client", "cliente":
		return GoalsByClient
	case "month", "mes":
		return GoalsByMonth
	default:
		return GoalsDetail
	}
}
