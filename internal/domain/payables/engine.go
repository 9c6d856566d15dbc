// Package payables computes accounts-payable balances and aging over open documents.
//
// Documents are classified by nature: CNATURALEZA >= 1 is a debt (supplier
// invoice), CNATURALEZA = 0 is a credit (payment, return). Credits reduce the
// net balance of a supplier regardless of the date they were issued.
package payables

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"erpreports/internal/core/types"
)

// Aging bucket labels.
const (
	BucketNotDue = "NO_VENCIDO"
	Bucket1To30  = "01-30"
	Bucket31To60 = "31-60"
	Bucket61To90 = "61-90"
	BucketOver90 = "90+"
)

// Status labels.
const (
	StatusOverdue = "vencido"
	StatusCurrent = "corriente"
)

// Document type labels of the detail view.
const (
	KindDebt   = "DEUDA"
	KindCredit = "CREDITO"
)

var (
	// OpenThreshold is the pending amount above which a document counts as open.
	OpenThreshold = decimal.RequireFromString("0.01")

	bucketOrder = []string{BucketNotDue, Bucket1To30, Bucket31To60, Bucket61To90, BucketOver90}
)

// Document is one open payable document as read from admDocumentos.
type Document struct {
	ID         int64           `db:"CIDDOCUMENTO"`
	Date       time.Time       `db:"CFECHA"`
	Folio      float64         `db:"CFOLIO"`
	Series     *string         `db:"CSERIEDOCUMENTO"`
	SupplierID int64           `db:"CIDCLIENTEPROVEEDOR"`
	Supplier   *string         `db:"proveedor"`
	Concept    *string         `db:"concepto"`
	Nature     int             `db:"CNATURALEZA"`
	Pending    decimal.Decimal `db:"CPENDIENTE"`
	DueDate    *time.Time      `db:"CFECHAVENCIMIENTO"`
}

// IsDebt reports whether the document increases what is owed.
func (d Document) IsDebt() bool { return d.Nature >= 1 }

// IsCredit reports whether the document reduces what is owed.
func (d Document) IsCredit() bool { return d.Nature == 0 }

// SupplierBalance is one row of the supplier summary.
type SupplierBalance struct {
	SupplierID int64        `json:"CIDCLIENTEPROVEEDOR"`
	Supplier   *string      `json:"proveedor"`
	Balance    types.Amount `json:"saldo_real"`
	Debts      types.Amount `json:"total_deudas"`
	Credits    types.Amount `json:"total_pagos_creditos"`
	Overdue    types.Amount `json:"saldo_vencido"`
	Documents  int          `json:"documentos"`
}

// StatusTotal is one row of the current vs overdue summary.
type StatusTotal struct {
	Status    string       `json:"estado"`
	Total     types.Amount `json:"saldo_total"`
	Suppliers int          `json:"proveedores"`
}

// BucketTotal is one row of the aging summary.
type BucketTotal struct {
	Bucket    string       `json:"bucket"`
	Total     types.Amount `json:"saldo_total"`
	Documents int          `json:"documentos"`
}

// DetailLine is one document of the detail view.
type DetailLine struct {
	ID          int64        `json:"CIDDOCUMENTO"`
	Date        time.Time    `json:"CFECHA"`
	Folio       float64      `json:"CFOLIO"`
	Series      *string      `json:"CSERIEDOCUMENTO"`
	SupplierID  int64        `json:"CIDCLIENTEPROVEEDOR"`
	Supplier    *string      `json:"proveedor"`
	Concept     *string      `json:"concepto"`
	Pending     types.Amount `json:"CPENDIENTE"`
	Kind        string       `json:"tipo"`
	NetAmount   types.Amount `json:"monto_neto"`
	DueDate     *time.Time   `json:"CFECHAVENCIMIENTO"`
	DaysOverdue int          `json:"dias_vencido"`
}

// MonthTotal is one row of the monthly cash-flow view.
type MonthTotal struct {
	Month     int          `json:"mes"`
	MonthName string       `json:"mes_nombre"`
	Purchases types.Amount `json:"compras"`
	Payments  types.Amount `json:"pagos"`
}

// Engine evaluates the payable views against a fixed clock.
type Engine struct {
	now func() time.Time
	loc *time.Location
}

// NewEngine creates an engine. A nil clock means time.Now.
// The database clock is UTC until WithLocation says otherwise.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now, loc: time.UTC}
}

// WithLocation sets the time zone of the database server.
// Due dates are naive wall-clock values (driver-stamped UTC), so the clock
// must be read in the same zone to behave like GETDATE().
func (e *Engine) WithLocation(loc *time.Location) *Engine {
	if loc != nil {
		e.loc = loc
	}
	return e
}

// Now returns the database wall-clock time, stamped UTC like the due dates.
func (e *Engine) Now() time.Time {
	n := e.now().In(e.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second(), n.Nanosecond(), time.UTC)
}

// Suppliers returns net balances per supplier, dropping suppliers whose net
// balance is at or below OpenThreshold. Ordered by balance descending.
func (e *Engine) Suppliers(docs []Document) []SupplierBalance {
	return suppliersAt(docs, e.Now())
}

func suppliersAt(docs []Document, now time.Time) []SupplierBalance {
	type acc struct {
		row                     SupplierBalance
		debts, credits, overdue decimal.Decimal
	}
	bySupplier := make(map[int64]*acc)
	var order []int64

	for _, d := range docs {
		a, ok := bySupplier[d.SupplierID]
		if !ok {
			a = &acc{row: SupplierBalance{SupplierID: d.SupplierID, Supplier: d.Supplier}}
			bySupplier[d.SupplierID] = a
			order = append(order, d.SupplierID)
		}
		if a.row.Supplier == nil && d.Supplier != nil {
			a.row.Supplier = d.Supplier
		}
		a.row.Documents++

		switch {
		case d.IsDebt():
			a.debts = a.debts.Add(d.Pending)
			if isOverdue(d, now) {
				a.overdue = a.overdue.Add(d.Pending)
			}
		case d.IsCredit():
			a.credits = a.credits.Add(d.Pending)
		}
	}

	out := make([]SupplierBalance, 0, len(order))
	for _, id := range order {
		a := bySupplier[id]
		net := a.debts.Sub(a.credits)
		if net.LessThanOrEqual(OpenThreshold) {
			continue
		}
		a.row.Balance = types.NewAmount(net)
		a.row.Debts = types.NewAmount(a.debts)
		a.row.Credits = types.NewAmount(a.credits)
		a.row.Overdue = types.NewAmount(a.overdue)
		out = append(out, a.row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Balance.GreaterThan(out[j].Balance.Decimal)
	})
	return out
}

// Status splits the supplier summary into overdue and current totals.
// Both rows are always present.
func (e *Engine) Status(docs []Document) []StatusTotal {
	now := e.Now()
	overdue := StatusTotal{Status: StatusOverdue}
	current := StatusTotal{Status: StatusCurrent}
	overdueSum, currentSum := decimal.Zero, decimal.Zero

	for _, s := range suppliersAt(docs, now) {
		if s.Overdue.IsPositive() {
			overdueSum = overdueSum.Add(s.Overdue.Decimal)
			overdue.Suppliers++
		}
		if s.Balance.GreaterThan(s.Overdue.Decimal) {
			currentSum = currentSum.Add(s.Balance.Sub(s.Overdue.Decimal))
			current.Suppliers++
		}
	}

	overdue.Total = types.NewAmount(overdueSum)
	current.Total = types.NewAmount(currentSum)
	return []StatusTotal{overdue, current}
}

// Buckets classifies the debts of suppliers with an open net balance by days
// past due. Credits never enter a bucket. Empty buckets are omitted.
func (e *Engine) Buckets(docs []Document) []BucketTotal {
	now := e.Now()

	open := make(map[int64]bool)
	for _, s := range suppliersAt(docs, now) {
		open[s.SupplierID] = true
	}

	totals := make(map[string]*BucketTotal)
	sums := make(map[string]decimal.Decimal)
	for _, d := range docs {
		if !d.IsDebt() || !open[d.SupplierID] {
			continue
		}
		b := BucketFor(d.DueDate, now)
		t, ok := totals[b]
		if !ok {
			t = &BucketTotal{Bucket: b}
			totals[b] = t
		}
		t.Documents++
		sums[b] = sums[b].Add(d.Pending)
	}

	out := make([]BucketTotal, 0, len(totals))
	for _, b := range bucketOrder {
		if t, ok := totals[b]; ok {
			t.Total = types.NewAmount(sums[b])
			out = append(out, *t)
		}
	}
	return out
}

// Detail lists every document with its signed amount and days overdue.
// Ordered by date descending, then folio descending.
func (e *Engine) Detail(docs []Document) []DetailLine {
	now := e.Now()

	out := make([]DetailLine, 0, len(docs))
	for _, d := range docs {
		line := DetailLine{
			ID:         d.ID,
			Date:       d.Date,
			Folio:      d.Folio,
			Series:     d.Series,
			SupplierID: d.SupplierID,
			Supplier:   d.Supplier,
			Concept:    d.Concept,
			Pending:    types.NewAmount(d.Pending),
			DueDate:    d.DueDate,
		}
		if d.IsDebt() {
			line.Kind = KindDebt
			line.NetAmount = types.NewAmount(d.Pending)
			if isOverdue(d, now) {
				line.DaysOverdue = DaysPastDue(*d.DueDate, now)
			}
		} else {
			line.Kind = KindCredit
			line.NetAmount = types.NewAmount(d.Pending.Neg())
		}
		out = append(out, line)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Folio > out[j].Folio
	})
	return out
}

// Monthly totals purchases (debts) and payments (credits) per calendar month.
// Only months with documents are returned, in month order.
func (e *Engine) Monthly(docs []Document) []MonthTotal {
	var purchases, payments [13]decimal.Decimal
	var seen [13]bool

	for _, d := range docs {
		m := int(d.Date.Month())
		seen[m] = true
		switch {
		case d.IsDebt():
			purchases[m] = purchases[m].Add(d.Pending)
		case d.IsCredit():
			payments[m] = payments[m].Add(d.Pending)
		}
	}

	out := make([]MonthTotal, 0, 12)
	for m := 1; m <= 12; m++ {
		if !seen[m] {
			continue
		}
		out = append(out, MonthTotal{
			Month:     m,
			MonthName: time.Month(m).String(),
			Purchases: types.NewAmount(purchases[m]),
			Payments:  types.NewAmount(payments[m]),
		})
	}
	return out
}

// BucketFor returns the aging bucket of a debt due at due, evaluated at now.
// A debt that fell due earlier today is overdue by zero days and lands in 01-30.
func BucketFor(due *time.Time, now time.Time) string {
	if due == nil || !due.Before(now) {
		return BucketNotDue
	}
	switch days := DaysPastDue(*due, now); {
	case days <= 30:
		return Bucket1To30
	case days <= 60:
		return Bucket31To60
	case days <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}

// DaysPastDue counts calendar-day boundaries between due and now, like DATEDIFF(day, due, now).
func DaysPastDue(due, now time.Time) int {
	dy, dm, dd := due.Date()
	ny, nm, nd := now.In(due.Location()).Date()
	from := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	to := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func isOverdue(d Document, now time.Time) bool {
	return d.IsDebt() && d.DueDate != nil && d.DueDate.Before(now)
}
