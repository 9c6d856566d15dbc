// Package query assembles parameterized T-SQL statements for the report views.
//
// Every user-supplied value is bound as a parameter. Only closed enumerations
// (period formats, column names) and clamped integers (TOP) are rendered into
// the statement text.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/golang-sql/civil"

	"erpreports/internal/domain/filter"
)

// Builder renders @pN placeholders as required by go-mssqldb.
var Builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.AtP)

// Statement is a ready-to-run SQL text with its bound arguments.
type Statement struct {
	SQL  string
	Args []any
}

// Build renders a squirrel builder into a Statement.
func Build(b squirrel.Sqlizer) (Statement, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return Statement{}, fmt.Errorf("build statement: %w", err)
	}
	return Statement{SQL: sql, Args: args}, nil
}

// Predicates accumulates WHERE conditions in order. The zero value is ready to use.
type Predicates struct {
	parts []squirrel.Sqlizer
}

// Len returns the number of conditions.
func (p *Predicates) Len() int { return len(p.parts) }

// Raw appends an arbitrary condition.
func (p *Predicates) Raw(s squirrel.Sqlizer) *Predicates {
	p.parts = append(p.parts, s)
	return p
}

// Const appends a fixed condition without parameters.
func (p *Predicates) Const(sql string) *Predicates {
	return p.Raw(squirrel.Expr(sql))
}

// Eq appends col = value.
func (p *Predicates) Eq(col string, value any) *Predicates {
	return p.Raw(squirrel.Eq{col: value})
}

// EqID appends col = id when id is set.
func (p *Predicates) EqID(col string, id *int64) *Predicates {
	if id == nil {
		return p
	}
	return p.Eq(col, *id)
}

// EqString appends col = value when value is not empty.
func (p *Predicates) EqString(col, value string) *Predicates {
	if value == "" {
		return p
	}
	return p.Eq(col, value)
}

// Since appends col >= day.
func (p *Predicates) Since(col string, day time.Time) *Predicates {
	return p.Raw(squirrel.GtOrEq{col: Date(day)})
}

// DateRange appends col >= From AND col < To when r is set.
func (p *Predicates) DateRange(col string, r *filter.DateRange) *Predicates {
	if r == nil {
		return p
	}
	return p.Raw(DateRange(col, *r))
}

// Contains appends a substring match over one or more columns (ORed).
func (p *Predicates) Contains(term string, cols ...string) *Predicates {
	if term == "" || len(cols) == 0 {
		return p
	}
	return p.Raw(Contains(term, cols...))
}

// Sqlizer joins the conditions with AND.
func (p *Predicates) Sqlizer() squirrel.Sqlizer {
	return squirrel.And(p.parts)
}

// Where returns "WHERE a AND b ..." with ? placeholders, or "" when empty.
// Use it for hand-written templates; squirrel builders should call Apply.
func (p *Predicates) Where() (string, []any, error) {
	if len(p.parts) == 0 {
		return "", nil, nil
	}
	sql, args, err := p.Sqlizer().ToSql()
	if err != nil {
		return "", nil, err
	}
	return "WHERE " + sql, args, nil
}

// Apply adds every condition to a select builder.
func (p *Predicates) Apply(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	for _, part := range p.parts {
		b = b.Where(part)
	}
	return b
}

// Subquery renders b with ? placeholders for embedding in an outer Expr.
// The outer builder renumbers every placeholder.
func Subquery(b squirrel.SelectBuilder) (string, []any, error) {
	return b.PlaceholderFormat(squirrel.Question).ToSql()
}

// DateRange builds col >= From AND col < To.
func DateRange(col string, r filter.DateRange) squirrel.Sqlizer {
	return squirrel.And{
		squirrel.GtOrEq{col: Date(r.From)},
		squirrel.Lt{col: Date(r.To)},
	}
}

// Contains builds (c1 LIKE ? OR c2 LIKE ?) with a %term% pattern.
func Contains(term string, cols ...string) squirrel.Sqlizer {
	pattern := "%" + EscapeLike(term) + "%"
	or := make(squirrel.Or, 0, len(cols))
	for _, c := range cols {
		or = append(or, squirrel.Like{c: pattern})
	}
	return or
}

var likeEscaper = strings.NewReplacer("[", "[[]", "%", "[%]", "_", "[_]")

// EscapeLike neutralizes T-SQL LIKE wildcards in a literal term.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// Date converts a midnight timestamp into a DATE parameter.
func Date(t time.Time) civil.Date {
	return civil.DateOf(t)
}

// Top renders the TOP clause for a clamped limit.
func Top(n int) string {
	return fmt.Sprintf("TOP(%d)", filter.ClampLimit(n))
}

// PeriodLabel returns the label expression of a time bucket over col.
// Day renders yyyy-MM-dd, month yyyy-MM and week yyyy-Www using ISO weeks.
func PeriodLabel(col string, p filter.Period) string {
	switch p {
	case filter.PeriodDay:
		return fmt.Sprintf("FORMAT(%s, 'yyyy-MM-dd')", col)
	case filter.PeriodWeek:
		// ISO week-numbering year, so Dec 31 may label as W01 of the next year.
		return fmt.Sprintf(
			"CONCAT(YEAR(DATEADD(day, 26 - DATEPART(iso_week, %[1]s), %[1]s)), '-W', RIGHT(CONCAT('0', DATEPART(iso_week, %[1]s)), 2))",
			col)
	default:
		return fmt.Sprintf("FORMAT(%s, 'yyyy-MM')", col)
	}
}
