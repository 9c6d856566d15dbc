package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"erpreports/internal/infrastructure/storage/mssql/query"
	"erpreports/pkg/logger"
)

var tracer = otel.Tracer("erpreports/mssql")

// Querier is the read side of *sql.DB, satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Compile-time check that Pool satisfies Querier.
var _ Querier = (*Pool)(nil)

// Runner executes report statements with a per-query timeout and tracing.
type Runner struct {
	q       Querier
	timeout time.Duration
}

// NewRunner creates a runner. A zero timeout leaves the request deadline alone.
func NewRunner(q Querier, timeout time.Duration) *Runner {
	return &Runner{q: q, timeout: timeout}
}

// SelectRows runs stmt and returns every row as column -> normalized value.
func (r *Runner) SelectRows(ctx context.Context, name string, stmt query.Statement) ([]map[string]any, error) {
	var rows []map[string]any
	if err := r.run(ctx, name, stmt, func(ctx context.Context) error {
		return sqlscan.Select(ctx, r.q, &rows, stmt.SQL, stmt.Args...)
	}); err != nil {
		return nil, err
	}

	for _, row := range rows {
		NormalizeRow(row)
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return rows, nil
}

// Select runs stmt and scans the rows into dst (pointer to slice of structs).
func (r *Runner) Select(ctx context.Context, name string, dst any, stmt query.Statement) error {
	return r.run(ctx, name, stmt, func(ctx context.Context) error {
		return sqlscan.Select(ctx, r.q, dst, stmt.SQL, stmt.Args...)
	})
}

func (r *Runner) run(ctx context.Context, name string, stmt query.Statement, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, "mssql.select",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "mssql"),
			attribute.String("db.operation", name),
			attribute.Int("db.args", len(stmt.Args)),
		))
	defer span.End()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	log := logger.FromContext(ctx).WithComponent("mssql")

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		log.Debugw("query failed", "query", name, "sql", stmt.SQL, "duration_ms", elapsed.Milliseconds())
		return fmt.Errorf("%s: %w", name, err)
	}

	log.Debugw("query executed", "query", name, "sql", stmt.SQL, "duration_ms", elapsed.Milliseconds())
	return nil
}
