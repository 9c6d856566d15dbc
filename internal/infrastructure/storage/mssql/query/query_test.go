package query

import (
	"testing"
	"time"

	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erpreports/internal/domain/filter"
)

func TestPredicates_Apply(t *testing.T) {
	id := int64(42)
	r := filter.DateRange{
		From: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC),
	}

	var p Predicates
	p.Const("saldo_pendiente > 0").
		DateRange("fecha", &r).
		EqID("id_cliente", &id).
		EqID("id_almacen", nil).
		Contains("acme", "cliente_name")

	stmt, err := Build(p.Apply(Builder.Select("*").From("dbo.v_fact_ventas")))
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT * FROM dbo.v_fact_ventas WHERE saldo_pendiente > 0 AND (fecha >= @p1 AND fecha < @p2) AND id_cliente = @p3 AND (cliente_name LIKE @p4)",
		stmt.SQL)
	assert.Equal(t, []any{
		civil.Date{Year: 2024, Month: time.January, Day: 15},
		civil.Date{Year: 2024, Month: time.January, Day: 16},
		int64(42),
		"%acme%",
	}, stmt.Args)
}

func TestPredicates_EmptyHasNoWhere(t *testing.T) {
	var p Predicates
	assert.Zero(t, p.Len())

	where, args, err := p.Where()
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)

	stmt, err := Build(p.Apply(Builder.Select("*").From("dbo.v_inventario_actual")))
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM dbo.v_inventario_actual", stmt.SQL)
}

func TestPredicates_SkipEmptyValues(t *testing.T) {
	var p Predicates
	p.EqString("tipo_pago", "").
		Contains("", "nombre").
		Contains("x").
		DateRange("CFECHA", nil)
	assert.Zero(t, p.Len())
}

func TestContains_MultipleColumns(t *testing.T) {
	sql, args, err := Contains("ab", "codigo_producto", "nombre_producto").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(codigo_producto LIKE ? OR nombre_producto LIKE ?)", sql)
	assert.Equal(t, []any{"%ab%", "%ab%"}, args)
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"50%", "50[%]"},
		{"a_b", "a[_]b"},
		{"[x]", "[[]x]"},
		{"O'Brien", "O'Brien"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLike(tt.in))
		})
	}
}

func TestTop_Clamped(t *testing.T) {
	assert.Equal(t, "TOP(1)", Top(0))
	assert.Equal(t, "TOP(1)", Top(-5))
	assert.Equal(t, "TOP(250)", Top(250))
	assert.Equal(t, "TOP(1000)", Top(99999))
}

func TestSubquery_RenumberedByOuterBuilder(t *testing.T) {
	var p Predicates
	p.Eq("CIDCLIENTEPROVEEDOR", int64(7))

	subSQL, subArgs, err := Subquery(p.Apply(Builder.Select("SUM(total)").From("dbo.v_fact_compras")))
	require.NoError(t, err)
	assert.Equal(t, "SELECT SUM(total) FROM dbo.v_fact_compras WHERE CIDCLIENTEPROVEEDOR = ?", subSQL)

	outer := p.Apply(Builder.Select("proveedor").
		Column("("+subSQL+") AS total", subArgs...).
		From("dbo.v_fact_compras"))

	stmt, err := Build(outer)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT proveedor, (SELECT SUM(total) FROM dbo.v_fact_compras WHERE CIDCLIENTEPROVEEDOR = @p1) AS total FROM dbo.v_fact_compras WHERE CIDCLIENTEPROVEEDOR = @p2",
		stmt.SQL)
	assert.Equal(t, []any{int64(7), int64(7)}, stmt.Args)
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "FORMAT(CFECHA, 'yyyy-MM-dd')", PeriodLabel("CFECHA", filter.PeriodDay))
	assert.Equal(t, "FORMAT(CFECHA, 'yyyy-MM')", PeriodLabel("CFECHA", filter.PeriodMonth))
	assert.Contains(t, PeriodLabel("CFECHA", filter.PeriodWeek), "DATEPART(iso_week, CFECHA)")
	assert.NotContains(t, PeriodLabel("CFECHA", filter.PeriodWeek), "ww'")
}
