// Package view composes read models out of a base table and reusable join
// primitives. A Query is never executed by the stages that build it; the
// caller runs it through One, All or Paginate.
package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vidtube/vidtube-api-go/internal/db"
)

// Anonymous is the viewer id of an unauthenticated request. No row ever
// carries the nil uuid, so viewer-dependent flags come out false.
var Anonymous = uuid.Nil

// Query is an unexecuted SELECT over one base table.
type Query struct {
	table   string
	alias   string
	columns []string
	joins   []string
	where   []string
	order   []string
	args    []any
}

// Stage adds projections, joins or filters to a Query.
type Stage func(q *Query)

// From starts a query over table, projecting the given base columns. Columns
// are qualified with alias automatically.
func From(table, alias string, columns ...string) *Query {
	q := &Query{table: table, alias: alias}
	for _, c := range columns {
		q.columns = append(q.columns, q.Col(c))
	}
	return q
}

// Col qualifies a base table column with the query alias.
func (q *Query) Col(name string) string {
	return q.alias + "." + name
}

// Arg binds a value and returns its placeholder.
func (q *Query) Arg(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

// Select appends raw projection expressions.
func (q *Query) Select(exprs ...string) *Query {
	q.columns = append(q.columns, exprs...)
	return q
}

// Join appends a raw join clause.
func (q *Query) Join(clause string) *Query {
	q.joins = append(q.joins, clause)
	return q
}

// Where appends a condition; conditions are AND-ed.
func (q *Query) Where(cond string) *Query {
	q.where = append(q.where, cond)
	return q
}

// OrderBy appends ordering expressions.
func (q *Query) OrderBy(exprs ...string) *Query {
	q.order = append(q.order, exprs...)
	return q
}

// With applies stages in order.
func (q *Query) With(stages ...Stage) *Query {
	for _, s := range stages {
		s(q)
	}
	return q
}

// SQL renders the statement and its arguments.
func (q *Query) SQL() (string, []any) {
	return q.render(""), q.args
}

func (q *Query) render(tail string) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(q.columns, ", "))
	fmt.Fprintf(&b, " FROM %s %s", q.table, q.alias)
	for _, j := range q.joins {
		b.WriteString(" ")
		b.WriteString(j)
	}
	if len(q.where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.where, " AND "))
	}
	if len(q.order) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(q.order, ", "))
	}
	b.WriteString(tail)
	return b.String()
}

// countSQL wraps the whole query so every bound argument stays referenced.
func (q *Query) countSQL() string {
	return "SELECT COUNT(*) FROM (" + q.render("") + ") AS counted"
}

// One runs q and scans exactly one row. No row maps to db.ErrNotFound.
func One[T any](ctx context.Context, dbq db.Querier, q *Query, scan pgx.RowToFunc[T], operation string) (T, error) {
	sql, args := q.SQL()
	rows, err := dbq.Query(ctx, sql, args...)
	if err != nil {
		var zero T
		return zero, db.WrapError(err, operation)
	}
	v, err := pgx.CollectExactlyOneRow(rows, scan)
	if err != nil {
		var zero T
		return zero, db.WrapError(err, operation)
	}
	return v, nil
}

// All runs q and scans every row.
func All[T any](ctx context.Context, dbq db.Querier, q *Query, scan pgx.RowToFunc[T], operation string) ([]T, error) {
	sql, args := q.SQL()
	rows, err := dbq.Query(ctx, sql, args...)
	if err != nil {
		return nil, db.WrapError(err, operation)
	}
	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, db.WrapError(err, operation)
	}
	return items, nil
}
