package supabase

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

type Op string

const (
	OpEq  Op = "eq"
	OpLte Op = "lte"
	OpGte Op = "gte"
)

type filter struct {
	field string
	op    Op
	value string
}

// Query is a typed builder for the store's filter/order/limit parameters.
// Callers compose conditions on fields; the wire encoding (field=op.value)
// stays inside this package.
type Query struct {
	filters []filter
	order   string
	limit   int
}

func NewQuery() *Query {
	return &Query{}
}

func (q *Query) Eq(field, value string) *Query {
	q.filters = append(q.filters, filter{field: field, op: OpEq, value: value})
	return q
}

func (q *Query) Lte(field, value string) *Query {
	q.filters = append(q.filters, filter{field: field, op: OpLte, value: value})
	return q
}

func (q *Query) LteTime(field string, t time.Time) *Query {
	return q.Lte(field, t.UTC().Format(time.RFC3339))
}

func (q *Query) OrderAsc(field string) *Query {
	q.order = field + ".asc"
	return q
}

func (q *Query) OrderDesc(field string) *Query {
	q.order = field + ".desc"
	return q
}

func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

func (q *Query) Encode() string {
	values := url.Values{}
	for _, f := range q.filters {
		values.Set(f.field, fmt.Sprintf("%s.%s", f.op, f.value))
	}
	if q.order != "" {
		values.Set("order", q.order)
	}
	if q.limit > 0 {
		values.Set("limit", strconv.Itoa(q.limit))
	}
	return values.Encode()
}
