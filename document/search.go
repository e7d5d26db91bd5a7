package document

import (
	"fmt"

	"github.com/jmespath/go-jmespath"

	"github.com/cbor-go/cbor-go/encoding/cbor"
)

// Query is a compiled JMESPath expression evaluated over data items.
//
// The item is converted with ToGo using NumberFloat64 and UndefinedAsNil,
// since JMESPath compares and aggregates numbers as float64. Maps with non
// text keys can be projected but not indexed by field. The content of a tag
// is reachable through its Go form, e.g. `date.Content`.
//
// Numbers in the result that hold an integer of magnitude at most 2^53 are
// returned as Uint or NegInt, others as Float.
type Query struct {
	expr string
	jp   *jmespath.JMESPath
}

// NewQuery compiles expr.
func NewQuery(expr string) (*Query, error) {
	jp, err := jmespath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q, %w", expr, err)
	}
	return &Query{expr: expr, jp: jp}, nil
}

// String returns the source expression.
func (q *Query) String() string {
	return q.expr
}

// Search evaluates the query against v. A query that selects nothing
// returns Null.
func (q *Query) Search(v cbor.Value) (cbor.Value, error) {
	data, err := ToGo(v, func(o *Options) {
		o.NumberMode = NumberFloat64
		o.UndefinedAsNil = true
	})
	if err != nil {
		return nil, fmt.Errorf("unable to search value, %w", err)
	}

	result, err := q.jp.Search(data)
	if err != nil {
		return nil, fmt.Errorf("query %q failed, %w", q.expr, err)
	}
	return fromGo(result, true)
}

// Search compiles expr and evaluates it against v.
func Search(expr string, v cbor.Value) (cbor.Value, error) {
	q, err := NewQuery(expr)
	if err != nil {
		return nil, err
	}
	return q.Search(v)
}
