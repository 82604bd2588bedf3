// Package query builds PubMed boolean search expressions from composable
// values instead of raw string interpolation.
package query

import "strings"

// Expr is a boolean search expression that renders to PubMed query syntax.
type Expr interface {
	String() string
}

// terms is an OR-group of search terms.
type terms struct {
	values []string
}

// and is a conjunction of sub-expressions.
type and struct {
	exprs []Expr
}

// or is a disjunction of sub-expressions.
type or struct {
	exprs []Expr
}

// not negates a sub-expression.
type not struct {
	expr Expr
}

// Terms builds an OR-group over the given terms. A term already wrapped
// in double quotes is rendered verbatim; otherwise terms containing
// spaces are quoted so PubMed treats them as phrases. Quoting changes
// what PubMed retrieves (it disables automatic term mapping), so the
// keyword groups carry explicit quotes where phrase search is wanted.
func Terms(values ...string) Expr {
	return terms{values: values}
}

// And combines expressions with AND.
func And(exprs ...Expr) Expr {
	return and{exprs: exprs}
}

// Or combines expressions with OR.
func Or(exprs ...Expr) Expr {
	return or{exprs: exprs}
}

// Not negates an expression. Inside And it renders as "AND NOT (...)".
func Not(expr Expr) Expr {
	return not{expr: expr}
}

func quoteTerm(t string) string {
	if strings.HasPrefix(t, `"`) && strings.HasSuffix(t, `"`) && len(t) >= 2 {
		return t
	}
	if strings.Contains(t, " ") {
		return `"` + t + `"`
	}
	return t
}

func (t terms) String() string {
	quoted := make([]string, len(t.values))
	for i, v := range t.values {
		quoted[i] = quoteTerm(v)
	}
	return "(" + strings.Join(quoted, " OR ") + ")"
}

func (a and) String() string {
	parts := make([]string, 0, len(a.exprs))
	for _, e := range a.exprs {
		// Negations attach to the conjunction as "AND NOT (...)" rather
		// than producing a bare "(NOT ...)" group.
		if n, ok := e.(not); ok {
			parts = append(parts, "NOT "+n.expr.String())
			continue
		}
		parts = append(parts, e.String())
	}
	return strings.Join(parts, " AND ")
}

func (o or) String() string {
	parts := make([]string, len(o.exprs))
	for i, e := range o.exprs {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func (n not) String() string {
	return "NOT " + n.expr.String()
}
