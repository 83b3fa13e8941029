// Package filter implements the SQL-flavored boolean query language
// used to select tasks: a lexer, a recursive-descent parser producing
// an immutable expression tree, and a pure in-memory matcher.
//
//	status = open AND tags CONTAINS 'work'
//	name LIKE '%report%' OR project IS NULL
//	NOT (area LIKE '%Work%') OR status = completed
//
// Expressions are parsed once and may be evaluated against any number
// of records, concurrently if desired; no node is mutated after
// construction.
package filter

// Expr represents a filter expression
type Expr interface {
	isExpr()
}

// And represents a boolean AND of two expressions
type And struct {
	Left  Expr
	Right Expr
}

func (And) isExpr() {}

// Or represents a boolean OR of two expressions
type Or struct {
	Left  Expr
	Right Expr
}

func (Or) isExpr() {}

// Not represents a boolean NOT of an expression
type Not struct {
	Inner Expr
}

func (Not) isExpr() {}

// Compare is a single field predicate. Value holds the literal for
// scalar operators, Values the list for OpIn; both stay zero for the
// null-check operators.
type Compare struct {
	Field  Field
	Op     Op
	Value  string
	Values []string
}

func (Compare) isExpr() {}

// Op is a comparison operator
type Op int

const (
	OpEq Op = iota
	OpNeq
	OpLike
	OpContains
	OpIn
	OpIsNull
	OpIsNotNull
)

func (op Op) String() string {
	switch op {
	case OpEq:
		return "="
	case OpNeq:
		return "!="
	case OpLike:
		return "LIKE"
	case OpContains:
		return "CONTAINS"
	case OpIn:
		return "IN"
	case OpIsNull:
		return "IS NULL"
	case OpIsNotNull:
		return "IS NOT NULL"
	default:
		return "?"
	}
}
