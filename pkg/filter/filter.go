// Package filter builds row predicates for the quarterly archive
// preprocessor. A filter spec maps column names to constraints; all
// constraints must hold for a row to survive. Three constraint styles are
// supported: equality, membership, and comparison operators (gt, ge, lt,
// le, ne, between).
//
// Comparisons are numeric when both sides parse as numbers and fall back to
// lexicographic string comparison otherwise, so the same operators work for
// trade dates (20240101) and balancing authority codes.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gridscope/ferceqr/pkg/errors"
)

// Op identifies a comparison operator.
type Op string

// Supported comparison operators.
const (
	OpEq      Op = "eq"
	OpNe      Op = "ne"
	OpGt      Op = "gt"
	OpGe      Op = "ge"
	OpLt      Op = "lt"
	OpLe      Op = "le"
	OpIn      Op = "in"
	OpBetween Op = "between"
)

// Constraint restricts the values a single column may take.
type Constraint struct {
	op        Op
	values    []string
	inclusive bool
}

// Eq matches rows where the column equals value.
func Eq(value string) Constraint {
	return Constraint{op: OpEq, values: []string{value}}
}

// In matches rows where the column equals any of values.
func In(values ...string) Constraint {
	return Constraint{op: OpIn, values: values}
}

// Ne matches rows where the column differs from value.
func Ne(value string) Constraint {
	return Constraint{op: OpNe, values: []string{value}}
}

// Gt matches rows where the column compares greater than value.
func Gt(value string) Constraint {
	return Constraint{op: OpGt, values: []string{value}}
}

// Ge matches rows where the column compares greater than or equal to value.
func Ge(value string) Constraint {
	return Constraint{op: OpGe, values: []string{value}}
}

// Lt matches rows where the column compares less than value.
func Lt(value string) Constraint {
	return Constraint{op: OpLt, values: []string{value}}
}

// Le matches rows where the column compares less than or equal to value.
func Le(value string) Constraint {
	return Constraint{op: OpLe, values: []string{value}}
}

// Between matches rows where the column lies between low and high.
func Between(low, high string, inclusive bool) Constraint {
	return Constraint{op: OpBetween, values: []string{low, high}, inclusive: inclusive}
}

// String renders the constraint in a human-readable form for logs and
// processing manifests.
func (c Constraint) String() string {
	switch c.op {
	case OpEq:
		return c.values[0]
	case OpIn:
		return "in [" + strings.Join(c.values, ", ") + "]"
	case OpBetween:
		if c.inclusive {
			return fmt.Sprintf("between %s..%s", c.values[0], c.values[1])
		}
		return fmt.Sprintf("between %s..%s exclusive", c.values[0], c.values[1])
	default:
		return fmt.Sprintf("%s %s", c.op, strings.Join(c.values, " "))
	}
}

// Spec maps column names to constraints. All entries are ANDed together.
type Spec map[string]Constraint

// Predicate reports whether a raw CSV row survives the filter.
type Predicate func(row []string) bool

// compiled binds a constraint to a column index.
type compiled struct {
	index      int
	constraint Constraint
}

// Compile resolves the spec's column names against the given header and
// returns a predicate over raw rows. Unknown columns are an error here, not
// per row. A nil or empty spec compiles to a predicate that keeps all rows.
func Compile(spec Spec, columns []string) (Predicate, error) {
	if len(spec) == 0 {
		return func([]string) bool { return true }, nil
	}

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	bound := make([]compiled, 0, len(spec))
	for column, constraint := range spec {
		i, ok := index[column]
		if !ok {
			return nil, errors.NewValidationError(column, nil, "unknown filter column")
		}
		if err := constraint.validate(); err != nil {
			return nil, err
		}
		bound = append(bound, compiled{index: i, constraint: constraint})
	}

	return func(row []string) bool {
		for _, b := range bound {
			if b.index >= len(row) || !b.constraint.matches(row[b.index]) {
				return false
			}
		}
		return true
	}, nil
}

func (c Constraint) validate() error {
	switch c.op {
	case OpEq, OpNe, OpGt, OpGe, OpLt, OpLe:
		if len(c.values) != 1 {
			return errors.NewValidationError(string(c.op), c.values, "operator takes exactly one value")
		}
	case OpIn:
		if len(c.values) == 0 {
			return errors.NewValidationError(string(c.op), c.values, "membership constraint needs at least one value")
		}
	case OpBetween:
		if len(c.values) != 2 {
			return errors.NewValidationError(string(c.op), c.values, "between takes a low and a high value")
		}
	default:
		return errors.NewValidationError("op", string(c.op), "unsupported operator")
	}
	return nil
}

func (c Constraint) matches(cell string) bool {
	switch c.op {
	case OpEq:
		return cell == c.values[0]
	case OpNe:
		return cell != c.values[0]
	case OpIn:
		for _, v := range c.values {
			if cell == v {
				return true
			}
		}
		return false
	case OpGt:
		return compare(cell, c.values[0]) > 0
	case OpGe:
		return compare(cell, c.values[0]) >= 0
	case OpLt:
		return compare(cell, c.values[0]) < 0
	case OpLe:
		return compare(cell, c.values[0]) <= 0
	case OpBetween:
		lo, hi := compare(cell, c.values[0]), compare(cell, c.values[1])
		if c.inclusive {
			return lo >= 0 && hi <= 0
		}
		return lo > 0 && hi < 0
	}
	return false
}

// compare orders two cell values, numerically when both sides parse as
// numbers and lexicographically otherwise.
func compare(a, b string) int {
	fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// ParseArg parses one command line filter argument into a column name and
// constraint. Accepted forms:
//
//	column=value                 equality
//	column=v1,v2,v3              membership
//	column=gt:value              operator (gt, ge, lt, le, ne)
//	column=between:low..high     inclusive range
//
// A colon only introduces an operator when the text before it is one of the
// operator names above. Anything else, such as "seller=Foo: Bar Inc", is
// taken as a literal value.
func ParseArg(arg string) (string, Constraint, error) {
	column, rhs, found := strings.Cut(arg, "=")
	if !found || column == "" {
		return "", Constraint{}, errors.NewValidationError("filter", arg, "expected column=constraint")
	}

	if op, operand, hasOp := strings.Cut(rhs, ":"); hasOp {
		switch Op(op) {
		case OpGt:
			return column, Gt(operand), nil
		case OpGe:
			return column, Ge(operand), nil
		case OpLt:
			return column, Lt(operand), nil
		case OpLe:
			return column, Le(operand), nil
		case OpNe:
			return column, Ne(operand), nil
		case OpBetween:
			low, high, ok := strings.Cut(operand, "..")
			if !ok {
				return "", Constraint{}, errors.NewValidationError("filter", arg, "between needs low..high")
			}
			return column, Between(low, high, true), nil
		}
		// Not an operator prefix; the colon is part of the value.
	}

	if strings.Contains(rhs, ",") {
		return column, In(strings.Split(rhs, ",")...), nil
	}
	return column, Eq(rhs), nil
}
