package filterspec

import "strings"

// Predicate is a boolean SQL condition with its bound arguments. A nil
// *Predicate means "no condition"; the combinators skip nils so callers
// can fold optional parts without special-casing.
type Predicate struct {
	SQL  string
	Args []interface{}
}

// NewPredicate builds a leaf predicate from a SQL fragment and its
// bound arguments.
func NewPredicate(sql string, args ...interface{}) *Predicate {
	return &Predicate{SQL: sql, Args: args}
}

// And conjoins the non-nil predicates, parenthesizing each operand.
func And(parts ...*Predicate) *Predicate {
	return combine("AND", parts)
}

// Or disjoins the non-nil predicates, parenthesizing each operand.
func Or(parts ...*Predicate) *Predicate {
	return combine("OR", parts)
}

// Not negates a predicate; negating nil stays nil.
func Not(p *Predicate) *Predicate {
	if p == nil {
		return nil
	}
	return &Predicate{SQL: "NOT (" + p.SQL + ")", Args: p.Args}
}

func combine(op string, parts []*Predicate) *Predicate {
	var kept []*Predicate
	for _, p := range parts {
		if p != nil {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}

	fragments := make([]string, 0, len(kept))
	var args []interface{}
	for _, p := range kept {
		fragments = append(fragments, "("+p.SQL+")")
		args = append(args, p.Args...)
	}
	return &Predicate{SQL: strings.Join(fragments, " "+op+" "), Args: args}
}
