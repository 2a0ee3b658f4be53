package filterspec

import "strings"

// Compose turns a parsed filter tree plus a free-text search term into
// a single predicate, or nil when nothing survives. Rules naming
// unknown columns are skipped, never rejected. When the column set
// carries a status column, soft-deleted rows are excluded
// unconditionally.
func Compose(tree FilterTree, search string, cols ColumnSet) *Predicate {
	parts := []*Predicate{
		composeRules(tree, cols),
		searchPredicate(search, cols),
	}
	if cols.Has("status") {
		parts = append(parts, NewPredicate("status <> ?", "deleted"))
	}
	return And(parts...)
}

func composeRules(tree FilterTree, cols ColumnSet) *Predicate {
	built := make([]*Predicate, 0, len(tree.Filters))
	for _, rule := range tree.Filters {
		if p := composeRule(rule, cols); p != nil {
			built = append(built, p)
		}
	}
	switch strings.ToUpper(tree.Logic) {
	case LogicOr, "ANY":
		return Or(built...)
	}
	return And(built...)
}

// composeRule resolves one rule against one or more columns. The
// sentinel column name "search" fans the rule out over rule.Columns,
// joined with OR.
func composeRule(rule FilterRule, cols ColumnSet) *Predicate {
	operator := MapOperator(rule.Operator)

	targets := []string{rule.Column}
	if rule.Column == "search" && len(rule.Columns) > 0 {
		targets = rule.Columns
	}

	parts := make([]*Predicate, 0, len(targets))
	for _, name := range targets {
		col, ok := cols.Lookup(name)
		if !ok {
			continue
		}
		if p := BuildPredicate(col, operator, rule.Value, rule.Value2, rule.CaseSensitive); p != nil {
			parts = append(parts, p)
		}
	}

	combined := Or(parts...)
	if combined == nil {
		return nil
	}
	if strings.EqualFold(rule.Logical, "not") {
		return Not(combined)
	}
	return combined
}

// searchPredicate matches the term case-insensitively against every
// searchable text column.
func searchPredicate(search string, cols ColumnSet) *Predicate {
	if search == "" {
		return nil
	}
	operand := "%" + strings.ToLower(search) + "%"
	parts := make([]*Predicate, 0, 4)
	for _, col := range cols.Searchable() {
		parts = append(parts, NewPredicate("LOWER("+col.Name+") LIKE ?", operand))
	}
	return Or(parts...)
}
