// Package filterspec translates client-supplied filter trees into SQL
// predicates. A filter tree is a set of rules, each naming a column, an
// operator and operands; rules combine through per-rule logical
// connectors and a tree-level AND/OR. Column names are resolved against
// a static descriptor table, so only known columns ever reach the SQL
// text, and all operands are bound arguments.
//
// Malformed input degrades instead of failing: unknown columns,
// unsupported operator/type combinations and unparseable values drop
// the single affected clause and leave the rest of the query intact.
package filterspec

import "encoding/json"

// FilterRule is one client-supplied filter clause.
type FilterRule struct {
	Column        string      `json:"column"`
	Operator      string      `json:"operator"`
	Value         interface{} `json:"value"`
	Value2        interface{} `json:"value2"`
	Logical       string      `json:"logical"`
	CaseSensitive bool        `json:"caseSensitive"`

	// Columns widens the rule to several fields when Column is the
	// sentinel "search"; their clauses OR together.
	Columns []string `json:"columns"`
}

// Tree-level combinators.
const (
	LogicAnd = "AND"
	LogicOr  = "OR"
)

// FilterTree is the full filter input: rules plus the tree-level
// combinator applied across them.
type FilterTree struct {
	Filters []FilterRule `json:"Filters"`
	Logic   string       `json:"logic"`
}

// UnmarshalJSON accepts both the legacy bare rule list (implicitly
// ANDed) and the {Filters, logic} object form.
func (t *FilterTree) UnmarshalJSON(data []byte) error {
	var rules []FilterRule
	if err := json.Unmarshal(data, &rules); err == nil {
		t.Filters = rules
		t.Logic = LogicAnd
		return nil
	}

	type treeAlias FilterTree
	var alias treeAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	t.Filters = alias.Filters
	t.Logic = alias.Logic
	if t.Logic == "" {
		t.Logic = LogicAnd
	}
	return nil
}

// ParseFilters decodes the filters request parameter. Malformed JSON is
// treated the same as an absent parameter: an empty tree, never an
// error surfaced to the caller.
func ParseFilters(raw string) FilterTree {
	tree := FilterTree{Logic: LogicAnd}
	if raw == "" {
		return tree
	}
	if err := json.Unmarshal([]byte(raw), &tree); err != nil {
		return FilterTree{Logic: LogicAnd}
	}
	if tree.Logic == "" {
		tree.Logic = LogicAnd
	}
	return tree
}
