package filterspec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pinClock fixes the package clock for relative date assertions.
// Wednesday 2024-06-12, 14:30 local.
func pinClock(t *testing.T) time.Time {
	t.Helper()
	fixed := time.Date(2024, time.June, 12, 14, 30, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = time.Now })
	return fixed
}

func testColumns() ColumnSet {
	return NewColumnSet(
		ColumnDescriptor{Name: "demo_id", Type: Text},
		ColumnDescriptor{Name: "name", Type: Text, Searchable: true},
		ColumnDescriptor{Name: "error_message", Type: Text, Searchable: true},
		ColumnDescriptor{Name: "status", Type: Enum},
		ColumnDescriptor{Name: "is_active", Type: Boolean},
		ColumnDescriptor{Name: "created_at", Type: DateTime},
		ColumnDescriptor{Name: "retries", Type: Number},
	)
}

func TestMapOperator(t *testing.T) {
	assert.Equal(t, OpEq, MapOperator("equal_to"))
	assert.Equal(t, OpNotContains, MapOperator("does_not_contain"))
	assert.Equal(t, OpPrevious7Days, MapOperator("prev_7_days"))
	assert.Equal(t, OpPrevious30Days, MapOperator("prev_30_days"))
	assert.Equal(t, OpPrevious1Month, MapOperator("previous_month"))

	// Unknown names pass through untouched.
	assert.Equal(t, "frobnicate", MapOperator("frobnicate"))
}

func TestParseFilters(t *testing.T) {
	t.Run("object form", func(t *testing.T) {
		tree := ParseFilters(`{"Filters":[{"column":"name","operator":"is","value":"x"}],"logic":"OR"}`)
		require.Len(t, tree.Filters, 1)
		assert.Equal(t, "OR", tree.Logic)
	})

	t.Run("bare list is implicit AND", func(t *testing.T) {
		tree := ParseFilters(`[{"column":"name","operator":"is","value":"x"}]`)
		require.Len(t, tree.Filters, 1)
		assert.Equal(t, LogicAnd, tree.Logic)
	})

	t.Run("malformed JSON yields empty tree", func(t *testing.T) {
		tree := ParseFilters(`{"Filters": nope`)
		assert.Empty(t, tree.Filters)
		assert.Equal(t, LogicAnd, tree.Logic)
	})

	t.Run("empty string yields empty tree", func(t *testing.T) {
		tree := ParseFilters("")
		assert.Empty(t, tree.Filters)
	})
}

func TestParseDate(t *testing.T) {
	t.Run("rfc3339", func(t *testing.T) {
		got := ParseDate("2024-06-12T10:00:00Z")
		require.NotNil(t, got)
		assert.Equal(t, 2024, got.Year())
	})

	t.Run("fallback layouts", func(t *testing.T) {
		for _, raw := range []string{"2024-06-12", "2024-06-12 10:00:00", "2024/06/12", "12-06-2024"} {
			got := ParseDate(raw)
			require.NotNil(t, got, raw)
			assert.Equal(t, time.June, got.Month(), raw)
			assert.Equal(t, 12, got.Day(), raw)
		}
	})

	t.Run("epoch seconds", func(t *testing.T) {
		got := ParseDate(float64(1718186400))
		require.NotNil(t, got)
		assert.Equal(t, int64(1718186400), got.Unix())
	})

	t.Run("garbage is nil", func(t *testing.T) {
		assert.Nil(t, ParseDate("next tuesday"))
		assert.Nil(t, ParseDate([]string{"2024-06-12"}))
		assert.Nil(t, ParseDate(nil))
	})
}

func TestPredicateCombinators(t *testing.T) {
	a := NewPredicate("a = ?", 1)
	b := NewPredicate("b = ?", 2)

	t.Run("and", func(t *testing.T) {
		p := And(a, b)
		require.NotNil(t, p)
		assert.Equal(t, "(a = ?) AND (b = ?)", p.SQL)
		assert.Equal(t, []interface{}{1, 2}, p.Args)
	})

	t.Run("nils are skipped", func(t *testing.T) {
		p := Or(nil, a, nil)
		require.NotNil(t, p)
		assert.Equal(t, "a = ?", p.SQL)
	})

	t.Run("all nil collapses to nil", func(t *testing.T) {
		assert.Nil(t, And(nil, nil))
	})

	t.Run("not", func(t *testing.T) {
		p := Not(a)
		require.NotNil(t, p)
		assert.Equal(t, "NOT (a = ?)", p.SQL)
		assert.Nil(t, Not(nil))
	})
}

func TestNumberClause(t *testing.T) {
	col := ColumnDescriptor{Name: "retries", Type: Number}

	p := BuildPredicate(col, OpGte, 3, nil, false)
	require.NotNil(t, p)
	assert.Equal(t, "retries >= ?", p.SQL)
	assert.Equal(t, []interface{}{3}, p.Args)

	p = BuildPredicate(col, OpBetween, 1, 5, false)
	require.NotNil(t, p)
	assert.Equal(t, "retries BETWEEN ? AND ?", p.SQL)

	assert.Nil(t, BuildPredicate(col, OpBetween, 1, nil, false))
	assert.Nil(t, BuildPredicate(col, OpContains, "x", nil, false))

	p = BuildPredicate(col, OpIsEmpty, nil, nil, false)
	require.NotNil(t, p)
	assert.Equal(t, "retries IS NULL", p.SQL)
}

func TestTextClause(t *testing.T) {
	col := ColumnDescriptor{Name: "name", Type: Text}

	t.Run("case insensitive by default", func(t *testing.T) {
		p := BuildPredicate(col, OpContains, "Widget", nil, false)
		require.NotNil(t, p)
		assert.Equal(t, "LOWER(name) LIKE ?", p.SQL)
		assert.Equal(t, []interface{}{"%widget%"}, p.Args)
	})

	t.Run("case sensitive keeps operand", func(t *testing.T) {
		p := BuildPredicate(col, OpIs, "Widget", nil, true)
		require.NotNil(t, p)
		assert.Equal(t, "name = ?", p.SQL)
		assert.Equal(t, []interface{}{"Widget"}, p.Args)
	})

	t.Run("patterns", func(t *testing.T) {
		p := BuildPredicate(col, OpStartsWith, "wid", nil, false)
		require.NotNil(t, p)
		assert.Equal(t, []interface{}{"wid%"}, p.Args)

		p = BuildPredicate(col, OpEndsWith, "get", nil, false)
		require.NotNil(t, p)
		assert.Equal(t, []interface{}{"%get"}, p.Args)

		p = BuildPredicate(col, OpNotContains, "x", nil, false)
		require.NotNil(t, p)
		assert.Equal(t, "LOWER(name) NOT LIKE ?", p.SQL)
	})

	t.Run("number operator on text is dropped", func(t *testing.T) {
		assert.Nil(t, BuildPredicate(col, OpGt, "x", nil, false))
	})
}

func TestBooleanClause(t *testing.T) {
	col := ColumnDescriptor{Name: "is_active", Type: Boolean}

	p := BuildPredicate(col, OpIs, true, nil, false)
	require.NotNil(t, p)
	assert.Equal(t, "is_active = ?", p.SQL)
	assert.Equal(t, []interface{}{true}, p.Args)

	p = BuildPredicate(col, OpIsNot, "TRUE", nil, false)
	require.NotNil(t, p)
	assert.Equal(t, []interface{}{true}, p.Args)

	p = BuildPredicate(col, OpIs, "false", nil, false)
	require.NotNil(t, p)
	assert.Equal(t, []interface{}{false}, p.Args)

	// Unrecognized values drop the clause.
	assert.Nil(t, BuildPredicate(col, OpIs, "yes", nil, false))
	assert.Nil(t, BuildPredicate(col, OpIs, 1, nil, false))
}

func TestEnumClause(t *testing.T) {
	col := ColumnDescriptor{Name: "status", Type: Enum}

	p := BuildPredicate(col, OpIs, "created", nil, false)
	require.NotNil(t, p)
	assert.Equal(t, "status = ?", p.SQL)
	assert.Equal(t, []interface{}{"created"}, p.Args)

	// No pattern matching on enums.
	assert.Nil(t, BuildPredicate(col, OpContains, "crea", nil, false))
}

func TestDateClauseFixedWindows(t *testing.T) {
	pinClock(t)
	col := ColumnDescriptor{Name: "created_at", Type: DateTime}

	t.Run("today", func(t *testing.T) {
		p := BuildPredicate(col, OpToday, nil, nil, false)
		require.NotNil(t, p)
		assert.Equal(t, "DATE(created_at) = ?", p.SQL)
		assert.Equal(t, []interface{}{"2024-06-12"}, p.Args)
	})

	t.Run("yesterday and previous_day", func(t *testing.T) {
		p := BuildPredicate(col, OpYesterday, nil, nil, false)
		require.NotNil(t, p)
		assert.Equal(t, []interface{}{"2024-06-11"}, p.Args)

		p = BuildPredicate(col, OpPreviousDay, nil, nil, false)
		require.NotNil(t, p)
		assert.Equal(t, []interface{}{"2024-06-10"}, p.Args)
	})

	t.Run("open-ended lookbacks", func(t *testing.T) {
		p := BuildPredicate(col, OpPrevious7Days, nil, nil, false)
		require.NotNil(t, p)
		assert.Equal(t, "created_at >= ?", p.SQL)
		require.Len(t, p.Args, 1)
		assert.Equal(t, time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC), p.Args[0])
	})

	t.Run("previous calendar month", func(t *testing.T) {
		p := BuildPredicate(col, OpPrevious1Month, nil, nil, false)
		require.NotNil(t, p)
		assert.Equal(t, "DATE(created_at) BETWEEN ? AND ?", p.SQL)
		assert.Equal(t, []interface{}{"2024-05-01", "2024-05-31"}, p.Args)
	})

	t.Run("before after on between", func(t *testing.T) {
		p := BuildPredicate(col, OpBefore, "2024-01-01", nil, false)
		require.NotNil(t, p)
		assert.Equal(t, "created_at < ?", p.SQL)

		p = BuildPredicate(col, OpOn, "2024-01-15", nil, false)
		require.NotNil(t, p)
		assert.Equal(t, []interface{}{"2024-01-15"}, p.Args)

		p = BuildPredicate(col, OpBetween, "2024-01-01", "2024-02-01", false)
		require.NotNil(t, p)
		assert.Equal(t, "created_at BETWEEN ? AND ?", p.SQL)

		// Unparseable bound drops the whole clause.
		assert.Nil(t, BuildPredicate(col, OpBetween, "2024-01-01", "whenever", false))
		assert.Nil(t, BuildPredicate(col, OpAfter, "whenever", nil, false))
	})

	t.Run("time of day", func(t *testing.T) {
		p := BuildPredicate(col, OpMorning, nil, nil, false)
		require.NotNil(t, p)
		assert.Equal(t, "TIME(created_at) BETWEEN ? AND ?", p.SQL)
		assert.Equal(t, []interface{}{"06:00:00", "12:00:00"}, p.Args)

		p = BuildPredicate(col, OpNight, nil, nil, false)
		require.NotNil(t, p)
		assert.Equal(t, "(TIME(created_at) >= ?) OR (TIME(created_at) <= ?)", p.SQL)
	})

	t.Run("this hour is half open", func(t *testing.T) {
		p := BuildPredicate(col, OpThisHour, nil, nil, false)
		require.NotNil(t, p)
		assert.Equal(t, "created_at >= ? AND created_at < ?", p.SQL)
		assert.Equal(t, time.Date(2024, time.June, 12, 14, 0, 0, 0, time.UTC), p.Args[0])
		assert.Equal(t, time.Date(2024, time.June, 12, 15, 0, 0, 0, time.UTC), p.Args[1])
	})
}

func TestDateClauseRelativeWindows(t *testing.T) {
	pinClock(t) // Wednesday 2024-06-12
	col := ColumnDescriptor{Name: "created_at", Type: DateTime}

	descriptor := func(period string, count int, includeToday bool) map[string]interface{} {
		return map[string]interface{}{
			"periodType":   period,
			"count":        float64(count),
			"includeToday": includeToday,
		}
	}

	t.Run("previous week excluding today", func(t *testing.T) {
		p := BuildPredicate(col, OpPrevious, descriptor("week", 1, false), nil, false)
		require.NotNil(t, p)
		assert.Equal(t, []interface{}{"2024-06-05", "2024-06-11"}, p.Args)
	})

	t.Run("previous 2 days including today", func(t *testing.T) {
		p := BuildPredicate(col, OpPrevious, descriptor("day", 2, true), nil, false)
		require.NotNil(t, p)
		assert.Equal(t, []interface{}{"2024-06-11", "2024-06-12"}, p.Args)
	})

	t.Run("next month excluding today", func(t *testing.T) {
		p := BuildPredicate(col, OpNext, descriptor("month", 1, false), nil, false)
		require.NotNil(t, p)
		assert.Equal(t, []interface{}{"2024-06-13", "2024-07-12"}, p.Args)
	})

	t.Run("current week is calendar Monday to Sunday", func(t *testing.T) {
		p := BuildPredicate(col, OpCurrent, descriptor("week", 1, false), nil, false)
		require.NotNil(t, p)
		assert.Equal(t, []interface{}{"2024-06-10", "2024-06-16"}, p.Args)
	})

	t.Run("current month is calendar bounds", func(t *testing.T) {
		p := BuildPredicate(col, OpCurrent, descriptor("month", 1, false), nil, false)
		require.NotNil(t, p)
		assert.Equal(t, []interface{}{"2024-06-01", "2024-06-30"}, p.Args)
	})

	t.Run("current year has no branch", func(t *testing.T) {
		assert.Nil(t, BuildPredicate(col, OpCurrent, descriptor("year", 1, false), nil, false))
	})

	t.Run("legacy relativeDateRange wrapper", func(t *testing.T) {
		wrapped := map[string]interface{}{
			"relativeDateRange": descriptor("day", 1, true),
		}
		p := BuildPredicate(col, OpPrevious, wrapped, nil, false)
		require.NotNil(t, p)
		assert.Equal(t, []interface{}{"2024-06-12", "2024-06-12"}, p.Args)
	})

	t.Run("defaults apply on sparse descriptor", func(t *testing.T) {
		p := BuildPredicate(col, OpPrevious, map[string]interface{}{}, nil, false)
		require.NotNil(t, p)
		// One day back, today excluded.
		assert.Equal(t, []interface{}{"2024-06-11", "2024-06-11"}, p.Args)
	})

	t.Run("non-object descriptor drops the clause", func(t *testing.T) {
		assert.Nil(t, BuildPredicate(col, OpPrevious, "last week", nil, false))
	})
}

func TestCompose(t *testing.T) {
	cols := testColumns()

	t.Run("soft delete guard is always present", func(t *testing.T) {
		p := Compose(FilterTree{Logic: LogicAnd}, "", cols)
		require.NotNil(t, p)
		assert.Equal(t, "status <> ?", p.SQL)
		assert.Equal(t, []interface{}{"deleted"}, p.Args)
	})

	t.Run("no guard without a status column", func(t *testing.T) {
		bare := NewColumnSet(ColumnDescriptor{Name: "name", Type: Text, Searchable: true})
		assert.Nil(t, Compose(FilterTree{Logic: LogicAnd}, "", bare))
	})

	t.Run("rules AND together by default", func(t *testing.T) {
		tree := ParseFilters(`[
			{"column":"name","operator":"contains","value":"wid"},
			{"column":"is_active","operator":"is","value":true}
		]`)
		p := Compose(tree, "", cols)
		require.NotNil(t, p)
		assert.Contains(t, p.SQL, "LOWER(name) LIKE ?")
		assert.Contains(t, p.SQL, "is_active = ?")
		assert.Contains(t, p.SQL, ") AND (")
	})

	t.Run("tree OR logic", func(t *testing.T) {
		tree := ParseFilters(`{"Filters":[
			{"column":"name","operator":"contains","value":"a"},
			{"column":"name","operator":"contains","value":"b"}
		],"logic":"OR"}`)
		p := Compose(tree, "", cols)
		require.NotNil(t, p)
		assert.Contains(t, p.SQL, "(LOWER(name) LIKE ?) OR (LOWER(name) LIKE ?)")
	})

	t.Run("unknown column is skipped not rejected", func(t *testing.T) {
		tree := ParseFilters(`[
			{"column":"no_such_column","operator":"is","value":"x"},
			{"column":"name","operator":"is","value":"widget"}
		]`)
		p := Compose(tree, "", cols)
		require.NotNil(t, p)
		assert.NotContains(t, p.SQL, "no_such_column")
		assert.Contains(t, p.SQL, "LOWER(name) = ?")
	})

	t.Run("search sentinel fans out over columns", func(t *testing.T) {
		tree := ParseFilters(`[
			{"column":"search","columns":["name","error_message"],"operator":"contains","value":"oops"}
		]`)
		p := Compose(tree, "", cols)
		require.NotNil(t, p)
		assert.Contains(t, p.SQL, "(LOWER(name) LIKE ?) OR (LOWER(error_message) LIKE ?)")
	})

	t.Run("logical not negates the rule", func(t *testing.T) {
		tree := ParseFilters(`[
			{"column":"name","operator":"contains","value":"wid","logical":"not"}
		]`)
		p := Compose(tree, "", cols)
		require.NotNil(t, p)
		assert.Contains(t, p.SQL, "NOT (LOWER(name) LIKE ?)")
	})

	t.Run("free text search spans searchable columns", func(t *testing.T) {
		p := Compose(FilterTree{Logic: LogicAnd}, "Oops", cols)
		require.NotNil(t, p)
		assert.Contains(t, p.SQL, "(LOWER(name) LIKE ?) OR (LOWER(error_message) LIKE ?)")
		assert.Contains(t, p.Args, "%oops%")
	})
}
