package filterspec

import (
	"fmt"
	"strings"
	"time"
)

// BuildPredicate builds one boolean predicate for a column, dispatching
// on the column's semantic type first and the operator second. Any
// combination with no matching branch, and any value that fails to
// coerce, yields nil: the clause is dropped, the query goes on.
func BuildPredicate(col ColumnDescriptor, operator string, value, value2 interface{}, caseSensitive bool) *Predicate {
	switch col.Type {
	case Number:
		return numberClause(col.Name, operator, value, value2)
	case Text:
		return textClause(col.Name, operator, value, caseSensitive)
	case Boolean:
		return booleanClause(col.Name, operator, value)
	case Enum:
		return enumClause(col.Name, operator, value)
	case DateTime:
		return dateClause(col.Name, operator, value, value2)
	}
	return nil
}

func numberClause(name, operator string, value, value2 interface{}) *Predicate {
	switch operator {
	case OpEq:
		return NewPredicate(name+" = ?", value)
	case OpNe:
		return NewPredicate(name+" <> ?", value)
	case OpGt:
		return NewPredicate(name+" > ?", value)
	case OpGte:
		return NewPredicate(name+" >= ?", value)
	case OpLt:
		return NewPredicate(name+" < ?", value)
	case OpLte:
		return NewPredicate(name+" <= ?", value)
	case OpBetween:
		if value == nil || value2 == nil {
			return nil
		}
		// Inclusive on both ends.
		return NewPredicate(name+" BETWEEN ? AND ?", value, value2)
	case OpIsEmpty:
		return NewPredicate(name + " IS NULL")
	case OpNotEmpty:
		return NewPredicate(name + " IS NOT NULL")
	}
	return nil
}

func textClause(name, operator string, value interface{}, caseSensitive bool) *Predicate {
	switch operator {
	case OpIsEmpty:
		return NewPredicate(name + " IS NULL")
	case OpNotEmpty:
		return NewPredicate(name + " IS NOT NULL")
	}

	operand := fmt.Sprintf("%v", value)
	expr := "LOWER(" + name + ")"
	if caseSensitive {
		expr = name
	} else {
		operand = strings.ToLower(operand)
	}

	switch operator {
	case OpIs:
		return NewPredicate(expr+" = ?", operand)
	case OpIsNot:
		return NewPredicate(expr+" <> ?", operand)
	case OpContains:
		return NewPredicate(expr+" LIKE ?", "%"+operand+"%")
	case OpNotContains:
		return NewPredicate(expr+" NOT LIKE ?", "%"+operand+"%")
	case OpStartsWith:
		return NewPredicate(expr+" LIKE ?", operand+"%")
	case OpEndsWith:
		return NewPredicate(expr+" LIKE ?", "%"+operand)
	}
	return nil
}

func booleanClause(name, operator string, value interface{}) *Predicate {
	switch operator {
	case OpIsEmpty:
		return NewPredicate(name + " IS NULL")
	case OpNotEmpty:
		return NewPredicate(name + " IS NOT NULL")
	}

	parsed := parseBoolValue(value)
	if parsed == nil {
		return nil
	}
	switch operator {
	case OpIs:
		return NewPredicate(name+" = ?", *parsed)
	case OpIsNot:
		return NewPredicate(name+" <> ?", *parsed)
	}
	return nil
}

// parseBoolValue accepts native booleans and the strings "true"/"false"
// in any casing; everything else is unrecognized.
func parseBoolValue(value interface{}) *bool {
	switch v := value.(type) {
	case bool:
		return &v
	case string:
		switch strings.ToLower(v) {
		case "true":
			t := true
			return &t
		case "false":
			f := false
			return &f
		}
	}
	return nil
}

// enumClause treats enums as opaque text equality: no pattern matching,
// no case folding.
func enumClause(name, operator string, value interface{}) *Predicate {
	switch operator {
	case OpIs:
		return NewPredicate(name+" = ?", fmt.Sprintf("%v", value))
	case OpIsNot:
		return NewPredicate(name+" <> ?", fmt.Sprintf("%v", value))
	case OpIsEmpty:
		return NewPredicate(name + " IS NULL")
	case OpNotEmpty:
		return NewPredicate(name + " IS NOT NULL")
	}
	return nil
}

func dateClause(name, operator string, value, value2 interface{}) *Predicate {
	now := timeNow()
	today := startOfDay(now)

	switch operator {
	case OpToday:
		return dateEquals(name, today)
	case OpYesterday:
		return dateEquals(name, today.AddDate(0, 0, -1))
	case OpPreviousDay:
		return dateEquals(name, today.AddDate(0, 0, -2))
	case OpPrevious7Days:
		return NewPredicate(name+" >= ?", today.AddDate(0, 0, -7))
	case OpPrevious30Days:
		return NewPredicate(name+" >= ?", today.AddDate(0, 0, -30))
	case OpPrevious1Month:
		first, last := previousMonthBounds(today)
		return dateBetween(name, first, last)
	case OpPrevious3Months:
		return NewPredicate(name+" >= ?", today.AddDate(0, 0, -90))
	case OpPrevious12Months:
		return NewPredicate(name+" >= ?", today.AddDate(0, 0, -365))
	case OpBetween:
		from := ParseDate(value)
		to := ParseDate(value2)
		if from == nil || to == nil {
			return nil
		}
		return NewPredicate(name+" BETWEEN ? AND ?", *from, *to)
	case OpBefore:
		if t := ParseDate(value); t != nil {
			return NewPredicate(name+" < ?", *t)
		}
		return nil
	case OpAfter:
		if t := ParseDate(value); t != nil {
			return NewPredicate(name+" > ?", *t)
		}
		return nil
	case OpOn:
		if t := ParseDate(value); t != nil {
			return dateEquals(name, *t)
		}
		return nil

	case OpThisHour:
		hour := startOfHour(now)
		return NewPredicate(name+" >= ? AND "+name+" < ?", hour, hour.Add(time.Hour))
	case OpLastHour:
		return NewPredicate(name+" BETWEEN ? AND ?", now.Add(-time.Hour), now)
	case OpLast3Hours:
		return NewPredicate(name+" BETWEEN ? AND ?", now.Add(-3*time.Hour), now)
	case OpMorning:
		return timeBetween(name, "06:00:00", "12:00:00")
	case OpAfternoon:
		return timeBetween(name, "12:00:00", "17:00:00")
	case OpEvening:
		return timeBetween(name, "17:00:00", "22:00:00")
	case OpNight:
		// Wraps past midnight, so it cannot be a single range.
		return Or(
			NewPredicate("TIME("+name+") >= ?", "22:00:00"),
			NewPredicate("TIME("+name+") <= ?", "06:00:00"),
		)

	case OpPrevious, OpCurrent, OpNext:
		rng := parseRelativeRange(value)
		if rng == nil {
			return nil
		}
		return relativeClause(name, operator, rng, today)
	}
	return nil
}

// relativeClause resolves the previous/current/next window family.
// previous and next use fixed-day approximations of the period types;
// current uses true calendar boundaries for week and month.
func relativeClause(name, operator string, rng *RelativeRange, today time.Time) *Predicate {
	switch operator {
	case OpCurrent:
		switch rng.PeriodType {
		case "day":
			return dateEquals(name, today)
		case "week":
			monday, sunday := weekBounds(today)
			return dateBetween(name, monday, sunday)
		case "month":
			first, last := monthBounds(today)
			return dateBetween(name, first, last)
		}
		return nil

	case OpPrevious:
		days := periodDays(rng.PeriodType)
		if days == 0 {
			return nil
		}
		if rng.IncludeToday {
			return dateBetween(name, today.AddDate(0, 0, -(rng.Count-1)*days), today)
		}
		return dateBetween(name, today.AddDate(0, 0, -rng.Count*days), today.AddDate(0, 0, -1))

	case OpNext:
		days := periodDays(rng.PeriodType)
		if days == 0 {
			return nil
		}
		if rng.IncludeToday {
			return dateBetween(name, today, today.AddDate(0, 0, (rng.Count-1)*days))
		}
		return dateBetween(name, today.AddDate(0, 0, 1), today.AddDate(0, 0, rng.Count*days))
	}
	return nil
}

func dateEquals(name string, day time.Time) *Predicate {
	return NewPredicate("DATE("+name+") = ?", day.Format(dateLayout))
}

func dateBetween(name string, from, to time.Time) *Predicate {
	return NewPredicate("DATE("+name+") BETWEEN ? AND ?", from.Format(dateLayout), to.Format(dateLayout))
}

func timeBetween(name, from, to string) *Predicate {
	return NewPredicate("TIME("+name+") BETWEEN ? AND ?", from, to)
}
