package filterspec

// Canonical operator keys. Client-facing names translate onto these via
// the mapping table; the clause builder only ever sees canonical keys.
const (
	OpEq          = "eq"
	OpNe          = "ne"
	OpGt          = "gt"
	OpGte         = "gte"
	OpLt          = "lt"
	OpLte         = "lte"
	OpBetween     = "between"
	OpIs          = "is"
	OpIsNot       = "is_not"
	OpContains    = "contains"
	OpNotContains = "not_contains"
	OpStartsWith  = "starts_with"
	OpEndsWith    = "ends_with"
	OpIsEmpty     = "is_empty"
	OpNotEmpty    = "not_empty"

	OpToday            = "today"
	OpYesterday        = "yesterday"
	OpPreviousDay      = "previous_day"
	OpPrevious7Days    = "previous_7_days"
	OpPrevious30Days   = "previous_30_days"
	OpPrevious1Month   = "previous_1_month"
	OpPrevious3Months  = "previous_3_months"
	OpPrevious12Months = "previous_12_months"
	OpBefore           = "before"
	OpAfter            = "after"
	OpOn               = "on"
	OpPrevious         = "previous"
	OpCurrent          = "current"
	OpNext             = "next"

	OpThisHour   = "this_hour"
	OpLastHour   = "last_hour"
	OpLast3Hours = "last_3_hours"
	OpMorning    = "morning"
	OpAfternoon  = "afternoon"
	OpEvening    = "evening"
	OpNight      = "night"
)

// operatorMapping maps client-facing operator names to canonical keys.
// Static domain data, not behavior. Legacy spellings from older clients
// (prev_7_days, previous_month) fold onto the canonical keys.
var operatorMapping = map[string]string{
	// Number operators
	"equal_to":              OpEq,
	"not_equal_to":          OpNe,
	"greater_than":          OpGt,
	"less_than":             OpLt,
	"between":               OpBetween,
	"greater_than_or_equal": OpGte,
	"less_than_or_equal":    OpLte,

	// Text operators (boolean and enum share the equality family)
	"is":               OpIs,
	"is_not":           OpIsNot,
	"contains":         OpContains,
	"does_not_contain": OpNotContains,
	"starts_with":      OpStartsWith,
	"ends_with":        OpEndsWith,
	"is_empty":         OpIsEmpty,
	"is_not_empty":     OpNotEmpty,

	// Date operators
	"today":              OpToday,
	"yesterday":          OpYesterday,
	"previous_day":       OpPreviousDay,
	"previous_7_days":    OpPrevious7Days,
	"prev_7_days":        OpPrevious7Days,
	"previous_30_days":   OpPrevious30Days,
	"prev_30_days":       OpPrevious30Days,
	"previous_1_month":   OpPrevious1Month,
	"previous_month":     OpPrevious1Month,
	"previous_3_months":  OpPrevious3Months,
	"previous_12_months": OpPrevious12Months,
	"before":             OpBefore,
	"after":              OpAfter,
	"on":                 OpOn,
	"previous":           OpPrevious,
	"current":            OpCurrent,
	"next":               OpNext,

	// Time operators
	"this_hour":    OpThisHour,
	"last_hour":    OpLastHour,
	"last_3_hours": OpLast3Hours,
	"morning":      OpMorning,
	"afternoon":    OpAfternoon,
	"evening":      OpEvening,
	"night":        OpNight,
}

// MapOperator translates a client-facing operator name to its canonical
// key. Unknown names pass through unchanged; they fail later as an
// unmatched branch, never as an error here.
func MapOperator(operator string) string {
	if mapped, ok := operatorMapping[operator]; ok {
		return mapped
	}
	return operator
}
