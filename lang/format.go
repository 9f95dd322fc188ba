package lang

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatList renders a list as "(list e1 e2 ...)". An empty list
// renders as "(list )".
func FormatList(list []any) string {
	parts := make([]string, len(list))
	for i, elem := range list {
		parts[i] = formatScalar(elem)
	}

	return "(list " + strings.Join(parts, " ") + ")"
}

// FormatTable renders a table as "table([k1 = v1, k2 = v2])" with
// members in document order. Member values render shallowly: nested
// lists and tables use their default textual form rather than
// recursing through FormatList/FormatTable.
func FormatTable(table []Pair) string {
	parts := make([]string, len(table))
	for i, member := range table {
		parts[i] = member.Key + " = " + formatScalar(member.Value)
	}

	return "table([" + strings.Join(parts, ", ") + "])"
}

// formatScalar renders one list element or table member value.
func formatScalar(v any) string {
	switch t := v.(type) {
	case int64:
		return IntNumber(t).String()
	case float64:
		return FloatNumber(t).String()
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// FormatResult renders an evaluation result for display. Numeric results
// follow the same rendering rules as converted output lines, so values
// printed interactively match what convert would emit.
func FormatResult(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int:
		return IntNumber(int64(t)).String()
	case int64:
		return IntNumber(t).String()
	case float64:
		return FloatNumber(t).String()
	case string:
		return t
	case []any:
		return FormatList(t)
	case []Pair:
		return FormatTable(t)
	default:
		return fmt.Sprint(t)
	}
}
