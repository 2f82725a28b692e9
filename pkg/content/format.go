package content

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// formatValue renders a parameter or observed value as text.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case []any:
		return strings.Join(formatList(val), ", ")
	case []string:
		return strings.Join(val, ", ")
	case map[string]any:
		return canonicalJSON(val)
	}
	return fmt.Sprintf("%v", v)
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatList renders every element of a list.
func formatList(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, formatValue(v))
	}
	return out
}

// toList converts a kwarg into a slice of values.
func toList(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

// toFloat64 converts a numeric value to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// toBool reads a boolean kwarg, false when absent.
func toBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// canonicalJSON serializes v with sorted map keys. Values JSON
// cannot represent fall back to Go formatting.
func canonicalJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// mostlyClause renders the "mostly" kwarg, if present.
func mostlyClause(c *Context) string {
	v, ok := c.Kwarg("mostly")
	if !ok {
		return ""
	}
	f, ok := toFloat64(v)
	if !ok || f >= 1 {
		return ""
	}
	return fmt.Sprintf(", at least %s%% of the time", formatFloat(f*100))
}

// bounds holds the min/max kwargs of a range expectation.
type bounds struct {
	min, max             any
	hasMin, hasMax       bool
	strictMin, strictMax bool
}

func readBounds(c *Context) bounds {
	var b bounds
	if v, ok := c.Kwarg("min_value"); ok && v != nil {
		b.min, b.hasMin = v, true
	}
	if v, ok := c.Kwarg("max_value"); ok && v != nil {
		b.max, b.hasMax = v, true
	}
	b.strictMin = toBool(c.Expectation.Kwargs["strict_min"])
	b.strictMax = toBool(c.Expectation.Kwargs["strict_max"])
	return b
}

// phrase renders the range as an English phrase.
func (b bounds) phrase() string {
	lower := "greater than or equal to"
	if b.strictMin {
		lower = "strictly greater than"
	}
	upper := "less than or equal to"
	if b.strictMax {
		upper = "strictly less than"
	}

	switch {
	case b.hasMin && b.hasMax:
		if !b.strictMin && !b.strictMax {
			return fmt.Sprintf("between %s and %s",
				formatValue(b.min), formatValue(b.max))
		}
		return fmt.Sprintf("%s %s and %s %s",
			lower, formatValue(b.min), upper, formatValue(b.max))
	case b.hasMin:
		return fmt.Sprintf("%s %s", lower, formatValue(b.min))
	case b.hasMax:
		return fmt.Sprintf("%s %s", upper, formatValue(b.max))
	}
	return ""
}

// rows renders the range as table rows.
func (b bounds) rows() [][]string {
	label := func(name string, strict bool) string {
		if strict {
			return name + " (exclusive)"
		}
		return name
	}
	value := func(v any, ok bool) string {
		if !ok {
			return "unbounded"
		}
		return formatValue(v)
	}
	return [][]string{
		{label("Minimum", b.strictMin), value(b.min, b.hasMin)},
		{label("Maximum", b.strictMax), value(b.max, b.hasMax)},
	}
}

// subject prefixes a statement with the column name.
func subject(c *Context) string {
	if c.Column == "" {
		return "Values"
	}
	return c.Column
}
