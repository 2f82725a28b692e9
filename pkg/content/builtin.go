package content

import (
	"fmt"
	"strings"

	"digital.vasic.docrender/pkg/document"
)

// registerDefaults registers the built-in renderers.
func (r *Registry) registerDefaults() {
	defaults := map[string]Renderer{
		"expect_column_to_exist": {
			Statement: func(c *Context) string {
				return fmt.Sprintf("%s is a required field.", subject(c))
			},
			Blocks: columnExistsBlocks,
		},
		"expect_column_values_to_not_be_null": {
			Statement: columnSentence("values must never be null"),
		},
		"expect_column_values_to_be_null": {
			Statement: columnSentence("values must be null"),
		},
		"expect_column_values_to_be_unique": {
			Statement: columnSentence("values must be unique"),
		},
		"expect_column_values_to_match_regex": {
			Statement: regexStatement("must match"),
		},
		"expect_column_values_to_not_match_regex": {
			Statement: regexStatement("must not match"),
		},
		"expect_column_values_to_be_of_type": {
			Statement: func(c *Context) string {
				t, _ := c.Kwarg("type_")
				return fmt.Sprintf("%s values must be of type %s%s.",
					subject(c), formatValue(t), mostlyClause(c))
			},
		},
		"expect_column_values_to_be_in_type_list": {
			Statement: func(c *Context) string {
				types, _ := c.Kwarg("type_list")
				return fmt.Sprintf(
					"%s values must belong to this list of types: %s%s.",
					subject(c), formatValue(types), mostlyClause(c))
			},
		},
		"expect_column_value_lengths_to_be_between": {
			Statement: func(c *Context) string {
				b := readBounds(c)
				if p := b.phrase(); p != "" {
					return fmt.Sprintf("%s values must be %s characters long%s.",
						subject(c), p, mostlyClause(c))
				}
				return fmt.Sprintf("%s values may have any length.", subject(c))
			},
		},
		"expect_column_values_to_be_between": {
			Statement: func(c *Context) string {
				b := readBounds(c)
				if p := b.phrase(); p != "" {
					return fmt.Sprintf("%s values must be %s%s.",
						subject(c), p, mostlyClause(c))
				}
				return fmt.Sprintf("%s values may have any numerical value.", subject(c))
			},
		},
		"expect_column_values_to_be_in_set": {
			Statement: valueSetStatement("must belong to this set"),
			Blocks:    valueSetBlocks("must belong to this set"),
		},
		"expect_column_values_to_not_be_in_set": {
			Statement: valueSetStatement("must not belong to this set"),
			Blocks:    valueSetBlocks("must not belong to this set"),
		},
		"expect_column_distinct_values_to_be_in_set": {
			Statement: func(c *Context) string {
				set, _ := c.Kwarg("value_set")
				return fmt.Sprintf("%s distinct values must belong to this set: %s.",
					subject(c), formatValue(set))
			},
			Blocks: func(c *Context) []document.Block {
				set, _ := toList(c.Expectation.Kwargs["value_set"])
				return []document.Block{document.NewValueList(
					fmt.Sprintf("%s distinct values must belong to this set", subject(c)),
					formatList(set),
				)}
			},
		},
		"expect_column_mean_to_be_between":   aggregateRange("mean"),
		"expect_column_median_to_be_between": aggregateRange("median"),
		"expect_column_stdev_to_be_between":  aggregateRange("standard deviation"),
		"expect_column_min_to_be_between":    aggregateRange("minimum value"),
		"expect_column_max_to_be_between":    aggregateRange("maximum value"),
		"expect_column_unique_value_count_to_be_between": {
			Statement: func(c *Context) string {
				return fmt.Sprintf("%s must have %s unique values.",
					subject(c), orAny(readBounds(c).phrase()))
			},
			Blocks: uniqueCountBlocks,
		},
		"expect_column_proportion_of_unique_values_to_be_between": {
			Statement: func(c *Context) string {
				return fmt.Sprintf("%s fraction of unique values must be %s.",
					subject(c), orAny(readBounds(c).phrase()))
			},
			Blocks: uniqueProportionBlocks,
		},
		"expect_column_kl_divergence_to_be_less_than": {
			Statement: func(c *Context) string {
				threshold, _ := c.Kwarg("threshold")
				return fmt.Sprintf(
					"%s Kullback-Leibler (KL) divergence with respect to the given distribution must be lower than %s.",
					subject(c), formatValue(threshold))
			},
			Blocks: partitionGraphBlocks,
		},
		"expect_table_row_count_to_be_between": {
			Statement: func(c *Context) string {
				return fmt.Sprintf("Must have %s rows.", orAny(readBounds(c).phrase()))
			},
			Blocks: rowCountRangeBlocks,
		},
		"expect_table_row_count_to_equal": {
			Statement: func(c *Context) string {
				v, _ := c.Kwarg("value")
				return fmt.Sprintf("Must have exactly %s rows.", formatValue(v))
			},
			Blocks: rowCountEqualBlocks,
		},
		"expect_table_columns_to_match_ordered_list": {
			Statement: func(c *Context) string {
				cols, _ := c.Kwarg("column_list")
				return fmt.Sprintf("Must have these columns in this order: %s.",
					formatValue(cols))
			},
			Blocks: func(c *Context) []document.Block {
				cols, _ := toList(c.Expectation.Kwargs["column_list"])
				return []document.Block{document.NewBulletList(
					"Must have these columns in this order", formatList(cols),
				)}
			},
		},
		"expect_column_pair_values_to_be_equal": {
			Statement: func(c *Context) string {
				a, _ := c.Kwarg("column_A")
				b, _ := c.Kwarg("column_B")
				return fmt.Sprintf("Values in %s and %s must always be equal%s.",
					formatValue(a), formatValue(b), mostlyClause(c))
			},
		},
		"expect_multicolumn_values_to_be_unique": {
			Statement: func(c *Context) string {
				cols, _ := c.Kwarg("column_list")
				return fmt.Sprintf(
					"Values must always be unique across columns%s: %s.",
					mostlyClause(c), formatValue(cols))
			},
		},
	}

	for kind, renderer := range defaults {
		r.renderers[kind] = renderer
	}
}

func orAny(phrase string) string {
	if phrase == "" {
		return "any number of"
	}
	return phrase
}

// columnSentence builds a "<column> <predicate><mostly>." statement.
func columnSentence(predicate string) func(c *Context) string {
	return func(c *Context) string {
		return fmt.Sprintf("%s %s%s.", subject(c), predicate, mostlyClause(c))
	}
}

func regexStatement(verb string) func(c *Context) string {
	return func(c *Context) string {
		regex, _ := c.Kwarg("regex")
		return fmt.Sprintf("%s values %s this regular expression: %s%s.",
			subject(c), verb, formatValue(regex), mostlyClause(c))
	}
}

func valueSetStatement(predicate string) func(c *Context) string {
	return func(c *Context) string {
		set, _ := c.Kwarg("value_set")
		return fmt.Sprintf("%s values %s: %s%s.",
			subject(c), predicate, formatValue(set), mostlyClause(c))
	}
}

// categoricalTypes are column type hints that favour a value list
// over a sentence.
var categoricalTypes = map[string]bool{
	"categorical": true,
	"category":    true,
	"string":      true,
	"str":         true,
	"object":      true,
	"enum":        true,
}

// valueSetBlocks renders a value set as a list for categorical
// columns and as a sentence otherwise.
func valueSetBlocks(predicate string) func(c *Context) []document.Block {
	return func(c *Context) []document.Block {
		typ, ok := c.Lookup.ColumnType(c.Column)
		if !ok || !categoricalTypes[strings.ToLower(typ)] {
			return []document.Block{document.NewText(c.Statement)}
		}
		set, _ := toList(c.Expectation.Kwargs["value_set"])
		return []document.Block{document.NewValueList(
			fmt.Sprintf("%s values %s%s", subject(c), predicate, mostlyClause(c)),
			formatList(set),
		)}
	}
}

func columnExistsBlocks(c *Context) []document.Block {
	typ, ok := c.Lookup.ColumnType(c.Column)
	if !ok {
		typ = c.Missing("column type")
	}
	return []document.Block{
		document.NewText(fmt.Sprintf("%s Type: %s.", c.Statement, typ)),
	}
}

// aggregateRange renders a column statistic bounded by
// min_value/max_value as a table of its boundaries.
func aggregateRange(stat string) Renderer {
	return Renderer{
		Statement: func(c *Context) string {
			if p := readBounds(c).phrase(); p != "" {
				return fmt.Sprintf("%s %s must be %s.", subject(c), stat, p)
			}
			return fmt.Sprintf("%s %s may have any numerical value.", subject(c), stat)
		},
		Blocks: func(c *Context) []document.Block {
			return []document.Block{document.NewTable(
				c.Statement, []string{"Bound", "Value"}, readBounds(c).rows(),
			)}
		},
	}
}

func uniqueCountBlocks(c *Context) []document.Block {
	var observed string
	if s, ok := c.Lookup.ColumnStats(c.Column); ok && s.DistinctCount != nil {
		observed = formatValue(*s.DistinctCount)
	} else {
		observed = c.Missing("distinct value count")
	}
	rows := append(readBounds(c).rows(), []string{"Observed distinct values", observed})
	return []document.Block{document.NewTable(c.Statement, []string{"Bound", "Value"}, rows)}
}

func uniqueProportionBlocks(c *Context) []document.Block {
	var observed string
	s, ok := c.Lookup.ColumnStats(c.Column)
	if ok && s.DistinctCount != nil && s.RowCount != nil && *s.RowCount > 0 {
		observed = formatFloat(float64(*s.DistinctCount) / float64(*s.RowCount))
	} else {
		observed = c.Missing("unique value proportion")
	}
	rows := append(readBounds(c).rows(), []string{"Observed proportion", observed})
	return []document.Block{document.NewTable(c.Statement, []string{"Bound", "Value"}, rows)}
}

func rowCountRangeBlocks(c *Context) []document.Block {
	rows := append(readBounds(c).rows(), []string{"Observed rows", observedRows(c)})
	return []document.Block{document.NewTable(c.Statement, []string{"Bound", "Value"}, rows)}
}

func rowCountEqualBlocks(c *Context) []document.Block {
	v, _ := c.Kwarg("value")
	rows := [][]string{
		{"Expected rows", formatValue(v)},
		{"Observed rows", observedRows(c)},
	}
	return []document.Block{document.NewTable(c.Statement, []string{"Metric", "Value"}, rows)}
}

func observedRows(c *Context) string {
	if s, ok := c.Lookup.TableStats(); ok {
		return formatValue(s.RowCount)
	}
	return c.Missing("table row count")
}

// partitionGraphBlocks draws the partition_object kwarg as a bar
// chart. Continuous partitions carry bins and weights, categorical
// ones values and weights.
func partitionGraphBlocks(c *Context) []document.Block {
	partition, _ := c.Expectation.Kwargs["partition_object"].(map[string]any)
	weights, _ := toList(partition["weights"])

	var labels []string
	if values, ok := toList(partition["values"]); ok {
		labels = formatList(values)
	} else if bins, ok := toList(partition["bins"]); ok && len(bins) == len(weights)+1 {
		for i := 0; i < len(weights); i++ {
			labels = append(labels, fmt.Sprintf("%s-%s",
				formatValue(bins[i]), formatValue(bins[i+1])))
		}
	}

	if len(weights) == 0 || len(labels) != len(weights) {
		return []document.Block{document.NewText(c.Statement)}
	}

	points := make([]document.GraphPoint, 0, len(weights))
	for i, w := range weights {
		f, ok := toFloat64(w)
		if !ok {
			return []document.Block{document.NewText(c.Statement)}
		}
		points = append(points, document.GraphPoint{Label: labels[i], Value: f})
	}

	return []document.Block{{
		Kind: document.KindGraph,
		Graph: &document.Graph{
			Title: c.Statement,
			Mark:  "bar",
			X:     "bin",
			Y:     "weight",
			Data:  points,
		},
	}}
}
