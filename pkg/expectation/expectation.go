// Package expectation defines the declarative rules and evaluation
// outcomes that the renderer turns into documents.
package expectation

import (
	"sort"
	"strings"
)

// Expectation describes a single declarative rule about data.
type Expectation struct {
	// Kind is the expectation type (e.g.,
	// "expect_column_values_to_not_be_null"). Must be non-empty.
	Kind string `json:"expectation_type" yaml:"expectation_type"`

	// Column is the target column. Empty for table-level rules.
	Column string `json:"column,omitempty" yaml:"column,omitempty"`

	// Kwargs holds the rule parameters.
	Kwargs map[string]any `json:"kwargs,omitempty" yaml:"kwargs,omitempty"`

	// Meta holds free-form metadata attached by the author.
	Meta map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// tableLevelPrefixes name the kinds that describe a table or
// several columns at once.
var tableLevelPrefixes = []string{
	"expect_table_",
	"expect_multicolumn_",
	"expect_column_pair_",
	"expect_select_column_",
}

// multiColumnKwargs are kwargs whose presence marks a rule as
// spanning more than one column.
var multiColumnKwargs = []string{"column_A", "column_B", "column_list"}

// TargetColumn returns the column the expectation applies to. The
// Column field wins; otherwise a string "column" kwarg is used.
func (e Expectation) TargetColumn() string {
	if e.Column != "" {
		return e.Column
	}
	if c, ok := e.Kwargs["column"].(string); ok {
		return c
	}
	return ""
}

// IsTableLevel reports whether the expectation belongs to the
// table-level section rather than a single column.
func (e Expectation) IsTableLevel() bool {
	for _, p := range tableLevelPrefixes {
		if strings.HasPrefix(e.Kind, p) {
			return true
		}
	}
	for _, k := range multiColumnKwargs {
		if _, ok := e.Kwargs[k]; ok {
			return true
		}
	}
	return e.TargetColumn() == ""
}

// Kwarg returns the named parameter and whether it was present.
func (e Expectation) Kwarg(name string) (any, bool) {
	v, ok := e.Kwargs[name]
	return v, ok
}

// KwargNames returns the parameter names in sorted order.
func (e Expectation) KwargNames() []string {
	names := make([]string, 0, len(e.Kwargs))
	for k := range e.Kwargs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Suite is an ordered, named collection of expectations.
type Suite struct {
	Name         string         `json:"expectation_suite_name" yaml:"expectation_suite_name"`
	Expectations []Expectation  `json:"expectations" yaml:"expectations"`
	Meta         map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Len returns the number of expectations in the suite.
func (s *Suite) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Expectations)
}
