package bank

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"digital.vasic.docrender/pkg/expectation"
)

// ValidationError represents a validation issue found in an input
// file.
type ValidationError struct {
	Field   string
	Message string
	Index   int // -1 if not applicable
	List    string
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s[%d].%s: %s", e.List, e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateSuiteFile validates a suite file and returns all errors
// found.
func ValidateSuiteFile(path string) []ValidationError {
	var suite expectation.Suite
	if errs := readForValidation(path, &suite); errs != nil {
		return errs
	}

	var errs []ValidationError
	if suite.Name == "" {
		errs = append(errs, ValidationError{
			Field: "expectation_suite_name", Message: "suite name is required", Index: -1,
		})
	}
	for i, e := range suite.Expectations {
		errs = append(errs, validateExpectation("expectations", i, e)...)
	}
	return errs
}

// ValidateResultsFile validates a results file and returns all
// errors found. Every result needs a success flag.
func ValidateResultsFile(path string) []ValidationError {
	var rs expectation.ResultSet
	if errs := readForValidation(path, &rs); errs != nil {
		return errs
	}

	var errs []ValidationError
	for i, r := range rs.Results {
		errs = append(errs, validateExpectation("results", i, r.Expectation)...)
		if !r.HasOutcome() {
			errs = append(errs, ValidationError{
				List: "results", Field: "success", Message: "success flag is required", Index: i,
			})
		}
	}
	return errs
}

func readForValidation(path string, out any) []ValidationError {
	data, err := os.ReadFile(path)
	if err != nil {
		return []ValidationError{{Field: "file", Message: err.Error(), Index: -1}}
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return []ValidationError{{Field: "syntax", Message: err.Error(), Index: -1}}
	}
	return nil
}

func validateExpectation(list string, i int, e expectation.Expectation) []ValidationError {
	var errs []ValidationError
	if e.Kind == "" {
		errs = append(errs, ValidationError{
			List: list, Field: "expectation_type", Message: "expectation type is required", Index: i,
		})
	}
	if col, ok := e.Kwargs["column"]; ok && e.Column != "" && col != e.Column {
		errs = append(errs, ValidationError{
			List: list, Field: "column",
			Message: fmt.Sprintf("column %q conflicts with kwargs column %v", e.Column, col),
			Index:   i,
		})
	}
	return errs
}
