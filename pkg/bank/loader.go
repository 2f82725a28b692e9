package bank

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"digital.vasic.docrender/pkg/expectation"
	"digital.vasic.docrender/pkg/inspect"
)

// LoadSuite reads an expectation suite from a YAML or JSON file.
func LoadSuite(path string) (*expectation.Suite, error) {
	var suite expectation.Suite
	if err := decodeFile(path, "suite", &suite); err != nil {
		return nil, err
	}
	return &suite, nil
}

// LoadResults reads evaluation results from a YAML or JSON file.
func LoadResults(path string) (*expectation.ResultSet, error) {
	var rs expectation.ResultSet
	if err := decodeFile(path, "results", &rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// LoadProfile reads a data profile from a YAML or JSON file.
func LoadProfile(path string) (*inspect.Profile, error) {
	profile := inspect.NewProfile()
	if err := decodeFile(path, "profile", profile); err != nil {
		return nil, err
	}
	if profile.Columns == nil {
		profile.Columns = make(map[string]inspect.ColumnStats)
	}
	return profile, nil
}

// decodeFile parses path into out. JSON documents are valid YAML,
// so one decoder serves both; tab indentation is fine inside the
// flow collections JSON is made of.
func decodeFile(path, what string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s file %s: %w", what, path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s file %s: %w", what, path, err)
	}
	return nil
}
