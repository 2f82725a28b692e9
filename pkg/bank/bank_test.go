package bank

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const peopleSuiteYAML = `expectation_suite_name: people
expectations:
  - expectation_type: expect_column_values_to_not_be_null
    column: age
  - expectation_type: expect_column_mean_to_be_between
    column: age
    kwargs:
      min_value: 0
      max_value: 100
`

func TestLoadSuite_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "people.yaml", peopleSuiteYAML)

	suite, err := LoadSuite(path)
	require.NoError(t, err)

	assert.Equal(t, "people", suite.Name)
	require.Len(t, suite.Expectations, 2)
	assert.Equal(t, "age", suite.Expectations[1].Column)
	assert.Equal(t, 100, suite.Expectations[1].Kwargs["max_value"])
}

func TestLoadSuite_JSONMatchesYAML(t *testing.T) {
	dir := t.TempDir()
	fromYAML, err := LoadSuite(writeFile(t, dir, "people.yaml", peopleSuiteYAML))
	require.NoError(t, err)

	data, err := json.Marshal(fromYAML)
	require.NoError(t, err)
	fromJSON, err := LoadSuite(writeFile(t, dir, "people.json", string(data)))
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromJSON)
}

func TestLoadSuite_Errors(t *testing.T) {
	_, err := LoadSuite(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read suite file")

	path := writeFile(t, t.TempDir(), "bad.yaml", "expectations: [")
	_, err = LoadSuite(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse suite file")
}

func TestLoadResults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "results.json", `{
  "expectation_suite_name": "people",
  "results": [
    {
      "expectation_config": {"expectation_type": "expect_column_mean_to_be_between", "column": "age"},
      "success": false,
      "result": {"observed_value": 120.5, "unexpected_count": 3, "partial_unexpected_list": [101, 140]}
    },
    {
      "expectation_config": {"expectation_type": "expect_column_values_to_not_be_null", "column": "name"},
      "success": true
    }
  ]
}`)

	rs, err := LoadResults(path)
	require.NoError(t, err)

	require.Len(t, rs.Results, 2)
	first := rs.Results[0]
	assert.True(t, first.HasOutcome())
	assert.False(t, first.Succeeded())
	assert.Equal(t, 120.5, first.Result.ObservedValue)
	require.NotNil(t, first.Result.UnexpectedCount)
	assert.Equal(t, 3, *first.Result.UnexpectedCount)
	assert.Equal(t, []any{101, 140}, first.Result.PartialUnexpectedList)
	assert.True(t, rs.Results[1].Succeeded())

	evaluated, successful, unsuccessful := rs.Statistics()
	assert.Equal(t, [3]int{2, 1, 1}, [3]int{evaluated, successful, unsuccessful})
}

func TestLoadResults_TabIndentedJSON(t *testing.T) {
	data := "{\n" +
		"\t\"expectation_suite_name\": \"people\",\n" +
		"\t\"results\": [\n" +
		"\t\t{\n" +
		"\t\t\t\"expectation_config\": {\n" +
		"\t\t\t\t\"expectation_type\": \"expect_column_max_to_be_between\",\n" +
		"\t\t\t\t\"column\": \"age\",\n" +
		"\t\t\t\t\"kwargs\": {\"max_value\": 100}\n" +
		"\t\t\t},\n" +
		"\t\t\t\"success\": false,\n" +
		"\t\t\t\"result\": {\n" +
		"\t\t\t\t\"observed_value\": 140\n" +
		"\t\t\t}\n" +
		"\t\t}\n" +
		"\t]\n" +
		"}\n"
	path := writeFile(t, t.TempDir(), "results.json", data)

	rs, err := LoadResults(path)
	require.NoError(t, err)
	assert.Equal(t, "people", rs.SuiteName)
	require.Len(t, rs.Results, 1)
	assert.Equal(t, "age", rs.Results[0].Expectation.Column)
	assert.Equal(t, 100, rs.Results[0].Expectation.Kwargs["max_value"])
	assert.False(t, rs.Results[0].Succeeded())
	assert.Equal(t, 140, rs.Results[0].Result.ObservedValue)

	suitePath := writeFile(t, t.TempDir(), "suite.json",
		"{\n\t\"expectation_suite_name\": \"people\",\n\t\"expectations\": [\n"+
			"\t\t{\"expectation_type\": \"expect_column_to_exist\", \"column\": \"age\"}\n\t]\n}\n")
	suite, err := LoadSuite(suitePath)
	require.NoError(t, err)
	require.Len(t, suite.Expectations, 1)
	assert.Empty(t, ValidateSuiteFile(suitePath))
}

func TestLoadProfile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "profile.yaml", `table:
  row_count: 1000
  column_count: 2
columns:
  age:
    type: int
    distinct_count: 80
`)

	profile, err := LoadProfile(path)
	require.NoError(t, err)

	table, ok := profile.TableStats()
	require.True(t, ok)
	assert.Equal(t, int64(1000), table.RowCount)

	typ, ok := profile.ColumnType("age")
	require.True(t, ok)
	assert.Equal(t, "int", typ)

	stats, _ := profile.ColumnStats("age")
	require.NotNil(t, stats.DistinctCount)
	assert.Equal(t, int64(80), *stats.DistinctCount)
}

func TestLoadProfile_Empty(t *testing.T) {
	profile, err := LoadProfile(writeFile(t, t.TempDir(), "empty.yaml", ""))
	require.NoError(t, err)
	assert.NotNil(t, profile.Columns)
	_, ok := profile.TableStats()
	assert.False(t, ok)
}

func TestBank_LoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "people.yaml", peopleSuiteYAML)
	writeFile(t, dir, "orders.json", `{"expectation_suite_name": "orders", "expectations": []}`)
	writeFile(t, dir, "readme.txt", "skip")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0755))

	b := New()
	require.NoError(t, b.LoadDir(dir))

	assert.Equal(t, 2, b.Count())
	assert.Equal(t, []string{"orders", "people"}, b.Names())
	assert.Len(t, b.Sources(), 2)

	suite, ok := b.Get("people")
	require.True(t, ok)
	assert.Equal(t, 2, suite.Len())

	_, ok = b.Get("missing")
	assert.False(t, ok)
}

func TestBank_LoadFile_Duplicate(t *testing.T) {
	dir := t.TempDir()
	b := New()
	require.NoError(t, b.LoadFile(writeFile(t, dir, "a.yaml", peopleSuiteYAML)))

	err := b.LoadFile(writeFile(t, dir, "b.yaml", peopleSuiteYAML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already loaded")
}

func TestBank_LoadFile_Unnamed(t *testing.T) {
	err := New().LoadFile(writeFile(t, t.TempDir(), "a.yaml", "expectations: []\n"))
	assert.Error(t, err)
}

func TestBank_LoadDir_Missing(t *testing.T) {
	err := New().LoadDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestBank_SourcesIsCopy(t *testing.T) {
	b := New()
	b.sources = []string{"a.yaml"}
	sources := b.Sources()
	sources[0] = "changed"
	assert.Equal(t, []string{"a.yaml"}, b.Sources())
}
