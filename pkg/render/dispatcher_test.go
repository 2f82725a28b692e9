package render

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"digital.vasic.docrender/pkg/config"
	"digital.vasic.docrender/pkg/content"
	"digital.vasic.docrender/pkg/document"
	"digital.vasic.docrender/pkg/expectation"
	"digital.vasic.docrender/pkg/inspect"
	"digital.vasic.docrender/pkg/logging"
	"digital.vasic.docrender/pkg/metrics"
	"digital.vasic.docrender/pkg/page"
)

func ageNameSuite() *expectation.Suite {
	return &expectation.Suite{
		Name: "people",
		Expectations: []expectation.Expectation{
			{Kind: "expect_column_values_to_not_be_null", Column: "Age"},
			{
				Kind:   "expect_column_mean_to_be_between",
				Column: "Age",
				Kwargs: map[string]any{"min_value": 0, "max_value": 100},
			},
			{Kind: "expect_column_values_to_not_be_null", Column: "Name"},
		},
	}
}

func ageNameResults() *expectation.ResultSet {
	suite := ageNameSuite()
	return &expectation.ResultSet{
		SuiteName: suite.Name,
		Results: []expectation.EVR{
			expectation.NewResult(suite.Expectations[0], true,
				&expectation.ResultDetail{ObservedValue: 0}),
			expectation.NewResult(suite.Expectations[1], false,
				&expectation.ResultDetail{ObservedValue: 120.5}),
			expectation.NewResult(suite.Expectations[2], true,
				&expectation.ResultDetail{ObservedValue: 0}),
		},
	}
}

var generatedKinds = []string{
	"expect_column_values_to_not_be_null",
	"expect_column_values_to_be_unique",
	"expect_column_values_to_be_between",
	"expect_column_mean_to_be_between",
	"expect_column_values_to_be_in_set",
	"expect_table_row_count_to_be_between",
	"expect_column_pair_values_to_be_equal",
	"x_unsupported_kind",
}

// randomResults builds a reproducible result set over a handful of
// columns and kinds.
func randomResults(seed int64, n int) *expectation.ResultSet {
	rng := rand.New(rand.NewSource(seed))
	rs := &expectation.ResultSet{SuiteName: fmt.Sprintf("generated-%d", seed)}
	for i := 0; i < n; i++ {
		kind := generatedKinds[rng.Intn(len(generatedKinds))]
		exp := expectation.Expectation{
			Kind: kind,
			Kwargs: map[string]any{
				"min_value": rng.Intn(10),
				"max_value": 10 + rng.Intn(10),
				"value_set": []any{"a", "b"},
			},
		}
		switch kind {
		case "expect_column_pair_values_to_be_equal":
			exp.Kwargs["column_A"] = "c0"
			exp.Kwargs["column_B"] = "c1"
		case "expect_table_row_count_to_be_between":
		default:
			exp.Column = fmt.Sprintf("c%d", rng.Intn(5))
		}
		detail := &expectation.ResultDetail{ObservedValue: rng.Intn(50)}
		if rng.Intn(3) == 0 {
			detail.PartialUnexpectedList = []any{"x", "y"}
		}
		rs.Results = append(rs.Results, expectation.NewResult(exp, rng.Intn(2) == 0, detail))
	}
	return rs
}

func suiteOf(rs *expectation.ResultSet) *expectation.Suite {
	s := &expectation.Suite{Name: rs.SuiteName}
	for _, r := range rs.Results {
		s.Expectations = append(s.Expectations, r.Expectation)
	}
	return s
}

func TestRender_PrescriptiveScenario(t *testing.T) {
	doc, err := New().Render(page.Input{Suite: ageNameSuite()}, nil, Prescriptive, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Age", "Name"}, doc.Labels())
	age, _ := doc.Section("Age")
	name, _ := doc.Section("Name")
	assert.Len(t, age.Blocks, 2)
	assert.Len(t, name.Blocks, 1)
	assert.Equal(t, "Age values must never be null.", age.Blocks[0].Text)
}

func TestRender_DescriptiveScenario_OnlyFailures(t *testing.T) {
	d := New(WithOnlyReturnFailures(true))

	doc, err := d.Render(page.Input{Results: ageNameResults()}, nil, Descriptive, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Age"}, doc.Labels())
	age, _ := doc.Section("Age")
	require.Len(t, age.Blocks, 1)
	assert.True(t, age.Blocks[0].Failed())
	assert.Equal(t,
		"Age mean must be between 0 and 100. Failed. Observed value: 120.5.",
		age.Blocks[0].Text)
}

func TestRender_BlockCountAndOrder(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		suite := suiteOf(randomResults(seed, 25))

		doc, err := New().Render(page.Input{Suite: suite}, nil, Prescriptive, nil)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, doc.BlockCount(), len(suite.Expectations))

		for _, s := range doc.Sections {
			var want []string
			for _, e := range suite.Expectations {
				if sectionLabel(e) == s.Label {
					want = append(want, e.Kind)
				}
			}
			// Every generated kind maps to one prescriptive block.
			var got []string
			for _, b := range s.Blocks {
				got = append(got, b.ExpectationType)
			}
			assert.Equal(t, want, got, "seed %d section %s", seed, s.Label)
		}
	}
}

func sectionLabel(e expectation.Expectation) string {
	if e.IsTableLevel() {
		return document.TableLevelLabel
	}
	return e.TargetColumn()
}

func TestRender_Grouping(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rs := randomResults(seed, 30)

		doc, err := New().Render(page.Input{Results: rs}, nil, Descriptive, nil)
		require.NoError(t, err)

		var firstSeen []string
		seen := map[string]bool{}
		hasTable := false
		for _, r := range rs.Results {
			label := sectionLabel(r.Expectation)
			if label == document.TableLevelLabel {
				hasTable = true
				continue
			}
			if !seen[label] {
				seen[label] = true
				firstSeen = append(firstSeen, label)
			}
		}
		want := firstSeen
		if hasTable {
			want = append([]string{document.TableLevelLabel}, firstSeen...)
		}
		assert.Equal(t, want, doc.Labels(), "seed %d", seed)

		for _, s := range doc.Sections {
			for _, b := range s.Blocks {
				assert.NotEmpty(t, b.ExpectationType)
			}
		}
	}
}

func TestRender_FailureMarkerFollowsSuccess(t *testing.T) {
	rs := &expectation.ResultSet{}
	for i := 0; i < 6; i++ {
		rs.Results = append(rs.Results, expectation.NewResult(
			expectation.Expectation{
				Kind:   "expect_column_values_to_not_be_null",
				Column: fmt.Sprintf("c%d", i),
			},
			i%2 == 0,
			// Passing results with anomalous details still pass.
			&expectation.ResultDetail{
				UnexpectedCount:       intPtr(99),
				PartialUnexpectedList: []any{nil},
			},
		))
	}

	doc, err := New().Render(page.Input{Results: rs}, nil, Descriptive, nil)
	require.NoError(t, err)

	require.Len(t, doc.Sections, 6)
	for i, s := range doc.Sections {
		for _, b := range s.Blocks {
			assert.Equal(t, i%2 != 0, b.Failed(), "section %s", s.Label)
		}
	}
}

func TestRender_OnlyFailuresProperty(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		doc, err := New(WithOnlyReturnFailures(true)).
			Render(page.Input{Results: randomResults(seed, 30)}, nil, Descriptive, nil)
		require.NoError(t, err)

		for _, s := range doc.Sections {
			assert.NotEmpty(t, s.Blocks)
			for _, b := range s.Blocks {
				assert.True(t, b.Failed())
			}
		}
	}
}

func TestRender_Idempotent(t *testing.T) {
	rs := randomResults(7, 40)
	profile := inspect.NewProfile()
	profile.Columns["c1"] = inspect.ColumnStats{Type: "string"}
	d := New(WithParallelism(3))

	first, err := d.Render(page.Input{Results: rs}, profile, Descriptive, nil)
	require.NoError(t, err)
	second, err := d.Render(page.Input{Results: rs}, profile, Descriptive, nil)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("documents differ (-first +second):\n%s", diff)
	}
}

func TestRender_DoesNotMutateInputs(t *testing.T) {
	rs := randomResults(3, 20)
	before := randomResults(3, 20)

	_, err := New(WithFilter("kind != 'x_unsupported_kind'")).
		Render(page.Input{Results: rs}, nil, Descriptive, nil)
	require.NoError(t, err)

	if diff := cmp.Diff(before, rs); diff != "" {
		t.Errorf("inputs mutated (-before +after):\n%s", diff)
	}
}

func TestRender_UnsupportedKind(t *testing.T) {
	suite := &expectation.Suite{Expectations: []expectation.Expectation{{
		Kind:   "x_unsupported_kind",
		Column: "c",
		Kwargs: map[string]any{"k": "v"},
	}}}
	m := metrics.NewInMemoryMetrics()

	doc, err := New(WithMetrics(m)).Render(page.Input{Suite: suite}, nil, Prescriptive, nil)
	require.NoError(t, err)

	require.Equal(t, 1, doc.BlockCount())
	b := doc.Sections[0].Blocks[0]
	assert.Equal(t, document.KindUnsupported, b.Kind)
	require.NotNil(t, b.Raw)
	assert.Equal(t, "x_unsupported_kind", b.Raw.Kind)
	assert.JSONEq(t, `{"kwargs":{"k":"v"}}`, b.Raw.Payload)

	require.Len(t, doc.Warnings, 1)
	assert.Equal(t, document.WarnUnsupportedKind, doc.Warnings[0].Code)
	assert.Equal(t, 1, m.WarningCount(string(document.WarnUnsupportedKind)))
	assert.Equal(t, 1, m.BlockCount(string(document.KindUnsupported)))
	assert.Equal(t, 1, m.RenderCount("prescriptive", "ok"))
}

func TestRender_ConfigurationErrors(t *testing.T) {
	noOutcome := &expectation.ResultSet{Results: []expectation.EVR{{
		Expectation: expectation.Expectation{Kind: "expect_column_to_exist", Column: "c"},
	}}}
	emptyKind := &expectation.Suite{Expectations: []expectation.Expectation{{Column: "c"}}}

	tests := []struct {
		name  string
		d     *Dispatcher
		input page.Input
		mode  Mode
		field string
	}{
		{"prescriptive without suite", New(),
			page.Input{Results: ageNameResults()}, Prescriptive, "items"},
		{"descriptive without results", New(),
			page.Input{Suite: ageNameSuite()}, Descriptive, "items"},
		{"descriptive without success flag", New(),
			page.Input{Results: noOutcome}, Descriptive, "results"},
		{"empty kind", New(),
			page.Input{Suite: emptyKind}, Prescriptive, "expectations"},
		{"only failures in prescriptive mode", New(WithOnlyReturnFailures(true)),
			page.Input{Suite: ageNameSuite()}, Prescriptive, "only_return_failures"},
		{"unknown mode", New(),
			page.Input{Suite: ageNameSuite()}, Mode(9), "mode"},
		{"invalid filter", New(WithFilter("kind ==")),
			page.Input{Suite: ageNameSuite()}, Prescriptive, "filter"},
		{"non-bool filter", New(WithFilter("kind + 'x'")),
			page.Input{Suite: ageNameSuite()}, Prescriptive, "filter"},
		{"filter evaluation error", New(WithFilter("kwargs['missing'] == 1")),
			page.Input{Suite: ageNameSuite()}, Prescriptive, "filter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := tt.d.Render(tt.input, nil, tt.mode, nil)

			assert.Nil(t, doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestRender_CELFilter(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		labels   []string
		filtered int
	}{
		{"by column", "column == 'Age'", []string{"Age"}, 1},
		{"by outcome", "!success", []string{"Age"}, 2},
		{"by kwargs", "has(kwargs.min_value) && kwargs.min_value == 0", []string{"Age"}, 2},
		{"evaluated", "evaluated", []string{"Age", "Name"}, 0},
		{"table level", "table_level", nil, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := New(WithFilter(tt.expr)).
				Render(page.Input{Results: ageNameResults()}, nil, Descriptive, nil)
			require.NoError(t, err)

			if tt.labels == nil {
				assert.Empty(t, doc.Labels())
			} else {
				assert.Equal(t, tt.labels, doc.Labels())
			}
			assert.Equal(t, tt.filtered, doc.Summary.Filtered)
			assert.Equal(t, 3, doc.Summary.Expectations)
		})
	}
}

func TestRender_AuxiliaryInspectable(t *testing.T) {
	suite := &expectation.Suite{Expectations: []expectation.Expectation{
		{Kind: "expect_column_to_exist", Column: "id"},
		{Kind: "expect_column_to_exist", Column: "email"},
	}}
	primary := inspect.NewProfile()
	primary.Columns["id"] = inspect.ColumnStats{Type: "int"}
	aux := inspect.NewProfile()
	aux.Columns["id"] = inspect.ColumnStats{Type: "string"}
	aux.Columns["email"] = inspect.ColumnStats{Type: "string"}

	doc, err := New().Render(page.Input{Suite: suite}, primary, Prescriptive, aux)
	require.NoError(t, err)

	id, _ := doc.Section("id")
	email, _ := doc.Section("email")
	assert.Equal(t, "id is a required field. Type: int.", id.Blocks[0].Text)
	assert.Equal(t, "email is a required field. Type: string.", email.Blocks[0].Text)
	assert.Empty(t, doc.Warnings)
}

func TestRender_MissingContextualData(t *testing.T) {
	suite := &expectation.Suite{Expectations: []expectation.Expectation{
		{Kind: "expect_column_to_exist", Column: "id"},
	}}

	doc, err := New().Render(page.Input{Suite: suite}, nil, Prescriptive, nil)
	require.NoError(t, err)

	assert.Contains(t, doc.Sections[0].Blocks[0].Text, document.NotAvailable)
	require.Len(t, doc.Warnings, 1)
	assert.Equal(t, document.WarnMissingContextData, doc.Warnings[0].Code)
}

func TestRender_CustomRegistry(t *testing.T) {
	reg := content.NewRegistry()
	require.NoError(t, reg.Register("expect_custom", content.Renderer{
		Statement: func(c *content.Context) string { return "custom " + c.Column },
	}))
	suite := &expectation.Suite{Expectations: []expectation.Expectation{
		{Kind: "expect_custom", Column: "x"},
	}}

	doc, err := New(WithRegistry(reg)).Render(page.Input{Suite: suite}, nil, Prescriptive, nil)
	require.NoError(t, err)
	assert.Equal(t, "custom x", doc.Sections[0].Blocks[0].Text)
}

func TestRender_LogsWarningsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d := New(WithLogger(logging.NewZapLoggerFrom(zap.New(core))))

	suite := &expectation.Suite{Expectations: []expectation.Expectation{
		{Kind: "x_unsupported_kind", Column: "c"},
	}}
	_, err := d.Render(page.Input{Suite: suite}, nil, Prescriptive, nil)
	require.NoError(t, err)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "x_unsupported_kind", warnings[0].ContextMap()["expectation_type"])
	assert.Equal(t, 1, logs.FilterMessage("render complete").Len())

	_, err = d.Render(page.Input{}, nil, Descriptive, nil)
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("render failed").Len())
}

func TestRender_ConcurrentCalls(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := metrics.NewInMemoryMetrics()
	d := New(WithMetrics(m), WithParallelism(2))
	want, err := d.Render(page.Input{Results: randomResults(11, 30)}, nil, Descriptive, nil)
	require.NoError(t, err)

	const workers = 8
	docs := make([]*document.Document, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			docs[i], errs[i] = d.Render(
				page.Input{Results: randomResults(11, 30)}, nil, Descriptive, nil)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		if diff := cmp.Diff(want, docs[i]); diff != "" {
			t.Errorf("worker %d differs:\n%s", i, diff)
		}
	}
	assert.Equal(t, workers+1, m.RenderCount("descriptive", "ok"))
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Mode = "descriptive"
	cfg.OnlyReturnFailures = true
	cfg.Title = "from config"
	cfg.Filter = "column != 'Name'"

	mode, err := cfg.RenderMode()
	require.NoError(t, err)

	doc, err := New(FromConfig(cfg)...).
		Render(page.Input{Results: ageNameResults()}, nil, mode, nil)
	require.NoError(t, err)

	assert.Equal(t, "from config", doc.Title)
	assert.Equal(t, []string{"Age"}, doc.Labels())
	assert.Equal(t, 1, doc.Summary.Filtered)
	assert.Equal(t, 1, doc.Summary.Blocks)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Descriptive")
	require.NoError(t, err)
	assert.Equal(t, Descriptive, m)

	_, err = ParseMode("narrative")
	assert.Error(t, err)
}

func intPtr(v int) *int { return &v }
