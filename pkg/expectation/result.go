package expectation

// ResultDetail mirrors the "result" object produced when an
// expectation is evaluated. Every field is optional.
type ResultDetail struct {
	ObservedValue         any            `json:"observed_value,omitempty" yaml:"observed_value,omitempty"`
	ElementCount          *int           `json:"element_count,omitempty" yaml:"element_count,omitempty"`
	MissingCount          *int           `json:"missing_count,omitempty" yaml:"missing_count,omitempty"`
	UnexpectedCount       *int           `json:"unexpected_count,omitempty" yaml:"unexpected_count,omitempty"`
	UnexpectedPercent     *float64       `json:"unexpected_percent,omitempty" yaml:"unexpected_percent,omitempty"`
	PartialUnexpectedList []any          `json:"partial_unexpected_list,omitempty" yaml:"partial_unexpected_list,omitempty"`
	Details               map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// IsEmpty reports whether the detail carries no information.
func (d *ResultDetail) IsEmpty() bool {
	if d == nil {
		return true
	}
	return d.ObservedValue == nil &&
		d.ElementCount == nil &&
		d.MissingCount == nil &&
		d.UnexpectedCount == nil &&
		d.UnexpectedPercent == nil &&
		len(d.PartialUnexpectedList) == 0 &&
		len(d.Details) == 0
}

// EVR is the outcome of evaluating one Expectation.
type EVR struct {
	// Expectation is the rule that was evaluated.
	Expectation Expectation `json:"expectation_config" yaml:"expectation_config"`

	// Success is nil when the record carries no evaluation data.
	Success *bool `json:"success,omitempty" yaml:"success,omitempty"`

	// Result holds the observed value and unexpected samples.
	Result *ResultDetail `json:"result,omitempty" yaml:"result,omitempty"`

	// Error carries the exception text raised during evaluation.
	Error string `json:"exception_message,omitempty" yaml:"exception_message,omitempty"`
}

// NewResult builds an EVR with the given outcome.
func NewResult(exp Expectation, success bool, detail *ResultDetail) EVR {
	return EVR{
		Expectation: exp,
		Success:     &success,
		Result:      detail,
	}
}

// HasOutcome reports whether the record carries a success flag.
func (r EVR) HasOutcome() bool {
	return r.Success != nil
}

// Succeeded returns the success flag, treating a missing flag as
// a failure.
func (r EVR) Succeeded() bool {
	return r.Success != nil && *r.Success
}

// ResultSet is the ordered output of validating a suite.
type ResultSet struct {
	SuiteName string         `json:"expectation_suite_name" yaml:"expectation_suite_name"`
	Results   []EVR          `json:"results" yaml:"results"`
	Meta      map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Len returns the number of results.
func (s *ResultSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Results)
}

// Statistics counts evaluated, successful and unsuccessful
// results.
func (s *ResultSet) Statistics() (evaluated, successful, unsuccessful int) {
	if s == nil {
		return 0, 0, 0
	}
	for _, r := range s.Results {
		if !r.HasOutcome() {
			continue
		}
		evaluated++
		if r.Succeeded() {
			successful++
		} else {
			unsuccessful++
		}
	}
	return evaluated, successful, unsuccessful
}
