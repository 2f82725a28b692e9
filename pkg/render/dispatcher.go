// Package render is the entry point of the renderer. A Dispatcher
// validates its inputs against the selected mode and hands them to
// the matching page composer.
package render

import (
	"strings"
	"time"

	"digital.vasic.docrender/pkg/content"
	"digital.vasic.docrender/pkg/document"
	"digital.vasic.docrender/pkg/inspect"
	"digital.vasic.docrender/pkg/logging"
	"digital.vasic.docrender/pkg/metrics"
	"digital.vasic.docrender/pkg/page"
)

// Mode selects the page composer.
type Mode = document.Mode

const (
	Prescriptive = document.ModePrescriptive
	Descriptive  = document.ModeDescriptive
)

// ParseMode converts "prescriptive" or "descriptive" into a Mode.
func ParseMode(s string) (Mode, error) {
	return document.ParseMode(s)
}

// Dispatcher renders suites and result sets into documents. It is
// immutable after New and safe for concurrent use.
type Dispatcher struct {
	logger             logging.Logger
	metrics            metrics.RenderMetrics
	registry           *content.Registry
	onlyReturnFailures bool
	filterExpr         string
	parallelism        int
	title              string

	filter    *celFilter
	filterErr error
	composers map[Mode]page.Composer
}

// New creates a Dispatcher. An invalid filter expression is
// reported by every Render call.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:  logging.NullLogger{},
		metrics: metrics.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(d)
	}

	if strings.TrimSpace(d.filterExpr) != "" {
		d.filter, d.filterErr = compileFilter(d.filterExpr)
	}

	shared := []page.Option{
		page.WithMapper(content.NewMapper(d.registry)),
		page.WithParallelism(d.parallelism),
		page.WithTitle(d.title),
	}
	if d.filter != nil {
		shared = append(shared, page.WithFilter(d.filter.Match))
	}

	d.composers = map[Mode]page.Composer{
		Prescriptive: page.NewPrescriptive(shared...),
		Descriptive: page.NewDescriptive(append(shared,
			page.WithOnlyReturnFailures(d.onlyReturnFailures))...),
	}
	return d
}

// Render builds the document for items in the given mode. in
// supplies contextual statistics; aux, when non-nil, answers the
// lookups in misses. The result is either a complete document or a
// single error, never both.
func (d *Dispatcher) Render(
	items page.Input,
	in inspect.Inspectable,
	mode Mode,
	aux inspect.Inspectable,
) (*document.Document, error) {
	start := time.Now()
	doc, err := d.render(items, in, mode, aux)
	elapsed := time.Since(start)

	if err != nil {
		d.metrics.RecordRender(mode.String(), "error", elapsed)
		d.logger.Error("render failed",
			logging.StringField("mode", mode.String()),
			logging.ErrorField(err),
		)
		return nil, err
	}
	d.metrics.RecordRender(mode.String(), "ok", elapsed)

	for _, w := range doc.Warnings {
		d.metrics.RecordWarning(string(w.Code))
		d.logger.Warn(w.Message,
			logging.StringField("code", string(w.Code)),
			logging.KindField(w.Kind),
			logging.ColumnField(w.Column),
		)
	}
	for _, s := range doc.Sections {
		for _, b := range s.Blocks {
			d.metrics.RecordBlock(string(b.Kind))
		}
	}

	d.logger.Debug("render complete",
		logging.StringField("mode", mode.String()),
		logging.StringField("title", doc.Title),
		logging.IntField("sections", doc.Summary.Sections),
		logging.IntField("blocks", doc.Summary.Blocks),
		logging.IntField("warnings", len(doc.Warnings)),
		logging.DurationField("duration", elapsed),
	)
	return doc, nil
}

func (d *Dispatcher) render(
	items page.Input,
	in inspect.Inspectable,
	mode Mode,
	aux inspect.Inspectable,
) (*document.Document, error) {
	if err := d.validate(items, mode); err != nil {
		return nil, err
	}

	var lookup inspect.Inspectable = inspect.Empty{}
	if in != nil {
		lookup = in
	}
	if aux != nil {
		lookup = inspect.Chain(lookup, aux)
	}

	return d.composers[mode].Compose(items, lookup)
}

// validate checks that items carry what mode requires.
func (d *Dispatcher) validate(items page.Input, mode Mode) error {
	if d.filterErr != nil {
		return d.filterErr
	}

	switch mode {
	case Prescriptive:
		if items.Suite == nil {
			return configErrorf("items", "prescriptive mode requires an expectation suite")
		}
		if d.onlyReturnFailures {
			return configErrorf("only_return_failures", "only applies to descriptive mode")
		}
		for i, e := range items.Suite.Expectations {
			if e.Kind == "" {
				return configErrorf("expectations", "item %d has an empty expectation_type", i)
			}
		}
	case Descriptive:
		if items.Results == nil {
			return configErrorf("items", "descriptive mode requires evaluation results")
		}
		for i, r := range items.Results.Results {
			if r.Expectation.Kind == "" {
				return configErrorf("results", "item %d has an empty expectation_type", i)
			}
			if !r.HasOutcome() {
				return configErrorf("results",
					"item %d (%s) carries no success flag", i, r.Expectation.Kind)
			}
		}
	default:
		return configErrorf("mode", "unknown render mode %s", mode)
	}
	return nil
}
