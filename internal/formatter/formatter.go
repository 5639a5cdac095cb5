// Package formatter registers the "vine" godog output format, a stream of
// line-delimited JSON events that tooling and CI can parse without scraping
// the pretty output.
package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/formatters"
	messages "github.com/cucumber/messages/go/v21"
)

// Event types emitted on the stream.
const (
	EventFeatureStart  = "feature_start"
	EventFeatureEnd    = "feature_end"
	EventScenarioStart = "scenario_start"
	EventScenarioEnd   = "scenario_end"
	EventStepEnd       = "step_end"
	EventSummary       = "summary"
)

// Event is one structured test event.
type Event struct {
	Type     string `json:"type"`
	Feature  string `json:"feature,omitempty"`
	Scenario string `json:"scenario,omitempty"`
	Step     string `json:"step,omitempty"`
	Status   string `json:"status,omitempty"`
	Error    string `json:"error,omitempty"`
	File     string `json:"file,omitempty"`
	Duration string `json:"duration,omitempty"`

	Total   int `json:"total,omitempty"`
	Passed  int `json:"passed,omitempty"`
	Failed  int `json:"failed,omitempty"`
	Skipped int `json:"skipped,omitempty"`
}

// Formatter writes one JSON event per line, prefixed so consumers can pick
// the events out of mixed output.
type Formatter struct {
	out io.Writer

	feature     string
	featureFile string

	scenario        string
	scenarioErr     string
	scenarioFailed  bool
	scenarioSkipped bool
	scenarioStart   time.Time

	scenarios counters
	steps     counters
}

type counters struct {
	total   int
	passed  int
	failed  int
	skipped int
}

func init() {
	godog.Format("vine", "Line-delimited JSON event stream", New)
}

// New creates the formatter. Matches godog's FormatterFunc shape.
func New(suite string, out io.Writer) formatters.Formatter {
	return &Formatter{out: out}
}

func (f *Formatter) emit(ev Event) {
	data, _ := json.Marshal(ev)
	fmt.Fprintf(f.out, "VINE_EVENT:%s\n", data)
}

func (f *Formatter) TestRunStarted() {}

func (f *Formatter) Feature(doc *messages.GherkinDocument, uri string, content []byte) {
	if f.feature != "" {
		f.emit(Event{Type: EventFeatureEnd, Feature: f.feature})
	}
	if doc.Feature == nil {
		return
	}
	f.feature = doc.Feature.Name
	f.featureFile = uri
	f.emit(Event{Type: EventFeatureStart, Feature: f.feature, File: uri})
}

func (f *Formatter) Pickle(pickle *messages.Pickle) {
	f.closeScenario()

	f.scenario = pickle.Name
	f.scenarioErr = ""
	f.scenarioFailed = false
	f.scenarioSkipped = false
	f.scenarioStart = time.Now()
	f.scenarios.total++

	f.emit(Event{
		Type:     EventScenarioStart,
		Feature:  f.feature,
		Scenario: pickle.Name,
		File:     f.featureFile,
	})
}

// closeScenario emits the end event for the scenario in flight, if any.
// godog has no scenario-end formatter hook, so the next Pickle or the final
// Summary closes the previous one.
func (f *Formatter) closeScenario() {
	if f.scenario == "" {
		return
	}

	status := "passed"
	switch {
	case f.scenarioFailed:
		status = "failed"
		f.scenarios.failed++
	case f.scenarioSkipped:
		status = "skipped"
		f.scenarios.skipped++
	default:
		f.scenarios.passed++
	}

	f.emit(Event{
		Type:     EventScenarioEnd,
		Feature:  f.feature,
		Scenario: f.scenario,
		Status:   status,
		Error:    f.scenarioErr,
		Duration: time.Since(f.scenarioStart).Round(time.Millisecond).String(),
	})
	f.scenario = ""
}

func (f *Formatter) Defined(pickle *messages.Pickle, step *messages.PickleStep, def *formatters.StepDefinition) {
}

func (f *Formatter) Passed(pickle *messages.Pickle, step *messages.PickleStep, def *formatters.StepDefinition) {
	f.steps.passed++
	f.stepEnd(pickle, step, "passed", "")
}

func (f *Formatter) Failed(pickle *messages.Pickle, step *messages.PickleStep, def *formatters.StepDefinition, err error) {
	f.steps.failed++
	f.scenarioFailed = true

	msg := ""
	if err != nil {
		msg = err.Error()
		f.scenarioErr = msg
	}
	f.stepEnd(pickle, step, "failed", msg)
}

func (f *Formatter) Skipped(pickle *messages.Pickle, step *messages.PickleStep, def *formatters.StepDefinition) {
	f.steps.skipped++
	f.stepEnd(pickle, step, "skipped", "")
}

func (f *Formatter) Undefined(pickle *messages.Pickle, step *messages.PickleStep, def *formatters.StepDefinition) {
	f.scenarioSkipped = true
	f.stepEnd(pickle, step, "undefined", fmt.Sprintf("no step definition matches %q", step.Text))
}

func (f *Formatter) Pending(pickle *messages.Pickle, step *messages.PickleStep, def *formatters.StepDefinition) {
	f.steps.skipped++
	f.stepEnd(pickle, step, "pending", "")
}

func (f *Formatter) Ambiguous(pickle *messages.Pickle, step *messages.PickleStep, def *formatters.StepDefinition, err error) {
	f.steps.failed++
	f.scenarioFailed = true

	msg := "ambiguous step"
	if err != nil {
		msg = err.Error()
		f.scenarioErr = msg
	}
	f.stepEnd(pickle, step, "ambiguous", msg)
}

func (f *Formatter) stepEnd(pickle *messages.Pickle, step *messages.PickleStep, status, errMsg string) {
	f.emit(Event{
		Type:     EventStepEnd,
		Feature:  f.feature,
		Scenario: pickle.Name,
		Step:     step.Text,
		Status:   status,
		Error:    errMsg,
	})
}

// Summary closes the final scenario and feature, emits the summary event and
// prints a short human-readable tally.
func (f *Formatter) Summary() {
	f.closeScenario()
	if f.feature != "" {
		f.emit(Event{Type: EventFeatureEnd, Feature: f.feature})
	}

	f.emit(Event{
		Type:    EventSummary,
		Total:   f.scenarios.total,
		Passed:  f.scenarios.passed,
		Failed:  f.scenarios.failed,
		Skipped: f.scenarios.skipped,
	})

	fmt.Fprintln(f.out)
	printTally(f.out, "scenarios", f.scenarios.total, f.scenarios)
	printTally(f.out, "steps", f.steps.passed+f.steps.failed+f.steps.skipped, f.steps)
}

func printTally(out io.Writer, unit string, total int, c counters) {
	fmt.Fprintf(out, "%d %s (%d passed", total, unit, c.passed)
	if c.failed > 0 {
		fmt.Fprintf(out, ", %d failed", c.failed)
	}
	if c.skipped > 0 {
		fmt.Fprintf(out, ", %d skipped", c.skipped)
	}
	fmt.Fprintln(out, ")")
}
