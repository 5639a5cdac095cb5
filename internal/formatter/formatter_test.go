package formatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	messages "github.com/cucumber/messages/go/v21"
)

func parseEvents(t *testing.T, out string) []Event {
	t.Helper()
	var events []Event
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "VINE_EVENT:") {
			continue
		}
		var ev Event
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "VINE_EVENT:")), &ev); err != nil {
			t.Fatalf("malformed event line %q: %v", line, err)
		}
		events = append(events, ev)
	}
	return events
}

func eventsOfType(events []Event, typ string) []Event {
	var out []Event
	for _, ev := range events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

func TestFormatterEventStream(t *testing.T) {
	var buf bytes.Buffer
	f := New("vine", &buf).(*Formatter)

	doc := &messages.GherkinDocument{Feature: &messages.Feature{Name: "Login"}}
	f.TestRunStarted()
	f.Feature(doc, "features/login.feature", nil)

	passing := &messages.Pickle{Name: "Login with valid credentials"}
	f.Pickle(passing)
	f.Passed(passing, &messages.PickleStep{Text: "I am on the login page"}, nil)
	f.Passed(passing, &messages.PickleStep{Text: "I log in as the default user"}, nil)

	failing := &messages.Pickle{Name: "Login with invalid credentials"}
	f.Pickle(failing)
	f.Failed(failing, &messages.PickleStep{Text: "I should be successfully logged in"}, nil,
		errors.New("logged-in redirect: expected \"/dashboard\", actual \"/login\""))

	f.Summary()

	events := parseEvents(t, buf.String())

	starts := eventsOfType(events, EventFeatureStart)
	if len(starts) != 1 || starts[0].Feature != "Login" || starts[0].File != "features/login.feature" {
		t.Errorf("feature start = %+v", starts)
	}

	ends := eventsOfType(events, EventScenarioEnd)
	if len(ends) != 2 {
		t.Fatalf("scenario ends = %d, want 2", len(ends))
	}
	if ends[0].Status != "passed" {
		t.Errorf("first scenario status = %q, want passed", ends[0].Status)
	}
	if ends[1].Status != "failed" {
		t.Errorf("second scenario status = %q, want failed", ends[1].Status)
	}
	if !strings.Contains(ends[1].Error, "/dashboard") {
		t.Errorf("failed scenario error = %q", ends[1].Error)
	}

	summaries := eventsOfType(events, EventSummary)
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}
	s := summaries[0]
	if s.Total != 2 || s.Passed != 1 || s.Failed != 1 {
		t.Errorf("summary = %+v", s)
	}

	// The human tally follows the event stream.
	if !strings.Contains(buf.String(), "2 scenarios (1 passed, 1 failed)") {
		t.Errorf("missing human summary in output:\n%s", buf.String())
	}
}

func TestFormatterUndefinedStepSkipsScenario(t *testing.T) {
	var buf bytes.Buffer
	f := New("vine", &buf).(*Formatter)

	f.Feature(&messages.GherkinDocument{Feature: &messages.Feature{Name: "F"}}, "f.feature", nil)
	p := &messages.Pickle{Name: "Uses a missing step"}
	f.Pickle(p)
	f.Undefined(p, &messages.PickleStep{Text: "I do something nobody defined"}, nil)
	f.Summary()

	events := parseEvents(t, buf.String())

	steps := eventsOfType(events, EventStepEnd)
	if len(steps) != 1 || steps[0].Status != "undefined" {
		t.Fatalf("step events = %+v", steps)
	}
	if !strings.Contains(steps[0].Error, "no step definition") {
		t.Errorf("undefined step error = %q", steps[0].Error)
	}

	ends := eventsOfType(events, EventScenarioEnd)
	if len(ends) != 1 || ends[0].Status != "skipped" {
		t.Errorf("scenario end = %+v, want skipped", ends)
	}
}

func TestFormatterEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	f := New("vine", &buf).(*Formatter)

	f.Feature(&messages.GherkinDocument{}, "empty.feature", nil)
	f.Summary()

	events := parseEvents(t, buf.String())
	if len(eventsOfType(events, EventFeatureStart)) != 0 {
		t.Error("feature start emitted for an empty document")
	}
}
