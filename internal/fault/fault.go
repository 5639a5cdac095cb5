// Package fault defines the error taxonomy used across vine. Each kind maps
// to a different failure scope: config and session errors abort the run,
// navigation/interaction/assertion errors abort the current scenario, and
// undefined-step errors mark a scenario as broken rather than failed.
package fault

import (
	"fmt"
	"strings"
	"time"
)

// ConfigError reports a malformed environment value at startup.
type ConfigError struct {
	Var    string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%q: %s", e.Var, e.Value, e.Reason)
}

// SessionError reports a browser launch or connect failure. Fatal for the run.
type SessionError struct {
	Browser string
	Err     error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("browser session (%s): %v", e.Browser, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// NavigationError reports a failed page navigation.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigating to %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// InteractionError reports a failed page interaction, including waits that
// exceeded their timeout.
type InteractionError struct {
	Action   string
	Selector string
	Timeout  time.Duration
	Err      error
}

func (e *InteractionError) Error() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("%s %q (after %s): %v", e.Action, e.Selector, e.Timeout, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Action, e.Selector, e.Err)
}

func (e *InteractionError) Unwrap() error { return e.Err }

// AssertionError reports an expected-vs-actual mismatch. Both values appear
// verbatim in the message.
type AssertionError struct {
	Description string
	Expected    string
	Actual      string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %q, actual %q", e.Description, e.Expected, e.Actual)
}

// UndefinedStepError reports a phrase with no matching step definition. This
// is a distinct kind so reports can tell "test broken" from "test failed".
type UndefinedStepError struct {
	Phrase string
}

func (e *UndefinedStepError) Error() string {
	return fmt.Sprintf("undefined step: %q", e.Phrase)
}

// AmbiguousStepError reports a phrase matching more than one definition.
type AmbiguousStepError struct {
	Phrase   string
	Patterns []string
}

func (e *AmbiguousStepError) Error() string {
	return fmt.Sprintf("ambiguous step %q matches: %s", e.Phrase, strings.Join(e.Patterns, ", "))
}
