// Package step maps Gherkin phrases to actions against the page-object
// layer. Definitions are built once at startup into a static registry; the
// same handlers serve godog during a run and direct dispatch in tests and
// tooling.
package step

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/cucumber/godog"

	"github.com/vinetool/vine/internal/fault"
)

// Def is one step definition: a phrase pattern with quoted placeholders and
// the handler invoked with the bound arguments.
type Def struct {
	Group       string      `json:"group,omitempty"`
	Pattern     string      `json:"pattern"`
	Description string      `json:"description"`
	Example     string      `json:"example,omitempty"`
	Handler     interface{} `json:"-"`
}

// Category groups related steps together.
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Steps       []Def  `json:"steps"`
}

type compiledDef struct {
	def Def
	re  *regexp.Regexp
}

// Registry holds all step definitions for a run. Registrations happen once
// at startup; the registry is immutable afterwards.
type Registry struct {
	categories []Category
	compiled   []compiledDef
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// AddCategory registers a category of steps. Patterns are program constants;
// a pattern that does not compile is a programming error.
func (r *Registry) AddCategory(c Category) {
	r.categories = append(r.categories, c)
	for _, def := range c.Steps {
		r.compiled = append(r.compiled, compiledDef{
			def: def,
			re:  regexp.MustCompile(def.Pattern),
		})
	}
}

// Categories returns all registered categories.
func (r *Registry) Categories() []Category {
	return r.categories
}

// RegisterToGodog registers every definition with a godog scenario context.
func (r *Registry) RegisterToGodog(ctx *godog.ScenarioContext) {
	for _, cd := range r.compiled {
		ctx.Step(cd.def.Pattern, cd.def.Handler)
	}
}

// Dispatch resolves the single definition matching the concrete phrase, binds
// the quoted segments positionally and invokes the handler. An unmatched
// phrase is an undefined-step error, reported distinctly from an assertion
// failure; more than one match is an ambiguous-step error.
func (r *Registry) Dispatch(phrase string) error {
	var (
		matched  *compiledDef
		args     []string
		patterns []string
	)

	for i := range r.compiled {
		cd := &r.compiled[i]
		m := cd.re.FindStringSubmatch(phrase)
		if m == nil || m[0] != phrase {
			continue
		}
		patterns = append(patterns, cd.def.Pattern)
		matched = cd
		args = m[1:]
	}

	switch len(patterns) {
	case 0:
		return &fault.UndefinedStepError{Phrase: phrase}
	case 1:
		return invoke(matched.def, args)
	default:
		return &fault.AmbiguousStepError{Phrase: phrase, Patterns: patterns}
	}
}

// invoke calls the handler through a fixed signature table. godog accepts the
// same handler shapes, so every definition stays dispatchable both ways.
func invoke(def Def, args []string) error {
	switch fn := def.Handler.(type) {
	case func() error:
		if err := checkArity(def, args, 0); err != nil {
			return err
		}
		return fn()
	case func(string) error:
		if err := checkArity(def, args, 1); err != nil {
			return err
		}
		return fn(args[0])
	case func(string, string) error:
		if err := checkArity(def, args, 2); err != nil {
			return err
		}
		return fn(args[0], args[1])
	case func(string, string, string) error:
		if err := checkArity(def, args, 3); err != nil {
			return err
		}
		return fn(args[0], args[1], args[2])
	case func(int) error:
		if err := checkArity(def, args, 1); err != nil {
			return err
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("step %q: argument %q is not an integer", def.Pattern, args[0])
		}
		return fn(n)
	case func(string, int) error:
		if err := checkArity(def, args, 2); err != nil {
			return err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("step %q: argument %q is not an integer", def.Pattern, args[1])
		}
		return fn(args[0], n)
	default:
		return fmt.Errorf("step %q: handler signature %T is not dispatchable", def.Pattern, def.Handler)
	}
}

func checkArity(def Def, args []string, want int) error {
	if len(args) != want {
		return fmt.Errorf("step %q: bound %d arguments, handler takes %d", def.Pattern, len(args), want)
	}
	return nil
}
