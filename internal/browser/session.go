// Package browser manages the browser process for a test run: one process
// per run, created on first use, torn down exactly once at run end.
package browser

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/vinetool/vine/internal/config"
	"github.com/vinetool/vine/internal/fault"
	"github.com/vinetool/vine/internal/page"
)

// Process is a running browser process handle. It hands out page handles and
// owns their lifetime until Close.
type Process interface {
	NewPage() (page.Driver, error)
	Close() error
}

// LaunchFunc starts a browser process for the given configuration.
type LaunchFunc func(cfg *config.Config) (Process, error)

// Session owns at most one browser process per run. Acquire is single-flight:
// concurrent callers observe the same process. CloseAll is idempotent and a
// no-op when nothing was ever acquired.
type Session struct {
	cfg    *config.Config
	launch LaunchFunc

	mu    sync.Mutex
	proc  Process
	pages []page.Driver
}

// New creates a session manager backed by playwright.
func New(cfg *config.Config) *Session {
	return newSession(cfg, launchPlaywright)
}

func newSession(cfg *config.Config, launch LaunchFunc) *Session {
	return &Session{cfg: cfg, launch: launch}
}

// Acquire returns the run's browser process, launching it on first call.
// A launch failure is fatal for the run.
func (s *Session) Acquire() (Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquireLocked()
}

func (s *Session) acquireLocked() (Process, error) {
	if s.proc != nil {
		return s.proc, nil
	}

	log.Debug().
		Str("browser", s.cfg.Browser).
		Bool("headless", s.cfg.Headless).
		Msg("launching browser")

	proc, err := s.launch(s.cfg)
	if err != nil {
		return nil, &fault.SessionError{Browser: s.cfg.Browser, Err: err}
	}
	s.proc = proc
	return proc, nil
}

// OpenPage opens a new tab bound to the session's browser process and applies
// the configured default timeout to it.
func (s *Session) OpenPage() (page.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proc, err := s.acquireLocked()
	if err != nil {
		return nil, err
	}

	d, err := proc.NewPage()
	if err != nil {
		return nil, &fault.SessionError{Browser: s.cfg.Browser, Err: fmt.Errorf("opening page: %w", err)}
	}
	d.SetDefaultTimeout(float64(s.cfg.Timeout.Milliseconds()))

	s.pages = append(s.pages, d)
	return d, nil
}

// ClosePage closes one page handle and forgets it.
func (s *Session) ClosePage(d page.Driver) error {
	s.mu.Lock()
	for i, p := range s.pages {
		if p == d {
			s.pages = append(s.pages[:i], s.pages[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return d.Close()
}

// CloseAll closes every outstanding page, then the browser process, then the
// driver. Safe to call any number of times, including before Acquire.
func (s *Session) CloseAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.proc == nil {
		return nil
	}

	var errs []error
	for _, p := range s.pages {
		if err := p.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing page: %w", err))
		}
	}
	s.pages = nil

	if err := s.proc.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing browser: %w", err))
	}
	s.proc = nil

	if len(errs) > 0 {
		return fmt.Errorf("session teardown: %v", errs)
	}
	return nil
}
