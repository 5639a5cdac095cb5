package page

import (
	"errors"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/vinetool/vine/internal/fault"
)

// call records one driver invocation.
type call struct {
	method   string
	selector string
	value    string
}

// fakeDriver is a scriptable Driver for tests.
type fakeDriver struct {
	calls []call

	gotoErr  error
	clickErr error
	fillErr  error
	hoverErr error

	text    map[string]string
	textErr error
	visible map[string]bool

	// waitErrs are popped one per WaitForSelector call.
	waitErrs   []error
	waitStates []*playwright.WaitForSelectorState
	waitOpts   []playwright.PageWaitForSelectorOptions

	loadErr       error
	waitURLErr    error
	screenshotErr error
	screenshots   []playwright.PageScreenshotOptions

	url   string
	title string

	defaultTimeout float64
	closed         bool
}

func (f *fakeDriver) record(method, selector, value string) {
	f.calls = append(f.calls, call{method: method, selector: selector, value: value})
}

func (f *fakeDriver) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	f.record("goto", url, "")
	if f.gotoErr != nil {
		return nil, f.gotoErr
	}
	f.url = url
	return nil, nil
}

func (f *fakeDriver) GoBack(options ...playwright.PageGoBackOptions) (playwright.Response, error) {
	f.record("goBack", "", "")
	return nil, nil
}

func (f *fakeDriver) GoForward(options ...playwright.PageGoForwardOptions) (playwright.Response, error) {
	f.record("goForward", "", "")
	return nil, nil
}

func (f *fakeDriver) Reload(options ...playwright.PageReloadOptions) (playwright.Response, error) {
	f.record("reload", "", "")
	return nil, nil
}

func (f *fakeDriver) Click(selector string, options ...playwright.PageClickOptions) error {
	f.record("click", selector, "")
	return f.clickErr
}

func (f *fakeDriver) Fill(selector string, value string, options ...playwright.PageFillOptions) error {
	f.record("fill", selector, value)
	return f.fillErr
}

func (f *fakeDriver) Hover(selector string, options ...playwright.PageHoverOptions) error {
	f.record("hover", selector, "")
	return f.hoverErr
}

func (f *fakeDriver) TextContent(selector string, options ...playwright.PageTextContentOptions) (string, error) {
	f.record("textContent", selector, "")
	if f.textErr != nil {
		return "", f.textErr
	}
	return f.text[selector], nil
}

func (f *fakeDriver) IsVisible(selector string, options ...playwright.PageIsVisibleOptions) (bool, error) {
	f.record("isVisible", selector, "")
	return f.visible[selector], nil
}

func (f *fakeDriver) Title() (string, error) {
	return f.title, nil
}

func (f *fakeDriver) URL() string {
	return f.url
}

func (f *fakeDriver) WaitForSelector(selector string, options ...playwright.PageWaitForSelectorOptions) (playwright.ElementHandle, error) {
	f.record("waitForSelector", selector, "")
	if len(options) > 0 {
		f.waitStates = append(f.waitStates, options[0].State)
		f.waitOpts = append(f.waitOpts, options[0])
	}
	if len(f.waitErrs) == 0 {
		return nil, nil
	}
	err := f.waitErrs[0]
	f.waitErrs = f.waitErrs[1:]
	return nil, err
}

func (f *fakeDriver) WaitForLoadState(options ...playwright.PageWaitForLoadStateOptions) error {
	f.record("waitForLoadState", "", "")
	return f.loadErr
}

func (f *fakeDriver) WaitForURL(url interface{}, options ...playwright.PageWaitForURLOptions) error {
	f.record("waitForURL", "", "")
	return f.waitURLErr
}

func (f *fakeDriver) WaitForTimeout(timeout float64) {
	f.record("waitForTimeout", "", "")
}

func (f *fakeDriver) Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error) {
	f.record("screenshot", "", "")
	if len(options) > 0 {
		f.screenshots = append(f.screenshots, options[0])
	}
	if f.screenshotErr != nil {
		return nil, f.screenshotErr
	}
	return []byte("png"), nil
}

func (f *fakeDriver) Video() playwright.Video { return nil }

func (f *fakeDriver) SetDefaultTimeout(timeout float64) {
	f.defaultTimeout = timeout
}

func (f *fakeDriver) Close(options ...playwright.PageCloseOptions) error {
	f.closed = true
	return nil
}

func TestNavigate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fd := &fakeDriver{}
		p := New(fd)

		if err := p.Navigate("https://dev.example.com/login"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fd.url != "https://dev.example.com/login" {
			t.Errorf("url = %q, want the navigated URL", fd.url)
		}
	})

	t.Run("failure surfaces as navigation error", func(t *testing.T) {
		fd := &fakeDriver{gotoErr: errors.New("net::ERR_CONNECTION_REFUSED")}
		p := New(fd)

		err := p.Navigate("https://dev.example.com")
		var navErr *fault.NavigationError
		if !errors.As(err, &navErr) {
			t.Fatalf("error = %v, want *fault.NavigationError", err)
		}
		if navErr.URL != "https://dev.example.com" {
			t.Errorf("URL = %q, want the failed URL", navErr.URL)
		}
	})
}

func TestClickWrapsInteractionError(t *testing.T) {
	fd := &fakeDriver{clickErr: errors.New("element is not attached")}
	p := New(fd)

	err := p.Click("#login-button")
	var ie *fault.InteractionError
	if !errors.As(err, &ie) {
		t.Fatalf("error = %v, want *fault.InteractionError", err)
	}
	if ie.Action != "click" || ie.Selector != "#login-button" {
		t.Errorf("got action=%q selector=%q", ie.Action, ie.Selector)
	}
}

func TestVisibleNoMatchIsFalseNotError(t *testing.T) {
	fd := &fakeDriver{visible: map[string]bool{}}
	p := New(fd)

	visible, err := p.Visible(".does-not-exist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if visible {
		t.Error("element matching nothing reported visible")
	}
}

func TestWaitFor(t *testing.T) {
	tests := []struct {
		name      string
		state     string
		wantState playwright.WaitForSelectorState
	}{
		{"visible", StateVisible, *playwright.WaitForSelectorStateVisible},
		{"hidden", StateHidden, *playwright.WaitForSelectorStateHidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fd := &fakeDriver{}
			p := New(fd)

			if err := p.WaitFor(".spinner", tt.state, 5*time.Second); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(fd.waitStates) != 1 || *fd.waitStates[0] != tt.wantState {
				t.Fatalf("wait state = %v, want %v", fd.waitStates, tt.wantState)
			}
			if got := *fd.waitOpts[0].Timeout; got != 5000 {
				t.Errorf("timeout = %v ms, want 5000", got)
			}
		})
	}

	t.Run("timeout is a failure", func(t *testing.T) {
		fd := &fakeDriver{waitErrs: []error{errors.New("timeout 5000ms exceeded")}}
		p := New(fd)

		err := p.WaitFor(".spinner", StateVisible, 5*time.Second)
		var ie *fault.InteractionError
		if !errors.As(err, &ie) {
			t.Fatalf("error = %v, want *fault.InteractionError", err)
		}
		if ie.Timeout != 5*time.Second {
			t.Errorf("timeout = %v, want 5s", ie.Timeout)
		}
	})
}

func TestScreenshotIsFullPage(t *testing.T) {
	fd := &fakeDriver{}
	p := New(fd)

	if err := p.Screenshot("screenshots/My_scenario.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fd.screenshots) != 1 {
		t.Fatalf("screenshot calls = %d, want 1", len(fd.screenshots))
	}
	opts := fd.screenshots[0]
	if opts.Path == nil || *opts.Path != "screenshots/My_scenario.png" {
		t.Errorf("path = %v, want the given path", opts.Path)
	}
	if opts.FullPage == nil || !*opts.FullPage {
		t.Error("screenshot not requested as full page")
	}
}
