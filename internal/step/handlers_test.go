package step

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/vinetool/vine/internal/config"
	"github.com/vinetool/vine/internal/fault"
	"github.com/vinetool/vine/internal/fixture"
)

// call records one driver invocation.
type call struct {
	method   string
	selector string
	value    string
}

// fakeDriver is a scriptable page.Driver for handler tests.
type fakeDriver struct {
	calls []call

	clickErr error
	fillErr  error

	text    map[string]string
	visible map[string]bool

	waitURLErr error

	url   string
	title string
}

func (f *fakeDriver) record(method, selector, value string) {
	f.calls = append(f.calls, call{method: method, selector: selector, value: value})
}

func (f *fakeDriver) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	f.record("goto", url, "")
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
	return nil
}

func (f *fakeDriver) TextContent(selector string, options ...playwright.PageTextContentOptions) (string, error) {
	f.record("textContent", selector, "")
	return f.text[selector], nil
}

func (f *fakeDriver) IsVisible(selector string, options ...playwright.PageIsVisibleOptions) (bool, error) {
	f.record("isVisible", selector, "")
	return f.visible[selector], nil
}

func (f *fakeDriver) Title() (string, error) { return f.title, nil }
func (f *fakeDriver) URL() string            { return f.url }

func (f *fakeDriver) WaitForSelector(selector string, options ...playwright.PageWaitForSelectorOptions) (playwright.ElementHandle, error) {
	f.record("waitForSelector", selector, "")
	return nil, nil
}

func (f *fakeDriver) WaitForLoadState(options ...playwright.PageWaitForLoadStateOptions) error {
	f.record("waitForLoadState", "", "")
	return nil
}

func (f *fakeDriver) WaitForURL(url interface{}, options ...playwright.PageWaitForURLOptions) error {
	f.record("waitForURL", "", "")
	return f.waitURLErr
}

func (f *fakeDriver) WaitForTimeout(timeout float64) { f.record("waitForTimeout", "", "") }

func (f *fakeDriver) Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error) {
	f.record("screenshot", "", "")
	return []byte("png"), nil
}

func (f *fakeDriver) Video() playwright.Video { return nil }

func (f *fakeDriver) SetDefaultTimeout(timeout float64) {}

func (f *fakeDriver) Close(options ...playwright.PageCloseOptions) error { return nil }

func newTestConfig() *config.Config {
	return &config.Config{
		Environment:   "dev",
		BaseURL:       "https://dev.example.com",
		Browser:       config.BrowserChromium,
		Timeout:       30 * time.Second,
		Username:      "testuser",
		Password:      "testpass",
		AdminUsername: "admin",
		AdminPassword: "adminpass",
	}
}

func newTestUnit(t *testing.T) (*Unit, *fakeDriver) {
	t.Helper()

	data := &fixture.Data{
		Users: map[string]fixture.Credentials{
			"valid_user": {Username: "alice", Password: "wonderland"},
		},
		URLs: map[string]string{
			"reports": "https://reports.example.com/home",
		},
	}

	u := NewBundle(newTestConfig(), data).NewUnit()
	fd := &fakeDriver{url: "https://dev.example.com/login"}
	u.Scenario.Bind("Test scenario", fd)
	return u, fd
}

func TestStepsRequireAnOpenPage(t *testing.T) {
	u := NewBundle(newTestConfig(), &fixture.Data{}).NewUnit()

	err := u.Registry.Dispatch(`I am on the "login" page`)
	if err == nil || !strings.Contains(err.Error(), "no page is open") {
		t.Fatalf("error = %v, want a no-page error", err)
	}
}

func TestOnPageNavigatesAndWaits(t *testing.T) {
	u, fd := newTestUnit(t)

	if err := u.Registry.Dispatch(`I am on the "login" page`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fd.calls[0] != (call{method: "goto", selector: "https://dev.example.com/login"}) {
		t.Errorf("first call = %v, want goto to the login URL", fd.calls[0])
	}
	if fd.calls[1].method != "waitForLoadState" {
		t.Errorf("second call = %v, want waitForLoadState", fd.calls[1])
	}
}

func TestPageURLFixturePrecedence(t *testing.T) {
	u, _ := newTestUnit(t)

	tests := []struct {
		name string
		want string
	}{
		{"home", "https://dev.example.com"},
		{"dashboard", "https://dev.example.com/dashboard"},
		{"reports", "https://reports.example.com/home"},
	}

	for _, tt := range tests {
		if got := u.Scenario.PageURL(tt.name); got != tt.want {
			t.Errorf("PageURL(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLoginWithDefaultCredentials(t *testing.T) {
	u, fd := newTestUnit(t)

	if err := u.Registry.Dispatch(`I log in as the default user`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []call{
		{method: "fill", selector: "#username", value: "testuser"},
		{method: "fill", selector: "#password", value: "testpass"},
		{method: "click", selector: "#login-button"},
	}
	for i, c := range want {
		if fd.calls[i] != c {
			t.Errorf("call %d = %v, want %v", i, fd.calls[i], c)
		}
	}
}

func TestLoginWithNamedCredentials(t *testing.T) {
	u, fd := newTestUnit(t)

	if err := u.Registry.Dispatch(`I log in as "valid_user"`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fd.calls[0].value != "alice" || fd.calls[1].value != "wonderland" {
		t.Errorf("filled credentials = %v", fd.calls[:2])
	}

	err := u.Registry.Dispatch(`I log in as "nobody"`)
	if err == nil || !strings.Contains(err.Error(), "no user") {
		t.Fatalf("error = %v, want an unknown-user error", err)
	}
}

func TestErrorMessageAssertionMatchesSubstring(t *testing.T) {
	u, fd := newTestUnit(t)
	fd.text = map[string]string{".error-message": "Error: Invalid credentials!"}

	if err := u.Registry.Dispatch(`I should see an error message "Invalid credentials"`); err != nil {
		t.Fatalf("substring match failed: %v", err)
	}

	err := u.Registry.Dispatch(`I should see an error message "Account locked"`)
	var ae *fault.AssertionError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *fault.AssertionError", err)
	}
	if ae.Expected != "Account locked" || ae.Actual != "Error: Invalid credentials!" {
		t.Errorf("expected/actual = %q/%q", ae.Expected, ae.Actual)
	}
}

func TestURLAssertionsCarryExpectedAndActual(t *testing.T) {
	u, fd := newTestUnit(t)
	fd.url = "https://dev.example.com/home"

	err := u.Registry.Dispatch(`the current URL should contain "/dashboard"`)
	var ae *fault.AssertionError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *fault.AssertionError", err)
	}
	if ae.Expected != "/dashboard" {
		t.Errorf("expected = %q", ae.Expected)
	}
	if ae.Actual != "https://dev.example.com/home" {
		t.Errorf("actual = %q", ae.Actual)
	}
	if !strings.Contains(err.Error(), "expected") || !strings.Contains(err.Error(), "actual") {
		t.Errorf("message %q lacks expected/actual values", err.Error())
	}
}

func TestLoggedInChecksDashboardURL(t *testing.T) {
	u, fd := newTestUnit(t)
	fd.url = "https://dev.example.com/dashboard"

	if err := u.Registry.Dispatch(`I should be successfully logged in`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fd.waitURLErr = errors.New("timeout")
	fd.url = "https://dev.example.com/login"
	err := u.Registry.Dispatch(`I should be successfully logged in`)
	var ae *fault.AssertionError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *fault.AssertionError", err)
	}
}

func TestDataTableAssertion(t *testing.T) {
	u, fd := newTestUnit(t)
	fd.text = map[string]string{".data-table": "Order #1042\nOrder #1043"}

	if err := u.Registry.Dispatch(`the data table should contain "Order #1042"`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := u.Registry.Dispatch(`the data table should contain "Order #9999"`); err == nil {
		t.Fatal("expected assertion failure")
	}
}

func TestInteractionSelectors(t *testing.T) {
	tests := []struct {
		phrase   string
		selector string
	}{
		{`I click on "Submit"`, "text=Submit"},
		{`I click the link "Profile"`, "a:has-text('Profile')"},
		{`I click the button "Load Data"`, "button:has-text('Load Data')"},
		{`I click the element with id "login-button"`, "#login-button"},
		{`I click the element with class "user-menu"`, ".user-menu"},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			u, fd := newTestUnit(t)
			if err := u.Registry.Dispatch(tt.phrase); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			last := fd.calls[len(fd.calls)-1]
			if last.method != "click" || last.selector != tt.selector {
				t.Errorf("call = %v, want click on %q", last, tt.selector)
			}
		})
	}
}

func TestBundleConditionalCategories(t *testing.T) {
	names := func(u *Unit) map[string]bool {
		out := make(map[string]bool)
		for _, c := range u.Registry.Categories() {
			out[c.Name] = true
		}
		return out
	}

	plain := NewBundle(newTestConfig(), &fixture.Data{}).NewUnit()
	got := names(plain)
	if got["API"] || got["Database"] {
		t.Errorf("unconfigured backends registered: %v", got)
	}

	cfg := newTestConfig()
	cfg.APIBaseURL = "https://api.example.com"
	cfg.DatabaseURL = "postgres://localhost/test"
	full := NewBundle(cfg, &fixture.Data{}).NewUnit()
	got = names(full)
	if !got["API"] || !got["Database"] {
		t.Errorf("configured backends missing: %v", got)
	}
}

func TestManualLoginClicksOnce(t *testing.T) {
	u, fd := newTestUnit(t)

	if err := u.Registry.Dispatch(`I enter username "alice" and password "secret"`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := u.Registry.Dispatch(`I click the login button`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []call{
		{method: "fill", selector: "#username", value: "alice"},
		{method: "fill", selector: "#password", value: "secret"},
		{method: "click", selector: "#login-button"},
	}
	if len(fd.calls) != len(want) {
		t.Fatalf("interactions = %d (%v), want exactly %d", len(fd.calls), fd.calls, len(want))
	}
	for i, c := range want {
		if fd.calls[i] != c {
			t.Errorf("call %d = %v, want %v", i, fd.calls[i], c)
		}
	}
}

func TestUnitsIsolateScenarioState(t *testing.T) {
	b := NewBundle(newTestConfig(), &fixture.Data{})

	unitA, unitB := b.NewUnit(), b.NewUnit()
	driverA := &fakeDriver{}
	driverB := &fakeDriver{}
	unitA.Scenario.Bind("Scenario A", driverA)
	unitB.Scenario.Bind("Scenario B", driverB)

	if err := unitA.Registry.Dispatch(`I click on "Submit"`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(driverA.calls) != 1 || driverA.calls[0].method != "click" {
		t.Fatalf("driver A calls = %v, want one click", driverA.calls)
	}
	if len(driverB.calls) != 0 {
		t.Fatalf("driver B calls = %v, want none", driverB.calls)
	}

	unitB.Scenario.Clear()
	if _, err := unitA.Scenario.Driver(); err != nil {
		t.Fatal("clearing one unit detached another unit's page")
	}
}
