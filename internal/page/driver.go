package page

import "github.com/playwright-community/playwright-go"

// Driver is the subset of playwright.Page the framework drives. Page objects
// and step handlers depend on this interface so they can be exercised against
// a fake in tests; playwright.Page satisfies it as-is.
type Driver interface {
	Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error)
	GoBack(options ...playwright.PageGoBackOptions) (playwright.Response, error)
	GoForward(options ...playwright.PageGoForwardOptions) (playwright.Response, error)
	Reload(options ...playwright.PageReloadOptions) (playwright.Response, error)
	Click(selector string, options ...playwright.PageClickOptions) error
	Fill(selector string, value string, options ...playwright.PageFillOptions) error
	Hover(selector string, options ...playwright.PageHoverOptions) error
	TextContent(selector string, options ...playwright.PageTextContentOptions) (string, error)
	IsVisible(selector string, options ...playwright.PageIsVisibleOptions) (bool, error)
	Title() (string, error)
	URL() string
	WaitForSelector(selector string, options ...playwright.PageWaitForSelectorOptions) (playwright.ElementHandle, error)
	WaitForLoadState(options ...playwright.PageWaitForLoadStateOptions) error
	WaitForURL(url interface{}, options ...playwright.PageWaitForURLOptions) error
	WaitForTimeout(timeout float64)
	Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error)
	Video() playwright.Video
	SetDefaultTimeout(timeout float64)
	Close(options ...playwright.PageCloseOptions) error
}
