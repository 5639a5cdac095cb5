package step

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/vinetool/vine/internal/fault"
)

// API provides steps that hit the application's HTTP API directly, for
// seeding state or checking side effects the browser cannot see. Registered
// only when API_BASE_URL is configured; each scenario gets its own instance,
// so headers and the captured response never leak between scenarios.
type API struct {
	sc     *Scenario
	client *http.Client

	requestHeaders map[string]string

	lastStatus int
	lastBody   []byte
}

// NewAPI creates the API step handler.
func NewAPI(sc *Scenario) *API {
	return &API{
		sc:             sc,
		client:         &http.Client{Timeout: 30 * time.Second},
		requestHeaders: make(map[string]string),
	}
}

// Steps returns the API step definitions.
func (h *API) Steps() Category {
	return Category{
		Name:        "API",
		Description: "Steps for direct HTTP calls against the application API",
		Steps: []Def{
			{
				Group:       "Request",
				Pattern:     `^the api request header "([^"]*)" is "([^"]*)"$`,
				Description: "Set a request header",
				Example:     `the api request header "Content-Type" is "application/json"`,
				Handler:     h.setHeader,
			},
			{
				Group:       "Request",
				Pattern:     `^I send a "([^"]*)" request to "([^"]*)"$`,
				Description: "Send an HTTP request to an API path",
				Example:     `I send a "GET" request to "/api/users"`,
				Handler:     h.sendRequest,
			},
			{
				Group:       "Request",
				Pattern:     `^I send a "([^"]*)" request to "([^"]*)" with body:$`,
				Description: "Send an HTTP request with a docstring body",
				Example:     `I send a "POST" request to "/api/users" with body:`,
				Handler:     h.sendRequestWithBody,
			},
			{
				Group:       "Response",
				Pattern:     `^the api response status should be (\d+)$`,
				Description: "Assert the response status code",
				Example:     `the api response status should be 200`,
				Handler:     h.statusShouldBe,
			},
			{
				Group:       "Response",
				Pattern:     `^the api response body should contain "([^"]*)"$`,
				Description: "Assert the response body contains a substring",
				Example:     `the api response body should contain "created"`,
				Handler:     h.bodyShouldContain,
			},
		},
	}
}

func (h *API) setHeader(key, value string) error {
	h.requestHeaders[key] = value
	return nil
}

func (h *API) sendRequest(method, path string) error {
	return h.doRequest(method, path, nil)
}

func (h *API) sendRequestWithBody(method, path string, doc *godog.DocString) error {
	return h.doRequest(method, path, []byte(doc.Content))
}

func (h *API) doRequest(method, path string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(strings.ToUpper(method), h.sc.Config.APIBaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for k, v := range h.requestHeaders {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	h.lastStatus = resp.StatusCode
	h.lastBody, _ = io.ReadAll(resp.Body)
	h.requestHeaders = make(map[string]string)
	return nil
}

func (h *API) statusShouldBe(expected int) error {
	if h.lastStatus == 0 {
		return fmt.Errorf("no API response received")
	}
	if h.lastStatus != expected {
		return &fault.AssertionError{
			Description: "api response status",
			Expected:    strconv.Itoa(expected),
			Actual:      fmt.Sprintf("%d (body: %s)", h.lastStatus, string(h.lastBody)),
		}
	}
	return nil
}

func (h *API) bodyShouldContain(expected string) error {
	if h.lastStatus == 0 {
		return fmt.Errorf("no API response received")
	}
	if !strings.Contains(string(h.lastBody), expected) {
		return &fault.AssertionError{
			Description: "api response body",
			Expected:    expected,
			Actual:      string(h.lastBody),
		}
	}
	return nil
}
