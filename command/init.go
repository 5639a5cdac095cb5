package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"
)

// Styles for interactive CLI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#95D96C")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95D96C")).
			Bold(true)

	unselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4")).
			Bold(true)
)

var initCommand = &cli.Command{
	Name:  "init",
	Usage: "Initialize a new vine project",
	Description: `Create the project skeleton interactively: an env file with browser and
application settings, a vine.yml suite file and an example feature.`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"f"},
			Usage:   "overwrite existing files",
		},
	},
	Action: runInit,
}

type initStep int

const (
	stepEnvironment initStep = iota
	stepBrowser
	stepHeadless
	stepBaseURL
	stepConfirm
)

var environments = []struct {
	name string
	desc string
}{
	{"dev", "Development environment"},
	{"staging", "Staging environment"},
	{"prod", "Production environment"},
}

var browsers = []struct {
	name string
	desc string
}{
	{"chromium", "Chromium (default, best supported)"},
	{"firefox", "Firefox"},
	{"webkit", "WebKit (Safari engine)"},
}

type initModel struct {
	step   initStep
	cursor int

	environment string
	browser     string
	headless    bool

	// Text input state
	textInput string

	done      bool
	cancelled bool
}

func initialInitModel() initModel {
	return initModel{step: stepEnvironment}
}

func (m initModel) Init() tea.Cmd {
	return nil
}

func (m initModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.step == stepBaseURL {
			return m.handleTextInput(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.cancelled = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < m.getMaxCursor() {
				m.cursor++
			}

		case "enter":
			return m.handleEnter()
		}
	}

	return m, nil
}

func (m initModel) handleTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		m.step = stepConfirm
		m.cursor = 0
		return m, nil
	case "backspace":
		if len(m.textInput) > 0 {
			m.textInput = m.textInput[:len(m.textInput)-1]
		}
	case "esc":
		m.step = stepHeadless
		m.cursor = 0
	default:
		if len(msg.String()) == 1 {
			m.textInput += msg.String()
		}
	}
	return m, nil
}

func (m initModel) getMaxCursor() int {
	switch m.step {
	case stepEnvironment:
		return len(environments) - 1
	case stepBrowser:
		return len(browsers) - 1
	case stepHeadless:
		return 1 // Headed, Headless
	case stepConfirm:
		return 1 // Create, Cancel
	default:
		return 0
	}
}

func (m initModel) handleEnter() (tea.Model, tea.Cmd) {
	switch m.step {
	case stepEnvironment:
		m.environment = environments[m.cursor].name
		m.step = stepBrowser
		m.cursor = 0

	case stepBrowser:
		m.browser = browsers[m.cursor].name
		m.step = stepHeadless
		m.cursor = 0

	case stepHeadless:
		m.headless = m.cursor == 1
		m.step = stepBaseURL
		m.textInput = defaultBaseURL(m.environment)
		m.cursor = 0

	case stepConfirm:
		if m.cursor == 0 {
			m.done = true
		} else {
			m.cancelled = true
		}
		return m, tea.Quit
	}

	return m, nil
}

func defaultBaseURL(env string) string {
	switch env {
	case "staging":
		return "https://staging.example.com"
	case "prod":
		return "https://example.com"
	default:
		return "https://dev.example.com"
	}
}

func (m initModel) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Vine Init"))
	s.WriteString("\n")

	switch m.step {
	case stepEnvironment:
		s.WriteString(subtitleStyle.Render("Which environment do you test against?"))
		s.WriteString("\n\n")
		m.renderChoices(&s, len(environments), func(i int) (string, string) {
			return environments[i].name, environments[i].desc
		})
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("ENTER select"))

	case stepBrowser:
		s.WriteString(subtitleStyle.Render("Which browser should run the tests?"))
		s.WriteString("\n\n")
		m.renderChoices(&s, len(browsers), func(i int) (string, string) {
			return browsers[i].name, browsers[i].desc
		})
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("ENTER select"))

	case stepHeadless:
		s.WriteString(subtitleStyle.Render("Run with a visible browser window?"))
		s.WriteString("\n\n")
		options := []struct {
			name string
			desc string
		}{
			{"Headed", "Show the browser window (useful while writing tests)"},
			{"Headless", "No window (faster, required on most CI)"},
		}
		m.renderChoices(&s, len(options), func(i int) (string, string) {
			return options[i].name, options[i].desc
		})
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("ENTER select"))

	case stepBaseURL:
		s.WriteString(subtitleStyle.Render("Base URL of the application under test:"))
		s.WriteString("\n\n")
		s.WriteString("> ")
		s.WriteString(m.textInput)
		s.WriteString("█")
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("ENTER confirm • ESC back"))

	case stepConfirm:
		s.WriteString(subtitleStyle.Render("Ready to create project files"))
		s.WriteString("\n\n")

		s.WriteString(fmt.Sprintf("  Environment: %s\n", m.environment))
		s.WriteString(fmt.Sprintf("  Browser:     %s\n", m.browser))
		s.WriteString(fmt.Sprintf("  Headless:    %t\n", m.headless))
		s.WriteString(fmt.Sprintf("  Base URL:    %s\n", m.textInput))
		s.WriteString("\n")

		options := []string{"Create files", "Cancel"}
		for i, opt := range options {
			cursor := "  "
			if i == m.cursor {
				cursor = "> "
			}
			style := unselectedStyle
			if i == m.cursor {
				style = selectedStyle
			}
			s.WriteString(fmt.Sprintf("%s%s\n", cursor, style.Render(opt)))
		}
	}

	return s.String()
}

func (m initModel) renderChoices(s *strings.Builder, n int, item func(i int) (name, desc string)) {
	for i := 0; i < n; i++ {
		name, desc := item(i)

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		style := unselectedStyle
		if i == m.cursor {
			style = selectedStyle
		}

		s.WriteString(fmt.Sprintf("%s%s", cursor, style.Render(name)))
		if i == m.cursor {
			s.WriteString(helpStyle.Render("  " + desc))
		}
		s.WriteString("\n")
	}
}

func runInit(c *cli.Context) error {
	if _, err := os.Stat(".env"); err == nil && !c.Bool("force") {
		return fmt.Errorf(".env already exists (use --force to overwrite)")
	}

	m := initialInitModel()
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running init: %w", err)
	}

	finalModel := result.(initModel)
	if finalModel.cancelled || !finalModel.done {
		fmt.Println("\nCancelled.")
		return nil
	}

	if err := os.WriteFile(".env", []byte(generateEnvFile(finalModel)), 0o644); err != nil {
		return fmt.Errorf("creating .env: %w", err)
	}
	if err := os.WriteFile("vine.yml", []byte(generateSuiteFile()), 0o644); err != nil {
		return fmt.Errorf("creating vine.yml: %w", err)
	}

	if err := os.MkdirAll("features", 0o755); err != nil {
		return fmt.Errorf("creating features directory: %w", err)
	}
	examplePath := filepath.Join("features", "example.feature")
	if _, err := os.Stat(examplePath); os.IsNotExist(err) || c.Bool("force") {
		if err := os.WriteFile(examplePath, []byte(exampleFeature), 0o644); err != nil {
			return fmt.Errorf("creating example feature: %w", err)
		}
	}

	if err := os.MkdirAll("config", 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	dataPath := filepath.Join("config", "test_data.json")
	if _, err := os.Stat(dataPath); os.IsNotExist(err) || c.Bool("force") {
		if err := os.WriteFile(dataPath, []byte(exampleTestData), 0o644); err != nil {
			return fmt.Errorf("creating test data: %w", err)
		}
	}

	fmt.Println("\n" + successStyle.Render("✓ Created .env"))
	fmt.Println(successStyle.Render("✓ Created vine.yml"))
	fmt.Println(successStyle.Render("✓ Created features/example.feature"))
	fmt.Println(successStyle.Render("✓ Created config/test_data.json"))
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Review .env and point BASE_URL at your application")
	fmt.Println("  2. Write your feature files")
	fmt.Println("  3. Run " + selectedStyle.Render("vine run"))
	fmt.Println()

	return nil
}

func generateEnvFile(m initModel) string {
	var s strings.Builder

	s.WriteString("# Test environment\n")
	s.WriteString(fmt.Sprintf("TEST_ENV=%s\n", m.environment))
	s.WriteString(fmt.Sprintf("BASE_URL=%s\n", m.textInput))
	s.WriteString("\n# Browser\n")
	s.WriteString(fmt.Sprintf("BROWSER=%s\n", m.browser))
	s.WriteString(fmt.Sprintf("HEADLESS=%t\n", m.headless))
	s.WriteString("TIMEOUT=30000\n")
	s.WriteString("SLOW_MO=0\n")
	s.WriteString("\n# Artifacts\n")
	s.WriteString("SCREENSHOT=only-on-failure\n")
	s.WriteString("VIDEO=off\n")
	s.WriteString("\n# Credentials\n")
	s.WriteString("TEST_USERNAME=testuser\n")
	s.WriteString("TEST_PASSWORD=testpass\n")
	s.WriteString("ADMIN_USERNAME=admin\n")
	s.WriteString("ADMIN_PASSWORD=adminpass\n")
	s.WriteString("\n# Optional backends for api/database steps\n")
	s.WriteString("#API_BASE_URL=\n")
	s.WriteString("#TEST_DB_URL=\n")

	return s.String()
}

func generateSuiteFile() string {
	var s strings.Builder

	s.WriteString("paths:\n")
	s.WriteString("  - features\n")
	s.WriteString("format: pretty\n")
	s.WriteString("concurrency: 1\n")
	s.WriteString("fail_fast: false\n")
	s.WriteString("#tags: \"@smoke\"\n")
	s.WriteString("#scenario: \"valid credentials\"\n")

	return s.String()
}

const exampleFeature = `Feature: Example login
  As a user of the application
  I want to sign in
  So that I can reach my dashboard

  Scenario: Login with valid credentials
    Given I am on the "login" page
    When I login with valid credentials
    Then I should be logged in

  Scenario: Login with invalid credentials
    Given I am on the "login" page
    When I enter username "baduser" and password "badpass"
    And I click the login button
    Then I should see an error message "Invalid credentials"
`

const exampleTestData = `{
  "users": {
    "standard": {"username": "testuser", "password": "testpass"},
    "admin": {"username": "admin", "password": "adminpass"}
  },
  "urls": {},
  "timeouts": {}
}
`
