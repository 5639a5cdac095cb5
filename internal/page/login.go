package page

// Login page locators.
const (
	LoginUsernameInput = "#username"
	LoginPasswordInput = "#password"
	LoginButton        = "#login-button"
	LoginErrorMessage  = ".error-message"
)

// Login is the page object for the login screen.
type Login struct {
	*Page
}

// NewLogin binds a login page object to a driver.
func NewLogin(d Driver) *Login {
	return &Login{Page: New(d)}
}

// Login fills both credential fields and submits the form.
func (l *Login) Login(username, password string) error {
	if err := l.EnterCredentials(username, password); err != nil {
		return err
	}
	return l.Submit()
}

// EnterCredentials fills both credential fields without submitting.
func (l *Login) EnterCredentials(username, password string) error {
	if err := l.Fill(LoginUsernameInput, username); err != nil {
		return err
	}
	return l.Fill(LoginPasswordInput, password)
}

// Submit clicks the login button without touching the fields.
func (l *Login) Submit() error {
	return l.Click(LoginButton)
}

// ErrorMessage returns the text of the login error banner.
func (l *Login) ErrorMessage() (string, error) {
	return l.Text(LoginErrorMessage)
}

// FormVisible reports whether the login form is on screen.
func (l *Login) FormVisible() (bool, error) {
	return l.Visible(LoginUsernameInput)
}
