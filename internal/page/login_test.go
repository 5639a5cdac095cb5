package page

import (
	"errors"
	"testing"
)

func TestLoginFillsThenSubmits(t *testing.T) {
	fd := &fakeDriver{}
	l := NewLogin(fd)

	if err := l.Login("alice", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []call{
		{method: "fill", selector: LoginUsernameInput, value: "alice"},
		{method: "fill", selector: LoginPasswordInput, value: "secret"},
		{method: "click", selector: LoginButton},
	}
	if len(fd.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", fd.calls, want)
	}
	for i, c := range want {
		if fd.calls[i] != c {
			t.Errorf("call %d = %v, want %v", i, fd.calls[i], c)
		}
	}
}

func TestEnterCredentialsDoesNotSubmit(t *testing.T) {
	fd := &fakeDriver{}
	l := NewLogin(fd)

	if err := l.EnterCredentials("alice", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []call{
		{method: "fill", selector: LoginUsernameInput, value: "alice"},
		{method: "fill", selector: LoginPasswordInput, value: "secret"},
	}
	if len(fd.calls) != len(want) {
		t.Fatalf("calls = %v, want fills only", fd.calls)
	}
	for i, c := range want {
		if fd.calls[i] != c {
			t.Errorf("call %d = %v, want %v", i, fd.calls[i], c)
		}
	}
}

func TestLoginStopsOnFillFailure(t *testing.T) {
	fd := &fakeDriver{fillErr: errors.New("detached")}
	l := NewLogin(fd)

	if err := l.Login("alice", "secret"); err == nil {
		t.Fatal("expected error")
	}
	for _, c := range fd.calls {
		if c.method == "click" {
			t.Error("login button clicked after fill failed")
		}
	}
}

func TestErrorMessage(t *testing.T) {
	fd := &fakeDriver{text: map[string]string{LoginErrorMessage: "Invalid credentials"}}
	l := NewLogin(fd)

	msg, err := l.ErrorMessage()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Invalid credentials" {
		t.Errorf("message = %q", msg)
	}
}

func TestFormVisible(t *testing.T) {
	fd := &fakeDriver{visible: map[string]bool{LoginUsernameInput: true}}
	l := NewLogin(fd)

	visible, err := l.FormVisible()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !visible {
		t.Error("form not reported visible")
	}
}
