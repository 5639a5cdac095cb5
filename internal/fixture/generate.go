package fixture

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const alnum = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Timestamp returns a sortable timestamp string for unique identifiers.
func Timestamp() string {
	return time.Now().Format("20060102_150405")
}

// UniqueEmail returns a test email address that is unique per call.
func UniqueEmail() string {
	return fmt.Sprintf("test_user_%s_%s@example.com", Timestamp(), uuid.New().String()[:8])
}

// UniqueID returns a short unique identifier.
func UniqueID() string {
	return uuid.New().String()[:8]
}

// RandomString returns a random alphanumeric string of length n.
func RandomString(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; fall back to
		// uuid material rather than returning an empty value.
		s := uuid.New().String()
		if n < len(s) {
			return s[:n]
		}
		return s
	}
	for i := range buf {
		buf[i] = alnum[int(buf[i])%len(alnum)]
	}
	return string(buf)
}
