// Package fixture loads named test data from a JSON file and generates
// unique values for scenarios that need fresh identifiers.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Credentials is a named username/password pair.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Data is the content of a test data file: named credential sets, named URLs
// and named timeout values (milliseconds).
type Data struct {
	Users    map[string]Credentials `json:"users"`
	URLs     map[string]string      `json:"urls"`
	Timeouts map[string]int         `json:"timeouts"`
}

// Load reads a test data JSON file. A missing file yields empty data so runs
// without fixtures still work.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Data{}, nil
		}
		return nil, fmt.Errorf("reading test data: %w", err)
	}

	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parsing test data %s: %w", path, err)
	}
	return &d, nil
}

// User returns a named credential set.
func (d *Data) User(name string) (Credentials, error) {
	c, ok := d.Users[name]
	if !ok {
		return Credentials{}, fmt.Errorf("no user %q in test data", name)
	}
	return c, nil
}

// URL returns a named URL.
func (d *Data) URL(name string) (string, error) {
	u, ok := d.URLs[name]
	if !ok {
		return "", fmt.Errorf("no url %q in test data", name)
	}
	return u, nil
}

// Timeout returns a named timeout, falling back to the given default.
func (d *Data) Timeout(name string, fallback time.Duration) time.Duration {
	ms, ok := d.Timeouts[name]
	if !ok {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
