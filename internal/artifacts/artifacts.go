// Package artifacts manages the on-disk output of a test run: the per-run
// directory, screenshots and the machine-readable event log.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Run holds information about the current test run's output location.
type Run struct {
	ID        string    // Short unique identifier (8 chars)
	Timestamp time.Time // When the run started
	Dir       string    // Full path to the run directory
}

// NewRun creates a run context and initializes its directory under
// reports/runs, named 2025-01-15_143052_a1b2c3d4.
func NewRun(root string) (*Run, error) {
	now := time.Now()
	shortID := uuid.New().String()[:8]

	dirName := fmt.Sprintf("%s_%s", now.Format("2006-01-02_150405"), shortID)
	runDir := filepath.Join(root, "reports", "runs", dirName)

	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}

	return &Run{
		ID:        shortID,
		Timestamp: now,
		Dir:       runDir,
	}, nil
}

// LogPath returns the full path for a log file inside the run directory.
func (r *Run) LogPath(name string) string {
	return filepath.Join(r.Dir, name+".log")
}

// CreateLogFile creates a log file and returns the file handle.
func (r *Run) CreateLogFile(name string) (*os.File, error) {
	return os.Create(r.LogPath(name))
}

// WriteLog writes content to a log file in the run directory.
func (r *Run) WriteLog(name string, content []byte) error {
	return os.WriteFile(r.LogPath(name), content, 0o644)
}

// ScreenshotPath maps a scenario name to its screenshot file under the
// screenshots directory. Spaces become underscores so the file name stays
// shell-friendly: "Login with valid credentials" becomes
// "Login_with_valid_credentials.png".
func ScreenshotPath(root, scenario string) string {
	return filepath.Join(root, "screenshots", ScreenshotName(scenario))
}

// ScreenshotName returns the file name for a scenario's screenshot.
func ScreenshotName(scenario string) string {
	return strings.ReplaceAll(scenario, " ", "_") + ".png"
}

// RunInfo describes a stored run directory.
type RunInfo struct {
	Name      string    `json:"name"`
	Dir       string    `json:"dir"`
	Timestamp time.Time `json:"timestamp"`
	Logs      []LogFile `json:"logs"`
}

// LogFile describes one log file inside a run directory.
type LogFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// ListRuns returns all stored runs, newest first.
func ListRuns(root string) ([]RunInfo, error) {
	runsDir := filepath.Join(root, "reports", "runs")

	entries, err := os.ReadDir(runsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunInfo{}, nil
		}
		return nil, err
	}

	var runs []RunInfo
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if !entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		runDir := filepath.Join(runsDir, entry.Name())
		logs, _ := listLogs(runDir)

		runs = append(runs, RunInfo{
			Name:      entry.Name(),
			Dir:       runDir,
			Timestamp: info.ModTime(),
			Logs:      logs,
		})
	}

	return runs, nil
}

func listLogs(runDir string) ([]LogFile, error) {
	entries, err := os.ReadDir(runDir)
	if err != nil {
		return nil, err
	}

	var logs []LogFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		logs = append(logs, LogFile{
			Name: strings.TrimSuffix(entry.Name(), ".log"),
			Path: filepath.Join(runDir, entry.Name()),
			Size: info.Size(),
		})
	}

	return logs, nil
}
