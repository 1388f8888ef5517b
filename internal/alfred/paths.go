package alfred

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnvWorkflowData is set by the launcher to the workflow's writable data
// directory.
const EnvWorkflowData = "alfred_workflow_data"

// DatabaseFile is the cache file name inside a workflow's data directory.
const DatabaseFile = "db.sqlite3"

// DataDir returns the directory a workflow keeps its cache and settings in.
// The launcher-provided directory wins; otherwise ~/.alfred/workflows/<name>.
// name must be unique across workflows.
func DataDir(name string) (string, error) {
	if name == "" {
		return "", errors.New("workflow name is empty")
	}
	if v := os.Getenv(EnvWorkflowData); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("impossible to get your home dir: %w", err)
	}
	return filepath.Join(home, ".alfred", "workflows", name), nil
}

// DatabasePath returns the cache database path for a workflow, creating the
// parent directory if it does not exist yet.
func DatabasePath(name string) (string, error) {
	dir, err := DataDir(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create workflow dir %s: %w", dir, err)
	}
	return filepath.Join(dir, DatabaseFile), nil
}
