package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnvVar names the environment variable that enables logging at startup.
const EnvVar = "WATERFALL_DEBUG"

// defaultPath is used when Init is given an empty path.
const defaultPath = "waterfall-debug.log"

var (
	mu      sync.Mutex
	out     *os.File
	envRead bool
)

// Init sends debug output to path, replacing any log opened earlier.
// The environment variable is ignored from then on.
func Init(path string) error {
	f, err := openLog(path)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	envRead = true
	if out != nil {
		_ = out.Close()
	}
	out = f
	return nil
}

func openLog(path string) (*os.File, error) {
	if path == "" {
		path = defaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("debug: create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("debug: open log: %w", err)
	}
	return f, nil
}

// openFromEnvLocked opens the file named by EnvVar on first use. Caller holds mu.
func openFromEnvLocked() {
	if envRead {
		return
	}
	envRead = true

	path := os.Getenv(EnvVar)
	if path == "" {
		return
	}
	f, err := openLog(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	out = f
}

// Close closes the debug log. Later calls to Log are dropped.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if out == nil {
		return nil
	}
	err := out.Close()
	out = nil
	return err
}

// Log appends a timestamped line to the debug log, if one is open.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	openFromEnvLocked()
	if out == nil {
		return
	}
	fmt.Fprintf(out, "%s %s\n", time.Now().Format("15:04:05.000"), fmt.Sprintf(format, args...))
}
