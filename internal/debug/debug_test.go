package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLog_WritesAfterInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Close() })

	Log("placed %d items", 3)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "placed 3 items") {
		t.Errorf("log = %q, want it to contain the message", data)
	}
}

func TestLog_NoopAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	Log("dropped")

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "dropped") {
		t.Error("Log() wrote after Close")
	}
}
