package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesRotatingLogFile(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Info("plan saved", "id", "plan-123")
	Debug("catalog resolved", "technology", "React")

	data, err := os.ReadFile(filepath.Join(configDir, "logs", "quickhire.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "plan saved") || !strings.Contains(content, "plan-123") {
		t.Errorf("log file missing info entry, got %q", content)
	}
	if strings.Contains(content, "catalog resolved") {
		t.Errorf("debug entry written outside debug mode: %q", content)
	}
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() in debug mode failed: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	Debug("catalog resolved", "technology", "React")

	data, err := os.ReadFile(filepath.Join(configDir, "logs", "quickhire.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "catalog resolved") {
		t.Errorf("debug entry missing in debug mode, got %q", string(data))
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// must not panic
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}
