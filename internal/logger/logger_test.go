package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Dir: dir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(dir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if Logger.GetLevel() != log.WarnLevel {
		t.Errorf("default level = %v, want warn", Logger.GetLevel())
	}

	Warn("Test warning message")
	if _, err := os.Stat(filepath.Join(logDir, "habitual.log")); err != nil {
		t.Errorf("expected log file to be written: %v", err)
	}
}

func TestInitLevels(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    log.Level
		wantErr bool
	}{
		{name: "info", cfg: Config{Level: "info"}, want: log.InfoLevel},
		{name: "debug flag overrides level", cfg: Config{Level: "error", Debug: true}, want: log.DebugLevel},
		{name: "invalid level", cfg: Config{Level: "chatty"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Dir = t.TempDir()
			err := Init(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && Logger.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", Logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	Logger = New(&buf, log.InfoLevel, false)
	t.Cleanup(func() { Logger = nil })

	Debug("hidden")
	Info("request handled", "status", 200)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message should be filtered: %q", out)
	}
	if !strings.Contains(out, "request handled") || !strings.Contains(out, "status=200") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(out, "habitual") {
		t.Errorf("expected prefix in output %q", out)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
