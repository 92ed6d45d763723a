package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhangbiao2009/primitive-db/pkg/logging"
)

func TestExecuteClosesLogOnFailure(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "db.log")

	err := execute([]string{
		"--data-dir", filepath.Join(dir, "data"),
		"--meta", filepath.Join(dir, "db_meta.json"),
		"--log-file", logPath,
		"run", filepath.Join(dir, "missing.txt"),
	})
	if err == nil || !strings.Contains(err.Error(), "open script") {
		t.Fatalf("execute() error = %v, want open script failure", err)
	}

	if _, err := os.Stat(logPath); err != nil {
		t.Errorf("log file not created: %v", err)
	}

	// Init refuses to run twice unless the previous logger was closed
	if err := logging.Init(logging.Config{Level: logging.LevelInfo}); err != nil {
		t.Errorf("logging still open after failed command: %v", err)
	}
	logging.Close()
}
