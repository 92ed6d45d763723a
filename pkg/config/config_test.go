package config

import (
	"testing"

	"github.com/zhangbiao2009/primitive-db/pkg/logging"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}

	if cfg.DataDir != "data" || cfg.MetaFile != "db_meta.json" {
		t.Errorf("Default() paths = %q, %q; want data, db_meta.json", cfg.DataDir, cfg.MetaFile)
	}
	if cfg.AssumeYes {
		t.Errorf("Default().AssumeYes = true, want confirmations on")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"debug level", func(c *Config) { c.LogLevel = "DEBUG" }, false},
		{"json format", func(c *Config) { c.LogFormat = "json" }, false},
		{"empty data dir", func(c *Config) { c.DataDir = " " }, true},
		{"empty meta file", func(c *Config) { c.MetaFile = "" }, true},
		{"bad level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogging(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"
	cfg.LogFile = "/tmp/primitive-db.log"

	got := cfg.Logging()
	want := logging.Config{Level: logging.LevelWarn, OutputPath: "/tmp/primitive-db.log", Format: "text"}
	if got != want {
		t.Errorf("Logging() = %+v, want %+v", got, want)
	}
}
