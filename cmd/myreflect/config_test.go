package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	mysqldialect "github.com/Limetric/mysqldialect"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
[source]
dsn = "user:pass@tcp(localhost:3306)/appdb"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig unexpected error: %v", err)
	}
	if cfg.Source.Quoting != "auto" {
		t.Errorf("Quoting = %q, want auto", cfg.Source.Quoting)
	}
	if cfg.Output.Format != "ddl" {
		t.Errorf("Format = %q, want ddl", cfg.Output.Format)
	}
	if cfg.quotingMode() != mysqldialect.QuoteAuto {
		t.Errorf("quotingMode = %v, want QuoteAuto", cfg.quotingMode())
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[source]
dsn = "user:pass@tcp(localhost:3306)/appdb"
bogus = true
`)
	_, err := loadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "unknown config keys") {
		t.Fatalf("loadConfig error = %v, want unknown key rejection", err)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing dsn", "[source]\ncharset = \"utf8\"\n", "source.dsn is required"},
		{"bad quoting", "[source]\ndsn = \"u:p@tcp(h)/db\"\nquoting = \"fancy\"\n", "source.quoting"},
		{"bad format", "[source]\ndsn = \"u:p@tcp(h)/db\"\n[output]\nformat = \"xml\"\n", "output.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("loadConfig error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestQuotingModeMapping(t *testing.T) {
	cfg := &Config{Source: SourceConfig{Quoting: "backtick"}}
	if cfg.quotingMode() != mysqldialect.QuoteBacktick {
		t.Error("backtick should map to QuoteBacktick")
	}
	cfg.Source.Quoting = "ansi"
	if cfg.quotingMode() != mysqldialect.QuoteANSI {
		t.Error("ansi should map to QuoteANSI")
	}
}

func TestDSNHelpers(t *testing.T) {
	dsn, err := dsnWithReadOptions("user:pass@tcp(localhost:3306)/appdb")
	if err != nil {
		t.Fatalf("dsnWithReadOptions unexpected error: %v", err)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("dsn = %q, want parseTime enabled", dsn)
	}

	name, err := dsnDBName("user:pass@tcp(localhost:3306)/appdb")
	if err != nil {
		t.Fatalf("dsnDBName unexpected error: %v", err)
	}
	if name != "appdb" {
		t.Errorf("dsnDBName = %q, want appdb", name)
	}

	if _, err := dsnDBName("user:pass@tcp(localhost:3306)/"); err == nil {
		t.Fatal("dsnDBName without database expected error")
	}
}
