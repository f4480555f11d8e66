package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-sql-driver/mysql"

	"github.com/Limetric/mysqldialect"
)

// Config holds the full TOML-driven reflection configuration.
type Config struct {
	Source  SourceConfig  `toml:"source"`
	Reflect ReflectConfig `toml:"reflect"`
	Output  OutputConfig  `toml:"output"`
}

// SourceConfig identifies the server connection.
type SourceConfig struct {
	DSN string `toml:"dsn"`
	// Charset overrides charset detection on the connection.
	Charset string `toml:"charset"`
	// Quoting is one of auto, backtick, ansi.
	Quoting string `toml:"quoting"`
}

// ReflectConfig selects what to reflect.
type ReflectConfig struct {
	Schema string `toml:"schema"`
	// Tables limits reflection to the named tables; empty reflects all.
	Tables []string `toml:"tables"`
	// Columns limits reflection to the named columns of each table.
	Columns []string `toml:"columns"`
}

type OutputConfig struct {
	// Format is one of ddl, summary.
	Format string `toml:"format"`
	// Collations adds a collation audit to the output.
	Collations bool `toml:"collations"`
}

// loadConfig reads a TOML config file and returns a Config with defaults
// applied.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Config{
		Source: SourceConfig{Quoting: "auto"},
		Output: OutputConfig{Format: "ddl"},
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	if cfg.Source.DSN == "" {
		return nil, fmt.Errorf("source.dsn is required")
	}
	switch cfg.Source.Quoting {
	case "auto", "backtick", "ansi":
	default:
		return nil, fmt.Errorf("source.quoting must be one of: auto, backtick, ansi")
	}
	switch cfg.Output.Format {
	case "ddl", "summary":
	default:
		return nil, fmt.Errorf("output.format must be one of: ddl, summary")
	}

	return &cfg, nil
}

func (c *Config) quotingMode() mysqldialect.QuotingMode {
	switch c.Source.Quoting {
	case "backtick":
		return mysqldialect.QuoteBacktick
	case "ansi":
		return mysqldialect.QuoteANSI
	default:
		return mysqldialect.QuoteAuto
	}
}

// dsnWithReadOptions normalizes the DSN for introspection queries.
func dsnWithReadOptions(baseDSN string) (string, error) {
	cfg, err := mysql.ParseDSN(baseDSN)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

// dsnDBName pulls the database name out of the DSN, for use as the
// default reflection schema.
func dsnDBName(baseDSN string) (string, error) {
	cfg, err := mysql.ParseDSN(baseDSN)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	if cfg.DBName == "" {
		return "", fmt.Errorf("mysql dsn carries no database name")
	}
	return cfg.DBName, nil
}
