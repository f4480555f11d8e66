package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Limetric/mysqldialect"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "myreflect [config.toml]",
	Short: "MySQL schema reflection tool",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReflect,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to reflection TOML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runReflect(cmd *cobra.Command, args []string) error {
	// Resolve config path: positional arg takes precedence over --config flag
	cfgPath := configPath
	if len(args) > 0 {
		cfgPath = args[0]
	}
	if cfgPath == "" {
		return fmt.Errorf("config file required: myreflect <config.toml> or myreflect --config <config.toml>")
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	start := time.Now()

	dsn, err := dsnWithReadOptions(cfg.Source.DSN)
	if err != nil {
		return err
	}
	schema := cfg.Reflect.Schema
	if schema == "" {
		if schema, err = dsnDBName(cfg.Source.DSN); err != nil {
			return err
		}
	}

	log.Printf("connecting...")
	d, err := mysqldialect.Open(ctx, dsn)
	if err != nil {
		return err
	}
	if err := d.SetQuoting(ctx, cfg.quotingMode()); err != nil {
		return err
	}
	if cfg.Source.Charset != "" {
		d.Caps().ForceCharset = cfg.Source.Charset
	}

	log.Printf("server version %s", d.Version())
	if charset, err := d.Caps().Charset(ctx); err == nil {
		log.Printf("connection charset %s", charset)
	}

	tables := cfg.Reflect.Tables
	if len(tables) == 0 {
		if tables, err = d.TableNames(ctx, schema); err != nil {
			return err
		}
	}
	log.Printf("reflecting %d table(s) from %s...", len(tables), schema)

	for _, name := range tables {
		table, err := d.ReflectTable(ctx, schema, name, cfg.Reflect.Columns)
		if err != nil {
			return fmt.Errorf("reflect %s: %w", name, err)
		}
		printTable(d, table, cfg.Output.Format)
	}

	if cfg.Output.Collations {
		collations, err := d.Caps().Collations(ctx)
		if err != nil {
			return err
		}
		for _, line := range mysqldialect.CollationReport(d.Tables(), collations) {
			log.Printf("collations: %s", line)
		}
	}

	log.Printf("done in %s", time.Since(start).Round(time.Millisecond))
	return nil
}

func printTable(d *mysqldialect.Dialect, table *mysqldialect.Table, format string) {
	if format == "ddl" {
		fmt.Print(d.DDL().CreateTable(table))
		return
	}
	log.Printf("%s (%d cols, %d indexes, %d fks)",
		table.Name, len(table.Columns), len(table.Indexes), len(table.ForeignKeys))
	for _, col := range table.Columns {
		nullable := "NOT NULL"
		if col.Nullable {
			nullable = "NULL"
		}
		log.Printf("  %s %s %s", col.Name, col.Type.DDL(), nullable)
	}
}
