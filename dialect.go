package mysqldialect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// Dialect adapts MySQL's SQL surface: it renders statements and DDL,
// reflects schema definitions back out of the server and tracks the
// session capabilities that change how both of those behave.
type Dialect struct {
	db      *sql.DB
	version *ServerVersion
	caps    *SessionCaps

	mode     QuotingMode
	preparer Preparer

	// reflector is rebuilt when the quoting mode changes, since its
	// scanners are bound to one identifier quote convention.
	reflector *Reflector

	compiler *Compiler
	ddl      *DDLCompiler

	// DefaultSchema qualifies unqualified foreign-key references.
	DefaultSchema string

	registry *TableRegistry
}

// Open connects to the server and initializes a dialect for it.
func Open(ctx context.Context, dsn string) (*Dialect, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql connection: %w", err)
	}
	d := New(db)
	if err := d.Initialize(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// New wraps an existing connection pool. Call Initialize before use.
func New(db *sql.DB) *Dialect {
	return &Dialect{
		db:       db,
		mode:     QuoteAuto,
		registry: NewTableRegistry(),
	}
}

// Initialize probes the server version and session capabilities and
// settles the effective quoting convention.
func (d *Dialect) Initialize(ctx context.Context) error {
	var raw string
	if err := d.db.QueryRowContext(ctx, "SELECT VERSION()").Scan(&raw); err != nil {
		return fmt.Errorf("query server version: %w", err)
	}
	version, err := ParseServerVersion(raw)
	if err != nil {
		return err
	}
	d.version = version
	d.caps = NewSessionCaps(d.db, version)

	var schema sql.NullString
	if err := d.db.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&schema); err == nil {
		d.DefaultSchema = schema.String
	}

	return d.settleQuoting(ctx)
}

// settleQuoting resolves QuoteAuto against the session's sql_mode and
// rebuilds the quoting-bound helpers.
func (d *Dialect) settleQuoting(ctx context.Context) error {
	mode := d.mode
	if mode == QuoteAuto {
		ansi, err := d.caps.AnsiQuotes(ctx)
		if err != nil {
			return err
		}
		if ansi {
			mode = QuoteANSI
		} else {
			mode = QuoteBacktick
		}
	}
	d.preparer = preparerFor(mode)
	d.compiler = NewCompiler(d.preparer)
	d.ddl = NewDDLCompiler(d.preparer)
	d.reflector = nil
	return nil
}

// SetQuoting overrides quoting detection. Must be followed by Initialize
// or called on an initialized dialect; the cached reflector is discarded.
func (d *Dialect) SetQuoting(ctx context.Context, mode QuotingMode) error {
	d.mode = mode
	if d.caps == nil {
		return nil
	}
	return d.settleQuoting(ctx)
}

// Version returns the parsed server version. Valid after Initialize.
func (d *Dialect) Version() *ServerVersion { return d.version }

// Caps exposes the session capability cache. Valid after Initialize.
func (d *Dialect) Caps() *SessionCaps { return d.caps }

// Preparer returns the effective identifier preparer.
func (d *Dialect) Preparer() Preparer { return d.preparer }

// Compiler returns the statement compiler bound to the effective quoting.
func (d *Dialect) Compiler() *Compiler { return d.compiler }

// DDL returns the DDL compiler bound to the effective quoting.
func (d *Dialect) DDL() *DDLCompiler { return d.ddl }

// Tables returns every table reflected so far, in reflection order.
func (d *Dialect) Tables() []*Table { return d.registry.Tables() }

// Diagnostics returns the non-fatal conditions recorded during reflection.
func (d *Dialect) Diagnostics() []string {
	if d.reflector == nil {
		return nil
	}
	return d.reflector.Diagnostics()
}

// reflectionPreparer picks the quoting convention of SHOW CREATE TABLE
// output. Servers before 4.1 emit backticks regardless of ANSI_QUOTES.
func (d *Dialect) reflectionPreparer() Preparer {
	if _, ok := d.preparer.(ansiPreparer); ok && d.version.OlderThan("4.1.0") {
		return preparerFor(QuoteBacktick)
	}
	return d.preparer
}

func (d *Dialect) reflectorInstance() *Reflector {
	if d.reflector == nil {
		d.reflector = NewReflector(d.reflectionPreparer())
	}
	return d.reflector
}

// ReflectTable loads the definition of the named table from the server.
// Referenced tables are reflected recursively; reference cycles are
// terminated through the registry. Views are reflected through DESCRIBE,
// which loses keys and defaults but yields usable columns.
func (d *Dialect) ReflectTable(ctx context.Context, schema, name string, only []string) (*Table, error) {
	casing, err := d.caps.Casing(ctx)
	if err != nil {
		return nil, err
	}
	if casing == 1 {
		name = strings.ToLower(name)
	}

	key := TableKey{Schema: schema, Name: name}
	if existing := d.registry.Get(key); existing != nil {
		return existing, nil
	}
	table := &Table{Schema: schema, Name: name}
	d.registry.Register(table)

	ddlText, err := d.showCreateTable(ctx, schema, name)
	if err != nil {
		d.registry.Remove(key)
		return nil, err
	}

	if strings.HasPrefix(ddlText, "CREATE ALGORITHM") {
		// A view. SHOW CREATE TABLE returns the view definition, which
		// the table scanners cannot use.
		rows, err := d.describe(ctx, schema, name)
		if err != nil {
			d.registry.Remove(key)
			return nil, err
		}
		ddlText = d.reflectorInstance().DescribeToCreate(name, rows)
	}

	r := d.reflectorInstance()
	err = r.Reflect(table, ddlText, ReflectOptions{
		Only: only,
		Resolve: func(ref TableKey) (*Table, error) {
			refSchema := ref.Schema
			if refSchema == "" {
				refSchema = d.DefaultSchema
			}
			return d.ReflectTable(ctx, refSchema, ref.Name, nil)
		},
	})
	if err != nil {
		d.registry.Remove(key)
		return nil, err
	}
	return table, nil
}

// showCreateTable returns the raw SHOW CREATE TABLE text.
func (d *Dialect) showCreateTable(ctx context.Context, schema, name string) (string, error) {
	stmt := "SHOW CREATE TABLE " + d.qualify(schema, name)
	rows, err := d.db.QueryContext(ctx, stmt)
	if err != nil {
		if serverErrorCode(err) == errNoSuchTable {
			return "", &NoSuchTableError{Name: name}
		}
		return "", fmt.Errorf("show create table %s: %w", name, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", fmt.Errorf("show create table %s: %w", name, err)
		}
		return "", &NoSuchTableError{Name: name}
	}
	var tableName, ddlText string
	if err := rows.Scan(&tableName, &ddlText); err != nil {
		return "", fmt.Errorf("show create table %s: %w", name, err)
	}
	return ddlText, nil
}

// describe runs DESCRIBE and returns its rows.
func (d *Dialect) describe(ctx context.Context, schema, name string) ([]DescribeRow, error) {
	rows, err := d.db.QueryContext(ctx, "DESCRIBE "+d.qualify(schema, name))
	if err != nil {
		if serverErrorCode(err) == errNoSuchTable {
			return nil, &NoSuchTableError{Name: name}
		}
		return nil, fmt.Errorf("describe %s: %w", name, err)
	}
	defer rows.Close()

	var out []DescribeRow
	for rows.Next() {
		var field, typ, null string
		var key, dflt, extra sql.NullString
		if err := rows.Scan(&field, &typ, &null, &key, &dflt, &extra); err != nil {
			return nil, fmt.Errorf("describe %s: %w", name, err)
		}
		out = append(out, DescribeRow{
			Field:    field,
			Type:     typ,
			Nullable: strings.EqualFold(null, "YES"),
			Default:  dflt.String,
			Extra:    extra.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("describe %s: %w", name, err)
	}
	return out, nil
}

// HasTable reports whether the named table exists, via DESCRIBE, which is
// cheap and works on every supported server version.
func (d *Dialect) HasTable(ctx context.Context, schema, name string) (bool, error) {
	_, err := d.describe(ctx, schema, name)
	if err != nil {
		var missing *NoSuchTableError
		if errors.As(err, &missing) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// TableNames lists the tables of the given schema, or of the current
// database when schema is empty.
func (d *Dialect) TableNames(ctx context.Context, schema string) ([]string, error) {
	stmt := "SHOW TABLES"
	if schema != "" {
		stmt += " FROM " + d.preparer.QuoteIdentifier(schema)
	}
	rows, err := d.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Exec runs a statement. SET statements invalidate the cached charset,
// since they may have changed it.
func (d *Dialect) Exec(ctx context.Context, stmt string, args ...any) (sql.Result, error) {
	res, err := d.db.ExecContext(ctx, stmt, args...)
	if isSetStatement(stmt) {
		d.caps.InvalidateCharset()
	}
	return res, err
}

func (d *Dialect) qualify(schema, name string) string {
	if schema == "" {
		return d.preparer.QuoteIdentifier(name)
	}
	return d.preparer.QuoteIdentifier(schema) + "." + d.preparer.QuoteIdentifier(name)
}

// Tx wraps a transaction so commit and rollback degrade gracefully on
// servers that predate transactional support.
type Tx struct {
	tx      *sql.Tx
	version *ServerVersion
}

// Begin starts a transaction.
func (d *Dialect) Begin(ctx context.Context) (*Tx, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx: tx, version: d.version}, nil
}

// Commit commits the transaction. Pre-3.23.15 servers reject COMMIT with
// a syntax error; that is swallowed, matching their implicit autocommit.
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		if t.swallow(err) {
			return nil
		}
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Rollback rolls the transaction back, with the same old-server
// accommodation as Commit.
func (t *Tx) Rollback() error {
	if err := t.tx.Rollback(); err != nil {
		if t.swallow(err) {
			return nil
		}
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

func (t *Tx) swallow(err error) bool {
	return serverErrorCode(err) == errSyntaxOrMissingSupport &&
		t.version != nil && t.version.OlderThan("3.23.15")
}
