package mysqldialect

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// queryRunner is the subset of database/sql used by capability probes.
// *sql.DB, *sql.Conn and *sql.Tx all satisfy it.
type queryRunner interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SessionCaps caches per-connection server capabilities. Probes run once
// and are cached for the connection's lifetime; only the charset can be
// invalidated, since SET statements may change it mid-session.
type SessionCaps struct {
	conn    queryRunner
	version *ServerVersion

	// ForceCharset overrides charset detection entirely.
	ForceCharset string

	charset    string
	charsetOK  bool
	casing     int
	casingOK   bool
	collations map[string]string
	ansiQuotes bool
	sqlModeOK  bool
}

// NewSessionCaps wraps a connection for capability probing.
func NewSessionCaps(conn queryRunner, version *ServerVersion) *SessionCaps {
	return &SessionCaps{conn: conn, version: version}
}

// Charset returns the connection's effective character set. Detection
// prefers character_set_results, then character_set, then falls back to
// latin1 with a warning.
func (sc *SessionCaps) Charset(ctx context.Context) (string, error) {
	if sc.ForceCharset != "" {
		return sc.ForceCharset, nil
	}
	if sc.charsetOK {
		return sc.charset, nil
	}

	vars, err := sc.showVariables(ctx, "character_set%")
	if err != nil {
		return "", fmt.Errorf("detect charset: %w", err)
	}
	cs, ok := vars["character_set_results"]
	if !ok {
		cs, ok = vars["character_set"]
	}
	if !ok {
		warnf("could not detect the connection character set, assuming latin1")
		cs = "latin1"
	}
	sc.charset, sc.charsetOK = cs, true
	return cs, nil
}

// InvalidateCharset discards the cached charset so the next Charset call
// probes again. Called after any SET statement runs on the connection.
func (sc *SessionCaps) InvalidateCharset() {
	sc.charset, sc.charsetOK = "", false
}

// Casing returns the server's identifier-casing behavior as the value of
// lower_case_table_names: 0 stores and compares names as given, 1
// lowercases them, 2 stores as given but compares lowercased.
func (sc *SessionCaps) Casing(ctx context.Context) (int, error) {
	if sc.casingOK {
		return sc.casing, nil
	}

	vars, err := sc.showVariables(ctx, "lower_case_table_names")
	if err != nil {
		return 0, fmt.Errorf("detect casing: %w", err)
	}
	casing := 0
	if val, ok := vars["lower_case_table_names"]; ok {
		switch strings.ToUpper(val) {
		case "OFF":
			casing = 0
		case "ON":
			casing = 1
		default:
			n, err := strconv.Atoi(val)
			if err != nil {
				return 0, fmt.Errorf("detect casing: unexpected value %q", val)
			}
			casing = n
		}
	}
	sc.casing, sc.casingOK = casing, true
	return casing, nil
}

// Collations returns the server's collations keyed by name, with the
// owning character set as value. Servers predating SHOW COLLATION yield
// an empty map.
func (sc *SessionCaps) Collations(ctx context.Context) (map[string]string, error) {
	if sc.collations != nil {
		return sc.collations, nil
	}
	if sc.version != nil && sc.version.OlderThan("4.1.0") {
		sc.collations = map[string]string{}
		return sc.collations, nil
	}

	rows, err := sc.conn.QueryContext(ctx, "SHOW COLLATION")
	if err != nil {
		return nil, fmt.Errorf("detect collations: %w", err)
	}
	defer rows.Close()

	collations := make(map[string]string)
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("detect collations: %w", err)
	}
	for rows.Next() {
		fields := make([]any, len(cols))
		var name, charset sql.NullString
		fields[0], fields[1] = &name, &charset
		for i := 2; i < len(fields); i++ {
			fields[i] = new(sql.RawBytes)
		}
		if err := rows.Scan(fields...); err != nil {
			return nil, fmt.Errorf("detect collations: %w", err)
		}
		if name.Valid {
			collations[name.String] = charset.String
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("detect collations: %w", err)
	}
	sc.collations = collations
	return collations, nil
}

// AnsiQuotes reports whether the session's sql_mode includes ANSI_QUOTES,
// in which case identifiers come back double-quoted instead of
// backtick-quoted.
func (sc *SessionCaps) AnsiQuotes(ctx context.Context) (bool, error) {
	if sc.sqlModeOK {
		return sc.ansiQuotes, nil
	}

	vars, err := sc.showVariables(ctx, "sql_mode")
	if err != nil {
		return false, fmt.Errorf("detect sql_mode: %w", err)
	}
	mode, ok := vars["sql_mode"]
	if !ok {
		warnf("could not retrieve sql_mode, assuming backtick quoting")
		mode = ""
	}
	sc.ansiQuotes = modeHasAnsiQuotes(mode)
	sc.sqlModeOK = true
	return sc.ansiQuotes, nil
}

// modeHasAnsiQuotes decodes a sql_mode value, which old servers report as
// a numeric bitmask with ANSI_QUOTES at bit 4.
func modeHasAnsiQuotes(mode string) bool {
	if mode == "" {
		return false
	}
	if n, err := strconv.Atoi(mode); err == nil {
		return n|4 == n
	}
	return strings.Contains(strings.ToUpper(mode), "ANSI_QUOTES")
}

// showVariables runs SHOW VARIABLES LIKE and returns the name/value rows
// as a map.
func (sc *SessionCaps) showVariables(ctx context.Context, pattern string) (map[string]string, error) {
	rows, err := sc.conn.QueryContext(ctx, "SHOW VARIABLES LIKE '"+pattern+"'")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vars := make(map[string]string)
	for rows.Next() {
		var name string
		var value sql.NullString
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		vars[name] = value.String
	}
	return vars, rows.Err()
}

// isSetStatement reports whether sql is a SET statement, optionally
// scoped GLOBAL or SESSION. Such statements can change the connection
// charset out from under the cache.
func isSetStatement(stmt string) bool {
	i := 0
	for i < len(stmt) && isSpace(stmt[i]) {
		i++
	}
	if !foldPrefix(stmt[i:], "SET") {
		return false
	}
	i += 3
	start := i
	for i < len(stmt) && isSpace(stmt[i]) {
		i++
	}
	if i == start {
		return false
	}
	for _, scope := range []string{"GLOBAL", "SESSION"} {
		if foldPrefix(stmt[i:], scope) {
			j := i + len(scope)
			for j < len(stmt) && isSpace(stmt[j]) {
				j++
			}
			if j > i+len(scope) {
				i = j
			}
			break
		}
	}
	return i < len(stmt) && isWordChar(stmt[i])
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func foldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
