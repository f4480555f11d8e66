package mysqldialect

import "strings"

// QuotingMode selects the identifier quoting convention. Auto is resolved by
// probing the server's sql_mode before the first reflection call.
type QuotingMode int

const (
	QuoteAuto QuotingMode = iota
	QuoteBacktick
	QuoteANSI
)

// Preparer quotes and unquotes identifiers for one quoting convention. The
// reflector's line scanners depend on the initial/final quote characters, so
// a mode switch must rebuild any cached reflector.
type Preparer interface {
	// Quote quotes name only when required (reserved word or illegal chars).
	Quote(name string) string
	// QuoteIdentifier always quotes name.
	QuoteIdentifier(name string) string
	// Unescape reverses the escaping applied inside a quoted identifier.
	Unescape(name string) string
	// QuoteFreeIdentifiers unconditionally quotes each non-empty name.
	QuoteFreeIdentifiers(names ...string) []string

	InitialQuote() byte
	FinalQuote() byte
}

// reservedWords covers MySQL 3.23 through 5.1.
var reservedWords = func() map[string]bool {
	words := []string{
		"accessible", "add", "all", "alter", "analyze", "and", "as", "asc",
		"asensitive", "before", "between", "bigint", "binary", "blob", "both",
		"by", "call", "cascade", "case", "change", "char", "character", "check",
		"collate", "column", "condition", "constraint", "continue", "convert",
		"create", "cross", "current_date", "current_time", "current_timestamp",
		"current_user", "cursor", "database", "databases", "day_hour",
		"day_microsecond", "day_minute", "day_second", "dec", "decimal",
		"declare", "default", "delayed", "delete", "desc", "describe",
		"deterministic", "distinct", "distinctrow", "div", "double", "drop",
		"dual", "each", "else", "elseif", "enclosed", "escaped", "exists",
		"exit", "explain", "false", "fetch", "float", "float4", "float8",
		"for", "force", "foreign", "from", "fulltext", "grant", "group",
		"having", "high_priority", "hour_microsecond", "hour_minute",
		"hour_second", "if", "ignore", "in", "index", "infile", "inner",
		"inout", "insensitive", "insert", "int", "int1", "int2", "int3",
		"int4", "int8", "integer", "interval", "into", "is", "iterate",
		"join", "key", "keys", "kill", "leading", "leave", "left", "like",
		"limit", "linear", "lines", "load", "localtime", "localtimestamp",
		"lock", "long", "longblob", "longtext", "loop", "low_priority",
		"master_ssl_verify_server_cert", "match", "mediumblob", "mediumint",
		"mediumtext", "middleint", "minute_microsecond", "minute_second",
		"mod", "modifies", "natural", "not", "no_write_to_binlog", "null",
		"numeric", "on", "optimize", "option", "optionally", "or", "order",
		"out", "outer", "outfile", "precision", "primary", "procedure",
		"purge", "range", "read", "reads", "read_only", "read_write", "real",
		"references", "regexp", "release", "rename", "repeat", "replace",
		"require", "restrict", "return", "revoke", "right", "rlike", "schema",
		"schemas", "second_microsecond", "select", "sensitive", "separator",
		"set", "show", "smallint", "spatial", "specific", "sql",
		"sqlexception", "sqlstate", "sqlwarning", "sql_big_result",
		"sql_calc_found_rows", "sql_small_result", "ssl", "starting",
		"straight_join", "table", "terminated", "then", "tinyblob", "tinyint",
		"tinytext", "to", "trailing", "trigger", "true", "undo", "union",
		"unique", "unlock", "unsigned", "update", "usage", "use", "using",
		"utc_date", "utc_time", "utc_timestamp", "values", "varbinary",
		"varchar", "varcharacter", "varying", "when", "where", "while",
		"with", "write", "x509", "xor", "year_month", "zerofill",
		"columns", "fields", "privileges", "soname", "tables",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}()

// requiresQuotes reports whether name cannot appear unquoted: reserved words,
// names not starting with a letter or underscore, and names containing
// characters outside [a-z0-9_$].
func requiresQuotes(name string) bool {
	if name == "" {
		return true
	}
	if reservedWords[strings.ToLower(name)] {
		return true
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c == '_':
		case c >= '0' && c <= '9', c == '$':
			if i == 0 {
				return true
			}
		default:
			return true
		}
	}
	return false
}

// backtickPreparer implements the traditional MySQL quoting convention.
type backtickPreparer struct{}

func (backtickPreparer) Quote(name string) string {
	if !requiresQuotes(name) {
		return name
	}
	return backtickPreparer{}.QuoteIdentifier(name)
}

func (backtickPreparer) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (backtickPreparer) Unescape(name string) string {
	return strings.ReplaceAll(name, "``", "`")
}

func (p backtickPreparer) QuoteFreeIdentifiers(names ...string) []string {
	return quoteFree(p, names)
}

func (backtickPreparer) InitialQuote() byte { return '`' }
func (backtickPreparer) FinalQuote() byte   { return '`' }

// ansiPreparer defers to the ANSI double-quote convention, for servers
// running with ANSI_QUOTES in their sql_mode.
type ansiPreparer struct{}

func (ansiPreparer) Quote(name string) string {
	if !requiresQuotes(name) {
		return name
	}
	return ansiPreparer{}.QuoteIdentifier(name)
}

func (ansiPreparer) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (ansiPreparer) Unescape(name string) string {
	return strings.ReplaceAll(name, `""`, `"`)
}

func (p ansiPreparer) QuoteFreeIdentifiers(names ...string) []string {
	return quoteFree(p, names)
}

func (ansiPreparer) InitialQuote() byte { return '"' }
func (ansiPreparer) FinalQuote() byte   { return '"' }

func quoteFree(p Preparer, names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		out = append(out, p.QuoteIdentifier(n))
	}
	return out
}

func preparerFor(mode QuotingMode) Preparer {
	if mode == QuoteANSI {
		return ansiPreparer{}
	}
	return backtickPreparer{}
}
