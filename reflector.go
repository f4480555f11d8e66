package mysqldialect

import (
	"fmt"
	"strconv"
	"strings"
)

// Reflector parses SHOW CREATE TABLE output into schema objects. Its
// scanners are bound to one identifier quoting convention; switching the
// dialect's quoting mode requires a fresh Reflector.
type Reflector struct {
	preparer Preparer
	diag     *diagnostics
}

// NewReflector builds a reflector for the given quoting convention.
func NewReflector(p Preparer) *Reflector {
	return &Reflector{preparer: p, diag: &diagnostics{}}
}

// Diagnostics returns the non-fatal conditions recorded by this reflector.
func (r *Reflector) Diagnostics() []string { return r.diag.Messages() }

// TableResolver loads a referenced table by key, typically reflecting it
// recursively. Implementations must register tables before resolving their
// own foreign keys so reference cycles terminate.
type TableResolver func(key TableKey) (*Table, error)

// ReflectOptions controls a single Reflect call.
type ReflectOptions struct {
	// Only restricts reflection to the named columns. Keys and constraints
	// covering any omitted column are dropped in their entirety.
	Only []string
	// Resolve loads foreign-key referenced tables; nil skips resolution
	// and keeps the parsed reference data as-is.
	Resolve TableResolver
}

// columnSpec is the raw result of parsing one column definition line.
type columnSpec struct {
	name    string
	coltype string
	args    string

	unsigned bool
	zerofill bool
	charset  string
	collate  string

	notNull    bool
	hasDefault bool
	defaultVal string
	autoIncr   bool
	comment    string
	colfmt     string
	storage    string
	extra      string

	// full marks a strict-pattern parse; loose fallback parses leave it
	// unset and the resulting column is flagged partial.
	full bool
}

type keyColumn struct {
	name      string
	prefixLen int
}

// keySpec is a parsed KEY/INDEX line.
type keySpec struct {
	flavor  string
	name    string
	columns []keyColumn
}

// constraintSpec is a parsed CONSTRAINT ... FOREIGN KEY line.
type constraintSpec struct {
	name     string
	local    []string
	table    []string
	foreign  []string
	match    string
	onDelete string
	onUpdate string
}

// Reflect parses show-create text and fills in table. The table name is set
// from the DDL only when not already set by the caller. Unparseable lines
// degrade to diagnostics; parsing itself never fails, only referenced-table
// resolution can return an error.
func (r *Reflector) Reflect(table *Table, showCreate string, opts ReflectOptions) error {
	var only map[string]bool
	if len(opts.Only) > 0 {
		only = make(map[string]bool, len(opts.Only))
		for _, name := range opts.Only {
			only[name] = true
		}
	}

	var keys []keySpec
	var constraints []constraintSpec

	iq := r.preparer.InitialQuote()
	for _, line := range strings.Split(strings.ReplaceAll(showCreate, "\r\n", "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "  "+string(iq)):
			r.addColumn(table, line, only)
		case strings.HasPrefix(line, ") "):
			r.setOptions(table, line)
		case line == ")":
			// End of definition in ANSI mode; no options follow.
		case strings.HasPrefix(line, "CREATE "):
			r.setName(table, line)
		case line == "":
			// Never emitted by a live server; possible when the DDL was
			// loaded from a file.
		default:
			if key, ok := r.parseKey(line); ok {
				keys = append(keys, key)
			} else if cons, ok := r.parseConstraint(line); ok {
				constraints = append(constraints, cons)
			} else if isPartitionLine(line) {
				// No partition model is reconstructed.
			} else {
				r.diag.warnf("unknown schema content: %q", line)
			}
		}
	}

	r.applyKeys(table, keys, only)
	return r.applyConstraints(table, constraints, only, opts.Resolve)
}

// setName fills in the table name from the CREATE line, without overriding
// a caller-assigned name.
func (r *Reflector) setName(table *Table, line string) {
	if table.Name != "" {
		return
	}
	if name, ok := r.parseName(line); ok {
		table.Name = name
	}
}

// parseName extracts the table name from the first line of SHOW CREATE
// TABLE output.
func (r *Reflector) parseName(line string) (string, bool) {
	sc := newLineScanner(line, r.preparer)
	if !sc.tryKeyword("CREATE") {
		return "", false
	}
	// Skip an optional TEMPORARY or similar qualifier word.
	if !sc.tryKeyword("TABLE") {
		if _, ok := sc.scanWord(); !ok {
			return "", false
		}
		if !sc.tryKeyword("TABLE") {
			return "", false
		}
	}
	name, ok := sc.scanQuotedIdent()
	if !ok {
		return "", false
	}
	return name, true
}

func (r *Reflector) addColumn(table *Table, line string, only map[string]bool) {
	spec, ok := r.parseColumn(line)
	if !ok {
		r.diag.warnf("unknown column definition %q", line)
		return
	}
	if !spec.full {
		r.diag.warnf("incomplete reflection of column definition %q", line)
	}
	if only != nil && !only[spec.name] {
		r.diag.infof("omitting reflected column %s.%s", table.Name, spec.name)
		return
	}

	coltype, args := strings.ToLower(spec.coltype), spec.args

	// Convention says that TINYINT(1) columns == BOOLEAN.
	if coltype == "tinyint" && args == "1" {
		coltype = "boolean"
		args = ""
	}

	var intArgs []int
	var strArgs []string
	switch {
	case args == "":
	case args[0] == '\'':
		tokens, err := scanQuotedTokens(args)
		if err != nil {
			r.diag.warnf("bad value list for column %q: %v", spec.name, err)
		}
		strArgs = tokens
	default:
		for _, part := range strings.Split(args, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				r.diag.warnf("bad type argument %q for column %q", part, spec.name)
				continue
			}
			intArgs = append(intArgs, n)
		}
	}

	attrs := reflectedAttrs{
		unsigned: spec.unsigned,
		zerofill: spec.zerofill,
		charset:  spec.charset,
		collate:  spec.collate,
	}
	typ, known, err := newReflectedType(coltype, intArgs, strArgs, attrs)
	if err != nil {
		r.diag.warnf("cannot construct type %q of column %q: %v", coltype, spec.name, err)
		typ = NewNull()
	} else if !known {
		r.diag.warnf("did not recognize type %q of column %q", coltype, spec.name)
	}

	col := &Column{
		Name:     spec.name,
		Type:     typ,
		Nullable: !spec.notNull,
		Comment:  spec.comment,
		Partial:  !spec.full,
	}
	if spec.autoIncr {
		col.AutoIncrement = true
	}

	if spec.hasDefault && spec.defaultVal != "NULL" {
		dflt := spec.defaultVal
		if len(dflt) >= 2 && dflt[0] == '\'' && dflt[len(dflt)-1] == '\'' {
			col.Default = strings.ReplaceAll(dflt[1:len(dflt)-1], "''", "'")
		} else {
			// Bare keyword default such as CURRENT_TIMESTAMP, emitted
			// verbatim when the column DDL is regenerated.
			col.Default = dflt
			col.DefaultIsExpr = true
		}
		col.HasDefault = true
	}

	table.AddColumn(col)
}

// parseColumn extracts column details, falling back to a minimal-support
// variant when the full parse fails.
func (r *Reflector) parseColumn(line string) (columnSpec, bool) {
	if spec, ok := r.parseColumnStrict(line); ok {
		spec.full = true
		return spec, true
	}
	return r.parseColumnLoose(line)
}

func (r *Reflector) parseColumnStrict(line string) (columnSpec, bool) {
	var spec columnSpec
	sc := newLineScanner(line[2:], r.preparer)

	var ok bool
	if spec.name, ok = sc.scanQuotedIdent(); !ok {
		return spec, false
	}
	if spec.coltype, ok = sc.scanWord(); !ok {
		return spec, false
	}
	if args, present, ok := sc.scanTypeArgs(); ok {
		spec.args = args
	} else if present {
		return spec, false
	}

	spec.unsigned = sc.tryKeyword("UNSIGNED")
	spec.zerofill = sc.tryKeyword("ZEROFILL")
	if sc.tryKeyword("CHARACTER") && sc.tryKeyword("SET") {
		if spec.charset, ok = sc.scanWord(); !ok {
			return spec, false
		}
	}
	if sc.tryKeyword("COLLATE") {
		if spec.collate, ok = sc.scanWord(); !ok {
			return spec, false
		}
	}
	if sc.tryKeyword("NOT") {
		if !sc.tryKeyword("NULL") {
			return spec, false
		}
		spec.notNull = true
	}
	if sc.tryKeyword("DEFAULT") {
		dflt, ok := sc.scanDefault()
		if !ok {
			return spec, false
		}
		spec.hasDefault = true
		spec.defaultVal = dflt
	}
	spec.autoIncr = sc.tryKeyword("AUTO_INCREMENT")
	if sc.tryKeyword("COMMENT") {
		raw, ok := sc.scanSingleQuoted()
		if !ok {
			return spec, false
		}
		spec.comment = strings.ReplaceAll(raw[1:len(raw)-1], "''", "'")
	}
	if sc.tryKeyword("COLUMN_FORMAT") {
		if spec.colfmt, ok = sc.scanWord(); !ok {
			return spec, false
		}
	}
	if sc.tryKeyword("STORAGE") {
		if spec.storage, ok = sc.scanWord(); !ok {
			return spec, false
		}
	}
	spec.extra = strings.TrimSuffix(strings.TrimSpace(sc.rest()), ",")
	return spec, true
}

func (r *Reflector) parseColumnLoose(line string) (columnSpec, bool) {
	var spec columnSpec
	sc := newLineScanner(line[2:], r.preparer)

	var ok bool
	if spec.name, ok = sc.scanQuotedIdent(); !ok {
		return spec, false
	}
	if spec.coltype, ok = sc.scanWord(); !ok {
		return spec, false
	}
	if args, _, ok := sc.scanTypeArgs(); ok {
		spec.args = args
	}
	spec.notNull = strings.Contains(sc.rest(), "NOT NULL")
	return spec, true
}

// parseKey parses an index definition line:
//
//	(PRIMARY|UNIQUE|FULLTEXT|SPATIAL)? KEY name? (USING m)?
//	(col(len)? (ASC|DESC)?, ...) (USING m)? (KEY_BLOCK_SIZE n)? (WITH PARSER p)?
//
// ASC/DESC are recognized but not retained; sort direction cannot be
// recovered through reflection.
func (r *Reflector) parseKey(line string) (keySpec, bool) {
	var spec keySpec
	if !strings.HasPrefix(line, "  ") {
		return spec, false
	}
	sc := newLineScanner(line[2:], r.preparer)

	if !sc.tryKeyword("KEY") {
		flavor, ok := sc.scanToken()
		if !ok {
			return spec, false
		}
		if !sc.tryKeyword("KEY") {
			return spec, false
		}
		spec.flavor = flavor
	}
	if name, ok := sc.scanQuotedIdent(); ok {
		spec.name = name
	}
	if sc.tryKeyword("USING") {
		if _, ok := sc.scanToken(); !ok {
			return spec, false
		}
	}
	if !sc.tryLiteral("(") {
		return spec, false
	}
	for {
		name, ok := sc.scanQuotedIdent()
		if !ok {
			return spec, false
		}
		kc := keyColumn{name: name}
		if sc.tryLiteral("(") {
			n, ok := sc.scanWord()
			if !ok || !sc.tryLiteral(")") {
				return spec, false
			}
			length, err := strconv.Atoi(n)
			if err != nil {
				return spec, false
			}
			kc.prefixLen = length
		}
		if !sc.tryKeyword("ASC") {
			sc.tryKeyword("DESC")
		}
		spec.columns = append(spec.columns, kc)
		if !sc.tryLiteral(",") {
			break
		}
	}
	if !sc.tryLiteral(")") {
		return spec, false
	}
	if sc.tryKeyword("USING") {
		if _, ok := sc.scanToken(); !ok {
			return spec, false
		}
	}
	if sc.tryKeyword("KEY_BLOCK_SIZE") {
		sc.tryLiteral("=")
		if _, ok := sc.scanToken(); !ok {
			return spec, false
		}
	}
	if sc.tryKeyword("WITH") {
		if !sc.tryKeyword("PARSER") {
			return spec, false
		}
		if _, ok := sc.scanToken(); !ok {
			return spec, false
		}
	}
	rest := strings.TrimSuffix(strings.TrimSpace(sc.rest()), ",")
	if rest != "" {
		return spec, false
	}
	return spec, true
}

// parseConstraint parses a foreign-key constraint line:
//
//	CONSTRAINT name FOREIGN KEY (cols) REFERENCES tbl (cols)
//	(MATCH m)? (ON DELETE action)? (ON UPDATE action)?
//
// Unique constraints come back as KEY lines, not here.
func (r *Reflector) parseConstraint(line string) (constraintSpec, bool) {
	var spec constraintSpec
	if !strings.HasPrefix(line, "  ") {
		return spec, false
	}
	sc := newLineScanner(line[2:], r.preparer)

	if !sc.tryKeyword("CONSTRAINT") {
		return spec, false
	}
	var ok bool
	if spec.name, ok = sc.scanQuotedIdent(); !ok {
		return spec, false
	}
	if !sc.tryKeyword("FOREIGN") || !sc.tryKeyword("KEY") {
		return spec, false
	}
	if spec.local, ok = sc.scanIdentList(); !ok {
		return spec, false
	}
	if !sc.tryKeyword("REFERENCES") {
		return spec, false
	}
	for {
		part, ok := sc.scanQuotedIdent()
		if !ok {
			return spec, false
		}
		spec.table = append(spec.table, part)
		if !sc.tryLiteral(".") {
			break
		}
	}
	if spec.foreign, ok = sc.scanIdentList(); !ok {
		return spec, false
	}
	if sc.tryKeyword("MATCH") {
		if spec.match, ok = sc.scanWord(); !ok {
			return spec, false
		}
	}
	if sc.tryKeyword("ON") {
		if !sc.tryKeyword("DELETE") {
			return spec, false
		}
		if spec.onDelete, ok = sc.scanRefAction(); !ok {
			return spec, false
		}
	}
	if sc.tryKeyword("ON") {
		if !sc.tryKeyword("UPDATE") {
			return spec, false
		}
		if spec.onUpdate, ok = sc.scanRefAction(); !ok {
			return spec, false
		}
	}
	return spec, true
}

func isPartitionLine(line string) bool {
	trimmed := strings.ToUpper(strings.TrimLeft(line, " "))
	return strings.HasPrefix(trimmed, "PARTITION") ||
		strings.HasPrefix(trimmed, "SUBPARTITION") ||
		strings.HasPrefix(trimmed, "/*!") && strings.Contains(trimmed, "PARTITION")
}

// applyKeys attaches parsed keys to the table. Keys are applied after all
// columns so primary-key columns are guaranteed to exist. More is parsed
// than the schema objects can represent; prefix lengths and index methods
// are dropped here.
func (r *Reflector) applyKeys(table *Table, keys []keySpec, only map[string]bool) {
	for _, spec := range keys {
		names := make([]string, len(spec.columns))
		for i, kc := range spec.columns {
			names[i] = kc.name
		}

		if only != nil && !subset(names, only) {
			flavor := spec.flavor
			if flavor == "" {
				flavor = "index"
			}
			r.diag.infof("omitting %s KEY for (%s), key covers omitted columns",
				flavor, strings.Join(names, ", "))
			continue
		}

		switch strings.ToUpper(spec.flavor) {
		case "PRIMARY":
			table.PrimaryKey = names
		case "UNIQUE":
			table.Indexes = append(table.Indexes, &Index{Name: spec.name, Unique: true, Columns: names})
		case "", "FULLTEXT", "SPATIAL":
			table.Indexes = append(table.Indexes, &Index{Name: spec.name, Columns: names})
		default:
			r.diag.infof("converting unknown KEY type %s to a plain KEY", spec.flavor)
			table.Indexes = append(table.Indexes, &Index{Name: spec.name, Columns: names})
		}
	}
}

// applyConstraints attaches parsed foreign keys, resolving referenced
// tables through resolve when provided.
func (r *Reflector) applyConstraints(table *Table, constraints []constraintSpec, only map[string]bool, resolve TableResolver) error {
	for _, spec := range constraints {
		if only != nil && !subset(spec.local, only) {
			r.diag.infof("omitting FOREIGN KEY for (%s), key covers omitted columns",
				strings.Join(spec.local, ", "))
			continue
		}

		refName := spec.table[len(spec.table)-1]
		refSchema := table.Schema
		if len(spec.table) > 1 {
			refSchema = spec.table[len(spec.table)-2]
		}

		if resolve != nil {
			if _, err := resolve(TableKey{Schema: refSchema, Name: refName}); err != nil {
				return fmt.Errorf("resolve referenced table %s: %w", refName, err)
			}
		}

		table.ForeignKeys = append(table.ForeignKeys, &ForeignKey{
			Name:       spec.name,
			Columns:    spec.local,
			RefSchema:  refSchema,
			RefTable:   refName,
			RefColumns: spec.foreign,
			OnDelete:   spec.onDelete,
			OnUpdate:   spec.onUpdate,
		})
	}
	return nil
}

func subset(names []string, only map[string]bool) bool {
	for _, n := range names {
		if !only[n] {
			return false
		}
	}
	return true
}

// setOptions applies safe reflected table options. AUTO_INCREMENT and the
// directory options are not portable metadata and are discarded.
func (r *Reflector) setOptions(table *Table, line string) {
	options := parseTableOptions(line)
	for _, nope := range []string{"auto_increment", "data_directory", "index_directory"} {
		delete(options, nope)
	}
	for opt, val := range options {
		table.SetOption(opt, val)
	}
}

// DescribeToCreate reformats DESCRIBE output as SHOW CREATE TABLE text.
// DESCRIBE is a much simpler reflection, but sufficient for views, which
// have no real CREATE TABLE form. Keys are omitted.
func (r *Reflector) DescribeToCreate(tableName string, rows []DescribeRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", r.preparer.QuoteIdentifier(tableName))

	for i, row := range rows {
		b.WriteString("  ")
		b.WriteString(r.preparer.QuoteIdentifier(row.Field))
		b.WriteByte(' ')
		b.WriteString(row.Type)
		if !row.Nullable {
			b.WriteString(" NOT NULL")
		}
		if row.Default != "" {
			switch {
			case strings.Contains(row.Default, "auto_increment"):
			case strings.HasPrefix(row.Type, "timestamp") && strings.HasPrefix(row.Default, "C"):
				b.WriteString(" DEFAULT ")
				b.WriteString(row.Default)
			case row.Default == "NULL":
				b.WriteString(" DEFAULT NULL")
			default:
				b.WriteString(" DEFAULT ")
				b.WriteString(quoteLiteral(row.Default))
			}
		}
		if row.Extra != "" {
			b.WriteByte(' ')
			b.WriteString(row.Extra)
		}
		if i < len(rows)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}

	b.WriteString(") ")
	return b.String()
}

// DescribeRow is one row of DESCRIBE output.
type DescribeRow struct {
	Field    string
	Type     string
	Nullable bool
	Default  string
	Extra    string
}

// lineScanner is a cursor over one DDL line, bound to an identifier
// quoting convention. Keyword matching is case-insensitive, as servers in
// the supported range differ in keyword casing.
type lineScanner struct {
	s  string
	i  int
	iq byte
	fq byte
}

func newLineScanner(s string, p Preparer) *lineScanner {
	return &lineScanner{s: s, iq: p.InitialQuote(), fq: p.FinalQuote()}
}

func (sc *lineScanner) rest() string { return sc.s[sc.i:] }

func (sc *lineScanner) skipSpaces() {
	for sc.i < len(sc.s) && sc.s[sc.i] == ' ' {
		sc.i++
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// tryLiteral consumes the literal after optional spaces.
func (sc *lineScanner) tryLiteral(lit string) bool {
	save := sc.i
	sc.skipSpaces()
	if strings.HasPrefix(sc.s[sc.i:], lit) {
		sc.i += len(lit)
		return true
	}
	sc.i = save
	return false
}

// tryKeyword consumes the keyword after optional spaces, requiring a word
// boundary after it.
func (sc *lineScanner) tryKeyword(kw string) bool {
	save := sc.i
	sc.skipSpaces()
	end := sc.i + len(kw)
	if end > len(sc.s) || !strings.EqualFold(sc.s[sc.i:end], kw) {
		sc.i = save
		return false
	}
	if end < len(sc.s) && isWordChar(sc.s[end]) {
		sc.i = save
		return false
	}
	sc.i = end
	return true
}

// scanWord reads a \w+ token after optional spaces.
func (sc *lineScanner) scanWord() (string, bool) {
	save := sc.i
	sc.skipSpaces()
	start := sc.i
	for sc.i < len(sc.s) && isWordChar(sc.s[sc.i]) {
		sc.i++
	}
	if sc.i == start {
		sc.i = save
		return "", false
	}
	return sc.s[start:sc.i], true
}

// scanToken reads a \S+ token after optional spaces, stopping before a
// trailing comma.
func (sc *lineScanner) scanToken() (string, bool) {
	save := sc.i
	sc.skipSpaces()
	start := sc.i
	for sc.i < len(sc.s) && sc.s[sc.i] != ' ' {
		sc.i++
	}
	tok := strings.TrimSuffix(sc.s[start:sc.i], ",")
	if tok == "" {
		sc.i = save
		return "", false
	}
	return tok, true
}

// scanQuotedIdent reads a quoted identifier after optional spaces and
// returns it unescaped.
func (sc *lineScanner) scanQuotedIdent() (string, bool) {
	save := sc.i
	sc.skipSpaces()
	if sc.i >= len(sc.s) || sc.s[sc.i] != sc.iq {
		sc.i = save
		return "", false
	}
	sc.i++
	start := sc.i
	for sc.i < len(sc.s) {
		if sc.s[sc.i] == sc.fq {
			if sc.i+1 < len(sc.s) && sc.s[sc.i+1] == sc.fq {
				sc.i += 2
				continue
			}
			name := sc.s[start:sc.i]
			sc.i++
			return strings.ReplaceAll(name, string(sc.fq)+string(sc.fq), string(sc.fq)), true
		}
		sc.i++
	}
	sc.i = save
	return "", false
}

// scanSingleQuoted reads a single-quoted string literal with doubled-quote
// escaping and returns the raw token including quotes.
func (sc *lineScanner) scanSingleQuoted() (string, bool) {
	save := sc.i
	sc.skipSpaces()
	if sc.i >= len(sc.s) || sc.s[sc.i] != '\'' {
		sc.i = save
		return "", false
	}
	start := sc.i
	sc.i++
	for sc.i < len(sc.s) {
		if sc.s[sc.i] == '\'' {
			if sc.i+1 < len(sc.s) && sc.s[sc.i+1] == '\'' {
				sc.i += 2
				continue
			}
			sc.i++
			return sc.s[start:sc.i], true
		}
		sc.i++
	}
	sc.i = save
	return "", false
}

// scanTypeArgs reads a parenthesized type argument list. The second return
// reports whether an opening paren was present at all, so callers can tell
// "no arguments" from "malformed arguments".
func (sc *lineScanner) scanTypeArgs() (args string, present, ok bool) {
	if sc.i >= len(sc.s) || sc.s[sc.i] != '(' {
		return "", false, false
	}
	save := sc.i
	sc.i++
	start := sc.i

	if sc.i < len(sc.s) && sc.s[sc.i] == '\'' {
		// A string literal list; closing parens may appear inside values.
		for {
			if _, ok := sc.scanSingleQuoted(); !ok {
				sc.i = save
				return "", true, false
			}
			if !sc.tryLiteral(",") {
				break
			}
		}
		end := sc.i
		if !sc.tryLiteral(")") {
			sc.i = save
			return "", true, false
		}
		return sc.s[start:end], true, true
	}

	off := strings.IndexByte(sc.s[sc.i:], ')')
	if off < 0 {
		sc.i = save
		return "", true, false
	}
	sc.i += off + 1
	return sc.s[start : sc.i-1], true, true
}

// scanDefault reads a DEFAULT value: NULL, a quoted literal, or a bare
// keyword, with an optional ON UPDATE trailer folded into the value.
func (sc *lineScanner) scanDefault() (string, bool) {
	var dflt string
	if raw, ok := sc.scanSingleQuoted(); ok {
		dflt = raw
	} else if w, ok := sc.scanWord(); ok {
		dflt = w
	} else {
		return "", false
	}

	save := sc.i
	if sc.tryKeyword("ON") && sc.tryKeyword("UPDATE") {
		if w, ok := sc.scanWord(); ok {
			return dflt + " ON UPDATE " + w, true
		}
	}
	sc.i = save
	return dflt, true
}

// scanIdentList reads a parenthesized comma-separated quoted identifier
// list.
func (sc *lineScanner) scanIdentList() ([]string, bool) {
	save := sc.i
	if !sc.tryLiteral("(") {
		return nil, false
	}
	var names []string
	for {
		name, ok := sc.scanQuotedIdent()
		if !ok {
			sc.i = save
			return nil, false
		}
		names = append(names, name)
		if !sc.tryLiteral(",") {
			break
		}
	}
	if !sc.tryLiteral(")") {
		sc.i = save
		return nil, false
	}
	return names, true
}

// scanRefAction reads a referential action keyword, including the two-word
// forms.
func (sc *lineScanner) scanRefAction() (string, bool) {
	switch {
	case sc.tryKeyword("RESTRICT"):
		return "RESTRICT", true
	case sc.tryKeyword("CASCADE"):
		return "CASCADE", true
	case sc.tryKeyword("SET"):
		if sc.tryKeyword("NULL") {
			return "SET NULL", true
		}
		return "", false
	case sc.tryKeyword("NO"):
		if sc.tryKeyword("ACTION") {
			return "NO ACTION", true
		}
		return "", false
	default:
		return "", false
	}
}
