package mysqldialect

import (
	"fmt"
	"sort"
	"strings"
)

// NoLimit marks an absent LIMIT or OFFSET value.
const NoLimit = -1

// ForUpdateMode selects the locking suffix of a SELECT.
type ForUpdateMode int

const (
	ForUpdateNone ForUpdateMode = iota
	// ForUpdateWrite renders FOR UPDATE.
	ForUpdateWrite
	// ForUpdateRead renders LOCK IN SHARE MODE.
	ForUpdateRead
)

// SelectStmt describes a SELECT to be rendered. Column and table
// expressions are pre-rendered SQL fragments.
type SelectStmt struct {
	Distinct bool
	// DistinctHow overrides the DISTINCT keyword, e.g. DISTINCTROW or
	// SQL_SMALL_RESULT.
	DistinctHow string
	Columns     []string
	From        []string
	Where       string
	GroupBy     string
	OrderBy     string
	Limit       int64
	Offset      int64
	ForUpdate   ForUpdateMode
}

// UpdateStmt describes an UPDATE to be rendered.
type UpdateStmt struct {
	Table string
	Set   []Assignment
	Where string
	Limit int64
}

// Assignment is one SET clause element.
type Assignment struct {
	Column string
	Value  string
}

// Compiler renders statements in MySQL's dialect of SQL, quoting
// identifiers through its preparer.
type Compiler struct {
	preparer Preparer
}

// NewCompiler builds a compiler around the given quoting convention.
func NewCompiler(p Preparer) *Compiler {
	return &Compiler{preparer: p}
}

// Select renders a complete SELECT statement.
func (c *Compiler) Select(stmt SelectStmt) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(c.selectPrecolumns(stmt))
	b.WriteString(strings.Join(stmt.Columns, ", "))
	if len(stmt.From) > 0 {
		b.WriteString(" \nFROM ")
		b.WriteString(strings.Join(stmt.From, ", "))
	}
	if stmt.Where != "" {
		b.WriteString(" \nWHERE ")
		b.WriteString(stmt.Where)
	}
	if stmt.GroupBy != "" {
		b.WriteString(" GROUP BY ")
		b.WriteString(stmt.GroupBy)
	}
	if stmt.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(stmt.OrderBy)
	}
	b.WriteString(c.LimitClause(stmt.Limit, stmt.Offset))
	b.WriteString(c.ForUpdateClause(stmt.ForUpdate))
	return b.String()
}

func (c *Compiler) selectPrecolumns(stmt SelectStmt) string {
	if !stmt.Distinct {
		return ""
	}
	if stmt.DistinctHow != "" {
		return strings.ToUpper(stmt.DistinctHow) + " "
	}
	return "DISTINCT "
}

// LimitClause renders the LIMIT/OFFSET suffix. MySQL has no plain OFFSET
// clause, so an offset without a limit gets the largest possible row
// count, per the documented workaround.
func (c *Compiler) LimitClause(limit, offset int64) string {
	if offset == NoLimit {
		if limit == NoLimit {
			return ""
		}
		return fmt.Sprintf(" \n LIMIT %d", limit)
	}
	if limit == NoLimit {
		return fmt.Sprintf(" \n LIMIT %d, %s", offset, "18446744073709551615")
	}
	return fmt.Sprintf(" \n LIMIT %d, %d", offset, limit)
}

// ForUpdateClause renders the locking suffix, which MySQL places after
// LIMIT.
func (c *Compiler) ForUpdateClause(mode ForUpdateMode) string {
	switch mode {
	case ForUpdateRead:
		return " LOCK IN SHARE MODE"
	case ForUpdateWrite:
		return " FOR UPDATE"
	default:
		return ""
	}
}

// Update renders an UPDATE statement. MySQL accepts a LIMIT here, unlike
// most dialects.
func (c *Compiler) Update(stmt UpdateStmt) string {
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(stmt.Table)
	b.WriteString(" SET ")
	for i, a := range stmt.Set {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.preparer.Quote(a.Column))
		b.WriteByte('=')
		b.WriteString(a.Value)
	}
	if stmt.Where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(stmt.Where)
	}
	if stmt.Limit != NoLimit {
		fmt.Fprintf(&b, " LIMIT %d", stmt.Limit)
	}
	return b.String()
}

// Join renders a join between two pre-rendered table expressions. MySQL
// spells outer joins LEFT OUTER JOIN; RIGHT and FULL variants are not
// generated.
func (c *Compiler) Join(left, right, on string, outer bool) string {
	kw := " INNER JOIN "
	if outer {
		kw = " LEFT OUTER JOIN "
	}
	return left + kw + right + " ON " + on
}

// Cast renders a CAST of the pre-rendered expression to the given type.
// MySQL's CAST accepts only a narrow set of type spellings; when the type
// has no castable spelling the expression is returned unchanged.
func (c *Compiler) Cast(expr string, t *TypeDescriptor) string {
	spelling := castSpelling(t)
	if spelling == "" {
		return expr
	}
	return fmt.Sprintf("CAST(%s AS %s)", expr, spelling)
}

// EscapeLiteral doubles percent signs so literal text survives the
// driver's printf-style parameter interpolation.
func (c *Compiler) EscapeLiteral(text string) string {
	if strings.Contains(text, "%%") {
		warnf("the %%%% escape looks already applied to %q, escaping anyway", text)
	}
	return strings.ReplaceAll(text, "%", "%%")
}

// DDLCompiler renders CREATE and DROP statements.
type DDLCompiler struct {
	preparer Preparer
}

// NewDDLCompiler builds a DDL compiler around the given quoting
// convention.
func NewDDLCompiler(p Preparer) *DDLCompiler {
	return &DDLCompiler{preparer: p}
}

// CreateTable renders the full CREATE TABLE statement for table.
func (d *DDLCompiler) CreateTable(table *Table) string {
	var b strings.Builder
	b.WriteString("\nCREATE TABLE ")
	b.WriteString(d.preparer.QuoteIdentifier(table.Name))
	b.WriteString(" (\n")

	var defs []string
	for _, col := range table.Columns {
		defs = append(defs, "\t"+d.ColumnSpec(table, col))
	}
	if len(table.PrimaryKey) > 0 {
		defs = append(defs, "\tPRIMARY KEY ("+d.columnList(table.PrimaryKey)+")")
	}
	for _, idx := range table.Indexes {
		kw := "KEY"
		if idx.Unique {
			kw = "UNIQUE KEY"
		}
		def := "\t" + kw
		if idx.Name != "" {
			def += " " + d.preparer.QuoteIdentifier(idx.Name)
		}
		defs = append(defs, def+" ("+d.columnList(idx.Columns)+")")
	}
	for _, fk := range table.ForeignKeys {
		defs = append(defs, "\t"+d.foreignKeySpec(fk))
	}
	b.WriteString(strings.Join(defs, ", \n"))

	b.WriteString("\n)")
	if post := d.PostCreateTable(table); post != "" {
		b.WriteString(post)
	}
	b.WriteString("\n\n")
	return b.String()
}

// ColumnSpec renders one column definition for CREATE TABLE.
func (d *DDLCompiler) ColumnSpec(table *Table, col *Column) string {
	parts := []string{d.preparer.Quote(col.Name), col.Type.DDL()}

	if col.HasDefault {
		if col.DefaultIsExpr {
			parts = append(parts, "DEFAULT", col.Default)
		} else {
			parts = append(parts, "DEFAULT", quoteLiteral(col.Default))
		}
	}
	if !col.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if d.isAutoIncrementColumn(table, col) {
		parts = append(parts, "AUTO_INCREMENT")
	}
	return strings.Join(parts, " ")
}

// isAutoIncrementColumn reports whether col gets the AUTO_INCREMENT
// keyword: the first integer primary-key column not covered by a foreign
// key.
func (d *DDLCompiler) isAutoIncrementColumn(table *Table, col *Column) bool {
	if !col.Type.IsInteger() || !contains(table.PrimaryKey, col.Name) {
		return false
	}
	if !col.AutoIncrement {
		return false
	}
	for _, name := range table.PrimaryKey {
		c := table.Column(name)
		if c == nil || !c.Type.IsInteger() || !c.AutoIncrement {
			continue
		}
		if d.columnHasForeignKey(table, name) {
			continue
		}
		return c == col
	}
	return false
}

func (d *DDLCompiler) columnHasForeignKey(table *Table, name string) bool {
	for _, fk := range table.ForeignKeys {
		if contains(fk.Columns, name) {
			return true
		}
	}
	return false
}

func (d *DDLCompiler) foreignKeySpec(fk *ForeignKey) string {
	var b strings.Builder
	if fk.Name != "" {
		b.WriteString("CONSTRAINT ")
		b.WriteString(d.preparer.QuoteIdentifier(fk.Name))
		b.WriteByte(' ')
	}
	b.WriteString("FOREIGN KEY (")
	b.WriteString(d.columnList(fk.Columns))
	b.WriteString(") REFERENCES ")
	if fk.RefSchema != "" {
		b.WriteString(d.preparer.QuoteIdentifier(fk.RefSchema))
		b.WriteByte('.')
	}
	b.WriteString(d.preparer.QuoteIdentifier(fk.RefTable))
	b.WriteString(" (")
	b.WriteString(d.columnList(fk.RefColumns))
	b.WriteByte(')')
	if fk.OnDelete != "" {
		b.WriteString(" ON DELETE ")
		b.WriteString(fk.OnDelete)
	}
	if fk.OnUpdate != "" {
		b.WriteString(" ON UPDATE ")
		b.WriteString(fk.OnUpdate)
	}
	return b.String()
}

func (d *DDLCompiler) columnList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = d.preparer.Quote(name)
	}
	return strings.Join(quoted, ", ")
}

// stringOptions take a quoted string literal value.
var stringOptions = map[string]bool{
	"COMMENT":         true,
	"DATA_DIRECTORY":  true,
	"INDEX_DIRECTORY": true,
	"PASSWORD":        true,
	"CONNECTION":      true,
}

// spacedDirectives are rendered with their underscores restored to
// spaces.
var spacedDirectives = map[string]bool{
	"DATA_DIRECTORY":        true,
	"INDEX_DIRECTORY":       true,
	"DEFAULT_CHARACTER_SET": true,
	"CHARACTER_SET":         true,
	"DEFAULT_CHARSET":       true,
	"DEFAULT_COLLATE":       true,
}

// spaceJoinedOptions are joined to their value by a space rather than "=".
var spaceJoinedOptions = map[string]bool{
	"TABLESPACE":            true,
	"DEFAULT CHARACTER SET": true,
	"CHARACTER SET":         true,
	"COLLATE":               true,
}

// PostCreateTable renders the dialect options stored on the table after
// the closing paren of CREATE TABLE.
func (d *DDLCompiler) PostCreateTable(table *Table) string {
	if len(table.Options) == 0 {
		return ""
	}
	keys := make([]string, 0, len(table.Options))
	for k := range table.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		if !strings.HasPrefix(k, optionPrefix) {
			continue
		}
		directive := strings.ToUpper(k[len(optionPrefix):])
		val := table.Options[k]
		if stringOptions[directive] {
			val = "'" + strings.ReplaceAll(strings.ReplaceAll(val, `\`, `\\`), "'", "''") + "'"
		}
		if spacedDirectives[directive] {
			directive = strings.ReplaceAll(directive, "_", " ")
		}
		joiner := "="
		if spaceJoinedOptions[directive] {
			joiner = " "
		}
		b.WriteByte(' ')
		b.WriteString(directive)
		b.WriteString(joiner)
		b.WriteString(val)
	}
	return b.String()
}

// DropIndex renders MySQL's DROP INDEX form, which names the table
// directly rather than through ALTER TABLE.
func (d *DDLCompiler) DropIndex(indexName, tableName string) string {
	return fmt.Sprintf("\nDROP INDEX %s ON %s",
		d.preparer.QuoteIdentifier(indexName),
		d.preparer.QuoteIdentifier(tableName))
}

// DropForeignKey renders the constraint drop. MySQL requires the FOREIGN
// KEY keywords in place of the standard CONSTRAINT spelling.
func (d *DDLCompiler) DropForeignKey(tableName, constraintName string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s",
		d.preparer.QuoteIdentifier(tableName),
		d.preparer.QuoteIdentifier(constraintName))
}
