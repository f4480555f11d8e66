package mysqldialect

import (
	"strings"
	"testing"
)

func TestLimitClause(t *testing.T) {
	c := NewCompiler(preparerFor(QuoteBacktick))
	tests := []struct {
		name   string
		limit  int64
		offset int64
		want   string
	}{
		{"neither", NoLimit, NoLimit, ""},
		{"limit only", 10, NoLimit, " \n LIMIT 10"},
		{"limit and offset", 10, 20, " \n LIMIT 20, 10"},
		// MySQL has no standalone OFFSET; the row count is pinned to the
		// documented maximum.
		{"offset only", NoLimit, 20, " \n LIMIT 20, 18446744073709551615"},
		{"zero limit", 0, NoLimit, " \n LIMIT 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.LimitClause(tt.limit, tt.offset); got != tt.want {
				t.Errorf("LimitClause(%d, %d) = %q, want %q", tt.limit, tt.offset, got, tt.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	c := NewCompiler(preparerFor(QuoteBacktick))
	got := c.Select(SelectStmt{
		Columns: []string{"id", "name"},
		From:    []string{"users"},
		Where:   "id > 10",
		OrderBy: "id",
		Limit:   5,
		Offset:  NoLimit,
	})
	want := "SELECT id, name \nFROM users \nWHERE id > 10 ORDER BY id \n LIMIT 5"
	if got != want {
		t.Errorf("Select = %q, want %q", got, want)
	}
}

func TestSelectDistinct(t *testing.T) {
	c := NewCompiler(preparerFor(QuoteBacktick))

	got := c.Select(SelectStmt{Distinct: true, Columns: []string{"name"}, From: []string{"users"}, Limit: NoLimit, Offset: NoLimit})
	if !strings.HasPrefix(got, "SELECT DISTINCT name") {
		t.Errorf("Select = %q, want DISTINCT prefix", got)
	}

	got = c.Select(SelectStmt{Distinct: true, DistinctHow: "distinctrow", Columns: []string{"name"}, From: []string{"users"}, Limit: NoLimit, Offset: NoLimit})
	if !strings.HasPrefix(got, "SELECT DISTINCTROW name") {
		t.Errorf("Select = %q, want DISTINCTROW prefix", got)
	}
}

func TestSelectForUpdate(t *testing.T) {
	c := NewCompiler(preparerFor(QuoteBacktick))

	got := c.Select(SelectStmt{Columns: []string{"id"}, From: []string{"t"}, Limit: 1, Offset: NoLimit, ForUpdate: ForUpdateWrite})
	if !strings.HasSuffix(got, " LIMIT 1 FOR UPDATE") {
		t.Errorf("Select = %q, want FOR UPDATE after LIMIT", got)
	}

	got = c.Select(SelectStmt{Columns: []string{"id"}, From: []string{"t"}, Limit: NoLimit, Offset: NoLimit, ForUpdate: ForUpdateRead})
	if !strings.HasSuffix(got, " LOCK IN SHARE MODE") {
		t.Errorf("Select = %q, want LOCK IN SHARE MODE suffix", got)
	}
}

func TestUpdate(t *testing.T) {
	c := NewCompiler(preparerFor(QuoteBacktick))
	tests := []struct {
		name string
		stmt UpdateStmt
		want string
	}{
		{
			"plain",
			UpdateStmt{Table: "t", Set: []Assignment{{Column: "a", Value: "1"}}, Limit: NoLimit},
			"UPDATE t SET a=1",
		},
		{
			"where and limit",
			UpdateStmt{Table: "t", Set: []Assignment{{Column: "a", Value: "1"}, {Column: "b", Value: "2"}}, Where: "id = 9", Limit: 10},
			"UPDATE t SET a=1, b=2 WHERE id = 9 LIMIT 10",
		},
		{
			"reserved column quoted",
			UpdateStmt{Table: "t", Set: []Assignment{{Column: "order", Value: "5"}}, Limit: NoLimit},
			"UPDATE t SET `order`=5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Update(tt.stmt); got != tt.want {
				t.Errorf("Update = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	c := NewCompiler(preparerFor(QuoteBacktick))
	if got := c.Join("a", "b", "a.id = b.id", true); got != "a LEFT OUTER JOIN b ON a.id = b.id" {
		t.Errorf("Join outer = %q", got)
	}
	if got := c.Join("a", "b", "a.id = b.id", false); got != "a INNER JOIN b ON a.id = b.id" {
		t.Errorf("Join inner = %q", got)
	}
}

func TestCast(t *testing.T) {
	c := NewCompiler(preparerFor(QuoteBacktick))
	if got := c.Cast("x", NewInteger(NoArg, NumericAttrs{})); got != "CAST(x AS SIGNED INTEGER)" {
		t.Errorf("Cast integer = %q", got)
	}
	if got := c.Cast("x", NewTimestamp()); got != "CAST(x AS DATETIME)" {
		t.Errorf("Cast timestamp = %q", got)
	}
	// Types with no CAST spelling leave the expression untouched.
	if got := c.Cast("x", NewBoolean()); got != "x" {
		t.Errorf("Cast boolean = %q, want passthrough", got)
	}
}

func TestEscapeLiteral(t *testing.T) {
	c := NewCompiler(preparerFor(QuoteBacktick))
	if got := c.EscapeLiteral("100% done"); got != "100%% done" {
		t.Errorf("EscapeLiteral = %q, want doubled percent", got)
	}
	if got := c.EscapeLiteral("plain"); got != "plain" {
		t.Errorf("EscapeLiteral = %q, want unchanged", got)
	}
}

func TestColumnSpec(t *testing.T) {
	d := NewDDLCompiler(preparerFor(QuoteBacktick))
	table := &Table{Name: "t", PrimaryKey: []string{"id"}}
	table.AddColumn(&Column{Name: "id", Type: NewInteger(NoArg, NumericAttrs{}), AutoIncrement: true})
	table.AddColumn(&Column{Name: "name", Type: NewVarchar(50, StringAttrs{}), Nullable: true, HasDefault: true, Default: "anon"})
	table.AddColumn(&Column{Name: "created", Type: NewTimestamp(), Nullable: true, HasDefault: true, Default: "CURRENT_TIMESTAMP", DefaultIsExpr: true})

	tests := []struct {
		col  string
		want string
	}{
		{"id", "id INTEGER NOT NULL AUTO_INCREMENT"},
		{"name", "name VARCHAR(50) DEFAULT 'anon'"},
		{"created", "created TIMESTAMP DEFAULT CURRENT_TIMESTAMP"},
	}
	for _, tt := range tests {
		t.Run(tt.col, func(t *testing.T) {
			if got := d.ColumnSpec(table, table.Column(tt.col)); got != tt.want {
				t.Errorf("ColumnSpec(%s) = %q, want %q", tt.col, got, tt.want)
			}
		})
	}
}

func TestColumnSpecAutoIncrementOnlyFirstEligible(t *testing.T) {
	d := NewDDLCompiler(preparerFor(QuoteBacktick))
	table := &Table{Name: "t", PrimaryKey: []string{"a", "b"}}
	table.AddColumn(&Column{Name: "a", Type: NewInteger(NoArg, NumericAttrs{}), AutoIncrement: true})
	table.AddColumn(&Column{Name: "b", Type: NewInteger(NoArg, NumericAttrs{}), AutoIncrement: true})

	if got := d.ColumnSpec(table, table.Column("a")); !strings.Contains(got, "AUTO_INCREMENT") {
		t.Errorf("first pk column spec = %q, want AUTO_INCREMENT", got)
	}
	if got := d.ColumnSpec(table, table.Column("b")); strings.Contains(got, "AUTO_INCREMENT") {
		t.Errorf("second pk column spec = %q, want no AUTO_INCREMENT", got)
	}
}

func TestColumnSpecAutoIncrementSkipsForeignKeyColumn(t *testing.T) {
	d := NewDDLCompiler(preparerFor(QuoteBacktick))
	table := &Table{Name: "t", PrimaryKey: []string{"a", "b"}}
	table.AddColumn(&Column{Name: "a", Type: NewInteger(NoArg, NumericAttrs{}), AutoIncrement: true})
	table.AddColumn(&Column{Name: "b", Type: NewInteger(NoArg, NumericAttrs{}), AutoIncrement: true})
	table.ForeignKeys = append(table.ForeignKeys, &ForeignKey{
		Columns: []string{"a"}, RefTable: "o", RefColumns: []string{"id"},
	})

	if got := d.ColumnSpec(table, table.Column("a")); strings.Contains(got, "AUTO_INCREMENT") {
		t.Errorf("fk pk column spec = %q, want no AUTO_INCREMENT", got)
	}
	if got := d.ColumnSpec(table, table.Column("b")); !strings.Contains(got, "AUTO_INCREMENT") {
		t.Errorf("non-fk pk column spec = %q, want AUTO_INCREMENT", got)
	}
}

func TestCreateTable(t *testing.T) {
	d := NewDDLCompiler(preparerFor(QuoteBacktick))
	table := &Table{Name: "users", PrimaryKey: []string{"id"}}
	table.AddColumn(&Column{Name: "id", Type: NewInteger(NoArg, NumericAttrs{}), AutoIncrement: true})
	table.AddColumn(&Column{Name: "name", Type: NewVarchar(50, StringAttrs{})})
	table.Indexes = append(table.Indexes, &Index{Name: "uq_name", Unique: true, Columns: []string{"name"}})
	table.SetOption("engine", "InnoDB")

	got := d.CreateTable(table)
	for _, frag := range []string{
		"CREATE TABLE `users` (",
		"id INTEGER NOT NULL AUTO_INCREMENT",
		"name VARCHAR(50) NOT NULL",
		"PRIMARY KEY (id)",
		"UNIQUE KEY `uq_name` (name)",
		") ENGINE=InnoDB",
	} {
		if !strings.Contains(got, frag) {
			t.Errorf("CreateTable missing %q in:\n%s", frag, got)
		}
	}
}

func TestPostCreateTableJoiners(t *testing.T) {
	d := NewDDLCompiler(preparerFor(QuoteBacktick))
	table := &Table{Name: "t"}
	table.SetOption("engine", "MyISAM")
	table.SetOption("default_charset", "utf8")
	table.SetOption("collate", "utf8_bin")
	table.SetOption("tablespace", "sp1")
	table.SetOption("comment", "it's a table")

	got := d.PostCreateTable(table)
	for _, frag := range []string{
		"ENGINE=MyISAM",
		"DEFAULT CHARSET=utf8",
		"COLLATE utf8_bin",
		"TABLESPACE sp1",
		"COMMENT='it''s a table'",
	} {
		if !strings.Contains(got, frag) {
			t.Errorf("PostCreateTable missing %q in %q", frag, got)
		}
	}
}

func TestDropStatements(t *testing.T) {
	d := NewDDLCompiler(preparerFor(QuoteBacktick))
	if got := d.DropIndex("ix_a", "t"); got != "\nDROP INDEX `ix_a` ON `t`" {
		t.Errorf("DropIndex = %q", got)
	}
	if got := d.DropForeignKey("t", "fk_a"); got != "ALTER TABLE `t` DROP FOREIGN KEY `fk_a`" {
		t.Errorf("DropForeignKey = %q", got)
	}
}
