package mysqldialect

// Column is a single column of a reflected or declared table.
type Column struct {
	Name string
	Type *TypeDescriptor

	Nullable      bool
	AutoIncrement bool

	// Default is the server default clause. DefaultIsExpr marks bare
	// keyword defaults such as CURRENT_TIMESTAMP, which are emitted
	// without quoting.
	Default       string
	HasDefault    bool
	DefaultIsExpr bool

	Comment string

	// Partial marks a column recovered by the loose fallback pattern only;
	// type attributes beyond name/type/args/nullability are unreliable.
	Partial bool
}

// Index is a non-primary table index.
type Index struct {
	Name    string
	Unique  bool
	Columns []string
}

// ForeignKey is a reflected FOREIGN KEY constraint.
type ForeignKey struct {
	Name       string
	Columns    []string
	RefSchema  string
	RefTable   string
	RefColumns []string
	OnDelete   string
	OnUpdate   string
}

// Table holds the full definition of a MySQL table.
type Table struct {
	Schema string
	Name   string

	Columns     []*Column
	PrimaryKey  []string
	Indexes     []*Index
	ForeignKeys []*ForeignKey

	// Options holds engine-specific table options keyed with the reserved
	// "mysql_" prefix, e.g. "mysql_engine" or "mysql_default_charset".
	// Both reflected options and creation-time passthrough options live
	// here; values are opaque strings.
	Options map[string]string
}

// Column returns the named column, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AddColumn appends a column definition.
func (t *Table) AddColumn(c *Column) {
	t.Columns = append(t.Columns, c)
}

// optionPrefix is the reserved prefix for MySQL-specific table options.
const optionPrefix = "mysql_"

// SetOption records a table option under the reserved "mysql_" prefix.
func (t *Table) SetOption(name, value string) {
	if t.Options == nil {
		t.Options = make(map[string]string)
	}
	t.Options[optionPrefix+name] = value
}

// Key identifies the table within a registry.
func (t *Table) Key() TableKey {
	return TableKey{Schema: t.Schema, Name: t.Name}
}

// TableKey identifies a table by schema and name.
type TableKey struct {
	Schema string
	Name   string
}

// TableRegistry tracks in-progress and completed table loads for one
// session. Registering a table before resolving its foreign keys is what
// keeps mutually-referencing tables from recursing forever.
type TableRegistry struct {
	tables map[TableKey]*Table
	order  []TableKey
}

// NewTableRegistry returns an empty session-scoped registry.
func NewTableRegistry() *TableRegistry {
	return &TableRegistry{tables: make(map[TableKey]*Table)}
}

// Get returns the registered table for key, or nil.
func (r *TableRegistry) Get(key TableKey) *Table {
	return r.tables[key]
}

// Register records a table, possibly still a placeholder under
// construction. Registering an already-known key is a no-op.
func (r *TableRegistry) Register(t *Table) {
	key := t.Key()
	if _, ok := r.tables[key]; ok {
		return
	}
	r.tables[key] = t
	r.order = append(r.order, key)
}

// Remove forgets a registered table. Used to back out a placeholder
// whose load failed.
func (r *TableRegistry) Remove(key TableKey) {
	if _, ok := r.tables[key]; !ok {
		return
	}
	delete(r.tables, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Tables returns the registered tables in registration order.
func (r *TableRegistry) Tables() []*Table {
	out := make([]*Table, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.tables[key])
	}
	return out
}
