package mysqldialect

import "testing"

func TestTableColumnLookup(t *testing.T) {
	table := &Table{Name: "t"}
	table.AddColumn(&Column{Name: "a", Type: NewInteger(NoArg, NumericAttrs{})})
	if table.Column("a") == nil {
		t.Error("Column(a) = nil, want column")
	}
	if table.Column("missing") != nil {
		t.Error("Column(missing) != nil, want nil")
	}
}

func TestTableSetOptionPrefix(t *testing.T) {
	table := &Table{Name: "t"}
	table.SetOption("engine", "InnoDB")
	if got := table.Options["mysql_engine"]; got != "InnoDB" {
		t.Errorf("Options[mysql_engine] = %q, want InnoDB", got)
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewTableRegistry()
	key := TableKey{Schema: "db", Name: "t"}
	if r.Get(key) != nil {
		t.Fatal("Get on empty registry should be nil")
	}

	first := &Table{Schema: "db", Name: "t"}
	r.Register(first)
	if r.Get(key) != first {
		t.Error("Get should return the registered table")
	}

	// Re-registration is a no-op; the first registration wins, which is
	// what terminates foreign-key reference cycles.
	second := &Table{Schema: "db", Name: "t"}
	r.Register(second)
	if r.Get(key) != first {
		t.Error("duplicate Register should not replace the original")
	}
}

func TestRegistryRemove(t *testing.T) {
	r := NewTableRegistry()
	r.Register(&Table{Name: "a"})
	r.Register(&Table{Name: "b"})

	key := TableKey{Name: "a"}
	r.Remove(key)
	if r.Get(key) != nil {
		t.Error("Get after Remove should be nil")
	}
	tables := r.Tables()
	if len(tables) != 1 || tables[0].Name != "b" {
		t.Errorf("Tables() after Remove = %v, want only b", tables)
	}

	// Removing an unknown key is a no-op.
	r.Remove(TableKey{Name: "missing"})
	if len(r.Tables()) != 1 {
		t.Error("Remove of unknown key should not change the registry")
	}
}

func TestRegistryTablesOrder(t *testing.T) {
	r := NewTableRegistry()
	r.Register(&Table{Name: "b"})
	r.Register(&Table{Name: "a"})
	tables := r.Tables()
	if len(tables) != 2 || tables[0].Name != "b" || tables[1].Name != "a" {
		t.Errorf("Tables() order = %v, want registration order", tables)
	}
}
