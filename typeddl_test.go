package mysqldialect

import "testing"

func mustDouble(t *testing.T, precision, scale int, attrs NumericAttrs) *TypeDescriptor {
	t.Helper()
	d, err := NewDouble(precision, scale, attrs)
	if err != nil {
		t.Fatalf("NewDouble(%d, %d) unexpected error: %v", precision, scale, err)
	}
	return d
}

func TestTypeDDL(t *testing.T) {
	double53 := func(t *testing.T) *TypeDescriptor { return mustDouble(t, 5, 3, NumericAttrs{}) }

	tests := []struct {
		name string
		typ  func(t *testing.T) *TypeDescriptor
		want string
	}{
		{"numeric bare", func(*testing.T) *TypeDescriptor { return NewNumeric(NoArg, NoArg, NumericAttrs{}) }, "NUMERIC"},
		{"numeric precision scale", func(*testing.T) *TypeDescriptor { return NewNumeric(10, 2, NumericAttrs{}) }, "NUMERIC(10, 2)"},
		{"decimal", func(*testing.T) *TypeDescriptor { return NewDecimal(12, 4, NumericAttrs{}) }, "DECIMAL(12, 4)"},
		{"decimal unsigned zerofill", func(*testing.T) *TypeDescriptor {
			return NewDecimal(12, 4, NumericAttrs{Unsigned: true, Zerofill: true})
		}, "DECIMAL(12, 4) UNSIGNED ZEROFILL"},
		{"double", double53, "DOUBLE(5, 3)"},
		{"double bare", func(t *testing.T) *TypeDescriptor { return mustDouble(t, NoArg, NoArg, NumericAttrs{}) }, "DOUBLE"},
		{"integer", func(*testing.T) *TypeDescriptor { return NewInteger(NoArg, NumericAttrs{}) }, "INTEGER"},
		{"integer display width", func(*testing.T) *TypeDescriptor { return NewInteger(11, NumericAttrs{}) }, "INTEGER(11)"},
		{"bigint unsigned", func(*testing.T) *TypeDescriptor { return NewBigInt(20, NumericAttrs{Unsigned: true}) }, "BIGINT(20) UNSIGNED"},
		{"tinyint", func(*testing.T) *TypeDescriptor { return NewTinyInt(4, NumericAttrs{}) }, "TINYINT(4)"},
		{"bit", func(*testing.T) *TypeDescriptor { return NewBit(8) }, "BIT(8)"},
		{"bit bare", func(*testing.T) *TypeDescriptor { return NewBit(NoArg) }, "BIT"},
		{"boolean", func(*testing.T) *TypeDescriptor { return NewBoolean() }, "BOOL"},
		{"year", func(*testing.T) *TypeDescriptor { return NewYear(4) }, "YEAR(4)"},
		{"timestamp", func(*testing.T) *TypeDescriptor { return NewTimestamp() }, "TIMESTAMP"},
		{"char", func(*testing.T) *TypeDescriptor { return NewChar(10, StringAttrs{}) }, "CHAR(10)"},
		{"varchar charset collate", func(*testing.T) *TypeDescriptor {
			return NewVarchar(64, StringAttrs{Charset: "utf8", Collation: "utf8_bin"})
		}, "VARCHAR(64) CHARACTER SET utf8 COLLATE utf8_bin"},
		{"varchar ascii", func(*testing.T) *TypeDescriptor { return NewVarchar(30, StringAttrs{ASCII: true}) }, "VARCHAR(30) ASCII"},
		{"char unicode binary", func(*testing.T) *TypeDescriptor {
			return NewChar(20, StringAttrs{Unicode: true, Binary: true})
		}, "CHAR(20) UNICODE BINARY"},
		{"national varchar", func(*testing.T) *TypeDescriptor { return NewNVarchar(30, StringAttrs{}) }, "NATIONAL VARCHAR(30)"},
		{"national char", func(*testing.T) *TypeDescriptor { return NewNChar(10, StringAttrs{}) }, "NATIONAL CHAR(10)"},
		{"national trumps charset", func(*testing.T) *TypeDescriptor {
			return NewNVarchar(30, StringAttrs{Charset: "utf8"})
		}, "NATIONAL VARCHAR(30)"},
		{"text", func(*testing.T) *TypeDescriptor { return NewText(NoArg, StringAttrs{}) }, "TEXT"},
		{"mediumtext charset", func(*testing.T) *TypeDescriptor { return NewMediumText(StringAttrs{Charset: "latin1"}) }, "MEDIUMTEXT CHARACTER SET latin1"},
		{"binary", func(*testing.T) *TypeDescriptor { return NewBinary(16) }, "BINARY(16)"},
		{"binary no length degrades", func(*testing.T) *TypeDescriptor { return NewBinary(NoArg) }, "BLOB"},
		{"varbinary", func(*testing.T) *TypeDescriptor { return NewVarBinary(32) }, "VARBINARY(32)"},
		{"blob", func(*testing.T) *TypeDescriptor { return NewBlob(NoArg) }, "BLOB"},
		{"enum", func(*testing.T) *TypeDescriptor { return NewEnum([]string{"a", "b"}, EnumOpts{}) }, "ENUM('a','b')"},
		{"enum escapes quotes", func(*testing.T) *TypeDescriptor { return NewEnum([]string{"it's"}, EnumOpts{}) }, "ENUM('it''s')"},
		{"set", func(*testing.T) *TypeDescriptor { return NewSet([]string{"x", "y"}, StringAttrs{}) }, "SET('x','y')"},
		{"set prequoted verbatim", func(*testing.T) *TypeDescriptor {
			return NewSet([]string{"'x'", "'y''z'"}, StringAttrs{})
		}, "SET('x','y''z')"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ(t).DDL(); got != tt.want {
				t.Errorf("DDL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCastSpelling(t *testing.T) {
	tests := []struct {
		name string
		typ  *TypeDescriptor
		want string
	}{
		{"signed int", NewInteger(NoArg, NumericAttrs{}), "SIGNED INTEGER"},
		{"unsigned int", NewInteger(NoArg, NumericAttrs{Unsigned: true}), "UNSIGNED INTEGER"},
		{"decimal", NewDecimal(10, 2, NumericAttrs{}), "DECIMAL(10, 2)"},
		{"numeric maps to decimal", NewNumeric(10, 2, NumericAttrs{}), "DECIMAL(10, 2)"},
		{"timestamp maps to datetime", NewTimestamp(), "DATETIME"},
		{"text", NewText(NoArg, StringAttrs{}), "CHAR"},
		{"varchar keeps length", NewVarchar(20, StringAttrs{}), "CHAR(20)"},
		{"blob", NewBlob(NoArg), "BINARY"},
		{"boolean has no spelling", NewBoolean(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := castSpelling(tt.typ); got != tt.want {
				t.Errorf("castSpelling = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCastSpellingFloatEmpty(t *testing.T) {
	f, err := NewFloat(NoArg, NoArg, NumericAttrs{})
	if err != nil {
		t.Fatalf("NewFloat unexpected error: %v", err)
	}
	if got := castSpelling(f); got != "" {
		t.Errorf("castSpelling(float) = %q, want empty", got)
	}
}
