package mysqldialect

import (
	"fmt"
	"strings"
)

// DDL renders the descriptor as a MySQL column type clause.
func (t *TypeDescriptor) DDL() string {
	render, ok := typeDDL[t.Kind]
	if !ok {
		return ""
	}
	return render(t)
}

// typeDDL resolves rendering by kind in a single dispatch table, so adding
// a family cannot disturb the rendering of another.
var typeDDL map[Kind]func(*TypeDescriptor) string

func init() {
	typeDDL = map[Kind]func(*TypeDescriptor) string{
		KindNumeric: func(t *TypeDescriptor) string {
			if t.Precision == NoArg {
				return extendNumeric(t, "NUMERIC")
			}
			return extendNumeric(t, fmt.Sprintf("NUMERIC(%d, %d)", t.Precision, t.Scale))
		},
		KindDecimal: func(t *TypeDescriptor) string {
			switch {
			case t.Precision == NoArg:
				return extendNumeric(t, "DECIMAL")
			case t.Scale == NoArg:
				return extendNumeric(t, fmt.Sprintf("DECIMAL(%d)", t.Precision))
			default:
				return extendNumeric(t, fmt.Sprintf("DECIMAL(%d, %d)", t.Precision, t.Scale))
			}
		},
		KindDouble: floatingDDL("DOUBLE"),
		KindReal:   floatingDDL("REAL"),
		KindFloat: func(t *TypeDescriptor) string {
			switch {
			case t.Precision != NoArg && t.Scale != NoArg:
				return extendNumeric(t, fmt.Sprintf("FLOAT(%d, %d)", t.Precision, t.Scale))
			case t.Precision != NoArg:
				return extendNumeric(t, fmt.Sprintf("FLOAT(%d)", t.Precision))
			default:
				return extendNumeric(t, "FLOAT")
			}
		},
		KindInteger:   integerDDL("INTEGER"),
		KindBigInt:    integerDDL("BIGINT"),
		KindMediumInt: integerDDL("MEDIUMINT"),
		KindTinyInt:   integerDDL("TINYINT"),
		KindSmallInt:  integerDDL("SMALLINT"),
		KindBit: func(t *TypeDescriptor) string {
			if t.Length != NoArg {
				return fmt.Sprintf("BIT(%d)", t.Length)
			}
			return "BIT"
		},
		KindBoolean:   literalDDL("BOOL"),
		KindDateTime:  literalDDL("DATETIME"),
		KindDate:      literalDDL("DATE"),
		KindTime:      literalDDL("TIME"),
		KindTimestamp: literalDDL("TIMESTAMP"),
		KindYear: func(t *TypeDescriptor) string {
			if t.Length != NoArg {
				return fmt.Sprintf("YEAR(%d)", t.Length)
			}
			return "YEAR"
		},
		KindText: func(t *TypeDescriptor) string {
			if t.Length != NoArg {
				return extendString(t, fmt.Sprintf("TEXT(%d)", t.Length))
			}
			return extendString(t, "TEXT")
		},
		KindTinyText:   stringLiteralDDL("TINYTEXT"),
		KindMediumText: stringLiteralDDL("MEDIUMTEXT"),
		KindLongText:   stringLiteralDDL("LONGTEXT"),
		KindVarchar:    charDDL("VARCHAR"),
		KindChar:       charDDL("CHAR"),
		// NVARCHAR/NCHAR render as the equivalent NATIONAL VARCHAR/CHAR.
		KindNVarchar: charDDL("VARCHAR"),
		KindNChar:    charDDL("CHAR"),
		KindVarBinary: func(t *TypeDescriptor) string {
			if t.Length != NoArg {
				return fmt.Sprintf("VARBINARY(%d)", t.Length)
			}
			return blobDDL(t)
		},
		KindBinary: func(t *TypeDescriptor) string {
			if t.Length != NoArg {
				return fmt.Sprintf("BINARY(%d)", t.Length)
			}
			return blobDDL(t)
		},
		KindBlob:       blobDDL,
		KindTinyBlob:   literalDDL("TINYBLOB"),
		KindMediumBlob: literalDDL("MEDIUMBLOB"),
		KindLongBlob:   literalDDL("LONGBLOB"),
		KindEnum: func(t *TypeDescriptor) string {
			quoted := make([]string, len(t.Values))
			for i, v := range t.Values {
				quoted[i] = quoteLiteral(v)
			}
			return extendString(t, "ENUM("+strings.Join(quoted, ",")+")")
		},
		KindSet: func(t *TypeDescriptor) string {
			return extendString(t, "SET("+strings.Join(t.ddlValues, ",")+")")
		},
	}
}

func literalDDL(spec string) func(*TypeDescriptor) string {
	return func(*TypeDescriptor) string { return spec }
}

func stringLiteralDDL(spec string) func(*TypeDescriptor) string {
	return func(t *TypeDescriptor) string { return extendString(t, spec) }
}

func integerDDL(spec string) func(*TypeDescriptor) string {
	return func(t *TypeDescriptor) string {
		if t.Length != NoArg {
			return extendNumeric(t, fmt.Sprintf("%s(%d)", spec, t.Length))
		}
		return extendNumeric(t, spec)
	}
}

func floatingDDL(spec string) func(*TypeDescriptor) string {
	return func(t *TypeDescriptor) string {
		if t.Precision != NoArg && t.Scale != NoArg {
			return extendNumeric(t, fmt.Sprintf("%s(%d, %d)", spec, t.Precision, t.Scale))
		}
		return extendNumeric(t, spec)
	}
}

func charDDL(spec string) func(*TypeDescriptor) string {
	return func(t *TypeDescriptor) string {
		if t.Length != NoArg {
			return extendString(t, fmt.Sprintf("%s(%d)", spec, t.Length))
		}
		return extendString(t, spec)
	}
}

func blobDDL(t *TypeDescriptor) string {
	if t.Length != NoArg {
		return fmt.Sprintf("BLOB(%d)", t.Length)
	}
	return "BLOB"
}

// extendNumeric appends the MySQL numeric extensions to a type clause.
func extendNumeric(t *TypeDescriptor, spec string) string {
	if t.Numeric == nil {
		return spec
	}
	if t.Numeric.Unsigned {
		spec += " UNSIGNED"
	}
	if t.Numeric.Zerofill {
		spec += " ZEROFILL"
	}
	return spec
}

// extendString appends CHARACTER SET / COLLATE annotations and the MySQL
// shorthand extensions to a type clause. NATIONAL trumps charsets.
func extendString(t *TypeDescriptor, spec string) string {
	if t.Str == nil {
		return spec
	}

	var charset string
	switch {
	case t.Str.Charset != "":
		charset = "CHARACTER SET " + t.Str.Charset
	case t.Str.ASCII:
		charset = "ASCII"
	case t.Str.Unicode:
		charset = "UNICODE"
	}

	var collation string
	switch {
	case t.Str.Collation != "":
		collation = "COLLATE " + t.Str.Collation
	case t.Str.Binary:
		collation = "BINARY"
	}

	if t.Str.National {
		return joinClauses("NATIONAL", spec, collation)
	}
	return joinClauses(spec, charset, collation)
}

func joinClauses(parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// castSpelling returns the type name usable as a CAST target, or "" when
// MySQL has no CAST spelling for this type. Callers fall back to emitting
// the inner expression unchanged, which keeps generated statements working
// on servers predating CAST support for the type.
func castSpelling(t *TypeDescriptor) string {
	switch t.Kind {
	case KindInteger, KindBigInt, KindMediumInt, KindTinyInt, KindSmallInt:
		if t.Numeric != nil && t.Numeric.Unsigned {
			return "UNSIGNED INTEGER"
		}
		return "SIGNED INTEGER"
	case KindDecimal, KindDateTime, KindDate, KindTime:
		return t.DDL()
	case KindText, KindTinyText, KindMediumText, KindLongText:
		return "CHAR"
	case KindChar, KindVarchar, KindNChar, KindNVarchar:
		if t.Length != NoArg {
			return fmt.Sprintf("CHAR(%d)", t.Length)
		}
		return "CHAR"
	case KindBinary, KindVarBinary, KindBlob, KindTinyBlob, KindMediumBlob, KindLongBlob:
		return "BINARY"
	case KindNumeric:
		return strings.Replace(t.DDL(), "NUMERIC", "DECIMAL", 1)
	case KindTimestamp:
		return "DATETIME"
	}
	return ""
}
