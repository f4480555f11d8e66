package mysqldialect

import "strings"

// Kind enumerates the MySQL column type families. Rendering and value
// conversion dispatch on Kind rather than on type hierarchies.
type Kind int

const (
	// KindNull is the untyped placeholder substituted for unrecognized
	// reflected type names.
	KindNull Kind = iota

	KindNumeric
	KindDecimal
	KindDouble
	KindReal
	KindFloat
	KindInteger
	KindBigInt
	KindMediumInt
	KindTinyInt
	KindSmallInt
	KindBit
	KindBoolean

	KindDateTime
	KindDate
	KindTime
	KindTimestamp
	KindYear

	KindChar
	KindVarchar
	KindNChar
	KindNVarchar
	KindText
	KindTinyText
	KindMediumText
	KindLongText

	KindBinary
	KindVarBinary
	KindBlob
	KindTinyBlob
	KindMediumBlob
	KindLongBlob

	KindEnum
	KindSet
)

// NoArg marks an absent optional length, precision or scale argument.
const NoArg = -1

// NumericAttrs carries the MySQL-specific numeric column attributes. Only
// meaningful on numeric-family descriptors.
type NumericAttrs struct {
	Unsigned bool
	Zerofill bool
}

// StringAttrs carries the MySQL-specific character-set attributes. Only
// meaningful on string-family descriptors. Charset takes precedence over the
// ASCII/Unicode shorthands; Collation over the Binary shorthand. National
// selects the server's configured national character set and overrides the
// charset shorthands entirely.
type StringAttrs struct {
	Charset   string
	Collation string
	ASCII     bool
	Unicode   bool
	Binary    bool
	National  bool
}

// TypeDescriptor describes one concrete MySQL column type. Descriptors are
// immutable once constructed; reconfiguration requires a new instance.
type TypeDescriptor struct {
	Kind Kind

	// Length is the character/byte length or integer display width; NoArg
	// when absent.
	Length int
	// Precision and Scale apply to the decimal and float families; NoArg
	// when absent.
	Precision int
	Scale     int

	Numeric *NumericAttrs
	Str     *StringAttrs

	// Values holds the unquoted ENUM/SET literals.
	Values []string
	// ddlValues preserves the SET literal list verbatim for DDL output,
	// since SET literal order and quoting are reproduced as supplied.
	ddlValues []string

	// Strict enables client-side validation of bound ENUM values. MySQL
	// itself silently substitutes an empty string for out-of-range values.
	Strict bool
}

func newScalar(kind Kind) *TypeDescriptor {
	return &TypeDescriptor{Kind: kind, Length: NoArg, Precision: NoArg, Scale: NoArg}
}

// NewNumeric constructs a NUMERIC descriptor. Pass NoArg for both precision
// and scale to store values at server limits.
func NewNumeric(precision, scale int, attrs NumericAttrs) *TypeDescriptor {
	t := newScalar(KindNumeric)
	t.Precision, t.Scale = precision, scale
	t.Numeric = &attrs
	return t
}

// NewDecimal constructs a DECIMAL descriptor.
func NewDecimal(precision, scale int, attrs NumericAttrs) *TypeDescriptor {
	t := NewNumeric(precision, scale, attrs)
	t.Kind = KindDecimal
	return t
}

func newFloating(kind Kind, precision, scale int, attrs NumericAttrs) (*TypeDescriptor, error) {
	if (precision == NoArg) != (scale == NoArg) {
		return nil, argumentErrorf("you must specify both precision and scale or omit both altogether")
	}
	t := newScalar(kind)
	t.Precision, t.Scale = precision, scale
	t.Numeric = &attrs
	return t, nil
}

// NewDouble constructs a DOUBLE descriptor. Precision and scale must both be
// given or both be NoArg.
func NewDouble(precision, scale int, attrs NumericAttrs) (*TypeDescriptor, error) {
	return newFloating(KindDouble, precision, scale, attrs)
}

// NewReal constructs a REAL descriptor under the same precision/scale rule
// as NewDouble.
func NewReal(precision, scale int, attrs NumericAttrs) (*TypeDescriptor, error) {
	return newFloating(KindReal, precision, scale, attrs)
}

// NewFloat constructs a FLOAT descriptor under the same precision/scale rule
// as NewDouble.
func NewFloat(precision, scale int, attrs NumericAttrs) (*TypeDescriptor, error) {
	return newFloating(KindFloat, precision, scale, attrs)
}

// NewInteger constructs an INTEGER descriptor. displayWidth is the cosmetic
// MySQL display width, NoArg to omit.
func NewInteger(displayWidth int, attrs NumericAttrs) *TypeDescriptor {
	t := newScalar(KindInteger)
	t.Length = displayWidth
	t.Numeric = &attrs
	return t
}

func newIntegerKind(kind Kind, displayWidth int, attrs NumericAttrs) *TypeDescriptor {
	t := NewInteger(displayWidth, attrs)
	t.Kind = kind
	return t
}

// NewBigInt constructs a BIGINT descriptor.
func NewBigInt(displayWidth int, attrs NumericAttrs) *TypeDescriptor {
	return newIntegerKind(KindBigInt, displayWidth, attrs)
}

// NewMediumInt constructs a MEDIUMINT descriptor.
func NewMediumInt(displayWidth int, attrs NumericAttrs) *TypeDescriptor {
	return newIntegerKind(KindMediumInt, displayWidth, attrs)
}

// NewTinyInt constructs a TINYINT descriptor. Following the usual MySQL
// convention, TINYINT(1) columns are reflected as BOOLEAN; this constructor
// does not apply that rule.
func NewTinyInt(displayWidth int, attrs NumericAttrs) *TypeDescriptor {
	return newIntegerKind(KindTinyInt, displayWidth, attrs)
}

// NewSmallInt constructs a SMALLINT descriptor.
func NewSmallInt(displayWidth int, attrs NumericAttrs) *TypeDescriptor {
	return newIntegerKind(KindSmallInt, displayWidth, attrs)
}

// NewBit constructs a BIT descriptor holding up to length bits, NoArg for
// the server default of one.
func NewBit(length int) *TypeDescriptor {
	t := newScalar(KindBit)
	t.Length = length
	return t
}

// NewBoolean constructs a BOOLEAN (BOOL/TINYINT(1)) descriptor.
func NewBoolean() *TypeDescriptor { return newScalar(KindBoolean) }

// NewDateTime constructs a DATETIME descriptor.
func NewDateTime() *TypeDescriptor { return newScalar(KindDateTime) }

// NewDate constructs a DATE descriptor.
func NewDate() *TypeDescriptor { return newScalar(KindDate) }

// NewTime constructs a TIME descriptor.
func NewTime() *TypeDescriptor { return newScalar(KindTime) }

// NewTimestamp constructs a TIMESTAMP descriptor.
func NewTimestamp() *TypeDescriptor { return newScalar(KindTimestamp) }

// NewYear constructs a YEAR descriptor for single-byte storage of years
// 1901-2155.
func NewYear(displayWidth int) *TypeDescriptor {
	t := newScalar(KindYear)
	t.Length = displayWidth
	return t
}

func newString(kind Kind, length int, attrs StringAttrs) *TypeDescriptor {
	t := newScalar(kind)
	t.Length = length
	t.Str = &attrs
	return t
}

// NewChar constructs a CHAR descriptor for fixed-length character data.
func NewChar(length int, attrs StringAttrs) *TypeDescriptor {
	return newString(KindChar, length, attrs)
}

// NewVarchar constructs a VARCHAR descriptor.
func NewVarchar(length int, attrs StringAttrs) *TypeDescriptor {
	return newString(KindVarchar, length, attrs)
}

// NewNChar constructs an NCHAR descriptor in the server's configured
// national character set.
func NewNChar(length int, attrs StringAttrs) *TypeDescriptor {
	attrs.National = true
	return newString(KindNChar, length, attrs)
}

// NewNVarchar constructs an NVARCHAR descriptor in the server's configured
// national character set.
func NewNVarchar(length int, attrs StringAttrs) *TypeDescriptor {
	attrs.National = true
	return newString(KindNVarchar, length, attrs)
}

// NewText constructs a TEXT descriptor; a length lets the server substitute
// the smallest sufficient TEXT type.
func NewText(length int, attrs StringAttrs) *TypeDescriptor {
	return newString(KindText, length, attrs)
}

// NewTinyText constructs a TINYTEXT descriptor.
func NewTinyText(attrs StringAttrs) *TypeDescriptor {
	return newString(KindTinyText, NoArg, attrs)
}

// NewMediumText constructs a MEDIUMTEXT descriptor.
func NewMediumText(attrs StringAttrs) *TypeDescriptor {
	return newString(KindMediumText, NoArg, attrs)
}

// NewLongText constructs a LONGTEXT descriptor.
func NewLongText(attrs StringAttrs) *TypeDescriptor {
	return newString(KindLongText, NoArg, attrs)
}

// NewBinary constructs a BINARY descriptor; without a length it renders as
// BLOB.
func NewBinary(length int) *TypeDescriptor {
	t := newScalar(KindBinary)
	t.Length = length
	return t
}

// NewVarBinary constructs a VARBINARY descriptor; without a length it
// renders as BLOB.
func NewVarBinary(length int) *TypeDescriptor {
	t := newScalar(KindVarBinary)
	t.Length = length
	return t
}

// NewBlob constructs a BLOB descriptor.
func NewBlob(length int) *TypeDescriptor {
	t := newScalar(KindBlob)
	t.Length = length
	return t
}

// NewTinyBlob constructs a TINYBLOB descriptor.
func NewTinyBlob() *TypeDescriptor { return newScalar(KindTinyBlob) }

// NewMediumBlob constructs a MEDIUMBLOB descriptor.
func NewMediumBlob() *TypeDescriptor { return newScalar(KindMediumBlob) }

// NewLongBlob constructs a LONGBLOB descriptor.
func NewLongBlob() *TypeDescriptor { return newScalar(KindLongBlob) }

// NewNull constructs the untyped placeholder descriptor.
func NewNull() *TypeDescriptor { return newScalar(KindNull) }

// EnumOpts configures ENUM construction.
type EnumOpts struct {
	StringAttrs
	// Strict validates bound values client-side against the literal set.
	Strict bool
}

// NewEnum constructs an ENUM descriptor. Values may be supplied pre-quoted
// or unquoted; when every value is surrounded by the same quote character
// one layer of quoting is stripped (doubled quote characters un-escaped),
// otherwise values are taken literally. An empty value list is accepted
// with a warning.
func NewEnum(values []string, opts EnumOpts) *TypeDescriptor {
	if len(values) == 0 {
		warnf("ENUM with no values")
	}
	if detectLiteralQuoting(values) {
		values = stripLiteralQuotes(values)
	}
	t := newString(KindEnum, maxValueLen(values), opts.StringAttrs)
	t.Values = values
	t.Strict = opts.Strict
	return t
}

// NewSet constructs a SET descriptor. Pre-quoted values are preserved
// verbatim for DDL output, since SET literal order and quoting are
// reproduced exactly as supplied; unquoted values are quoted on rendering.
func NewSet(values []string, attrs StringAttrs) *TypeDescriptor {
	if len(values) == 0 {
		warnf("SET with no values")
	}
	ddl := make([]string, len(values))
	if detectLiteralQuoting(values) {
		copy(ddl, values)
		values = stripLiteralQuotes(values)
	} else {
		for i, v := range values {
			ddl[i] = quoteLiteral(v)
		}
	}
	t := newString(KindSet, maxValueLen(values), attrs)
	t.Values = values
	t.ddlValues = ddl
	return t
}

func maxValueLen(values []string) int {
	n := 0
	for _, v := range values {
		if len(v) > n {
			n = len(v)
		}
	}
	return n
}

// IsNumeric reports whether the descriptor belongs to the numeric family.
func (t *TypeDescriptor) IsNumeric() bool {
	switch t.Kind {
	case KindNumeric, KindDecimal, KindDouble, KindReal, KindFloat,
		KindInteger, KindBigInt, KindMediumInt, KindTinyInt, KindSmallInt:
		return true
	}
	return false
}

// IsInteger reports whether the descriptor is one of the integer kinds.
func (t *TypeDescriptor) IsInteger() bool {
	switch t.Kind {
	case KindInteger, KindBigInt, KindMediumInt, KindTinyInt, KindSmallInt:
		return true
	}
	return false
}

// IsString reports whether the descriptor belongs to the character family.
func (t *TypeDescriptor) IsString() bool {
	switch t.Kind {
	case KindChar, KindVarchar, KindNChar, KindNVarchar,
		KindText, KindTinyText, KindMediumText, KindLongText,
		KindEnum, KindSet:
		return true
	}
	return false
}

// IsBinary reports whether the descriptor belongs to the binary family.
func (t *TypeDescriptor) IsBinary() bool {
	switch t.Kind {
	case KindBinary, KindVarBinary, KindBlob, KindTinyBlob, KindMediumBlob, KindLongBlob:
		return true
	}
	return false
}

// reflectedAttrs carries the keyword attributes captured from a reflected
// column definition into type construction.
type reflectedAttrs struct {
	unsigned bool
	zerofill bool
	charset  string
	collate  string
}

func (a reflectedAttrs) numeric() NumericAttrs {
	return NumericAttrs{Unsigned: a.unsigned, Zerofill: a.zerofill}
}

func (a reflectedAttrs) str() StringAttrs {
	return StringAttrs{Charset: a.charset, Collation: a.collate}
}

// typeCatalog maps reflected type names to kinds. Everything 3.23 through
// 5.1 excepting the OpenGIS types. Immutable after initialization.
var typeCatalog = map[string]Kind{
	"bigint":     KindBigInt,
	"binary":     KindBinary,
	"bit":        KindBit,
	"blob":       KindBlob,
	"bool":       KindBoolean,
	"boolean":    KindBoolean,
	"char":       KindChar,
	"date":       KindDate,
	"datetime":   KindDateTime,
	"decimal":    KindDecimal,
	"double":     KindDouble,
	"enum":       KindEnum,
	"fixed":      KindDecimal,
	"float":      KindFloat,
	"int":        KindInteger,
	"integer":    KindInteger,
	"longblob":   KindLongBlob,
	"longtext":   KindLongText,
	"mediumblob": KindMediumBlob,
	"mediumint":  KindMediumInt,
	"mediumtext": KindMediumText,
	"nchar":      KindNChar,
	"numeric":    KindNumeric,
	"nvarchar":   KindNVarchar,
	"real":       KindReal,
	"set":        KindSet,
	"smallint":   KindSmallInt,
	"text":       KindText,
	"time":       KindTime,
	"timestamp":  KindTimestamp,
	"tinyblob":   KindTinyBlob,
	"tinyint":    KindTinyInt,
	"tinytext":   KindTinyText,
	"varbinary":  KindVarBinary,
	"varchar":    KindVarchar,
	"year":       KindYear,
}

func intArg(args []int, i int) int {
	if i < len(args) {
		return args[i]
	}
	return NoArg
}

// newReflectedType builds a descriptor for a reflected column from its
// lower-cased type tag and parsed arguments. Unknown tags return the
// untyped placeholder and false; reflection proceeds best-effort.
func newReflectedType(tag string, intArgs []int, strArgs []string, attrs reflectedAttrs) (*TypeDescriptor, bool, error) {
	kind, ok := typeCatalog[strings.ToLower(tag)]
	if !ok {
		return NewNull(), false, nil
	}

	switch kind {
	case KindNumeric, KindDecimal:
		t := NewNumeric(intArg(intArgs, 0), intArg(intArgs, 1), attrs.numeric())
		t.Kind = kind
		return t, true, nil
	case KindDouble, KindReal, KindFloat:
		t, err := newFloating(kind, intArg(intArgs, 0), intArg(intArgs, 1), attrs.numeric())
		if err != nil {
			return nil, false, err
		}
		return t, true, nil
	case KindInteger, KindBigInt, KindMediumInt, KindTinyInt, KindSmallInt:
		return newIntegerKind(kind, intArg(intArgs, 0), attrs.numeric()), true, nil
	case KindBit:
		return NewBit(intArg(intArgs, 0)), true, nil
	case KindBoolean:
		return NewBoolean(), true, nil
	case KindDateTime:
		return NewDateTime(), true, nil
	case KindDate:
		return NewDate(), true, nil
	case KindTime:
		return NewTime(), true, nil
	case KindTimestamp:
		return NewTimestamp(), true, nil
	case KindYear:
		return NewYear(intArg(intArgs, 0)), true, nil
	case KindChar, KindVarchar, KindNChar, KindNVarchar, KindText,
		KindTinyText, KindMediumText, KindLongText:
		t := newString(kind, intArg(intArgs, 0), attrs.str())
		if kind == KindNChar || kind == KindNVarchar {
			t.Str.National = true
		}
		return t, true, nil
	case KindBinary:
		return NewBinary(intArg(intArgs, 0)), true, nil
	case KindVarBinary:
		return NewVarBinary(intArg(intArgs, 0)), true, nil
	case KindBlob:
		return NewBlob(intArg(intArgs, 0)), true, nil
	case KindTinyBlob, KindMediumBlob, KindLongBlob:
		return newScalar(kind), true, nil
	case KindEnum:
		t := NewEnum(strArgs, EnumOpts{StringAttrs: attrs.str()})
		return t, true, nil
	case KindSet:
		return NewSet(strArgs, attrs.str()), true, nil
	}
	return NewNull(), false, nil
}
