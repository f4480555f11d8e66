package mysqldialect

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DecodeResult transforms a raw driver value for a column of this type into
// its abstract representation. Types without conversion behavior return the
// value unchanged.
func (t *TypeDescriptor) DecodeResult(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch t.Kind {
	case KindBit:
		// MySQL hands BIT back as a variable-length big-endian binary
		// string of up to 64 bits.
		b, ok := v.([]byte)
		if !ok {
			return nil, fmt.Errorf("cannot decode BIT value of type %T", v)
		}
		var n uint64
		for _, c := range b {
			n = n<<8 | uint64(c)
		}
		return n, nil

	case KindSet:
		return decodeSetValue(v)

	case KindTime:
		switch tv := v.(type) {
		case time.Duration:
			return tv, nil
		case int64:
			// Some drivers deliver TIME as whole seconds.
			return time.Duration(tv) * time.Second, nil
		case []byte:
			return parseTimeValue(string(tv))
		case string:
			return parseTimeValue(tv)
		}
		return nil, fmt.Errorf("cannot decode TIME value of type %T", v)

	case KindBoolean:
		switch b := v.(type) {
		case bool:
			return b, nil
		case int64:
			return b != 0, nil
		case []byte:
			return string(b) != "0" && len(b) > 0, nil
		}
		return nil, fmt.Errorf("cannot decode BOOLEAN value of type %T", v)

	default:
		return v, nil
	}
}

// parseTimeValue converts MySQL's TIME text, e.g. "-838:59:59.000001", into
// a duration. TIME is an elapsed time rather than a time of day; hours run
// well past 24 and the value may be negative.
func parseTimeValue(s string) (time.Duration, error) {
	rest := s
	neg := strings.HasPrefix(rest, "-")
	if neg {
		rest = rest[1:]
	}
	var frac string
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		rest, frac = rest[:i], rest[i+1:]
	}
	parts := strings.Split(rest, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("cannot decode TIME value %q", s)
	}
	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("cannot decode TIME value %q", s)
		}
		fields[i] = n
	}
	d := time.Duration(fields[0])*time.Hour +
		time.Duration(fields[1])*time.Minute +
		time.Duration(fields[2])*time.Second
	if frac != "" {
		micros, err := strconv.Atoi((frac + "000000")[:6])
		if err != nil {
			return 0, fmt.Errorf("cannot decode TIME value %q", s)
		}
		d += time.Duration(micros) * time.Microsecond
	}
	if neg {
		d = -d
	}
	return d, nil
}

// decodeSetValue normalizes the driver-specific shapes a SET value arrives
// in. Commas cannot appear inside SET values, so splitting is safe; drivers
// variously return strings, byte slices, sequences, or ready-made sets. An
// empty value decodes to a set holding the single empty string, matching
// the behavior observed against live servers.
func decodeSetValue(v any) (map[string]bool, error) {
	switch sv := v.(type) {
	case map[string]bool:
		out := make(map[string]bool, len(sv))
		for s, on := range sv {
			out[s] = on
		}
		if len(out) == 0 {
			out[""] = true
		}
		return out, nil
	case []string:
		out := make(map[string]bool, len(sv))
		for _, s := range sv {
			out[s] = true
		}
		if len(out) == 0 {
			out[""] = true
		}
		return out, nil
	case string:
		return setFromString(sv), nil
	case []byte:
		return setFromString(string(sv)), nil
	}
	return nil, fmt.Errorf("cannot decode SET value of type %T", v)
}

func setFromString(s string) map[string]bool {
	out := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		out[part] = true
	}
	return out
}

// EncodeBind transforms an abstract value into the driver representation for
// a column of this type. An ENUM constructed with Strict rejects values
// outside its declared set; MySQL itself would silently store an empty
// string instead.
func (t *TypeDescriptor) EncodeBind(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch t.Kind {
	case KindEnum:
		s, ok := v.(string)
		if t.Strict && ok && !contains(t.Values, s) {
			return nil, &InvalidValueError{
				Msg: fmt.Sprintf("%q not a valid value for this enum", s),
			}
		}
		return v, nil

	case KindSet:
		switch sv := v.(type) {
		case string:
			return sv, nil
		case []string:
			return strings.Join(sv, ","), nil
		case map[string]bool:
			parts := make([]string, 0, len(sv))
			for s, on := range sv {
				if on {
					parts = append(parts, s)
				}
			}
			sort.Strings(parts)
			return strings.Join(parts, ","), nil
		}
		return v, nil

	case KindBoolean:
		if b, ok := v.(bool); ok {
			if b {
				return int64(1), nil
			}
			return int64(0), nil
		}
		return v, nil

	default:
		return v, nil
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
