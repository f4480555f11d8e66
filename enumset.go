package mysqldialect

import (
	"fmt"
	"strings"
)

// scanQuotedTokens tokenizes a comma-separated list of single-quoted string
// literals, e.g. the argument list of ENUM('a','b''c'). Tokens are returned
// with their enclosing quotes intact so a single layer of quoting can be
// stripped later. String literals always use single quotes with
// doubled-quote escaping regardless of the identifier quoting mode in
// effect.
func scanQuotedTokens(inside string) ([]string, error) {
	var tokens []string
	i := 0
	for i < len(inside) {
		for i < len(inside) && (inside[i] == ' ' || inside[i] == ',') {
			i++
		}
		if i >= len(inside) {
			break
		}
		if inside[i] != '\'' {
			return nil, fmt.Errorf("invalid enum/set value list %q", inside)
		}
		start := i
		i++

		for i < len(inside) {
			if inside[i] == '\'' {
				if i+1 < len(inside) && inside[i+1] == '\'' {
					i += 2
					continue
				}
				i++
				break
			}
			i++
		}

		tokens = append(tokens, inside[start:i])
	}

	return tokens, nil
}

// detectLiteralQuoting inspects a literal list and decides whether the values
// are pre-quoted. Only when every value starts and ends with the same quote
// character is the list treated as quoted; mixed or empty values fall back to
// unquoted, the safe interpretation.
func detectLiteralQuoting(values []string) bool {
	var q byte
	for _, v := range values {
		if len(v) == 0 {
			return false
		}
		if q == 0 {
			q = v[0]
		}
		if v[0] != q || v[len(v)-1] != q {
			return false
		}
	}
	return q == '\'' || q == '"'
}

// stripLiteralQuotes removes one layer of enclosing quotes from each value,
// un-escaping doubled quote characters inside.
func stripLiteralQuotes(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if len(v) >= 2 && (v[0] == '\'' || v[0] == '"') && v[len(v)-1] == v[0] {
			q := string(v[0])
			v = strings.ReplaceAll(v[1:len(v)-1], q+q, q)
		}
		out[i] = v
	}
	return out
}

// quoteLiteral renders a value as a single-quoted SQL string literal.
func quoteLiteral(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}
