package mysqldialect

import (
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// ServerVersion is a parsed MySQL version string. Trailing non-numeric
// build segments such as "-log" or the "a" of "5.0.51a" are preserved but
// do not take part in comparisons.
type ServerVersion struct {
	Raw    string
	Parts  []int
	Suffix string

	numeric *goversion.Version
}

// ParseServerVersion parses the result of SELECT VERSION().
func ParseServerVersion(raw string) (*ServerVersion, error) {
	sv := &ServerVersion{Raw: raw}
	rest := raw
	for {
		digits := 0
		for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
			digits++
		}
		if digits == 0 {
			break
		}
		n := 0
		for _, c := range rest[:digits] {
			n = n*10 + int(c-'0')
		}
		sv.Parts = append(sv.Parts, n)
		rest = rest[digits:]
		if !strings.HasPrefix(rest, ".") {
			break
		}
		rest = rest[1:]
	}
	sv.Suffix = rest

	if len(sv.Parts) == 0 {
		return nil, fmt.Errorf("unparseable server version %q", raw)
	}
	segs := make([]string, len(sv.Parts))
	for i, p := range sv.Parts {
		segs[i] = fmt.Sprintf("%d", p)
	}
	numeric, err := goversion.NewVersion(strings.Join(segs, "."))
	if err != nil {
		return nil, fmt.Errorf("parse server version %q: %w", raw, err)
	}
	sv.numeric = numeric
	return sv, nil
}

// AtLeast reports whether the server is at or above the given threshold,
// e.g. "4.1.0".
func (sv *ServerVersion) AtLeast(threshold string) bool {
	return sv.numeric.GreaterThanOrEqual(goversion.Must(goversion.NewVersion(threshold)))
}

// OlderThan reports whether the server predates the given threshold.
func (sv *ServerVersion) OlderThan(threshold string) bool {
	return sv.numeric.LessThan(goversion.Must(goversion.NewVersion(threshold)))
}

func (sv *ServerVersion) String() string { return sv.Raw }
