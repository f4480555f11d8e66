package mysqldialect

import "strings"

// optionShape selects how a table option's value is scanned.
type optionShape int

const (
	// optWord values are a single \w+ token, such as ENGINE=InnoDB.
	optWord optionShape = iota
	// optString values are single-quoted literals with '' escaping, such
	// as COMMENT='...'.
	optString
	// optParen values are a parenthesized list, such as UNION=(t1,t2).
	optParen
	// optTablespace values run through the STORAGE DISK trailer.
	optTablespace
	// optRaid values span the RAID_CHUNKS and RAID_CHUNKSIZE settings that
	// MyISAM RAID tables append after RAID_TYPE.
	optRaid
)

type tableOption struct {
	directive string
	shape     optionShape
}

// tableOptions is every option recognized on the closing line of SHOW
// CREATE TABLE output. Directives are matched anywhere on the line, in
// this order; multi-word directives must precede their shorter suffixes.
var tableOptions = []tableOption{
	{"ENGINE", optWord},
	{"TYPE", optWord},
	{"AUTO_INCREMENT", optWord},
	{"AVG_ROW_LENGTH", optWord},
	{"CHARACTER SET", optWord},
	{"DEFAULT CHARSET", optWord},
	{"CHECKSUM", optWord},
	{"COLLATE", optWord},
	{"DELAY_KEY_WRITE", optWord},
	{"INSERT_METHOD", optWord},
	{"MAX_ROWS", optWord},
	{"MIN_ROWS", optWord},
	{"PACK_KEYS", optWord},
	{"ROW_FORMAT", optWord},
	{"KEY_BLOCK_SIZE", optWord},
	{"COMMENT", optString},
	{"DATA DIRECTORY", optString},
	{"INDEX DIRECTORY", optString},
	{"PASSWORD", optString},
	{"CONNECTION", optString},
	{"UNION", optParen},
	{"TABLESPACE", optTablespace},
	{"RAID_TYPE", optRaid},
}

// parseTableOptions extracts recognized options from the closing line of a
// CREATE TABLE statement. Keys are the lowercased directives with spaces
// replaced by underscores; unrecognized content is ignored.
func parseTableOptions(line string) map[string]string {
	options := make(map[string]string)
	for _, opt := range tableOptions {
		if val, ok := findOption(line, opt); ok {
			key := strings.ReplaceAll(strings.ToLower(opt.directive), " ", "_")
			options[key] = val
		}
	}
	return options
}

// findOption searches line for the directive at a word boundary followed
// by an optional "=" and a value of the option's shape.
func findOption(line string, opt tableOption) (string, bool) {
	for from := 0; from < len(line); {
		at := indexFold(line[from:], opt.directive)
		if at < 0 {
			return "", false
		}
		at += from
		end := at + len(opt.directive)
		if (at > 0 && isWordChar(line[at-1])) || (end < len(line) && isWordChar(line[end])) {
			from = end
			continue
		}
		if val, ok := scanOptionValue(line[end:], opt.shape); ok {
			return val, true
		}
		from = end
	}
	return "", false
}

func indexFold(s, sub string) int {
	return strings.Index(strings.ToUpper(s), strings.ToUpper(sub))
}

func scanOptionValue(s string, shape optionShape) (string, bool) {
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}
	if i < len(s) && s[i] == '=' {
		i++
		for i < len(s) && s[i] == ' ' {
			i++
		}
	}
	s = s[i:]
	if s == "" {
		return "", false
	}

	switch shape {
	case optWord:
		end := 0
		for end < len(s) && isWordChar(s[end]) {
			end++
		}
		if end == 0 {
			return "", false
		}
		return s[:end], true

	case optString:
		if s[0] != '\'' {
			return "", false
		}
		j := 1
		for j < len(s) {
			if s[j] == '\'' {
				if j+1 < len(s) && s[j+1] == '\'' {
					j += 2
					continue
				}
				return strings.ReplaceAll(s[1:j], "''", "'"), true
			}
			j++
		}
		return "", false

	case optParen:
		if s[0] != '(' {
			return "", false
		}
		j := strings.IndexByte(s, ')')
		if j < 0 {
			return "", false
		}
		return s[:j+1], true

	case optTablespace:
		// The value runs through the STORAGE DISK trailer, inclusive.
		const trailer = " STORAGE DISK"
		j := indexFold(s, trailer)
		if j < 0 {
			return "", false
		}
		return s[:j+len(trailer)], true

	case optRaid:
		// The value spans through RAID_CHUNKSIZE and its setting.
		j := indexFold(s, "RAID_CHUNKSIZE")
		if j < 0 {
			return "", false
		}
		end := j + len("RAID_CHUNKSIZE")
		for end < len(s) && (s[end] == ' ' || s[end] == '=') {
			end++
		}
		start := end
		for end < len(s) && isWordChar(s[end]) {
			end++
		}
		if end == start {
			return "", false
		}
		return s[:end], true
	}
	return "", false
}
