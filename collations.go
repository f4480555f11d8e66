package mysqldialect

import (
	"fmt"
	"sort"
	"strings"
)

// CollationReport audits the string-typed columns of the given tables
// against the server's collation registry, as returned by
// SessionCaps.Collations. It reports the distinct charsets and collations
// in use, collations the server does not know, and collations that do not
// belong to their column's character set. An empty registry (pre-4.1
// server) limits the report to the usage summary.
func CollationReport(tables []*Table, serverCollations map[string]string) []string {
	charsets := make(map[string]bool)
	collations := make(map[string]bool)
	unknownRefs := make(map[string][]string)
	mismatchRefs := make(map[string][]string)

	for _, t := range tables {
		for _, col := range t.Columns {
			str := col.Type.Str
			if str == nil {
				continue
			}
			if str.Charset != "" {
				charsets[str.Charset] = true
			}
			if str.Collation == "" {
				continue
			}
			collations[str.Collation] = true

			if len(serverCollations) == 0 {
				continue
			}
			owner, known := serverCollations[str.Collation]
			ref := fmt.Sprintf("%s.%s", t.Name, col.Name)
			switch {
			case !known:
				unknownRefs[str.Collation] = append(unknownRefs[str.Collation], ref)
			case str.Charset != "" && owner != str.Charset:
				mismatchRefs[str.Collation] = append(mismatchRefs[str.Collation], ref)
			}
		}
	}

	var report []string
	if len(charsets) > 0 {
		report = append(report, fmt.Sprintf("column charsets in use: %s",
			strings.Join(sortedKeys(charsets), ", ")))
	}
	if len(collations) > 0 {
		report = append(report, fmt.Sprintf("column collations in use: %s",
			strings.Join(sortedKeys(collations), ", ")))
	}
	for _, coll := range sortedKeys(unknownRefs) {
		report = append(report, fmt.Sprintf(
			"collation %s is not known to the server: %s",
			coll, strings.Join(unknownRefs[coll], ", ")))
	}
	for _, coll := range sortedKeys(mismatchRefs) {
		report = append(report, fmt.Sprintf(
			"collation %s does not belong to the column character set: %s",
			coll, strings.Join(mismatchRefs[coll], ", ")))
	}
	return report
}

// sortedKeys returns the keys of a map in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
