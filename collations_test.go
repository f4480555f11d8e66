package mysqldialect

import (
	"strings"
	"testing"
)

func collationFixture() []*Table {
	users := &Table{Name: "users"}
	users.AddColumn(&Column{Name: "id", Type: NewInteger(NoArg, NumericAttrs{})})
	users.AddColumn(&Column{Name: "name", Type: NewVarchar(64, StringAttrs{Charset: "utf8", Collation: "utf8_bin"})})
	users.AddColumn(&Column{Name: "bio", Type: NewText(NoArg, StringAttrs{Charset: "latin1", Collation: "latin1_swedish_ci"})})
	return []*Table{users}
}

func TestCollationReportSummaries(t *testing.T) {
	server := map[string]string{
		"utf8_bin":          "utf8",
		"latin1_swedish_ci": "latin1",
	}
	report := CollationReport(collationFixture(), server)

	var hasCharsets, hasCollations bool
	for _, line := range report {
		if strings.Contains(line, "charsets in use") && strings.Contains(line, "latin1, utf8") {
			hasCharsets = true
		}
		if strings.Contains(line, "collations in use") {
			hasCollations = true
		}
		if strings.Contains(line, "not known") || strings.Contains(line, "does not belong") {
			t.Errorf("unexpected finding: %s", line)
		}
	}
	if !hasCharsets || !hasCollations {
		t.Errorf("report = %v, want charset and collation summaries", report)
	}
}

func TestCollationReportUnknownCollation(t *testing.T) {
	server := map[string]string{"utf8_bin": "utf8"}
	report := CollationReport(collationFixture(), server)

	var found bool
	for _, line := range report {
		if strings.Contains(line, "latin1_swedish_ci is not known") && strings.Contains(line, "users.bio") {
			found = true
		}
	}
	if !found {
		t.Errorf("report = %v, want unknown collation finding for users.bio", report)
	}
}

func TestCollationReportCharsetMismatch(t *testing.T) {
	server := map[string]string{
		"utf8_bin":          "utf8mb4",
		"latin1_swedish_ci": "latin1",
	}
	report := CollationReport(collationFixture(), server)

	var found bool
	for _, line := range report {
		if strings.Contains(line, "utf8_bin does not belong") && strings.Contains(line, "users.name") {
			found = true
		}
	}
	if !found {
		t.Errorf("report = %v, want charset mismatch finding for users.name", report)
	}
}

func TestCollationReportEmptyRegistry(t *testing.T) {
	// Pre-4.1 servers have no collation registry; only the usage summary
	// is possible.
	report := CollationReport(collationFixture(), nil)
	for _, line := range report {
		if strings.Contains(line, "not known") || strings.Contains(line, "does not belong") {
			t.Errorf("unexpected finding without registry: %s", line)
		}
	}
	if len(report) != 2 {
		t.Errorf("report = %v, want the two usage summaries only", report)
	}
}

func TestCollationReportNoStringColumns(t *testing.T) {
	t1 := &Table{Name: "t"}
	t1.AddColumn(&Column{Name: "id", Type: NewInteger(NoArg, NumericAttrs{})})
	if report := CollationReport([]*Table{t1}, map[string]string{}); len(report) != 0 {
		t.Errorf("report = %v, want empty", report)
	}
}
