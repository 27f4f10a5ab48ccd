package pdfx

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const dateLayout = "02/01/2006"

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)

// FormatDate renders a PDF creation date as DD/MM/YYYY.
//
// "D:YYYYMMDD..." dates are sliced, ISO-8601 timestamps are parsed in
// their own offset. Anything else, including an ISO-looking string that
// fails to parse, comes back unchanged.
func FormatDate(raw string) string {
	s, _ := parseDate(raw)
	return s
}

func parseDate(raw string) (string, bool) {
	if strings.HasPrefix(raw, "D:") {
		if r := []rune(raw); len(r) >= 10 {
			block := r[2:10]
			return string(block[6:8]) + "/" + string(block[4:6]) + "/" + string(block[0:4]), true
		}
	}
	if strings.Contains(raw, "T") && isoDate.MatchString(raw) {
		t, err := dateparse.ParseIn(raw, time.UTC)
		if err != nil {
			return raw, false
		}
		return t.Format(dateLayout), true
	}
	return raw, true
}
