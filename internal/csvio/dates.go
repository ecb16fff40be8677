package csvio

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	canonicalDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})([T ].*)?$`)
	slashDatePattern     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	slashShortYear       = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2})$`)
	yearFirstSlash       = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)
	dashMonthFirst       = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	dashYearFirst        = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	dotMonthFirst        = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)
	monthPrecision       = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
	monthNameYear        = regexp.MustCompile(`^([A-Za-z]{3,9})\.?,?\s+(\d{4})$`)
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04:05",
}

var monthsByName = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// NormalizeDate converts a heterogeneous date string to the canonical
// YYYY-MM-DD form. Patterns are attempted in a fixed order and the first one
// that matches and yields a valid calendar date wins; slash dates are
// month-first unless the first group exceeds 12, and two-digit years pivot at
// 30 (00-30 map to the 2000s). Failure is reported through ok, never an
// error.
func NormalizeDate(raw string) (normalized string, ok bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}

	if m := canonicalDatePattern.FindStringSubmatch(value); m != nil {
		return buildDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if m := slashDatePattern.FindStringSubmatch(value); m != nil {
		first, second, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if first > 12 && second <= 12 {
			// Day-first is the only valid reading.
			return buildDate(year, second, first)
		}
		return buildDate(year, first, second)
	}

	if m := slashShortYear.FindStringSubmatch(value); m != nil {
		year := atoi(m[3])
		if year <= 30 {
			year += 2000
		} else {
			year += 1900
		}
		return buildDate(year, atoi(m[1]), atoi(m[2]))
	}

	if m := yearFirstSlash.FindStringSubmatch(value); m != nil {
		return buildDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if m := dashMonthFirst.FindStringSubmatch(value); m != nil {
		return buildDate(atoi(m[3]), atoi(m[1]), atoi(m[2]))
	}

	if m := dashYearFirst.FindStringSubmatch(value); m != nil {
		return buildDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if m := dotMonthFirst.FindStringSubmatch(value); m != nil {
		return buildDate(atoi(m[3]), atoi(m[1]), atoi(m[2]))
	}

	if m := monthPrecision.FindStringSubmatch(value); m != nil {
		return buildDate(atoi(m[1]), atoi(m[2]), 1)
	}

	if m := monthNameYear.FindStringSubmatch(value); m != nil {
		if month, known := monthsByName[strings.ToLower(m[1])]; known {
			return buildDate(atoi(m[2]), month, 1)
		}
		return "", false
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return buildDate(ts.Year(), int(ts.Month()), ts.Day())
		}
	}

	return "", false
}

// buildDate validates ranges and the calendar (rejecting e.g. Feb 30) before
// rendering the canonical form.
func buildDate(year, month, day int) (string, bool) {
	if year < 1900 || year > 2100 || month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	constructed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if constructed.Year() != year || int(constructed.Month()) != month || constructed.Day() != day {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

func atoi(value string) int {
	n, _ := strconv.Atoi(value)
	return n
}
