package sections

import (
	"regexp"
	"strings"

	"resumeats-backend/resume/textnorm"
)

var monthNumbers = map[string]string{
	"jan": "01", "fev": "02", "mar": "03", "abr": "04",
	"mai": "05", "jun": "06", "jul": "07", "ago": "08",
	"set": "09", "out": "10", "nov": "11", "dez": "12",
}

var monthTokens = []string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

const monthAlt = `(jan|fev|mar|abr|mai|jun|jul|ago|set|out|nov|dez)`

var (
	monthRangeRe = regexp.MustCompile(monthAlt + `\s*(\d{4})\s*-\s*(atual|presente|` + monthAlt + `\s*(\d{4})|\d{4})`)
	endMonthRe   = regexp.MustCompile(monthAlt + `\s*(\d{4})`)
	yearRangeRe  = regexp.MustCompile(`((?:19|20)\d{2})\s*-\s*(atual|presente|(?:19|20)\d{2})`)
	yearRe       = regexp.MustCompile(`(19|20)\d{2}`)
	anyYearRe    = regexp.MustCompile(`\d{4}`)
)

// ParsePeriod parses a free-text date range into a (start, end, current)
// triple. Start is YYYY-MM for month ranges or a bare year; end mirrors the
// matched alternative, canonicalized to "Atual" for current markers. Lines
// without a recognizable range yield ("", "", false).
func ParsePeriod(line string) (start, end string, current bool) {
	normalized := textnorm.NormalizeForMatch(line)

	if m := monthRangeRe.FindStringSubmatch(normalized); m != nil {
		startMonth := monthNumbers[m[1]]
		start = m[2]
		if startMonth != "" {
			start = m[2] + "-" + startMonth
		}
		endToken := strings.TrimSpace(m[3])
		if endToken == "atual" || endToken == "presente" {
			return start, "Atual", true
		}
		if em := endMonthRe.FindStringSubmatch(endToken); em != nil {
			end = em[2]
			if endMonth := monthNumbers[em[1]]; endMonth != "" {
				end = em[2] + "-" + endMonth
			}
			return start, end, false
		}
		if year := yearRe.FindString(endToken); year != "" {
			return start, year, false
		}
		return start, "", false
	}

	if m := yearRangeRe.FindStringSubmatch(normalized); m != nil {
		if m[2] == "atual" || m[2] == "presente" {
			return m[1], "Atual", true
		}
		return m[1], m[2], false
	}

	return "", "", false
}

// IsExperienceHeaderLine reports whether a line opens a new experience entry:
// not bullet-prefixed, and either pipe-separated with a date token, or a
// short line carrying both a year and a current marker.
func IsExperienceHeaderLine(line string) bool {
	if strings.HasPrefix(line, "-") {
		return false
	}
	normalized := textnorm.NormalizeForMatch(line)
	hasYear := yearRe.MatchString(normalized)
	hasMonth := containsMonthToken(normalized)
	hasCurrent := strings.Contains(normalized, "atual") || strings.Contains(normalized, "presente")
	if strings.Contains(line, "|") && (hasYear || hasMonth) {
		return true
	}
	return len(line) <= 100 && hasYear && hasCurrent
}

// IsDateString reports whether a value looks like a date/period string rather
// than a name: it carries a 4-digit year plus a month or current token.
func IsDateString(value string) bool {
	normalized := textnorm.NormalizeForMatch(value)
	if !anyYearRe.MatchString(normalized) {
		return false
	}
	if containsMonthToken(normalized) {
		return true
	}
	return strings.Contains(normalized, "atual") || strings.Contains(normalized, "presente")
}

func containsMonthToken(normalized string) bool {
	for _, token := range monthTokens {
		if strings.Contains(normalized, token) {
			return true
		}
	}
	return false
}
