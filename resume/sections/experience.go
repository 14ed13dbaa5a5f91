package sections

import (
	"regexp"
	"strings"

	"resumeats-backend/resume/model"
	"resumeats-backend/resume/textnorm"
)

// OrganizationLexicon holds normalized stems that identify an extracurricular
// organization line. Deployments can extend it; anything outside the lexicon
// falls back to the bucket's first line.
var OrganizationLexicon = []string{"l.u.m.i.n.a", "liga academica"}

// cityMarkers are normalized location tokens accepted on an extracurricular
// date line. A part carrying a 4-digit year is never a location.
var cityMarkers = []string{"sao luis", "sp", "rj", "ma"}

// ParseExperience turns an experience bucket into entries. Header lines open
// a new entry; other lines accumulate as achievements under the open entry,
// with a synthetic entry opened when achievements appear before any header.
func ParseExperience(lines []string, defaultPosition, fallbackCompany string) []model.Experience {
	if len(lines) == 0 {
		return nil
	}
	if fallbackCompany == "" {
		fallbackCompany = model.CompanyNotInformed
	}
	if defaultPosition == "" {
		defaultPosition = model.PositionNotInformed
	}

	var entries []model.Experience
	var current *model.Experience

	closeCurrent := func() {
		if current == nil {
			return
		}
		if current.Company != "" || len(current.Achievements) > 0 {
			current.Achievements = textnorm.JoinFragmented(textnorm.DedupeKeepOrder(current.Achievements))
			entries = append(entries, *current)
		}
		current = nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if IsExperienceHeaderLine(line) {
			closeCurrent()
			companyPart := line
			if idx := strings.Index(line, "|"); idx >= 0 {
				companyPart = line[:idx]
			}
			company := textnorm.CleanCompanyName(companyPart)
			if company == "" {
				company = fallbackCompany
			}
			start, end, isCurrent := ParsePeriod(line)
			current = &model.Experience{
				Company:   company,
				Position:  defaultPosition,
				StartDate: start,
				EndDate:   end,
				Current:   isCurrent,
			}
			continue
		}

		if current == nil {
			current = &model.Experience{
				Company:  fallbackCompany,
				Position: defaultPosition,
			}
		}
		current.Achievements = append(current.Achievements, line)
	}
	closeCurrent()

	return entries
}

var positionSplitRe = regexp.MustCompile(`[?|]`)

// ParseExtracurricular applies the single-entry heuristic: an organization
// line from the lexicon (default first line), a position from the first
// label/value split, and the first date-bearing line for period and location.
func ParseExtracurricular(lines []string, defaultPosition string) []model.Experience {
	if len(lines) == 0 {
		return nil
	}
	if defaultPosition == "" {
		defaultPosition = model.PositionNotInformed
	}

	entry := model.Experience{Position: defaultPosition}

	for _, line := range lines {
		normalized := textnorm.NormalizeForMatch(line)
		for _, stem := range OrganizationLexicon {
			if strings.Contains(normalized, stem) {
				entry.Company = strings.TrimSpace(line)
				break
			}
		}
		if entry.Company != "" {
			break
		}
	}
	if entry.Company == "" {
		entry.Company = strings.TrimSpace(lines[0])
	}

	for _, line := range lines {
		splitter := ""
		switch {
		case strings.Contains(line, "?"):
			splitter = "?"
		case strings.Contains(line, "-"):
			splitter = "-"
		}
		if splitter == "" {
			continue
		}
		parts := strings.SplitN(line, splitter, 2)
		if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
			entry.Position = strings.TrimSpace(parts[1])
		}
		break
	}

	dateLineIdx := -1
	for idx, line := range lines {
		normalized := textnorm.NormalizeForMatch(line)
		if !IsExperienceHeaderLine(line) && !containsMonthToken(normalized) {
			continue
		}
		entry.StartDate, entry.EndDate, entry.Current = ParsePeriod(line)
		for _, part := range positionSplitRe.Split(line, -1) {
			partNorm := textnorm.NormalizeForMatch(part)
			for _, marker := range cityMarkers {
				if strings.Contains(partNorm, marker) && !anyYearRe.MatchString(part) {
					entry.Location = strings.TrimSpace(part)
				}
			}
		}
		dateLineIdx = idx
		break
	}

	for idx, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" || idx == 0 {
			continue
		}
		if dateLineIdx >= 0 && idx <= dateLineIdx {
			continue
		}
		if strings.HasPrefix(stripped, "-") {
			entry.Achievements = append(entry.Achievements, stripped)
			continue
		}
		if IsExperienceHeaderLine(stripped) {
			continue
		}
		if stripped == entry.Company || stripped == entry.Position {
			continue
		}
		entry.Achievements = append(entry.Achievements, stripped)
	}
	entry.Achievements = textnorm.DedupeKeepOrder(entry.Achievements)

	return []model.Experience{entry}
}
