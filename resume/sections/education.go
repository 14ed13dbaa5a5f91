package sections

import (
	"regexp"
	"strings"

	"resumeats-backend/resume/model"
	"resumeats-backend/resume/textnorm"
)

var educationYearRe = regexp.MustCompile(`(20\d{2})`)

// ParseEducation reads the education bucket positionally: line 0 degree,
// line 1 institution, line 2 period. Best-effort fallback, not authoritative;
// reconciliation only adopts it when the AI record has no education.
func ParseEducation(lines []string) []model.Education {
	if len(lines) == 0 {
		return nil
	}
	entry := model.Education{Degree: strings.TrimSpace(lines[0])}
	if len(lines) > 1 {
		entry.Institution = strings.TrimSpace(lines[1])
	}
	if len(lines) > 2 {
		if year := educationYearRe.FindString(lines[2]); year != "" {
			entry.EndDate = year
		}
	}
	return []model.Education{entry}
}

var courseSplitRe = regexp.MustCompile(`\s+[–-]\s+`)

// ParseCourses splits each line on a spaced dash into "name - issuer"; lines
// without a separator become issuerless entries.
func ParseCourses(lines []string) []model.Certification {
	var courses []model.Certification
	for _, line := range lines {
		text := strings.TrimSpace(strings.TrimLeft(line, "- "))
		if text == "" {
			continue
		}
		cert := model.Certification{Name: text}
		if loc := courseSplitRe.FindStringIndex(text); loc != nil {
			cert.Name = strings.TrimSpace(text[:loc[0]])
			cert.Issuer = strings.TrimSpace(text[loc[1]:])
		}
		courses = append(courses, cert)
	}
	return courses
}

// languageStems identify known language names in normalized text.
var languageStems = []string{"ingl", "espanh", "franc", "alema"}

// ParseLanguages reads "Language: proficiency" lines, skipping the literal
// section header line.
func ParseLanguages(lines []string) []model.LanguageEntry {
	var results []model.LanguageEntry
	for _, line := range lines {
		normalized := textnorm.NormalizeForMatch(line)
		if strings.HasPrefix(normalized, "idiomas") {
			continue
		}
		language, proficiency, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		matched := false
		for _, stem := range languageStems {
			if strings.Contains(normalized, stem) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		results = append(results, model.LanguageEntry{
			Language:    strings.TrimSpace(language),
			Proficiency: strings.TrimSpace(proficiency),
		})
	}
	return results
}
