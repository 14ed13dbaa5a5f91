// Package sections rebuilds a canonical resume record directly from raw
// extracted text. Everything here is deterministic and free of I/O; the raw
// line sequence is the only input.
package sections

import (
	"strings"

	"resumeats-backend/resume/textnorm"
)

// Section identifies a resume section bucket.
type Section int

const (
	SectionHeader Section = iota
	SectionSummary
	SectionSkills
	SectionExperience
	SectionExtracurricular
	SectionProjects
	SectionEducation
	SectionCourses
	SectionLanguages
)

func (s Section) String() string {
	switch s {
	case SectionHeader:
		return "header"
	case SectionSummary:
		return "summary"
	case SectionSkills:
		return "skills"
	case SectionExperience:
		return "experience"
	case SectionExtracurricular:
		return "extracurricular"
	case SectionProjects:
		return "projects"
	case SectionEducation:
		return "education"
	case SectionCourses:
		return "courses"
	case SectionLanguages:
		return "languages"
	}
	return "unknown"
}

// headerRule pairs a predicate over the normalized line with its section.
// Rules are evaluated in order; the first match wins. Extracurricular must
// outrank plain experience because its headers also contain "exper".
type headerRule struct {
	section Section
	match   func(line string) bool
}

var headerRules = []headerRule{
	{SectionSummary, func(l string) bool {
		return strings.Contains(l, "resumo") && strings.Contains(l, "prof")
	}},
	{SectionSkills, func(l string) bool {
		return strings.Contains(l, "habil") || l == "skills" || l == "skill"
	}},
	{SectionExtracurricular, func(l string) bool {
		return strings.Contains(l, "exper") && (strings.Contains(l, "extrac") || strings.Contains(l, "extra"))
	}},
	{SectionExtracurricular, func(l string) bool {
		return strings.Contains(l, "liga") && (strings.Contains(l, "academ") || strings.Contains(l, "acad"))
	}},
	{SectionExperience, func(l string) bool {
		return strings.Contains(l, "exper") && (strings.Contains(l, "prof") || strings.Contains(l, "trabalh"))
	}},
	{SectionProjects, func(l string) bool {
		return strings.HasPrefix(l, "projet")
	}},
	{SectionEducation, func(l string) bool {
		if strings.Contains(l, "forma") && (strings.Contains(l, "academ") || strings.Contains(l, "acad")) {
			return true
		}
		return strings.Contains(l, "educa")
	}},
	{SectionCourses, func(l string) bool {
		return strings.Contains(l, "curso") &&
			(strings.Contains(l, "complement") || strings.Contains(l, "certif") || len(strings.Fields(l)) <= 3)
	}},
	{SectionLanguages, func(l string) bool {
		return strings.HasPrefix(l, "idiom") || strings.Contains(l, "idioma") || strings.Contains(l, "lingua")
	}},
}

// DetectSection classifies a normalized line as a section header. The second
// return is false when the line is not a header.
func DetectSection(normalized string) (Section, bool) {
	line := strings.TrimRight(strings.TrimSpace(normalized), ":")
	if line == "" {
		return SectionHeader, false
	}
	for _, rule := range headerRules {
		if rule.match(line) {
			return rule.section, true
		}
	}
	return SectionHeader, false
}

// Split segments raw text into section buckets. Lines before the first
// recognized header land in the header bucket; header lines themselves are
// consumed, not stored.
func Split(rawText string) map[Section][]string {
	buckets := map[Section][]string{}
	current := SectionHeader
	for _, line := range textnorm.Lines(rawText) {
		if section, ok := DetectSection(textnorm.NormalizeForMatch(line)); ok {
			current = section
			continue
		}
		buckets[current] = append(buckets[current], line)
	}
	return buckets
}
