package sections

import (
	"strings"

	"resumeats-backend/resume/model"
	"resumeats-backend/resume/textnorm"
)

// contactLabels map normalized header-line prefixes to personal-info fields.
var contactLabels = []struct {
	prefix string
	assign func(info *model.PersonalInfo, value string)
}{
	{"email:", func(info *model.PersonalInfo, v string) { info.Email = v }},
	{"telefone:", func(info *model.PersonalInfo, v string) { info.Phone = v }},
	{"linkedin:", func(info *model.PersonalInfo, v string) { info.LinkedIn = v }},
	{"github:", func(info *model.PersonalInfo, v string) { info.GitHub = v }},
	{"cidade:", func(info *model.PersonalInfo, v string) { info.Location = v }},
}

// BuildRecord assembles the deterministic section-derived record from raw
// text. It never fails; unrecognized content simply leaves fields empty.
func BuildRecord(rawText string) model.ResumeData {
	buckets := Split(rawText)
	record := model.EmptyRecord()
	record.PersonalInfo.Location = ""

	header := buckets[SectionHeader]
	if len(header) > 0 {
		record.PersonalInfo.FullName = strings.TrimSpace(header[0])
	}
	if len(header) > 1 {
		record.PersonalInfo.Headline = strings.TrimSpace(header[1])
	}
	for _, line := range header {
		normalized := textnorm.NormalizeForMatch(line)
		for _, label := range contactLabels {
			if !strings.HasPrefix(normalized, label.prefix) {
				continue
			}
			if _, value, found := strings.Cut(line, ":"); found {
				label.assign(&record.PersonalInfo, strings.TrimSpace(value))
			}
			break
		}
	}

	record.Summary = strings.TrimSpace(strings.Join(buckets[SectionSummary], " "))
	record.Skills = ParseSkills(buckets[SectionSkills])
	record.Experiences = ParseExperience(buckets[SectionExperience], record.PersonalInfo.Headline, model.CompanyNotInformed)
	record.ExtracurricularExperiences = ParseExtracurricular(buckets[SectionExtracurricular], record.PersonalInfo.Headline)
	record.Projects = ParseProjects(buckets[SectionProjects])
	record.Education = ParseEducation(buckets[SectionEducation])
	record.Certifications = ParseCourses(buckets[SectionCourses])
	record.Languages = ParseLanguages(buckets[SectionLanguages])

	if record.Experiences == nil {
		record.Experiences = []model.Experience{}
	}
	if record.ExtracurricularExperiences == nil {
		record.ExtracurricularExperiences = []model.Experience{}
	}
	if record.Education == nil {
		record.Education = []model.Education{}
	}
	if record.Certifications == nil {
		record.Certifications = []model.Certification{}
	}
	if record.Languages == nil {
		record.Languages = []model.LanguageEntry{}
	}
	if record.Projects == nil {
		record.Projects = []model.Project{}
	}
	return record
}

// FindFirstLine returns the first raw line whose normalized form contains any
// of the normalized patterns.
func FindFirstLine(lines []string, patterns []string) string {
	normalizedPatterns := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		normalizedPatterns = append(normalizedPatterns, textnorm.NormalizeForMatch(p))
	}
	for _, line := range lines {
		normalized := textnorm.NormalizeForMatch(line)
		for _, pattern := range normalizedPatterns {
			if pattern != "" && strings.Contains(normalized, pattern) {
				return line
			}
		}
	}
	return ""
}

// FindAnchorIndex locates the first line matching any anchor of at least 3
// characters; -1 when none match.
func FindAnchorIndex(lines []string, anchors []string) int {
	normalizedAnchors := make([]string, 0, len(anchors))
	for _, anchor := range anchors {
		if len(strings.TrimSpace(anchor)) < 3 {
			continue
		}
		normalizedAnchors = append(normalizedAnchors, textnorm.NormalizeForMatch(anchor))
	}
	for i, line := range lines {
		normalized := textnorm.NormalizeForMatch(line)
		for _, anchor := range normalizedAnchors {
			if anchor != "" && strings.Contains(normalized, anchor) {
				return i
			}
		}
	}
	return -1
}

// contact-labeled lines never qualify as achievement candidates.
var ignoredCandidatePrefixes = []string{"email:", "telefone:", "linkedin:", "github:", "cidade:", "tecnologias:"}

// AchievementCandidates collects up to 10 substantial lines after the anchor,
// within a 40-line window, stopping at the next recognized section header.
func AchievementCandidates(lines []string, anchorIdx int) []string {
	if anchorIdx < 0 {
		return nil
	}

	var candidates []string
	limit := anchorIdx + 40
	if limit > len(lines) {
		limit = len(lines)
	}
	for _, line := range lines[anchorIdx+1 : limit] {
		normalized := textnorm.NormalizeForMatch(line)
		if _, ok := DetectSection(normalized); ok {
			break
		}
		skip := false
		for _, prefix := range ignoredCandidatePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				skip = true
				break
			}
		}
		if skip || len(line) < 20 {
			continue
		}
		text := line
		if strings.HasPrefix(line, "-") {
			text = strings.TrimSpace(strings.TrimLeft(line, "- "))
		}
		candidates = append(candidates, text)
		if len(candidates) >= 10 {
			break
		}
	}
	return textnorm.DedupeKeepOrder(candidates)
}

// CompanyFromSection scans up to 11 lines after a section title for a piped
// header line carrying a month token and returns its company part.
func CompanyFromSection(lines []string, sectionTitle string) string {
	sectionIdx := FindAnchorIndex(lines, []string{sectionTitle})
	if sectionIdx < 0 {
		return ""
	}
	limit := sectionIdx + 12
	if limit > len(lines) {
		limit = len(lines)
	}
	for _, line := range lines[sectionIdx+1 : limit] {
		normalized := textnorm.NormalizeForMatch(line)
		if strings.Contains(line, "|") && containsMonthToken(normalized) {
			company, _, _ := strings.Cut(line, "|")
			return textnorm.CleanCompanyName(company)
		}
	}
	return ""
}
