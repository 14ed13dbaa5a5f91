// Package merge reconciles the AI-derived record with the section-derived
// record. The AI record is primary; section data fills gaps and is never
// allowed to overwrite a non-empty AI value except where a rule says so.
package merge

import (
	"strings"
	"unicode"

	"resumeats-backend/resume/model"
	"resumeats-backend/resume/sections"
	"resumeats-backend/resume/textnorm"
)

// CompanyLexicon holds normalized stems used to locate a company line in raw
// text when an experience entry lost its company. Configurable the same way
// as sections.OrganizationLexicon.
var CompanyLexicon = []string{"dev tech", "empresa", "freela"}

const extracurricularFallbackCompany = "Experiência Extracurricular"

// Reconcile merges the section record into the AI record and applies the
// raw-text backfills. It is a total function: adversarial inputs degrade to
// skips and sentinels, never errors.
func Reconcile(ai, section model.ResumeData, rawText string) model.ResumeData {
	out := ai
	lines := textnorm.Lines(rawText)

	mergePersonalInfo(&out.PersonalInfo, section.PersonalInfo, lines)

	if len(section.Summary) > len(out.Summary) {
		out.Summary = section.Summary
	}

	out.Skills = mergeSkills(out.Skills, section.Skills)

	out.Experiences = mergeExperienceCollections(out.Experiences, section.Experiences)
	out.ExtracurricularExperiences = mergeExperienceCollections(out.ExtracurricularExperiences, section.ExtracurricularExperiences)
	out.ExtracurricularExperiences = dropDateArtifacts(out.ExtracurricularExperiences)

	for i := range out.Experiences {
		exp := &out.Experiences[i]
		if exp.Company == "" {
			if line := sections.FindFirstLine(lines, CompanyLexicon); line != "" {
				company, _, _ := strings.Cut(line, "|")
				exp.Company = textnorm.CleanCompanyName(company)
			} else if company := sections.CompanyFromSection(lines, "experiencia profissional"); company != "" {
				exp.Company = company
			}
		}
		if len(exp.Achievements) == 0 {
			anchor := sections.FindAnchorIndex(lines, []string{exp.Company, exp.Position})
			exp.Achievements = sections.AchievementCandidates(lines, anchor)
		}
	}

	for i := range out.ExtracurricularExperiences {
		exp := &out.ExtracurricularExperiences[i]
		if exp.Company == "" {
			if line := sections.FindFirstLine(lines, sections.OrganizationLexicon); line != "" {
				company, _, _ := strings.Cut(line, "|")
				exp.Company = textnorm.CleanCompanyName(company)
			} else {
				exp.Company = extracurricularFallbackCompany
			}
		}
		if len(exp.Achievements) == 0 {
			anchor := sections.FindAnchorIndex(lines, []string{exp.Company, "liga", "diretoria"})
			exp.Achievements = sections.AchievementCandidates(lines, anchor)
		}
	}

	out.Projects = mergeProjects(out.Projects, section.Projects)

	if len(out.Education) == 0 && len(section.Education) > 0 {
		out.Education = section.Education
	}
	if len(section.Certifications) > len(out.Certifications) {
		out.Certifications = section.Certifications
	}

	if needsLanguageFallback(out.Languages) && len(section.Languages) > 0 {
		out.Languages = section.Languages
	}

	return out
}

func isPlaceholder(value string) bool {
	lowered := strings.ToLower(strings.TrimSpace(value))
	return lowered == "" || lowered == "nao informado" || lowered == "não informado"
}

func fillField(target *string, sectionValue string) {
	if sectionValue != "" && isPlaceholder(*target) {
		*target = sectionValue
	}
}

func mergePersonalInfo(info *model.PersonalInfo, section model.PersonalInfo, lines []string) {
	fillField(&info.FullName, section.FullName)
	fillField(&info.Headline, section.Headline)
	fillField(&info.Email, section.Email)
	fillField(&info.Phone, section.Phone)
	fillField(&info.Location, section.Location)
	fillField(&info.LinkedIn, section.LinkedIn)
	fillField(&info.GitHub, section.GitHub)
	fillField(&info.Portfolio, section.Portfolio)

	// Last resort for the headline: the second raw line, unless it is a
	// labeled contact line.
	if info.Headline == "" && len(lines) > 1 {
		normalized := textnorm.NormalizeForMatch(lines[1])
		labeled := false
		for _, prefix := range []string{"email:", "telefone:", "linkedin:", "github:"} {
			if strings.HasPrefix(normalized, prefix) {
				labeled = true
				break
			}
		}
		if !labeled {
			info.Headline = lines[1]
		}
	}
}

func mergeSkills(ai, section model.Skills) model.Skills {
	categorized := make(map[string]string, len(ai.Categorized)+len(section.Categorized))
	for key, value := range ai.Categorized {
		categorized[key] = value
	}
	for key, value := range section.Categorized {
		categorized[key] = value
	}
	return model.Skills{
		Technical:   textnorm.MergeUnique(ai.Technical, section.Technical),
		Tools:       textnorm.MergeUnique(ai.Tools, section.Tools),
		Soft:        textnorm.MergeUnique(ai.Soft, section.Soft),
		Categorized: categorized,
	}
}

func experienceIdentity(exp model.Experience) string {
	company := textnorm.NormalizeForMatch(exp.Company)
	position := textnorm.NormalizeForMatch(exp.Position)
	if company == "" {
		return position
	}
	return company + "|" + position
}

func mergeExperienceCollections(current, section []model.Experience) []model.Experience {
	// Always copy: the backfill passes mutate entries in place and must not
	// reach back into the caller's record.
	merged := make([]model.Experience, len(current))
	copy(merged, current)
	if len(current) == 0 {
		return append(merged, section...)
	}
	if len(section) == 0 {
		return merged
	}
	indexByKey := make(map[string]int, len(merged))
	for idx, exp := range merged {
		indexByKey[experienceIdentity(exp)] = idx
	}

	for _, sectionItem := range section {
		key := experienceIdentity(sectionItem)
		idx, found := indexByKey[key]

		// A section entry that has a company may still belong to an AI entry
		// that lost its company; pair them by position.
		if !found && sectionItem.Company != "" {
			sectionPosition := textnorm.NormalizeForMatch(sectionItem.Position)
			for i, m := range merged {
				if m.Company == "" && textnorm.NormalizeForMatch(m.Position) == sectionPosition {
					idx, found = i, true
					break
				}
			}
		}

		if !found {
			merged = append(merged, sectionItem)
			indexByKey[key] = len(merged) - 1
			continue
		}

		target := &merged[idx]
		if target.Company == "" {
			target.Company = sectionItem.Company
		}
		if target.Position == "" {
			target.Position = sectionItem.Position
		}
		if target.Location == "" {
			target.Location = sectionItem.Location
		}
		if target.StartDate == "" {
			target.StartDate = sectionItem.StartDate
		}
		if target.EndDate == "" {
			target.EndDate = sectionItem.EndDate
		}
		target.Current = target.Current || sectionItem.Current
		target.Achievements = textnorm.MergeUnique(target.Achievements, sectionItem.Achievements)
	}

	return merged
}

// dropDateArtifacts removes entries whose company is really a date/period
// string, a known artifact of duplicated PDF text.
func dropDateArtifacts(entries []model.Experience) []model.Experience {
	kept := make([]model.Experience, 0, len(entries))
	for _, exp := range entries {
		if sections.IsDateString(exp.Company) {
			continue
		}
		kept = append(kept, exp)
	}
	return kept
}

func isValidProjectName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	first := []rune(trimmed)[0]
	switch first {
	case '-', '–', '—', '•', '·':
		return false
	}
	return !unicode.IsLower(first)
}

func mergeProjects(current, section []model.Project) []model.Project {
	if len(current) == 0 {
		return section
	}
	if len(section) == 0 {
		return current
	}

	merged := make([]model.Project, len(current))
	copy(merged, current)
	indexByKey := make(map[string]int, len(merged))
	for idx, project := range merged {
		indexByKey[textnorm.NormalizeForMatch(project.Name)] = idx
	}

	for _, sectionItem := range section {
		key := textnorm.NormalizeForMatch(sectionItem.Name)
		idx, found := indexByKey[key]
		if !found {
			if !isValidProjectName(sectionItem.Name) {
				continue
			}
			merged = append(merged, sectionItem)
			indexByKey[key] = len(merged) - 1
			continue
		}

		target := &merged[idx]
		if len(sectionItem.Description) > len(target.Description) {
			target.Description = sectionItem.Description
		}
		target.Highlights = textnorm.MergeUnique(target.Highlights, sectionItem.Highlights)
		target.Technologies = textnorm.MergeUnique(target.Technologies, sectionItem.Technologies)
		if target.URL == "" {
			target.URL = sectionItem.URL
		}
	}

	return merged
}

func needsLanguageFallback(languages []model.LanguageEntry) bool {
	if len(languages) == 0 {
		return true
	}
	for _, lang := range languages {
		if !isPlaceholder(lang.Language) {
			return false
		}
	}
	return true
}
