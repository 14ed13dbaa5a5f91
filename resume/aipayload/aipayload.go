// Package aipayload coerces the untrusted JSON object returned by the AI
// model into the canonical record shape. Every branch has a defined fallback;
// nothing here returns an error, no matter how malformed the payload is.
package aipayload

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"resumeats-backend/resume/model"
	"resumeats-backend/resume/textnorm"
)

// Normalize decodes and coerces a raw AI payload. Decode failures yield an
// empty record; the caller is expected to have validated JSON syntax at the
// boundary already.
func Normalize(raw json.RawMessage) model.ResumeData {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return model.EmptyRecord()
	}
	return NormalizeValue(parsed)
}

// NormalizeValue coerces an already-decoded JSON tree. A single-element list
// is unwrapped; anything that is not an object yields an empty record.
func NormalizeValue(parsed any) model.ResumeData {
	if list, ok := parsed.([]any); ok {
		if len(list) == 0 {
			return model.EmptyRecord()
		}
		parsed = list[0]
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return model.EmptyRecord()
	}

	record := model.EmptyRecord()
	record.PersonalInfo = normalizePersonalInfo(obj["personal_info"])
	record.Summary = toStr(obj["summary"])

	for _, item := range ensureList(obj["experiences"]) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		record.Experiences = append(record.Experiences, normalizeExperience(entry, record.PersonalInfo.Headline))
	}

	rawExtracurricular := firstPresent(obj, "extracurricular_experiences", "extracurricular", "experiencias_extracurriculares")
	for _, item := range ensureList(rawExtracurricular) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		record.ExtracurricularExperiences = append(record.ExtracurricularExperiences, normalizeExperience(entry, record.PersonalInfo.Headline))
	}

	// When the model lumped everything into experiences, reclassify the ones
	// that read as extracurricular.
	if len(record.ExtracurricularExperiences) == 0 && len(record.Experiences) > 0 {
		var regular, extracurricular []model.Experience
		for _, exp := range record.Experiences {
			if looksExtracurricular(exp) {
				extracurricular = append(extracurricular, exp)
			} else {
				regular = append(regular, exp)
			}
		}
		if len(regular) > 0 {
			record.Experiences = regular
		}
		record.ExtracurricularExperiences = append(record.ExtracurricularExperiences, extracurricular...)
	}

	for _, item := range ensureList(obj["education"]) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		record.Education = append(record.Education, model.Education{
			Institution: toStr(entry["institution"]),
			Degree:      toStr(entry["degree"]),
			Location:    toStr(entry["location"]),
			StartDate:   toStr(entry["start_date"]),
			EndDate:     toStr(entry["end_date"]),
		})
	}

	record.Skills = rebalanceSkills(normalizeSkills(obj["skills"]))

	for _, item := range ensureList(obj["certifications"]) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		record.Certifications = append(record.Certifications, model.Certification{
			Name:   toStr(entry["name"]),
			Issuer: toStr(firstPresent(entry, "issuer", "institution")),
			Date:   toStr(entry["date"]),
			URL:    NormalizeURL(entry["url"]),
		})
	}

	for _, item := range ensureList(obj["projects"]) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		highlights := entry["highlights"]
		if highlights == nil {
			highlights = entry["achievements"]
		}
		record.Projects = append(record.Projects, model.Project{
			Name:         toStr(entry["name"]),
			Description:  toStr(entry["description"]),
			Highlights:   toStrList(highlights),
			Technologies: toStrList(entry["technologies"]),
			URL:          NormalizeURL(entry["url"]),
		})
	}

	for _, item := range ensureList(obj["languages"]) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		lang := model.LanguageEntry{
			Language:    toStr(entry["language"]),
			Proficiency: toStr(entry["proficiency"]),
		}
		if lang.Language == "" && lang.Proficiency == "" {
			continue
		}
		if lang.Language == "" {
			lang.Language = model.NotInformed
		}
		if lang.Proficiency == "" {
			lang.Proficiency = model.NotInformed
		}
		record.Languages = append(record.Languages, lang)
	}

	if record.PersonalInfo.Headline == "" {
		for _, exp := range record.Experiences {
			if exp.Position != "" {
				record.PersonalInfo.Headline = exp.Position
				break
			}
		}
	}
	location := strings.ToLower(strings.TrimSpace(record.PersonalInfo.Location))
	if location == "" || location == "nao informado" || location == "não informado" {
		for _, exp := range append(append([]model.Experience{}, record.Experiences...), record.ExtracurricularExperiences...) {
			if candidate := strings.TrimSpace(exp.Location); candidate != "" {
				record.PersonalInfo.Location = candidate
				break
			}
		}
	}

	return record
}

func normalizePersonalInfo(value any) model.PersonalInfo {
	info := model.PersonalInfo{Location: model.NotInformed}
	obj, ok := value.(map[string]any)
	if !ok {
		return info
	}
	info.FullName = toStr(obj["full_name"])
	info.Headline = toStr(obj["headline"])
	info.Email = toStr(obj["email"])
	info.Phone = toStr(obj["phone"])
	if location := toStr(obj["location"]); location != "" {
		info.Location = location
	}
	info.LinkedIn = NormalizeURL(obj["linkedin"])
	info.GitHub = NormalizeURL(obj["github"])
	info.Portfolio = NormalizeURL(obj["portfolio"])
	return info
}

// currentTokens are accepted string spellings of a true "current" flag.
var currentTokens = map[string]bool{
	"true": true, "1": true, "yes": true, "sim": true, "atual": true, "presente": true,
}

func normalizeExperience(entry map[string]any, headline string) model.Experience {
	exp := model.Experience{
		Company:   toStr(firstPresent(entry, "company", "organization", "institution", "org")),
		Position:  toStr(entry["position"]),
		Location:  toStr(entry["location"]),
		StartDate: toStr(entry["start_date"]),
		EndDate:   toStr(entry["end_date"]),
	}
	if exp.Position == "" {
		exp.Position = headline
	}
	if exp.Position == "" {
		exp.Position = model.PositionNotInformed
	}
	exp.Achievements = textnorm.JoinFragmented(toStrList(entry["achievements"]))

	switch current := entry["current"].(type) {
	case string:
		exp.Current = currentTokens[strings.ToLower(strings.TrimSpace(current))]
	case bool:
		exp.Current = current
	}
	switch strings.ToLower(strings.TrimSpace(exp.EndDate)) {
	case "atual", "presente", "current":
		exp.Current = true
		exp.EndDate = model.CurrentLabel
	}
	if exp.Current && exp.EndDate == "" {
		exp.EndDate = model.CurrentLabel
	}
	return exp
}

// extracurricularStems classify an experience as extracurricular from its
// combined text.
var extracurricularStems = []string{
	"extracurricular", "liga", "volunt", "academica",
	"membro", "diretoria", "centro academico", "projeto academico",
}

func looksExtracurricular(exp model.Experience) bool {
	combined := textnorm.NormalizeForMatch(strings.Join([]string{
		exp.Company, exp.Position, exp.Location, strings.Join(exp.Achievements, " "),
	}, " "))
	for _, stem := range extracurricularStems {
		if strings.Contains(combined, stem) {
			return true
		}
	}
	return false
}

func normalizeSkills(value any) model.Skills {
	skills := model.Skills{
		Technical:   []string{},
		Tools:       []string{},
		Soft:        []string{},
		Categorized: map[string]string{},
	}
	switch typed := value.(type) {
	case map[string]any:
		skills.Technical = toStrList(typed["technical"])
		skills.Tools = toStrList(typed["tools"])
		skills.Soft = toStrList(typed["soft"])
		categorized := firstPresent(typed, "categorized", "categories", "by_category")
		if catMap, ok := categorized.(map[string]any); ok {
			for key, catValue := range catMap {
				if v := toStr(catValue); v != "" {
					skills.Categorized[key] = v
				}
			}
		}
	case []any:
		skills.Technical = toStrList(typed)
	case string:
		skills.Technical = toStrList(typed)
	}
	return skills
}

var (
	technicalHints = []string{
		"html", "css", "javascript", "typescript", "react", "next", "node",
		"express", "flask", "api", "sql", "mysql", "postgres", "python", "php",
		"orm", "jwt", "oauth", "rest", "docker",
	}
	toolHints = []string{
		"git", "github", "figma", "postman", "supabase", "tailwind",
		"bootstrap", "opencv", "numpy", "pdf2image", "poppler", "cli",
		"scriptcase", "localstorage",
	}
)

func matchesAnyHint(item string, hints []string) bool {
	lowered := strings.ToLower(item)
	for _, hint := range hints {
		if strings.Contains(lowered, hint) {
			return true
		}
	}
	return false
}

// rebalanceSkills moves items between technical and tools by keyword hints
// and backfills soft skills from categorized practices.
func rebalanceSkills(skills model.Skills) model.Skills {
	var keepTechnical, moveToTools []string
	for _, item := range skills.Technical {
		if matchesAnyHint(item, toolHints) && !matchesAnyHint(item, technicalHints) {
			moveToTools = append(moveToTools, item)
		} else {
			keepTechnical = append(keepTechnical, item)
		}
	}

	var keepTools, moveToTechnical []string
	for _, item := range skills.Tools {
		if matchesAnyHint(item, technicalHints) && !matchesAnyHint(item, toolHints) {
			moveToTechnical = append(moveToTechnical, item)
		} else {
			keepTools = append(keepTools, item)
		}
	}

	soft := skills.Soft
	if len(soft) == 0 {
		if praticas := skills.Categorized["praticas"]; praticas != "" {
			soft = toStrList(praticas)
		}
	}

	return model.Skills{
		Technical:   textnorm.DedupeKeepOrder(append(keepTechnical, moveToTechnical...)),
		Tools:       textnorm.DedupeKeepOrder(append(keepTools, moveToTools...)),
		Soft:        textnorm.DedupeKeepOrder(soft),
		Categorized: skills.Categorized,
	}
}

// rejectedURLTokens are literal non-values models emit in URL fields.
var rejectedURLTokens = map[string]bool{
	"null": true, "none": true, "n/a": true, "na": true, "-": true,
}

var bareDomainRe = regexp.MustCompile(`(?i)^[a-z0-9.-]+\.[a-z]{2,}(/.*)?$`)

// NormalizeURL accepts absolute http(s) URLs as-is, upgrades bare
// domain.tld/path values with an https scheme, and rejects everything else.
func NormalizeURL(value any) string {
	str, ok := value.(string)
	if !ok {
		return ""
	}
	url := strings.TrimSpace(str)
	if url == "" || rejectedURLTokens[strings.ToLower(url)] {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if bareDomainRe.MatchString(url) {
		return "https://" + url
	}
	return ""
}

func firstPresent(obj map[string]any, keys ...string) any {
	for _, key := range keys {
		if value, ok := obj[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

func ensureList(value any) []any {
	switch typed := value.(type) {
	case nil:
		return nil
	case []any:
		return typed
	case string:
		stripped := strings.TrimSpace(typed)
		if stripped == "" {
			return nil
		}
		if strings.Contains(stripped, ",") {
			parts := strings.Split(stripped, ",")
			out := make([]any, 0, len(parts))
			for _, part := range parts {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					out = append(out, trimmed)
				}
			}
			return out
		}
		return []any{stripped}
	default:
		return []any{typed}
	}
}

func toStr(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case float64:
		if typed == float64(int64(typed)) {
			return fmt.Sprintf("%d", int64(typed))
		}
		return fmt.Sprintf("%v", typed)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", typed))
	}
}

func toStrList(value any) []string {
	items := ensureList(value)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := toStr(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
