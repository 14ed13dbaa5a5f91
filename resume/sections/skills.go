package sections

import (
	"strings"

	"resumeats-backend/resume/model"
	"resumeats-backend/resume/textnorm"
)

// skillCategories maps the normalized label prefix to the categorized key and
// the destination list. Order matters: "banco de dados" must match as a
// phrase prefix before any shorter stem could.
var skillCategories = []struct {
	prefix string
	key    string
	dest   string
}{
	{"linguagens", "linguagens", "technical"},
	{"frontend", "frontend", "technical"},
	{"backend", "backend", "technical"},
	{"frameworks", "frameworks", "technical"},
	{"banco de dados", "banco_de_dados", "technical"},
	{"ferramentas", "ferramentas", "tools"},
	{"praticas", "praticas", "soft"},
}

// ParseSkills reads "Label: a, b, c" lines into the skills bundle. The raw
// value string is kept verbatim under its categorized key; the comma-split
// items feed the matching list.
func ParseSkills(lines []string) model.Skills {
	skills := model.Skills{
		Technical:   []string{},
		Tools:       []string{},
		Soft:        []string{},
		Categorized: map[string]string{},
	}

	for _, line := range lines {
		label, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		normalizedLabel := textnorm.NormalizeForMatch(label)
		for _, cat := range skillCategories {
			if !strings.HasPrefix(normalizedLabel, cat.prefix) {
				continue
			}
			skills.Categorized[cat.key] = value
			items := splitCommaList(value)
			switch cat.dest {
			case "technical":
				skills.Technical = append(skills.Technical, items...)
			case "tools":
				skills.Tools = append(skills.Tools, items...)
			case "soft":
				skills.Soft = append(skills.Soft, items...)
			}
			break
		}
	}

	skills.Technical = textnorm.DedupeKeepOrder(skills.Technical)
	skills.Tools = textnorm.DedupeKeepOrder(skills.Tools)
	skills.Soft = textnorm.DedupeKeepOrder(skills.Soft)
	return skills
}

func splitCommaList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
