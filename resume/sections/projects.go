package sections

import (
	"strings"

	"resumeats-backend/resume/model"
	"resumeats-backend/resume/textnorm"
)

// projectMode is the state of the per-project line classifier.
type projectMode int

const (
	modeDescription projectMode = iota
	modeHighlights
	modeTechnologies
)

// descriptionPrefixes are normalized line openings that read like prose, not
// project titles.
var descriptionPrefixes = []string{
	"projeto desenvolvido",
	"projeto academico",
	"projeto pessoal",
	"plataforma web desenvolvida",
	"aplicacao funcional",
}

func isProjectTitle(line string) bool {
	if line == "" || strings.HasPrefix(line, "-") {
		return false
	}
	normalized := textnorm.NormalizeForMatch(line)
	if strings.Contains(normalized, "destaq") && (strings.Contains(normalized, "tecn") || strings.Contains(normalized, "tcn")) {
		return false
	}
	if strings.HasPrefix(normalized, "tecnolog") {
		return false
	}
	for _, prefix := range descriptionPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return false
		}
	}
	if strings.HasSuffix(line, ".") {
		return false
	}
	return len(line) <= 160
}

func isTechListLine(line string) bool {
	if line == "" {
		return false
	}
	normalized := textnorm.NormalizeForMatch(line)
	if strings.Contains(normalized, "tecnolog") {
		return true
	}
	return strings.Contains(line, "·") || strings.Contains(line, ",") || strings.Contains(line, "|")
}

// ParseProjects runs a three-state machine (description, highlights,
// technologies) per open project. A "Destaques tecnicos" marker switches to
// highlights, a "Tecnologias" stem to technologies; a title-looking line
// closes the open project once it has any content.
func ParseProjects(lines []string) []model.Project {
	var projects []model.Project
	if len(lines) == 0 {
		return projects
	}

	var current *model.Project
	var description []string
	mode := modeDescription

	open := func(name string) {
		current = &model.Project{Name: name, Highlights: []string{}, Technologies: []string{}}
		description = nil
		mode = modeDescription
	}
	closeCurrent := func() {
		if current == nil {
			return
		}
		current.Highlights = textnorm.DedupeKeepOrder(current.Highlights)
		current.Technologies = textnorm.DedupeKeepOrder(current.Technologies)
		current.Description = strings.TrimSpace(strings.Join(description, " "))
		projects = append(projects, *current)
		current = nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		normalized := textnorm.NormalizeForMatch(line)

		if strings.Contains(normalized, "destaq") && (strings.Contains(normalized, "tecn") || strings.Contains(normalized, "tcn")) {
			mode = modeHighlights
			continue
		}

		if strings.HasPrefix(normalized, "tecnolog") {
			mode = modeTechnologies
			if current != nil {
				if _, after, found := strings.Cut(line, ":"); found {
					current.Technologies = append(current.Technologies, textnorm.SplitTechnologies(strings.TrimSpace(after))...)
				}
			}
			continue
		}

		if current == nil {
			open(line)
			continue
		}

		if mode == modeTechnologies {
			if isTechListLine(line) {
				value := strings.TrimSpace(strings.ReplaceAll(line, "Tecnologias:", ""))
				current.Technologies = append(current.Technologies, textnorm.SplitTechnologies(value)...)
				continue
			}
			if isProjectTitle(line) {
				closeCurrent()
				open(line)
				continue
			}
		}

		if isProjectTitle(line) && (len(description) > 0 || len(current.Highlights) > 0 || len(current.Technologies) > 0) {
			closeCurrent()
			open(line)
			continue
		}

		switch mode {
		case modeHighlights:
			if strings.HasPrefix(line, "-") {
				current.Highlights = append(current.Highlights, line)
			} else {
				current.Highlights = append(current.Highlights, "- "+line)
			}
		case modeTechnologies:
			current.Technologies = append(current.Technologies, textnorm.SplitTechnologies(line)...)
		default:
			description = append(description, line)
		}
	}
	closeCurrent()

	return projects
}
