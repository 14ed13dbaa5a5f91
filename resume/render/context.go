// Package render turns a canonical resume record into the ATS document:
// period and skills-line formatting plus the DOCX package assembly.
package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"resumeats-backend/resume/model"
)

var monthNames = map[string]string{
	"01": "Jan", "02": "Fev", "03": "Mar", "04": "Abr",
	"05": "Mai", "06": "Jun", "07": "Jul", "08": "Ago",
	"09": "Set", "10": "Out", "11": "Nov", "12": "Dez",
}

var (
	bareYearRe  = regexp.MustCompile(`^\d{4}$`)
	yearMonthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// FormatDate renders a stored date for display: YYYY-MM becomes "Mon YYYY",
// bare years pass through, current markers collapse to "Atual".
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	switch strings.ToLower(value) {
	case "atual", "presente", "current":
		return model.CurrentLabel
	}
	if bareYearRe.MatchString(value) {
		return value
	}
	if yearMonthRe.MatchString(value) {
		year, month, _ := strings.Cut(value, "-")
		if name, ok := monthNames[month]; ok {
			return name + " " + year
		}
		return month + " " + year
	}
	return value
}

// FormatPeriod renders an experience period line.
func FormatPeriod(start, end string, current bool) string {
	startLabel := FormatDate(start)
	if startLabel == "" {
		startLabel = "Inicio nao informado"
	}
	endLabel := model.CurrentLabel
	if !current {
		endLabel = FormatDate(end)
		if endLabel == "" {
			endLabel = "Em andamento"
		}
	}
	return startLabel + " - " + endLabel
}

// EducationPeriod renders an education period, phrasing a lone end year that
// has not passed yet as in-progress.
func EducationPeriod(start, end string, now time.Time) string {
	startLabel := FormatDate(start)
	endLabel := FormatDate(end)
	switch {
	case startLabel != "" && endLabel != "":
		return startLabel + " - " + endLabel
	case endLabel != "":
		if year, err := strconv.Atoi(endLabel); err == nil && year >= now.Year() {
			return fmt.Sprintf("Em andamento (Previsão de conclusão: %s)", endLabel)
		}
		return "Conclusão: " + endLabel
	case startLabel != "":
		return "Início: " + startLabel
	}
	return ""
}

// skillsLineOrder fixes the label order of categorized skill lines.
var skillsLineOrder = []struct {
	label string
	key   string
}{
	{"Linguagens", "linguagens"},
	{"Frontend", "frontend"},
	{"Backend", "backend"},
	{"Frameworks", "frameworks"},
	{"Banco de Dados", "banco_de_dados"},
	{"Ferramentas", "ferramentas"},
	{"Práticas", "praticas"},
}

// SkillsLines derives display lines from the categorized map in fixed label
// order, falling back to the flat lists when no category has a value.
func SkillsLines(skills model.Skills) []string {
	var lines []string
	for _, entry := range skillsLineOrder {
		if value := skills.Categorized[entry.key]; value != "" {
			lines = append(lines, entry.label+": "+value)
		}
	}
	if len(lines) > 0 {
		return lines
	}
	if len(skills.Technical) > 0 {
		lines = append(lines, "Linguagens e tecnologias: "+strings.Join(skills.Technical, ", "))
	}
	if len(skills.Tools) > 0 {
		lines = append(lines, "Ferramentas: "+strings.Join(skills.Tools, ", "))
	}
	if len(skills.Soft) > 0 {
		lines = append(lines, "Práticas: "+strings.Join(skills.Soft, ", "))
	}
	return lines
}

var (
	filenameSpaceRe   = regexp.MustCompile(`\s+`)
	filenameCharsetRe = regexp.MustCompile(`[^A-Za-z0-9_-]`)
)

// BuildFilename produces the safe download name <Name>_ATS_<yyyymmdd>.docx.
func BuildFilename(fullName string, date time.Time) string {
	base := filenameSpaceRe.ReplaceAllString(strings.TrimSpace(fullName), "_")
	base = filenameCharsetRe.ReplaceAllString(base, "")
	if base == "" {
		base = "Curriculo"
	}
	return fmt.Sprintf("%s_ATS_%s.docx", base, date.Format("20060102"))
}

// ExperienceBlock is a display-ready experience entry.
type ExperienceBlock struct {
	Company        string
	Position       string
	Location       string
	Period         string
	PeriodLocation string
	Achievements   []string
}

// EducationBlock is a display-ready education entry.
type EducationBlock struct {
	Institution string
	Degree      string
	Location    string
	Period      string
}

// Context carries everything the document needs, already formatted.
type Context struct {
	FullName        string
	Headline        string
	Email           string
	Phone           string
	Location        string
	LinkedIn        string
	GitHub          string
	Portfolio       string
	Summary         string
	Experiences     []ExperienceBlock
	Extracurricular []ExperienceBlock
	Education       []EducationBlock
	SkillsLines     []string
	Certifications  []string
	Projects        []model.Project
	Languages       []model.LanguageEntry
}

// BuildContext formats a canonical record for rendering.
func BuildContext(data model.ResumeData, now time.Time) Context {
	headline := strings.TrimSpace(data.PersonalInfo.Headline)
	if headline == "" {
		for _, exp := range data.Experiences {
			if position := strings.TrimSpace(exp.Position); position != "" {
				headline = position
				break
			}
		}
	}

	ctx := Context{
		FullName:        data.PersonalInfo.FullName,
		Headline:        headline,
		Email:           data.PersonalInfo.Email,
		Phone:           data.PersonalInfo.Phone,
		Location:        data.PersonalInfo.Location,
		LinkedIn:        data.PersonalInfo.LinkedIn,
		GitHub:          data.PersonalInfo.GitHub,
		Portfolio:       data.PersonalInfo.Portfolio,
		Summary:         data.Summary,
		Experiences:     buildExperienceBlocks(data.Experiences),
		Extracurricular: buildExperienceBlocks(data.ExtracurricularExperiences),
		SkillsLines:     SkillsLines(data.Skills),
		Projects:        data.Projects,
		Languages:       data.Languages,
	}

	for _, edu := range data.Education {
		ctx.Education = append(ctx.Education, EducationBlock{
			Institution: edu.Institution,
			Degree:      edu.Degree,
			Location:    edu.Location,
			Period:      EducationPeriod(edu.StartDate, edu.EndDate, now),
		})
	}

	for _, cert := range data.Certifications {
		line := cert.Name + " - " + cert.Issuer
		if date := strings.TrimSpace(cert.Date); date != "" {
			line = fmt.Sprintf("%s (%s)", line, date)
		}
		ctx.Certifications = append(ctx.Certifications, line)
	}

	return ctx
}

func buildExperienceBlocks(experiences []model.Experience) []ExperienceBlock {
	var blocks []ExperienceBlock
	for _, exp := range experiences {
		company := strings.TrimSpace(exp.Company)
		if company == "" {
			company = "Experiência não informada"
		}
		position := strings.TrimSpace(exp.Position)
		if position == "" {
			position = model.PositionNotInformed
		}
		period := FormatPeriod(exp.StartDate, exp.EndDate, exp.Current)
		location := strings.TrimSpace(exp.Location)
		periodLocation := period
		if location != "" {
			periodLocation = period + " | " + location
		}
		var achievements []string
		for _, a := range exp.Achievements {
			if trimmed := strings.TrimSpace(a); trimmed != "" {
				achievements = append(achievements, trimmed)
			}
		}
		blocks = append(blocks, ExperienceBlock{
			Company:        company,
			Position:       position,
			Location:       location,
			Period:         period,
			PeriodLocation: periodLocation,
			Achievements:   achievements,
		})
	}
	return blocks
}
