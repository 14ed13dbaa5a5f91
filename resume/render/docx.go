package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"time"

	"resumeats-backend/resume/model"
)

// Section headings in document order. Headings render bold with extra
// spacing; resumes with encoding-damaged headings upstream are already fixed
// by the time the record reaches here.
const (
	headingSummary         = "Resumo Profissional"
	headingSkills          = "Habilidades Técnicas"
	headingExperience      = "Experiência Profissional"
	headingExtracurricular = "Experiência Extracurricular"
	headingProjects        = "Projetos"
	headingEducation       = "Formação Acadêmica"
	headingCourses         = "Cursos Complementares"
	headingLanguages       = "Idiomas"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// paragraph is one rendered line with its run formatting.
type paragraph struct {
	text        string
	bold        bool
	italic      bool
	sizeHalfPts int
	beforePts   int
	afterPts    int
}

// RenderDocx assembles the ATS document for a canonical record.
func RenderDocx(data model.ResumeData, now time.Time) ([]byte, error) {
	if strings.TrimSpace(data.PersonalInfo.FullName) == "" {
		return nil, errors.New("full name is required")
	}

	ctx := BuildContext(data, now)
	documentXML := buildDocumentXML(ctx)

	var output bytes.Buffer
	writer := zip.NewWriter(&output)
	entries := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentXML},
	}
	for _, entry := range entries {
		f, err := writer.Create(entry.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", entry.name, err)
		}
		if _, err := f.Write([]byte(entry.content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", entry.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

func buildDocumentXML(ctx Context) string {
	var paragraphs []paragraph

	add := func(p paragraph) {
		if strings.TrimSpace(p.text) == "" {
			return
		}
		paragraphs = append(paragraphs, p)
	}
	heading := func(text string) paragraph {
		return paragraph{text: text, bold: true, beforePts: 24, afterPts: 10}
	}
	contact := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			add(paragraph{text: label + ": " + value, afterPts: 4})
		}
	}

	add(paragraph{text: ctx.FullName, bold: true, sizeHalfPts: 36, afterPts: 8})
	add(paragraph{text: ctx.Headline, italic: true, afterPts: 16})
	contact("Email", ctx.Email)
	contact("Telefone", ctx.Phone)
	contact("Cidade", ctx.Location)
	contact("LinkedIn", ctx.LinkedIn)
	contact("GitHub", ctx.GitHub)
	contact("Portfólio", ctx.Portfolio)

	if ctx.Summary != "" {
		add(heading(headingSummary))
		add(paragraph{text: ctx.Summary, beforePts: 3, afterPts: 8})
	}

	if len(ctx.SkillsLines) > 0 {
		add(heading(headingSkills))
		for _, line := range ctx.SkillsLines {
			add(paragraph{text: line, beforePts: 3, afterPts: 6})
		}
	}

	writeExperiences := func(title string, blocks []ExperienceBlock) {
		if len(blocks) == 0 {
			return
		}
		add(heading(title))
		for _, block := range blocks {
			add(paragraph{
				text:      block.Company + " - " + block.Position + " | " + block.PeriodLocation,
				bold:      true,
				beforePts: 12,
				afterPts:  6,
			})
			for _, achievement := range block.Achievements {
				add(paragraph{text: "- " + achievement, beforePts: 3, afterPts: 8})
			}
		}
	}
	writeExperiences(headingExperience, ctx.Experiences)
	writeExperiences(headingExtracurricular, ctx.Extracurricular)

	if len(ctx.Projects) > 0 {
		add(heading(headingProjects))
		for _, project := range ctx.Projects {
			add(paragraph{text: project.Name, bold: true, beforePts: 12, afterPts: 6})
			add(paragraph{text: project.Description, beforePts: 3, afterPts: 8})
			for _, highlight := range project.Highlights {
				add(paragraph{text: highlight, beforePts: 3, afterPts: 8})
			}
			if len(project.Technologies) > 0 {
				add(paragraph{
					text:      "Tecnologias usadas: " + strings.Join(project.Technologies, " · "),
					beforePts: 3,
					afterPts:  6,
				})
			}
		}
	}

	if len(ctx.Education) > 0 {
		add(heading(headingEducation))
		for _, edu := range ctx.Education {
			line := edu.Degree
			if edu.Institution != "" {
				line += " - " + edu.Institution
			}
			if edu.Period != "" {
				line += " | " + edu.Period
			}
			add(paragraph{text: line, beforePts: 12, afterPts: 6})
		}
	}

	if len(ctx.Certifications) > 0 {
		add(heading(headingCourses))
		for _, line := range ctx.Certifications {
			add(paragraph{text: "- " + line, beforePts: 3, afterPts: 8})
		}
	}

	if len(ctx.Languages) > 0 {
		add(heading(headingLanguages))
		for _, lang := range ctx.Languages {
			add(paragraph{text: lang.Language + ": " + lang.Proficiency, beforePts: 3, afterPts: 8})
		}
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		writeParagraphXML(&b, p)
	}
	b.WriteString(`<w:sectPr/></w:body></w:document>`)
	return b.String()
}

func writeParagraphXML(b *strings.Builder, p paragraph) {
	size := p.sizeHalfPts
	if size == 0 {
		size = 24
	}

	b.WriteString(`<w:p><w:pPr>`)
	fmt.Fprintf(b, `<w:spacing w:before="%d" w:after="%d" w:line="276" w:lineRule="auto"/>`, p.beforePts*20, p.afterPts*20)
	b.WriteString(`</w:pPr><w:r><w:rPr>`)
	b.WriteString(`<w:rFonts w:ascii="Arial" w:hAnsi="Arial"/>`)
	if p.bold {
		b.WriteString(`<w:b/>`)
	}
	if p.italic {
		b.WriteString(`<w:i/>`)
	}
	fmt.Fprintf(b, `<w:sz w:val="%d"/>`, size)
	b.WriteString(`</w:rPr><w:t xml:space="preserve">`)
	_ = xml.EscapeText(b, []byte(p.text))
	b.WriteString(`</w:t></w:r></w:p>`)
}
