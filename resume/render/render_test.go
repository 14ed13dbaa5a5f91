package render

import (
	"archive/zip"
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"resumeats-backend/resume/model"
)

var testNow = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

func TestFormatDate(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2020-01", "Jan 2020"},
		{"2022-12", "Dez 2022"},
		{"2019", "2019"},
		{"Atual", "Atual"},
		{"presente", "Atual"},
		{"", ""},
		{"algum texto", "algum texto"},
	}
	for _, tc := range cases {
		if got := FormatDate(tc.in); got != tc.want {
			t.Fatalf("FormatDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatPeriod(t *testing.T) {
	if got := FormatPeriod("2020-01", "", true); got != "Jan 2020 - Atual" {
		t.Fatalf("got %q", got)
	}
	if got := FormatPeriod("2018", "2022", false); got != "2018 - 2022" {
		t.Fatalf("got %q", got)
	}
	if got := FormatPeriod("", "", false); got != "Inicio nao informado - Em andamento" {
		t.Fatalf("got %q", got)
	}
}

func TestEducationPeriod(t *testing.T) {
	if got := EducationPeriod("2021", "2025", testNow); got != "2021 - 2025" {
		t.Fatalf("got %q", got)
	}
	if got := EducationPeriod("", "2027", testNow); got != "Em andamento (Previsão de conclusão: 2027)" {
		t.Fatalf("got %q", got)
	}
	if got := EducationPeriod("", "2020", testNow); got != "Conclusão: 2020" {
		t.Fatalf("got %q", got)
	}
	if got := EducationPeriod("2021", "", testNow); got != "Início: 2021" {
		t.Fatalf("got %q", got)
	}
}

func TestSkillsLinesFixedOrder(t *testing.T) {
	skills := model.Skills{
		Categorized: map[string]string{
			"ferramentas":    "Git",
			"linguagens":     "Python",
			"banco_de_dados": "Postgres",
		},
	}
	want := []string{"Linguagens: Python", "Banco de Dados: Postgres", "Ferramentas: Git"}
	if got := SkillsLines(skills); !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %v, want %v", got, want)
	}
}

func TestSkillsLinesFlatFallback(t *testing.T) {
	skills := model.Skills{
		Technical:   []string{"Python", "React"},
		Tools:       []string{"Git"},
		Categorized: map[string]string{},
	}
	want := []string{"Linguagens e tecnologias: Python, React", "Ferramentas: Git"}
	if got := SkillsLines(skills); !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %v, want %v", got, want)
	}
}

func TestBuildFilename(t *testing.T) {
	if got := BuildFilename("João da Silva", testNow); got != "Joo_da_Silva_ATS_20260310.docx" {
		t.Fatalf("filename = %q", got)
	}
	if got := BuildFilename("  ", testNow); got != "Curriculo_ATS_20260310.docx" {
		t.Fatalf("fallback filename = %q", got)
	}
}

func TestRenderDocxRequiresName(t *testing.T) {
	if _, err := RenderDocx(model.EmptyRecord(), testNow); err == nil {
		t.Fatalf("expected error for missing name")
	}
}

func TestRenderDocxProducesValidPackage(t *testing.T) {
	data := model.EmptyRecord()
	data.PersonalInfo.FullName = "Maria Silva"
	data.PersonalInfo.Headline = "Desenvolvedora"
	data.PersonalInfo.Email = "maria@x.com"
	data.Summary = "Resumo da carreira."
	data.Experiences = []model.Experience{{
		Company:      "Acme",
		Position:     "Dev",
		StartDate:    "2020-01",
		Current:      true,
		Achievements: []string{"Built X"},
	}}
	data.Skills.Categorized["linguagens"] = "Python"
	data.Education = []model.Education{{Institution: "UFMA", Degree: "BCC", EndDate: "2027"}}
	data.Languages = []model.LanguageEntry{{Language: "Inglês", Proficiency: "Avançado"}}

	docx, err := RenderDocx(data, testNow)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		t.Fatalf("not a zip: %v", err)
	}
	var documentXML string
	names := map[string]bool{}
	for _, file := range reader.File {
		names[file.Name] = true
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("open document.xml: %v", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read document.xml: %v", err)
		}
		documentXML = string(content)
	}
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		if !names[name] {
			t.Fatalf("missing package part %s", name)
		}
	}

	for _, want := range []string{
		"Maria Silva",
		"Email: maria@x.com",
		"Acme - Dev | Jan 2020 - Atual",
		"- Built X",
		"Linguagens: Python",
		"Em andamento (Previsão de conclusão: 2027)",
		"Inglês: Avançado",
	} {
		if !strings.Contains(documentXML, want) {
			t.Fatalf("document.xml missing %q", want)
		}
	}
	if strings.Contains(documentXML, headingProjects) {
		t.Fatalf("empty projects section should be omitted")
	}
}
