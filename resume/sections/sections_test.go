package sections

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitSegmentsHeaderAndExperience(t *testing.T) {
	raw := "João Silva\nEmail: j@x.com\nExperiência Profissional\nAcme | Jan 2020 - Atual\n- Built X"
	buckets := Split(raw)

	wantHeader := []string{"João Silva", "Email: j@x.com"}
	if !reflect.DeepEqual(buckets[SectionHeader], wantHeader) {
		t.Fatalf("header bucket = %v, want %v", buckets[SectionHeader], wantHeader)
	}
	wantExp := []string{"Acme | Jan 2020 - Atual", "- Built X"}
	if !reflect.DeepEqual(buckets[SectionExperience], wantExp) {
		t.Fatalf("experience bucket = %v, want %v", buckets[SectionExperience], wantExp)
	}
}

func TestDetectSectionPriority(t *testing.T) {
	cases := []struct {
		line    string
		want    Section
		matched bool
	}{
		{"resumo profissional", SectionSummary, true},
		{"habilidades", SectionSkills, true},
		{"skills", SectionSkills, true},
		{"experiencia profissional", SectionExperience, true},
		{"experiencia extracurricular", SectionExtracurricular, true},
		{"liga academica", SectionExtracurricular, true},
		{"projetos", SectionProjects, true},
		{"formacao academica", SectionEducation, true},
		{"educacao", SectionEducation, true},
		{"cursos complementares", SectionCourses, true},
		{"cursos", SectionCourses, true},
		{"idiomas", SectionLanguages, true},
		{"acme | jan 2020 - atual", SectionHeader, false},
	}
	for _, tc := range cases {
		got, ok := DetectSection(tc.line)
		if ok != tc.matched || (ok && got != tc.want) {
			t.Fatalf("DetectSection(%q) = (%v, %v), want (%v, %v)", tc.line, got, ok, tc.want, tc.matched)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		line    string
		start   string
		end     string
		current bool
	}{
		{"Jan 2020 - Atual", "2020-01", "Atual", true},
		{"Mar 2021 - Dez 2022", "2021-03", "2022-12", false},
		{"Fev 2019 - 2021", "2019-02", "2021", false},
		{"2018 - 2022", "2018", "2022", false},
		{"2019 - Presente", "2019", "Atual", true},
		{"sem data", "", "", false},
	}
	for _, tc := range cases {
		start, end, current := ParsePeriod(tc.line)
		if start != tc.start || end != tc.end || current != tc.current {
			t.Fatalf("ParsePeriod(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.line, start, end, current, tc.start, tc.end, tc.current)
		}
	}
}

func TestIsExperienceHeaderLine(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"Acme | Jan 2020 - Atual", true},
		{"Dev Tech | 2019", true},
		{"Empresa X, 2020 - Atual", true},
		{"- Built the billing system", false},
		{"Implemented a new workflow", false},
		{strings.Repeat("x", 101) + " 2020 atual", false},
	}
	for _, tc := range cases {
		if got := IsExperienceHeaderLine(tc.line); got != tc.want {
			t.Fatalf("IsExperienceHeaderLine(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestParseExperience(t *testing.T) {
	lines := []string{
		"Acme | Jan 2020 - Atual",
		"- Built X",
		"- Built X",
		"Dev Tech | Mar 2018 - Dez 2019",
		"- Shipped Y",
	}
	entries := ParseExperience(lines, "Desenvolvedor", "")
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}
	first := entries[0]
	if first.Company != "Acme" || first.StartDate != "2020-01" || first.EndDate != "Atual" || !first.Current {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	if !reflect.DeepEqual(first.Achievements, []string{"Built X"}) {
		t.Fatalf("achievements = %v, want deduped [Built X]", first.Achievements)
	}
	if entries[1].Company != "Dev Tech" || entries[1].Current {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestParseExperienceSyntheticEntry(t *testing.T) {
	entries := ParseExperience([]string{"- Did something useful"}, "", "")
	if len(entries) != 1 {
		t.Fatalf("expected synthetic entry, got %d", len(entries))
	}
	if entries[0].Company != "Experiencia profissional" || entries[0].Position != "Cargo nao informado" {
		t.Fatalf("unexpected placeholders: %+v", entries[0])
	}
}

func TestParseExtracurricular(t *testing.T) {
	lines := []string{
		"L.U.M.I.N.A - Diretor de Projetos",
		"Jan 2023 - Atual | São Luís, MA",
		"- Organized workshops for new members",
	}
	entries := ParseExtracurricular(lines, "")
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Company != "L.U.M.I.N.A - Diretor de Projetos" {
		t.Fatalf("company = %q", e.Company)
	}
	if e.Position != "Diretor de Projetos" {
		t.Fatalf("position = %q", e.Position)
	}
	if e.StartDate != "2023-01" || !e.Current {
		t.Fatalf("period = (%q, %q, %v)", e.StartDate, e.EndDate, e.Current)
	}
	if e.Location != "São Luís, MA" {
		t.Fatalf("location = %q", e.Location)
	}
	if len(e.Achievements) != 1 {
		t.Fatalf("achievements = %v", e.Achievements)
	}
}

func TestParseSkills(t *testing.T) {
	lines := []string{
		"Linguagens: Python, JavaScript",
		"Ferramentas: Git, Figma",
		"Práticas: Scrum, Kanban",
		"linha sem separador",
	}
	skills := ParseSkills(lines)
	if !reflect.DeepEqual(skills.Technical, []string{"Python", "JavaScript"}) {
		t.Fatalf("technical = %v", skills.Technical)
	}
	if !reflect.DeepEqual(skills.Tools, []string{"Git", "Figma"}) {
		t.Fatalf("tools = %v", skills.Tools)
	}
	if !reflect.DeepEqual(skills.Soft, []string{"Scrum", "Kanban"}) {
		t.Fatalf("soft = %v", skills.Soft)
	}
	if skills.Categorized["linguagens"] != "Python, JavaScript" {
		t.Fatalf("categorized = %v", skills.Categorized)
	}
}

func TestParseProjects(t *testing.T) {
	lines := []string{
		"Sistema de Estoque",
		"Projeto desenvolvido para controle de inventário em tempo real.",
		"Destaques Técnicos",
		"- Reduced stock errors by tracking every movement",
		"Tecnologias: Python, Flask",
		"React · Node",
		"Painel Financeiro",
		"Projeto pessoal para acompanhar despesas mensais.",
	}
	projects := ParseProjects(lines)
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d: %+v", len(projects), projects)
	}
	p := projects[0]
	if p.Name != "Sistema de Estoque" {
		t.Fatalf("name = %q", p.Name)
	}
	if !strings.Contains(p.Description, "controle de inventário") {
		t.Fatalf("description = %q", p.Description)
	}
	if !reflect.DeepEqual(p.Highlights, []string{"- Reduced stock errors by tracking every movement"}) {
		t.Fatalf("highlights = %v", p.Highlights)
	}
	if !reflect.DeepEqual(p.Technologies, []string{"Python", "Flask", "React", "Node"}) {
		t.Fatalf("technologies = %v", p.Technologies)
	}
	if projects[1].Name != "Painel Financeiro" {
		t.Fatalf("second project = %+v", projects[1])
	}
}

func TestParseEducationPositional(t *testing.T) {
	entries := ParseEducation([]string{
		"Bacharelado em Ciência da Computação",
		"Universidade Federal do Maranhão",
		"2021 - 2025",
	})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Degree != "Bacharelado em Ciência da Computação" || e.Institution != "Universidade Federal do Maranhão" || e.EndDate != "2021" {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestParseCourses(t *testing.T) {
	courses := ParseCourses([]string{
		"- Curso de Docker – Alura",
		"Fundamentos de Git",
	})
	if len(courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(courses))
	}
	if courses[0].Name != "Curso de Docker" || courses[0].Issuer != "Alura" {
		t.Fatalf("first course = %+v", courses[0])
	}
	if courses[1].Name != "Fundamentos de Git" || courses[1].Issuer != "" {
		t.Fatalf("second course = %+v", courses[1])
	}
}

func TestParseLanguages(t *testing.T) {
	langs := ParseLanguages([]string{
		"Idiomas",
		"Inglês: Avançado",
		"Espanhol: Básico",
		"Culinária: Avançada",
	})
	if len(langs) != 2 {
		t.Fatalf("expected 2 languages, got %d: %+v", len(langs), langs)
	}
	if langs[0].Language != "Inglês" || langs[0].Proficiency != "Avançado" {
		t.Fatalf("first language = %+v", langs[0])
	}
}

func TestBuildRecordFullScenario(t *testing.T) {
	raw := strings.Join([]string{
		"João Silva",
		"Desenvolvedor Full Stack",
		"Email: j@x.com",
		"Telefone: (98) 99999-0000",
		"Cidade: São Luís",
		"Experiência Profissional",
		"Acme | Jan 2020 - Atual",
		"- Built X",
	}, "\n")

	record := BuildRecord(raw)
	if record.PersonalInfo.FullName != "João Silva" {
		t.Fatalf("full name = %q", record.PersonalInfo.FullName)
	}
	if record.PersonalInfo.Headline != "Desenvolvedor Full Stack" {
		t.Fatalf("headline = %q", record.PersonalInfo.Headline)
	}
	if record.PersonalInfo.Email != "j@x.com" || record.PersonalInfo.Location != "São Luís" {
		t.Fatalf("contact info = %+v", record.PersonalInfo)
	}
	if len(record.Experiences) != 1 {
		t.Fatalf("experiences = %+v", record.Experiences)
	}
	exp := record.Experiences[0]
	if exp.Company != "Acme" || exp.StartDate != "2020-01" || exp.EndDate != "Atual" || !exp.Current {
		t.Fatalf("experience = %+v", exp)
	}
	if exp.Position != "Desenvolvedor Full Stack" {
		t.Fatalf("position should inherit headline, got %q", exp.Position)
	}
	if !reflect.DeepEqual(exp.Achievements, []string{"Built X"}) {
		t.Fatalf("achievements = %v", exp.Achievements)
	}
}

func TestAchievementCandidatesStopsAtSectionHeader(t *testing.T) {
	lines := []string{
		"Acme | Jan 2020 - Atual",
		"Email: j@x.com",
		"short",
		"Implemented the core billing workflow end to end",
		"Formação Acadêmica",
		"This long line sits after the education header and must be ignored",
	}
	got := AchievementCandidates(lines, 0)
	want := []string{"Implemented the core billing workflow end to end"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
}

func TestCompanyFromSection(t *testing.T) {
	lines := []string{
		"Experiência Profissional",
		"Dev Tech | Jan 2020 - Dez 2021",
	}
	if got := CompanyFromSection(lines, "experiencia profissional"); got != "Dev Tech" {
		t.Fatalf("company = %q", got)
	}
}
