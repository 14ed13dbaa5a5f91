package merge

import (
	"reflect"
	"strings"
	"testing"

	"resumeats-backend/resume/model"
	"resumeats-backend/resume/sections"
)

func TestReconcileExperiencePrecedence(t *testing.T) {
	ai := model.EmptyRecord()
	ai.PersonalInfo.FullName = "João"
	ai.Experiences = []model.Experience{{Company: "", Position: "Dev"}}

	section := model.EmptyRecord()
	section.Experiences = []model.Experience{{
		Company:      "Acme",
		Position:     "Dev",
		Achievements: []string{"Built X"},
	}}

	out := Reconcile(ai, section, "")
	if len(out.Experiences) != 1 {
		t.Fatalf("experiences = %+v", out.Experiences)
	}
	exp := out.Experiences[0]
	if exp.Company != "Acme" {
		t.Fatalf("company = %q, want Acme", exp.Company)
	}
	if !reflect.DeepEqual(exp.Achievements, []string{"Built X"}) {
		t.Fatalf("achievements = %v", exp.Achievements)
	}
}

func TestReconcileMatchesByIdentityAndOrsCurrent(t *testing.T) {
	ai := model.EmptyRecord()
	ai.Experiences = []model.Experience{{
		Company:      "Acme",
		Position:     "Dev",
		Achievements: []string{"Built X"},
	}}
	section := model.EmptyRecord()
	section.Experiences = []model.Experience{{
		Company:      "Acme",
		Position:     "Dev",
		StartDate:    "2020-01",
		Current:      true,
		Achievements: []string{"built x", "Shipped Y"},
	}}

	out := Reconcile(ai, section, "")
	exp := out.Experiences[0]
	if exp.StartDate != "2020-01" || !exp.Current {
		t.Fatalf("merged entry = %+v", exp)
	}
	if !reflect.DeepEqual(exp.Achievements, []string{"Built X", "Shipped Y"}) {
		t.Fatalf("achievements = %v", exp.Achievements)
	}
}

func TestReconcileDropsDateArtifacts(t *testing.T) {
	ai := model.EmptyRecord()
	ai.ExtracurricularExperiences = []model.Experience{
		{Company: "Jan 2020 - Atual", Position: "Membro"},
		{Company: "Liga X", Position: "Membro"},
	}
	out := Reconcile(ai, model.EmptyRecord(), "")
	if len(out.ExtracurricularExperiences) != 1 || out.ExtracurricularExperiences[0].Company != "Liga X" {
		t.Fatalf("extracurricular = %+v", out.ExtracurricularExperiences)
	}
}

func TestReconcileAchievementBackfillFromRawText(t *testing.T) {
	raw := strings.Join([]string{
		"João Silva",
		"Acme | Jan 2020 - Atual",
		"Email: j@x.com",
		"Implemented the core billing workflow end to end",
		"Formação Acadêmica",
		"Universidade Federal do Maranhão",
	}, "\n")

	ai := model.EmptyRecord()
	ai.Experiences = []model.Experience{{Company: "Acme", Position: "Dev"}}

	out := Reconcile(ai, model.EmptyRecord(), raw)
	want := []string{"Implemented the core billing workflow end to end"}
	if !reflect.DeepEqual(out.Experiences[0].Achievements, want) {
		t.Fatalf("achievements = %v, want %v", out.Experiences[0].Achievements, want)
	}
}

func TestReconcilePersonalInfoFillAndSummary(t *testing.T) {
	ai := model.EmptyRecord()
	ai.PersonalInfo.FullName = "João"
	ai.PersonalInfo.Location = model.NotInformed
	ai.Summary = "short"

	section := model.EmptyRecord()
	section.PersonalInfo = model.PersonalInfo{Email: "j@x.com", Location: "São Luís"}
	section.Summary = "a strictly longer summary text"

	out := Reconcile(ai, section, "")
	if out.PersonalInfo.Email != "j@x.com" {
		t.Fatalf("email = %q", out.PersonalInfo.Email)
	}
	if out.PersonalInfo.Location != "São Luís" {
		t.Fatalf("location sentinel not replaced: %q", out.PersonalInfo.Location)
	}
	if out.Summary != "a strictly longer summary text" {
		t.Fatalf("summary = %q", out.Summary)
	}
}

func TestReconcileSkillsUnionAndCategorized(t *testing.T) {
	ai := model.EmptyRecord()
	ai.Skills = model.Skills{
		Technical:   []string{"Python"},
		Tools:       []string{"Git"},
		Soft:        []string{},
		Categorized: map[string]string{"linguagens": "Python"},
	}
	section := model.EmptyRecord()
	section.Skills = model.Skills{
		Technical:   []string{"python", "JavaScript"},
		Tools:       []string{},
		Soft:        []string{"Scrum"},
		Categorized: map[string]string{"frontend": "React"},
	}

	out := Reconcile(ai, section, "")
	if !reflect.DeepEqual(out.Skills.Technical, []string{"Python", "JavaScript"}) {
		t.Fatalf("technical = %v", out.Skills.Technical)
	}
	if out.Skills.Categorized["linguagens"] != "Python" || out.Skills.Categorized["frontend"] != "React" {
		t.Fatalf("categorized = %v", out.Skills.Categorized)
	}
}

func TestReconcileProjectTitleGate(t *testing.T) {
	ai := model.EmptyRecord()
	ai.Projects = []model.Project{{Name: "Painel", Description: "curto"}}

	section := model.EmptyRecord()
	section.Projects = []model.Project{
		{Name: "Painel", Description: "descrição bem mais longa que a anterior"},
		{Name: "- fragmento de frase", Description: "x"},
		{Name: "Sistema Novo", Description: "ok"},
	}

	out := Reconcile(ai, section, "")
	if len(out.Projects) != 2 {
		t.Fatalf("projects = %+v", out.Projects)
	}
	if out.Projects[0].Description != "descrição bem mais longa que a anterior" {
		t.Fatalf("description = %q", out.Projects[0].Description)
	}
	if out.Projects[1].Name != "Sistema Novo" {
		t.Fatalf("appended project = %+v", out.Projects[1])
	}
}

func TestReconcileEducationCertificationsLanguages(t *testing.T) {
	ai := model.EmptyRecord()
	ai.Languages = []model.LanguageEntry{{Language: model.NotInformed, Proficiency: model.NotInformed}}

	section := model.EmptyRecord()
	section.Education = []model.Education{{Institution: "UFMA", Degree: "BCC"}}
	section.Certifications = []model.Certification{{Name: "Docker"}}
	section.Languages = []model.LanguageEntry{{Language: "Inglês", Proficiency: "Avançado"}}

	out := Reconcile(ai, section, "")
	if len(out.Education) != 1 || out.Education[0].Institution != "UFMA" {
		t.Fatalf("education = %+v", out.Education)
	}
	if len(out.Certifications) != 1 {
		t.Fatalf("certifications = %+v", out.Certifications)
	}
	if len(out.Languages) != 1 || out.Languages[0].Language != "Inglês" {
		t.Fatalf("languages = %+v", out.Languages)
	}
}

func TestReconcileExtracurricularCompanyFallback(t *testing.T) {
	raw := "João\nL.U.M.I.N.A | Liga Acadêmica\n"
	ai := model.EmptyRecord()
	ai.ExtracurricularExperiences = []model.Experience{{Position: "Membro"}}

	out := Reconcile(ai, model.EmptyRecord(), raw)
	if out.ExtracurricularExperiences[0].Company != "L.U.M.I.N.A" {
		t.Fatalf("company = %q", out.ExtracurricularExperiences[0].Company)
	}

	out = Reconcile(ai, model.EmptyRecord(), "João\nnothing relevant here\n")
	if out.ExtracurricularExperiences[0].Company != "Experiência Extracurricular" {
		t.Fatalf("fallback company = %q", out.ExtracurricularExperiences[0].Company)
	}
}

func TestOrganizationLexiconIsConfigurable(t *testing.T) {
	old := sections.OrganizationLexicon
	sections.OrganizationLexicon = append([]string{"g.r.e.m.i.o"}, old...)
	defer func() { sections.OrganizationLexicon = old }()

	raw := "João\nG.R.E.M.I.O | Estudantil\n"
	ai := model.EmptyRecord()
	ai.ExtracurricularExperiences = []model.Experience{{Position: "Membro"}}

	out := Reconcile(ai, model.EmptyRecord(), raw)
	if out.ExtracurricularExperiences[0].Company != "G.R.E.M.I.O" {
		t.Fatalf("company = %q", out.ExtracurricularExperiences[0].Company)
	}
}
