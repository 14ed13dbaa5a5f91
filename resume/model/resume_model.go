// Package model defines the canonical resume record produced by the
// structuring pipeline and consumed by document generation.
package model

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sentinel values substituted when a required display field is unknown on
// both sides of the merge.
const (
	NotInformed         = "Nao informado"
	PositionNotInformed = "Cargo nao informado"
	CompanyNotInformed  = "Experiencia profissional"
	CurrentLabel        = "Atual"
)

// ResumeData is the canonical record. It is built fresh per request and never
// mutated after reconciliation hands it to document generation.
type ResumeData struct {
	PersonalInfo               PersonalInfo    `json:"personal_info"`
	Summary                    string          `json:"summary,omitempty"`
	Experiences                []Experience    `json:"experiences"`
	ExtracurricularExperiences []Experience    `json:"extracurricular_experiences"`
	Education                  []Education     `json:"education"`
	Skills                     Skills          `json:"skills"`
	Certifications             []Certification `json:"certifications"`
	Projects                   []Project       `json:"projects"`
	Languages                  []LanguageEntry `json:"languages"`
}

// PersonalInfo carries top-of-resume identity and contact details.
type PersonalInfo struct {
	FullName  string `json:"full_name" validate:"required"`
	Headline  string `json:"headline,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub    string `json:"github,omitempty" validate:"omitempty,url"`
	Portfolio string `json:"portfolio,omitempty" validate:"omitempty,url"`
}

// Experience is a professional or extracurricular work entry. Dates are
// YYYY-MM or YYYY strings; EndDate is "Atual" while Current is true.
type Experience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date,omitempty"`
	Current      bool     `json:"current"`
	Achievements []string `json:"achievements"`
}

// Education is an academic background entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
}

// Skills groups skill lists plus the verbatim categorized skill lines keyed
// by normalized category label.
type Skills struct {
	Technical   []string          `json:"technical"`
	Tools       []string          `json:"tools"`
	Soft        []string          `json:"soft"`
	Categorized map[string]string `json:"categorized"`
}

// Certification is a completed course or certification entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url,omitempty" validate:"omitempty,url"`
}

// Project is a personal or professional project entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Highlights   []string `json:"highlights"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty" validate:"omitempty,url"`
}

// LanguageEntry is a spoken language with its proficiency level.
type LanguageEntry struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field paths using wire names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

const maxValidationIssues = 3

// Validate checks the record against the canonical schema. On failure the
// error message lists at most three field-path/message pairs.
func (d ResumeData) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	issues := make([]string, 0, maxValidationIssues)
	for _, fe := range verrs {
		if len(issues) == maxValidationIssues {
			break
		}
		path := strings.TrimPrefix(fe.Namespace(), "ResumeData.")
		issues = append(issues, fmt.Sprintf("%s: failed %q", path, fe.Tag()))
	}
	return fmt.Errorf("invalid resume data: %s", strings.Join(issues, "; "))
}

// EmptyRecord returns a record with every collection initialized so JSON
// output renders [] and {} instead of null.
func EmptyRecord() ResumeData {
	return ResumeData{
		PersonalInfo:               PersonalInfo{Location: NotInformed},
		Experiences:                []Experience{},
		ExtracurricularExperiences: []Experience{},
		Education:                  []Education{},
		Skills: Skills{
			Technical:   []string{},
			Tools:       []string{},
			Soft:        []string{},
			Categorized: map[string]string{},
		},
		Certifications: []Certification{},
		Projects:       []Project{},
		Languages:      []LanguageEntry{},
	}
}
