package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"resumeats-backend/resume/model"
	"resumeats-backend/resume/render"
)

func main() {
	outDir := flag.String("out", "./out", "output directory for the generated DOCX")
	flag.Parse()

	data := sampleRecord()
	now := time.Now()

	docxBytes, err := render.RenderDocx(data, now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(*outDir, render.BuildFilename(data.PersonalInfo.FullName, now))
	if err := writeOutputs(outPath, data, docxBytes); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	if err := validateRenderedDocx(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "render validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: wrote %s\n", outPath)
}

func writeOutputs(outPath string, data model.ResumeData, docxBytes []byte) error {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(outPath, docxBytes, 0o644); err != nil {
		return err
	}

	recordPath := filepath.Join(dir, "sample_resume_data.json")
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(recordPath, payload, 0o644)
}

func sampleRecord() model.ResumeData {
	data := model.EmptyRecord()
	data.PersonalInfo = model.PersonalInfo{
		FullName: "Maria Oliveira",
		Headline: "Desenvolvedora Full Stack",
		Email:    "maria.oliveira@example.com",
		Phone:    "+55 98 99999-0000",
		Location: "São Luís - MA",
		LinkedIn: "https://www.linkedin.com/in/mariaoliveira",
		GitHub:   "https://github.com/mariaoliveira",
	}
	data.Summary = "Desenvolvedora full stack com experiência em aplicações web e APIs REST."
	data.Experiences = []model.Experience{
		{
			Company:   "Dev Tech",
			Position:  "Desenvolvedora Full Stack",
			Location:  "São Luís",
			StartDate: "2023-02",
			Current:   true,
			Achievements: []string{
				"Desenvolvi o painel administrativo em React e TypeScript.",
				"Implementei APIs REST em Python com autenticação JWT.",
			},
		},
	}
	data.ExtracurricularExperiences = []model.Experience{
		{
			Company:   "L.U.M.I.N.A",
			Position:  "Diretoria de Projetos",
			StartDate: "2024-03",
			Current:   true,
			Achievements: []string{
				"Organizei oficinas de introdução à programação para calouros.",
			},
		},
	}
	data.Skills.Categorized = map[string]string{
		"linguagens":     "Python, JavaScript, TypeScript",
		"frontend":       "React, Next.js",
		"backend":        "Flask, Node.js",
		"banco_de_dados": "PostgreSQL, MySQL",
		"ferramentas":    "Git, Docker, Figma",
	}
	data.Projects = []model.Project{
		{
			Name:         "Painel de Vendas",
			Description:  "Dashboard de vendas com atualização em tempo real.",
			Highlights:   []string{"- Reduziu o tempo de fechamento mensal em 40%."},
			Technologies: []string{"React", "Flask", "PostgreSQL"},
			URL:          "https://github.com/mariaoliveira/painel-vendas",
		},
	}
	data.Education = []model.Education{
		{
			Institution: "Universidade Federal do Maranhão",
			Degree:      "Bacharelado em Ciência da Computação",
			EndDate:     "2027",
		},
	}
	data.Certifications = []model.Certification{
		{Name: "Fundamentos de Docker", Issuer: "Alura", Date: "2024"},
	}
	data.Languages = []model.LanguageEntry{
		{Language: "Inglês", Proficiency: "Avançado"},
	}
	return data
}

func validateRenderedDocx(path string) error {
	docxBytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	reader, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		return err
	}

	for _, file := range reader.File {
		if file.Name == "word/document.xml" {
			return nil
		}
	}
	return fmt.Errorf("document.xml not found in docx")
}
