package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValidateRequiresFullName(t *testing.T) {
	d := EmptyRecord()
	err := d.Validate()
	if err == nil {
		t.Fatalf("expected error for missing full name")
	}
	if !strings.Contains(err.Error(), "personal_info.full_name") {
		t.Fatalf("expected wire-name field path, got %q", err.Error())
	}
}

func TestValidateAcceptsMinimalRecord(t *testing.T) {
	d := EmptyRecord()
	d.PersonalInfo.FullName = "Maria Silva"
	if err := d.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsBadURLsAndEmail(t *testing.T) {
	d := EmptyRecord()
	d.PersonalInfo.FullName = "Maria Silva"
	d.PersonalInfo.Email = "not-an-email"
	d.PersonalInfo.LinkedIn = "linkedin.com/in/maria"
	err := d.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "personal_info.email") {
		t.Fatalf("expected email path in %q", msg)
	}
	if !strings.Contains(msg, "personal_info.linkedin") {
		t.Fatalf("expected linkedin path in %q", msg)
	}
}

func TestValidateCapsIssueCount(t *testing.T) {
	d := EmptyRecord()
	d.PersonalInfo.Email = "bad"
	d.PersonalInfo.LinkedIn = "bad"
	d.PersonalInfo.GitHub = "bad"
	d.PersonalInfo.Portfolio = "bad"
	err := d.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if got := strings.Count(err.Error(), ";") + 1; got > 3 {
		t.Fatalf("expected at most 3 issues, got %d: %v", got, err)
	}
}

func TestEmptyRecordMarshalsWithoutNulls(t *testing.T) {
	b, err := json.Marshal(EmptyRecord())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "null") {
		t.Fatalf("expected no null collections, got %s", b)
	}
	if !strings.Contains(string(b), `"location":"Nao informado"`) {
		t.Fatalf("expected location sentinel, got %s", b)
	}
}
