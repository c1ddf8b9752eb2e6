package cases

import (
	"regexp"
	"testing"
)

func TestNewReportID_Format(t *testing.T) {
	re := regexp.MustCompile(`^REP-[0-9A-Z]{6}$`)
	for i := 0; i < 50; i++ {
		id, err := NewReportID()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !re.MatchString(id) {
			t.Fatalf("bad report id %q", id)
		}
	}
}

func TestNewSampleID_Format(t *testing.T) {
	re := regexp.MustCompile(`^SID-[0-9]{6}$`)
	for i := 0; i < 50; i++ {
		id, err := NewSampleID()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !re.MatchString(id) {
			t.Fatalf("bad sample id %q", id)
		}
	}
}

func TestHasAbnormal(t *testing.T) {
	dc := &DiagnosticCase{TestResults: []TestResult{
		{Parameter: "Hemoglobin", Status: ResultNormal},
		{Parameter: "PCV", Status: ResultNormal},
	}}
	if dc.HasAbnormal() {
		t.Error("expected no abnormal rows")
	}
	dc.TestResults[1].Status = ResultAbnormal
	if !dc.HasAbnormal() {
		t.Error("expected abnormal flag")
	}
}
