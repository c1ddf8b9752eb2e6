package cases

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// CaseStatus is the lifecycle state of a committed diagnostic case.
type CaseStatus string

const (
	StatusPending   CaseStatus = "Pending"
	StatusCompleted CaseStatus = "Completed"
)

// ResultStatus is the evaluator's verdict for one measured parameter.
type ResultStatus string

const (
	ResultNormal   ResultStatus = "Normal"
	ResultAbnormal ResultStatus = "Abnormal"
)

// TestResult is one row of a diagnostic report: a measured parameter, the
// observed value, and the reference interval it was judged against.
type TestResult struct {
	Parameter   string       `json:"parameter"`
	Value       string       `json:"value"`
	Unit        string       `json:"unit"`
	NormalRange string       `json:"normal_range"`
	Status      ResultStatus `json:"status"`
}

// DiagnosticCase is a committed report. Cases are append-only: once stored
// they are never updated or deleted.
type DiagnosticCase struct {
	ID           string `json:"id"`
	SampleID     string `json:"sample_id"`
	OwnerName    string `json:"owner_name"`
	OwnerAddress string `json:"owner_address,omitempty"`
	Mobile       string `json:"mobile"`
	PetName      string `json:"pet_name"`
	AnimalType   string `json:"animal_type"`
	Breed        string `json:"breed"`
	Age          string `json:"age"`
	Gender       string `json:"gender"`
	Weight       string `json:"weight,omitempty"`

	TestName    string       `json:"test_name"`
	SampleType  string       `json:"sample_type"`
	TestResults []TestResult `json:"test_results"`

	DoctorName    string `json:"doctor_name"`
	DoctorRemarks string `json:"doctor_remarks,omitempty"`

	CollectionDateTime time.Time  `json:"collection_date_time"`
	ReportDateTime     time.Time  `json:"report_date_time"`
	CreatedAt          time.Time  `json:"created_at"`
	Status             CaseStatus `json:"status"`
}

// HasAbnormal reports whether any result row was flagged Abnormal.
func (dc *DiagnosticCase) HasAbnormal() bool {
	for _, r := range dc.TestResults {
		if r.Status == ResultAbnormal {
			return true
		}
	}
	return false
}

const reportIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewReportID returns a report identifier of the form REP-XXXXXX where each X
// is an uppercase base36 character.
func NewReportID() (string, error) {
	suffix, err := randomString(reportIDAlphabet, 6)
	if err != nil {
		return "", fmt.Errorf("generate report id: %w", err)
	}
	return "REP-" + suffix, nil
}

// NewSampleID returns a sample identifier of the form SID-NNNNNN.
func NewSampleID() (string, error) {
	suffix, err := randomString("0123456789", 6)
	if err != nil {
		return "", fmt.Errorf("generate sample id: %w", err)
	}
	return "SID-" + suffix, nil
}

func randomString(alphabet string, n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[idx.Int64()]
	}
	return string(buf), nil
}
