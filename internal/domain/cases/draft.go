package cases

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vetiscan/vetiscan/internal/domain/catalog"
)

// DraftState is the lifecycle state of an in-progress report.
type DraftState string

const (
	// DraftEmpty is a fresh draft with no template selected.
	DraftEmpty DraftState = "empty"
	// DraftEditing is a draft being filled in.
	DraftEditing DraftState = "editing"
	// DraftConfirming is a draft under final review; field edits are locked.
	DraftConfirming DraftState = "confirming"
	// DraftCommitted is terminal; the draft produced a stored case.
	DraftCommitted DraftState = "committed"
)

// Draft is a report under construction. It holds the same fields a committed
// case does, minus the identifiers and timestamps stamped at commit time.
type Draft struct {
	ID    string     `json:"id"`
	State DraftState `json:"state"`

	OwnerName    string `json:"owner_name"`
	OwnerAddress string `json:"owner_address"`
	Mobile       string `json:"mobile"`
	PetName      string `json:"pet_name"`
	AnimalType   string `json:"animal_type"`
	Breed        string `json:"breed"`
	Age          string `json:"age"`
	Gender       string `json:"gender"`
	Weight       string `json:"weight"`

	TestName   string       `json:"test_name"`
	SampleType string       `json:"sample_type"`
	Results    []TestResult `json:"results"`

	DoctorName    string `json:"doctor_name"`
	DoctorRemarks string `json:"doctor_remarks"`

	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	CommittedCaseID string    `json:"committed_case_id,omitempty"`
}

func (d *Draft) clone() *Draft {
	out := *d
	out.Results = make([]TestResult, len(d.Results))
	copy(out.Results, d.Results)
	return &out
}

// DraftManager holds in-progress drafts in memory, keyed by draft id. All
// mutation goes through the manager so state transitions stay consistent
// under concurrent requests.
type DraftManager struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

func NewDraftManager() *DraftManager {
	return &DraftManager{drafts: make(map[string]*Draft)}
}

// NewDraft creates an empty draft and returns a snapshot of it.
func (m *DraftManager) NewDraft() *Draft {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	d := &Draft{
		ID:        uuid.NewString(),
		State:     DraftEmpty,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.drafts[d.ID] = d
	return d.clone()
}

// Get returns a snapshot of a draft.
func (m *DraftManager) Get(id string) (*Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return d.clone(), nil
}

// SelectTemplate seeds the draft with a panel's rows and sample type. Allowed
// while empty or editing; reselecting replaces any entered results.
func (m *DraftManager) SelectTemplate(id string, tpl *catalog.TestTemplate) (*Draft, error) {
	return m.update(id, func(d *Draft) error {
		if err := requireEditable(d); err != nil {
			return err
		}
		d.TestName = tpl.Name
		d.SampleType = tpl.SampleType
		d.Results = make([]TestResult, len(tpl.Rows))
		for i, row := range tpl.Rows {
			d.Results[i] = TestResult{
				Parameter:   row.Parameter,
				Unit:        row.Unit,
				NormalRange: row.NormalRange,
				Status:      ResultNormal,
			}
		}
		d.State = DraftEditing
		return nil
	})
}

// SetField updates one patient/owner/doctor field. Allowed while empty or
// editing; filling a field on an empty draft moves it to editing.
func (m *DraftManager) SetField(id, field, value string) (*Draft, error) {
	return m.update(id, func(d *Draft) error {
		if err := requireEditable(d); err != nil {
			return err
		}
		switch field {
		case "owner_name":
			d.OwnerName = value
		case "owner_address":
			d.OwnerAddress = value
		case "mobile":
			d.Mobile = value
		case "pet_name":
			d.PetName = value
		case "animal_type":
			d.AnimalType = value
		case "breed":
			d.Breed = value
		case "age":
			d.Age = value
		case "gender":
			d.Gender = value
		case "weight":
			d.Weight = value
		case "sample_type":
			d.SampleType = value
		case "doctor_name":
			d.DoctorName = value
		case "doctor_remarks":
			d.DoctorRemarks = value
		default:
			return fmt.Errorf("unknown field %q", field)
		}
		d.State = DraftEditing
		return nil
	})
}

// SetResultValue records a measured value for one result row and reclassifies
// the row against its reference interval.
func (m *DraftManager) SetResultValue(id string, row int, value string) (*Draft, error) {
	return m.update(id, func(d *Draft) error {
		if err := requireEditable(d); err != nil {
			return err
		}
		if len(d.Results) == 0 {
			return ErrMissingTemplate
		}
		if row < 0 || row >= len(d.Results) {
			return fmt.Errorf("result row %d out of range", row)
		}
		d.Results[row].Value = value
		d.Results[row].Status = Classify(value, d.Results[row].NormalRange)
		return nil
	})
}

// SetResultRange overrides the reference interval for one result row. The row
// is reclassified the same way a value edit is.
func (m *DraftManager) SetResultRange(id string, row int, normalRange string) (*Draft, error) {
	return m.update(id, func(d *Draft) error {
		if err := requireEditable(d); err != nil {
			return err
		}
		if len(d.Results) == 0 {
			return ErrMissingTemplate
		}
		if row < 0 || row >= len(d.Results) {
			return fmt.Errorf("result row %d out of range", row)
		}
		d.Results[row].NormalRange = normalRange
		d.Results[row].Status = Classify(d.Results[row].Value, normalRange)
		return nil
	})
}

// Review moves an editing draft to the confirming state. A template must be
// selected and the core identity fields filled.
func (m *DraftManager) Review(id string) (*Draft, error) {
	return m.update(id, func(d *Draft) error {
		switch d.State {
		case DraftCommitted:
			return ErrAlreadyCommitted
		case DraftConfirming:
			return nil
		case DraftEmpty:
			return ErrMissingTemplate
		}
		if d.TestName == "" {
			return ErrMissingTemplate
		}
		if d.OwnerName == "" {
			return fmt.Errorf("owner_name is required")
		}
		if d.Mobile == "" {
			return fmt.Errorf("mobile is required")
		}
		if d.PetName == "" {
			return fmt.Errorf("pet_name is required")
		}
		d.State = DraftConfirming
		return nil
	})
}

// Edit returns a confirming draft to the editing state.
func (m *DraftManager) Edit(id string) (*Draft, error) {
	return m.update(id, func(d *Draft) error {
		switch d.State {
		case DraftCommitted:
			return ErrAlreadyCommitted
		case DraftConfirming:
			d.State = DraftEditing
			return nil
		default:
			return ErrInvalidState
		}
	})
}

// Commit finalizes a confirming draft. The build callback turns the draft
// snapshot into a stored case; it runs under the manager lock so no competing
// request can mutate the draft mid-commit. On success the draft becomes
// terminal and remembers the stored case id.
func (m *DraftManager) Commit(id string, build func(*Draft) (*DiagnosticCase, error)) (*DiagnosticCase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	switch d.State {
	case DraftCommitted:
		return nil, ErrAlreadyCommitted
	case DraftConfirming:
	default:
		return nil, ErrInvalidState
	}

	dc, err := build(d.clone())
	if err != nil {
		return nil, err
	}
	d.State = DraftCommitted
	d.CommittedCaseID = dc.ID
	d.UpdatedAt = time.Now().UTC()
	return dc, nil
}

// Discard removes a draft in any state.
func (m *DraftManager) Discard(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.drafts[id]; !ok {
		return ErrDraftNotFound
	}
	delete(m.drafts, id)
	return nil
}

func (m *DraftManager) update(id string, fn func(*Draft) error) (*Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	d.UpdatedAt = time.Now().UTC()
	return d.clone(), nil
}

func requireEditable(d *Draft) error {
	switch d.State {
	case DraftCommitted:
		return ErrAlreadyCommitted
	case DraftConfirming:
		return ErrInvalidState
	default:
		return nil
	}
}
