package cases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vetiscan/vetiscan/internal/domain/catalog"
)

// Letterhead is the lab identity printed on every report.
type Letterhead struct {
	Name         string `json:"name"`
	Registration string `json:"registration"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Pathologist  string `json:"pathologist"`
}

// Report is a committed case paired with the letterhead, the payload the
// printing collaborator renders.
type Report struct {
	Letterhead Letterhead      `json:"letterhead"`
	Case       *DiagnosticCase `json:"case"`
}

// Service provides business logic for the diagnostic-case domain: the draft
// workflow, the append-only store, and public lookup.
type Service struct {
	repo       CaseRepository
	drafts     *DraftManager
	letterhead Letterhead
}

// NewService creates a new case domain service.
func NewService(repo CaseRepository, drafts *DraftManager, lh Letterhead) *Service {
	return &Service{repo: repo, drafts: drafts, letterhead: lh}
}

// -- Draft workflow --

func (s *Service) NewDraft(ctx context.Context) *Draft {
	return s.drafts.NewDraft()
}

func (s *Service) GetDraft(ctx context.Context, id string) (*Draft, error) {
	return s.drafts.Get(id)
}

func (s *Service) SelectTemplate(ctx context.Context, draftID, templateName string) (*Draft, error) {
	tpl, ok := catalog.Template(templateName)
	if !ok {
		return nil, ErrMissingTemplate
	}
	return s.drafts.SelectTemplate(draftID, tpl)
}

func (s *Service) SetField(ctx context.Context, draftID, field, value string) (*Draft, error) {
	return s.drafts.SetField(draftID, field, value)
}

func (s *Service) SetResultValue(ctx context.Context, draftID string, row int, value string) (*Draft, error) {
	return s.drafts.SetResultValue(draftID, row, value)
}

func (s *Service) SetResultRange(ctx context.Context, draftID string, row int, normalRange string) (*Draft, error) {
	return s.drafts.SetResultRange(draftID, row, normalRange)
}

func (s *Service) Review(ctx context.Context, draftID string) (*Draft, error) {
	return s.drafts.Review(draftID)
}

func (s *Service) Edit(ctx context.Context, draftID string) (*Draft, error) {
	return s.drafts.Edit(draftID)
}

func (s *Service) Discard(ctx context.Context, draftID string) error {
	return s.drafts.Discard(draftID)
}

// CommitDraft finalizes a confirming draft: stamps fresh report and sample
// identifiers, collection and report timestamps, marks the case Completed,
// and appends it to the store. The draft becomes terminal on success.
func (s *Service) CommitDraft(ctx context.Context, draftID string) (*DiagnosticCase, error) {
	return s.drafts.Commit(draftID, func(d *Draft) (*DiagnosticCase, error) {
		id, err := s.freshReportID(ctx)
		if err != nil {
			return nil, err
		}
		sampleID, err := NewSampleID()
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		dc := &DiagnosticCase{
			ID:                 id,
			SampleID:           sampleID,
			OwnerName:          d.OwnerName,
			OwnerAddress:       d.OwnerAddress,
			Mobile:             d.Mobile,
			PetName:            d.PetName,
			AnimalType:         d.AnimalType,
			Breed:              d.Breed,
			Age:                d.Age,
			Gender:             d.Gender,
			Weight:             d.Weight,
			TestName:           d.TestName,
			SampleType:         d.SampleType,
			TestResults:        d.Results,
			DoctorName:         d.DoctorName,
			DoctorRemarks:      d.DoctorRemarks,
			CollectionDateTime: now,
			ReportDateTime:     now,
			CreatedAt:          now,
			Status:             StatusCompleted,
		}
		if err := s.repo.Append(ctx, dc); err != nil {
			return nil, fmt.Errorf("store case: %w", err)
		}
		return dc, nil
	})
}

// freshReportID draws report ids until one does not collide with the store.
func (s *Service) freshReportID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		id, err := NewReportID()
		if err != nil {
			return "", err
		}
		taken, err := s.repo.ExistsID(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique report id")
}

// -- Lookup and listing --

// Lookup resolves a public query to at most one case: an exact report id
// match first, then the most recent case under an exact mobile-number match.
// ErrStoreEmpty and ErrNotFound are distinct so the caller can word the
// failure correctly.
func (s *Service) Lookup(ctx context.Context, query string) (*DiagnosticCase, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrNotFound
	}

	dc, err := s.repo.FindByID(ctx, query)
	if err == nil {
		return dc, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return s.repo.FindByMobile(ctx, query)
}

func (s *Service) Search(ctx context.Context, query string, limit, offset int) ([]*DiagnosticCase, int, error) {
	return s.repo.Search(ctx, query, limit, offset)
}

func (s *Service) GetCase(ctx context.Context, id string) (*DiagnosticCase, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Report pairs a stored case with the configured letterhead.
func (s *Service) Report(ctx context.Context, id string) (*Report, error) {
	dc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Report{Letterhead: s.letterhead, Case: dc}, nil
}
