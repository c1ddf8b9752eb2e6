package appointments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service provides business logic for appointment requests.
type Service struct {
	requests RequestRepository
}

func NewService(requests RequestRepository) *Service {
	return &Service{requests: requests}
}

func (s *Service) CreateRequest(ctx context.Context, r *Request) error {
	if r.OwnerName == "" {
		return fmt.Errorf("owner_name is required")
	}
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if r.Service == "" {
		return fmt.Errorf("service is required")
	}
	return s.requests.Create(ctx, r)
}

func (s *Service) GetRequest(ctx context.Context, id uuid.UUID) (*Request, error) {
	return s.requests.GetByID(ctx, id)
}

func (s *Service) ListRequests(ctx context.Context, status RequestStatus, limit, offset int) ([]*Request, int, error) {
	if status != "" && !ValidStatus(status) {
		return nil, 0, fmt.Errorf("unknown status %q", status)
	}
	return s.requests.List(ctx, status, limit, offset)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status RequestStatus) error {
	if !ValidStatus(status) {
		return fmt.Errorf("unknown status %q", status)
	}
	return s.requests.UpdateStatus(ctx, id, status)
}
