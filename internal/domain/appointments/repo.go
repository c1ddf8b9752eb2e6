package appointments

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound means no appointment request matched the id.
var ErrNotFound = errors.New("appointment request not found")

// RequestRepository stores appointment requests.
type RequestRepository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*Request, error)
	List(ctx context.Context, status RequestStatus, limit, offset int) ([]*Request, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status RequestStatus) error
}
