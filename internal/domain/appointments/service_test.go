package appointments

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func validRequest() *Request {
	return &Request{
		OwnerName:     "Ravi Kumar",
		PetName:       "Bruno",
		Email:         "ravi@example.com",
		Phone:         "9876543210",
		Service:       "Ultrasound",
		PreferredDate: "2025-07-01",
		Notes:         "Limping on front left leg",
	}
}

func TestCreateRequest_Valid(t *testing.T) {
	svc := NewService(NewRequestRepoMem())
	r := validRequest()
	if err := svc.CreateRequest(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if r.Status != StatusPending {
		t.Errorf("expected pending, got %s", r.Status)
	}
	if r.CreatedAt.IsZero() {
		t.Error("expected created timestamp")
	}
}

func TestCreateRequest_RequiredFields(t *testing.T) {
	svc := NewService(NewRequestRepoMem())
	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing owner", func(r *Request) { r.OwnerName = "" }},
		{"missing phone", func(r *Request) { r.Phone = "" }},
		{"missing service", func(r *Request) { r.Service = "" }},
	}
	for _, tc := range cases {
		r := validRequest()
		tc.mutate(r)
		if err := svc.CreateRequest(context.Background(), r); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestListRequests_FilterByStatus(t *testing.T) {
	svc := NewService(NewRequestRepoMem())
	ctx := context.Background()

	first := validRequest()
	second := validRequest()
	second.OwnerName = "Anita Rao"
	svc.CreateRequest(ctx, first)
	svc.CreateRequest(ctx, second)

	if err := svc.UpdateStatus(ctx, first.ID, StatusConfirmed); err != nil {
		t.Fatalf("update status: %v", err)
	}

	items, total, err := svc.ListRequests(ctx, StatusPending, 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || items[0].OwnerName != "Anita Rao" {
		t.Errorf("pending filter failed: total %d", total)
	}

	_, total, err = svc.ListRequests(ctx, "", 20, 0)
	if err != nil || total != 2 {
		t.Errorf("unfiltered list failed: total %d err %v", total, err)
	}

	if _, _, err := svc.ListRequests(ctx, "archived", 20, 0); err == nil {
		t.Error("expected error for unknown status filter")
	}
}

func TestListRequests_NoLimitReturnsAll(t *testing.T) {
	svc := NewService(NewRequestRepoMem())
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		svc.CreateRequest(ctx, validRequest())
	}

	// A non-positive limit means the whole list; both backends honor this.
	items, total, err := svc.ListRequests(ctx, "", 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(items) != 3 {
		t.Errorf("expected all 3 requests, got %d of %d", len(items), total)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc := NewService(NewRequestRepoMem())
	ctx := context.Background()

	r := validRequest()
	svc.CreateRequest(ctx, r)

	if err := svc.UpdateStatus(ctx, r.ID, StatusCancelled); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := svc.GetRequest(ctx, r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusCancelled {
		t.Errorf("expected cancelled, got %s", got.Status)
	}

	if err := svc.UpdateStatus(ctx, r.ID, "archived"); err == nil {
		t.Error("expected error for unknown status")
	}
	if err := svc.UpdateStatus(ctx, uuid.New(), StatusConfirmed); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
