package appointments

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type requestRepoPG struct{ pool *pgxpool.Pool }

func NewRequestRepoPG(pool *pgxpool.Pool) RequestRepository {
	return &requestRepoPG{pool: pool}
}

const reqCols = `id, owner_name, pet_name, email, phone, service, preferred_date, notes, status, created_at, updated_at`

func scanRequest(row pgx.Row) (*Request, error) {
	var r Request
	err := row.Scan(&r.ID, &r.OwnerName, &r.PetName, &r.Email, &r.Phone,
		&r.Service, &r.PreferredDate, &r.Notes, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	return &r, err
}

func (p *requestRepoPG) Create(ctx context.Context, r *Request) error {
	r.ID = uuid.New()
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.Status = StatusPending
	_, err := p.pool.Exec(ctx, `
		INSERT INTO appointment_request (id, owner_name, pet_name, email, phone, service, preferred_date, notes, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		r.ID, r.OwnerName, r.PetName, r.Email, r.Phone, r.Service, r.PreferredDate, r.Notes, r.Status, r.CreatedAt, r.UpdatedAt)
	return err
}

func (p *requestRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	r, err := scanRequest(p.pool.QueryRow(ctx,
		`SELECT `+reqCols+` FROM appointment_request WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return r, err
}

func (p *requestRepoPG) List(ctx context.Context, status RequestStatus, limit, offset int) ([]*Request, int, error) {
	where := ``
	args := []interface{}{}
	if status != "" {
		where = `WHERE status = $1`
		args = append(args, status)
	}

	var total int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointment_request `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	// limit <= 0 means everything, same as the in-memory backend.
	if limit <= 0 {
		limit = total
	}

	query := `SELECT ` + reqCols + ` FROM appointment_request ` + where + ` ORDER BY created_at DESC`
	if status != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, r)
	}
	return items, total, rows.Err()
}

func (p *requestRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status RequestStatus) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE appointment_request SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
