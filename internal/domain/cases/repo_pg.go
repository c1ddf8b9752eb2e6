package cases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vetiscan/vetiscan/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// caseRepoPG is the Postgres backend for deployments that outgrow the slot
// file. Same append-only contract: inserts only, no UPDATE or DELETE.
type caseRepoPG struct{ pool *pgxpool.Pool }

func NewCaseRepoPG(pool *pgxpool.Pool) CaseRepository {
	return &caseRepoPG{pool: pool}
}

func (r *caseRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const caseCols = `id, sample_id, owner_name, owner_address, mobile, pet_name,
	animal_type, breed, age, gender, weight, test_name, sample_type,
	doctor_name, doctor_remarks, collection_at, report_at, created_at, status`

func (r *caseRepoPG) scanCase(row pgx.Row) (*DiagnosticCase, error) {
	var dc DiagnosticCase
	err := row.Scan(&dc.ID, &dc.SampleID, &dc.OwnerName, &dc.OwnerAddress,
		&dc.Mobile, &dc.PetName, &dc.AnimalType, &dc.Breed, &dc.Age,
		&dc.Gender, &dc.Weight, &dc.TestName, &dc.SampleType,
		&dc.DoctorName, &dc.DoctorRemarks,
		&dc.CollectionDateTime, &dc.ReportDateTime, &dc.CreatedAt, &dc.Status)
	return &dc, err
}

func (r *caseRepoPG) Append(ctx context.Context, dc *DiagnosticCase) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO diagnostic_case (id, sample_id, owner_name, owner_address, mobile, pet_name,
			animal_type, breed, age, gender, weight, test_name, sample_type,
			doctor_name, doctor_remarks, collection_at, report_at, created_at, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`,
		dc.ID, dc.SampleID, dc.OwnerName, dc.OwnerAddress, dc.Mobile, dc.PetName,
		dc.AnimalType, dc.Breed, dc.Age, dc.Gender, dc.Weight, dc.TestName, dc.SampleType,
		dc.DoctorName, dc.DoctorRemarks, dc.CollectionDateTime, dc.ReportDateTime, dc.CreatedAt, dc.Status)
	if err != nil {
		return fmt.Errorf("insert case: %w", err)
	}

	for i, res := range dc.TestResults {
		_, err = tx.Exec(ctx, `
			INSERT INTO case_result (id, case_id, position, parameter, value, unit, normal_range, status)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			uuid.New(), dc.ID, i, res.Parameter, res.Value, res.Unit, res.NormalRange, res.Status)
		if err != nil {
			return fmt.Errorf("insert case result: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (r *caseRepoPG) FindByID(ctx context.Context, id string) (*DiagnosticCase, error) {
	dc, err := r.scanCase(r.conn(ctx).QueryRow(ctx,
		`SELECT `+caseCols+` FROM diagnostic_case WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.missErr(ctx)
	}
	if err != nil {
		return nil, err
	}
	if err := r.attachResults(ctx, dc); err != nil {
		return nil, err
	}
	return dc, nil
}

func (r *caseRepoPG) FindByMobile(ctx context.Context, mobile string) (*DiagnosticCase, error) {
	dc, err := r.scanCase(r.conn(ctx).QueryRow(ctx,
		`SELECT `+caseCols+` FROM diagnostic_case WHERE mobile = $1 ORDER BY created_at DESC LIMIT 1`, mobile))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.missErr(ctx)
	}
	if err != nil {
		return nil, err
	}
	if err := r.attachResults(ctx, dc); err != nil {
		return nil, err
	}
	return dc, nil
}

// missErr distinguishes a miss in a populated store from a store that has
// never been written, matching the file backend's ErrStoreEmpty behavior.
func (r *caseRepoPG) missErr(ctx context.Context) error {
	n, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStoreEmpty
	}
	return ErrNotFound
}

func (r *caseRepoPG) Search(ctx context.Context, query string, limit, offset int) ([]*DiagnosticCase, int, error) {
	q := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	where := `WHERE lower(id) LIKE $1 OR lower(owner_name) LIKE $1 OR lower(pet_name) LIKE $1 OR mobile LIKE $1`

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM diagnostic_case `+where, q).Scan(&total); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = total
	}
	items, err := r.queryCases(ctx,
		`SELECT `+caseCols+` FROM diagnostic_case `+where+` ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		q, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *caseRepoPG) LoadAll(ctx context.Context) ([]*DiagnosticCase, error) {
	items, err := r.queryCases(ctx,
		`SELECT `+caseCols+` FROM diagnostic_case ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrStoreEmpty
	}
	return items, nil
}

func (r *caseRepoPG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM diagnostic_case`).Scan(&n)
	return n, err
}

func (r *caseRepoPG) ExistsID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM diagnostic_case WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *caseRepoPG) queryCases(ctx context.Context, sql string, args ...interface{}) ([]*DiagnosticCase, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*DiagnosticCase
	for rows.Next() {
		dc, err := r.scanCase(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, dc := range items {
		if err := r.attachResults(ctx, dc); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *caseRepoPG) attachResults(ctx context.Context, dc *DiagnosticCase) error {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT parameter, value, unit, normal_range, status
		FROM case_result WHERE case_id = $1 ORDER BY position`, dc.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var res TestResult
		if err := rows.Scan(&res.Parameter, &res.Value, &res.Unit, &res.NormalRange, &res.Status); err != nil {
			return err
		}
		dc.TestResults = append(dc.TestResults, res)
	}
	return rows.Err()
}
