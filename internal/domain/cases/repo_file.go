package cases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// caseRepoFile persists the whole collection as one JSON document, rewritten
// on every append. Appends prepend, so the file and every read are most
// recent first. The server is the single writer; a mutex serializes access
// within the process.
type caseRepoFile struct {
	mu     sync.Mutex
	path   string
	logger zerolog.Logger
}

func NewCaseRepoFile(path string, logger zerolog.Logger) CaseRepository {
	return &caseRepoFile{path: path, logger: logger}
}

func (r *caseRepoFile) Append(ctx context.Context, dc *DiagnosticCase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.load()
	if errors.Is(err, ErrStoreEmpty) {
		existing = nil
	} else if err != nil {
		// Refuse to clobber a corrupt slot; the operator may still be able
		// to recover it.
		return err
	}

	all := append([]*DiagnosticCase{dc}, existing...)
	return r.save(all)
}

func (r *caseRepoFile) FindByID(ctx context.Context, id string) (*DiagnosticCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, dc := range all {
		if dc.ID == id {
			return dc, nil
		}
	}
	return nil, ErrNotFound
}

func (r *caseRepoFile) FindByMobile(ctx context.Context, mobile string) (*DiagnosticCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return nil, err
	}
	// The slot is most recent first, so the first match is the latest report
	// under this number.
	for _, dc := range all {
		if dc.Mobile == mobile {
			return dc, nil
		}
	}
	return nil, ErrNotFound
}

func (r *caseRepoFile) Search(ctx context.Context, query string, limit, offset int) ([]*DiagnosticCase, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if errors.Is(err, ErrStoreEmpty) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	var matched []*DiagnosticCase
	for _, dc := range all {
		if q == "" || matchesQuery(dc, q) {
			matched = append(matched, dc)
		}
	}
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func matchesQuery(dc *DiagnosticCase, q string) bool {
	return strings.Contains(strings.ToLower(dc.ID), q) ||
		strings.Contains(strings.ToLower(dc.OwnerName), q) ||
		strings.Contains(strings.ToLower(dc.PetName), q) ||
		strings.Contains(dc.Mobile, q)
}

func (r *caseRepoFile) LoadAll(ctx context.Context) ([]*DiagnosticCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *caseRepoFile) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if errors.Is(err, ErrStoreEmpty) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

func (r *caseRepoFile) ExistsID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if errors.Is(err, ErrStoreEmpty) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	for _, dc := range all {
		if dc.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *caseRepoFile) load() ([]*DiagnosticCase, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrStoreEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read case store: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrStoreEmpty
	}

	var all []*DiagnosticCase
	if err := json.Unmarshal(data, &all); err != nil {
		r.logger.Error().Err(err).Str("path", r.path).Msg("case store slot is unreadable")
		return nil, ErrStoreCorrupt
	}
	if len(all) == 0 {
		return nil, ErrStoreEmpty
	}
	return all, nil
}

// save writes the collection via a temp file and rename so a crash mid-write
// cannot leave a half-written slot.
func (r *caseRepoFile) save(all []*DiagnosticCase) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode case store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".cases-*.json")
	if err != nil {
		return fmt.Errorf("write case store: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write case store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write case store: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write case store: %w", err)
	}
	return nil
}
