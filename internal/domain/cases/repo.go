package cases

import "context"

// CaseRepository is the append-only store of committed diagnostic cases.
// There is deliberately no Update or Delete: a committed report is a record.
type CaseRepository interface {
	// Append stores a committed case. The case keeps its generated ids and
	// timestamps; the store never rewrites them.
	Append(ctx context.Context, dc *DiagnosticCase) error
	// FindByID returns the case whose report id matches exactly. A store
	// that has never been written returns ErrStoreEmpty instead of
	// ErrNotFound, so callers can word the failure accordingly.
	FindByID(ctx context.Context, id string) (*DiagnosticCase, error)
	// FindByMobile returns the most recent case registered under the exact
	// mobile number. The empty-store rule of FindByID applies here too.
	FindByMobile(ctx context.Context, mobile string) (*DiagnosticCase, error)
	// Search returns cases whose report id, owner name, pet name, or mobile
	// contains the query (case-insensitive), most recent first.
	Search(ctx context.Context, query string, limit, offset int) ([]*DiagnosticCase, int, error)
	// LoadAll returns every stored case, most recent first. A store that has
	// never been written returns ErrStoreEmpty; an unreadable store returns
	// ErrStoreCorrupt.
	LoadAll(ctx context.Context) ([]*DiagnosticCase, error)
	// Count returns the number of stored cases.
	Count(ctx context.Context) (int, error)
	// ExistsID reports whether a report id is already taken.
	ExistsID(ctx context.Context, id string) (bool, error)
}
