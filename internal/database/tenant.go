package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// TenantResolver hands out the data handle for a school. Each school in the
// platform lives in its own database; everything above this interface stays
// tenant-agnostic.
type TenantResolver interface {
	DB(ctx context.Context, school string) (*sql.DB, error)
}

// TenantRegistry resolves schools through a registry table in the shared
// database and caches the opened handles.
type TenantRegistry struct {
	registry *sql.DB

	mu      sync.Mutex
	handles map[string]*sql.DB
}

func NewTenantRegistry(registry *sql.DB) *TenantRegistry {
	return &TenantRegistry{
		registry: registry,
		handles:  make(map[string]*sql.DB),
	}
}

func (r *TenantRegistry) DB(ctx context.Context, school string) (*sql.DB, error) {
	r.mu.Lock()
	if db, ok := r.handles[school]; ok {
		r.mu.Unlock()
		return db, nil
	}
	r.mu.Unlock()

	var dsn string
	err := r.registry.QueryRowContext(ctx,
		"SELECT dsn FROM tenant_schools WHERE school_code = $1", school,
	).Scan(&dsn)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("unknown school: %s", school)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve school %s: %w", school, err)
	}

	db, err := NewConnection(dsn)
	if err != nil {
		return nil, fmt.Errorf("connect school %s: %w", school, err)
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.handles[school]; ok {
		// Lost the race; keep the first handle.
		db.Close()
		return existing, nil
	}
	r.handles[school] = db
	return db, nil
}

// Close closes every cached tenant handle.
func (r *TenantRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for school, db := range r.handles {
		db.Close()
		delete(r.handles, school)
	}
}

// SingleTenant is a TenantResolver for deployments with one database; every
// school maps to the same handle.
type SingleTenant struct {
	Handle *sql.DB
}

func (s SingleTenant) DB(ctx context.Context, school string) (*sql.DB, error) {
	return s.Handle, nil
}
