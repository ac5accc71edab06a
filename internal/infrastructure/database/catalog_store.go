package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"localefinder/internal/domain"
	"localefinder/internal/domain/catalog"
	"localefinder/internal/domain/keytree"
	"localefinder/internal/ports/output"
)

var _ output.CatalogStore = (*CatalogStore)(nil)

// DB is the subset of *pgxpool.Pool used by the store.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CatalogStore keeps each catalog as one row keyed by (locale, namespace).
// Namespaces are opaque keys here, module namespaces included.
type CatalogStore struct {
	db DB
}

func NewCatalogStore(db DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) Exists(ctx context.Context, locale, namespace string) (bool, error) {
	var ok bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM catalogs WHERE locale = $1 AND namespace = $2)`,
		locale, namespace,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("catalog exists: %w", err)
	}
	return ok, nil
}

func (s *CatalogStore) Read(ctx context.Context, locale, namespace string) ([]byte, error) {
	var content []byte
	err := s.db.QueryRow(ctx,
		`SELECT content FROM catalogs WHERE locale = $1 AND namespace = $2`,
		locale, namespace,
	).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return content, nil
}

func (s *CatalogStore) Write(ctx context.Context, locale, namespace string, data []byte) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO catalogs (locale, namespace, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (locale, namespace) DO UPDATE SET content = EXCLUDED.content, updated_at = now()`,
		locale, namespace, data,
	)
	if err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// ListLocales returns the locales with a default catalog.
func (s *CatalogStore) ListLocales(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT locale FROM catalogs WHERE namespace = '' ORDER BY locale`)
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	locales, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	return locales, nil
}

func (s *CatalogStore) CreateIfMissing(ctx context.Context, locale, namespace string) error {
	if namespace == keytree.DefaultNamespace {
		return fmt.Errorf("%w: %s", domain.ErrNamespaceMissing, domain.CatalogName(locale, namespace))
	}
	empty, err := catalog.NewEncoder(locale).EncodePHP(keytree.New())
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO catalogs (locale, namespace, content) VALUES ($1, $2, $3)
		 ON CONFLICT (locale, namespace) DO NOTHING`,
		locale, namespace, empty,
	)
	if err != nil {
		return fmt.Errorf("create catalog: %w", err)
	}
	return nil
}
