package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements KV and BlobStore on a PostgreSQL connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database and ensures the
// storage tables exist.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p := &Postgres{pool: pool}
	if err := p.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *Postgres) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS kv_entries (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS blobs (
			path         TEXT PRIMARY KEY,
			content      BYTEA NOT NULL,
			content_type TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range statements {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// Get returns the value for key, or ok=false when the key is absent.
func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.pool.QueryRow(ctx,
		`SELECT value FROM kv_entries WHERE key = $1`, key,
	).Scan(&value)
	if err == pgx.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, overwriting any previous value.
func (p *Postgres) Set(ctx context.Context, key, value string) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO kv_entries (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// List returns the entries whose keys start with prefix, ordered by key.
func (p *Postgres) List(ctx context.Context, prefix string, withValues bool) ([]Entry, error) {
	columns := "key"
	if withValues {
		columns = "key, value"
	}
	rows, err := p.pool.Query(ctx,
		`SELECT `+columns+` FROM kv_entries WHERE key LIKE $1 || '%' ORDER BY key`,
		prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if withValues {
			err = rows.Scan(&entry.Key, &entry.Value)
		} else {
			err = rows.Scan(&entry.Key)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}
	return entries, nil
}

// Upload stores data under path and returns the stored path.
func (p *Postgres) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO blobs (path, content, content_type)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (path) DO UPDATE SET content = $2, content_type = $3`,
		path, data, contentType,
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return path, nil
}

// Read returns the content and content type stored under path, or
// ErrNotFound.
func (p *Postgres) Read(ctx context.Context, path string) ([]byte, string, error) {
	var (
		content     []byte
		contentType string
	)
	err := p.pool.QueryRow(ctx,
		`SELECT content, content_type FROM blobs WHERE path = $1`, path,
	).Scan(&content, &contentType)
	if err == pgx.ErrNoRows {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return content, contentType, nil
}
