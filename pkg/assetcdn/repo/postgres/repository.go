package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saiyasaswi-685/cdn-project/pkg/assetcdn"
)

// DB is the subset of pgxpool.Pool the repository needs: plain queries plus
// the ability to open a transaction for the publish path.
type DB interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository implements assetcdn.Repository using PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE assets (
//	    id UUID PRIMARY KEY,
//	    storage_key TEXT NOT NULL UNIQUE,
//	    filename TEXT NOT NULL,
//	    mime_type TEXT NOT NULL,
//	    size_bytes BIGINT NOT NULL,
//	    etag TEXT NOT NULL,
//	    current_version_id UUID,
//	    is_private BOOLEAN NOT NULL DEFAULT FALSE,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE TABLE asset_versions (
//	    id UUID PRIMARY KEY,
//	    asset_id UUID NOT NULL REFERENCES assets(id),
//	    version_label TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE TABLE access_tokens (
//	    token TEXT PRIMARY KEY,
//	    asset_id UUID REFERENCES assets(id),
//	    expires_at TIMESTAMPTZ NOT NULL
//	);
type Repository struct {
	db DB
}

// NewWithPool creates a new PostgreSQL repository with a connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "storage_key") {
				return assetcdn.ErrStorageKeyExists
			}
			return fmt.Errorf("duplicate entry")
		case "23503": // foreign_key_violation
			return assetcdn.ErrAssetNotFound
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return assetcdn.ErrAssetNotFound
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Asset ledger operations

func (r *Repository) CreateAsset(ctx context.Context, asset *assetcdn.Asset) error {
	query := `
		INSERT INTO assets (
			id, storage_key, filename, mime_type, size_bytes,
			etag, current_version_id, is_private, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		asset.ID, asset.StorageKey, asset.Filename, asset.MimeType,
		asset.SizeBytes, asset.ETag, asset.CurrentVersionID,
		asset.IsPrivate, asset.CreatedAt, asset.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create asset", err)
	}

	return nil
}

func (r *Repository) GetAsset(ctx context.Context, id uuid.UUID) (*assetcdn.Asset, error) {
	query := `
		SELECT id, storage_key, filename, mime_type, size_bytes,
		       etag, current_version_id, is_private, created_at, updated_at
		FROM assets WHERE id = $1`

	var asset assetcdn.Asset
	err := r.db.QueryRow(ctx, query, id).Scan(
		&asset.ID, &asset.StorageKey, &asset.Filename, &asset.MimeType,
		&asset.SizeBytes, &asset.ETag, &asset.CurrentVersionID,
		&asset.IsPrivate, &asset.CreatedAt, &asset.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, assetcdn.ErrAssetNotFound
		}
		return nil, err
	}

	return &asset, nil
}

// Version ledger operations

// CreateVersion inserts the version row and advances the owning asset's
// current_version_id in a single transaction, so the back-reference always
// names the newest version.
func (r *Repository) CreateVersion(ctx context.Context, version *assetcdn.AssetVersion) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO asset_versions (id, asset_id, version_label, created_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, insert,
		version.ID, version.AssetID, version.VersionLabel, version.CreatedAt); err != nil {
		return r.handlePostgresError("create version", err)
	}

	advance := `
		UPDATE assets SET current_version_id = $2, updated_at = $3
		WHERE id = $1`
	tag, err := tx.Exec(ctx, advance, version.AssetID, version.ID, version.CreatedAt)
	if err != nil {
		return r.handlePostgresError("advance current version", err)
	}
	if tag.RowsAffected() == 0 {
		return assetcdn.ErrAssetNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit version: %w", err)
	}

	return nil
}

func (r *Repository) ListVersions(ctx context.Context, assetID uuid.UUID) ([]*assetcdn.AssetVersion, error) {
	query := `
		SELECT id, asset_id, version_label, created_at
		FROM asset_versions WHERE asset_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, assetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []*assetcdn.AssetVersion
	for rows.Next() {
		var version assetcdn.AssetVersion
		if err := rows.Scan(
			&version.ID, &version.AssetID, &version.VersionLabel, &version.CreatedAt); err != nil {
			return nil, err
		}
		versions = append(versions, &version)
	}

	return versions, rows.Err()
}
