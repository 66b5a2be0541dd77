package postgres

import (
	"context"
	"database/sql"

	"github.com/Gfx-Boy/sovereign-ledger/internal/model"
	"github.com/Gfx-Boy/sovereign-ledger/internal/repository"
)

const folderColumns = "id, trustee_name, client_name, client_email, created_at"

// FolderPostgres is a PostgreSQL implementation of repository.FolderRepository.
type FolderPostgres struct {
	db *sql.DB
}

// NewFolderPostgres creates a new FolderPostgres repository.
func NewFolderPostgres(db *sql.DB) *FolderPostgres {
	return &FolderPostgres{db: db}
}

var _ repository.FolderRepository = (*FolderPostgres)(nil)

func scanFolder(row interface{ Scan(...any) error }) (*model.ClientFolder, error) {
	var f model.ClientFolder
	if err := row.Scan(
		&f.ID,
		&f.TrusteeName,
		&f.ClientName,
		&f.ClientEmail,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a new client folder row and returns the stored folder.
func (r *FolderPostgres) Create(ctx context.Context, f *model.ClientFolder) (*model.ClientFolder, error) {
	q := `
		INSERT INTO client_folders (` + folderColumns + `)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + folderColumns
	row := r.db.QueryRowContext(ctx, q,
		f.ID,
		f.TrusteeName,
		f.ClientName,
		f.ClientEmail,
		f.CreatedAt,
	)
	return scanFolder(row)
}

// FindByID fetches a single folder by its ID.
func (r *FolderPostgres) FindByID(ctx context.Context, id string) (*model.ClientFolder, error) {
	q := `SELECT ` + folderColumns + ` FROM client_folders WHERE id = $1`
	return scanFolder(r.db.QueryRowContext(ctx, q, id))
}

// ListByTrustee returns a trustee's folders, newest first.
func (r *FolderPostgres) ListByTrustee(ctx context.Context, trusteeName string) ([]model.ClientFolder, error) {
	q := `
		SELECT ` + folderColumns + `
		FROM client_folders
		WHERE trustee_name = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, trusteeName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ClientFolder, 0)
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Rename updates the client name of a folder.
func (r *FolderPostgres) Rename(ctx context.Context, id, clientName string) error {
	const q = `UPDATE client_folders SET client_name = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, clientName)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a folder by ID. The records FK nulls folder references, so
// filed records stay in place. It does not return an error if the row does
// not exist.
func (r *FolderPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM client_folders WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
