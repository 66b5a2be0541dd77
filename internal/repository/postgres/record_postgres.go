package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Gfx-Boy/sovereign-ledger/internal/model"
	"github.com/Gfx-Boy/sovereign-ledger/internal/repository"
)

// recordColumns is the canonical column list shared by every record query.
const recordColumns = "id, record_number, title, submitter_name, trustee_name, client_name, client_email, private_note, folder_id, storage_path, size, content_type, is_public, created_at"

// RecordPostgres is a PostgreSQL implementation of repository.RecordRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type RecordPostgres struct {
	db *sql.DB
}

// NewRecordPostgres creates a new RecordPostgres repository.
func NewRecordPostgres(db *sql.DB) *RecordPostgres {
	return &RecordPostgres{db: db}
}

var _ repository.RecordRepository = (*RecordPostgres)(nil)

func scanRecord(row interface{ Scan(...any) error }) (*model.Record, error) {
	var r model.Record
	if err := row.Scan(
		&r.ID,
		&r.RecordNumber,
		&r.Title,
		&r.SubmitterName,
		&r.TrusteeName,
		&r.ClientName,
		&r.ClientEmail,
		&r.PrivateNote,
		&r.FolderID,
		&r.StoragePath,
		&r.Size,
		&r.ContentType,
		&r.IsPublic,
		&r.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts a new record row and returns the stored record.
func (r *RecordPostgres) Create(ctx context.Context, rec *model.Record) (*model.Record, error) {
	q := `
		INSERT INTO records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + recordColumns
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.RecordNumber,
		rec.Title,
		rec.SubmitterName,
		rec.TrusteeName,
		rec.ClientName,
		rec.ClientEmail,
		rec.PrivateNote,
		rec.FolderID,
		rec.StoragePath,
		rec.Size,
		rec.ContentType,
		rec.IsPublic,
		rec.CreatedAt,
	)
	return scanRecord(row)
}

// FindByID fetches a single record by its ID.
func (r *RecordPostgres) FindByID(ctx context.Context, id string) (*model.Record, error) {
	q := `SELECT ` + recordColumns + ` FROM records WHERE id = $1`
	return scanRecord(r.db.QueryRowContext(ctx, q, id))
}

// FindByRecordNumber fetches a single record by its display record number.
func (r *RecordPostgres) FindByRecordNumber(ctx context.Context, recordNumber string) (*model.Record, error) {
	q := `SELECT ` + recordColumns + ` FROM records WHERE record_number = $1`
	return scanRecord(r.db.QueryRowContext(ctx, q, recordNumber))
}

// Search returns public records matching the substring filters plus a total
// count. Filters are combined with AND; the name filter matches either the
// submitter or the client of record.
func (r *RecordPostgres) Search(ctx context.Context, q repository.RecordSearch, pq repository.PageQuery) (*repository.PageResult[model.Record], error) {
	var (
		where = []string{"is_public = TRUE"}
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if q.RecordNumber != "" {
		where = append(where, "record_number ILIKE "+arg("%"+q.RecordNumber+"%"))
	}
	if q.Title != "" {
		where = append(where, "title ILIKE "+arg("%"+q.Title+"%"))
	}
	if q.Name != "" {
		p := arg("%" + q.Name + "%")
		where = append(where, fmt.Sprintf("(submitter_name ILIKE %s OR client_name ILIKE %s)", p, p))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := fmt.Sprintf(
		"SELECT %s FROM records WHERE %s ORDER BY created_at DESC, id DESC LIMIT %s OFFSET %s",
		recordColumns, cond, arg(pq.Limit), arg(pq.Offset),
	)
	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectRecords(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Record]{Items: items, Total: total}, nil
}

// ListBySubmitter returns all of a submitter's records, private ones included.
func (r *RecordPostgres) ListBySubmitter(ctx context.Context, submitterName string, pq repository.PageQuery) (*repository.PageResult[model.Record], error) {
	const qCount = `SELECT COUNT(*) FROM records WHERE submitter_name = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, submitterName).Scan(&total); err != nil {
		return nil, err
	}

	q := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE submitter_name = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, q, submitterName, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectRecords(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Record]{Items: items, Total: total}, nil
}

// ListByFolder returns the records filed in a client folder.
func (r *RecordPostgres) ListByFolder(ctx context.Context, folderID string) ([]model.Record, error) {
	q := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE folder_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// CountWithPrefix counts records whose record number carries the given day prefix.
func (r *RecordPostgres) CountWithPrefix(ctx context.Context, prefix string) (int, error) {
	const q = `SELECT COUNT(*) FROM records WHERE record_number LIKE $1`
	var n int
	if err := r.db.QueryRowContext(ctx, q, prefix+"%").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Delete removes a record by ID. It does not return an error if the row does not exist.
func (r *RecordPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM records WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

func collectRecords(rows *sql.Rows) ([]model.Record, error) {
	items := make([]model.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
