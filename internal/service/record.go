package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Gfx-Boy/sovereign-ledger/internal/model"
	"github.com/Gfx-Boy/sovereign-ledger/internal/recordid"
	"github.com/Gfx-Boy/sovereign-ledger/internal/repository"
	"github.com/Gfx-Boy/sovereign-ledger/internal/stamp"
	"github.com/Gfx-Boy/sovereign-ledger/internal/storage"
)

var (
	ErrIDRequired           = errors.New("id is required")
	ErrRecordNumberRequired = errors.New("record number is required")
	ErrNotFound             = errors.New("record not found")
	ErrFileEmpty            = errors.New("file is empty")
	ErrUploadInProgress     = errors.New("upload already in progress for this submitter")
)

// numberRetries bounds how often Submit regenerates a record number after a
// unique-index conflict (two submissions racing on the same day count).
const numberRetries = 3

// Stamper applies the attribution overlay to PDF bytes.
type Stamper interface {
	Stamp(pdf []byte, o stamp.Options) ([]byte, error)
}

// SubmitInput carries the metadata of a document submission.
type SubmitInput struct {
	Title           string
	SubmitterName   string
	IsTrusteeUpload bool
	TrusteeName     string
	ClientName      string
	ClientEmail     string
	PrivateNote     string
	FolderID        string
	IsPublic        bool
}

// Validate enforces the submission contract: a title is always required, a
// plain upload needs a submitter, and a trustee upload needs both parties.
func (in SubmitInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&in.SubmitterName, validation.Required.When(!in.IsTrusteeUpload)),
		validation.Field(&in.TrusteeName, validation.Required.When(in.IsTrusteeUpload)),
		validation.Field(&in.ClientName, validation.Required.When(in.IsTrusteeUpload)),
		validation.Field(&in.ClientEmail, is.EmailFormat),
	)
}

// SearchQuery holds the public archive search filters and paging.
type SearchQuery struct {
	RecordNumber string
	Title        string
	Name         string
	Limit        int
	Offset       int
}

// RecordListResult is the service-level DTO for paginated records.
type RecordListResult struct {
	Items []model.Record `json:"data"`
	Total int            `json:"total"`
}

// RecordService defines the use cases for recording and retrieving documents.
type RecordService interface {
	// Submit stamps the PDF, assigns a record number, uploads the stamped
	// bytes to object storage and persists the metadata row, rolling back the
	// storage object if the insert fails. At most one submission per
	// submitter is in flight at a time.
	Submit(ctx context.Context, pdf []byte, in SubmitInput) (*model.Record, error)

	// Search returns public records matching the query. Private note and
	// client email are redacted; they never appear on public surfaces.
	Search(ctx context.Context, q SearchQuery) (*RecordListResult, error)

	// Dashboard returns all of a submitter's records, private ones included.
	Dashboard(ctx context.Context, submitterName string, limit, offset int) (*RecordListResult, error)

	// Get returns a single record by its ID.
	Get(ctx context.Context, id string) (*model.Record, error)

	// GetByRecordNumber returns a single record by its display record number.
	// The lookup backs shareable links, so private fields are redacted.
	GetByRecordNumber(ctx context.Context, recordNumber string) (*model.Record, error)

	// DownloadURL returns a time-limited download link for the stored PDF.
	DownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error)

	// Delete removes a record by ID from both storage and repository.
	Delete(ctx context.Context, id string) error
}

// recordService is a concrete implementation of RecordService.
type recordService struct {
	store   storage.Storage
	repo    repository.RecordRepository
	stamper Stamper
	guard   *uploadGuard
	now     func() time.Time
}

// NewRecordService constructs a new RecordService.
func NewRecordService(store storage.Storage, repo repository.RecordRepository, stamper Stamper) RecordService {
	return &recordService{
		store:   store,
		repo:    repo,
		stamper: stamper,
		guard:   newUploadGuard(),
		now:     time.Now,
	}
}

func (s *recordService) Submit(ctx context.Context, pdf []byte, in SubmitInput) (*model.Record, error) {
	if len(pdf) == 0 {
		return nil, ErrFileEmpty
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("validate submission: %w", err)
	}

	// One in-flight upload per submitter. The guard is request-scoped and
	// keyed, never a process-wide flag.
	release, ok := s.guard.tryAcquire(in.guardKey())
	if !ok {
		return nil, ErrUploadInProgress
	}
	defer release()

	// The name of record must be resolved before stamping; the stamp is a
	// frozen rendering of it.
	submitterName := in.SubmitterName
	if in.IsTrusteeUpload && in.TrusteeName != "" && in.ClientName != "" {
		submitterName = in.TrusteeName + " on behalf of " + in.ClientName
	}

	stamped, err := s.stamper.Stamp(pdf, stamp.Options{
		SubmitterName:   in.SubmitterName,
		IsTrusteeUpload: in.IsTrusteeUpload,
		TrusteeName:     in.TrusteeName,
		ClientName:      in.ClientName,
	})
	if err != nil {
		return nil, fmt.Errorf("stamp document: %w", err)
	}

	uploadDate := s.now().UTC()
	key := "records/" + uuid.New().String() + ".pdf"

	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(stamped), storage.PutObjectOptions{
		Size:        int64(len(stamped)),
		ContentType: "application/pdf",
		Metadata: map[string]string{
			"title": in.Title,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	var folderID *string
	if in.FolderID != "" {
		folderID = &in.FolderID
	}

	// The generator is a display-formatting helper over the day's count; the
	// unique index on record_number is authoritative. On conflict, recount
	// and regenerate.
	var stored *model.Record
	for attempt := 0; attempt < numberRetries; attempt++ {
		count, err := s.repo.CountWithPrefix(ctx, recordid.DayPrefix(uploadDate))
		if err != nil {
			return nil, s.rollback(ctx, key, fmt.Errorf("count day records: %w", err))
		}

		rec := &model.Record{
			ID:            uuid.New().String(),
			RecordNumber:  recordid.Generate(uploadDate, count),
			Title:         in.Title,
			SubmitterName: submitterName,
			TrusteeName:   in.TrusteeName,
			ClientName:    in.ClientName,
			ClientEmail:   in.ClientEmail,
			PrivateNote:   in.PrivateNote,
			FolderID:      folderID,
			StoragePath:   objInfo.Key,
			Size:          objInfo.Size,
			ContentType:   objInfo.ContentType,
			IsPublic:      in.IsPublic,
			CreatedAt:     uploadDate,
		}

		stored, err = s.repo.Create(ctx, rec)
		if err == nil {
			return stored, nil
		}
		if isUniqueViolation(err) && attempt < numberRetries-1 {
			continue
		}
		return nil, s.rollback(ctx, key, fmt.Errorf("db save failed: %w", err))
	}
	// Unreachable: the loop always returns.
	return stored, nil
}

// rollback deletes the uploaded object after a failed insert so storage and
// database stay consistent.
func (s *recordService) rollback(ctx context.Context, key string, cause error) error {
	if delErr := s.store.Delete(ctx, key); delErr != nil {
		return fmt.Errorf("%v; rollback delete failed: %v", cause, delErr)
	}
	return cause
}

func (in SubmitInput) guardKey() string {
	if in.IsTrusteeUpload && in.TrusteeName != "" {
		return "trustee:" + in.TrusteeName
	}
	return "submitter:" + in.SubmitterName
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// redactPrivate strips fields that must never leave the service on public
// surfaces (archive search, shareable number lookup). The dashboard and
// owner paths keep the full row.
func redactPrivate(rec model.Record) model.Record {
	rec.PrivateNote = ""
	rec.ClientEmail = ""
	return rec
}

// Search returns paginated public records without exposing repository types.
func (s *recordService) Search(ctx context.Context, q SearchQuery) (*RecordListResult, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	res, err := s.repo.Search(ctx,
		repository.RecordSearch{RecordNumber: q.RecordNumber, Title: q.Title, Name: q.Name},
		repository.PageQuery{Limit: q.Limit, Offset: q.Offset},
	)
	if err != nil {
		return nil, err
	}
	items := make([]model.Record, len(res.Items))
	for i, rec := range res.Items {
		items[i] = redactPrivate(rec)
	}
	return &RecordListResult{Items: items, Total: res.Total}, nil
}

// Dashboard returns a submitter's own records including private ones.
func (s *recordService) Dashboard(ctx context.Context, submitterName string, limit, offset int) (*RecordListResult, error) {
	if submitterName == "" {
		return nil, ErrIDRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.ListBySubmitter(ctx, submitterName, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &RecordListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a record by ID.
func (s *recordService) Get(ctx context.Context, id string) (*model.Record, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// GetByRecordNumber returns a record by its display number (shareable links).
func (s *recordService) GetByRecordNumber(ctx context.Context, recordNumber string) (*model.Record, error) {
	if recordNumber == "" {
		return nil, ErrRecordNumberRequired
	}
	rec, err := s.repo.FindByRecordNumber(ctx, recordNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	pub := redactPrivate(*rec)
	return &pub, nil
}

// DownloadURL presigns a GET for the record's stored object.
func (s *recordService) DownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.store.PresignGet(ctx, rec.StoragePath, expiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return url, nil
}

// Delete removes a record from storage, then deletes its row.
func (s *recordService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete from storage first; if this fails, keep the row to avoid losing
	// the storage reference.
	if err := s.store.Delete(ctx, rec.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
