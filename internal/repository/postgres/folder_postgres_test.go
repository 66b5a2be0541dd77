package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/Gfx-Boy/sovereign-ledger/internal/model"
)

func TestFolderPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFolderPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	f := &model.ClientFolder{
		ID:          "folder-id",
		TrusteeName: "Acme Co",
		ClientName:  "John Smith",
		ClientEmail: "john@example.com",
		CreatedAt:   now,
	}

	rows := sqlmock.NewRows([]string{"id", "trustee_name", "client_name", "client_email", "created_at"}).
		AddRow(f.ID, f.TrusteeName, f.ClientName, f.ClientEmail, f.CreatedAt)

	mock.ExpectQuery("INSERT INTO client_folders").
		WithArgs(f.ID, f.TrusteeName, f.ClientName, f.ClientEmail, f.CreatedAt).
		WillReturnRows(rows)

	got, err := repo.Create(ctx, f)

	assert.NoError(t, err)
	assert.Equal(t, "John Smith", got.ClientName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderPostgres_ListByTrustee(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFolderPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "trustee_name", "client_name", "client_email", "created_at"}).
		AddRow("f1", "Acme Co", "John Smith", "", time.Now()).
		AddRow("f2", "Acme Co", "Mary Major", "", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM client_folders WHERE trustee_name = ?").
		WithArgs("Acme Co").
		WillReturnRows(rows)

	folders, err := repo.ListByTrustee(ctx, "Acme Co")

	assert.NoError(t, err)
	assert.Len(t, folders, 2)
}

func TestFolderPostgres_Rename(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFolderPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE client_folders SET client_name = ?").
			WithArgs("folder-id", "New Name").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Rename(ctx, "folder-id", "New Name"))
	})

	t.Run("missing folder", func(t *testing.T) {
		mock.ExpectExec("UPDATE client_folders SET client_name = ?").
			WithArgs("missing", "New Name").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Rename(ctx, "missing", "New Name"), sql.ErrNoRows)
	})
}

func TestFolderPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFolderPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM client_folders WHERE id = ?").
		WithArgs("folder-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(ctx, "folder-id"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
