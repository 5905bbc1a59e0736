package client

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupClientMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "postgres")
	return NewRepository(db), mock
}

var clientColumns = []string{"id", "full_name", "birth_date", "phone", "email", "status", "created_at"}

func TestListClients_FiltersByStatusAndExpiry(t *testing.T) {
	repo, mock := setupClientMock(t)

	expiry := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("AND ($2 = '' OR status = $2) AND ($3::date IS NULL OR EXISTS ( SELECT 1 FROM memberships m WHERE m.client_id = clients.id AND m.is_active AND m.end_date = $3::date ))")).
		WithArgs("", "active", &expiry).
		WillReturnRows(sqlmock.NewRows(clientColumns).
			AddRow(1, "Anna Petrova", nil, "+79001234567", nil, "active", time.Now()))

	clients, err := repo.List(context.Background(), "", "active", &expiry)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Anna Petrova", clients[0].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListClients_SearchMatchesEmail(t *testing.T) {
	repo, mock := setupClientMock(t)

	email := "anna@example.com"
	mock.ExpectQuery(regexp.QuoteMeta("OR email ILIKE '%' || $1 || '%'")).
		WithArgs("anna@", "", nil).
		WillReturnRows(sqlmock.NewRows(clientColumns).
			AddRow(1, "Anna Petrova", nil, "+79001234567", &email, "active", time.Now()))

	clients, err := repo.List(context.Background(), "anna@", "", nil)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteClient_WithHistory_Restricted(t *testing.T) {
	repo, mock := setupClientMock(t)

	// Регистрации и платежи удерживают клиента в базе
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clients WHERE id = $1")).
		WithArgs(5).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "class_registrations_client_id_fkey"})

	err := repo.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrHasLinkedRecords)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteClient_RepoSuccess(t *testing.T) {
	repo, mock := setupClientMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clients WHERE id = $1")).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteClient_RepoNotFound(t *testing.T) {
	repo, mock := setupClientMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clients WHERE id = $1")).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
