package storage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSubscriber(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO newsletter_subscribers").
		WithArgs("ana@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO newsletter_subscribers").
		WithArgs("ana@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.AddSubscriber(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.AddSubscriber(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.False(t, created)

	assert.NoError(t, mock.ExpectationsWereMet())
}
