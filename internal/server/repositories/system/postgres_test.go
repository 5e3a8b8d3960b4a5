package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`^SELECT NOW\(\)$`).WillReturnRows(sqlmock.NewRows([]string{"now"}).AddRow(ts))

	got, err := NewPostgresRepository(db).Now(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ts, got)
}

func TestNow_Error(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`^SELECT NOW\(\)$`).WillReturnError(errors.New("down"))

	_, err = NewPostgresRepository(db).Now(context.Background())
	assert.ErrorContains(t, err, "db error")
}
