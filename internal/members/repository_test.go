package members

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/database"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return NewPostgresRepository(database.Static(sqlx.NewDb(raw, "postgres"))), mock
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := memberRow(sqlmock.NewRows(memberColumnNames), 7, "Female", "straight", "29", baseTime)
	mock.ExpectQuery(`FROM members m WHERE m.id = \$1`).WithArgs(int64(7)).WillReturnRows(rows)

	m, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), m.ID)
	assert.Equal(t, "Female", *m.Gender)
	assert.Nil(t, m.Religion)
	assert.Nil(t, m.AgeRangeMin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM members m WHERE m.id = \$1`).WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(memberColumnNames))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestRepository_GetByID_DatabaseError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM members m WHERE m.id = \$1`).WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByID(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMemberNotFound)
}

func TestRepository_Find_BindsEveryValue(t *testing.T) {
	repo, mock := newMockRepo(t)

	filter := Filter{
		NotEq(FieldID, int64(1)),
		Eq(FieldGender, "male"),
		InStrings(FieldOrientation, []string{"gay", "bi-sexual", "bisexual"}),
		AtMost(FieldAgeRangeMin, 30).OrNull(),
	}

	rows := sqlmock.NewRows(memberColumnNames)
	memberRow(rows, 3, "Male", "gay", "31", baseTime)

	mock.ExpectQuery(regexp.QuoteMeta(
		`WHERE m.id <> $1 AND lower(btrim(m.gender)) = $2 AND lower(btrim(m.orientation)) IN ($3, $4, $5) AND (m.age_range_min IS NULL OR m.age_range_min <= $6) ORDER BY m.created_at DESC, m.id DESC`)).
		WithArgs(int64(1), "male", "gay", "bi-sexual", "bisexual", int64(30)).
		WillReturnRows(rows)

	result, err := repo.Find(context.Background(), filter, 0)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(3), result[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Find_WithLimit(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE TRUE ORDER BY m.created_at DESC, m.id DESC LIMIT $1`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(memberColumnNames))

	result, err := repo.Find(context.Background(), nil, 5)
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Find_InvalidFilter(t *testing.T) {
	repo, _ := newMockRepo(t)

	_, err := repo.Find(context.Background(), Filter{{Field: "password", Op: OpEq, Values: []interface{}{"x"}}}, 0)
	assert.Error(t, err)
}

func TestRepository_GetByIDs(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows(memberColumnNames)
	memberRow(rows, 2, "Male", "straight", "40", baseTime)
	memberRow(rows, 4, "Female", "straight", "38", baseTime)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE m.id IN ($1, $2, $3)`)).
		WithArgs(int64(2), int64(4), int64(6)).
		WillReturnRows(rows)

	result, err := repo.GetByIDs(context.Background(), []int64{2, 4, 6})
	require.NoError(t, err)
	assert.Len(t, result, 2)

	empty, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListAndCount(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows(memberColumnNames)
	memberRow(rows, 1, "Male", "straight", "30", baseTime)
	mock.ExpectQuery(`ORDER BY m.id ASC LIMIT \$1 OFFSET \$2`).WithArgs(10, 0).WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM members`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(57))

	list, err := repo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 57, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
