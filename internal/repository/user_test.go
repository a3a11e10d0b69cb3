package repository

import (
	"errors"
	"regexp"
	"testing"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_CreateAndGetByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := testCtx()

	user := &models.User{Name: "Ada", Email: "ada@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ada", got.Name)
}

func TestUserRepository_GetByID_Missing(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	got, err := repo.GetByID(testCtx(), 999)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := testCtx()

	require.NoError(t, repo.Create(ctx, &models.User{
		Name: "Ada", Email: "ada@example.com", Password: "hashed",
	}))

	got, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ada", got.Name)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_GetByID_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := testCtx()

	tests := []struct {
		name         string
		mockBehavior func()
		expectUser   bool
		expectError  bool
	}{
		{
			name: "found",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).AddRow(1, "Ada", "ada@example.com"))
			},
			expectUser: true,
		},
		{
			name: "missing returns nil without error",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
					WithArgs(1, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
		},
		{
			name: "store failure propagates",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
					WithArgs(1, 1).
					WillReturnError(errors.New("connection reset"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, 1)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectUser {
				require.NotNil(t, user)
				assert.Equal(t, "Ada", user.Name)
			} else {
				assert.Nil(t, user)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_DeletedUserNotReturned(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := testCtx()

	user := &models.User{Name: "Gone", Email: "gone@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, db.Delete(user).Error)

	got, err := repo.GetByID(ctx, user.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
