package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bricksy-web/bricksy-backend/internal/domain"
)

// setupTestDB prepara una base SQLite en memoria para las pruebas.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&domain.User{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func TestSQLiteUserRepository_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		repo := NewSQLiteUserRepository(setupTestDB(t))

		user := &domain.User{
			Nombre:       "Ana",
			Email:        "ana@test.com",
			PasswordHash: "hashed_password",
		}
		err := repo.Create(context.Background(), user)

		assert.NoError(t, err)
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("duplicate email returns ErrDuplicateEmail", func(t *testing.T) {
		repo := NewSQLiteUserRepository(setupTestDB(t))

		err := repo.Create(context.Background(), &domain.User{
			Email:        "duplicate@test.com",
			PasswordHash: "hash1",
		})
		require.NoError(t, err)

		err = repo.Create(context.Background(), &domain.User{
			Email:        "duplicate@test.com",
			PasswordHash: "hash2",
		})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestSQLiteUserRepository_FindByEmail(t *testing.T) {
	t.Run("finds stored user", func(t *testing.T) {
		repo := NewSQLiteUserRepository(setupTestDB(t))

		fecha := "01/02/1990"
		expected := &domain.User{
			Nombre:          "Ana",
			Apellidos:       "García",
			FechaNacimiento: &fecha,
			Email:           "ana@test.com",
			PasswordHash:    "hashed_password",
		}
		require.NoError(t, repo.Create(context.Background(), expected))

		found, err := repo.FindByEmail(context.Background(), "ana@test.com")

		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, expected.ID, found.ID)
		assert.Equal(t, expected.Email, found.Email)
		assert.Equal(t, expected.PasswordHash, found.PasswordHash)
		require.NotNil(t, found.FechaNacimiento)
		assert.Equal(t, fecha, *found.FechaNacimiento)
	})

	t.Run("unknown email returns ErrUserNotFound", func(t *testing.T) {
		repo := NewSQLiteUserRepository(setupTestDB(t))

		found, err := repo.FindByEmail(context.Background(), "nadie@test.com")

		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Nil(t, found)
	})
}

func TestSQLiteUserRepository_FindByID(t *testing.T) {
	t.Run("finds stored user", func(t *testing.T) {
		repo := NewSQLiteUserRepository(setupTestDB(t))

		expected := &domain.User{Email: "ana@test.com", PasswordHash: "hash"}
		require.NoError(t, repo.Create(context.Background(), expected))

		found, err := repo.FindByID(context.Background(), expected.ID)

		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, expected.Email, found.Email)
	})

	t.Run("unknown id returns ErrUserNotFound", func(t *testing.T) {
		repo := NewSQLiteUserRepository(setupTestDB(t))

		found, err := repo.FindByID(context.Background(), 42)

		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Nil(t, found)
	})
}
