package repository

import (
	"context"
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/bricksy-web/bricksy-backend/internal/domain"
)

var (
	// ErrUserNotFound se devuelve cuando no existe usuario con ese email o ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail se devuelve cuando el índice único de email rechaza
	// el insert. Es la señal autoritativa de duplicado: el pre-chequeo de
	// los flujos de registro es solo una optimización.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository define el contrato de persistencia para usuarios.
// Create es la única operación mutadora; no hay update ni delete.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// SQLiteUserRepository implementa UserRepository sobre GORM + SQLite.
type SQLiteUserRepository struct {
	db *gorm.DB
}

var _ UserRepository = (*SQLiteUserRepository)(nil)

func NewSQLiteUserRepository(db *gorm.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Create inserta el usuario. Una violación del índice único de email se
// traduce a ErrDuplicateEmail.
func (r *SQLiteUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrDuplicateEmail
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// FindByEmail busca por email ya normalizado (minúsculas, sin espacios).
func (r *SQLiteUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *SQLiteUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
