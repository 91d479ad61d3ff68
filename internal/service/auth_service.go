package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bricksy-web/bricksy-backend/internal/domain"
	"github.com/bricksy-web/bricksy-backend/internal/repository"
)

// Errores de negocio del flujo de autenticación. El handler los traduce a
// códigos estables de la API; cualquier otro error es fallo de
// infraestructura y se colapsa en ERROR_SERVIDOR.
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidEmail       = errors.New("email is not valid")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPassword    = errors.New("invalid password")
)

// Patrón local@dominio.tld, el mismo que valida el formulario de registro.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService coordina registro, login y consulta de perfil.
type AuthService struct {
	logger         *zap.Logger
	users          repository.UserRepository
	minPasswordLen int
}

// NewAuthService crea el servicio. Con minPasswordLen <= 0 usa 6, el mínimo
// del backend original.
func NewAuthService(logger *zap.Logger, users repository.UserRepository, minPasswordLen int) *AuthService {
	if minPasswordLen <= 0 {
		minPasswordLen = 6
	}
	return &AuthService{
		logger:         logger,
		users:          users,
		minPasswordLen: minPasswordLen,
	}
}

// RegisterInput es el esquema explícito del alta de usuario.
// Los campos opcionales vacíos se guardan como NULL o cadena vacía.
type RegisterInput struct {
	Nombre          string
	Apellidos       string
	Residencia      string
	FechaNacimiento string
	Telefono        string
	Email           string
	Password        string
}

// Register valida la entrada, hashea la contraseña e inserta el usuario.
// El insert es el último paso mutador: si la emisión posterior del token
// falla, el registro queda creado y el usuario puede hacer login.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrMissingCredentials
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < s.minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	// Pre-chequeo de duplicado. Solo optimización: la fuente de verdad es
	// el índice único en el insert.
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Nombre:          strings.TrimSpace(input.Nombre),
		Apellidos:       strings.TrimSpace(input.Apellidos),
		Residencia:      strings.TrimSpace(input.Residencia),
		FechaNacimiento: optional(input.FechaNacimiento),
		Email:           email,
		Telefono:        optional(input.Telefono),
		PasswordHash:    string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.logger.Info("usuario registrado", zap.Uint("id", user.ID), zap.String("email", user.Email))
	return user, nil
}

// Authenticate verifica las credenciales y devuelve el usuario.
// Email desconocido y contraseña incorrecta son fallos distintos, como en
// la API original.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return user, nil
}

// Profile devuelve el usuario identificado por el token.
func (s *AuthService) Profile(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
