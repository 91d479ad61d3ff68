package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bricksy-web/bricksy-backend/internal/service"
)

// Códigos de error estables de la API. Son los que espera el front-end
// original, así que se conservan tal cual.
const (
	codeMissingFields      = "EMAIL_Y_PASSWORD_REQUERIDOS"
	codeInvalidEmail       = "EMAIL_INVALIDO"
	codePasswordTooShort   = "PASSWORD_DEMASIADO_CORTA"
	codeDuplicateEmail     = "EMAIL_YA_REGISTRADO"
	codeInvalidCredentials = "CREDENCIALES_INVALIDAS"
	codeUserNotFound       = "USUARIO_NO_ENCONTRADO"
	codeInvalidPassword    = "PASSWORD_INCORRECTA"
	codeTokenRequired      = "TOKEN_REQUERIDO"
	codeTokenInvalid       = "TOKEN_INVALIDO"
	codeServerError        = "ERROR_SERVIDOR"
)

// AuthHandler mantiene dependencias para los endpoints de autenticación.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
	tokens   *service.TokenService
}

func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, tokens *service.TokenService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		authServ: authServ,
		tokens:   tokens,
	}
}

func fail(c *gin.Context, status int, code string) {
	c.JSON(status, gin.H{"success": false, "error": code})
}

// Register maneja POST /api/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Nombre          string `json:"nombre"`
		Apellidos       string `json:"apellidos"`
		Residencia      string `json:"residencia"`
		FechaNacimiento string `json:"fecha_nacimiento"`
		Telefono        string `json:"telefono"`
		Email           string `json:"email"`
		Password        string `json:"password"`
	}
	// Un body ilegible equivale a campos ausentes, como en la API original.
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, codeMissingFields)
		return
	}

	user, err := h.authServ.Register(c.Request.Context(), service.RegisterInput{
		Nombre:          req.Nombre,
		Apellidos:       req.Apellidos,
		Residencia:      req.Residencia,
		FechaNacimiento: req.FechaNacimiento,
		Telefono:        req.Telefono,
		Email:           req.Email,
		Password:        req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			fail(c, http.StatusBadRequest, codeMissingFields)
		case errors.Is(err, service.ErrInvalidEmail):
			fail(c, http.StatusBadRequest, codeInvalidEmail)
		case errors.Is(err, service.ErrPasswordTooShort):
			fail(c, http.StatusBadRequest, codePasswordTooShort)
		case errors.Is(err, service.ErrEmailAlreadyExists):
			fail(c, http.StatusConflict, codeDuplicateEmail)
		default:
			h.logger.Error("register failed", zap.Error(err))
			fail(c, http.StatusInternalServerError, codeServerError)
		}
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		// El usuario ya quedó creado; puede hacer login aunque esta
		// emisión falle.
		h.logger.Error("token issue failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, codeServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "REGISTRO_OK",
		"token":   token,
		"user":    user,
	})
}

// Login maneja POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, codeInvalidCredentials)
		return
	}

	user, err := h.authServ.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			fail(c, http.StatusBadRequest, codeInvalidCredentials)
		case errors.Is(err, service.ErrUserNotFound):
			fail(c, http.StatusUnauthorized, codeUserNotFound)
		case errors.Is(err, service.ErrInvalidPassword):
			fail(c, http.StatusUnauthorized, codeInvalidPassword)
		default:
			h.logger.Error("login failed", zap.Error(err))
			fail(c, http.StatusInternalServerError, codeServerError)
		}
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, codeServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "LOGIN_OK",
		"token":   token,
		"user":    user,
	})
}

// Me maneja GET /api/me. Requiere el middleware de bearer token.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		fail(c, http.StatusUnauthorized, codeTokenInvalid)
		return
	}

	user, err := h.authServ.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			fail(c, http.StatusNotFound, codeUserNotFound)
			return
		}
		h.logger.Error("profile lookup failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, codeServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
