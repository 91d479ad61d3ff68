package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bricksy-web/bricksy-backend/internal/service"
)

const authClaimsKey = "auth_claims"

// BearerAuthMiddleware valida el token de sesión y guarda los claims en el
// contexto. Distingue token ausente de token inválido o expirado.
func BearerAuthMiddleware(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			fail(c, http.StatusUnauthorized, codeTokenRequired)
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := tokens.Parse(token)
		if err != nil {
			fail(c, http.StatusUnauthorized, codeTokenInvalid)
			c.Abort()
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// GetAuthClaims obtiene los claims del token desde el contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}
