// Package cache aporta decoradores de caché para los repositorios.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bricksy-web/bricksy-backend/internal/domain"
	"github.com/bricksy-web/bricksy-backend/internal/repository"
)

// CachedUserRepository decora un UserRepository con caché Redis para las
// lecturas por ID (ruta /api/me). Las búsquedas por email van siempre a la
// base: el login necesita el hash fresco. Como no existen updates de
// usuario, las entradas solo caducan por TTL.
type CachedUserRepository struct {
	inner     repository.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ repository.UserRepository = (*CachedUserRepository)(nil)

// NewCachedUserRepository crea el decorador. Con ttl <= 0 usa 5 minutos y
// con namespace vacío usa "users".
func NewCachedUserRepository(rdb *redis.Client, ttl time.Duration, inner repository.UserRepository, namespace string) *CachedUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachedUserRepository{inner: inner, rdb: rdb, ttl: ttl, namespace: namespace}
}

// Create delega en el repositorio interno; un usuario recién creado todavía
// no tiene entrada de caché que invalidar.
func (c *CachedUserRepository) Create(ctx context.Context, user *domain.User) error {
	return c.inner.Create(ctx, user)
}

// FindByEmail pasa directo a la base.
func (c *CachedUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return c.inner.FindByEmail(ctx, email)
}

// FindByID consulta primero la caché y cae a la base si no hay entrada.
func (c *CachedUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var u domain.User
		if err := json.Unmarshal(b, &u); err == nil {
			return &u, nil
		}
		// Entrada corrupta: se elimina y se sigue con la base.
		_ = c.rdb.Del(ctx, key).Err()
	}

	u, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Escritura best effort: un fallo de caché no rompe la petición.
	if b, err := json.Marshal(u); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return u, nil
}

func (c *CachedUserRepository) cacheKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}
