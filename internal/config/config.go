package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort          string        `env:"PORT" envDefault:"3000"`
	DBDir             string        `env:"DB_DIR" envDefault:"/tmp"`
	DBPath            string        `env:"DB_PATH" envDefault:"bricksy.sqlite3"`
	JWTSecret         string        `env:"JWT_SECRET" envDefault:"dev-secret-change"`
	TokenTTL          time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	MinPasswordLength int           `env:"MIN_PASSWORD_LENGTH" envDefault:"6"`
	CORSOrigin        string        `env:"CORS_ORIGIN" envDefault:"*"`
	RedisAddr         string        `env:"REDIS_ADDR"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DatabasePath resuelve la ruta del archivo SQLite.
// Si DB_PATH es absoluta se usa tal cual; si no, se une a DB_DIR.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.DBPath) {
		return c.DBPath
	}
	return filepath.Join(c.DBDir, c.DBPath)
}

// CORSOrigins devuelve la lista de orígenes permitidos.
// Acepta lista separada por comas, igual que CORS_ORIGIN en el deploy.
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSOrigin, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
