package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Storage  StorageConfig  `yaml:"storage"`
	Sampling SamplingConfig `yaml:"sampling"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds bearer-token validation settings. The platform's
// identity provider issues the tokens; this service only validates them.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"igbo-api-admin"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"24h"`
}

// StorageConfig holds object-storage settings for audio media.
// Env selects the backend once at startup: "production" talks to the real
// store, anything else uses the deterministic offline backend.
type StorageConfig struct {
	Env             string        `yaml:"env"               env:"STORAGE_ENV"               env-default:"test"`
	Endpoint        string        `yaml:"endpoint"          env:"STORAGE_ENDPOINT"`
	AccessKey       string        `yaml:"access_key"        env:"STORAGE_ACCESS_KEY"`
	SecretKey       string        `yaml:"secret_key"        env:"STORAGE_SECRET_KEY"`
	Bucket          string        `yaml:"bucket"            env:"STORAGE_BUCKET"            env-default:"igbo-api-media"`
	UseSSL          bool          `yaml:"use_ssl"           env:"STORAGE_USE_SSL"           env-default:"true"`
	PublicBaseURL   string        `yaml:"public_base_url"   env:"STORAGE_PUBLIC_BASE_URL"`
	MediaPath       string        `yaml:"media_path"        env:"STORAGE_MEDIA_PATH"        env-default:"audio-pronunciations"`
	SignedURLExpiry time.Duration `yaml:"signed_url_expiry" env:"STORAGE_SIGNED_URL_EXPIRY" env-default:"15m"`
}

// IsProduction reports whether the real object store should be used.
func (c StorageConfig) IsProduction() bool {
	return c.Env == "production"
}

// SamplingConfig bounds the batches handed out to volunteers.
type SamplingConfig struct {
	DefaultLimit int `yaml:"default_limit" env:"SAMPLING_DEFAULT_LIMIT" env-default:"5"`
	MaxLimit     int `yaml:"max_limit"     env:"SAMPLING_MAX_LIMIT"     env-default:"25"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
