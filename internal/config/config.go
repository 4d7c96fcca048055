package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Lock      LockConfig      `yaml:"lock"`
	Audit     AuditConfig     `yaml:"audit"`
	Upload    UploadConfig    `yaml:"upload"`
	Blob      BlobConfig      `yaml:"blob"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	APIPrefix       string        `yaml:"api_prefix"       env:"SERVER_API_PREFIX"       env-default:"/api"`
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
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// AuthConfig holds token and password hashing settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"         env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"storyline"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"   env:"AUTH_ACCESS_TOKEN_TTL"   env-default:"1h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"10"`
	MinPasswordLen   int           `yaml:"min_password_len"   env:"AUTH_MIN_PASSWORD_LEN"   env-default:"6"`
}

// LockConfig holds edit lock settings. A zero TTL disables expiry.
type LockConfig struct {
	TTL time.Duration `yaml:"ttl" env:"LOCK_TTL" env-default:"30m"`
}

// AuditConfig holds story history paging settings.
type AuditConfig struct {
	DefaultPageSize int `yaml:"default_page_size" env:"AUDIT_DEFAULT_PAGE_SIZE" env-default:"10"`
	MaxPageSize     int `yaml:"max_page_size"     env:"AUDIT_MAX_PAGE_SIZE"     env-default:"100"`
}

// UploadConfig bounds request bodies and individual images.
type UploadConfig struct {
	MaxRequestBytes int64  `yaml:"max_request_bytes"  env:"UPLOAD_MAX_REQUEST_BYTES"  env-default:"67108864"`
	MaxFileBytes    int64  `yaml:"max_file_bytes"     env:"UPLOAD_MAX_FILE_BYTES"     env-default:"5242880"`
	AllowedMIMERaw  string `yaml:"allowed_mime_types" env:"UPLOAD_ALLOWED_MIME_TYPES" env-default:"image/jpeg,image/png,image/gif,image/webp"`
	FetchParallel   int    `yaml:"fetch_parallel"     env:"UPLOAD_FETCH_PARALLEL"     env-default:"8"`
}

// AllowedMIMETypes returns the configured image MIME types.
func (u UploadConfig) AllowedMIMETypes() []string {
	return splitList(u.AllowedMIMERaw)
}

// BlobConfig selects and configures the image store.
type BlobConfig struct {
	Driver string   `yaml:"driver" env:"BLOB_DRIVER" env-default:"memory"`
	S3     S3Config `yaml:"s3"`
}

// S3Config holds S3-compatible object storage settings.
type S3Config struct {
	Bucket          string `yaml:"bucket"            env:"BLOB_S3_BUCKET"`
	Region          string `yaml:"region"            env:"BLOB_S3_REGION"            env-default:"us-east-1"`
	Endpoint        string `yaml:"endpoint"          env:"BLOB_S3_ENDPOINT"`
	Prefix          string `yaml:"prefix"            env:"BLOB_S3_PREFIX"`
	UsePathStyle    bool   `yaml:"use_path_style"    env:"BLOB_S3_USE_PATH_STYLE"    env-default:"false"`
	AccessKeyID     string `yaml:"access_key_id"     env:"BLOB_S3_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"BLOB_S3_SECRET_ACCESS_KEY"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"http://localhost:5173"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig throttles the credential endpoints per client IP.
// Zero AuthPerMinute disables limiting.
type RateLimitConfig struct {
	AuthPerMinute   int           `yaml:"auth_per_minute"  env:"RATE_LIMIT_AUTH_PER_MINUTE"  env-default:"20"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
