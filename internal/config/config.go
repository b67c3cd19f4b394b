package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string `env:"ENV" yaml:"env" env-required:"true"`
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Session  SessionConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" yaml:"http_host" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" yaml:"http_port" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" yaml:"http_shutdown_timeout" env-default:"5s"`
	TemplatesGlob   string        `env:"HTTP_TEMPLATES_GLOB" yaml:"http_templates_glob" env-default:"web/templates/*.html"`
}

type PostgresConfig struct {
	// URL overrides the discrete fields below when set. Both the
	// postgres:// and postgresql:// schemes are accepted.
	URL            string        `env:"DATABASE_URL" yaml:"database_url"`
	Host           string        `env:"POSTGRES_HOST" yaml:"postgres_host" env-default:"localhost"`
	Port           int           `env:"POSTGRES_PORT" yaml:"postgres_port" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME" yaml:"postgres_username" env-default:"postgres"`
	Password       string        `env:"POSTGRES_PASSWORD" yaml:"postgres_password"`
	Database       string        `env:"POSTGRES_DATABASE" yaml:"postgres_database" env-default:"task_manager_db"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" yaml:"postgres_ssl_mode" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" yaml:"postgres_connect_timeout" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" yaml:"postgres_ping_timeout" env-default:"10s"`
}

type SessionConfig struct {
	Issuer     string        `env:"SESSION_ISSUER" yaml:"session_issuer" env-default:"task-manager"`
	SigningKey string        `env:"SESSION_SIGNING_KEY" yaml:"session_signing_key" env-required:"true"`
	TTL        time.Duration `env:"SESSION_TTL" yaml:"session_ttl" env-default:"24h"`
}
