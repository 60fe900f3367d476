package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Log         LogConfig         `yaml:"log"`
	CORS        CORSConfig        `yaml:"cors"`
	Dictionary  DictionaryConfig  `yaml:"dictionary"`
	Translation TranslationConfig `yaml:"translation"`
	Enrichment  EnrichmentConfig  `yaml:"enrichment"`
	Query       QueryConfig       `yaml:"query"`
}

// CORSConfig holds CORS settings. List values are comma-separated.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"45s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig holds word store connection settings.
// For the sqlite driver DSN is a file path or a go-sqlite3 URI.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"             env:"DATABASE_DRIVER"             env-default:"postgres"`
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// DictionaryConfig holds definition provider settings.
type DictionaryConfig struct {
	BaseURL string        `yaml:"base_url" env:"DICTIONARY_BASE_URL" env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	Timeout time.Duration `yaml:"timeout"  env:"DICTIONARY_TIMEOUT"  env-default:"10s"`
}

// Supported translation providers.
const (
	TranslationLibre    = "libretranslate"
	TranslationMyMemory = "mymemory"
	TranslationStub     = "stub"
)

// TranslationConfig holds translation provider settings.
type TranslationConfig struct {
	Provider string        `yaml:"provider" env:"TRANSLATION_PROVIDER" env-default:"mymemory"`
	BaseURL  string        `yaml:"base_url" env:"TRANSLATION_BASE_URL"`
	APIKey   string        `yaml:"api_key"  env:"TRANSLATION_API_KEY"`
	Email    string        `yaml:"email"    env:"TRANSLATION_EMAIL"`
	Timeout  time.Duration `yaml:"timeout"  env:"TRANSLATION_TIMEOUT"  env-default:"8s"`
}

// EnrichmentConfig controls the orchestrator and the batch enricher.
type EnrichmentConfig struct {
	PartialRetryAfter time.Duration `yaml:"partial_retry_after" env:"ENRICH_PARTIAL_RETRY_AFTER" env-default:"24h"`
	BatchSize         int           `yaml:"batch_size"          env:"ENRICH_BATCH_SIZE"          env-default:"500"`
	BatchDelay        time.Duration `yaml:"batch_delay"         env:"ENRICH_BATCH_DELAY"         env-default:"1s"`
	MaxFailedAttempts int           `yaml:"max_failed_attempts" env:"ENRICH_MAX_FAILED_ATTEMPTS" env-default:"3"`
	BatchLanguagesRaw string        `yaml:"batch_languages"     env:"ENRICH_BATCH_LANGUAGES"     env-default:"es,fr,de,hi,te"`

	// BatchLanguages is parsed from BatchLanguagesRaw during validation.
	BatchLanguages []string `yaml:"-" env:"-"`
}

// QueryConfig holds listing and search settings.
type QueryConfig struct {
	DailySampleSize    int `yaml:"daily_sample_size"    env:"QUERY_DAILY_SAMPLE_SIZE"    env-default:"500"`
	DefaultPageSize    int `yaml:"default_page_size"    env:"QUERY_DEFAULT_PAGE_SIZE"    env-default:"20"`
	MaxPageSize        int `yaml:"max_page_size"        env:"QUERY_MAX_PAGE_SIZE"        env-default:"200"`
	DefaultSearchLimit int `yaml:"default_search_limit" env:"QUERY_DEFAULT_SEARCH_LIMIT" env-default:"20"`
	MaxSearchLimit     int `yaml:"max_search_limit"     env:"QUERY_MAX_SEARCH_LIMIT"     env-default:"100"`
}
