package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultEnvFile        = ".env"
	defaultPort           = "8080"
	defaultReadTimeout    = 15 * time.Second
	defaultWriteTimeout   = 15 * time.Second
	defaultIdleTimeout    = 60 * time.Second
	defaultHeaderTimeout  = 10 * time.Second
	defaultRequestTimeout = 30 * time.Second
	defaultDataSource     = "data/data.json"
	defaultCategoriesFile = "config/categories.yaml"
	defaultFetchTimeout   = 10 * time.Second
	defaultWatchDebounce  = 250 * time.Millisecond
	defaultTemplatesDir   = "templates"
	defaultPublicDir      = "public"
	defaultLocalesDir     = "locales"
	defaultLang           = "id"
	defaultLogLevel       = "info"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Web       WebConfig
	Analytics AnalyticsConfig
	Log       LogConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	RequestTimeout    time.Duration
}

// CatalogConfig points at the catalog document and its display configuration.
type CatalogConfig struct {
	// Source is a local path or an http(s) URL.
	Source         string
	CategoriesFile string
	FetchTimeout   time.Duration
	Watch          bool
	WatchDebounce  time.Duration
}

// WebConfig controls templates, assets, and locale handling.
type WebConfig struct {
	TemplatesDir     string
	PublicDir        string
	LocalesDir       string
	DefaultLang      string
	SupportedLangs   []string
	DevMode          bool
	SiteURL          string
	CommunityURL     string
	PlaceholderImage string
}

// AnalyticsConfig holds client instrumentation settings surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string
	Debug            bool
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// ValidationError is returned when configuration values are unusable.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides, and environment variables.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	// Port resolution: prefer CATALOG_WEB_PORT, then the platform's PORT.
	port := stringWithDefault(lookup, "CATALOG_WEB_PORT", stringWithDefault(lookup, "PORT", defaultPort))

	cfg := Config{
		Server: ServerConfig{
			Addr:              stringWithDefault(lookup, "CATALOG_WEB_ADDR", ":"+port),
			ReadTimeout:       durationWithDefault(lookup, "CATALOG_WEB_READ_TIMEOUT", defaultReadTimeout),
			ReadHeaderTimeout: durationWithDefault(lookup, "CATALOG_WEB_READ_HEADER_TIMEOUT", defaultHeaderTimeout),
			WriteTimeout:      durationWithDefault(lookup, "CATALOG_WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:       durationWithDefault(lookup, "CATALOG_WEB_IDLE_TIMEOUT", defaultIdleTimeout),
			RequestTimeout:    durationWithDefault(lookup, "CATALOG_WEB_REQUEST_TIMEOUT", defaultRequestTimeout),
		},
		Catalog: CatalogConfig{
			Source:         stringWithDefault(lookup, "CATALOG_WEB_DATA_SOURCE", defaultDataSource),
			CategoriesFile: stringWithDefault(lookup, "CATALOG_WEB_CATEGORIES_FILE", defaultCategoriesFile),
			FetchTimeout:   durationWithDefault(lookup, "CATALOG_WEB_FETCH_TIMEOUT", defaultFetchTimeout),
			Watch:          boolWithDefault(lookup, "CATALOG_WEB_WATCH", false),
			WatchDebounce:  durationWithDefault(lookup, "CATALOG_WEB_WATCH_DEBOUNCE", defaultWatchDebounce),
		},
		Web: WebConfig{
			TemplatesDir:     stringWithDefault(lookup, "CATALOG_WEB_TEMPLATES_DIR", defaultTemplatesDir),
			PublicDir:        stringWithDefault(lookup, "CATALOG_WEB_PUBLIC_DIR", defaultPublicDir),
			LocalesDir:       stringWithDefault(lookup, "CATALOG_WEB_LOCALES_DIR", defaultLocalesDir),
			DefaultLang:      strings.ToLower(stringWithDefault(lookup, "CATALOG_WEB_DEFAULT_LANG", defaultLang)),
			SupportedLangs:   csvWithDefault(lookup, "CATALOG_WEB_LANGS", []string{"id", "en"}),
			DevMode:          boolWithDefault(lookup, "CATALOG_WEB_DEV", false) || boolWithDefault(lookup, "DEV", false),
			SiteURL:          strings.TrimRight(stringWithDefault(lookup, "CATALOG_WEB_SITE_URL", ""), "/"),
			CommunityURL:     stringWithDefault(lookup, "CATALOG_WEB_COMMUNITY_URL", ""),
			PlaceholderImage: stringWithDefault(lookup, "CATALOG_WEB_PLACEHOLDER_IMAGE", "/images/default.jpg"),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, "CATALOG_WEB_GA_MEASUREMENT_ID", ""),
			Debug:            boolWithDefault(lookup, "CATALOG_WEB_ANALYTICS_DEBUG", false),
		},
		Log: LogConfig{
			Level: stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate re-checks a configuration after callers changed it (e.g. from CLI flags).
func (c Config) Validate() error {
	return validateConfig(c)
}

func validateConfig(cfg Config) error {
	var fields []string
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		fields = append(fields, "Server.Addr")
	}
	if strings.TrimSpace(cfg.Catalog.Source) == "" {
		fields = append(fields, "Catalog.Source")
	}
	if cfg.Catalog.FetchTimeout <= 0 {
		fields = append(fields, "Catalog.FetchTimeout")
	}
	if strings.TrimSpace(cfg.Web.TemplatesDir) == "" {
		fields = append(fields, "Web.TemplatesDir")
	}
	if !containsString(cfg.Web.SupportedLangs, cfg.Web.DefaultLang) {
		fields = append(fields, "Web.DefaultLang")
	}
	if len(fields) > 0 {
		return &ValidationError{fields: fields}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key string, fallback []string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return append([]string(nil), fallback...)
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.ToLower(strings.TrimSpace(part)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
