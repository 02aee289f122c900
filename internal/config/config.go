package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/citysports/league-registry/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                          string
	ServiceName                     string
	ServiceVersion                  string
	HTTPAddr                        string
	DBURL                           string
	DBDisablePreparedBinary         bool
	DBBootstrapSeed                 bool
	CacheEnabled                    bool
	CacheTTL                        time.Duration
	CORSAllowedOrigins              []string
	ReadTimeout                     time.Duration
	WriteTimeout                    time.Duration
	PprofEnabled                    bool
	PprofAddr                       string
	SwaggerEnabled                  bool
	GatekeeperBaseURL               string
	GatekeeperIntrospectPath        string
	GatekeeperTimeout               time.Duration
	GatekeeperCacheTTL              time.Duration
	GatekeeperCacheMaxToken         int
	GatekeeperCircuitEnabled        bool
	GatekeeperCircuitFailureCount   int
	GatekeeperCircuitOpenTimeout    time.Duration
	GatekeeperCircuitHalfOpenMaxReq int
	StripeEnabled                   bool
	StripeBaseURL                   string
	StripeSecretKey                 string
	StripeTimeout                   time.Duration
	StripeMaxRetries                int
	StripeCircuitEnabled            bool
	StripeCircuitFailureCount       int
	StripeCircuitOpenTimeout        time.Duration
	StripeCircuitHalfOpenMaxReq     int
	UptraceEnabled                  bool
	UptraceDSN                      string
	PyroscopeEnabled                bool
	PyroscopeServerAddress          string
	PyroscopeAppName                string
	PyroscopeAuthToken              string
	PyroscopeBasicAuthUser          string
	PyroscopeBasicAuthPassword      string
	PyroscopeUploadRate             time.Duration
	LogLevel                        logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	stripeEnabled, err := strconv.ParseBool(getEnv("STRIPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STRIPE_ENABLED: %w", err)
	}
	stripeTimeout, err := time.ParseDuration(getEnv("STRIPE_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STRIPE_TIMEOUT: %w", err)
	}
	if stripeTimeout <= 0 {
		return Config{}, fmt.Errorf("STRIPE_TIMEOUT must be > 0")
	}
	stripeMaxRetries, err := getEnvAsInt("STRIPE_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse STRIPE_MAX_RETRIES: %w", err)
	}
	if stripeMaxRetries < 0 {
		return Config{}, fmt.Errorf("STRIPE_MAX_RETRIES must be >= 0")
	}
	stripeCircuitEnabled, err := strconv.ParseBool(getEnv("STRIPE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STRIPE_CIRCUIT_ENABLED: %w", err)
	}
	stripeCircuitFailureCount, err := getEnvAsInt("STRIPE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse STRIPE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if stripeCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("STRIPE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	stripeCircuitOpenTimeout, err := time.ParseDuration(getEnv("STRIPE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STRIPE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if stripeCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("STRIPE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	stripeCircuitHalfOpenMaxReq, err := getEnvAsInt("STRIPE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse STRIPE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if stripeCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("STRIPE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	stripeBaseURL := strings.TrimSpace(getEnv("STRIPE_API_BASE_URL", "https://api.stripe.com/v1"))
	stripeSecretKey := strings.TrimSpace(getEnv("STRIPE_SECRET_KEY", ""))
	if stripeEnabled && stripeSecretKey == "" {
		return Config{}, fmt.Errorf("STRIPE_SECRET_KEY is required when STRIPE_ENABLED=true")
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if appEnv == EnvProd && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when APP_ENV=prod")
	}

	seedDefault := "true"
	if appEnv == EnvProd {
		seedDefault = "false"
	}
	dbBootstrapSeed, err := strconv.ParseBool(getEnv("DB_BOOTSTRAP_SEED", seedDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_BOOTSTRAP_SEED: %w", err)
	}

	cfg := Config{
		AppEnv:                      appEnv,
		ServiceName:                 getEnv("APP_SERVICE_NAME", "league-registry-api"),
		ServiceVersion:              getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                    getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                       dbURL,
		DBDisablePreparedBinary:     true,
		DBBootstrapSeed:             dbBootstrapSeed,
		CORSAllowedOrigins:          splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:                pprofEnabled,
		PprofAddr:                   pprofAddr,
		SwaggerEnabled:              swaggerEnabled,
		GatekeeperBaseURL:           getEnv("GATEKEEPER_BASE_URL", "http://localhost:8081"),
		GatekeeperIntrospectPath:    getEnv("GATEKEEPER_INTROSPECT_PATH", "/v1/auth/introspect"),
		UptraceEnabled:              uptraceEnabled,
		UptraceDSN:                  uptraceDSN,
		PyroscopeEnabled:            pyroscopeEnabled,
		PyroscopeServerAddress:      pyroscopeServerAddress,
		PyroscopeAuthToken:          strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:      strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:  strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:         pyroscopeUploadRate,
		StripeEnabled:               stripeEnabled,
		StripeBaseURL:               stripeBaseURL,
		StripeSecretKey:             stripeSecretKey,
		StripeTimeout:               stripeTimeout,
		StripeMaxRetries:            stripeMaxRetries,
		StripeCircuitEnabled:        stripeCircuitEnabled,
		StripeCircuitFailureCount:   stripeCircuitFailureCount,
		StripeCircuitOpenTimeout:    stripeCircuitOpenTimeout,
		StripeCircuitHalfOpenMaxReq: stripeCircuitHalfOpenMaxReq,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	gatekeeperTimeout, err := time.ParseDuration(getEnv("GATEKEEPER_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_TIMEOUT: %w", err)
	}

	gatekeeperCacheTTL, err := time.ParseDuration(getEnv("GATEKEEPER_CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CACHE_TTL: %w", err)
	}
	if gatekeeperCacheTTL <= 0 {
		return Config{}, fmt.Errorf("GATEKEEPER_CACHE_TTL must be > 0")
	}

	gatekeeperCacheMaxToken, err := getEnvAsInt("GATEKEEPER_CACHE_MAX_TOKEN", 1024)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CACHE_MAX_TOKEN: %w", err)
	}
	if gatekeeperCacheMaxToken < 1 {
		return Config{}, fmt.Errorf("GATEKEEPER_CACHE_MAX_TOKEN must be >= 1")
	}

	gatekeeperCircuitEnabled, err := strconv.ParseBool(getEnv("GATEKEEPER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CIRCUIT_ENABLED: %w", err)
	}

	gatekeeperCircuitFailureCount, err := getEnvAsInt("GATEKEEPER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if gatekeeperCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("GATEKEEPER_CIRCUIT_FAILURE_COUNT must be >= 1")
	}

	gatekeeperCircuitOpenTimeout, err := time.ParseDuration(getEnv("GATEKEEPER_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if gatekeeperCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("GATEKEEPER_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}

	gatekeeperCircuitHalfOpenMaxReq, err := getEnvAsInt("GATEKEEPER_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if gatekeeperCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("GATEKEEPER_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	logLevel := parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.GatekeeperTimeout = gatekeeperTimeout
	cfg.GatekeeperCacheTTL = gatekeeperCacheTTL
	cfg.GatekeeperCacheMaxToken = gatekeeperCacheMaxToken
	cfg.GatekeeperCircuitEnabled = gatekeeperCircuitEnabled
	cfg.GatekeeperCircuitFailureCount = gatekeeperCircuitFailureCount
	cfg.GatekeeperCircuitOpenTimeout = gatekeeperCircuitOpenTimeout
	cfg.GatekeeperCircuitHalfOpenMaxReq = gatekeeperCircuitHalfOpenMaxReq
	cfg.LogLevel = logLevel

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
