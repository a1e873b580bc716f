package configs

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverBolt     = "bolt"
)

// AppConfig dikumpulkan sekali di entry point lalu di-inject ke constructor.
type AppConfig struct {
	Port   string
	AppEnv string

	LogLevel string

	StoreDriver string

	DBUser             string
	DBPassword         string
	DBHost             string
	DBPort             string
	DBName             string
	DBSSLMode          string
	DBStatementTimeout int

	BoltPath string

	TxMaxAttempts int

	BookingSyncURL         string
	BookingSyncTimeout     time.Duration
	BookingSyncMaxInflight int64

	MidtransServerKey string
	MidtransUseProd   bool

	CorsAllowOrigins []string
}

var defaultCorsOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5500",
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || strings.TrimSpace(value) == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// Load membaca seluruh konfigurasi dari ENV (panggil LoadEnv dulu).
func Load() (AppConfig, error) {
	cfg := AppConfig{
		Port:     GetEnv("PORT", "3000"),
		AppEnv:   GetEnv("APP_ENV", "development"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),

		StoreDriver: strings.ToLower(GetEnv("STORE_DRIVER", StoreDriverPostgres)),

		DBUser:     GetEnv("DB_USER"),
		DBPassword: GetEnv("DB_PASSWORD"),
		DBHost:     GetEnv("DB_HOST"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBName:     GetEnv("DB_NAME"),
		DBSSLMode:  GetEnv("DB_SSLMODE", "require"),

		BoltPath: GetEnv("BOLT_PATH", "infaq.db"),

		BookingSyncURL:    strings.TrimSpace(GetEnv("BOOKING_SYNC_URL")),
		MidtransServerKey: strings.TrimSpace(GetEnv("MIDTRANS_SERVER_KEY")),
	}

	var err error
	if cfg.DBStatementTimeout, err = intEnv("DB_STATEMENT_TIMEOUT_MS", 3000); err != nil {
		return cfg, err
	}
	if cfg.TxMaxAttempts, err = intEnv("TX_MAX_ATTEMPTS", 3); err != nil {
		return cfg, err
	}
	inflight, err := intEnv("BOOKING_SYNC_MAX_INFLIGHT", 8)
	if err != nil {
		return cfg, err
	}
	cfg.BookingSyncMaxInflight = int64(inflight)

	if cfg.BookingSyncTimeout, err = time.ParseDuration(GetEnv("BOOKING_SYNC_TIMEOUT", "10s")); err != nil {
		return cfg, fmt.Errorf("BOOKING_SYNC_TIMEOUT: %w", err)
	}

	if v := GetEnv("MIDTRANS_USE_PROD", "false"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("MIDTRANS_USE_PROD: %w", err)
		}
		cfg.MidtransUseProd = b
	}

	cfg.CorsAllowOrigins = defaultCorsOrigins
	if v := GetEnv("CORS_ALLOW_ORIGINS"); v != "" {
		cfg.CorsAllowOrigins = splitCSV(v)
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres, StoreDriverBolt:
	default:
		return cfg, fmt.Errorf("STORE_DRIVER tidak dikenal: %q", cfg.StoreDriver)
	}
	if cfg.TxMaxAttempts < 1 {
		return cfg, fmt.Errorf("TX_MAX_ATTEMPTS harus >= 1, dapat %d", cfg.TxMaxAttempts)
	}
	if cfg.BookingSyncMaxInflight < 1 {
		return cfg, fmt.Errorf("BOOKING_SYNC_MAX_INFLIGHT harus >= 1, dapat %d", cfg.BookingSyncMaxInflight)
	}

	return cfg, nil
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// PostgresDSN: URL lengkap + statement_timeout, cocok untuk PgBouncer.
// User/password di-escape, jadi boleh berisi @ / # :
func (c AppConfig) PostgresDSN() string {
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	q.Set("application_name", "infaqku")
	q.Set("options", fmt.Sprintf("-c statement_timeout=%d", c.DBStatementTimeout))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func intEnv(key string, def int) (int, error) {
	raw := GetEnv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
