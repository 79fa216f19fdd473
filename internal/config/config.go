package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Backend BackendConfig
	Company CompanyConfig
	Export  ExportConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds the Redis connection used for session revocation.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// JWTConfig holds the settings for verifying backend-issued session tokens.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// BackendConfig points at the document system of record.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CompanyConfig is the seller profile printed on e-invoices.
type CompanyConfig struct {
	GSTIN     string `mapstructure:"gstin"`
	LegalName string `mapstructure:"legal_name"`
	Address1  string `mapstructure:"address1"`
	Address2  string `mapstructure:"address2"`
	Location  string `mapstructure:"location"`
	Pincode   string `mapstructure:"pincode"`
	StateCode string `mapstructure:"state_code"`
	Phone     string `mapstructure:"phone"`
	Email     string `mapstructure:"email"`
}

// ExportConfig controls where e-invoice files are written.
type ExportConfig struct {
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Load reads configuration from an optional .env file and environment
// variables with the TRADEDESK_ prefix.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TRADEDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "tradedesk")
	v.SetDefault("db.password", "tradedesk_secret")
	v.SetDefault("db.name", "tradedesk_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	v.SetDefault("redis.url", "redis://localhost:6379/0")

	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "tradedesk-exports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 900)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	v.SetDefault("backend.base_url", "http://localhost:5000/api")
	v.SetDefault("backend.timeout", "20s")

	// Seller defaults; the home state drives intra-state classification.
	v.SetDefault("company.gstin", "")
	v.SetDefault("company.legal_name", "")
	v.SetDefault("company.address1", "")
	v.SetDefault("company.address2", "")
	v.SetDefault("company.location", "")
	v.SetDefault("company.pincode", "")
	v.SetDefault("company.state_code", "24")
	v.SetDefault("company.phone", "")
	v.SetDefault("company.email", "")

	v.SetDefault("export.key_prefix", "einvoices")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "TRADEDESK_SERVER_PORT",
		"server.read_timeout":  "TRADEDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout": "TRADEDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":   "TRADEDESK_SERVER_ENVIRONMENT",
		"db.host":              "TRADEDESK_DB_HOST",
		"db.port":              "TRADEDESK_DB_PORT",
		"db.user":              "TRADEDESK_DB_USER",
		"db.password":          "TRADEDESK_DB_PASSWORD",
		"db.name":              "TRADEDESK_DB_NAME",
		"db.sslmode":           "TRADEDESK_DB_SSLMODE",
		"db.max_open":          "TRADEDESK_DB_MAX_OPEN",
		"db.max_idle":          "TRADEDESK_DB_MAX_IDLE",
		"redis.url":            "TRADEDESK_REDIS_URL",
		"jwt.secret":           "TRADEDESK_JWT_SECRET",
		"jwt.issuer":           "TRADEDESK_JWT_ISSUER",
		"s3.region":            "TRADEDESK_S3_REGION",
		"s3.bucket":            "TRADEDESK_S3_BUCKET",
		"s3.endpoint":          "TRADEDESK_S3_ENDPOINT",
		"s3.access_key":        "TRADEDESK_S3_ACCESS_KEY",
		"s3.secret_key":        "TRADEDESK_S3_SECRET_KEY",
		"s3.presign_expiry":    "TRADEDESK_S3_PRESIGN_EXPIRY",
		"log.level":            "TRADEDESK_LOG_LEVEL",
		"log.format":           "TRADEDESK_LOG_FORMAT",
		"cors.allowed_origins": "TRADEDESK_CORS_ALLOWED_ORIGINS",
		"backend.base_url":     "TRADEDESK_BACKEND_BASE_URL",
		"backend.timeout":      "TRADEDESK_BACKEND_TIMEOUT",
		"company.gstin":        "TRADEDESK_COMPANY_GSTIN",
		"company.legal_name":   "TRADEDESK_COMPANY_LEGAL_NAME",
		"company.address1":     "TRADEDESK_COMPANY_ADDRESS1",
		"company.address2":     "TRADEDESK_COMPANY_ADDRESS2",
		"company.location":     "TRADEDESK_COMPANY_LOCATION",
		"company.pincode":      "TRADEDESK_COMPANY_PINCODE",
		"company.state_code":   "TRADEDESK_COMPANY_STATE_CODE",
		"company.phone":        "TRADEDESK_COMPANY_PHONE",
		"company.email":        "TRADEDESK_COMPANY_EMAIL",
		"export.key_prefix":    "TRADEDESK_EXPORT_KEY_PREFIX",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if TRADEDESK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TRADEDESK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Redis = RedisConfig{URL: v.GetString("redis.url")}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{AllowedOrigins: splitList(v.GetString("cors.allowed_origins"))}
	cfg.Backend = BackendConfig{
		BaseURL: strings.TrimRight(v.GetString("backend.base_url"), "/"),
		Timeout: v.GetDuration("backend.timeout"),
	}
	cfg.Company = CompanyConfig{
		GSTIN:     v.GetString("company.gstin"),
		LegalName: v.GetString("company.legal_name"),
		Address1:  v.GetString("company.address1"),
		Address2:  v.GetString("company.address2"),
		Location:  v.GetString("company.location"),
		Pincode:   v.GetString("company.pincode"),
		StateCode: v.GetString("company.state_code"),
		Phone:     v.GetString("company.phone"),
		Email:     v.GetString("company.email"),
	}
	cfg.Export = ExportConfig{KeyPrefix: strings.Trim(v.GetString("export.key_prefix"), "/")}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("config: backend.base_url is required")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
