package config

import (
	"os"
	"strconv"
)

type Config struct {
	DB      DBConfig
	JWT     JWTConfig
	Server  ServerConfig
	Uploads UploadsConfig
	MinIO   MinIOConfig
	LDAP    LDAPConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

type ServerConfig struct {
	Port       string
	CORSOrigin string
}

type UploadsConfig struct {
	Dir          string
	MaxSizeBytes int64
}

// MinIOConfig is only consulted when Enabled is true; the default image
// store is the local uploads directory.
type MinIOConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type LDAPConfig struct {
	Enabled    bool
	URL        string
	BindDN     string
	BindPass   string
	SearchBase string
	UserFilter string
	EmailField string
}

func Load() *Config {
	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "labrecord"),
			Password: getEnv("DB_PASSWORD", "labrecord_secret"),
			Name:     getEnv("DB_NAME", "labrecord"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "change-me-in-production"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24*7),
		},
		Server: ServerConfig{
			Port:       getEnv("SERVER_PORT", "8080"),
			CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3001,http://127.0.0.1:3001"),
		},
		Uploads: UploadsConfig{
			Dir:          getEnv("UPLOADS_DIR", "uploads"),
			MaxSizeBytes: getEnvAsInt64("UPLOADS_MAX_SIZE_BYTES", 5*1024*1024),
		},
		MinIO: MinIOConfig{
			Enabled:   getEnvAsBool("MINIO_ENABLED", false),
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "labrecord"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "labrecord_secret"),
			Bucket:    getEnv("MINIO_BUCKET", "labrecord-uploads"),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		},
		LDAP: LDAPConfig{
			Enabled:    getEnvAsBool("LDAP_ENABLED", false),
			URL:        getEnv("LDAP_URL", ""),
			BindDN:     getEnv("LDAP_BIND_DN", ""),
			BindPass:   getEnv("LDAP_BIND_PASSWORD", ""),
			SearchBase: getEnv("LDAP_SEARCH_BASE", ""),
			UserFilter: getEnv("LDAP_USER_FILTER", "(mail=%s)"),
			EmailField: getEnv("LDAP_EMAIL_FIELD", "mail"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
