package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultMaxUploadBytes 是单张图片允许的最大字节数（10 MiB）。
const DefaultMaxUploadBytes int64 = 10 << 20

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr     string
	Port           string
	GinMode        string
	LogLevel       string
	DatabaseDriver string
	DatabasePath   string
	DatabaseDSN    string
	UploadDir      string
	UploadURLPath  string
	MaxUploadBytes int64
	PublicBaseURL  string
	AdminUsername  string
	AdminPassword  string
	JWTSecret      string
	TokenTTL       time.Duration
	SessionSecret  string
	CORSOrigins    []string
	SeedDefaults   bool
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 当前目录存在 .env 时会先加载它，已存在的环境变量不会被覆盖。
func Load() AppConfig {
	_ = godotenv.Load()

	port := envOr("PORT", "8080")

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	uploadURLPath := "/" + strings.Trim(envOr("UPLOAD_URL_PATH", "/api/uploads"), "/")

	return AppConfig{
		ListenAddr:     listenAddr,
		Port:           port,
		GinMode:        envOr("GIN_MODE", "release"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		DatabaseDriver: strings.ToLower(envOr("DATABASE_DRIVER", "sqlite")),
		DatabasePath:   envOr("DATABASE_PATH", "gosec.db"),
		DatabaseDSN:    strings.TrimSpace(os.Getenv("DATABASE_DSN")),
		UploadDir:      envOr("UPLOAD_DIR", "data/uploads"),
		UploadURLPath:  uploadURLPath,
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		PublicBaseURL:  strings.TrimRight(strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL")), "/"),
		AdminUsername:  envOr("ADMIN_USERNAME", "admin"),
		AdminPassword:  envOr("ADMIN_PASSWORD", "gosec_admin"),
		JWTSecret:      envOr("JWT_SECRET", "gosec-dev-secret-change-me"),
		TokenTTL:       envDuration("TOKEN_TTL", 8*time.Hour),
		SessionSecret:  envOr("SESSION_SECRET", "gosec-dev-session"),
		CORSOrigins:    splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		SeedDefaults:   envBool("SEED_DEFAULTS", true),
	}
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envInt64(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
