package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Port string

	DBDriver string // postgres | mysql | sqlite
	DBDSN    string

	JWTSecret string
	JWTTTL    time.Duration

	CEPBaseURL string
	CEPTimeout time.Duration

	BodyLimitBytes  int
	AllowedOrigins  string
	RateLimitMax    int
	RateLimitWindow time.Duration

	AdminUsername string
	AdminPassword string
	AdminRoles    []string

	ViewUsername  string
	ViewAvatarURL string

	LogLevel  string
	LogPretty bool
}

// Load reads an optional .env file and then the environment.
func Load() Config {
	_ = godotenv.Load()

	// Fiber default BodyLimit is 4 MiB; BODY_LIMIT_BYTES wins over BODY_LIMIT_MB.
	bodyLimit := envInt("BODY_LIMIT_BYTES", 0)
	if bodyLimit <= 0 {
		bodyLimit = envInt("BODY_LIMIT_MB", 4) * 1024 * 1024
	}

	// Prefer JWT_SECRET_KEY, fallback to JWT_SECRET
	secret := os.Getenv("JWT_SECRET_KEY")
	if strings.TrimSpace(secret) == "" {
		secret = os.Getenv("JWT_SECRET")
	}

	driver := strings.ToLower(envString("DB_DRIVER", "postgres"))

	return Config{
		Port:            envString("PORT", "8080"),
		DBDriver:        driver,
		DBDSN:           dsn(driver),
		JWTSecret:       secret,
		JWTTTL:          time.Duration(envInt("JWT_TTL_HOURS", 24)) * time.Hour,
		CEPBaseURL:      envString("CEP_BASE_URL", "https://viacep.com.br/ws"),
		CEPTimeout:      time.Duration(envInt("CEP_TIMEOUT_SECONDS", 10)) * time.Second,
		BodyLimitBytes:  bodyLimit,
		AllowedOrigins:  envString("ALLOWED_ORIGINS", "*"),
		RateLimitMax:    envInt("RATE_LIMIT_MAX", 60),
		RateLimitWindow: time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		AdminUsername:   os.Getenv("ADMIN_USERNAME"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		AdminRoles:      splitList(envString("ADMIN_ROLES", "ROLE_ADMIN")),
		ViewUsername:    envString("VIEW_USERNAME", "aluno"),
		ViewAvatarURL:   envString("VIEW_AVATAR_URL", "https://github.com/identicons/fiap.png"),
		LogLevel:        envString("LOG_LEVEL", "info"),
		LogPretty:       envBool("LOG_PRETTY", false),
	}
}

// dsn returns DB_DSN when set, otherwise builds one for the driver from the DB_* parts.
func dsn(driver string) string {
	if v := strings.TrimSpace(os.Getenv("DB_DSN")); v != "" {
		return v
	}
	host := envString("DB_HOST", "localhost")
	user := envString("DB_USER", "postgres")
	pass := os.Getenv("DB_PASSWORD")
	name := envString("DB_NAME", "salesproject")

	switch driver {
	case "sqlite":
		return envString("DB_PATH", "salesproject.db")
	case "mysql":
		port := envString("DB_PORT", "3306")
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local", user, pass, host, port, name)
	default:
		port := envString("DB_PORT", "5432")
		ssl := envString("DB_SSLMODE", "disable")
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			host, user, pass, name, port, ssl)
	}
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
