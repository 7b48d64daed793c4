package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Config holds all environment-driven settings. Loaded once in main and
// passed down explicitly; handlers never read the environment themselves.
type Config struct {
	Port string

	Dialect string
	DSN     string

	UploadDir         string
	MaxUploadBytes    int64
	AllowedExtensions map[string]bool

	JWTSecret string

	// StrictMigrate makes a failed schema migration fatal at startup.
	// Default is best-effort: log and keep starting.
	StrictMigrate bool

	BackupDir       string
	BackupRetention time.Duration
}

const defaultExtensions = "pdf,png,jpg,jpeg,zip,tif,tiff"

// Load assembles the configuration from the environment.
func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		UploadDir:      getEnv("UPLOAD_FOLDER", "uploads"),
		MaxUploadBytes: getEnvInt64("MAX_CONTENT_LENGTH", 16*1024*1024),
		JWTSecret:      getEnv("JWT_SECRET", "devkey"),
		StrictMigrate:  getEnvBool("STRICT_MIGRATE", false),
		BackupDir:      os.Getenv("BACKUP_FOLDER"),
		BackupRetention: time.Duration(
			getEnvInt64("BACKUP_RETENTION_DAYS", 4)) * 24 * time.Hour,
	}

	cfg.AllowedExtensions = parseExtensions(getEnv("ALLOWED_EXTENSIONS", defaultExtensions))
	cfg.Dialect, cfg.DSN = resolveDatabase()

	return cfg
}

// resolveDatabase picks the database connection. Order: full DATABASE_URL,
// then a DSN assembled from PG_*/POSTGRES_* candidate variables, then a
// local SQLite file for development.
func resolveDatabase() (dialect, dsn string) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return DialectPostgres, url
	}

	user := firstEnv("PG_USERNAME", "PG_USER", "POSTGRES_USER")
	pass := firstEnv("PG_PASSWORD", "PG_PASS", "POSTGRES_PASSWORD")
	host := firstEnv("PG_HOST", "DB_HOST", "POSTGRES_HOST")
	port := firstEnv("PG_PORT", "POSTGRES_PORT")
	name := firstEnv("PG_DATABASE", "POSTGRES_DB")
	if port == "" {
		port = "5432"
	}

	if user != "" && pass != "" && host != "" && name != "" {
		return DialectPostgres, fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			host, user, pass, name, port,
		)
	}

	return DialectSQLite, getEnv("SQLITE_PATH", "notes_market.db")
}

// ExtensionAllowed reports whether a file extension (without the dot) is on
// the upload allow-list.
func (c *Config) ExtensionAllowed(ext string) bool {
	return c.AllowedExtensions[strings.ToLower(ext)]
}

// AllowedExtensionList returns the allow-list sorted for display.
func (c *Config) AllowedExtensionList() []string {
	out := make([]string, 0, len(c.AllowedExtensions))
	for ext := range c.AllowedExtensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

func parseExtensions(raw string) map[string]bool {
	exts := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			exts[part] = true
		}
	}
	return exts
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(name string, fallback int64) int64 {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(name string, fallback bool) bool {
	if v := os.Getenv(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
