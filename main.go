package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/config"
	"github.com/slaim1322111/sitepaynote/logger"
	"github.com/slaim1322111/sitepaynote/routes"
)

func main() {
	_ = godotenv.Load()

	logger.InitLogger()
	defer logger.Sync()

	cfg := config.Load()

	db := initDatabase(cfg)
	prepareSchema(db, cfg)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Log.Fatalw("Failed to create upload folder", "dir", cfg.UploadDir, "error", err)
	}

	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db, cfg)

	if cfg.BackupDir != "" {
		// Nightly copy of the upload folder, pruning old snapshots.
		go startDailyBackupAtFixedTime(cfg.UploadDir, cfg.BackupDir, cfg.BackupRetention, 2, 0)
	}

	logger.Log.Infow("Server starting", "port", cfg.Port, "dialect", cfg.Dialect)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatalw("Failed to start server", "error", err)
	}
}

// initDatabase opens the configured database: PostgreSQL when a DSN could be
// assembled from the environment, a local SQLite file otherwise.
func initDatabase(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.Dialect {
	case config.DialectPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		dialector = sqlite.Open(cfg.DSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logger.Log.Fatalw("DB connection failed", "dialect", cfg.Dialect, "error", err)
	}
	return db
}
