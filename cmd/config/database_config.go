package config

import (
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cdx-web-scan/internal/utils"
)

// ConnectDB opens the local SQLite database under the configured data
// folder, creating the folder on first run.
func ConnectDB() (*gorm.DB, error) {
	folder := utils.GetConfigDefault("CDX_WEB_SCAN_FOLDER", "./cdx_data")
	if err := os.MkdirAll(folder, os.ModePerm); err != nil {
		log.Fatalf("Creating data folder failed: %v", err)
		return nil, err
	}

	dsn := filepath.Join(folder, utils.GetConfigDefault("CDX_WEB_SCAN_DB_FILE_NAME", "cdx_web_scan.sqlite"))
	log.Printf("CDX Web Scan database: %s", dsn)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
		return nil, err
	}
	return db, nil
}
