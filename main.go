package main

import (
	"log"

	"cdx-web-scan/cmd/config"
	migration "cdx-web-scan/cmd/database/migrate"
	"cdx-web-scan/internal/utils"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}

	port := utils.GetConfigDefault("APP_PORT", "5000")
	log.Fatal(app.Listen(":" + port))
}
