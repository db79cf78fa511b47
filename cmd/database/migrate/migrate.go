package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"cdx-web-scan/entities"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.ScanSession{}); err != nil {
		log.Fatalf("Error migrating scan session table: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Scan{}); err != nil {
		log.Fatalf("Error migrating scan table: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.BarcodeCapture{}); err != nil {
		log.Fatalf("Error migrating barcode capture table: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.IntakeCall{}); err != nil {
		log.Fatalf("Error migrating intake call table: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
