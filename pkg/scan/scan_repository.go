package scan

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cdx-web-scan/entities"
)

type (
	ScanRepository interface {
		CreateScanWithCapture(ctx context.Context, scan *entities.Scan, capture *entities.BarcodeCapture) error
		EnsureSession(ctx context.Context, sessionID, source string) error
		GetScanByID(ctx context.Context, id string) (*entities.Scan, error)
		LatestScanIDByCode(ctx context.Context, code string) (string, error)
	}

	scanRepository struct {
		db *gorm.DB
	}
)

func NewScanRepository(db *gorm.DB) ScanRepository {
	return &scanRepository{db: db}
}

// CreateScanWithCapture persists one scan event and its primary barcode in a
// single transaction. The scan's primary-barcode reference is set as part of
// the same transaction; any failure rolls the whole thing back.
func (r *scanRepository) CreateScanWithCapture(ctx context.Context, scan *entities.Scan, capture *entities.BarcodeCapture) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(scan).Error; err != nil {
			return err
		}
		capture.ScanID = scan.ID
		if err := tx.Create(capture).Error; err != nil {
			return err
		}
		return tx.Model(scan).Update("primary_barcode_id", capture.ID).Error
	})
}

func (r *scanRepository) EnsureSession(ctx context.Context, sessionID, source string) error {
	session := &entities.ScanSession{ID: sessionID, Source: source}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(session).Error
}

func (r *scanRepository) GetScanByID(ctx context.Context, id string) (*entities.Scan, error) {
	var scan entities.Scan
	if err := r.db.WithContext(ctx).Preload("Barcodes").Where("id = ?", id).First(&scan).Error; err != nil {
		return nil, err
	}
	return &scan, nil
}

// LatestScanIDByCode resolves a barcode value to its most recent scan.
// Returns "" when the code was never durably recorded.
func (r *scanRepository) LatestScanIDByCode(ctx context.Context, code string) (string, error) {
	var capture entities.BarcodeCapture
	err := r.db.WithContext(ctx).
		Where("value_raw = ?", code).
		Order("created_at desc").
		First(&capture).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return capture.ScanID, nil
}
