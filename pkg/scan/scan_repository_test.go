package scan

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cdx-web-scan/domain"
	"cdx-web-scan/entities"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.sqlite")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.ScanSession{},
		&entities.Scan{},
		&entities.BarcodeCapture{},
		&entities.IntakeCall{},
	))
	return db
}

func newScan(sessionID string) (*entities.Scan, *entities.BarcodeCapture) {
	scan := &entities.Scan{
		ID:        uuid.NewString(),
		SessionID: &sessionID,
		Source:    domain.SourceScanner,
		RawInput:  "012345678901",
	}
	capture := &entities.BarcodeCapture{
		ID:              uuid.NewString(),
		Symbology:       domain.FormatUPC,
		ValueRaw:        "012345678901",
		ValueNormalized: "012345678901",
		IsPrimary:       true,
		CaptureMethod:   domain.SourceScanner,
	}
	return scan, capture
}

func TestCreateScanWithCapture(t *testing.T) {
	db := testDB(t)
	repo := NewScanRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.EnsureSession(ctx, "web-session", domain.SourceScanner))

	scan, capture := newScan("web-session")
	require.NoError(t, repo.CreateScanWithCapture(ctx, scan, capture))

	got, err := repo.GetScanByID(ctx, scan.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PrimaryBarcodeID)
	assert.Equal(t, capture.ID, *got.PrimaryBarcodeID)
	require.Len(t, got.Barcodes, 1)
	assert.True(t, got.Barcodes[0].IsPrimary)
	assert.Equal(t, "012345678901", got.Barcodes[0].ValueRaw)
}

func TestCreateScanWithCaptureRollsBack(t *testing.T) {
	db := testDB(t)
	repo := NewScanRepository(db)
	ctx := context.Background()

	scan, capture := newScan("web-session")
	capture.ValueRaw = "" // violates the non-empty check constraint

	require.Error(t, repo.CreateScanWithCapture(ctx, scan, capture))

	var count int64
	require.NoError(t, db.Model(&entities.Scan{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "failed capture insert rolls the scan back too")
}

func TestEnsureSessionIsIdempotent(t *testing.T) {
	db := testDB(t)
	repo := NewScanRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.EnsureSession(ctx, "web-session", domain.SourceManual))
	require.NoError(t, repo.EnsureSession(ctx, "web-session", domain.SourceCamera))

	var count int64
	require.NoError(t, db.Model(&entities.ScanSession{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var session entities.ScanSession
	require.NoError(t, db.First(&session, "id = ?", "web-session").Error)
	assert.Equal(t, domain.SourceManual, session.Source, "first write wins")
}

func TestLatestScanIDByCode(t *testing.T) {
	db := testDB(t)
	repo := NewScanRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.EnsureSession(ctx, "web-session", domain.SourceManual))

	id, err := repo.LatestScanIDByCode(ctx, "012345678901")
	require.NoError(t, err)
	assert.Empty(t, id, "unknown code resolves to no scan")

	first, firstCapture := newScan("web-session")
	require.NoError(t, repo.CreateScanWithCapture(ctx, first, firstCapture))

	second, secondCapture := newScan("web-session")
	secondCapture.CreatedAt = firstCapture.CreatedAt.Add(time.Second)
	require.NoError(t, repo.CreateScanWithCapture(ctx, second, secondCapture))

	id, err = repo.LatestScanIDByCode(ctx, "012345678901")
	require.NoError(t, err)
	assert.Equal(t, second.ID, id, "most recent capture wins")
}
