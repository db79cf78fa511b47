package scan

import (
	"context"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"cdx-web-scan/domain"
	"cdx-web-scan/entities"
	"cdx-web-scan/pkg/barcode"
	"cdx-web-scan/pkg/batch"
)

type (
	ScanService interface {
		SubmitScan(ctx context.Context, sessionID string, req domain.SubmitScanRequest) domain.SubmitScanResponse
	}

	scanService struct {
		scanRepository ScanRepository
		batchStore     *batch.Store
	}
)

func NewScanService(scanRepository ScanRepository, batchStore *batch.Store) ScanService {
	return &scanService{
		scanRepository: scanRepository,
		batchStore:     batchStore,
	}
}

// SubmitScan runs one scan event through validation, the session batch, and
// the durable store. The batch dedups by code; the durable store records
// every accepted submission, duplicates included, so edit history survives
// batch edits. Persistence failures never fail the request: the response
// stays ok with a nil scan id marking "not durably recorded".
func (s *scanService) SubmitScan(ctx context.Context, sessionID string, req domain.SubmitScanRequest) domain.SubmitScanResponse {
	value, err := barcode.Validate(req.Barcode)
	if err != nil {
		return domain.SubmitScanResponse{OK: false, Message: err.Error()}
	}

	source := req.Source
	if source == "" {
		source = domain.SourceManual
	}

	added := s.batchStore.Append(sessionID, value, source, req.Title)

	scanID := s.persist(ctx, sessionID, value, source, req)

	message := domain.MessageScanAdded
	if !added {
		message = domain.MessageScanDuplicate
	}
	return domain.SubmitScanResponse{
		OK:        true,
		Message:   message,
		Barcode:   value,
		ScanID:    scanID,
		Duplicate: !added,
	}
}

func (s *scanService) persist(ctx context.Context, sessionID, value, source string, req domain.SubmitScanRequest) *string {
	if err := s.scanRepository.EnsureSession(ctx, sessionID, source); err != nil {
		log.Errorf("ensure scan session %s: %v", sessionID, err)
		return nil
	}

	captureMethod := barcode.CaptureMethod(source)
	scan := &entities.Scan{
		ID:        uuid.NewString(),
		SessionID: &sessionID,
		Source:    captureMethod,
		RawInput:  req.Barcode,
		Notes:     req.Title,
	}
	capture := &entities.BarcodeCapture{
		ID:              uuid.NewString(),
		Symbology:       barcode.Classify(value),
		ValueRaw:        value,
		ValueNormalized: value,
		IsPrimary:       true,
		CaptureMethod:   captureMethod,
	}

	if err := s.scanRepository.CreateScanWithCapture(ctx, scan, capture); err != nil {
		log.Errorf("persist scan for %s: %v", value, err)
		return nil
	}
	return &scan.ID
}
