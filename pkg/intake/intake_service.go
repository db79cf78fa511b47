// Package intake forwards a finished session batch to the external intake
// API and keeps the per-scan audit trail of those calls.
package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"cdx-web-scan/domain"
	"cdx-web-scan/entities"
	"cdx-web-scan/pkg/batch"
	"cdx-web-scan/pkg/scan"
)

const (
	requestTimeout = 15 * time.Second

	// Response bodies are stored for troubleshooting only; keep them small.
	maxStoredBody = 4096
)

type (
	IntakeService interface {
		SubmitBatch(ctx context.Context, sessionID string) (domain.IntakeResult, error)
	}

	intakeService struct {
		intakeRepository IntakeRepository
		scanRepository   scan.ScanRepository
		batchStore       *batch.Store
		apiURL           string
		apiToken         string
		httpClient       *http.Client
	}
)

func NewIntakeService(intakeRepository IntakeRepository, scanRepository scan.ScanRepository, batchStore *batch.Store, apiURL, apiToken string) IntakeService {
	return &intakeService{
		intakeRepository: intakeRepository,
		scanRepository:   scanRepository,
		batchStore:       batchStore,
		apiURL:           apiURL,
		apiToken:         apiToken,
		httpClient:       &http.Client{Timeout: requestTimeout},
	}
}

// SubmitBatch POSTs the session's full batch to the intake API. Any 2xx
// clears the batch; every other outcome leaves it untouched so the operator
// can retry. A transport-level failure reports status 0 with the error text
// as body. Retry is operator-initiated, never automatic. The returned error
// is non-nil only when no network call was attempted (empty batch, missing
// configuration).
func (s *intakeService) SubmitBatch(ctx context.Context, sessionID string) (domain.IntakeResult, error) {
	items := s.batchStore.Snapshot(sessionID)
	if len(items) == 0 {
		return domain.IntakeResult{}, domain.ErrEmptyBatch
	}
	if s.apiURL == "" {
		return domain.IntakeResult{Count: len(items)}, domain.ErrIntakeNotConfigured
	}

	barcodes := make([]string, len(items))
	for i, item := range items {
		barcodes[i] = item.Code
	}
	payload := domain.IntakePayload{
		Source:      domain.IntakeSourceTag,
		SubmittedAt: time.Now().UTC(),
		Barcodes:    barcodes,
		Items:       items,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.IntakeResult{Count: len(items)}, err
	}

	status, respBody := s.post(ctx, body)

	result := domain.IntakeResult{
		Status: status,
		Body:   respBody,
		Count:  len(items),
	}
	if status >= 200 && status < 300 {
		result.OK = true
		result.Message = domain.MessageSuccessIntakeSubmit
		s.batchStore.Clear(sessionID)
	} else {
		result.OK = false
		result.Message = fmt.Sprintf("%s (status %d)", domain.MessageFailedIntakeSubmit, status)
	}

	s.audit(ctx, items, string(body), result)
	return result, nil
}

func (s *intakeService) post(ctx context.Context, body []byte) (int, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return 0, err.Error()
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, err.Error()
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxStoredBody))
	if err != nil {
		return resp.StatusCode, err.Error()
	}
	return resp.StatusCode, string(respBody)
}

// audit records one intake_call row per batch item that resolved to a
// persisted scan, all sharing this attempt's idempotency key. Audit failures
// are logged and never surface to the operator.
func (s *intakeService) audit(ctx context.Context, items []domain.BatchItem, requestBody string, result domain.IntakeResult) {
	idempotencyKey := uuid.NewString()
	callStatus := domain.IntakeStatusFailed
	if result.OK {
		callStatus = domain.IntakeStatusSuccess
	}

	for _, item := range items {
		scanID, err := s.scanRepository.LatestScanIDByCode(ctx, item.Code)
		if err != nil {
			log.Errorf("resolve scan for %s: %v", item.Code, err)
			continue
		}
		if scanID == "" {
			// Never durably recorded (persistence failed at capture time).
			continue
		}

		attempt, err := s.intakeRepository.NextAttempt(ctx, scanID)
		if err != nil {
			log.Errorf("count intake attempts for scan %s: %v", scanID, err)
			continue
		}

		call := &entities.IntakeCall{
			ID:             uuid.NewString(),
			ScanID:         scanID,
			IdempotencyKey: idempotencyKey,
			Attempt:        attempt,
			Status:         callStatus,
			APIBaseURL:     s.apiURL,
			RequestBody:    requestBody,
			ResponseBody:   result.Body,
			HTTPStatus:     result.Status,
		}
		if result.Status == 0 {
			call.Error = result.Body
		}
		if err := s.intakeRepository.CreateIntakeCall(ctx, call); err != nil {
			log.Errorf("record intake call for scan %s: %v", scanID, err)
		}
	}
}
