package intake

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdx-web-scan/domain"
	"cdx-web-scan/entities"
	"cdx-web-scan/pkg/batch"
)

const sid = "test-session"

type fakeIntakeRepository struct {
	calls []*entities.IntakeCall
}

func (f *fakeIntakeRepository) CreateIntakeCall(_ context.Context, call *entities.IntakeCall) error {
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeIntakeRepository) NextAttempt(_ context.Context, scanID string) (int, error) {
	attempt := 1
	for _, c := range f.calls {
		if c.ScanID == scanID {
			attempt++
		}
	}
	return attempt, nil
}

// fakeScanResolver maps barcode values to scan ids for audit resolution.
type fakeScanResolver struct {
	byCode map[string]string
}

func (f *fakeScanResolver) CreateScanWithCapture(context.Context, *entities.Scan, *entities.BarcodeCapture) error {
	return errors.New("not implemented")
}

func (f *fakeScanResolver) EnsureSession(context.Context, string, string) error {
	return nil
}

func (f *fakeScanResolver) GetScanByID(context.Context, string) (*entities.Scan, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeScanResolver) LatestScanIDByCode(_ context.Context, code string) (string, error) {
	return f.byCode[code], nil
}

func newTestService(t *testing.T, handler http.HandlerFunc, byCode map[string]string) (IntakeService, *batch.Store, *fakeIntakeRepository, *int32) {
	t.Helper()

	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	if byCode == nil {
		byCode = map[string]string{}
	}
	repo := &fakeIntakeRepository{}
	store := batch.NewStore()
	service := NewIntakeService(repo, &fakeScanResolver{byCode: byCode}, store, server.URL, "test-token")
	return service, store, repo, &hits
}

func TestSubmitBatchEmpty(t *testing.T) {
	t.Parallel()
	service, _, _, hits := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, nil)

	_, err := service.SubmitBatch(context.Background(), sid)

	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
	assert.EqualValues(t, 0, atomic.LoadInt32(hits), "empty batch performs no network call")
}

func TestSubmitBatchNotConfigured(t *testing.T) {
	t.Parallel()
	store := batch.NewStore()
	require.True(t, store.Append(sid, "12345678", domain.SourceManual, ""))
	service := NewIntakeService(&fakeIntakeRepository{}, &fakeScanResolver{byCode: map[string]string{}}, store, "", "")

	_, err := service.SubmitBatch(context.Background(), sid)

	assert.ErrorIs(t, err, domain.ErrIntakeNotConfigured)
	assert.Equal(t, 1, store.Len(sid), "batch is preserved")
}

func TestSubmitBatchSuccessClearsBatch(t *testing.T) {
	t.Parallel()

	var gotPayload domain.IntakePayload
	var gotAuth, gotContentType string
	service, store, repo, hits := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}, map[string]string{"12345678": "scan-1", "123456789012": "scan-2"})

	require.True(t, store.Append(sid, "12345678", domain.SourceManual, "a"))
	require.True(t, store.Append(sid, "123456789012", domain.SourceCamera, "b"))

	result, err := service.SubmitBatch(context.Background(), sid)

	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, http.StatusOK, result.Status)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 0, store.Len(sid), "success clears the batch")
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, domain.IntakeSourceTag, gotPayload.Source)
	assert.Equal(t, []string{"12345678", "123456789012"}, gotPayload.Barcodes)
	require.Len(t, gotPayload.Items, 2)
	assert.False(t, gotPayload.SubmittedAt.IsZero())

	// One audit row per item, sharing the attempt's idempotency key.
	require.Len(t, repo.calls, 2)
	assert.Equal(t, repo.calls[0].IdempotencyKey, repo.calls[1].IdempotencyKey)
	assert.Equal(t, domain.IntakeStatusSuccess, repo.calls[0].Status)
	assert.Equal(t, 1, repo.calls[0].Attempt)
}

func TestSubmitBatchFailureKeepsBatch(t *testing.T) {
	t.Parallel()
	service, store, repo, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "intake unavailable", http.StatusInternalServerError)
	}, map[string]string{"12345678": "scan-1"})

	require.True(t, store.Append(sid, "12345678", domain.SourceManual, ""))

	result, err := service.SubmitBatch(context.Background(), sid)

	require.NoError(t, err, "an attempted call reports failure in the result, not the error")
	assert.False(t, result.OK)
	assert.Equal(t, http.StatusInternalServerError, result.Status)
	assert.Contains(t, result.Message, "500")
	assert.Contains(t, result.Body, "intake unavailable")
	assert.Equal(t, 1, store.Len(sid), "failure preserves the batch for retry")

	require.Len(t, repo.calls, 1)
	assert.Equal(t, domain.IntakeStatusFailed, repo.calls[0].Status)
}

func TestSubmitBatchRetryIncrementsAttempt(t *testing.T) {
	t.Parallel()
	service, store, repo, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}, map[string]string{"12345678": "scan-1"})

	require.True(t, store.Append(sid, "12345678", domain.SourceManual, ""))

	first, err := service.SubmitBatch(context.Background(), sid)
	require.NoError(t, err)
	second, err := service.SubmitBatch(context.Background(), sid)
	require.NoError(t, err)

	assert.False(t, first.OK)
	assert.False(t, second.OK)
	require.Len(t, repo.calls, 2)
	assert.Equal(t, 1, repo.calls[0].Attempt)
	assert.Equal(t, 2, repo.calls[1].Attempt)
	assert.NotEqual(t, repo.calls[0].IdempotencyKey, repo.calls[1].IdempotencyKey,
		"each attempt gets a fresh idempotency key")
}

func TestSubmitBatchTransportError(t *testing.T) {
	t.Parallel()
	store := batch.NewStore()
	require.True(t, store.Append(sid, "12345678", domain.SourceManual, ""))

	// Closed port: connection refused.
	service := NewIntakeService(&fakeIntakeRepository{}, &fakeScanResolver{byCode: map[string]string{}}, store,
		"http://127.0.0.1:1", "")

	result, err := service.SubmitBatch(context.Background(), sid)

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, 0, result.Status, "transport errors report a zero status")
	assert.NotEmpty(t, result.Body, "body carries the transport error text")
	assert.Equal(t, 1, store.Len(sid))
}

func TestSubmitBatchSkipsUnpersistedScans(t *testing.T) {
	t.Parallel()
	service, store, repo, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}, map[string]string{"12345678": "scan-1"})

	require.True(t, store.Append(sid, "12345678", domain.SourceManual, ""))
	require.True(t, store.Append(sid, "87654321", domain.SourceManual, ""))

	result, err := service.SubmitBatch(context.Background(), sid)

	require.NoError(t, err)
	assert.True(t, result.OK, "202 counts as success")
	require.Len(t, repo.calls, 1, "items without a durable scan are not audited")
	assert.Equal(t, "scan-1", repo.calls[0].ScanID)
}
