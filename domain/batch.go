package domain

import (
	"time"
)

var (
	MessageSuccessGetBatch   = "batch retrieved successfully"
	MessageSuccessClearBatch = "batch cleared"
	MessageSuccessDeleteItem = "item removed from batch"
	MessageFailedGetBatch    = "failed to retrieve batch"
)

type (
	// BatchItem lives only in the operator's session; durable Scan rows have
	// their own independent lifecycle.
	BatchItem struct {
		Code       string    `json:"code"`
		Source     string    `json:"source"`
		CapturedAt time.Time `json:"captured_at"`
		Title      string    `json:"title"`
		Format     string    `json:"format"`
	}

	BatchPageResponse struct {
		Items      []BatchItem `json:"items"`
		Page       int         `json:"page"`
		TotalPages int         `json:"total_pages"`
		OlStart    int         `json:"ol_start"`
		Count      int         `json:"count"`
	}
)
