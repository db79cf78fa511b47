package domain

import (
	"errors"
	"time"
)

// IntakeSourceTag identifies this application in outbound intake payloads.
const IntakeSourceTag = "cdx-web-scan"

// Intake call statuses persisted on the audit trail.
const (
	IntakeStatusPending  = "pending"
	IntakeStatusSent     = "sent"
	IntakeStatusSuccess  = "success"
	IntakeStatusFailed   = "failed"
	IntakeStatusRetrying = "retrying"
)

var (
	MessageSuccessIntakeSubmit = "batch submitted to intake"
	MessageFailedIntakeSubmit  = "failed to submit batch to intake"

	ErrEmptyBatch          = errors.New("batch is empty, nothing to submit")
	ErrIntakeNotConfigured = errors.New("intake API URL is not configured")
)

type (
	// IntakePayload is the wire contract with the external intake API.
	IntakePayload struct {
		Source      string      `json:"source"`
		SubmittedAt time.Time   `json:"submitted_at"`
		Barcodes    []string    `json:"barcodes"`
		Items       []BatchItem `json:"items"`
	}

	// IntakeResult summarizes one submission attempt. Status is the HTTP
	// status code, or 0 for a transport-level failure (Body then carries the
	// error text).
	IntakeResult struct {
		OK      bool   `json:"ok"`
		Status  int    `json:"status"`
		Body    string `json:"body,omitempty"`
		Message string `json:"message"`
		Count   int    `json:"count"`
	}
)
