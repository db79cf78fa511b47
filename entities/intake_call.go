package entities

// IntakeCall is the audit trail of calls made to the external intake API:
// what was sent, what came back, and whether retries were needed.
type IntakeCall struct {
	ID     string `json:"id" gorm:"type:varchar(36);primaryKey"`
	ScanID string `json:"scan_id" gorm:"type:varchar(36);not null;index;uniqueIndex:uq_intake_scan_idempotency"`

	// Generated client-side, shared by every row of one submission attempt.
	IdempotencyKey string `json:"idempotency_key" gorm:"type:varchar(256);not null;uniqueIndex:uq_intake_scan_idempotency"`

	Attempt int    `json:"attempt" gorm:"not null;default:1;index:ix_intake_scan_attempt"`
	Status  string `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`

	APIBaseURL string `json:"api_base_url,omitempty" gorm:"type:varchar(512)"`
	APIPath    string `json:"api_path,omitempty" gorm:"type:varchar(256)"`

	// Trimmed JSON summaries; response bodies are truncated upstream.
	RequestBody  string `json:"request_body,omitempty" gorm:"type:text"`
	ResponseBody string `json:"response_body,omitempty" gorm:"type:text"`

	HTTPStatus int    `json:"http_status,omitempty" gorm:"index"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	Error      string `json:"error,omitempty" gorm:"type:text"`

	CorrelationID string `json:"correlation_id,omitempty" gorm:"type:varchar(256);index"`

	Scan *Scan `gorm:"foreignKey:ScanID;constraint:OnDelete:CASCADE"`

	Timestamp
}

func (IntakeCall) TableName() string {
	return "intake_call"
}
