package entities

import (
	"time"
)

// ScanSession groups scans from one sitting. The web session id doubles as
// the primary key so durable rows trace back to their browser session.
type ScanSession struct {
	ID      string     `json:"id" gorm:"type:varchar(64);primaryKey"`
	EndedAt *time.Time `json:"ended_at,omitempty"`

	Operator   string `json:"operator,omitempty" gorm:"type:varchar(128)"`
	Source     string `json:"source,omitempty" gorm:"type:varchar(16)"`
	DeviceName string `json:"device_name,omitempty" gorm:"type:varchar(128)"`
	Host       string `json:"host,omitempty" gorm:"type:varchar(256)"`
	AppVersion string `json:"app_version,omitempty" gorm:"type:varchar(64)"`
	Notes      string `json:"notes,omitempty" gorm:"type:text"`

	Scans []*Scan `gorm:"foreignKey:SessionID;constraint:OnDelete:SET NULL"`

	Timestamp
}

func (ScanSession) TableName() string {
	return "scan_session"
}

// Scan is the canonical scan event: one user action that captured one or
// more barcodes.
type Scan struct {
	ID        string  `json:"id" gorm:"type:varchar(36);primaryKey"`
	SessionID *string `json:"session_id,omitempty" gorm:"type:varchar(64);index"`

	Source   string `json:"source" gorm:"type:varchar(16);not null;index"`
	Operator string `json:"operator,omitempty" gorm:"type:varchar(128);index"`

	// Raw form/scanner input, kept for replay and troubleshooting.
	RawInput string `json:"raw_input,omitempty" gorm:"type:text"`
	Notes    string `json:"notes,omitempty" gorm:"type:text"`

	PrimaryBarcodeID *string `json:"primary_barcode_id,omitempty" gorm:"type:varchar(36);index"`

	Session  *ScanSession      `gorm:"foreignKey:SessionID"`
	Barcodes []*BarcodeCapture `gorm:"foreignKey:ScanID;constraint:OnDelete:CASCADE"`

	Timestamp
}

func (Scan) TableName() string {
	return "scan"
}
