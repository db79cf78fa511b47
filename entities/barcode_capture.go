package entities

// BarcodeCapture is one captured barcode value. A scan may hold several;
// exactly one is flagged primary for single-scan flows.
type BarcodeCapture struct {
	ID     string `json:"id" gorm:"type:varchar(36);primaryKey"`
	ScanID string `json:"scan_id" gorm:"type:varchar(36);not null;index;uniqueIndex:uq_barcode_per_scan_raw"`

	// Symbology stays free-form (EAN_13, UPC_A, ...) so device-reported
	// values survive unchanged.
	Symbology string `json:"symbology" gorm:"type:varchar(32);not null;index;uniqueIndex:uq_barcode_per_scan_raw"`
	ValueRaw  string `json:"value_raw" gorm:"type:varchar(64);not null;check:length(value_raw) > 0;uniqueIndex:uq_barcode_per_scan_raw"`

	// App-derived normalization (whitespace stripped, digit-checked).
	ValueNormalized string `json:"value_normalized,omitempty" gorm:"type:varchar(64);index"`

	// Reserved for a downstream checksum pass; the validator never fills it.
	ChecksumValid *bool `json:"checksum_valid,omitempty"`

	IsPrimary     bool   `json:"is_primary" gorm:"not null;index"`
	CaptureMethod string `json:"capture_method" gorm:"type:varchar(16);not null"`

	// Decoder metadata (confidence, library/version, camera params) as JSON.
	DecodeMeta string `json:"decode_meta,omitempty" gorm:"type:text"`

	Timestamp
}

func (BarcodeCapture) TableName() string {
	return "barcode_capture"
}
