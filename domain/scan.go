package domain

import (
	"errors"
)

// Provenance tags accepted on /submit. "wedge" is a keyboard-wedge scanner;
// the durable capture method folds it together with "scanner".
const (
	SourceCamera  = "camera"
	SourceWedge   = "wedge"
	SourceScanner = "scanner"
	SourceManual  = "manual"
)

// Symbology labels derived from code length. Display heuristic only; the
// authoritative symbology, when known, comes from the capture device.
const (
	FormatUPC     = "UPC"
	FormatEAN     = "EAN"
	FormatUnknown = "unknown"
)

// TitleSentinel replaces a blank or absent title on a batch item.
const TitleSentinel = "(no title)"

var (
	MessageScanAdded     = "added to batch"
	MessageScanDuplicate = "already in batch"

	MessageFailedSubmitScan  = "failed to record scan"
	MessageFailedPersistScan = "scan added to batch but not durably recorded"

	ErrEmptyBarcode      = errors.New("Enter a UPC/EAN code.")
	ErrBarcodeNotNumeric = errors.New("UPC/EAN must contain digits only.")
	ErrBarcodeLength     = errors.New("UPC/EAN length must be 8–14 digits.")
)

type (
	SubmitScanRequest struct {
		// No "required" tag: a blank barcode must flow through to validation
		// so the form gets its in-band "Enter a UPC/EAN code." message.
		Barcode string `json:"barcode" form:"barcode"`
		Source  string `json:"source" form:"source" validate:"omitempty,oneof=camera wedge scanner manual"`
		Title   string `json:"title" form:"title"`
	}

	// SubmitScanResponse reports the batch side and the durable side of one
	// submission independently: OK covers the batch, ScanID is nil when the
	// durable write failed or was skipped.
	SubmitScanResponse struct {
		OK        bool    `json:"ok"`
		Message   string  `json:"message"`
		Barcode   string  `json:"barcode,omitempty"`
		ScanID    *string `json:"scan_id"`
		Duplicate bool    `json:"duplicate,omitempty"`
	}
)
