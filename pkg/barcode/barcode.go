// Package barcode normalizes and classifies UPC/EAN codes entered through
// the scan form. It performs no checksum verification; checksum validity is
// a downstream concern with its own column on the capture row.
package barcode

import (
	"strings"
	"unicode"

	"cdx-web-scan/domain"
)

// Normalize strips all whitespace, embedded included. Keyboard-wedge
// scanners occasionally inject tabs or trailing newlines into the field.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(raw), "")
}

// Validate returns the normalized digit string or the first failing rule:
// empty input, non-digit characters, or a length outside 8–14.
func Validate(raw string) (string, error) {
	value := Normalize(raw)
	if value == "" {
		return "", domain.ErrEmptyBarcode
	}
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return "", domain.ErrBarcodeNotNumeric
		}
	}
	// Common lengths: EAN-8 (8), UPC-A (12), EAN-13 (13), ITF-14 (14).
	if len(value) < 8 || len(value) > 14 {
		return "", domain.ErrBarcodeLength
	}
	return value, nil
}

// Classify maps a validated code's length to a symbology label. Unvalidated
// input (wrong length, non-digits) classifies as unknown.
func Classify(code string) string {
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return domain.FormatUnknown
		}
	}
	switch len(code) {
	case 12:
		return domain.FormatUPC
	case 8, 13, 14:
		return domain.FormatEAN
	default:
		return domain.FormatUnknown
	}
}

// CaptureMethod maps a batch provenance tag to the durable capture-method
// enumeration. A keyboard wedge is a scanner as far as the database cares.
func CaptureMethod(source string) string {
	switch source {
	case domain.SourceWedge, domain.SourceScanner:
		return domain.SourceScanner
	case domain.SourceCamera:
		return domain.SourceCamera
	default:
		return domain.SourceManual
	}
}
