package utils

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/ean"
)

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// EncodeBarcode renders code as a PNG. EAN-8/EAN-13 is used for numeric codes of that
// length with a valid check digit, Code128 for everything else.
func EncodeBarcode(code string, width, height int) ([]byte, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("empty barcode")
	}

	var bc barcode.Barcode
	var err error
	if isDigits(code) && (len(code) == 8 || len(code) == 13) {
		bc, err = ean.Encode(code)
	}
	if bc == nil || err != nil {
		bc, err = code128.Encode(code)
		if err != nil {
			return nil, fmt.Errorf("failed to encode barcode %q: %w", code, err)
		}
	}

	if minWidth := bc.Bounds().Dx(); width < minWidth {
		width = minWidth
	}
	scaled, err := barcode.Scale(bc, width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to scale barcode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("failed to encode barcode png: %w", err)
	}
	return buf.Bytes(), nil
}
