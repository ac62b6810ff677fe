package report

import (
	"github.com/skip2/go-qrcode"
)

// CodeEncoder turns a payload into a PNG image
type CodeEncoder interface {
	Encode(payload string) ([]byte, error)
}

// QREncoder encodes payloads as QR codes with medium error correction.
// The image keeps the standard four module quiet zone.
type QREncoder struct {
	level      qrcode.RecoveryLevel
	moduleSize int
}

// NewQREncoder creates an encoder drawing 4px modules
func NewQREncoder() *QREncoder {
	return &QREncoder{level: qrcode.Medium, moduleSize: 4}
}

// Encode returns the PNG bytes of the QR code for payload
func (e *QREncoder) Encode(payload string) ([]byte, error) {
	code, err := qrcode.New(payload, e.level)
	if err != nil {
		return nil, err
	}
	// a negative size is the width of one module in pixels
	return code.PNG(-e.moduleSize)
}
