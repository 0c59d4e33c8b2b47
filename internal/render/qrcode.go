package render

import (
	"errors"
	"image"

	"github.com/skip2/go-qrcode"
)

const DefaultQRCodeSizePx = 256

var errEmptyQRPayload = errors.New("qr payload is empty")

// GenerateQRCodeImage returns a QR code image for the given payload.
// If payload is empty, it returns (nil, nil).
func GenerateQRCodeImage(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = DefaultQRCodeSizePx
	}

	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	return qrCode.Image(sizePx), nil
}

// QRCodePNG encodes payload as a PNG QR code.
func QRCodePNG(payload string, sizePx int) ([]byte, error) {
	if payload == "" {
		return nil, errEmptyQRPayload
	}
	if sizePx <= 0 {
		sizePx = DefaultQRCodeSizePx
	}
	return qrcode.Encode(payload, qrcode.Medium, sizePx)
}
