package qrcode

import (
	"encoding/base64"

	qr "github.com/skip2/go-qrcode"
)

const defaultSize = 256

// Render encodes a vendor-issued qrValue as a base64 PNG so POS terminals
// can display it without a second round trip.
func Render(value string) (string, error) {
	png, err := qr.Encode(value, qr.Medium, defaultSize)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
