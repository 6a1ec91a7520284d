package escrow

import (
	qrcode "github.com/skip2/go-qrcode"
)

// PayloadQR renders a payout payload as a PNG QR code so the solver can
// sweep it straight into a wallet.
func PayloadQR(payload string) ([]byte, error) {
	return qrcode.Encode(payload, qrcode.Medium, 256)
}
