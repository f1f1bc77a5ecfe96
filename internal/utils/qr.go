package utils

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// GenerateProductQR génère un QR PNG pointant vers la page publique du
// produit (partage en boutique / réseaux sociaux).
func GenerateProductQR(productID string) ([]byte, error) {
	target := fmt.Sprintf("%s/product/%s", baseURL(), productID)
	return qrcode.Encode(target, qrcode.Medium, 256)
}
