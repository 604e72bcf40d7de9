package helpers

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// VerifyMidtransSignature checks the signature_key of an HTTP notification
// from Midtrans: sha512(order_id + status_code + gross_amount + serverKey).
func VerifyMidtransSignature(orderID, statusCode, grossAmount, serverKey, signatureKey string) bool {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	expected := hex.EncodeToString(sum[:])
	return hmac.Equal([]byte(expected), []byte(signatureKey))
}
