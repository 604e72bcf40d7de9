package helpers_test

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rafidhan/tripnesia/internal/helpers"
)

func TestGenerateBookingCode(t *testing.T) {
	at := time.Date(2025, 8, 17, 14, 30, 0, 0, time.UTC)

	code := helpers.GenerateBookingCode(at)

	assert.Regexp(t, `^BK20250817[0-9A-F]{4}$`, code)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[helpers.GenerateBookingCode(at)] = true
	}
	assert.Greater(t, len(seen), 90, "suffixes should rarely repeat within a day")
}

func TestGenerateScheduleCode(t *testing.T) {
	at := time.Date(2025, 8, 17, 14, 30, 0, 0, time.UTC)

	code := helpers.GenerateScheduleCode(at)

	assert.Regexp(t, `^SCH20250817\d{3}$`, code)
	assert.Len(t, code, 14)
}

func TestVerifyMidtransSignature(t *testing.T) {
	// Signature computed as sha512(order_id + status_code + gross_amount + key).
	orderID := "BK20250817A3F1-1a2b3c4d"
	serverKey := "SB-Mid-server-test"

	digest := sha512.Sum512([]byte(orderID + "200" + "2000000.00" + serverKey))
	sum := hex.EncodeToString(digest[:])

	assert.True(t, helpers.VerifyMidtransSignature(orderID, "200", "2000000.00", serverKey, sum))
	assert.False(t, helpers.VerifyMidtransSignature(orderID, "200", "2000000.00", serverKey, "tampered"))
	assert.False(t, helpers.VerifyMidtransSignature(orderID, "201", "2000000.00", serverKey, sum))
}
