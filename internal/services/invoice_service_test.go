package services_test

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafidhan/tripnesia/internal/helpers"
	"github.com/rafidhan/tripnesia/internal/models"
	"github.com/rafidhan/tripnesia/internal/services"
)

func TestInvoiceCaptureStoresSnapshot(t *testing.T) {
	db := openTestDB(t)
	store := newFakeStorage()
	svc := services.NewInvoiceService(db, store)
	_, payment := seedBookingWithPayment(t, db)

	url, err := svc.Capture(context.Background(), payment.ID)
	require.NoError(t, err)
	require.NotEmpty(t, url)

	var stored models.Payment
	require.NoError(t, db.First(&stored, "id = ?", payment.ID).Error)
	assert.Equal(t, url, stored.BuktiPembayaranURL)

	data, ok := store.objects[url]
	require.True(t, ok)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err, "the stored artifact must be a decodable PNG")
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 420, img.Bounds().Dy())
}

func TestInvoiceCaptureUploadFailureIsNonFatal(t *testing.T) {
	db := openTestDB(t)
	store := newFakeStorage()
	store.failFirst = 1
	svc := services.NewInvoiceService(db, store)
	_, payment := seedBookingWithPayment(t, db)

	url, err := svc.Capture(context.Background(), payment.ID)
	require.NoError(t, err, "a storage outage must not fail the capture")
	assert.Empty(t, url)

	var stored models.Payment
	require.NoError(t, db.First(&stored, "id = ?", payment.ID).Error)
	assert.Empty(t, stored.BuktiPembayaranURL, "the payment stays untouched on upload failure")
}

func TestInvoiceCaptureUnknownPayment(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewInvoiceService(db, newFakeStorage())

	_, err := svc.Capture(context.Background(), uuid.New())

	var notFoundErr *helpers.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}
