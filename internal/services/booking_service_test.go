package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafidhan/tripnesia/internal/helpers"
	"github.com/rafidhan/tripnesia/internal/models"
	"github.com/rafidhan/tripnesia/internal/services"
)

func bookingInput(packageID uuid.UUID, pax int) services.CreateBookingInput {
	return services.CreateBookingInput{
		Customer: services.CustomerInput{
			NamaPelanggan: "Budi Santoso",
			NomorTelepon:  "081234567890",
			Email:         "budi@example.com",
		},
		PackageID:            packageID,
		JumlahPax:            pax,
		TanggalKeberangkatan: time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC),
		Catatan:              "rombongan kantor",
	}
}

func TestBookingCreateFreezesTotal(t *testing.T) {
	db := openTestDB(t)
	pkg := seedPackage(t, db, 1_000_000, 2)
	svc := services.NewBookingService(db)
	ctx := context.Background()

	booking, payment, err := svc.Create(ctx, bookingInput(pkg.ID, 50))
	require.NoError(t, err)

	assert.Equal(t, 50_000_000, booking.TotalBiaya)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Equal(t, booking.TotalBiaya, payment.JumlahPembayaran)
	assert.NotEmpty(t, booking.KodeBooking)

	// A later price change must not touch the stored total.
	require.NoError(t, db.Model(pkg).Update("harga", 2_000_000).Error)

	var stored models.Booking
	require.NoError(t, db.First(&stored, "id = ?", booking.ID).Error)
	assert.Equal(t, 50_000_000, stored.TotalBiaya)
}

func TestBookingCreateRejectsPaxBelowMinimum(t *testing.T) {
	db := openTestDB(t)
	pkg := seedPackage(t, db, 500_000, 10)
	svc := services.NewBookingService(db)

	_, _, err := svc.Create(context.Background(), bookingInput(pkg.ID, 5))

	var validationErr *helpers.ValidationError
	require.ErrorAs(t, err, &validationErr)

	// The transaction must leave nothing behind.
	var customerCount, bookingCount, paymentCount int64
	db.Model(&models.Customer{}).Count(&customerCount)
	db.Model(&models.Booking{}).Count(&bookingCount)
	db.Model(&models.Payment{}).Count(&paymentCount)
	assert.Zero(t, customerCount)
	assert.Zero(t, bookingCount)
	assert.Zero(t, paymentCount)
}

func TestBookingCreateRequiresCustomerName(t *testing.T) {
	db := openTestDB(t)
	pkg := seedPackage(t, db, 500_000, 1)
	svc := services.NewBookingService(db)

	in := bookingInput(pkg.ID, 2)
	in.Customer.NamaPelanggan = "   "
	_, _, err := svc.Create(context.Background(), in)

	var validationErr *helpers.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestBookingCreateUnknownPackage(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewBookingService(db)

	_, _, err := svc.Create(context.Background(), bookingInput(uuid.New(), 2))

	var notFoundErr *helpers.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestBookingUpdateStatus(t *testing.T) {
	db := openTestDB(t)
	pkg := seedPackage(t, db, 750_000, 1)
	svc := services.NewBookingService(db)
	ctx := context.Background()

	booking, _, err := svc.Create(ctx, bookingInput(pkg.ID, 3))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, booking.ID, models.BookingStatusCompleted))

	// Any status may follow any other; completed back to pending is legal.
	require.NoError(t, svc.UpdateStatus(ctx, booking.ID, models.BookingStatusPending))

	var stored models.Booking
	require.NoError(t, db.First(&stored, "id = ?", booking.ID).Error)
	assert.Equal(t, models.BookingStatusPending, stored.Status)

	var validationErr *helpers.ValidationError
	assert.ErrorAs(t, svc.UpdateStatus(ctx, booking.ID, "archived"), &validationErr)

	var notFoundErr *helpers.NotFoundError
	assert.ErrorAs(t, svc.UpdateStatus(ctx, uuid.New(), models.BookingStatusConfirmed), &notFoundErr)
}

func TestBookingDeleteRemovesPaymentsAndKeepsCustomer(t *testing.T) {
	db := openTestDB(t)
	pkg := seedPackage(t, db, 500_000, 1)
	svc := services.NewBookingService(db)
	ctx := context.Background()

	booking, _, err := svc.Create(ctx, bookingInput(pkg.ID, 2))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, booking.ID))

	var bookingCount, paymentCount, customerCount int64
	db.Unscoped().Model(&models.Booking{}).Count(&bookingCount)
	db.Unscoped().Model(&models.Payment{}).Count(&paymentCount)
	db.Model(&models.Customer{}).Count(&customerCount)
	assert.Zero(t, bookingCount)
	assert.Zero(t, paymentCount)
	assert.Equal(t, int64(1), customerCount, "customers are never garbage-collected")
}

func TestBookingDeleteManyReportsPerItem(t *testing.T) {
	db := openTestDB(t)
	pkg := seedPackage(t, db, 500_000, 1)
	svc := services.NewBookingService(db)
	ctx := context.Background()

	booking, _, err := svc.Create(ctx, bookingInput(pkg.ID, 2))
	require.NoError(t, err)

	missing := uuid.New()
	results := svc.DeleteMany(ctx, []uuid.UUID{booking.ID, missing})

	require.Len(t, results, 2)
	assert.True(t, results[0].Deleted)
	assert.Empty(t, results[0].Error)
	assert.False(t, results[1].Deleted)
	assert.NotEmpty(t, results[1].Error)
}
