package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafidhan/tripnesia/internal/helpers"
	"github.com/rafidhan/tripnesia/internal/models"
)

type CustomerInput struct {
	NamaPelanggan  string
	NamaPerusahaan string
	NomorTelepon   string
	Email          string
	UserID         *uuid.UUID
}

type CreateBookingInput struct {
	Customer             CustomerInput
	PackageID            uuid.UUID
	JumlahPax            int
	TanggalKeberangkatan time.Time
	Catatan              string
}

// BookingDeleteResult reports the outcome of one item in a batch delete.
// Batch deletes are independent per booking; partial success is expected.
type BookingDeleteResult struct {
	BookingID uuid.UUID `json:"booking_id"`
	Deleted   bool      `json:"deleted"`
	Error     string    `json:"error,omitempty"`
}

type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

// Create persists the customer, the booking and its initial payment as one
// transaction. The total is frozen at pax × harga as of now; later price
// changes do not touch existing bookings.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, *models.Payment, error) {
	if strings.TrimSpace(in.Customer.NamaPelanggan) == "" {
		return nil, nil, helpers.NewValidationError("nama pelanggan is required")
	}

	var pkg models.TourPackage
	if err := s.db.WithContext(ctx).First(&pkg, "id = ?", in.PackageID).Error; err != nil {
		return nil, nil, translateDBError(err, "package")
	}

	if in.JumlahPax < pkg.MinimalPenumpang {
		return nil, nil, helpers.NewValidationError(
			"jumlah pax %d is below the package minimum of %d", in.JumlahPax, pkg.MinimalPenumpang)
	}

	totalBiaya := in.JumlahPax * pkg.Harga

	customer := models.Customer{
		NamaPelanggan:  in.Customer.NamaPelanggan,
		NamaPerusahaan: in.Customer.NamaPerusahaan,
		NomorTelepon:   in.Customer.NomorTelepon,
		Email:          in.Customer.Email,
		UserID:         in.Customer.UserID,
	}
	booking := models.Booking{
		KodeBooking:          helpers.GenerateBookingCode(time.Now()),
		PackageID:            pkg.ID,
		JumlahPax:            in.JumlahPax,
		TanggalKeberangkatan: in.TanggalKeberangkatan,
		Catatan:              in.Catatan,
		TotalBiaya:           totalBiaya,
		Status:               models.BookingStatusPending,
	}
	payment := models.Payment{
		JumlahPembayaran: totalBiaya,
		Status:           models.PaymentStatusPending,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}
		booking.CustomerID = customer.ID
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		payment.BookingID = booking.ID
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, nil, translateDBError(err, "booking")
	}

	booking.Customer = customer
	booking.Package = pkg
	return &booking, &payment, nil
}

// UpdateStatus moves a booking to any of the four statuses. There is no
// transition table; completed → pending is accepted.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status string) error {
	if !models.IsValidBookingStatus(status) {
		return helpers.NewValidationError("unknown booking status %q", status)
	}

	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, "id = ?", bookingID).Error; err != nil {
		return translateDBError(err, "booking")
	}

	return s.db.WithContext(ctx).Model(&booking).Update("status", status).Error
}

// DeletePaymentsForBooking removes every payment row of a booking. Payments
// must go before the booking itself; the foreign key has no cascade.
func (s *BookingService) DeletePaymentsForBooking(ctx context.Context, bookingID uuid.UUID) error {
	return s.db.WithContext(ctx).Unscoped().
		Where("booking_id = ?", bookingID).
		Delete(&models.Payment{}).Error
}

// Delete removes a booking and its payments in one transaction, payments
// first. The customer row is left in place; customers are never
// garbage-collected.
func (s *BookingService) Delete(ctx context.Context, bookingID uuid.UUID) error {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, "id = ?", bookingID).Error; err != nil {
		return translateDBError(err, "booking")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("booking_id = ?", booking.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&booking).Error
	})
	return translateDBError(err, "booking")
}

// DeleteMany deletes each booking independently and reports per-item
// results. There is no cross-booking transaction.
func (s *BookingService) DeleteMany(ctx context.Context, bookingIDs []uuid.UUID) []BookingDeleteResult {
	results := make([]BookingDeleteResult, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		result := BookingDeleteResult{BookingID: id, Deleted: true}
		if err := s.Delete(ctx, id); err != nil {
			result.Deleted = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

func (s *BookingService) Get(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Package").
		Preload("Payments").
		First(&booking, "id = ?", bookingID).Error
	if err != nil {
		return nil, translateDBError(err, "booking")
	}
	return &booking, nil
}

func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Package").
		Preload("Payments").
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}
