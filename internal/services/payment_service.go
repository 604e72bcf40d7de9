package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafidhan/tripnesia/internal/helpers"
	"github.com/rafidhan/tripnesia/internal/models"
)

// PaymentService owns the verification side of a payment's lifecycle:
// pending → verified | rejected, always with a human note. Verification is
// an administrator action and never follows automatically from a gateway
// settlement.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// Verify marks a payment verified. adminID may be nil: verification is
// allowed without a resolved administrator identity, and verified_by is
// nulled anyway when the admin account is later removed. The parent
// booking's status is not touched.
func (s *PaymentService) Verify(ctx context.Context, paymentID uuid.UUID, adminID *uuid.UUID, note string) error {
	return s.applyDecision(ctx, paymentID, adminID, note, models.PaymentStatusVerified)
}

// Reject marks a payment rejected, with the same note requirement.
func (s *PaymentService) Reject(ctx context.Context, paymentID uuid.UUID, adminID *uuid.UUID, note string) error {
	return s.applyDecision(ctx, paymentID, adminID, note, models.PaymentStatusRejected)
}

func (s *PaymentService) applyDecision(ctx context.Context, paymentID uuid.UUID, adminID *uuid.UUID, note, status string) error {
	if strings.TrimSpace(note) == "" {
		return helpers.NewValidationError("note required")
	}

	var payment models.Payment
	if err := s.db.WithContext(ctx).First(&payment, "id = ?", paymentID).Error; err != nil {
		return translateDBError(err, "payment")
	}

	// No terminal-state guard: a second decision overwrites the first,
	// last write wins. Concurrent admins race on the same row.
	return s.db.WithContext(ctx).Model(&payment).Updates(map[string]interface{}{
		"status":            status,
		"verified_by":       adminID,
		"verification_note": note,
	}).Error
}

// Delete removes a payment row for good. Callers deleting the parent
// booking must call this (or BookingService.Delete) first.
func (s *PaymentService) Delete(ctx context.Context, paymentID uuid.UUID) error {
	result := s.db.WithContext(ctx).Unscoped().Where("id = ?", paymentID).Delete(&models.Payment{})
	if result.Error != nil {
		return translateDBError(result.Error, "payment")
	}
	if result.RowsAffected == 0 {
		return &helpers.NotFoundError{Resource: "payment"}
	}
	return nil
}

func (s *PaymentService) Get(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).
		Preload("Booking.Customer").
		Preload("Booking.Package").
		First(&payment, "id = ?", paymentID).Error
	if err != nil {
		return nil, translateDBError(err, "payment")
	}
	return &payment, nil
}

// ListAll is the view admins should re-query after a decision: a status
// change removes the row from any status-filtered tab.
func (s *PaymentService) ListAll(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Preload("Booking.Customer").
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (s *PaymentService) ListByStatus(ctx context.Context, status string) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Preload("Booking.Customer").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}
