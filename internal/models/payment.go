package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusVerified = "verified"
	PaymentStatusRejected = "rejected"
)

type Payment struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	BookingID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Booking            *Booking  `gorm:"foreignKey:BookingID"`
	JumlahPembayaran   int       `gorm:"not null"`
	Status             string    `gorm:"not null;default:'pending'"`
	SnapToken          string
	MidtransOrderID    string
	BuktiPembayaranURL string
	VerifiedBy         *uuid.UUID `gorm:"type:uuid"`
	Verifier           *User      `gorm:"foreignKey:VerifiedBy;constraint:OnDelete:SET NULL"`
	VerificationNote   string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (payment *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	return
}
