package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// IsValidBookingStatus reports whether s is one of the four booking
// statuses. Any valid status may follow any other; there is no
// transition table.
func IsValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

type Booking struct {
	gorm.Model
	ID                   uuid.UUID   `gorm:"type:uuid;primary_key"`
	KodeBooking          string      `gorm:"unique;not null"`
	CustomerID           uuid.UUID   `gorm:"type:uuid;not null"`
	Customer             Customer    `gorm:"foreignKey:CustomerID"`
	PackageID            uuid.UUID   `gorm:"type:uuid;not null;index"`
	Package              TourPackage `gorm:"foreignKey:PackageID"`
	JumlahPax            int         `gorm:"not null"`
	TanggalKeberangkatan time.Time   `gorm:"not null"`
	Catatan              string
	TotalBiaya           int       `gorm:"not null"`
	Status               string    `gorm:"not null;default:'pending'"`
	Payments             []Payment `gorm:"foreignKey:BookingID"`
}

func (booking *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return
}
