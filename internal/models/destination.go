package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Destination struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	PackageID     uuid.UUID `gorm:"type:uuid;not null;index"`
	NamaDestinasi string    `gorm:"not null"`
	Urutan        int       `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (destination *Destination) BeforeCreate(tx *gorm.DB) (err error) {
	if destination.ID == uuid.Nil {
		destination.ID = uuid.New()
	}
	return
}
