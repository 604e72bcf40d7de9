package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Facility struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	PackageID     uuid.UUID `gorm:"type:uuid;not null;index"`
	NamaFasilitas string    `gorm:"not null"`
	Icon          string
	Urutan        int `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (facility *Facility) BeforeCreate(tx *gorm.DB) (err error) {
	if facility.ID == uuid.Nil {
		facility.ID = uuid.New()
	}
	return
}
