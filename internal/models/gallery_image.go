package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GalleryImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	PackageID uuid.UUID `gorm:"type:uuid;not null;index"`
	ImageURL  string    `gorm:"not null"`
	Urutan    int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (image *GalleryImage) BeforeCreate(tx *gorm.DB) (err error) {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	return
}
