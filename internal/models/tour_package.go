package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PackageTypePremium  = "Premium"
	PackageTypeEkonomis = "Ekonomis"
)

type TourPackage struct {
	gorm.Model
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	NamaPaket        string    `gorm:"not null"`
	Lokasi           string    `gorm:"not null"`
	Durasi           string
	TipePaket        string `gorm:"not null"`
	Harga            int    `gorm:"not null"`
	MinimalPenumpang int    `gorm:"not null;default:1"`
	NamaDaerah       string
	GambarURL        string
	PosterURL        string
	BrosurURL        string
	IsActive         bool           `gorm:"not null;default:true"`
	Destinations     []Destination  `gorm:"foreignKey:PackageID"`
	Facilities       []Facility     `gorm:"foreignKey:PackageID"`
	GalleryImages    []GalleryImage `gorm:"foreignKey:PackageID"`
}

func (pkg *TourPackage) BeforeCreate(tx *gorm.DB) (err error) {
	if pkg.ID == uuid.Nil {
		pkg.ID = uuid.New()
	}
	return
}
