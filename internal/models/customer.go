package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	gorm.Model
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	NamaPelanggan  string    `gorm:"not null"`
	NamaPerusahaan string
	NomorTelepon   string
	Email          string
	UserID         *uuid.UUID `gorm:"type:uuid"`
	User           *User      `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

func (customer *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	return
}
