package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ScheduleStatusAktif      = "aktif"
	ScheduleStatusTidakAktif = "tidak-aktif"
	ScheduleStatusSelesai    = "selesai"
)

type Schedule struct {
	gorm.Model
	ID                   uuid.UUID   `gorm:"type:uuid;primary_key"`
	PackageID            uuid.UUID   `gorm:"type:uuid;not null;index"`
	Package              TourPackage `gorm:"foreignKey:PackageID"`
	KodeJadwal           string      `gorm:"unique;not null"`
	TanggalKeberangkatan time.Time   `gorm:"not null"`
	WaktuKeberangkatan   string
	Status               string `gorm:"not null;default:'aktif'"`
	NamaInstansi         string
	Catatan              string
}

func (schedule *Schedule) BeforeCreate(tx *gorm.DB) (err error) {
	if schedule.ID == uuid.Nil {
		schedule.ID = uuid.New()
	}
	return
}
