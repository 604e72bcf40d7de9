package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafidhan/tripnesia/internal/helpers"
	"github.com/rafidhan/tripnesia/internal/models"
)

type ScheduleInput struct {
	PackageID            uuid.UUID
	TanggalKeberangkatan time.Time
	WaktuKeberangkatan   string
	Status               string
	NamaInstansi         string
	Catatan              string
}

type ScheduleService struct {
	db *gorm.DB
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{db: db}
}

func validScheduleStatus(s string) bool {
	switch s {
	case models.ScheduleStatusAktif, models.ScheduleStatusTidakAktif, models.ScheduleStatusSelesai:
		return true
	}
	return false
}

// Create generates the schedule code and inserts the row. The code is not
// checked for collisions up front; the unique index catches the 1-in-1000
// daily clash and surfaces it as a ConflictError.
func (s *ScheduleService) Create(ctx context.Context, in ScheduleInput) (*models.Schedule, error) {
	if in.Status == "" {
		in.Status = models.ScheduleStatusAktif
	}
	if !validScheduleStatus(in.Status) {
		return nil, helpers.NewValidationError("unknown schedule status %q", in.Status)
	}

	var pkg models.TourPackage
	if err := s.db.WithContext(ctx).First(&pkg, "id = ?", in.PackageID).Error; err != nil {
		return nil, translateDBError(err, "package")
	}

	schedule := models.Schedule{
		PackageID:            pkg.ID,
		KodeJadwal:           helpers.GenerateScheduleCode(time.Now()),
		TanggalKeberangkatan: in.TanggalKeberangkatan,
		WaktuKeberangkatan:   in.WaktuKeberangkatan,
		Status:               in.Status,
		NamaInstansi:         in.NamaInstansi,
		Catatan:              in.Catatan,
	}
	if err := s.db.WithContext(ctx).Create(&schedule).Error; err != nil {
		return nil, translateDBError(err, "schedule")
	}

	schedule.Package = pkg
	return &schedule, nil
}

func (s *ScheduleService) Update(ctx context.Context, scheduleID uuid.UUID, in ScheduleInput) (*models.Schedule, error) {
	if in.Status != "" && !validScheduleStatus(in.Status) {
		return nil, helpers.NewValidationError("unknown schedule status %q", in.Status)
	}

	var schedule models.Schedule
	if err := s.db.WithContext(ctx).First(&schedule, "id = ?", scheduleID).Error; err != nil {
		return nil, translateDBError(err, "schedule")
	}

	if in.PackageID != uuid.Nil && in.PackageID != schedule.PackageID {
		var pkg models.TourPackage
		if err := s.db.WithContext(ctx).First(&pkg, "id = ?", in.PackageID).Error; err != nil {
			return nil, translateDBError(err, "package")
		}
		schedule.PackageID = pkg.ID
	}

	if !in.TanggalKeberangkatan.IsZero() {
		schedule.TanggalKeberangkatan = in.TanggalKeberangkatan
	}
	if in.WaktuKeberangkatan != "" {
		schedule.WaktuKeberangkatan = in.WaktuKeberangkatan
	}
	if in.Status != "" {
		schedule.Status = in.Status
	}
	schedule.NamaInstansi = in.NamaInstansi
	schedule.Catatan = in.Catatan

	if err := s.db.WithContext(ctx).Save(&schedule).Error; err != nil {
		return nil, translateDBError(err, "schedule")
	}
	return &schedule, nil
}

func (s *ScheduleService) Delete(ctx context.Context, scheduleID uuid.UUID) error {
	result := s.db.WithContext(ctx).Unscoped().Where("id = ?", scheduleID).Delete(&models.Schedule{})
	if result.Error != nil {
		return translateDBError(result.Error, "schedule")
	}
	if result.RowsAffected == 0 {
		return &helpers.NotFoundError{Resource: "schedule"}
	}
	return nil
}

func (s *ScheduleService) Get(ctx context.Context, scheduleID uuid.UUID) (*models.Schedule, error) {
	var schedule models.Schedule
	err := s.db.WithContext(ctx).Preload("Package").First(&schedule, "id = ?", scheduleID).Error
	if err != nil {
		return nil, translateDBError(err, "schedule")
	}
	return &schedule, nil
}

func (s *ScheduleService) List(ctx context.Context) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := s.db.WithContext(ctx).
		Preload("Package").
		Order("tanggal_keberangkatan ASC").
		Find(&schedules).Error
	return schedules, err
}
