package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafidhan/tripnesia/internal/helpers"
	"github.com/rafidhan/tripnesia/internal/services"
)

type ScheduleRequest struct {
	PackageID            uuid.UUID `json:"package_id" binding:"required"`
	TanggalKeberangkatan time.Time `json:"tanggal_keberangkatan" binding:"required"`
	WaktuKeberangkatan   string    `json:"waktu_keberangkatan"`
	Status               string    `json:"status"`
	NamaInstansi         string    `json:"nama_instansi"`
	Catatan              string    `json:"catatan"`
}

func CreateSchedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	schedule, err := services.NewScheduleService(gormDB).Create(c.Request.Context(), services.ScheduleInput{
		PackageID:            req.PackageID,
		TanggalKeberangkatan: req.TanggalKeberangkatan,
		WaktuKeberangkatan:   req.WaktuKeberangkatan,
		Status:               req.Status,
		NamaInstansi:         req.NamaInstansi,
		Catatan:              req.Catatan,
	})
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Schedule created successfully.",
		"schedule": schedule,
	})
}

func UpdateSchedule(c *gin.Context) {
	scheduleID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid schedule ID.")
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	schedule, err := services.NewScheduleService(gormDB).Update(c.Request.Context(), scheduleID, services.ScheduleInput{
		PackageID:            req.PackageID,
		TanggalKeberangkatan: req.TanggalKeberangkatan,
		WaktuKeberangkatan:   req.WaktuKeberangkatan,
		Status:               req.Status,
		NamaInstansi:         req.NamaInstansi,
		Catatan:              req.Catatan,
	})
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Schedule updated successfully.",
		"schedule": schedule,
	})
}

func DeleteSchedule(c *gin.Context) {
	scheduleID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid schedule ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	if err := services.NewScheduleService(gormDB).Delete(c.Request.Context(), scheduleID); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully."})
}

func GetSchedule(c *gin.Context) {
	scheduleID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid schedule ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	schedule, err := services.NewScheduleService(gormDB).Get(c.Request.Context(), scheduleID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

func ListSchedules(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	schedules, err := services.NewScheduleService(gormDB).List(c.Request.Context())
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving schedules.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}
