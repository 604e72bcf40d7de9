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

type CreateBookingRequest struct {
	NamaPelanggan        string    `json:"nama_pelanggan" binding:"required"`
	NamaPerusahaan       string    `json:"nama_perusahaan"`
	NomorTelepon         string    `json:"nomor_telepon" binding:"required"`
	Email                string    `json:"email" binding:"required,email"`
	PackageID            uuid.UUID `json:"package_id" binding:"required"`
	JumlahPax            int       `json:"jumlah_pax" binding:"required,min=1"`
	TanggalKeberangkatan time.Time `json:"tanggal_keberangkatan" binding:"required"`
	Catatan              string    `json:"catatan"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BatchDeleteBookingsRequest struct {
	BookingIDs []uuid.UUID `json:"booking_ids" binding:"required,min=1"`
}

func CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
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

	var userID *uuid.UUID
	if value, exists := c.Get("user_id"); exists {
		if id, ok := value.(uuid.UUID); ok {
			userID = &id
		}
	}

	booking, payment, err := services.NewBookingService(gormDB).Create(c.Request.Context(), services.CreateBookingInput{
		Customer: services.CustomerInput{
			NamaPelanggan:  req.NamaPelanggan,
			NamaPerusahaan: req.NamaPerusahaan,
			NomorTelepon:   req.NomorTelepon,
			Email:          req.Email,
			UserID:         userID,
		},
		PackageID:            req.PackageID,
		JumlahPax:            req.JumlahPax,
		TanggalKeberangkatan: req.TanggalKeberangkatan,
		Catatan:              req.Catatan,
	})
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully.",
		"booking": booking,
		"payment": payment,
	})
}

func GetBooking(c *gin.Context) {
	bookingID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	booking, err := services.NewBookingService(gormDB).Get(c.Request.Context(), bookingID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func ListBookings(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	bookings, err := services.NewBookingService(gormDB).List(c.Request.Context())
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func UpdateBookingStatus(c *gin.Context) {
	bookingID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	var req UpdateBookingStatusRequest
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

	if err := services.NewBookingService(gormDB).UpdateStatus(c.Request.Context(), bookingID, req.Status); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking status updated successfully."})
}

func DeleteBooking(c *gin.Context) {
	bookingID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	if err := services.NewBookingService(gormDB).Delete(c.Request.Context(), bookingID); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully."})
}

// BatchDeleteBookings deletes each booking independently and always
// responds 200 with per-item results; some may have failed.
func BatchDeleteBookings(c *gin.Context) {
	var req BatchDeleteBookingsRequest
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

	results := services.NewBookingService(gormDB).DeleteMany(c.Request.Context(), req.BookingIDs)

	c.JSON(http.StatusOK, gin.H{"results": results})
}
