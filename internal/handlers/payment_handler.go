package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafidhan/tripnesia/internal/helpers"
	"github.com/rafidhan/tripnesia/internal/middleware"
	"github.com/rafidhan/tripnesia/internal/services"
)

type PaymentDecisionRequest struct {
	Note string `json:"note" binding:"required"`
}

type PaymentCallbackRequest struct {
	Result string `json:"result"`
}

// IssueSnapToken returns the checkout token for a payment, reusing the
// stored one when present so retries never open a duplicate gateway
// transaction.
func IssueSnapToken(c *gin.Context) {
	paymentID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	snapClient := middleware.GetSnapClient(c)
	if snapClient == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment gateway client not found.")
		return
	}

	gateway := services.NewGatewayService(gormDB, snapClient, middleware.GetMidtransServerKey(c))
	token, err := gateway.IssueOrReuseToken(c.Request.Context(), paymentID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snap_token": token})
}

// PaymentCallback resolves the checkout widget result for the user. It
// never changes payment state; a closed popup stays pending.
func PaymentCallback(c *gin.Context) {
	var req PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	c.JSON(http.StatusOK, services.ResolveCallback(req.Result))
}

// MidtransNotification receives the server-to-server notification from the
// gateway. The signature is checked before anything else.
func MidtransNotification(c *gin.Context) {
	var notification services.MidtransNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid notification payload.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	gateway := services.NewGatewayService(gormDB, middleware.GetSnapClient(c), middleware.GetMidtransServerKey(c))
	outcome, err := gateway.HandleNotification(c.Request.Context(), notification)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

func VerifyPayment(c *gin.Context) {
	decidePayment(c, true)
}

func RejectPayment(c *gin.Context) {
	decidePayment(c, false)
}

func decidePayment(c *gin.Context, verify bool) {
	paymentID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID.")
		return
	}

	var req PaymentDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Note is required.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	// The admin identity is optional on purpose: verification must not
	// depend on a resolved identity session.
	var adminID *uuid.UUID
	if value, exists := c.Get("user_id"); exists {
		if id, ok := value.(uuid.UUID); ok {
			adminID = &id
		}
	}

	service := services.NewPaymentService(gormDB)
	if verify {
		err = service.Verify(c.Request.Context(), paymentID, adminID, req.Note)
	} else {
		err = service.Reject(c.Request.Context(), paymentID, adminID, req.Note)
	}
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	message := "Payment verified successfully."
	if !verify {
		message = "Payment rejected successfully."
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func DeletePayment(c *gin.Context) {
	paymentID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	if err := services.NewPaymentService(gormDB).Delete(c.Request.Context(), paymentID); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully."})
}

// ListPayments returns all payments, optionally filtered by status. After
// a verify/reject the dashboard should re-query without the filter, since
// the row leaves its old status tab.
func ListPayments(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	service := services.NewPaymentService(gormDB)

	status := c.Query("status")
	if status != "" {
		payments, err := service.ListByStatus(c.Request.Context(), status)
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving payments.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"payments": payments})
		return
	}

	payments, err := service.ListAll(c.Request.Context())
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving payments.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// CaptureInvoice renders the booking+payment snapshot and stores it as the
// payment's proof artifact. A failed upload is not an error; the URL is
// just absent.
func CaptureInvoice(c *gin.Context) {
	paymentID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	objectStorage := middleware.GetStorage(c)
	if objectStorage == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Object storage not found.")
		return
	}

	url, err := services.NewInvoiceService(gormDB, objectStorage).Capture(c.Request.Context(), paymentID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bukti_pembayaran_url": url})
}
