package services

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	"github.com/rafidhan/tripnesia/internal/helpers"
	"github.com/rafidhan/tripnesia/internal/models"
)

// SnapTokenCreator is the slice of the Midtrans Snap client the adapter
// needs. snap.Client satisfies it.
type SnapTokenCreator interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// GatewayService talks to the hosted checkout. It owns snap_token and
// midtrans_order_id on the payment row and nothing else; verification
// stays with PaymentService.
type GatewayService struct {
	db        *gorm.DB
	snap      SnapTokenCreator
	serverKey string
}

func NewGatewayService(db *gorm.DB, snapClient SnapTokenCreator, serverKey string) *GatewayService {
	return &GatewayService{db: db, snap: snapClient, serverKey: serverKey}
}

// IssueOrReuseToken returns the payment's existing snap token when one is
// already stored, without a second gateway call: re-requesting a token for
// the same payment attempt would open a duplicate gateway transaction.
// Otherwise it creates the transaction and stores token and order id.
func (s *GatewayService) IssueOrReuseToken(ctx context.Context, paymentID uuid.UUID) (string, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).
		Preload("Booking.Customer").
		First(&payment, "id = ?", paymentID).Error
	if err != nil {
		return "", translateDBError(err, "payment")
	}

	if payment.SnapToken != "" {
		return payment.SnapToken, nil
	}

	orderID := fmt.Sprintf("%s-%s", payment.Booking.KodeBooking, payment.ID.String()[:8])
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(payment.JumlahPembayaran),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: payment.Booking.Customer.NamaPelanggan,
			Email: payment.Booking.Customer.Email,
			Phone: payment.Booking.Customer.NomorTelepon,
		},
	}

	resp, mErr := s.snap.CreateTransaction(req)
	if mErr != nil {
		return "", wrapGatewayError(mErr)
	}

	err = s.db.WithContext(ctx).Model(&payment).Updates(map[string]interface{}{
		"snap_token":        resp.Token,
		"midtrans_order_id": orderID,
	}).Error
	if err != nil {
		return "", err
	}

	return resp.Token, nil
}

// CallbackOutcome tells the caller what the checkout widget result means.
// None of the outcomes verify the payment; that is a manual admin step.
type CallbackOutcome struct {
	State   string `json:"state"`
	Refresh bool   `json:"refresh"`
	Message string `json:"message"`
}

const (
	CallbackStateSettled      = "settled"
	CallbackStateWaiting      = "waiting"
	CallbackStateFailed       = "failed"
	CallbackStateInconclusive = "inconclusive"
)

// ResolveCallback maps a widget result onto an outcome. "success" means
// the gateway captured the funds, not that the payment is verified here.
// An empty result is the popup closed without an answer: inconclusive,
// nothing changes, the payment stays pending.
func ResolveCallback(result string) CallbackOutcome {
	switch result {
	case "success", "settlement", "capture":
		return CallbackOutcome{
			State:   CallbackStateSettled,
			Refresh: true,
			Message: "Pembayaran diterima oleh gateway dan menunggu verifikasi admin.",
		}
	case "pending":
		return CallbackOutcome{
			State:   CallbackStateWaiting,
			Message: "Pembayaran masih diproses. Silakan tunggu.",
		}
	case "error", "deny", "cancel", "expire", "failure":
		return CallbackOutcome{
			State:   CallbackStateFailed,
			Message: "Pembayaran gagal. Silakan coba lagi.",
		}
	}
	return CallbackOutcome{
		State:   CallbackStateInconclusive,
		Message: "Status pembayaran belum diketahui.",
	}
}

// MidtransNotification is the HTTP notification body posted by Midtrans.
type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}

// HandleNotification validates an HTTP notification and resolves it to an
// outcome for the payment it references. Payment status is untouched in
// every case; settlement only tells admins there is something to verify.
func (s *GatewayService) HandleNotification(ctx context.Context, n MidtransNotification) (CallbackOutcome, error) {
	if !helpers.VerifyMidtransSignature(n.OrderID, n.StatusCode, n.GrossAmount, s.serverKey, n.SignatureKey) {
		return CallbackOutcome{}, helpers.NewValidationError("invalid notification signature")
	}

	var payment models.Payment
	err := s.db.WithContext(ctx).First(&payment, "midtrans_order_id = ?", n.OrderID).Error
	if err != nil {
		return CallbackOutcome{}, translateDBError(err, "payment")
	}

	return ResolveCallback(n.TransactionStatus), nil
}

// wrapGatewayError separates "definitely failed" from "outcome unknown":
// retry logic treats the two differently.
func wrapGatewayError(mErr *midtrans.Error) error {
	cause := error(mErr)
	if mErr.RawError != nil {
		cause = mErr.RawError
	}

	var netErr net.Error
	if errors.As(cause, &netErr) && netErr.Timeout() {
		return &helpers.GatewayTimeoutError{Err: cause}
	}
	if errors.Is(cause, context.DeadlineExceeded) {
		return &helpers.GatewayTimeoutError{Err: cause}
	}
	return &helpers.GatewayError{Err: cause}
}
