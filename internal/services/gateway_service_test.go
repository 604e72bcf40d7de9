package services_test

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"testing"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafidhan/tripnesia/internal/helpers"
	"github.com/rafidhan/tripnesia/internal/models"
	"github.com/rafidhan/tripnesia/internal/services"
)

type fakeSnap struct {
	calls   int
	token   string
	err     *midtrans.Error
	lastReq *snap.Request
}

func (f *fakeSnap) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &snap.Response{Token: f.token}, nil
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "dial tcp: i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

const testServerKey = "SB-Mid-server-test"

func TestIssueTokenStoresTokenAndOrderID(t *testing.T) {
	db := openTestDB(t)
	booking, payment := seedBookingWithPayment(t, db)
	fake := &fakeSnap{token: "snap-token-abc"}
	svc := services.NewGatewayService(db, fake, testServerKey)

	token, err := svc.IssueOrReuseToken(context.Background(), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, "snap-token-abc", token)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, int64(booking.TotalBiaya), fake.lastReq.TransactionDetails.GrossAmt)

	var stored models.Payment
	require.NoError(t, db.First(&stored, "id = ?", payment.ID).Error)
	assert.Equal(t, "snap-token-abc", stored.SnapToken)
	assert.Contains(t, stored.MidtransOrderID, booking.KodeBooking)
}

func TestIssueTokenIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	_, payment := seedBookingWithPayment(t, db)
	fake := &fakeSnap{token: "snap-token-abc"}
	svc := services.NewGatewayService(db, fake, testServerKey)
	ctx := context.Background()

	first, err := svc.IssueOrReuseToken(ctx, payment.ID)
	require.NoError(t, err)

	second, err := svc.IssueOrReuseToken(ctx, payment.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fake.calls, "a stored token must be reused without a gateway call")
}

func TestIssueTokenGatewayError(t *testing.T) {
	db := openTestDB(t)
	_, payment := seedBookingWithPayment(t, db)
	fake := &fakeSnap{err: &midtrans.Error{Message: "midtrans rejected the request", RawError: errors.New("401 unauthorized")}}
	svc := services.NewGatewayService(db, fake, testServerKey)

	_, err := svc.IssueOrReuseToken(context.Background(), payment.ID)

	var gatewayErr *helpers.GatewayError
	require.ErrorAs(t, err, &gatewayErr)

	// A failed issuance leaves the payment untouched; the user retries.
	var stored models.Payment
	require.NoError(t, db.First(&stored, "id = ?", payment.ID).Error)
	assert.Empty(t, stored.SnapToken)
}

func TestIssueTokenGatewayTimeout(t *testing.T) {
	db := openTestDB(t)
	_, payment := seedBookingWithPayment(t, db)
	fake := &fakeSnap{err: &midtrans.Error{Message: "request timed out", RawError: timeoutError{}}}
	svc := services.NewGatewayService(db, fake, testServerKey)

	_, err := svc.IssueOrReuseToken(context.Background(), payment.ID)

	var timeoutErr *helpers.GatewayTimeoutError
	assert.ErrorAs(t, err, &timeoutErr, "timeouts must be distinguishable from definite failures")
}

func TestResolveCallback(t *testing.T) {
	tests := []struct {
		result string
		state  string
	}{
		{"success", services.CallbackStateSettled},
		{"settlement", services.CallbackStateSettled},
		{"pending", services.CallbackStateWaiting},
		{"error", services.CallbackStateFailed},
		{"expire", services.CallbackStateFailed},
		{"", services.CallbackStateInconclusive},
		{"garbage", services.CallbackStateInconclusive},
	}

	for _, tt := range tests {
		outcome := services.ResolveCallback(tt.result)
		assert.Equal(t, tt.state, outcome.State, "result %q", tt.result)
	}

	assert.True(t, services.ResolveCallback("success").Refresh)
	assert.False(t, services.ResolveCallback("pending").Refresh)
}

func TestHandleNotification(t *testing.T) {
	db := openTestDB(t)
	_, payment := seedBookingWithPayment(t, db)
	fake := &fakeSnap{token: "snap-token-abc"}
	svc := services.NewGatewayService(db, fake, testServerKey)
	ctx := context.Background()

	_, err := svc.IssueOrReuseToken(ctx, payment.ID)
	require.NoError(t, err)

	var stored models.Payment
	require.NoError(t, db.First(&stored, "id = ?", payment.ID).Error)

	sign := func(orderID, statusCode, grossAmount string) string {
		sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + testServerKey))
		return hex.EncodeToString(sum[:])
	}

	notification := services.MidtransNotification{
		OrderID:           stored.MidtransOrderID,
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "2000000.00",
		SignatureKey:      sign(stored.MidtransOrderID, "200", "2000000.00"),
	}

	outcome, err := svc.HandleNotification(ctx, notification)
	require.NoError(t, err)
	assert.Equal(t, services.CallbackStateSettled, outcome.State)

	// Settlement never verifies the payment by itself.
	require.NoError(t, db.First(&stored, "id = ?", payment.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, stored.Status)

	notification.SignatureKey = "tampered"
	_, err = svc.HandleNotification(ctx, notification)
	var validationErr *helpers.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	notification.OrderID = "unknown-order"
	notification.SignatureKey = sign("unknown-order", "200", "2000000.00")
	_, err = svc.HandleNotification(ctx, notification)
	var notFoundErr *helpers.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}
