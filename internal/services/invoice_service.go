package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"strconv"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gorm.io/gorm"

	"github.com/rafidhan/tripnesia/internal/models"
	"github.com/rafidhan/tripnesia/internal/storage"
)

const (
	invoiceWidth  = 640
	invoiceHeight = 420
	invoiceQRSize = 128
)

// InvoiceService renders a booking+payment snapshot to a PNG and persists
// it as the payment's proof artifact. It mutates bukti_pembayaran_url and
// nothing else on the payment.
type InvoiceService struct {
	db      *gorm.DB
	storage storage.ObjectStorage
}

func NewInvoiceService(db *gorm.DB, objectStorage storage.ObjectStorage) *InvoiceService {
	return &InvoiceService{db: db, storage: objectStorage}
}

// Capture renders the snapshot and uploads it. The upload is best-effort:
// on storage failure the payment is left untouched, the failure is logged
// and Capture still returns without error, with an empty URL.
func (s *InvoiceService) Capture(ctx context.Context, paymentID uuid.UUID) (string, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).
		Preload("Booking.Customer").
		Preload("Booking.Package").
		First(&payment, "id = ?", paymentID).Error
	if err != nil {
		return "", translateDBError(err, "payment")
	}

	snapshot, err := renderInvoice(&payment)
	if err != nil {
		return "", fmt.Errorf("render invoice: %w", err)
	}

	path := fmt.Sprintf("invoices/%s-%s.png", payment.Booking.KodeBooking, payment.ID.String()[:8])
	url, err := s.storage.Put(path, snapshot)
	if err != nil {
		log.Printf("failed to upload invoice for payment %s: %v", payment.ID, err)
		return "", nil
	}

	err = s.db.WithContext(ctx).Model(&payment).Update("bukti_pembayaran_url", url).Error
	if err != nil {
		return "", err
	}
	return url, nil
}

func renderInvoice(payment *models.Payment) ([]byte, error) {
	booking := payment.Booking

	canvas := image.NewRGBA(image.Rect(0, 0, invoiceWidth, invoiceHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	lines := []string{
		"TRIPNESIA - BUKTI PEMBAYARAN",
		"",
		"Kode Booking     : " + booking.KodeBooking,
		"Pelanggan        : " + booking.Customer.NamaPelanggan,
		"Paket            : " + booking.Package.NamaPaket,
		"Lokasi           : " + booking.Package.Lokasi,
		"Jumlah Pax       : " + strconv.Itoa(booking.JumlahPax),
		"Keberangkatan    : " + booking.TanggalKeberangkatan.Format("02 January 2006"),
		"Total Biaya      : " + formatRupiah(booking.TotalBiaya),
		"Status Pembayaran: " + payment.Status,
	}
	if payment.VerificationNote != "" {
		lines = append(lines, "Catatan          : "+payment.VerificationNote)
	}

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	y := 32
	for _, line := range lines {
		drawer.Dot = fixed.P(24, y)
		drawer.DrawString(line)
		y += 20
	}

	qrPNG, err := qrcode.Encode(booking.KodeBooking, qrcode.Medium, invoiceQRSize)
	if err != nil {
		return nil, err
	}
	qrImage, err := png.Decode(bytes.NewReader(qrPNG))
	if err != nil {
		return nil, err
	}
	qrRect := image.Rect(
		invoiceWidth-invoiceQRSize-24,
		invoiceHeight-invoiceQRSize-24,
		invoiceWidth-24,
		invoiceHeight-24,
	)
	draw.Draw(canvas, qrRect, qrImage, image.Point{}, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatRupiah(amount int) string {
	digits := strconv.Itoa(amount)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	return "Rp " + string(out)
}
