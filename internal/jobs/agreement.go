package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"tradeyard/internal/common"
	"tradeyard/internal/models"
	"tradeyard/internal/repositories"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jung-kurt/gofpdf"
)

const TypeBookingAgreement = "booking:agreement"

// AgreementBucket is the object storage bucket for generated agreement PDFs.
const AgreementBucket = "agreements"

type bookingAgreementPayload struct {
	BookingID uuid.UUID `json:"booking_id"`
}

// NewBookingAgreementTask builds the asynq task that renders the agreement
// PDF for a confirmed booking.
func NewBookingAgreementTask(bookingID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(bookingAgreementPayload{BookingID: bookingID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingAgreement, payload), nil
}

// ObjectUploader is the slice of the storage service the generator needs.
type ObjectUploader interface {
	Upload(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error
}

// AgreementGenerator renders booking agreement PDFs and stores them in object
// storage. It runs inside the asynq worker.
type AgreementGenerator struct {
	bookingRepo   repositories.BookingRepository
	warehouseRepo repositories.WarehouseRepository
	userRepo      repositories.UserRepository
	uploader      ObjectUploader
}

func NewAgreementGenerator(bookingRepo repositories.BookingRepository, warehouseRepo repositories.WarehouseRepository, userRepo repositories.UserRepository, uploader ObjectUploader) *AgreementGenerator {
	return &AgreementGenerator{
		bookingRepo:   bookingRepo,
		warehouseRepo: warehouseRepo,
		userRepo:      userRepo,
		uploader:      uploader,
	}
}

// HandleBookingAgreementTask processes a booking:agreement task.
func (g *AgreementGenerator) HandleBookingAgreementTask(ctx context.Context, t *asynq.Task) error {
	var payload bookingAgreementPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal agreement payload: %v: %w", err, asynq.SkipRetry)
	}

	booking, err := g.bookingRepo.GetByID(ctx, payload.BookingID)
	if err != nil {
		return fmt.Errorf("load booking %s: %w", payload.BookingID, err)
	}
	if booking.Status != models.BookingStatusConfirmed {
		// Booking moved on before the worker got here; nothing to render.
		log.Printf("Skipping agreement for booking %s in status %s", booking.ID, booking.Status)
		return nil
	}

	warehouse, err := g.warehouseRepo.GetByID(ctx, booking.WarehouseID)
	if err != nil {
		return fmt.Errorf("load warehouse: %w", err)
	}
	corporate, err := g.userRepo.GetByID(ctx, booking.CorporateID)
	if err != nil {
		return fmt.Errorf("load corporate: %w", err)
	}
	dealer, err := g.userRepo.GetByID(ctx, warehouse.DealerID)
	if err != nil {
		return fmt.Errorf("load dealer: %w", err)
	}

	pdfBytes, err := renderAgreementPDF(booking, warehouse, corporate, dealer)
	if err != nil {
		return fmt.Errorf("render agreement pdf: %w", err)
	}

	objectName := fmt.Sprintf("%s.pdf", booking.ID)
	if err := g.uploader.Upload(ctx, AgreementBucket, objectName, bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf"); err != nil {
		return fmt.Errorf("upload agreement: %w", err)
	}

	if err := g.bookingRepo.SetAgreementKey(ctx, booking.ID, objectName); err != nil {
		return fmt.Errorf("record agreement key: %w", err)
	}

	log.Printf("Generated agreement %s for booking %s", objectName, booking.ID)
	return nil
}

func renderAgreementPDF(booking *models.Booking, warehouse *models.Warehouse, corporate, dealer *models.User) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(190, 10, "Warehouse Booking Agreement")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	days := int(booking.EndDate.Sub(booking.StartDate).Hours()/24) + 1
	total := float64(days) * warehouse.DailyRate

	lines := []string{
		fmt.Sprintf("Booking reference: %s", booking.ID),
		fmt.Sprintf("Warehouse: %s, %s", warehouse.Name, warehouse.Location),
		fmt.Sprintf("Dealer: %s", dealer.CompanyName),
		fmt.Sprintf("Corporate: %s", corporate.CompanyName),
		fmt.Sprintf("Period: %s to %s (%d days)", booking.StartDate.Format(common.DateFormat), booking.EndDate.Format(common.DateFormat), days),
		fmt.Sprintf("Reserved area: %.2f sq units", booking.RequiredArea),
		fmt.Sprintf("Daily rate: %.2f", warehouse.DailyRate),
		fmt.Sprintf("Estimated total: %.2f", total),
	}
	for _, line := range lines {
		pdf.Cell(190, 8, line)
		pdf.Ln(8)
	}

	if notes := common.SafeString(booking.DealerNotes); notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(190, 6, "Dealer notes: "+notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
