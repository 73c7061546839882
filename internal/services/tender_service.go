package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tradeyard/internal/common"
	"tradeyard/internal/models"
	"tradeyard/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TenderService interface {
	Create(ctx context.Context, corporateID uuid.UUID, tender *models.Tender) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tender, error)
	// Close closes an active tender. Closed is terminal.
	Close(ctx context.Context, corporateID, tenderID uuid.UUID) error
	ListByCreator(ctx context.Context, corporateID uuid.UUID, limit, offset int) ([]*models.Tender, error)
	// PartnerTenders lists active tenders created by companies that approved
	// this dealer.
	PartnerTenders(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Tender, error)

	SubmitQuote(ctx context.Context, dealerID uuid.UUID, quote *models.TenderQuote) error
	// ReviewQuote moves a quote through its review states. Only the tender
	// creator may review.
	ReviewQuote(ctx context.Context, corporateID, quoteID uuid.UUID, status string) (*models.TenderQuote, error)
	ListQuotesByTender(ctx context.Context, corporateID, tenderID uuid.UUID, limit, offset int) ([]*models.TenderQuote, error)
	ListQuotesByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.TenderQuote, error)
}

type tenderService struct {
	tenderRepo      repositories.TenderRepository
	quoteRepo       repositories.TenderQuoteRepository
	partnershipRepo repositories.PartnershipRepository
}

func NewTenderService(tenderRepo repositories.TenderRepository, quoteRepo repositories.TenderQuoteRepository, partnershipRepo repositories.PartnershipRepository) TenderService {
	return &tenderService{
		tenderRepo:      tenderRepo,
		quoteRepo:       quoteRepo,
		partnershipRepo: partnershipRepo,
	}
}

func (s *tenderService) Create(ctx context.Context, corporateID uuid.UUID, tender *models.Tender) error {
	if err := common.ValidateRequiredString(tender.Title, "title"); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if err := common.ValidateRequiredString(tender.ServiceType, "service type"); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if err := common.ValidatePositiveArea(tender.RequiredArea, "required area"); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if err := common.ValidateDateRange(tender.StartDate, tender.EndDate); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if err := common.ValidateOptionalString(tender.Description, "description", 5000); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if tender.Deadline != nil && tender.Deadline.Before(time.Now()) {
		return common.Invalidf("deadline cannot be in the past")
	}

	tender.ID = uuid.New()
	tender.CreatedBy = corporateID
	tender.Status = models.TenderStatusActive

	if err := s.tenderRepo.Create(ctx, tender); err != nil {
		return fmt.Errorf("create tender: %w", err)
	}
	return nil
}

func (s *tenderService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tender, error) {
	tender, err := s.tenderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: tender", common.ErrNotFound)
		}
		return nil, err
	}
	return tender, nil
}

func (s *tenderService) Close(ctx context.Context, corporateID, tenderID uuid.UUID) error {
	tender, err := s.tenderRepo.GetByID(ctx, tenderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: tender", common.ErrNotFound)
		}
		return fmt.Errorf("load tender: %w", err)
	}
	if tender.CreatedBy != corporateID {
		return fmt.Errorf("%w: tender belongs to another company", common.ErrForbidden)
	}
	if tender.Status == models.TenderStatusClosed {
		return common.Invalidf("tender is already closed")
	}
	return s.tenderRepo.Close(ctx, tenderID)
}

func (s *tenderService) ListByCreator(ctx context.Context, corporateID uuid.UUID, limit, offset int) ([]*models.Tender, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.tenderRepo.ListByCreator(ctx, corporateID, limit, offset)
}

func (s *tenderService) PartnerTenders(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Tender, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)

	companyIDs, err := s.partnershipRepo.ApprovedCompanyIDs(ctx, dealerID)
	if err != nil {
		return nil, fmt.Errorf("list approved companies: %w", err)
	}
	return s.tenderRepo.ListActiveByCreators(ctx, companyIDs, limit, offset)
}

func (s *tenderService) SubmitQuote(ctx context.Context, dealerID uuid.UUID, quote *models.TenderQuote) error {
	if quote.Amount <= 0 {
		return common.Invalidf("amount must be positive")
	}
	if err := common.ValidateOptionalString(quote.Notes, "notes", 2000); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}

	tender, err := s.tenderRepo.GetByID(ctx, quote.TenderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: tender", common.ErrNotFound)
		}
		return fmt.Errorf("load tender: %w", err)
	}
	if tender.Status != models.TenderStatusActive {
		return common.Invalidf("tender is closed for quotes")
	}

	// Only dealers the tender's company has approved may quote.
	partnership, err := s.partnershipRepo.GetByPair(ctx, dealerID, tender.CreatedBy)
	if err != nil {
		return fmt.Errorf("check partnership: %w", err)
	}
	if partnership == nil || partnership.Status != models.PartnershipStatusApproved {
		return fmt.Errorf("%w: no approved partnership with the tender's company", common.ErrForbidden)
	}

	existing, err := s.quoteRepo.GetByTenderAndDealer(ctx, quote.TenderID, dealerID)
	if err != nil {
		return fmt.Errorf("check existing quote: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("%w: quote for this tender already submitted", common.ErrConflict)
	}

	quote.ID = uuid.New()
	quote.DealerID = dealerID
	quote.Status = models.QuoteStatusSubmitted

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return fmt.Errorf("create quote: %w", err)
	}
	return nil
}

func (s *tenderService) ReviewQuote(ctx context.Context, corporateID, quoteID uuid.UUID, status string) (*models.TenderQuote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: quote", common.ErrNotFound)
		}
		return nil, fmt.Errorf("load quote: %w", err)
	}

	tender, err := s.tenderRepo.GetByID(ctx, quote.TenderID)
	if err != nil {
		return nil, fmt.Errorf("load tender: %w", err)
	}
	if tender.CreatedBy != corporateID {
		return nil, fmt.Errorf("%w: quote belongs to another company's tender", common.ErrForbidden)
	}

	if !models.QuoteStatusAllowed(quote.Status, status) {
		return nil, common.Invalidf("cannot move quote from %s to %s", quote.Status, status)
	}

	if err := s.quoteRepo.UpdateStatus(ctx, quoteID, status); err != nil {
		return nil, fmt.Errorf("update quote status: %w", err)
	}
	quote.Status = status
	return quote, nil
}

func (s *tenderService) ListQuotesByTender(ctx context.Context, corporateID, tenderID uuid.UUID, limit, offset int) ([]*models.TenderQuote, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)

	tender, err := s.tenderRepo.GetByID(ctx, tenderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: tender", common.ErrNotFound)
		}
		return nil, fmt.Errorf("load tender: %w", err)
	}
	if tender.CreatedBy != corporateID {
		return nil, fmt.Errorf("%w: tender belongs to another company", common.ErrForbidden)
	}
	return s.quoteRepo.ListByTender(ctx, tenderID, limit, offset)
}

func (s *tenderService) ListQuotesByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.TenderQuote, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.quoteRepo.ListByDealer(ctx, dealerID, limit, offset)
}
