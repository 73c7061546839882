package services

import (
	"context"
	"errors"
	"fmt"

	"tradeyard/internal/common"
	"tradeyard/internal/models"
	"tradeyard/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PartnershipService interface {
	// Request creates a pending partnership from a dealer towards a corporate.
	// The (dealer, company) pair is unique.
	Request(ctx context.Context, dealerID, companyID uuid.UUID, notes *string) (*models.Partnership, error)
	// Review sets the outcome of a request. Only the company side may review.
	Review(ctx context.Context, companyID, partnershipID uuid.UUID, status string, notes *string) (*models.Partnership, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Partnership, error)
	ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Partnership, error)
	// ApprovedDealers resolves the dealers this company has approved.
	ApprovedDealers(ctx context.Context, companyID uuid.UUID) ([]*models.User, error)
}

type partnershipService struct {
	partnershipRepo repositories.PartnershipRepository
	userRepo        repositories.UserRepository
}

func NewPartnershipService(partnershipRepo repositories.PartnershipRepository, userRepo repositories.UserRepository) PartnershipService {
	return &partnershipService{
		partnershipRepo: partnershipRepo,
		userRepo:        userRepo,
	}
}

func (s *partnershipService) Request(ctx context.Context, dealerID, companyID uuid.UUID, notes *string) (*models.Partnership, error) {
	if err := common.ValidateOptionalString(notes, "notes", 1000); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}

	company, err := s.userRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: company", common.ErrNotFound)
		}
		return nil, fmt.Errorf("load company: %w", err)
	}
	if company.Role != models.RoleCorporate {
		return nil, common.Invalidf("partnerships can only target corporate accounts")
	}

	existing, err := s.partnershipRepo.GetByPair(ctx, dealerID, companyID)
	if err != nil {
		return nil, fmt.Errorf("check existing partnership: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: partnership with this company already exists", common.ErrConflict)
	}

	partnership := &models.Partnership{
		ID:        uuid.New(),
		DealerID:  dealerID,
		CompanyID: companyID,
		Status:    models.PartnershipStatusPending,
		Notes:     notes,
	}
	if err := s.partnershipRepo.Create(ctx, partnership); err != nil {
		return nil, fmt.Errorf("create partnership: %w", err)
	}
	return partnership, nil
}

func (s *partnershipService) Review(ctx context.Context, companyID, partnershipID uuid.UUID, status string, notes *string) (*models.Partnership, error) {
	if !models.ValidPartnershipStatus(status) {
		return nil, common.Invalidf("status must be approved, rejected or blocked")
	}
	if err := common.ValidateOptionalString(notes, "notes", 1000); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}

	partnership, err := s.partnershipRepo.GetByID(ctx, partnershipID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: partnership", common.ErrNotFound)
		}
		return nil, fmt.Errorf("load partnership: %w", err)
	}
	if partnership.CompanyID != companyID {
		return nil, fmt.Errorf("%w: only the receiving company may review a partnership", common.ErrForbidden)
	}

	if err := s.partnershipRepo.UpdateStatus(ctx, partnershipID, status, notes); err != nil {
		return nil, fmt.Errorf("update partnership status: %w", err)
	}

	partnership.Status = status
	if notes != nil {
		partnership.Notes = notes
	}
	return partnership, nil
}

func (s *partnershipService) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Partnership, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.partnershipRepo.ListByCompany(ctx, companyID, limit, offset)
}

func (s *partnershipService) ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Partnership, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.partnershipRepo.ListByDealer(ctx, dealerID, limit, offset)
}

func (s *partnershipService) ApprovedDealers(ctx context.Context, companyID uuid.UUID) ([]*models.User, error) {
	ids, err := s.partnershipRepo.ApprovedDealerIDs(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list approved dealer ids: %w", err)
	}
	return s.userRepo.ListByIDs(ctx, ids)
}
