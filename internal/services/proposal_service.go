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

type ProposalService interface {
	Create(ctx context.Context, agencyID uuid.UUID, proposal *models.Proposal) error
	// Respond accepts or rejects a proposal. Only the receiving corporate may
	// respond, and only while the proposal is still in sent.
	Respond(ctx context.Context, corporateID, proposalID uuid.UUID, status string) (*models.Proposal, error)
	ListByAgency(ctx context.Context, agencyID uuid.UUID, limit, offset int) ([]*models.Proposal, error)
	ListByCorporate(ctx context.Context, corporateID uuid.UUID, limit, offset int) ([]*models.Proposal, error)
}

type proposalService struct {
	proposalRepo repositories.ProposalRepository
	userRepo     repositories.UserRepository
}

func NewProposalService(proposalRepo repositories.ProposalRepository, userRepo repositories.UserRepository) ProposalService {
	return &proposalService{
		proposalRepo: proposalRepo,
		userRepo:     userRepo,
	}
}

func (s *proposalService) Create(ctx context.Context, agencyID uuid.UUID, proposal *models.Proposal) error {
	if err := common.ValidateRequiredString(proposal.Title, "title"); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if err := common.ValidateOptionalString(proposal.Description, "description", 5000); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if proposal.Budget <= 0 {
		return common.Invalidf("budget must be positive")
	}

	corporate, err := s.userRepo.GetByID(ctx, proposal.CorporateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: corporate", common.ErrNotFound)
		}
		return fmt.Errorf("load corporate: %w", err)
	}
	if corporate.Role != models.RoleCorporate {
		return common.Invalidf("proposals can only target corporate accounts")
	}

	proposal.ID = uuid.New()
	proposal.AgencyID = agencyID
	proposal.Status = models.ProposalStatusSent

	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return fmt.Errorf("create proposal: %w", err)
	}
	return nil
}

func (s *proposalService) Respond(ctx context.Context, corporateID, proposalID uuid.UUID, status string) (*models.Proposal, error) {
	if status != models.ProposalStatusAccepted && status != models.ProposalStatusRejected {
		return nil, common.Invalidf("status must be accepted or rejected")
	}

	proposal, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: proposal", common.ErrNotFound)
		}
		return nil, fmt.Errorf("load proposal: %w", err)
	}
	if proposal.CorporateID != corporateID {
		return nil, fmt.Errorf("%w: proposal was sent to another company", common.ErrForbidden)
	}
	if proposal.Status != models.ProposalStatusSent {
		return nil, common.Invalidf("proposal has already been %s", proposal.Status)
	}

	if err := s.proposalRepo.UpdateStatus(ctx, proposalID, status); err != nil {
		return nil, fmt.Errorf("update proposal status: %w", err)
	}
	proposal.Status = status
	return proposal, nil
}

func (s *proposalService) ListByAgency(ctx context.Context, agencyID uuid.UUID, limit, offset int) ([]*models.Proposal, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.proposalRepo.ListByAgency(ctx, agencyID, limit, offset)
}

func (s *proposalService) ListByCorporate(ctx context.Context, corporateID uuid.UUID, limit, offset int) ([]*models.Proposal, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.proposalRepo.ListByCorporate(ctx, corporateID, limit, offset)
}
