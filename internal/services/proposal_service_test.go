package services

import (
	"context"
	"testing"

	"tradeyard/internal/common"
	"tradeyard/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ProposalServiceTestSuite struct {
	suite.Suite
	proposalRepo *MockProposalRepository
	userRepo     *MockUserRepository
	service      ProposalService
	agencyID     uuid.UUID
	corporateID  uuid.UUID
	ctx          context.Context
}

func (suite *ProposalServiceTestSuite) SetupTest() {
	suite.proposalRepo = new(MockProposalRepository)
	suite.userRepo = new(MockUserRepository)
	suite.service = NewProposalService(suite.proposalRepo, suite.userRepo)
	suite.agencyID = uuid.New()
	suite.corporateID = uuid.New()
	suite.ctx = context.Background()
}

func TestProposalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProposalServiceTestSuite))
}

func (suite *ProposalServiceTestSuite) proposal(status string) *models.Proposal {
	return &models.Proposal{
		ID:          uuid.New(),
		AgencyID:    suite.agencyID,
		CorporateID: suite.corporateID,
		Title:       "Q4 brand campaign",
		Budget:      250000,
		Status:      status,
	}
}

func (suite *ProposalServiceTestSuite) TestCreate_Success() {
	corporate := &models.User{ID: suite.corporateID, Role: models.RoleCorporate}
	suite.userRepo.On("GetByID", suite.ctx, suite.corporateID).Return(corporate, nil)
	suite.proposalRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Proposal")).Return(nil)

	proposal := suite.proposal("")
	proposal.ID = uuid.Nil
	err := suite.service.Create(suite.ctx, suite.agencyID, proposal)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ProposalStatusSent, proposal.Status)
	assert.Equal(suite.T(), suite.agencyID, proposal.AgencyID)
}

func (suite *ProposalServiceTestSuite) TestCreate_NonCorporateTargetRejected() {
	agency := &models.User{ID: suite.corporateID, Role: models.RoleAgency}
	suite.userRepo.On("GetByID", suite.ctx, suite.corporateID).Return(agency, nil)

	err := suite.service.Create(suite.ctx, suite.agencyID, suite.proposal(""))
	assert.ErrorIs(suite.T(), err, common.ErrInvalidInput)
}

func (suite *ProposalServiceTestSuite) TestRespond_OnlyReceivingCorporate() {
	proposal := suite.proposal(models.ProposalStatusSent)
	suite.proposalRepo.On("GetByID", suite.ctx, proposal.ID).Return(proposal, nil)

	_, err := suite.service.Respond(suite.ctx, uuid.New(), proposal.ID, models.ProposalStatusAccepted)
	assert.ErrorIs(suite.T(), err, common.ErrForbidden)
	suite.proposalRepo.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProposalServiceTestSuite) TestRespond_AlreadyDecided() {
	proposal := suite.proposal(models.ProposalStatusAccepted)
	suite.proposalRepo.On("GetByID", suite.ctx, proposal.ID).Return(proposal, nil)

	_, err := suite.service.Respond(suite.ctx, suite.corporateID, proposal.ID, models.ProposalStatusRejected)
	assert.ErrorIs(suite.T(), err, common.ErrInvalidInput)
}

func (suite *ProposalServiceTestSuite) TestRespond_Accept() {
	proposal := suite.proposal(models.ProposalStatusSent)
	suite.proposalRepo.On("GetByID", suite.ctx, proposal.ID).Return(proposal, nil)
	suite.proposalRepo.On("UpdateStatus", suite.ctx, proposal.ID, models.ProposalStatusAccepted).Return(nil)

	updated, err := suite.service.Respond(suite.ctx, suite.corporateID, proposal.ID, models.ProposalStatusAccepted)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ProposalStatusAccepted, updated.Status)
}

func (suite *ProposalServiceTestSuite) TestRespond_InvalidStatus() {
	_, err := suite.service.Respond(suite.ctx, suite.corporateID, uuid.New(), "maybe")
	assert.ErrorIs(suite.T(), err, common.ErrInvalidInput)
}
