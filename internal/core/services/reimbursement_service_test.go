package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/payflowhq/payflow_backend/internal/apperrors"
	"github.com/payflowhq/payflow_backend/internal/core/domain"
	portssvc "github.com/payflowhq/payflow_backend/internal/core/ports/services"
	"github.com/payflowhq/payflow_backend/internal/core/services"
	"github.com/payflowhq/payflow_backend/internal/dto"
)

// --- Mock RateService ---
type MockRateService struct {
	mock.Mock
}

var _ portssvc.RateSvcFacade = (*MockRateService)(nil)

func (m *MockRateService) ResolveUSDRate(ctx context.Context, currencyCode string) (domain.RateQuote, error) {
	args := m.Called(ctx, currencyCode)
	return args.Get(0).(domain.RateQuote), args.Error(1)
}

// --- Test Suite ---
type ReimbursementServiceTestSuite struct {
	suite.Suite
	mockReimbRepo *MockReimbursementRepository
	mockUserRepo  *MockUserRepository
	mockRateSvc   *MockRateService
	service       portssvc.ReimbursementSvcFacade
	adminUser     domain.User
	memberUser    domain.User
}

func (suite *ReimbursementServiceTestSuite) SetupTest() {
	suite.mockReimbRepo = new(MockReimbursementRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockRateSvc = new(MockRateService)
	suite.service = services.NewReimbursementService(suite.mockReimbRepo, suite.mockUserRepo, suite.mockRateSvc)

	suite.adminUser = domain.User{UserID: uuid.NewString(), Role: domain.RoleAdmin, Status: domain.UserApproved}
	suite.memberUser = domain.User{UserID: uuid.NewString(), Role: domain.RoleMember, Status: domain.UserApproved}
}

func (suite *ReimbursementServiceTestSuite) TestSubmit_CapturesLiveRate() {
	ctx := context.Background()
	req := dto.CreateReimbursementRequest{
		Amount:       "150.25",
		CurrencyCode: "EUR",
		Description:  "Conference travel",
		ExpenseDate:  time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
	}
	quote := domain.RateQuote{
		CurrencyCode: "EUR",
		RateToUSD:    decimal.RequireFromString("1.10"),
		Source:       domain.RateSourceLive,
		FetchedAt:    time.Now().UTC(),
	}

	suite.mockRateSvc.On("ResolveUSDRate", ctx, "EUR").Return(quote, nil).Once()
	suite.mockReimbRepo.On("SaveReimbursement", ctx, mock.AnythingOfType("domain.Reimbursement")).Return(nil).Once()

	r, err := suite.service.Submit(ctx, req, suite.memberUser.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(r)
	suite.Equal(domain.ReimbursementSubmitted, r.Status)
	suite.True(r.USDAmount.Equal(decimal.RequireFromString("165.275")))
	suite.True(r.ExchangeRate.Equal(quote.RateToUSD))
	suite.Equal(domain.RateSourceLive, r.RateSource)
	suite.False(r.IsFallbackRate)
	suite.mockReimbRepo.AssertExpectations(suite.T())
}

func (suite *ReimbursementServiceTestSuite) TestSubmit_FallbackRateIsTagged() {
	ctx := context.Background()
	req := dto.CreateReimbursementRequest{
		Amount:       "100",
		CurrencyCode: "GBP",
		Description:  "Hardware",
		ExpenseDate:  time.Now().UTC(),
	}
	quote := domain.RateQuote{
		CurrencyCode: "GBP",
		RateToUSD:    decimal.RequireFromString("1.27"),
		Source:       domain.RateSourceFallback,
		FetchedAt:    time.Now().UTC(),
	}

	suite.mockRateSvc.On("ResolveUSDRate", ctx, "GBP").Return(quote, nil).Once()
	suite.mockReimbRepo.On("SaveReimbursement", ctx, mock.MatchedBy(func(r domain.Reimbursement) bool {
		return r.IsFallbackRate && r.RateSource == domain.RateSourceFallback
	})).Return(nil).Once()

	r, err := suite.service.Submit(ctx, req, suite.memberUser.UserID)

	suite.Require().NoError(err)
	suite.True(r.IsFallbackRate)
	suite.mockReimbRepo.AssertExpectations(suite.T())
}

func (suite *ReimbursementServiceTestSuite) TestSubmit_UnknownCurrency() {
	ctx := context.Background()
	req := dto.CreateReimbursementRequest{
		Amount:       "100",
		CurrencyCode: "XYZ",
		Description:  "???",
		ExpenseDate:  time.Now().UTC(),
	}

	suite.mockRateSvc.On("ResolveUSDRate", ctx, "XYZ").Return(domain.RateQuote{}, apperrors.ErrNotFound).Once()

	_, err := suite.service.Submit(ctx, req, suite.memberUser.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReimbRepo.AssertNotCalled(suite.T(), "SaveReimbursement", mock.Anything, mock.Anything)
}

func (suite *ReimbursementServiceTestSuite) TestSubmit_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateReimbursementRequest{
		Amount:       "-5",
		CurrencyCode: "USD",
		Description:  "Nope",
		ExpenseDate:  time.Now().UTC(),
	}

	_, err := suite.service.Submit(ctx, req, suite.memberUser.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateSvc.AssertNotCalled(suite.T(), "ResolveUSDRate", mock.Anything, mock.Anything)
}

func (suite *ReimbursementServiceTestSuite) TestReview_ApproveSubmittedClaim() {
	ctx := context.Background()
	claim := domain.Reimbursement{
		ReimbursementID: uuid.NewString(),
		UserID:          suite.memberUser.UserID,
		Status:          domain.ReimbursementSubmitted,
	}
	note := "Looks good"

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminUser.UserID).Return(&suite.adminUser, nil).Once()
	suite.mockReimbRepo.On("FindReimbursementByID", ctx, claim.ReimbursementID).Return(&claim, nil).Once()
	suite.mockReimbRepo.On("UpdateReimbursement", ctx, mock.MatchedBy(func(r domain.Reimbursement) bool {
		return r.Status == domain.ReimbursementApproved && r.ReviewedBy != nil && *r.ReviewedBy == suite.adminUser.UserID
	})).Return(nil).Once()

	r, err := suite.service.Review(ctx, claim.ReimbursementID, dto.ReviewReimbursementRequest{Approve: true, Note: &note}, suite.adminUser.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReimbursementApproved, r.Status)
	suite.NotNil(r.ReviewedAt)
	suite.mockReimbRepo.AssertExpectations(suite.T())
}

func (suite *ReimbursementServiceTestSuite) TestReview_AlreadyReviewed() {
	ctx := context.Background()
	claim := domain.Reimbursement{
		ReimbursementID: uuid.NewString(),
		UserID:          suite.memberUser.UserID,
		Status:          domain.ReimbursementApproved,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminUser.UserID).Return(&suite.adminUser, nil).Once()
	suite.mockReimbRepo.On("FindReimbursementByID", ctx, claim.ReimbursementID).Return(&claim, nil).Once()

	_, err := suite.service.Review(ctx, claim.ReimbursementID, dto.ReviewReimbursementRequest{Approve: false}, suite.adminUser.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReviewed)
	suite.mockReimbRepo.AssertNotCalled(suite.T(), "UpdateReimbursement", mock.Anything, mock.Anything)
}

func (suite *ReimbursementServiceTestSuite) TestReview_NonAdminForbidden() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.memberUser.UserID).Return(&suite.memberUser, nil).Once()

	_, err := suite.service.Review(ctx, uuid.NewString(), dto.ReviewReimbursementRequest{Approve: true}, suite.memberUser.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ReimbursementServiceTestSuite) TestGetByID_OwnerAllowed() {
	ctx := context.Background()
	claim := domain.Reimbursement{
		ReimbursementID: uuid.NewString(),
		UserID:          suite.memberUser.UserID,
		Status:          domain.ReimbursementSubmitted,
	}

	suite.mockReimbRepo.On("FindReimbursementByID", ctx, claim.ReimbursementID).Return(&claim, nil).Once()

	r, err := suite.service.GetByID(ctx, claim.ReimbursementID, suite.memberUser.UserID)

	suite.Require().NoError(err)
	suite.Equal(claim.ReimbursementID, r.ReimbursementID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (suite *ReimbursementServiceTestSuite) TestGetByID_StrangerForbidden() {
	ctx := context.Background()
	claim := domain.Reimbursement{
		ReimbursementID: uuid.NewString(),
		UserID:          uuid.NewString(),
		Status:          domain.ReimbursementSubmitted,
	}

	suite.mockReimbRepo.On("FindReimbursementByID", ctx, claim.ReimbursementID).Return(&claim, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.memberUser.UserID).Return(&suite.memberUser, nil).Once()

	_, err := suite.service.GetByID(ctx, claim.ReimbursementID, suite.memberUser.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ReimbursementServiceTestSuite) TestListByStatus_AdminOnly() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.memberUser.UserID).Return(&suite.memberUser, nil).Once()

	_, err := suite.service.ListByStatus(ctx, domain.ReimbursementApproved, suite.memberUser.UserID, 20, 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- Run Test Suite ---
func TestReimbursementService(t *testing.T) {
	suite.Run(t, new(ReimbursementServiceTestSuite))
}
