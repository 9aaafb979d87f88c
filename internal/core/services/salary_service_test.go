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

// --- Test Suite ---
type SalaryServiceTestSuite struct {
	suite.Suite
	mockSalaryRepo *MockSalaryRepository
	mockUserRepo   *MockUserRepository
	service        portssvc.SalarySvcFacade
	adminUser      domain.User
	memberUser     domain.User
}

func (suite *SalaryServiceTestSuite) SetupTest() {
	suite.mockSalaryRepo = new(MockSalaryRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewSalaryService(suite.mockSalaryRepo, suite.mockUserRepo)

	suite.adminUser = domain.User{UserID: uuid.NewString(), Role: domain.RoleAdmin, Status: domain.UserApproved}
	suite.memberUser = domain.User{UserID: uuid.NewString(), Role: domain.RoleMember, Status: domain.UserApproved}
}

func (suite *SalaryServiceTestSuite) TestCreatePlan_Success() {
	ctx := context.Background()
	req := dto.CreateSalaryPlanRequest{
		UserID:       suite.memberUser.UserID,
		Amount:       "5000",
		CurrencyCode: "USDC",
		PayDay:       15,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminUser.UserID).Return(&suite.adminUser, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.memberUser.UserID).Return(&suite.memberUser, nil).Once()
	suite.mockSalaryRepo.On("SaveSalaryPlan", ctx, mock.AnythingOfType("domain.SalaryPlan")).Return(nil).Once()

	plan, err := suite.service.CreatePlan(ctx, req, suite.adminUser.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(plan)
	suite.NotEmpty(plan.SalaryPlanID)
	suite.True(plan.Amount.Equal(decimal.NewFromInt(5000)))
	suite.Equal(15, plan.PayDay)
	suite.True(plan.IsActive)
	suite.Nil(plan.LastPaidAt)
	suite.mockSalaryRepo.AssertExpectations(suite.T())
}

func (suite *SalaryServiceTestSuite) TestCreatePlan_NonAdminForbidden() {
	ctx := context.Background()
	req := dto.CreateSalaryPlanRequest{UserID: uuid.NewString(), Amount: "5000", CurrencyCode: "USDC", PayDay: 1}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.memberUser.UserID).Return(&suite.memberUser, nil).Once()

	_, err := suite.service.CreatePlan(ctx, req, suite.memberUser.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockSalaryRepo.AssertNotCalled(suite.T(), "SaveSalaryPlan", mock.Anything, mock.Anything)
}

func (suite *SalaryServiceTestSuite) TestCreatePlan_UnapprovedRecipient() {
	ctx := context.Background()
	pending := domain.User{UserID: uuid.NewString(), Role: domain.RoleMember, Status: domain.UserPending}
	req := dto.CreateSalaryPlanRequest{UserID: pending.UserID, Amount: "5000", CurrencyCode: "USDC", PayDay: 1}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminUser.UserID).Return(&suite.adminUser, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, pending.UserID).Return(&pending, nil).Once()

	_, err := suite.service.CreatePlan(ctx, req, suite.adminUser.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SalaryServiceTestSuite) TestUpdatePlan_Deactivate() {
	ctx := context.Background()
	plan := domain.SalaryPlan{
		SalaryPlanID: uuid.NewString(),
		UserID:       suite.memberUser.UserID,
		Amount:       decimal.NewFromInt(5000),
		PayDay:       15,
		IsActive:     true,
	}
	inactive := false

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminUser.UserID).Return(&suite.adminUser, nil).Once()
	suite.mockSalaryRepo.On("FindSalaryPlanByID", ctx, plan.SalaryPlanID).Return(&plan, nil).Once()
	suite.mockSalaryRepo.On("UpdateSalaryPlan", ctx, mock.MatchedBy(func(p domain.SalaryPlan) bool {
		return !p.IsActive && p.LastUpdatedBy == suite.adminUser.UserID
	})).Return(nil).Once()

	updated, err := suite.service.UpdatePlan(ctx, plan.SalaryPlanID, dto.UpdateSalaryPlanRequest{IsActive: &inactive}, suite.adminUser.UserID)

	suite.Require().NoError(err)
	suite.False(updated.IsActive)
	suite.mockSalaryRepo.AssertExpectations(suite.T())
}

func (suite *SalaryServiceTestSuite) TestGetPlan_OwnerAllowed() {
	ctx := context.Background()
	plan := domain.SalaryPlan{SalaryPlanID: uuid.NewString(), UserID: suite.memberUser.UserID}

	suite.mockSalaryRepo.On("FindSalaryPlanByID", ctx, plan.SalaryPlanID).Return(&plan, nil).Once()

	got, err := suite.service.GetPlan(ctx, plan.SalaryPlanID, suite.memberUser.UserID)

	suite.Require().NoError(err)
	suite.Equal(plan.SalaryPlanID, got.SalaryPlanID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (suite *SalaryServiceTestSuite) TestListDuePlans_FiltersByDueDate() {
	ctx := context.Background()
	on := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	paidThisMonth := time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC)

	plans := []domain.SalaryPlan{
		{SalaryPlanID: "due", UserID: uuid.NewString(), PayDay: 15, IsActive: true},
		{SalaryPlanID: "paid", UserID: uuid.NewString(), PayDay: 15, IsActive: true, LastPaidAt: &paidThisMonth},
		{SalaryPlanID: "not-yet", UserID: uuid.NewString(), PayDay: 25, IsActive: true},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminUser.UserID).Return(&suite.adminUser, nil).Once()
	suite.mockSalaryRepo.On("FindActiveSalaryPlans", ctx).Return(plans, nil).Once()

	due, err := suite.service.ListDuePlans(ctx, on, suite.adminUser.UserID)

	suite.Require().NoError(err)
	suite.Require().Len(due, 1)
	suite.Equal("due", due[0].SalaryPlanID)
}

// --- Run Test Suite ---
func TestSalaryService(t *testing.T) {
	suite.Run(t, new(SalaryServiceTestSuite))
}
