package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/payflowhq/payflow_backend/internal/apperrors"
	"github.com/payflowhq/payflow_backend/internal/core/domain"
	portsrepo "github.com/payflowhq/payflow_backend/internal/core/ports/repositories"
	portssvc "github.com/payflowhq/payflow_backend/internal/core/ports/services"
	"github.com/payflowhq/payflow_backend/internal/core/services"
	"github.com/payflowhq/payflow_backend/internal/dto"
)

// --- Mock AssetRepository ---
type MockAssetRepository struct {
	mock.Mock
}

// Ensure MockAssetRepository implements portsrepo.AssetRepositoryFacade
var _ portsrepo.AssetRepositoryFacade = (*MockAssetRepository)(nil)

func (m *MockAssetRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAssetRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAssetRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindAssetsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Asset, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindAssetByIDForUpdate(ctx context.Context, tx pgx.Tx, assetID string) (*domain.Asset, error) {
	args := m.Called(ctx, tx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) SaveAssetWithSeedRecord(ctx context.Context, asset domain.Asset, seed domain.AssetRecord) error {
	args := m.Called(ctx, asset, seed)
	return args.Error(0)
}

func (m *MockAssetRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) UpdateAssetValueInTx(ctx context.Context, tx pgx.Tx, assetID string, value decimal.Decimal, updatedBy string, at time.Time) error {
	args := m.Called(ctx, tx, assetID, value, updatedBy, at)
	return args.Error(0)
}

func (m *MockAssetRepository) DeleteAssetWithRecords(ctx context.Context, assetID string) error {
	args := m.Called(ctx, assetID)
	return args.Error(0)
}

func (m *MockAssetRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.AssetRecord, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssetRecord), args.Error(1)
}

func (m *MockAssetRepository) FindRecordsByAssetID(ctx context.Context, assetID string) ([]domain.AssetRecord, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssetRecord), args.Error(1)
}

func (m *MockAssetRepository) FindRecordsByAssetIDInTx(ctx context.Context, tx pgx.Tx, assetID string) ([]domain.AssetRecord, error) {
	args := m.Called(ctx, tx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssetRecord), args.Error(1)
}

func (m *MockAssetRepository) SaveRecordInTx(ctx context.Context, tx pgx.Tx, record domain.AssetRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *MockAssetRepository) UpdateRecordInTx(ctx context.Context, tx pgx.Tx, record domain.AssetRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *MockAssetRepository) UpdateRecordDerivedInTx(ctx context.Context, tx pgx.Tx, recordID string, amountChange, valueAfter decimal.Decimal, updatedBy string, at time.Time) error {
	args := m.Called(ctx, tx, recordID, amountChange, valueAfter, updatedBy, at)
	return args.Error(0)
}

func (m *MockAssetRepository) DeleteRecordInTx(ctx context.Context, tx pgx.Tx, recordID string) error {
	args := m.Called(ctx, tx, recordID)
	return args.Error(0)
}

// --- Test Suite ---
type AssetServiceTestSuite struct {
	suite.Suite
	mockAssetRepo *MockAssetRepository
	mockUserRepo  *MockUserRepository
	service       portssvc.AssetSvcFacade
	ownerID       string
	asset         domain.Asset
}

func (suite *AssetServiceTestSuite) SetupTest() {
	suite.mockAssetRepo = new(MockAssetRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewAssetService(suite.mockAssetRepo, suite.mockUserRepo)

	suite.ownerID = uuid.NewString()
	suite.asset = domain.Asset{
		AssetID:      uuid.NewString(),
		UserID:       suite.ownerID,
		Name:         "Treasury ETH",
		AssetType:    "CRYPTO",
		CurrencyCode: "ETH",
		InitialValue: decimal.NewFromInt(1000),
		CurrentValue: decimal.NewFromInt(1000),
		Status:       domain.AssetActive,
	}
}

// expectTx wires the Begin/Rollback pair every ledger mutation opens; Commit
// is asserted per test.
func (suite *AssetServiceTestSuite) expectTx(ctx context.Context) {
	suite.mockAssetRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAssetRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
}

func (suite *AssetServiceTestSuite) TestCreateAsset_SeedsInitialRecord() {
	ctx := context.Background()
	req := dto.CreateAssetRequest{
		Name:         "Vault USDC",
		AssetType:    "STABLECOIN",
		CurrencyCode: "USD",
		InitialValue: "2500.75",
		PurchaseDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	var savedSeed domain.AssetRecord
	suite.mockAssetRepo.On("SaveAssetWithSeedRecord", ctx, mock.AnythingOfType("domain.Asset"), mock.AnythingOfType("domain.AssetRecord")).
		Run(func(args mock.Arguments) {
			savedSeed = args.Get(2).(domain.AssetRecord)
		}).Return(nil).Once()

	asset, err := suite.service.CreateAsset(ctx, req, suite.ownerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(asset)
	suite.True(asset.InitialValue.Equal(decimal.RequireFromString("2500.75")))
	suite.True(asset.CurrentValue.Equal(asset.InitialValue))
	suite.Equal(domain.AssetActive, asset.Status)

	suite.Equal(domain.RecordInitial, savedSeed.RecordType)
	suite.True(savedSeed.AmountChange.IsZero())
	suite.True(savedSeed.ValueAfter.Equal(asset.InitialValue))
	suite.Equal(asset.AssetID, savedSeed.AssetID)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestCreateAsset_BadAmount() {
	ctx := context.Background()
	req := dto.CreateAssetRequest{Name: "X", AssetType: "CRYPTO", CurrencyCode: "ETH", InitialValue: "not-a-number"}

	_, err := suite.service.CreateAsset(ctx, req, suite.ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "SaveAssetWithSeedRecord", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestApplyRecord_Addition() {
	ctx := context.Background()
	asset := suite.asset
	req := dto.ApplyRecordRequest{RecordType: "ADDITION", Amount: "250.50"}

	suite.expectTx(ctx)
	suite.mockAssetRepo.On("FindAssetByIDForUpdate", ctx, mock.Anything, asset.AssetID).Return(&asset, nil).Once()
	suite.mockAssetRepo.On("SaveRecordInTx", ctx, mock.Anything, mock.MatchedBy(func(r domain.AssetRecord) bool {
		return r.AmountChange.Equal(decimal.RequireFromString("250.50")) &&
			r.ValueAfter.Equal(decimal.RequireFromString("1250.50"))
	})).Return(nil).Once()
	suite.mockAssetRepo.On("UpdateAssetValueInTx", ctx, mock.Anything, asset.AssetID,
		decimal.RequireFromString("1250.50"), suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAssetRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	updated, record, err := suite.service.ApplyRecord(ctx, asset.AssetID, req, suite.ownerID)

	suite.Require().NoError(err)
	suite.True(updated.CurrentValue.Equal(decimal.RequireFromString("1250.50")))
	suite.Equal(domain.RecordAddition, record.RecordType)
	suite.True(record.ValueAfter.Equal(updated.CurrentValue))
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestApplyRecord_RevaluationDerivesDelta() {
	ctx := context.Background()
	asset := suite.asset
	req := dto.ApplyRecordRequest{RecordType: "REVALUATION", Amount: "800"}

	suite.expectTx(ctx)
	suite.mockAssetRepo.On("FindAssetByIDForUpdate", ctx, mock.Anything, asset.AssetID).Return(&asset, nil).Once()
	suite.mockAssetRepo.On("SaveRecordInTx", ctx, mock.Anything, mock.MatchedBy(func(r domain.AssetRecord) bool {
		return r.AmountChange.Equal(decimal.NewFromInt(-200)) && r.ValueAfter.Equal(decimal.NewFromInt(800))
	})).Return(nil).Once()
	suite.mockAssetRepo.On("UpdateAssetValueInTx", ctx, mock.Anything, asset.AssetID,
		decimal.NewFromInt(800), suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAssetRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	updated, record, err := suite.service.ApplyRecord(ctx, asset.AssetID, req, suite.ownerID)

	suite.Require().NoError(err)
	suite.True(updated.CurrentValue.Equal(decimal.NewFromInt(800)))
	suite.True(record.AmountChange.Equal(decimal.NewFromInt(-200)))
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestApplyRecord_NonOwnerForbidden() {
	ctx := context.Background()
	asset := suite.asset
	strangerID := uuid.NewString()
	stranger := domain.User{UserID: strangerID, Role: domain.RoleMember, Status: domain.UserApproved}
	req := dto.ApplyRecordRequest{RecordType: "ADDITION", Amount: "10"}

	suite.expectTx(ctx)
	suite.mockAssetRepo.On("FindAssetByIDForUpdate", ctx, mock.Anything, asset.AssetID).Return(&asset, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, strangerID).Return(&stranger, nil).Once()

	_, _, err := suite.service.ApplyRecord(ctx, asset.AssetID, req, strangerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "SaveRecordInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestApplyRecord_AdminAllowed() {
	ctx := context.Background()
	asset := suite.asset
	adminID := uuid.NewString()
	admin := domain.User{UserID: adminID, Role: domain.RoleAdmin, Status: domain.UserApproved}
	req := dto.ApplyRecordRequest{RecordType: "CONSUMPTION", Amount: "-100"}

	suite.expectTx(ctx)
	suite.mockAssetRepo.On("FindAssetByIDForUpdate", ctx, mock.Anything, asset.AssetID).Return(&asset, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, adminID).Return(&admin, nil).Once()
	suite.mockAssetRepo.On("SaveRecordInTx", ctx, mock.Anything, mock.AnythingOfType("domain.AssetRecord")).Return(nil).Once()
	suite.mockAssetRepo.On("UpdateAssetValueInTx", ctx, mock.Anything, asset.AssetID,
		decimal.NewFromInt(900), adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAssetRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	updated, _, err := suite.service.ApplyRecord(ctx, asset.AssetID, req, adminID)

	suite.Require().NoError(err)
	suite.True(updated.CurrentValue.Equal(decimal.NewFromInt(900)))
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestRecalculate_RewritesStaleDerivedFields() {
	ctx := context.Background()
	asset := suite.asset
	day := func(d int) time.Time { return time.Date(2025, 2, d, 0, 0, 0, 0, time.UTC) }

	records := []domain.AssetRecord{
		{RecordID: "r1", AssetID: asset.AssetID, RecordType: domain.RecordInitial,
			AmountChange: decimal.Zero, ValueAfter: decimal.NewFromInt(1000),
			Date: day(1), AuditFields: domain.AuditFields{CreatedAt: day(1)}},
		// Stale: value-after should be 1500 after the replay.
		{RecordID: "r2", AssetID: asset.AssetID, RecordType: domain.RecordAddition,
			AmountChange: decimal.NewFromInt(500), ValueAfter: decimal.NewFromInt(1400),
			Date: day(2), AuditFields: domain.AuditFields{CreatedAt: day(2)}},
	}

	suite.expectTx(ctx)
	suite.mockAssetRepo.On("FindAssetByIDForUpdate", ctx, mock.Anything, asset.AssetID).Return(&asset, nil).Once()
	suite.mockAssetRepo.On("FindRecordsByAssetIDInTx", ctx, mock.Anything, asset.AssetID).Return(records, nil).Once()
	suite.mockAssetRepo.On("UpdateRecordDerivedInTx", ctx, mock.Anything, "r2",
		decimal.NewFromInt(500), decimal.NewFromInt(1500), suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAssetRepo.On("UpdateAssetValueInTx", ctx, mock.Anything, asset.AssetID,
		decimal.NewFromInt(1500), suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAssetRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.Recalculate(ctx, asset.AssetID, suite.ownerID)

	suite.Require().NoError(err)
	suite.True(updated.CurrentValue.Equal(decimal.NewFromInt(1500)))
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestRecalculate_ForeignRecordAborts() {
	ctx := context.Background()
	asset := suite.asset

	records := []domain.AssetRecord{
		{RecordID: "r1", AssetID: uuid.NewString(), RecordType: domain.RecordInitial,
			AmountChange: decimal.Zero, ValueAfter: decimal.NewFromInt(1000)},
	}

	suite.expectTx(ctx)
	suite.mockAssetRepo.On("FindAssetByIDForUpdate", ctx, mock.Anything, asset.AssetID).Return(&asset, nil).Once()
	suite.mockAssetRepo.On("FindRecordsByAssetIDInTx", ctx, mock.Anything, asset.AssetID).Return(records, nil).Once()

	_, err := suite.service.Recalculate(ctx, asset.AssetID, suite.ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConsistency)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestUpdateRecord_EditsAuthoritativeFieldAndReplays() {
	ctx := context.Background()
	asset := suite.asset
	day := func(d int) time.Time { return time.Date(2025, 2, d, 0, 0, 0, 0, time.UTC) }

	target := domain.AssetRecord{
		RecordID: "r2", AssetID: asset.AssetID, RecordType: domain.RecordAddition,
		AmountChange: decimal.NewFromInt(500), ValueAfter: decimal.NewFromInt(1500),
		Date: day(2), AuditFields: domain.AuditFields{CreatedAt: day(2)},
	}
	history := []domain.AssetRecord{
		{RecordID: "r1", AssetID: asset.AssetID, RecordType: domain.RecordInitial,
			AmountChange: decimal.Zero, ValueAfter: decimal.NewFromInt(1000),
			Date: day(1), AuditFields: domain.AuditFields{CreatedAt: day(1)}},
		{RecordID: "r2", AssetID: asset.AssetID, RecordType: domain.RecordAddition,
			AmountChange: decimal.NewFromInt(300), ValueAfter: decimal.NewFromInt(1500),
			Date: day(2), AuditFields: domain.AuditFields{CreatedAt: day(2)}},
	}

	newAmount := "300"
	suite.mockAssetRepo.On("FindRecordByID", ctx, "r2").Return(&target, nil).Once()
	suite.expectTx(ctx)
	suite.mockAssetRepo.On("FindAssetByIDForUpdate", ctx, mock.Anything, asset.AssetID).Return(&asset, nil).Once()
	suite.mockAssetRepo.On("UpdateRecordInTx", ctx, mock.Anything, mock.MatchedBy(func(r domain.AssetRecord) bool {
		// The delta record's authoritative field takes the new amount.
		return r.RecordID == "r2" && r.AmountChange.Equal(decimal.NewFromInt(300))
	})).Return(nil).Once()
	suite.mockAssetRepo.On("FindRecordsByAssetIDInTx", ctx, mock.Anything, asset.AssetID).Return(history, nil).Once()
	suite.mockAssetRepo.On("UpdateRecordDerivedInTx", ctx, mock.Anything, "r2",
		decimal.NewFromInt(300), decimal.NewFromInt(1300), suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAssetRepo.On("UpdateAssetValueInTx", ctx, mock.Anything, asset.AssetID,
		decimal.NewFromInt(1300), suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAssetRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.UpdateRecord(ctx, "r2", dto.UpdateRecordRequest{Amount: &newAmount}, suite.ownerID)

	suite.Require().NoError(err)
	suite.True(updated.CurrentValue.Equal(decimal.NewFromInt(1300)))
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestUpdateRecord_OrphanRecord() {
	ctx := context.Background()
	target := domain.AssetRecord{RecordID: "r9", AssetID: uuid.NewString(), RecordType: domain.RecordAddition}

	suite.mockAssetRepo.On("FindRecordByID", ctx, "r9").Return(&target, nil).Once()
	suite.expectTx(ctx)
	suite.mockAssetRepo.On("FindAssetByIDForUpdate", ctx, mock.Anything, target.AssetID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateRecord(ctx, "r9", dto.UpdateRecordRequest{}, suite.ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConsistency)
}

func (suite *AssetServiceTestSuite) TestDeleteRecord_ReplaysRemainingHistory() {
	ctx := context.Background()
	asset := suite.asset
	day := func(d int) time.Time { return time.Date(2025, 2, d, 0, 0, 0, 0, time.UTC) }

	target := domain.AssetRecord{
		RecordID: "r2", AssetID: asset.AssetID, RecordType: domain.RecordAddition,
		AmountChange: decimal.NewFromInt(500), ValueAfter: decimal.NewFromInt(1500),
	}
	remaining := []domain.AssetRecord{
		{RecordID: "r1", AssetID: asset.AssetID, RecordType: domain.RecordInitial,
			AmountChange: decimal.Zero, ValueAfter: decimal.NewFromInt(1000),
			Date: day(1), AuditFields: domain.AuditFields{CreatedAt: day(1)}},
	}

	suite.mockAssetRepo.On("FindRecordByID", ctx, "r2").Return(&target, nil).Once()
	suite.expectTx(ctx)
	suite.mockAssetRepo.On("FindAssetByIDForUpdate", ctx, mock.Anything, asset.AssetID).Return(&asset, nil).Once()
	suite.mockAssetRepo.On("DeleteRecordInTx", ctx, mock.Anything, "r2").Return(nil).Once()
	suite.mockAssetRepo.On("FindRecordsByAssetIDInTx", ctx, mock.Anything, asset.AssetID).Return(remaining, nil).Once()
	suite.mockAssetRepo.On("UpdateAssetValueInTx", ctx, mock.Anything, asset.AssetID,
		decimal.NewFromInt(1000), suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAssetRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.DeleteRecord(ctx, "r2", suite.ownerID)

	suite.Require().NoError(err)
	suite.True(updated.CurrentValue.Equal(decimal.NewFromInt(1000)))
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestListRecords_Paginates() {
	ctx := context.Background()
	asset := suite.asset
	day := func(d int) time.Time { return time.Date(2025, 2, d, 0, 0, 0, 0, time.UTC) }

	history := make([]domain.AssetRecord, 0, 3)
	for i := 1; i <= 3; i++ {
		history = append(history, domain.AssetRecord{
			RecordID: uuid.NewString(), AssetID: asset.AssetID, RecordType: domain.RecordAddition,
			Date: day(i), AuditFields: domain.AuditFields{CreatedAt: day(i)},
		})
	}

	suite.mockAssetRepo.On("FindAssetByID", ctx, asset.AssetID).Return(&asset, nil).Twice()
	suite.mockAssetRepo.On("FindRecordsByAssetID", ctx, asset.AssetID).Return(history, nil).Twice()

	page1, token, err := suite.service.ListRecords(ctx, asset.AssetID, suite.ownerID, 2, "")
	suite.Require().NoError(err)
	suite.Len(page1, 2)
	suite.NotEmpty(token)

	page2, token2, err := suite.service.ListRecords(ctx, asset.AssetID, suite.ownerID, 2, token)
	suite.Require().NoError(err)
	suite.Len(page2, 1)
	suite.Empty(token2)
	suite.Equal(history[2].RecordID, page2[0].RecordID)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestDeleteAsset_OwnerDeletesWithRecords() {
	ctx := context.Background()
	asset := suite.asset

	suite.mockAssetRepo.On("FindAssetByID", ctx, asset.AssetID).Return(&asset, nil).Once()
	suite.mockAssetRepo.On("DeleteAssetWithRecords", ctx, asset.AssetID).Return(nil).Once()

	err := suite.service.DeleteAsset(ctx, asset.AssetID, suite.ownerID)

	suite.Require().NoError(err)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAssetService(t *testing.T) {
	suite.Run(t, new(AssetServiceTestSuite))
}
