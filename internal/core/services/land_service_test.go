package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/openlandreg/land_registry_app/internal/apperrors"
	"github.com/openlandreg/land_registry_app/internal/core/domain"
	portssvc "github.com/openlandreg/land_registry_app/internal/core/ports/services"
	"github.com/openlandreg/land_registry_app/internal/core/services"
	"github.com/openlandreg/land_registry_app/internal/dto"
	"github.com/openlandreg/land_registry_app/internal/platform/config"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type LandServiceTestSuite struct {
	suite.Suite
	mockLandRepo  *MockLandRepository
	mockUserRepo  *MockUserRepository
	mockSlotSvc   *MockSlotService
	mockLedgerSvc *MockLedgerService
	service       portssvc.LandSvcFacade

	citizen  domain.Caller
	officer  domain.Caller
	admin    domain.Caller
	stranger domain.Caller
}

func (suite *LandServiceTestSuite) SetupTest() {
	suite.mockLandRepo = new(MockLandRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockSlotSvc = new(MockSlotService)
	suite.mockLedgerSvc = new(MockLedgerService)
	cfg := &config.Config{SlotPerDayCapacity: 5}
	suite.service = services.NewLandService(cfg, suite.mockLandRepo, suite.mockUserRepo, suite.mockSlotSvc, suite.mockLedgerSvc)

	suite.citizen = domain.Caller{ID: uuid.NewString(), Role: domain.RoleCitizen, District: "North"}
	suite.officer = domain.Caller{ID: uuid.NewString(), Role: domain.RoleOfficer, District: "North"}
	suite.admin = domain.Caller{ID: uuid.NewString(), Role: domain.RoleAdmin, District: "North"}
	suite.stranger = domain.Caller{ID: uuid.NewString(), Role: domain.RoleCitizen, District: "North"}
}

func (suite *LandServiceTestSuite) pendingLand(landID string) *domain.LandRecord {
	return &domain.LandRecord{
		LandID:             landID,
		SurveyNumber:       "SRV-2001",
		OwnerID:            suite.citizen.ID,
		OwnerName:          "Asha Rao",
		AssignedReviewerID: suite.officer.ID,
		Area:               decimal.NewFromInt(3),
		District:           "North",
		Status:             domain.LandPendingReview,
	}
}

func (suite *LandServiceTestSuite) pendingLandWithReport(landID string) *domain.LandRecord {
	land := suite.pendingLand(landID)
	report := "https://docs.example/report-1"
	land.ReviewerReportRef = &report
	return land
}

// --- SubmitLand Tests ---

func (suite *LandServiceTestSuite) TestSubmitLand_Success() {
	ctx := context.Background()
	req := dto.SubmitLandRequest{
		SurveyNumber:    "SRV-2001",
		Area:            decimal.NewFromInt(3),
		District:        "North",
		LandType:        "AGRICULTURAL",
		Address:         "14 Canal Road",
		ReviewerID:      suite.officer.ID,
		AppointmentDate: "2026-03-04",
	}
	appointment := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)

	suite.mockUserRepo.On("FindUserByID", ctx, suite.officer.ID).
		Return(&domain.User{UserID: suite.officer.ID, Role: domain.RoleOfficer}, nil).Once()
	suite.mockSlotSvc.On("ValidateSlot", ctx, suite.officer.ID, appointment).Return(nil).Once()
	suite.mockLandRepo.On("FindLandBySurveyNumber", ctx, "SRV-2001").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.citizen.ID).
		Return(&domain.User{UserID: suite.citizen.ID, Name: "Asha Rao", Role: domain.RoleCitizen}, nil).Once()
	suite.mockLandRepo.On("CreateLand", ctx, mock.MatchedBy(func(land domain.LandRecord) bool {
		return land.SurveyNumber == "SRV-2001" &&
			land.OwnerID == suite.citizen.ID &&
			land.OwnerName == "Asha Rao" &&
			land.AssignedReviewerID == suite.officer.ID &&
			land.Status == domain.LandPendingReview &&
			land.AppointmentDate != nil && land.AppointmentDate.Equal(appointment)
	}), 5).Return(nil).Once()

	land, err := suite.service.SubmitLand(ctx, suite.citizen, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(land)
	suite.NotEmpty(land.LandID)
	suite.Equal(domain.LandPendingReview, land.Status)
	suite.Nil(land.Fingerprint)
	suite.mockLandRepo.AssertExpectations(suite.T())
}

func (suite *LandServiceTestSuite) TestSubmitLand_CapacityRaceLost() {
	ctx := context.Background()
	req := dto.SubmitLandRequest{
		SurveyNumber:    "SRV-2002",
		Area:            decimal.NewFromInt(1),
		District:        "North",
		LandType:        "RESIDENTIAL",
		Address:         "2 Hill Street",
		ReviewerID:      suite.officer.ID,
		AppointmentDate: "2026-03-04",
	}

	// Advisory check passes, but the booking transaction sees the last slot
	// taken and aborts.
	suite.mockUserRepo.On("FindUserByID", ctx, suite.officer.ID).
		Return(&domain.User{UserID: suite.officer.ID, Role: domain.RoleOfficer}, nil).Once()
	suite.mockSlotSvc.On("ValidateSlot", ctx, suite.officer.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockLandRepo.On("FindLandBySurveyNumber", ctx, "SRV-2002").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.citizen.ID).
		Return(&domain.User{UserID: suite.citizen.ID, Name: "Asha Rao"}, nil).Once()
	suite.mockLandRepo.On("CreateLand", ctx, mock.AnythingOfType("domain.LandRecord"), 5).
		Return(apperrors.ErrCapacityExceeded).Once()

	land, err := suite.service.SubmitLand(ctx, suite.citizen, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCapacityExceeded)
	suite.Nil(land)
}

func (suite *LandServiceTestSuite) TestSubmitLand_BadDateFormat() {
	ctx := context.Background()
	req := dto.SubmitLandRequest{AppointmentDate: "04/03/2026", ReviewerID: suite.officer.ID}

	land, err := suite.service.SubmitLand(ctx, suite.citizen, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(land)
	suite.mockSlotSvc.AssertNotCalled(suite.T(), "ValidateSlot", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LandServiceTestSuite) TestSubmitLand_ReviewerNotOfficer() {
	ctx := context.Background()
	fellowCitizen := uuid.NewString()
	req := dto.SubmitLandRequest{
		SurveyNumber:    "SRV-2001",
		Area:            decimal.NewFromInt(3),
		District:        "North",
		LandType:        "AGRICULTURAL",
		Address:         "14 Canal Road",
		ReviewerID:      fellowCitizen,
		AppointmentDate: "2026-03-04",
	}

	// A record assigned to a non-officer could never be reviewed, so the
	// submission is refused outright.
	suite.mockUserRepo.On("FindUserByID", ctx, fellowCitizen).
		Return(&domain.User{UserID: fellowCitizen, Role: domain.RoleCitizen}, nil).Once()

	land, err := suite.service.SubmitLand(ctx, suite.citizen, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(land)
	suite.mockSlotSvc.AssertNotCalled(suite.T(), "ValidateSlot", mock.Anything, mock.Anything, mock.Anything)
	suite.mockLandRepo.AssertNotCalled(suite.T(), "CreateLand", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LandServiceTestSuite) TestSubmitLand_DuplicateSurveyNumber() {
	ctx := context.Background()
	req := dto.SubmitLandRequest{
		SurveyNumber:    "SRV-2001",
		Area:            decimal.NewFromInt(3),
		District:        "North",
		LandType:        "AGRICULTURAL",
		Address:         "14 Canal Road",
		ReviewerID:      suite.officer.ID,
		AppointmentDate: "2026-03-04",
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.officer.ID).
		Return(&domain.User{UserID: suite.officer.ID, Role: domain.RoleOfficer}, nil).Once()
	suite.mockSlotSvc.On("ValidateSlot", ctx, suite.officer.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockLandRepo.On("FindLandBySurveyNumber", ctx, "SRV-2001").
		Return(suite.pendingLand(uuid.NewString()), nil).Once()

	land, err := suite.service.SubmitLand(ctx, suite.citizen, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(land)
	suite.mockLandRepo.AssertNotCalled(suite.T(), "CreateLand", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LandServiceTestSuite) TestSubmitLand_WrongRole() {
	ctx := context.Background()

	land, err := suite.service.SubmitLand(ctx, suite.officer, dto.SubmitLandRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(land)
}

// --- RegisterLand Tests ---

func (suite *LandServiceTestSuite) TestRegisterLand_Success() {
	ctx := context.Background()
	req := dto.RegisterLandRequest{
		SurveyNumber: "SRV-2003",
		OwnerID:      suite.citizen.ID,
		OwnerName:    "Asha Rao",
		Area:         decimal.NewFromInt(2),
		District:     "North",
		LandType:     "COMMERCIAL",
		Address:      "9 Market Lane",
		DocumentRef:  "https://docs.example/deed-1",
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.citizen.ID).
		Return(&domain.User{UserID: suite.citizen.ID, Role: domain.RoleCitizen}, nil).Once()
	suite.mockLandRepo.On("FindLandBySurveyNumber", ctx, "SRV-2003").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLandRepo.On("CreateLand", ctx, mock.MatchedBy(func(land domain.LandRecord) bool {
		return land.AssignedReviewerID == suite.officer.ID &&
			land.AppointmentDate == nil &&
			land.DocumentRef != nil && *land.DocumentRef == req.DocumentRef
	}), 5).Return(nil).Once()

	land, err := suite.service.RegisterLand(ctx, suite.officer, req)

	suite.Require().NoError(err)
	suite.Equal(suite.officer.ID, land.AssignedReviewerID)
	suite.mockLandRepo.AssertExpectations(suite.T())
}

func (suite *LandServiceTestSuite) TestRegisterLand_OwnerNotCitizen() {
	ctx := context.Background()
	req := dto.RegisterLandRequest{OwnerID: suite.admin.ID}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.admin.ID).
		Return(&domain.User{UserID: suite.admin.ID, Role: domain.RoleAdmin}, nil).Once()

	land, err := suite.service.RegisterLand(ctx, suite.officer, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(land)
	suite.mockLandRepo.AssertNotCalled(suite.T(), "CreateLand", mock.Anything, mock.Anything, mock.Anything)
}

// --- ApproveLand Tests ---

func (suite *LandServiceTestSuite) TestApproveLand_MintsThenPersists() {
	ctx := context.Background()
	landID := uuid.NewString()
	land := suite.pendingLandWithReport(landID)
	proof := &domain.LedgerProof{Fingerprint: strings.Repeat("a", 64), Receipt: "rcpt-1", RecordedAt: time.Now()}

	approved := suite.pendingLandWithReport(landID)
	approved.Status = domain.LandApproved
	approved.Fingerprint = &proof.Fingerprint
	approved.LedgerReceipt = &proof.Receipt

	suite.mockLandRepo.On("FindLandByID", ctx, landID).Return(land, nil).Once()
	suite.mockLedgerSvc.On("MintLand", ctx, land).Return(proof, nil).Once()
	suite.mockLandRepo.On("ApproveLand", ctx, landID, *proof, suite.admin.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockLandRepo.On("FindLandByID", ctx, landID).Return(approved, nil).Once()

	result, err := suite.service.ApproveLand(ctx, suite.admin, landID)

	suite.Require().NoError(err)
	suite.Equal(domain.LandApproved, result.Status)
	suite.True(result.IsMinted())
	suite.mockLandRepo.AssertExpectations(suite.T())
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *LandServiceTestSuite) TestApproveLand_NoReportAttached() {
	ctx := context.Background()
	landID := uuid.NewString()

	suite.mockLandRepo.On("FindLandByID", ctx, landID).Return(suite.pendingLand(landID), nil).Once()

	result, err := suite.service.ApproveLand(ctx, suite.admin, landID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
	suite.Nil(result)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "MintLand", mock.Anything, mock.Anything)
}

func (suite *LandServiceTestSuite) TestApproveLand_LedgerUnavailableLeavesStateUntouched() {
	ctx := context.Background()
	landID := uuid.NewString()
	land := suite.pendingLandWithReport(landID)

	suite.mockLandRepo.On("FindLandByID", ctx, landID).Return(land, nil).Once()
	suite.mockLedgerSvc.On("MintLand", ctx, land).Return(nil, apperrors.ErrLedgerUnavailable).Once()

	result, err := suite.service.ApproveLand(ctx, suite.admin, landID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLedgerUnavailable)
	suite.Nil(result)
	suite.mockLandRepo.AssertNotCalled(suite.T(), "ApproveLand", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LandServiceTestSuite) TestApproveLand_AlreadyRegisteredSurfaced() {
	ctx := context.Background()
	landID := uuid.NewString()
	land := suite.pendingLandWithReport(landID)

	// A retry after a phase-2 failure recomputes the identical fingerprint and
	// the ledger refuses the duplicate.
	suite.mockLandRepo.On("FindLandByID", ctx, landID).Return(land, nil).Once()
	suite.mockLedgerSvc.On("MintLand", ctx, land).Return(nil, apperrors.ErrAlreadyRegistered).Once()

	result, err := suite.service.ApproveLand(ctx, suite.admin, landID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyRegistered)
	suite.Nil(result)
}

func (suite *LandServiceTestSuite) TestApproveLand_PhaseTwoFailure() {
	ctx := context.Background()
	landID := uuid.NewString()
	land := suite.pendingLandWithReport(landID)
	proof := &domain.LedgerProof{Fingerprint: strings.Repeat("b", 64), Receipt: "rcpt-2", RecordedAt: time.Now()}

	suite.mockLandRepo.On("FindLandByID", ctx, landID).Return(land, nil).Once()
	suite.mockLedgerSvc.On("MintLand", ctx, land).Return(proof, nil).Once()
	suite.mockLandRepo.On("ApproveLand", ctx, landID, *proof, suite.admin.ID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrStateConflict).Once()

	result, err := suite.service.ApproveLand(ctx, suite.admin, landID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
	suite.Nil(result)
}

func (suite *LandServiceTestSuite) TestApproveLand_NotAdmin() {
	ctx := context.Background()

	result, err := suite.service.ApproveLand(ctx, suite.officer, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
}

// --- RejectLand Tests ---

func (suite *LandServiceTestSuite) TestRejectLand_ByAdmin() {
	ctx := context.Background()
	landID := uuid.NewString()

	rejected := suite.pendingLand(landID)
	rejected.Status = domain.LandRejected

	suite.mockLandRepo.On("RejectLand", ctx, landID, "boundary mismatch", suite.admin.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockLandRepo.On("FindLandByID", ctx, landID).Return(rejected, nil).Once()

	result, err := suite.service.RejectLand(ctx, suite.admin, landID, "boundary mismatch")

	suite.Require().NoError(err)
	suite.Equal(domain.LandRejected, result.Status)
}

func (suite *LandServiceTestSuite) TestRejectLand_OfficerNotAssigned() {
	ctx := context.Background()
	landID := uuid.NewString()
	land := suite.pendingLand(landID)
	land.AssignedReviewerID = uuid.NewString()

	suite.mockLandRepo.On("FindLandByID", ctx, landID).Return(land, nil).Once()

	result, err := suite.service.RejectLand(ctx, suite.officer, landID, "not my parcel")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
	suite.mockLandRepo.AssertNotCalled(suite.T(), "RejectLand", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LandServiceTestSuite) TestRejectLand_ReasonRequired() {
	ctx := context.Background()

	result, err := suite.service.RejectLand(ctx, suite.admin, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
}

// --- Read Path Tests ---

func (suite *LandServiceTestSuite) TestGetLandByID_StrangerForbidden() {
	ctx := context.Background()
	landID := uuid.NewString()

	suite.mockLandRepo.On("FindLandByID", ctx, landID).Return(suite.pendingLand(landID), nil).Once()

	result, err := suite.service.GetLandByID(ctx, suite.stranger, landID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
}

func (suite *LandServiceTestSuite) TestListReviewQueue_FiltersReportless() {
	ctx := context.Background()
	expected := []domain.LandRecord{*suite.pendingLand(uuid.NewString())}

	suite.mockLandRepo.On("ListPendingByReviewer", ctx, suite.officer.ID, mock.MatchedBy(func(flag *bool) bool {
		return flag != nil && !*flag
	})).Return(expected, nil).Once()

	result, err := suite.service.ListReviewQueue(ctx, suite.officer)

	suite.Require().NoError(err)
	suite.Len(result, 1)
}

// --- ForceSync and Reset Tests ---

func (suite *LandServiceTestSuite) TestForceSyncLand_ApprovedAdoptsLedgerDigest() {
	ctx := context.Background()
	landID := uuid.NewString()
	land := suite.pendingLandWithReport(landID)
	land.Status = domain.LandApproved

	suite.mockLandRepo.On("FindLandByID", ctx, landID).Return(land, nil).Once()
	suite.mockLedgerSvc.On("ReadRegistration", ctx, land).Return("ledger-digest-7", nil).Once()
	suite.mockLandRepo.On("AdoptLedgerProof", ctx, landID, mock.MatchedBy(func(proof domain.LedgerProof) bool {
		return proof.Fingerprint == "ledger-digest-7" && strings.HasPrefix(proof.Receipt, "force-sync:")
	}), suite.admin.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockLandRepo.On("FindLandByID", ctx, landID).Return(land, nil).Once()

	result, digest, err := suite.service.ForceSyncLand(ctx, suite.admin, landID)

	suite.Require().NoError(err)
	suite.Equal("ledger-digest-7", digest)
	suite.NotNil(result)
	suite.mockLandRepo.AssertExpectations(suite.T())
}

func (suite *LandServiceTestSuite) TestForceSyncLand_PendingApprovesWithProof() {
	ctx := context.Background()
	landID := uuid.NewString()
	land := suite.pendingLandWithReport(landID)

	suite.mockLandRepo.On("FindLandByID", ctx, landID).Return(land, nil).Once()
	suite.mockLedgerSvc.On("ReadRegistration", ctx, land).Return("ledger-digest-8", nil).Once()
	suite.mockLandRepo.On("ApproveLand", ctx, landID, mock.MatchedBy(func(proof domain.LedgerProof) bool {
		return proof.Fingerprint == "ledger-digest-8"
	}), suite.admin.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockLandRepo.On("FindLandByID", ctx, landID).Return(land, nil).Once()

	_, digest, err := suite.service.ForceSyncLand(ctx, suite.admin, landID)

	suite.Require().NoError(err)
	suite.Equal("ledger-digest-8", digest)
}

func (suite *LandServiceTestSuite) TestForceSyncLand_RejectedConflicts() {
	ctx := context.Background()
	landID := uuid.NewString()
	land := suite.pendingLand(landID)
	land.Status = domain.LandRejected

	suite.mockLandRepo.On("FindLandByID", ctx, landID).Return(land, nil).Once()
	suite.mockLedgerSvc.On("ReadRegistration", ctx, land).Return("ledger-digest-9", nil).Once()

	_, _, err := suite.service.ForceSyncLand(ctx, suite.admin, landID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
}

func (suite *LandServiceTestSuite) TestResetLandMint_ClearsProof() {
	ctx := context.Background()
	landID := uuid.NewString()
	cleared := suite.pendingLandWithReport(landID)

	suite.mockLandRepo.On("ClearLedgerProof", ctx, landID, suite.admin.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockLandRepo.On("FindLandByID", ctx, landID).Return(cleared, nil).Once()

	result, err := suite.service.ResetLandMint(ctx, suite.admin, landID)

	suite.Require().NoError(err)
	suite.Equal(domain.LandPendingReview, result.Status)
	suite.False(result.IsMinted())
}

// --- Run Test Suite ---
func TestLandService(t *testing.T) {
	suite.Run(t, new(LandServiceTestSuite))
}
