package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/openlandreg/land_registry_app/internal/apperrors"
	"github.com/openlandreg/land_registry_app/internal/core/domain"
	portssvc "github.com/openlandreg/land_registry_app/internal/core/ports/services"
	"github.com/openlandreg/land_registry_app/internal/core/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockRegistry *MockLedgerRegistry
	service      portssvc.LedgerSvcFacade
	fixedNow     time.Time
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockRegistry = new(MockLedgerRegistry)
	suite.service = services.NewLedgerService(suite.mockRegistry)
	suite.fixedNow = time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	services.SetLedgerClock(suite.service, func() time.Time { return suite.fixedNow })
}

func (suite *LedgerServiceTestSuite) sampleLand() *domain.LandRecord {
	return &domain.LandRecord{
		LandID:       uuid.NewString(),
		SurveyNumber: "SRV-1042",
		OwnerID:      uuid.NewString(),
		OwnerName:    "Asha Rao",
		Area:         decimal.NewFromFloat(2.5),
		Address:      "14 Canal Road",
	}
}

// --- Fingerprint Tests ---

func (suite *LedgerServiceTestSuite) TestLandFingerprint_Deterministic() {
	land := suite.sampleLand()

	first := suite.service.LandFingerprint(land)
	second := suite.service.LandFingerprint(land)

	suite.Equal(first, second)
	suite.Len(first, 64) // hex-encoded SHA-256
}

func (suite *LedgerServiceTestSuite) TestLandFingerprint_SensitiveToFields() {
	land := suite.sampleLand()
	original := suite.service.LandFingerprint(land)

	land.OwnerName = "Someone Else"
	suite.NotEqual(original, suite.service.LandFingerprint(land))
}

func (suite *LedgerServiceTestSuite) TestTransferFingerprint_FreshPerTransfer() {
	land := suite.sampleLand()
	seller := uuid.NewString()
	buyer := uuid.NewString()

	first := &domain.TransferRequest{TransferID: uuid.NewString(), SellerID: seller, BuyerID: buyer}
	second := &domain.TransferRequest{TransferID: uuid.NewString(), SellerID: seller, BuyerID: buyer}

	// Same parcel, same parties: the transfer id keeps the digests distinct.
	suite.NotEqual(
		suite.service.TransferFingerprint(land, first),
		suite.service.TransferFingerprint(land, second),
	)
}

// --- MintLand Tests ---

func (suite *LedgerServiceTestSuite) TestMintLand_Success() {
	ctx := context.Background()
	land := suite.sampleLand()
	expectedDigest := suite.service.LandFingerprint(land)

	suite.mockRegistry.On("Write", ctx, "land:SRV-1042", expectedDigest).Return("rcpt-901", nil).Once()

	proof, err := suite.service.MintLand(ctx, land)

	suite.Require().NoError(err)
	suite.Require().NotNil(proof)
	suite.Equal(expectedDigest, proof.Fingerprint)
	suite.Equal("rcpt-901", proof.Receipt)
	suite.Equal(suite.fixedNow, proof.RecordedAt)
	suite.mockRegistry.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestMintLand_AlreadyRegistered() {
	ctx := context.Background()
	land := suite.sampleLand()

	suite.mockRegistry.On("Write", ctx, "land:SRV-1042", suite.service.LandFingerprint(land)).
		Return("", apperrors.ErrAlreadyRegistered).Once()

	proof, err := suite.service.MintLand(ctx, land)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyRegistered)
	suite.Nil(proof)
}

func (suite *LedgerServiceTestSuite) TestMintLand_LedgerUnavailable() {
	ctx := context.Background()
	land := suite.sampleLand()

	suite.mockRegistry.On("Write", ctx, "land:SRV-1042", suite.service.LandFingerprint(land)).
		Return("", apperrors.ErrLedgerUnavailable).Once()

	proof, err := suite.service.MintLand(ctx, land)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLedgerUnavailable)
	suite.Nil(proof)
}

// --- MintTransfer Tests ---

func (suite *LedgerServiceTestSuite) TestMintTransfer_SharesLandKey() {
	ctx := context.Background()
	land := suite.sampleLand()
	transfer := &domain.TransferRequest{
		TransferID: uuid.NewString(),
		LandID:     land.LandID,
		SellerID:   land.OwnerID,
		BuyerID:    uuid.NewString(),
	}
	expectedDigest := suite.service.TransferFingerprint(land, transfer)

	// The transfer digest is written under the parcel's key, so the ledger's
	// latest entry for the parcel becomes the new owner's proof.
	suite.mockRegistry.On("Write", ctx, "land:SRV-1042", expectedDigest).Return("rcpt-902", nil).Once()

	proof, err := suite.service.MintTransfer(ctx, land, transfer)

	suite.Require().NoError(err)
	suite.Equal(expectedDigest, proof.Fingerprint)
	suite.Equal("rcpt-902", proof.Receipt)
	suite.mockRegistry.AssertExpectations(suite.T())
}

// --- ReadRegistration Tests ---

func (suite *LedgerServiceTestSuite) TestReadRegistration_Passthrough() {
	ctx := context.Background()
	land := suite.sampleLand()

	suite.mockRegistry.On("Read", ctx, "land:SRV-1042").Return("digest-abc", nil).Once()

	digest, err := suite.service.ReadRegistration(ctx, land)

	suite.Require().NoError(err)
	suite.Equal("digest-abc", digest)
}

func (suite *LedgerServiceTestSuite) TestReadRegistration_NotFound() {
	ctx := context.Background()
	land := suite.sampleLand()

	suite.mockRegistry.On("Read", ctx, "land:SRV-1042").Return("", apperrors.ErrNotFound).Once()

	_, err := suite.service.ReadRegistration(ctx, land)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Test Suite ---
func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
