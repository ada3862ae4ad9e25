package services_test

import (
	"context"
	"time"

	"github.com/openlandreg/land_registry_app/internal/core/domain"
	portsrepo "github.com/openlandreg/land_registry_app/internal/core/ports/repositories"
	portssvc "github.com/openlandreg/land_registry_app/internal/core/ports/services"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsersByRole(ctx context.Context, role domain.UserRole, district string) ([]domain.User, error) {
	args := m.Called(ctx, role, district)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Mock LandRepository ---
type MockLandRepository struct {
	mock.Mock
}

func (m *MockLandRepository) FindLandByID(ctx context.Context, landID string) (*domain.LandRecord, error) {
	args := m.Called(ctx, landID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LandRecord), args.Error(1)
}

func (m *MockLandRepository) FindLandBySurveyNumber(ctx context.Context, surveyNumber string) (*domain.LandRecord, error) {
	args := m.Called(ctx, surveyNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LandRecord), args.Error(1)
}

func (m *MockLandRepository) ListLandsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.LandRecord, *string, error) {
	args := m.Called(ctx, ownerID, limit, nextToken)
	var lands []domain.LandRecord
	if args.Get(0) != nil {
		lands = args.Get(0).([]domain.LandRecord)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return lands, token, args.Error(2)
}

func (m *MockLandRepository) ListPendingByReviewer(ctx context.Context, reviewerID string, reportAttached *bool) ([]domain.LandRecord, error) {
	args := m.Called(ctx, reviewerID, reportAttached)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LandRecord), args.Error(1)
}

func (m *MockLandRepository) ListApprovalQueue(ctx context.Context, district string) ([]domain.LandRecord, error) {
	args := m.Called(ctx, district)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LandRecord), args.Error(1)
}

func (m *MockLandRepository) CountAppointments(ctx context.Context, reviewerID string, day time.Time) (int, error) {
	args := m.Called(ctx, reviewerID, day)
	return args.Int(0), args.Error(1)
}

func (m *MockLandRepository) CreateLand(ctx context.Context, land domain.LandRecord, perDayCapacity int) error {
	args := m.Called(ctx, land, perDayCapacity)
	return args.Error(0)
}

func (m *MockLandRepository) AttachReviewerReport(ctx context.Context, landID, reviewerID, reportRef string, updatedAt time.Time) error {
	args := m.Called(ctx, landID, reviewerID, reportRef, updatedAt)
	return args.Error(0)
}

func (m *MockLandRepository) ApproveLand(ctx context.Context, landID string, proof domain.LedgerProof, approverID string, updatedAt time.Time) error {
	args := m.Called(ctx, landID, proof, approverID, updatedAt)
	return args.Error(0)
}

func (m *MockLandRepository) RejectLand(ctx context.Context, landID, reason, rejectedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, landID, reason, rejectedBy, updatedAt)
	return args.Error(0)
}

func (m *MockLandRepository) AdoptLedgerProof(ctx context.Context, landID string, proof domain.LedgerProof, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, landID, proof, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockLandRepository) ClearLedgerProof(ctx context.Context, landID, clearedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, landID, clearedBy, updatedAt)
	return args.Error(0)
}

func (m *MockLandRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}

func (m *MockLandRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLandRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

var _ portsrepo.LandRepositoryWithTx = (*MockLandRepository)(nil)

// --- Mock TransferRepository ---
type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.TransferRequest, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRequest), args.Error(1)
}

func (m *MockTransferRepository) FindActiveTransferByLandID(ctx context.Context, landID string) (*domain.TransferRequest, error) {
	args := m.Called(ctx, landID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRequest), args.Error(1)
}

func (m *MockTransferRepository) ListTransfersByParticipant(ctx context.Context, userID string) ([]domain.TransferRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransferRequest), args.Error(1)
}

func (m *MockTransferRepository) ListTransfersByStatus(ctx context.Context, status domain.TransferStatus, reviewerID string) ([]domain.TransferRequest, error) {
	args := m.Called(ctx, status, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransferRequest), args.Error(1)
}

func (m *MockTransferRepository) CreateTransfer(ctx context.Context, transfer domain.TransferRequest) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) AdvanceTransfer(ctx context.Context, transferID string, expected, next domain.TransferStatus, reportRef *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, transferID, expected, next, reportRef, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockTransferRepository) RejectTransfer(ctx context.Context, transferID string, expected domain.TransferStatus, reason, rejectedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, transferID, expected, reason, rejectedBy, updatedAt)
	return args.Error(0)
}

func (m *MockTransferRepository) CompleteTransfer(ctx context.Context, transferID string, buyerID, landID string, proof domain.LedgerProof, completedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, transferID, buyerID, landID, proof, completedBy, updatedAt)
	return args.Error(0)
}

func (m *MockTransferRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}

func (m *MockTransferRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransferRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

var _ portsrepo.TransferRepositoryWithTx = (*MockTransferRepository)(nil)

// --- Mock LedgerRegistry ---
type MockLedgerRegistry struct {
	mock.Mock
}

func (m *MockLedgerRegistry) Write(ctx context.Context, key, digest string) (string, error) {
	args := m.Called(ctx, key, digest)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerRegistry) Read(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

var _ portsrepo.LedgerRegistry = (*MockLedgerRegistry)(nil)

// --- Mock SlotService ---
type MockSlotService struct {
	mock.Mock
}

func (m *MockSlotService) ListAvailableSlots(ctx context.Context, reviewerID string) ([]domain.SlotAvailability, error) {
	args := m.Called(ctx, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SlotAvailability), args.Error(1)
}

func (m *MockSlotService) ValidateSlot(ctx context.Context, reviewerID string, date time.Time) error {
	args := m.Called(ctx, reviewerID, date)
	return args.Error(0)
}

var _ portssvc.SlotSvcFacade = (*MockSlotService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) LandFingerprint(land *domain.LandRecord) string {
	args := m.Called(land)
	return args.String(0)
}

func (m *MockLedgerService) TransferFingerprint(land *domain.LandRecord, transfer *domain.TransferRequest) string {
	args := m.Called(land, transfer)
	return args.String(0)
}

func (m *MockLedgerService) MintLand(ctx context.Context, land *domain.LandRecord) (*domain.LedgerProof, error) {
	args := m.Called(ctx, land)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerProof), args.Error(1)
}

func (m *MockLedgerService) MintTransfer(ctx context.Context, land *domain.LandRecord, transfer *domain.TransferRequest) (*domain.LedgerProof, error) {
	args := m.Called(ctx, land, transfer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerProof), args.Error(1)
}

func (m *MockLedgerService) ReadRegistration(ctx context.Context, land *domain.LandRecord) (string, error) {
	args := m.Called(ctx, land)
	return args.String(0), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)
