package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openlandreg/land_registry_app/internal/apperrors"
	"github.com/openlandreg/land_registry_app/internal/core/domain"
	portsrepo "github.com/openlandreg/land_registry_app/internal/core/ports/repositories"
	portssvc "github.com/openlandreg/land_registry_app/internal/core/ports/services"
	"github.com/openlandreg/land_registry_app/internal/dto"
	"github.com/openlandreg/land_registry_app/internal/platform/config"
	"github.com/google/uuid"
)

const appointmentDateLayout = "2006-01-02"

// landService implements portssvc.LandSvcFacade: the lifecycle of a land
// record from submission through review to ledger-minted approval or terminal
// rejection.
type landService struct {
	BaseService
	landRepo  portsrepo.LandRepositoryWithTx
	userRepo  portsrepo.UserRepositoryFacade
	slotSvc   portssvc.SlotSvcFacade
	ledgerSvc portssvc.LedgerSvcFacade

	perDayCapacity int
}

// NewLandService creates a new land workflow service.
func NewLandService(cfg *config.Config, landRepo portsrepo.LandRepositoryWithTx, userRepo portsrepo.UserRepositoryFacade, slotSvc portssvc.SlotSvcFacade, ledgerSvc portssvc.LedgerSvcFacade) portssvc.LandSvcFacade {
	return &landService{
		landRepo:       landRepo,
		userRepo:       userRepo,
		slotSvc:        slotSvc,
		ledgerSvc:      ledgerSvc,
		perDayCapacity: cfg.SlotPerDayCapacity,
	}
}

var _ portssvc.LandSvcFacade = (*landService)(nil)

func (s *landService) GetLandByID(ctx context.Context, caller domain.Caller, landID string) (*domain.LandRecord, error) {
	land, err := s.landRepo.FindLandByID(ctx, landID)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin && land.OwnerID != caller.ID && land.AssignedReviewerID != caller.ID {
		return nil, fmt.Errorf("%w: user %s is not a participant of land record %s", apperrors.ErrForbidden, caller.ID, landID)
	}
	return land, nil
}

func (s *landService) ListOwnedLands(ctx context.Context, caller domain.Caller, limit int, nextToken *string) ([]domain.LandRecord, *string, error) {
	return s.landRepo.ListLandsByOwner(ctx, caller.ID, limit, nextToken)
}

func (s *landService) ListReviewQueue(ctx context.Context, caller domain.Caller) ([]domain.LandRecord, error) {
	if err := s.RequireRole(caller, domain.RoleOfficer); err != nil {
		return nil, err
	}
	withoutReport := false
	return s.landRepo.ListPendingByReviewer(ctx, caller.ID, &withoutReport)
}

func (s *landService) ListApprovalQueue(ctx context.Context, caller domain.Caller) ([]domain.LandRecord, error) {
	if err := s.RequireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.landRepo.ListApprovalQueue(ctx, caller.District)
}

// SubmitLand creates a PENDING_REVIEW record for the calling citizen with a
// reserved verification slot. The slot check here is advisory; the creating
// transaction re-validates occupancy and loses gracefully with
// ErrCapacityExceeded.
func (s *landService) SubmitLand(ctx context.Context, caller domain.Caller, req dto.SubmitLandRequest) (*domain.LandRecord, error) {
	if err := s.RequireRole(caller, domain.RoleCitizen); err != nil {
		return nil, err
	}

	appointmentDate, err := time.ParseInLocation(appointmentDateLayout, req.AppointmentDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: appointmentDate must be YYYY-MM-DD", apperrors.ErrValidation)
	}

	reviewer, err := s.userRepo.FindUserByID(ctx, req.ReviewerID)
	if err != nil {
		return nil, fmt.Errorf("%w: reviewer %s", apperrors.ErrValidation, req.ReviewerID)
	}
	if reviewer.Role != domain.RoleOfficer {
		return nil, fmt.Errorf("%w: user %s is not an officer", apperrors.ErrValidation, req.ReviewerID)
	}

	if err := s.slotSvc.ValidateSlot(ctx, req.ReviewerID, appointmentDate); err != nil {
		return nil, err
	}

	if err := s.checkSurveyNumberFree(ctx, req.SurveyNumber); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindUserByID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submitting user: %w", err)
	}

	now := time.Now()
	land := domain.LandRecord{
		LandID:             uuid.NewString(),
		SurveyNumber:       req.SurveyNumber,
		OwnerID:            caller.ID,
		OwnerName:          owner.Name,
		AssignedReviewerID: req.ReviewerID,
		Area:               req.Area,
		District:           req.District,
		LandType:           req.LandType,
		Address:            req.Address,
		AppointmentDate:    &appointmentDate,
		Status:             domain.LandPendingReview,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.ID,
		},
	}

	if err := s.landRepo.CreateLand(ctx, land, s.perDayCapacity); err != nil {
		s.LogError(ctx, err, "Failed to create land record",
			slog.String("survey_number", req.SurveyNumber), slog.String("owner_id", caller.ID))
		return nil, err
	}

	s.LogInfo(ctx, "Land record submitted",
		slog.String("land_id", land.LandID), slog.String("survey_number", land.SurveyNumber),
		slog.String("reviewer_id", land.AssignedReviewerID), slog.String("appointment_date", req.AppointmentDate))
	return &land, nil
}

// RegisterLand creates a PENDING_REVIEW record directly as the calling
// officer, on behalf of the named citizen. No slot is reserved; the deed
// document must already be uploaded.
func (s *landService) RegisterLand(ctx context.Context, caller domain.Caller, req dto.RegisterLandRequest) (*domain.LandRecord, error) {
	if err := s.RequireRole(caller, domain.RoleOfficer); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindUserByID(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("%w: owner %s", apperrors.ErrValidation, req.OwnerID)
	}
	if owner.Role != domain.RoleCitizen {
		return nil, fmt.Errorf("%w: owner %s is not a citizen", apperrors.ErrValidation, req.OwnerID)
	}

	if err := s.checkSurveyNumberFree(ctx, req.SurveyNumber); err != nil {
		return nil, err
	}

	now := time.Now()
	documentRef := req.DocumentRef
	land := domain.LandRecord{
		LandID:             uuid.NewString(),
		SurveyNumber:       req.SurveyNumber,
		OwnerID:            req.OwnerID,
		OwnerName:          req.OwnerName,
		AssignedReviewerID: caller.ID,
		Area:               req.Area,
		District:           req.District,
		LandType:           req.LandType,
		Address:            req.Address,
		DocumentRef:        &documentRef,
		Status:             domain.LandPendingReview,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.ID,
		},
	}

	if err := s.landRepo.CreateLand(ctx, land, s.perDayCapacity); err != nil {
		s.LogError(ctx, err, "Failed to register land record",
			slog.String("survey_number", req.SurveyNumber), slog.String("officer_id", caller.ID))
		return nil, err
	}

	s.LogInfo(ctx, "Land record registered by officer",
		slog.String("land_id", land.LandID), slog.String("survey_number", land.SurveyNumber))
	return &land, nil
}

// checkSurveyNumberFree is an advisory pre-check; the unique index on
// survey_number still backstops a concurrent submission.
func (s *landService) checkSurveyNumberFree(ctx context.Context, surveyNumber string) error {
	_, err := s.landRepo.FindLandBySurveyNumber(ctx, surveyNumber)
	if err == nil {
		return fmt.Errorf("%w: survey number %s is already registered", apperrors.ErrDuplicate, surveyNumber)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return nil
}

func (s *landService) AttachReport(ctx context.Context, caller domain.Caller, landID, reportRef string) (*domain.LandRecord, error) {
	if err := s.RequireRole(caller, domain.RoleOfficer); err != nil {
		return nil, err
	}

	if err := s.landRepo.AttachReviewerReport(ctx, landID, caller.ID, reportRef, time.Now()); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Reviewer report attached",
		slog.String("land_id", landID), slog.String("reviewer_id", caller.ID))
	return s.landRepo.FindLandByID(ctx, landID)
}

// ApproveLand mints the record on the external ledger and, on success, moves
// it to APPROVED with its proof. The ledger call goes out with no database
// lock held; the record stays PENDING_REVIEW until a receipt is in hand.
func (s *landService) ApproveLand(ctx context.Context, caller domain.Caller, landID string) (*domain.LandRecord, error) {
	if err := s.RequireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}

	land, err := s.landRepo.FindLandByID(ctx, landID)
	if err != nil {
		return nil, err
	}
	if land.Status != domain.LandPendingReview {
		return nil, fmt.Errorf("%w: land record %s is %s, expected %s",
			apperrors.ErrStateConflict, landID, land.Status, domain.LandPendingReview)
	}
	if !land.ReportAttached() {
		return nil, fmt.Errorf("%w: land record %s has no reviewer report attached",
			apperrors.ErrStateConflict, landID)
	}

	proof, err := s.ledgerSvc.MintLand(ctx, land)
	if err != nil {
		// Phase 1 failed, local state untouched. The record stays visibly
		// pending mint and the same caller can retry with identical payload.
		return nil, err
	}

	if err := s.landRepo.ApproveLand(ctx, landID, *proof, caller.ID, time.Now()); err != nil {
		// Phase 2 failed after the ledger accepted the write: the ledger is now
		// ahead of local state. A retried approve recomputes the identical
		// fingerprint and resolves via AlreadyRegistered plus force-sync.
		s.LogError(ctx, err, "Ledger minted but local persistence failed",
			slog.String("land_id", landID), slog.String("receipt", proof.Receipt))
		return nil, err
	}

	s.LogInfo(ctx, "Land record approved and minted",
		slog.String("land_id", landID), slog.String("approver_id", caller.ID),
		slog.String("receipt", proof.Receipt))
	return s.landRepo.FindLandByID(ctx, landID)
}

// RejectLand terminally rejects a pending record with a mandatory reason.
// Allowed to admins and to the record's assigned reviewer.
func (s *landService) RejectLand(ctx context.Context, caller domain.Caller, landID, reason string) (*domain.LandRecord, error) {
	if err := s.RequireRole(caller, domain.RoleAdmin, domain.RoleOfficer); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", apperrors.ErrValidation)
	}

	if caller.Role == domain.RoleOfficer {
		land, err := s.landRepo.FindLandByID(ctx, landID)
		if err != nil {
			return nil, err
		}
		if land.AssignedReviewerID != caller.ID {
			return nil, fmt.Errorf("%w: land record %s is not assigned to reviewer %s",
				apperrors.ErrForbidden, landID, caller.ID)
		}
	}

	if err := s.landRepo.RejectLand(ctx, landID, reason, caller.ID, time.Now()); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Land record rejected",
		slog.String("land_id", landID), slog.String("rejected_by", caller.ID))
	return s.landRepo.FindLandByID(ctx, landID)
}

// ForceSyncLand accepts the ledger's existing registration as authoritative:
// the ledger digest becomes the local fingerprint with a synthetic receipt
// marking the recovery. Operator action for a ledger that ran ahead of the
// local store.
func (s *landService) ForceSyncLand(ctx context.Context, caller domain.Caller, landID string) (*domain.LandRecord, string, error) {
	if err := s.RequireRole(caller, domain.RoleAdmin); err != nil {
		return nil, "", err
	}

	land, err := s.landRepo.FindLandByID(ctx, landID)
	if err != nil {
		return nil, "", err
	}

	digest, err := s.ledgerSvc.ReadRegistration(ctx, land)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	proof := domain.LedgerProof{
		Fingerprint: digest,
		Receipt:     "force-sync:" + uuid.NewString(),
		RecordedAt:  now,
	}

	switch land.Status {
	case domain.LandApproved:
		err = s.landRepo.AdoptLedgerProof(ctx, landID, proof, caller.ID, now)
	case domain.LandPendingReview:
		err = s.landRepo.ApproveLand(ctx, landID, proof, caller.ID, now)
	default:
		return nil, "", fmt.Errorf("%w: land record %s is %s and cannot adopt a ledger proof",
			apperrors.ErrStateConflict, landID, land.Status)
	}
	if err != nil {
		return nil, "", err
	}

	s.LogInfo(ctx, "Land record force-synced from ledger",
		slog.String("land_id", landID), slog.String("operator_id", caller.ID),
		slog.String("digest", digest))

	land, err = s.landRepo.FindLandByID(ctx, landID)
	if err != nil {
		return nil, "", err
	}
	return land, digest, nil
}

// ResetLandMint clears the local proof of a record whose ledger write cannot
// be reconciled, returning it to the pre-mint state so a later retry is safe.
func (s *landService) ResetLandMint(ctx context.Context, caller domain.Caller, landID string) (*domain.LandRecord, error) {
	if err := s.RequireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if err := s.landRepo.ClearLedgerProof(ctx, landID, caller.ID, time.Now()); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Land record mint reset",
		slog.String("land_id", landID), slog.String("operator_id", caller.ID))
	return s.landRepo.FindLandByID(ctx, landID)
}
