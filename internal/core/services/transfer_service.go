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
	"github.com/google/uuid"
)

// transferService implements portssvc.TransferSvcFacade: the four-stage
// ownership-change chain over approved land records. Every stage advance is a
// conditional update on the expected prior status, so a lost race surfaces as
// ErrStateConflict instead of a double transition.
type transferService struct {
	BaseService
	transferRepo portsrepo.TransferRepositoryWithTx
	landRepo     portsrepo.LandRepositoryWithTx
	userRepo     portsrepo.UserRepositoryFacade
	ledgerSvc    portssvc.LedgerSvcFacade
}

// NewTransferService creates a new transfer workflow service.
func NewTransferService(transferRepo portsrepo.TransferRepositoryWithTx, landRepo portsrepo.LandRepositoryWithTx, userRepo portsrepo.UserRepositoryFacade, ledgerSvc portssvc.LedgerSvcFacade) portssvc.TransferSvcFacade {
	return &transferService{
		transferRepo: transferRepo,
		landRepo:     landRepo,
		userRepo:     userRepo,
		ledgerSvc:    ledgerSvc,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

func (s *transferService) GetTransferByID(ctx context.Context, caller domain.Caller, transferID string) (*domain.TransferRequest, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if !s.isParticipant(caller, transfer) {
		return nil, fmt.Errorf("%w: user %s is not a participant of transfer %s", apperrors.ErrForbidden, caller.ID, transferID)
	}
	return transfer, nil
}

func (s *transferService) ListTransfersForCaller(ctx context.Context, caller domain.Caller) ([]domain.TransferRequest, error) {
	// Admins see the completion queue; everyone else sees their own transfers.
	if caller.Role == domain.RoleAdmin {
		return s.transferRepo.ListTransfersByStatus(ctx, domain.TransferVerified, "")
	}
	return s.transferRepo.ListTransfersByParticipant(ctx, caller.ID)
}

// InitiateTransfer opens an INITIATED request. The caller must own the land,
// the land must be APPROVED (minted), and the partial unique index keeps a
// second concurrent request out with ErrDuplicate.
func (s *transferService) InitiateTransfer(ctx context.Context, caller domain.Caller, req dto.InitiateTransferRequest) (*domain.TransferRequest, error) {
	land, err := s.landRepo.FindLandByID(ctx, req.LandID)
	if err != nil {
		return nil, err
	}
	if land.OwnerID != caller.ID {
		return nil, fmt.Errorf("%w: user %s does not own land record %s", apperrors.ErrForbidden, caller.ID, req.LandID)
	}
	if land.Status != domain.LandApproved {
		return nil, fmt.Errorf("%w: land record %s is %s, only APPROVED land can be transferred",
			apperrors.ErrStateConflict, req.LandID, land.Status)
	}
	if req.BuyerID == caller.ID {
		return nil, fmt.Errorf("%w: buyer and seller must differ", apperrors.ErrValidation)
	}

	buyer, err := s.userRepo.FindUserByID(ctx, req.BuyerID)
	if err != nil {
		return nil, fmt.Errorf("%w: buyer %s", apperrors.ErrValidation, req.BuyerID)
	}
	if buyer.Role != domain.RoleCitizen {
		return nil, fmt.Errorf("%w: buyer %s is not a citizen", apperrors.ErrValidation, req.BuyerID)
	}

	reviewerID := req.ReviewerID
	if reviewerID == "" {
		reviewerID = land.AssignedReviewerID
	} else {
		reviewer, err := s.userRepo.FindUserByID(ctx, reviewerID)
		if err != nil {
			return nil, fmt.Errorf("%w: reviewer %s", apperrors.ErrValidation, reviewerID)
		}
		if reviewer.Role != domain.RoleOfficer {
			return nil, fmt.Errorf("%w: user %s is not an officer", apperrors.ErrValidation, reviewerID)
		}
	}

	// Advisory pre-check; the partial unique index still serializes a
	// concurrent initiate on the same parcel.
	if _, err := s.transferRepo.FindActiveTransferByLandID(ctx, req.LandID); err == nil {
		return nil, fmt.Errorf("%w: land record %s already has an active transfer", apperrors.ErrDuplicate, req.LandID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	transfer := domain.TransferRequest{
		TransferID:  uuid.NewString(),
		LandID:      land.LandID,
		SellerID:    caller.ID,
		BuyerID:     req.BuyerID,
		ReviewerID:  reviewerID,
		SaleDeedRef: req.SaleDeedRef,
		Status:      domain.TransferInitiated,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.ID,
		},
	}

	if err := s.transferRepo.CreateTransfer(ctx, transfer); err != nil {
		s.LogError(ctx, err, "Failed to create transfer request",
			slog.String("land_id", req.LandID), slog.String("seller_id", caller.ID))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer initiated",
		slog.String("transfer_id", transfer.TransferID), slog.String("land_id", land.LandID))
	return &transfer, nil
}

// AcceptTransfer moves INITIATED to ACCEPTED; only the named buyer may accept.
func (s *transferService) AcceptTransfer(ctx context.Context, caller domain.Caller, transferID string) (*domain.TransferRequest, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.BuyerID != caller.ID {
		return nil, fmt.Errorf("%w: user %s is not the buyer of transfer %s", apperrors.ErrForbidden, caller.ID, transferID)
	}

	if err := s.transferRepo.AdvanceTransfer(ctx, transferID, domain.TransferInitiated, domain.TransferAccepted, nil, caller.ID, time.Now()); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transfer accepted by buyer", slog.String("transfer_id", transferID))
	return s.transferRepo.FindTransferByID(ctx, transferID)
}

// VerifyTransfer moves ACCEPTED to VERIFIED with the report attached; only the
// assigned reviewer may verify.
func (s *transferService) VerifyTransfer(ctx context.Context, caller domain.Caller, transferID, reportRef string) (*domain.TransferRequest, error) {
	if err := s.RequireRole(caller, domain.RoleOfficer); err != nil {
		return nil, err
	}

	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.ReviewerID != caller.ID {
		return nil, fmt.Errorf("%w: transfer %s is not assigned to reviewer %s", apperrors.ErrForbidden, transferID, caller.ID)
	}
	if reportRef == "" {
		return nil, fmt.Errorf("%w: a verification report is required", apperrors.ErrValidation)
	}

	if err := s.transferRepo.AdvanceTransfer(ctx, transferID, domain.TransferAccepted, domain.TransferVerified, &reportRef, caller.ID, time.Now()); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transfer verified",
		slog.String("transfer_id", transferID), slog.String("reviewer_id", caller.ID))
	return s.transferRepo.FindTransferByID(ctx, transferID)
}

// CompleteTransfer mints the transfer fingerprint on the external ledger and
// then, in one database transaction, moves VERIFIED to COMPLETED, reassigns
// the land to the buyer and overwrites the land's proof with the transfer
// proof. The ledger call goes out before any local write.
func (s *transferService) CompleteTransfer(ctx context.Context, caller domain.Caller, transferID string) (*domain.TransferRequest, error) {
	if err := s.RequireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}

	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.Status != domain.TransferVerified {
		return nil, fmt.Errorf("%w: transfer %s is %s, expected %s",
			apperrors.ErrStateConflict, transferID, transfer.Status, domain.TransferVerified)
	}

	land, err := s.landRepo.FindLandByID(ctx, transfer.LandID)
	if err != nil {
		return nil, err
	}

	proof, err := s.ledgerSvc.MintTransfer(ctx, land, transfer)
	if err != nil {
		// The transfer stays VERIFIED; the same caller can retry and the
		// identical payload yields the identical fingerprint.
		return nil, err
	}

	if err := s.transferRepo.CompleteTransfer(ctx, transferID, transfer.BuyerID, transfer.LandID, *proof, caller.ID, time.Now()); err != nil {
		s.LogError(ctx, err, "Ledger minted transfer but local completion failed",
			slog.String("transfer_id", transferID), slog.String("receipt", proof.Receipt))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("transfer_id", transferID), slog.String("land_id", transfer.LandID),
		slog.String("new_owner_id", transfer.BuyerID), slog.String("receipt", proof.Receipt))
	return s.transferRepo.FindTransferByID(ctx, transferID)
}

// RejectTransfer terminally rejects the transfer at its current stage. Only
// the stage-owning role may reject: the buyer at INITIATED, the assigned
// reviewer at ACCEPTED, an admin at VERIFIED.
func (s *transferService) RejectTransfer(ctx context.Context, caller domain.Caller, transferID, reason string) (*domain.TransferRequest, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", apperrors.ErrValidation)
	}

	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}

	rejectorRole, ok := transfer.Status.RejectorRole()
	if !ok {
		return nil, fmt.Errorf("%w: transfer %s is already %s",
			apperrors.ErrStateConflict, transferID, transfer.Status)
	}
	if caller.Role != rejectorRole {
		return nil, fmt.Errorf("%w: only the %s may reject a transfer in %s",
			apperrors.ErrForbidden, rejectorRole, transfer.Status)
	}
	switch transfer.Status {
	case domain.TransferInitiated:
		if transfer.BuyerID != caller.ID {
			return nil, fmt.Errorf("%w: user %s is not the buyer of transfer %s", apperrors.ErrForbidden, caller.ID, transferID)
		}
	case domain.TransferAccepted:
		if transfer.ReviewerID != caller.ID {
			return nil, fmt.Errorf("%w: transfer %s is not assigned to reviewer %s", apperrors.ErrForbidden, transferID, caller.ID)
		}
	}

	// A concurrent advance between the read and this write loses cleanly with
	// ErrStateConflict from the conditional update.
	if err := s.transferRepo.RejectTransfer(ctx, transferID, transfer.Status, reason, caller.ID, time.Now()); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transfer rejected",
		slog.String("transfer_id", transferID), slog.String("rejected_by", caller.ID),
		slog.String("stage", string(transfer.Status)))
	return s.transferRepo.FindTransferByID(ctx, transferID)
}

func (s *transferService) isParticipant(caller domain.Caller, transfer *domain.TransferRequest) bool {
	if caller.Role == domain.RoleAdmin {
		return true
	}
	return transfer.SellerID == caller.ID || transfer.BuyerID == caller.ID || transfer.ReviewerID == caller.ID
}
