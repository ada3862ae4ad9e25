package services

import (
	"context"

	"github.com/openlandreg/land_registry_app/internal/core/domain"
	"github.com/openlandreg/land_registry_app/internal/dto"
)

// LandReaderSvc defines read operations over land records
type LandReaderSvc interface {
	// GetLandByID retrieves a land record, restricted to its participants
	// (owner, assigned reviewer) and admins.
	GetLandByID(ctx context.Context, caller domain.Caller, landID string) (*domain.LandRecord, error)

	// ListOwnedLands retrieves a page of the caller's own land records.
	ListOwnedLands(ctx context.Context, caller domain.Caller, limit int, nextToken *string) ([]domain.LandRecord, *string, error)

	// ListReviewQueue retrieves the reviewer's pending records that still lack
	// a verification report.
	ListReviewQueue(ctx context.Context, caller domain.Caller) ([]domain.LandRecord, error)

	// ListApprovalQueue retrieves pending records with an attached reviewer
	// report; only those are visible to the approver.
	ListApprovalQueue(ctx context.Context, caller domain.Caller) ([]domain.LandRecord, error)
}

// LandWorkflowSvc defines the lifecycle transitions of a land record
type LandWorkflowSvc interface {
	// SubmitLand creates a PENDING_REVIEW record for the calling citizen with
	// a reserved verification slot. Slot occupancy is re-validated inside the
	// creating transaction; losing the race surfaces apperrors.ErrCapacityExceeded.
	SubmitLand(ctx context.Context, caller domain.Caller, req dto.SubmitLandRequest) (*domain.LandRecord, error)

	// RegisterLand creates a PENDING_REVIEW record directly as the calling
	// officer, on behalf of the named citizen. No slot, but the deed document
	// is required.
	RegisterLand(ctx context.Context, caller domain.Caller, req dto.RegisterLandRequest) (*domain.LandRecord, error)

	// AttachReport attaches the verification report; only the assigned
	// reviewer may do so, and only while the record is PENDING_REVIEW.
	AttachReport(ctx context.Context, caller domain.Caller, landID, reportRef string) (*domain.LandRecord, error)

	// ApproveLand mints the record on the external ledger and, on success,
	// transitions it to APPROVED with its proof. Admin only; requires an
	// attached reviewer report. Approval is irreversible once the receipt is
	// recorded.
	ApproveLand(ctx context.Context, caller domain.Caller, landID string) (*domain.LandRecord, error)

	// RejectLand terminally rejects a pending record with a reason. Allowed to
	// admins and to the assigned reviewer.
	RejectLand(ctx context.Context, caller domain.Caller, landID, reason string) (*domain.LandRecord, error)
}

// LandOperatorSvc defines operator-only recovery actions for ledger
// desynchronization. These are mounted outside the normal workflow surface.
type LandOperatorSvc interface {
	// ForceSyncLand accepts the ledger's existing registration as
	// authoritative: it reads the ledger digest for the record's key and
	// persists it locally with a synthetic force-sync receipt.
	ForceSyncLand(ctx context.Context, caller domain.Caller, landID string) (*domain.LandRecord, string, error)

	// ResetLandMint clears the local proof of a record whose ledger write
	// cannot be reconciled, returning it to the pre-mint state so a later
	// retry is safe.
	ResetLandMint(ctx context.Context, caller domain.Caller, landID string) (*domain.LandRecord, error)
}

// LandSvcFacade combines all land-related service interfaces
type LandSvcFacade interface {
	LandReaderSvc
	LandWorkflowSvc
	LandOperatorSvc
}
