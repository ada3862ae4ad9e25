package repositories

import (
	"context"
	"time"

	"github.com/openlandreg/land_registry_app/internal/core/domain"
)

// TransferReader defines read operations for transfer request data
type TransferReader interface {
	// FindTransferByID retrieves a specific transfer request by its unique identifier.
	FindTransferByID(ctx context.Context, transferID string) (*domain.TransferRequest, error)

	// FindActiveTransferByLandID retrieves the single non-terminal transfer for
	// a land, or apperrors.ErrNotFound when none exists.
	FindActiveTransferByLandID(ctx context.Context, landID string) (*domain.TransferRequest, error)

	// ListTransfersByParticipant retrieves transfers where the user is seller,
	// buyer, or assigned reviewer.
	ListTransfersByParticipant(ctx context.Context, userID string) ([]domain.TransferRequest, error)

	// ListTransfersByStatus retrieves transfers in the given status, optionally
	// scoped to a reviewer.
	ListTransfersByStatus(ctx context.Context, status domain.TransferStatus, reviewerID string) ([]domain.TransferRequest, error)
}

// TransferWriter defines write operations for transfer request data
type TransferWriter interface {
	// CreateTransfer persists a new transfer request. The single-active-transfer
	// invariant is enforced by a partial unique index on land_id over
	// non-terminal rows: a concurrent second insert surfaces as
	// apperrors.ErrDuplicate.
	CreateTransfer(ctx context.Context, transfer domain.TransferRequest) error

	// AdvanceTransfer conditionally moves a transfer from expected status to
	// next, optionally setting the reviewer report. The update applies only
	// while the row still holds the expected status; otherwise
	// apperrors.ErrStateConflict is returned and nothing changes.
	AdvanceTransfer(ctx context.Context, transferID string, expected, next domain.TransferStatus, reportRef *string, updatedBy string, updatedAt time.Time) error

	// RejectTransfer terminally transitions a transfer from expected status to
	// REJECTED with a human-readable reason.
	RejectTransfer(ctx context.Context, transferID string, expected domain.TransferStatus, reason, rejectedBy string, updatedAt time.Time) error

	// CompleteTransfer atomically finishes a VERIFIED transfer: the transfer
	// row becomes COMPLETED with its ledger proof, and within the same
	// database transaction the referenced land record is reassigned to the
	// buyer and adopts the transfer fingerprint as its current proof. The
	// transfer-side update is conditional on expected status VERIFIED.
	CompleteTransfer(ctx context.Context, transferID string, buyerID, landID string, proof domain.LedgerProof, completedBy string, updatedAt time.Time) error
}

// TransferRepositoryFacade combines all transfer-related repository interfaces
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
}

// TransferRepositoryWithTx extends TransferRepositoryFacade with transaction capabilities
type TransferRepositoryWithTx interface {
	TransferRepositoryFacade
	TransactionManager
}
