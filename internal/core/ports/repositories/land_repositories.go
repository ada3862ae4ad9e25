package repositories

import (
	"context"
	"time"

	"github.com/openlandreg/land_registry_app/internal/core/domain"
)

// LandReader defines read operations for land record data
type LandReader interface {
	// FindLandByID retrieves a specific land record by its unique identifier.
	FindLandByID(ctx context.Context, landID string) (*domain.LandRecord, error)

	// FindLandBySurveyNumber retrieves a land record by its human-readable survey identifier.
	FindLandBySurveyNumber(ctx context.Context, surveyNumber string) (*domain.LandRecord, error)

	// ListLandsByOwner retrieves a paginated list of an owner's land records using token-based pagination.
	// It returns the records, a token for the next page, and an error.
	ListLandsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.LandRecord, *string, error)

	// ListPendingByReviewer retrieves PENDING_REVIEW records assigned to a reviewer.
	// When reportAttached is non-nil it additionally filters on presence (true)
	// or absence (false) of the reviewer report.
	ListPendingByReviewer(ctx context.Context, reviewerID string, reportAttached *bool) ([]domain.LandRecord, error)

	// ListApprovalQueue retrieves PENDING_REVIEW records that carry a reviewer
	// report and are therefore visible to the approver.
	ListApprovalQueue(ctx context.Context, district string) ([]domain.LandRecord, error)

	// CountAppointments returns the number of land records booked against the
	// (reviewer, calendar day) pair. The day bounds are [startOfDay, endOfDay).
	CountAppointments(ctx context.Context, reviewerID string, day time.Time) (int, error)
}

// LandWriter defines write operations for land record data
type LandWriter interface {
	// CreateLand persists a new land record. When the record carries an
	// appointment date, the write re-validates slot occupancy inside the same
	// transaction: the reviewer row is locked, appointments for the day are
	// counted, and the insert is aborted with apperrors.ErrCapacityExceeded if
	// the count has reached perDayCapacity. Survey number collisions surface
	// as apperrors.ErrDuplicate.
	CreateLand(ctx context.Context, land domain.LandRecord, perDayCapacity int) error

	// AttachReviewerReport sets the reviewer report on a PENDING_REVIEW record
	// assigned to reviewerID. Returns apperrors.ErrStateConflict if the record
	// has left PENDING_REVIEW, apperrors.ErrForbidden if reviewerID is not the
	// assigned reviewer.
	AttachReviewerReport(ctx context.Context, landID, reviewerID, reportRef string, updatedAt time.Time) error

	// ApproveLand transitions a record to APPROVED and persists its ledger
	// proof in one conditional update. The update applies only while the
	// record is PENDING_REVIEW with a reviewer report attached; otherwise
	// apperrors.ErrStateConflict is returned and nothing changes.
	ApproveLand(ctx context.Context, landID string, proof domain.LedgerProof, approverID string, updatedAt time.Time) error

	// RejectLand terminally transitions a PENDING_REVIEW record to REJECTED
	// with a human-readable reason.
	RejectLand(ctx context.Context, landID, reason, rejectedBy string, updatedAt time.Time) error

	// AdoptLedgerProof persists a ledger proof onto an APPROVED record,
	// overwriting any prior proof. Used by the transfer completion side effect
	// and by the operator force-sync path.
	AdoptLedgerProof(ctx context.Context, landID string, proof domain.LedgerProof, updatedBy string, updatedAt time.Time) error

	// ClearLedgerProof removes the fingerprint/receipt pair from a record and
	// returns it to PENDING_REVIEW. Operator escape hatch for ledger
	// desynchronization; not reachable from normal workflow callers.
	ClearLedgerProof(ctx context.Context, landID, clearedBy string, updatedAt time.Time) error
}

// LandRepositoryFacade combines all land-related repository interfaces
type LandRepositoryFacade interface {
	LandReader
	LandWriter
}

// LandRepositoryWithTx extends LandRepositoryFacade with transaction capabilities
type LandRepositoryWithTx interface {
	LandRepositoryFacade
	TransactionManager
}
