package services

import (
	"context"
	"time"

	"github.com/openlandreg/land_registry_app/internal/core/domain"
)

// SlotSvcFacade computes bounded daily verification-appointment capacity per
// officer. The allocator is optimistic: no lock is held between listing and
// submission; occupancy is re-checked inside the transaction that creates the
// land record.
type SlotSvcFacade interface {
	// ListAvailableSlots walks business days forward from today (inclusive),
	// skipping weekends, and returns the first windowDays dates with remaining
	// capacity for the reviewer. The walk is capped at a bounded calendar
	// lookahead; when it is exhausted with no open day the call fails closed
	// with apperrors.ErrCapacityExceeded rather than looping unboundedly.
	ListAvailableSlots(ctx context.Context, reviewerID string) ([]domain.SlotAvailability, error)

	// ValidateSlot checks that date is currently bookable for the reviewer: a
	// business day inside the lookahead with remaining capacity. Advisory; the
	// booking transaction re-validates occupancy.
	ValidateSlot(ctx context.Context, reviewerID string, date time.Time) error
}
