package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openlandreg/land_registry_app/internal/apperrors"
	"github.com/openlandreg/land_registry_app/internal/core/domain"
	portsrepo "github.com/openlandreg/land_registry_app/internal/core/ports/repositories"
	portssvc "github.com/openlandreg/land_registry_app/internal/core/ports/services"
	"github.com/openlandreg/land_registry_app/internal/platform/config"
)

// slotService implements portssvc.SlotSvcFacade. Availability is derived from
// appointment counts, never stored; the listing is advisory and occupancy is
// re-checked inside the transaction that books the appointment.
type slotService struct {
	BaseService
	landRepo portsrepo.LandRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade

	perDayCapacity  int
	windowDays      int
	lookaheadDays   int
	excludeWeekends bool

	// now is injectable so calendar behavior is testable.
	now func() time.Time
}

// NewSlotService creates a new slot service.
func NewSlotService(cfg *config.Config, landRepo portsrepo.LandRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.SlotSvcFacade {
	return &slotService{
		landRepo:        landRepo,
		userRepo:        userRepo,
		perDayCapacity:  cfg.SlotPerDayCapacity,
		windowDays:      cfg.SlotWindowDays,
		lookaheadDays:   cfg.SlotLookaheadDays,
		excludeWeekends: cfg.SlotExcludeWeekends,
		now:             time.Now,
	}
}

var _ portssvc.SlotSvcFacade = (*slotService)(nil)

// ListAvailableSlots walks forward from today (inclusive) and returns the
// first windowDays dates with remaining capacity for the reviewer. The walk is
// capped at lookaheadDays; exhausting the cap fails closed rather than looping.
func (s *slotService) ListAvailableSlots(ctx context.Context, reviewerID string) ([]domain.SlotAvailability, error) {
	reviewer, err := s.userRepo.FindUserByID(ctx, reviewerID)
	if err != nil {
		return nil, err
	}
	if reviewer.Role != domain.RoleOfficer {
		return nil, fmt.Errorf("%w: user %s is not an officer", apperrors.ErrValidation, reviewerID)
	}

	today := s.now().UTC()
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	slots := make([]domain.SlotAvailability, 0, s.windowDays)
	for offset := 0; offset < s.lookaheadDays; offset++ {
		candidate := day.AddDate(0, 0, offset)
		if s.excludeWeekends && isWeekend(candidate) {
			continue
		}

		booked, err := s.landRepo.CountAppointments(ctx, reviewerID, candidate)
		if err != nil {
			return nil, err
		}
		if booked >= s.perDayCapacity {
			continue
		}

		slots = append(slots, domain.SlotAvailability{
			ReviewerID: reviewerID,
			Date:       candidate,
			Capacity:   s.perDayCapacity,
			Booked:     booked,
		})
		if len(slots) == s.windowDays {
			return slots, nil
		}
	}

	if len(slots) == 0 {
		s.LogInfo(ctx, "Reviewer calendar fully booked within lookahead",
			slog.String("reviewer_id", reviewerID), slog.Int("lookahead_days", s.lookaheadDays))
		return nil, fmt.Errorf("%w: reviewer %s has no open slot within %d days",
			apperrors.ErrCapacityExceeded, reviewerID, s.lookaheadDays)
	}
	return slots, nil
}

// ValidateSlot checks that date is bookable for the reviewer right now: a
// business day inside the lookahead with remaining capacity. The check is
// advisory; the land-creating transaction re-validates occupancy.
func (s *slotService) ValidateSlot(ctx context.Context, reviewerID string, date time.Time) error {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	today := s.now().UTC()
	startOfToday := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(startOfToday) {
		return fmt.Errorf("%w: appointment date %s is in the past", apperrors.ErrValidation, day.Format("2006-01-02"))
	}
	if day.After(startOfToday.AddDate(0, 0, s.lookaheadDays-1)) {
		return fmt.Errorf("%w: appointment date %s is beyond the booking horizon", apperrors.ErrValidation, day.Format("2006-01-02"))
	}
	if s.excludeWeekends && isWeekend(day) {
		return fmt.Errorf("%w: appointment date %s falls on a weekend", apperrors.ErrValidation, day.Format("2006-01-02"))
	}

	booked, err := s.landRepo.CountAppointments(ctx, reviewerID, day)
	if err != nil {
		return err
	}
	if booked >= s.perDayCapacity {
		return fmt.Errorf("%w: reviewer %s has no remaining slots on %s",
			apperrors.ErrCapacityExceeded, reviewerID, day.Format("2006-01-02"))
	}
	return nil
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
