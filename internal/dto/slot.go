package dto

import (
	"github.com/openlandreg/land_registry_app/internal/core/domain"
)

// SlotResponse defines one open verification-appointment day for a reviewer.
type SlotResponse struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
	Remaining int    `json:"remaining"`
}

// ListSlotsResponse wraps the open slots for a reviewer.
type ListSlotsResponse struct {
	ReviewerID string         `json:"reviewerID"`
	Slots      []SlotResponse `json:"slots"`
}

// ToListSlotsResponse converts slot availabilities to the response DTO.
func ToListSlotsResponse(reviewerID string, slots []domain.SlotAvailability) ListSlotsResponse {
	res := make([]SlotResponse, len(slots))
	for i, s := range slots {
		res[i] = SlotResponse{
			Date:      s.Date.Format("2006-01-02"),
			Capacity:  s.Capacity,
			Booked:    s.Booked,
			Remaining: s.Remaining(),
		}
	}
	return ListSlotsResponse{ReviewerID: reviewerID, Slots: res}
}
