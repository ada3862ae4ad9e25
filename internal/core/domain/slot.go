package domain

import "time"

// SlotAvailability is a derived view of verification-appointment capacity for
// one (reviewer, calendar date) pair. It is never persisted as its own entity;
// occupancy is the count of land records whose assigned reviewer and
// appointment date match.
type SlotAvailability struct {
	ReviewerID string    `json:"reviewerID"`
	Date       time.Time `json:"date"` // Start of day, UTC
	Capacity   int       `json:"capacity"`
	Booked     int       `json:"booked"`
}

// Remaining returns how many appointments can still be booked on the slot.
func (s SlotAvailability) Remaining() int {
	if s.Booked >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Booked
}
