package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LandStatus indicates where a land record sits in the verification pipeline.
type LandStatus string

const (
	LandPendingReview LandStatus = "PENDING_REVIEW"
	LandApproved      LandStatus = "APPROVED"
	LandRejected      LandStatus = "REJECTED"
)

// LandRecord represents a parcel under registration.
//
// Invariant: Fingerprint and LedgerReceipt are both nil or both non-nil (a
// record is never partially minted), and Status == LandApproved implies both
// are non-nil.
type LandRecord struct {
	LandID             string          `json:"landID"`       // Primary Key (UUID)
	SurveyNumber       string          `json:"surveyNumber"` // Unique human-readable identifier, immutable once set
	OwnerID            string          `json:"ownerID"`
	OwnerName          string          `json:"ownerName"` // Denormalized for display
	AssignedReviewerID string          `json:"assignedReviewerID"`
	Area               decimal.Decimal `json:"area"` // In acres
	District           string          `json:"district"`
	LandType           string          `json:"landType"`
	Address            string          `json:"address"`
	AppointmentDate    *time.Time      `json:"appointmentDate,omitempty"` // Nil for officer-submitted records
	DocumentRef        *string         `json:"documentRef,omitempty"`     // Deed reference, required for officer submission
	ReviewerReportRef  *string         `json:"reviewerReportRef,omitempty"`
	Status             LandStatus      `json:"status"`
	RejectionReason    *string         `json:"rejectionReason,omitempty"`
	Fingerprint        *string         `json:"fingerprint,omitempty"`
	LedgerReceipt      *string         `json:"ledgerReceipt,omitempty"`
	LedgerTimestamp    *time.Time      `json:"ledgerTimestamp,omitempty"`
	AuditFields
}

// IsMinted reports whether the record carries a complete ledger proof.
func (l *LandRecord) IsMinted() bool {
	return l.Fingerprint != nil && l.LedgerReceipt != nil
}

// ReportAttached reports whether the assigned reviewer has attached a
// verification report, which unlocks the record for the approver's queue.
func (l *LandRecord) ReportAttached() bool {
	return l.ReviewerReportRef != nil && *l.ReviewerReportRef != ""
}
