package dto

import (
	"time"

	"github.com/openlandreg/land_registry_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitLandRequest defines the data a citizen provides to submit a parcel for
// registration. A citizen submission requires a reserved verification slot and
// carries no document.
type SubmitLandRequest struct {
	SurveyNumber    string          `json:"surveyNumber" binding:"required"`
	Area            decimal.Decimal `json:"area" binding:"required"`
	District        string          `json:"district" binding:"required"`
	LandType        string          `json:"landType" binding:"required"`
	Address         string          `json:"address" binding:"required"`
	ReviewerID      string          `json:"reviewerID" binding:"required"`
	AppointmentDate string          `json:"appointmentDate" binding:"required"` // YYYY-MM-DD, a slot returned by the allocator
}

// RegisterLandRequest defines the data an officer provides for direct
// registration on behalf of a citizen. No slot is needed but the deed document
// is required at submission.
type RegisterLandRequest struct {
	SurveyNumber string          `json:"surveyNumber" binding:"required"`
	OwnerID      string          `json:"ownerID" binding:"required"`
	OwnerName    string          `json:"ownerName" binding:"required"`
	Area         decimal.Decimal `json:"area" binding:"required"`
	District     string          `json:"district" binding:"required"`
	LandType     string          `json:"landType" binding:"required"`
	Address      string          `json:"address" binding:"required"`
	DocumentRef  string          `json:"documentRef" binding:"required"`
}

// AttachReportRequest carries the reviewer's verification report reference.
type AttachReportRequest struct {
	ReportRef string `json:"reportRef" binding:"required"`
}

// RejectRequest carries the mandatory human-readable rejection reason.
type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// LandResponse defines the data returned for a land record.
type LandResponse struct {
	LandID             string          `json:"landID"`
	SurveyNumber       string          `json:"surveyNumber"`
	OwnerID            string          `json:"ownerID"`
	OwnerName          string          `json:"ownerName"`
	AssignedReviewerID string          `json:"assignedReviewerID"`
	Area               decimal.Decimal `json:"area"`
	District           string          `json:"district"`
	LandType           string          `json:"landType"`
	Address            string          `json:"address"`
	AppointmentDate    *time.Time      `json:"appointmentDate,omitempty"`
	DocumentRef        *string         `json:"documentRef,omitempty"`
	ReviewerReportRef  *string         `json:"reviewerReportRef,omitempty"`
	Status             string          `json:"status"`
	RejectionReason    *string         `json:"rejectionReason,omitempty"`
	Fingerprint        *string         `json:"fingerprint,omitempty"`
	LedgerReceipt      *string         `json:"ledgerReceipt,omitempty"`
	LedgerTimestamp    *time.Time      `json:"ledgerTimestamp,omitempty"`
	PendingMint        bool            `json:"pendingMint"` // Report attached but no ledger proof yet
	CreatedAt          time.Time       `json:"createdAt"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}

// ToLandResponse converts a domain.LandRecord to LandResponse DTO
func ToLandResponse(l *domain.LandRecord) LandResponse {
	return LandResponse{
		LandID:             l.LandID,
		SurveyNumber:       l.SurveyNumber,
		OwnerID:            l.OwnerID,
		OwnerName:          l.OwnerName,
		AssignedReviewerID: l.AssignedReviewerID,
		Area:               l.Area,
		District:           l.District,
		LandType:           l.LandType,
		Address:            l.Address,
		AppointmentDate:    l.AppointmentDate,
		DocumentRef:        l.DocumentRef,
		ReviewerReportRef:  l.ReviewerReportRef,
		Status:             string(l.Status),
		RejectionReason:    l.RejectionReason,
		Fingerprint:        l.Fingerprint,
		LedgerReceipt:      l.LedgerReceipt,
		LedgerTimestamp:    l.LedgerTimestamp,
		PendingMint:        l.Status == domain.LandPendingReview && l.ReportAttached() && !l.IsMinted(),
		CreatedAt:          l.CreatedAt,
		LastUpdatedAt:      l.LastUpdatedAt,
	}
}

// ToListLandResponse converts a slice of domain.LandRecord to LandResponse DTOs
func ToListLandResponse(lands []domain.LandRecord) []LandResponse {
	res := make([]LandResponse, len(lands))
	for i, l := range lands {
		res[i] = ToLandResponse(&l)
	}
	return res
}

// ListLandsParams defines query parameters for token-paginated land listings.
type ListLandsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListLandsResponse wraps a page of land records.
type ListLandsResponse struct {
	Lands     []LandResponse `json:"lands"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ForceSyncResponse reports the outcome of the operator force-sync action.
type ForceSyncResponse struct {
	Land         LandResponse `json:"land"`
	LedgerDigest string       `json:"ledgerDigest"`
}
