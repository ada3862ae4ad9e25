package dto

import (
	"time"

	"github.com/openlandreg/land_registry_app/internal/core/domain"
)

// InitiateTransferRequest defines the data the seller provides to open an
// ownership-change request over one approved land record.
type InitiateTransferRequest struct {
	LandID      string `json:"landID" binding:"required"`
	BuyerID     string `json:"buyerID" binding:"required"`
	SaleDeedRef string `json:"saleDeedRef" binding:"required"`
	ReviewerID  string `json:"reviewerID"` // Optional, defaults to the land's assigned reviewer
}

// VerifyTransferRequest carries the reviewer's verification report reference.
type VerifyTransferRequest struct {
	ReportRef string `json:"reportRef" binding:"required"`
}

// TransferResponse defines the data returned for a transfer request.
type TransferResponse struct {
	TransferID          string     `json:"transferID"`
	LandID              string     `json:"landID"`
	SellerID            string     `json:"sellerID"`
	BuyerID             string     `json:"buyerID"`
	ReviewerID          string     `json:"reviewerID"`
	SaleDeedRef         string     `json:"saleDeedRef"`
	ReviewerReportRef   *string    `json:"reviewerReportRef,omitempty"`
	Status              string     `json:"status"`
	RejectionReason     *string    `json:"rejectionReason,omitempty"`
	TransferFingerprint *string    `json:"transferFingerprint,omitempty"`
	LedgerReceipt       *string    `json:"ledgerReceipt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	LastUpdatedAt       time.Time  `json:"lastUpdatedAt"`
}

// ToTransferResponse converts a domain.TransferRequest to TransferResponse DTO
func ToTransferResponse(t *domain.TransferRequest) TransferResponse {
	return TransferResponse{
		TransferID:          t.TransferID,
		LandID:              t.LandID,
		SellerID:            t.SellerID,
		BuyerID:             t.BuyerID,
		ReviewerID:          t.ReviewerID,
		SaleDeedRef:         t.SaleDeedRef,
		ReviewerReportRef:   t.ReviewerReportRef,
		Status:              string(t.Status),
		RejectionReason:     t.RejectionReason,
		TransferFingerprint: t.TransferFingerprint,
		LedgerReceipt:       t.LedgerReceipt,
		CreatedAt:           t.CreatedAt,
		LastUpdatedAt:       t.LastUpdatedAt,
	}
}

// ToListTransferResponse converts a slice of domain.TransferRequest to TransferResponse DTOs
func ToListTransferResponse(transfers []domain.TransferRequest) []TransferResponse {
	res := make([]TransferResponse, len(transfers))
	for i, t := range transfers {
		res[i] = ToTransferResponse(&t)
	}
	return res
}
