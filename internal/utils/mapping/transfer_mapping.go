package mapping

import (
	"github.com/openlandreg/land_registry_app/internal/core/domain"
	"github.com/openlandreg/land_registry_app/internal/models"
)

// ToModelTransferRequest converts a domain TransferRequest to a model TransferRequest
func ToModelTransferRequest(d domain.TransferRequest) models.TransferRequest {
	return models.TransferRequest{
		TransferID:          d.TransferID,
		LandID:              d.LandID,
		SellerID:            d.SellerID,
		BuyerID:             d.BuyerID,
		ReviewerID:          d.ReviewerID,
		SaleDeedRef:         d.SaleDeedRef,
		ReviewerReportRef:   toNullString(d.ReviewerReportRef),
		Status:              models.TransferStatus(d.Status),
		RejectionReason:     toNullString(d.RejectionReason),
		TransferFingerprint: toNullString(d.TransferFingerprint),
		LedgerReceipt:       toNullString(d.LedgerReceipt),
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransferRequest converts a model TransferRequest to a domain TransferRequest
func ToDomainTransferRequest(m models.TransferRequest) domain.TransferRequest {
	return domain.TransferRequest{
		TransferID:          m.TransferID,
		LandID:              m.LandID,
		SellerID:            m.SellerID,
		BuyerID:             m.BuyerID,
		ReviewerID:          m.ReviewerID,
		SaleDeedRef:         m.SaleDeedRef,
		ReviewerReportRef:   fromNullString(m.ReviewerReportRef),
		Status:              domain.TransferStatus(m.Status),
		RejectionReason:     fromNullString(m.RejectionReason),
		TransferFingerprint: fromNullString(m.TransferFingerprint),
		LedgerReceipt:       fromNullString(m.LedgerReceipt),
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}
