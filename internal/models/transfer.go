package models

import "database/sql"

// TransferStatus mirrors domain.TransferStatus at the storage layer.
type TransferStatus string

const (
	TransferInitiated TransferStatus = "INITIATED"
	TransferAccepted  TransferStatus = "ACCEPTED"
	TransferVerified  TransferStatus = "VERIFIED"
	TransferCompleted TransferStatus = "COMPLETED"
	TransferRejected  TransferStatus = "REJECTED"
)

// TransferRequest represents a row of the transfer_requests table.
type TransferRequest struct {
	TransferID          string         `db:"transfer_id"`
	LandID              string         `db:"land_id"`
	SellerID            string         `db:"seller_id"`
	BuyerID             string         `db:"buyer_id"`
	ReviewerID          string         `db:"reviewer_id"`
	SaleDeedRef         string         `db:"sale_deed_ref"`
	ReviewerReportRef   sql.NullString `db:"reviewer_report_ref"`
	Status              TransferStatus `db:"status"`
	RejectionReason     sql.NullString `db:"rejection_reason"`
	TransferFingerprint sql.NullString `db:"transfer_fingerprint"`
	LedgerReceipt       sql.NullString `db:"ledger_receipt"`
	AuditFields
}
