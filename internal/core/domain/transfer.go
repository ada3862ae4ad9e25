package domain

// TransferStatus indicates where an ownership-change request sits in its
// four-stage approval chain.
type TransferStatus string

const (
	TransferInitiated TransferStatus = "INITIATED"
	TransferAccepted  TransferStatus = "ACCEPTED"
	TransferVerified  TransferStatus = "VERIFIED"
	TransferCompleted TransferStatus = "COMPLETED"
	TransferRejected  TransferStatus = "REJECTED"
)

// IsTerminal reports whether no further transition is allowed from the status.
func (s TransferStatus) IsTerminal() bool {
	return s == TransferCompleted || s == TransferRejected
}

// RejectorRole returns the single role allowed to reject a transfer sitting in
// the given status. Each non-terminal stage is rejectable only by the role
// that owns it.
func (s TransferStatus) RejectorRole() (UserRole, bool) {
	switch s {
	case TransferInitiated:
		return RoleCitizen, true // the buyer
	case TransferAccepted:
		return RoleOfficer, true // the assigned reviewer
	case TransferVerified:
		return RoleAdmin, true // the approver
	default:
		return "", false
	}
}

// TransferRequest represents a proposed ownership change over one approved
// LandRecord. At most one non-terminal request may exist per land at any time.
type TransferRequest struct {
	TransferID          string         `json:"transferID"` // Primary Key (UUID)
	LandID              string         `json:"landID"`
	SellerID            string         `json:"sellerID"`
	BuyerID             string         `json:"buyerID"`
	ReviewerID          string         `json:"reviewerID"` // Inherited from the land record unless reassigned at creation
	SaleDeedRef         string         `json:"saleDeedRef"`
	ReviewerReportRef   *string        `json:"reviewerReportRef,omitempty"`
	Status              TransferStatus `json:"status"`
	RejectionReason     *string        `json:"rejectionReason,omitempty"`
	TransferFingerprint *string        `json:"transferFingerprint,omitempty"`
	LedgerReceipt       *string        `json:"ledgerReceipt,omitempty"`
	AuditFields
}
