package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// LandStatus mirrors domain.LandStatus at the storage layer.
type LandStatus string

const (
	LandPendingReview LandStatus = "PENDING_REVIEW"
	LandApproved      LandStatus = "APPROVED"
	LandRejected      LandStatus = "REJECTED"
)

// LandRecord represents a row of the land_records table.
type LandRecord struct {
	LandID             string          `db:"land_id"`
	SurveyNumber       string          `db:"survey_number"`
	OwnerID            string          `db:"owner_id"`
	OwnerName          string          `db:"owner_name"`
	AssignedReviewerID string          `db:"assigned_reviewer_id"`
	Area               decimal.Decimal `db:"area"`
	District           string          `db:"district"`
	LandType           string          `db:"land_type"`
	Address            string          `db:"address"`
	AppointmentDate    sql.NullTime    `db:"appointment_date"`
	DocumentRef        sql.NullString  `db:"document_ref"`
	ReviewerReportRef  sql.NullString  `db:"reviewer_report_ref"`
	Status             LandStatus      `db:"status"`
	RejectionReason    sql.NullString  `db:"rejection_reason"`
	Fingerprint        sql.NullString  `db:"fingerprint"`
	LedgerReceipt      sql.NullString  `db:"ledger_receipt"`
	LedgerTimestamp    sql.NullTime    `db:"ledger_timestamp"`
	AuditFields
}
