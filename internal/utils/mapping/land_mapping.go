package mapping

import (
	"database/sql"
	"time"

	"github.com/openlandreg/land_registry_app/internal/core/domain"
	"github.com/openlandreg/land_registry_app/internal/models"
)

// ToModelLandRecord converts a domain LandRecord to a model LandRecord
func ToModelLandRecord(d domain.LandRecord) models.LandRecord {
	return models.LandRecord{
		LandID:             d.LandID,
		SurveyNumber:       d.SurveyNumber,
		OwnerID:            d.OwnerID,
		OwnerName:          d.OwnerName,
		AssignedReviewerID: d.AssignedReviewerID,
		Area:               d.Area,
		District:           d.District,
		LandType:           d.LandType,
		Address:            d.Address,
		AppointmentDate:    toNullTime(d.AppointmentDate),
		DocumentRef:        toNullString(d.DocumentRef),
		ReviewerReportRef:  toNullString(d.ReviewerReportRef),
		Status:             models.LandStatus(d.Status),
		RejectionReason:    toNullString(d.RejectionReason),
		Fingerprint:        toNullString(d.Fingerprint),
		LedgerReceipt:      toNullString(d.LedgerReceipt),
		LedgerTimestamp:    toNullTime(d.LedgerTimestamp),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLandRecord converts a model LandRecord to a domain LandRecord
func ToDomainLandRecord(m models.LandRecord) domain.LandRecord {
	return domain.LandRecord{
		LandID:             m.LandID,
		SurveyNumber:       m.SurveyNumber,
		OwnerID:            m.OwnerID,
		OwnerName:          m.OwnerName,
		AssignedReviewerID: m.AssignedReviewerID,
		Area:               m.Area,
		District:           m.District,
		LandType:           m.LandType,
		Address:            m.Address,
		AppointmentDate:    fromNullTime(m.AppointmentDate),
		DocumentRef:        fromNullString(m.DocumentRef),
		ReviewerReportRef:  fromNullString(m.ReviewerReportRef),
		Status:             domain.LandStatus(m.Status),
		RejectionReason:    fromNullString(m.RejectionReason),
		Fingerprint:        fromNullString(m.Fingerprint),
		LedgerReceipt:      fromNullString(m.LedgerReceipt),
		LedgerTimestamp:    fromNullTime(m.LedgerTimestamp),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
