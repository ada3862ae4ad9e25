package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openlandreg/land_registry_app/internal/apperrors"
	"github.com/openlandreg/land_registry_app/internal/core/domain"
	portsrepo "github.com/openlandreg/land_registry_app/internal/core/ports/repositories"
	"github.com/openlandreg/land_registry_app/internal/models"
	"github.com/openlandreg/land_registry_app/internal/utils/mapping"
	"github.com/openlandreg/land_registry_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const landColumns = `land_id, survey_number, owner_id, owner_name, assigned_reviewer_id, area,
		district, land_type, address, appointment_date, document_ref, reviewer_report_ref,
		status, rejection_reason, fingerprint, ledger_receipt, ledger_timestamp,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxLandRepository struct {
	BaseRepository
}

func newPgxLandRepository(pool *pgxpool.Pool) portsrepo.LandRepositoryWithTx {
	return &PgxLandRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLandRepository implements portsrepo.LandRepositoryWithTx
var _ portsrepo.LandRepositoryWithTx = (*PgxLandRepository)(nil)

func scanLand(row pgx.Row) (*models.LandRecord, error) {
	var m models.LandRecord
	err := row.Scan(
		&m.LandID,
		&m.SurveyNumber,
		&m.OwnerID,
		&m.OwnerName,
		&m.AssignedReviewerID,
		&m.Area,
		&m.District,
		&m.LandType,
		&m.Address,
		&m.AppointmentDate,
		&m.DocumentRef,
		&m.ReviewerReportRef,
		&m.Status,
		&m.RejectionReason,
		&m.Fingerprint,
		&m.LedgerReceipt,
		&m.LedgerTimestamp,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateLand persists a new land record. When the record carries an
// appointment, occupancy is re-validated inside the insert transaction: the
// reviewer row is locked so concurrent submissions for the same reviewer
// serialize, and the insert is aborted once the day is full.
func (r *PgxLandRepository) CreateLand(ctx context.Context, land domain.LandRecord, perDayCapacity int) error {
	m := mapping.ToModelLandRecord(land)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if land.AppointmentDate != nil {
		lockQuery := `SELECT user_id FROM users WHERE user_id = $1 AND deleted_at IS NULL FOR UPDATE;`
		var reviewerID string
		if err := tx.QueryRow(ctx, lockQuery, m.AssignedReviewerID).Scan(&reviewerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: reviewer %s", apperrors.ErrNotFound, m.AssignedReviewerID)
			}
			return fmt.Errorf("failed to lock reviewer row: %w", err)
		}

		count, err := countAppointmentsQuerier(ctx, tx, m.AssignedReviewerID, *land.AppointmentDate)
		if err != nil {
			return err
		}
		if count >= perDayCapacity {
			return fmt.Errorf("%w: reviewer %s has no remaining slots on %s",
				apperrors.ErrCapacityExceeded, m.AssignedReviewerID, land.AppointmentDate.Format("2006-01-02"))
		}
	}

	insertQuery := `
		INSERT INTO land_records (` + landColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.LandID,
		m.SurveyNumber,
		m.OwnerID,
		m.OwnerName,
		m.AssignedReviewerID,
		m.Area,
		m.District,
		m.LandType,
		m.Address,
		m.AppointmentDate,
		m.DocumentRef,
		m.ReviewerReportRef,
		m.Status,
		m.RejectionReason,
		m.Fingerprint,
		m.LedgerReceipt,
		m.LedgerTimestamp,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: land record with survey number %s already exists", apperrors.ErrDuplicate, m.SurveyNumber)
		}
		return fmt.Errorf("failed to insert land record %s: %w", m.LandID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxLandRepository) FindLandByID(ctx context.Context, landID string) (*domain.LandRecord, error) {
	query := `SELECT ` + landColumns + ` FROM land_records WHERE land_id = $1;`
	m, err := scanLand(r.Pool.QueryRow(ctx, query, landID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find land record %s: %w", landID, err)
	}
	d := mapping.ToDomainLandRecord(*m)
	return &d, nil
}

func (r *PgxLandRepository) FindLandBySurveyNumber(ctx context.Context, surveyNumber string) (*domain.LandRecord, error) {
	query := `SELECT ` + landColumns + ` FROM land_records WHERE survey_number = $1;`
	m, err := scanLand(r.Pool.QueryRow(ctx, query, surveyNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find land record by survey number %s: %w", surveyNumber, err)
	}
	d := mapping.ToDomainLandRecord(*m)
	return &d, nil
}

func (r *PgxLandRepository) ListLandsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.LandRecord, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{ownerID, limit + 1}
	query := `
		SELECT ` + landColumns + `
		FROM land_records
		WHERE owner_id = $1
	`
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, land_id) < ($3, $4)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += `
		ORDER BY created_at DESC, land_id DESC
		LIMIT $2;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query land records by owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	lands, err := collectLands(rows)
	if err != nil {
		return nil, nil, err
	}

	var newNextToken *string
	if len(lands) > limit {
		lands = lands[:limit]
		last := lands[len(lands)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.LandID)
		newNextToken = &token
	}
	return lands, newNextToken, nil
}

func (r *PgxLandRepository) ListPendingByReviewer(ctx context.Context, reviewerID string, reportAttached *bool) ([]domain.LandRecord, error) {
	query := `
		SELECT ` + landColumns + `
		FROM land_records
		WHERE assigned_reviewer_id = $1 AND status = $2
	`
	if reportAttached != nil {
		if *reportAttached {
			query += ` AND reviewer_report_ref IS NOT NULL`
		} else {
			query += ` AND reviewer_report_ref IS NULL`
		}
	}
	query += ` ORDER BY appointment_date NULLS LAST, created_at;`

	rows, err := r.Pool.Query(ctx, query, reviewerID, models.LandPendingReview)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending land records for reviewer %s: %w", reviewerID, err)
	}
	defer rows.Close()

	return collectLands(rows)
}

func (r *PgxLandRepository) ListApprovalQueue(ctx context.Context, district string) ([]domain.LandRecord, error) {
	query := `
		SELECT ` + landColumns + `
		FROM land_records
		WHERE status = $1 AND reviewer_report_ref IS NOT NULL AND ($2 = '' OR district = $2)
		ORDER BY last_updated_at;
	`
	rows, err := r.Pool.Query(ctx, query, models.LandPendingReview, district)
	if err != nil {
		return nil, fmt.Errorf("failed to query approval queue: %w", err)
	}
	defer rows.Close()

	return collectLands(rows)
}

func (r *PgxLandRepository) CountAppointments(ctx context.Context, reviewerID string, day time.Time) (int, error) {
	return countAppointmentsQuerier(ctx, r.Pool, reviewerID, day)
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func countAppointmentsQuerier(ctx context.Context, q querier, reviewerID string, day time.Time) (int, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	endOfDay := startOfDay.AddDate(0, 0, 1)

	query := `
		SELECT COUNT(*)
		FROM land_records
		WHERE assigned_reviewer_id = $1 AND appointment_date >= $2 AND appointment_date < $3;
	`
	var count int
	if err := q.QueryRow(ctx, query, reviewerID, startOfDay, endOfDay).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count appointments for reviewer %s: %w", reviewerID, err)
	}
	return count, nil
}

func collectLands(rows pgx.Rows) ([]domain.LandRecord, error) {
	lands := []domain.LandRecord{}
	for rows.Next() {
		m, err := scanLand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan land record row: %w", err)
		}
		lands = append(lands, mapping.ToDomainLandRecord(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating land record rows: %w", err)
	}
	return lands, nil
}

func (r *PgxLandRepository) AttachReviewerReport(ctx context.Context, landID, reviewerID, reportRef string, updatedAt time.Time) error {
	query := `
		UPDATE land_records
		SET reviewer_report_ref = $3, last_updated_at = $4, last_updated_by = $2
		WHERE land_id = $1 AND status = $5 AND assigned_reviewer_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, landID, reviewerID, reportRef, updatedAt, models.LandPendingReview)
	if err != nil {
		return fmt.Errorf("failed to attach reviewer report to land record %s: %w", landID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.diagnoseLandWriteMiss(ctx, landID, reviewerID, domain.LandPendingReview)
	}
	return nil
}

func (r *PgxLandRepository) ApproveLand(ctx context.Context, landID string, proof domain.LedgerProof, approverID string, updatedAt time.Time) error {
	query := `
		UPDATE land_records
		SET status = $2, fingerprint = $3, ledger_receipt = $4, ledger_timestamp = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE land_id = $1 AND status = $8 AND reviewer_report_ref IS NOT NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, landID,
		models.LandApproved, proof.Fingerprint, proof.Receipt, proof.RecordedAt,
		updatedAt, approverID, models.LandPendingReview)
	if err != nil {
		return fmt.Errorf("failed to approve land record %s: %w", landID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.diagnoseLandWriteMiss(ctx, landID, "", domain.LandPendingReview)
	}
	return nil
}

func (r *PgxLandRepository) RejectLand(ctx context.Context, landID, reason, rejectedBy string, updatedAt time.Time) error {
	query := `
		UPDATE land_records
		SET status = $2, rejection_reason = $3, last_updated_at = $4, last_updated_by = $5
		WHERE land_id = $1 AND status = $6;
	`
	tag, err := r.Pool.Exec(ctx, query, landID, models.LandRejected, reason, updatedAt, rejectedBy, models.LandPendingReview)
	if err != nil {
		return fmt.Errorf("failed to reject land record %s: %w", landID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.diagnoseLandWriteMiss(ctx, landID, "", domain.LandPendingReview)
	}
	return nil
}

func (r *PgxLandRepository) AdoptLedgerProof(ctx context.Context, landID string, proof domain.LedgerProof, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE land_records
		SET fingerprint = $2, ledger_receipt = $3, ledger_timestamp = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE land_id = $1 AND status = $7;
	`
	tag, err := r.Pool.Exec(ctx, query, landID,
		proof.Fingerprint, proof.Receipt, proof.RecordedAt, updatedAt, updatedBy, models.LandApproved)
	if err != nil {
		return fmt.Errorf("failed to adopt ledger proof for land record %s: %w", landID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.diagnoseLandWriteMiss(ctx, landID, "", domain.LandApproved)
	}
	return nil
}

func (r *PgxLandRepository) ClearLedgerProof(ctx context.Context, landID, clearedBy string, updatedAt time.Time) error {
	query := `
		UPDATE land_records
		SET fingerprint = NULL, ledger_receipt = NULL, ledger_timestamp = NULL,
			status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE land_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, landID, models.LandPendingReview, updatedAt, clearedBy)
	if err != nil {
		return fmt.Errorf("failed to clear ledger proof for land record %s: %w", landID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// diagnoseLandWriteMiss explains why a conditional update touched no rows. The
// re-read is best effort; a row that changed again in between still reports a
// state conflict, which is the honest answer either way.
func (r *PgxLandRepository) diagnoseLandWriteMiss(ctx context.Context, landID, reviewerID string, expected domain.LandStatus) error {
	land, err := r.FindLandByID(ctx, landID)
	if err != nil {
		return err
	}
	if reviewerID != "" && land.AssignedReviewerID != reviewerID {
		return fmt.Errorf("%w: land record %s is not assigned to reviewer %s", apperrors.ErrForbidden, landID, reviewerID)
	}
	if land.Status == expected {
		return fmt.Errorf("%w: land record %s has no reviewer report attached", apperrors.ErrStateConflict, landID)
	}
	return fmt.Errorf("%w: land record %s is %s, expected %s", apperrors.ErrStateConflict, landID, land.Status, expected)
}
