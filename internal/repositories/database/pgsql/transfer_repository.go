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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transferColumns = `transfer_id, land_id, seller_id, buyer_id, reviewer_id, sale_deed_ref,
		reviewer_report_ref, status, rejection_reason, transfer_fingerprint, ledger_receipt,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxTransferRepository struct {
	BaseRepository
}

func newPgxTransferRepository(pool *pgxpool.Pool) portsrepo.TransferRepositoryWithTx {
	return &PgxTransferRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransferRepository implements portsrepo.TransferRepositoryWithTx
var _ portsrepo.TransferRepositoryWithTx = (*PgxTransferRepository)(nil)

func scanTransfer(row pgx.Row) (*models.TransferRequest, error) {
	var m models.TransferRequest
	err := row.Scan(
		&m.TransferID,
		&m.LandID,
		&m.SellerID,
		&m.BuyerID,
		&m.ReviewerID,
		&m.SaleDeedRef,
		&m.ReviewerReportRef,
		&m.Status,
		&m.RejectionReason,
		&m.TransferFingerprint,
		&m.LedgerReceipt,
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

func (r *PgxTransferRepository) CreateTransfer(ctx context.Context, transfer domain.TransferRequest) error {
	m := mapping.ToModelTransferRequest(transfer)
	query := `
		INSERT INTO transfer_requests (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransferID,
		m.LandID,
		m.SellerID,
		m.BuyerID,
		m.ReviewerID,
		m.SaleDeedRef,
		m.ReviewerReportRef,
		m.Status,
		m.RejectionReason,
		m.TransferFingerprint,
		m.LedgerReceipt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation (one active transfer per land)
			return fmt.Errorf("%w: land %s already has an active transfer", apperrors.ErrDuplicate, m.LandID)
		}
		return fmt.Errorf("failed to insert transfer request %s: %w", m.TransferID, err)
	}
	return nil
}

func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.TransferRequest, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_requests WHERE transfer_id = $1;`
	m, err := scanTransfer(r.Pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transfer request %s: %w", transferID, err)
	}
	d := mapping.ToDomainTransferRequest(*m)
	return &d, nil
}

func (r *PgxTransferRepository) FindActiveTransferByLandID(ctx context.Context, landID string) (*domain.TransferRequest, error) {
	// Predicate matches the partial unique index that keeps at most one
	// active transfer per land, so at most one row can come back.
	query := `
		SELECT ` + transferColumns + `
		FROM transfer_requests
		WHERE land_id = $1 AND status NOT IN ($2, $3);
	`
	m, err := scanTransfer(r.Pool.QueryRow(ctx, query, landID, models.TransferCompleted, models.TransferRejected))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active transfer for land %s: %w", landID, err)
	}
	d := mapping.ToDomainTransferRequest(*m)
	return &d, nil
}

func (r *PgxTransferRepository) ListTransfersByParticipant(ctx context.Context, userID string) ([]domain.TransferRequest, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfer_requests
		WHERE seller_id = $1 OR buyer_id = $1 OR reviewer_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers for participant %s: %w", userID, err)
	}
	defer rows.Close()

	return collectTransfers(rows)
}

func (r *PgxTransferRepository) ListTransfersByStatus(ctx context.Context, status domain.TransferStatus, reviewerID string) ([]domain.TransferRequest, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfer_requests
		WHERE status = $1 AND ($2 = '' OR reviewer_id = $2)
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, string(status), reviewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers by status %s: %w", status, err)
	}
	defer rows.Close()

	return collectTransfers(rows)
}

func collectTransfers(rows pgx.Rows) ([]domain.TransferRequest, error) {
	transfers := []domain.TransferRequest{}
	for rows.Next() {
		m, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer request row: %w", err)
		}
		transfers = append(transfers, mapping.ToDomainTransferRequest(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating transfer request rows: %w", err)
	}
	return transfers, nil
}

func (r *PgxTransferRepository) AdvanceTransfer(ctx context.Context, transferID string, expected, next domain.TransferStatus, reportRef *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE transfer_requests
		SET status = $2, reviewer_report_ref = COALESCE($3, reviewer_report_ref),
			last_updated_at = $4, last_updated_by = $5
		WHERE transfer_id = $1 AND status = $6;
	`
	tag, err := r.Pool.Exec(ctx, query, transferID, models.TransferStatus(next), reportRef, updatedAt, updatedBy, models.TransferStatus(expected))
	if err != nil {
		return fmt.Errorf("failed to advance transfer %s to %s: %w", transferID, next, err)
	}
	if tag.RowsAffected() == 0 {
		return r.diagnoseTransferWriteMiss(ctx, transferID, expected)
	}
	return nil
}

func (r *PgxTransferRepository) RejectTransfer(ctx context.Context, transferID string, expected domain.TransferStatus, reason, rejectedBy string, updatedAt time.Time) error {
	query := `
		UPDATE transfer_requests
		SET status = $2, rejection_reason = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transfer_id = $1 AND status = $6;
	`
	tag, err := r.Pool.Exec(ctx, query, transferID, models.TransferRejected, reason, updatedAt, rejectedBy, models.TransferStatus(expected))
	if err != nil {
		return fmt.Errorf("failed to reject transfer %s: %w", transferID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.diagnoseTransferWriteMiss(ctx, transferID, expected)
	}
	return nil
}

// CompleteTransfer finishes a VERIFIED transfer and hands the land over to the
// buyer in one database transaction. The land adopts the transfer fingerprint
// as its current proof so a later read against the ledger matches.
func (r *PgxTransferRepository) CompleteTransfer(ctx context.Context, transferID string, buyerID, landID string, proof domain.LedgerProof, completedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	transferQuery := `
		UPDATE transfer_requests
		SET status = $2, transfer_fingerprint = $3, ledger_receipt = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE transfer_id = $1 AND status = $7;
	`
	tag, err := tx.Exec(ctx, transferQuery, transferID,
		models.TransferCompleted, proof.Fingerprint, proof.Receipt, updatedAt, completedBy, models.TransferVerified)
	if err != nil {
		return fmt.Errorf("failed to complete transfer %s: %w", transferID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.diagnoseTransferWriteMiss(ctx, transferID, domain.TransferVerified)
	}

	landQuery := `
		UPDATE land_records
		SET owner_id = $2, owner_name = (SELECT name FROM users WHERE user_id = $2),
			fingerprint = $3, ledger_receipt = $4, ledger_timestamp = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE land_id = $1 AND status = $8;
	`
	tag, err = tx.Exec(ctx, landQuery, landID, buyerID,
		proof.Fingerprint, proof.Receipt, proof.RecordedAt, updatedAt, completedBy, models.LandApproved)
	if err != nil {
		return fmt.Errorf("failed to reassign land %s to buyer %s: %w", landID, buyerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: land record %s is no longer APPROVED", apperrors.ErrStateConflict, landID)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransferRepository) diagnoseTransferWriteMiss(ctx context.Context, transferID string, expected domain.TransferStatus) error {
	transfer, err := r.FindTransferByID(ctx, transferID)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: transfer %s is %s, expected %s", apperrors.ErrStateConflict, transferID, transfer.Status, expected)
}
