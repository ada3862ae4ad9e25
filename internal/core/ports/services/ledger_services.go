package services

import (
	"context"

	"github.com/openlandreg/land_registry_app/internal/core/domain"
)

// LedgerSvcFacade is the reconciliation protocol shared by the land and
// transfer machines: it computes a deterministic fingerprint for a record,
// coordinates the write to the external ledger, and hands back the proof the
// caller persists locally.
//
// Minting is two-phase: the ledger write happens first, and only a successful
// receipt allows the caller to transition local state. A failed write returns
// apperrors.ErrLedgerUnavailable with local state untouched; a duplicate-key
// refusal returns apperrors.ErrAlreadyRegistered so the caller can offer the
// operator force-sync path.
type LedgerSvcFacade interface {
	// LandFingerprint computes the deterministic digest of a land record's
	// immutable identifying fields.
	LandFingerprint(land *domain.LandRecord) string

	// TransferFingerprint computes the digest of a transfer: the land's survey
	// identifier, the two parties, and the transfer id as freshness token so
	// distinct transfers never collide.
	TransferFingerprint(land *domain.LandRecord, transfer *domain.TransferRequest) string

	// MintLand writes the land fingerprint to the ledger under the record's
	// key and returns the proof.
	MintLand(ctx context.Context, land *domain.LandRecord) (*domain.LedgerProof, error)

	// MintTransfer writes the transfer fingerprint to the ledger and returns
	// the proof. The ledger's latest entry for a parcel is always the current
	// owner's proof.
	MintTransfer(ctx context.Context, land *domain.LandRecord, transfer *domain.TransferRequest) (*domain.LedgerProof, error)

	// ReadRegistration returns the digest the ledger currently holds for the
	// land's key, for the force-sync recovery path.
	ReadRegistration(ctx context.Context, land *domain.LandRecord) (string, error)
}
