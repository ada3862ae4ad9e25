package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/openlandreg/land_registry_app/internal/core/domain"
	portsrepo "github.com/openlandreg/land_registry_app/internal/core/ports/repositories"
	portssvc "github.com/openlandreg/land_registry_app/internal/core/ports/services"
)

// ledgerService implements the reconciliation protocol shared by the land and
// transfer workflows. Minting is two-phase: the ledger write happens first and
// only a returned receipt lets the caller transition local state. The service
// never touches the local store itself, so a failed write leaves nothing to
// undo.
type ledgerService struct {
	BaseService
	registry portsrepo.LedgerRegistry

	// now is injectable so proof timestamps are testable.
	now func() time.Time
}

// NewLedgerService creates a new ledger reconciliation service.
func NewLedgerService(registry portsrepo.LedgerRegistry) portssvc.LedgerSvcFacade {
	return &ledgerService{registry: registry, now: time.Now}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// landKey is the parcel's ledger key. The registry keeps the latest digest per
// key, so after a completed transfer a read returns the new owner's proof.
func landKey(land *domain.LandRecord) string {
	return "land:" + land.SurveyNumber
}

// fingerprint joins the canonical fields with "|" and hashes them. Identical
// payloads always produce identical digests.
func fingerprint(fields ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(fields, "|")))
	return hex.EncodeToString(sum[:])
}

// LandFingerprint computes the digest of a land record's immutable
// identifying fields.
func (s *ledgerService) LandFingerprint(land *domain.LandRecord) string {
	return fingerprint(land.SurveyNumber, land.Area.String(), land.Address, land.OwnerName)
}

// TransferFingerprint computes the digest of an ownership change. The transfer
// id acts as a freshness token so distinct transfers over the same parcel and
// parties never collide.
func (s *ledgerService) TransferFingerprint(land *domain.LandRecord, transfer *domain.TransferRequest) string {
	return fingerprint(land.SurveyNumber, transfer.SellerID, transfer.BuyerID, transfer.TransferID)
}

// MintLand writes the land fingerprint to the ledger and returns the proof the
// caller persists locally.
func (s *ledgerService) MintLand(ctx context.Context, land *domain.LandRecord) (*domain.LedgerProof, error) {
	digest := s.LandFingerprint(land)
	receipt, err := s.registry.Write(ctx, landKey(land), digest)
	if err != nil {
		s.LogError(ctx, err, "Ledger write failed for land mint",
			slog.String("land_id", land.LandID), slog.String("survey_number", land.SurveyNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Land minted on ledger",
		slog.String("land_id", land.LandID), slog.String("receipt", receipt))
	return &domain.LedgerProof{
		Fingerprint: digest,
		Receipt:     receipt,
		RecordedAt:  s.now(),
	}, nil
}

// MintTransfer writes the transfer fingerprint under the parcel's key. The
// latest entry for a parcel is always the current owner's proof.
func (s *ledgerService) MintTransfer(ctx context.Context, land *domain.LandRecord, transfer *domain.TransferRequest) (*domain.LedgerProof, error) {
	digest := s.TransferFingerprint(land, transfer)
	receipt, err := s.registry.Write(ctx, landKey(land), digest)
	if err != nil {
		s.LogError(ctx, err, "Ledger write failed for transfer mint",
			slog.String("transfer_id", transfer.TransferID), slog.String("land_id", land.LandID))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer minted on ledger",
		slog.String("transfer_id", transfer.TransferID), slog.String("receipt", receipt))
	return &domain.LedgerProof{
		Fingerprint: digest,
		Receipt:     receipt,
		RecordedAt:  s.now(),
	}, nil
}

// ReadRegistration returns the digest the ledger currently holds for the
// land's key. Used by the operator force-sync path after an AlreadyRegistered
// refusal.
func (s *ledgerService) ReadRegistration(ctx context.Context, land *domain.LandRecord) (string, error) {
	return s.registry.Read(ctx, landKey(land))
}
