package services

import (
	"context"

	"github.com/openlandreg/land_registry_app/internal/core/domain"
	"github.com/openlandreg/land_registry_app/internal/dto"
)

// TransferReaderSvc defines read operations over transfer requests
type TransferReaderSvc interface {
	// GetTransferByID retrieves a transfer request, restricted to its
	// participants and admins.
	GetTransferByID(ctx context.Context, caller domain.Caller, transferID string) (*domain.TransferRequest, error)

	// ListTransfersForCaller retrieves transfers the caller participates in
	// (seller, buyer, or reviewer). Admins see VERIFIED transfers awaiting
	// completion.
	ListTransfersForCaller(ctx context.Context, caller domain.Caller) ([]domain.TransferRequest, error)
}

// TransferWorkflowSvc defines the four-stage ownership-change chain. Each
// stage is advanced (or rejected) only by the role owning it, via a
// conditional update on the expected prior status.
type TransferWorkflowSvc interface {
	// InitiateTransfer opens an INITIATED request. The caller must own the
	// referenced land, the land must be APPROVED, and no other non-terminal
	// transfer may exist for it.
	InitiateTransfer(ctx context.Context, caller domain.Caller, req dto.InitiateTransferRequest) (*domain.TransferRequest, error)

	// AcceptTransfer moves INITIATED → ACCEPTED; buyer only.
	AcceptTransfer(ctx context.Context, caller domain.Caller, transferID string) (*domain.TransferRequest, error)

	// VerifyTransfer moves ACCEPTED → VERIFIED with the report attached;
	// assigned reviewer only.
	VerifyTransfer(ctx context.Context, caller domain.Caller, transferID, reportRef string) (*domain.TransferRequest, error)

	// CompleteTransfer mints the transfer fingerprint on the external ledger
	// and then, in one database transaction, moves VERIFIED → COMPLETED,
	// reassigns the land to the buyer and overwrites the land's proof with the
	// transfer proof. Admin only.
	CompleteTransfer(ctx context.Context, caller domain.Caller, transferID string) (*domain.TransferRequest, error)

	// RejectTransfer terminally rejects the transfer at its current stage.
	// Only the stage-owning role may reject: the buyer at INITIATED, the
	// assigned reviewer at ACCEPTED, an admin at VERIFIED.
	RejectTransfer(ctx context.Context, caller domain.Caller, transferID, reason string) (*domain.TransferRequest, error)
}

// TransferSvcFacade combines all transfer-related service interfaces
type TransferSvcFacade interface {
	TransferReaderSvc
	TransferWorkflowSvc
}
