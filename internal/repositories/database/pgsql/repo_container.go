package pgsql

import (
	portsrepo "github.com/openlandreg/land_registry_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the postgres-backed repositories together with
// the external boundaries (ledger registry, document store) supplied by the
// caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool, ledger portsrepo.LedgerRegistry, documents portsrepo.DocumentStore) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	landRepo := newPgxLandRepository(dbPool)
	transferRepo := newPgxTransferRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:     userRepo,
		LandRepo:     landRepo,
		TransferRepo: transferRepo,
		Ledger:       ledger,
		Documents:    documents,
	}
}
