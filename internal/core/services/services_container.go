package services

import (
	portsrepo "github.com/openlandreg/land_registry_app/internal/core/ports/repositories"
	portssvc "github.com/openlandreg/land_registry_app/internal/core/ports/services"
	"github.com/openlandreg/land_registry_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Document = NewDocumentService(repos.Documents)

	// The ledger service is shared by the land and transfer workflows.
	container.Ledger = NewLedgerService(repos.Ledger)

	container.Slot = NewSlotService(cfg, repos.LandRepo, repos.UserRepo)
	container.Land = NewLandService(cfg, repos.LandRepo, repos.UserRepo, container.Slot, container.Ledger)
	container.Transfer = NewTransferService(repos.TransferRepo, repos.LandRepo, repos.UserRepo, container.Ledger)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
