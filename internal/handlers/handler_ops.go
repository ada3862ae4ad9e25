package handlers

import (
	"log/slog"
	"net/http"

	"github.com/openlandreg/land_registry_app/internal/core/domain"
	portssvc "github.com/openlandreg/land_registry_app/internal/core/ports/services"
	"github.com/openlandreg/land_registry_app/internal/dto"
	"github.com/openlandreg/land_registry_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// opsHandler exposes operator-only ledger reconciliation actions. These sit
// outside the citizen/officer workflow surface.
type opsHandler struct {
	landService portssvc.LandSvcFacade
}

func newOpsHandler(ls portssvc.LandSvcFacade) *opsHandler {
	return &opsHandler{landService: ls}
}

// registerOpsRoutes registers operator reconciliation routes under /ops.
func registerOpsRoutes(rg *gin.RouterGroup, landService portssvc.LandSvcFacade) {
	h := newOpsHandler(landService)

	ops := rg.Group("/ops", middleware.RequireRoles(domain.RoleAdmin))
	{
		ops.POST("/lands/:id/force-sync", h.forceSyncLand)
		ops.POST("/lands/:id/reset-mint", h.resetLandMint)
	}
}

// forceSyncLand godoc
// @Summary Adopt the ledger registration as authoritative
// @Description Reads the ledger's digest for the record's key and persists it locally with a synthetic receipt. Used when the ledger already holds an entry the local row lacks.
// @Tags ops
// @Produce  json
// @Param   id path string true "Land ID"
// @Success 200 {object} dto.ForceSyncResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /ops/lands/{id}/force-sync [post]
func (h *opsHandler) forceSyncLand(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	land, digest, err := h.landService.ForceSyncLand(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Land force-synced from ledger", slog.String("land_id", land.LandID), slog.String("digest", digest))
	c.JSON(http.StatusOK, dto.ForceSyncResponse{Land: dto.ToLandResponse(land), LedgerDigest: digest})
}

// resetLandMint godoc
// @Summary Clear a record's local ledger proof
// @Description Clears the local fingerprint and receipt of a record whose ledger write cannot be reconciled, returning it to the pre-mint state so a retry is safe.
// @Tags ops
// @Produce  json
// @Param   id path string true "Land ID"
// @Success 200 {object} dto.LandResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /ops/lands/{id}/reset-mint [post]
func (h *opsHandler) resetLandMint(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	land, err := h.landService.ResetLandMint(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Land mint reset", slog.String("land_id", land.LandID))
	c.JSON(http.StatusOK, dto.ToLandResponse(land))
}
