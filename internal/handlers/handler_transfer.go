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

// transferHandler handles HTTP requests for the ownership-change workflow.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts}
}

// registerTransferRoutes registers all transfer-related routes.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", middleware.RequireRoles(domain.RoleCitizen), h.initiateTransfer)
		transfers.GET("", h.listTransfers)
		transfers.GET("/:id", h.getTransfer)
		transfers.POST("/:id/accept", middleware.RequireRoles(domain.RoleCitizen), h.acceptTransfer)
		transfers.POST("/:id/verify", middleware.RequireRoles(domain.RoleOfficer), h.verifyTransfer)
		transfers.POST("/:id/complete", middleware.RequireRoles(domain.RoleAdmin), h.completeTransfer)
		transfers.POST("/:id/reject", h.rejectTransfer)
	}
}

// initiateTransfer godoc
// @Summary Initiate an ownership transfer
// @Description Opens an INITIATED transfer over an APPROVED land record the caller owns. Only one non-terminal transfer may exist per parcel.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.InitiateTransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) initiateTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var req dto.InitiateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	transfer, err := h.transferService.InitiateTransfer(c.Request.Context(), caller, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Transfer initiated", slog.String("transfer_id", transfer.TransferID), slog.String("land_id", transfer.LandID))
	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

// listTransfers godoc
// @Summary List the caller's transfers
// @Description Retrieves transfers the caller participates in as seller, buyer, or reviewer. Admins see VERIFIED transfers awaiting completion.
// @Tags transfers
// @Produce  json
// @Success 200 {array} dto.TransferResponse
// @Security BearerAuth
// @Router /transfers [get]
func (h *transferHandler) listTransfers(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	transfers, err := h.transferService.ListTransfersForCaller(c.Request.Context(), caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransferResponse(transfers))
}

// getTransfer godoc
// @Summary Get a transfer request
// @Description Retrieves one transfer request. Visible to its seller, buyer, reviewer, and admins.
// @Tags transfers
// @Produce  json
// @Param   id path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/{id} [get]
func (h *transferHandler) getTransfer(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	transfer, err := h.transferService.GetTransferByID(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// acceptTransfer godoc
// @Summary Accept a transfer (buyer)
// @Description Moves an INITIATED transfer to ACCEPTED. Buyer only.
// @Tags transfers
// @Produce  json
// @Param   id path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/{id}/accept [post]
func (h *transferHandler) acceptTransfer(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	transfer, err := h.transferService.AcceptTransfer(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// verifyTransfer godoc
// @Summary Verify a transfer (reviewer)
// @Description Moves an ACCEPTED transfer to VERIFIED with the verification report attached. Assigned reviewer only.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   id path string true "Transfer ID"
// @Param   report body dto.VerifyTransferRequest true "Report reference"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/{id}/verify [post]
func (h *transferHandler) verifyTransfer(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var req dto.VerifyTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	transfer, err := h.transferService.VerifyTransfer(c.Request.Context(), caller, c.Param("id"), req.ReportRef)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// completeTransfer godoc
// @Summary Complete a transfer (admin)
// @Description Mints the transfer fingerprint on the external ledger, then atomically completes the transfer and reassigns the land to the buyer with the new proof. Admin only.
// @Tags transfers
// @Produce  json
// @Param   id path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/{id}/complete [post]
func (h *transferHandler) completeTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	transfer, err := h.transferService.CompleteTransfer(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Transfer completed", slog.String("transfer_id", transfer.TransferID), slog.String("land_id", transfer.LandID))
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// rejectTransfer godoc
// @Summary Reject a transfer
// @Description Terminally rejects a transfer at its current stage. Only the stage-owning role may reject: buyer at INITIATED, reviewer at ACCEPTED, admin at VERIFIED.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   id path string true "Transfer ID"
// @Param   rejection body dto.RejectRequest true "Rejection reason"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/{id}/reject [post]
func (h *transferHandler) rejectTransfer(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	transfer, err := h.transferService.RejectTransfer(c.Request.Context(), caller, c.Param("id"), req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}
