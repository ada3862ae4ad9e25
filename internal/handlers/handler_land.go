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

// landHandler handles HTTP requests for the land registration workflow.
type landHandler struct {
	landService portssvc.LandSvcFacade
}

func newLandHandler(ls portssvc.LandSvcFacade) *landHandler {
	return &landHandler{landService: ls}
}

// registerLandRoutes registers all land-related routes.
func registerLandRoutes(rg *gin.RouterGroup, landService portssvc.LandSvcFacade) {
	h := newLandHandler(landService)

	lands := rg.Group("/lands")
	{
		lands.POST("", middleware.RequireRoles(domain.RoleCitizen), h.submitLand)
		lands.POST("/register", middleware.RequireRoles(domain.RoleOfficer), h.registerLand)
		lands.GET("", h.listOwnedLands)
		lands.GET("/review-queue", middleware.RequireRoles(domain.RoleOfficer), h.listReviewQueue)
		lands.GET("/approval-queue", middleware.RequireRoles(domain.RoleAdmin), h.listApprovalQueue)
		lands.GET("/:id", h.getLand)
		lands.POST("/:id/report", middleware.RequireRoles(domain.RoleOfficer), h.attachReport)
		lands.POST("/:id/approve", middleware.RequireRoles(domain.RoleAdmin), h.approveLand)
		lands.POST("/:id/reject", middleware.RequireRoles(domain.RoleAdmin, domain.RoleOfficer), h.rejectLand)
	}
}

func mustCaller(c *gin.Context) (domain.Caller, bool) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return caller, ok
}

// submitLand godoc
// @Summary Submit a parcel for registration
// @Description Creates a PENDING_REVIEW land record for the calling citizen with a reserved verification appointment. Slot occupancy is re-checked atomically; a lost race returns 409.
// @Tags lands
// @Accept  json
// @Produce  json
// @Param   land body dto.SubmitLandRequest true "Parcel details and chosen slot"
// @Success 201 {object} dto.LandResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /lands [post]
func (h *landHandler) submitLand(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var req dto.SubmitLandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	land, err := h.landService.SubmitLand(c.Request.Context(), caller, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Land submitted", slog.String("land_id", land.LandID), slog.String("survey_number", land.SurveyNumber))
	c.JSON(http.StatusCreated, dto.ToLandResponse(land))
}

// registerLand godoc
// @Summary Register a parcel on behalf of a citizen
// @Description Creates a PENDING_REVIEW land record directly as the calling officer. No appointment is booked; the deed document reference is required.
// @Tags lands
// @Accept  json
// @Produce  json
// @Param   land body dto.RegisterLandRequest true "Parcel details and deed reference"
// @Success 201 {object} dto.LandResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /lands/register [post]
func (h *landHandler) registerLand(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var req dto.RegisterLandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	land, err := h.landService.RegisterLand(c.Request.Context(), caller, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Land registered by officer", slog.String("land_id", land.LandID), slog.String("owner_id", land.OwnerID))
	c.JSON(http.StatusCreated, dto.ToLandResponse(land))
}

// listOwnedLands godoc
// @Summary List the caller's land records
// @Description Retrieves a token-paginated page of land records owned by the caller, newest first.
// @Tags lands
// @Produce  json
// @Param   limit query int false "Max results" default(20)
// @Param   nextToken query string false "Opaque pagination token from a previous page"
// @Success 200 {object} dto.ListLandsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /lands [get]
func (h *landHandler) listOwnedLands(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var params dto.ListLandsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	lands, nextToken, err := h.landService.ListOwnedLands(c.Request.Context(), caller, params.Limit, params.NextToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListLandsResponse{Lands: dto.ToListLandResponse(lands), NextToken: nextToken})
}

// listReviewQueue godoc
// @Summary List the reviewer's pending queue
// @Description Retrieves the calling officer's assigned PENDING_REVIEW records that still lack a verification report, ordered by appointment date.
// @Tags lands
// @Produce  json
// @Success 200 {array} dto.LandResponse
// @Security BearerAuth
// @Router /lands/review-queue [get]
func (h *landHandler) listReviewQueue(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	lands, err := h.landService.ListReviewQueue(c.Request.Context(), caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListLandResponse(lands))
}

// listApprovalQueue godoc
// @Summary List records awaiting approval
// @Description Retrieves PENDING_REVIEW records in the admin's district that already carry a reviewer report.
// @Tags lands
// @Produce  json
// @Success 200 {array} dto.LandResponse
// @Security BearerAuth
// @Router /lands/approval-queue [get]
func (h *landHandler) listApprovalQueue(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	lands, err := h.landService.ListApprovalQueue(c.Request.Context(), caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListLandResponse(lands))
}

// getLand godoc
// @Summary Get a land record
// @Description Retrieves one land record. Visible to its owner, its assigned reviewer, and admins.
// @Tags lands
// @Produce  json
// @Param   id path string true "Land ID"
// @Success 200 {object} dto.LandResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /lands/{id} [get]
func (h *landHandler) getLand(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	land, err := h.landService.GetLandByID(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLandResponse(land))
}

// attachReport godoc
// @Summary Attach a verification report
// @Description Attaches the reviewer's verification report to an assigned PENDING_REVIEW record. Assigned reviewer only.
// @Tags lands
// @Accept  json
// @Produce  json
// @Param   id path string true "Land ID"
// @Param   report body dto.AttachReportRequest true "Report reference"
// @Success 200 {object} dto.LandResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /lands/{id}/report [post]
func (h *landHandler) attachReport(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var req dto.AttachReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	land, err := h.landService.AttachReport(c.Request.Context(), caller, c.Param("id"), req.ReportRef)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLandResponse(land))
}

// approveLand godoc
// @Summary Approve a land record
// @Description Mints the record's fingerprint on the external ledger and transitions it to APPROVED with the proof. Admin only; requires an attached reviewer report. Irreversible.
// @Tags lands
// @Produce  json
// @Param   id path string true "Land ID"
// @Success 200 {object} dto.LandResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /lands/{id}/approve [post]
func (h *landHandler) approveLand(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	land, err := h.landService.ApproveLand(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Land approved", slog.String("land_id", land.LandID))
	c.JSON(http.StatusOK, dto.ToLandResponse(land))
}

// rejectLand godoc
// @Summary Reject a land record
// @Description Terminally rejects a PENDING_REVIEW record with a reason. Allowed to admins and to the assigned reviewer.
// @Tags lands
// @Accept  json
// @Produce  json
// @Param   id path string true "Land ID"
// @Param   rejection body dto.RejectRequest true "Rejection reason"
// @Success 200 {object} dto.LandResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /lands/{id}/reject [post]
func (h *landHandler) rejectLand(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	land, err := h.landService.RejectLand(c.Request.Context(), caller, c.Param("id"), req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLandResponse(land))
}
