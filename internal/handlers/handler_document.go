package handlers

import (
	"io"
	"net/http"

	portssvc "github.com/openlandreg/land_registry_app/internal/core/ports/services"
	"github.com/openlandreg/land_registry_app/internal/dto"
	"github.com/openlandreg/land_registry_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// documentHandler accepts deed and report uploads and returns opaque refs.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds}
}

// registerDocumentRoutes registers document upload routes.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)
	rg.POST("/documents", h.uploadDocument)
}

// uploadDocument godoc
// @Summary Upload a document
// @Description Uploads a deed scan or reviewer report and returns an opaque reference URL to attach to a land record or transfer.
// @Tags documents
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Document file (pdf, png, jpg)"
// @Success 201 {object} dto.UploadDocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) uploadDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A 'file' form field is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Could not read uploaded file"})
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Could not read uploaded file"})
		return
	}

	ref, err := h.documentService.UploadDocument(c.Request.Context(), fileHeader.Filename, content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Document uploaded", "filename", fileHeader.Filename, "ref", ref)
	c.JSON(http.StatusCreated, dto.UploadDocumentResponse{Ref: ref})
}
