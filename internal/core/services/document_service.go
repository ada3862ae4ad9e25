package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/openlandreg/land_registry_app/internal/apperrors"
	portsrepo "github.com/openlandreg/land_registry_app/internal/core/ports/repositories"
	portssvc "github.com/openlandreg/land_registry_app/internal/core/ports/services"
)

// maxDocumentSize bounds uploads at 10 MiB.
const maxDocumentSize = 10 << 20

var allowedDocumentExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// documentService implements portssvc.DocumentSvcFacade as a thin proxy over
// the external store.
type documentService struct {
	BaseService
	store portsrepo.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(store portsrepo.DocumentStore) portssvc.DocumentSvcFacade {
	return &documentService{store: store}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) UploadDocument(ctx context.Context, filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("%w: empty document", apperrors.ErrValidation)
	}
	if len(content) > maxDocumentSize {
		return "", fmt.Errorf("%w: document exceeds %d bytes", apperrors.ErrValidation, maxDocumentSize)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedDocumentExtensions[ext] {
		return "", fmt.Errorf("%w: unsupported document type %q", apperrors.ErrValidation, ext)
	}

	ref, err := s.store.Upload(ctx, filename, content)
	if err != nil {
		s.LogError(ctx, err, "Document upload failed", slog.String("filename", filename))
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	s.LogInfo(ctx, "Document uploaded", slog.String("filename", filename), slog.String("ref", ref))
	return ref, nil
}
