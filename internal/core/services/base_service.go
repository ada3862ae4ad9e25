package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openlandreg/land_registry_app/internal/apperrors"
	"github.com/openlandreg/land_registry_app/internal/core/domain"
	"github.com/openlandreg/land_registry_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// RequireRole checks that the caller holds one of the allowed roles.
func (s *BaseService) RequireRole(caller domain.Caller, allowed ...domain.UserRole) error {
	for _, role := range allowed {
		if caller.Role == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role %s may not perform this action", apperrors.ErrForbidden, caller.Role)
}
