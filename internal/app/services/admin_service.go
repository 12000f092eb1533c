package services

import (
	"context"

	"github.com/tenacity/erp/internal/app/auth"
	"github.com/tenacity/erp/internal/app/models/dto"
	"github.com/tenacity/erp/internal/app/repositories"
	"github.com/tenacity/erp/internal/pkg/logger"
)

// AdminService defines the interface for maintenance operations
type AdminService interface {
	Reset(ctx context.Context, viewer auth.Viewer) (*dto.ResetResponse, []string, error)
}

// adminServiceImpl implements AdminService
type adminServiceImpl struct {
	repos        *repositories.Repositories
	authzService *auth.AuthorizationService
}

// NewAdminService creates a new AdminService
func NewAdminService(repos *repositories.Repositories, authzService *auth.AuthorizationService) AdminService {
	return &adminServiceImpl{repos: repos, authzService: authzService}
}

// Reset restores the seed data of every collection
func (s *adminServiceImpl) Reset(ctx context.Context, viewer auth.Viewer) (*dto.ResetResponse, []string, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionResetData, ""); err != nil {
		return nil, nil, err
	}

	var warnings []string
	warnings = append(warnings, s.repos.Students.Reset(ctx).Warnings()...)
	warnings = append(warnings, s.repos.Transactions.Reset(ctx).Warnings()...)
	warnings = append(warnings, s.repos.Rooms.Reset(ctx).Warnings()...)

	logger.Warn().Msg("Demo data reset to defaults")
	return &dto.ResetResponse{Collections: []string{
		s.repos.Students.Name(),
		s.repos.Transactions.Name(),
		s.repos.Rooms.Name(),
	}}, warnings, nil
}
