package services

import (
	"context"
	"strings"

	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/app/models/dto"
	"github.com/tenacity/erp/internal/app/repositories"
	"github.com/tenacity/erp/internal/pkg/apperrors"
	"github.com/tenacity/erp/internal/pkg/auth"
	"github.com/tenacity/erp/internal/pkg/logger"
)

// SessionService defines the interface for role selection
type SessionService interface {
	Select(ctx context.Context, req dto.SessionRequest) (*dto.SessionResponse, error)
}

// sessionServiceImpl implements SessionService
type sessionServiceImpl struct {
	studentRepo *repositories.StudentRepository
	jwtService  *auth.JWTService
}

// NewSessionService creates a new SessionService
func NewSessionService(studentRepo *repositories.StudentRepository, jwtService *auth.JWTService) SessionService {
	return &sessionServiceImpl{
		studentRepo: studentRepo,
		jwtService:  jwtService,
	}
}

// Select issues a token for the declared role. Nothing verifies that the
// caller holds the role; a Student session must name an existing record.
func (s *sessionServiceImpl) Select(ctx context.Context, req dto.SessionRequest) (*dto.SessionResponse, error) {
	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, apperrors.NewValidationError("role must be one of Student, Faculty, Admin")
	}

	studentID := strings.TrimSpace(req.StudentID)
	switch role {
	case models.RoleStudent:
		if studentID == "" {
			return nil, apperrors.NewValidationError("studentId is required for the Student role")
		}
		if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
			return nil, err
		}
	default:
		studentID = ""
	}

	token, expiresIn, err := s.jwtService.GenerateToken(role, studentID)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("role", string(role)).Str("studentID", studentID).Msg("Role selected")
	return &dto.SessionResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		Role:        string(role),
		StudentID:   studentID,
	}, nil
}
