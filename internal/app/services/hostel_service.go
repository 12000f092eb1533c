package services

import (
	"context"
	"fmt"

	"github.com/tenacity/erp/internal/app/auth"
	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/app/repositories"
	"github.com/tenacity/erp/internal/domain/hostel"
	"github.com/tenacity/erp/internal/pkg/apperrors"
	"github.com/tenacity/erp/internal/pkg/logger"
)

// HostelService defines the interface for hostel operations
type HostelService interface {
	Overview(ctx context.Context, viewer auth.Viewer) (hostel.Summary, error)
	Allocate(ctx context.Context, viewer auth.Viewer, roomID, studentID string) (hostel.Summary, []string, error)
	Deallocate(ctx context.Context, viewer auth.Viewer, roomID, studentID string) (hostel.Summary, []string, error)
}

// hostelServiceImpl implements HostelService
type hostelServiceImpl struct {
	studentRepo  *repositories.StudentRepository
	roomRepo     *repositories.RoomRepository
	authzService *auth.AuthorizationService
}

// NewHostelService creates a new HostelService
func NewHostelService(repos *repositories.Repositories, authzService *auth.AuthorizationService) HostelService {
	return &hostelServiceImpl{
		studentRepo:  repos.Students,
		roomRepo:     repos.Rooms,
		authzService: authzService,
	}
}

// Overview returns occupancy figures and the students without a room
func (s *hostelServiceImpl) Overview(ctx context.Context, viewer auth.Viewer) (hostel.Summary, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionManageHostel, ""); err != nil {
		return hostel.Summary{}, err
	}
	return hostel.Overview(s.roomRepo.All(ctx), s.studentRepo.All(ctx)), nil
}

// Allocate places an existing student into a room
func (s *hostelServiceImpl) Allocate(ctx context.Context, viewer auth.Viewer, roomID, studentID string) (hostel.Summary, []string, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionManageHostel, ""); err != nil {
		return hostel.Summary{}, nil, err
	}
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return hostel.Summary{}, nil, fmt.Errorf("allocate %s: %w", studentID, apperrors.ErrUnknownStudent)
	}

	m, err := s.roomRepo.Mutate(ctx, func(rooms []models.HostelRoom) ([]models.HostelRoom, error) {
		return hostel.Allocate(rooms, roomID, studentID)
	})
	if err != nil {
		return hostel.Summary{}, nil, err
	}

	logger.Info().Str("roomID", roomID).Str("studentID", studentID).Msg("Student allocated to room")
	return hostel.Overview(m.Items, s.studentRepo.All(ctx)), m.Warnings(), nil
}

// Deallocate removes a student from a room
func (s *hostelServiceImpl) Deallocate(ctx context.Context, viewer auth.Viewer, roomID, studentID string) (hostel.Summary, []string, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionManageHostel, ""); err != nil {
		return hostel.Summary{}, nil, err
	}

	m, err := s.roomRepo.Mutate(ctx, func(rooms []models.HostelRoom) ([]models.HostelRoom, error) {
		return hostel.Deallocate(rooms, roomID, studentID)
	})
	if err != nil {
		return hostel.Summary{}, nil, err
	}

	logger.Info().Str("roomID", roomID).Str("studentID", studentID).Msg("Student removed from room")
	return hostel.Overview(m.Items, s.studentRepo.All(ctx)), m.Warnings(), nil
}
