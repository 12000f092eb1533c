package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/app/repositories"
	"github.com/tenacity/erp/internal/pkg/apperrors"
	"github.com/tenacity/erp/internal/seed"
)

func newAuthz() *AuthorizationService {
	repos := repositories.NewRepositories(repositories.NewMemoryStore(), repositories.Seeds{
		Students:     seed.Students,
		Transactions: seed.Transactions,
		Rooms:        seed.Rooms,
	})
	return NewAuthorizationService(repos.Students)
}

func TestAuthorize(t *testing.T) {
	s := newAuthz()
	student := Viewer{Role: models.RoleStudent, StudentID: "s1"}
	faculty := Viewer{Role: models.RoleFaculty}
	admin := Viewer{Role: models.RoleAdmin}

	tests := []struct {
		name    string
		viewer  Viewer
		action  Action
		target  string
		allowed bool
	}{
		{"student views self", student, ActionViewStudent, "s1", true},
		{"student views other", student, ActionViewStudent, "s2", false},
		{"student edits", student, ActionEditAcademics, "s1", false},
		{"faculty edits", faculty, ActionEditAcademics, "s2", true},
		{"faculty admits", faculty, ActionAdmitStudent, "", false},
		{"admin admits", admin, ActionAdmitStudent, "", true},
		{"admin edits academics", admin, ActionEditAcademics, "s2", false},
		{"admin fees", admin, ActionManageFees, "", true},
		{"faculty fees", faculty, ActionManageFees, "", false},
		{"unknown action", admin, Action("launch"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Authorize(tt.viewer, tt.action, tt.target)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
			}
		})
	}
}

func TestResolveSelf(t *testing.T) {
	s := newAuthz()
	ctx := context.Background()

	st, err := s.ResolveSelf(ctx, Viewer{Role: models.RoleStudent, StudentID: "s4"})
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", st.Name)

	_, err = s.ResolveSelf(ctx, Viewer{Role: models.RoleStudent, StudentID: "s99"})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = s.ResolveSelf(ctx, Viewer{Role: models.RoleAdmin})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
