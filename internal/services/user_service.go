package services

import (
	"context"
	"errors"

	"github.com/niley1nov/LMS/internal/config"
	"github.com/niley1nov/LMS/internal/dto"
	"github.com/niley1nov/LMS/internal/models"
	"github.com/niley1nov/LMS/internal/store"
	"gorm.io/gorm"
)

// UserService covers user lookup and administration. Regular users can only
// read and update themselves; the elevated role from ADMIN_EMAILS can act on
// anyone.
type UserService struct {
	users  *store.Store[models.User]
	admins adminList
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserService {
	return &UserService{
		users:  store.New[models.User](db),
		admins: newAdminList(cfg.AdminEmails),
	}
}

// IsElevated reports whether the user holds the global elevated role.
func (s *UserService) IsElevated(user *models.User) bool {
	return s.admins.contains(user.Email)
}

// GetUser fetches a user by id. Existence is checked before permission, so
// a missing id is NotFound even for callers who could not read it.
func (s *UserService) GetUser(ctx context.Context, id uint, actor *models.User) (*models.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.ID != actor.ID && !s.IsElevated(actor) {
		return nil, ErrForbidden
	}
	return user, nil
}

// UpdateUser applies the non-nil fields of the request to the user. Only the
// user themselves or an elevated actor may update.
func (s *UserService) UpdateUser(ctx context.Context, id uint, req *dto.UpdateUserRequest, actor *models.User) (*models.User, error) {
	user, err := s.GetUser(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if len(fields) == 0 {
		return user, nil
	}
	if _, err := s.users.Update(ctx, user, fields); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers is restricted to the elevated role.
func (s *UserService) ListUsers(ctx context.Context, actor *models.User, offset, limit int) ([]models.User, error) {
	if !s.IsElevated(actor) {
		return nil, ErrForbidden
	}
	return s.users.List(ctx, offset, limit)
}

// DeleteUser removes a user and returns the removed record. Elevated only.
func (s *UserService) DeleteUser(ctx context.Context, id uint, actor *models.User) (*models.User, error) {
	if !s.IsElevated(actor) {
		return nil, ErrForbidden
	}
	user, err := s.users.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
