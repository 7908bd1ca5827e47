package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tienda/backend/internal/domain/identity"
	"github.com/tienda/backend/internal/domain/shared"
)

// UserService handles user administration operations
type UserService struct {
	userRepo identity.UserRepository
	roleRepo identity.RoleRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, roleRepo identity.RoleRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		logger:   logger,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

// List retrieves users matching the filter, with the total count
func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]UserInfo, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	users, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	infos := make([]UserInfo, len(users))
	for i := range users {
		infos[i] = toUserInfo(&users[i])
	}
	return infos, total, nil
}

// Update applies a partial update to a user. Nil fields are left untouched.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Name cannot be empty")
		}
		user.Name = *input.Name
		user.Touch()
	}
	if input.Email != nil {
		existing, err := s.userRepo.FindByEmail(ctx, *input.Email)
		if err == nil && existing.ID != user.ID {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
		} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		user.Email = *input.Email
		user.Touch()
	}
	if input.Password != nil {
		if err := user.SetPassword(*input.Password); err != nil {
			return nil, err
		}
	}
	if input.RoleName != nil {
		role, err := s.roleRepo.FindByName(ctx, *input.RoleName)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_INPUT", "Unknown role: "+*input.RoleName)
			}
			return nil, err
		}
		user.RoleID = role.ID
		user.Role = role
		user.Touch()
	}
	if input.Status != nil {
		switch identity.UserStatus(*input.Status) {
		case identity.UserStatusActive:
			user.Activate()
		case identity.UserStatusDeactivated:
			user.Deactivate()
		default:
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown status: "+*input.Status)
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User updated", zap.String("user_id", user.ID.String()))
	info := toUserInfo(user)
	return &info, nil
}

// Delete removes a user account
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

// ListRoles returns all roles
func (s *UserService) ListRoles(ctx context.Context) ([]identity.Role, error) {
	return s.roleRepo.FindAll(ctx)
}
