package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"serverless-crud-api/internal/apperrors"
	"serverless-crud-api/internal/models"
	"serverless-crud-api/internal/repositories"
)

// Validation messages shared by the user and product services
const (
	MsgEmailExists       = "Email already exists"
	MsgUpdateFieldNeeded = "At least one field is required for update"
	MsgUserIDRequired    = "User ID is required"
	MsgProductIDRequired = "Product ID is required"
	MsgCategoryRequired  = "Category is required"
	MsgBodyRequired      = "Request body is required"
)

// userService implements the UserService interface
type userService struct {
	userRepo  repositories.UserRepository
	validator *validator.Validate
	logger    *logrus.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repositories.UserRepository, logger *logrus.Logger) UserService {
	if logger == nil {
		logger = logrus.New()
	}
	return &userService{
		userRepo:  userRepo,
		validator: models.NewValidator(),
		logger:    logger,
	}
}

// CreateUser creates a new user with a unique email
func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if req == nil {
		return nil, apperrors.Validation(MsgBodyRequired)
	}

	name := strings.TrimSpace(req.Name)
	email := models.NormalizeEmail(req.Email)
	normalized := &CreateUserRequest{Name: name, Email: email}

	if err := s.validator.Struct(normalized); err != nil {
		return nil, apperrors.Validation(models.ValidationMessage(err))
	}

	if err := s.ensureEmailAvailable(ctx, email, ""); err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, name, email)
	if err != nil {
		if apperrors.IsDuplicate(err) {
			return nil, apperrors.Validation(MsgEmailExists)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if user == nil {
		return nil, apperrors.DataAccess("create", "users", nil, errors.New("insert returned no row"))
	}

	s.logger.WithField("user_id", user.ID).Info("User created")
	return user, nil
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.Validation(MsgUserIDRequired)
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User", id)
	}

	return user, nil
}

// ListUsers retrieves all users, newest first
func (s *userService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies a partial update to an existing user
func (s *userService) UpdateUser(ctx context.Context, id string, req *UpdateUserRequest) (*models.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.Validation(MsgUserIDRequired)
	}
	if req == nil || req.IsEmpty() {
		return nil, apperrors.Validation(MsgUpdateFieldNeeded)
	}

	fields := repositories.UserUpdate{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		fields.Name = &name
	}
	if req.Email != nil {
		email := models.NormalizeEmail(*req.Email)
		fields.Email = &email
	}

	if err := s.validator.Struct(&UpdateUserRequest{Name: fields.Name, Email: fields.Email}); err != nil {
		return nil, apperrors.Validation(models.ValidationMessage(err))
	}

	if fields.Email != nil {
		if err := s.ensureEmailAvailable(ctx, *fields.Email, id); err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.Update(ctx, id, fields)
	if err != nil {
		if apperrors.IsDuplicate(err) {
			return nil, apperrors.Validation(MsgEmailExists)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User", id)
	}

	s.logger.WithField("user_id", id).Info("User updated")
	return user, nil
}

// DeleteUser deletes a user by ID
func (s *userService) DeleteUser(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperrors.Validation(MsgUserIDRequired)
	}

	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("User", id)
	}

	s.logger.WithField("user_id", id).Info("User deleted")
	return nil
}

// ensureEmailAvailable rejects an email held by any user other than ownerID.
// The unique constraint on users.email still guards concurrent writers.
func (s *userService) ensureEmailAvailable(ctx context.Context, email, ownerID string) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil && existing.ID != ownerID {
		return apperrors.Validation(MsgEmailExists)
	}
	return nil
}
