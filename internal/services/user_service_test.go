package services

import (
	"context"
	"testing"

	"serverless-crud-api/internal/apperrors"
	"serverless-crud-api/internal/models"
	"serverless-crud-api/internal/repositories"
)

func TestUserService_CreateUser(t *testing.T) {
	svc := setupTestServices(t).UserService
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &CreateUserRequest{Name: "  Ann  ", Email: " Ann@Example.com "})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID == "" || user.Name != "Ann" || user.Email != "ann@example.com" {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestUserService_CreateUserValidation(t *testing.T) {
	svc := setupTestServices(t).UserService
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *CreateUserRequest
		message string
	}{
		{"nil request", nil, MsgBodyRequired},
		{"missing name", &CreateUserRequest{Name: "   ", Email: "a@example.com"}, "Name is required"},
		{"missing email", &CreateUserRequest{Name: "Ann"}, "Email is required"},
		{"bad email", &CreateUserRequest{Name: "Ann", Email: "ann.example.com"}, "Invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUser(ctx, tt.req)
			assertValidation(t, err, tt.message)
		})
	}
}

func TestUserService_EmailUniqueness(t *testing.T) {
	svc := setupTestServices(t).UserService
	ctx := context.Background()

	ann, err := svc.CreateUser(ctx, &CreateUserRequest{Name: "Ann", Email: "ann@example.com"})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	bob, err := svc.CreateUser(ctx, &CreateUserRequest{Name: "Bob", Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	// Case differences still collide
	_, err = svc.CreateUser(ctx, &CreateUserRequest{Name: "Ann 2", Email: "ANN@example.com"})
	assertValidation(t, err, MsgEmailExists)

	_, err = svc.UpdateUser(ctx, bob.ID, &UpdateUserRequest{Email: strPtr("ann@example.com")})
	assertValidation(t, err, MsgEmailExists)

	// Keeping your own email is fine
	same, err := svc.UpdateUser(ctx, ann.ID, &UpdateUserRequest{Email: strPtr("ann@example.com"), Name: strPtr("Annie")})
	if err != nil {
		t.Fatalf("UpdateUser with own email failed: %v", err)
	}
	if same.Name != "Annie" {
		t.Errorf("Name = %s, want Annie", same.Name)
	}
}

func TestUserService_GetUser(t *testing.T) {
	svc := setupTestServices(t).UserService
	ctx := context.Background()

	_, err := svc.GetUser(ctx, " ")
	assertValidation(t, err, MsgUserIDRequired)

	_, err = svc.GetUser(ctx, "missing")
	assertNotFound(t, err)

	created, err := svc.CreateUser(ctx, &CreateUserRequest{Name: "Ann", Email: "ann@example.com"})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	got, err := svc.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Email != created.Email {
		t.Errorf("GetUser returned %+v", got)
	}
}

func TestUserService_ListUsers(t *testing.T) {
	svc := setupTestServices(t).UserService
	ctx := context.Background()

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Errorf("expected empty list, got %#v", users)
	}

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := svc.CreateUser(ctx, &CreateUserRequest{Name: "User", Email: email}); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	users, err = svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 || users[0].Email != "b@example.com" {
		t.Errorf("expected newest first, got %+v", users)
	}
}

func TestUserService_UpdateUser(t *testing.T) {
	svc := setupTestServices(t).UserService
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &CreateUserRequest{Name: "Ann", Email: "ann@example.com"})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	_, err = svc.UpdateUser(ctx, user.ID, &UpdateUserRequest{})
	assertValidation(t, err, MsgUpdateFieldNeeded)

	_, err = svc.UpdateUser(ctx, user.ID, nil)
	assertValidation(t, err, MsgUpdateFieldNeeded)

	_, err = svc.UpdateUser(ctx, "", &UpdateUserRequest{Name: strPtr("X")})
	assertValidation(t, err, MsgUserIDRequired)

	_, err = svc.UpdateUser(ctx, user.ID, &UpdateUserRequest{Email: strPtr("broken")})
	assertValidation(t, err, "Invalid email format")

	_, err = svc.UpdateUser(ctx, user.ID, &UpdateUserRequest{Name: strPtr("   ")})
	assertValidation(t, err, "Name cannot be empty")

	_, err = svc.UpdateUser(ctx, "missing", &UpdateUserRequest{Name: strPtr("X")})
	assertNotFound(t, err)

	updated, err := svc.UpdateUser(ctx, user.ID, &UpdateUserRequest{Email: strPtr("ANN@new.example.com")})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if updated.Email != "ann@new.example.com" || updated.Name != "Ann" {
		t.Errorf("unexpected update result: %+v", updated)
	}
	if !updated.UpdatedAt.After(user.UpdatedAt) {
		t.Error("UpdatedAt not advanced")
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	svc := setupTestServices(t).UserService
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &CreateUserRequest{Name: "Ann", Email: "ann@example.com"})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := svc.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	assertNotFound(t, svc.DeleteUser(ctx, user.ID))
	assertValidation(t, svc.DeleteUser(ctx, ""), MsgUserIDRequired)
}

// racingUserRepo simulates a concurrent insert landing between the email
// lookup and the insert
type racingUserRepo struct {
	repositories.UserRepository
}

func (r racingUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}

func (r racingUserRepo) Create(ctx context.Context, name, email string) (*models.User, error) {
	return nil, apperrors.DataAccess("create", "users", apperrors.ErrDuplicateEntry, nil)
}

func TestUserService_DuplicateFromConstraint(t *testing.T) {
	svc := NewUserService(racingUserRepo{}, testLogger())

	_, err := svc.CreateUser(context.Background(), &CreateUserRequest{Name: "Ann", Email: "ann@example.com"})
	assertValidation(t, err, MsgEmailExists)
}

// brokenUserRepo fails every lookup with a data access error
type brokenUserRepo struct {
	repositories.UserRepository
}

func (r brokenUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return nil, apperrors.DataAccess("find_by_id", "users", apperrors.ErrConnection, nil)
}

func (r brokenUserRepo) FindAll(ctx context.Context) ([]*models.User, error) {
	return nil, apperrors.DataAccess("find_all", "users", apperrors.ErrTimeout, nil)
}

func TestUserService_PropagatesDataAccess(t *testing.T) {
	svc := NewUserService(brokenUserRepo{}, testLogger())
	ctx := context.Background()

	_, err := svc.GetUser(ctx, "id-1")
	if !apperrors.IsDataAccess(err) {
		t.Errorf("GetUser kind = %v, want data_access", apperrors.KindOf(err))
	}

	_, err = svc.ListUsers(ctx)
	if !apperrors.IsDataAccess(err) {
		t.Errorf("ListUsers kind = %v, want data_access", apperrors.KindOf(err))
	}
}
