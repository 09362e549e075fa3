package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"serverless-crud-api/internal/response"
	"serverless-crud-api/internal/services"
	"serverless-crud-api/pkg/lambda"
)

const (
	msgUserCreated  = "User created successfully"
	msgUserUpdated  = "User updated successfully"
	msgUserDeleted  = "User deleted successfully"
	msgUserNotFound = "User not found"
)

// UserHandler handles user-related requests
type UserHandler struct {
	userService services.UserService
	logger      *logrus.Logger
	router      *Router
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserService, logger *logrus.Logger) *UserHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	h := &UserHandler{
		userService: userService,
		logger:      logger,
	}

	h.router = NewRouter()
	h.router.Handle(http.MethodPost, "/users", h.HandleCreate)
	h.router.Handle(http.MethodGet, "/users", h.HandleList)
	h.router.Handle(http.MethodGet, "/users/{id}", h.HandleGet)
	h.router.Handle(http.MethodPut, "/users/{id}", h.HandleUpdate)
	h.router.Handle(http.MethodPatch, "/users/{id}", h.HandleUpdate)
	h.router.Handle(http.MethodDelete, "/users/{id}", h.HandleDelete)
	return h
}

// Dispatch routes a proxy request to the matching user operation
func (h *UserHandler) Dispatch(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	return h.router.Dispatch(ctx, req)
}

// @Summary Create a new user
// @Description Create a user with a unique email address
// @Tags users
// @Accept json
// @Produce json
// @Param user body services.CreateUserRequest true "User data"
// @Success 201 {object} response.Envelope{data=models.User}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var body services.CreateUserRequest
	if resp := decodeBody(req, &body); resp != nil {
		return resp, nil
	}

	user, err := h.userService.CreateUser(ctx, &body)
	if err != nil {
		return respondError(h.logger, "create_user", err, msgUserNotFound), nil
	}
	return response.Created(user, msgUserCreated), nil
}

// @Summary List users
// @Description List all users, newest first
// @Tags users
// @Produce json
// @Success 200 {object} response.Envelope{data=[]models.User}
// @Failure 500 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	users, err := h.userService.ListUsers(ctx)
	if err != nil {
		return respondError(h.logger, "list_users", err, msgUserNotFound), nil
	}
	return response.Success(users, ""), nil
}

// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope{data=models.User}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	user, err := h.userService.GetUser(ctx, req.PathParam("id"))
	if err != nil {
		return respondError(h.logger, "get_user", err, msgUserNotFound), nil
	}
	return response.Success(user, ""), nil
}

// @Summary Update a user
// @Description Partially update a user's name or email
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body services.UpdateUserRequest true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.User}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [put]
func (h *UserHandler) HandleUpdate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	id := req.PathParam("id")
	if id == "" {
		return response.BadRequest(services.MsgUserIDRequired), nil
	}

	var body services.UpdateUserRequest
	if resp := decodeBody(req, &body); resp != nil {
		return resp, nil
	}

	user, err := h.userService.UpdateUser(ctx, id, &body)
	if err != nil {
		return respondError(h.logger, "update_user", err, msgUserNotFound), nil
	}
	return response.Success(user, msgUserUpdated), nil
}

// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) HandleDelete(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	id := req.PathParam("id")
	if err := h.userService.DeleteUser(ctx, id); err != nil {
		return respondError(h.logger, "delete_user", err, msgUserNotFound), nil
	}
	return response.Success(map[string]string{"id": id}, msgUserDeleted), nil
}
