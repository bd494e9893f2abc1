package handler

import (
	appidentity "github.com/garagehub/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest is the create user payload
type CreateUserRequest struct {
	Name     string     `json:"name" binding:"required"`
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=8"`
	RoleID   *uuid.UUID `json:"role_id"`
}

// Create creates a user
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid user payload")
		return
	}

	user, err := h.userService.Create(c.Request.Context(), h.Tenant(c), appidentity.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		RoleID:   req.RoleID,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "User created successfully", user)
}

// UpdateUserRequest is the update user payload; omitted fields are kept
type UpdateUserRequest struct {
	Name   *string    `json:"name"`
	Email  *string    `json:"email" binding:"omitempty,email"`
	Status *string    `json:"status" binding:"omitempty,oneof=active inactive"`
	RoleID *uuid.UUID `json:"role_id"`
}

// Update updates a user
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid user payload")
		return
	}

	user, err := h.userService.Update(c.Request.Context(), h.Tenant(c), appidentity.UpdateUserInput{
		ID:     id,
		Name:   req.Name,
		Email:  req.Email,
		Status: req.Status,
		RoleID: req.RoleID,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "User updated successfully", user)
}

// Delete removes a user
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), h.Tenant(c), id); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "User deleted successfully", nil)
}

// Get returns one user
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}
	user, err := h.userService.Get(c.Request.Context(), h.Tenant(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "", user)
}

// List returns users matching the query
func (h *UserHandler) List(c *gin.Context) {
	filter := h.BindFilter(c)
	users, meta, err := h.userService.List(c.Request.Context(), h.Tenant(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, "", users, metaFromIdentity(meta))
}
