package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tienda/backend/internal/application/identity"
	"github.com/tienda/backend/internal/interfaces/http/middleware"
)

// CreateUserRequest represents the request body for management user creation
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Role     string `json:"role" binding:"omitempty,oneof=customer management"`
}

// UpdateUserRequest represents the request body for user updates
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=8,max=128"`
	Role     *string `json:"role" binding:"omitempty,oneof=customer management"`
	Status   *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// RoleResponse represents a role in list responses
type RoleResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities"`
}

// UserHandler handles user and role management HTTP requests
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
	authService *identity.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identity.UserService, authService *identity.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// RegisterRoutes registers all user and role routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("/me", h.Me)

		admin := users.Group("", middleware.RequireManagement())
		{
			admin.GET("", h.List)
			admin.POST("", h.Create)
			admin.GET("/:id", h.Get)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}

	roles := rg.Group("/roles", middleware.RequireManagement())
	{
		roles.GET("", h.ListRoles)
	}
}

// Me returns the profile of the authenticated user
func (h *UserHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toAuthUserResponse(info))
}

// List returns a paginated list of users
func (h *UserHandler) List(c *gin.Context) {
	var req listQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.applyDefaults()

	users, total, err := h.userService.List(c.Request.Context(), identity.UserListFilter{
		Search:   req.Search,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]AuthUserResponse, len(users))
	for i := range users {
		responses[i] = toAuthUserResponse(&users[i])
	}
	h.SuccessWithMeta(c, responses, total, req.Page, req.PageSize)
}

// Create provisions a new user account with an explicit role
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.authService.Register(c.Request.Context(), identity.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		RoleName: req.Role,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toAuthUserResponse(info))
}

// Get returns a single user by ID
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	info, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toAuthUserResponse(info))
}

// Update applies a partial update to a user
func (h *UserHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.userService.Update(c.Request.Context(), id, identity.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		RoleName: req.Role,
		Status:   req.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toAuthUserResponse(info))
}

// Delete removes a user account
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListRoles returns all assignable roles
func (h *UserHandler) ListRoles(c *gin.Context) {
	roles, err := h.userService.ListRoles(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]RoleResponse, len(roles))
	for i := range roles {
		responses[i] = RoleResponse{
			ID:           roles[i].ID.String(),
			Name:         roles[i].Name,
			Description:  roles[i].Description,
			Capabilities: roles[i].Capabilities(),
		}
	}
	h.Success(c, responses)
}
