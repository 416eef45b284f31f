package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-feeds/backend/internal/service"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

type UserHandler struct {
	users service.IUserService
}

func NewUserHandler(users service.IUserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("/:username", h.GetUser)
		users.PUT("/:username/preferences", h.UpdatePreferences)
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req types.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.users.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service.PresentUser(user))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.PresentUser(user))
}

func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	var req types.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.users.UpdatePreferences(c.Request.Context(), c.Param("username"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.PresentUser(user))
}
