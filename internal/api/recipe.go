package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-feeds/backend/internal/service"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

type RecipeHandler struct {
	recipes service.IRecipeService
	stars   service.IStarService
	images  *service.ImageNormalizer
}

func NewRecipeHandler(recipes service.IRecipeService, stars service.IStarService, images *service.ImageNormalizer) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, stars: stars, images: images}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.GET("/:id/stars", h.GetStars)
		recipes.PUT("/:id/stars", h.RateRecipe)
	}
}

// ListRecipes supports ?ingredient=, ?category=, ?limit= and ?offset=.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.RecipeFilter{
		Ingredient: c.Query("ingredient"),
		Category:   c.Query("category"),
	}
	var err error
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		badRequest(c, err)
		return
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		badRequest(c, err)
		return
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": h.images.PresentAll(c.Request.Context(), recipes)})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.images.Present(c.Request.Context(), recipe))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.images.Present(c.Request.Context(), recipe))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.images.Present(c.Request.Context(), recipe))
}

// DeleteRecipe takes the acting username from the JSON body or ?username=.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	var req types.DeleteRecipeRequest
	bind := c.ShouldBindQuery
	if c.Request.ContentLength > 0 {
		bind = c.ShouldBindJSON
	}
	if err := bind(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), id, req.Username); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) GetStars(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	summary, err := h.stars.Summary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	var req types.RateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	summary, err := h.stars.Rate(c.Request.Context(), id, req.Username, req.Stars)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func recipeID(c *gin.Context) (uuid.UUID, bool) {
	return uuidParam(c, "id", "recipe")
}

func uuidParam(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid " + what + " id"})
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string) (int, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
