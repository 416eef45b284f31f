package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-feeds/backend/internal/service"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

type BookHandler struct {
	books service.IBookService
}

func NewBookHandler(books service.IBookService) *BookHandler {
	return &BookHandler{books: books}
}

func (h *BookHandler) RegisterRoutes(router *gin.RouterGroup) {
	books := router.Group("/books")
	{
		books.POST("", h.CreateBook)
		books.GET("/:id", h.GetBook)
		books.POST("/:id/recipes", h.AddRecipe)
	}
}

func (h *BookHandler) CreateBook(c *gin.Context) {
	var req types.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	book, err := h.books.CreateBook(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.books.GetBook(c.Request.Context(), book.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := uuidParam(c, "id", "book")
	if !ok {
		return
	}
	view, err := h.books.GetBook(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BookHandler) AddRecipe(c *gin.Context) {
	id, ok := uuidParam(c, "id", "book")
	if !ok {
		return
	}
	var req types.AddBookRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.books.AddRecipe(c.Request.Context(), id, &req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
