package handlers

import (
	"net/http"

	"esatalim/internal/common"
	"esatalim/internal/models"
	"esatalim/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers handles HTTP requests for categories
type CategoryHandlers struct {
	categoryService services.CategoryService
}

func NewCategoryHandlers(categoryService services.CategoryService) *CategoryHandlers {
	return &CategoryHandlers{categoryService: categoryService}
}

// ListCategories godoc
// @Summary      Active categories
// @Tags         Categories
// @Produce      json
// @Success      200  {array}  models.Category
// @Router       /categories [get]
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// ListAllCategories handles GET /admin/categories, inactive ones included
func (h *CategoryHandlers) ListAllCategories(c echo.Context) error {
	categories, err := h.categoryService.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// GetCategory handles GET /categories/:id
func (h *CategoryHandlers) GetCategory(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	category, err := h.categoryService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// CreateCategory godoc
// @Summary      Create a category
// @Tags         Categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input  body      models.CategoryInput  true  "Category"
// @Success      201    {object}  models.Category
// @Failure      400    {object}  common.ErrorResponse
// @Failure      403    {object}  common.ErrorResponse
// @Router       /categories [post]
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	var input models.CategoryInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	category, err := h.categoryService.Create(c.Request().Context(), &input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles PUT /categories/:id
func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	var input models.CategoryInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	category, err := h.categoryService.Update(c.Request().Context(), id, &input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /categories/:id
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Category deleted successfully"})
}
