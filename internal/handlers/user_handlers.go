package handlers

import (
	"net/http"
	"strconv"

	"esatalim/internal/common"
	"esatalim/internal/models"
	"esatalim/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	defaultUsersPageSize = 20
	maxUsersPageSize     = 100
)

// UserHandlers handles user profile and favorites requests
type UserHandlers struct {
	userService services.UserService
}

func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// UsersResponse is one page of the admin user list
type UsersResponse struct {
	Users      []*models.User    `json:"users"`
	Pagination models.Pagination `json:"pagination"`
}

// FavoriteRequest is the body of POST /users/:id/favorites
type FavoriteRequest struct {
	ProductID string `json:"productId"`
}

// ListUsers godoc
// @Summary      List users
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page, default 1"
// @Param        limit  query     int  false  "Page size, default 20, max 100"
// @Success      200    {object}  UsersResponse
// @Failure      403    {object}  common.ErrorResponse
// @Router       /admin/users [get]
func (h *UserHandlers) ListUsers(c echo.Context) error {
	verr := &common.ValidationError{}
	page := queryInt(c, verr, "page", 1, 1, 0)
	limit := queryInt(c, verr, "limit", defaultUsersPageSize, 1, maxUsersPageSize)
	if err := verr.OrNil(); err != nil {
		return err
	}

	users, pagination, err := h.userService.ListUsers(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UsersResponse{Users: users, Pagination: pagination})
}

// GetUser godoc
// @Summary      Public profile
// @Tags         Users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  models.UserProfile
// @Failure      404  {object}  common.ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandlers) GetUser(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateUser handles PUT /users/:id
func (h *UserHandlers) UpdateUser(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	var update models.ProfileUpdate
	if err := bindJSON(c, &update); err != nil {
		return err
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), caller, id, &update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetFavorites handles GET /users/:id/favorites
func (h *UserHandlers) GetFavorites(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	favorites, err := h.userService.ListFavorites(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favorites)
}

// AddFavorite godoc
// @Summary      Add a listing to favorites
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string           true  "User id"
// @Param        input  body      FavoriteRequest  true  "Listing"
// @Success      200    {object}  messageResponse
// @Failure      403    {object}  common.ErrorResponse
// @Failure      404    {object}  common.ErrorResponse
// @Router       /users/{id}/favorites [post]
func (h *UserHandlers) AddFavorite(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	userID, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	var req FavoriteRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	listingID, err := common.ParseID(req.ProductID, "productId")
	if err != nil {
		return err
	}

	if err := h.userService.AddFavorite(c.Request().Context(), caller, userID, listingID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product added to favorites"})
}

// RemoveFavorite handles DELETE /users/:id/favorites/:productId
func (h *UserHandlers) RemoveFavorite(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var userID, listingID uuid.UUID
	if userID, err = common.ParseID(c.Param("id"), "id"); err != nil {
		return err
	}
	if listingID, err = common.ParseID(c.Param("productId"), "productId"); err != nil {
		return err
	}

	if err := h.userService.RemoveFavorite(c.Request().Context(), caller, userID, listingID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product removed from favorites"})
}

// queryInt reads an integer query parameter within [min, max]; max 0 means unbounded
func queryInt(c echo.Context, verr *common.ValidationError, name string, def, min, max int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || (max > 0 && n > max) {
		if max > 0 {
			verr.Add(name, name+" must be between "+strconv.Itoa(min)+" and "+strconv.Itoa(max), raw)
		} else {
			verr.Add(name, name+" must be at least "+strconv.Itoa(min), raw)
		}
		return def
	}
	return n
}
