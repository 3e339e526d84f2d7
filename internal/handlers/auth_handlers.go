package handlers

import (
	"net/http"

	"esatalim/internal/models"
	"esatalim/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles registration, login and the current user
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// Register godoc
// @Summary      Register a new user
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        input  body      models.RegisterInput  true  "Registration"
// @Success      201    {object}  AuthResponse
// @Failure      400    {object}  common.ErrorResponse
// @Failure      409    {object}  common.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandlers) Register(c echo.Context) error {
	var input models.RegisterInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	user, token, err := h.authService.Register(c.Request().Context(), &input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    user,
	})
}

// Login godoc
// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        input  body      models.LoginInput  true  "Credentials"
// @Success      200    {object}  AuthResponse
// @Failure      401    {object}  common.ErrorResponse
// @Failure      429    {object}  common.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandlers) Login(c echo.Context) error {
	var input models.LoginInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	user, token, err := h.authService.Login(c.Request().Context(), &input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// Me handles GET /auth/me
func (h *AuthHandlers) Me(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
