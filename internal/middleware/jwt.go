package middleware

import (
	"fmt"
	"net/http"

	"esatalim/internal/common"
	"esatalim/internal/services"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const callerContextKey = "caller"

// TokenValidator verifies access tokens issued by the auth service
type TokenValidator interface {
	ValidateToken(token string) (*services.TokenClaims, error)
}

// JWTMiddleware authenticates bearer tokens and stores the caller on the
// request context for services to read.
func JWTMiddleware(validator TokenValidator) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: callerContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims, err := validator.ValidateToken(auth)
			if err != nil {
				return nil, err
			}
			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return nil, fmt.Errorf("invalid user_id in token: %w", err)
			}
			return common.Caller{ID: userID, Role: claims.Role}, nil
		},
		SuccessHandler: func(c echo.Context) {
			caller := c.Get(callerContextKey).(common.Caller)
			ctx := common.WithCaller(c.Request().Context(), caller.ID, caller.Role)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Token is not valid").SetInternal(err)
		},
	})
}
