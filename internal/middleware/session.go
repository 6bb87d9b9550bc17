package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "context"  // context with timeout for the live record lookup
    "errors"   // sentinel comparison for repository errors
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming
    "time"     // timeout duration for DB calls

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/admin-dashboard/internal/model"
    "github.com/iliyamo/admin-dashboard/internal/repository"
    "github.com/iliyamo/admin-dashboard/internal/utils"
)

// SessionGuard returns an Echo middleware that validates a Bearer session
// token and re-checks the caller against the live user record on every
// request.  Token claims alone are never trusted for account status: a
// user blocked after their token was issued must be rejected immediately,
// so the guard re-reads the row from the store each time.
//
// Responses distinguish two failure classes so the client can react
// differently: 401 with {"userExists": false} when no session resolves to
// a live record (force re-login), and 403 with {"isBlocked": true} when
// the record exists but is blocked (force logout).
//
// On success the guard stores the identity and the live record in the
// request context under "user_id", "email" and "user".
func SessionGuard(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header starts with "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"userExists": false})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            id, err := utils.ParseSessionToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"userExists": false})
            }

            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            defer cancel()

            // Live re-fetch: the record may have been blocked or deleted
            // after the token was issued.
            u, err := users.GetByEmail(ctx, id.Email)
            if err != nil {
                if errors.Is(err, repository.ErrNotFound) {
                    return c.JSON(http.StatusUnauthorized, echo.Map{"userExists": false})
                }
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session check failed"})
            }
            if u.Status == model.StatusBlocked {
                return c.JSON(http.StatusForbidden, echo.Map{"isBlocked": true})
            }

            c.Set("user_id", u.ID)
            c.Set("email", u.Email)
            c.Set("user", u)
            return next(c)
        }
    }
}
