package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/admin-dashboard/internal/model"
	"github.com/iliyamo/admin-dashboard/internal/queue"
	"github.com/iliyamo/admin-dashboard/internal/repository"
	auditpub "github.com/iliyamo/admin-dashboard/internal/service"
)

// UserHandler implements the moderation endpoints: listing the user table
// and bulk block/unblock/delete keyed by email.  Every route here sits
// behind the session guard; note there is no further admin-role check on
// top of that, matching the observed product, so any authenticated user
// may moderate any other (including themselves, which locks them out on
// their next request).
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(u *repository.UserRepo) *UserHandler {
	return &UserHandler{Users: u}
}

// ----- DTOs -----

// moderationReq carries the bulk target set.  The field is called userIds
// by the dashboard client but holds email addresses; email doubles as the
// moderation key in this system.
type moderationReq struct {
	UserIDs []string `json:"userIds"`
	Status  string   `json:"status"`
}

type userView struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Status    string     `json:"status"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `json:"createdAt"`
}

// List returns the full user table for the dashboard.  Rows are projected
// into userView so the password hash can never appear in the response.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch users"})
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, userView{
			Name:      u.Name,
			Email:     u.Email,
			Status:    u.Status,
			LastLogin: u.LastLogin,
			CreatedAt: u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, views)
}

// SetStatus applies one status value to every user in the target set with
// a single bulk update.  The reported count is rows actually changed, so
// repeating a call against already-transitioned users yields zero and a
// 404 response.
func (h *UserHandler) SetStatus(c echo.Context) error {
	var req moderationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.UserIDs) == 0 || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user ids and status are required"})
	}
	if !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Users.UpdateStatusByEmails(ctx, req.UserIDs, req.Status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update users"})
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No users found to update"})
	}

	h.publishAudit(c, actionForStatus(req.Status), req.UserIDs, n)
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("%d users updated successfully", n)})
}

// Unblock is a convenience route that forces the status back to Active.
func (h *UserHandler) Unblock(c echo.Context) error {
	var req moderationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.UserIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user ids are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Users.UpdateStatusByEmails(ctx, req.UserIDs, model.StatusActive)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to unblock users"})
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No users found to unblock"})
	}

	h.publishAudit(c, queue.ActionUnblock, req.UserIDs, n)
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("%d users unblocked successfully", n)})
}

// Delete permanently removes every user in the target set.
func (h *UserHandler) Delete(c echo.Context) error {
	var req moderationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.UserIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user ids are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Users.DeleteByEmails(ctx, req.UserIDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete users"})
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No users found to delete"})
	}

	h.publishAudit(c, queue.ActionDelete, req.UserIDs, n)
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("%d users deleted successfully", n)})
}

// publishAudit records a completed moderation action on the audit queue.
// Publish failures are logged by the publisher and ignored here; an
// unreachable broker must never fail a moderation call that the store has
// already committed.
func (h *UserHandler) publishAudit(c echo.Context, action string, targets []string, affected int64) {
	actor, _ := c.Get("email").(string)
	ev := queue.ModerationEvent{
		Action:     action,
		Actor:      actor,
		Targets:    targets,
		Affected:   affected,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	_ = auditpub.PublishModerationEvent(c.Request().Context(), ev)
}

func actionForStatus(status string) string {
	if status == model.StatusBlocked {
		return queue.ActionBlock
	}
	return queue.ActionUnblock
}
