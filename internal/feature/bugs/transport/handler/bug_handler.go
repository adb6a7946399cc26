// Package handler provides the HTTP handlers for the bugs feature.
// Every route here sits behind the auth middleware, so the owning user
// is always present on the context.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bugdash_backend/internal/api"
	"bugdash_backend/internal/feature/bugs/domain/entity"
	"bugdash_backend/internal/feature/bugs/transport/http/dto"
	"bugdash_backend/internal/feature/bugs/usecase"
	"bugdash_backend/internal/platform/token"
)

// BugUsecase defines the bug operations the handler depends on.
type BugUsecase interface {
	List(ctx context.Context, deviceID string, ownerID uint) ([]*entity.BugRecord, error)
	Create(ctx context.Context, ownerID uint, deviceID string, fields usecase.Fields) (*entity.BugRecord, error)
	Update(ctx context.Context, id, ownerID uint, fields usecase.Fields) (*entity.BugRecord, error)
	Delete(ctx context.Context, id, ownerID uint) error
	DeleteAll(ctx context.Context, deviceID string, ownerID uint) (int64, error)
	Summary(ctx context.Context, deviceID string, ownerID uint) (*usecase.Summary, error)
}

// BugHandler handles HTTP requests for bug records.
type BugHandler struct {
	bugs BugUsecase
}

// NewBugHandler creates a new BugHandler.
func NewBugHandler(bugs BugUsecase) *BugHandler {
	return &BugHandler{bugs: bugs}
}

// ownerID pulls the authenticated user id off the context. The auth
// middleware guarantees it; a miss means the route was wired without it.
func ownerID(c *gin.Context) (uint, bool) {
	user, ok := token.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Not authorized"})
		return 0, false
	}
	return user.ID, true
}

// deviceID pulls the required deviceId query parameter.
func deviceID(c *gin.Context) (string, bool) {
	device := c.Query("deviceId")
	if device == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "deviceId is required"})
		return "", false
	}
	return device, true
}

// List handles GET /api/bugs?deviceId=…
func (h *BugHandler) List(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	device, ok := deviceID(c)
	if !ok {
		return
	}

	bugs, err := h.bugs.List(c.Request.Context(), device, owner)
	if err != nil {
		slog.Error("failed to fetch bugs", "error", err, "device_id", device, "user_id", owner)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Failed to fetch bugs"})
		return
	}
	if bugs == nil {
		bugs = []*entity.BugRecord{}
	}
	c.JSON(http.StatusOK, bugs)
}

// Create handles POST /api/bugs.
func (h *BugHandler) Create(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.CreateBugReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Failed to create bug", Error: err.Error()})
		return
	}

	bug, err := h.bugs.Create(c.Request.Context(), owner, req.DeviceID, req.ToFields())
	if err != nil {
		if errors.Is(err, usecase.ErrDuplicateBug) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Message: "This Bug already exists for your device"})
			return
		}
		slog.Error("failed to create bug", "error", err, "device_id", req.DeviceID, "user_id", owner)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Failed to create bug"})
		return
	}
	c.JSON(http.StatusCreated, bug)
}

// Update handles PATCH /api/bugs/:id with a partial field merge.
func (h *BugHandler) Update(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid bug id"})
		return
	}

	var req dto.UpdateBugReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Failed to update bug", Error: err.Error()})
		return
	}

	bug, err := h.bugs.Update(c.Request.Context(), uint(id), owner, req.ToFields())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBugNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Bug not found"})
		case errors.Is(err, usecase.ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "Forbidden"})
		case errors.Is(err, usecase.ErrDuplicateBug):
			c.JSON(http.StatusConflict, api.ErrorResponse{Message: "Another bug with this ScenarioID already exists for this device & user"})
		default:
			slog.Error("failed to update bug", "error", err, "bug_id", id, "user_id", owner)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Failed to update bug"})
		}
		return
	}
	c.JSON(http.StatusOK, bug)
}

// Delete handles DELETE /api/bugs/:id.
func (h *BugHandler) Delete(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid bug id"})
		return
	}

	if err := h.bugs.Delete(c.Request.Context(), uint(id), owner); err != nil {
		switch {
		case errors.Is(err, usecase.ErrBugNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Bug not found"})
		case errors.Is(err, usecase.ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "Forbidden"})
		default:
			slog.Error("failed to delete bug", "error", err, "bug_id", id, "user_id", owner)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Failed to delete bug"})
		}
		return
	}
	c.JSON(http.StatusOK, api.DeleteResponse{OK: true})
}

// DeleteAll handles DELETE /api/bugs/delete-all?deviceId=…
// Removing nothing is a valid outcome and still answers 200.
func (h *BugHandler) DeleteAll(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	device, ok := deviceID(c)
	if !ok {
		return
	}

	deleted, err := h.bugs.DeleteAll(c.Request.Context(), device, owner)
	if err != nil {
		slog.Error("failed to delete all bugs", "error", err, "device_id", device, "user_id", owner)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Failed to delete all bugs"})
		return
	}
	c.JSON(http.StatusOK, api.DeleteAllResponse{OK: true, DeletedCount: deleted})
}

// Summary handles GET /api/bugs/summary?deviceId=…
func (h *BugHandler) Summary(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	device, ok := deviceID(c)
	if !ok {
		return
	}

	summary, err := h.bugs.Summary(c.Request.Context(), device, owner)
	if err != nil {
		slog.Error("failed to build summary", "error", err, "device_id", device, "user_id", owner)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Failed to build summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
