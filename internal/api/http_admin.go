package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"storerate/internal/auth"
	"storerate/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Stats serves the dashboard counters.
func (h *HTTPHandler) Stats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := h.repo.CountUsers(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to count users")
		InternalError(c, "Error fetching stats")
		return
	}
	stores, err := h.repo.CountStores(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to count stores")
		InternalError(c, "Error fetching stats")
		return
	}
	reviews, err := h.repo.CountReviews(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to count reviews")
		InternalError(c, "Error fetching stats")
		return
	}

	c.JSON(http.StatusOK, entity.StatsResponse{Users: users, Stores: stores, Reviews: reviews})
}

// AdminListUsers serves every user, ascending by id, with their stores
// and per-store averages nested.
func (h *HTTPHandler) AdminListUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := h.repo.ListUsersWithStores(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list users with stores")
		InternalError(c, "Error fetching users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// AdminAddUser creates an account on the admin path, where any role
// may be assigned directly.
func (h *HTTPHandler) AdminAddUser(c *gin.Context) {
	var req entity.AdminUserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Name, email, password, and role are required")
		return
	}
	if !entity.ValidRole(req.Role) {
		BadRequest(c, "Invalid role")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	inUse, err := h.repo.EmailInUse(ctx, email, 0)
	if err != nil {
		logrus.WithError(err).Error("failed to check email during admin add user")
		InternalError(c, "Database error")
		return
	}
	if inUse {
		BadRequest(c, "Email already in use")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password for admin-added user")
		InternalError(c, "Error adding user")
		return
	}

	user := &entity.DbUser{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Address:      strings.TrimSpace(req.Address),
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := h.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, "Email already in use")
			return
		}
		logrus.WithError(err).Error("failed to create admin-added user")
		InternalError(c, "Error adding user")
		return
	}

	c.JSON(http.StatusCreated, entity.MessageResponse{Message: "User added successfully"})
}

// AdminUpdateUser edits a user. An omitted password keeps the current
// hash; role changes here may demote a store owner, which is the one
// sanctioned demotion path.
func (h *HTTPHandler) AdminUpdateUser(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		BadRequest(c, "User ID is required")
		return
	}

	var req entity.AdminUserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Name, email, and role are required")
		return
	}
	if !entity.ValidRole(req.Role) {
		BadRequest(c, "Invalid role")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	inUse, err := h.repo.EmailInUse(ctx, email, id)
	if err != nil {
		logrus.WithError(err).Error("failed to check email during admin update user")
		InternalError(c, "Database error")
		return
	}
	if inUse {
		BadRequest(c, "Email already in use by another user")
		return
	}

	updates := map[string]interface{}{
		"name":    strings.TrimSpace(req.Name),
		"email":   email,
		"address": strings.TrimSpace(req.Address),
		"role":    req.Role,
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			logrus.WithError(err).Error("failed to hash password during admin update user")
			InternalError(c, "Error updating user")
			return
		}
		updates["password_hash"] = hash
	}

	if err := h.repo.UpdateUser(ctx, id, updates); err != nil {
		logrus.WithError(err).Error("failed to update user")
		InternalError(c, "Error updating user")
		return
	}

	c.JSON(http.StatusOK, entity.MessageResponse{Message: "User updated successfully"})
}

// AdminDeleteUser removes a user; owned stores and all related reviews
// cascade with it.
func (h *HTTPHandler) AdminDeleteUser(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		BadRequest(c, "User ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "User not found")
			return
		}
		logrus.WithError(err).Error("failed to delete user")
		InternalError(c, "Error deleting user")
		return
	}

	c.JSON(http.StatusOK, entity.MessageResponse{Message: "User deleted successfully"})
}

// AdminListStores serves the admin store list with two-decimal averages.
func (h *HTTPHandler) AdminListStores(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	stores, err := h.repo.ListStoresWithAverage(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list stores for admin")
		InternalError(c, "Failed to fetch stores")
		return
	}
	c.JSON(http.StatusOK, stores)
}

// AdminAddStore creates a store for a user. The insert and the
// conditional promotion to "store owner" run in a single transaction.
func (h *HTTPHandler) AdminAddStore(c *gin.Context) {
	var req entity.AdminStoreCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "User ID and Store Name are required")
		return
	}

	name := strings.TrimSpace(req.Name)
	if len(name) < 20 || len(name) > 60 {
		BadRequest(c, "Store name must be between 20 and 60 characters")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	_, promoted, err := h.repo.CreateStore(ctx, req.UserID, name, strings.TrimSpace(req.Address))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "User not found")
			return
		}
		logrus.WithError(err).Error("failed to add store")
		InternalError(c, "Failed to add store")
		return
	}

	message := "Store added successfully"
	if promoted {
		message = "Store added successfully, user role updated"
	}
	c.JSON(http.StatusCreated, entity.MessageResponse{Message: message})
}

// AdminUpdateStore renames a store.
func (h *HTTPHandler) AdminUpdateStore(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		BadRequest(c, "Store ID is required")
		return
	}

	var req entity.AdminStoreUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Store name is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdateStore(ctx, id, strings.TrimSpace(req.Name), strings.TrimSpace(req.Address)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "Store not found")
			return
		}
		logrus.WithError(err).Error("failed to update store")
		InternalError(c, "Failed to update store")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Store updated successfully"})
}

// AdminDeleteStore removes a store; its reviews cascade with it.
func (h *HTTPHandler) AdminDeleteStore(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		BadRequest(c, "Store ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteStore(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "Store not found")
			return
		}
		logrus.WithError(err).Error("failed to delete store")
		InternalError(c, "Failed to delete store")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Store deleted successfully"})
}
