package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"storerate/internal/auth"
	"storerate/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Signup registers a new account. The role defaults to "user"; the
// admin path may pass "store owner" or "admin" explicitly.
func (h *HTTPHandler) Signup(c *gin.Context) {
	var req entity.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Name, email, address, and password are required")
		return
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = entity.UserRoleUser
	}
	if !entity.ValidRole(role) {
		BadRequest(c, "Invalid role")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	inUse, err := h.repo.EmailInUse(ctx, email, 0)
	if err != nil {
		logrus.WithError(err).Error("failed to check email during signup")
		InternalError(c, "Database error")
		return
	}
	if inUse {
		BadRequest(c, "Email already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password during signup")
		InternalError(c, "Server error")
		return
	}

	user := &entity.DbUser{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Address:      joinAddress(req.Address, req.City, req.State, req.Country),
		PasswordHash: hash,
		Role:         role,
	}

	if err := h.repo.CreateUser(ctx, user); err != nil {
		// The unique index backstops a concurrent signup racing past the
		// read-before-write check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, "Email already exists")
			return
		}
		logrus.WithError(err).Error("failed to create user")
		InternalError(c, "Database error")
		return
	}

	c.JSON(http.StatusCreated, entity.IdentityResponse{ID: user.ID, Role: user.Role})
}

// Login verifies credentials and establishes a server-side session.
// Unknown email and wrong password produce the identical response so
// accounts cannot be enumerated.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Unauthorized(c, "Invalid credentials")
			return
		}
		logrus.WithError(err).Error("failed to load user for login")
		InternalError(c, "Database error")
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		Unauthorized(c, "Invalid credentials")
		return
	}

	session, err := h.sessions.NewSession(user)
	if err != nil {
		logrus.WithError(err).Error("failed to build session")
		InternalError(c, "Failed to create session")
		return
	}
	if err := h.repo.CreateSession(ctx, session); err != nil {
		logrus.WithError(err).Error("failed to persist session")
		InternalError(c, "Failed to create session")
		return
	}

	maxAge := int(h.sessions.TTL() / time.Second)
	c.SetCookie(h.cookieName(), session.Token, maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, entity.IdentityResponse{ID: user.ID, Role: user.Role})
}

// Logout drops the server-side session and clears the cookie. It is
// idempotent: a missing or stale cookie still succeeds.
func (h *HTTPHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.cookieName())
	if err == nil && token != "" {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if err := h.repo.DeleteSession(ctx, token); err != nil {
			logrus.WithError(err).Warn("failed to delete session on logout")
		}
	}
	c.SetCookie(h.cookieName(), "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, entity.MessageResponse{Message: "Logged out"})
}

// UpdatePassword re-hashes the password after verifying the old one.
// Failure paths leave the user row untouched.
func (h *HTTPHandler) UpdatePassword(c *gin.Context) {
	var req entity.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "User id, oldPassword, and newPassword are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "User not found")
			return
		}
		logrus.WithError(err).Error("failed to load user for password update")
		InternalError(c, "Database error")
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.OldPassword); err != nil {
		Unauthorized(c, "Incorrect old password")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		logrus.WithError(err).Error("failed to hash new password")
		InternalError(c, "Password update failed")
		return
	}

	if err := h.repo.UpdateUser(ctx, user.ID, map[string]interface{}{"password_hash": hash}); err != nil {
		logrus.WithError(err).Error("failed to persist new password")
		InternalError(c, "Password update failed")
		return
	}

	c.JSON(http.StatusOK, entity.MessageResponse{Message: "Password updated successfully"})
}

// GetUserName serves the public name lookup used by review rendering.
func (h *HTTPHandler) GetUserName(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		BadRequest(c, "User ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "User not found")
			return
		}
		logrus.WithError(err).Error("failed to load user name")
		InternalError(c, "Database error")
		return
	}

	c.JSON(http.StatusOK, entity.UserNameResponse{Name: user.Name})
}

// joinAddress folds the optional locality fields into one address line,
// skipping blanks.
func joinAddress(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, ", ")
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || value == 0 {
		return 0, errors.New("invalid id parameter")
	}
	return uint(value), nil
}
