package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storerate/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListStores serves every store with its live rating aggregate.
func (h *HTTPHandler) ListStores(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	stores, err := h.repo.ListStores(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list stores")
		InternalError(c, "Failed to fetch stores")
		return
	}
	c.JSON(http.StatusOK, stores)
}

// SearchStores filters stores by a name or address substring.
func (h *HTTPHandler) SearchStores(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	stores, err := h.repo.SearchStores(ctx, c.Query("query"))
	if err != nil {
		logrus.WithError(err).Error("store search failed")
		InternalError(c, "Search failed")
		return
	}
	c.JSON(http.StatusOK, stores)
}

// GetStoreDetails serves a single store with owner identity, aggregate
// and all reviews.
func (h *HTTPHandler) GetStoreDetails(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		BadRequest(c, "Store ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	details, err := h.repo.GetStoreDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "Store not found")
			return
		}
		logrus.WithError(err).Error("failed to fetch store details")
		InternalError(c, "Failed to fetch store details")
		return
	}
	c.JSON(http.StatusOK, details)
}

// ListStoresByUser serves the per-owner store breakdown.
func (h *HTTPHandler) ListStoresByUser(c *gin.Context) {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		BadRequest(c, "User ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	stores, err := h.repo.ListStoresByOwner(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("failed to list stores by owner")
		InternalError(c, "Failed to fetch stores")
		return
	}
	c.JSON(http.StatusOK, stores)
}

// AddReview records a rating for the store in the path.
func (h *HTTPHandler) AddReview(c *gin.Context) {
	storeID, err := parseUintParam(c, "id")
	if err != nil {
		BadRequest(c, "Store ID is required")
		return
	}

	var req entity.ReviewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Missing user_id, rating or message")
		return
	}

	review := &entity.DbReview{
		StoreID: storeID,
		UserID:  req.UserID,
		Rating:  req.Rating,
		Message: req.Message,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateReview(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "Store not found")
			return
		}
		logrus.WithError(err).Error("failed to add review")
		InternalError(c, "Failed to add review")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "reviewId": review.ID})
}

// EditReview updates a review addressed by (store id, review id).
func (h *HTTPHandler) EditReview(c *gin.Context) {
	storeID, err := parseUintParam(c, "id")
	if err != nil {
		BadRequest(c, "Store ID is required")
		return
	}
	reviewID, err := parseUintParam(c, "reviewId")
	if err != nil {
		BadRequest(c, "Review ID is required")
		return
	}

	var req entity.ReviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Missing rating or message")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdateReview(ctx, storeID, reviewID, req.Rating, req.Message); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "Review not found")
			return
		}
		logrus.WithError(err).Error("failed to update review")
		InternalError(c, "Failed to update review")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review updated"})
}

// DeleteReview removes a review addressed by the same scoped key.
func (h *HTTPHandler) DeleteReview(c *gin.Context) {
	storeID, err := parseUintParam(c, "id")
	if err != nil {
		BadRequest(c, "Store ID is required")
		return
	}
	reviewID, err := parseUintParam(c, "reviewId")
	if err != nil {
		BadRequest(c, "Review ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteReview(ctx, storeID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "Review not found")
			return
		}
		logrus.WithError(err).Error("failed to delete review")
		InternalError(c, "Failed to delete review")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted"})
}
