package sql

import (
	"context"
	"fmt"

	"storerate/internal/entity"

	"gorm.io/gorm"
)

// CreateReview persists a review. The rating bound is re-checked here
// so the storage layer holds the invariant even for callers that skip
// request binding. The referenced store and user must exist.
func (r *GormRepository) CreateReview(ctx context.Context, review *entity.DbReview) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if review == nil {
		return fmt.Errorf("review is nil")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var storeCount int64
		if err := tx.Model(&entity.DbStore{}).Where("id = ?", review.StoreID).Count(&storeCount).Error; err != nil {
			return err
		}
		if storeCount == 0 {
			return gorm.ErrRecordNotFound
		}

		var userCount int64
		if err := tx.Model(&entity.DbUser{}).Where("id = ?", review.UserID).Count(&userCount).Error; err != nil {
			return err
		}
		if userCount == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Create(review).Error
	})
}

// UpdateReview edits a review addressed by its composite key. Matching
// on both review id and store id stops cross-store tampering through id
// guessing.
func (r *GormRepository) UpdateReview(ctx context.Context, storeID, reviewID uint, rating int, message string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	result := r.db.WithContext(ctx).Model(&entity.DbReview{}).
		Where("id = ? AND store_id = ?", reviewID, storeID).
		Updates(map[string]interface{}{"rating": rating, "message": message})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteReview removes a review addressed by the same composite key.
func (r *GormRepository) DeleteReview(ctx context.Context, storeID, reviewID uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", reviewID, storeID).
		Delete(&entity.DbReview{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountReviews returns total review count.
func (r *GormRepository) CountReviews(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbReview{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
