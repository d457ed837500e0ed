package sql

import (
	"context"
	"fmt"
	"strings"

	"storerate/internal/entity"

	"gorm.io/gorm"
)

type storeAggRow struct {
	ID          uint
	Name        string
	Email       string
	Address     string
	UserID      uint
	AvgRating   *float64
	ReviewCount int64
}

func (r *GormRepository) storeAggregateQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&entity.DbStore{}).
		Select("stores.id, stores.name, stores.email, stores.address, stores.user_id, "+
			"AVG(reviews.rating) AS avg_rating, COUNT(reviews.id) AS review_count").
		Joins("LEFT JOIN reviews ON reviews.store_id = stores.id").
		Group("stores.id").
		Order("stores.name ASC")
}

// ListStores returns every store with its recomputed aggregate, one
// decimal, alphabetical by name. Stores without reviews report 0.
func (r *GormRepository) ListStores(ctx context.Context) ([]entity.StoreListItem, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	var rows []storeAggRow
	if err := r.storeAggregateQuery(ctx).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return makeStoreListItems(rows), nil
}

// SearchStores filters the store list by a name/address substring.
func (r *GormRepository) SearchStores(ctx context.Context, query string) ([]entity.StoreListItem, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	term := "%" + strings.TrimSpace(query) + "%"
	var rows []storeAggRow
	err := r.storeAggregateQuery(ctx).
		Where("stores.name LIKE ? OR stores.address LIKE ?", term, term).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return makeStoreListItems(rows), nil
}

func makeStoreListItems(rows []storeAggRow) []entity.StoreListItem {
	items := make([]entity.StoreListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, entity.StoreListItem{
			ID:          row.ID,
			Name:        row.Name,
			Email:       row.Email,
			Address:     row.Address,
			UserID:      row.UserID,
			Rating:      roundRating(row.AvgRating, 1),
			ReviewCount: row.ReviewCount,
		})
	}
	return items
}

// ListStoresByOwner returns the owner's stores with their aggregates.
func (r *GormRepository) ListStoresByOwner(ctx context.Context, userID uint) ([]entity.OwnedStoreItem, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	var rows []storeAggRow
	err := r.storeAggregateQuery(ctx).
		Where("stores.user_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]entity.OwnedStoreItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, entity.OwnedStoreItem{
			StoreID:     row.ID,
			StoreName:   row.Name,
			Email:       row.Email,
			Address:     row.Address,
			OwnerID:     row.UserID,
			Rating:      roundRating(row.AvgRating, 1),
			ReviewCount: row.ReviewCount,
		})
	}
	return items, nil
}

type storeDetailsRow struct {
	ID          uint
	Name        string
	Address     string
	UserID      uint
	OwnerName   string
	OwnerEmail  string
	AvgRating   *float64
	ReviewCount int64
}

// GetStoreDetails returns the store joined with its owner, the rating
// aggregate and all reviews, newest first. The email field carries the
// owner's email, not the copy stored on the store row.
func (r *GormRepository) GetStoreDetails(ctx context.Context, id uint) (*entity.StoreDetails, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid store id")
	}

	var rows []storeDetailsRow
	err := r.db.WithContext(ctx).Model(&entity.DbStore{}).
		Select("stores.id, stores.name, stores.address, stores.user_id, "+
			"users.name AS owner_name, users.email AS owner_email, "+
			"AVG(reviews.rating) AS avg_rating, COUNT(reviews.id) AS review_count").
		Joins("JOIN users ON users.id = stores.user_id").
		Joins("LEFT JOIN reviews ON reviews.store_id = stores.id").
		Where("stores.id = ?", id).
		Group("stores.id, users.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	row := rows[0]

	var reviews []entity.ReviewItem
	err = r.db.WithContext(ctx).Model(&entity.DbReview{}).
		Select("reviews.id, reviews.rating, reviews.message, reviews.created_at, "+
			"users.id AS user_id, users.name AS user_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.store_id = ?", id).
		Order("reviews.created_at DESC").
		Scan(&reviews).Error
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []entity.ReviewItem{}
	}

	return &entity.StoreDetails{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.OwnerEmail,
		Address:     row.Address,
		UserID:      row.UserID,
		OwnerName:   row.OwnerName,
		AvgRating:   roundRating(row.AvgRating, 1),
		ReviewCount: row.ReviewCount,
		Reviews:     reviews,
	}, nil
}

// ListStoresWithAverage is the admin store list: same join, two decimals.
func (r *GormRepository) ListStoresWithAverage(ctx context.Context) ([]entity.AdminStoreItem, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	var rows []storeAggRow
	if err := r.storeAggregateQuery(ctx).Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entity.AdminStoreItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, entity.AdminStoreItem{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			Address:       row.Address,
			UserID:        row.UserID,
			AverageRating: roundRating(row.AvgRating, 2),
		})
	}
	return items, nil
}

// CreateStore inserts a store for the given owner and, when the owner
// is not yet a store owner, promotes them in the same transaction. The
// store email is copied from the owner. Returns whether a promotion
// happened. Promotion is one-way: later stores never touch the role.
func (r *GormRepository) CreateStore(ctx context.Context, userID uint, name, address string) (*entity.DbStore, bool, error) {
	if r == nil || r.db == nil {
		return nil, false, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return nil, false, fmt.Errorf("invalid user id")
	}

	var store *entity.DbStore
	promoted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner entity.DbUser
		if err := tx.First(&owner, userID).Error; err != nil {
			return err
		}

		store = &entity.DbStore{
			Name:    name,
			Email:   owner.Email,
			Address: address,
			UserID:  owner.ID,
		}
		if err := tx.Create(store).Error; err != nil {
			return err
		}

		if owner.Role != entity.UserRoleStoreOwner {
			err := tx.Model(&entity.DbUser{}).
				Where("id = ?", owner.ID).
				Update("role", entity.UserRoleStoreOwner).Error
			if err != nil {
				return err
			}
			promoted = true
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return store, promoted, nil
}

// UpdateStore renames a store; zero affected rows maps to not found.
func (r *GormRepository) UpdateStore(ctx context.Context, id uint, name, address string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid store id")
	}

	result := r.db.WithContext(ctx).Model(&entity.DbStore{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "address": address})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteStore removes a store and its reviews in one transaction.
func (r *GormRepository) DeleteStore(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid store id")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", id).Delete(&entity.DbReview{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.DbStore{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountStores returns total store count.
func (r *GormRepository) CountStores(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbStore{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
