package sql

import (
	"context"
	"fmt"
	"strings"

	"storerate/internal/entity"

	"gorm.io/gorm"
)

// CreateUser persists a new user record.
func (r *GormRepository) CreateUser(ctx context.Context, user *entity.DbUser) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if user == nil {
		return fmt.Errorf("user is nil")
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByEmail loads a user by email.
func (r *GormRepository) GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, fmt.Errorf("email is empty")
	}

	var user entity.DbUser
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(trimmed)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID loads a user by ID.
func (r *GormRepository) GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var user entity.DbUser
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailInUse reports whether another user already holds the address.
// The read-before-write check keeps duplicate emails a 400 rather than
// a bare driver error; the unique index still backstops races.
func (r *GormRepository) EmailInUse(ctx context.Context, email string, excludeID uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return false, nil
	}

	query := r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("LOWER(email) = ?", trimmed)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateUser updates an existing user entry.
func (r *GormRepository) UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid user id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteUser removes a user together with their stores, the reviews on
// those stores, the reviews they authored and their sessions, in one
// transaction.
func (r *GormRepository) DeleteUser(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid user id")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownedStores := tx.Model(&entity.DbStore{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("store_id IN (?)", ownedStores).Delete(&entity.DbReview{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&entity.DbReview{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&entity.DbStore{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&entity.DbSession{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.DbUser{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

type userStoreAggRow struct {
	UserID       uint
	UserName     string
	UserEmail    string
	UserAddress  string
	UserRole     string
	StoreID      *uint
	StoreName    *string
	StoreEmail   *string
	StoreAddress *string
	AvgRating    *float64
}

// ListUsersWithStores returns every user ordered by ascending id, each
// with a per-store rating breakdown (two decimals on the admin surface).
func (r *GormRepository) ListUsersWithStores(ctx context.Context) ([]entity.AdminUserItem, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	var rows []userStoreAggRow
	err := r.db.WithContext(ctx).Model(&entity.DbUser{}).
		Select("users.id AS user_id, users.name AS user_name, users.email AS user_email, " +
			"users.address AS user_address, users.role AS user_role, " +
			"stores.id AS store_id, stores.name AS store_name, stores.email AS store_email, " +
			"stores.address AS store_address, AVG(reviews.rating) AS avg_rating").
		Joins("LEFT JOIN stores ON stores.user_id = users.id").
		Joins("LEFT JOIN reviews ON reviews.store_id = stores.id").
		Group("users.id, stores.id").
		Order("users.id ASC, stores.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	users := make([]entity.AdminUserItem, 0)
	index := make(map[uint]int)
	for _, row := range rows {
		pos, ok := index[row.UserID]
		if !ok {
			users = append(users, entity.AdminUserItem{
				ID:      row.UserID,
				Name:    row.UserName,
				Email:   row.UserEmail,
				Address: row.UserAddress,
				Role:    row.UserRole,
				Stores:  []entity.AdminUserStore{},
			})
			pos = len(users) - 1
			index[row.UserID] = pos
		}
		if row.StoreID == nil {
			continue
		}
		store := entity.AdminUserStore{
			ID:            *row.StoreID,
			AverageRating: roundRating(row.AvgRating, 2),
		}
		if row.StoreName != nil {
			store.Name = *row.StoreName
		}
		if row.StoreEmail != nil {
			store.Email = *row.StoreEmail
		}
		if row.StoreAddress != nil {
			store.Address = *row.StoreAddress
		}
		users[pos].Stores = append(users[pos].Stores, store)
	}
	return users, nil
}

// CountUsers returns total user count.
func (r *GormRepository) CountUsers(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
