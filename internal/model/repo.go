package model

import (
	"context"
	"time"

	"storerate/internal/entity"
)

// Repository defines the persistence operations of the service.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *entity.DbUser) error
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	EmailInUse(ctx context.Context, email string, excludeID uint) (bool, error)
	UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteUser(ctx context.Context, id uint) error
	ListUsersWithStores(ctx context.Context) ([]entity.AdminUserItem, error)
	CountUsers(ctx context.Context) (int64, error)

	// Stores and aggregation
	ListStores(ctx context.Context) ([]entity.StoreListItem, error)
	SearchStores(ctx context.Context, query string) ([]entity.StoreListItem, error)
	ListStoresByOwner(ctx context.Context, userID uint) ([]entity.OwnedStoreItem, error)
	GetStoreDetails(ctx context.Context, id uint) (*entity.StoreDetails, error)
	ListStoresWithAverage(ctx context.Context) ([]entity.AdminStoreItem, error)
	CreateStore(ctx context.Context, userID uint, name, address string) (*entity.DbStore, bool, error)
	UpdateStore(ctx context.Context, id uint, name, address string) error
	DeleteStore(ctx context.Context, id uint) error
	CountStores(ctx context.Context) (int64, error)

	// Reviews
	CreateReview(ctx context.Context, review *entity.DbReview) error
	UpdateReview(ctx context.Context, storeID, reviewID uint, rating int, message string) error
	DeleteReview(ctx context.Context, storeID, reviewID uint) error
	CountReviews(ctx context.Context) (int64, error)

	// Sessions
	CreateSession(ctx context.Context, session *entity.DbSession) error
	GetSessionByToken(ctx context.Context, token string) (*entity.DbSession, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
