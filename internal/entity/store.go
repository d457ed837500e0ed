package entity

import "time"

// DbStore represents a persisted store. The email is copied from the
// owning user at creation time and is not re-validated for uniqueness.
type DbStore struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"column:name;type:varchar(60);not null" json:"name"`
	Email     string    `gorm:"column:email;type:varchar(100);not null" json:"email"`
	Address   string    `gorm:"column:address;type:varchar(400)" json:"address"`
	UserID    uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	Owner     *DbUser   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides default pluralised name.
func (DbStore) TableName() string {
	return "stores"
}

// StoreListItem is a store row with its recomputed rating aggregate,
// as served by the public list and search endpoints.
type StoreListItem struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Address     string  `json:"address"`
	UserID      uint    `json:"user_id"`
	Rating      float64 `json:"rating"`
	ReviewCount int64   `json:"review_count"`
}

// OwnedStoreItem is the per-owner breakdown served by /stores/user/:userId.
type OwnedStoreItem struct {
	StoreID     uint    `json:"store_id"`
	StoreName   string  `json:"store_name"`
	Email       string  `json:"email"`
	Address     string  `json:"address"`
	OwnerID     uint    `json:"owner_id"`
	Rating      float64 `json:"rating"`
	ReviewCount int64   `json:"review_count"`
}

// StoreDetails is the full store view: owner identity, the aggregate
// and every review, newest first.
type StoreDetails struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Address     string       `json:"address"`
	UserID      uint         `json:"user_id"`
	OwnerName   string       `json:"owner_name"`
	AvgRating   float64      `json:"avg_rating"`
	ReviewCount int64        `json:"review_count"`
	Reviews     []ReviewItem `json:"reviews"`
}

// AdminStoreItem is the admin store list row; the aggregate keeps two
// decimals on this surface.
type AdminStoreItem struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	UserID        uint    `json:"user_id"`
	AverageRating float64 `json:"average_rating"`
}

type AdminStoreCreateRequest struct {
	UserID  uint   `json:"user_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

type AdminStoreUpdateRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}
