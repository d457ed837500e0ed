package entity

import "time"

// DbReview represents a persisted review. Ratings are whole stars in
// [1,5]; the bound is enforced both at binding time and in the
// repository before the insert.
type DbReview struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	StoreID   uint      `gorm:"column:store_id;index;not null" json:"store_id"`
	UserID    uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	Rating    int       `gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Message   string    `gorm:"column:message;type:varchar(500)" json:"message"`
	Store     *DbStore  `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"-"`
	User      *DbUser   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides default pluralised name.
func (DbReview) TableName() string {
	return "reviews"
}

// ReviewItem is a review joined with its author's name, as embedded in
// store details.
type ReviewItem struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
}

type ReviewCreateRequest struct {
	UserID  uint   `json:"user_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Message string `json:"message" binding:"required,max=500"`
}

type ReviewUpdateRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Message string `json:"message" binding:"required,max=500"`
}
