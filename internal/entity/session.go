package entity

import "time"

// DbSession is a server-side session row keyed by an opaque token. The
// client holds only the token in a cookie; identity stays on the server.
type DbSession struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Token     string    `gorm:"column:token;type:varchar(64);uniqueIndex;not null" json:"-"`
	UserID    uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	Role      string    `gorm:"column:role;type:varchar(20);not null" json:"role"`
	ExpiresAt time.Time `gorm:"column:expires_at;index;not null" json:"expires_at"`
}

// TableName overrides default pluralised name.
func (DbSession) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its TTL at the given instant.
func (s *DbSession) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}
