package auth

import (
	"errors"
	"strings"
	"time"

	"storerate/internal/entity"

	"github.com/google/uuid"
)

// Manager mints server-side sessions keyed by opaque tokens. Nothing
// about the user beyond id and role is derivable from the token itself.
type Manager struct {
	ttl time.Duration
}

// NewManager creates a session manager with the given time to live.
func NewManager(ttl time.Duration) (*Manager, error) {
	if ttl <= 0 {
		ttl = time.Hour * 24 * 7
	}
	return &Manager{ttl: ttl}, nil
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	if m == nil {
		return 0
	}
	return m.ttl
}

// NewSession builds an unsaved session row for the provided user.
func (m *Manager) NewSession(user *entity.DbUser) (*entity.DbSession, error) {
	if m == nil {
		return nil, errors.New("session manager is nil")
	}
	if user == nil || user.ID == 0 {
		return nil, errors.New("invalid user for session creation")
	}
	now := time.Now().UTC()
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return &entity.DbSession{
		Token:     token,
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: now.Add(m.ttl),
	}, nil
}
