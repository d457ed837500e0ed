package sql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storerate/internal/entity"
)

// CreateSession persists a new session row.
func (r *GormRepository) CreateSession(ctx context.Context, session *entity.DbSession) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if session == nil || strings.TrimSpace(session.Token) == "" {
		return fmt.Errorf("session token is empty")
	}
	return r.db.WithContext(ctx).Create(session).Error
}

// GetSessionByToken loads a session by its opaque token.
func (r *GormRepository) GetSessionByToken(ctx context.Context, token string) (*entity.DbSession, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, fmt.Errorf("session token is empty")
	}
	var session entity.DbSession
	if err := r.db.WithContext(ctx).Where("token = ?", trimmed).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession removes a session by token. Missing rows are not an
// error; logout is idempotent.
func (r *GormRepository) DeleteSession(ctx context.Context, token string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil
	}
	return r.db.WithContext(ctx).Where("token = ?", trimmed).Delete(&entity.DbSession{}).Error
}

// DeleteExpiredSessions sweeps sessions past their TTL.
func (r *GormRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&entity.DbSession{})
	return result.RowsAffected, result.Error
}
