package api

import (
	"time"

	"storerate/internal/auth"
	"storerate/internal/config"
	"storerate/internal/model"
)

// HTTPHandler carries the request-scoped dependencies of every
// endpoint: configuration, the repository and the session manager.
// Handlers hang off this struct instead of module-level singletons.
type HTTPHandler struct {
	cfg      config.Config
	repo     model.Repository
	sessions *auth.Manager
}

// NewHTTPHandler creates the HTTP handler instance.
func NewHTTPHandler(cfg config.Config, repo model.Repository) (*HTTPHandler, error) {
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessions, err := auth.NewManager(ttl)
	if err != nil {
		return nil, err
	}

	return &HTTPHandler{
		cfg:      cfg,
		repo:     repo,
		sessions: sessions,
	}, nil
}

func (h *HTTPHandler) cookieName() string {
	if h.cfg.SessionCookie == "" {
		return "session_cookie_name"
	}
	return h.cfg.SessionCookie
}
