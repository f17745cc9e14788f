package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mfimia/reddit-clone/internal/security"
)

// Session is the per-request view of the caller's authentication state.
// It is created lazily: no store entry or cookie exists until Bind.
type Session interface {
	UserID() uint
	Bind(ctx context.Context, userID uint) error
	Destroy(ctx context.Context) error
}

type Manager struct {
	store      Store
	cookies    *security.CookieManager
	cookieName string
	ttl        time.Duration
	logger     *slog.Logger
}

func NewManager(store Store, cookies *security.CookieManager, cookieName string, ttl time.Duration, logger *slog.Logger) *Manager {
	return &Manager{store: store, cookies: cookies, cookieName: cookieName, ttl: ttl, logger: logger}
}

// Middleware resolves the session cookie to a user id and exposes a Session
// through the request context. A stale cookie (entry expired or destroyed)
// behaves like no session at all.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := &requestSession{manager: m, w: w}
		if sid := security.GetCookie(r, m.cookieName); sid != "" {
			userID, err := m.store.Get(r.Context(), sid)
			switch {
			case err == nil:
				sess.id = sid
				sess.userID = userID
			case errors.Is(err, ErrSessionNotFound):
				// The sid has no store entry, so it is either expired or
				// client-supplied. It is never adopted; Bind mints a fresh
				// one, so a login can only land under a server-generated id.
			default:
				m.logger.ErrorContext(r.Context(), "session lookup failed", "error", err)
			}
		}
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), sess)))
	})
}

type requestSession struct {
	manager *Manager
	w       http.ResponseWriter
	id      string
	userID  uint
}

func (s *requestSession) UserID() uint { return s.userID }

func (s *requestSession) Bind(ctx context.Context, userID uint) error {
	if s.id == "" {
		sid, err := security.NewSessionID()
		if err != nil {
			return err
		}
		s.id = sid
	}
	if err := s.manager.store.Set(ctx, s.id, userID, s.manager.ttl); err != nil {
		return err
	}
	s.userID = userID
	s.manager.cookies.Set(s.w, s.manager.cookieName, s.id, s.manager.ttl)
	return nil
}

func (s *requestSession) Destroy(ctx context.Context) error {
	s.manager.cookies.Clear(s.w, s.manager.cookieName)
	if s.id == "" {
		return nil
	}
	err := s.manager.store.Delete(ctx, s.id)
	s.id = ""
	s.userID = 0
	return err
}

type contextKey struct{}

func NewContext(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(Session)
	return sess, ok
}
