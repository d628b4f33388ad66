package adapthttp

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"internportal/internal/app"
	"internportal/internal/domain"
)

type contextKey string

const (
	clientContextKey  contextKey = "client"
	sessionContextKey contextKey = "session"
)

// withClient resolves the caller's client from the signed client cookie,
// issuing a new one when it is missing or invalid.
func (s *Server) withClient(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ns string
		if cookie, err := r.Cookie(clientCookieName); err == nil {
			ns, err = s.cookies.Parse(cookie.Value)
			if err != nil {
				log.Printf("client cookie rejected: %v", err)
			}
		}
		if ns == "" {
			var token string
			var err error
			ns, token, err = s.cookies.Issue()
			if err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     clientCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(clientCookieTTL.Seconds()),
			})
		}

		c := s.clients.Client(ns)
		ctx := context.WithValue(r.Context(), clientContextKey, c)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole admits requests whose session grants role, sliding the
// session expiry forward.
func (s *Server) requireRole(role domain.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := clientFrom(r)
		sess, err := c.Sessions.Authorize(r.Context(), role)
		switch {
		case err == nil:
		case errors.Is(err, app.ErrSessionNotFound), errors.Is(err, app.ErrSessionExpired):
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"error":    "Please log in to continue.",
				"expired":  errors.Is(err, app.ErrSessionExpired) || c.TakeExpiredNotice(),
				"redirect": "login",
			})
			return
		case errors.Is(err, app.ErrForbidden):
			writeJSON(w, http.StatusForbidden, map[string]any{"error": "You do not have access to this page."})
			return
		default:
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientFrom(r *http.Request) *app.Client {
	c, _ := r.Context().Value(clientContextKey).(*app.Client)
	return c
}

func sessionFrom(r *http.Request) *domain.Session {
	sess, _ := r.Context().Value(sessionContextKey).(*domain.Session)
	return sess
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs method, path, status and duration of each request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
