// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log"
	"net/http"

	"internportal/internal/app"
	"internportal/internal/domain"

	"github.com/coreos/go-oidc/v3/oidc"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Identity   string      `json:"identity"`
		Credential string      `json:"credential"`
		Role       domain.Role `json:"role"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	c := clientFrom(r)
	sess, err := c.Sessions.Login(r.Context(), req.Identity, req.Credential, req.Role)
	var authErr *app.AuthError
	if errors.As(err, &authErr) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": loginMessage(req.Role, authErr)})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	c.Gateway.Navigate()
	c.TakeExpiredNotice()

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "session": sess})
}

func loginMessage(role domain.Role, err *app.AuthError) string {
	switch role {
	case domain.RoleCandidate:
		return "Invalid candidate ID format. Please enter 3-10 digits."
	case domain.RoleAdmin:
		return "Invalid admin credentials. Please check your username and password."
	}
	return err.Reason
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	c := clientFrom(r)
	c.Gateway.Navigate()
	if err := c.Sessions.Logout(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	c := clientFrom(r)
	expired := c.TakeExpiredNotice()
	sess, err := c.Sessions.Restore(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"logged_in": true, "session": sess})
	case errors.Is(err, app.ErrSessionExpired):
		writeJSON(w, http.StatusOK, map[string]any{"logged_in": false, "expired": true})
	case errors.Is(err, app.ErrSessionNotFound):
		writeJSON(w, http.StatusOK, map[string]any{"logged_in": false, "expired": expired})
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	gen := clientFrom(r).Gateway.Navigate()
	writeJSON(w, http.StatusOK, map[string]any{"generation": gen})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sso_enabled":  s.oidcConfig.Enabled,
		"gateway_mode": s.clients.Mode(),
	})
}

func (s *Server) handleSSOLogin(w http.ResponseWriter, r *http.Request) {
	if !s.oidcConfig.Enabled {
		http.Error(w, "sso disabled", http.StatusNotFound)
		return
	}
	state := generateState()
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode, // Lax required for cross-site redirect returns
		MaxAge:   300,
	})
	http.Redirect(w, r, s.oidcConfig.OAuth2Config.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleSSOCallback(w http.ResponseWriter, r *http.Request) {
	if !s.oidcConfig.Enabled {
		http.Error(w, "sso disabled", http.StatusNotFound)
		return
	}

	state, err := r.Cookie("oauth_state")
	if err != nil || r.URL.Query().Get("state") != state.Value {
		http.Error(w, "invalid state", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{Name: "oauth_state", MaxAge: -1, Path: "/"})

	token, err := s.oidcConfig.OAuth2Config.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		http.Error(w, "failed to exchange token", http.StatusInternalServerError)
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		http.Error(w, "no id_token", http.StatusInternalServerError)
		return
	}

	idToken, err := s.oidcConfig.Provider.Verifier(&oidc.Config{ClientID: s.oidcConfig.OAuth2Config.ClientID}).Verify(r.Context(), rawIDToken)
	if err != nil {
		http.Error(w, "failed to verify token", http.StatusInternalServerError)
		return
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err = idToken.Claims(&claims); err != nil {
		http.Error(w, "failed to parse claims", http.StatusInternalServerError)
		return
	}
	if !claims.EmailVerified || !s.oidcConfig.isAdmin(claims.Email) {
		log.Printf("sso: %q is not an administrator", claims.Email)
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	name := claims.Name
	if name == "" {
		name = claims.Email
	}
	c := clientFrom(r)
	identity := domain.Identity{ID: claims.Email, Name: name, Type: string(domain.RoleAdmin)}
	if _, err := c.Sessions.LoginWithIdentity(r.Context(), identity, domain.RoleAdmin); err != nil {
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	c.Gateway.Navigate()

	http.Redirect(w, r, "/", http.StatusFound)
}

func generateState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
