package adapthttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path"
	"strconv"

	"internportal/internal/adapter/remote"
	"internportal/internal/app"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func intQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// writeGatewayError maps a gateway error to a status and a message fit for
// the dashboard.
func writeGatewayError(w http.ResponseWriter, err error) {
	status, msg := userMessage(err)
	if status >= http.StatusInternalServerError {
		log.Printf("gateway error: %v", err)
	}
	writeJSON(w, status, map[string]any{"error": msg})
}

func userMessage(err error) (int, string) {
	var se *remote.StatusError
	var netErr net.Error
	switch {
	case errors.Is(err, app.ErrStaleResponse):
		return http.StatusConflict, "The page changed before the response arrived."
	case errors.Is(err, app.ErrInvalidCandidateID):
		return http.StatusBadRequest, "Invalid candidate ID format. Please enter 3-10 digits."
	case errors.Is(err, app.ErrRecommendationNotFound):
		return http.StatusNotFound, "Internship not found. Please refresh your recommendations."
	case errors.Is(err, app.ErrAlreadyApplied):
		return http.StatusConflict, "You have already applied to this internship."
	case errors.Is(err, app.ErrNoAllotment):
		return http.StatusNotFound, "No allotment available yet."
	case errors.As(err, &se) && se.StatusCode == http.StatusNotFound:
		return http.StatusNotFound, "Candidate ID not found. Please check and try again."
	case errors.As(err, &se) && se.StatusCode >= http.StatusInternalServerError:
		return http.StatusBadGateway, "Server error. Please contact support if the issue persists."
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr):
		return http.StatusBadGateway, "Unable to connect to server. Please check your internet connection."
	}
	return http.StatusInternalServerError, "An unexpected error occurred. Please try again."
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func spaFromDisk(dir string) http.Handler {
	fileServer := http.FileServer(http.Dir(dir))
	indexPath := path.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqPath := path.Clean(r.URL.Path)
		if reqPath == "/" {
			http.ServeFile(w, r, indexPath)
			return
		}

		staticPath := path.Join(dir, reqPath)
		if _, err := os.Stat(staticPath); err == nil {
			fileServer.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, indexPath)
	})
}
