package adapthttp

import (
	"net/http"

	"internportal/internal/app"
)

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	n := intQuery(r, "n", app.DefaultRecommendations)
	items, err := clientFrom(r).Gateway.Recommendations(r.Context(), sessionFrom(r).User.ID, n)
	if err != nil {
		writeGatewayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleApplications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gw := clientFrom(r).Gateway
	candidateID := sessionFrom(r).User.ID

	switch r.Method {
	case http.MethodGet:
		items, err := gw.Applications(ctx, candidateID)
		if err != nil {
			writeGatewayError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body struct {
			Index int `json:"index"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		application, err := gw.SubmitApplication(ctx, candidateID, body.Index)
		if err != nil {
			writeGatewayError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":          true,
			"application": application,
			"message":     "Application submitted successfully to " + application.CompanyName,
		})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAllotment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	allotment, err := clientFrom(r).Gateway.AllotmentStatus(r.Context(), sessionFrom(r).User.ID)
	if err != nil {
		writeGatewayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"allotment": allotment})
}

func (s *Server) handleConfirmAllotment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	allotment, err := clientFrom(r).Gateway.ConfirmAllotment(r.Context())
	if err != nil {
		writeGatewayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "allotment": allotment})
}
