package httpapi

import (
	"encoding/json"
	"net/http"

	"model_rankings/internal/auth"
	"model_rankings/internal/utils"
)

type adminActionRequest struct {
	Action string `json:"action"`
	Force  bool   `json:"force,omitempty"`
}

// handleAdminRankings serves the admin write path: cache refresh and cache
// clear. Authentication has already happened in the middleware; unknown
// actions are rejected with no side effect.
func (d *Dependencies) handleAdminRankings(w http.ResponseWriter, r *http.Request) {
	var req adminActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch req.Action {
	case "refresh":
		count, err := d.Rankings.Refresh(r.Context(), req.Force)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Refresh failed: "+err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"action": "refresh",
			"models": count,
		})

	case "clear_cache":
		if err := d.Rankings.ClearCache(r.Context()); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Cache clear failed: "+err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"action": "clear_cache",
		})

	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown action: "+req.Action)
	}
}

type adminLoginRequest struct {
	Key string `json:"key"`
}

// handleAdminLogin exchanges the admin key for a short-lived session JWT.
func (d *Dependencies) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !auth.VerifyAdminKey(req.Key, d.Config.Admin.Key, d.Config.Admin.KeyHash) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	token, expiresAt, err := auth.GenerateAdminJWT(d.Config.Admin.JWTSecret)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_at": expiresAt,
	})
}
