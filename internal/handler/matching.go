package handler

import (
	"net/http"
	"strconv"

	"github.com/embermatch/api/internal/middleware"
	"github.com/embermatch/api/internal/model"
	"github.com/embermatch/api/internal/service"
)

// MatchingHandler handles compatibility endpoints
type MatchingHandler struct {
	compatibilityService *service.CompatibilityService
}

// NewMatchingHandler creates a new matching handler
func NewMatchingHandler(compatibilityService *service.CompatibilityService) *MatchingHandler {
	return &MatchingHandler{compatibilityService: compatibilityService}
}

// targetUser extracts and sanity-checks the {userId} path value.
func targetUser(w http.ResponseWriter, r *http.Request, selfID string) (string, bool) {
	otherID := r.PathValue("userId")
	if otherID == "" {
		WriteError(w, model.NewBadRequestError("user ID required"))
		return "", false
	}
	if otherID == selfID {
		WriteError(w, model.NewBadRequestError("cannot compute compatibility with yourself"))
		return "", false
	}
	return otherID, true
}

// GetCompatibility handles GET /v1/matches/{userId}/compatibility
func (h *MatchingHandler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	otherID, ok := targetUser(w, r, userID)
	if !ok {
		return
	}

	result, err := h.compatibilityService.CalculateMatch(r.Context(), userID, otherID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "calculate match"))
		return
	}

	WriteData(w, http.StatusOK, result, map[string]string{
		"self":        "/v1/matches/" + otherID + "/compatibility",
		"explanation": "/v1/matches/" + otherID + "/explanation",
	})
}

// GetExplanation handles GET /v1/matches/{userId}/explanation.
// Accepts ?factors=N to bound how many drivers are listed per side.
func (h *MatchingHandler) GetExplanation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	otherID, ok := targetUser(w, r, userID)
	if !ok {
		return
	}

	topN := model.DefaultExplanationFactors
	if raw := r.URL.Query().Get("factors"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteError(w, model.NewBadRequestError("factors must be a positive integer"))
			return
		}
		topN = parsed
	}

	explanation, err := h.compatibilityService.Explain(r.Context(), userID, otherID, topN)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "explain match"))
		return
	}

	WriteData(w, http.StatusOK, explanation, map[string]string{
		"self":          "/v1/matches/" + otherID + "/explanation",
		"compatibility": "/v1/matches/" + otherID + "/compatibility",
	})
}
