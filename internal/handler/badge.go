package handler

import (
	"net/http"

	"github.com/treedoctor/treedoctor-api/internal/badge"
	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/logger"
)

// CatalogResponse is the public badge catalog
type CatalogResponse struct {
	Version    string                   `json:"version"`
	Categories []domain.CategoryInfo    `json:"categories"`
	Badges     []domain.BadgeDefinition `json:"badges"`
}

// BadgeHandler exposes badge summaries, on-demand evaluation and the catalog
type BadgeHandler struct {
	badgeSvc badge.Service
}

// NewBadgeHandler creates a new badge handler
func NewBadgeHandler(badgeSvc badge.Service) *BadgeHandler {
	return &BadgeHandler{badgeSvc: badgeSvc}
}

// GetUserBadges returns earned vs total badges per category
// @Summary Badge summary
// @Description Secret badges that have not been earned keep their name and description hidden.
// @Tags badges
// @Produce json
// @Param userID path string true "Student ID"
// @Success 200 {object} domain.BadgeSummary
// @Failure 503 {object} ErrorResponse "Ledger unavailable"
// @Router /students/{userID}/badges [get]
func (h *BadgeHandler) GetUserBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	summary, err := h.badgeSvc.GetUserBadges(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetBadgesFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// Evaluate runs a badge evaluation immediately
// @Summary Evaluate badges
// @Description Awards every newly qualifying badge. Awards that could not be stored are listed under failed.
// @Tags badges
// @Produce json
// @Param userID path string true "Student ID"
// @Success 200 {object} domain.EvaluationResult
// @Failure 503 {object} ErrorResponse "Store unavailable"
// @Router /students/{userID}/badges/evaluate [post]
func (h *BadgeHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	result, err := h.badgeSvc.CheckAndAward(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgEvaluateBadgeFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info("Badge evaluation requested",
		"user_id", userID, "awarded", len(result.Awarded), "failed", len(result.Failed))
	respondJSON(w, http.StatusOK, result)
}

// GetCatalog returns the badge catalog with secret requirements masked
// @Summary Badge catalog
// @Tags badges
// @Produce json
// @Success 200 {object} CatalogResponse
// @Router /badges/catalog [get]
func (h *BadgeHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := h.badgeSvc.GetCatalog()
	respondJSON(w, http.StatusOK, CatalogResponse{
		Version:    catalog.Version(),
		Categories: catalog.Categories(),
		Badges:     catalog.Public(),
	})
}
