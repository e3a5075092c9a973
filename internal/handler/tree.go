package handler

import (
	"net/http"

	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/logger"
	"github.com/treedoctor/treedoctor-api/internal/tree"
)

// PlantTreeRequest is the payload for planting a tree
type PlantTreeRequest struct {
	Name      string   `json:"name" validate:"max=50"`
	Species   string   `json:"species" validate:"max=80"`
	Height    float64  `json:"height" validate:"gte=0,lte=10000"`
	Diameter  float64  `json:"diameter" validate:"gte=0,lte=1000"`
	Capsule   string   `json:"capsule" validate:"max=600"`
	PhotoRefs []string `json:"photo_refs" validate:"max=3,dive,required,max=512"`
}

// LogMeasurementRequest is the payload for a measurement log entry
type LogMeasurementRequest struct {
	Height       float64 `json:"height" validate:"gte=0,lte=10000"`
	Diameter     float64 `json:"diameter" validate:"gte=0,lte=1000"`
	HealthStatus string  `json:"health_status" validate:"health_status"`
	Note         string  `json:"note" validate:"max=500"`
	PhotoRef     *string `json:"photo_ref" validate:"omitempty,min=1,max=512"`
}

// TreeHandler handles planting, watering and measurement logging
type TreeHandler struct {
	treeSvc tree.Service
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeSvc tree.Service) *TreeHandler {
	return &TreeHandler{treeSvc: treeSvc}
}

// Plant handles planting a new tree
// @Summary Plant a tree
// @Description Creates a tree with an initial measurement log entry. A student may own at most three trees.
// @Tags trees
// @Accept json
// @Produce json
// @Param userID path string true "Student ID"
// @Param request body PlantTreeRequest true "Tree details"
// @Success 201 {object} domain.Tree
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse "Student not found"
// @Failure 409 {object} ErrorResponse "Tree limit reached"
// @Router /students/{userID}/trees [post]
func (h *TreeHandler) Plant(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	var req PlantTreeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Plant tree"); err != nil {
		return
	}

	planted, err := h.treeSvc.PlantTree(r.Context(), userID, domain.PlantTreeInput{
		Name:      req.Name,
		Species:   req.Species,
		Height:    req.Height,
		Diameter:  req.Diameter,
		Capsule:   req.Capsule,
		PhotoRefs: req.PhotoRefs,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgPlantTreeFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info("Tree planted", "user_id", userID, "tree_id", planted.ID)
	respondJSON(w, http.StatusCreated, planted)
}

// List returns all of a student's trees
// @Summary List trees
// @Tags trees
// @Produce json
// @Param userID path string true "Student ID"
// @Success 200 {array} domain.Tree
// @Router /students/{userID}/trees [get]
func (h *TreeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	trees, err := h.treeSvc.ListTrees(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgListTreesFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, trees)
}

// Get returns one tree with its full history
// @Summary Get a tree
// @Tags trees
// @Produce json
// @Param userID path string true "Student ID"
// @Param treeID path string true "Tree ID"
// @Success 200 {object} domain.Tree
// @Failure 404 {object} ErrorResponse
// @Router /students/{userID}/trees/{treeID} [get]
func (h *TreeHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, treeID, ok := treePath(r, w)
	if !ok {
		return
	}

	found, err := h.treeSvc.GetTree(r.Context(), userID, treeID)
	if err != nil {
		respondServiceError(w, r, ErrMsgListTreesFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, found)
}

// Water records a watering
// @Summary Water a tree
// @Tags trees
// @Produce json
// @Param userID path string true "Student ID"
// @Param treeID path string true "Tree ID"
// @Success 200 {object} domain.Tree
// @Failure 404 {object} ErrorResponse
// @Router /students/{userID}/trees/{treeID}/water [post]
func (h *TreeHandler) Water(w http.ResponseWriter, r *http.Request) {
	userID, treeID, ok := treePath(r, w)
	if !ok {
		return
	}

	watered, err := h.treeSvc.WaterTree(r.Context(), userID, treeID)
	if err != nil {
		respondServiceError(w, r, ErrMsgWaterTreeFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, watered)
}

// LogMeasurement appends a measurement log entry
// @Summary Log a measurement
// @Tags trees
// @Accept json
// @Produce json
// @Param userID path string true "Student ID"
// @Param treeID path string true "Tree ID"
// @Param request body LogMeasurementRequest true "Measurement"
// @Success 201 {object} domain.Tree
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /students/{userID}/trees/{treeID}/measurements [post]
func (h *TreeHandler) LogMeasurement(w http.ResponseWriter, r *http.Request) {
	userID, treeID, ok := treePath(r, w)
	if !ok {
		return
	}

	var req LogMeasurementRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Log measurement"); err != nil {
		return
	}

	updated, err := h.treeSvc.LogMeasurement(r.Context(), userID, treeID, domain.MeasurementInput{
		Height:       req.Height,
		Diameter:     req.Diameter,
		HealthStatus: domain.HealthStatus(req.HealthStatus),
		Note:         req.Note,
		PhotoRef:     req.PhotoRef,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgLogMeasurementFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, updated)
}

func treePath(r *http.Request, w http.ResponseWriter) (string, string, bool) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return "", "", false
	}
	treeID, ok := GetPathParam(r, w, "treeID")
	if !ok {
		return "", "", false
	}
	return userID, treeID, true
}
