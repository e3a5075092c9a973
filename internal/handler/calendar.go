package handler

import (
	"net/http"

	"github.com/treedoctor/treedoctor-api/internal/calendar"
)

// CalendarHandler serves the activity calendar and dashboard
type CalendarHandler struct {
	calendarSvc calendar.Service
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarSvc calendar.Service) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// GetMonth returns the activity calendar
// @Summary Activity calendar
// @Description Plant, water and measure events grouped by the student's local date.
// @Tags calendar
// @Produce json
// @Param userID path string true "Student ID"
// @Param month query string false "Month as YYYY-MM, defaults to the current month"
// @Success 200 {object} domain.CalendarMonth
// @Failure 400 {object} ErrorResponse
// @Router /students/{userID}/calendar [get]
func (h *CalendarHandler) GetMonth(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	month := r.URL.Query().Get("month")
	cal, err := h.calendarSvc.GetMonth(r.Context(), userID, month)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetCalendarFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, cal)
}

// GetDashboard returns per-tree summaries plus totals
// @Summary Dashboard
// @Tags calendar
// @Produce json
// @Param userID path string true "Student ID"
// @Success 200 {object} domain.Dashboard
// @Router /students/{userID}/dashboard [get]
func (h *CalendarHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	dash, err := h.calendarSvc.GetDashboard(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetDashboardFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, dash)
}
