package handler

import (
	"net/http"

	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/logger"
	"github.com/treedoctor/treedoctor-api/internal/student"
)

// RegisterStudentRequest is the sign-up payload
type RegisterStudentRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=32"`
	Email       string `json:"email" validate:"required,email,max=254"`
	DisplayName string `json:"display_name" validate:"max=64"`
	TimeZone    string `json:"time_zone" validate:"max=64,tz_name"`
}

// StudentHandler handles student registration and lookup
type StudentHandler struct {
	studentSvc student.Service
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentSvc student.Service) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// Register handles student sign-up
// @Summary Register a student
// @Tags students
// @Accept json
// @Produce json
// @Param request body RegisterStudentRequest true "Student details"
// @Success 201 {object} domain.Student
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse "Username taken"
// @Router /students [post]
func (h *StudentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterStudentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register student"); err != nil {
		return
	}

	created, err := h.studentSvc.Register(r.Context(), domain.RegisterStudentInput{
		Username:    req.Username,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		TimeZone:    req.TimeZone,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgRegisterStudentFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info("Student registered", "user_id", created.ID)
	respondJSON(w, http.StatusCreated, created)
}

// Get returns a student by id
// @Summary Get a student
// @Tags students
// @Produce json
// @Param userID path string true "Student ID"
// @Success 200 {object} domain.Student
// @Failure 404 {object} ErrorResponse
// @Router /students/{userID} [get]
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	found, err := h.studentSvc.GetStudent(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetStudentFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, found)
}
