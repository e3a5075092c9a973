package handler_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/handler"
)

const (
	treesPattern       = "/students/{userID}/trees"
	treePattern        = "/students/{userID}/trees/{treeID}"
	waterPattern       = "/students/{userID}/trees/{treeID}/water"
	measurementPattern = "/students/{userID}/trees/{treeID}/measurements"
)

func sampleTree() *domain.Tree {
	planted := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Tree{
		ID:            "t1",
		UserID:        "u1",
		Name:          "Oakley",
		Species:       "Oak",
		PlantedAt:     planted,
		InitialHeight: 10,
		Waterings:     []time.Time{},
		MeasurementLog: []domain.Measurement{
			{Timestamp: planted, Height: 10, HealthStatus: domain.HealthHealthy},
		},
	}
}

func TestTreeHandler_Plant(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockTreeService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Success",
			body: handler.PlantTreeRequest{Name: "Oakley", Species: "oak", Height: 10, PhotoRefs: []string{"p/1.jpg"}},
			setupMock: func(m *MockTreeService) {
				m.On("PlantTree", mock.Anything, "u1", domain.PlantTreeInput{
					Name: "Oakley", Species: "oak", Height: 10, PhotoRefs: []string{"p/1.jpg"},
				}).Return(sampleTree(), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Too Many Photos",
			body:           handler.PlantTreeRequest{PhotoRefs: []string{"1", "2", "3", "4"}},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.ErrMsgInvalidRequestSummary,
		},
		{
			name: "Limit Reached",
			body: handler.PlantTreeRequest{Name: "Fourth"},
			setupMock: func(m *MockTreeService) {
				m.On("PlantTree", mock.Anything, "u1", mock.Anything).
					Return(nil, fmt.Errorf("failed to create tree: %w", domain.ErrTreeLimitReached))
			},
			expectedStatus: http.StatusConflict,
			expectedError:  handler.ErrMsgTreeLimitError,
		},
		{
			name: "Unknown Student",
			body: handler.PlantTreeRequest{},
			setupMock: func(m *MockTreeService) {
				m.On("PlantTree", mock.Anything, "u1", mock.Anything).Return(nil, domain.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  handler.ErrMsgStudentNotFoundError,
		},
		{
			name: "Storage Failure",
			body: handler.PlantTreeRequest{},
			setupMock: func(m *MockTreeService) {
				m.On("PlantTree", mock.Anything, "u1", mock.Anything).Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  handler.ErrMsgServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockTreeService{}
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			w := serve(http.MethodPost, treesPattern, handler.NewTreeHandler(svc).Plant, "/students/u1/trees", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestTreeHandler_List(t *testing.T) {
	svc := &MockTreeService{}
	svc.On("ListTrees", mock.Anything, "u1").Return([]domain.Tree{*sampleTree()}, nil)

	w := serve(http.MethodGet, treesPattern, handler.NewTreeHandler(svc).List, "/students/u1/trees", nil)

	require.Equal(t, http.StatusOK, w.Code)
	trees := decodeBody[[]domain.Tree](t, w)
	require.Len(t, trees, 1)
	assert.Equal(t, "Oakley", trees[0].Name)
}

func TestTreeHandler_Get(t *testing.T) {
	svc := &MockTreeService{}
	svc.On("GetTree", mock.Anything, "u1", "t1").Return(sampleTree(), nil)
	svc.On("GetTree", mock.Anything, "u1", "missing").Return(nil, domain.ErrTreeNotFound)
	h := handler.NewTreeHandler(svc)

	w := serve(http.MethodGet, treePattern, h.Get, "/students/u1/trees/t1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(http.MethodGet, treePattern, h.Get, "/students/u1/trees/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), handler.ErrMsgTreeNotFoundError)
}

func TestTreeHandler_Water(t *testing.T) {
	watered := sampleTree()
	watered.Waterings = []time.Time{time.Date(2024, 6, 2, 6, 0, 0, 0, time.UTC)}

	svc := &MockTreeService{}
	svc.On("WaterTree", mock.Anything, "u1", "t1").Return(watered, nil)

	w := serve(http.MethodPost, waterPattern, handler.NewTreeHandler(svc).Water, "/students/u1/trees/t1/water", nil)

	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[domain.Tree](t, w)
	assert.Len(t, got.Waterings, 1)
	svc.AssertExpectations(t)
}

func TestTreeHandler_LogMeasurement(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		photo := "p/2.jpg"
		svc := &MockTreeService{}
		svc.On("LogMeasurement", mock.Anything, "u1", "t1", domain.MeasurementInput{
			Height: 22, Diameter: 2, HealthStatus: domain.HealthWizened, Note: "dry summer", PhotoRef: &photo,
		}).Return(sampleTree(), nil)

		body := handler.LogMeasurementRequest{Height: 22, Diameter: 2, HealthStatus: "wizened", Note: "dry summer", PhotoRef: &photo}
		w := serve(http.MethodPost, measurementPattern, handler.NewTreeHandler(svc).LogMeasurement, "/students/u1/trees/t1/measurements", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Invalid Health Status", func(t *testing.T) {
		svc := &MockTreeService{}
		body := handler.LogMeasurementRequest{Height: 22, HealthStatus: "thriving"}
		w := serve(http.MethodPost, measurementPattern, handler.NewTreeHandler(svc).LogMeasurement, "/students/u1/trees/t1/measurements", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		fields := decodeBody[handler.ValidationErrorResponse](t, w).Fields
		assert.Contains(t, fields, "healthstatus")
		svc.AssertNotCalled(t, "LogMeasurement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Service Rejects Measurement", func(t *testing.T) {
		svc := &MockTreeService{}
		svc.On("LogMeasurement", mock.Anything, "u1", "t1", mock.Anything).
			Return(nil, fmt.Errorf("%w: height", domain.ErrInvalidMeasurement))

		w := serve(http.MethodPost, measurementPattern, handler.NewTreeHandler(svc).LogMeasurement,
			"/students/u1/trees/t1/measurements", handler.LogMeasurementRequest{Height: 1})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), handler.ErrMsgInvalidMeasureError)
	})
}
