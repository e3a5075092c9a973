package handler_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/treedoctor/treedoctor-api/internal/badge"
	"github.com/treedoctor/treedoctor-api/internal/domain"
)

type MockStudentService struct {
	mock.Mock
}

func (m *MockStudentService) Register(ctx context.Context, input domain.RegisterStudentInput) (*domain.Student, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentService) GetStudent(ctx context.Context, userID string) (*domain.Student, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

type MockTreeService struct {
	mock.Mock
}

func (m *MockTreeService) PlantTree(ctx context.Context, userID string, input domain.PlantTreeInput) (*domain.Tree, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tree), args.Error(1)
}

func (m *MockTreeService) WaterTree(ctx context.Context, userID, treeID string) (*domain.Tree, error) {
	args := m.Called(ctx, userID, treeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tree), args.Error(1)
}

func (m *MockTreeService) LogMeasurement(ctx context.Context, userID, treeID string, input domain.MeasurementInput) (*domain.Tree, error) {
	args := m.Called(ctx, userID, treeID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tree), args.Error(1)
}

func (m *MockTreeService) ListTrees(ctx context.Context, userID string) ([]domain.Tree, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tree), args.Error(1)
}

func (m *MockTreeService) GetTree(ctx context.Context, userID, treeID string) (*domain.Tree, error) {
	args := m.Called(ctx, userID, treeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tree), args.Error(1)
}

type MockBadgeService struct {
	mock.Mock
}

func (m *MockBadgeService) CheckAndAward(ctx context.Context, userID string) (*domain.EvaluationResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EvaluationResult), args.Error(1)
}

func (m *MockBadgeService) GetUserBadges(ctx context.Context, userID string) (*domain.BadgeSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BadgeSummary), args.Error(1)
}

func (m *MockBadgeService) GetCatalog() *badge.Catalog {
	args := m.Called()
	return args.Get(0).(*badge.Catalog)
}

func (m *MockBadgeService) EvaluateAll(ctx context.Context) (*badge.SweepResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*badge.SweepResult), args.Error(1)
}

type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) GetMonth(ctx context.Context, userID, month string) (*domain.CalendarMonth, error) {
	args := m.Called(ctx, userID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalendarMonth), args.Error(1)
}

func (m *MockCalendarService) GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}
