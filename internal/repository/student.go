package repository

import (
	"context"

	"github.com/treedoctor/treedoctor-api/internal/domain"
)

// Students defines the interface for student persistence
type Students interface {
	CreateStudent(ctx context.Context, student *domain.Student) error
	GetStudent(ctx context.Context, userID string) (*domain.Student, error)
	ListStudentIDs(ctx context.Context) ([]string, error)
}
