package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/repository"
)

// StudentRepository implements repository.Students on PostgreSQL
type StudentRepository struct {
	db *pgxpool.Pool
}

var _ repository.Students = (*StudentRepository)(nil)

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// CreateStudent inserts a student. A taken username returns domain.ErrUserAlreadyExists.
func (r *StudentRepository) CreateStudent(ctx context.Context, student *domain.Student) error {
	id, ok := parseID(student.ID)
	if !ok {
		return fmt.Errorf("%w: student id must be a uuid", domain.ErrInvalidInput)
	}
	_, err := r.db.Exec(ctx, sqlInsertStudent,
		id, student.Username, student.Email, student.DisplayName, student.TimeZone, student.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertStudent, err)
	}
	return nil
}

// GetStudent returns domain.ErrUserNotFound for unknown ids
func (r *StudentRepository) GetStudent(ctx context.Context, userID string) (*domain.Student, error) {
	id, ok := parseID(userID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	var (
		s   domain.Student
		uid uuid.UUID
	)
	err := r.db.QueryRow(ctx, sqlSelectStudent, id).
		Scan(&uid, &s.Username, &s.Email, &s.DisplayName, &s.TimeZone, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStudent, err)
	}
	s.ID = uid.String()
	s.CreatedAt = s.CreatedAt.UTC()
	return &s, nil
}

// ListStudentIDs returns every student id, oldest registration first
func (r *StudentRepository) ListStudentIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, sqlSelectStudentIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListStudents, err)
	}
	ids, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var id uuid.UUID
		err := row.Scan(&id)
		return id.String(), err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListStudents, err)
	}
	return ids, nil
}
