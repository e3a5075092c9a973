package student

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/event"
	"github.com/treedoctor/treedoctor-api/internal/logger"
	"github.com/treedoctor/treedoctor-api/internal/repository"
)

// Service handles student registration and lookup
type Service interface {
	Register(ctx context.Context, input domain.RegisterStudentInput) (*domain.Student, error)
	GetStudent(ctx context.Context, userID string) (*domain.Student, error)
}

type service struct {
	repo      repository.Students
	publisher event.Publisher
	now       func() time.Time
}

// NewService creates a new student service. publisher may be nil.
func NewService(repo repository.Students, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *service) Register(ctx context.Context, input domain.RegisterStudentInput) (*domain.Student, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	input.TimeZone = strings.TrimSpace(input.TimeZone)

	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = input.Username
	}

	student := &domain.Student{
		ID:          uuid.NewString(),
		Username:    input.Username,
		Email:       input.Email,
		DisplayName: displayName,
		TimeZone:    input.TimeZone,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.CreateStudent(ctx, student); err != nil {
		return nil, fmt.Errorf(ErrMsgCreateStudentFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgStudentRegistered, "user_id", student.ID, "username", student.Username)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event.NewStudentRegisteredEvent(*student)); err != nil {
			logger.FromContext(ctx).Warn(LogMsgPublishFailed, "user_id", student.ID, "error", err)
		}
	}
	return student, nil
}

func (s *service) GetStudent(ctx context.Context, userID string) (*domain.Student, error) {
	student, err := s.repo.GetStudent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetStudentFailed, err)
	}
	return student, nil
}

func validateRegistration(in domain.RegisterStudentInput) error {
	n := utf8.RuneCountInString(in.Username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters", domain.ErrInvalidInput, MinUsernameLength, MaxUsernameLength)
	}
	if strings.ContainsAny(in.Username, " \t\n") {
		return fmt.Errorf("%w: username must not contain whitespace", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil || !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(in.DisplayName) > MaxDisplayNameLength {
		return fmt.Errorf("%w: display name exceeds %d characters", domain.ErrInvalidInput, MaxDisplayNameLength)
	}
	if in.TimeZone != "" {
		if _, err := time.LoadLocation(in.TimeZone); err != nil {
			return fmt.Errorf("%w: unknown time zone %q", domain.ErrInvalidInput, in.TimeZone)
		}
	}
	return nil
}
