package badge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/treedoctor/treedoctor-api/internal/concurrency"
	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/event"
	"github.com/treedoctor/treedoctor-api/internal/logger"
	"github.com/treedoctor/treedoctor-api/internal/metrics"
	"github.com/treedoctor/treedoctor-api/internal/repository"
)

// Service evaluates and presents achievement badges
type Service interface {
	// CheckAndAward reads the student's trees and ledger, awards every newly
	// qualifying badge and reports what happened. Only a failure to read the
	// store is returned as an error; failed awards are listed in the result.
	CheckAndAward(ctx context.Context, userID string) (*domain.EvaluationResult, error)
	GetUserBadges(ctx context.Context, userID string) (*domain.BadgeSummary, error)
	GetCatalog() *Catalog
	// EvaluateAll runs CheckAndAward for every student
	EvaluateAll(ctx context.Context) (*SweepResult, error)
}

// ErrNoStudentStore is returned by EvaluateAll when the service was built without students
var ErrNoStudentStore = errors.New(ErrMsgNoStudentStore)

// Config holds evaluation settings
type Config struct {
	WateringMode    WateringCountMode
	DefaultLocation *time.Location
}

// SweepResult summarises an EvaluateAll run
type SweepResult struct {
	Students int `json:"students"`
	Awarded  int `json:"awarded"`
	Failed   int `json:"failed"`
	Aborted  int `json:"aborted"`
}

type service struct {
	trees     repository.Trees
	ledger    repository.Ledger
	students  repository.Students
	catalog   *Catalog
	publisher event.Publisher
	locks     *concurrency.LockManager
	config    Config
	now       func() time.Time
}

// NewService creates a badge service. publisher may be nil.
func NewService(
	trees repository.Trees,
	ledger repository.Ledger,
	students repository.Students,
	catalog *Catalog,
	publisher event.Publisher,
	config Config,
) Service {
	if config.DefaultLocation == nil {
		config.DefaultLocation = time.UTC
	}
	if config.WateringMode == "" {
		config.WateringMode = WateringModeLegacy
	}
	return &service{
		trees:     trees,
		ledger:    ledger,
		students:  students,
		catalog:   catalog,
		publisher: publisher,
		locks:     concurrency.NewLockManager(),
		config:    config,
		now:       time.Now,
	}
}

func (s *service) GetCatalog() *Catalog {
	return s.catalog
}

func (s *service) CheckAndAward(ctx context.Context, userID string) (*domain.EvaluationResult, error) {
	var result *domain.EvaluationResult
	err := s.locks.Do(userID, func() error {
		var err error
		result, err = s.checkAndAward(ctx, userID)
		return err
	})
	return result, err
}

func (s *service) checkAndAward(ctx context.Context, userID string) (*domain.EvaluationResult, error) {
	log := logger.FromContext(ctx).With("user_id", userID)
	start := time.Now()
	defer func() {
		metrics.BadgeEvaluationDuration.Observe(time.Since(start).Seconds())
	}()

	log.Debug(LogMsgEvaluationStarted)

	trees, earned, loc, err := s.load(ctx, userID)
	if err != nil {
		metrics.BadgeEvaluations.WithLabelValues(metrics.ResultAborted).Inc()
		log.Error(LogMsgEvaluationAborted, "error", err)
		return nil, err
	}

	now := s.now()
	m := Aggregate(trees, now, loc, s.config.WateringMode)
	qualified := Evaluate(m, trees, s.catalog, earned)

	result := &domain.EvaluationResult{
		UserID:         userID,
		CatalogVersion: s.catalog.Version(),
		Metrics:        m,
		Awarded:        []domain.EarnedBadge{},
		AlreadyEarned:  len(earned),
	}

	for _, def := range qualified {
		inserted, err := s.ledger.AwardBadge(ctx, userID, def.ID, def.Category, now)
		if err != nil {
			log.Warn(LogMsgAwardFailed, "badge_id", def.ID, "error", err)
			metrics.BadgeAwardFailures.WithLabelValues(def.ID).Inc()
			result.Failed = append(result.Failed, describeFailure(def, err))
			continue
		}
		if !inserted {
			// Another evaluation got there first
			result.AlreadyEarned++
			continue
		}

		record := domain.EarnedBadge{UserID: userID, BadgeID: def.ID, Category: def.Category, EarnedAt: now}
		result.Awarded = append(result.Awarded, record)
		log.Info(LogMsgBadgeAwarded, "badge_id", def.ID, "category", def.Category)
		s.publish(ctx, record, def)
	}

	outcome := metrics.ResultSuccess
	if len(result.Failed) > 0 {
		outcome = metrics.ResultPartial
	}
	metrics.BadgeEvaluations.WithLabelValues(outcome).Inc()

	log.Debug(LogMsgEvaluationCompleted,
		"awarded", len(result.Awarded),
		"failed", len(result.Failed),
		"total_waterings", m.TotalWaterings,
		"max_height", m.MaxHeight,
		"oldest_tree_age_days", m.OldestTreeAgeDays)

	return result, nil
}

// load reads everything an evaluation needs. Any store failure is ErrStoreRead.
func (s *service) load(ctx context.Context, userID string) ([]domain.Tree, map[string]domain.EarnedBadge, *time.Location, error) {
	trees, err := s.trees.ListTrees(ctx, userID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf(ErrMsgListTreesFailed, domain.ErrStoreRead, userID, err)
	}

	earned, err := s.ledger.ListEarnedBadges(ctx, userID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf(ErrMsgListLedgerFailed, domain.ErrStoreRead, userID, err)
	}
	if earned == nil {
		earned = map[string]domain.EarnedBadge{}
	}

	loc, err := s.location(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}

	return trees, earned, loc, nil
}

// location resolves the student's time zone, falling back to the configured default
func (s *service) location(ctx context.Context, userID string) (*time.Location, error) {
	if s.students == nil {
		return s.config.DefaultLocation, nil
	}

	student, err := s.students.GetStudent(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return s.config.DefaultLocation, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get student %s: %v", domain.ErrStoreRead, userID, err)
	}

	if student.TimeZone == "" {
		return s.config.DefaultLocation, nil
	}
	loc, err := time.LoadLocation(student.TimeZone)
	if err != nil {
		logger.FromContext(ctx).Warn("Unknown student time zone, using default",
			"user_id", userID, "time_zone", student.TimeZone)
		return s.config.DefaultLocation, nil
	}
	return loc, nil
}

func (s *service) publish(ctx context.Context, record domain.EarnedBadge, def domain.BadgeDefinition) {
	if s.publisher == nil {
		return
	}
	evt := event.NewBadgeAwardedEvent(record, def, s.catalog.Version())
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "badge_id", def.ID, "error", err)
	}
}

func (s *service) GetUserBadges(ctx context.Context, userID string) (*domain.BadgeSummary, error) {
	trees, earned, loc, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	m := Aggregate(trees, s.now(), loc, s.config.WateringMode)

	summary := &domain.BadgeSummary{
		UserID:         userID,
		CatalogVersion: s.catalog.Version(),
		Total:          s.catalog.Len(),
	}

	for _, info := range s.catalog.Categories() {
		cat := domain.CategorySummary{CategoryInfo: info, Badges: []domain.BadgeStatus{}}
		for _, def := range s.catalog.ByCategory(info.Category) {
			status := domain.BadgeStatus{BadgeDefinition: def}
			if rec, ok := earned[def.ID]; ok {
				at := rec.EarnedAt
				status.Earned = true
				status.EarnedAt = &at
				cat.Earned++
			} else if def.IsSecret {
				status.Description = SecretPlaceholder
			}
			status.Progress = Progress(def, m, status.Earned)
			cat.Total++
			cat.Badges = append(cat.Badges, status)
		}
		summary.Earned += cat.Earned
		summary.Categories = append(summary.Categories, cat)
	}

	return summary, nil
}

func (s *service) EvaluateAll(ctx context.Context) (*SweepResult, error) {
	if s.students == nil {
		return nil, ErrNoStudentStore
	}

	log := logger.FromContext(ctx)
	log.Info(LogMsgSweepStarted)

	ids, err := s.students.ListStudentIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListStudentsFailed, err)
	}

	res := &SweepResult{Students: len(ids)}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		r, err := s.CheckAndAward(ctx, id)
		if err != nil {
			log.Warn(LogMsgSweepUserFailed, "user_id", id, "error", err)
			res.Aborted++
			continue
		}
		res.Awarded += len(r.Awarded)
		res.Failed += len(r.Failed)
	}

	log.Info(LogMsgSweepCompleted,
		"students", res.Students,
		"awarded", res.Awarded,
		"failed", res.Failed,
		"aborted", res.Aborted)
	return res, nil
}
