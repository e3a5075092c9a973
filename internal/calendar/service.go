package calendar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/logger"
	"github.com/treedoctor/treedoctor-api/internal/repository"
)

// BadgeSummaries is the part of the badge service the dashboard needs
type BadgeSummaries interface {
	GetUserBadges(ctx context.Context, userID string) (*domain.BadgeSummary, error)
}

// Service builds read-only views over a student's tree activity
type Service interface {
	// GetMonth returns the plant, water and measure events for a month.
	// An empty month means the current month in the student's time zone.
	GetMonth(ctx context.Context, userID, month string) (*domain.CalendarMonth, error)
	GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error)
}

type service struct {
	trees    repository.Trees
	students repository.Students
	badges   BadgeSummaries
	loc      *time.Location
	now      func() time.Time
}

// NewService creates a calendar service. defaultLoc is used for students without a time zone.
func NewService(trees repository.Trees, students repository.Students, badges BadgeSummaries, defaultLoc *time.Location) Service {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &service{
		trees:    trees,
		students: students,
		badges:   badges,
		loc:      defaultLoc,
		now:      time.Now,
	}
}

func (s *service) GetMonth(ctx context.Context, userID, month string) (*domain.CalendarMonth, error) {
	loc, err := s.location(ctx, userID)
	if err != nil {
		return nil, err
	}

	start, err := monthStart(month, s.now(), loc)
	if err != nil {
		return nil, err
	}
	end := start.AddDate(0, 1, 0)

	trees, err := s.trees.ListTrees(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListTreesFailed, err)
	}

	cal := &domain.CalendarMonth{
		UserID: userID,
		Month:  start.Format(MonthLayout),
		Days:   make(map[string][]domain.CalendarEvent),
	}
	add := func(e domain.CalendarEvent) {
		local := e.At.In(loc)
		if local.Before(start) || !local.Before(end) {
			return
		}
		key := local.Format(DateKeyLayout)
		cal.Days[key] = append(cal.Days[key], e)
	}

	for _, tree := range trees {
		add(domain.CalendarEvent{Type: domain.CalendarEventPlant, TreeID: tree.ID, TreeName: tree.Name, At: tree.PlantedAt})
		for _, w := range tree.Waterings {
			add(domain.CalendarEvent{Type: domain.CalendarEventWater, TreeID: tree.ID, TreeName: tree.Name, At: w})
		}
		for _, m := range tree.MeasurementLog {
			height, diameter := m.Height, m.Diameter
			add(domain.CalendarEvent{
				Type:         domain.CalendarEventMeasure,
				TreeID:       tree.ID,
				TreeName:     tree.Name,
				At:           m.Timestamp,
				Height:       &height,
				Diameter:     &diameter,
				HealthStatus: m.HealthStatus,
			})
		}
	}

	for _, events := range cal.Days {
		sort.SliceStable(events, func(i, j int) bool { return events[i].At.Before(events[j].At) })
	}

	logger.FromContext(ctx).Debug(LogMsgCalendarBuilt, "user_id", userID, "month", cal.Month, "days", len(cal.Days))
	return cal, nil
}

func (s *service) GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	trees, err := s.trees.ListTrees(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListTreesFailed, err)
	}

	now := s.now()
	dash := &domain.Dashboard{
		UserID: userID,
		Trees:  make([]domain.TreeOverview, 0, len(trees)),
	}
	for _, tree := range trees {
		overview := domain.TreeOverview{
			TreeID:         tree.ID,
			Name:           tree.Name,
			Species:        tree.Species,
			PlantedAt:      tree.PlantedAt,
			AgeDays:        ageDays(tree.PlantedAt, now),
			Latest:         tree.LatestMeasurement(),
			TimesWatered:   len(tree.Waterings),
			LastWatered:    tree.LastWatered(),
			LogCount:       len(tree.MeasurementLog),
			LatestPhotoRef: latestPhoto(tree),
		}
		dash.Trees = append(dash.Trees, overview)
		dash.TotalWaterings += overview.TimesWatered
		dash.TotalLogs += overview.LogCount
	}

	if s.badges != nil {
		summary, err := s.badges.GetUserBadges(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgBadgeSummaryFailed, err)
		}
		dash.BadgesEarned = summary.Earned
		dash.BadgesTotal = summary.Total
	}

	logger.FromContext(ctx).Debug(LogMsgDashboardBuilt, "user_id", userID, "trees", len(dash.Trees))
	return dash, nil
}

func (s *service) location(ctx context.Context, userID string) (*time.Location, error) {
	if s.students == nil {
		return s.loc, nil
	}
	student, err := s.students.GetStudent(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return s.loc, nil
		}
		return nil, fmt.Errorf(ErrMsgLookupStudent, err)
	}
	if student.TimeZone == "" {
		return s.loc, nil
	}
	loc, err := time.LoadLocation(student.TimeZone)
	if err != nil {
		return s.loc, nil
	}
	return loc, nil
}

func monthStart(month string, now time.Time, loc *time.Location) (time.Time, error) {
	if month == "" {
		local := now.In(loc)
		return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc), nil
	}
	parsed, err := time.ParseInLocation(MonthLayout, month, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month must be YYYY-MM", domain.ErrInvalidInput)
	}
	return parsed, nil
}

func ageDays(planted, now time.Time) int {
	if now.Before(planted) {
		return 0
	}
	return int(now.Sub(planted) / (24 * time.Hour))
}

// latestPhoto prefers the newest log photo, then the photos taken at planting
func latestPhoto(tree domain.Tree) *string {
	var best *domain.Measurement
	for i := range tree.MeasurementLog {
		m := &tree.MeasurementLog[i]
		if m.PhotoRef == nil {
			continue
		}
		if best == nil || !m.Timestamp.Before(best.Timestamp) {
			best = m
		}
	}
	if best != nil {
		ref := *best.PhotoRef
		return &ref
	}
	if len(tree.PhotoRefs) > 0 {
		ref := tree.PhotoRefs[0]
		return &ref
	}
	return nil
}
