package badge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/event"
)

var errStoreDown = errors.New("connection refused")

type fakeTrees struct {
	mu      sync.Mutex
	byUser  map[string][]domain.Tree
	listErr error
	calls   int
}

func newFakeTrees() *fakeTrees {
	return &fakeTrees{byUser: make(map[string][]domain.Tree)}
}

func (f *fakeTrees) set(userID string, trees ...domain.Tree) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byUser[userID] = trees
}

func (f *fakeTrees) ListTrees(_ context.Context, userID string) ([]domain.Tree, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Tree(nil), f.byUser[userID]...), nil
}

func (f *fakeTrees) GetTree(_ context.Context, userID, treeID string) (*domain.Tree, error) {
	return nil, domain.ErrTreeNotFound
}

func (f *fakeTrees) CreateTree(_ context.Context, tree *domain.Tree, maxPerUser int) error {
	return nil
}

func (f *fakeTrees) AddWatering(_ context.Context, userID, treeID string, at time.Time) error {
	return nil
}

func (f *fakeTrees) AddMeasurement(_ context.Context, userID, treeID string, m domain.Measurement) error {
	return nil
}

// fakeLedger is an insert-if-absent set; failOn makes AwardBadge fail for specific ids
type fakeLedger struct {
	mu         sync.Mutex
	records    map[string]map[string]domain.EarnedBadge
	failOn     map[string]bool
	listErr    error
	awardCalls int
	listCalls  int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		records: make(map[string]map[string]domain.EarnedBadge),
		failOn:  make(map[string]bool),
	}
}

func (f *fakeLedger) ListEarnedBadges(_ context.Context, userID string) (map[string]domain.EarnedBadge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make(map[string]domain.EarnedBadge, len(f.records[userID]))
	for k, v := range f.records[userID] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeLedger) AwardBadge(_ context.Context, userID, badgeID string, category domain.BadgeCategory, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.awardCalls++
	if f.failOn[badgeID] {
		return false, fmt.Errorf("insert %s: %w", badgeID, errStoreDown)
	}
	if f.records[userID] == nil {
		f.records[userID] = make(map[string]domain.EarnedBadge)
	}
	if _, ok := f.records[userID][badgeID]; ok {
		return false, nil
	}
	f.records[userID][badgeID] = domain.EarnedBadge{UserID: userID, BadgeID: badgeID, Category: category, EarnedAt: at}
	return true, nil
}

func (f *fakeLedger) ids(userID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id := range f.records[userID] {
		ids = append(ids, id)
	}
	return ids
}

type fakeStudents struct {
	byID    map[string]domain.Student
	listErr error
}

func (f *fakeStudents) CreateStudent(_ context.Context, s *domain.Student) error {
	f.byID[s.ID] = *s
	return nil
}

func (f *fakeStudents) GetStudent(_ context.Context, userID string) (*domain.Student, error) {
	s, ok := f.byID[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &s, nil
}

func (f *fakeStudents) ListStudentIDs(_ context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var ids []string
	for id := range f.byID {
		ids = append(ids, id)
	}
	return ids, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, evt event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// Test fixture helpers

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.Add(-time.Duration(n) * 24 * time.Hour)
}

func at(day, hour int) time.Time {
	return time.Date(2024, 6, day, hour, 0, 0, 0, time.UTC)
}

func treeWith(id string, plantedAt time.Time, waterings []time.Time, heights ...float64) domain.Tree {
	t := domain.Tree{
		ID:            id,
		UserID:        "student-1",
		Name:          id,
		PlantedAt:     plantedAt,
		InitialHeight: 5,
		Waterings:     waterings,
	}
	for i, h := range heights {
		t.MeasurementLog = append(t.MeasurementLog, domain.Measurement{
			Timestamp:    plantedAt.Add(time.Duration(i) * time.Hour),
			Height:       h,
			HealthStatus: domain.HealthHealthy,
		})
	}
	return t
}

func newTestService(trees *fakeTrees, ledger *fakeLedger, pub *recordingPublisher) *service {
	if pub == nil {
		pub = &recordingPublisher{}
	}
	svc := NewService(trees, ledger, &fakeStudents{byID: map[string]domain.Student{}}, DefaultCatalog(), pub, Config{}).(*service)
	svc.now = func() time.Time { return testNow }
	return svc
}
