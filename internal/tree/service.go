package tree

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/event"
	"github.com/treedoctor/treedoctor-api/internal/logger"
	"github.com/treedoctor/treedoctor-api/internal/repository"
)

// Service manages a student's trees: planting, watering and the measurement log
type Service interface {
	PlantTree(ctx context.Context, userID string, input domain.PlantTreeInput) (*domain.Tree, error)
	WaterTree(ctx context.Context, userID, treeID string) (*domain.Tree, error)
	LogMeasurement(ctx context.Context, userID, treeID string, input domain.MeasurementInput) (*domain.Tree, error)
	ListTrees(ctx context.Context, userID string) ([]domain.Tree, error)
	GetTree(ctx context.Context, userID, treeID string) (*domain.Tree, error)
}

type service struct {
	trees      repository.Trees
	students   repository.Students
	publisher  event.Publisher
	maxTrees   int
	speciesFmt cases.Caser
	now        func() time.Time
}

// NewService creates a tree service. publisher may be nil.
func NewService(trees repository.Trees, students repository.Students, publisher event.Publisher, maxTreesPerUser int) Service {
	if maxTreesPerUser < 1 {
		maxTreesPerUser = 3
	}
	return &service{
		trees:      trees,
		students:   students,
		publisher:  publisher,
		maxTrees:   maxTreesPerUser,
		speciesFmt: cases.Title(language.English),
		now:        time.Now,
	}
}

func (s *service) PlantTree(ctx context.Context, userID string, input domain.PlantTreeInput) (*domain.Tree, error) {
	log := logger.FromContext(ctx)

	if err := validatePlantInput(input); err != nil {
		return nil, err
	}
	if err := s.ensureStudent(ctx, userID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	tree := &domain.Tree{
		ID:              uuid.NewString(),
		UserID:          userID,
		Name:            defaultIfBlank(input.Name, DefaultTreeName),
		Species:         s.normalizeSpecies(input.Species),
		Capsule:         input.Capsule,
		PhotoRefs:       append([]string(nil), input.PhotoRefs...),
		PlantedAt:       now,
		InitialHeight:   input.Height,
		InitialDiameter: input.Diameter,
		Waterings:       []time.Time{},
		MeasurementLog: []domain.Measurement{{
			Timestamp:    now,
			Height:       input.Height,
			Diameter:     input.Diameter,
			HealthStatus: domain.HealthHealthy,
			Note:         InitialLogNote,
			PhotoRef:     firstPhoto(input.PhotoRefs),
		}},
	}

	if err := s.trees.CreateTree(ctx, tree, s.maxTrees); err != nil {
		return nil, fmt.Errorf(ErrMsgCreateTreeFailed, err)
	}

	log.Info(LogMsgTreePlanted, "user_id", userID, "tree_id", tree.ID, "species", tree.Species)
	s.publish(ctx, event.NewTreePlantedEvent(*tree))
	return tree, nil
}

func (s *service) WaterTree(ctx context.Context, userID, treeID string) (*domain.Tree, error) {
	at := s.now().UTC()
	if err := s.trees.AddWatering(ctx, userID, treeID, at); err != nil {
		return nil, fmt.Errorf(ErrMsgAddWateringFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgTreeWatered, "user_id", userID, "tree_id", treeID)
	s.publish(ctx, event.NewTreeWateredEvent(userID, treeID, at))
	return s.GetTree(ctx, userID, treeID)
}

func (s *service) LogMeasurement(ctx context.Context, userID, treeID string, input domain.MeasurementInput) (*domain.Tree, error) {
	if input.HealthStatus == "" {
		input.HealthStatus = domain.HealthHealthy
	}
	if err := validateMeasurementInput(input); err != nil {
		return nil, err
	}

	m := domain.Measurement{
		Timestamp:    s.now().UTC(),
		Height:       input.Height,
		Diameter:     input.Diameter,
		HealthStatus: input.HealthStatus,
		Note:         strings.TrimSpace(input.Note),
		PhotoRef:     input.PhotoRef,
	}
	if err := s.trees.AddMeasurement(ctx, userID, treeID, m); err != nil {
		return nil, fmt.Errorf(ErrMsgAddMeasurementFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgMeasurementAdded,
		"user_id", userID, "tree_id", treeID, "height", m.Height, "health_status", m.HealthStatus)
	s.publish(ctx, event.NewTreeMeasuredEvent(userID, treeID, m))
	return s.GetTree(ctx, userID, treeID)
}

func (s *service) ListTrees(ctx context.Context, userID string) ([]domain.Tree, error) {
	trees, err := s.trees.ListTrees(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListTreesFailed, err)
	}
	if trees == nil {
		trees = []domain.Tree{}
	}
	return trees, nil
}

func (s *service) GetTree(ctx context.Context, userID, treeID string) (*domain.Tree, error) {
	tree, err := s.trees.GetTree(ctx, userID, treeID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetTreeFailed, err)
	}
	return tree, nil
}

func (s *service) ensureStudent(ctx context.Context, userID string) error {
	if s.students == nil {
		return nil
	}
	if _, err := s.students.GetStudent(ctx, userID); err != nil {
		return fmt.Errorf(ErrMsgLookupStudentFailed, err)
	}
	return nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	// The tree action already succeeded; event delivery never changes that
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}

// normalizeSpecies title-cases each word, e.g. "sugar maple" -> "Sugar Maple"
func (s *service) normalizeSpecies(species string) string {
	species = strings.Join(strings.Fields(species), " ")
	if species == "" {
		return DefaultSpecies
	}
	return s.speciesFmt.String(species)
}

func defaultIfBlank(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func firstPhoto(refs []string) *string {
	if len(refs) == 0 {
		return nil
	}
	ref := refs[0]
	return &ref
}
