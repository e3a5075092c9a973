package bootstrap

import (
	"fmt"

	"github.com/treedoctor/treedoctor-api/internal/badge"
	"github.com/treedoctor/treedoctor-api/internal/calendar"
	"github.com/treedoctor/treedoctor-api/internal/config"
	"github.com/treedoctor/treedoctor-api/internal/event"
	"github.com/treedoctor/treedoctor-api/internal/server"
	"github.com/treedoctor/treedoctor-api/internal/student"
	"github.com/treedoctor/treedoctor-api/internal/tree"
)

// InitializeServices wires the domain services over the repositories. All
// services publish through the same publisher.
func InitializeServices(cfg *config.Config, repos *Repositories, catalog *badge.Catalog, publisher event.Publisher) (server.Services, error) {
	mode, err := badge.ParseWateringCountMode(cfg.BadgeWateringMode)
	if err != nil {
		return server.Services{}, fmt.Errorf("%s: %w", ErrMsgInvalidWatering, err)
	}

	badgeService := badge.NewService(repos.Trees, repos.Ledger, repos.Students, catalog, publisher, badge.Config{
		WateringMode:    mode,
		DefaultLocation: cfg.Location(),
	})

	return server.Services{
		Students: student.NewService(repos.Students, publisher),
		Trees:    tree.NewService(repos.Trees, repos.Students, publisher, cfg.MaxTreesPerUser),
		Badges:   badgeService,
		Calendar: calendar.NewService(repos.Trees, repos.Students, badgeService, cfg.Location()),
	}, nil
}
