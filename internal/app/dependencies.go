package app

import (
	"database/sql"
	"time"

	"github.com/spacecal/spacecal/internal/auth"
	"github.com/spacecal/spacecal/internal/config"
	"github.com/spacecal/spacecal/internal/utils"
	"github.com/spacecal/spacecal/pkg/calendar"
	"github.com/spacecal/spacecal/pkg/event"
	"github.com/spacecal/spacecal/pkg/export"
	"github.com/spacecal/spacecal/pkg/space"
	"github.com/spacecal/spacecal/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	SpaceRepo    space.Repository
	SpaceService *space.Service
	SpaceHandler *space.Handler

	EventRepo    event.Repository
	EventService event.Service
	EventHandler *event.Handler

	CalendarManager *calendar.StoreManager
	CalendarHandler *calendar.Handler

	Exporter      *export.Exporter
	ExportHandler *export.Handler

	TokenService *auth.TokenService
	OAuth        *auth.OAuth

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.SpaceRepo = space.NewRepository(db)
	deps.SpaceService = space.NewService(deps.SpaceRepo)
	deps.SpaceHandler = space.NewHandler(deps.SpaceService)

	deps.EventRepo = event.NewEventRepo(db)
	deps.EventService = event.NewEventService(deps.EventRepo)
	deps.EventHandler = event.NewEventHandler(deps.EventService)

	settleDelay := time.Duration(cfg.Sync.SettleDelayMs) * time.Millisecond
	deps.CalendarManager = calendar.NewStoreManager(deps.EventService, deps.SpaceService, deps.Clock, settleDelay)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarManager)

	deps.Exporter = export.NewExporter(deps.EventService)
	deps.ExportHandler = export.NewHandler(deps.Exporter)

	deps.TokenService = auth.NewTokenService(cfg.Auth, deps.Clock)
	deps.OAuth = auth.NewOAuth(cfg, deps.UserService, deps.SpaceService, deps.TokenService, deps.CalendarManager)

	return deps
}
