// Package app wires configuration, database, services and the HTTP router
// into one explicitly constructed application context.
package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"tech-booking-server/config"
	"tech-booking-server/database"
	"tech-booking-server/middleware"
	"tech-booking-server/routes"
	"tech-booking-server/services"
	"tech-booking-server/web"
)

type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Sessions *services.SessionService
	Router   *gin.Engine
}

// New opens the database, migrates it, seeds the service catalog and builds
// the router.
func New(cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}

	a, err := build(cfg, db)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return a, nil
}

func build(cfg *config.Config, db *gorm.DB) (*App, error) {
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	if err := database.SeedServices(db); err != nil {
		return nil, err
	}

	setGinMode(cfg.Server.GinMode)

	sessions := services.NewSessionService(cfg.Session)
	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.SecurityHeaders(cfg.IsProduction()),
		middleware.CORS(cfg.CORS),
		middleware.BodyLimit(cfg.Server.MaxContentSize),
	)
	if err := web.Load(router); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	routes.NewHandler(cfg, sessions).RegisterRoutes(router, db)

	return &App{
		Config:   cfg,
		DB:       db,
		Sessions: sessions,
		Router:   router,
	}, nil
}

// Close releases the database connections.
func (a *App) Close() error {
	log.Info().Msg("Closing database connections")
	return database.Close(a.DB)
}

func setGinMode(mode string) {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(mode)
	default:
		log.Warn().Str("mode", mode).Msg("Unknown GIN_MODE, using release")
		gin.SetMode(gin.ReleaseMode)
	}
}
