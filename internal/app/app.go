package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zarandamon/usd-mercury-pipeline/internal/data/db"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	sqlite, err := db.NewSQLiteService(db.ProjectDBPath(cfg.ProjectRoot), log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init sqlite: %w", err)
	}
	if err := db.Initialize(sqlite.DB()); err != nil {
		log.Sync()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	theDB := sqlite.DB()

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(log, cfg, reposet)
	handlerset := wireHandlers(log, serviceset)
	router := wireRouter(handlerset)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

func (a *App) Run() error {
	addr := fmt.Sprintf(":%d", a.Cfg.Port)
	a.Log.Info("Starting server", "addr", addr)
	return a.Router.Run(addr)
}
