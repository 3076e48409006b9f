package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/metrics"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/seed"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine      *gin.Engine
	DB          *gorm.DB
	Config      *config.Config
	Coordinator *board.Coordinator
	Log         *logrus.Entry
}

func Init(cfg *config.Config, log *logrus.Entry) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := board.PolicyByName(cfg.WIPPolicy)
	if err != nil {
		return nil, err
	}

	columns, tasks, err := loadSeed(cfg)
	if err != nil {
		return nil, err
	}

	var (
		db    *gorm.DB
		store board.Store
		b     *board.Board
	)
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		log.Info("Connected to database")

		repo := repository.NewBoardRepository(db)
		b, err = loadPersistedBoard(context.Background(), repo, columns, tasks, log)
		if err != nil {
			return nil, err
		}
		store = repo
	default:
		b, err = board.New(columns, tasks)
		if err != nil {
			return nil, fmt.Errorf("build board: %w", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)
	collector.ObserveSnapshot(b.Snapshot())

	coordinator := board.NewCoordinator(b,
		board.WithPolicy(policy),
		board.WithStore(store),
		board.WithObserver(collector),
		board.WithLogger(log.WithField("component", "board")),
	)

	return &Server{
		Engine:      NewRouter(cfg, coordinator, collector, reg, log),
		DB:          db,
		Config:      cfg,
		Coordinator: coordinator,
		Log:         log,
	}, nil
}

// NewRouter wires the HTTP routes around a coordinator.
func NewRouter(cfg *config.Config, coordinator *board.Coordinator, collector *metrics.Collector, gatherer prometheus.Gatherer, log *logrus.Entry) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.CustomRecovery(recoverInvariant(log)),
		middleware.RequestLogger(log),
		collector.Middleware(),
	)

	boardHandler := handler.NewBoardHandler(coordinator, board.NewProjector(time.Now))
	taskHandler := handler.NewTaskHandler(coordinator, log)

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Query API
	r.GET("/board", boardHandler.GetSnapshot)
	r.GET("/board/view", boardHandler.GetView)
	r.GET("/tasks/:id/column", taskHandler.GetColumn)

	// Command API
	commands := r.Group("/")
	if cfg.AuthEnabled() {
		commands.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	}
	{
		commands.POST("/tasks/:id/move", taskHandler.MoveTask)
	}

	return r
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Log.Infof("Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Log.Fatalf("Failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Fatalf("Server forced to shutdown: %s", err)
	}

	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	s.Log.Info("Server exited properly")
}

func loadSeed(cfg *config.Config) ([]model.Column, []model.Task, error) {
	if cfg.BoardSeedFile == "" {
		columns, tasks := seed.Default(time.Now())
		return columns, tasks, nil
	}
	return seed.Load(cfg.BoardSeedFile)
}

// boardStore is the part of repository.BoardRepository used at startup.
type boardStore interface {
	AutoMigrate(ctx context.Context) error
	IsEmpty(ctx context.Context) (bool, error)
	Seed(ctx context.Context, columns []model.Column, tasks []model.Task) error
	LoadColumns(ctx context.Context) ([]model.Column, error)
	LoadTasks(ctx context.Context) ([]model.Task, error)
	ResetPositions(ctx context.Context, s board.Snapshot) error
}

var _ boardStore = (*repository.BoardRepository)(nil)

// loadPersistedBoard migrates the schema, seeds an empty database and
// builds the board from what is stored.
func loadPersistedBoard(ctx context.Context, repo boardStore, columns []model.Column, tasks []model.Task, log *logrus.Entry) (*board.Board, error) {
	if err := repo.AutoMigrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	empty, err := repo.IsEmpty(ctx)
	if err != nil {
		return nil, fmt.Errorf("check board: %w", err)
	}
	if empty {
		// Validate before writing anything.
		if _, err := board.New(columns, tasks); err != nil {
			return nil, fmt.Errorf("seed board: %w", err)
		}
		if err := repo.Seed(ctx, columns, tasks); err != nil {
			return nil, fmt.Errorf("seed board: %w", err)
		}
		log.WithField("tasks", len(tasks)).Info("Seeded empty database")
	}

	storedColumns, err := repo.LoadColumns(ctx)
	if err != nil {
		return nil, fmt.Errorf("load columns: %w", err)
	}
	storedTasks, err := repo.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	b, err := board.New(storedColumns, storedTasks)
	if err != nil {
		return nil, fmt.Errorf("build board: %w", err)
	}
	if err := repo.ResetPositions(ctx, b.Snapshot()); err != nil {
		return nil, fmt.Errorf("normalize positions: %w", err)
	}
	return b, nil
}

// recoverInvariant turns a broken board into a process exit. Any other
// panic becomes a 500.
func recoverInvariant(log *logrus.Entry) gin.RecoveryFunc {
	return func(c *gin.Context, recovered interface{}) {
		if v, ok := recovered.(board.InvariantViolation); ok {
			log.WithField("path", c.Request.URL.Path).Fatal(v.Error())
			return
		}
		log.WithField("panic", recovered).Error("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, handler.ErrorResponse{Error: "Internal server error"})
	}
}
