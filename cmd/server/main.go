package main

import (
	_ "taskboard/docs"
	"taskboard/internal/config"
	"taskboard/internal/logger"
	"taskboard/internal/server"
)

// @title           Task Board API
// @version         1.0
// @description     Kanban board engine: board snapshots, WIP-limited task moves and the dashboard view.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	l := logger.New("taskboard", cfg.LogLevel, cfg.LogFormat)

	s, err := server.Init(cfg, l)
	if err != nil {
		l.WithError(err).Fatal("❌ Server initialization failed")
	}

	s.Run()
}
