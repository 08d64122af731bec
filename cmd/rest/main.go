package main

import (
	"context"
	"log"

	"agri-assist-be/internal/bootstrap"
	"agri-assist-be/internal/config"
	"agri-assist-be/internal/server"
	"agri-assist-be/internal/tracer"
	"agri-assist-be/pkg/database"
)

func main() {
	// 1. Load Configuration (godotenv must run before anything reads env-backed settings)
	cfg := config.Load()

	// 2. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
