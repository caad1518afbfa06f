package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"parish-portal-be/internal/bootstrap"
	"parish-portal-be/internal/config"
	"parish-portal-be/internal/server"
	"parish-portal-be/internal/tracer"
	"parish-portal-be/pkg/database"
)

const janitorInterval = time.Hour

func main() {
	// 1. Load configuration
	cfg := config.Load()

	// 2. Initialize database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.LogLevelFor(cfg.App.Environment))
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap dependencies
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	shutdownTracer := tracer.InitTracer(container.Logger)
	defer shutdownTracer(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 4. Start background services
	if err := container.MailConsumer.Consume(ctx); err != nil {
		log.Panicf("Unable to start mail consumer: %v", err)
	}
	if container.AuditService != nil {
		if err := container.AuditService.Start(ctx); err != nil {
			container.Logger.Warn("MAIN", "Audit subscriber not started", map[string]interface{}{"error": err.Error()})
		}
	}
	go container.AnnouncementJanitor.RunJanitor(ctx, janitorInterval)

	// 5. Serve until a signal arrives
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			container.Logger.Error("MAIN", "Shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
