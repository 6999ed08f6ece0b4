package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"docgentor-be/internal/bootstrap"
	"docgentor-be/internal/config"
	"docgentor-be/internal/server"
	"docgentor-be/internal/tracer"
	"docgentor-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Start Background Services
	log.Println("Background: Starting audit consumer...")
	if err := container.AuditConsumer.Consume(ctx); err != nil {
		log.Printf("Audit consumer error: %v", err)
	}
	if container.ActivationMail != nil {
		if err := container.ActivationMail.Start(ctx); err != nil {
			log.Printf("Activation mailer error: %v", err)
		}
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		_ = srv.Shutdown()
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
