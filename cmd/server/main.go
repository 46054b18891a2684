package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/httpserver"
	"taskboard/internal/mqhandler"
	"taskboard/internal/repository"
	"taskboard/internal/schedule"
	authsvc "taskboard/internal/service/auth"
	"taskboard/internal/service/scheduling"
	"taskboard/pkg/db"
	"taskboard/pkg/logger"
	"taskboard/pkg/mq"
	"taskboard/pkg/redis"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting taskboard scheduler...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("mq_url", cfg.MQ.URL),
		zap.String("http_port", cfg.Server.Port),
	)

	// DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	// Redis (reference cache)
	rdb := redis.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	// MQ publisher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("Failed to init MQ publisher", zap.Error(err))
	}
	defer publisher.Close()

	// Repositories
	refRepo := repository.NewReferenceRepository(dbConn, log)
	projectRepo := repository.NewProjectRepository(dbConn, log)
	taskRepo := repository.NewTaskRepository(dbConn, log)
	userRepo := repository.NewUserRepository(dbConn)

	// Services
	rules := schedule.Rules{
		WorkdayStartHour:     cfg.Scheduling.WorkdayStartHour,
		WorkdayEndHour:       cfg.Scheduling.WorkdayEndHour,
		WorkingHoursPerDay:   cfg.Scheduling.WorkingHoursPerDay,
		OverduePriorityFloor: cfg.Scheduling.OverduePriorityFloor,
		OverdueHorizon:       time.Duration(cfg.Scheduling.OverdueHorizonHours * float64(time.Hour)),
	}
	schedService := scheduling.NewService(
		refRepo, projectRepo, taskRepo,
		publisher, rdb,
		rules, cfg.Scheduling.CacheTTL(),
		log,
	)
	authService := authsvc.NewService(userRepo, cfg.JWT.Secret)

	// MQ Consumer for task.created
	createdHandler := mqhandler.NewTaskCreatedHandler(schedService, log)
	createdConsumer, err := mq.NewConsumer(cfg.MQ.URL, "task.created.q", "task.created", log)
	if err != nil {
		log.Fatal("Failed to init task.created consumer", zap.Error(err))
	}
	defer createdConsumer.Close()
	createdConsumer.SetHandler(createdHandler.Handle)
	go func() {
		log.Info("Starting task.created consumer...")
		if err := createdConsumer.StartConsuming(); err != nil {
			log.Fatal("task.created consumer failed", zap.Error(err))
		}
	}()

	// MQ Consumer for task.changed (the store's change feed)
	changedHandler := mqhandler.NewTaskChangedHandler(schedService, log)
	changedConsumer, err := mq.NewConsumer(cfg.MQ.URL, "task.changed.q", "task.changed", log)
	if err != nil {
		log.Fatal("Failed to init task.changed consumer", zap.Error(err))
	}
	defer changedConsumer.Close()
	changedConsumer.SetHandler(changedHandler.Handle)
	go func() {
		log.Info("Starting task.changed consumer...")
		if err := changedConsumer.StartConsuming(); err != nil {
			log.Fatal("task.changed consumer failed", zap.Error(err))
		}
	}()

	// HTTP Server
	authHandler := handler.NewAuthHandler(authService, log)
	scheduleHandler := handler.NewScheduleHandler(schedService, log)
	queueHandler := handler.NewQueueHandler(schedService, log)
	router := httpserver.NewRouter(authHandler, scheduleHandler, queueHandler, cfg.JWT.Secret, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("taskboard scheduler is fully initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully...")

	createdConsumer.Stop()
	changedConsumer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	log.Info("taskboard scheduler shutdown complete")
}
