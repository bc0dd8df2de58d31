package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/medicmanager/clinic-api/internal/config"
	v1 "github.com/medicmanager/clinic-api/internal/handler/v1"
	"github.com/medicmanager/clinic-api/internal/lock"
	"github.com/medicmanager/clinic-api/internal/repository"
	"github.com/medicmanager/clinic-api/internal/service"
	"github.com/medicmanager/clinic-api/pkg/database"
	"github.com/medicmanager/clinic-api/pkg/logger"
	"github.com/medicmanager/clinic-api/pkg/metrics"
	"github.com/medicmanager/clinic-api/pkg/tracer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("starting clinic-api",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		zlog.Fatal("tracer init failed", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(shutdownCtx)
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db, zlog); err != nil {
		zlog.Fatal("database migration failed", zap.Error(err))
	}

	m := metrics.NewCollector("clinic_api")

	sqlDB, err := db.DB()
	if err != nil {
		zlog.Fatal("getting sql.DB failed", zap.Error(err))
	}
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-rootCtx.Done():
				return
			case <-ticker.C:
				m.DBConnections.Set(float64(sqlDB.Stats().OpenConnections))
			}
		}
	}()

	locker := lock.NewNoopLocker()
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(rootCtx).Err(); err != nil {
			zlog.Fatal("redis connection failed", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
		locker = lock.NewRedisSlotLocker(rdb, cfg.Redis.LockTTL)
		zlog.Info("slot locking enabled", zap.String("redis_addr", cfg.Redis.Addr))
	}

	appointmentRepo := repository.NewAppointmentRepository(db)
	practitionerRepo := repository.NewPractitionerRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auditSvc := service.NewAuditService(auditRepo, zlog, m)
	defer auditSvc.Shutdown()

	appointmentSvc := service.NewAppointmentService(appointmentRepo, practitionerRepo, patientRepo, locker, auditSvc, m, zlog)
	practitionerSvc := service.NewPractitionerService(practitionerRepo, auditSvc, m, zlog)
	patientSvc := service.NewPatientService(patientRepo, appointmentRepo, auditSvc, m, zlog)

	router := v1.NewRouter(cfg, zlog, m,
		v1.NewAppointmentHandler(appointmentSvc, zlog),
		v1.NewPractitionerHandler(practitionerSvc, zlog),
		v1.NewPatientHandler(patientSvc, zlog),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zlog.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-rootCtx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("http server shutdown failed", zap.Error(err))
	}
}
