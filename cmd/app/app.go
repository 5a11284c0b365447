package app

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/qmikke-api/internal/api"
	"github.com/vietanh2810/qmikke-api/internal/config"
	"github.com/vietanh2810/qmikke-api/internal/db"
	"github.com/vietanh2810/qmikke-api/internal/jobs"
	"github.com/vietanh2810/qmikke-api/internal/logger"
	"github.com/vietanh2810/qmikke-api/internal/metrics"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml", func(c *config.AppConfig) {
		if err := logger.SetLevel(c.API.LogLevel); err != nil {
			zap.L().Warn("keeping log level", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	if err = logger.SetLevel(conf.API.LogLevel); err != nil {
		return fmt.Errorf("failed to set log level -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	var rdb *redis.Client
	rdb, err = db.OpenRedis(context.Background(), conf.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize redis -> %w", err)
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	s := api.NewServer(conf, postgresDB, rdb)

	gauge := jobs.NewGoalGaugeJob(s.Totalize, metrics.SetOpenEventGoals, conf.Rally.GaugeSchedule)
	if err = gauge.Start(); err != nil {
		return fmt.Errorf("failed to start goal gauge job -> %w", err)
	}
	defer gauge.Stop()

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
