package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/johndave090909-droid/AutoScheduler/pkg/config"
	"github.com/johndave090909-droid/AutoScheduler/pkg/handlers"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	policy, err := config.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		logger.Fatal("could not load solver policy", zap.String("path", cfg.PolicyPath), zap.Error(err))
	}

	r := handlers.NewRouter(handlers.NewHandler(policy, logger))

	logger.Info("server starting", zap.String("port", cfg.Port), zap.String("lead_policy", policy.LeadPolicy))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("could not run server", zap.Error(err))
	}
}
