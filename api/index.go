package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/johndave090909-droid/AutoScheduler/pkg/config"
	"github.com/johndave090909-droid/AutoScheduler/pkg/handlers"
	"go.uber.org/zap"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	config.LoadEnv()
	cfg := config.Load()

	logger, err := cfg.NewLogger()
	if err != nil {
		logger = zap.NewNop()
	}

	policy, err := config.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		logger.Error("falling back to default solver policy", zap.String("path", cfg.PolicyPath), zap.Error(err))
		policy = config.DefaultPolicy()
	}

	gin.SetMode(gin.ReleaseMode)
	r = handlers.NewRouter(handlers.NewHandler(policy, logger))
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
