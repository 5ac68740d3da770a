package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sinar-terang/config"
	"sinar-terang/models"
	"sinar-terang/routes"
)

var (
	router  *gin.Engine
	initErr error
	once    sync.Once
)

// initApp builds the application once per serverless instance. Migrations are
// left to the long running server; sessions expire lazily on access here.
func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)
		config.LoadConfig()

		logger, err := config.NewLogger(config.AppConfig.AppEnv, config.AppConfig.LogLevel)
		if err != nil {
			logger = zap.NewNop()
		}

		ctx := context.Background()
		if initErr = config.ConnectDB(ctx, logger); initErr != nil {
			logger.Error("failed to connect to database", zap.Error(initErr))
			return
		}
		config.ConnectRedis(ctx, logger)

		app, err := routes.NewApp(ctx, config.AppConfig, logger)
		if err != nil {
			initErr = err
			logger.Error("failed to build application", zap.Error(err))
			return
		}
		router = app.Router
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{
			Success: false,
			Message: "Service unavailable",
			Error:   initErr.Error(),
		})
		return
	}
	router.ServeHTTP(w, r)
}
