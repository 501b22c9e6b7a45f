package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dataset_assistant/internal/config"
	"dataset_assistant/internal/handlers"
	"dataset_assistant/internal/middleware"
	"dataset_assistant/internal/models"
)

// NewRouter 创建带中间件和全部路由的gin引擎
func NewRouter(cfg *config.Config, dialogSvc models.DialogService, logger *zap.Logger) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	middleware.Setup(r, logger)
	RegisterRoutes(r, cfg, dialogSvc, logger)
	return r
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, cfg *config.Config, dialogSvc models.DialogService, logger *zap.Logger) {
	handlers.RegisterRoutes(r)

	// 注册对话路由
	RegisterDialogRoutes(r, cfg.WebSocket, dialogSvc, logger)
}
