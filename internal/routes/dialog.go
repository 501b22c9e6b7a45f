package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dataset_assistant/internal/config"
	"dataset_assistant/internal/handlers"
	"dataset_assistant/internal/models"
)

// RegisterDialogRoutes 注册对话相关路由
func RegisterDialogRoutes(r *gin.Engine, wsConfig config.WebSocketConfig, dialogSvc models.DialogService, logger *zap.Logger) {
	// 创建处理器
	dialogHandler := handlers.NewDialogHandler(dialogSvc, wsConfig, logger)

	// 注册HTTP和WebSocket路由
	dialogHandler.RegisterRoutes(r)
}
