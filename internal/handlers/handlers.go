package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册基础路由
func RegisterRoutes(r *gin.Engine) {
	// 根路由
	r.GET("/", func(c *gin.Context) {
		c.String(200, "Dataset Assistant Server Running")
	})

	// 健康检查路由
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "dataset_assistant",
			"time":    time.Now().Format(time.RFC3339),
		})
	})
}
