package routes

import (
	"github.com/gin-gonic/gin"
	"video2csv/internal/api/v1/handlers"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, transcriptionHandler *handlers.TranscriptionHandler) {
	router.POST("/transcriptions", transcriptionHandler.Create)
	router.GET("/exports/:name", transcriptionHandler.Download)
}
