package interview_module

import (
	"github.com/gin-gonic/gin"
)

// Register routes for the interview module
func RegisterRoutes(g *gin.RouterGroup) {
	// Create base group for interview routes
	group := g.Group("/interview")

	// Session brokering
	group.POST("/sessions", CreateSession)

	// Live transcript views
	group.GET("/sessions", GetSessions)
	group.GET("/sessions/:id", GetSession)
	group.GET("/sessions/:id/csv", DownloadSessionCSV)

	// Transcript recording
	group.POST("/sessions/:id/turns", AppendTurn)
	group.POST("/sessions/:id/complete", CompleteSession)
}
