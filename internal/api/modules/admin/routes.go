package admin

import (
	"github.com/gin-gonic/gin"
)

// Register routes for the admin module
func RegisterRoutes(g *gin.RouterGroup) {
	// Create base group for admin routes
	group := g.Group("/admin")

	group.GET("/transcripts", ListTranscripts)
	group.GET("/transcripts/:filename", DownloadTranscript)
}
