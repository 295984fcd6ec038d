package pages

import "github.com/gin-gonic/gin"

// Register routes for the browser-facing pages. These mount at the engine
// root, not under the API group
func RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/", Index)
	g.GET("/app.js", AppJS)
}
