package pages

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mtopaz/usc-workshop-aria/internal/interview"
	"github.com/mtopaz/usc-workshop-aria/internal/web"
	"github.com/mtopaz/usc-workshop-aria/pkg/utils"
)

var gate *interview.Gate

// Init creates the availability gate the landing page switches on
func Init(cfg *utils.Config) error {
	g, err := interview.NewGate(cfg)
	if err != nil {
		return err
	}

	gate = g
	return nil
}

// Method: GET
// Serves the interview page, or the closed notice once the cutoff has passed
func Index(c *gin.Context) {
	if gate == nil {
		log.Fatal("[PAGES]: Gate is not initialized")
	}

	if !gate.Open(time.Now()) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.ClosedHTML())
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML())
}

// Method: GET
// Serves the interview client script. The script stays reachable after the
// cutoff so an interview in flight can finish
func AppJS(c *gin.Context) {
	c.Data(http.StatusOK, "application/javascript", web.AppJS())
}
