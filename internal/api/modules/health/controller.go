package health

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	interview_module "github.com/mtopaz/usc-workshop-aria/internal/api/modules/interview"
	"github.com/mtopaz/usc-workshop-aria/internal/interview"
	"github.com/mtopaz/usc-workshop-aria/pkg/sdk"
	"github.com/mtopaz/usc-workshop-aria/pkg/utils"
)

var gate *interview.Gate

// Init creates the availability gate the status report reads from
func Init(cfg *utils.Config) error {
	g, err := interview.NewGate(cfg)
	if err != nil {
		return err
	}

	gate = g
	return nil
}

// Return status of the API
func getStatus(c *gin.Context) {
	if gate == nil {
		log.Fatal("[HEALTH]: Gate is not initialized")
	}

	service := interview_module.GetService()

	// A running server always holds a provider key; startup fails without one
	res := sdk.NewSuccessResponse("OK", &sdk.HealthResponse{
		Status:             "ok",
		InterviewOpen:      gate.Open(time.Now()),
		ShutdownDate:       gate.Cutoff(),
		ActiveSessions:     service.ActiveCount(),
		ProviderConfigured: true,
		NotifyConfigured:   service.NotifyEnabled(),
	})
	c.JSON(res.AsGinResponse())
}
