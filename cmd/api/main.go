package main

import (
	"os"

	"github.com/mtopaz/usc-workshop-aria/internal/api"
	"github.com/mtopaz/usc-workshop-aria/pkg/utils"
)

// Start the interview server
func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)

	// Start
	api.Start(cfg)
}
