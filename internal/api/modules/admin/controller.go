package admin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mtopaz/usc-workshop-aria/internal/stores/transcript"
	"github.com/mtopaz/usc-workshop-aria/pkg/sdk"
)

// Method: GET
// Lists the stored transcripts, most recently modified first
func ListTranscripts(c *gin.Context) {
	response, err := GetService().ListTranscripts()
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Could not list transcripts", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Stored transcripts", response).AsGinResponse())
}

// Method: GET
// Streams one stored transcript as a CSV download
func DownloadTranscript(c *gin.Context) {
	// Get the requested file name
	name := c.Param("filename")

	content, err := GetService().ReadTranscript(name)
	if err != nil {
		if errors.Is(err, transcript.ErrInvalidName) {
			c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid transcript name", err).AsGinResponse())
			return
		}
		if errors.Is(err, transcript.ErrFileNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Transcript not found", err).AsGinResponse())
			return
		}

		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Could not read transcript", err).AsGinResponse())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
	c.Data(http.StatusOK, "text/csv", content)
}
