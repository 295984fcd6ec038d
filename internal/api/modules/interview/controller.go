package interview_module

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mtopaz/usc-workshop-aria/internal/stores/session"
	"github.com/mtopaz/usc-workshop-aria/internal/stores/transcript"
	"github.com/mtopaz/usc-workshop-aria/pkg/sdk"
)

// Method: POST
// Exchanges the server credential for an ephemeral client token and registers
// a new session. The credential itself never leaves the server
func CreateSession(c *gin.Context) {
	response, err := GetService().CreateSession(c.Request.Context())
	if err != nil {
		// Provider details stay in the logs
		log.Printf("[INTERVIEW]: Failed to create session: %v", err)
		c.JSON(sdk.NewErrorResponse(http.StatusBadGateway, "Voice provider unavailable", nil).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Session created", response).AsGinResponse())
}

// Method: GET
// Lists the sessions currently in flight
func GetSessions(c *gin.Context) {
	response := GetService().ActiveSessions()

	c.JSON(sdk.NewSuccessResponse("Active sessions", response).AsGinResponse())
}

// Method: GET
// Returns the live transcript of one active session
func GetSession(c *gin.Context) {
	// Get the session ID
	id := c.Param("id")

	sess, err := GetService().Session(id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Session not found", err).AsGinResponse())
			return
		}

		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Could not load session", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Session transcript", toSessionDetail(sess)).AsGinResponse())
}

// Method: GET
// Streams the live transcript of one active session as a CSV download
func DownloadSessionCSV(c *gin.Context) {
	// Get the session ID
	id := c.Param("id")

	sess, err := GetService().Session(id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Session not found", err).AsGinResponse())
			return
		}

		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Could not load session", err).AsGinResponse())
		return
	}

	// Render the in-memory session through the same codec the store uses
	record := transcript.FromSession(sess)
	buf := &bytes.Buffer{}
	if err := record.Encode(buf); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Could not encode transcript", err).AsGinResponse())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", transcript.Filename(record)))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// Method: POST
// Appends one transcript turn to an active session
func AppendTurn(c *gin.Context) {
	// Get the session ID
	id := c.Param("id")

	// Parse the request body
	req := &sdk.AppendTurnRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	response, err := GetService().AppendTurn(id, req)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Session not found", err).AsGinResponse())
			return
		}

		// Anything else from the registry is a bad turn payload
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not record turn", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Turn recorded", response).AsGinResponse())
}

// Method: POST
// Finalizes a session: the transcript is written out and the session leaves
// the active registry. Only the first completion succeeds
func CompleteSession(c *gin.Context) {
	// Get the session ID
	id := c.Param("id")

	response, err := GetService().Complete(id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Session not found", err).AsGinResponse())
			return
		}

		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Could not store transcript", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Interview completed", response).AsGinResponse())
}

// toSessionDetail converts an internal session into its SDK view
func toSessionDetail(sess *session.Session) *sdk.SessionDetail {
	turns := make([]sdk.Turn, 0, len(sess.Turns))
	for _, turn := range sess.Turns {
		turns = append(turns, sdk.Turn{
			Speaker:    string(turn.Speaker),
			Text:       turn.Text,
			Timestamp:  turn.Timestamp,
			QuestionID: turn.QuestionID,
			Followup:   turn.Followup,
		})
	}

	return &sdk.SessionDetail{
		SessionID: sess.ID,
		StartedAt: sess.StartedAt,
		Turns:     turns,
	}
}
