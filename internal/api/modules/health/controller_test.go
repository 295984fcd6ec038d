package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	interview_module "github.com/mtopaz/usc-workshop-aria/internal/api/modules/interview"
	"github.com/mtopaz/usc-workshop-aria/pkg/sdk"
	"github.com/mtopaz/usc-workshop-aria/pkg/utils"
)

func TestGetStatus(t *testing.T) {
	cfg := utils.NewConfig(map[string]string{
		"OPENAI_API_KEY": "sk-test",
		"TRANSCRIPT_DIR": t.TempDir(),
		"SHUTDOWN_DATE":  "2027-01-01T00:00:00Z",
	})

	// The interview service registers collectors globally, so it is set up
	// once for the whole test
	require.NoError(t, interview_module.Init(cfg))
	require.NoError(t, Init(cfg))

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	RegisterRoutes(engine.Group("/api"))

	get := func(t *testing.T) sdk.ApiResponse[sdk.HealthResponse] {
		t.Helper()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp sdk.ApiResponse[sdk.HealthResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	t.Run("open gate", func(t *testing.T) {
		resp := get(t)
		assert.Equal(t, "ok", resp.Data.Status)
		assert.True(t, resp.Data.InterviewOpen)
		assert.True(t, resp.Data.ProviderConfigured)
		assert.False(t, resp.Data.NotifyConfigured)
		assert.Equal(t, 0, resp.Data.ActiveSessions)
	})

	t.Run("closed gate", func(t *testing.T) {
		closed := utils.NewConfig(map[string]string{
			"SHUTDOWN_DATE": "2020-01-01T00:00:00Z",
		})
		require.NoError(t, Init(closed))

		resp := get(t)
		assert.Equal(t, "ok", resp.Data.Status)
		assert.False(t, resp.Data.InterviewOpen)
	})
}
