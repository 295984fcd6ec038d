package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mtopaz/usc-workshop-aria/pkg/utils"
)

/* ---- CONSTANTS ---- */

const (
	DefaultBaseURL         = "https://api.openai.com/v1"
	DefaultModel           = "gpt-realtime"
	DefaultVoice           = "sage"
	DefaultTokenTTLSeconds = 600
)

/* ---- TYPES ---- */

// ClientSecret is the short-lived credential the voice provider mints for one
// browser session. It is the only credential that ever reaches the client.
type ClientSecret struct {
	Value     string `json:"value"`
	ExpiresAt int64  `json:"expires_at"`
}

// sessionConfig mirrors the provider's realtime session object
type sessionConfig struct {
	Type             string      `json:"type"`
	Model            string      `json:"model"`
	Instructions     string      `json:"instructions"`
	OutputModalities []string    `json:"output_modalities"`
	Audio            audioConfig `json:"audio"`
}

type audioConfig struct {
	Input  audioInputConfig  `json:"input"`
	Output audioOutputConfig `json:"output"`
}

type audioInputConfig struct {
	Transcription transcriptionConfig `json:"transcription"`
	TurnDetection turnDetectionConfig `json:"turn_detection"`
}

type transcriptionConfig struct {
	Model    string `json:"model"`
	Language string `json:"language"`
}

type turnDetectionConfig struct {
	Type              string  `json:"type"`
	Threshold         float64 `json:"threshold"`
	PrefixPaddingMs   int     `json:"prefix_padding_ms"`
	SilenceDurationMs int     `json:"silence_duration_ms"`
}

type audioOutputConfig struct {
	Voice string `json:"voice"`
}

type clientSecretRequest struct {
	ExpiresAfter expiresAfterConfig `json:"expires_after"`
	Session      sessionConfig      `json:"session"`
}

type expiresAfterConfig struct {
	Anchor  string `json:"anchor"`
	Seconds int    `json:"seconds"`
}

/* ---- CLIENT ---- */

// Client exchanges the server-held API key for ephemeral client secrets at
// the voice provider. The key itself never leaves this process.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	voice      string
	tokenTTL   int
	httpClient *http.Client
}

// NewClient builds a provider client from configuration. The API key is
// required; everything else has defaults.
func NewClient(cfg *utils.Config) (*Client, error) {
	apiKey := cfg.Get("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = cfg.Get("OPENAI_APIKEY")
	}
	if apiKey == "" {
		apiKey = cfg.Get("OPENAI_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.GetWithDefault("VOICE_API_BASE_URL", DefaultBaseURL), "/"),
		apiKey:     apiKey,
		model:      cfg.GetWithDefault("REALTIME_MODEL", DefaultModel),
		voice:      cfg.GetWithDefault("REALTIME_VOICE", DefaultVoice),
		tokenTTL:   cfg.GetIntWithDefault("SESSION_TOKEN_TTL_SECONDS", DefaultTokenTTLSeconds),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Model returns the realtime model sessions are created with
func (c *Client) Model() string {
	return c.model
}

// CreateClientSecret mints an ephemeral token scoped to one interview
// session. Single attempt; failures surface to the caller untouched.
func (c *Client) CreateClientSecret(ctx context.Context, instructions string) (*ClientSecret, error) {
	reqBody := clientSecretRequest{
		ExpiresAfter: expiresAfterConfig{
			Anchor:  "created_at",
			Seconds: c.tokenTTL,
		},
		Session: sessionConfig{
			Type:             "realtime",
			Model:            c.model,
			Instructions:     instructions,
			OutputModalities: []string{"audio"},
			Audio: audioConfig{
				Input: audioInputConfig{
					Transcription: transcriptionConfig{Model: "whisper-1", Language: "en"},
					TurnDetection: turnDetectionConfig{
						Type:              "server_vad",
						Threshold:         0.5,
						PrefixPaddingMs:   500,
						SilenceDurationMs: 2000,
					},
				},
				Output: audioOutputConfig{Voice: c.voice},
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session config: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/realtime/client_secrets", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "aria-interview/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voice provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("voice provider error (%d): %s", resp.StatusCode, string(b))
	}

	var secret ClientSecret
	if err := json.NewDecoder(resp.Body).Decode(&secret); err != nil {
		return nil, fmt.Errorf("failed to decode client secret: %w", err)
	}
	if secret.Value == "" {
		return nil, fmt.Errorf("voice provider returned an empty client secret")
	}

	return &secret, nil
}
