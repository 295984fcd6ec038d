package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps calls to the interview backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateSession starts a new interview session
func (c *Client) CreateSession(ctx context.Context) (*CreateSessionResponse, error) {
	path := "/api/interview/sessions"

	var out ApiResponse[CreateSessionResponse]
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}

	if out.Data.SessionID == "" {
		return nil, fmt.Errorf("no session id returned")
	}

	return &out.Data, nil
}

// ActiveSessions lists unfinalized sessions
func (c *Client) ActiveSessions(ctx context.Context) (*ListSessionsResponse, error) {
	path := "/api/interview/sessions"

	var out ApiResponse[ListSessionsResponse]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// GetSession returns the live view of one active session
func (c *Client) GetSession(ctx context.Context, id string) (*SessionDetail, error) {
	path := fmt.Sprintf("/api/interview/sessions/%s", id)

	var out ApiResponse[SessionDetail]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// AppendTurn records a transcript turn on an active session
func (c *Client) AppendTurn(ctx context.Context, id string, req *AppendTurnRequest) (*AppendTurnResponse, error) {
	path := fmt.Sprintf("/api/interview/sessions/%s/turns", id)

	var out ApiResponse[AppendTurnResponse]
	if err := c.doJSON(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// CompleteSession finalizes a session and stores its transcript
func (c *Client) CompleteSession(ctx context.Context, id string) (*CompleteSessionResponse, error) {
	path := fmt.Sprintf("/api/interview/sessions/%s/complete", id)

	var out ApiResponse[CompleteSessionResponse]
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// ListTranscripts lists stored transcript files
func (c *Client) ListTranscripts(ctx context.Context) (*ListTranscriptsResponse, error) {
	path := "/api/admin/transcripts"

	var out ApiResponse[ListTranscriptsResponse]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// FetchTranscript downloads one stored transcript as raw CSV
func (c *Client) FetchTranscript(ctx context.Context, name string) ([]byte, error) {
	path := fmt.Sprintf("/api/admin/transcripts/%s", name)

	return c.doRaw(ctx, http.MethodGet, path)
}

// Health returns the service health report
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	path := "/api/health"

	var out ApiResponse[HealthResponse]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// doJSON is a helper to perform JSON requests to the backend
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	// Create request body if input is provided
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// Perform the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// On error, read body and return error
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("[BACKEND]: backend '%s %s' failed: %d: %s", method, path, resp.StatusCode, string(b))
	}

	// If no output expected, return early
	if out == nil {
		return nil
	}

	// Decode the response body into the output struct
	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}

// doRaw performs a request whose response body is returned untouched
func (c *Client) doRaw(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("[BACKEND]: backend '%s %s' failed: %d: %s", method, path, resp.StatusCode, string(b))
	}

	return io.ReadAll(resp.Body)
}
