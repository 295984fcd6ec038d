package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mtopaz/usc-workshop-aria/internal/stores/session"
	"github.com/mtopaz/usc-workshop-aria/internal/stores/transcript"
	"github.com/mtopaz/usc-workshop-aria/pkg/utils"
)

const (
	DefaultMailBaseURL = "https://api.resend.com"
	DefaultMailFrom    = "ARIA <onboarding@resend.dev>"

	previewMaxResponses = 6
	previewMaxChars     = 150
)

// MailNotifier emails a transcript preview with the CSV attached, via the
// Resend HTTP API
type MailNotifier struct {
	baseURL    string
	apiKey     string
	from       string
	to         string
	httpClient *http.Client
}

// NewMailNotifier builds a mail notifier from configuration
func NewMailNotifier(cfg *utils.Config) *MailNotifier {
	return &MailNotifier{
		baseURL:    strings.TrimRight(cfg.GetWithDefault("MAIL_API_BASE_URL", DefaultMailBaseURL), "/"),
		apiKey:     cfg.Get("RESEND_API_KEY"),
		from:       cfg.GetWithDefault("MAIL_FROM", DefaultMailFrom),
		to:         cfg.Get("NOTIFY_EMAIL"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type mailAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type mailRequest struct {
	From        string           `json:"from"`
	To          []string         `json:"to"`
	Subject     string           `json:"subject"`
	HTML        string           `json:"html"`
	Attachments []mailAttachment `json:"attachments"`
}

// Notify sends one email for the finalized record. Single attempt; the
// caller decides what to do with failures.
func (n *MailNotifier) Notify(ctx context.Context, record *transcript.Record, filename string) error {
	var csvBuf bytes.Buffer
	if err := record.Encode(&csvBuf); err != nil {
		return fmt.Errorf("failed to encode attachment: %w", err)
	}

	payload := mailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: fmt.Sprintf("ARIA Interview Completed - USC Workshop (%s)", record.StartedAt.Format("20060102_150405")),
		HTML:    previewHTML(record),
		Attachments: []mailAttachment{{
			Filename: filename,
			Content:  base64.StdEncoding.EncodeToString(csvBuf.Bytes()),
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/emails", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mail provider error (%d): %s", resp.StatusCode, string(b))
	}

	return nil
}

// previewHTML renders the notification body: duration, counts, and the first
// few participant responses
func previewHTML(record *transcript.Record) string {
	var participant []session.Turn
	for _, turn := range record.Turns {
		if turn.Speaker == session.SpeakerParticipant {
			participant = append(participant, turn)
		}
	}

	duration := record.Duration()
	durationMin := int(duration.Seconds()) / 60
	durationSec := int(duration.Seconds()) % 60

	var previewLines []string
	for i, turn := range participant {
		if i >= previewMaxResponses {
			break
		}

		text := turn.Text
		if runes := []rune(text); len(runes) > previewMaxChars {
			text = string(runes[:previewMaxChars]) + "..."
		}

		label := "Q?"
		if turn.QuestionID > 0 {
			label = fmt.Sprintf("Q%d", turn.QuestionID)
		}
		previewLines = append(previewLines, fmt.Sprintf("%s: %s", label, html.EscapeString(text)))
	}

	preview := "(no participant responses captured)"
	if len(previewLines) > 0 {
		preview = strings.Join(previewLines, "<br>")
	}

	return fmt.Sprintf(`<h2>New ARIA pre-workshop interview completed!</h2>
<p><strong>Duration:</strong> %d:%02d<br>
<strong>Total exchanges:</strong> %d<br>
<strong>Participant responses:</strong> %d</p>
<h3>Response Preview</h3>
<p style="background:#f5f5f5; padding:12px; border-radius:8px; font-size:14px;">
%s
</p>
<p style="color:#888; font-size:12px;">Full transcript attached as CSV.<br>
ARIA &middot; USC College of Nursing AI Workshop &middot; Feb 27, 2026</p>`,
		durationMin, durationSec, len(record.Turns), len(participant), preview)
}
