package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mtopaz/usc-workshop-aria/internal/stores/transcript"
	"github.com/mtopaz/usc-workshop-aria/pkg/sdk"
)

const usage = `Workshop interview admin tool.

Usage: commandline [flags] <command> [args]

Commands:
  health              Show server status
  sessions            List active interview sessions
  session <id>        Show the live transcript of one session
  transcripts         List stored transcript files
  show <filename>     Print one stored transcript
  fetch <filename>    Download one stored transcript

Flags:
`

func main() {
	baseURL := flag.String("base", "http://localhost:7860", "Base URL of the interview server")
	outDir := flag.String("out", ".", "Directory fetched transcripts are written to")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	client := sdk.NewClient(*baseURL)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch args[0] {
	case "health":
		err = showHealth(ctx, client)
	case "sessions":
		err = listSessions(ctx, client)
	case "session":
		if len(args) < 2 {
			log.Fatal("[COMMANDLINE]: Usage: session <id>")
		}
		err = showSession(ctx, client, args[1])
	case "transcripts":
		err = listTranscripts(ctx, client)
	case "show":
		if len(args) < 2 {
			log.Fatal("[COMMANDLINE]: Usage: show <filename>")
		}
		err = showTranscript(ctx, client, args[1])
	case "fetch":
		if len(args) < 2 {
			log.Fatal("[COMMANDLINE]: Usage: fetch <filename>")
		}
		err = fetchTranscript(ctx, client, args[1], *outDir)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("[COMMANDLINE]: %v", err)
	}
}

// showHealth prints the server's status report
func showHealth(ctx context.Context, client *sdk.Client) error {
	health, err := client.Health(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Status:           %s\n", health.Status)
	fmt.Printf("Interview open:   %t (closes %s)\n", health.InterviewOpen, health.ShutdownDate.Format(time.RFC3339))
	fmt.Printf("Active sessions:  %d\n", health.ActiveSessions)
	fmt.Printf("Provider ready:   %t\n", health.ProviderConfigured)
	fmt.Printf("Email configured: %t\n", health.NotifyConfigured)
	return nil
}

// listSessions prints the sessions currently in flight
func listSessions(ctx context.Context, client *sdk.Client) error {
	resp, err := client.ActiveSessions(ctx)
	if err != nil {
		return err
	}

	if resp.Count == 0 {
		fmt.Println("No active sessions.")
		return nil
	}

	fmt.Printf("%d active session(s):\n", resp.Count)
	for _, sess := range resp.Sessions {
		fmt.Printf("  %s  started %s  %d turn(s)\n",
			sess.SessionID, sess.StartedAt.Format(time.RFC3339), sess.TurnCount)
	}
	return nil
}

// showSession prints the live transcript of one active session
func showSession(ctx context.Context, client *sdk.Client, id string) error {
	detail, err := client.GetSession(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("Session %s (started %s, %d turns)\n",
		detail.SessionID, detail.StartedAt.Format(time.RFC3339), len(detail.Turns))
	for _, turn := range detail.Turns {
		fmt.Printf("[%s] %s: %s\n", turn.Timestamp.Format("15:04:05"), turn.Speaker, turn.Text)
	}
	return nil
}

// listTranscripts prints the stored transcript files
func listTranscripts(ctx context.Context, client *sdk.Client) error {
	resp, err := client.ListTranscripts(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%d file(s) in %s:\n", resp.TotalFiles, resp.TranscriptDirectory)
	for _, file := range resp.Files {
		fmt.Printf("  %-48s %8d bytes  %s\n",
			file.Filename, file.SizeBytes, file.Modified.Format(time.RFC3339))
	}
	return nil
}

// showTranscript prints one stored transcript decoded from its CSV form
func showTranscript(ctx context.Context, client *sdk.Client, name string) error {
	content, err := client.FetchTranscript(ctx, name)
	if err != nil {
		return err
	}

	record, err := transcript.Decode(bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}

	fmt.Printf("Session %s (started %s, %d turns, %s)\n",
		record.SessionID, record.StartedAt.Format(time.RFC3339),
		len(record.Turns), record.Duration().Round(time.Second))
	for _, turn := range record.Turns {
		fmt.Printf("[%s] %s: %s\n", turn.Timestamp.Format("15:04:05"), turn.Speaker, turn.Text)
	}
	return nil
}

// fetchTranscript downloads one stored transcript into outDir
func fetchTranscript(ctx context.Context, client *sdk.Client, name, outDir string) error {
	content, err := client.FetchTranscript(ctx, name)
	if err != nil {
		return err
	}

	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", path, len(content))
	return nil
}
