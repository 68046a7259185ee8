package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events <match-id>",
		Short: "Stream SSE events from a match",
		Long: `Connect to the match's SSE endpoint and stream events in real-time.

Events include:
  - match_started: A new match began
  - dart_thrown: A dart was scored
  - computer_dart: The computer threw a dart
  - dart_undone: The last dart was taken back
  - visit_committed: A visit was committed to the scoreboard
  - visit_busted: The visit went bust
  - bust_cleared: The bust indicator was cleared
  - turn_advanced: The other thrower is up
  - match_won: The leg was won
  - leg_restarted: A new leg started on the same match
  - match_reset: The match was deleted

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamEvents(args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// SSEEvent is one parsed server-sent event, timestamped at receipt.
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamEvents(matchID string, jsonOutput bool) error {
	url := strings.TrimSuffix(cfg.ServerURL, "/") + "/api/v1/matches/" + matchID + "/events"

	// Ctrl+C cancels the context, which unblocks the body read below.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	// Zero timeout: the stream stays open until the user interrupts or the
	// server closes it.
	httpClient := &http.Client{Timeout: 0}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return decodeError(resp.StatusCode, body)
	}

	if !jsonOutput {
		fmt.Printf("Watching match %s\n", matchID)
	}

	return readEvents(ctx, resp.Body, jsonOutput)
}

// readEvents consumes the SSE wire format line by line. An event is
// dispatched when its terminating blank line arrives.
func readEvents(ctx context.Context, r io.Reader, jsonOutput bool) error {
	scanner := bufio.NewScanner(r)

	var name string
	var data []string

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = append(data, strings.TrimPrefix(line, "data: "))
		case strings.HasPrefix(line, ":"):
			// Keepalive comment from the server.
			if cfg.Verbose && !jsonOutput {
				fmt.Println("(keepalive)")
			}
		case line == "":
			if name != "" {
				printEvent(name, strings.Join(data, "\n"), jsonOutput)
			}
			name = ""
			data = nil
		}
	}

	if err := scanner.Err(); err != nil {
		// A cancelled context means the user hit Ctrl+C, not a broken stream.
		if ctx.Err() != nil {
			if !jsonOutput {
				fmt.Println("\nDisconnected")
			}
			return nil
		}
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		fmt.Println("Disconnected")
	}
	return nil
}

func printEvent(name, data string, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		line, _ := json.Marshal(SSEEvent{Time: now, Event: name, Data: data})
		fmt.Println(string(line))
		return
	}

	display := strings.ReplaceAll(data, "\n", " ")
	if len(display) > 100 {
		display = display[:97] + "..."
	}
	fmt.Printf("[%s] %s: %s\n", now.Format("2006-01-02 15:04:05"), name, display)
}
