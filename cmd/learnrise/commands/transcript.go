// ABOUTME: Transcript command fetches and prints YouTube transcripts
// ABOUTME: Supports timed text output and JSON for piping into other tools
package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/learnrise/learnrise/internal/transcript"
)

// NewTranscriptCmd creates the transcript command group
func NewTranscriptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcript",
		Short: "Fetch and inspect YouTube transcripts",
	}

	cmd.AddCommand(newTranscriptFetchCmd())
	cmd.AddCommand(newTranscriptIDCmd())

	return cmd
}

func newTranscriptFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch the transcript for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher := transcript.NewFetcher(30 * time.Second)
			segments, err := fetcher.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(segments)
			}

			for _, seg := range segments {
				fmt.Fprintf(cmd.OutOrStdout(), "[%7.1fs] %s\n", seg.Start, seg.Text)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d segments\n", len(segments))
			}
			return nil
		},
		Example: `  # Print the timed transcript
  learnrise transcript fetch https://www.youtube.com/watch?v=dQw4w9WgXcQ

  # Emit JSON for further processing
  learnrise transcript fetch dQw4w9WgXcQ --format json`,
	}
}

func newTranscriptIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "id <url>",
		Short: "Extract the video ID from a YouTube URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := transcript.ExtractVideoID(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
