// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines the learnrise command tree and shared output settings
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
	format  string
)

const banner = `
██╗     ███████╗ █████╗ ██████╗ ███╗   ██╗██████╗ ██╗███████╗███████╗
██║     ██╔════╝██╔══██╗██╔══██╗████╗  ██║██╔══██╗██║██╔════╝██╔════╝
██║     █████╗  ███████║██████╔╝██╔██╗ ██║██████╔╝██║███████╗█████╗
██║     ██╔══╝  ██╔══██║██╔══██╗██║╚██╗██║██╔══██╗██║╚════██║██╔══╝
███████╗███████╗██║  ██║██║  ██║██║ ╚████║██║  ██║██║███████║███████╗
╚══════╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝╚═╝╚══════╝╚══════╝`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learnrise",
		Short: "Learn English from YouTube videos with an AI tutor",
		Long: banner + `

Learnrise turns any captioned YouTube video into an English lesson:
it fetches the transcript, indexes it for retrieval, generates
comprehension questions, and answers your questions grounded in
what the video actually says.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&format, "format", "auto", "Output format (auto, json, text)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewTranscriptCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
