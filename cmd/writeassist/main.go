package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "writeassist",
	Short: "Academic writing assistant",
	Long: `writeassist highlights spelling, grammar, style and clarity suggestions in a
manuscript and offers paraphrasing, compression, readiness and plagiarism checks.
Without a subcommand it opens the terminal editor.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)

	rootCmd.PersistentFlags().String("config", "", "path to YAML or TOML config (default ./writeassist.yaml or ~/.config/writeassist/config.yaml)")
	rootCmd.PersistentFlags().String("file", "", "document to open (.txt, .md or .pdf); the demo manuscript when omitted")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
