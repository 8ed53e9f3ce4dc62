package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leadline-ai/leadline/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "leadlined",
		Short: "Leadline daemon and CLI",
		Long:  "Leadline daemon for running the chatbot API server and managing the document index",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.IngestCmd())
	rootCmd.AddCommand(cli.SearchCmd())
	rootCmd.AddCommand(cli.ChatCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
