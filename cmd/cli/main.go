package main

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var (
	apiURL = "http://localhost:8080"
	output = "text" // "text" or "json"
)

var rootCmd = &cobra.Command{
	Use:   "mintfeed",
	Short: "Mintfeed CLI - Browse and post to a ledger-backed feed",
	Long: `Mintfeed CLI provides command-line access to a mintfeed server.
Browse the feed, look up profiles, and create posts and replies.`,
}

func init() {
	if env := os.Getenv("MINTFEED_API"); env != "" {
		apiURL = env
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", apiURL, "API server URL")
	rootCmd.PersistentFlags().StringVar(&output, "output", output, "Output format: text or json")

	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(repliesCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(replyCmd)
}

// apiClient builds the shared HTTP client for all commands.
func apiClient() *resty.Client {
	return resty.New().
		SetBaseURL(apiURL).
		SetHeader("Accept", "application/json")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fail("%v", err)
	}
}
