package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"travelcompanion/app/companion"
)

var version = "dev"

var (
	serverURL string
	token     string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "companion",
	Short:         "Travel companion client",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("COMPANION_SERVER", "http://localhost:8088"), "backend base URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("COMPANION_TOKEN"), "bearer token from signin or signup")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second, "request timeout")

	rootCmd.AddCommand(signupCmd, signinCmd, signoutCmd, profileCmd, searchCmd, historyCmd, chatCmd, itineraryCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newClient() *companion.Client {
	client := companion.NewClient(serverURL, timeout)
	client.SetToken(token)
	return client
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
