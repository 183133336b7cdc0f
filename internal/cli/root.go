// Package cli is the repoprofile command line.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/dpolishuk/repoprofile/backend/internal/config"
	"github.com/dpolishuk/repoprofile/backend/internal/server"
)

var apiKey string

var rootCmd = &cobra.Command{
	Use:   "repoprofile",
	Short: "RepoProfile - Build a coding profile from GitHub repositories",
	Long: `RepoProfile indexes a bounded slice of a developer's GitHub repositories
into a Gemini file search store and asks the model for a 20-point coding profile.

Use 'repoprofile repos' to list repositories, 'repoprofile index' to build a
store and 'repoprofile profile' to generate a profile from it.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (default: $GEMINI_API_KEY)")
}

// resolveAPIKey prefers the flag over the environment.
func resolveAPIKey() string {
	if apiKey != "" {
		return apiKey
	}
	return os.Getenv("GEMINI_API_KEY")
}

func newServices(ctx context.Context) (*config.Config, *server.Services) {
	cfg := config.Load()
	return cfg, server.NewServices(ctx, cfg)
}
